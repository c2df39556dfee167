package llm

import (
	"context"
	"fmt"

	"oas2har/internal/document"
	"oas2har/internal/logger"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements the Client interface using OpenAI's API
type OpenAIClient struct {
	config *Config
	logger *logger.Logger
	client *openai.Client
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(config *Config, logger *logger.Logger) *OpenAIClient {
	return &OpenAIClient{
		config: config,
		logger: logger,
		client: openai.NewClient(config.APIKey),
	}
}

// ExampleValue asks the model for an example value of the resolved schema
func (c *OpenAIClient) ExampleValue(ctx context.Context, schema *document.Map) (any, error) {
	prompt, err := buildPrompt(schema)
	if err != nil {
		return nil, err
	}

	response, err := c.callLLM(ctx, prompt)
	if err != nil {
		logInteraction(c.logger, "ExampleValue", schema, nil, err)
		return nil, fmt.Errorf("failed to generate example value: %w", err)
	}

	value, err := parseValue(response)
	if err != nil {
		logInteraction(c.logger, "ExampleValue", schema, response, err)
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	logInteraction(c.logger, "ExampleValue", schema, value, nil)
	return value, nil
}

// callLLM implements the actual LLM API call for OpenAI
func (c *OpenAIClient) callLLM(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.config.Model,
			Temperature: float32(c.config.Temperature),
			MaxTokens:   c.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a helpful assistant that generates example request payloads for API schemas. Always respond in the requested format.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)

	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}
