// Package llm provides an optional instantiator that asks a language model
// for a realistic example value of a resolved request body schema. The
// deterministic sampler in internal/synth stays the default; this package is
// only wired in when the caller opts in with an API key.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"oas2har/internal/document"
	"oas2har/internal/logger"
	"oas2har/internal/synth"
)

// Client generates example values for resolved schemas.
type Client interface {
	// ExampleValue returns a value conforming to the given resolved schema.
	ExampleValue(ctx context.Context, schema *document.Map) (any, error)
}

const requestTimeout = 30 * time.Second

// Instantiator adapts a Client to the converter's instantiator contract.
// Failures fall back to the deterministic sampler so a flaky provider never
// fails a conversion run.
func Instantiator(client Client) synth.Instantiator {
	return func(schema *document.Map) any {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		value, err := client.ExampleValue(ctx, schema)
		if err != nil {
			return synth.Instantiate(schema)
		}
		return value
	}
}

// buildPrompt renders the schema as JSON inside the generation prompt.
func buildPrompt(schema *document.Map) (string, error) {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to serialize schema: %w", err)
	}

	return fmt.Sprintf(`Generate one realistic example value for the following JSON schema.

Schema:
%s

Respond with the JSON value only, no explanation and no code fences.`, schemaJSON), nil
}

// parseValue extracts the JSON value from an LLM response, tolerating code
// fences the model may add despite instructions.
func parseValue(response string) (any, error) {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var value any
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return nil, fmt.Errorf("invalid response format: %w", err)
	}
	return value, nil
}

// logInteraction is a nil-safe wrapper over the transcript logger.
func logInteraction(log *logger.Logger, operation string, input, output any, err error) {
	if log == nil {
		return
	}
	log.LogInteraction(operation, input, output, err)
}
