package llm

// Config represents the configuration for LLM-backed example generation
type Config struct {
	// Provider specifies which LLM provider to use (e.g., "openai")
	Provider string `json:"provider"`

	// APIKey is the API key for the LLM provider
	APIKey string `json:"api_key"`

	// Model specifies which model to use (e.g., "gpt-4")
	Model string `json:"model"`

	// Temperature controls the randomness of the output (0.0 to 1.0)
	Temperature float64 `json:"temperature"`

	// MaxTokens limits the length of the generated response
	MaxTokens int `json:"max_tokens"`
}

// NewDefaultConfig returns a default configuration
func NewDefaultConfig() *Config {
	return &Config{
		Provider:    "openai",
		Model:       "gpt-4",
		Temperature: 0.2,
		MaxTokens:   2000,
	}
}
