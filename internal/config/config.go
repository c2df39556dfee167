package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Output OutputConfig `yaml:"output"`
	HTTP   HTTPConfig   `yaml:"http"`
	LLM    LLMConfig    `yaml:"llm"`
}

// OutputConfig holds output configuration
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// HTTPConfig holds configuration for fetching remote API descriptions
type HTTPConfig struct {
	Timeout int `yaml:"timeout"`
}

// LLMConfig holds configuration for LLM-backed body instantiation
type LLMConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	APIKey      string  `yaml:"api_key"`
	LogDir      string  `yaml:"log_dir"`
}

// LoadConfig loads the configuration from the given YAML file and environment
// variables. A missing file is not an error: defaults apply.
func LoadConfig(path string) (*Config, error) {
	var config Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Override LLM API key from environment variable if set
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.LLM.APIKey = key
	}

	// Set default values if not specified
	if config.Output.Dir == "" {
		config.Output.Dir = "out"
	}
	if config.HTTP.Timeout == 0 {
		config.HTTP.Timeout = 30
	}
	if config.LLM.Provider == "" {
		config.LLM.Provider = "openai"
	}
	if config.LLM.Model == "" {
		config.LLM.Model = "gpt-4"
	}
	if config.LLM.Temperature == 0 {
		config.LLM.Temperature = 0.2
	}
	if config.LLM.MaxTokens == 0 {
		config.LLM.MaxTokens = 2000
	}
	if config.LLM.LogDir == "" {
		config.LLM.LogDir = "logs"
	}

	return &config, nil
}
