// Package cli provides the command-line interface for the HAR generator.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"oas2har/internal/config"
	"oas2har/internal/converter"
	"oas2har/internal/document"
	"oas2har/internal/llm"
	"oas2har/internal/logger"
	"oas2har/internal/report"
	"oas2har/internal/synth"
)

// CLI holds the command-line interface configuration.
type CLI struct {
	log        zerolog.Logger
	rootCmd    *cobra.Command
	input      string
	outputDir  string
	configPath string
	valuesPath string
	apiKey     string
	strict     bool
	useLLM     bool
}

// New creates a new CLI instance.
func New(log zerolog.Logger) *CLI {
	cli := &CLI{
		log: log,
	}

	cli.rootCmd = &cobra.Command{
		Use:   "oas2har",
		Short: "Convert OpenAPI/Swagger descriptions to synthetic HAR requests",
		Long:  "A CLI tool that builds one fully-populated HAR request descriptor per declared path+method pair of an OpenAPI or Swagger document, with placeholder values synthesized for undeclared data.",
		RunE:  cli.run,
	}

	cli.setupFlags()

	return cli
}

func (c *CLI) setupFlags() {
	c.rootCmd.Flags().StringVarP(&c.input, "input", "i", "", "Path or URL of the API description (required)")
	c.rootCmd.Flags().StringVarP(&c.outputDir, "output", "o", "", "Output directory for the generated report")
	c.rootCmd.Flags().StringVarP(&c.configPath, "config", "c", "config/config.yaml", "Path to the configuration file")
	c.rootCmd.Flags().StringVar(&c.valuesPath, "values", "", "Path to a JSON file mapping parameter names to values")
	c.rootCmd.Flags().StringVar(&c.apiKey, "api-key", "", "API key emitted as a Bearer token for required Authorization headers")
	c.rootCmd.Flags().BoolVar(&c.strict, "strict", false, "Validate the document with kin-openapi before converting")
	c.rootCmd.Flags().BoolVar(&c.useLLM, "llm", false, "Materialize request bodies with the configured LLM provider")

	_ = c.rootCmd.MarkFlagRequired("input")
}

// Execute runs the CLI.
func (c *CLI) Execute() error {
	return c.rootCmd.Execute()
}

func (c *CLI) run(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if c.outputDir == "" {
		c.outputDir = cfg.Output.Dir
	}

	c.log.Info().Str("input", c.input).Msg("loading API description")

	loader := document.NewLoader(time.Duration(cfg.HTTP.Timeout)*time.Second, c.strict)
	doc, err := c.loadDocument(loader)
	if err != nil {
		return fmt.Errorf("failed to load API description: %w", err)
	}

	opts := converter.Options{APIKey: c.apiKey}

	if c.valuesPath != "" {
		opts.Values, err = loadValues(c.valuesPath)
		if err != nil {
			return fmt.Errorf("failed to load parameter values: %w", err)
		}
	}

	if c.useLLM {
		instantiate, cleanup, err := c.llmInstantiator(cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		opts.Instantiate = instantiate
	}

	results := converter.New(doc).Results(opts)

	converted := 0
	for _, result := range results {
		if result.Err != nil {
			c.log.Warn().
				Str("path", result.Path).
				Str("method", strings.ToUpper(result.Method)).
				Err(result.Err).
				Msg("endpoint conversion failed")
			continue
		}
		converted++
	}
	c.log.Info().Int("converted", converted).Int("failed", len(results)-converted).Msg("conversion finished")

	path, err := report.NewWriter(c.outputDir).Write(c.input, results)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	c.log.Info().Str("path", path).Msg("report written")

	return nil
}

func (c *CLI) loadDocument(loader *document.Loader) (*document.Document, error) {
	if strings.HasPrefix(c.input, "http://") || strings.HasPrefix(c.input, "https://") {
		return loader.FromURL(c.input)
	}
	return loader.FromFile(c.input)
}

func (c *CLI) llmInstantiator(cfg *config.Config) (synth.Instantiator, func(), error) {
	llmLog, err := logger.NewLogger(cfg.LLM.LogDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM log: %w", err)
	}

	client, err := llm.NewClient(&llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, llmLog)
	if err != nil {
		llmLog.Close()
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return llm.Instantiator(client), func() { llmLog.Close() }, nil
}

func loadValues(path string) (synth.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values synth.Values
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse values file: %w", err)
	}
	return values, nil
}
