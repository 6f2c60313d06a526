package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/voca-career/internal/config"
)

var (
	configPath   string
	flagAPIKey   string
	flagProvider string
	flagModel    string
	flagBaseURL  string
	verbose      bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	pf.StringVar(&flagAPIKey, "api-key", "", "Provider API key (overrides VOCA_API_KEY env var)")
	pf.StringVar(&flagProvider, "provider", "", "Completion provider: openai or gemini")
	pf.StringVar(&flagModel, "model", "", "Model id")
	pf.StringVar(&flagBaseURL, "base-url", "", "OpenAI-compatible base URL")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Print human-readable summaries to stderr")
}

// loadConfig resolves configuration with command-line flags taking precedence over env, file and defaults
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.APIKey = strings.TrimSpace(flagAPIKey)
	}
	if flags.Changed("provider") {
		cfg.Provider = flagProvider
	}
	if flags.Changed("model") {
		cfg.Model = flagModel
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = flagBaseURL
	}
	return cfg, nil
}

// loadValidConfig is loadConfig followed by the startup checks, including the credential
func loadValidConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
