// Package config resolves service configuration from defaults, an optional YAML file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/voca-career/internal/llm"
)

// Defaults that are not owned by the llm package
const (
	DefaultPort         = 8080
	DefaultMaxBodyBytes = 1 << 20
)

// apiKeyEnvVars are checked in order; the first non-empty value wins
var apiKeyEnvVars = []string{"VOCA_API_KEY", "LOVABLE_API_KEY", "GEMINI_API_KEY"}

// Config is the resolved service configuration.
// It is built once at startup and treated as read-only afterwards.
type Config struct {
	// Provider
	Provider    string  `yaml:"provider"`    // openai or gemini
	APIKey      string  `yaml:"api_key"`     // provider credential
	BaseURL     string  `yaml:"base_url"`    // OpenAI-compatible base URL
	Model       string  `yaml:"model"`       // model id; empty uses the provider default
	Temperature float64 `yaml:"temperature"` // sampling temperature

	// Outbound call policy
	Timeout       time.Duration `yaml:"timeout"`        // per-attempt timeout; 0 uses 30s
	MaxAttempts   int           `yaml:"max_attempts"`   // 1 disables retry
	RetryBackoff  time.Duration `yaml:"retry_backoff"`  // wait before the next attempt
	UpstreamRPS   float64       `yaml:"upstream_rps"`   // 0 disables the outbound throttle
	UpstreamBurst int           `yaml:"upstream_burst"` // throttle burst

	// Inbound
	Port         int   `yaml:"port"`
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// Defaults returns the configuration used when nothing else is set
func Defaults() *Config {
	retry := llm.DefaultRetryPolicy()
	return &Config{
		Provider:      string(llm.ProviderOpenAI),
		BaseURL:       llm.DefaultBaseURL,
		Temperature:   float64(llm.DefaultTemperature),
		Timeout:       retry.Timeout,
		MaxAttempts:   retry.MaxAttempts,
		RetryBackoff:  retry.Backoff,
		UpstreamBurst: 1,
		Port:          DefaultPort,
		MaxBodyBytes:  DefaultMaxBodyBytes,
	}
}

// Load resolves configuration: defaults, overlaid by the YAML file at path (optional), overlaid by the environment.
// Command-line flags are applied by the caller afterwards.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	for _, key := range apiKeyEnvVars {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			c.APIKey = v
			break
		}
	}

	setString(&c.Provider, "VOCA_PROVIDER")
	setString(&c.BaseURL, "VOCA_BASE_URL")
	setString(&c.Model, "VOCA_MODEL")

	var errs []error
	errs = append(errs,
		setFloat(&c.Temperature, "VOCA_TEMPERATURE"),
		setDuration(&c.Timeout, "VOCA_TIMEOUT"),
		setInt(&c.MaxAttempts, "VOCA_MAX_ATTEMPTS"),
		setDuration(&c.RetryBackoff, "VOCA_RETRY_BACKOFF"),
		setFloat(&c.UpstreamRPS, "VOCA_UPSTREAM_RPS"),
		setInt(&c.UpstreamBurst, "VOCA_UPSTREAM_BURST"),
		setInt(&c.Port, "PORT"),
		setInt64(&c.MaxBodyBytes, "VOCA_MAX_BODY_BYTES"),
	)
	return errors.Join(errs...)
}

// Validate checks that the configuration can serve requests.
// A missing credential is an error here so the process fails at startup, not on the first request.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("config error: API key is required (set %s)", strings.Join(apiKeyEnvVars, ", "))
	}
	return c.ValidateOffline()
}

// ValidateOffline checks every setting except the credential
func (c *Config) ValidateOffline() error {
	switch llm.Provider(c.Provider) {
	case llm.ProviderOpenAI:
		if c.BaseURL == "" {
			return fmt.Errorf("config error: 'base_url' is required for provider %q", c.Provider)
		}
	case llm.ProviderGemini:
	default:
		return fmt.Errorf("config error: unsupported provider %q", c.Provider)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("config error: 'max_attempts' must be at least 1")
	}
	if c.Timeout < 0 || c.RetryBackoff < 0 {
		return fmt.Errorf("config error: durations must be non-negative")
	}
	if c.UpstreamRPS < 0 {
		return fmt.Errorf("config error: 'upstream_rps' must be non-negative")
	}
	if c.UpstreamRPS > 0 && c.UpstreamBurst < 1 {
		return fmt.Errorf("config error: 'upstream_burst' must be at least 1 when throttling")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("config error: 'max_body_bytes' must be positive")
	}
	return nil
}

// LLM returns the completion client configuration
func (c *Config) LLM() *llm.Config {
	cfg := llm.DefaultConfig()
	if llm.Provider(c.Provider) == llm.ProviderGemini {
		cfg = llm.DefaultGeminiConfig()
	} else if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	cfg = cfg.WithAPIKey(c.APIKey)
	if c.Model != "" {
		cfg = cfg.WithModel(c.Model)
	}

	cfg.Temperature = float32(c.Temperature)
	cfg.Retry = llm.RetryPolicy{
		MaxAttempts: c.MaxAttempts,
		Backoff:     c.RetryBackoff,
		Timeout:     c.Timeout,
	}
	cfg.RequestsPerSecond = c.UpstreamRPS
	cfg.Burst = c.UpstreamBurst
	return cfg
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("config error: %s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}

func setInt64(dst *int64, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("config error: %s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("config error: %s must be a number: %w", key, err)
	}
	*dst = f
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("config error: %s must be a duration: %w", key, err)
	}
	*dst = d
	return nil
}
