// Package llm provides the completion client that turns a prompt into raw model text.
// It supports an OpenAI-compatible chat-completion gateway and Google Gemini behind one interface.
package llm

import (
	"net/http"
	"time"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is any OpenAI-compatible chat-completion endpoint (the default gateway)
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini API
	ProviderGemini Provider = "gemini"
)

// Defaults for the chat-completion gateway
const (
	DefaultBaseURL     = "https://ai.gateway.lovable.dev/v1"
	DefaultModel       = "google/gemini-3-flash-preview"
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultTemperature = float32(0.7)
)

// Config holds everything a Client needs. It is resolved once at startup and read-only afterwards.
type Config struct {
	Provider    Provider
	BaseURL     string // ignored by ProviderGemini
	Model       string
	Temperature float32
	APIKey      string
	Retry       RetryPolicy

	// RequestsPerSecond throttles outbound calls process-wide; 0 disables throttling.
	RequestsPerSecond float64
	Burst             int

	// HTTPClient overrides the transport for ProviderOpenAI (tests point it at httptest servers).
	HTTPClient *http.Client
}

// DefaultConfig returns the default configuration (the OpenAI-compatible gateway)
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderOpenAI,
		BaseURL:     DefaultBaseURL,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		Retry:       DefaultRetryPolicy(),
		Burst:       1,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini
	cfg.BaseURL = ""
	cfg.Model = DefaultGeminiModel
	return cfg
}

// WithModel returns a copy of the Config using model
func (c *Config) WithModel(model string) *Config {
	cp := *c
	cp.Model = model
	return &cp
}

// WithAPIKey returns a copy of the Config carrying apiKey
func (c *Config) WithAPIKey(apiKey string) *Config {
	cp := *c
	cp.APIKey = apiKey
	return &cp
}

// perAttemptTimeout is the timeout applied when the policy leaves it unset
const perAttemptTimeout = 30 * time.Second
