package llm

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"
)

// Client is an abstraction over completion providers. Implementations are safe for concurrent use.
type Client interface {
	// Complete sends prompt as a single user message and returns the first completion's text verbatim
	Complete(ctx context.Context, prompt string) (string, error)
	// Provider identifies the backing provider
	Provider() Provider
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a client for config.Provider. An unknown provider is an error.
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIClient(config)
	case ProviderGemini:
		return NewGeminiClient(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// throttle wraps an optional process-wide rate limiter for outbound calls.
type throttle struct {
	limiter *rate.Limiter
}

func newThrottle(rps float64, burst int) throttle {
	if rps <= 0 {
		return throttle{}
	}
	if burst < 1 {
		burst = 1
	}
	return throttle{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (t throttle) wait(ctx context.Context, p Provider) error {
	if t.limiter == nil {
		return nil
	}
	if err := t.limiter.Wait(ctx); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return timeoutError(p, err)
		}
		return &UpstreamError{Provider: p, Message: "throttled request abandoned", Cause: err}
	}
	return nil
}

// classifyContextError maps a failed call whose context expired to a timeout.
func classifyContextError(ctx context.Context, p Provider, err error) (*UpstreamError, bool) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return timeoutError(p, err), true
	}
	if errors.Is(err, context.Canceled) {
		return &UpstreamError{Provider: p, Message: "request canceled", Cause: err}, true
	}
	return nil, false
}
