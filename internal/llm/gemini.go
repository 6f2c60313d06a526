package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client   *genai.Client
	config   *Config
	throttle throttle
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:   client,
		config:   config,
		throttle: newThrottle(config.RequestsPerSecond, config.Burst),
	}, nil
}

// Complete implements Client
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(c.config.Temperature)

	var text string
	err := c.config.Retry.Do(ctx, func(ctx context.Context, _ int) error {
		if err := c.throttle.wait(ctx, ProviderGemini); err != nil {
			return err
		}

		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return classifyGeminiError(ctx, err)
		}

		text, err = extractTextFromResponse(resp)
		if err != nil {
			return envelopeError(ProviderGemini, err.Error(), nil)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// Provider implements Client
func (c *GeminiClient) Provider() Provider {
	return ProviderGemini
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func classifyGeminiError(ctx context.Context, err error) error {
	if ue, ok := classifyContextError(ctx, ProviderGemini, err); ok {
		return ue
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return statusError(ProviderGemini, apiErr.Code, err)
	}

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return envelopeError(ProviderGemini, "content blocked", err)
	}
	return transportError(ProviderGemini, err)
}

// extractTextFromResponse concatenates the text parts of the first candidate
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
