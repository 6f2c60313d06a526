package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Client for OpenAI-compatible chat-completion endpoints
type OpenAIClient struct {
	client   *openai.Client
	config   *Config
	throttle throttle
}

// NewOpenAIClient creates a client that posts to {BaseURL}/chat/completions with a bearer credential
func NewOpenAIClient(config *Config) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	oc := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}
	if config.HTTPClient != nil {
		oc.HTTPClient = config.HTTPClient
	}

	return &OpenAIClient{
		client:   openai.NewClientWithConfig(oc),
		config:   config,
		throttle: newThrottle(config.RequestsPerSecond, config.Burst),
	}, nil
}

// Complete implements Client
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.config.Temperature,
	}

	var text string
	err := c.config.Retry.Do(ctx, func(ctx context.Context, _ int) error {
		if err := c.throttle.wait(ctx, ProviderOpenAI); err != nil {
			return err
		}

		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return classifyOpenAIError(ctx, err)
		}
		if len(resp.Choices) == 0 {
			return envelopeError(ProviderOpenAI, "no choices in response", nil)
		}
		if resp.Choices[0].Message.Content == "" {
			return envelopeError(ProviderOpenAI, "no content in response", nil)
		}

		text = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// Provider implements Client
func (c *OpenAIClient) Provider() Provider {
	return ProviderOpenAI
}

// Close implements Client; the HTTP transport needs no cleanup.
func (c *OpenAIClient) Close() error {
	return nil
}

func classifyOpenAIError(ctx context.Context, err error) error {
	if ue, ok := classifyContextError(ctx, ProviderOpenAI, err); ok {
		return ue
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(ProviderOpenAI, apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(ProviderOpenAI, reqErr.HTTPStatusCode, err)
	}

	// a 2xx body that is not a chat-completion envelope
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return envelopeError(ProviderOpenAI, "undecodable body", err)
	}

	return transportError(ProviderOpenAI, err)
}
