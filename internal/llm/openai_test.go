package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatCompletionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   DefaultModel,
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	})
	return string(body)
}

func newTestOpenAIClient(t *testing.T, url string, retry RetryPolicy) *OpenAIClient {
	t.Helper()

	config := DefaultConfig()
	config.BaseURL = url
	config.APIKey = "test-key"
	config.Retry = retry

	client, err := NewOpenAIClient(config)
	require.NoError(t, err)
	return client
}

func TestOpenAIClient_Complete(t *testing.T) {
	var captured struct {
		path   string
		auth   string
		method string
		body   map[string]any
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		captured.method = r.Method
		_ = json.NewDecoder(r.Body).Decode(&captured.body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody(`{"advice": "ok"}`)))
	}))
	defer srv.Close()

	client := newTestOpenAIClient(t, srv.URL+"/v1", RetryPolicy{MaxAttempts: 1})
	text, err := client.Complete(context.Background(), "hello prompt")
	require.NoError(t, err)

	assert.Equal(t, `{"advice": "ok"}`, text)
	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/v1/chat/completions", captured.path)
	assert.Equal(t, "Bearer test-key", captured.auth)
	assert.Equal(t, DefaultModel, captured.body["model"])
	assert.InDelta(t, 0.7, captured.body["temperature"], 1e-6)

	messages, ok := captured.body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "hello prompt", msg["content"])
}

func TestOpenAIClient_ReturnsTextVerbatim(t *testing.T) {
	fenced := "```json\n{\"a\": 1}\n```"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody(fenced)))
	}))
	defer srv.Close()

	client := newTestOpenAIClient(t, srv.URL, RetryPolicy{MaxAttempts: 1})
	text, err := client.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, fenced, text)
}

func TestOpenAIClient_RetriesServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error": {"message": "overloaded", "type": "server_error"}}`))
			return
		}
		_, _ = w.Write([]byte(chatCompletionBody("second time lucky")))
	}))
	defer srv.Close()

	client := newTestOpenAIClient(t, srv.URL, RetryPolicy{MaxAttempts: 2, Backoff: time.Millisecond, Timeout: time.Second})
	text, err := client.Complete(context.Background(), "p")
	require.NoError(t, err)

	assert.Equal(t, "second time lucky", text)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestOpenAIClient_DoesNotRetryClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := newTestOpenAIClient(t, srv.URL, RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond, Timeout: time.Second})
	_, err := client.Complete(context.Background(), "p")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.False(t, upstream.Transient())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "x", "object": "chat.completion", "choices": []}`))
	}))
	defer srv.Close()

	client := newTestOpenAIClient(t, srv.URL, RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond, Timeout: time.Second})
	_, err := client.Complete(context.Background(), "p")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Contains(t, upstream.Error(), "no choices")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "a successful response must not be retried")
}

func TestOpenAIClient_EmptyContent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody("")))
	}))
	defer srv.Close()

	client := newTestOpenAIClient(t, srv.URL, RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond, Timeout: time.Second})
	_, err := client.Complete(context.Background(), "p")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Contains(t, upstream.Error(), "no content")
	assert.False(t, IsTransient(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestOpenAIClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := newTestOpenAIClient(t, url, RetryPolicy{MaxAttempts: 1})
	_, err := client.Complete(context.Background(), "p")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Zero(t, upstream.StatusCode)
	assert.True(t, upstream.Transient())
}

func TestOpenAIClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := newTestOpenAIClient(t, srv.URL, RetryPolicy{MaxAttempts: 1, Timeout: 50 * time.Millisecond})
	_, err := client.Complete(context.Background(), "p")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.True(t, upstream.Timeout)
}

func TestOpenAIClient_Throttle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody("ok")))
	}))
	defer srv.Close()

	config := DefaultConfig()
	config.BaseURL = srv.URL
	config.APIKey = "test-key"
	config.Retry = RetryPolicy{MaxAttempts: 1}
	config.RequestsPerSecond = 20
	config.Burst = 1

	client, err := NewOpenAIClient(config)
	require.NoError(t, err)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.Complete(context.Background(), "p")
		require.NoError(t, err)
	}
	// burst of 1 at 20/s: the 2nd and 3rd calls each wait ~50ms
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestNewOpenAIClient_RequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIClient(DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestNewClient_SelectsProvider(t *testing.T) {
	client, err := NewClient(context.Background(), DefaultConfig().WithAPIKey("k"))
	require.NoError(t, err)
	defer func() { _ = client.Close() }()
	assert.Equal(t, ProviderOpenAI, client.Provider())

	config := DefaultConfig().WithAPIKey("k")
	config.Provider = "mystery"
	_, err = NewClient(context.Background(), config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}
