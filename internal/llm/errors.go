package llm

import (
	"fmt"
	"net/http"
)

// UpstreamError represents a failed call to the completion provider: a transport
// failure, a timeout, a non-2xx status, or a malformed response envelope.
type UpstreamError struct {
	Provider   Provider
	StatusCode int // 0 when no response was received
	Message    string
	Timeout    bool
	Cause      error

	retryable bool
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("upstream %s error: %s: %v", e.Provider, msg, e.Cause)
	}
	return fmt.Sprintf("upstream %s error: %s", e.Provider, msg)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// Transient reports whether retrying the same request may succeed.
func (e *UpstreamError) Transient() bool {
	return e.retryable
}

func transportError(p Provider, cause error) *UpstreamError {
	return &UpstreamError{Provider: p, Message: "request failed", Cause: cause, retryable: true}
}

func timeoutError(p Provider, cause error) *UpstreamError {
	return &UpstreamError{Provider: p, Message: "request timed out", Timeout: true, Cause: cause, retryable: true}
}

func statusError(p Provider, status int, cause error) *UpstreamError {
	text := http.StatusText(status)
	if text == "" {
		text = "unexpected status"
	}
	return &UpstreamError{
		Provider:   p,
		StatusCode: status,
		Message:    "provider returned " + text,
		Cause:      cause,
		retryable:  status == http.StatusTooManyRequests || status >= 500,
	}
}

func envelopeError(p Provider, message string, cause error) *UpstreamError {
	return &UpstreamError{Provider: p, Message: "malformed response: " + message, Cause: cause}
}
