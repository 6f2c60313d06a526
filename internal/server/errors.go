package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/voca-career/internal/profile"
)

// ErrBadRequest indicates a request body that could not be decoded
type ErrBadRequest struct {
	Message string
	Cause   error
}

func (e *ErrBadRequest) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Caller faults are 400; provider, extraction and internal failures are 500.
func HTTPStatus(err error) int {
	var badRequest *ErrBadRequest
	var malformed *profile.MalformedProfileError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &badRequest), errors.As(err, &malformed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
