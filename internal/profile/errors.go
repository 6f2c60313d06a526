package profile

import "fmt"

// MalformedProfileError indicates an unrecognized user type, an undecodable
// form payload, or a required field that is empty after trimming.
type MalformedProfileError struct {
	UserType string
	Field    string
	Message  string
	Cause    error
}

func (e *MalformedProfileError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("malformed profile: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("malformed profile: %s", msg)
}

func (e *MalformedProfileError) Unwrap() error {
	return e.Cause
}
