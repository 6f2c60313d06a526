package advisor

import (
	"fmt"

	"github.com/jonathan/voca-career/internal/schemas"
)

// excerptLen caps how much model output an error message carries
const excerptLen = 120

// UnparsableResponseError indicates the provider text was not valid JSON after fence stripping
type UnparsableResponseError struct {
	Excerpt string
	Cause   error
}

func (e *UnparsableResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unparsable model response: %v", e.Cause)
	}
	return "unparsable model response"
}

func (e *UnparsableResponseError) Unwrap() error {
	return e.Cause
}

// SchemaMismatchError indicates valid JSON that does not match the CareerRecommendation shape
type SchemaMismatchError struct {
	Fields []schemas.FieldError
	Cause  error
}

func (e *SchemaMismatchError) Error() string {
	if len(e.Fields) > 0 {
		v := &schemas.ValidationError{Errors: e.Fields}
		return fmt.Sprintf("model response does not match schema: %s", v.Summary())
	}
	if e.Cause != nil {
		return fmt.Sprintf("model response does not match schema: %v", e.Cause)
	}
	return "model response does not match schema"
}

func (e *SchemaMismatchError) Unwrap() error {
	return e.Cause
}

func excerpt(text string) string {
	r := []rune(text)
	if len(r) <= excerptLen {
		return text
	}
	return string(r[:excerptLen]) + "..."
}
