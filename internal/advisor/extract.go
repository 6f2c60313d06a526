package advisor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/voca-career/internal/llm"
	"github.com/jonathan/voca-career/internal/schemas"
	"github.com/jonathan/voca-career/internal/types"
)

// Extract parses raw model text into a CareerRecommendation.
// Code fences are stripped wherever they appear; the remaining text must be a
// JSON document that satisfies the career recommendation schema.
func Extract(raw string) (*types.CareerRecommendation, error) {
	cleaned := llm.StripCodeFences(raw)

	var document any
	if err := json.Unmarshal([]byte(cleaned), &document); err != nil {
		return nil, &UnparsableResponseError{Excerpt: excerpt(cleaned), Cause: err}
	}

	validator, err := schemas.CareerRecommendation()
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendation schema: %w", err)
	}
	if err := validator.Validate([]byte(cleaned)); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &SchemaMismatchError{Fields: validationErr.Errors, Cause: err}
		}
		return nil, &SchemaMismatchError{Cause: err}
	}

	var rec types.CareerRecommendation
	dec := json.NewDecoder(strings.NewReader(cleaned))
	if err := dec.Decode(&rec); err != nil {
		return nil, &SchemaMismatchError{Cause: err}
	}
	rec.EnsureLists()
	return &rec, nil
}
