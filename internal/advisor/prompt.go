// Package advisor turns an intake profile into a CareerRecommendation by prompting a completion provider.
package advisor

import (
	"github.com/jonathan/voca-career/internal/prompts"
	"github.com/jonathan/voca-career/internal/types"
)

// BuildPrompt wraps a context line in the career recommendation instructions.
// The JSON structure it asks for is the one Extract validates.
func BuildPrompt(context types.PromptContext) string {
	template := prompts.MustGet(prompts.CareerFile, prompts.CareerRecommendationKey)
	return prompts.Format(template, map[string]string{
		"Context": string(context),
	})
}
