package llm

import (
	"regexp"
	"strings"
)

// codeFence matches a markdown fence marker, optionally tagged json, plus the line break after it.
var codeFence = regexp.MustCompile("(?i)```(?:json)?[ \\t]*\\r?\\n?")

// StripCodeFences removes every code-fence marker from text, wherever it occurs,
// then trims surrounding whitespace. Models often fence JSON even when told not to.
// Applying it more than once yields the same result.
func StripCodeFences(text string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(text, ""))
}
