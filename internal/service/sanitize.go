package service

import (
	"regexp"
	"strings"
)

// Models routinely wrap the requested JSON in markdown code fences despite
// being told not to. The sanitizer strips the decoration without looking at
// the content itself.
var (
	jsonFencePattern = regexp.MustCompile("```json\n?")
	fencePattern     = regexp.MustCompile("```\n?")
)

// SanitizeResponse removes code-fence markers and surrounding whitespace from
// a raw model response. Idempotent: already-clean text passes through
// unchanged.
func SanitizeResponse(raw string) string {
	text := jsonFencePattern.ReplaceAllString(raw, "")
	text = fencePattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
