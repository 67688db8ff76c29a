package recipe

import (
	"regexp"
	"strings"
)

var codeFencePattern = regexp.MustCompile("```(?:json)?")

// StripCodeFences removes leading/trailing whitespace and any markdown code
// fence markers (with an optional "json" tag) the model may have wrapped the
// payload in. This is the only textual pre-processing applied before parsing.
func StripCodeFences(raw string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(strings.TrimSpace(raw), ""))
}
