package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// boundary marks a sentence end: terminal punctuation followed by
// whitespace. The punctuation stays attached to the preceding sentence.
var boundary = regexp.MustCompile(`[.?!]\s+`)

// Split cuts raw assistant text into displayable sentences, in order.
// Candidates that trim down to nothing, a bare "." or "...", or a
// single rune are dropped. Malformed input yields a shorter or empty
// result, never an error.
func Split(text string) []string {
	var out []string
	start := 0
	for _, loc := range boundary.FindAllStringIndex(text, -1) {
		candidate := text[start : loc[0]+1]
		start = loc[1]
		if s, ok := clean(candidate); ok {
			out = append(out, s)
		}
	}
	if s, ok := clean(text[start:]); ok {
		out = append(out, s)
	}
	return out
}

func clean(candidate string) (string, bool) {
	s := strings.TrimSpace(candidate)
	if s == "" || s == "." || s == "..." {
		return "", false
	}
	if utf8.RuneCountInString(s) <= 1 {
		return "", false
	}
	return s, true
}
