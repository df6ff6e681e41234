// Package langtag holds the language-tag helpers shared by the translation
// pipeline: normalization for dedup/equality, validation of user-supplied
// tags and the country→language table used by IP auto-detection.
package langtag

import (
	"strings"

	"golang.org/x/text/language"
)

// Normalize trims and lowercases a language tag. This is the only equality
// key the pipeline uses; an empty result stands for "unknown language" and
// forms its own category.
func Normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Same reports whether two free-form tags name the same language category.
func Same(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Canonical validates a user-supplied tag and returns its canonical BCP 47
// form. The special tag "auto" is accepted as-is.
func Canonical(tag string) (string, bool) {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return "", false
	}
	if strings.EqualFold(trimmed, "auto") {
		return "auto", true
	}
	parsed, err := language.Parse(trimmed)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}
