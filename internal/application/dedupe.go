package application

import (
	"strings"

	"tradutor/internal/domain/entities"
	"tradutor/pkg/langtag"
)

// DedupeResult pairs the representative targets (one per distinct normalized
// language, first seen wins) with the reverse index used to re-expand a
// per-language translation onto every recipient sharing that language.
type DedupeResult struct {
	Targets []entities.Target
	// LanguageByName maps every target's lowercased name to its normalized
	// language, representatives and non-representatives alike.
	LanguageByName map[string]string
}

// SanitizeTargets drops entries without a usable name and trims the rest.
// Order is preserved.
func SanitizeTargets(src []entities.Target) []entities.Target {
	if len(src) == 0 {
		return nil
	}
	out := make([]entities.Target, 0, len(src))
	for _, t := range src {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			continue
		}
		out = append(out, entities.Target{
			Name:     name,
			Language: strings.TrimSpace(t.Language),
		})
	}
	return out
}

// DedupeByLanguage walks the sanitized target list once and keeps the first
// target seen for each normalized language. The empty tag counts as its own
// category. Output size never exceeds input size and is deterministic for a
// given input order; every input name lands in LanguageByName exactly once.
func DedupeByLanguage(targets []entities.Target) DedupeResult {
	result := DedupeResult{
		LanguageByName: make(map[string]string),
	}
	seen := make(map[string]bool)
	for _, t := range targets {
		if t.Name == "" {
			continue
		}
		key := langtag.Normalize(t.Language)
		result.LanguageByName[strings.ToLower(t.Name)] = key
		if seen[key] {
			continue
		}
		seen[key] = true
		result.Targets = append(result.Targets, t)
	}
	return result
}
