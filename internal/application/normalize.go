package application

import (
	"strings"

	"tradutor/internal/domain/entities"
	"tradutor/pkg/langtag"
)

// NormalizeResponse maps raw provider output back onto every original
// target. items may be nil (provider unavailable or exhausted), in which
// case every target resolves to the original text — the echo response.
//
// Resolution order per target: same language as the original message gets
// the original text verbatim, then exact name match, then shared-language
// match, then the original text. The order matters: it keeps delivery
// complete even when the provider returns partial or renamed output.
func NormalizeResponse(items []entities.TranslationItem, targets []entities.Target, dedupe DedupeResult, req *entities.ChatRequest) *entities.TranslationResponse {
	byName := make(map[string]string)
	byLanguage := make(map[string]string)
	textsInOrder := make([]string, 0, len(items))

	for _, item := range items {
		textsInOrder = append(textsInOrder, item.Text)
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		byName[key] = item.Text
		if lang, ok := dedupe.LanguageByName[key]; ok && lang != "" {
			byLanguage[lang] = item.Text
		}
	}

	// The provider may rename targets but keep array order; map leftover
	// languages positionally against the deduped list.
	for i, rep := range dedupe.Targets {
		if i >= len(textsInOrder) {
			break
		}
		lang := langtag.Normalize(rep.Language)
		if lang == "" {
			continue
		}
		if _, ok := byLanguage[lang]; !ok {
			byLanguage[lang] = textsInOrder[i]
		}
	}

	baseLanguage := langtag.Normalize(req.OriginalLanguage)
	out := make([]entities.TranslationItem, 0, len(targets))
	for _, target := range targets {
		if target.Name == "" {
			continue
		}
		lang := langtag.Normalize(target.Language)
		var text string
		if lang == baseLanguage {
			// Never let the provider paraphrase same-language text.
			text = req.OriginalText
		} else {
			text = byName[strings.ToLower(target.Name)]
			if strings.TrimSpace(text) == "" {
				text = byLanguage[lang]
			}
			if strings.TrimSpace(text) == "" {
				text = req.OriginalText
			}
		}
		out = append(out, entities.TranslationItem{Name: target.Name, Text: text})
	}

	return &entities.TranslationResponse{
		SenderName: req.SenderName,
		SenderID:   req.SenderID,
		Items:      out,
	}
}

func emptyResponse(req *entities.ChatRequest) *entities.TranslationResponse {
	return &entities.TranslationResponse{
		SenderName: req.SenderName,
		SenderID:   req.SenderID,
	}
}
