package openai

import (
	"encoding/json"
	"strings"

	"tradutor/internal/domain"
	"tradutor/internal/domain/entities"
)

// maxSearchDepth bounds the recursive walk through provider envelopes. The
// payload is never nested deeper than a handful of levels in practice; the
// bound keeps pathological input from recursing forever.
const maxSearchDepth = 10

// translationArrayKeys are the accepted spellings of the translation list.
var translationArrayKeys = []string{"traducao", "tradução", "translations", "translation"}

// targetNameKeys and translatedTextKeys are the accepted spellings inside
// each item.
var (
	targetNameKeys     = []string{"jogador", "player", "name"}
	translatedTextKeys = []string{"texto_traduzido", "textoTraduzido", "translated_text", "text"}
)

// parseTranslationItems digs the translation array out of a provider
// response. The constrained JSON may arrive directly, inside the
// output_text/output[].content[] envelope, or wrapped in arbitrary provider
// metadata; the search tolerates all three. An item without a recognizable
// translated-text field invalidates the whole response.
func parseTranslationItems(body []byte) ([]entities.TranslationItem, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, domain.ErrProviderInvalidShape
	}

	if text := extractOutputText(root); strings.TrimSpace(text) != "" {
		if obj := parseObjectSafe(text); obj != nil {
			if found := findTranslationObject(obj, 0); found != nil {
				return itemsFromObject(found)
			}
		}
	}
	if found := findTranslationObject(root, 0); found != nil {
		return itemsFromObject(found)
	}
	return nil, domain.ErrProviderInvalidShape
}

// findTranslationObject walks the tree for the first object carrying a
// translation array under any accepted key.
func findTranslationObject(node any, depth int) map[string]any {
	if depth > maxSearchDepth {
		return nil
	}
	switch v := node.(type) {
	case map[string]any:
		if translationArray(v) != nil {
			return v
		}
		for _, child := range v {
			if found := findTranslationObject(child, depth+1); found != nil {
				return found
			}
		}
	case []any:
		for _, child := range v {
			if found := findTranslationObject(child, depth+1); found != nil {
				return found
			}
		}
	}
	return nil
}

func translationArray(obj map[string]any) []any {
	for _, key := range translationArrayKeys {
		if arr, ok := obj[key].([]any); ok {
			return arr
		}
	}
	return nil
}

func itemsFromObject(obj map[string]any) ([]entities.TranslationItem, error) {
	arr := translationArray(obj)
	if arr == nil {
		return nil, domain.ErrProviderInvalidShape
	}
	items := make([]entities.TranslationItem, 0, len(arr))
	for _, raw := range arr {
		item, ok := raw.(map[string]any)
		if !ok {
			return nil, domain.ErrProviderInvalidShape
		}
		text, ok := stringByKeys(item, translatedTextKeys)
		if !ok {
			return nil, domain.ErrProviderInvalidShape
		}
		name, _ := stringByKeys(item, targetNameKeys)
		items = append(items, entities.TranslationItem{Name: name, Text: text})
	}
	return items, nil
}

func stringByKeys(obj map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok {
			return s, true
		}
	}
	return "", false
}

// extractOutputText pulls the model's text out of the responses-API
// envelope: a top-level output_text, or the concatenated text chunks of
// output[].content[].
func extractOutputText(root any) string {
	obj, ok := root.(map[string]any)
	if !ok {
		return ""
	}
	if s, ok := obj["output_text"].(string); ok {
		return s
	}

	output, ok := obj["output"].([]any)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, rawMsg := range output {
		msg, ok := rawMsg.(map[string]any)
		if !ok {
			continue
		}
		content, ok := msg["content"].([]any)
		if !ok {
			continue
		}
		for _, rawChunk := range content {
			text := readTextChunk(rawChunk)
			if strings.TrimSpace(text) == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(text)
		}
	}
	return b.String()
}

func readTextChunk(chunk any) string {
	obj, ok := chunk.(map[string]any)
	if !ok {
		return ""
	}
	if s, ok := obj["text"].(string); ok {
		return s
	}
	if s, ok := obj["output_text"].(string); ok {
		return s
	}
	if s, ok := obj["value"].(string); ok {
		return s
	}
	if nested, ok := obj["text"].(map[string]any); ok {
		if s, ok := nested["value"].(string); ok {
			return s
		}
	}
	return ""
}

// parseObjectSafe parses text as a JSON object, falling back to the first
// "{...}" slice when the model wrapped the JSON in prose.
func parseObjectSafe(text string) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		return obj
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		obj = nil
		if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err == nil {
			return obj
		}
	}
	return nil
}
