package openai

import (
	"errors"
	"strings"
	"testing"

	"tradutor/internal/domain"
)

func TestParseTranslationItemsDirectObject(t *testing.T) {
	body := []byte(`{"traducao":[{"jogador":"Bob","texto_traduzido":"hello"}]}`)

	items, err := parseTranslationItems(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Bob" || items[0].Text != "hello" {
		t.Fatalf("items = %#v", items)
	}
}

func TestParseTranslationItemsOutputTextEnvelope(t *testing.T) {
	body := []byte(`{"output_text":"{\"traducao\":[{\"jogador\":\"Bob\",\"texto_traduzido\":\"hello\"}]}"}`)

	items, err := parseTranslationItems(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Text != "hello" {
		t.Fatalf("items = %#v", items)
	}
}

func TestParseTranslationItemsContentChunks(t *testing.T) {
	body := []byte(`{
		"output": [
			{"content": [
				{"type": "output_text", "text": "{\"traducao\":[{\"jogador\":\"Bob\",\"texto_traduzido\":\"hello\"}]}"}
			]}
		]
	}`)

	items, err := parseTranslationItems(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Bob" {
		t.Fatalf("items = %#v", items)
	}
}

func TestParseTranslationItemsProseWrappedJSON(t *testing.T) {
	body := []byte(`{"output_text":"Here you go: {\"traducao\":[{\"jogador\":\"Bob\",\"texto_traduzido\":\"hello\"}]} enjoy"}`)

	items, err := parseTranslationItems(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Text != "hello" {
		t.Fatalf("items = %#v", items)
	}
}

func TestParseTranslationItemsAlternateKeySpellings(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "accented array key", body: `{"tradução":[{"player":"Bob","translated_text":"hello"}]}`},
		{name: "english keys", body: `{"translations":[{"name":"Bob","text":"hello"}]}`},
		{name: "camelCase text", body: `{"translation":[{"jogador":"Bob","textoTraduzido":"hello"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := parseTranslationItems([]byte(tc.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(items) != 1 || items[0].Name != "Bob" || items[0].Text != "hello" {
				t.Fatalf("items = %#v", items)
			}
		})
	}
}

func TestParseTranslationItemsNestedMetadata(t *testing.T) {
	body := []byte(`{"meta":{"result":{"payload":{"traducao":[{"jogador":"Bob","texto_traduzido":"hello"}]}}}}`)

	items, err := parseTranslationItems(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %#v", items)
	}
}

func TestParseTranslationItemsDepthBound(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString(`{"wrap":`)
	}
	b.WriteString(`{"traducao":[{"jogador":"Bob","texto_traduzido":"hello"}]}`)
	for i := 0; i < 20; i++ {
		b.WriteString(`}`)
	}

	_, err := parseTranslationItems([]byte(b.String()))
	if !errors.Is(err, domain.ErrProviderInvalidShape) {
		t.Fatalf("expected shape error past the depth bound, got %v", err)
	}
}

func TestParseTranslationItemsMissingNameTolerated(t *testing.T) {
	body := []byte(`{"traducao":[{"texto_traduzido":"hello"}]}`)

	items, err := parseTranslationItems(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "" || items[0].Text != "hello" {
		t.Fatalf("items = %#v", items)
	}
}

func TestParseTranslationItemsMissingTextInvalidates(t *testing.T) {
	body := []byte(`{"traducao":[{"jogador":"Bob","texto_traduzido":"hello"},{"jogador":"Carol"}]}`)

	if _, err := parseTranslationItems(body); !errors.Is(err, domain.ErrProviderInvalidShape) {
		t.Fatalf("expected shape error, got %v", err)
	}
}

func TestParseTranslationItemsGarbage(t *testing.T) {
	for _, body := range []string{"", "not json", `{"unrelated":true}`, `[1,2,3]`} {
		if _, err := parseTranslationItems([]byte(body)); !errors.Is(err, domain.ErrProviderInvalidShape) {
			t.Fatalf("body %q: expected shape error, got %v", body, err)
		}
	}
}
