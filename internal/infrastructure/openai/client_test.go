package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tradutor/internal/domain"
	"tradutor/internal/domain/entities"
	"tradutor/internal/ports/output"
)

func providerRequest() output.ProviderRequest {
	return output.ProviderRequest{
		OriginalText:     "olá",
		OriginalLanguage: "pt-BR",
		Targets: []entities.Target{
			{Name: "Bob", Language: "en"},
		},
	}
}

func testClient(serverURL string) *Client {
	c := New("test-key", "test-model")
	c.endpoint = serverURL
	return c
}

func TestTranslateSendsConstrainedRequest(t *testing.T) {
	var got requestBody
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"output_text":"{\"traducao\":[{\"jogador\":\"Bob\",\"texto_traduzido\":\"hello\"}]}"}`))
	}))
	defer server.Close()

	items, err := testClient(server.URL).Translate(context.Background(), providerRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Text != "hello" {
		t.Fatalf("items = %#v", items)
	}

	if got.Model != "test-model" {
		t.Fatalf("model = %q", got.Model)
	}
	if got.Text.Format.Type != "json_schema" || !got.Text.Format.Strict {
		t.Fatalf("format = %#v", got.Text.Format)
	}
	if !strings.Contains(got.Input, "olá") || !strings.Contains(got.Input, "Bob") {
		t.Fatalf("prompt missing message or targets: %q", got.Input)
	}
}

func TestTranslateStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Translate(context.Background(), providerRequest())
	if !errors.Is(err, domain.ErrProviderStatus) {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestTranslateEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Translate(context.Background(), providerRequest())
	if !errors.Is(err, domain.ErrProviderEmptyBody) {
		t.Fatalf("expected empty-body error, got %v", err)
	}
}

func TestTranslateInvalidShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Translate(context.Background(), providerRequest())
	if !errors.Is(err, domain.ErrProviderInvalidShape) {
		t.Fatalf("expected shape error, got %v", err)
	}
}

func TestConfigured(t *testing.T) {
	if New("", "").Configured() {
		t.Fatal("empty key must not be configured")
	}
	if !New("key", "").Configured() {
		t.Fatal("key present must be configured")
	}
	if New("  ", "").Configured() {
		t.Fatal("whitespace key must not be configured")
	}
}

func TestEscapeForPrompt(t *testing.T) {
	got := escapeForPrompt(`say "hi" \ bye`)
	want := `say \"hi\" \\ bye`
	if got != want {
		t.Fatalf("escapeForPrompt = %q, want %q", got, want)
	}
}
