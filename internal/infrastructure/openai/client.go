// Package openai implements the direct translation path against the OpenAI
// responses endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tradutor/internal/domain"
	"tradutor/internal/domain/entities"
	"tradutor/internal/ports/output"
)

const (
	defaultEndpoint = "https://api.openai.com/v1/responses"
	defaultModel    = "gpt-5-nano"
	maxLoggedBody   = 1000
)

var _ output.TranslationProvider = (*Client)(nil)

// Client calls the provider once per Translate; the retry policy lives in
// the invoker.
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// New creates a provider client. An empty apiKey yields an unconfigured
// client that the invoker will bypass.
func New(apiKey, model string) *Client {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:   strings.TrimSpace(apiKey),
		model:    strings.TrimSpace(model),
		endpoint: defaultEndpoint,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Translate issues one request and parses the translation array out of the
// response envelope. Any transport failure or unusable shape comes back as
// an error; the caller owns retries and fallback.
func (c *Client) Translate(ctx context.Context, req output.ProviderRequest) ([]entities.TranslationItem, error) {
	body, err := json.Marshal(c.buildRequestBody(req))
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d body %s", domain.ErrProviderStatus, resp.StatusCode, truncate(string(raw), maxLoggedBody))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, domain.ErrProviderEmptyBody
	}

	items, err := parseTranslationItems(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, truncate(string(raw), maxLoggedBody))
	}
	return items, nil
}

type requestBody struct {
	Model        string      `json:"model"`
	Instructions string      `json:"instructions"`
	Input        string      `json:"input"`
	Text         requestText `json:"text"`
}

type requestText struct {
	Format responseFormat `json:"format"`
}

type responseFormat struct {
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Schema      map[string]any `json:"schema"`
	Strict      bool           `json:"strict"`
}

func (c *Client) buildRequestBody(req output.ProviderRequest) requestBody {
	return requestBody{
		Model:        c.model,
		Instructions: "Responda somente com JSON valido.",
		Input:        buildPrompt(req),
		Text: requestText{
			Format: responseFormat{
				Type:        "json_schema",
				Name:        "chat_translation",
				Description: "Lista de traducoes por jogador",
				Schema:      translationSchema(),
				Strict:      true,
			},
		},
	}
}

// buildPrompt embeds the original text and the deduped target list (JSON) in
// the provider instructions. At most one target per language reaches this
// point.
func buildPrompt(req output.ProviderRequest) string {
	targetsJSON, err := json.MarshalIndent(req.Targets, "", "  ")
	if err != nil {
		targetsJSON = []byte("[]")
	}
	var b strings.Builder
	b.WriteString("Voce e um tradutor de chat que traduz o chat de um servidor de jogo. ")
	b.WriteString("Traduza a mensagem recebida para os idiomas selecionados.\n\n")
	b.WriteString("Realize a traducao da melhor forma possivel adaptando girias e expressoes unicas para uma compativel para o idioma destino quando necessario.\n\n")
	b.WriteString("A lista de jogadores abaixo contem no maximo 1 jogador por idioma. Traduza para o idioma indicado em cada entrada.\n\n")
	b.WriteString("O texto para jogadores falantes do mesmo idioma deve ser enviado EXATAMENTE igual ao original sem nenhuma alteracao.\n\n")
	b.WriteString("Retorne SOMENTE um JSON valido no formato:\n")
	b.WriteString(`{"traducao":[{"jogador":"Nome","texto_traduzido":"Mensagem"}]}`)
	b.WriteString("\n\n---\n\n**Texto Original:**\n\"")
	b.WriteString(escapeForPrompt(req.OriginalText))
	b.WriteString("\"\n\n**Jogadores Online:**\n")
	b.Write(targetsJSON)
	return b.String()
}

func escapeForPrompt(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

func translationSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"traducao": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"jogador":         map[string]any{"type": "string"},
						"texto_traduzido": map[string]any{"type": "string"},
					},
					"required":             []string{"jogador", "texto_traduzido"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"traducao"},
		"additionalProperties": false,
	}
}

func truncate(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "...(truncated)"
}
