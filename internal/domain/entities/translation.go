package entities

// Target is one recipient of a chat message as it travels on the wire:
// a display name plus the language the recipient wants. The language tag is
// free-form and compared case-insensitively; an empty tag means the
// preference is unknown.
type Target struct {
	Name     string `json:"jogador"`
	Language string `json:"idioma"`
}

// ChatRequest describes one outgoing chat event to fan out. It is built once
// per event and never mutated afterwards. Targets keeps input order and
// includes the sender (same-language delivery is resolved downstream).
type ChatRequest struct {
	MessageID        string
	OriginalText     string
	OriginalLanguage string
	SenderID         string
	SenderName       string
	Targets          []Target
}

// TranslationItem is one translated line addressed to a named target.
type TranslationItem struct {
	Name string `json:"jogador"`
	Text string `json:"texto_traduzido"`
}

// TranslationResponse is the final per-recipient result for one message,
// produced by the invoker directly or parsed from an inbound relay frame.
type TranslationResponse struct {
	SenderName string            `json:"jogador"`
	SenderID   string            `json:"jogador_uuid"`
	Items      []TranslationItem `json:"traducao"`
}
