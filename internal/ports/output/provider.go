package output

import (
	"context"

	"tradutor/internal/domain/entities"
)

// ProviderRequest is one translation attempt handed to the external
// provider. Targets is the deduped list: at most one entry per distinct
// normalized language, name and language only.
type ProviderRequest struct {
	OriginalText     string
	OriginalLanguage string
	Targets          []entities.Target
}

// TranslationProvider performs a single attempt against the external
// translation capability. Implementations validate the response shape; a
// returned error means the attempt produced nothing usable and the caller
// decides whether to retry or fall back to the original text.
type TranslationProvider interface {
	Translate(ctx context.Context, req ProviderRequest) ([]entities.TranslationItem, error)
	// Configured reports whether the provider has credentials. When false,
	// Translate must not be called.
	Configured() bool
}
