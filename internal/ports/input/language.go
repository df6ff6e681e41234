package input

import (
	"context"

	"tradutor/internal/ports/output"
)

// LanguageUseCase lets a participant manage their own language preference.
type LanguageUseCase interface {
	// SetLanguage validates tag and stores it as r's preference, returning
	// the canonical form.
	SetLanguage(ctx context.Context, r output.Recipient, tag string) (string, error)
	// ClearLanguage removes r's stored preference.
	ClearLanguage(ctx context.Context, r output.Recipient) error
}
