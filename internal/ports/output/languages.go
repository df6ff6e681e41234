package output

import "context"

// LanguagePreference is one stored per-player preference entry.
type LanguagePreference struct {
	Username string
	Language string
	IP       string
}

// LanguageRepository stores per-player language preferences keyed by the
// player's stable identity. Get returns "" (and no error) when nothing is
// stored.
type LanguageRepository interface {
	Get(ctx context.Context, id string) (string, error)
	Has(ctx context.Context, id string) (bool, error)
	Set(ctx context.Context, id string, pref LanguagePreference) error
	Clear(ctx context.Context, id string) error
	// UpdateUsername refreshes the display name on an existing entry; it is
	// a no-op for unknown ids.
	UpdateUsername(ctx context.Context, id, username string) error
}
