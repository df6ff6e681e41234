package output

// Messages exposes a minimal i18n contract for user-facing service messages
// (join warnings, auto-detection notices). Implementations provide message
// lookup + templating for a given locale.
type Messages interface {
	// T renders the message identified by key for the given locale.
	// data is an optional map used for template placeholders (may be nil).
	T(locale, key string, data map[string]any) string
}
