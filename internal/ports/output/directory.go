package output

// Recipient is a live, sendable participant handle owned by the hosting
// runtime. Deliver may fail at any time (the connection can close between
// snapshot and send); callers treat failures as per-recipient and move on.
type Recipient interface {
	ID() string
	Name() string
	// LanguageHint is the client-reported language, "" when unknown. The
	// stored preference, when present, wins over the hint.
	LanguageHint() string
	Deliver(text string) error
}

// Directory is the live-recipient lookup injected by the hosting runtime.
// Online returns a point-in-time snapshot; it never blocks.
type Directory interface {
	Online() []Recipient
}

// Formatter renders a chat line for delivery. A nil Formatter means the
// plain "name: text" rendering.
type Formatter func(senderName, text string) string
