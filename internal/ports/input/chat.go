package input

import (
	"context"

	"tradutor/internal/ports/output"
)

// ChatEvent is one chat message entering the translation pipeline.
type ChatEvent struct {
	SenderID   string
	SenderName string
	Text       string
	// Language overrides the sender's stored preference when set (bridge
	// messages arrive from a language-bound channel and carry it).
	Language string
	// Formatter renders outgoing lines for this event; nil means the plain
	// "name: text" rendering.
	Formatter output.Formatter
	// FromBridge marks messages that originated on the group bridge; they
	// must not be mirrored back to bridge channels.
	FromBridge bool
}

// ChatUseCase accepts chat events for asynchronous translation fan-out.
// Submit never blocks on the external provider; results reach recipients
// through the Dispatcher.
type ChatUseCase interface {
	Submit(ctx context.Context, ev ChatEvent)
}
