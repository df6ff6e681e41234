package output

import "tradutor/internal/domain/entities"

// ChatRelay is the persistent transport to the external translation relay.
// SendChat never blocks: frames are queued while the connection is down or
// unauthenticated and flushed once the handshake completes.
type ChatRelay interface {
	SendChat(req *entities.ChatRequest)
	Configured() bool
}
