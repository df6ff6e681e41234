package input

import (
	"context"

	"tradutor/internal/ports/output"
)

// ConnectUseCase handles a participant joining: username refresh, optional
// IP-based language auto-detection and the join warning message.
type ConnectUseCase interface {
	OnConnect(ctx context.Context, r output.Recipient, ip string)
}
