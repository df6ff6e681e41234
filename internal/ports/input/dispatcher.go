package input

import "tradutor/internal/domain/entities"

// Dispatcher correlates a translation result back to its originating chat
// event and delivers it. Calling Dispatch twice with the same message id
// delivers at most once.
type Dispatcher interface {
	Dispatch(messageID string, resp *entities.TranslationResponse)
}
