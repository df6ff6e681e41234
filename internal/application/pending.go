package application

import (
	"sync"
	"time"

	"tradutor/internal/ports/output"
)

// minPendingTTL is the floor applied to the configured TTL.
const minPendingTTL = 5 * time.Second

// PendingChat is the send context kept while a translation is in flight:
// enough to resolve the sender and render results when the response comes
// back, nothing more.
type PendingChat struct {
	SenderID   string
	SenderName string
	Formatter  output.Formatter
	CreatedAt  time.Time
}

// PendingStore is the correlation table from generated message ids to their
// send context. Entries expire on their own after the TTL; Remove and the
// eviction timer race safely and whichever runs first wins. No operation
// blocks the caller.
type PendingStore struct {
	entries sync.Map // message id -> *PendingChat
	ttl     time.Duration
}

// NewPendingStore creates a store with the given TTL, floored at 5s.
func NewPendingStore(ttl time.Duration) *PendingStore {
	if ttl < minPendingTTL {
		ttl = minPendingTTL
	}
	return &PendingStore{ttl: ttl}
}

// Put inserts the context and schedules its one-shot eviction. The eviction
// only removes the exact entry it was armed for, so an id reused after a
// normal removal is not clobbered by a stale timer.
func (s *PendingStore) Put(messageID string, chat *PendingChat) {
	if messageID == "" || chat == nil {
		return
	}
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = time.Now()
	}
	s.entries.Store(messageID, chat)
	time.AfterFunc(s.ttl, func() {
		s.entries.CompareAndDelete(messageID, chat)
	})
}

// Remove takes the context out of the table, returning nil when the entry
// expired or was already dispatched. Safe to call from any goroutine.
func (s *PendingStore) Remove(messageID string) *PendingChat {
	if messageID == "" {
		return nil
	}
	v, ok := s.entries.LoadAndDelete(messageID)
	if !ok {
		return nil
	}
	return v.(*PendingChat)
}
