package registry

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"tradutor/internal/ports/input"
	"tradutor/internal/ports/output"
)

var (
	_ output.Directory = (*Registry)(nil)
	_ output.Recipient = (*Player)(nil)
)

// Player is one live participant registered by the host runtime.
type Player struct {
	id           string
	name         string
	languageHint string
	deliver      func(text string) error
}

func (p *Player) ID() string           { return p.id }
func (p *Player) Name() string         { return p.name }
func (p *Player) LanguageHint() string { return p.languageHint }

// Deliver pushes a chat line to the player through the host's send callback.
func (p *Player) Deliver(text string) error {
	if p.deliver == nil {
		return nil
	}
	return p.deliver(text)
}

// Registry is the embedding surface for host runtimes: they register
// players as they connect and the pipeline reads the live set from here.
type Registry struct {
	mu      sync.RWMutex
	players map[string]*Player

	connect input.ConnectUseCase // optional
}

func New() *Registry {
	return &Registry{players: make(map[string]*Player)}
}

// SetConnect wires the join flow run for every registered player.
func (r *Registry) SetConnect(connect input.ConnectUseCase) {
	r.connect = connect
}

// Join registers a player and runs the join flow. An empty id gets a fresh
// one; deliver is the host's send callback and may be nil for read-only
// participants. Re-joining an id replaces the previous registration.
func (r *Registry) Join(ctx context.Context, id, name, languageHint, ip string, deliver func(text string) error) *Player {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}
	p := &Player{
		id:           id,
		name:         strings.TrimSpace(name),
		languageHint: strings.TrimSpace(languageHint),
		deliver:      deliver,
	}

	r.mu.Lock()
	r.players[id] = p
	r.mu.Unlock()

	if r.connect != nil {
		r.connect.OnConnect(ctx, p, ip)
	}
	return p
}

// Leave removes a player by id.
func (r *Registry) Leave(id string) {
	r.mu.Lock()
	delete(r.players, id)
	r.mu.Unlock()
}

// Online snapshots the live set.
func (r *Registry) Online() []output.Recipient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]output.Recipient, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	return out
}
