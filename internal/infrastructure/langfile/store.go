// Package langfile stores per-player language preferences in a JSON file,
// the zero-dependency alternative to the PostgreSQL repository.
package langfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"tradutor/internal/ports/output"
)

var _ output.LanguageRepository = (*Store)(nil)

type entry struct {
	Username string `json:"username"`
	Language string `json:"language"`
	IP       string `json:"ip"`
}

type fileData struct {
	Players map[string]entry `json:"players"`
}

// Store keeps the preference map in memory and rewrites the whole file on
// every mutation. Chat-rate writes are tiny; simplicity wins over batching.
type Store struct {
	path string

	mu      sync.RWMutex
	players map[string]entry
}

// Load opens or creates the preference file.
func Load(path string) (*Store, error) {
	s := &Store{path: path, players: make(map[string]entry)}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory map with the file contents, creating the
// file when missing.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s.saveLocked()
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	if data.Players == nil {
		data.Players = make(map[string]entry)
	}
	s.players = data.Players
	return nil
}

func (s *Store) Get(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.players[id].Language, nil
}

func (s *Store) Has(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.players[id]
	return ok, nil
}

func (s *Store) Set(_ context.Context, id string, pref output.LanguagePreference) error {
	if id == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(pref.Language) == "" {
		delete(s.players, id)
		return s.saveLocked()
	}
	e := entry{
		Username: pref.Username,
		Language: strings.TrimSpace(pref.Language),
		IP:       pref.IP,
	}
	// Keep the previously seen address when the caller has none.
	if existing, ok := s.players[id]; ok && strings.TrimSpace(pref.IP) == "" {
		e.IP = existing.IP
	}
	s.players[id] = e
	return s.saveLocked()
}

func (s *Store) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return s.saveLocked()
}

func (s *Store) UpdateUsername(_ context.Context, id, username string) error {
	if id == "" || strings.TrimSpace(username) == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.players[id]
	if !ok || e.Username == username {
		return nil
	}
	e.Username = username
	s.players[id] = e
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	raw, err := json.MarshalIndent(fileData{Players: s.players}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
