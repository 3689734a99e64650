// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// This is the default persistence layer for live sessions: the HTTP host
// looks a session up per request, applies input, and saves it back.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/gridle-game/gridle/internal/game"
)

// ErrNotFound is returned by Get when no session has the given ID.
var ErrNotFound = errors.New("store: session not found")

// Store defines the persistence interface for live game sessions.
// Implementations may be backed by memory (this file) or SQLite.
type Store interface {
	// Save persists or updates a session state.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID. Returns ErrNotFound if missing.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Delete removes a session. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex             // guards sessions map
	sessions map[string]*game.Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*game.Session)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Delete removes the session from the map.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
