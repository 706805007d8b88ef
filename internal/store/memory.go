// internal/store/memory.go
//
// In-memory registry of running game sessions.
//
// Characteristics:
//   - Stores *session.Host objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Deleting a session closes its host, canceling its timers.
//   - Sweep closes sessions idle longer than a TTL; Close shuts everything down.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/session"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("store: session not found")

// Store defines the registry interface for running sessions.
type Store interface {
	// Save registers or replaces a session under its ID.
	Save(ctx context.Context, h *session.Host) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*session.Host, error)

	// Delete closes and removes a session.
	Delete(ctx context.Context, id string) error

	// Sweep closes sessions with no player activity since now-ttl and
	// returns how many were removed.
	Sweep(ctx context.Context, now time.Time, ttl time.Duration) int

	// Len reports the number of live sessions.
	Len() int

	// Close shuts down every session.
	Close()
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*session.Host
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*session.Host)}
}

// Save adds or replaces the session. A replaced host is closed.
func (m *memory) Save(ctx context.Context, h *session.Host) error {
	m.mu.Lock()
	old, had := m.sessions[h.ID()]
	m.sessions[h.ID()] = h
	m.mu.Unlock()
	if had && old != h {
		old.Close()
	}
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*session.Host, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if h, ok := m.sessions[id]; ok {
		return h, nil
	}
	return nil, ErrNotFound
}

// Delete removes the session and closes its host outside the lock.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	h, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	h.Close()
	return nil
}

func (m *memory) Sweep(ctx context.Context, now time.Time, ttl time.Duration) int {
	var stale []*session.Host
	m.mu.Lock()
	for id, h := range m.sessions {
		if now.Sub(h.LastActive()) > ttl {
			stale = append(stale, h)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, h := range stale {
		h.Close()
	}
	if len(stale) > 0 {
		log.Info().Int("count", len(stale)).Dur("ttl", ttl).Msg("swept idle sessions")
	}
	return len(stale)
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *memory) Close() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*session.Host)
	m.mu.Unlock()
	for _, h := range all {
		h.Close()
	}
}
