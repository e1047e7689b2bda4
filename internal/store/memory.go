// internal/store/memory.go
//
// In-memory store of active game sessions.
// Each Session wraps one *game.Engine plus its owner (a user ID or an
// anonymous cookie ID). Sessions are deliberately ephemeral: they vanish on
// restart, and nothing about them is written to the database.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads, exclusive writes).
//   - Get returns ErrNotFound for unknown IDs.
//   - Sweep drops sessions idle for longer than a given age.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordscramble/internal/game"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Session is one player's game.
type Session struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time
	Engine    *game.Engine

	mu       sync.Mutex
	lastSeen time.Time
}

// NewSession wraps an engine for owner.
func NewSession(id, owner string, e *game.Engine) *Session {
	now := time.Now()
	return &Session{ID: id, OwnerID: owner, CreatedAt: now, Engine: e, lastSeen: now}
}

// Touch records activity on the session.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen returns the time of the last Touch.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Store defines persistence for sessions.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Len() int
}

// Memory is a map-based Store.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{sessions: make(map[string]*Session)}
}

// Save adds or replaces a session.
func (m *Memory) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Get looks up a session by ID.
func (m *Memory) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Delete removes a session; unknown IDs are ignored.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions idle since before now-maxIdle and returns how many
// were dropped.
func (m *Memory) Sweep(now time.Time, maxIdle time.Duration) int {
	cutoff := now.Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
