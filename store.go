package negotiate

import (
	"context"
	"sync"
)

// ──────────────────────────────────────────────
// Session Store — pluggable keyed persistence
// ──────────────────────────────────────────────

// SessionStore is the keyed persistence backend for negotiation sessions.
//
// The engine never locks: callers own serialization and must guarantee at
// most one in-flight Continue per session id (a per-key mutex or a
// single-writer queue both work). Distinct sessions are safe to process
// fully concurrently.
type SessionStore interface {
	// Get returns the session or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)
	// Put inserts or replaces the session.
	Put(ctx context.Context, session *Session) error
	// Delete removes the session. Deleting an unknown id is a no-op.
	Delete(ctx context.Context, id string) error
}

// InMemorySessionStore is a thread-safe in-memory SessionStore for
// development and tests. Data is lost on restart.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewInMemorySessionStore creates an empty in-memory store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]*Session)}
}

func (s *InMemorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *InMemorySessionStore) Put(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *InMemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (s *InMemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
