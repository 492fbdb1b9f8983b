// Package memory implements an in-memory session store for development and
// testing.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"examobuddy/internal/domain"
)

// entry mirrors the two string slots a persistent backend keeps per session.
type entry struct {
	token string
	user  string
}

// Store implements an in-memory session store.
type Store struct {
	mu       sync.Mutex
	sessions map[string]entry
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{sessions: make(map[string]entry)}
}

// Ensure interfaces are met.
var _ domain.SessionStore = (*Store)(nil)

// SetSession stores the token and serialized user record together.
func (s *Store) SetSession(ctx context.Context, sid, token string, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = entry{token: token, user: string(data)}
	return nil
}

// Token returns the stored token, or "" when the session is absent.
func (s *Store) Token(ctx context.Context, sid string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[sid].token, nil
}

// User returns the cached user record. An absent or unparsable record yields
// nil.
func (s *Store) User(ctx context.Context, sid string) (*domain.User, error) {
	s.mu.Lock()
	raw := s.sessions[sid].user
	s.mu.Unlock()

	if raw == "" {
		return nil, nil
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

// ClearSession removes both entries. Clearing an unknown session is a no-op.
func (s *Store) ClearSession(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}

// Corrupt overwrites the stored user record with raw bytes. Test hook for the
// fail-closed path.
func (s *Store) Corrupt(sid, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.sessions[sid]
	e.user = raw
	s.sessions[sid] = e
}
