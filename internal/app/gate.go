package app

import (
	"context"
	"errors"

	"examobuddy/internal/domain"
)

// SessionGate answers the authentication and role questions every guarded
// page asks, by combining the session store with local token validation.
//
// All read methods fail closed: a store error, a missing token, an expired
// token, or an unparsable user record each count as "not logged in".
type SessionGate struct {
	store domain.SessionStore
}

// NewSessionGate creates a SessionGate backed by the given store.
func NewSessionGate(store domain.SessionStore) *SessionGate {
	return &SessionGate{store: store}
}

// IsAuthenticated reports whether the session holds a token that is still
// valid. An empty session ID means the visitor has no session storage at all
// and is never authenticated.
func (g *SessionGate) IsAuthenticated(ctx context.Context, sid string) bool {
	if sid == "" {
		return false
	}
	token, err := g.store.Token(ctx, sid)
	if err != nil || token == "" {
		return false
	}
	return TokenValid(token)
}

// CurrentUser returns the cached user record, or nil when the session is not
// authenticated. The record is returned verbatim; identity and role claims
// are trusted from the login-time snapshot for as long as the token lives.
func (g *SessionGate) CurrentUser(ctx context.Context, sid string) *domain.User {
	if !g.IsAuthenticated(ctx, sid) {
		return nil
	}
	user, err := g.store.User(ctx, sid)
	if err != nil {
		return nil
	}
	return user
}

// IsAdmin reports whether the session belongs to an administrator. A cached
// admin flag counts for nothing once the token has expired.
func (g *SessionGate) IsAdmin(ctx context.Context, sid string) bool {
	user := g.CurrentUser(ctx, sid)
	return user != nil && user.IsAdmin
}

// SetSession stores the token and user record together, replacing any prior
// session. A session without its user record is meaningless, so a nil user is
// rejected before anything reaches the store.
func (g *SessionGate) SetSession(ctx context.Context, sid, token string, user *domain.User) error {
	if user == nil {
		return errors.New("session requires a user record")
	}
	return g.store.SetSession(ctx, sid, token, user)
}

// ClearSession drops the session. Safe to call when none exists.
func (g *SessionGate) ClearSession(ctx context.Context, sid string) error {
	return g.store.ClearSession(ctx, sid)
}
