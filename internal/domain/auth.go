// Package domain contains the core entities and interfaces.
package domain

import (
	"context"
	"time"
)

// User is the denormalized account snapshot returned by the upstream API at
// login time and cached alongside the bearer token. It is not refreshed from
// the token's own claims.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore defines the port for per-browser session persistence. Each
// session, keyed by the cookie-held session ID, holds two entries: the raw
// bearer token and the JSON-serialized user record.
//
// A user record without a token is meaningless; callers must treat it as
// "no session". Implementations store the two entries together and remove
// them together.
type SessionStore interface {
	// SetSession persists both entries, replacing any prior session wholesale.
	SetSession(ctx context.Context, sid, token string, user *User) error
	// Token returns the stored bearer token, or "" when absent.
	Token(ctx context.Context, sid string) (string, error)
	// User returns the cached user record. Absent or unparsable records
	// yield nil, not an error.
	User(ctx context.Context, sid string) (*User, error)
	// ClearSession removes both entries. Clearing a nonexistent session is
	// a no-op.
	ClearSession(ctx context.Context, sid string) error
}
