package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"examobuddy/internal/domain"
)

// Ensure interfaces are met.
var _ domain.SessionStore = (*DB)(nil)

// SetSession upserts the token and serialized user record in one statement,
// so a replaced session is never observable half-written.
func (d *DB) SetSession(ctx context.Context, sid, token string, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO browser_sessions (sid, token, user_record, updated_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (sid) DO UPDATE SET token = EXCLUDED.token, user_record = EXCLUDED.user_record, updated_at = EXCLUDED.updated_at`,
		sid, token, string(data), time.Now(),
	)
	return err
}

// Token returns the stored token, or "" when the session is absent.
func (d *DB) Token(ctx context.Context, sid string) (string, error) {
	var token string
	err := d.sql.QueryRowContext(ctx,
		"SELECT token FROM browser_sessions WHERE sid = $1", sid,
	).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// User returns the cached user record. Absent or unparsable records yield
// nil.
func (d *DB) User(ctx context.Context, sid string) (*domain.User, error) {
	var raw string
	err := d.sql.QueryRowContext(ctx,
		"SELECT user_record FROM browser_sessions WHERE sid = $1", sid,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

// ClearSession deletes the session row. Deleting a nonexistent row is a
// no-op.
func (d *DB) ClearSession(ctx context.Context, sid string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM browser_sessions WHERE sid = $1", sid)
	return err
}

// DeleteStale removes sessions untouched for longer than retention. Token
// expiry governs whether a session authenticates; this only bounds table
// growth.
func (d *DB) DeleteStale(ctx context.Context, retention time.Duration) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM browser_sessions WHERE updated_at < $1", time.Now().Add(-retention),
	)
	return err
}
