// Package redis implements the session store on Redis.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"examobuddy/internal/domain"
)

// Store implements a Redis-backed session store. Each session occupies two
// string keys, "token" and "user", written and deleted together.
type Store struct {
	client    *redis.Client
	prefix    string
	retention time.Duration
}

// New creates a Store. retention caps how long an untouched session survives;
// token expiry still decides whether it authenticates.
func New(client *redis.Client, retention time.Duration) *Store {
	return &Store{
		client:    client,
		prefix:    "session:",
		retention: retention,
	}
}

// Ensure interfaces are met.
var _ domain.SessionStore = (*Store)(nil)

func (s *Store) tokenKey(sid string) string { return s.prefix + sid + ":token" }
func (s *Store) userKey(sid string) string  { return s.prefix + sid + ":user" }

// SetSession writes both keys in one pipeline round trip.
func (s *Store) SetSession(ctx context.Context, sid, token string, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tokenKey(sid), token, s.retention)
	pipe.Set(ctx, s.userKey(sid), string(data), s.retention)
	_, err = pipe.Exec(ctx)
	return err
}

// Token returns the stored token, or "" when the session is absent.
func (s *Store) Token(ctx context.Context, sid string) (string, error) {
	val, err := s.client.Get(ctx, s.tokenKey(sid)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// User returns the cached user record. Absent or unparsable records yield
// nil.
func (s *Store) User(ctx context.Context, sid string) (*domain.User, error) {
	val, err := s.client.Get(ctx, s.userKey(sid)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

// ClearSession deletes both keys. Deleting absent keys is a no-op.
func (s *Store) ClearSession(ctx context.Context, sid string) error {
	return s.client.Del(ctx, s.tokenKey(sid), s.userKey(sid)).Err()
}
