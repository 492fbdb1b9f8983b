package memory

import (
	"context"
	"testing"

	"examobuddy/internal/domain"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()
	user := &domain.User{ID: 12, Username: "resident", IsAdmin: true}

	if err := s.SetSession(ctx, "sid", "tok-123", user); err != nil {
		t.Fatalf("SetSession: %v", err)
	}

	token, err := s.Token(ctx, "sid")
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("token = %q, want %q", token, "tok-123")
	}

	got, err := s.User(ctx, "sid")
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if got == nil || got.ID != 12 || got.Username != "resident" || !got.IsAdmin {
		t.Fatalf("user = %+v, want %+v", got, user)
	}
}

func TestSetSessionReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.SetSession(ctx, "sid", "old", &domain.User{ID: 1, Username: "a"}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if err := s.SetSession(ctx, "sid", "new", &domain.User{ID: 2, Username: "b"}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}

	token, _ := s.Token(ctx, "sid")
	user, _ := s.User(ctx, "sid")
	if token != "new" || user == nil || user.ID != 2 {
		t.Fatalf("got token=%q user=%+v after replace", token, user)
	}
}

func TestClearSessionIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.SetSession(ctx, "sid", "tok", &domain.User{ID: 1}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if err := s.ClearSession(ctx, "sid"); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if err := s.ClearSession(ctx, "sid"); err != nil {
		t.Fatalf("second ClearSession: %v", err)
	}
	if err := s.ClearSession(ctx, "never-existed"); err != nil {
		t.Fatalf("ClearSession on unknown sid: %v", err)
	}

	token, _ := s.Token(ctx, "sid")
	user, _ := s.User(ctx, "sid")
	if token != "" || user != nil {
		t.Fatalf("expected empty session, got token=%q user=%+v", token, user)
	}
}

func TestUnknownSessionIsAbsent(t *testing.T) {
	ctx := context.Background()
	s := New()

	token, err := s.Token(ctx, "nope")
	if err != nil || token != "" {
		t.Fatalf("Token = %q, %v", token, err)
	}
	user, err := s.User(ctx, "nope")
	if err != nil || user != nil {
		t.Fatalf("User = %+v, %v", user, err)
	}
}

func TestMalformedUserRecordFailsClosed(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.SetSession(ctx, "sid", "tok", &domain.User{ID: 1}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	s.Corrupt("sid", "{not json")

	user, err := s.User(ctx, "sid")
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil for unparsable record, got %+v", user)
	}
}
