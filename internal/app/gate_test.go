package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"examobuddy/internal/domain"
)

type mockSessionStore struct {
	setFn   func(ctx context.Context, sid, token string, user *domain.User) error
	tokenFn func(ctx context.Context, sid string) (string, error)
	userFn  func(ctx context.Context, sid string) (*domain.User, error)
	clearFn func(ctx context.Context, sid string) error
}

func (m *mockSessionStore) SetSession(ctx context.Context, sid, token string, user *domain.User) error {
	if m.setFn != nil {
		return m.setFn(ctx, sid, token, user)
	}
	return nil
}

func (m *mockSessionStore) Token(ctx context.Context, sid string) (string, error) {
	if m.tokenFn != nil {
		return m.tokenFn(ctx, sid)
	}
	return "", nil
}

func (m *mockSessionStore) User(ctx context.Context, sid string) (*domain.User, error) {
	if m.userFn != nil {
		return m.userFn(ctx, sid)
	}
	return nil, nil
}

func (m *mockSessionStore) ClearSession(ctx context.Context, sid string) error {
	if m.clearFn != nil {
		return m.clearFn(ctx, sid)
	}
	return nil
}

func TestIsAuthenticated(t *testing.T) {
	ctx := context.Background()
	valid := expiringToken(t, time.Now().Add(time.Hour))
	expired := expiringToken(t, time.Now().Add(-time.Hour))

	tests := []struct {
		name    string
		sid     string
		tokenFn func(ctx context.Context, sid string) (string, error)
		want    bool
	}{
		{
			"valid token",
			"sid-1",
			func(_ context.Context, _ string) (string, error) { return valid, nil },
			true,
		},
		{
			"no token stored",
			"sid-1",
			func(_ context.Context, _ string) (string, error) { return "", nil },
			false,
		},
		{
			"expired token",
			"sid-1",
			func(_ context.Context, _ string) (string, error) { return expired, nil },
			false,
		},
		{
			"malformed token",
			"sid-1",
			func(_ context.Context, _ string) (string, error) { return "not-a-jwt", nil },
			false,
		},
		{
			"store error fails closed",
			"sid-1",
			func(_ context.Context, _ string) (string, error) { return "", errors.New("backend down") },
			false,
		},
		{
			"empty session id",
			"",
			func(_ context.Context, _ string) (string, error) { return valid, nil },
			false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gate := NewSessionGate(&mockSessionStore{tokenFn: tc.tokenFn})
			if got := gate.IsAuthenticated(ctx, tc.sid); got != tc.want {
				t.Fatalf("IsAuthenticated = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCurrentUser_ReturnsCachedRecordVerbatim(t *testing.T) {
	ctx := context.Background()
	token := expiringToken(t, time.Now().Add(time.Hour))
	user := &domain.User{ID: 7, Username: "dr_house", IsAdmin: true}

	gate := NewSessionGate(&mockSessionStore{
		tokenFn: func(_ context.Context, _ string) (string, error) { return token, nil },
		userFn:  func(_ context.Context, _ string) (*domain.User, error) { return user, nil },
	})

	got := gate.CurrentUser(ctx, "sid-1")
	if got != user {
		t.Fatalf("expected the cached user record, got %+v", got)
	}
}

func TestCurrentUser_NilWhenNotAuthenticated(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: 7, Username: "dr_house", IsAdmin: true}

	gate := NewSessionGate(&mockSessionStore{
		tokenFn: func(_ context.Context, _ string) (string, error) { return "", nil },
		userFn:  func(_ context.Context, _ string) (*domain.User, error) { return user, nil },
	})

	if got := gate.CurrentUser(ctx, "sid-1"); got != nil {
		t.Fatalf("expected nil user without a token, got %+v", got)
	}
}

func TestIsAdmin(t *testing.T) {
	ctx := context.Background()
	valid := expiringToken(t, time.Now().Add(time.Hour))
	expired := expiringToken(t, time.Now().Add(-time.Hour))

	tests := []struct {
		name  string
		token string
		user  *domain.User
		want  bool
	}{
		{"admin with valid token", valid, &domain.User{ID: 1, IsAdmin: true}, true},
		{"non-admin with valid token", valid, &domain.User{ID: 2}, false},
		{"cached admin flag with expired token", expired, &domain.User{ID: 1, IsAdmin: true}, false},
		{"no user record", valid, nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gate := NewSessionGate(&mockSessionStore{
				tokenFn: func(_ context.Context, _ string) (string, error) { return tc.token, nil },
				userFn:  func(_ context.Context, _ string) (*domain.User, error) { return tc.user, nil },
			})
			if got := gate.IsAdmin(ctx, "sid-1"); got != tc.want {
				t.Fatalf("IsAdmin = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSetSession_PassesThrough(t *testing.T) {
	ctx := context.Background()
	var gotSID, gotToken string
	var gotUser *domain.User

	gate := NewSessionGate(&mockSessionStore{
		setFn: func(_ context.Context, sid, token string, user *domain.User) error {
			gotSID, gotToken, gotUser = sid, token, user
			return nil
		},
	})

	user := &domain.User{ID: 3, Username: "nurse_joy"}
	if err := gate.SetSession(ctx, "sid-9", "tok", user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSID != "sid-9" || gotToken != "tok" || gotUser != user {
		t.Fatalf("store received sid=%q token=%q user=%+v", gotSID, gotToken, gotUser)
	}
}

func TestSetSession_RejectsMissingUserRecord(t *testing.T) {
	gate := NewSessionGate(&mockSessionStore{
		setFn: func(_ context.Context, _, _ string, _ *domain.User) error {
			t.Error("store written despite missing user record")
			return nil
		},
	})

	if err := gate.SetSession(context.Background(), "sid-9", "tok", nil); err == nil {
		t.Fatal("expected an error for a nil user record")
	}
}

func TestClearSession_PassesThrough(t *testing.T) {
	ctx := context.Background()
	calls := 0

	gate := NewSessionGate(&mockSessionStore{
		clearFn: func(_ context.Context, sid string) error {
			calls++
			return nil
		},
	})

	if err := gate.ClearSession(ctx, "sid-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := gate.ClearSession(ctx, "sid-9"); err != nil {
		t.Fatalf("unexpected error on repeat clear: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 store calls, got %d", calls)
	}
}
