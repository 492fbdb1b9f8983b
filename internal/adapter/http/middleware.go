package adapthttp

import (
	"context"
	"log"
	"net/http"
	"time"

	"examobuddy/internal/domain"
)

type contextKey string

const (
	sidContextKey  contextKey = "sid"
	userContextKey contextKey = "user"
)

// WithSessionID returns a context carrying the visitor's session ID.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sidContextKey, sid)
}

// SessionIDFromContext returns the session ID put there by the session
// middleware, or "" when the visitor has no session cookie.
func SessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sidContextKey).(string)
	return sid
}

func userFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// sessionMiddleware copies the session cookie into the request context so the
// gate and the upstream client can find it.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
			r = r.WithContext(WithSessionID(r.Context(), cookie.Value))
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth redirects visitors without a live session to the login page.
// Guarded content is never written for them. Authenticated requests continue
// with the cached user record in the context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := SessionIDFromContext(r.Context())
		if !s.gate.IsAuthenticated(r.Context(), sid) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		user := s.gate.CurrentUser(r.Context(), sid)
		if user == nil {
			// Token checked out but the record did not; treat as no session.
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin sends authenticated non-admins back to the home page. It runs
// inside requireAuth and decides from the user record already resolved there,
// without going back to the store.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())
		if user == nil || !user.IsAdmin {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs method, path, status, and duration for every request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
