package adapthttp

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"examobuddy/internal/app"
	"examobuddy/internal/upstream"
)

// Server is the driving HTTP adapter: it renders the pages and forwards the
// actual work to the upstream API.
type Server struct {
	gate   *app.SessionGate
	api    *upstream.Client
	tmpl   *template.Template
	webDir string
}

// New creates a Server wired to the session gate and upstream client, with
// templates parsed from webDir/templates.
func New(gate *app.SessionGate, api *upstream.Client, webDir string) (*Server, error) {
	tmpl, err := template.ParseGlob(filepath.Join(webDir, "templates", "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Server{gate: gate, api: api, tmpl: tmpl, webDir: webDir}, nil
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /register", s.handleRegisterPage)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /static/", http.StripPrefix("/static/",
		http.FileServer(http.Dir(filepath.Join(s.webDir, "static")))))

	// Every page below requires a live session.
	guarded := http.NewServeMux()
	guarded.HandleFunc("GET /{$}", s.handleAskPage)
	guarded.HandleFunc("POST /ask", s.handleAsk)
	guarded.HandleFunc("POST /pdf", s.handlePDF)
	guarded.HandleFunc("GET /history", s.handleHistory)
	guarded.HandleFunc("GET /history/{id}", s.handleHistoryItem)
	guarded.HandleFunc("POST /history/{id}/delete", s.handleHistoryDelete)
	mux.Handle("/", s.requireAuth(guarded))

	mux.Handle("GET /admin", s.requireAuth(s.requireAdmin(http.HandlerFunc(s.handleAdmin))))

	return s.loggingMiddleware(s.sessionMiddleware(withNoCache(mux)))
}
