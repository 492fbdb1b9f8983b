// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"examobuddy/internal/upstream"
)

type authPageData struct {
	Error    string
	Username string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.gate.IsAuthenticated(r.Context(), SessionIDFromContext(r.Context())) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusOK, "login.html", authPageData{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "login.html", authPageData{Error: "invalid form"})
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		s.render(w, http.StatusBadRequest, "login.html", authPageData{
			Error: "username and password are required", Username: username,
		})
		return
	}

	res, err := s.api.Login(r.Context(), username, password)
	if err != nil {
		status := http.StatusBadGateway
		msg := failureMessage(err)
		if upstream.IsUnauthorized(err) {
			status = http.StatusUnauthorized
			msg = "invalid username or password"
		}
		s.render(w, status, "login.html", authPageData{Error: msg, Username: username})
		return
	}

	user := res.User
	if user == nil {
		// The token endpoint may carry only the token; the record then
		// comes from /auth/me, fetched with the fresh token before
		// anything is stored.
		user, err = s.api.Me(upstream.WithBearer(r.Context(), res.AccessToken))
		if err != nil {
			s.render(w, http.StatusBadGateway, "login.html", authPageData{
				Error: failureMessage(err), Username: username,
			})
			return
		}
	}

	sid := ensureSessionID(w, r)
	if err := s.gate.SetSession(r.Context(), sid, res.AccessToken, user); err != nil {
		s.render(w, http.StatusInternalServerError, "login.html", authPageData{
			Error: "could not store session", Username: username,
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if s.gate.IsAuthenticated(r.Context(), SessionIDFromContext(r.Context())) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusOK, "register.html", authPageData{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "register.html", authPageData{Error: "invalid form"})
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		s.render(w, http.StatusBadRequest, "register.html", authPageData{
			Error: "username and password are required", Username: username,
		})
		return
	}

	res, err := s.api.Register(r.Context(), username, password)
	if err != nil {
		s.render(w, http.StatusBadRequest, "register.html", authPageData{
			Error: failureMessage(err), Username: username,
		})
		return
	}

	// Registration logs the new account straight in when the upstream
	// returns a token; otherwise the visitor signs in themselves.
	if res.AccessToken == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	user := res.User
	if user == nil {
		user, err = s.api.Me(upstream.WithBearer(r.Context(), res.AccessToken))
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
	}
	sid := ensureSessionID(w, r)
	if err := s.gate.SetSession(r.Context(), sid, res.AccessToken, user); err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sid := SessionIDFromContext(r.Context()); sid != "" {
		_ = s.gate.ClearSession(r.Context(), sid)
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
