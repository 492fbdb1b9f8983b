package adapthttp

import (
	"net/http"

	"examobuddy/internal/domain"
	"examobuddy/internal/upstream"
)

type adminPageData struct {
	User  *domain.User
	Stats *domain.AdminStats
	Users []domain.User
	Error string
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	stats, err := s.api.Stats(r.Context())
	if err != nil {
		if upstream.IsUnauthorized(err) {
			s.forceLogin(w, r)
			return
		}
		s.render(w, http.StatusBadGateway, "admin.html", adminPageData{
			User: user, Error: failureMessage(err),
		})
		return
	}

	users, err := s.api.Users(r.Context())
	if err != nil {
		if upstream.IsUnauthorized(err) {
			s.forceLogin(w, r)
			return
		}
		s.render(w, http.StatusBadGateway, "admin.html", adminPageData{
			User: user, Stats: stats, Error: failureMessage(err),
		})
		return
	}

	s.render(w, http.StatusOK, "admin.html", adminPageData{User: user, Stats: stats, Users: users})
}
