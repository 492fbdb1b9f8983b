package adapthttp

import (
	"errors"
	"net/http"
	"strconv"

	"examobuddy/internal/domain"
	"examobuddy/internal/upstream"
)

const historyPageSize = 10

type historyPageData struct {
	User     *domain.User
	Items    []domain.HistoryItem
	Total    int
	Skip     int
	PrevSkip int
	NextSkip int
	HasPrev  bool
	HasNext  bool
	Error    string
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	skip := intQuery(r, "skip", 0)
	limit := intQuery(r, "limit", historyPageSize)
	if limit == 0 || limit > 100 {
		limit = historyPageSize
	}

	page, err := s.api.History(r.Context(), skip, limit)
	if err != nil {
		if upstream.IsUnauthorized(err) {
			s.forceLogin(w, r)
			return
		}
		s.render(w, http.StatusBadGateway, "history.html", historyPageData{
			User: user, Error: failureMessage(err),
		})
		return
	}

	prev := skip - limit
	if prev < 0 {
		prev = 0
	}
	s.render(w, http.StatusOK, "history.html", historyPageData{
		User:     user,
		Items:    page.Items,
		Total:    page.Total,
		Skip:     skip,
		PrevSkip: prev,
		NextSkip: skip + limit,
		HasPrev:  skip > 0,
		HasNext:  skip+limit < page.Total,
	})
}

type historyItemPageData struct {
	User  *domain.User
	Item  *domain.HistoryItem
	Error string
}

func (s *Server) handleHistoryItem(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, err := s.api.HistoryItem(r.Context(), id)
	if err != nil {
		if upstream.IsUnauthorized(err) {
			s.forceLogin(w, r)
			return
		}
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		s.render(w, http.StatusBadGateway, "history_item.html", historyItemPageData{
			User: user, Error: failureMessage(err),
		})
		return
	}

	s.render(w, http.StatusOK, "history_item.html", historyItemPageData{User: user, Item: item})
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := s.api.DeleteHistoryItem(r.Context(), id); err != nil {
		if upstream.IsUnauthorized(err) {
			s.forceLogin(w, r)
			return
		}
		// The item may already be gone; the listing reflects the truth.
	}
	http.Redirect(w, r, "/history", http.StatusSeeOther)
}
