package adapthttp

import (
	"fmt"
	"net/http"

	"examobuddy/internal/domain"
	"examobuddy/internal/upstream"
)

type askPageData struct {
	User     *domain.User
	Question string
	Answer   string
	Error    string
}

func (s *Server) handleAskPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "ask.html", askPageData{User: userFromContext(r.Context())})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "ask.html", askPageData{User: user, Error: "invalid form"})
		return
	}
	question := r.PostFormValue("question")
	if question == "" {
		s.render(w, http.StatusBadRequest, "ask.html", askPageData{User: user, Error: "please enter a question"})
		return
	}

	answer, err := s.api.Ask(r.Context(), question)
	if err != nil {
		if upstream.IsUnauthorized(err) {
			s.forceLogin(w, r)
			return
		}
		s.render(w, http.StatusBadGateway, "ask.html", askPageData{
			User: user, Question: question, Error: failureMessage(err),
		})
		return
	}

	s.render(w, http.StatusOK, "ask.html", askPageData{User: user, Question: question, Answer: answer})
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "ask.html", askPageData{User: user, Error: "invalid form"})
		return
	}
	answer := r.PostFormValue("answer")
	question := r.PostFormValue("question")
	if answer == "" {
		s.render(w, http.StatusBadRequest, "ask.html", askPageData{User: user, Error: "nothing to export"})
		return
	}

	data, contentType, err := s.api.GeneratePDF(r.Context(), answer, question)
	if err != nil {
		if upstream.IsUnauthorized(err) {
			s.forceLogin(w, r)
			return
		}
		s.render(w, http.StatusBadGateway, "ask.html", askPageData{
			User: user, Question: question, Answer: answer, Error: failureMessage(err),
		})
		return
	}

	if contentType == "" {
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="answer.pdf"`)
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	_, _ = w.Write(data)
}
