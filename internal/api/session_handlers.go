package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/deutschhub/internal/logger"
	"github.com/vytor/deutschhub/internal/quiz"
	"github.com/vytor/deutschhub/internal/services"
)

type startSessionRequest struct {
	Mode       string   `json:"mode" validate:"required,oneof=flashcards multiple_choice writing match_pairs verb_participle adjectives opposites word_gender verb_preposition"`
	Categories []string `json:"categories" validate:"omitempty,dive,required,max=100"`
	Shuffle    *bool    `json:"shuffle"`
	Direction  string   `json:"direction" validate:"omitempty,oneof=en_de de_en"`
}

type answerRequest struct {
	Answer      string `json:"answer" validate:"required_without_all=Preposition Case,max=200"`
	Preposition string `json:"preposition" validate:"max=50"`
	Case        string `json:"case" validate:"max=20"`
}

type selectRequest struct {
	CardID string `json:"card_id" validate:"required,max=100"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req startSessionRequest
	if err := s.validator.DecodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.Sessions.Start(r.Context(), quiz.Options{
		Mode:       quiz.Mode(req.Mode),
		Categories: req.Categories,
		Shuffle:    req.Shuffle,
		Direction:  quiz.Direction(req.Direction),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("session created: id=%s", view.ID)
	w.Header().Set("Location", "/api/sessions/"+view.ID)
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	respondSession(w, r, view, err)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.End(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := s.validator.DecodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.Sessions.Answer(r.Context(), chi.URLParam(r, "id"), quiz.Answer{
		Text:        req.Answer,
		Preposition: req.Preposition,
		Case:        req.Case,
	})
	respondSession(w, r, view, err)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := s.validator.DecodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.Sessions.Select(r.Context(), chi.URLParam(r, "id"), req.CardID)
	respondSession(w, r, view, err)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.Advance(r.Context(), chi.URLParam(r, "id"))
	respondSession(w, r, view, err)
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.Previous(r.Context(), chi.URLParam(r, "id"))
	respondSession(w, r, view, err)
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.Reveal(r.Context(), chi.URLParam(r, "id"))
	respondSession(w, r, view, err)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.Restart(r.Context(), chi.URLParam(r, "id"))
	respondSession(w, r, view, err)
}

func respondSession(w http.ResponseWriter, r *http.Request, view *services.SessionView, err error) {
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
