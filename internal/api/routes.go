package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// requestTimeout bounds every API call; uploads are parsed synchronously.
const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	if s.validator == nil {
		s.validator = NewValidator()
	}

	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(timeoutMiddleware(requestTimeout))

		r.Get("/vocabulary", s.handleVocabulary)
		r.Post("/vocabulary/upload", s.handleUploadVocabulary)
		r.Post("/vocabulary/reset", s.handleResetVocabulary)
		r.Get("/datasets/{kind}", s.handleDataset)

		r.Post("/sessions", s.handleStartSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleEndSession)
			r.Post("/answer", s.handleAnswer)
			r.Post("/select", s.handleSelect)
			r.Post("/advance", s.handleAdvance)
			r.Post("/previous", s.handlePrevious)
			r.Post("/reveal", s.handleReveal)
			r.Post("/restart", s.handleRestart)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNotFoundRoute(r))
	})
	return r
}
