package api

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/deutschhub/internal/errors"
	"github.com/vytor/deutschhub/internal/logger"
	"github.com/vytor/deutschhub/internal/models"
)

// uploadField is the multipart form field carrying the workbook.
const uploadField = "file"

type uploadResponse struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}

func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	state := s.Vocabulary.State()
	log.Debug("serving vocabulary: provenance=%s, count=%d", state.Provenance, state.Count)
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleUploadVocabulary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			handleError(w, r, errors.NewBadRequestError(fmt.Sprintf("file exceeds the %d byte upload limit", s.MaxUploadBytes)))
			return
		}
		handleError(w, r, errors.NewBadRequestError("expected a multipart form upload"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		handleError(w, r, errors.NewValidationError(uploadField, "a spreadsheet file is required"))
		return
	}
	defer file.Close()

	log.Info("vocabulary upload received: filename=%s, size=%d", header.Filename, header.Size)
	count, err := s.Vocabulary.Upload(r.Context(), file)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Count:   count,
		Message: fmt.Sprintf("Successfully loaded %d words!", count),
	})
}

func (s *Server) handleResetVocabulary(w http.ResponseWriter, r *http.Request) {
	if err := s.Vocabulary.Reset(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Vocabulary.State())
}

type datasetResponse struct {
	Kind    models.DatasetKind `json:"kind"`
	Entries any                `json:"entries"`
}

// handleDataset lists a dataset. The vocabulary kind returns the active
// vocabulary; every other kind is bundled.
func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	kindParam := chi.URLParam(r, "kind")
	kind, ok := models.ParseDatasetKind(kindParam)
	if !ok {
		handleError(w, r, errors.NewNotFoundError("dataset", kindParam))
		return
	}

	if kind == models.KindVocabulary {
		writeJSON(w, http.StatusOK, datasetResponse{Kind: kind, Entries: s.Vocabulary.Vocabulary()})
		return
	}

	entries, err := s.References.Dataset(kind)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, datasetResponse{Kind: kind, Entries: entries})
}

func errNotFoundRoute(r *http.Request) error {
	return errors.NewNotFoundError("route", r.URL.Path)
}
