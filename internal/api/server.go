package api

import (
	"context"

	"github.com/vytor/deutschhub/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	DB             Pinger
	Vocabulary     services.VocabularyService
	References     services.ReferenceService
	Sessions       services.SessionService
	MaxUploadBytes int64

	validator *Validator
}
