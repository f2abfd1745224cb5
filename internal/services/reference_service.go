package services

import (
	"context"

	"github.com/vytor/deutschhub/internal/data"
	"github.com/vytor/deutschhub/internal/errors"
	"github.com/vytor/deutschhub/internal/logger"
	"github.com/vytor/deutschhub/internal/models"
	"github.com/vytor/deutschhub/internal/normalize"
	"github.com/vytor/deutschhub/internal/quiz"
)

// ReferenceService serves the bundled read-only datasets.
type ReferenceService interface {
	// DefaultVocabulary is the dataset the vocabulary falls back to.
	DefaultVocabulary() []models.VocabularyEntry
	// Dataset returns the bundled entries of kind.
	Dataset(kind models.DatasetKind) (any, error)
	// Datasets fills every reference dataset; Vocabulary is left empty.
	Datasets() quiz.Datasets
}

type referenceService struct {
	vocabulary   []models.VocabularyEntry
	verbs        []models.VerbParticiple
	adjectives   []models.AdjectivePair
	opposites    []models.OppositePair
	genders      []models.WordGenderEntry
	prepositions []models.VerbPrepositionEntry
}

// NewReferenceService normalizes every bundled dataset. A bundled dataset
// that fails to normalize is a build defect and aborts startup.
func NewReferenceService(ctx context.Context) (ReferenceService, error) {
	log := logger.FromContext(ctx).WithPrefix("reference")
	s := &referenceService{}

	for _, kind := range models.DatasetKinds {
		rows, err := data.Rows(kind)
		if err != nil {
			log.Error("failed to read bundled %s: %v", kind, err)
			return nil, err
		}
		out, n, err := normalize.ForKind(kind, rows)
		if err != nil {
			log.Error("failed to normalize bundled %s: %v", kind, err)
			return nil, err
		}
		switch v := out.(type) {
		case []models.VocabularyEntry:
			s.vocabulary = v
		case []models.VerbParticiple:
			s.verbs = v
		case []models.AdjectivePair:
			s.adjectives = v
		case []models.OppositePair:
			s.opposites = v
		case []models.WordGenderEntry:
			s.genders = v
		case []models.VerbPrepositionEntry:
			s.prepositions = v
		}
		log.Debug("loaded bundled dataset: kind=%s, entries=%d", kind, n)
	}
	return s, nil
}

func (s *referenceService) DefaultVocabulary() []models.VocabularyEntry {
	return s.vocabulary
}

func (s *referenceService) Dataset(kind models.DatasetKind) (any, error) {
	switch kind {
	case models.KindVocabulary:
		return s.vocabulary, nil
	case models.KindVerbParticiples:
		return s.verbs, nil
	case models.KindAdjectives:
		return s.adjectives, nil
	case models.KindOpposites:
		return s.opposites, nil
	case models.KindWordGenders:
		return s.genders, nil
	case models.KindVerbPrepositions:
		return s.prepositions, nil
	default:
		return nil, errors.NewNotFoundError("dataset", kind)
	}
}

func (s *referenceService) Datasets() quiz.Datasets {
	return quiz.Datasets{
		Verbs:        s.verbs,
		Adjectives:   s.adjectives,
		Opposites:    s.opposites,
		Genders:      s.genders,
		Prepositions: s.prepositions,
	}
}
