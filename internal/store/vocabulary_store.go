// Package store persists the user's custom vocabulary under a single key.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vytor/deutschhub/internal/errors"
	"github.com/vytor/deutschhub/internal/logger"
	"github.com/vytor/deutschhub/internal/models"
	"github.com/vytor/deutschhub/internal/repository"
)

// CustomVocabularyKey is the only key the store writes.
const CustomVocabularyKey = "customVocabulary"

// VocabularyStore loads, saves and clears the custom dataset.
type VocabularyStore interface {
	Load(ctx context.Context) ([]models.VocabularyEntry, error)
	Save(ctx context.Context, entries []models.VocabularyEntry) error
	Clear(ctx context.Context) error
}

type vocabularyStore struct {
	repo repository.KeyValueRepository
}

func NewVocabularyStore(repo repository.KeyValueRepository) VocabularyStore {
	return &vocabularyStore{repo: repo}
}

// Load returns nil, nil when nothing is stored. An unreadable or malformed
// value comes back as a StorageReadError; callers fall back to the default
// dataset.
func (s *vocabularyStore) Load(ctx context.Context) ([]models.VocabularyEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_store")
	log.Debug("loading custom vocabulary")

	raw, found, err := s.repo.Get(ctx, CustomVocabularyKey)
	if err != nil {
		log.Warn("failed to read custom vocabulary: %v", err)
		return nil, errors.NewStorageReadError(CustomVocabularyKey, err)
	}
	if !found {
		log.Debug("no custom vocabulary stored")
		return nil, nil
	}

	var entries []models.VocabularyEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Warn("stored custom vocabulary is malformed: %v", err)
		return nil, errors.NewStorageReadError(CustomVocabularyKey, err)
	}
	if len(entries) == 0 {
		log.Warn("stored custom vocabulary is empty")
		return nil, errors.NewStorageReadError(CustomVocabularyKey, fmt.Errorf("empty dataset"))
	}

	log.Debug("loaded %d custom entries", len(entries))
	return entries, nil
}

func (s *vocabularyStore) Save(ctx context.Context, entries []models.VocabularyEntry) error {
	log := logger.FromContext(ctx).WithPrefix("vocab_store")
	log.Debug("saving %d custom entries", len(entries))

	raw, err := json.Marshal(entries)
	if err != nil {
		log.Error("failed to encode custom vocabulary: %v", err)
		return errors.NewStorageWriteError(CustomVocabularyKey, err)
	}
	if err := s.repo.Put(ctx, CustomVocabularyKey, string(raw)); err != nil {
		log.Error("failed to write custom vocabulary: %v", err)
		return errors.NewStorageWriteError(CustomVocabularyKey, err)
	}
	return nil
}

func (s *vocabularyStore) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("vocab_store")
	log.Debug("clearing custom vocabulary")

	if err := s.repo.Delete(ctx, CustomVocabularyKey); err != nil {
		log.Error("failed to clear custom vocabulary: %v", err)
		return errors.NewStorageWriteError(CustomVocabularyKey, err)
	}
	return nil
}
