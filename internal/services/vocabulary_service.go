package services

import (
	"context"
	stderrors "errors"
	"io"
	"sort"
	"sync"

	"github.com/vytor/deutschhub/internal/errors"
	"github.com/vytor/deutschhub/internal/logger"
	"github.com/vytor/deutschhub/internal/models"
	"github.com/vytor/deutschhub/internal/normalize"
	"github.com/vytor/deutschhub/internal/sheet"
	"github.com/vytor/deutschhub/internal/store"
)

// VocabularyService owns the active vocabulary dataset: the bundled default
// or the learner's uploaded replacement.
type VocabularyService interface {
	Init(ctx context.Context) error
	State() models.VocabularyState
	Vocabulary() []models.VocabularyEntry
	Provenance() models.Provenance
	IsCustom() bool
	LastError() string
	// Version changes whenever the active dataset is replaced.
	Version() uint64
	Categories() []string
	// Upload parses a workbook, replaces the active dataset with its entries
	// and persists them. It returns the number of entries kept.
	Upload(ctx context.Context, r io.Reader) (int, error)
	// Reset discards custom data and restores the default dataset.
	Reset(ctx context.Context) error
}

type vocabularyService struct {
	store    store.VocabularyStore
	defaults []models.VocabularyEntry

	// writeMu spans persisting and swapping, so the stored and the active
	// dataset change together.
	writeMu sync.Mutex

	mu         sync.RWMutex
	entries    []models.VocabularyEntry
	provenance models.Provenance
	categories []string
	lastErr    string
	version    uint64
}

// NewVocabularyService creates a VocabularyService serving defaults until
// Init finds custom data.
func NewVocabularyService(vocabStore store.VocabularyStore, defaults []models.VocabularyEntry) VocabularyService {
	s := &vocabularyService{store: vocabStore, defaults: defaults}
	s.swap(defaults, models.ProvenanceDefault)
	return s
}

func (s *vocabularyService) Init(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("vocabulary")
	log.Debug("initializing vocabulary")

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	entries, err := s.store.Load(ctx)
	if err != nil {
		if stderrors.Is(err, errors.ErrStorageRead) {
			log.Warn("ignoring unreadable custom vocabulary, using default: %v", err)
			return nil
		}
		log.Error("failed to load custom vocabulary: %v", err)
		return errors.NewInternalError(err)
	}
	if entries == nil {
		log.Info("using default vocabulary: entries=%d", len(s.defaults))
		return nil
	}

	s.mu.Lock()
	s.swap(entries, models.ProvenanceCustom)
	s.mu.Unlock()
	log.Info("using custom vocabulary: entries=%d", len(entries))
	return nil
}

func (s *vocabularyService) Upload(ctx context.Context, r io.Reader) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary")
	log.Debug("processing vocabulary upload")

	entries, err := s.parse(r)
	if err != nil {
		log.Warn("rejected vocabulary upload: %v", err)
		s.setLastError(err)
		return 0, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.store.Save(ctx, entries); err != nil {
		log.Error("failed to persist uploaded vocabulary: %v", err)
		s.setLastError(err)
		return 0, err
	}

	s.mu.Lock()
	s.swap(entries, models.ProvenanceCustom)
	s.mu.Unlock()

	log.Info("custom vocabulary uploaded: entries=%d", len(entries))
	return len(entries), nil
}

func (s *vocabularyService) parse(r io.Reader) ([]models.VocabularyEntry, error) {
	rows, err := sheet.Read(r)
	if err != nil {
		return nil, err
	}
	return normalize.Vocabulary(rows)
}

func (s *vocabularyService) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("vocabulary")
	log.Debug("resetting vocabulary")

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		log.Error("failed to clear custom vocabulary: %v", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.provenance == models.ProvenanceCustom {
		s.swap(s.defaults, models.ProvenanceDefault)
		log.Info("restored default vocabulary: entries=%d", len(s.defaults))
	}
	s.lastErr = ""
	return nil
}

// swap replaces the active dataset. Callers hold mu, except the constructor.
func (s *vocabularyService) swap(entries []models.VocabularyEntry, provenance models.Provenance) {
	s.entries = entries
	s.provenance = provenance
	s.categories = categoriesOf(entries)
	s.lastErr = ""
	s.version++
}

func (s *vocabularyService) setLastError(err error) {
	msg := err.Error()
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		msg = appErr.Message
	}

	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

func (s *vocabularyService) State() models.VocabularyState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.VocabularyState{
		Entries:    s.entries,
		Provenance: s.provenance,
		IsCustom:   s.provenance == models.ProvenanceCustom,
		Count:      len(s.entries),
		Categories: s.categories,
		Error:      s.lastErr,
		Version:    s.version,
	}
}

func (s *vocabularyService) Vocabulary() []models.VocabularyEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}

func (s *vocabularyService) Provenance() models.Provenance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provenance
}

func (s *vocabularyService) IsCustom() bool {
	return s.Provenance() == models.ProvenanceCustom
}

func (s *vocabularyService) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *vocabularyService) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *vocabularyService) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.categories...)
}

func categoriesOf(entries []models.VocabularyEntry) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range entries {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}
	sort.Strings(out)
	return out
}
