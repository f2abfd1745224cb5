package services

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/deutschhub/internal/errors"
	"github.com/vytor/deutschhub/internal/logger"
	"github.com/vytor/deutschhub/internal/quiz"
	"github.com/vytor/deutschhub/internal/session"
)

// SessionView is a session's state as returned to clients.
type SessionView struct {
	ID      string       `json:"id"`
	Options quiz.Options `json:"options"`
	Result  *quiz.Result `json:"result,omitempty"`
	quiz.View
}

// SessionService keeps the live practice sessions in memory.
type SessionService interface {
	Start(ctx context.Context, opts quiz.Options) (*SessionView, error)
	Get(ctx context.Context, id string) (*SessionView, error)
	Answer(ctx context.Context, id string, answer quiz.Answer) (*SessionView, error)
	Advance(ctx context.Context, id string) (*SessionView, error)
	Previous(ctx context.Context, id string) (*SessionView, error)
	Reveal(ctx context.Context, id string) (*SessionView, error)
	Select(ctx context.Context, id string, cardID string) (*SessionView, error)
	Restart(ctx context.Context, id string) (*SessionView, error)
	End(ctx context.Context, id string) error
	// Sweep ends sessions idle for longer than the TTL and returns how many.
	Sweep(ctx context.Context) int
	// RunSweeper calls Sweep every interval until ctx is done.
	RunSweeper(ctx context.Context, interval time.Duration)
	Count() int
	// Close ends every session.
	Close()
}

type liveSession struct {
	mu       sync.Mutex
	id       string
	opts     quiz.Options
	quiz     quiz.Session
	version  uint64
	lastUsed time.Time
}

type sessionService struct {
	vocab    VocabularyService
	refs     ReferenceService
	settings quiz.Settings
	ttl      time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

// NewSessionService creates a SessionService drawing vocabulary from vocab
// and everything else from refs.
func NewSessionService(vocab VocabularyService, refs ReferenceService, settings quiz.Settings, ttl time.Duration) SessionService {
	return &sessionService{
		vocab:    vocab,
		refs:     refs,
		settings: settings,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*liveSession),
	}
}

// datasets snapshots the active vocabulary together with its version.
func (s *sessionService) datasets() (quiz.Datasets, uint64) {
	state := s.vocab.State()
	d := s.refs.Datasets()
	d.Vocabulary = state.Entries
	return d, state.Version
}

func (s *sessionService) Start(ctx context.Context, opts quiz.Options) (*SessionView, error) {
	log := logger.FromContext(ctx).WithPrefix("session")
	log.Debug("starting session: mode=%s, categories=%v", opts.Mode, opts.Categories)

	q, err := quiz.New(opts, s.settings)
	if err != nil {
		log.Debug("invalid session options: %v", err)
		return nil, errors.NewValidationError("mode", err.Error())
	}

	d, version := s.datasets()
	if err := q.Load(d); err != nil {
		q.Close()
		log.Debug("cannot start session: %v", err)
		return nil, sessionError(err)
	}

	ls := &liveSession{
		id:       uuid.NewString(),
		opts:     opts,
		quiz:     q,
		version:  version,
		lastUsed: s.now(),
	}

	s.mu.Lock()
	s.sessions[ls.id] = ls
	s.mu.Unlock()

	log.Info("session started: id=%s, mode=%s", ls.id, opts.Mode)
	return ls.view(nil), nil
}

// with runs fn against session id, first reloading it if the vocabulary it
// was built from has been replaced.
func (s *sessionService) with(ctx context.Context, id string, fn func(q quiz.Session) (*quiz.Result, error)) (*SessionView, error) {
	log := logger.FromContext(ctx).WithPrefix("session")

	s.mu.RLock()
	ls, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.NewNotFoundError("session", id)
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.lastUsed = s.now()

	if ls.opts.Mode.UsesVocabulary() {
		d, version := s.datasets()
		if version != ls.version {
			log.Info("vocabulary changed, reloading session: id=%s", id)
			ls.version = version
			if err := ls.quiz.Load(d); err != nil {
				log.Debug("reloaded session is unusable: %v", err)
				return nil, sessionError(err)
			}
		}
	}

	var result *quiz.Result
	if fn != nil {
		r, err := fn(ls.quiz)
		if err != nil {
			log.Debug("session transition rejected: id=%s, err=%v", id, err)
			return nil, sessionError(err)
		}
		result = r
	}
	return ls.view(result), nil
}

func (ls *liveSession) view(result *quiz.Result) *SessionView {
	return &SessionView{ID: ls.id, Options: ls.opts, Result: result, View: ls.quiz.View()}
}

func (s *sessionService) Get(ctx context.Context, id string) (*SessionView, error) {
	return s.with(ctx, id, nil)
}

func (s *sessionService) Answer(ctx context.Context, id string, answer quiz.Answer) (*SessionView, error) {
	return s.with(ctx, id, func(q quiz.Session) (*quiz.Result, error) {
		r, err := q.Answer(answer)
		return &r, err
	})
}

func (s *sessionService) Select(ctx context.Context, id string, cardID string) (*SessionView, error) {
	return s.with(ctx, id, func(q quiz.Session) (*quiz.Result, error) {
		r, err := q.Select(cardID)
		return &r, err
	})
}

func (s *sessionService) Advance(ctx context.Context, id string) (*SessionView, error) {
	return s.with(ctx, id, noResult(quiz.Session.Advance))
}

func (s *sessionService) Previous(ctx context.Context, id string) (*SessionView, error) {
	return s.with(ctx, id, noResult(quiz.Session.Previous))
}

func (s *sessionService) Reveal(ctx context.Context, id string) (*SessionView, error) {
	return s.with(ctx, id, noResult(quiz.Session.Reveal))
}

func (s *sessionService) Restart(ctx context.Context, id string) (*SessionView, error) {
	return s.with(ctx, id, noResult(quiz.Session.Restart))
}

func noResult(op func(quiz.Session) error) func(quiz.Session) (*quiz.Result, error) {
	return func(q quiz.Session) (*quiz.Result, error) {
		return nil, op(q)
	}
}

func (s *sessionService) End(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("session")

	s.mu.Lock()
	ls, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return errors.NewNotFoundError("session", id)
	}

	ls.quiz.Close()
	log.Info("session ended: id=%s", id)
	return nil
}

func (s *sessionService) Sweep(ctx context.Context) int {
	log := logger.FromContext(ctx).WithPrefix("session")
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*liveSession
	for id, ls := range s.sessions {
		ls.mu.Lock()
		idle := ls.lastUsed.Before(cutoff)
		ls.mu.Unlock()
		if idle {
			expired = append(expired, ls)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, ls := range expired {
		ls.quiz.Close()
	}
	if len(expired) > 0 {
		log.Info("swept idle sessions: count=%d", len(expired))
	}
	return len(expired)
}

func (s *sessionService) RunSweeper(ctx context.Context, interval time.Duration) {
	log := logger.FromContext(ctx).WithPrefix("session")
	log.Info("session sweeper started: interval=%s, ttl=%s", interval, s.ttl)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

func (s *sessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *sessionService) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*liveSession)
	s.mu.Unlock()

	for _, ls := range sessions {
		ls.quiz.Close()
	}
}

// sessionError converts session transition errors to AppErrors.
func sessionError(err error) error {
	switch {
	case stderrors.Is(err, session.ErrEmpty):
		return errors.NewEmptyDatasetError("no entries match the selected categories")
	case stderrors.Is(err, session.ErrTooFewPairs):
		return errors.NewEmptyDatasetError("at least two entries are needed to play this mode")
	case stderrors.Is(err, session.ErrNotActive),
		stderrors.Is(err, session.ErrNotRevealed),
		stderrors.Is(err, session.ErrFinished):
		return errors.NewConflictError(err.Error(), err)
	case stderrors.Is(err, session.ErrUnsupported):
		return errors.NewBadRequestError(err.Error())
	case stderrors.Is(err, quiz.ErrBlankAnswer):
		return errors.NewValidationError("answer", "cannot be blank")
	case stderrors.Is(err, session.ErrUnknownCard):
		return errors.NewValidationError("card_id", "unknown card")
	default:
		return errors.NewInternalError(err)
	}
}
