package session

import (
	"sync"
	"time"
)

// Config parametrizes a Machine for one quiz mode.
type Config[T, A any] struct {
	// Filter selects the working set from the dataset; nil keeps everything.
	Filter func(T) bool
	// Shuffle permutes the working set on every Initialize and Restart.
	Shuffle  bool
	Shuffler Shuffler

	// Check compares an answer with the current item. A nil Check makes the
	// machine navigation-only: Advance and Previous work from Active and
	// Submit is unsupported.
	Check func(item T, answer A) bool

	// Options builds the answer choices for dataset[current], the current
	// item. It sees the whole dataset, not just the filtered working set, and
	// runs on every position change.
	Options func(dataset []T, current int, shuffle Shuffler) []string

	// Limit caps the working set and makes the round fixed-length. Zero
	// means the session cycles forever.
	Limit int

	// AutoAdvance moves on after a correct answer. Zero disables it.
	AutoAdvance time.Duration
	Scheduler   Scheduler
}

// Snapshot is a copy of the machine's externally visible state.
type Snapshot[T any] struct {
	State    State
	Feedback Feedback
	Position int
	Total    int
	Current  T
	// HasCurrent is false only when the working set is empty.
	HasCurrent bool
	Options    []string
	Score      int
	Attempts   int
	Streak     int
	// Pending reports a scheduled auto-advance.
	Pending bool
}

// Machine walks a working set of items, checking answers and keeping score.
type Machine[T, A any] struct {
	mu  sync.Mutex
	cfg Config[T, A]

	dataset []T
	items   []T
	// origin maps each working-set position to its index in dataset.
	origin []int
	pos    int

	state    State
	feedback Feedback
	options  []string

	score    int
	attempts int
	streak   int

	// gen invalidates timers scheduled before the last transition.
	gen    uint64
	timer  Timer
	closed bool
}

func NewMachine[T, A any](cfg Config[T, A]) *Machine[T, A] {
	if cfg.Shuffler == nil {
		cfg.Shuffler = RandomShuffle
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = ClockScheduler
	}
	return &Machine[T, A]{cfg: cfg}
}

// Initialize derives a fresh working set from dataset and resets all
// progress. It returns ErrEmpty when the filter leaves nothing; the machine
// is still reset in that case.
func (m *Machine[T, A]) Initialize(dataset []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dataset = dataset
	return m.resetLocked()
}

// Restart re-runs Initialize on the dataset last passed to it.
func (m *Machine[T, A]) Restart() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.resetLocked()
}

func (m *Machine[T, A]) resetLocked() error {
	m.cancelLocked()
	m.closed = false

	origin := make([]int, 0, len(m.dataset))
	for i, item := range m.dataset {
		if m.cfg.Filter == nil || m.cfg.Filter(item) {
			origin = append(origin, i)
		}
	}
	if m.cfg.Shuffle {
		origin = Shuffled(origin, m.cfg.Shuffler)
	}
	if m.cfg.Limit > 0 && len(origin) > m.cfg.Limit {
		origin = origin[:m.cfg.Limit]
	}

	items := make([]T, len(origin))
	for i, idx := range origin {
		items[i] = m.dataset[idx]
	}
	m.items = items
	m.origin = origin
	m.pos = 0
	m.score, m.attempts, m.streak = 0, 0, 0
	m.state = Active
	m.feedback = Unanswered
	m.options = nil

	if len(items) == 0 {
		return ErrEmpty
	}
	m.drawOptionsLocked()
	return nil
}

// Submit checks answer against the current item and reveals it.
func (m *Machine[T, A]) Submit(answer A) (Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return Unanswered, ErrEmpty
	}
	if m.cfg.Check == nil {
		return Unanswered, ErrUnsupported
	}
	if m.state == Won {
		return Unanswered, ErrFinished
	}
	if m.state != Active {
		return Unanswered, ErrNotActive
	}

	m.attempts++
	if !m.cfg.Check(m.items[m.pos], answer) {
		m.streak = 0
		m.feedback = Incorrect
		m.state = Revealed
		return m.feedback, nil
	}

	m.score++
	m.streak++
	m.feedback = Correct
	m.state = Revealed

	if m.lastOfRoundLocked() {
		m.state = Won
		return m.feedback, nil
	}
	if m.cfg.AutoAdvance > 0 {
		m.scheduleAdvanceLocked()
	}
	return m.feedback, nil
}

// Reveal gives up on the current item: it counts as an incorrect attempt.
// In navigation-only mode it just turns the card over.
func (m *Machine[T, A]) Reveal() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return ErrEmpty
	}
	if m.state == Won {
		return ErrFinished
	}
	if m.cfg.Check == nil {
		m.state = Revealed
		return nil
	}
	if m.state != Active {
		return ErrNotActive
	}

	m.attempts++
	m.streak = 0
	m.feedback = Incorrect
	m.state = Revealed
	return nil
}

// Advance moves to the next item, wrapping at the end of the working set.
// In a fixed-length round, advancing past the last item ends the round.
func (m *Machine[T, A]) Advance() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return ErrEmpty
	}
	if m.state == Won {
		return ErrFinished
	}
	if m.state == Active && m.cfg.Check != nil {
		return ErrNotRevealed
	}
	m.advanceLocked()
	return nil
}

// Previous steps back one item. Only navigation-only machines support it.
func (m *Machine[T, A]) Previous() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.Check != nil {
		return ErrUnsupported
	}
	if len(m.items) == 0 {
		return ErrEmpty
	}
	m.moveLocked((m.pos - 1 + len(m.items)) % len(m.items))
	return nil
}

func (m *Machine[T, A]) advanceLocked() {
	if m.cfg.Limit > 0 && m.state == Revealed && m.lastOfRoundLocked() {
		m.cancelLocked()
		m.state = Won
		return
	}
	m.moveLocked((m.pos + 1) % len(m.items))
}

func (m *Machine[T, A]) moveLocked(pos int) {
	m.cancelLocked()
	m.pos = pos
	m.state = Active
	m.feedback = Unanswered
	m.drawOptionsLocked()
}

func (m *Machine[T, A]) lastOfRoundLocked() bool {
	return m.cfg.Limit > 0 && m.pos == len(m.items)-1
}

func (m *Machine[T, A]) drawOptionsLocked() {
	if m.cfg.Options == nil {
		m.options = nil
		return
	}
	m.options = m.cfg.Options(m.dataset, m.origin[m.pos], m.cfg.Shuffler)
}

func (m *Machine[T, A]) scheduleAdvanceLocked() {
	m.cancelLocked()
	gen := m.gen
	m.timer = m.cfg.Scheduler.AfterFunc(m.cfg.AutoAdvance, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.closed || gen != m.gen || m.state != Revealed {
			return
		}
		m.timer = nil
		m.advanceLocked()
	})
}

// cancelLocked stops any pending timer and bumps the generation so a timer
// that already fired becomes a no-op.
func (m *Machine[T, A]) cancelLocked() {
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// Snapshot returns a copy of the current state.
func (m *Machine[T, A]) Snapshot() Snapshot[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot[T]{
		State:    m.state,
		Feedback: m.feedback,
		Position: m.pos,
		Total:    len(m.items),
		Score:    m.score,
		Attempts: m.attempts,
		Streak:   m.streak,
		Pending:  m.timer != nil,
	}
	if len(m.items) > 0 {
		snap.Current = m.items[m.pos]
		snap.HasCurrent = true
	}
	if m.options != nil {
		snap.Options = append([]string(nil), m.options...)
	}
	return snap
}

// Close cancels pending timers. A closed machine can be revived with
// Initialize or Restart.
func (m *Machine[T, A]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelLocked()
	m.closed = true
}
