package session

import (
	"sync"
	"time"
)

// MatchScore is awarded for every matched pair.
const MatchScore = 10

// Pair is one matchable couple. Key identifies the pair and must be unique
// within a game.
type Pair struct {
	Key   string
	Left  string
	Right string
}

// Card is one face-up tile of a match game.
type Card struct {
	ID       string `json:"id"`
	PairKey  string `json:"pair_key"`
	Side     string `json:"side"`
	Text     string `json:"text"`
	Matched  bool   `json:"matched"`
	Selected bool   `json:"selected"`
}

// Outcome describes what a Select call did.
type Outcome int

const (
	Ignored    Outcome = iota // buffer full, card matched or already selected
	Selected                  // first card of a pair chosen
	Matched                   // second card completed a pair
	Mismatched                // second card belongs to another pair
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Selected:
		return "selected"
	case Matched:
		return "matched"
	case Mismatched:
		return "mismatched"
	default:
		return "unknown"
	}
}

type MatchConfig struct {
	// Pairs caps how many pairs are dealt per game.
	Pairs int
	// LeftSide and RightSide suffix card IDs, e.g. "de" and "en".
	LeftSide  string
	RightSide string
	// MismatchDelay is how long a wrong selection stays visible.
	MismatchDelay time.Duration
	Shuffler      Shuffler
	Scheduler     Scheduler
}

type MatchSnapshot struct {
	State        State
	Cards        []Card
	Score        int
	Attempts     int
	MatchedPairs int
	TotalPairs   int
	// Pending reports a mismatched selection waiting to be cleared.
	Pending bool
}

// MatchGame deals cards for a set of pairs and tracks a two-card selection.
type MatchGame struct {
	mu  sync.Mutex
	cfg MatchConfig

	source   []Pair
	cards    []Card
	selected []int
	matched  int

	state    State
	score    int
	attempts int

	gen    uint64
	timer  Timer
	closed bool
}

func NewMatchGame(cfg MatchConfig) *MatchGame {
	if cfg.Pairs < 2 {
		cfg.Pairs = 2
	}
	if cfg.LeftSide == "" {
		cfg.LeftSide = "left"
	}
	if cfg.RightSide == "" {
		cfg.RightSide = "right"
	}
	if cfg.Shuffler == nil {
		cfg.Shuffler = RandomShuffle
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = ClockScheduler
	}
	return &MatchGame{cfg: cfg}
}

// Initialize deals a new game from a random subset of pairs.
func (g *MatchGame) Initialize(pairs []Pair) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.source = pairs
	return g.dealLocked()
}

// Restart deals again from the pairs last passed to Initialize.
func (g *MatchGame) Restart() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.dealLocked()
}

func (g *MatchGame) dealLocked() error {
	g.cancelLocked()
	g.closed = false
	g.cards = nil
	g.selected = nil
	g.matched = 0
	g.score, g.attempts = 0, 0
	g.state = Active

	if len(g.source) < 2 {
		return ErrTooFewPairs
	}

	picked := Shuffled(g.source, g.cfg.Shuffler)
	if len(picked) > g.cfg.Pairs {
		picked = picked[:g.cfg.Pairs]
	}

	cards := make([]Card, 0, 2*len(picked))
	for _, p := range picked {
		cards = append(cards,
			Card{ID: p.Key + "-" + g.cfg.LeftSide, PairKey: p.Key, Side: g.cfg.LeftSide, Text: p.Left},
			Card{ID: p.Key + "-" + g.cfg.RightSide, PairKey: p.Key, Side: g.cfg.RightSide, Text: p.Right},
		)
	}
	g.cards = Shuffled(cards, g.cfg.Shuffler)
	return nil
}

// Select picks the card with the given ID.
func (g *MatchGame) Select(cardID string) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.cards) == 0 {
		return Ignored, ErrTooFewPairs
	}
	if g.state == Won {
		return Ignored, ErrFinished
	}

	idx := -1
	for i := range g.cards {
		if g.cards[i].ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Ignored, ErrUnknownCard
	}
	if g.cards[idx].Matched || len(g.selected) >= 2 {
		return Ignored, nil
	}
	for _, s := range g.selected {
		if s == idx {
			return Ignored, nil
		}
	}

	g.selected = append(g.selected, idx)
	if len(g.selected) < 2 {
		return Selected, nil
	}

	g.attempts++
	first, second := g.selected[0], g.selected[1]
	if g.cards[first].PairKey != g.cards[second].PairKey {
		g.scheduleClearLocked()
		return Mismatched, nil
	}

	g.cards[first].Matched = true
	g.cards[second].Matched = true
	g.selected = nil
	g.matched++
	g.score += MatchScore
	if g.matched == len(g.cards)/2 {
		g.state = Won
	}
	return Matched, nil
}

func (g *MatchGame) scheduleClearLocked() {
	if g.cfg.MismatchDelay <= 0 {
		g.selected = nil
		return
	}
	g.cancelLocked()
	gen := g.gen
	g.timer = g.cfg.Scheduler.AfterFunc(g.cfg.MismatchDelay, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.closed || gen != g.gen {
			return
		}
		g.timer = nil
		g.selected = nil
	})
}

func (g *MatchGame) cancelLocked() {
	g.gen++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

func (g *MatchGame) Snapshot() MatchSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	cards := make([]Card, len(g.cards))
	copy(cards, g.cards)
	for _, s := range g.selected {
		cards[s].Selected = true
	}
	return MatchSnapshot{
		State:        g.state,
		Cards:        cards,
		Score:        g.score,
		Attempts:     g.attempts,
		MatchedPairs: g.matched,
		TotalPairs:   len(g.cards) / 2,
		Pending:      g.timer != nil,
	}
}

func (g *MatchGame) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cancelLocked()
	g.closed = true
}
