// Package session implements the per-quiz state machines: a generic
// question/answer machine over any entry type and a card-matching game.
//
// Both are safe to drive from concurrent HTTP handlers. Delayed transitions
// (auto-advance after a correct answer, clearing a mismatched selection) go
// through an injected Scheduler so tests can fire them by hand.
package session

import "errors"

// State is the lifecycle position of a session.
type State int

const (
	Active   State = iota // awaiting input
	Revealed              // answer submitted or shown, awaiting advance
	Won                   // round finished
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Revealed:
		return "revealed"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// Feedback is the outcome of the current item.
type Feedback int

const (
	Unanswered Feedback = iota
	Correct
	Incorrect
)

func (f Feedback) String() string {
	switch f {
	case Unanswered:
		return "unanswered"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

var (
	ErrNotActive   = errors.New("session: not awaiting an answer")
	ErrNotRevealed = errors.New("session: answer has not been revealed")
	ErrFinished    = errors.New("session: round is finished")
	ErrEmpty       = errors.New("session: no entries to practice")
	ErrUnsupported = errors.New("session: operation not supported by this mode")
	ErrTooFewPairs = errors.New("session: at least two pairs are required")
	ErrUnknownCard = errors.New("session: unknown card")
)
