package quiz

import (
	"github.com/vytor/deutschhub/internal/session"
)

// machineSession adapts a session.Machine to the Session interface.
type machineSession[T any] struct {
	mode    Mode
	machine *session.Machine[T, Answer]
	pick    func(Datasets) []T
	render  func(v *View, item T, revealed bool, fb session.Feedback)
}

func (s *machineSession[T]) Mode() Mode { return s.mode }

func (s *machineSession[T]) Load(d Datasets) error {
	return s.machine.Initialize(s.pick(d))
}

func (s *machineSession[T]) Answer(a Answer) (Result, error) {
	if a.Blank() {
		return Result{}, ErrBlankAnswer
	}
	fb, err := s.machine.Submit(a)
	if err != nil {
		return Result{}, err
	}
	return Result{Feedback: fb.String()}, nil
}

func (s *machineSession[T]) Advance() error  { return s.machine.Advance() }
func (s *machineSession[T]) Previous() error { return s.machine.Previous() }
func (s *machineSession[T]) Reveal() error   { return s.machine.Reveal() }
func (s *machineSession[T]) Restart() error  { return s.machine.Restart() }
func (s *machineSession[T]) Close()          { s.machine.Close() }

func (s *machineSession[T]) Select(string) (Result, error) {
	return Result{}, session.ErrUnsupported
}

func (s *machineSession[T]) View() View {
	snap := s.machine.Snapshot()
	v := View{
		Mode:     s.mode,
		State:    snap.State.String(),
		Feedback: snap.Feedback.String(),
		Position: snap.Position,
		Total:    snap.Total,
		Score:    snap.Score,
		Attempts: snap.Attempts,
		Streak:   snap.Streak,
		Pending:  snap.Pending,
		Options:  snap.Options,
	}
	if snap.HasCurrent {
		s.render(&v, snap.Current, snap.State != session.Active, snap.Feedback)
	}
	return v
}

// matchSession adapts a session.MatchGame to the Session interface.
type matchSession struct {
	mode  Mode
	game  *session.MatchGame
	pairs func(Datasets) []session.Pair
}

func (s *matchSession) Mode() Mode { return s.mode }

func (s *matchSession) Load(d Datasets) error {
	return s.game.Initialize(s.pairs(d))
}

func (s *matchSession) Answer(Answer) (Result, error) {
	return Result{}, session.ErrUnsupported
}

func (s *matchSession) Advance() error  { return session.ErrUnsupported }
func (s *matchSession) Previous() error { return session.ErrUnsupported }
func (s *matchSession) Reveal() error   { return session.ErrUnsupported }
func (s *matchSession) Restart() error  { return s.game.Restart() }
func (s *matchSession) Close()          { s.game.Close() }

func (s *matchSession) Select(cardID string) (Result, error) {
	out, err := s.game.Select(cardID)
	if err != nil {
		return Result{}, err
	}
	return Result{Outcome: out.String()}, nil
}

func (s *matchSession) View() View {
	snap := s.game.Snapshot()
	return View{
		Mode:         s.mode,
		State:        snap.State.String(),
		Feedback:     session.Unanswered.String(),
		Total:        len(snap.Cards),
		Score:        snap.Score,
		Attempts:     snap.Attempts,
		Pending:      snap.Pending,
		Cards:        snap.Cards,
		MatchedPairs: snap.MatchedPairs,
		TotalPairs:   snap.TotalPairs,
	}
}
