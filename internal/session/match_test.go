package session_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/deutschhub/internal/session"
	"github.com/vytor/deutschhub/internal/testutil"
)

func newMatchGame(t *testing.T, sched session.Scheduler, pairs ...session.Pair) *session.MatchGame {
	t.Helper()
	g := session.NewMatchGame(session.MatchConfig{
		Pairs:         6,
		LeftSide:      "de",
		RightSide:     "en",
		MismatchDelay: time.Second,
		Shuffler:      session.NoShuffle,
		Scheduler:     sched,
	})
	require.NoError(t, g.Initialize(pairs))
	return g
}

var hundKatze = []session.Pair{
	{Key: "0", Left: "Hund", Right: "Dog"},
	{Key: "1", Left: "Katze", Right: "Cat"},
}

func TestMatchGame_DealsTwoCardsPerPair(t *testing.T) {
	g := newMatchGame(t, &testutil.FakeScheduler{}, hundKatze...)

	snap := g.Snapshot()
	require.Len(t, snap.Cards, 4)
	assert.Equal(t, 2, snap.TotalPairs)

	ids := make([]string, len(snap.Cards))
	for i, c := range snap.Cards {
		ids[i] = c.ID
	}
	sort.Strings(ids)
	assert.Equal(t, []string{"0-de", "0-en", "1-de", "1-en"}, ids)
}

func TestMatchGame_CapsPairs(t *testing.T) {
	var pairs []session.Pair
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		pairs = append(pairs, session.Pair{Key: k, Left: k, Right: k})
	}
	g := session.NewMatchGame(session.MatchConfig{Pairs: 6})
	require.NoError(t, g.Initialize(pairs))

	assert.Len(t, g.Snapshot().Cards, 12)
}

func TestMatchGame_TooFewPairs(t *testing.T) {
	g := session.NewMatchGame(session.MatchConfig{Pairs: 6})
	assert.ErrorIs(t, g.Initialize(hundKatze[:1]), session.ErrTooFewPairs)

	_, err := g.Select("0-de")
	assert.ErrorIs(t, err, session.ErrTooFewPairs)
}

func TestMatchGame_MatchAndWin(t *testing.T) {
	g := newMatchGame(t, &testutil.FakeScheduler{}, hundKatze...)

	out, err := g.Select("0-de")
	require.NoError(t, err)
	assert.Equal(t, session.Selected, out)

	out, err = g.Select("0-en")
	require.NoError(t, err)
	assert.Equal(t, session.Matched, out)

	snap := g.Snapshot()
	assert.Equal(t, 10, snap.Score)
	assert.Equal(t, 1, snap.Attempts)
	assert.Equal(t, 1, snap.MatchedPairs)
	for _, c := range snap.Cards {
		assert.Equal(t, c.PairKey == "0", c.Matched, c.ID)
		assert.False(t, c.Selected, c.ID)
	}

	out, err = g.Select("0-de")
	require.NoError(t, err)
	assert.Equal(t, session.Ignored, out, "matched cards leave play")

	_, err = g.Select("1-en")
	require.NoError(t, err)
	out, err = g.Select("1-de")
	require.NoError(t, err)
	assert.Equal(t, session.Matched, out)

	snap = g.Snapshot()
	assert.Equal(t, session.Won, snap.State)
	assert.Equal(t, 20, snap.Score)
	assert.Equal(t, 2, snap.Attempts)

	_, err = g.Select("1-de")
	assert.ErrorIs(t, err, session.ErrFinished)
}

func TestMatchGame_MismatchClearsAfterDelay(t *testing.T) {
	sched := &testutil.FakeScheduler{}
	g := newMatchGame(t, sched, hundKatze...)

	_, err := g.Select("0-de")
	require.NoError(t, err)
	out, err := g.Select("1-en")
	require.NoError(t, err)
	assert.Equal(t, session.Mismatched, out)
	require.Equal(t, 1, sched.Pending())
	assert.Equal(t, time.Second, sched.Last().Delay)

	out, err = g.Select("1-de")
	require.NoError(t, err)
	assert.Equal(t, session.Ignored, out, "a third selection waits for the buffer to clear")

	snap := g.Snapshot()
	assert.True(t, snap.Pending)
	selected := 0
	for _, c := range snap.Cards {
		assert.False(t, c.Matched)
		if c.Selected {
			selected++
		}
	}
	assert.Equal(t, 2, selected)

	sched.FireAll()
	snap = g.Snapshot()
	assert.False(t, snap.Pending)
	assert.Equal(t, 1, snap.Attempts)
	assert.Zero(t, snap.Score)
	for _, c := range snap.Cards {
		assert.False(t, c.Selected)
		assert.False(t, c.Matched)
	}

	out, err = g.Select("1-de")
	require.NoError(t, err)
	assert.Equal(t, session.Selected, out)
}

func TestMatchGame_ReselectAndUnknownCard(t *testing.T) {
	g := newMatchGame(t, &testutil.FakeScheduler{}, hundKatze...)

	_, err := g.Select("0-de")
	require.NoError(t, err)
	out, err := g.Select("0-de")
	require.NoError(t, err)
	assert.Equal(t, session.Ignored, out)
	assert.Zero(t, g.Snapshot().Attempts)

	_, err = g.Select("9-de")
	assert.ErrorIs(t, err, session.ErrUnknownCard)
}

func TestMatchGame_RestartCancelsPendingClear(t *testing.T) {
	sched := &testutil.FakeScheduler{}
	g := newMatchGame(t, sched, hundKatze...)

	_, err := g.Select("0-de")
	require.NoError(t, err)
	_, err = g.Select("1-en")
	require.NoError(t, err)
	stale := sched.Last()

	require.NoError(t, g.Restart())
	assert.Equal(t, 0, sched.Pending())

	_, err = g.Select("1-de")
	require.NoError(t, err)
	stale.Fire()

	selected := 0
	for _, c := range g.Snapshot().Cards {
		if c.Selected {
			selected++
		}
	}
	assert.Equal(t, 1, selected, "a stale clear must not touch the new game")
}
