package session_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/deutschhub/internal/session"
	"github.com/vytor/deutschhub/internal/testutil"
)

type word struct {
	German  string
	English string
	Topic   string
}

var words = []word{
	{German: "Hund", English: "Dog", Topic: "Animals"},
	{German: "Katze", English: "Cat", Topic: "Animals"},
	{German: "Haus", English: "House", Topic: "Home"},
	{German: "Tisch", English: "Table", Topic: "Home"},
	{German: "Apfel", English: "Apple", Topic: "Food"},
}

// englishToGerman checks a German answer against the English prompt.
func englishToGerman(item word, answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), item.German)
}

// reverse is a deterministic stand-in for a random shuffle.
func reverse(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func TestMachine_AdvanceWrapsAround(t *testing.T) {
	m := session.NewMachine(session.Config[word, string]{})
	require.NoError(t, m.Initialize(words))

	for i := 0; i < len(words); i++ {
		require.NoError(t, m.Advance())
	}
	assert.Equal(t, 0, m.Snapshot().Position)

	require.NoError(t, m.Previous())
	snap := m.Snapshot()
	assert.Equal(t, len(words)-1, snap.Position)
	assert.Equal(t, "Apfel", snap.Current.German)
}

func TestMachine_FilterAndShuffle(t *testing.T) {
	m := session.NewMachine(session.Config[word, string]{
		Filter:   func(w word) bool { return w.Topic == "Animals" || w.Topic == "Food" },
		Shuffle:  true,
		Shuffler: reverse,
	})
	require.NoError(t, m.Initialize(words))

	var got []string
	for i := 0; i < 3; i++ {
		got = append(got, m.Snapshot().Current.German)
		require.NoError(t, m.Advance())
	}
	assert.Equal(t, []string{"Apfel", "Katze", "Hund"}, got)
	assert.Equal(t, 3, m.Snapshot().Total)
}

func TestMachine_EmptyWorkingSet(t *testing.T) {
	m := session.NewMachine(session.Config[word, string]{
		Filter: func(w word) bool { return w.Topic == "Verbs" },
		Check:  englishToGerman,
	})

	assert.ErrorIs(t, m.Initialize(words), session.ErrEmpty)
	assert.False(t, m.Snapshot().HasCurrent)

	_, err := m.Submit("Hund")
	assert.ErrorIs(t, err, session.ErrEmpty)
	assert.ErrorIs(t, m.Advance(), session.ErrEmpty)
}

func TestMachine_DirectionSensitiveCheck(t *testing.T) {
	m := session.NewMachine(session.Config[word, string]{Check: englishToGerman})
	require.NoError(t, m.Initialize([]word{
		{German: "Hund", English: "Dog"},
		{German: "Katze", English: "Cat"},
	}))

	fb, err := m.Submit("dog")
	require.NoError(t, err)
	assert.Equal(t, session.Incorrect, fb)

	require.NoError(t, m.Advance())
	require.NoError(t, m.Reveal())
	require.NoError(t, m.Advance())
	require.Equal(t, "Hund", m.Snapshot().Current.German)

	fb, err = m.Submit("  hund ")
	require.NoError(t, err)
	assert.Equal(t, session.Correct, fb)
}

func TestMachine_ScoreAndStreak(t *testing.T) {
	m := session.NewMachine(session.Config[word, string]{Check: englishToGerman})
	require.NoError(t, m.Initialize(words))

	answers := []string{"Hund", "Katze", "falsch", "Tisch"}
	for _, a := range answers[:3] {
		_, err := m.Submit(a)
		require.NoError(t, err)
		require.NoError(t, m.Advance())
	}
	snap := m.Snapshot()
	assert.Equal(t, 2, snap.Score)
	assert.Equal(t, 3, snap.Attempts)
	assert.Equal(t, 0, snap.Streak)

	_, err := m.Submit(answers[3])
	require.NoError(t, err)
	snap = m.Snapshot()
	assert.Equal(t, 3, snap.Score)
	assert.Equal(t, 4, snap.Attempts)
	assert.Equal(t, 1, snap.Streak)
	assert.Equal(t, session.Revealed, snap.State)
	assert.Equal(t, session.Correct, snap.Feedback)
}

func TestMachine_TransitionGuards(t *testing.T) {
	m := session.NewMachine(session.Config[word, string]{Check: englishToGerman})
	require.NoError(t, m.Initialize(words))

	assert.ErrorIs(t, m.Advance(), session.ErrNotRevealed)
	assert.ErrorIs(t, m.Previous(), session.ErrUnsupported)

	_, err := m.Submit("Hund")
	require.NoError(t, err)
	_, err = m.Submit("Hund")
	assert.ErrorIs(t, err, session.ErrNotActive)
	assert.ErrorIs(t, m.Reveal(), session.ErrNotActive)

	nav := session.NewMachine(session.Config[word, string]{})
	require.NoError(t, nav.Initialize(words))
	_, err = nav.Submit("Hund")
	assert.ErrorIs(t, err, session.ErrUnsupported)
}

func TestMachine_RevealCountsAsMiss(t *testing.T) {
	m := session.NewMachine(session.Config[word, string]{Check: englishToGerman})
	require.NoError(t, m.Initialize(words))

	_, err := m.Submit("Hund")
	require.NoError(t, err)
	require.NoError(t, m.Advance())
	require.NoError(t, m.Reveal())

	snap := m.Snapshot()
	assert.Equal(t, session.Revealed, snap.State)
	assert.Equal(t, session.Incorrect, snap.Feedback)
	assert.Equal(t, 2, snap.Attempts)
	assert.Equal(t, 1, snap.Score)
	assert.Equal(t, 0, snap.Streak)
}

func TestMachine_NavigationRevealFlipsCard(t *testing.T) {
	m := session.NewMachine(session.Config[word, string]{})
	require.NoError(t, m.Initialize(words))

	require.NoError(t, m.Reveal())
	assert.Equal(t, session.Revealed, m.Snapshot().State)
	assert.Equal(t, 0, m.Snapshot().Attempts)

	require.NoError(t, m.Advance())
	assert.Equal(t, session.Active, m.Snapshot().State)
}

func TestMachine_AutoAdvance(t *testing.T) {
	sched := &testutil.FakeScheduler{}
	m := session.NewMachine(session.Config[word, string]{
		Check:       englishToGerman,
		AutoAdvance: 1200 * time.Millisecond,
		Scheduler:   sched,
	})
	require.NoError(t, m.Initialize(words))

	_, err := m.Submit("falsch")
	require.NoError(t, err)
	assert.Equal(t, 0, sched.Pending(), "a miss waits for a manual advance")
	require.NoError(t, m.Advance())

	_, err = m.Submit("Katze")
	require.NoError(t, err)
	require.Equal(t, 1, sched.Pending())
	assert.Equal(t, 1200*time.Millisecond, sched.Last().Delay)
	assert.True(t, m.Snapshot().Pending)

	assert.Equal(t, 1, sched.FireAll())
	snap := m.Snapshot()
	assert.Equal(t, 2, snap.Position)
	assert.Equal(t, session.Active, snap.State)
	assert.Equal(t, session.Unanswered, snap.Feedback)
	assert.False(t, snap.Pending)
}

func TestMachine_StaleTimerIsNoop(t *testing.T) {
	sched := &testutil.FakeScheduler{}
	m := session.NewMachine(session.Config[word, string]{
		Check:       englishToGerman,
		AutoAdvance: time.Second,
		Scheduler:   sched,
	})
	require.NoError(t, m.Initialize(words))

	_, err := m.Submit("Hund")
	require.NoError(t, err)
	timer := sched.Last()

	// Manual advance beats the timer; its late callback must not skip an item.
	require.NoError(t, m.Advance())
	assert.Equal(t, 0, sched.Pending())
	timer.Fire()
	assert.Equal(t, 1, m.Snapshot().Position)

	_, err = m.Submit("Katze")
	require.NoError(t, err)
	m.Close()
	sched.Last().Fire()
	assert.Equal(t, 1, m.Snapshot().Position)
	assert.Equal(t, session.Revealed, m.Snapshot().State)
}

func TestMachine_FixedLengthRoundIsWon(t *testing.T) {
	m := session.NewMachine(session.Config[word, string]{
		Check: englishToGerman,
		Limit: 3,
	})
	require.NoError(t, m.Initialize(words))
	assert.Equal(t, 3, m.Snapshot().Total)

	for _, a := range []string{"Hund", "nein"} {
		_, err := m.Submit(a)
		require.NoError(t, err)
		require.NoError(t, m.Advance())
	}
	_, err := m.Submit("Haus")
	require.NoError(t, err)

	snap := m.Snapshot()
	assert.Equal(t, session.Won, snap.State)
	assert.Equal(t, 2, snap.Score)
	assert.Equal(t, 3, snap.Attempts)
	assert.ErrorIs(t, m.Advance(), session.ErrFinished)

	require.NoError(t, m.Restart())
	snap = m.Snapshot()
	assert.Equal(t, session.Active, snap.State)
	assert.Zero(t, snap.Score)
	assert.Zero(t, snap.Attempts)
	assert.Zero(t, snap.Position)
}

func TestMachine_FixedLengthMissOnLastItemEndsRound(t *testing.T) {
	m := session.NewMachine(session.Config[word, string]{Check: englishToGerman, Limit: 1})
	require.NoError(t, m.Initialize(words))

	_, err := m.Submit("nein")
	require.NoError(t, err)
	require.NoError(t, m.Advance())
	assert.Equal(t, session.Won, m.Snapshot().State)
}

func TestMachine_OptionsRedrawnOnMove(t *testing.T) {
	calls := 0
	m := session.NewMachine(session.Config[word, string]{
		Check: englishToGerman,
		Options: func(dataset []word, current int, shuffle session.Shuffler) []string {
			calls++
			return []string{dataset[current].German}
		},
	})
	require.NoError(t, m.Initialize(words))
	assert.Equal(t, []string{"Hund"}, m.Snapshot().Options)

	require.NoError(t, m.Reveal())
	require.NoError(t, m.Advance())
	assert.Equal(t, []string{"Katze"}, m.Snapshot().Options)
	assert.Equal(t, 2, calls)
}

func TestMachine_OptionsSeeWholeDataset(t *testing.T) {
	var seen [][]word
	m := session.NewMachine(session.Config[word, string]{
		Filter:   func(w word) bool { return w.Topic == "Home" },
		Shuffle:  true,
		Shuffler: reverse,
		Check:    englishToGerman,
		Options: func(dataset []word, current int, shuffle session.Shuffler) []string {
			seen = append(seen, dataset)
			return []string{dataset[current].German}
		},
	})
	require.NoError(t, m.Initialize(words))

	snap := m.Snapshot()
	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, "Tisch", snap.Current.German)
	assert.Equal(t, []string{"Tisch"}, snap.Options, "current indexes the dataset")
	require.Len(t, seen, 1)
	assert.Equal(t, words, seen[0], "filtered-out items stay available")
}
