// Package quiz configures the generic session machines for each practice
// mode and renders their state as a View.
package quiz

import (
	"strings"
	"time"

	"github.com/vytor/deutschhub/internal/models"
	"github.com/vytor/deutschhub/internal/session"
)

type Mode string

const (
	ModeFlashcards      Mode = "flashcards"
	ModeMultipleChoice  Mode = "multiple_choice"
	ModeWriting         Mode = "writing"
	ModeMatchPairs      Mode = "match_pairs"
	ModeVerbParticiple  Mode = "verb_participle"
	ModeAdjectives      Mode = "adjectives"
	ModeOpposites       Mode = "opposites"
	ModeWordGender      Mode = "word_gender"
	ModeVerbPreposition Mode = "verb_preposition"
)

// Modes lists every mode in menu order.
var Modes = []Mode{
	ModeFlashcards,
	ModeMultipleChoice,
	ModeWriting,
	ModeMatchPairs,
	ModeVerbParticiple,
	ModeAdjectives,
	ModeOpposites,
	ModeWordGender,
	ModeVerbPreposition,
}

// UsesVocabulary reports whether the mode practices the active vocabulary
// rather than a bundled reference dataset.
func (m Mode) UsesVocabulary() bool {
	switch m {
	case ModeFlashcards, ModeMultipleChoice, ModeWriting, ModeMatchPairs:
		return true
	}
	return false
}

func (m Mode) Valid() bool {
	for _, mode := range Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Direction is the writing-mode translation direction.
type Direction string

const (
	EnglishToGerman Direction = "en_de"
	GermanToEnglish Direction = "de_en"
)

// Options are chosen by the learner when starting a session.
type Options struct {
	Mode       Mode     `json:"mode"`
	Categories []string `json:"categories,omitempty"`
	// Shuffle overrides the mode's default order when set. Multiple choice
	// and writing shuffle by default; flashcards keep the dataset order.
	Shuffle   *bool     `json:"shuffle,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

func (o Options) shuffleOr(def bool) bool {
	if o.Shuffle == nil {
		return def
	}
	return *o.Shuffle
}

// Settings are the server-wide knobs shared by every session.
type Settings struct {
	MatchPairs          int
	RoundLength         int
	ChoiceAdvanceDelay  time.Duration
	WritingAdvanceDelay time.Duration
	GenderAdvanceDelay  time.Duration
	MismatchDelay       time.Duration
	Shuffler            session.Shuffler
	Scheduler           session.Scheduler
}

// Datasets bundles everything a session may draw from.
type Datasets struct {
	Vocabulary   []models.VocabularyEntry
	Verbs        []models.VerbParticiple
	Adjectives   []models.AdjectivePair
	Opposites    []models.OppositePair
	Genders      []models.WordGenderEntry
	Prepositions []models.VerbPrepositionEntry
}

// Answer carries every answer shape; each mode reads the fields it needs.
type Answer struct {
	Text        string `json:"answer"`
	Preposition string `json:"preposition,omitempty"`
	Case        string `json:"case,omitempty"`
}

// Blank reports whether every field is empty after trimming.
func (a Answer) Blank() bool {
	return strings.TrimSpace(a.Text) == "" &&
		strings.TrimSpace(a.Preposition) == "" &&
		strings.TrimSpace(a.Case) == ""
}

// Pronunciation is handed to the client's speech synthesizer as-is.
type Pronunciation struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// PronunciationLang is the language tag for every spoken word.
const PronunciationLang = "de-DE"

func pronounce(text string) *Pronunciation {
	if text == "" {
		return nil
	}
	return &Pronunciation{Text: text, Lang: PronunciationLang}
}

// View is the render-ready state of a session.
type View struct {
	Mode     Mode   `json:"mode"`
	State    string `json:"state"`
	Feedback string `json:"feedback"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
	Score    int    `json:"score"`
	Attempts int    `json:"attempts"`
	Streak   int    `json:"streak"`
	Pending  bool   `json:"pending"`

	Prompt  string   `json:"prompt,omitempty"`
	Hint    string   `json:"hint,omitempty"`
	Options []string `json:"options,omitempty"`

	// Shown once the item is revealed.
	Solution    string `json:"solution,omitempty"`
	Explanation string `json:"explanation,omitempty"`

	Pronunciation *Pronunciation `json:"pronunciation,omitempty"`

	Cards        []session.Card `json:"cards,omitempty"`
	MatchedPairs int            `json:"matched_pairs,omitempty"`
	TotalPairs   int            `json:"total_pairs,omitempty"`
}

// Result reports what an answer or selection did.
type Result struct {
	Feedback string `json:"feedback,omitempty"`
	Outcome  string `json:"outcome,omitempty"`
}

// Session is one running practice session of any mode.
type Session interface {
	Mode() Mode
	// Load (re)initializes the session from d, discarding all progress.
	Load(d Datasets) error
	Answer(a Answer) (Result, error)
	Advance() error
	Previous() error
	Reveal() error
	Select(cardID string) (Result, error)
	Restart() error
	View() View
	Close()
}
