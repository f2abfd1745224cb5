package quiz

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vytor/deutschhub/internal/models"
	"github.com/vytor/deutschhub/internal/session"
)

// choiceCount is the number of options in multiple-choice modes.
const choiceCount = 4

var (
	ErrUnknownMode      = errors.New("quiz: unknown mode")
	ErrInvalidDirection = errors.New("quiz: direction must be en_de or de_en")
	// ErrBlankAnswer rejects an answer with nothing in it; no attempt is counted.
	ErrBlankAnswer = errors.New("quiz: answer is blank")
)

// New builds an unloaded session for opts. Call Load before use.
func New(opts Options, st Settings) (Session, error) {
	if opts.Direction == "" {
		opts.Direction = EnglishToGerman
	}
	if opts.Direction != EnglishToGerman && opts.Direction != GermanToEnglish {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, opts.Direction)
	}

	switch opts.Mode {
	case ModeFlashcards:
		return flashcards(opts, st), nil
	case ModeMultipleChoice:
		return multipleChoice(opts, st), nil
	case ModeWriting:
		return writing(opts, st), nil
	case ModeMatchPairs:
		return matchPairs(opts, st), nil
	case ModeVerbParticiple:
		return verbParticiple(st), nil
	case ModeAdjectives:
		return adjectives(st), nil
	case ModeOpposites:
		return opposites(st), nil
	case ModeWordGender:
		return wordGender(st), nil
	case ModeVerbPreposition:
		return verbPreposition(st), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, opts.Mode)
	}
}

// categoryFilter keeps entries in one of categories; none selected keeps all.
func categoryFilter(categories []string) func(models.VocabularyEntry) bool {
	if len(categories) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	return func(e models.VocabularyEntry) bool {
		_, ok := set[e.Category]
		return ok
	}
}

func vocabulary(d Datasets) []models.VocabularyEntry { return d.Vocabulary }

// germanChoices offers the current item's German text among distractors
// drawn from the rest of the dataset, whatever the category filter keeps.
func germanChoices[T any](german func(T) string) func([]T, int, session.Shuffler) []string {
	return func(dataset []T, current int, shuffle session.Shuffler) []string {
		drawn := session.Distractors(dataset, current, choiceCount-1, shuffle)
		texts := make([]string, len(drawn))
		for i, d := range drawn {
			texts[i] = german(d)
		}
		return session.ChoiceOptions(german(dataset[current]), texts, shuffle)
	}
}

func flashcards(opts Options, st Settings) Session {
	return &machineSession[models.VocabularyEntry]{
		mode: ModeFlashcards,
		machine: session.NewMachine(session.Config[models.VocabularyEntry, Answer]{
			Filter:    categoryFilter(opts.Categories),
			Shuffle:   opts.shuffleOr(false),
			Shuffler:  st.Shuffler,
			Scheduler: st.Scheduler,
		}),
		pick: vocabulary,
		render: func(v *View, e models.VocabularyEntry, revealed bool, _ session.Feedback) {
			v.Prompt = e.German
			v.Hint = e.Category
			v.Pronunciation = pronounce(e.German)
			if revealed {
				v.Solution = e.English
				v.Explanation = e.Usage
			}
		},
	}
}

func multipleChoice(opts Options, st Settings) Session {
	return &machineSession[models.VocabularyEntry]{
		mode: ModeMultipleChoice,
		machine: session.NewMachine(session.Config[models.VocabularyEntry, Answer]{
			Filter:   categoryFilter(opts.Categories),
			Shuffle:  opts.shuffleOr(true),
			Shuffler: st.Shuffler,
			Check: func(e models.VocabularyEntry, a Answer) bool {
				return sameText(a.Text, e.German)
			},
			Options:     germanChoices(func(e models.VocabularyEntry) string { return e.German }),
			AutoAdvance: st.ChoiceAdvanceDelay,
			Scheduler:   st.Scheduler,
		}),
		pick: vocabulary,
		render: func(v *View, e models.VocabularyEntry, revealed bool, _ session.Feedback) {
			v.Prompt = e.English
			v.Hint = e.Category
			if revealed {
				v.Solution = e.German
				v.Explanation = e.Usage
				v.Pronunciation = pronounce(e.German)
			}
		},
	}
}

func writing(opts Options, st Settings) Session {
	prompt, expected := func(e models.VocabularyEntry) string { return e.English },
		func(e models.VocabularyEntry) string { return e.German }
	if opts.Direction == GermanToEnglish {
		prompt, expected = expected, prompt
	}

	return &machineSession[models.VocabularyEntry]{
		mode: ModeWriting,
		machine: session.NewMachine(session.Config[models.VocabularyEntry, Answer]{
			Filter:   categoryFilter(opts.Categories),
			Shuffle:  opts.shuffleOr(true),
			Shuffler: st.Shuffler,
			Check: func(e models.VocabularyEntry, a Answer) bool {
				return sameWriting(a.Text, expected(e))
			},
			AutoAdvance: st.WritingAdvanceDelay,
			Scheduler:   st.Scheduler,
		}),
		pick: vocabulary,
		render: func(v *View, e models.VocabularyEntry, revealed bool, _ session.Feedback) {
			v.Prompt = prompt(e)
			v.Hint = e.Category
			if opts.Direction == GermanToEnglish || revealed {
				v.Pronunciation = pronounce(e.German)
			}
			if revealed {
				v.Solution = expected(e)
				v.Explanation = e.Usage
			}
		},
	}
}

func matchPairs(opts Options, st Settings) Session {
	keep := categoryFilter(opts.Categories)
	return &matchSession{
		mode: ModeMatchPairs,
		game: session.NewMatchGame(session.MatchConfig{
			Pairs:         st.MatchPairs,
			LeftSide:      "de",
			RightSide:     "en",
			MismatchDelay: st.MismatchDelay,
			Shuffler:      st.Shuffler,
			Scheduler:     st.Scheduler,
		}),
		pairs: func(d Datasets) []session.Pair {
			var pairs []session.Pair
			for _, e := range d.Vocabulary {
				if keep != nil && !keep(e) {
					continue
				}
				pairs = append(pairs, session.Pair{Key: strconv.Itoa(e.ID), Left: e.German, Right: e.English})
			}
			return pairs
		},
	}
}

func verbParticiple(st Settings) Session {
	return &machineSession[models.VerbParticiple]{
		mode: ModeVerbParticiple,
		machine: session.NewMachine(session.Config[models.VerbParticiple, Answer]{
			Shuffle:  true,
			Shuffler: st.Shuffler,
			Check: func(v models.VerbParticiple, a Answer) bool {
				return sameText(a.Text, v.PastParticiple)
			},
			Scheduler: st.Scheduler,
		}),
		pick: func(d Datasets) []models.VerbParticiple { return d.Verbs },
		render: func(v *View, e models.VerbParticiple, revealed bool, _ session.Feedback) {
			v.Prompt = e.Infinitive
			v.Hint = e.EnglishMeaning
			if revealed {
				v.Solution = e.PastParticiple
				v.Pronunciation = pronounce(e.PastParticiple)
			}
		},
	}
}

func adjectives(st Settings) Session {
	return &machineSession[models.AdjectivePair]{
		mode: ModeAdjectives,
		machine: session.NewMachine(session.Config[models.AdjectivePair, Answer]{
			Shuffle:  true,
			Shuffler: st.Shuffler,
			Check: func(p models.AdjectivePair, a Answer) bool {
				return sameText(a.Text, p.German)
			},
			Options:   germanChoices(func(p models.AdjectivePair) string { return p.German }),
			Limit:     st.RoundLength,
			Scheduler: st.Scheduler,
		}),
		pick: func(d Datasets) []models.AdjectivePair { return d.Adjectives },
		render: func(v *View, p models.AdjectivePair, revealed bool, _ session.Feedback) {
			v.Prompt = p.English
			if revealed {
				v.Solution = p.German
				v.Explanation = p.ExampleSentence
				v.Pronunciation = pronounce(p.German)
			}
		},
	}
}

func opposites(st Settings) Session {
	return &matchSession{
		mode: ModeOpposites,
		game: session.NewMatchGame(session.MatchConfig{
			Pairs:         st.MatchPairs,
			LeftSide:      "base",
			RightSide:     "opp",
			MismatchDelay: st.MismatchDelay,
			Shuffler:      st.Shuffler,
			Scheduler:     st.Scheduler,
		}),
		pairs: func(d Datasets) []session.Pair {
			pairs := make([]session.Pair, 0, len(d.Opposites))
			for _, o := range d.Opposites {
				pairs = append(pairs, session.Pair{Key: strconv.Itoa(o.ID), Left: o.Word, Right: o.OppositeWord})
			}
			return pairs
		},
	}
}

func wordGender(st Settings) Session {
	return &machineSession[models.WordGenderEntry]{
		mode: ModeWordGender,
		machine: session.NewMachine(session.Config[models.WordGenderEntry, Answer]{
			Shuffle:  true,
			Shuffler: st.Shuffler,
			Check: func(e models.WordGenderEntry, a Answer) bool {
				return sameText(a.Text, e.Gender)
			},
			Options: func([]models.WordGenderEntry, int, session.Shuffler) []string {
				return append([]string(nil), models.Articles...)
			},
			AutoAdvance: st.GenderAdvanceDelay,
			Scheduler:   st.Scheduler,
		}),
		pick: func(d Datasets) []models.WordGenderEntry { return d.Genders },
		render: func(v *View, e models.WordGenderEntry, revealed bool, fb session.Feedback) {
			v.Prompt = e.Word
			v.Hint = e.Translation
			if revealed {
				v.Solution = e.Gender + " " + e.Word
				v.Pronunciation = pronounce(v.Solution)
				if fb == session.Incorrect {
					v.Explanation = e.Rule
				}
			}
		},
	}
}

func verbPreposition(st Settings) Session {
	return &machineSession[models.VerbPrepositionEntry]{
		mode: ModeVerbPreposition,
		machine: session.NewMachine(session.Config[models.VerbPrepositionEntry, Answer]{
			Shuffle:  true,
			Shuffler: st.Shuffler,
			Check: func(e models.VerbPrepositionEntry, a Answer) bool {
				return sameText(a.Preposition, e.Preposition) && sameText(a.Case, e.GrammaticalCase)
			},
			Options: func([]models.VerbPrepositionEntry, int, session.Shuffler) []string {
				return append([]string(nil), models.GrammaticalCases...)
			},
			Scheduler: st.Scheduler,
		}),
		pick: func(d Datasets) []models.VerbPrepositionEntry { return d.Prepositions },
		render: func(v *View, e models.VerbPrepositionEntry, revealed bool, _ session.Feedback) {
			v.Prompt = e.Verb
			v.Hint = e.EnglishMeaning
			if revealed {
				v.Solution = e.Preposition + " + " + e.GrammaticalCase
				v.Explanation = e.ExampleSentence
				v.Pronunciation = pronounce(e.ExampleSentence)
			}
		},
	}
}
