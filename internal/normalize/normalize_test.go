package normalize_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/deutschhub/internal/errors"
	"github.com/vytor/deutschhub/internal/models"
	"github.com/vytor/deutschhub/internal/normalize"
	"github.com/vytor/deutschhub/internal/sheet"
)

func TestVocabulary_IDsFollowFilteredOrder(t *testing.T) {
	rows := []sheet.Row{
		{"German": "Hund", "English": "Dog", "Category": "Animals"},
		{"German": "", "English": "Cat"},
		{"German": "   ", "English": "Bird"},
		{"german": "Haus", "english": "House", "usage": "Das Haus ist groß."},
	}

	entries, err := normalize.Vocabulary(rows)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, models.VocabularyEntry{ID: 0, German: "Hund", English: "Dog", Category: "Animals"}, entries[0])
	assert.Equal(t, models.VocabularyEntry{
		ID:       1,
		German:   "Haus",
		English:  "House",
		Category: models.DefaultCategory,
		Usage:    "Das Haus ist groß.",
	}, entries[1])
}

func TestVocabulary_AliasResolution(t *testing.T) {
	tests := []struct {
		name string
		row  sheet.Row
		want models.VocabularyEntry
	}{
		{
			name: "exact header beats case-insensitive header",
			row:  sheet.Row{"GERMAN": "falsch", "German": "richtig", "English": "right"},
			want: models.VocabularyEntry{German: "richtig", English: "right", Category: models.DefaultCategory},
		},
		{
			name: "blank preferred alias falls through to next alias",
			row:  sheet.Row{"German": " ", "german": "Baum", "English": "tree"},
			want: models.VocabularyEntry{German: "Baum", English: "tree", Category: models.DefaultCategory},
		},
		{
			name: "case-insensitive header with stray whitespace",
			row:  sheet.Row{" GERMAN ": "Tisch", "ENGLISH": "table", "CATEGORY": "Furniture"},
			want: models.VocabularyEntry{German: "Tisch", English: "table", Category: "Furniture"},
		},
		{
			name: "values are trimmed",
			row:  sheet.Row{"German": "  Stuhl ", "English": " chair", "Comments/Usage": " Setz dich! "},
			want: models.VocabularyEntry{German: "Stuhl", English: "chair", Category: models.DefaultCategory, Usage: "Setz dich!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := normalize.Vocabulary([]sheet.Row{tt.row})
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0])
		})
	}
}

func TestVocabulary_NoSurvivors(t *testing.T) {
	_, err := normalize.Vocabulary([]sheet.Row{{"German": "", "English": "Cat"}})

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrEmptyDataset))
	assert.Contains(t, err.Error(), "'German'")

	_, err = normalize.Vocabulary(nil)
	assert.True(t, stderrors.Is(err, errors.ErrEmptyDataset))
}

func TestWordGenders_SplitsExamplesAndStripsArticles(t *testing.T) {
	rows := []sheet.Row{
		{"Gender": "Die", "Rule": "Nouns ending in -ung", "Examples": "die Zeitung, Wohnung ,DIE Hoffnung"},
		{"Gender": "der", "Rule": "Days of the week", "Examples": "Montag, das Dienstag"},
		{"Gender": "den", "Examples": "Tisch"},
		{"Gender": "das", "Examples": " , "},
	}

	entries, err := normalize.WordGenders(rows)
	require.NoError(t, err)

	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Word
		assert.Equal(t, i, e.ID)
	}
	assert.Equal(t, []string{"Zeitung", "Wohnung", "Hoffnung", "Montag", "Dienstag"}, words)

	assert.Equal(t, "die", entries[0].Gender)
	assert.Equal(t, "Nouns ending in -ung", entries[0].Rule)
	assert.Empty(t, entries[0].Translation)
	assert.Equal(t, "der", entries[4].Gender, "the gender column wins over the example's article")
}

func TestWordGenders_LoneArticleIsKept(t *testing.T) {
	entries, err := normalize.WordGenders([]sheet.Row{{"Gender": "das", "Examples": "das"}})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "das", entries[0].Word)
}

func TestVerbPrepositions_CanonicalCase(t *testing.T) {
	rows := []sheet.Row{
		{"Verb": "warten", "Preposition": "auf", "Case": "akkusativ", "English Meaning": "to wait for", "Example Sentence": "Ich warte auf den Bus."},
		{"Verb": "helfen", "Preposition": "bei", "Case": "Dative"},
		{"Verb": "träumen", "Preposition": "", "Case": "Dativ"},
	}

	entries, err := normalize.VerbPrepositions(rows)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.VerbPrepositionEntry{
		ID:              0,
		Verb:            "warten",
		Preposition:     "auf",
		GrammaticalCase: "Akkusativ",
		EnglishMeaning:  "to wait for",
		ExampleSentence: "Ich warte auf den Bus.",
	}, entries[0])
}

func TestSpecializedNormalizers_RequiredFields(t *testing.T) {
	verbs, err := normalize.VerbParticiples([]sheet.Row{
		{"German": "gehen", "Past Participle": "gegangen", "English": "to go"},
		{"German": "sein", "English": "to be"},
	})
	require.NoError(t, err)
	assert.Equal(t, []models.VerbParticiple{{ID: 0, Infinitive: "gehen", PastParticiple: "gegangen", EnglishMeaning: "to go"}}, verbs)

	adjectives, err := normalize.Adjectives([]sheet.Row{
		{"German": "schnell", "English": "fast", "Example ": "Das Auto ist schnell."},
	})
	require.NoError(t, err)
	assert.Equal(t, "Das Auto ist schnell.", adjectives[0].ExampleSentence)

	opposites, err := normalize.Opposites([]sheet.Row{
		{"German": "hell", "Opposite (German)": "dunkel"},
		{"German": "alt"},
	})
	require.NoError(t, err)
	assert.Equal(t, []models.OppositePair{{ID: 0, Word: "hell", OppositeWord: "dunkel"}}, opposites)

	_, err = normalize.Opposites([]sheet.Row{{"German": "alt"}})
	assert.True(t, stderrors.Is(err, errors.ErrEmptyDataset))
}

func TestForKind(t *testing.T) {
	out, n, err := normalize.ForKind(models.KindVocabulary, []sheet.Row{{"German": "Hund", "English": "Dog"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.IsType(t, []models.VocabularyEntry{}, out)

	_, _, err = normalize.ForKind("bogus", nil)
	assert.Error(t, err)
}
