package normalize

import (
	"fmt"
	"strings"

	"github.com/vytor/deutschhub/internal/models"
	"github.com/vytor/deutschhub/internal/sheet"
)

var VocabularySchema = Schema{
	Name: "vocabulary",
	Fields: []Field{
		{Name: "german", Aliases: []string{"German", "german"}, Required: true},
		{Name: "english", Aliases: []string{"English", "english"}, Required: true},
		{Name: "category", Aliases: []string{"Category", "category"}, Default: models.DefaultCategory},
		{Name: "usage", Aliases: []string{"Usage", "usage", "Comments/Usage"}},
	},
}

var VerbParticipleSchema = Schema{
	Name: "verb",
	Fields: []Field{
		{Name: "infinitive", Aliases: []string{"German", "Infinitive", "Verb"}, Required: true},
		{Name: "past_participle", Aliases: []string{"Past Participle", "Partizip II", "PastParticiple"}, Required: true},
		{Name: "english", Aliases: []string{"English", "English Meaning", "Meaning"}, Required: true},
	},
}

var AdjectiveSchema = Schema{
	Name: "adjective",
	Fields: []Field{
		{Name: "german", Aliases: []string{"German", "Adjective"}, Required: true},
		{Name: "english", Aliases: []string{"English", "English Meaning"}, Required: true},
		{Name: "example", Aliases: []string{"Example", "Example Sentence"}},
	},
}

var OppositeSchema = Schema{
	Name: "opposite",
	Fields: []Field{
		{Name: "word", Aliases: []string{"German", "Word"}, Required: true},
		{Name: "opposite", Aliases: []string{"Opposite (German)", "Opposite"}, Required: true},
		{Name: "example", Aliases: []string{"Example", "Example Sentence"}},
	},
}

var WordGenderSchema = Schema{
	Name: "word gender",
	Fields: []Field{
		{Name: "gender", Aliases: []string{"Gender", "Article"}, Required: true},
		{Name: "examples", Aliases: []string{"Examples", "Example", "Word"}, Required: true},
		{Name: "rule", Aliases: []string{"Rule"}},
		{Name: "translation", Aliases: []string{"Translation", "English"}},
	},
}

var VerbPrepositionSchema = Schema{
	Name: "verb preposition",
	Fields: []Field{
		{Name: "verb", Aliases: []string{"Verb"}, Required: true},
		{Name: "preposition", Aliases: []string{"Preposition"}, Required: true},
		{Name: "case", Aliases: []string{"Case", "Kasus"}, Required: true},
		{Name: "english", Aliases: []string{"English Meaning", "English", "Translation"}},
		{Name: "example", Aliases: []string{"Example Sentence", "Example"}},
	},
}

// Vocabulary normalizes word-pair rows. IDs are positions in the returned
// slice, so they stay dense after invalid rows are dropped.
func Vocabulary(rows []sheet.Row) ([]models.VocabularyEntry, error) {
	var out []models.VocabularyEntry
	for _, row := range rows {
		rec, ok := VocabularySchema.Resolve(row)
		if !ok {
			continue
		}
		out = append(out, models.VocabularyEntry{
			ID:       len(out),
			German:   rec["german"],
			English:  rec["english"],
			Category: rec["category"],
			Usage:    rec["usage"],
		})
	}
	if len(out) == 0 {
		return nil, emptyDataset(VocabularySchema)
	}
	return out, nil
}

func VerbParticiples(rows []sheet.Row) ([]models.VerbParticiple, error) {
	var out []models.VerbParticiple
	for _, row := range rows {
		rec, ok := VerbParticipleSchema.Resolve(row)
		if !ok {
			continue
		}
		out = append(out, models.VerbParticiple{
			ID:             len(out),
			Infinitive:     rec["infinitive"],
			PastParticiple: rec["past_participle"],
			EnglishMeaning: rec["english"],
		})
	}
	if len(out) == 0 {
		return nil, emptyDataset(VerbParticipleSchema)
	}
	return out, nil
}

func Adjectives(rows []sheet.Row) ([]models.AdjectivePair, error) {
	var out []models.AdjectivePair
	for _, row := range rows {
		rec, ok := AdjectiveSchema.Resolve(row)
		if !ok {
			continue
		}
		out = append(out, models.AdjectivePair{
			ID:              len(out),
			German:          rec["german"],
			English:         rec["english"],
			ExampleSentence: rec["example"],
		})
	}
	if len(out) == 0 {
		return nil, emptyDataset(AdjectiveSchema)
	}
	return out, nil
}

func Opposites(rows []sheet.Row) ([]models.OppositePair, error) {
	var out []models.OppositePair
	for _, row := range rows {
		rec, ok := OppositeSchema.Resolve(row)
		if !ok {
			continue
		}
		out = append(out, models.OppositePair{
			ID:              len(out),
			Word:            rec["word"],
			OppositeWord:    rec["opposite"],
			ExampleSentence: rec["example"],
		})
	}
	if len(out) == 0 {
		return nil, emptyDataset(OppositeSchema)
	}
	return out, nil
}

// WordGenders expands each row's comma-separated examples into one entry per
// noun. A leading article on an example is stripped from the stored word; the
// row's gender column stays authoritative.
func WordGenders(rows []sheet.Row) ([]models.WordGenderEntry, error) {
	var out []models.WordGenderEntry
	for _, row := range rows {
		rec, ok := WordGenderSchema.Resolve(row)
		if !ok {
			continue
		}
		gender, ok := canonicalArticle(rec["gender"])
		if !ok {
			continue
		}
		for _, example := range strings.Split(rec["examples"], ",") {
			word := stripArticle(strings.TrimSpace(example))
			if word == "" {
				continue
			}
			out = append(out, models.WordGenderEntry{
				ID:          len(out),
				Word:        word,
				Gender:      gender,
				Rule:        rec["rule"],
				Translation: rec["translation"],
			})
		}
	}
	if len(out) == 0 {
		return nil, emptyDataset(WordGenderSchema)
	}
	return out, nil
}

func VerbPrepositions(rows []sheet.Row) ([]models.VerbPrepositionEntry, error) {
	var out []models.VerbPrepositionEntry
	for _, row := range rows {
		rec, ok := VerbPrepositionSchema.Resolve(row)
		if !ok {
			continue
		}
		grammaticalCase, ok := canonicalCase(rec["case"])
		if !ok {
			continue
		}
		out = append(out, models.VerbPrepositionEntry{
			ID:              len(out),
			Verb:            rec["verb"],
			Preposition:     rec["preposition"],
			GrammaticalCase: grammaticalCase,
			EnglishMeaning:  rec["english"],
			ExampleSentence: rec["example"],
		})
	}
	if len(out) == 0 {
		return nil, emptyDataset(VerbPrepositionSchema)
	}
	return out, nil
}

// ForKind normalizes rows as the given dataset kind and returns the entries
// together with their count.
func ForKind(kind models.DatasetKind, rows []sheet.Row) (any, int, error) {
	switch kind {
	case models.KindVocabulary:
		out, err := Vocabulary(rows)
		return out, len(out), err
	case models.KindVerbParticiples:
		out, err := VerbParticiples(rows)
		return out, len(out), err
	case models.KindAdjectives:
		out, err := Adjectives(rows)
		return out, len(out), err
	case models.KindOpposites:
		out, err := Opposites(rows)
		return out, len(out), err
	case models.KindWordGenders:
		out, err := WordGenders(rows)
		return out, len(out), err
	case models.KindVerbPrepositions:
		out, err := VerbPrepositions(rows)
		return out, len(out), err
	default:
		return nil, 0, fmt.Errorf("unknown dataset kind %q", kind)
	}
}

func canonicalArticle(s string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, a := range models.Articles {
		if lower == a {
			return a, true
		}
	}
	return "", false
}

func canonicalCase(s string) (string, bool) {
	for _, c := range models.GrammaticalCases {
		if strings.EqualFold(strings.TrimSpace(s), c) {
			return c, true
		}
	}
	return "", false
}

// stripArticle removes a leading der/die/das token. A lone article is kept
// as-is since there is no noun to strip it from.
func stripArticle(example string) string {
	parts := strings.Fields(example)
	if len(parts) > 1 {
		if _, ok := canonicalArticle(parts[0]); ok {
			return strings.Join(parts[1:], " ")
		}
	}
	return example
}
