package models

// DatasetKind names one of the bundled or uploadable datasets.
type DatasetKind string

const (
	KindVocabulary       DatasetKind = "vocabulary"
	KindVerbParticiples  DatasetKind = "verbs"
	KindAdjectives       DatasetKind = "adjectives"
	KindOpposites        DatasetKind = "opposites"
	KindWordGenders      DatasetKind = "genders"
	KindVerbPrepositions DatasetKind = "prepositions"
)

// DatasetKinds lists every kind in a stable order.
var DatasetKinds = []DatasetKind{
	KindVocabulary,
	KindVerbParticiples,
	KindAdjectives,
	KindOpposites,
	KindWordGenders,
	KindVerbPrepositions,
}

// ParseDatasetKind reports whether s names a known kind.
func ParseDatasetKind(s string) (DatasetKind, bool) {
	for _, k := range DatasetKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

type VerbParticiple struct {
	ID             int    `json:"id"`
	Infinitive     string `json:"infinitive"`
	PastParticiple string `json:"past_participle"`
	EnglishMeaning string `json:"english_meaning"`
}

type AdjectivePair struct {
	ID              int    `json:"id"`
	German          string `json:"german"`
	English         string `json:"english"`
	ExampleSentence string `json:"example_sentence"`
}

type OppositePair struct {
	ID              int    `json:"id"`
	Word            string `json:"word"`
	OppositeWord    string `json:"opposite_word"`
	ExampleSentence string `json:"example_sentence"`
}

// WordGenderEntry is a noun (article stripped) with its grammatical gender.
type WordGenderEntry struct {
	ID          int    `json:"id"`
	Word        string `json:"word"`
	Gender      string `json:"gender"` // der, die or das
	Rule        string `json:"rule"`
	Translation string `json:"translation"`
}

type VerbPrepositionEntry struct {
	ID              int    `json:"id"`
	Verb            string `json:"verb"`
	Preposition     string `json:"preposition"`
	GrammaticalCase string `json:"case"`
	EnglishMeaning  string `json:"english_meaning"`
	ExampleSentence string `json:"example_sentence"`
}

// Articles are the accepted genders, lower-case.
var Articles = []string{"der", "die", "das"}

// GrammaticalCases are the accepted cases in canonical spelling.
var GrammaticalCases = []string{"Nominativ", "Akkusativ", "Dativ", "Genitiv"}
