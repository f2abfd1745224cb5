package models

// VocabularyEntry is one German-English word pair.
type VocabularyEntry struct {
	ID       int    `json:"id"`
	German   string `json:"german"`
	English  string `json:"english"`
	Category string `json:"category"`
	Usage    string `json:"usage"`
}

// DefaultCategory is assigned to entries whose source row has no category.
const DefaultCategory = "Uncategorized"

// Provenance says where the active vocabulary came from.
type Provenance string

const (
	ProvenanceDefault Provenance = "default"
	ProvenanceCustom  Provenance = "custom"
)

// VocabularyState is the read-only view handed to consumers of the provider.
type VocabularyState struct {
	Entries    []VocabularyEntry `json:"entries"`
	Provenance Provenance        `json:"provenance"`
	IsCustom   bool              `json:"is_custom"`
	Count      int               `json:"count"`
	Categories []string          `json:"categories"`
	Error      string            `json:"error,omitempty"`
	Version    uint64            `json:"version"`
}
