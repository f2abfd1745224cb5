// Package data holds the datasets shipped with the binary, stored as the
// JSON rows cmd/convert produces from spreadsheets.
package data

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/vytor/deutschhub/internal/models"
	"github.com/vytor/deutschhub/internal/sheet"
)

//go:embed *.json
var files embed.FS

var fileNames = map[models.DatasetKind]string{
	models.KindVocabulary:       "vocabulary.json",
	models.KindVerbParticiples:  "verbs.json",
	models.KindAdjectives:       "adjectives.json",
	models.KindOpposites:        "opposites.json",
	models.KindWordGenders:      "genders.json",
	models.KindVerbPrepositions: "prepositions.json",
}

// Rows returns the raw bundled rows for kind.
func Rows(kind models.DatasetKind) ([]sheet.Row, error) {
	name, ok := fileNames[kind]
	if !ok {
		return nil, fmt.Errorf("no bundled dataset for kind %q", kind)
	}
	raw, err := files.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return sheet.ReadJSON(bytes.NewReader(raw))
}
