// Package normalize maps raw spreadsheet rows onto the canonical entry types.
//
// Each dataset is described by a Schema: an ordered list of logical fields,
// each with the header aliases it accepts. Rows missing a required field are
// dropped silently; a dataset with no surviving rows is an error.
package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vytor/deutschhub/internal/errors"
	"github.com/vytor/deutschhub/internal/sheet"
)

// Field is one logical column of a dataset.
type Field struct {
	Name     string
	Aliases  []string
	Required bool
	Default  string
}

// Schema is the ordered field list for one dataset kind.
type Schema struct {
	Name   string
	Fields []Field
}

// Record holds resolved, trimmed field values keyed by Field.Name.
type Record map[string]string

// Resolve looks up every field of s in row. The second result is false when a
// required field is missing or blank.
//
// Aliases are tried in order against the exact header first; only when no
// alias matches exactly are headers compared case-insensitively (ignoring
// surrounding whitespace). The first alias with a non-blank value wins.
func (s Schema) Resolve(row sheet.Row) (Record, bool) {
	rec := make(Record, len(s.Fields))
	ok := true
	for _, f := range s.Fields {
		v := lookup(row, f.Aliases)
		if v == "" {
			if f.Required {
				ok = false
			}
			v = f.Default
		}
		rec[f.Name] = v
	}
	return rec, ok
}

func lookup(row sheet.Row, aliases []string) string {
	for _, alias := range aliases {
		if v := strings.TrimSpace(row[alias]); v != "" {
			return v
		}
	}
	headers := make([]string, 0, len(row))
	for h := range row {
		headers = append(headers, h)
	}
	sort.Strings(headers)
	for _, alias := range aliases {
		for _, header := range headers {
			if !strings.EqualFold(strings.TrimSpace(header), alias) {
				continue
			}
			if v := strings.TrimSpace(row[header]); v != "" {
				return v
			}
		}
	}
	return ""
}

// Headers lists the preferred header of every field, for error messages.
func (s Schema) Headers(requiredOnly bool) []string {
	var out []string
	for _, f := range s.Fields {
		if requiredOnly && !f.Required {
			continue
		}
		if len(f.Aliases) > 0 {
			out = append(out, f.Aliases[0])
		}
	}
	return out
}

func emptyDataset(s Schema) error {
	return errors.NewEmptyDatasetError(fmt.Sprintf(
		"no valid %s rows found; ensure columns are named %s",
		s.Name, quoteList(s.Headers(false)),
	))
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "'" + it + "'"
	}
	return strings.Join(quoted, ", ")
}
