// Package sheet turns spreadsheet payloads into header-keyed rows.
// It has no side effects beyond parsing.
package sheet

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vytor/deutschhub/internal/errors"
	"github.com/xuri/excelize/v2"
)

// Row is one data row keyed by the header text of its column.
type Row map[string]string

// Read parses an xlsx workbook and returns the rows of its first sheet.
// The first row of the sheet is the header row.
func Read(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.NewParseError("file is not a readable spreadsheet", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParseError("workbook contains no sheets", nil)
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParseError(fmt.Sprintf("cannot read sheet %q", sheets[0]), err)
	}
	return rowsFromCells(cells), nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

func rowsFromCells(cells [][]string) []Row {
	if len(cells) == 0 {
		return nil
	}
	header := cells[0]
	rows := make([]Row, 0, len(cells)-1)
	for _, record := range cells[1:] {
		row := make(Row, len(header))
		for i, value := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if value == "" {
				continue
			}
			row[header[i]] = value
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// ReadJSON decodes a JSON array of objects into rows. Scalar values are
// stringified; nulls and nested values are dropped.
func ReadJSON(r io.Reader) ([]Row, error) {
	var raw []map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.NewParseError("file is not a JSON array of rows", err)
	}

	rows := make([]Row, 0, len(raw))
	for _, obj := range raw {
		row := make(Row, len(obj))
		for k, v := range obj {
			if s, ok := scalarString(v); ok && strings.TrimSpace(s) != "" {
				row[k] = s
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
