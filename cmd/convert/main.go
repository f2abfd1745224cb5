// Command convert turns a spreadsheet into a JSON dataset.
//
// By default it writes the header-keyed rows, the format bundled under
// internal/data. With -normalized it writes the cleaned entries instead.
// Either way the rows must normalize to at least one entry.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/vytor/deutschhub/internal/logger"
	"github.com/vytor/deutschhub/internal/models"
	"github.com/vytor/deutschhub/internal/normalize"
	"github.com/vytor/deutschhub/internal/sheet"
)

func main() {
	var (
		kind       = flag.String("kind", string(models.KindVocabulary), "dataset kind: "+kindList())
		in         = flag.String("in", "", "input .xlsx file")
		out        = flag.String("out", "", "output .json file (stdout when empty)")
		normalized = flag.Bool("normalized", false, "write normalized entries instead of rows")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := logger.INFO
	if *verbose {
		level = logger.DEBUG
	}
	log := logger.New(logger.WithLevel(level), logger.WithOutput(os.Stderr), logger.WithPrefix("convert"))

	if err := run(log, *kind, *in, *out, *normalized); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger, kindName, in, out string, normalized bool) error {
	kind, ok := models.ParseDatasetKind(kindName)
	if !ok {
		return fmt.Errorf("unknown kind %q (want one of %s)", kindName, kindList())
	}
	if in == "" {
		return fmt.Errorf("-in is required")
	}

	log.Debug("reading %s", in)
	rows, err := sheet.ReadFile(in)
	if err != nil {
		return err
	}

	entries, count, err := normalize.ForKind(kind, rows)
	if err != nil {
		return err
	}
	log.Debug("normalized %d of %d rows", count, len(rows))

	var payload any = rows
	if normalized {
		payload = entries
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	data = append(data, '\n')

	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Info("wrote %d %s entries to %s", count, kind, out)
	return nil
}

func kindList() string {
	names := make([]string, len(models.DatasetKinds))
	for i, k := range models.DatasetKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
