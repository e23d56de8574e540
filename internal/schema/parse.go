package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxColumnBudget bounds the lenient parse. Transcribed documents have
// been observed with anywhere from 0 to 25+ columns; anything past the
// budget is truncated.
const maxColumnBudget = 25

// Parse converts raw delimited text into a Table. It first attempts a
// strict CSV parse that assumes the first line is the header and every
// row has the same column count. If that fails (malformed quoting,
// ragged rows), it falls back to a lenient line-by-line read that skips
// unparseable rows instead of failing the whole document.
func Parse(raw string) (*Table, error) {
	t, err := parseStrict(raw)
	if err == nil {
		return t, nil
	}

	t, lenientErr := parseLenient(raw)
	if lenientErr != nil {
		return nil, fmt.Errorf("schema.Parse: strict parse failed (%v); lenient parse failed: %w", err, lenientErr)
	}
	return t, nil
}

// parseStrict is the happy path: well-quoted CSV with a uniform column
// count, header on the first line.
func parseStrict(raw string) (*Table, error) {
	r := csv.NewReader(strings.NewReader(raw))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parseStrict: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parseStrict: empty input")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(rec))
		for i, c := range rec {
			row[i] = strings.TrimSpace(c)
		}
		rows = append(rows, row)
	}
	return &Table{Headers: headers, Rows: rows}, nil
}

// parseLenient reads the input under a fixed column budget, tolerating
// ragged rows and sloppy quoting. Rows that fail even the lenient read
// are skipped. Row 0 becomes the header via bindHeader.
func parseLenient(raw string) (*Table, error) {
	r := csv.NewReader(strings.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Skip the bad row, keep the document.
			continue
		}
		if len(rec) > maxColumnBudget {
			rec = rec[:maxColumnBudget]
		}
		if isBlankRecord(rec) {
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("parseLenient: no parsable rows")
	}
	return bindHeader(records)
}

func isBlankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
