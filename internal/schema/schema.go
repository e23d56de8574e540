// Package schema turns raw delimited text produced by the transcription
// model into a table with a known header. The model output is free-form:
// headers may be missing or blank, rows may be ragged, quoting may be
// broken. Parsing is therefore split into a structural phase (text to
// records) and a header-binding phase (records to a named table), so the
// schema-guessing logic stays isolated from numeric coercion.
package schema

import (
	"fmt"
	"strings"
)

// Table is a parsed document: a header row and the data rows beneath it.
// Rows are rectangular; every row has exactly len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex returns the index of the named column, or -1 if the table
// has no such column. When duplicate header names survive the lenient
// parse, the first occurrence wins.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at (row, col). Out-of-range access returns the
// empty string rather than panicking; transcribed tables are never
// trusted to be well-formed.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// SetCell overwrites the cell at (row, col). Out-of-range writes are
// silently dropped.
func (t *Table) SetCell(row, col int, value string) {
	if row < 0 || row >= len(t.Rows) {
		return
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return
	}
	r[col] = value
}

// RequireColumns verifies that every named column is present. It returns
// an error naming the first missing column, which callers convert into a
// document-level critical status instead of a crash.
func (t *Table) RequireColumns(names ...string) error {
	for _, name := range names {
		if t.ColumnIndex(name) < 0 {
			return fmt.Errorf("missing expected column %q", name)
		}
	}
	return nil
}

// bindHeader takes raw records whose first row is the header and returns
// a Table. Blank header cells are defaulted to Unnamed_N with a running
// counter; duplicate named headers are kept as-is (first occurrence wins
// on lookup). Columns that are empty across every data row are dropped.
func bindHeader(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("bindHeader: no records")
	}

	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}

	headers := make([]string, width)
	unnamed := 0
	for i := 0; i < width; i++ {
		h := ""
		if i < len(records[0]) {
			h = strings.TrimSpace(records[0][i])
		}
		if h == "" {
			unnamed++
			h = fmt.Sprintf("Unnamed_%d", unnamed)
		}
		headers[i] = h
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, width)
		for i := 0; i < width && i < len(rec); i++ {
			row[i] = strings.TrimSpace(rec[i])
		}
		rows = append(rows, row)
	}

	return dropEmptyColumns(&Table{Headers: headers, Rows: rows}), nil
}

// dropEmptyColumns removes columns whose cells are empty in every data
// row. A header with no data under it carries no information and would
// otherwise shift downstream column binding.
func dropEmptyColumns(t *Table) *Table {
	keep := make([]int, 0, len(t.Headers))
	for col := range t.Headers {
		empty := true
		for _, row := range t.Rows {
			if col < len(row) && row[col] != "" {
				empty = false
				break
			}
		}
		if !empty || len(t.Rows) == 0 {
			keep = append(keep, col)
		}
	}

	if len(keep) == len(t.Headers) {
		return t
	}

	headers := make([]string, 0, len(keep))
	for _, col := range keep {
		headers = append(headers, t.Headers[col])
	}
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out := make([]string, 0, len(keep))
		for _, col := range keep {
			if col < len(row) {
				out = append(out, row[col])
			} else {
				out = append(out, "")
			}
		}
		rows = append(rows, out)
	}
	return &Table{Headers: headers, Rows: rows}
}
