package table

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrColumnNotFound indicates a required column is absent from the header
	ErrColumnNotFound = errors.New("column not found")

	// ErrUnsupportedFormat indicates a file extension with no codec
	ErrUnsupportedFormat = errors.New("unsupported table format")

	// ErrEmpty indicates a document without a header row
	ErrEmpty = errors.New("table has no header row")
)

// Table is a header plus rows of string cells.
// Rows are always at least as wide as the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// New creates an empty table with the given header
func New(header ...string) *Table {
	return &Table{Header: header}
}

// Append adds a row, padding it to the header width
func (t *Table) Append(values ...string) {
	t.Rows = append(t.Rows, pad(values, len(t.Header)))
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the index of a header cell, matched case-insensitively
func (t *Table) Column(name string) (int, error) {
	want := strings.TrimSpace(name)
	for i, h := range t.Header {
		if strings.EqualFold(h, want) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// Columns resolves several header names at once
func (t *Table) Columns(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		idx[i] = c
	}
	return idx, nil
}

// Cell returns the trimmed value at row, column or "" when out of range
func Cell(row []string, column int) string {
	if column < 0 || column >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[column])
}

// fromRecords turns raw records into a normalised table:
// the first record is the header, blank rows are dropped
func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	t := &Table{Header: header, Rows: make([][]string, 0, len(records)-1)}
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		t.Rows = append(t.Rows, pad(rec, len(header)))
	}
	return t, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func pad(rec []string, width int) []string {
	if len(rec) >= width {
		return rec
	}
	out := make([]string, width)
	copy(out, rec)
	return out
}
