package domain

import "strings"

// RawTable is one source table as loaded from disk, before normalisation.
// Header casing and column order are preserved exactly as found.
type RawTable struct {
	// Source is the path or name of the file the table came from.
	Source string

	// Headers holds the column names from the first row.
	Headers []string

	// Rows holds the remaining rows, each the same width as Headers.
	Rows [][]string
}

// Column returns the index of the named column, matched case-insensitively
// with surrounding whitespace ignored. Returns -1 when absent.
func (t RawTable) Column(name string) int {
	for i, h := range t.Headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when either index is out of
// range. Callers treat "" as a missing value.
func (t RawTable) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}
