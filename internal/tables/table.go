// Package tables provides the generic tabular structure the reconciler's
// inputs are handed over as, plus the cell coercion rules and the
// column-role resolver that maps semantic roles (order id, seller price,
// settlement amount, ...) to concrete columns.
//
// The collaborators that parse CSV or spreadsheet files produce a Table;
// everything downstream works against resolved roles, never raw header
// names.
package tables

import (
	"strings"
)

// Table is an ordered, named tabular structure: a header row and data rows
// of string cells. Cell typing happens later, during normalization.
type Table struct {
	// Name is the logical source name ("sales", "pg forward", ...), used in
	// diagnostics and error messages.
	Name    string
	Headers []string
	Rows    [][]string
}

// New creates a Table with trimmed header names.
func New(name string, headers []string, rows [][]string) *Table {
	cleaned := make([]string, len(headers))
	for i, h := range headers {
		cleaned[i] = strings.TrimSpace(h)
	}
	return &Table{
		Name:    name,
		Headers: cleaned,
		Rows:    rows,
	}
}

// NumColumns returns the number of header columns.
func (t *Table) NumColumns() int {
	return len(t.Headers)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the index of the column with the given header name, or
// -1 when absent. Matching is case-sensitive exact match: the source reports
// have a fixed vocabulary and fuzzy matching would hide format drift.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at (row, col), or "" when either index is out of
// range. Ragged rows are common in hand-edited exports; treating a missing
// cell as empty keeps coercion uniform.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}
