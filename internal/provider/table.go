package provider

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn is returned when a source file lacks a required column
var ErrMissingColumn = errors.New("missing required column")

// Table is a loosely typed table as read from a provider's export.
// Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable builds a Table from a header and its data records. Header names are
// trimmed, ragged records are padded or truncated to the header width, and
// blank records are dropped.
func NewTable(header []string, records [][]string) *Table {
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		if isBlank(record) {
			continue
		}
		row := make([]string, len(cols))
		copy(row, record)
		rows = append(rows, row)
	}

	return &Table{Columns: cols, Rows: rows}
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of col, or -1 if absent
func (t *Table) Index(col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Has reports whether the table has a column named col
func (t *Table) Has(col string) bool {
	return t.Index(col) >= 0
}

// Rename changes a column name in place. It reports whether from was found.
func (t *Table) Rename(from, to string) bool {
	idx := t.Index(from)
	if idx < 0 {
		return false
	}
	t.Columns[idx] = to
	return true
}

// Value returns the trimmed cell at row for col, or "" if col is absent
func (t *Table) Value(row int, col string) string {
	idx := t.Index(col)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][idx])
}

// Select returns a new table holding only cols, in the given order
func (t *Table) Select(cols ...string) (*Table, error) {
	indexes := make([]int, len(cols))
	for i, col := range cols {
		idx := t.Index(col)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
		indexes[i] = idx
	}

	selected := &Table{
		Columns: append([]string(nil), cols...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for r, row := range t.Rows {
		out := make([]string, len(indexes))
		for i, idx := range indexes {
			out[i] = row[idx]
		}
		selected.Rows[r] = out
	}
	return selected, nil
}

// renameFirst renames the first alias present in t to canonical.
// Aliases are tried in order; listing canonical itself first keeps an
// already-canonical column untouched.
func renameFirst(t *Table, canonical string, aliases ...string) error {
	for _, alias := range aliases {
		if t.Rename(alias, canonical) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s (tried %q)", ErrMissingColumn, canonical, aliases)
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
