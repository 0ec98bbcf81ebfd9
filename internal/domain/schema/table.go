package schema

import (
	"github.com/leengari/rabbet/internal/domain/data"
)

// Table is an in-memory dataset bound to a label for one invocation.
// On lists the columns this table joins on; every name in On must be in Schema.
// Tables are never mutated by joins: each join step produces a new Table.
type Table struct {
	Label  string
	Path   string // source the rows were decoded from ("-" for stdin, empty for derived tables)
	Schema *TableSchema
	Rows   []data.Row
	On     []string
}

// NewTable creates an unbound table (no label, no join columns)
func NewTable(s *TableSchema, rows []data.Row) *Table {
	if rows == nil {
		rows = []data.Row{}
	}
	return &Table{Schema: s, Rows: rows}
}

// Width returns the number of columns
func (t *Table) Width() int {
	return t.Schema.Len()
}

// Height returns the number of rows
func (t *Table) Height() int {
	return len(t.Rows)
}

// Clone returns a copy that shares no slices with the receiver
func (t *Table) Clone() *Table {
	rows := make([]data.Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.Copy()
	}
	on := make([]string, len(t.On))
	copy(on, t.On)
	return &Table{
		Label:  t.Label,
		Path:   t.Path,
		Schema: NewTableSchema(t.Schema.Columns...),
		Rows:   rows,
		On:     on,
	}
}

// Head returns a new table holding the first n rows
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	out := t.Clone()
	out.Rows = out.Rows[:n]
	return out
}

// Tail returns a new table holding the last n rows
func (t *Table) Tail(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	out := t.Clone()
	out.Rows = out.Rows[len(out.Rows)-n:]
	return out
}

// Value returns the value of the named column in row i
func (t *Table) Value(i int, column string) (any, bool) {
	idx := t.Schema.Index(column)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return nil, false
	}
	return t.Rows[i][idx], true
}
