package data

import "fmt"

// Row represents a single table row
// Values are positional and line up with the owning table's schema.
// A nil value is NULL; otherwise the value is int64, float64, bool or string.
type Row []any

// NewRow creates a row of the given width with every value NULL
func NewRow(width int) Row {
	return make(Row, width)
}

// Copy creates a shallow copy of the row to prevent mutation
func (r Row) Copy() Row {
	c := make(Row, len(r))
	copy(c, r)
	return c
}

// IsNull reports whether the value at position i is NULL
func (r Row) IsNull(i int) bool {
	return i < 0 || i >= len(r) || r[i] == nil
}

// String returns a string representation for debugging
func (r Row) String() string {
	return fmt.Sprintf("Row%v", []any(r))
}
