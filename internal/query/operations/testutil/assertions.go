package testutil

import (
	"testing"

	"github.com/leengari/rabbet/internal/domain/schema"
)

// AssertRowCount checks if the result has the expected number of rows
func AssertRowCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertColumns checks the column names of a table, in order
func AssertColumns(t *testing.T, table *schema.Table, expected []string, context string) {
	t.Helper()
	got := table.Schema.Names()
	if len(got) != len(expected) {
		t.Errorf("%s: expected columns %v, got %v", context, expected, got)
		return
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("%s: expected columns %v, got %v", context, expected, got)
			return
		}
	}
}

// AssertColumnNotExists checks that a table has no column of the given name
func AssertColumnNotExists(t *testing.T, table *schema.Table, column, context string) {
	t.Helper()
	if table.Schema.Index(column) >= 0 {
		t.Errorf("%s: did not expect column '%s' to exist", context, column)
	}
}

// AssertNullValue checks if a value is nil
func AssertNullValue(t *testing.T, value any, context string) {
	t.Helper()
	if value != nil {
		t.Errorf("%s: expected NULL value, got: %v", context, value)
	}
}

// AssertNotNullValue checks if a value is not nil
func AssertNotNullValue(t *testing.T, value any, context string) {
	t.Helper()
	if value == nil {
		t.Errorf("%s: expected non-NULL value, got nil", context)
	}
}
