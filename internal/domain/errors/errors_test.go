package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinErrorMessage(t *testing.T) {
	err := &JoinError{Left: "users", Right: "orders", Reason: "key arity mismatch (1 vs 2)"}
	assert.Equal(t, "failed to join 'users' with 'orders': key arity mismatch (1 vs 2)", err.Error())

	wrapped := &JoinError{Left: "T1", Right: "T2", Err: &ColumnNotFoundError{TableName: "T2", ColumnName: "id"}}
	assert.Equal(t, "failed to join 'T1' with 'T2': column 'id' not found in table 'T2'", wrapped.Error())

	var cnf *ColumnNotFoundError
	require.True(t, stderrors.As(wrapped, &cnf))
	assert.Equal(t, "id", cnf.ColumnName)
}

func TestLoadErrorUnwrap(t *testing.T) {
	err := &LoadError{Label: "T1", Path: "missing.csv", Err: os.ErrNotExist}
	assert.True(t, stderrors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "failed to read table T1 from missing.csv")
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(NewValidation("bad %s", "input")))
	assert.True(t, IsValidation(fmt.Errorf("wrapped: %w", NewValidation("x"))))
	assert.False(t, IsValidation(&LoadError{Path: "x", Err: os.ErrNotExist}))
	assert.False(t, IsValidation(nil))
}

func TestQueryErrorMessages(t *testing.T) {
	assert.Equal(t, "table 'sales' not found", (&TableNotFoundError{TableName: "sales"}).Error())
	assert.Equal(t, "column 'id' is ambiguous (found in u, o)",
		(&AmbiguousColumnError{ColumnName: "id", Tables: []string{"u", "o"}}).Error())
}
