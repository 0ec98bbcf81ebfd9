package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ValidationError reports invalid user input detected before any I/O
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError with a formatted message
func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// LoadError reports a failure to read or decode a table source
type LoadError struct {
	Label string // table label (empty if not yet assigned)
	Path  string // path or "-" for stdin
	Err   error
}

func (e *LoadError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("failed to read table from %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to read table %s from %s: %v", e.Label, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// JoinError reports a join step that could not be executed
type JoinError struct {
	Left   string // left operand label
	Right  string // right operand label
	Reason string // human-readable explanation (optional)
	Err    error  // underlying cause (optional)
}

func (e *JoinError) Error() string {
	parts := []string{fmt.Sprintf("failed to join '%s' with '%s'", e.Left, e.Right)}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *JoinError) Unwrap() error {
	return e.Err
}

// ColumnNotFoundError reports a reference to a column missing from a table
type ColumnNotFoundError struct {
	TableName  string
	ColumnName string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column '%s' not found in table '%s'", e.ColumnName, e.TableName)
}

// TableNotFoundError reports a query reference to an unregistered table
type TableNotFoundError struct {
	TableName string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table '%s' not found", e.TableName)
}

// AmbiguousColumnError reports an unqualified column present in more than one table
type AmbiguousColumnError struct {
	ColumnName string
	Tables     []string
}

func (e *AmbiguousColumnError) Error() string {
	return fmt.Sprintf("column '%s' is ambiguous (found in %s)", e.ColumnName, strings.Join(e.Tables, ", "))
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}
