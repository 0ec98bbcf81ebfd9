package validation

import (
	"unicode/utf8"

	domainerrors "github.com/leengari/rabbet/internal/domain/errors"
)

// ValidateJoinArgs checks join arguments before any table is read
func ValidateJoinArgs(tables, names, on []string) error {
	if len(tables) < 2 {
		return domainerrors.NewValidation("At least two tables are required for joining")
	}

	if err := ValidateNames(tables, names); err != nil {
		return err
	}

	if len(on) == 0 {
		return domainerrors.NewValidation("At least one column to join on is required")
	}

	return nil
}

// ValidateQueryArgs checks query arguments. An empty query is allowed only in interactive mode.
func ValidateQueryArgs(tables, names []string, query string, interactive bool) error {
	if len(tables) == 0 {
		return domainerrors.NewValidation("At least one table is required for queries")
	}

	if err := ValidateNames(tables, names); err != nil {
		return err
	}

	if query == "" && !interactive {
		return domainerrors.NewValidation("A query is required after '--' (or use --interactive)")
	}

	return nil
}

// ValidateNames checks that --as, when given, names every table
func ValidateNames(tables, names []string) error {
	if len(names) > 0 && len(names) != len(tables) {
		return domainerrors.NewValidation("Number of table names must match number of tables")
	}
	return nil
}

// ValidateSingleTable checks commands that read exactly one table
func ValidateSingleTable(args []string) error {
	if len(args) != 1 {
		return domainerrors.NewValidation("Exactly one input table is required (file or '-' for stdin)")
	}
	return nil
}

// ValidateDelimiter parses a --delimiter value, which must be a single character
func ValidateDelimiter(value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, domainerrors.NewValidation("Delimiter must be a single character, got '%s'", value)
	}

	r, _ := utf8.DecodeRuneInString(value)
	if r == '\n' || r == '\r' || r == '"' || r == utf8.RuneError {
		return 0, domainerrors.NewValidation("Delimiter '%s' is not allowed", value)
	}

	return r, nil
}

// ValidateRowCount checks the -n value of head and tail
func ValidateRowCount(n int) error {
	if n < 0 {
		return domainerrors.NewValidation("Number of rows must not be negative, got %d", n)
	}
	return nil
}
