package binding

import (
	"fmt"

	domainerrors "github.com/leengari/rabbet/internal/domain/errors"
)

// AssignLabels names each table: T1..TN when no names are given, otherwise the names verbatim.
// Duplicate names are accepted and alias each other in the KeyMap.
func AssignLabels(paths, names []string) ([]string, error) {
	if len(names) == 0 {
		labels := make([]string, len(paths))
		for i := range paths {
			labels[i] = fmt.Sprintf("T%d", i+1)
		}
		return labels, nil
	}

	if len(names) != len(paths) {
		return nil, domainerrors.NewValidation("number of table names must match number of tables")
	}

	return append([]string(nil), names...), nil
}
