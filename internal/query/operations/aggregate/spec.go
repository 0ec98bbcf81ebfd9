package aggregate

import (
	"strings"

	domainerrors "github.com/leengari/rabbet/internal/domain/errors"
)

// Operation is an aggregation function name
type Operation string

const (
	OpSum      Operation = "sum"
	OpMean     Operation = "mean"
	OpMedian   Operation = "median"
	OpMin      Operation = "min"
	OpMax      Operation = "max"
	OpRange    Operation = "range"
	OpCount    Operation = "count"
	OpLen      Operation = "len"
	OpNRow     Operation = "nrow"
	OpVariance Operation = "variance"
	OpStdDev   Operation = "stddev"
	OpFirst    Operation = "first"
	OpLast     Operation = "last"
	OpDescribe Operation = "describe"
)

// RowColumn stands for "the row itself" and is only valid with row-counting operations
const RowColumn = "_"

var operations = []Operation{
	OpSum, OpMean, OpMedian, OpMin, OpMax, OpRange, OpCount, OpLen, OpNRow,
	OpVariance, OpStdDev, OpFirst, OpLast, OpDescribe,
}

// Operations returns every supported operation in display order
func Operations() []Operation {
	return append([]Operation(nil), operations...)
}

func (op Operation) valid() bool {
	for _, o := range operations {
		if o == op {
			return true
		}
	}
	return false
}

func (op Operation) countsRows() bool {
	return op == OpCount || op == OpLen || op == OpNRow
}

// numeric reports whether the operation needs an INT or FLOAT column
func (op Operation) numeric() bool {
	switch op {
	case OpSum, OpMean, OpMedian, OpRange, OpVariance, OpStdDev, OpDescribe:
		return true
	}
	return false
}

// Spec is one column=operation pair
type Spec struct {
	Column string
	Op     Operation
}

// OutputName is the result column name: <column>_<op>, or just <op> for "_"
func (s Spec) OutputName() string {
	if s.Column == RowColumn {
		return string(s.Op)
	}
	return s.Column + "_" + string(s.Op)
}

// ParseSpecs validates and parses --with values
func ParseSpecs(specs []string) ([]Spec, error) {
	if len(specs) == 0 {
		return nil, domainerrors.NewValidation("At least one aggregation operation must be specified with --with")
	}

	names := make([]string, len(operations))
	for i, op := range operations {
		names[i] = string(op)
	}

	out := make([]Spec, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, "=")
		if len(parts) != 2 {
			return nil, domainerrors.NewValidation(
				"Invalid aggregation specification '%s'. Expected format: column=operation", spec)
		}

		column, op := parts[0], Operation(parts[1])
		if !op.valid() {
			return nil, domainerrors.NewValidation(
				"Invalid operation '%s'. Valid operations: %s", op, strings.Join(names, ", "))
		}
		if column == RowColumn && !op.countsRows() {
			return nil, domainerrors.NewValidation(
				"Invalid operation '%s'. '_' can only be used with row-based operations: count, len, nrow", op)
		}

		out = append(out, Spec{Column: column, Op: op})
	}

	return out, nil
}
