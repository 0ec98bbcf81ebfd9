package join

import (
	"fmt"
	"strings"
)

// JoinType represents the type of JOIN operation
type JoinType int

const (
	JoinTypeInner JoinType = iota // Returns only matching rows from both tables
	JoinTypeLeft                  // Returns all rows from left table, NULLs for unmatched right rows
	JoinTypeRight                 // Returns all rows from right table, NULLs for unmatched left rows
	JoinTypeOuter                 // Returns all rows from both tables, NULLs where no match
)

// String returns the string representation of the JOIN type
func (jt JoinType) String() string {
	switch jt {
	case JoinTypeInner:
		return "INNER JOIN"
	case JoinTypeLeft:
		return "LEFT JOIN"
	case JoinTypeRight:
		return "RIGHT JOIN"
	case JoinTypeOuter:
		return "FULL OUTER JOIN"
	default:
		return "UNKNOWN JOIN"
	}
}

// Name returns the lower-case name used on the command line
func (jt JoinType) Name() string {
	switch jt {
	case JoinTypeInner:
		return "inner"
	case JoinTypeLeft:
		return "left"
	case JoinTypeRight:
		return "right"
	case JoinTypeOuter:
		return "outer"
	default:
		return "unknown"
	}
}

// JoinTypeNames lists the accepted command-line names in declaration order
func JoinTypeNames() []string {
	return []string{"inner", "left", "right", "outer"}
}

// ParseJoinType converts a command-line name into a JoinType.
// "full" is accepted as an alias for "outer".
func ParseJoinType(s string) (JoinType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inner":
		return JoinTypeInner, nil
	case "left":
		return JoinTypeLeft, nil
	case "right":
		return JoinTypeRight, nil
	case "outer", "full":
		return JoinTypeOuter, nil
	default:
		return JoinTypeInner, fmt.Errorf("invalid join type '%s' (expected one of: %s)",
			s, strings.Join(JoinTypeNames(), ", "))
	}
}

// Side selects one of the two operands of a join
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Policy decides what happens to rows that find no partner
type Policy int

const (
	PolicyDrop     Policy = iota // unmatched rows are discarded
	PolicyNullFill               // unmatched rows are kept, partner columns set to NULL
)

// Strategy is the parameterisation every JOIN type reduces to.
// Base is the structural base: its rows are scanned in order and its schema comes first.
type Strategy struct {
	Base           Side
	UnmatchedBase  Policy
	UnmatchedOther Policy
	// CoalesceKeys drops the other operand's key columns, which equal the base keys on every
	// matched row. Full outer joins keep them so right-only rows retain their key values.
	CoalesceKeys bool
}

// Strategy returns the join parameters for this type
func (jt JoinType) Strategy() Strategy {
	switch jt {
	case JoinTypeLeft:
		return Strategy{Base: SideLeft, UnmatchedBase: PolicyNullFill, UnmatchedOther: PolicyDrop, CoalesceKeys: true}
	case JoinTypeRight:
		return Strategy{Base: SideRight, UnmatchedBase: PolicyNullFill, UnmatchedOther: PolicyDrop, CoalesceKeys: true}
	case JoinTypeOuter:
		return Strategy{Base: SideLeft, UnmatchedBase: PolicyNullFill, UnmatchedOther: PolicyNullFill, CoalesceKeys: false}
	default:
		return Strategy{Base: SideLeft, UnmatchedBase: PolicyDrop, UnmatchedOther: PolicyDrop, CoalesceKeys: true}
	}
}

// Option tweaks a join step
type Option func(*options)

// StepInfo describes one completed step of a Fold
type StepInfo struct {
	Step     int // 1-based
	Left     string
	Right    string
	Type     JoinType
	LeftRows int
	Rows     int
}

type options struct {
	keepKeys         bool
	operandOrder     bool
	legacyProvenance bool
	onStep           func(StepInfo)
}

// WithKeepKeys keeps the other operand's key columns instead of coalescing them
func WithKeepKeys() Option {
	return func(o *options) { o.keepKeys = true }
}

// WithOperandOrder lays out output columns as left operand then right operand,
// even when the right operand is the structural base
func WithOperandOrder() Option {
	return func(o *options) { o.operandOrder = true }
}

// WithLegacyProvenance makes every step report the left operand's label and join columns,
// whatever operand actually drove the row layout
func WithLegacyProvenance() Option {
	return func(o *options) { o.legacyProvenance = true }
}

// WithStepObserver registers a callback invoked after each successful Fold step
func WithStepObserver(fn func(StepInfo)) Option {
	return func(o *options) { o.onStep = fn }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
