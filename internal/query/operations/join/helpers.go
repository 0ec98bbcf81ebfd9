package join

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/leengari/rabbet/internal/domain/data"
	domainerrors "github.com/leengari/rabbet/internal/domain/errors"
	"github.com/leengari/rabbet/internal/domain/schema"
)

// keyKind is how one key position is compared across both operands
type keyKind int

const (
	keyInt keyKind = iota
	keyFloat
	keyBool
	keyText
)

// joinKeys holds the resolved key column positions of both operands
type joinKeys struct {
	left  []int
	right []int
	kinds []keyKind
}

// validateJoinCondition checks if the join is valid and resolves the key columns.
// Keys pair positionally: left.On[i] joins right.On[i].
func validateJoinCondition(left, right *schema.Table) (*joinKeys, error) {
	if left == nil {
		return nil, fmt.Errorf("left table is nil")
	}
	if right == nil {
		return nil, fmt.Errorf("right table is nil")
	}

	joinErr := func(reason string, err error) error {
		return &domainerrors.JoinError{Left: left.Label, Right: right.Label, Reason: reason, Err: err}
	}

	if len(left.On) == 0 {
		return nil, joinErr(fmt.Sprintf("no join columns for table '%s'", left.Label), nil)
	}
	if len(right.On) == 0 {
		return nil, joinErr(fmt.Sprintf("no join columns for table '%s'", right.Label), nil)
	}
	if len(left.On) != len(right.On) {
		return nil, joinErr(fmt.Sprintf("key arity mismatch: %d column(s) on '%s', %d on '%s'",
			len(left.On), left.Label, len(right.On), right.Label), nil)
	}

	keys := &joinKeys{
		left:  make([]int, len(left.On)),
		right: make([]int, len(right.On)),
		kinds: make([]keyKind, len(left.On)),
	}

	for i := range left.On {
		leftCol, ok := left.Schema.Column(left.On[i])
		if !ok {
			return nil, joinErr("", &domainerrors.ColumnNotFoundError{TableName: left.Label, ColumnName: left.On[i]})
		}
		rightCol, ok := right.Schema.Column(right.On[i])
		if !ok {
			return nil, joinErr("", &domainerrors.ColumnNotFoundError{TableName: right.Label, ColumnName: right.On[i]})
		}

		keys.left[i] = left.Schema.Index(left.On[i])
		keys.right[i] = right.Schema.Index(right.On[i])

		kind, ok := compatibleKind(leftCol.Type, rightCol.Type)
		if !ok {
			// A key column without values has no real type (a header-only CSV
			// infers TEXT) and can never match, so the populated side decides.
			switch {
			case !hasValues(right, keys.right[i]):
				kind, ok = compatibleKind(leftCol.Type, leftCol.Type)
			case !hasValues(left, keys.left[i]):
				kind, ok = compatibleKind(rightCol.Type, rightCol.Type)
			}
		}
		if !ok {
			return nil, joinErr(fmt.Sprintf("cannot join incompatible types: %s.%s (%s) with %s.%s (%s)",
				left.Label, leftCol.Name, leftCol.Type,
				right.Label, rightCol.Name, rightCol.Type,
			), nil)
		}
		keys.kinds[i] = kind
	}

	return keys, nil
}

// hasValues reports whether any row holds a non-null value at pos
func hasValues(t *schema.Table, pos int) bool {
	for _, row := range t.Rows {
		if !row.IsNull(pos) {
			return true
		}
	}
	return false
}

// compatibleKind decides how two key column types compare.
// INT and FLOAT compare numerically; everything else must match exactly.
func compatibleKind(a, b schema.ColumnType) (keyKind, bool) {
	if a == b {
		switch a {
		case schema.ColumnTypeInt:
			return keyInt, true
		case schema.ColumnTypeFloat:
			return keyFloat, true
		case schema.ColumnTypeBool:
			return keyBool, true
		default:
			return keyText, true
		}
	}
	if a.IsNumeric() && b.IsNumeric() {
		return keyFloat, true
	}
	return keyText, false
}

// encodeKey builds the composite hash key of a row.
// Returns false when any key value is NULL: NULL never matches anything.
func encodeKey(row data.Row, positions []int, kinds []keyKind) (string, bool) {
	var sb strings.Builder
	for i, pos := range positions {
		if row.IsNull(pos) {
			return "", false
		}
		v := row[pos]
		if i > 0 {
			sb.WriteByte(0x1f)
		}
		switch kinds[i] {
		case keyInt:
			n, ok := v.(int64)
			if !ok {
				return "", false
			}
			sb.WriteString(strconv.FormatInt(n, 10))
		case keyFloat:
			f, ok := toFloat(v)
			if !ok || math.IsNaN(f) {
				return "", false
			}
			if f == 0 {
				f = 0 // -0 and 0 are the same key
			}
			sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		case keyBool:
			b, ok := v.(bool)
			if !ok {
				return "", false
			}
			sb.WriteString(strconv.FormatBool(b))
		default:
			s := fmt.Sprint(v)
			sb.WriteString(strconv.Itoa(len(s)))
			sb.WriteByte(':')
			sb.WriteString(s)
		}
	}
	return sb.String(), true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// buildJoinIndex creates a hash index over the key columns of a table
func buildJoinIndex(table *schema.Table, positions []int, kinds []keyKind) map[string][]int {
	hashIndex := make(map[string][]int, len(table.Rows))
	for i, row := range table.Rows {
		key, ok := encodeKey(row, positions, kinds)
		if !ok {
			continue // NULL keys are never indexed
		}
		hashIndex[key] = append(hashIndex[key], i)
	}
	return hashIndex
}

// columnSource locates an output column in one of the operands
type columnSource struct {
	fromBase bool
	index    int
}

// buildLayout computes the output columns of a join step.
// dropped holds the positions of other-operand columns removed by key coalescing.
func buildLayout(base, other *schema.Table, dropped map[int]bool, otherFirst bool) ([]schema.Column, []columnSource) {
	var cols []schema.Column
	var sources []columnSource

	addBase := func() {
		for i, c := range base.Schema.Columns {
			cols = append(cols, c)
			sources = append(sources, columnSource{fromBase: true, index: i})
		}
	}
	addOther := func() {
		for i, c := range other.Schema.Columns {
			if dropped[i] {
				continue
			}
			cols = append(cols, c)
			sources = append(sources, columnSource{fromBase: false, index: i})
		}
	}

	if otherFirst {
		addOther()
		addBase()
	} else {
		addBase()
		addOther()
	}
	return cols, sources
}

// combineRows builds an output row; a negative position means that side is NULL
func combineRows(base, other *schema.Table, basePos, otherPos int, sources []columnSource) data.Row {
	row := data.NewRow(len(sources))
	for j, src := range sources {
		if src.fromBase {
			if basePos >= 0 {
				row[j] = valueAt(base.Rows[basePos], src.index)
			}
		} else if otherPos >= 0 {
			row[j] = valueAt(other.Rows[otherPos], src.index)
		}
	}
	return row
}

func valueAt(r data.Row, i int) any {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}
