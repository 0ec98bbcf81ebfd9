package join

import (
	"log/slog"

	"github.com/leengari/rabbet/internal/domain/data"
	"github.com/leengari/rabbet/internal/domain/schema"
)

// Execute performs one JOIN step between two bound tables.
// Every JOIN type runs through the same algorithm, parameterised by its Strategy.
// Neither operand is modified; the result is a new table.
func Execute(left, right *schema.Table, joinType JoinType, opts ...Option) (*schema.Table, error) {
	keys, err := validateJoinCondition(left, right)
	if err != nil {
		return nil, err
	}
	o := applyOptions(opts)

	st := joinType.Strategy()
	if o.keepKeys {
		st.CoalesceKeys = false
	}

	base, other := left, right
	baseKeys, otherKeys := keys.left, keys.right
	swapped := st.Base == SideRight
	if swapped {
		base, other = right, left
		baseKeys, otherKeys = keys.right, keys.left
	}

	slog.Debug("Starting "+joinType.String(),
		slog.String("left_table", left.Label),
		slog.String("right_table", right.Label),
		slog.Any("left_on", left.On),
		slog.Any("right_on", right.On),
		slog.String("base", base.Label),
	)

	dropped := make(map[int]bool)
	if st.CoalesceKeys {
		for _, pos := range otherKeys {
			dropped[pos] = true
		}
	}
	cols, sources := buildLayout(base, other, dropped, swapped && o.operandOrder)

	// Build hash index on the non-base table
	hashIndex := buildJoinIndex(other, otherKeys, keys.kinds)

	results := make([]data.Row, 0, len(base.Rows))
	matchedOther := make(map[int]bool)
	unmatchedBase := 0

	// Phase 1: probe the base table in order
	for basePos, baseRow := range base.Rows {
		key, ok := encodeKey(baseRow, baseKeys, keys.kinds)
		var otherPositions []int
		if ok {
			otherPositions = hashIndex[key]
		}

		if len(otherPositions) == 0 {
			unmatchedBase++
			if st.UnmatchedBase == PolicyNullFill {
				results = append(results, combineRows(base, other, basePos, -1, sources))
			}
			continue
		}

		for _, otherPos := range otherPositions {
			matchedOther[otherPos] = true
			results = append(results, combineRows(base, other, basePos, otherPos, sources))
		}
	}

	// Phase 2: add unmatched rows of the other table
	if st.UnmatchedOther == PolicyNullFill {
		for otherPos := range other.Rows {
			if !matchedOther[otherPos] {
				results = append(results, combineRows(base, other, -1, otherPos, sources))
			}
		}
	}

	out := &schema.Table{
		Label:  base.Label,
		Schema: schema.NewTableSchema(cols...),
		Rows:   results,
		On:     append([]string(nil), base.On...),
	}
	if o.legacyProvenance {
		out.Label = left.Label
		out.On = append([]string(nil), left.On...)
	}

	slog.Info(joinType.String()+" completed",
		slog.String("left_table", left.Label),
		slog.String("right_table", right.Label),
		slog.Int("result_rows", len(results)),
		slog.Int("unmatched_base", unmatchedBase),
		slog.Int("unmatched_other", len(other.Rows)-len(matchedOther)),
	)

	return out, nil
}
