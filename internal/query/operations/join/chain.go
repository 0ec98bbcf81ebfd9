package join

import (
	"fmt"

	"github.com/leengari/rabbet/internal/domain/schema"
)

// Fold joins tables left to right: ((t1 ⋈ t2) ⋈ t3) ⋈ ...
// The first failing step aborts the fold and no partial result is returned.
func Fold(tables []*schema.Table, joinType JoinType, opts ...Option) (*schema.Table, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to join")
	}
	o := applyOptions(opts)

	acc := tables[0]
	for i, t := range tables[1:] {
		leftLabel, leftRows := acc.Label, acc.Height()

		next, err := Execute(acc, t, joinType, opts...)
		if err != nil {
			return nil, err
		}
		acc = next

		if o.onStep != nil {
			o.onStep(StepInfo{
				Step:     i + 1,
				Left:     leftLabel,
				Right:    t.Label,
				Type:     joinType,
				LeftRows: leftRows,
				Rows:     acc.Height(),
			})
		}
	}

	if len(tables) == 1 {
		return acc.Clone(), nil
	}
	return acc, nil
}
