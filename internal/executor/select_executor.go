package executor

import (
	"fmt"
	"slices"

	"github.com/leengari/rabbet/internal/domain/data"
	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/plan"
	"github.com/leengari/rabbet/internal/planner/predicate"
)

func executeFilter(n *plan.FilterNode, db *schema.Database) (*schema.Table, error) {
	in, err := executeNode(n.Children()[0], db)
	if err != nil {
		return nil, err
	}

	rows := make([]data.Row, 0, len(in.Rows))
	for _, row := range in.Rows {
		if n.Predicate(row) {
			rows = append(rows, row)
		}
	}
	return derive(in, in.Schema, rows), nil
}

// executeSort orders rows stably. NULL sorts before every value, so it comes
// first ascending and last descending.
func executeSort(n *plan.SortNode, db *schema.Database) (*schema.Table, error) {
	in, err := executeNode(n.Children()[0], db)
	if err != nil {
		return nil, err
	}

	rows := slices.Clone(in.Rows)
	slices.SortStableFunc(rows, func(a, b data.Row) int {
		for _, key := range n.Keys {
			c := compareCells(a[key.Index], b[key.Index])
			if key.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return derive(in, in.Schema, rows), nil
}

func compareCells(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c, ok := predicate.Order(a, b); ok {
		return c
	}
	// Mixed types only occur in TEXT-vs-number key columns; fall back to text order
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

func executeProject(n *plan.ProjectNode, db *schema.Database) (*schema.Table, error) {
	in, err := executeNode(n.Children()[0], db)
	if err != nil {
		return nil, err
	}

	cols := make([]schema.Column, len(n.Indexes))
	for i, idx := range n.Indexes {
		cols[i] = schema.Column{Name: n.Names[i], Type: in.Schema.Columns[idx].Type}
	}

	rows := make([]data.Row, len(in.Rows))
	for r, row := range in.Rows {
		out := data.NewRow(len(n.Indexes))
		for i, idx := range n.Indexes {
			out[i] = row[idx]
		}
		rows[r] = out
	}
	return derive(in, schema.NewTableSchema(cols...), rows), nil
}

func executeLimit(n *plan.LimitNode, db *schema.Database) (*schema.Table, error) {
	in, err := executeNode(n.Children()[0], db)
	if err != nil {
		return nil, err
	}

	rows := in.Rows
	if int64(len(rows)) > n.Count {
		rows = rows[:n.Count]
	}
	return derive(in, in.Schema, rows), nil
}

func derive(in *schema.Table, s *schema.TableSchema, rows []data.Row) *schema.Table {
	out := schema.NewTable(s, rows)
	out.Label = in.Label
	return out
}
