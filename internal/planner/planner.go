package planner

import (
	"fmt"
	"strings"

	"github.com/leengari/rabbet/internal/domain/errors"
	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/parser/ast"
	"github.com/leengari/rabbet/internal/plan"
	"github.com/leengari/rabbet/internal/planner/predicate"
	"github.com/leengari/rabbet/internal/query/operations/join"
)

// Plan converts an AST statement into an execution plan
func Plan(stmt ast.Statement, db *schema.Database) (plan.Node, error) {
	switch s := stmt.(type) {
	case *ast.SelectStatement:
		return planSelect(s, db)
	default:
		return nil, fmt.Errorf("unsupported statement type: %T", stmt)
	}
}

func planSelect(stmt *ast.SelectStatement, db *schema.Database) (plan.Node, error) {
	// 1. FROM and JOINs
	scan, err := planScan(stmt.From, db)
	if err != nil {
		return nil, err
	}
	var node plan.Node = scan
	refs := []string{stmt.From.Ref()}

	for _, joinClause := range stmt.Joins {
		ref := joinClause.RightTable.Ref()
		for _, seen := range refs {
			if seen == ref {
				return nil, fmt.Errorf("table reference '%s' is used more than once; give it an alias", ref)
			}
		}

		rightScan, err := planScan(joinClause.RightTable, db)
		if err != nil {
			return nil, err
		}

		jt, err := joinTypeOf(joinClause.JoinType)
		if err != nil {
			return nil, err
		}

		leftKeys, rightKeys, err := joinKeys(joinClause.OnCondition, node.Columns(), rightScan.Columns(), refs, ref)
		if err != nil {
			return nil, err
		}

		joinNode := plan.NewJoinNode(node, rightScan, jt, leftKeys, rightKeys)
		joinNode.Metadata()["algorithm"] = selectJoinAlgorithm(joinNode)
		node = joinNode
		refs = append(refs, ref)
	}

	sc := newScope(node.Columns(), refs)

	// 2. WHERE
	if stmt.Where != nil {
		pred, err := predicate.Build(stmt.Where, sc.resolve)
		if err != nil {
			return nil, err
		}
		node = plan.NewFilterNode(node, pred, stmt.Where.String())
	}

	// 3. Projection is resolved first so ORDER BY can use select aliases
	indexes, names, err := projection(stmt.Fields, sc)
	if err != nil {
		return nil, err
	}

	// 4. ORDER BY
	if len(stmt.OrderBy) > 0 {
		keys := make([]plan.SortKey, len(stmt.OrderBy))
		desc := make([]string, len(stmt.OrderBy))
		for i, item := range stmt.OrderBy {
			idx, err := orderIndex(item.Column, stmt.Fields, indexes, sc)
			if err != nil {
				return nil, err
			}
			keys[i] = plan.SortKey{Index: idx, Descending: item.Descending}
			desc[i] = item.String()
		}
		node = plan.NewSortNode(node, keys, strings.Join(desc, ", "))
	}

	node = plan.NewProjectNode(node, indexes, names)

	// 5. LIMIT
	if stmt.Limit != nil {
		node = plan.NewLimitNode(node, *stmt.Limit)
	}

	return node, nil
}

func planScan(ref *ast.TableRef, db *schema.Database) (*plan.ScanNode, error) {
	table, ok := db.Tables[ref.Name]
	if !ok {
		return nil, &errors.TableNotFoundError{TableName: ref.Name}
	}

	alias := ref.Ref()
	cols := make([]plan.ColumnRef, table.Width())
	for i, c := range table.Schema.Columns {
		cols[i] = plan.ColumnRef{Table: alias, Name: c.Name, Type: c.Type}
	}

	scan := plan.NewScanNode(ref.Name, alias, cols)
	attachRowEstimate(scan, table)
	return scan, nil
}

func joinTypeOf(name string) (join.JoinType, error) {
	switch name {
	case "INNER":
		return join.JoinTypeInner, nil
	case "LEFT":
		return join.JoinTypeLeft, nil
	case "RIGHT":
		return join.JoinTypeRight, nil
	case "FULL":
		return join.JoinTypeOuter, nil
	default:
		return 0, fmt.Errorf("unsupported JOIN type: %s", name)
	}
}

// joinKeys extracts the equality pairs of an ON condition. Each pair must
// compare a column of the tables joined so far with a column of the new table.
func joinKeys(cond ast.Expression, leftCols, rightCols []plan.ColumnRef, leftRefs []string, rightRef string) ([]string, []string, error) {
	pairs, err := equalities(cond)
	if err != nil {
		return nil, nil, err
	}

	all := append(append([]plan.ColumnRef{}, leftCols...), rightCols...)
	sc := newScope(all, append(append([]string{}, leftRefs...), rightRef))

	var leftKeys, rightKeys []string
	for _, pair := range pairs {
		a, err := sc.resolve(pair.Left.(*ast.Identifier))
		if err != nil {
			return nil, nil, err
		}
		b, err := sc.resolve(pair.Right.(*ast.Identifier))
		if err != nil {
			return nil, nil, err
		}

		aLeft, bLeft := a < len(leftCols), b < len(leftCols)
		switch {
		case aLeft && !bLeft:
		case bLeft && !aLeft:
			a, b = b, a
		default:
			return nil, nil, fmt.Errorf("JOIN ON condition %s must compare a column of '%s' with an earlier table", pair.String(), rightRef)
		}

		leftKeys = append(leftKeys, all[a].Qualified())
		rightKeys = append(rightKeys, all[b].Qualified())
	}

	return leftKeys, rightKeys, nil
}

// equalities flattens an AND-tree of column = column comparisons
func equalities(expr ast.Expression) ([]*ast.BinaryExpression, error) {
	switch e := expr.(type) {
	case *ast.LogicalExpression:
		if e.Operator != "AND" {
			return nil, fmt.Errorf("JOIN ON condition only supports AND, got %s", e.Operator)
		}
		left, err := equalities(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := equalities(e.Right)
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil

	case *ast.BinaryExpression:
		if e.Operator != "=" {
			return nil, fmt.Errorf("JOIN ON condition must use = operator, got %s", e.Operator)
		}
		_, lok := e.Left.(*ast.Identifier)
		_, rok := e.Right.(*ast.Identifier)
		if !lok || !rok {
			return nil, fmt.Errorf("JOIN ON condition must compare two columns, got %s", e.String())
		}
		return []*ast.BinaryExpression{e}, nil

	default:
		return nil, fmt.Errorf("JOIN ON condition must be column equalities, got %s", expr.String())
	}
}

// projection resolves the select list into column positions and output names
func projection(fields []*ast.SelectField, sc *scope) ([]int, []string, error) {
	var indexes []int
	var aliases []string

	for _, f := range fields {
		switch {
		case f.Star && f.Table == "":
			for i := range sc.cols {
				indexes = append(indexes, i)
				aliases = append(aliases, "")
			}
		case f.Star:
			if !sc.hasRef(f.Table) {
				return nil, nil, &errors.TableNotFoundError{TableName: f.Table}
			}
			for i, c := range sc.cols {
				if c.Table == f.Table {
					indexes = append(indexes, i)
					aliases = append(aliases, "")
				}
			}
		default:
			idx, err := sc.resolve(f.Column)
			if err != nil {
				return nil, nil, err
			}
			indexes = append(indexes, idx)
			aliases = append(aliases, f.Alias)
		}
	}

	return indexes, outputNames(indexes, aliases, sc.cols), nil
}

// outputNames uses the alias when given, the bare column name when it is
// unique among the projected columns, and the qualified name otherwise
func outputNames(indexes []int, aliases []string, cols []plan.ColumnRef) []string {
	counts := make(map[string]int)
	for i, idx := range indexes {
		if aliases[i] == "" {
			counts[cols[idx].Name]++
		} else {
			counts[aliases[i]]++
		}
	}

	names := make([]string, len(indexes))
	for i, idx := range indexes {
		switch {
		case aliases[i] != "":
			names[i] = aliases[i]
		case counts[cols[idx].Name] > 1:
			names[i] = cols[idx].Qualified()
		default:
			names[i] = cols[idx].Name
		}
	}
	return names
}

// orderIndex resolves an ORDER BY column, preferring select-list aliases
func orderIndex(id *ast.Identifier, fields []*ast.SelectField, indexes []int, sc *scope) (int, error) {
	if id.Table == "" {
		pos := 0
		for _, f := range fields {
			if f.Star {
				// star expansions carry no alias; skip their positions
				if f.Table == "" {
					pos += len(sc.cols)
				} else {
					pos += sc.countRef(f.Table)
				}
				continue
			}
			if f.Alias == id.Value {
				return indexes[pos], nil
			}
			pos++
		}
	}
	return sc.resolve(id)
}
