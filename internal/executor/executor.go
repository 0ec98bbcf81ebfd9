package executor

import (
	"fmt"
	"log/slog"

	"github.com/leengari/rabbet/internal/domain/errors"
	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/plan"
)

// ResultLabel is the label carried by query results
const ResultLabel = "query"

type Result struct {
	Table   *schema.Table
	Message string
}

// Execute evaluates a plan tree against the catalog
func Execute(node plan.Node, db *schema.Database) (*Result, error) {
	table, err := executeNode(node, db)
	if err != nil {
		return nil, err
	}
	table.Label = ResultLabel
	table.On = nil

	return &Result{
		Table:   table,
		Message: fmt.Sprintf("Returned %d rows", table.Height()),
	}, nil
}

func executeNode(node plan.Node, db *schema.Database) (*schema.Table, error) {
	switch n := node.(type) {
	case *plan.ScanNode:
		return executeScan(n, db)
	case *plan.JoinNode:
		return executeJoin(n, db)
	case *plan.FilterNode:
		return executeFilter(n, db)
	case *plan.SortNode:
		return executeSort(n, db)
	case *plan.ProjectNode:
		return executeProject(n, db)
	case *plan.LimitNode:
		return executeLimit(n, db)
	default:
		return nil, fmt.Errorf("unsupported plan node: %s", node.NodeType())
	}
}

// executeScan exposes a catalog table with its columns renamed to "alias.column",
// so every column of an intermediate result has a unique name
func executeScan(n *plan.ScanNode, db *schema.Database) (*schema.Table, error) {
	table, ok := db.Tables[n.TableName]
	if !ok {
		// Should be caught by planner, but check anyway
		return nil, &errors.TableNotFoundError{TableName: n.TableName}
	}

	refs := n.Columns()
	cols := make([]schema.Column, len(refs))
	for i, c := range refs {
		cols[i] = schema.Column{Name: c.Qualified(), Type: c.Type}
	}

	out := schema.NewTable(schema.NewTableSchema(cols...), table.Rows)
	out.Label = n.Alias
	out.Path = table.Path

	slog.Debug("scan", slog.String("table", n.TableName), slog.Int("rows", out.Height()))
	return out, nil
}
