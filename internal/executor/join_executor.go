package executor

import (
	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/plan"
	"github.com/leengari/rabbet/internal/query/operations/join"
)

// executeJoin runs both children and joins them on the node's qualified keys.
// Key columns of both sides are kept and the left child's columns come first
// for every join type, matching the planner's layout.
func executeJoin(n *plan.JoinNode, db *schema.Database) (*schema.Table, error) {
	left, err := executeNode(n.Left(), db)
	if err != nil {
		return nil, err
	}
	right, err := executeNode(n.Right(), db)
	if err != nil {
		return nil, err
	}

	left.On = n.LeftKeys
	right.On = n.RightKeys

	return join.Execute(left, right, n.JoinType, join.WithKeepKeys(), join.WithOperandOrder())
}
