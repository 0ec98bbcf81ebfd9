package planner

import (
	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/plan"
)

// attachRowEstimate records the input size of a scan
func attachRowEstimate(node *plan.ScanNode, table *schema.Table) {
	node.Metadata()["rows"] = table.Height()
}

// selectJoinAlgorithm names the algorithm the executor will use for a join.
// Every join builds a hash index over its non-base operand.
func selectJoinAlgorithm(_ *plan.JoinNode) string {
	return "hash"
}
