package plan

import (
	"github.com/leengari/rabbet/internal/domain/data"
	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/query/operations/join"
)

// Node is the base interface for all execution plan nodes
type Node interface {
	// Children returns child nodes for tree walking
	Children() []Node

	// Metadata returns attached metadata (never nil)
	Metadata() map[string]any

	// NodeType returns the type identifier (for debugging/logging)
	NodeType() string

	// Columns returns the layout of the rows this node produces
	Columns() []ColumnRef
}

// ColumnRef is one column of an intermediate result, qualified by table reference
type ColumnRef struct {
	Table string
	Name  string
	Type  schema.ColumnType
}

// Qualified returns "table.name"
func (c ColumnRef) Qualified() string {
	return c.Table + "." + c.Name
}

type metadataHolder struct {
	metadata map[string]any
}

func (m *metadataHolder) Metadata() map[string]any {
	if m.metadata == nil {
		m.metadata = make(map[string]any)
	}
	return m.metadata
}

// ScanNode reads a catalog table (leaf node)
type ScanNode struct {
	TableName string
	Alias     string
	columns   []ColumnRef
	metadataHolder
}

func NewScanNode(tableName, alias string, columns []ColumnRef) *ScanNode {
	n := &ScanNode{TableName: tableName, Alias: alias, columns: columns}
	n.Metadata()["table"] = tableName
	if alias != tableName {
		n.Metadata()["alias"] = alias
	}
	return n
}

func (n *ScanNode) Children() []Node {
	return nil // Leaf node has no children
}

func (n *ScanNode) NodeType() string { return "SCAN" }

func (n *ScanNode) Columns() []ColumnRef { return n.columns }

// JoinNode represents a JOIN operation (composite node with two children).
// LeftKeys and RightKeys are qualified column names, paired by position.
type JoinNode struct {
	JoinType  join.JoinType
	LeftKeys  []string
	RightKeys []string

	// Tree structure - JOIN has two children
	left  Node
	right Node

	metadataHolder
}

func NewJoinNode(left, right Node, joinType join.JoinType, leftKeys, rightKeys []string) *JoinNode {
	n := &JoinNode{
		left:      left,
		right:     right,
		JoinType:  joinType,
		LeftKeys:  leftKeys,
		RightKeys: rightKeys,
	}
	n.Metadata()["type"] = joinType.Name()
	n.Metadata()["on"] = joinCondition(leftKeys, rightKeys)
	return n
}

func joinCondition(left, right []string) string {
	s := ""
	for i := range left {
		if i > 0 {
			s += " AND "
		}
		s += left[i] + " = " + right[i]
	}
	return s
}

func (n *JoinNode) Left() Node {
	return n.left
}

func (n *JoinNode) Right() Node {
	return n.right
}

func (n *JoinNode) Children() []Node {
	return []Node{n.left, n.right}
}

func (n *JoinNode) NodeType() string { return "JOIN" }

// Columns are the left child's columns followed by the right child's
func (n *JoinNode) Columns() []ColumnRef {
	left, right := n.left.Columns(), n.right.Columns()
	cols := make([]ColumnRef, 0, len(left)+len(right))
	cols = append(cols, left...)
	return append(cols, right...)
}

// FilterNode keeps the rows of its child for which Predicate is true
type FilterNode struct {
	Predicate func(data.Row) bool
	child     Node
	metadataHolder
}

func NewFilterNode(child Node, predicate func(data.Row) bool, condition string) *FilterNode {
	n := &FilterNode{child: child, Predicate: predicate}
	n.Metadata()["condition"] = condition
	return n
}

func (n *FilterNode) Children() []Node { return []Node{n.child} }

func (n *FilterNode) NodeType() string { return "FILTER" }

func (n *FilterNode) Columns() []ColumnRef { return n.child.Columns() }

// SortKey orders rows by the column at Index
type SortKey struct {
	Index      int
	Descending bool
}

// SortNode stably orders the rows of its child
type SortNode struct {
	Keys  []SortKey
	child Node
	metadataHolder
}

func NewSortNode(child Node, keys []SortKey, description string) *SortNode {
	n := &SortNode{child: child, Keys: keys}
	n.Metadata()["order"] = description
	return n
}

func (n *SortNode) Children() []Node { return []Node{n.child} }

func (n *SortNode) NodeType() string { return "SORT" }

func (n *SortNode) Columns() []ColumnRef { return n.child.Columns() }

// ProjectNode picks columns of its child by position and names them
type ProjectNode struct {
	Indexes []int
	Names   []string
	child   Node
	metadataHolder
}

func NewProjectNode(child Node, indexes []int, names []string) *ProjectNode {
	n := &ProjectNode{child: child, Indexes: indexes, Names: names}
	n.Metadata()["columns"] = names
	return n
}

func (n *ProjectNode) Children() []Node { return []Node{n.child} }

func (n *ProjectNode) NodeType() string { return "PROJECT" }

func (n *ProjectNode) Columns() []ColumnRef {
	in := n.child.Columns()
	cols := make([]ColumnRef, len(n.Indexes))
	for i, idx := range n.Indexes {
		cols[i] = ColumnRef{Name: n.Names[i], Type: in[idx].Type}
	}
	return cols
}

// LimitNode keeps the first Count rows of its child
type LimitNode struct {
	Count int64
	child Node
	metadataHolder
}

func NewLimitNode(child Node, count int64) *LimitNode {
	n := &LimitNode{child: child, Count: count}
	n.Metadata()["count"] = count
	return n
}

func (n *LimitNode) Children() []Node { return []Node{n.child} }

func (n *LimitNode) NodeType() string { return "LIMIT" }

func (n *LimitNode) Columns() []ColumnRef { return n.child.Columns() }
