package ast

import (
	"bytes"
	"fmt"
	"strings"
)

// Node is the base interface for all AST nodes
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement represents a standalone SQL statement
type Statement interface {
	Node
	statementNode()
}

// Expression represents a value or operation
type Expression interface {
	Node
	expressionNode()
}

// Identifier represents a column reference, optionally qualified by a table alias
type Identifier struct {
	TokenLiteralValue string // The token literal (e.g. "name")
	Table             string // Qualifier (e.g. "u" in u.name), empty when bare
	Value             string // The column name (e.g. "name")
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.TokenLiteralValue }
func (i *Identifier) String() string {
	if i.Table != "" {
		return i.Table + "." + i.Value
	}
	return i.Value
}

// LiteralKind identifies the Go type held by a Literal
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralInt
	LiteralFloat
	LiteralBool
	LiteralNull
)

// Literal represents a fixed value: int64, float64, string, bool or nil
type Literal struct {
	TokenLiteralValue string
	Value             any
	Kind              LiteralKind
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.TokenLiteralValue }
func (l *Literal) String() string {
	if l.Kind == LiteralString {
		return "'" + strings.ReplaceAll(l.TokenLiteralValue, "'", "''") + "'"
	}
	return l.TokenLiteralValue
}

// BinaryExpression: Left Operator Right (e.g. id = 1)
type BinaryExpression struct {
	Left     Expression
	Operator string
	Right    Expression
}

func (e *BinaryExpression) expressionNode()      {}
func (e *BinaryExpression) TokenLiteral() string { return e.Operator }
func (e *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Operator, e.Right.String())
}

// LogicalExpression: Left AND/OR Right
type LogicalExpression struct {
	Left     Expression
	Operator string // "AND" or "OR"
	Right    Expression
}

func (e *LogicalExpression) expressionNode()      {}
func (e *LogicalExpression) TokenLiteral() string { return e.Operator }
func (e *LogicalExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Operator, e.Right.String())
}

// NotExpression: NOT Operand
type NotExpression struct {
	Operand Expression
}

func (e *NotExpression) expressionNode()      {}
func (e *NotExpression) TokenLiteral() string { return "NOT" }
func (e *NotExpression) String() string       { return fmt.Sprintf("(NOT %s)", e.Operand.String()) }

// IsNullExpression: Operand IS [NOT] NULL
type IsNullExpression struct {
	Operand Expression
	Negated bool
}

func (e *IsNullExpression) expressionNode()      {}
func (e *IsNullExpression) TokenLiteral() string { return "IS" }
func (e *IsNullExpression) String() string {
	if e.Negated {
		return fmt.Sprintf("(%s IS NOT NULL)", e.Operand.String())
	}
	return fmt.Sprintf("(%s IS NULL)", e.Operand.String())
}

// SelectField is one entry of the select list: *, t.*, or a column with an optional alias
type SelectField struct {
	Star   bool
	Table  string // qualifier for t.*
	Column *Identifier
	Alias  string
}

func (f *SelectField) String() string {
	switch {
	case f.Star && f.Table != "":
		return f.Table + ".*"
	case f.Star:
		return "*"
	case f.Alias != "":
		return f.Column.String() + " AS " + f.Alias
	default:
		return f.Column.String()
	}
}

// TableRef names a registered table, optionally under an alias
type TableRef struct {
	Name  string
	Alias string
}

// Ref returns the name the rest of the query uses for this table
func (t *TableRef) Ref() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

func (t *TableRef) String() string {
	if t.Alias != "" {
		return t.Name + " " + t.Alias
	}
	return t.Name
}

// JoinClause: [INNER|LEFT|RIGHT|FULL [OUTER]] JOIN table ON condition
type JoinClause struct {
	JoinType    string // "INNER", "LEFT", "RIGHT", "FULL"
	RightTable  *TableRef
	OnCondition Expression
}

func (j *JoinClause) String() string {
	return fmt.Sprintf("%s JOIN %s ON %s", j.JoinType, j.RightTable.String(), j.OnCondition.String())
}

// OrderByItem: expression [ASC|DESC]
type OrderByItem struct {
	Column     *Identifier
	Descending bool
}

func (o *OrderByItem) String() string {
	if o.Descending {
		return o.Column.String() + " DESC"
	}
	return o.Column.String()
}

// SelectStatement: SELECT fields FROM table [JOIN ...] [WHERE ...] [ORDER BY ...] [LIMIT n]
type SelectStatement struct {
	Fields  []*SelectField
	From    *TableRef
	Joins   []*JoinClause
	Where   Expression
	OrderBy []*OrderByItem
	Limit   *int64
}

func (s *SelectStatement) statementNode()       {}
func (s *SelectStatement) TokenLiteral() string { return "SELECT" }
func (s *SelectStatement) String() string {
	var out bytes.Buffer
	out.WriteString("SELECT ")
	for i, f := range s.Fields {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(f.String())
	}
	out.WriteString(" FROM ")
	out.WriteString(s.From.String())
	for _, j := range s.Joins {
		out.WriteString(" ")
		out.WriteString(j.String())
	}
	if s.Where != nil {
		out.WriteString(" WHERE ")
		out.WriteString(s.Where.String())
	}
	if len(s.OrderBy) > 0 {
		out.WriteString(" ORDER BY ")
		for i, o := range s.OrderBy {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(o.String())
		}
	}
	if s.Limit != nil {
		fmt.Fprintf(&out, " LIMIT %d", *s.Limit)
	}
	return out.String()
}
