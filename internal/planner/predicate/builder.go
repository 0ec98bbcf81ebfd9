package predicate

import (
	"fmt"

	"github.com/leengari/rabbet/internal/domain/data"
	"github.com/leengari/rabbet/internal/parser/ast"
)

// PredicateFunc is a function that tests whether a row matches certain criteria
type PredicateFunc func(data.Row) bool

// Resolver maps a column reference onto a position in the rows being filtered
type Resolver func(*ast.Identifier) (int, error)

// operand yields the value of one side of a comparison for a row
type operand func(data.Row) any

// Build converts an AST expression into a predicate function.
// Supports:
//   - Comparison operators: =, <, >, <=, >=, !=
//   - IS NULL and IS NOT NULL
//   - Logical operators: AND, OR, NOT
//
// Any comparison involving NULL is false.
func Build(expr ast.Expression, resolve Resolver) (PredicateFunc, error) {
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		return buildComparison(e, resolve)

	case *ast.LogicalExpression:
		return buildLogical(e, resolve)

	case *ast.NotExpression:
		inner, err := Build(e.Operand, resolve)
		if err != nil {
			return nil, err
		}
		return func(row data.Row) bool { return !inner(row) }, nil

	case *ast.IsNullExpression:
		get, err := buildOperand(e.Operand, resolve)
		if err != nil {
			return nil, err
		}
		negated := e.Negated
		return func(row data.Row) bool { return (get(row) == nil) != negated }, nil

	case *ast.Literal:
		if b, ok := e.Value.(bool); ok {
			return func(data.Row) bool { return b }, nil
		}
		return nil, fmt.Errorf("literal %s is not a condition", e.String())

	case *ast.Identifier:
		idx, err := resolve(e)
		if err != nil {
			return nil, err
		}
		return func(row data.Row) bool {
			b, ok := row[idx].(bool)
			return ok && b
		}, nil

	default:
		return nil, fmt.Errorf("unsupported expression type in condition: %T", expr)
	}
}

// buildComparison builds a predicate for comparison expressions
func buildComparison(binExpr *ast.BinaryExpression, resolve Resolver) (PredicateFunc, error) {
	left, err := buildOperand(binExpr.Left, resolve)
	if err != nil {
		return nil, err
	}
	right, err := buildOperand(binExpr.Right, resolve)
	if err != nil {
		return nil, err
	}

	operator := binExpr.Operator
	switch operator {
	case "=", "!=", "<", ">", "<=", ">=":
	default:
		return nil, fmt.Errorf("unsupported comparison operator: %s", operator)
	}

	return func(row data.Row) bool {
		return CompareValues(left(row), operator, right(row))
	}, nil
}

func buildOperand(expr ast.Expression, resolve Resolver) (operand, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		idx, err := resolve(e)
		if err != nil {
			return nil, err
		}
		return func(row data.Row) any { return row[idx] }, nil
	case *ast.Literal:
		v := e.Value
		return func(data.Row) any { return v }, nil
	default:
		return nil, fmt.Errorf("comparison operands must be columns or literals, got %s", expr.String())
	}
}

// buildLogical builds a predicate for logical expressions (AND/OR)
// Recursively builds predicates for left and right sub-expressions
func buildLogical(logExpr *ast.LogicalExpression, resolve Resolver) (PredicateFunc, error) {
	leftPred, err := Build(logExpr.Left, resolve)
	if err != nil {
		return nil, err
	}

	rightPred, err := Build(logExpr.Right, resolve)
	if err != nil {
		return nil, err
	}

	switch logExpr.Operator {
	case "AND":
		return func(row data.Row) bool {
			return leftPred(row) && rightPred(row)
		}, nil
	case "OR":
		return func(row data.Row) bool {
			return leftPred(row) || rightPred(row)
		}, nil
	}

	return nil, fmt.Errorf("unsupported logical operator: %s", logExpr.Operator)
}
