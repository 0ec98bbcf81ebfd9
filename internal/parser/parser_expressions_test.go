package parser

import (
	"testing"

	"github.com/leengari/rabbet/internal/parser/ast"
)

// TestParseComparisonExpressions tests parsing of all comparison operators
func TestParseComparisonExpressions(t *testing.T) {
	tests := []struct {
		name             string
		input            string
		expectedOperator string
	}{
		{name: "=", input: "SELECT * FROM users WHERE age = 25;", expectedOperator: "="},
		{name: "<", input: "SELECT * FROM users WHERE age < 30;", expectedOperator: "<"},
		{name: ">", input: "SELECT * FROM users WHERE age > 18;", expectedOperator: ">"},
		{name: "<=", input: "SELECT * FROM users WHERE age <= 65;", expectedOperator: "<="},
		{name: ">=", input: "SELECT * FROM users WHERE age >= 21;", expectedOperator: ">="},
		{name: "!=", input: "SELECT * FROM users WHERE status != 'inactive';", expectedOperator: "!="},
		{name: "<> normalizes to !=", input: "SELECT * FROM users WHERE status <> 'deleted';", expectedOperator: "!="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := parseSelect(t, tt.input)

			binExpr, ok := sel.Where.(*ast.BinaryExpression)
			if !ok {
				t.Fatalf("Expected BinaryExpression, got %T", sel.Where)
			}
			if binExpr.Operator != tt.expectedOperator {
				t.Errorf("Expected operator %s, got %s", tt.expectedOperator, binExpr.Operator)
			}
		})
	}
}

func TestParseLogicalExpressions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		operator string // "AND" or "OR"
	}{
		{name: "AND", input: "SELECT * FROM users WHERE age > 18 AND active = true;", operator: "AND"},
		{name: "OR", input: "SELECT * FROM orders WHERE status = 'pending' OR status = 'processing';", operator: "OR"},
		{name: "Multiple ANDs", input: "SELECT * FROM users WHERE age > 18 AND active = true AND verified = true;", operator: "AND"},
		{name: "Parenthesized OR with AND", input: "SELECT * FROM users WHERE (age > 18 OR premium = true) AND active = true;", operator: "AND"},
		{name: "AND binds tighter than OR", input: "SELECT * FROM users WHERE a = 1 OR b = 2 AND c = 3;", operator: "OR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := parseSelect(t, tt.input)

			logExpr, ok := sel.Where.(*ast.LogicalExpression)
			if !ok {
				t.Fatalf("Expected LogicalExpression, got %T", sel.Where)
			}
			if logExpr.Operator != tt.operator {
				t.Errorf("Expected %s operator, got %s", tt.operator, logExpr.Operator)
			}
		})
	}
}

func TestParseNotAndIsNull(t *testing.T) {
	sel := parseSelect(t, "SELECT * FROM t WHERE NOT a IS NULL AND b IS NOT NULL")

	and, ok := sel.Where.(*ast.LogicalExpression)
	if !ok {
		t.Fatalf("Expected LogicalExpression, got %T", sel.Where)
	}

	not, ok := and.Left.(*ast.NotExpression)
	if !ok {
		t.Fatalf("Expected NotExpression on the left, got %T", and.Left)
	}
	if isNull, ok := not.Operand.(*ast.IsNullExpression); !ok || isNull.Negated {
		t.Errorf("Expected a IS NULL under NOT, got %s", not.Operand)
	}

	if isNotNull, ok := and.Right.(*ast.IsNullExpression); !ok || !isNotNull.Negated {
		t.Errorf("Expected b IS NOT NULL, got %s", and.Right)
	}
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  ast.LiteralKind
		value any
	}{
		{"SELECT * FROM t WHERE a = 'x'", ast.LiteralString, "x"},
		{"SELECT * FROM t WHERE a = 42", ast.LiteralInt, int64(42)},
		{"SELECT * FROM t WHERE a = -3", ast.LiteralInt, int64(-3)},
		{"SELECT * FROM t WHERE a = 2.5", ast.LiteralFloat, 2.5},
		{"SELECT * FROM t WHERE a = TRUE", ast.LiteralBool, true},
		{"SELECT * FROM t WHERE a = false", ast.LiteralBool, false},
		{"SELECT * FROM t WHERE a = NULL", ast.LiteralNull, nil},
	}

	for _, tt := range tests {
		sel := parseSelect(t, tt.input)
		lit, ok := sel.Where.(*ast.BinaryExpression).Right.(*ast.Literal)
		if !ok {
			t.Fatalf("%s: expected literal on the right", tt.input)
		}
		if lit.Kind != tt.kind {
			t.Errorf("%s: expected kind %d, got %d", tt.input, tt.kind, lit.Kind)
		}
		if lit.Value != tt.value {
			t.Errorf("%s: expected value %v, got %v", tt.input, tt.value, lit.Value)
		}
	}
}
