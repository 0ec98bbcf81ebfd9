package parser

import (
	"errors"
	"testing"

	"github.com/leengari/rabbet/internal/parser/ast"
	"github.com/leengari/rabbet/internal/parser/lexer"
)

func parseSelect(t *testing.T, input string) *ast.SelectStatement {
	t.Helper()
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatalf("Lexer error: %v", err)
	}

	p := New(tokens)
	stmt, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	sel, ok := stmt.(*ast.SelectStatement)
	if !ok {
		t.Fatalf("Expected SelectStatement, got %T", stmt)
	}
	return sel
}

func TestParseSelect(t *testing.T) {
	sel := parseSelect(t, "SELECT id, name FROM users WHERE id = 1;")

	if len(sel.Fields) != 2 {
		t.Fatalf("Expected 2 fields, got %d", len(sel.Fields))
	}
	if sel.Fields[0].Column.Value != "id" {
		t.Errorf("Expected field 0 to be id, got %s", sel.Fields[0].Column.Value)
	}
	if sel.Fields[1].Column.Value != "name" {
		t.Errorf("Expected field 1 to be name, got %s", sel.Fields[1].Column.Value)
	}

	if sel.From.Name != "users" {
		t.Errorf("Expected table users, got %s", sel.From.Name)
	}

	binExpr, ok := sel.Where.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("Expected BinaryExpression in Where, got %T", sel.Where)
	}
	if binExpr.Left.(*ast.Identifier).Value != "id" {
		t.Errorf("Expected left side id, got %s", binExpr.Left)
	}
	if binExpr.Operator != "=" {
		t.Errorf("Expected operator =, got %s", binExpr.Operator)
	}
	if binExpr.Right.(*ast.Literal).Value.(int64) != 1 {
		t.Errorf("Expected right side 1, got %v", binExpr.Right)
	}
}

func TestParseSelectStarAndAliases(t *testing.T) {
	sel := parseSelect(t, "SELECT u.*, o.amount AS total, o.product item FROM users AS u JOIN orders o ON u.id = o.user_id")

	if len(sel.Fields) != 3 {
		t.Fatalf("Expected 3 fields, got %d", len(sel.Fields))
	}
	if !sel.Fields[0].Star || sel.Fields[0].Table != "u" {
		t.Errorf("Expected u.*, got %s", sel.Fields[0])
	}
	if sel.Fields[1].Column.Table != "o" || sel.Fields[1].Column.Value != "amount" || sel.Fields[1].Alias != "total" {
		t.Errorf("Expected o.amount AS total, got %s", sel.Fields[1])
	}
	if sel.Fields[2].Alias != "item" {
		t.Errorf("Expected implicit alias item, got %q", sel.Fields[2].Alias)
	}
	if sel.From.Alias != "u" || sel.From.Ref() != "u" {
		t.Errorf("Expected FROM alias u, got %q", sel.From.Alias)
	}
}

func TestParseJoins(t *testing.T) {
	sel := parseSelect(t, `SELECT * FROM a
JOIN b ON a.id = b.id
INNER JOIN c ON a.id = c.id
LEFT JOIN d ON a.id = d.id
RIGHT OUTER JOIN e ON a.id = e.id
FULL OUTER JOIN f ON a.id = f.id AND a.k = f.k`)

	want := []string{"INNER", "INNER", "LEFT", "RIGHT", "FULL"}
	if len(sel.Joins) != len(want) {
		t.Fatalf("Expected %d joins, got %d", len(want), len(sel.Joins))
	}
	for i, j := range sel.Joins {
		if j.JoinType != want[i] {
			t.Errorf("join %d: expected %s, got %s", i, want[i], j.JoinType)
		}
	}

	last, ok := sel.Joins[4].OnCondition.(*ast.LogicalExpression)
	if !ok || last.Operator != "AND" {
		t.Fatalf("Expected AND condition, got %s", sel.Joins[4].OnCondition)
	}
}

func TestParseOrderByAndLimit(t *testing.T) {
	sel := parseSelect(t, "SELECT * FROM t ORDER BY t.a DESC, b ASC, c LIMIT 10")

	if len(sel.OrderBy) != 3 {
		t.Fatalf("Expected 3 order items, got %d", len(sel.OrderBy))
	}
	if !sel.OrderBy[0].Descending || sel.OrderBy[0].Column.Table != "t" {
		t.Errorf("Expected t.a DESC, got %s", sel.OrderBy[0])
	}
	if sel.OrderBy[1].Descending || sel.OrderBy[2].Descending {
		t.Errorf("Expected ascending order for b and c")
	}
	if sel.Limit == nil || *sel.Limit != 10 {
		t.Errorf("Expected LIMIT 10, got %v", sel.Limit)
	}
}

func TestParseRoundTrip(t *testing.T) {
	input := "SELECT u.name AS n, o.* FROM users u LEFT JOIN orders o ON (u.id = o.user_id) WHERE (o.note IS NULL) ORDER BY n DESC LIMIT 2"
	sel := parseSelect(t, input)

	again := parseSelect(t, sel.String())
	if again.String() != sel.String() {
		t.Errorf("round trip mismatch:\n%s\n%s", sel.String(), again.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not select", "DELETE FROM t"},
		{"missing from", "SELECT a"},
		{"missing table", "SELECT a FROM"},
		{"join without on", "SELECT * FROM a JOIN b"},
		{"dangling comparison", "SELECT * FROM t WHERE a ="},
		{"bad limit", "SELECT * FROM t LIMIT x"},
		{"negative limit", "SELECT * FROM t LIMIT -1"},
		{"trailing tokens", "SELECT * FROM t; SELECT 1"},
		{"unclosed paren", "SELECT * FROM t WHERE (a = 1"},
		{"is without null", "SELECT * FROM t WHERE a IS 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected ParseError, got %T: %v", err, err)
			}
			if perr.Line < 1 {
				t.Errorf("expected a position, got line %d", perr.Line)
			}
		})
	}
}
