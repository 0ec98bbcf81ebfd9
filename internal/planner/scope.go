package planner

import (
	"strings"

	"github.com/leengari/rabbet/internal/domain/errors"
	"github.com/leengari/rabbet/internal/parser/ast"
	"github.com/leengari/rabbet/internal/plan"
)

// scope resolves column references against an intermediate row layout
type scope struct {
	cols []plan.ColumnRef
	refs []string
}

func newScope(cols []plan.ColumnRef, refs []string) *scope {
	return &scope{cols: cols, refs: refs}
}

func (s *scope) hasRef(ref string) bool {
	for _, r := range s.refs {
		if r == ref {
			return true
		}
	}
	return false
}

func (s *scope) countRef(ref string) int {
	n := 0
	for _, c := range s.cols {
		if c.Table == ref {
			n++
		}
	}
	return n
}

// resolve returns the position of a column. Qualified references must name a
// table in scope; unqualified ones must match exactly one table.
func (s *scope) resolve(id *ast.Identifier) (int, error) {
	if id.Table != "" {
		if !s.hasRef(id.Table) {
			return 0, &errors.TableNotFoundError{TableName: id.Table}
		}
		for i, c := range s.cols {
			if c.Table == id.Table && c.Name == id.Value {
				return i, nil
			}
		}
		return 0, &errors.ColumnNotFoundError{TableName: id.Table, ColumnName: id.Value}
	}

	found := -1
	var tables []string
	for i, c := range s.cols {
		if c.Name != id.Value {
			continue
		}
		if found < 0 {
			found = i
		}
		if len(tables) == 0 || tables[len(tables)-1] != c.Table {
			tables = append(tables, c.Table)
		}
	}

	switch {
	case found < 0:
		return 0, &errors.ColumnNotFoundError{TableName: strings.Join(s.refs, ", "), ColumnName: id.Value}
	case len(tables) > 1:
		return 0, &errors.AmbiguousColumnError{ColumnName: id.Value, Tables: tables}
	}
	return found, nil
}
