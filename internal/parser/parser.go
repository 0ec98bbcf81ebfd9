package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leengari/rabbet/internal/parser/ast"
	"github.com/leengari/rabbet/internal/parser/lexer"
)

// ParseError reports a syntax error at a token position
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at line %d, col %d: %s", e.Line, e.Column, e.Message)
}

type Parser struct {
	tokens  []lexer.Token
	curPos  int
	curTok  lexer.Token
	peekTok lexer.Token
}

func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens, curPos: 0}
	// Read two tokens to set curTok and peekTok
	p.nextToken()
	p.nextToken()
	return p
}

// ParseString tokenizes and parses a single statement
func ParseString(input string) (ast.Statement, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return New(tokens).Parse()
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	if p.curPos < len(p.tokens) {
		p.peekTok = p.tokens[p.curPos]
		p.curPos++
	} else {
		p.peekTok = lexer.Token{Type: lexer.EOF, Line: p.curTok.Line, Column: p.curTok.Column}
	}
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.curTok.Line, Column: p.curTok.Column, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(t lexer.TokenType) error {
	if p.curTok.Type != t {
		return p.errorf("expected %s, got %s", t, describe(p.curTok))
	}
	p.nextToken()
	return nil
}

func (p *Parser) Parse() (ast.Statement, error) {
	switch p.curTok.Type {
	case lexer.SELECT:
		stmt, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		// Semicolon (Optional)
		if p.curTok.Type == lexer.SEMICOLON {
			p.nextToken()
		}
		if p.curTok.Type != lexer.EOF {
			return nil, p.errorf("unexpected %s after end of statement", describe(p.curTok))
		}
		return stmt, nil
	case lexer.EOF:
		return nil, p.errorf("empty statement")
	default:
		return nil, p.errorf("unexpected %s, expected SELECT", describe(p.curTok))
	}
}

func (p *Parser) parseSelect() (*ast.SelectStatement, error) {
	stmt := &ast.SelectStatement{}

	// SELECT
	p.nextToken()

	fields, err := p.parseSelectList()
	if err != nil {
		return nil, err
	}
	stmt.Fields = fields

	if err := p.expect(lexer.FROM); err != nil {
		return nil, err
	}

	from, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	stmt.From = from

	for isJoinStart(p.curTok.Type) {
		join, err := p.parseJoin()
		if err != nil {
			return nil, err
		}
		stmt.Joins = append(stmt.Joins, join)
	}

	// WHERE (Optional)
	if p.curTok.Type == lexer.WHERE {
		p.nextToken()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Where = expr
	}

	// ORDER BY (Optional)
	if p.curTok.Type == lexer.ORDER {
		p.nextToken()
		if err := p.expect(lexer.BY); err != nil {
			return nil, err
		}
		items, err := p.parseOrderBy()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = items
	}

	// LIMIT (Optional)
	if p.curTok.Type == lexer.LIMIT {
		p.nextToken()
		n, err := strconv.ParseInt(p.curTok.Literal, 10, 64)
		if p.curTok.Type != lexer.NUMBER || err != nil || n < 0 {
			return nil, p.errorf("LIMIT requires a non-negative integer, got %s", describe(p.curTok))
		}
		stmt.Limit = &n
		p.nextToken()
	}

	return stmt, nil
}

func (p *Parser) parseSelectList() ([]*ast.SelectField, error) {
	var fields []*ast.SelectField
	for {
		field, err := p.parseSelectField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)

		if p.curTok.Type != lexer.COMMA {
			return fields, nil
		}
		p.nextToken()
	}
}

func (p *Parser) parseSelectField() (*ast.SelectField, error) {
	if p.curTok.Type == lexer.ASTERISK {
		p.nextToken()
		return &ast.SelectField{Star: true}, nil
	}

	// t.*
	if p.curTok.Type == lexer.IDENTIFIER && p.peekTok.Type == lexer.DOT {
		if next := p.peekAt(1); next.Type == lexer.ASTERISK {
			table := p.curTok.Literal
			p.nextToken()
			p.nextToken()
			p.nextToken()
			return &ast.SelectField{Star: true, Table: table}, nil
		}
	}

	col, err := p.parseColumnRef()
	if err != nil {
		return nil, err
	}
	field := &ast.SelectField{Column: col}

	if p.curTok.Type == lexer.AS {
		p.nextToken()
		if p.curTok.Type != lexer.IDENTIFIER {
			return nil, p.errorf("expected alias after AS, got %s", describe(p.curTok))
		}
		field.Alias = p.curTok.Literal
		p.nextToken()
	} else if p.curTok.Type == lexer.IDENTIFIER {
		field.Alias = p.curTok.Literal
		p.nextToken()
	}

	return field, nil
}

// peekAt returns the token n positions after peekTok
func (p *Parser) peekAt(n int) lexer.Token {
	idx := p.curPos + n - 1
	if idx < len(p.tokens) {
		return p.tokens[idx]
	}
	return lexer.Token{Type: lexer.EOF}
}

func (p *Parser) parseTableRef() (*ast.TableRef, error) {
	if p.curTok.Type != lexer.IDENTIFIER {
		return nil, p.errorf("expected table name, got %s", describe(p.curTok))
	}
	ref := &ast.TableRef{Name: p.curTok.Literal}
	p.nextToken()

	if p.curTok.Type == lexer.AS {
		p.nextToken()
		if p.curTok.Type != lexer.IDENTIFIER {
			return nil, p.errorf("expected alias after AS, got %s", describe(p.curTok))
		}
		ref.Alias = p.curTok.Literal
		p.nextToken()
	} else if p.curTok.Type == lexer.IDENTIFIER {
		ref.Alias = p.curTok.Literal
		p.nextToken()
	}

	return ref, nil
}

func (p *Parser) parseJoin() (*ast.JoinClause, error) {
	join := &ast.JoinClause{JoinType: "INNER"}

	switch p.curTok.Type {
	case lexer.INNER:
		p.nextToken()
	case lexer.LEFT, lexer.RIGHT, lexer.FULL:
		join.JoinType = strings.ToUpper(p.curTok.Literal)
		p.nextToken()
		if p.curTok.Type == lexer.OUTER {
			p.nextToken()
		}
	}

	if err := p.expect(lexer.JOIN); err != nil {
		return nil, err
	}

	right, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	join.RightTable = right

	if err := p.expect(lexer.ON); err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	join.OnCondition = cond

	return join, nil
}

func (p *Parser) parseOrderBy() ([]*ast.OrderByItem, error) {
	var items []*ast.OrderByItem
	for {
		col, err := p.parseColumnRef()
		if err != nil {
			return nil, err
		}
		item := &ast.OrderByItem{Column: col}

		switch p.curTok.Type {
		case lexer.ASC:
			p.nextToken()
		case lexer.DESC:
			item.Descending = true
			p.nextToken()
		}
		items = append(items, item)

		if p.curTok.Type != lexer.COMMA {
			return items, nil
		}
		p.nextToken()
	}
}

func (p *Parser) parseColumnRef() (*ast.Identifier, error) {
	if p.curTok.Type != lexer.IDENTIFIER {
		return nil, p.errorf("expected column name, got %s", describe(p.curTok))
	}
	first := p.curTok.Literal
	p.nextToken()

	if p.curTok.Type != lexer.DOT {
		return &ast.Identifier{TokenLiteralValue: first, Value: first}, nil
	}
	p.nextToken()

	if p.curTok.Type != lexer.IDENTIFIER {
		return nil, p.errorf("expected column name after '%s.', got %s", first, describe(p.curTok))
	}
	col := p.curTok.Literal
	p.nextToken()

	return &ast.Identifier{TokenLiteralValue: first + "." + col, Table: first, Value: col}, nil
}

// parseExpression parses OR, the lowest precedence level
func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.curTok.Type == lexer.OR {
		p.nextToken()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpression{Left: left, Operator: "OR", Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.curTok.Type == lexer.AND {
		p.nextToken()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpression{Left: left, Operator: "AND", Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Expression, error) {
	if p.curTok.Type == lexer.NOT {
		p.nextToken()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.NotExpression{Operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	if p.curTok.Type == lexer.IS {
		p.nextToken()
		negated := false
		if p.curTok.Type == lexer.NOT {
			negated = true
			p.nextToken()
		}
		if err := p.expect(lexer.NULL); err != nil {
			return nil, err
		}
		return &ast.IsNullExpression{Operand: left, Negated: negated}, nil
	}

	if isComparisonOperator(p.curTok.Type) {
		op := normalizeOperator(p.curTok)
		p.nextToken()
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Left: left, Operator: op, Right: right}, nil
	}

	return left, nil
}

func (p *Parser) parseAtom() (ast.Expression, error) {
	switch p.curTok.Type {
	case lexer.IDENTIFIER:
		return p.parseColumnRef()
	case lexer.STRING:
		val := p.curTok.Literal
		p.nextToken()
		return &ast.Literal{TokenLiteralValue: val, Value: val, Kind: ast.LiteralString}, nil
	case lexer.NUMBER:
		valStr := p.curTok.Literal
		// Try int
		if i, err := strconv.ParseInt(valStr, 10, 64); err == nil {
			p.nextToken()
			return &ast.Literal{TokenLiteralValue: valStr, Value: i, Kind: ast.LiteralInt}, nil
		}
		// Try float
		if f, err := strconv.ParseFloat(valStr, 64); err == nil {
			p.nextToken()
			return &ast.Literal{TokenLiteralValue: valStr, Value: f, Kind: ast.LiteralFloat}, nil
		}
		return nil, p.errorf("invalid number: %s", valStr)
	case lexer.TRUE:
		p.nextToken()
		return &ast.Literal{TokenLiteralValue: "TRUE", Value: true, Kind: ast.LiteralBool}, nil
	case lexer.FALSE:
		p.nextToken()
		return &ast.Literal{TokenLiteralValue: "FALSE", Value: false, Kind: ast.LiteralBool}, nil
	case lexer.NULL:
		p.nextToken()
		return &ast.Literal{TokenLiteralValue: "NULL", Value: nil, Kind: ast.LiteralNull}, nil
	case lexer.PAREN_OPEN:
		p.nextToken()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.PAREN_CLOSE); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errorf("unexpected %s in expression", describe(p.curTok))
	}
}
