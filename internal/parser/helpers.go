package parser

import (
	"fmt"

	"github.com/leengari/rabbet/internal/parser/lexer"
)

// isJoinStart checks if a token begins a JOIN clause
func isJoinStart(t lexer.TokenType) bool {
	return t == lexer.JOIN ||
		t == lexer.INNER ||
		t == lexer.LEFT ||
		t == lexer.RIGHT ||
		t == lexer.FULL
}

// isComparisonOperator checks if a token type is a comparison operator
func isComparisonOperator(t lexer.TokenType) bool {
	return t == lexer.EQUALS ||
		t == lexer.LESS_THAN ||
		t == lexer.GREATER_THAN ||
		t == lexer.LESS_EQUAL ||
		t == lexer.GREATER_EQUAL ||
		t == lexer.NOT_EQUAL
}

// normalizeOperator maps "<>" onto "!="
func normalizeOperator(tok lexer.Token) string {
	if tok.Type == lexer.NOT_EQUAL {
		return "!="
	}
	return tok.Literal
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.IDENTIFIER, lexer.NUMBER:
		return fmt.Sprintf("%s '%s'", tok.Type, tok.Literal)
	case lexer.STRING:
		return fmt.Sprintf("string '%s'", tok.Literal)
	default:
		return fmt.Sprintf("'%s'", tok.Literal)
	}
}
