package lexer

import (
	"fmt"
	"strings"
)

type TokenType int

const (
	// Special
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENTIFIER // table_name, column_name, "quoted name"
	STRING     // 'value'
	NUMBER     // 123, 1.23, -4

	// Keywords
	SELECT
	FROM
	WHERE
	AS
	JOIN
	INNER
	LEFT
	RIGHT
	FULL
	OUTER
	ON
	AND
	OR
	NOT
	IS
	NULL
	TRUE
	FALSE
	ORDER
	BY
	ASC
	DESC
	LIMIT

	// Operators & Punctuation
	ASTERISK      // *
	COMMA         // ,
	DOT           // .
	PAREN_OPEN    // (
	PAREN_CLOSE   // )
	SEMICOLON     // ;
	EQUALS        // =
	NOT_EQUAL     // != or <>
	LESS_THAN     // <
	GREATER_THAN  // >
	LESS_EQUAL    // <=
	GREATER_EQUAL // >=
)

var keywords = map[string]TokenType{
	"SELECT": SELECT,
	"FROM":   FROM,
	"WHERE":  WHERE,
	"AS":     AS,
	"JOIN":   JOIN,
	"INNER":  INNER,
	"LEFT":   LEFT,
	"RIGHT":  RIGHT,
	"FULL":   FULL,
	"OUTER":  OUTER,
	"ON":     ON,
	"AND":    AND,
	"OR":     OR,
	"NOT":    NOT,
	"IS":     IS,
	"NULL":   NULL,
	"TRUE":   TRUE,
	"FALSE":  FALSE,
	"ORDER":  ORDER,
	"BY":     BY,
	"ASC":    ASC,
	"DESC":   DESC,
	"LIMIT":  LIMIT,
}

var tokenNames = map[TokenType]string{
	ILLEGAL:       "ILLEGAL",
	EOF:           "end of input",
	IDENTIFIER:    "identifier",
	STRING:        "string",
	NUMBER:        "number",
	ASTERISK:      "*",
	COMMA:         ",",
	DOT:           ".",
	PAREN_OPEN:    "(",
	PAREN_CLOSE:   ")",
	SEMICOLON:     ";",
	EQUALS:        "=",
	NOT_EQUAL:     "!=",
	LESS_THAN:     "<",
	GREATER_THAN:  ">",
	LESS_EQUAL:    "<=",
	GREATER_EQUAL: ">=",
}

func init() {
	for word, tt := range keywords {
		tokenNames[tt] = word
	}
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q)", t.Type, t.Literal)
}

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition += 1
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	line, col := l.line, l.column

	switch l.ch {
	case '*':
		tok = newToken(ASTERISK, l.ch, line, col)
	case ',':
		tok = newToken(COMMA, l.ch, line, col)
	case '.':
		tok = newToken(DOT, l.ch, line, col)
	case '(':
		tok = newToken(PAREN_OPEN, l.ch, line, col)
	case ')':
		tok = newToken(PAREN_CLOSE, l.ch, line, col)
	case ';':
		tok = newToken(SEMICOLON, l.ch, line, col)
	case '=':
		tok = newToken(EQUALS, l.ch, line, col)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: NOT_EQUAL, Literal: "!=", Line: line, Column: col}
		} else {
			tok = newToken(ILLEGAL, l.ch, line, col)
		}
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = Token{Type: LESS_EQUAL, Literal: "<=", Line: line, Column: col}
		case '>':
			l.readChar()
			tok = Token{Type: NOT_EQUAL, Literal: "<>", Line: line, Column: col}
		default:
			tok = newToken(LESS_THAN, l.ch, line, col)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: GREATER_EQUAL, Literal: ">=", Line: line, Column: col}
		} else {
			tok = newToken(GREATER_THAN, l.ch, line, col)
		}
	case '-':
		if isDigit(l.peekChar()) {
			l.readChar()
			return Token{Type: NUMBER, Literal: "-" + l.readNumber(), Line: line, Column: col}
		}
		tok = newToken(ILLEGAL, l.ch, line, col)
	case '\'':
		lit, ok := l.readQuoted('\'')
		if !ok {
			return Token{Type: ILLEGAL, Literal: "unterminated string", Line: line, Column: col}
		}
		return Token{Type: STRING, Literal: lit, Line: line, Column: col}
	case '"':
		lit, ok := l.readQuoted('"')
		if !ok {
			return Token{Type: ILLEGAL, Literal: "unterminated quoted identifier", Line: line, Column: col}
		}
		return Token{Type: IDENTIFIER, Literal: lit, Line: line, Column: col}
	case 0:
		tok.Literal = ""
		tok.Type = EOF
		tok.Line, tok.Column = line, col
	default:
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			return Token{Type: LookupIdent(lit), Literal: lit, Line: line, Column: col}
		} else if isDigit(l.ch) {
			return Token{Type: NUMBER, Literal: l.readNumber(), Line: line, Column: col}
		} else {
			tok = newToken(ILLEGAL, l.ch, line, col)
		}
	}

	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			if l.ch == '\n' {
				l.line++
				l.column = 0
			}
			l.readChar()
		case l.ch == '-' && l.peekChar() == '-':
			// line comment
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	// Support simple floats
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[position:l.position]
}

// readQuoted reads up to the closing quote; a doubled quote stands for itself
func (l *Lexer) readQuoted(quote byte) (string, bool) {
	var sb strings.Builder
	for {
		l.readChar()
		switch l.ch {
		case 0:
			return sb.String(), false
		case '\n':
			l.line++
			l.column = 0
		case quote:
			if l.peekChar() == quote {
				l.readChar()
				sb.WriteByte(quote)
				continue
			}
			// Consume the closing quote
			l.readChar()
			return sb.String(), true
		}
		sb.WriteByte(l.ch)
	}
}

func newToken(tokenType TokenType, ch byte, line, col int) Token {
	return Token{Type: tokenType, Literal: string(ch), Line: line, Column: col}
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToUpper(ident)]; ok {
		return tok
	}
	return IDENTIFIER
}

// isLetter accepts ASCII letters, '_' and any byte of a multi-byte UTF-8 sequence
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch >= 0x80
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Tokenize lexes the entire input; the last token is always EOF
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			tokens = append(tokens, tok)
			break
		}
		if tok.Type == ILLEGAL {
			return nil, fmt.Errorf("illegal token at line %d, col %d: %s", tok.Line, tok.Column, tok.Literal)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
