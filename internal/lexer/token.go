// Package lexer tokenizes Forest (.tree) source text.
package lexer

import "fmt"

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	IDENT  // identifier, e.g. map, Result
	INT    // 123
	FLOAT  // 123.45
	STRING // "abc"

	// Keywords
	DATA
	CASE
	OF
	LET
	IN

	// Operators
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	APPEND // ++

	// Punctuation
	ASSIGN    // =
	ARROW     // ->
	DCOLON    // ::
	PIPE      // |
	LPAREN    // (
	RPAREN    // )
	SEMICOLON // ;
)

var names = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	IDENT:   "IDENT",
	INT:     "INT",
	FLOAT:   "FLOAT",
	STRING:  "STRING",
	DATA:    "data",
	CASE:    "case",
	OF:      "of",
	LET:     "let",
	IN:      "in",
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	APPEND:  "++",
	ASSIGN:  "=",
	ARROW:   "->",
	DCOLON:  "::",
	PIPE:    "|",
	LPAREN:    "(",
	RPAREN:    ")",
	SEMICOLON: ";",
}

func (t TokenType) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

var keywords = map[string]TokenType{
	"data": DATA,
	"case": CASE,
	"of":   OF,
	"let":  LET,
	"in":   IN,
}

// LookupIdent classifies an identifier as a keyword or plain IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Token is a single lexical token with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
	File    string
}

// Position renders the token's source location as "file:line:col".
func (t Token) Position() string {
	return fmt.Sprintf("%s:%d:%d", t.File, t.Line, t.Column)
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%s, %q, %s}", t.Type, t.Literal, t.Position())
}
