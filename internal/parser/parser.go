// Package parser turns a token stream into the untyped AST. It is a
// single-token-lookahead recursive-descent parser: Forest's infix
// precedence is deliberately flat and right-recursive (see ast.Infix),
// so there's no benefit to a full Pratt precedence table here.
package parser

import (
	"fmt"

	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/lexer"
)

// Parser consumes tokens from a lexer and builds a Module plus a
// LineInformation table recording the source span of every top-level
// DataType and Function it parses.
type Parser struct {
	l    *lexer.Lexer
	file string

	cur      lexer.Token
	prevLine int

	errors []error

	lines  *ast.LineInformation
	nextID ast.NodeID
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer, file string) *Parser {
	p := &Parser{l: l, file: file, lines: ast.NewLineInformation()}
	p.advance()
	return p
}

// Errors returns every parse error encountered so far.
func (p *Parser) Errors() []error {
	return p.errors
}

// LineInformation returns the span table built during parsing.
func (p *Parser) LineInformation() *ast.LineInformation {
	return p.lines
}

func (p *Parser) advance() {
	p.prevLine = p.cur.Line
	p.cur = p.l.NextToken()
}

func (p *Parser) pos() ast.Pos {
	return ast.Pos{File: p.file, Line: p.cur.Line, Column: p.cur.Column}
}

func (p *Parser) id() ast.NodeID {
	p.nextID++
	return p.nextID
}

func (p *Parser) record(id ast.NodeID, start ast.Pos) {
	p.lines.Record(id, ast.Span{Start: start, End: p.pos()})
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, &ParseError{Pos: p.pos(), Message: fmt.Sprintf(format, args...)})
}

// expect consumes the current token if it has type t, reporting an
// error and leaving the cursor in place otherwise.
func (p *Parser) expect(t lexer.TokenType) {
	if p.cur.Type != t {
		p.errorf("expected %s, found %s %q", t, p.cur.Type, p.cur.Literal)
		return
	}
	p.advance()
}

func (p *Parser) expectIdent() string {
	if p.cur.Type != lexer.IDENT {
		p.errorf("expected identifier, found %s %q", p.cur.Type, p.cur.Literal)
		return ""
	}
	name := p.cur.Literal
	p.advance()
	return name
}

func isAtomStart(t lexer.TokenType) bool {
	switch t {
	case lexer.IDENT, lexer.INT, lexer.FLOAT, lexer.STRING, lexer.LPAREN:
		return true
	default:
		return false
	}
}

// Parse consumes the entire token stream and returns the resulting
// Module. Parse errors are accumulated (see Errors) rather than
// raised; a Module is always returned, possibly incomplete.
func (p *Parser) Parse() *ast.Module {
	mod := &ast.Module{}
	for p.cur.Type != lexer.EOF {
		before := len(p.errors)
		top := p.parseTopLevel()
		if top != nil {
			mod.TopLevels = append(mod.TopLevels, top)
		}
		if len(p.errors) > before {
			// A malformed top-level item: skip ahead to the next
			// token that could plausibly start a new one to avoid
			// cascading errors.
			p.recoverToTopLevel()
		}
	}
	return mod
}

// ParseExpression parses a single standalone expression, consuming
// the rest of the token stream. Used by the REPL's `:type` command,
// which evaluates one expression at a time rather than a whole module.
func (p *Parser) ParseExpression() ast.Expression {
	return p.parseExpression()
}

func (p *Parser) recoverToTopLevel() {
	for p.cur.Type != lexer.EOF && p.cur.Type != lexer.DATA && p.cur.Type != lexer.IDENT {
		p.advance()
	}
}
