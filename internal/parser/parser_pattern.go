package parser

import (
	"unicode"

	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/lexer"
)

// parseAtomicArgument parses a single parameter or sub-pattern: an
// identifier, a number, a nullary constructor, or a parenthesized
// pattern (which may deconstruct bare, since `)` bounds it).
func (p *Parser) parseAtomicArgument() ast.Argument {
	switch p.cur.Type {
	case lexer.INT:
		v := atoiOrZero(p.cur.Literal)
		p.advance()
		return &ast.ANumberLiteral{Value: v}
	case lexer.IDENT:
		name := p.cur.Literal
		p.advance()
		if isUpperInitial(name) {
			return &ast.ADeconstruction{Constructor: name}
		}
		return &ast.AIdentifier{Name: name}
	case lexer.LPAREN:
		p.advance()
		inner := p.parsePattern()
		p.expect(lexer.RPAREN)
		return inner
	default:
		p.errorf("expected a pattern, found %s %q", p.cur.Type, p.cur.Literal)
		return &ast.AIdentifier{Name: "_"}
	}
}

// parsePattern parses a full pattern as it appears in a case branch:
// a bare constructor may take further atomic sub-patterns, since the
// branch is unambiguously bounded by `->`.
func (p *Parser) parsePattern() ast.Argument {
	switch p.cur.Type {
	case lexer.IDENT:
		name := p.cur.Literal
		if !isUpperInitial(name) {
			p.advance()
			return &ast.AIdentifier{Name: name}
		}
		p.advance()
		var args []ast.Argument
		for p.cur.Type == lexer.IDENT || p.cur.Type == lexer.INT || p.cur.Type == lexer.LPAREN {
			args = append(args, p.parseAtomicArgument())
		}
		return &ast.ADeconstruction{Constructor: name, Args: args}
	default:
		return p.parseAtomicArgument()
	}
}

func isUpperInitial(s string) bool {
	if s == "" {
		return false
	}
	return unicode.IsUpper(rune(s[0]))
}

func atoiOrZero(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}
