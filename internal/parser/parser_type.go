package parser

import (
	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/lexer"
)

// parseConstructorTypeAtom parses one constructor-type atom: a bare
// identifier, or a parenthesized chain of applications (which may
// itself hold several atoms, since `)` marks its end unambiguously).
func (p *Parser) parseConstructorTypeAtom() ast.ConstructorType {
	switch p.cur.Type {
	case lexer.IDENT:
		name := p.cur.Literal
		p.advance()
		return &ast.CTConcrete{Name: name}
	case lexer.LPAREN:
		p.advance()
		inner := p.parseConstructorTypeChain()
		p.expect(lexer.RPAREN)
		return &ast.CTParenthesized{Inner: inner}
	default:
		p.errorf("expected a type, found %s %q", p.cur.Type, p.cur.Literal)
		return nil
	}
}

// parseConstructorTypeChain parses a left-associated application
// chain, bounded by `)`.
func (p *Parser) parseConstructorTypeChain() ast.ConstructorType {
	result := p.parseConstructorTypeAtom()
	for p.cur.Type == lexer.IDENT || p.cur.Type == lexer.LPAREN {
		arg := p.parseConstructorTypeAtom()
		result = &ast.CTApplied{Func: result, Arg: arg}
	}
	return result
}

// parseAnnotationTypeChain parses the arrow-separated list of types
// in a `::` signature.
func (p *Parser) parseAnnotationTypeChain() []ast.AnnotationType {
	types := []ast.AnnotationType{p.parseAnnotationTypeTerm()}
	for p.cur.Type == lexer.ARROW {
		p.advance()
		types = append(types, p.parseAnnotationTypeTerm())
	}
	return types
}

// parseAnnotationTypeTerm parses one term of an annotation: a chain
// of applied atoms, e.g. `Result e a`. A `->` unambiguously bounds a
// term against the next one in the same annotation, but the final
// term (with no trailing arrow) has nothing to bound it against the
// equation line that follows, so the chain also stops at a newline -
// the same rule parseApply uses for the same reason.
func (p *Parser) parseAnnotationTypeTerm() ast.AnnotationType {
	result := p.parseAnnotationTypeAtom()
	line := p.prevLine
	for (p.cur.Type == lexer.IDENT || p.cur.Type == lexer.LPAREN) && p.cur.Line == line {
		arg := p.parseAnnotationTypeAtom()
		result = &ast.ATApplication{Func: result, Arg: arg}
		line = p.prevLine
	}
	return result
}

func (p *Parser) parseAnnotationTypeAtom() ast.AnnotationType {
	switch p.cur.Type {
	case lexer.IDENT:
		name := p.cur.Literal
		p.advance()
		return &ast.ATConcrete{Name: name}
	case lexer.LPAREN:
		p.advance()
		types := p.parseAnnotationTypeChain()
		p.expect(lexer.RPAREN)
		return &ast.ATParenthesized{Types: types}
	default:
		p.errorf("expected a type, found %s %q", p.cur.Type, p.cur.Literal)
		return nil
	}
}
