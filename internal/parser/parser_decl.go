package parser

import (
	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/lexer"
)

func (p *Parser) parseTopLevel() ast.TopLevel {
	start := p.pos()
	if p.cur.Type == lexer.DATA {
		id := p.id()
		adt := p.parseADT()
		p.record(id, start)
		return &ast.DataType{NodeID: id, ADT: adt}
	}
	id := p.id()
	decl := p.parseDeclaration()
	p.record(id, start)
	return &ast.Function{NodeID: id, Declaration: decl}
}

// parseADT parses `data Name gen* = Ctor1 Field? | Ctor2 Field? | ...`.
func (p *Parser) parseADT() *ast.ADT {
	p.expect(lexer.DATA)
	name := p.expectIdent()

	var generics []string
	for p.cur.Type == lexer.IDENT {
		generics = append(generics, p.cur.Literal)
		p.advance()
	}

	p.expect(lexer.ASSIGN)

	ctors := []*ast.Constructor{p.parseConstructor()}
	for p.cur.Type == lexer.PIPE {
		p.advance()
		ctors = append(ctors, p.parseConstructor())
	}

	return &ast.ADT{Name: name, Generics: generics, Constructors: ctors}
}

// parseConstructor parses a constructor name and its optional single
// field. A constructor takes at most one field written directly after
// its name (matching every constructor in the surface language); a
// compound field is written parenthesized, e.g. `Ok (Maybe a)`. This
// is the only reading that stays unambiguous without layout: unlike
// a parenthesized group (terminated by `)`), a bare field chain has no
// token that marks where it ends and the next top-level declaration
// begins.
func (p *Parser) parseConstructor() *ast.Constructor {
	name := p.expectIdent()
	var typ ast.ConstructorType
	if p.cur.Type == lexer.IDENT || p.cur.Type == lexer.LPAREN {
		typ = p.parseConstructorTypeAtom()
	}
	return &ast.Constructor{Name: name, Type: typ}
}

// parseDeclaration parses a function equation, with an optional `::`
// annotation line immediately preceding it. Used for both top-level
// functions and let-bound local declarations.
func (p *Parser) parseDeclaration() *ast.Declaration {
	start := p.pos()
	name := p.expectIdent()

	var annotation *ast.Annotation
	if p.cur.Type == lexer.DCOLON {
		p.advance()
		types := p.parseAnnotationTypeChain()
		annotation = &ast.Annotation{Name: name, Types: types}
		name = p.expectIdent()
	}

	args := p.parseArgumentList()
	p.expect(lexer.ASSIGN)
	body := p.parseExpression()

	return &ast.Declaration{Annotation: annotation, Name: name, Args: args, Body: body, Pos: start}
}

// parseArgumentList parses the space-separated parameter patterns
// preceding `=`. Each parameter is atomic: a deconstructing parameter
// must be parenthesized, e.g. `f (Ok x) = ...`.
func (p *Parser) parseArgumentList() []ast.Argument {
	var args []ast.Argument
	for p.cur.Type == lexer.IDENT || p.cur.Type == lexer.INT || p.cur.Type == lexer.LPAREN {
		args = append(args, p.parseAtomicArgument())
	}
	return args
}
