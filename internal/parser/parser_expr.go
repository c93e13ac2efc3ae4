package parser

import (
	"strconv"

	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/lexer"
)

// parseExpression parses a full expression: case, let, or an infix
// chain over applications.
func (p *Parser) parseExpression() ast.Expression {
	switch p.cur.Type {
	case lexer.CASE:
		return p.parseCase()
	case lexer.LET:
		return p.parseLet()
	default:
		return p.parseInfix()
	}
}

func operatorFor(t lexer.TokenType) (ast.OperatorExpr, bool) {
	switch t {
	case lexer.PLUS:
		return ast.Add, true
	case lexer.MINUS:
		return ast.Subtract, true
	case lexer.STAR:
		return ast.Multiply, true
	case lexer.SLASH:
		return ast.Divide, true
	case lexer.APPEND:
		return ast.StringAdd, true
	default:
		return 0, false
	}
}

// parseInfix parses `apply (op expression)?`. The right side is a
// full expression, so a chain like `1 + 2 + 3` right-associates:
// Infix(+, 1, Infix(+, 2, 3)).
func (p *Parser) parseInfix() ast.Expression {
	start := p.pos()
	left := p.parseApply()
	if op, ok := operatorFor(p.cur.Type); ok {
		p.advance()
		right := p.parseExpression()
		return &ast.Infix{Operator: op, Left: left, Right: right, Pos: start}
	}
	return left
}

// parseApply parses one or more juxtaposed atoms, left-folded into
// Apply nodes. A chain never crosses a newline: Forest's grammar has
// no explicit delimiter between top-level declarations, so a newline
// is the only signal that distinguishes `f x y` from the start of the
// next declaration.
func (p *Parser) parseApply() ast.Expression {
	start := p.pos()
	result := p.parseAtom()
	line := p.prevLine
	for isAtomStart(p.cur.Type) && p.cur.Line == line {
		arg := p.parseAtom()
		result = &ast.Apply{Func: result, Arg: arg, Pos: start}
		line = p.prevLine
	}
	return result
}

func (p *Parser) parseAtom() ast.Expression {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.INT:
		v, _ := strconv.Atoi(p.cur.Literal)
		p.advance()
		return &ast.Number{Value: v, Pos: pos}
	case lexer.FLOAT:
		v, _ := strconv.ParseFloat(p.cur.Literal, 64)
		p.advance()
		return &ast.Float{Value: v, Pos: pos}
	case lexer.STRING:
		v := p.cur.Literal
		p.advance()
		return &ast.String{Value: v, Pos: pos}
	case lexer.IDENT:
		name := p.cur.Literal
		p.advance()
		return &ast.Identifier{Name: name, Pos: pos}
	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.expect(lexer.RPAREN)
		return &ast.BetweenParens{Inner: inner, Pos: pos}
	default:
		p.errorf("expected an expression, found %s %q", p.cur.Type, p.cur.Literal)
		p.advance()
		return &ast.Identifier{Name: "", Pos: pos}
	}
}

// parseCase parses `case expression of pattern -> expression (; pattern -> expression)*`.
func (p *Parser) parseCase() ast.Expression {
	pos := p.pos()
	p.expect(lexer.CASE)
	value := p.parseExpression()
	p.expect(lexer.OF)

	branches := []ast.CaseBranch{p.parseCaseBranch()}
	for p.cur.Type == lexer.SEMICOLON {
		p.advance()
		branches = append(branches, p.parseCaseBranch())
	}

	return &ast.Case{Value: value, Branches: branches, Pos: pos}
}

func (p *Parser) parseCaseBranch() ast.CaseBranch {
	pattern := p.parsePattern()
	p.expect(lexer.ARROW)
	body := p.parseExpression()
	return ast.CaseBranch{Pattern: pattern, Body: body}
}

// parseLet parses `let declaration (; declaration)* in expression`.
func (p *Parser) parseLet() ast.Expression {
	pos := p.pos()
	p.expect(lexer.LET)
	decls := []*ast.Declaration{p.parseDeclaration()}
	for p.cur.Type == lexer.SEMICOLON {
		p.advance()
		decls = append(decls, p.parseDeclaration())
	}
	p.expect(lexer.IN)
	body := p.parseExpression()
	return &ast.Let{Declarations: decls, Body: body, Pos: pos}
}
