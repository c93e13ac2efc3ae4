// Package typedast mirrors internal/ast but with every node carrying
// its resolved types.Type. The typed tree feeds code generation
// directly. Constructor call sites stay ordinary TApply chains; the
// body of each constructor-synthesized declaration is an
// ADTConstruction(tag, args).
package typedast

import (
	"fmt"
	"strings"

	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/types"
)

// TypedModule is the result of a successful check: every top-level
// function and every constructor synthesized from a data declaration,
// in the order they were registered.
type TypedModule struct {
	Declarations []*TypedDeclaration
}

// TypedDeclaration is a checked function: its full curried type, its
// typed argument patterns, and its typed body. Constructor-synthesized
// declarations set IsConstructor and Tag (spec 4.2).
type TypedDeclaration struct {
	Name          string
	Type          types.Type
	Args          []TypedArgument
	Body          TypedExpression
	IsConstructor bool
	Tag           int
}

// TypedArgument mirrors ast.Argument with every binding site resolved
// to a concrete field Type.
type TypedArgument interface {
	typedArgumentNode()
	Type() types.Type
	String() string
}

// TAIdentifier binds Name to T unconditionally.
type TAIdentifier struct {
	T    types.Type
	Name string
}

func (a *TAIdentifier) typedArgumentNode() {}
func (a *TAIdentifier) Type() types.Type { return a.T }
func (a *TAIdentifier) String() string     { return a.Name }

// TANumberLiteral matches an exact Int literal.
type TANumberLiteral struct {
	Value int
}

func (a *TANumberLiteral) typedArgumentNode() {}
func (a *TANumberLiteral) Type() types.Type { return types.Num{} }
func (a *TANumberLiteral) String() string     { return fmt.Sprintf("%d", a.Value) }

// TADeconstruction matches constructor Ctor (at Tag within its ADT)
// and recursively binds its fields.
type TADeconstruction struct {
	T       types.Type
	Ctor    string
	Tag     int
	SubArgs []TypedArgument
}

func (a *TADeconstruction) typedArgumentNode() {}
func (a *TADeconstruction) Type() types.Type { return a.T }
func (a *TADeconstruction) String() string {
	if len(a.SubArgs) == 0 {
		return a.Ctor
	}
	parts := make([]string, len(a.SubArgs))
	for i, s := range a.SubArgs {
		parts[i] = s.String()
	}
	return a.Ctor + " " + strings.Join(parts, " ")
}

// TypedExpression mirrors ast.Expression, every node carrying its
// resolved Type.
type TypedExpression interface {
	typedExpressionNode()
	Type() types.Type
}

// TNumber is an Int literal.
type TNumber struct {
	Value int
}

func (*TNumber) typedExpressionNode() {}
func (*TNumber) Type() types.Type   { return types.Num{} }

// TFloat is a Float literal.
type TFloat struct {
	Value float64
}

func (*TFloat) typedExpressionNode() {}
func (*TFloat) Type() types.Type   { return types.FloatType{} }

// TString is a String literal.
type TString struct {
	Value string
}

func (*TString) typedExpressionNode() {}
func (*TString) Type() types.Type   { return types.Str{} }

// TIdentifier references a bound name.
type TIdentifier struct {
	T    types.Type
	Name string
}

func (t *TIdentifier) typedExpressionNode() {}
func (t *TIdentifier) Type() types.Type   { return t.T }

// TInfix is a binary operator application (expressions.go validates the
// operand/result types per spec 4.4 before constructing this node).
type TInfix struct {
	T        types.Type
	Operator ast.OperatorExpr
	Left     TypedExpression
	Right    TypedExpression
}

func (t *TInfix) typedExpressionNode() {}
func (t *TInfix) Type() types.Type   { return t.T }

// TApply is function application, Result already solved against the
// callee's generics (see checker's constraint solver).
type TApply struct {
	ResultType types.Type
	Func       TypedExpression
	Arg        TypedExpression
}

func (t *TApply) typedExpressionNode() {}
func (t *TApply) Type() types.Type   { return t.ResultType }

// TCaseBranch pairs a typed pattern with its typed body.
type TCaseBranch struct {
	Pattern TypedArgument
	Body    TypedExpression
}

// TCase is a pattern match. T is the first branch's type; every pair
// of branch types agrees under the checker's typeEq, which does not
// require them to be structurally equal.
type TCase struct {
	T        types.Type
	Value    TypedExpression
	Branches []TCaseBranch
}

func (t *TCase) typedExpressionNode() {}
func (t *TCase) Type() types.Type   { return t.T }

// TLet introduces local declarations in scope of Body.
type TLet struct {
	Declarations []*TypedDeclaration
	Body         TypedExpression
}

func (t *TLet) typedExpressionNode() {}
func (t *TLet) Type() types.Type   { return t.Body.Type() }

// ADTConstruction is the body of a constructor-synthesized
// declaration, applying the constructor to all of its fields: Tag is
// the constructor's 0-based position within its ADT.
type ADTConstruction struct {
	Ctor string
	Tag  int
	Args []TypedExpression
}

func (a *ADTConstruction) typedExpressionNode() {}

// Type reports the placeholder Lambda(Int, Int) documented in spec
// section 9 ("likely bugs flagged in source"): ADTConstruction's own
// type is never read at a use site, since a constructor's outer type
// is already fixed by its synthesized declaration's annotation - this
// node only ever appears as that declaration's body.
func (a *ADTConstruction) Type() types.Type {
	return types.Lambda{Param: types.Num{}, Result: types.Num{}}
}
