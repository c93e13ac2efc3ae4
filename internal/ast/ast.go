// Package ast defines the untyped abstract syntax tree produced by the
// parser: data-type declarations, function declarations, and the
// expression/pattern/type grammars they're built from.
package ast

import (
	"fmt"
	"strings"
)

// Pos is a location in a single source file.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open source range. Expressions and declarations carry
// their own start Pos directly; LineInformation separately records a
// Span per top-level node (see NodeID).
type Span struct {
	Start Pos
	End   Pos
}

// NodeID is a stable per-parse identity assigned to each top-level
// DataType or Function node, used to key its span in LineInformation.
type NodeID uint64

// Module is an ordered sequence of top-level declarations.
type Module struct {
	TopLevels []TopLevel
}

// TopLevel is either a data-type declaration or a function declaration.
type TopLevel interface {
	topLevelNode()
	ID() NodeID
}

// DataType wraps an ADT declaration as a top-level item.
type DataType struct {
	NodeID NodeID
	ADT    *ADT
}

func (d *DataType) topLevelNode() {}
func (d *DataType) ID() NodeID    { return d.NodeID }

// Function wraps a function declaration as a top-level item.
type Function struct {
	NodeID      NodeID
	Declaration *Declaration
}

func (f *Function) topLevelNode() {}
func (f *Function) ID() NodeID    { return f.NodeID }

// ADT is a user-defined algebraic data type: a name, its generic
// parameters, and a non-empty list of constructors.
type ADT struct {
	Name         string
	Generics     []string
	Constructors []*Constructor
}

// Constructor is one variant of an ADT. Type is nil for a nullary
// constructor.
type Constructor struct {
	Name string
	Type ConstructorType // nil if nullary
}

// ConstructorType is the payload-type grammar used inside a
// constructor declaration.
type ConstructorType interface {
	constructorTypeNode()
}

// CTConcrete names a single identifier: a primitive, the enclosing
// ADT, another declared type, or (lowercase) a generic parameter.
type CTConcrete struct {
	Name string
}

func (c *CTConcrete) constructorTypeNode() {}

// CTApplied concatenates the field resolutions of two constructor
// types (see the type-checker's ADT field resolution rules).
type CTApplied struct {
	Func ConstructorType
	Arg  ConstructorType
}

func (c *CTApplied) constructorTypeNode() {}

// CTParenthesized wraps a parenthesized constructor-type expression.
type CTParenthesized struct {
	Inner ConstructorType
}

func (c *CTParenthesized) constructorTypeNode() {}

// Declaration is a function definition: an optional annotation, its
// name, argument patterns, and body.
type Declaration struct {
	Annotation *Annotation // nil if missing
	Name       string
	Args       []Argument
	Body       Expression
	Pos        Pos
}

// Annotation is the `::` signature preceding a function equation: a
// non-empty list of types read as a right-associated arrow chain,
// the last of which is the return type.
type Annotation struct {
	Name  string
	Types []AnnotationType
}

// AnnotationType is the type-expression grammar used in annotations.
type AnnotationType interface {
	annotationTypeNode()
}

// ATConcrete names a single identifier in an annotation position.
type ATConcrete struct {
	Name string
}

func (a *ATConcrete) annotationTypeNode() {}

// ATParenthesized is a parenthesized arrow chain, itself a function
// type once resolved.
type ATParenthesized struct {
	Types []AnnotationType
}

func (a *ATParenthesized) annotationTypeNode() {}

// ATApplication is type-level application of one annotation type to
// another; nested applications left-associate.
type ATApplication struct {
	Func AnnotationType
	Arg  AnnotationType
}

func (a *ATApplication) annotationTypeNode() {}

// Argument is a pattern bound by a function parameter or case branch.
type Argument interface {
	argumentNode()
}

// AIdentifier binds a name unconditionally.
type AIdentifier struct {
	Name string
}

func (a *AIdentifier) argumentNode() {}

// ADeconstruction matches a named constructor and binds its fields.
type ADeconstruction struct {
	Constructor string
	Args        []Argument
}

func (a *ADeconstruction) argumentNode() {}

// ANumberLiteral matches an exact integer literal.
type ANumberLiteral struct {
	Value int
}

func (a *ANumberLiteral) argumentNode() {}

// Expression is the surface expression grammar.
type Expression interface {
	expressionNode()
	Position() Pos
}

// Identifier references a value in scope.
type Identifier struct {
	Name string
	Pos  Pos
}

func (i *Identifier) expressionNode() {}
func (i *Identifier) Position() Pos   { return i.Pos }

// Number is an integer literal.
type Number struct {
	Value int
	Pos   Pos
}

func (n *Number) expressionNode() {}
func (n *Number) Position() Pos   { return n.Pos }

// Float is a floating-point literal.
type Float struct {
	Value float64
	Pos   Pos
}

func (f *Float) expressionNode() {}
func (f *Float) Position() Pos   { return f.Pos }

// String is a string literal.
type String struct {
	Value string
	Pos   Pos
}

func (s *String) expressionNode() {}
func (s *String) Position() Pos   { return s.Pos }

// OperatorExpr names an infix operator.
type OperatorExpr int

const (
	Add OperatorExpr = iota
	Subtract
	Multiply
	Divide
	StringAdd
)

func (o OperatorExpr) String() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case StringAdd:
		return "++"
	default:
		return "?"
	}
}

// Infix is a binary operator application.
type Infix struct {
	Operator OperatorExpr
	Left     Expression
	Right    Expression
	Pos      Pos
}

func (i *Infix) expressionNode() {}
func (i *Infix) Position() Pos   { return i.Pos }

// Apply is juxtaposition: applying Func to Arg.
type Apply struct {
	Func Expression
	Arg  Expression
	Pos  Pos
}

func (a *Apply) expressionNode() {}
func (a *Apply) Position() Pos   { return a.Pos }

// CaseBranch pairs a pattern with the expression it guards.
type CaseBranch struct {
	Pattern Argument
	Body    Expression
}

// Case is a pattern match over Value's branches.
type Case struct {
	Value    Expression
	Branches []CaseBranch // non-empty
	Pos      Pos
}

func (c *Case) expressionNode() {}
func (c *Case) Position() Pos   { return c.Pos }

// Let introduces one or more local declarations in scope of Body.
type Let struct {
	Declarations []*Declaration // non-empty
	Body         Expression
	Pos          Pos
}

func (l *Let) expressionNode() {}
func (l *Let) Position() Pos   { return l.Pos }

// BetweenParens is a parenthesized expression.
type BetweenParens struct {
	Inner Expression
	Pos   Pos
}

func (b *BetweenParens) expressionNode() {}
func (b *BetweenParens) Position() Pos   { return b.Pos }

// PrintArgument renders an Argument pattern back to Forest surface
// syntax, as written in a case branch, for the round-trip testable
// property.
func PrintArgument(a Argument) string {
	switch p := a.(type) {
	case *AIdentifier:
		return p.Name
	case *ANumberLiteral:
		return fmt.Sprintf("%d", p.Value)
	case *ADeconstruction:
		if len(p.Args) == 0 {
			return p.Constructor
		}
		parts := make([]string, len(p.Args))
		for i, sub := range p.Args {
			parts[i] = printAtomicArgument(sub)
		}
		return p.Constructor + " " + strings.Join(parts, " ")
	default:
		return "<?>"
	}
}

// printAtomicArgument renders a pattern in a position that only
// accepts an atomic one (a sub-pattern or a function parameter): a
// deconstruction with sub-patterns is parenthesized.
func printAtomicArgument(a Argument) string {
	if d, ok := a.(*ADeconstruction); ok && len(d.Args) > 0 {
		return "(" + PrintArgument(a) + ")"
	}
	return PrintArgument(a)
}
