// Package types is the resolved type language shared by the checker
// and the typed AST: primitives, a declared type's head (TypeLambda),
// type-level application, function types, and unbound generics. It is
// split out from internal/checker (which depends on internal/typedast,
// which in turn needs to name a resolved Type on every node) so that
// neither of those packages has to import the other.
package types

import "fmt"

// Type is the resolved type language. Equality is structural except
// for Generic, which is equal only to an identical Generic - generics
// are eliminated by the checker's constraint solver, never by
// equality.
type Type interface {
	typeNode()
	String() string
}

// Num is the Int primitive.
type Num struct{}

func (Num) typeNode()      {}
func (Num) String() string { return "Int" }

// FloatType is the Float primitive (named FloatType to avoid clashing
// with the ast.Float expression node).
type FloatType struct{}

func (FloatType) typeNode()      {}
func (FloatType) String() string { return "Float" }

// Str is the String primitive.
type Str struct{}

func (Str) typeNode()      {}
func (Str) String() string { return "String" }

// TypeLambda is a declared data type's head: its name considered as a
// type constructor awaiting its generic arguments.
type TypeLambda struct {
	Name string
}

func (TypeLambda) typeNode()        {}
func (t TypeLambda) String() string { return t.Name }

// Applied is left-associative type-level application, e.g. `Result
// error value` is Applied(Applied(TypeLambda{Result}, Generic{error}),
// Generic{value}).
type Applied struct {
	Func Type
	Arg  Type
}

func (Applied) typeNode() {}
func (a Applied) String() string {
	return fmt.Sprintf("%s %s", printAtom(a.Func), printAtom(a.Arg))
}

// Lambda is a function type, right-associative in printing and in
// annotation reading: `a -> b -> c` is Lambda(a, Lambda(b, c)).
type Lambda struct {
	Param  Type
	Result Type
}

func (Lambda) typeNode() {}
func (l Lambda) String() string {
	return fmt.Sprintf("%s -> %s", printAtom(l.Param), l.Result.String())
}

// Generic is an unbound generic type parameter, identified by a
// lowercase-initial identifier.
type Generic struct {
	Name string
}

func (Generic) typeNode()        {}
func (g Generic) String() string { return g.Name }

// printAtom parenthesizes a Lambda when it appears as a sub-term,
// matching conventional function-type printing (A -> B, (A -> B) -> C,
// A B).
func printAtom(t Type) string {
	switch t.(type) {
	case Lambda:
		return "(" + t.String() + ")"
	default:
		return t.String()
	}
}

// TypeEqual reports structural equality, with Generic equal only to an
// identical Generic.
func TypeEqual(a, b Type) bool {
	switch av := a.(type) {
	case Num:
		_, ok := b.(Num)
		return ok
	case FloatType:
		_, ok := b.(FloatType)
		return ok
	case Str:
		_, ok := b.(Str)
		return ok
	case TypeLambda:
		bv, ok := b.(TypeLambda)
		return ok && av.Name == bv.Name
	case Generic:
		bv, ok := b.(Generic)
		return ok && av.Name == bv.Name
	case Applied:
		bv, ok := b.(Applied)
		return ok && TypeEqual(av.Func, bv.Func) && TypeEqual(av.Arg, bv.Arg)
	case Lambda:
		bv, ok := b.(Lambda)
		return ok && TypeEqual(av.Param, bv.Param) && TypeEqual(av.Result, bv.Result)
	default:
		return false
	}
}

// ApplyHead walks an Applied left-spine down to its TypeLambda head,
// e.g. ApplyHead(Applied(Applied(TL Result, e), v)) = TL Result, true.
func ApplyHead(t Type) (TypeLambda, bool) {
	switch v := t.(type) {
	case TypeLambda:
		return v, true
	case Applied:
		return ApplyHead(v.Func)
	default:
		return TypeLambda{}, false
	}
}
