// Package checker implements the type checker: it walks an untyped
// ast.Module and produces a typed module (internal/typedast) or a
// non-empty list of CompileErrors. It has no notion of unification or
// full inference - every top-level function is annotated, and the
// only open-ended machinery is the generic-constraint solver used at
// application sites (see constraints.go).
package checker

import "github.com/forestlang/tree/internal/types"

// The resolved type language itself lives in internal/types - both
// this package and internal/typedast need to name a concrete Type,
// and typedast must not import checker (checker already imports
// typedast for TypedDeclaration), so the type language is pulled out
// to the package both of them can depend on. These aliases let the
// rest of internal/checker keep referring to bare Type, Num, and so
// on, exactly as if the type were still declared here.
type (
	Type       = types.Type
	Num        = types.Num
	FloatType  = types.FloatType
	Str        = types.Str
	TypeLambda = types.TypeLambda
	Applied    = types.Applied
	Lambda     = types.Lambda
	Generic    = types.Generic
)

func typeEqual(a, b Type) bool      { return types.TypeEqual(a, b) }
func applyHead(t Type) (TypeLambda, bool) { return types.ApplyHead(t) }
