package checker

import (
	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/typedast"
)

// inferArgument implements spec 4.5: given the expected type of a
// binding site and the untyped pattern written there, produce a
// TypedArgument or a CompileError.
func (c *checker) inferArgument(expected Type, arg ast.Argument) (typedast.TypedArgument, *CompileError) {
	switch a := arg.(type) {
	case *ast.AIdentifier:
		return &typedast.TAIdentifier{T: expected, Name: a.Name}, nil

	case *ast.ANumberLiteral:
		if !typeEqual(expected, Num{}) {
			return nil, newError(ExpressionError, nil, "case branch is type Int when value is type %s", expected.String())
		}
		return &typedast.TANumberLiteral{Value: a.Value}, nil

	case *ast.ADeconstruction:
		head, ok := applyHead(expected)
		if !ok {
			return nil, newError(ExpressionError, nil, "no constructor named %q for %s in scope.", a.Constructor, expected.String())
		}
		ctors := c.state.constructorsOf(head.Name)
		var match *TypedConstructor
		for _, ctor := range ctors {
			if ctor.Name == a.Constructor {
				match = ctor
				break
			}
		}
		if match == nil {
			return nil, newError(ExpressionError, nil, "no constructor named %q for %s in scope.", a.Constructor, expected.String())
		}
		if len(a.Args) != len(match.FieldTypes) {
			return nil, newError(ExpressionError, nil,
				"constructor %q expects %d argument(s), got %d", a.Constructor, len(match.FieldTypes), len(a.Args))
		}
		subArgs := make([]typedast.TypedArgument, len(a.Args))
		for i, sub := range a.Args {
			typed, err := c.inferArgument(match.FieldTypes[i], sub)
			if err != nil {
				return nil, err
			}
			subArgs[i] = typed
		}
		return &typedast.TADeconstruction{T: expected, Ctor: a.Constructor, Tag: match.Tag, SubArgs: subArgs}, nil

	default:
		return nil, newError(ExpressionError, nil, "unrecognized pattern")
	}
}

// declarationsFromPattern implements spec 4.5.1: flatten a typed
// pattern into the name -> TypedDeclaration bindings it introduces,
// used both for function-argument patterns and case-branch patterns.
func declarationsFromPattern(arg typedast.TypedArgument) []*typedast.TypedDeclaration {
	switch a := arg.(type) {
	case *typedast.TAIdentifier:
		return []*typedast.TypedDeclaration{{Name: a.Name, Type: a.T}}
	case *typedast.TANumberLiteral:
		return nil
	case *typedast.TADeconstruction:
		var decls []*typedast.TypedDeclaration
		for _, sub := range a.SubArgs {
			decls = append(decls, declarationsFromPattern(sub)...)
		}
		return decls
	default:
		return nil
	}
}
