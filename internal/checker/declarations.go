package checker

import (
	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/typedast"
)

// checkDeclaration implements spec 4.3. It is used both for top-level
// functions and for let-bound local declarations: 4.3's algorithm
// makes no distinction between them, so (resolving an ambiguity
// between that and section 3's "mandatory on top-level functions"
// phrasing) an annotation is required everywhere a Declaration is
// checked, not only at the top level.
func (c *checker) checkDeclaration(sc *scope, d *ast.Declaration) (*typedast.TypedDeclaration, *CompileError) {
	if d.Annotation == nil {
		return nil, newError(DeclarationError, posSpan(c.state, d.Pos), "For now, annotations are required.")
	}

	annotationTypes, err := c.resolveAnnotationTypes(d.Annotation.Types)
	if err != nil {
		return nil, err
	}
	if len(annotationTypes) < len(d.Args)+1 {
		return nil, newError(DeclarationError, posSpan(c.state, d.Pos),
			"%s has %d argument(s) but its annotation only names %d type(s)", d.Name, len(d.Args), len(annotationTypes))
	}

	argTypes := annotationTypes[:len(d.Args)]
	expectedReturnType := rightFoldLambda(annotationTypes[len(d.Args):])
	fullType := rightFoldLambda(annotationTypes)

	typedArgs := make([]typedast.TypedArgument, len(d.Args))
	for i, a := range d.Args {
		typed, aerr := c.inferArgument(argTypes[i], a)
		if aerr != nil {
			return nil, aerr
		}
		typedArgs[i] = typed
	}

	provisional := &typedast.TypedDeclaration{Name: d.Name, Type: fullType}
	bodyScope := newScope(sc)
	bodyScope.bind(d.Name, provisional)
	for _, a := range typedArgs {
		for _, bound := range declarationsFromPattern(a) {
			bodyScope.bind(bound.Name, bound)
		}
	}

	body, berr := c.inferExpression(bodyScope, d.Body)
	if berr != nil {
		return nil, berr
	}
	if !typeEq(body.Type(), expectedReturnType) {
		return nil, newError(DeclarationError, posSpan(c.state, d.Pos),
			"Expected %s to return type %s, but instead got type %s", d.Name, expectedReturnType.String(), body.Type().String())
	}

	return &typedast.TypedDeclaration{Name: d.Name, Type: fullType, Args: typedArgs, Body: body}, nil
}

// resolveAnnotationTypes resolves the arrow-chain in a `::` signature
// left-to-right into concrete Types.
func (c *checker) resolveAnnotationTypes(types []ast.AnnotationType) ([]Type, *CompileError) {
	result := make([]Type, len(types))
	for i, t := range types {
		resolved, err := c.resolveAnnotationType(t)
		if err != nil {
			return nil, err
		}
		result[i] = resolved
	}
	return result, nil
}

func (c *checker) resolveAnnotationType(at ast.AnnotationType) (Type, *CompileError) {
	switch v := at.(type) {
	case *ast.ATConcrete:
		if isLowerInitial(v.Name) {
			return Generic{Name: v.Name}, nil
		}
		t, ok := c.state.lookupType(v.Name)
		if !ok {
			return nil, newError(DeclarationError, nil, "unknown type %q in annotation", v.Name)
		}
		return t, nil

	case *ast.ATParenthesized:
		types, err := c.resolveAnnotationTypes(v.Types)
		if err != nil {
			return nil, err
		}
		return rightFoldLambda(types), nil

	case *ast.ATApplication:
		fn, err := c.resolveAnnotationType(v.Func)
		if err != nil {
			return nil, err
		}
		arg, err := c.resolveAnnotationType(v.Arg)
		if err != nil {
			return nil, err
		}
		return Applied{Func: fn, Arg: arg}, nil

	default:
		return nil, newError(DeclarationError, nil, "malformed type annotation")
	}
}

// rightFoldLambda folds a non-empty list of types into a right-
// associative function type, e.g. [a, b, c] -> Lambda(a, Lambda(b, c)).
func rightFoldLambda(types []Type) Type {
	result := types[len(types)-1]
	for i := len(types) - 2; i >= 0; i-- {
		result = Lambda{Param: types[i], Result: result}
	}
	return result
}
