package checker

import (
	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/typedast"
)

// checkADT implements spec section 4.2. All errors found while
// checking one ADT are collected; a failed ADT contributes its errors
// but no declarations (the type lambda is still registered, since
// other declarations may already reference it by name).
func (c *checker) checkADT(adt *ast.ADT) {
	c.state.registerTypeLambda(adt.Name, TypeLambda{Name: adt.Name})

	var returnType Type = TypeLambda{Name: adt.Name}
	for _, g := range adt.Generics {
		returnType = Applied{Func: returnType, Arg: Generic{Name: g}}
	}

	ok := true
	type pending struct {
		ctor   *ast.Constructor
		fields []Type
	}
	var resolved []pending

	for _, ctor := range adt.Constructors {
		fields, err := c.resolveConstructorFields(ctor.Type, adt.Name, returnType)
		if err != nil {
			c.state.addError(err)
			ok = false
			continue
		}
		resolved = append(resolved, pending{ctor: ctor, fields: fields})
	}

	if !ok {
		return
	}

	for tag, p := range resolved {
		fnType := returnType
		for i := len(p.fields) - 1; i >= 0; i-- {
			fnType = Lambda{Param: p.fields[i], Result: fnType}
		}

		args := make([]typedast.TypedArgument, len(p.fields))
		callArgs := make([]typedast.TypedExpression, len(p.fields))
		for i, field := range p.fields {
			name := string(rune('a' + i))
			args[i] = &typedast.TAIdentifier{T: field, Name: name}
			callArgs[i] = &typedast.TIdentifier{T: field, Name: name}
		}

		c.state.addDeclaration(&typedast.TypedDeclaration{
			Name:          p.ctor.Name,
			Type:          fnType,
			Args:          args,
			Body:          &typedast.ADTConstruction{Ctor: p.ctor.Name, Tag: tag, Args: callArgs},
			IsConstructor: true,
			Tag:           tag,
		})

		c.state.registerConstructor(adt.Name, &TypedConstructor{
			Name:       p.ctor.Name,
			Tag:        tag,
			FieldTypes: p.fields,
		})
	}
}

// resolveConstructorFields resolves one constructor's optional
// payload into its ordered list of field types (spec 4.2, point 3).
func (c *checker) resolveConstructorFields(ct ast.ConstructorType, adtName string, returnType Type) ([]Type, *CompileError) {
	if ct == nil {
		return nil, nil
	}
	return c.resolveConstructorType(ct, adtName, returnType)
}

func (c *checker) resolveConstructorType(ct ast.ConstructorType, adtName string, returnType Type) ([]Type, *CompileError) {
	switch v := ct.(type) {
	case *ast.CTConcrete:
		t, err := c.resolveConcreteFieldName(v.Name, adtName, returnType)
		if err != nil {
			return nil, err
		}
		return []Type{t}, nil

	case *ast.CTParenthesized:
		// `(A b)` in constructor-field position is always a type
		// application, built directly from the raw identifiers
		// regardless of whether A happens to be the ADT's own name -
		// routing A through resolveConcreteFieldName would resolve a
		// self-referential field (e.g. List's own `(List a)`) to the
		// full Applied returnType rather than a bare TypeLambda.
		if applied, ok := v.Inner.(*ast.CTApplied); ok {
			if a, aok := applied.Func.(*ast.CTConcrete); aok {
				if b, bok := applied.Arg.(*ast.CTConcrete); bok {
					return []Type{Applied{Func: TypeLambda{Name: a.Name}, Arg: Generic{Name: b.Name}}}, nil
				}
			}
		}
		return c.resolveConstructorType(v.Inner, adtName, returnType)

	case *ast.CTApplied:
		left, err := c.resolveConstructorType(v.Func, adtName, returnType)
		if err != nil {
			return nil, err
		}
		right, err := c.resolveConstructorType(v.Arg, adtName, returnType)
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil

	default:
		return nil, newError(DataTypeError, nil, "malformed constructor-type application")
	}
}

// resolveConcreteFieldName resolves a single identifier appearing in
// constructor-field position (spec 4.2, CTConcrete resolution rules).
func (c *checker) resolveConcreteFieldName(id, adtName string, returnType Type) (Type, *CompileError) {
	if id == adtName {
		return returnType, nil
	}
	if t, ok := c.state.lookupType(id); ok {
		return t, nil
	}
	if isLowerInitial(id) {
		return Generic{Name: id}, nil
	}
	return nil, newError(DataTypeError, nil, "unknown type %q in constructor field", id)
}

func isLowerInitial(s string) bool {
	if s == "" {
		return false
	}
	r := s[0]
	return 'a' <= r && r <= 'z'
}
