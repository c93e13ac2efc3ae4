package checker

import (
	"strings"

	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/typedast"
)

// inferExpression implements spec 4.4: dispatches on node kind,
// producing a TypedExpression carrying its concrete type, or a
// CompileError. Errors short-circuit the enclosing declaration (they
// are not accumulated within one expression tree - see
// CheckModuleWithLineInformation for the across-top-levels
// accumulation policy).
func (c *checker) inferExpression(sc *scope, expr ast.Expression) (typedast.TypedExpression, *CompileError) {
	switch e := expr.(type) {
	case *ast.Number:
		return &typedast.TNumber{Value: e.Value}, nil

	case *ast.Float:
		return &typedast.TFloat{Value: e.Value}, nil

	case *ast.String:
		return &typedast.TString{Value: e.Value}, nil

	case *ast.BetweenParens:
		return c.inferExpression(sc, e.Inner)

	case *ast.Identifier:
		decl, ok := sc.lookup(e.Name)
		if !ok {
			return nil, newError(ExpressionError, span(c.state, e), "It's not clear what %q refers to", e.Name)
		}
		return &typedast.TIdentifier{T: decl.Type, Name: e.Name}, nil

	case *ast.Infix:
		return c.inferInfix(sc, e)

	case *ast.Apply:
		return c.inferApply(sc, e)

	case *ast.Case:
		return c.inferCase(sc, e)

	case *ast.Let:
		return c.inferLet(sc, e)

	default:
		return nil, newError(ExpressionError, nil, "unrecognized expression")
	}
}

func (c *checker) inferInfix(sc *scope, e *ast.Infix) (typedast.TypedExpression, *CompileError) {
	left, err := c.inferExpression(sc, e.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.inferExpression(sc, e.Right)
	if err != nil {
		return nil, err
	}

	var result Type
	switch e.Operator {
	case ast.StringAdd:
		if typeEqual(left.Type(), Str{}) && typeEqual(right.Type(), Str{}) {
			result = Str{}
		}
	default:
		if typeEqual(left.Type(), Num{}) && typeEqual(right.Type(), Num{}) {
			result = Num{}
		} else if typeEqual(left.Type(), FloatType{}) && typeEqual(right.Type(), FloatType{}) {
			result = FloatType{}
		}
	}
	if result == nil {
		return nil, newError(ExpressionError, span(c.state, e),
			"No function exists with type %s %s %s", left.Type().String(), e.Operator.String(), right.Type().String())
	}
	return &typedast.TInfix{T: result, Operator: e.Operator, Left: left, Right: right}, nil
}

func (c *checker) inferApply(sc *scope, e *ast.Apply) (typedast.TypedExpression, *CompileError) {
	fn, err := c.inferExpression(sc, e.Func)
	if err != nil {
		return nil, err
	}
	arg, err := c.inferExpression(sc, e.Arg)
	if err != nil {
		return nil, err
	}

	lambda, ok := fn.Type().(Lambda)
	if !ok {
		return nil, newError(ExpressionError, span(c.state, e),
			"Tried to apply a value of type %s to a value of type %s", fn.Type().String(), arg.Type().String())
	}

	cs, ok := typeConstraints(lambda.Param, arg.Type())
	if !ok {
		return nil, newError(ExpressionError, span(c.state, e),
			"Function expected argument of type %s, but instead got argument of type %s", lambda.Param.String(), arg.Type().String())
	}

	return &typedast.TApply{ResultType: replaceGenerics(cs, lambda.Result), Func: fn, Arg: arg}, nil
}

func (c *checker) inferCase(sc *scope, e *ast.Case) (typedast.TypedExpression, *CompileError) {
	value, err := c.inferExpression(sc, e.Value)
	if err != nil {
		return nil, err
	}

	branches := make([]typedast.TCaseBranch, len(e.Branches))
	for i, b := range e.Branches {
		pattern, perr := c.inferArgument(value.Type(), b.Pattern)
		if perr != nil {
			return nil, perr
		}
		branchScope := newScope(sc)
		for _, d := range declarationsFromPattern(pattern) {
			branchScope.bind(d.Name, d)
		}
		body, berr := c.inferExpression(branchScope, b.Body)
		if berr != nil {
			return nil, berr
		}
		branches[i] = typedast.TCaseBranch{Pattern: pattern, Body: body}
	}

	// Every pair of branches must agree under typeEq, not just each
	// branch against the first - typeEq is not transitive (see
	// constraints.go), so checking only branches[0] against the rest
	// accepts strictly more programs than the full pairing does.
	for i := range branches {
		for j := i + 1; j < len(branches); j++ {
			if !typeEq(branches[i].Body.Type(), branches[j].Body.Type()) {
				var all []string
				for _, b := range branches {
					all = append(all, b.Body.Type().String())
				}
				return nil, newError(ExpressionError, span(c.state, e),
					"case branches do not agree on a return type: %s", strings.Join(all, ", "))
			}
		}
	}

	return &typedast.TCase{T: branches[0].Body.Type(), Value: value, Branches: branches}, nil
}

func (c *checker) inferLet(sc *scope, e *ast.Let) (typedast.TypedExpression, *CompileError) {
	letScope := newScope(sc)
	decls := make([]*typedast.TypedDeclaration, len(e.Declarations))
	for i, d := range e.Declarations {
		typed, err := c.checkDeclaration(letScope, d)
		if err != nil {
			return nil, err
		}
		letScope.bind(typed.Name, typed)
		decls[i] = typed
	}
	body, err := c.inferExpression(letScope, e.Body)
	if err != nil {
		return nil, err
	}
	return &typedast.TLet{Declarations: decls, Body: body}, nil
}

func span(s *state, e ast.Expression) *ast.Span {
	return posSpan(s, e.Position())
}

// posSpan builds a point span from a raw position, gated on whether
// the driver asked for line information at all (CheckModule passes a
// nil table and gets no spans; CheckModuleWithLineInformation does).
func posSpan(s *state, p ast.Pos) *ast.Span {
	if s.lineInfo == nil {
		return nil
	}
	sp := ast.Span{Start: p, End: p}
	return &sp
}
