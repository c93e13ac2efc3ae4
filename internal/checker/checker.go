package checker

import (
	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/typedast"
)

// checker carries the state shared by one full module check. It is
// created fresh by CheckModule/CheckModuleWithLineInformation and
// discarded once the module finishes; nothing about it survives
// across separate calls (there is no incremental or separate
// compilation - spec section 1, Non-goals).
type checker struct {
	state *state
}

// CheckModule implements the type-checker API (spec section 6),
// without source ranges on errors.
func CheckModule(module *ast.Module) (*typedast.TypedModule, []*CompileError) {
	return CheckModuleWithLineInformation(module, nil)
}

// CheckModuleWithLineInformation is CheckModule, but errors carry
// source ranges when lineInfo is supplied.
func CheckModuleWithLineInformation(module *ast.Module, lineInfo *ast.LineInformation) (*typedast.TypedModule, []*CompileError) {
	c := &checker{state: newState(lineInfo)}

	// Data types are registered before any function body is checked,
	// so every declaration sees the complete type environment (spec
	// section 5: "data-type declarations... must be fully visible
	// before any function body is checked").
	for _, top := range module.TopLevels {
		if dt, ok := top.(*ast.DataType); ok {
			before := len(c.state.errors)
			c.checkADT(dt.ADT)
			// ADT/Constructor nodes carry no position of their own, so
			// any error checkADT raised falls back to the span recorded
			// for the whole data declaration.
			backfillSpans(c.state.errors[before:], lineInfo, dt.NodeID)
		}
	}

	for _, top := range module.TopLevels {
		fn, ok := top.(*ast.Function)
		if !ok {
			continue
		}
		typed, err := c.checkDeclaration(c.state.moduleScope(), fn.Declaration)
		if err != nil {
			backfillSpans([]*CompileError{err}, lineInfo, fn.NodeID)
			c.state.addError(err)
			continue
		}
		c.state.addDeclaration(typed)
	}

	if len(c.state.errors) > 0 {
		return nil, c.state.errors
	}

	mod := &typedast.TypedModule{}
	for _, name := range c.state.declOrder {
		mod.Declarations = append(mod.Declarations, c.state.decls[name])
	}
	return mod, nil
}

// backfillSpans attaches the top-level node's recorded span to any of
// errs that didn't already get a more specific one (expressions and
// declarations can fill in their own; ADTs and constructors have no
// position fields, so the enclosing data/function declaration's span
// is the best available).
func backfillSpans(errs []*CompileError, lineInfo *ast.LineInformation, id ast.NodeID) {
	if lineInfo == nil {
		return
	}
	sp, ok := lineInfo.Lookup(id)
	if !ok {
		return
	}
	for _, e := range errs {
		if e.Range == nil {
			e.Range = &sp
		}
	}
}

// InferStandaloneExpression type-checks a single expression against
// an otherwise-empty module: no declarations or data types are in
// scope beyond the built-in primitives. It backs the REPL's `:type`
// command (internal/replcheck), which has no surrounding module to
// check the expression within.
func InferStandaloneExpression(expr ast.Expression) (typedast.TypedExpression, *CompileError) {
	c := &checker{state: newState(nil)}
	return c.inferExpression(c.state.moduleScope(), expr)
}
