package parser

import (
	"testing"

	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/lexer"
)

func parseModule(t *testing.T, src string) *ast.Module {
	t.Helper()
	p := New(lexer.New(src, "test.tree"), "test.tree")
	mod := p.Parse()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return mod
}

func TestParseIdentityFunction(t *testing.T) {
	mod := parseModule(t, "id x = x")
	if len(mod.TopLevels) != 1 {
		t.Fatalf("expected 1 top-level, got %d", len(mod.TopLevels))
	}
	fn, ok := mod.TopLevels[0].(*ast.Function)
	if !ok {
		t.Fatalf("expected *ast.Function, got %T", mod.TopLevels[0])
	}
	if fn.Declaration.Name != "id" {
		t.Fatalf("expected name id, got %s", fn.Declaration.Name)
	}
	if len(fn.Declaration.Args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(fn.Declaration.Args))
	}
	if _, ok := fn.Declaration.Args[0].(*ast.AIdentifier); !ok {
		t.Fatalf("expected AIdentifier arg, got %T", fn.Declaration.Args[0])
	}
}

func TestParseAnnotatedFunction(t *testing.T) {
	mod := parseModule(t, "id :: a -> a\nid x = x")
	fn := mod.TopLevels[0].(*ast.Function)
	if fn.Declaration.Annotation == nil {
		t.Fatalf("expected annotation")
	}
	if len(fn.Declaration.Annotation.Types) != 2 {
		t.Fatalf("expected 2 annotation types, got %d", len(fn.Declaration.Annotation.Types))
	}
}

func TestParseDataDeclaration(t *testing.T) {
	mod := parseModule(t, "data Result error value = Err error | Ok value")
	dt := mod.TopLevels[0].(*ast.DataType)
	if dt.ADT.Name != "Result" {
		t.Fatalf("expected ADT name Result, got %s", dt.ADT.Name)
	}
	if len(dt.ADT.Generics) != 2 || dt.ADT.Generics[0] != "error" || dt.ADT.Generics[1] != "value" {
		t.Fatalf("unexpected generics: %v", dt.ADT.Generics)
	}
	if len(dt.ADT.Constructors) != 2 {
		t.Fatalf("expected 2 constructors, got %d", len(dt.ADT.Constructors))
	}
	errCtor := dt.ADT.Constructors[0]
	if errCtor.Name != "Err" {
		t.Fatalf("expected Err, got %s", errCtor.Name)
	}
	concrete, ok := errCtor.Type.(*ast.CTConcrete)
	if !ok || concrete.Name != "error" {
		t.Fatalf("expected CTConcrete(error), got %#v", errCtor.Type)
	}
}

func TestParseCaseExpression(t *testing.T) {
	mod := parseModule(t, "map f r = case r of Ok v -> Ok (f v) ; Err e -> Err e")
	fn := mod.TopLevels[0].(*ast.Function)
	caseExpr, ok := fn.Declaration.Body.(*ast.Case)
	if !ok {
		t.Fatalf("expected *ast.Case body, got %T", fn.Declaration.Body)
	}
	if len(caseExpr.Branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(caseExpr.Branches))
	}
	okBranch := caseExpr.Branches[0]
	deconstr, ok := okBranch.Pattern.(*ast.ADeconstruction)
	if !ok || deconstr.Constructor != "Ok" {
		t.Fatalf("expected ADeconstruction(Ok), got %#v", okBranch.Pattern)
	}
	if len(deconstr.Args) != 1 {
		t.Fatalf("expected 1 sub-pattern, got %d", len(deconstr.Args))
	}
}

func TestParseLetExpression(t *testing.T) {
	mod := parseModule(t, "twice x = let y = x + x in y + y")
	fn := mod.TopLevels[0].(*ast.Function)
	let, ok := fn.Declaration.Body.(*ast.Let)
	if !ok {
		t.Fatalf("expected *ast.Let body, got %T", fn.Declaration.Body)
	}
	if len(let.Declarations) != 1 || let.Declarations[0].Name != "y" {
		t.Fatalf("unexpected let declarations: %#v", let.Declarations)
	}
}

func TestParseMultipleTopLevelsDoNotBleedTogether(t *testing.T) {
	mod := parseModule(t, "const y = 5\nid x = x")
	if len(mod.TopLevels) != 2 {
		t.Fatalf("expected 2 top-levels, got %d", len(mod.TopLevels))
	}
	first := mod.TopLevels[0].(*ast.Function)
	if _, ok := first.Declaration.Body.(*ast.Number); !ok {
		t.Fatalf("expected const's body to be a bare Number, got %T (did apply cross the newline?)", first.Declaration.Body)
	}
}

func TestParseApplyChain(t *testing.T) {
	mod := parseModule(t, "three f a b c = f a b c")
	fn := mod.TopLevels[0].(*ast.Function)
	apply, ok := fn.Declaration.Body.(*ast.Apply)
	if !ok {
		t.Fatalf("expected *ast.Apply body, got %T", fn.Declaration.Body)
	}
	if _, ok := apply.Arg.(*ast.Identifier); !ok {
		t.Fatalf("expected outermost arg to be identifier c, got %#v", apply.Arg)
	}
}

func TestParseParenthesizedConstructorField(t *testing.T) {
	mod := parseModule(t, "data Box a = Wrap (Maybe a)")
	dt := mod.TopLevels[0].(*ast.DataType)
	ctor := dt.ADT.Constructors[0]
	paren, ok := ctor.Type.(*ast.CTParenthesized)
	if !ok {
		t.Fatalf("expected CTParenthesized, got %#v", ctor.Type)
	}
	applied, ok := paren.Inner.(*ast.CTApplied)
	if !ok {
		t.Fatalf("expected CTApplied inside parens, got %#v", paren.Inner)
	}
	if fn, ok := applied.Func.(*ast.CTConcrete); !ok || fn.Name != "Maybe" {
		t.Fatalf("expected Maybe as applied func, got %#v", applied.Func)
	}
}

func TestPrintRoundTrip(t *testing.T) {
	src := "id x = x"
	mod := parseModule(t, src)
	printed := ast.PrintModule(mod)
	reprinted := ast.PrintModule(parseModule(t, printed))
	if printed != reprinted {
		t.Fatalf("print not stable: %q vs %q", printed, reprinted)
	}
}
