package emitter

import (
	"strings"
	"testing"

	"github.com/forestlang/tree/internal/checker"
	"github.com/forestlang/tree/internal/lexer"
	"github.com/forestlang/tree/internal/parser"
)

func emitSource(t *testing.T, src string) string {
	t.Helper()
	p := parser.New(lexer.New(src, "test.tree"), "test.tree")
	mod := p.Parse()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	typed, errs := checker.CheckModule(mod)
	if len(errs) > 0 {
		t.Fatalf("unexpected check errors: %v", errs)
	}
	out, err := Emit(typed)
	if err != nil {
		t.Fatalf("unexpected emit error: %v", err)
	}
	return out
}

func TestEmitIdentityExportsFunc(t *testing.T) {
	out := emitSource(t, "id :: a -> a\nid x = x")
	if !strings.Contains(out, `(export "id" (func $id))`) {
		t.Fatalf("expected id to be exported, got:\n%s", out)
	}
	if !strings.Contains(out, "(param $x i32)") {
		t.Fatalf("expected a param for x, got:\n%s", out)
	}
	if !strings.Contains(out, "(get_local $x)") {
		t.Fatalf("expected the body to read x back, got:\n%s", out)
	}
}

func TestEmitInfix(t *testing.T) {
	out := emitSource(t, "add :: Int -> Int -> Int\nadd x y = x + y")
	if !strings.Contains(out, "(i32.add (get_local $x) (get_local $y))") {
		t.Fatalf("expected an i32.add over x and y, got:\n%s", out)
	}
}

func TestEmitConstructorAllocates(t *testing.T) {
	src := "data Maybe a = Nothing | Just a\n" +
		"five :: Maybe Int\nfive = Just 5"
	out := emitSource(t, src)
	if !strings.Contains(out, "(call $__alloc_ctor (i32.const 1) (i32.const 1) (i32.const 5))") {
		t.Fatalf("expected Just 5 to lower to a tagged allocation, got:\n%s", out)
	}
	if !strings.Contains(out, `(export "Just" (func $Just))`) {
		t.Fatalf("expected Just itself to be exported as a constructor function, got:\n%s", out)
	}
}

func TestEmitCaseLowersToSelect(t *testing.T) {
	src := "data Maybe a = Nothing | Just a\n" +
		"orZero :: Maybe Int -> Int\n" +
		"orZero m = case m of Just v -> v ; Nothing -> 0"
	out := emitSource(t, src)
	if !strings.Contains(out, "(select") {
		t.Fatalf("expected a select for the case expression, got:\n%s", out)
	}
	if !strings.Contains(out, "i32.load") {
		t.Fatalf("expected the deconstruction branch to compare the tag word, got:\n%s", out)
	}
}

func TestEmitRejectsFloat(t *testing.T) {
	p := parser.New(lexer.New("pi :: Float\npi = 3.14", "test.tree"), "test.tree")
	mod := p.Parse()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	typed, errs := checker.CheckModule(mod)
	if len(errs) > 0 {
		t.Fatalf("unexpected check errors: %v", errs)
	}
	if _, err := Emit(typed); err == nil {
		t.Fatalf("expected an error emitting a Float declaration")
	}
}
