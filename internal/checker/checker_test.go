package checker

import (
	"strings"
	"testing"

	"github.com/forestlang/tree/internal/lexer"
	"github.com/forestlang/tree/internal/parser"
	"github.com/forestlang/tree/internal/typedast"
)

func checkSource(t *testing.T, src string) (*typedast.TypedModule, []*CompileError) {
	t.Helper()
	p := parser.New(lexer.New(src, "test.tree"), "test.tree")
	mod := p.Parse()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return CheckModule(mod)
}

func declByName(mod *typedast.TypedModule, name string) *typedast.TypedDeclaration {
	for _, d := range mod.Declarations {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Scenario 1: identity.
func TestCheckIdentity(t *testing.T) {
	mod, errs := checkSource(t, "id :: a -> a\nid x = x")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	id := declByName(mod, "id")
	if id == nil {
		t.Fatalf("expected declaration id")
	}
	want := Lambda{Param: Generic{Name: "a"}, Result: Generic{Name: "a"}}
	if !typeEqual(id.Type, want) {
		t.Fatalf("expected type %s, got %s", want, id.Type)
	}
}

// Scenario 2: Result ADT with map.
func TestCheckResultMap(t *testing.T) {
	src := "data Result error value = Err error | Ok value\n" +
		"map :: (a -> b) -> Result e a -> Result e b\n" +
		"map f r = case r of Ok v -> Ok (f v) ; Err e -> Err e"
	mod, errs := checkSource(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	resultOf := func(e, v Type) Type {
		return Applied{Func: Applied{Func: TypeLambda{Name: "Result"}, Arg: e}, Arg: v}
	}

	ok := declByName(mod, "Ok")
	if ok == nil || !ok.IsConstructor || ok.Tag != 1 {
		t.Fatalf("expected Ok as constructor tag 1, got %#v", ok)
	}
	wantOk := Lambda{Param: Generic{Name: "value"}, Result: resultOf(Generic{Name: "error"}, Generic{Name: "value"})}
	if !typeEqual(ok.Type, wantOk) {
		t.Fatalf("expected Ok type %s, got %s", wantOk, ok.Type)
	}

	errCtor := declByName(mod, "Err")
	if errCtor == nil || !errCtor.IsConstructor || errCtor.Tag != 0 {
		t.Fatalf("expected Err as constructor tag 0, got %#v", errCtor)
	}

	mapDecl := declByName(mod, "map")
	if mapDecl == nil {
		t.Fatalf("expected declaration map")
	}
	caseExpr, ok2 := mapDecl.Body.(*typedast.TCase)
	if !ok2 {
		t.Fatalf("expected map's body to be a TCase, got %T", mapDecl.Body)
	}
	// The branch types carry the ADT's own generic names ("error"),
	// not map's annotation-level names ("e"); they agree only under
	// typeEq, which is exactly the solver quirk this scenario exists
	// to exercise (see constraints.go's rule 2).
	wantCaseType := resultOf(Generic{Name: "e"}, Generic{Name: "b"})
	if !typeEq(caseExpr.T, wantCaseType) {
		t.Fatalf("expected case type %s, got %s", wantCaseType, caseExpr.T)
	}
	for _, b := range caseExpr.Branches {
		if !typeEq(b.Body.Type(), wantCaseType) {
			t.Fatalf("branch type %s does not match case type %s", b.Body.Type(), wantCaseType)
		}
		if !typeEq(b.Body.Type(), caseExpr.T) {
			t.Fatalf("branch type %s disagrees with case type %s", b.Body.Type(), caseExpr.T)
		}
	}
}

// Scenario 3: generic application.
func TestCheckGenericApplication(t *testing.T) {
	src := "data Maybe a = Nothing | Just a\n" +
		"five :: Maybe Int\n" +
		"five = Just 5"
	mod, errs := checkSource(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	five := declByName(mod, "five")
	apply, ok := five.Body.(*typedast.TApply)
	if !ok {
		t.Fatalf("expected TApply body, got %T", five.Body)
	}
	want := Applied{Func: TypeLambda{Name: "Maybe"}, Arg: Num{}}
	if !typeEqual(apply.Type(), want) {
		t.Fatalf("expected %s, got %s", want, apply.Type())
	}
}

// A self-referential recursive field - `(List a)` inside List's own
// Cons constructor - must resolve to one field, Applied(List, a),
// not two: routing the parenthesized application's head through
// resolveConcreteFieldName would hit the adtName-equals-id rule and
// get back the full Applied returnType instead of a bare TypeLambda,
// silently treating List and a as two independent fields.
func TestCheckRecursiveConstructorFieldIsSingleField(t *testing.T) {
	src := "data List a = Nil | Cons (List a)"
	mod, errs := checkSource(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	cons := declByName(mod, "Cons")
	if cons == nil {
		t.Fatalf("expected a Cons declaration")
	}
	if len(cons.Args) != 1 {
		t.Fatalf("expected Cons to take exactly one field, got %d: %#v", len(cons.Args), cons.Args)
	}
	want := Lambda{
		Param:  Applied{Func: TypeLambda{Name: "List"}, Arg: Generic{Name: "a"}},
		Result: Applied{Func: TypeLambda{Name: "List"}, Arg: Generic{Name: "a"}},
	}
	if !typeEqual(cons.Type, want) {
		t.Fatalf("expected Cons : %s, got %s", want, cons.Type)
	}
}

// Scenario 4: case-branch disagreement.
func TestCheckCaseBranchDisagreement(t *testing.T) {
	src := "f :: Int -> Int\nf n = case n of 0 -> \"zero\" ; _ -> n"
	_, errs := checkSource(t, src)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Construct != ExpressionError {
		t.Fatalf("expected ExpressionError, got %s", errs[0].Construct)
	}
	if !strings.Contains(errs[0].Message, "String") || !strings.Contains(errs[0].Message, "Int") {
		t.Fatalf("expected message to mention String and Int, got %q", errs[0].Message)
	}
}

// A third branch type lets typeEq's non-transitivity hide a real
// mismatch from a first-vs-rest check: Generic("a") trivially agrees
// with both Num and Str on its own, but Num and Str never agree with
// each other, so a full pairwise check must still reject this.
func TestCheckCaseBranchDisagreementAcrossThreeBranches(t *testing.T) {
	src := "f :: a -> Int -> a\n" +
		"f x n = case n of 0 -> x ; 1 -> 5 ; _ -> \"hi\""
	_, errs := checkSource(t, src)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Construct != ExpressionError {
		t.Fatalf("expected ExpressionError, got %s", errs[0].Construct)
	}
	if !strings.Contains(errs[0].Message, "Int") || !strings.Contains(errs[0].Message, "String") {
		t.Fatalf("expected message to mention Int and String, got %q", errs[0].Message)
	}
}

// Scenario 5: unknown constructor in deconstruction.
func TestCheckUnknownConstructor(t *testing.T) {
	src := "data Maybe a = Nothing | Just a\n" +
		"f :: Maybe Int -> Int\n" +
		"f m = case m of Some x -> x ; Nothing -> 0"
	_, errs := checkSource(t, src)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Construct != ExpressionError {
		t.Fatalf("expected ExpressionError, got %s", errs[0].Construct)
	}
	want := `no constructor named "Some" for Maybe Int in scope.`
	if errs[0].Message != want {
		t.Fatalf("expected message %q, got %q", want, errs[0].Message)
	}
}

// Scenario 6: infix type mismatch.
func TestCheckInfixMismatch(t *testing.T) {
	src := "f :: Int -> Int\nf n = n + \"a\""
	_, errs := checkSource(t, src)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	want := "No function exists with type Int + String"
	if errs[0].Message != want {
		t.Fatalf("expected message %q, got %q", want, errs[0].Message)
	}
}

// Invariant 3: typeConstraints(a, a) is {} for any non-Generic-headed a.
func TestConstraintsReflexive(t *testing.T) {
	cases := []Type{
		Num{},
		FloatType{},
		Str{},
		TypeLambda{Name: "Result"},
		Applied{Func: TypeLambda{Name: "Maybe"}, Arg: Num{}},
		Lambda{Param: Num{}, Result: Str{}},
	}
	for _, c := range cases {
		cs, ok := typeConstraints(c, c)
		if !ok {
			t.Fatalf("expected typeConstraints(%s, %s) to succeed", c, c)
		}
		if len(cs) != 0 {
			t.Fatalf("expected no bindings for %s, got %v", c, cs)
		}
	}
}

// Invariant 4: typeConstraints(Generic g, t) = {g -> t} for every t.
func TestConstraintsGenericBindsAnything(t *testing.T) {
	ts := []Type{Num{}, Str{}, Applied{Func: TypeLambda{Name: "Maybe"}, Arg: Num{}}, Generic{Name: "z"}}
	for _, want := range ts {
		cs, ok := typeConstraints(Generic{Name: "g"}, want)
		if !ok {
			t.Fatalf("expected success binding g to %s", want)
		}
		if !typeEqual(cs["g"], want) {
			t.Fatalf("expected g bound to %s, got %s", want, cs["g"])
		}
	}
}

// Invariant 5 (partial, checked directly on replaceGenerics): binding
// a to a ground type leaves no Generic in the rewritten result.
func TestReplaceGenericsIsGround(t *testing.T) {
	cs := constraints{"a": Num{}}
	result := replaceGenerics(cs, Applied{Func: TypeLambda{Name: "Maybe"}, Arg: Generic{Name: "a"}})
	if _, hasGeneric := result.(Generic); hasGeneric {
		t.Fatalf("expected ground type, got %s", result)
	}
	if !typeEqual(result, Applied{Func: TypeLambda{Name: "Maybe"}, Arg: Num{}}) {
		t.Fatalf("unexpected result %s", result)
	}
}

// Missing annotation is a DeclarationError, not silently accepted.
func TestCheckMissingAnnotation(t *testing.T) {
	_, errs := checkSource(t, "id x = x")
	if len(errs) != 1 || errs[0].Construct != DeclarationError {
		t.Fatalf("expected one DeclarationError, got %v", errs)
	}
}

// With line information supplied, a declaration error carries a real
// span from the offending Declaration's own Pos, and a data-type error
// (whose ADT/Constructor nodes have no Pos of their own) falls back to
// the span LineInformation recorded for the enclosing data declaration.
func TestCheckErrorsCarrySpansWhenLineInformationGiven(t *testing.T) {
	p := parser.New(lexer.New("id x = x", "test.tree"), "test.tree")
	mod := p.Parse()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	_, errs := CheckModuleWithLineInformation(mod, p.LineInformation())
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Range == nil {
		t.Fatalf("expected declaration error to carry a span")
	}

	p2 := parser.New(lexer.New("data Bad a = Ctor Nosuchtype", "test.tree"), "test.tree")
	mod2 := p2.Parse()
	if len(p2.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p2.Errors())
	}
	_, errs2 := CheckModuleWithLineInformation(mod2, p2.LineInformation())
	if len(errs2) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs2)
	}
	if errs2[0].Range == nil {
		t.Fatalf("expected data-type error to carry a span backfilled from the enclosing declaration")
	}
}

// Errors accumulate across top-levels: a bad ADT does not prevent a
// later, unrelated good declaration from checking successfully.
func TestCheckAccumulatesAcrossTopLevels(t *testing.T) {
	src := "data Bad a = Ctor Nosuchtype\n" +
		"id :: a -> a\nid x = x"
	mod, errs := checkSource(t, src)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Construct != DataTypeError {
		t.Fatalf("expected DataTypeError, got %s", errs[0].Construct)
	}
	if mod != nil {
		t.Fatalf("expected nil module when any top-level errors, got %#v", mod)
	}
}
