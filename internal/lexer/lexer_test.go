package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `data Result error value = Err error | Ok value`

	want := []TokenType{
		DATA, IDENT, IDENT, IDENT, ASSIGN, IDENT, IDENT, PIPE, IDENT, IDENT, EOF,
	}

	l := New(input, "test.tree")
	for i, expected := range want {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("token %d: expected %s, got %s (%q)", i, expected, tok.Type, tok.Literal)
		}
	}
}

func TestNextTokenFunctionAnnotationAndCase(t *testing.T) {
	input := `id :: a -> a
case x of
  0 -> x`

	want := []TokenType{
		IDENT, DCOLON, IDENT, ARROW, IDENT,
		CASE, IDENT, OF,
		INT, ARROW, IDENT,
		EOF,
	}

	l := New(input, "test.tree")
	for i, expected := range want {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("token %d: expected %s, got %s (%q)", i, expected, tok.Type, tok.Literal)
		}
	}
}

func TestNextTokenOperatorsAndLiterals(t *testing.T) {
	input := `1 + 2.5 * "hi" ++ x - y / z`
	want := []TokenType{INT, PLUS, FLOAT, STAR, STRING, APPEND, IDENT, MINUS, IDENT, SLASH, IDENT, EOF}

	l := New(input, "t")
	for i, expected := range want {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("token %d: expected %s, got %s (%q)", i, expected, tok.Type, tok.Literal)
		}
	}
}

func TestStringLiteralContents(t *testing.T) {
	l := New(`"hello world"`, "t")
	tok := l.NextToken()
	if tok.Type != STRING || tok.Literal != "hello world" {
		t.Fatalf("unexpected token: %+v", tok)
	}
}

func TestFloatVsIntDisambiguation(t *testing.T) {
	l := New("42 3.14", "t")
	tok1 := l.NextToken()
	if tok1.Type != INT || tok1.Literal != "42" {
		t.Fatalf("expected INT 42, got %+v", tok1)
	}
	tok2 := l.NextToken()
	if tok2.Type != FLOAT || tok2.Literal != "3.14" {
		t.Fatalf("expected FLOAT 3.14, got %+v", tok2)
	}
}
