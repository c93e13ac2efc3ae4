package lexer

import "testing"

func TestNormalizeStripsBOM(t *testing.T) {
	src := append([]byte{0xEF, 0xBB, 0xBF}, []byte("let x = 1")...)
	got := Normalize(src)
	if string(got) != "let x = 1" {
		t.Fatalf("expected BOM stripped, got %q", got)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	src := []byte("data Maybe a = Nothing | Just a")
	once := Normalize(src)
	twice := Normalize(once)
	if string(once) != string(twice) {
		t.Fatalf("normalization not idempotent: %q vs %q", once, twice)
	}
}
