package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapReportRoundTrip(t *testing.T) {
	r := New(EXPR001, "unbound identifier: foo", nil)
	err := WrapReport(r)

	got, ok := AsReport(err)
	if !ok {
		t.Fatalf("expected AsReport to succeed")
	}
	if got.Code != EXPR001 {
		t.Fatalf("expected code %s, got %s", EXPR001, got.Code)
	}
}

func TestAsReportFailsForPlainError(t *testing.T) {
	if _, ok := AsReport(errors.New("boom")); ok {
		t.Fatalf("expected AsReport to fail for a plain error")
	}
}

func TestReportToJSONContainsCode(t *testing.T) {
	r := New(PAR001, "unexpected token", nil)
	js, err := r.ToJSON(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(js, PAR001) {
		t.Fatalf("expected JSON to contain code, got %s", js)
	}
}
