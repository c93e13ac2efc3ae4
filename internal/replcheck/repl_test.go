package replcheck

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandleTypeInfersInfixExpression(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.handleType("1 + 2", &out)
	if !strings.Contains(out.String(), "Int") {
		t.Fatalf("expected Int in output, got %q", out.String())
	}
}

func TestHandleTypeReportsCaseBranchDisagreement(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.handleType(`case 1 of 0 -> "zero"; n -> 1`, &out)
	if !strings.Contains(out.String(), "ExpressionError") {
		t.Fatalf("expected an ExpressionError, got %q", out.String())
	}
}

func TestHandleCheckReportsSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.tree")
	if err := os.WriteFile(path, []byte("id :: a -> a\nid x = x\n"), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	r := New()
	var out bytes.Buffer
	r.handleCheck(path, &out)
	if !strings.Contains(out.String(), "1 declaration(s) checked") {
		t.Fatalf("expected a success message, got %q", out.String())
	}
}

func TestHandleCheckReportsMissingFile(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.handleCheck(filepath.Join(t.TempDir(), "missing.tree"), &out)
	if !strings.Contains(out.String(), "Error") {
		t.Fatalf("expected an error message, got %q", out.String())
	}
}
