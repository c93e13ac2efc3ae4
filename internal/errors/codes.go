// Package errors provides the structured diagnostic type shared by
// every compiler phase: a Report carries a stable code, the phase it
// came from, a message, and an optional source span, so the CLI and
// the editor-facing JSON output format can render the same error two
// different ways without re-deriving its meaning.
package errors

// Error code constants, organized by the phase that raises them.
const (
	// Lexer/parser errors.
	PAR001 = "PAR001" // unexpected token
	PAR002 = "PAR002" // missing closing delimiter
	PAR003 = "PAR003" // invalid function declaration syntax
	PAR004 = "PAR004" // invalid data declaration syntax
	PAR005 = "PAR005" // invalid pattern syntax
	PAR006 = "PAR006" // invalid type annotation syntax

	// Data-type (ADT) errors.
	DT001 = "DT001" // duplicate type name
	DT002 = "DT002" // duplicate constructor name
	DT003 = "DT003" // unresolvable constructor field type
	DT004 = "DT004" // undeclared generic used in constructor field

	// Declaration errors.
	DECL001 = "DECL001" // argument count mismatch with annotation
	DECL002 = "DECL002" // annotation names an undeclared type
	DECL003 = "DECL003" // duplicate top-level name

	// Expression/constraint errors.
	EXPR001 = "EXPR001" // unbound identifier
	EXPR002 = "EXPR002" // type mismatch
	EXPR003 = "EXPR003" // unknown constructor
	EXPR004 = "EXPR004" // case branch pattern arity mismatch
	EXPR005 = "EXPR005" // constraint solving failed
)

// ErrorInfo describes one error code for documentation and reporting.
type ErrorInfo struct {
	Code    string
	Phase   string
	Kind    string
	Summary string
}

// ErrorRegistry maps every defined code to its description.
var ErrorRegistry = map[string]ErrorInfo{
	PAR001: {PAR001, "parser", "syntax", "Unexpected token"},
	PAR002: {PAR002, "parser", "syntax", "Missing closing delimiter"},
	PAR003: {PAR003, "parser", "syntax", "Invalid function declaration"},
	PAR004: {PAR004, "parser", "syntax", "Invalid data declaration"},
	PAR005: {PAR005, "parser", "syntax", "Invalid pattern"},
	PAR006: {PAR006, "parser", "syntax", "Invalid type annotation"},

	DT001: {DT001, "datatype", "duplicate", "Duplicate type name"},
	DT002: {DT002, "datatype", "duplicate", "Duplicate constructor name"},
	DT003: {DT003, "datatype", "type", "Unresolvable constructor field type"},
	DT004: {DT004, "datatype", "scope", "Undeclared generic in constructor field"},

	DECL001: {DECL001, "declaration", "arity", "Argument count doesn't match annotation"},
	DECL002: {DECL002, "declaration", "type", "Annotation names an undeclared type"},
	DECL003: {DECL003, "declaration", "duplicate", "Duplicate top-level name"},

	EXPR001: {EXPR001, "expression", "scope", "Unbound identifier"},
	EXPR002: {EXPR002, "expression", "type", "Type mismatch"},
	EXPR003: {EXPR003, "expression", "scope", "Unknown constructor"},
	EXPR004: {EXPR004, "expression", "arity", "Case branch pattern arity mismatch"},
	EXPR005: {EXPR005, "expression", "constraint", "Constraint solving failed"},
}

