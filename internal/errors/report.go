package errors

import (
	"encoding/json"
	"errors"

	"github.com/forestlang/tree/internal/ast"
)

// Report is the canonical structured error type for the compiler.
// Errors from every phase (parser, data-type checker, declaration
// checker, expression inferrer) are converted into one of these
// (CompileError.ToReport, or NewGeneric for parser errors), so a
// caller can render it as text or marshal it for the `check -json`
// output format without re-deriving the span or code.
type Report struct {
	Schema  string         `json:"schema"`         // always "tree.error/v1"
	Code    string         `json:"code"`            // error code (PAR001, EXPR002, ...)
	Phase   string         `json:"phase"`           // "parser", "datatype", "declaration", "expression"
	Message string         `json:"message"`         // human-readable message
	Span    *ast.Span      `json:"span,omitempty"`  // source location (optional)
	Data    map[string]any `json:"data,omitempty"`  // structured data (sorted keys)
	Fix     *Fix           `json:"fix,omitempty"`   // suggested fix (optional)
}

// ReportError wraps a Report as an error
// This allows structured reports to survive errors.As() unwrapping
type ReportError struct {
	Rep *Report
}

// Error implements the error interface
func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport attempts to extract a Report from an error chain
// Returns the Report and true if found, nil and false otherwise
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as a ReportError
// Call sites should return errors.WrapReport(report) to preserve structure
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON converts a Report to JSON (deterministic, sorted keys)
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error

	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}

	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Fix is an optional suggested remedy attached to a Report and
// included in its JSON form. The terminal printers in cmd/tree do not
// render it.
type Fix struct {
	Description string `json:"description"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// New builds a Report for one of the codes in ErrorRegistry, using its
// registered phase.
func New(code, message string, span *ast.Span) *Report {
	info := ErrorRegistry[code]
	return &Report{
		Schema:  "tree.error/v1",
		Code:    code,
		Phase:   info.Phase,
		Message: message,
		Span:    span,
	}
}

// NewGeneric creates a report for an error that doesn't carry its own code.
func NewGeneric(phase string, err error) *Report {
	return &Report{
		Schema:  "tree.error/v1",
		Code:    "RUNTIME",
		Phase:   phase,
		Message: err.Error(),
		Data:    map[string]any{},
	}
}
