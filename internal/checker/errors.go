package checker

import (
	"fmt"

	"github.com/forestlang/tree/internal/ast"
	treeerrors "github.com/forestlang/tree/internal/errors"
)

// ErrorConstruct identifies which phase of checking raised a
// CompileError (spec section 7).
type ErrorConstruct int

const (
	DeclarationError ErrorConstruct = iota
	ExpressionError
	DataTypeError
)

func (c ErrorConstruct) String() string {
	switch c {
	case DeclarationError:
		return "DeclarationError"
	case ExpressionError:
		return "ExpressionError"
	case DataTypeError:
		return "DataTypeError"
	default:
		return "UnknownError"
	}
}

// CompileError is the checker's single error type: a construct, an
// optional source range (populated only when the driver is given a
// LineInformation table), and a message.
type CompileError struct {
	Construct ErrorConstruct
	Range     *ast.Span
	Message   string
}

func (e *CompileError) Error() string {
	return e.Message
}

func newError(construct ErrorConstruct, span *ast.Span, format string, args ...interface{}) *CompileError {
	return &CompileError{Construct: construct, Range: span, Message: fmt.Sprintf(format, args...)}
}

// errorCode maps a construct to the stable code used by the Report
// conversion below.
func errorCode(construct ErrorConstruct) string {
	switch construct {
	case DeclarationError:
		return "DECL001"
	case ExpressionError:
		return "EXPR002"
	case DataTypeError:
		return "DT003"
	default:
		return "RUNTIME"
	}
}

// ToReport converts a CompileError to the structured errors.Report
// used by the `check -json` CLI output.
func (e *CompileError) ToReport() *treeerrors.Report {
	var span *ast.Span
	if e.Range != nil {
		span = e.Range
	}
	return treeerrors.New(errorCode(e.Construct), e.Message, span)
}
