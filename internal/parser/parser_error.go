package parser

import (
	"fmt"

	"github.com/forestlang/tree/internal/ast"
)

// ParseError is a non-recoverable parse failure: the parser reports it
// and stops rather than attempting error recovery.
type ParseError struct {
	Pos     ast.Pos
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}
