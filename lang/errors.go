package lang

import (
	"fmt"

	"github.com/wbroach/luca1/parser"
)

// RuntimeError aborts the current top-level run. Token locates the failure.
type RuntimeError struct {
	Token parser.Token
	Msg   string
}

// NewRuntimeError formats a runtime error reported against tok.
func NewRuntimeError(tok parser.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Token: tok,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] Runtime error: %s", e.Token.Line, e.Msg)
}
