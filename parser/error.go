package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a single static diagnostic: a lexical, syntax or scope error.
type Error struct {
	Line       int
	Where      string // " at end", " at 'x'" or empty
	Msg        string
	Incomplete bool // input ended before the construct was complete
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Msg)
}

// ErrorList collects every diagnostic produced by one phase of a run.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	lines := make([]string, len(l))
	for i, e := range l {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// Err returns nil for an empty list so callers can write `if err := l.Err(); err != nil`.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Add appends a diagnostic reported against tok.
func (l *ErrorList) Add(tok Token, msg string) {
	*l = append(*l, newTokenError(tok, msg))
}

// AddLine appends a diagnostic that has no token to point at.
func (l *ErrorList) AddLine(line int, msg string) {
	*l = append(*l, &Error{Line: line, Msg: msg})
}

func newTokenError(tok Token, msg string) *Error {
	if tok.Type == EOF {
		return &Error{Line: tok.Line, Where: " at end", Msg: msg, Incomplete: true}
	}
	return &Error{Line: tok.Line, Where: fmt.Sprintf(" at '%s'", tok.Lexeme), Msg: msg}
}

// IsIncomplete reports whether err only describes input that stopped early,
// such as an unterminated string or an unclosed block. A REPL can keep
// reading lines when this is true.
func IsIncomplete(err error) bool {
	var list ErrorList
	if errors.As(err, &list) {
		if len(list) == 0 {
			return false
		}
		for _, e := range list {
			if !e.Incomplete {
				return false
			}
		}
		return true
	}
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Incomplete
	}
	return false
}
