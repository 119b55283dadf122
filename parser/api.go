package parser

import (
	"io"
)

// ParseString scans and parses luca source text. Lexical and syntax errors
// are returned together, in source order of discovery.
func ParseString(src string) ([]Stmt, ErrorList) {
	tokens, scanErrs := Scan(src)
	stmts, parseErrs := Parse(tokens)
	if len(scanErrs) == 0 {
		return stmts, parseErrs
	}
	errs := make(ErrorList, 0, len(scanErrs)+len(parseErrs))
	errs = append(errs, scanErrs...)
	errs = append(errs, parseErrs...)
	return stmts, errs
}

// ParseReader consumes luca source from an io.Reader and parses it.
func ParseReader(r io.Reader) ([]Stmt, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	stmts, errs := ParseString(string(data))
	return stmts, errs.Err()
}
