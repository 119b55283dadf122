package runtime

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wbroach/luca1/lang"
	"github.com/wbroach/luca1/parser"
)

// NewInterpreter constructs an interpreter with the native functions installed.
func NewInterpreter(opts ...lang.Option) *lang.Interpreter {
	in := lang.NewInterpreter(opts...)
	installNatives(in)
	return in
}

// EvaluateString runs luca source through every phase. Scan and parse
// errors stop the run before resolution, and resolution errors stop it
// before execution. Returned static errors are a parser.ErrorList.
func EvaluateString(in *lang.Interpreter, src string) error {
	stmts, errs := parser.ParseString(src)
	if len(errs) != 0 {
		return errs
	}
	locals, errs := lang.NewResolver().Resolve(stmts)
	if len(errs) != 0 {
		return errs
	}
	in.Resolve(locals)
	return in.Interpret(stmts)
}

// EvaluateReader consumes all source from the reader and evaluates it.
func EvaluateReader(in *lang.Interpreter, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	return EvaluateString(in, string(data))
}

// EvaluateFile loads and executes a luca file, allowing a #! first line.
func EvaluateFile(in *lang.Interpreter, path string) error {
	data, err := ReadScript(path)
	if err != nil {
		return err
	}
	return EvaluateReader(in, bytes.NewReader(data))
}

// ReadScript reads a script file, blanking a leading #! line.
func ReadScript(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte("#!")) {
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			// Keep the newline so reported line numbers match the file.
			return data[idx:], nil
		}
		return []byte{}, nil
	}
	return data, nil
}

// IsStatic reports whether err holds lexical, syntax or scope errors.
func IsStatic(err error) bool {
	var list parser.ErrorList
	if errors.As(err, &list) {
		return true
	}
	var single *parser.Error
	return errors.As(err, &single)
}

// IsRuntime reports whether err is a runtime error raised while executing.
func IsRuntime(err error) bool {
	var rerr *lang.RuntimeError
	return errors.As(err, &rerr)
}

// IsIncomplete reports whether err only says the input ended too early.
func IsIncomplete(err error) bool {
	return parser.IsIncomplete(err)
}
