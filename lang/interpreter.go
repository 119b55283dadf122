package lang

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/wbroach/luca1/parser"
)

// Interpreter executes resolved statements. Globals persist across calls
// to Interpret, so a REPL can feed it one line at a time.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  Locals
	out     io.Writer
	started time.Time
	depth   int
}

// maxCallDepth bounds nested calls. One more call is a runtime error.
const maxCallDepth = 3000

// Option customises an Interpreter.
type Option func(*Interpreter)

// WithOutput redirects print statements to w.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) {
		in.out = w
	}
}

// NewInterpreter constructs an interpreter with an empty global frame.
func NewInterpreter(opts ...Option) *Interpreter {
	globals := NewEnvironment(nil)
	in := &Interpreter{
		globals: globals,
		env:     globals,
		locals:  make(Locals),
		out:     os.Stdout,
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Globals returns the global frame.
func (in *Interpreter) Globals() *Environment {
	return in.globals
}

// Output returns the writer print statements go to.
func (in *Interpreter) Output() io.Writer {
	return in.out
}

// Elapsed reports the time since the interpreter was created.
func (in *Interpreter) Elapsed() time.Duration {
	return time.Since(in.started)
}

// Resolve merges a resolution table into the interpreter. Tables from
// earlier runs stay valid because their keys are distinct nodes. Entries
// are kept for the life of the interpreter: a closure created by an earlier
// REPL entry may still run its statements, so the table grows with the
// amount of source fed in.
func (in *Interpreter) Resolve(locals Locals) {
	for expr, depth := range locals {
		in.locals[expr] = depth
	}
}

// Interpret executes stmts in order and stops at the first runtime error.
// Output already produced stays written.
func (in *Interpreter) Interpret(stmts []parser.Stmt) error {
	for _, stmt := range stmts {
		if _, err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// flow is the outcome of executing a statement. returning is set once a
// return statement ran; enclosing blocks and loops stop and hand it up to
// the function call.
type flow struct {
	returning bool
	value     Value
}

func (in *Interpreter) execute(stmt parser.Stmt) (flow, error) {
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		_, err := in.evaluate(s.Expr)
		return flow{}, err
	case *parser.PrintStmt:
		val, err := in.evaluate(s.Expr)
		if err != nil {
			return flow{}, err
		}
		fmt.Fprintln(in.out, val.String())
		return flow{}, nil
	case *parser.VarStmt:
		val := Nil
		if s.Init != nil {
			v, err := in.evaluate(s.Init)
			if err != nil {
				return flow{}, err
			}
			val = v
		}
		in.env.Define(s.Name.Lexeme, val)
		return flow{}, nil
	case *parser.BlockStmt:
		return in.executeBlock(s.Stmts, NewEnvironment(in.env))
	case *parser.IfStmt:
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return flow{}, err
		}
		if IsTruthy(cond) {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return flow{}, nil
	case *parser.WhileStmt:
		for {
			cond, err := in.evaluate(s.Cond)
			if err != nil {
				return flow{}, err
			}
			if !IsTruthy(cond) {
				return flow{}, nil
			}
			out, err := in.execute(s.Body)
			if err != nil || out.returning {
				return out, err
			}
		}
	case *parser.FunctionStmt:
		fn := NewFunction(s, in.env, false)
		in.env.Define(s.Name.Lexeme, FunctionValue(fn))
		return flow{}, nil
	case *parser.ReturnStmt:
		val := Nil
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return flow{}, err
			}
			val = v
		}
		return flow{returning: true, value: val}, nil
	case *parser.ClassStmt:
		in.env.Define(s.Name.Lexeme, Nil)
		methods := make(map[string]*Function, len(s.Methods))
		for _, m := range s.Methods {
			methods[m.Name.Lexeme] = NewFunction(m, in.env, m.Name.Lexeme == "init")
		}
		in.env.Define(s.Name.Lexeme, ClassValue(NewClass(s.Name.Lexeme, methods)))
		return flow{}, nil
	default:
		panic(fmt.Sprintf("interpreter: unhandled statement %T", stmt))
	}
}

// executeBlock runs stmts in env and restores the previous frame on every
// exit path.
func (in *Interpreter) executeBlock(stmts []parser.Stmt, env *Environment) (flow, error) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		out, err := in.execute(stmt)
		if err != nil || out.returning {
			return out, err
		}
	}
	return flow{}, nil
}

func (in *Interpreter) evaluate(expr parser.Expr) (Value, error) {
	switch e := expr.(type) {
	case *parser.LiteralExpr:
		return FromLiteral(e.Value), nil
	case *parser.GroupingExpr:
		return in.evaluate(e.Inner)
	case *parser.UnaryExpr:
		return in.evalUnary(e)
	case *parser.BinaryExpr:
		return in.evalBinary(e)
	case *parser.LogicalExpr:
		left, err := in.evaluate(e.Left)
		if err != nil {
			return Nil, err
		}
		if e.Op.Type == parser.Or {
			if IsTruthy(left) {
				return left, nil
			}
		} else if !IsTruthy(left) {
			return left, nil
		}
		return in.evaluate(e.Right)
	case *parser.VariableExpr:
		return in.lookUpVariable(e.Name, e)
	case *parser.AssignExpr:
		val, err := in.evaluate(e.Value)
		if err != nil {
			return Nil, err
		}
		if distance, ok := in.locals[e]; ok {
			in.env.AssignAt(distance, e.Name, val)
			return val, nil
		}
		if err := in.globals.Assign(e.Name, val); err != nil {
			return Nil, err
		}
		return val, nil
	case *parser.CallExpr:
		return in.evalCall(e)
	case *parser.GetExpr:
		obj, err := in.evaluate(e.Object)
		if err != nil {
			return Nil, err
		}
		if obj.Type != TypeInstance {
			return Nil, NewRuntimeError(e.Name, "Only instances have properties.")
		}
		return obj.Instance().Get(e.Name)
	case *parser.SetExpr:
		obj, err := in.evaluate(e.Object)
		if err != nil {
			return Nil, err
		}
		if obj.Type != TypeInstance {
			return Nil, NewRuntimeError(e.Name, "Only instances have fields.")
		}
		val, err := in.evaluate(e.Value)
		if err != nil {
			return Nil, err
		}
		obj.Instance().Set(e.Name, val)
		return val, nil
	case *parser.ThisExpr:
		return in.lookUpVariable(e.Keyword, e)
	default:
		panic(fmt.Sprintf("interpreter: unhandled expression %T", expr))
	}
}

func (in *Interpreter) lookUpVariable(name parser.Token, expr parser.Expr) (Value, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.env.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

func (in *Interpreter) evalUnary(e *parser.UnaryExpr) (Value, error) {
	operand, err := in.evaluate(e.Operand)
	if err != nil {
		return Nil, err
	}
	switch e.Op.Type {
	case parser.Bang:
		return BoolValue(!IsTruthy(operand)), nil
	case parser.Minus:
		if operand.Type != TypeNumber {
			return Nil, NewRuntimeError(e.Op, "Operand must be a number.")
		}
		return NumberValue(-operand.Number()), nil
	}
	return Nil, NewRuntimeError(e.Op, "Unknown unary operator '%s'.", e.Op.Lexeme)
}

func (in *Interpreter) evalBinary(e *parser.BinaryExpr) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return Nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return Nil, err
	}

	switch e.Op.Type {
	case parser.EqualEqual:
		return BoolValue(Equal(left, right)), nil
	case parser.BangEqual:
		return BoolValue(!Equal(left, right)), nil
	case parser.Plus:
		if left.Type == TypeNumber && right.Type == TypeNumber {
			return NumberValue(left.Number() + right.Number()), nil
		}
		if left.Type == TypeString && right.Type == TypeString {
			return StringValue(left.Str() + right.Str()), nil
		}
		return Nil, NewRuntimeError(e.Op, "Operands must be two numbers or two strings.")
	}

	if left.Type != TypeNumber || right.Type != TypeNumber {
		return Nil, NewRuntimeError(e.Op, "Operands must be numbers.")
	}
	a, b := left.Number(), right.Number()
	switch e.Op.Type {
	case parser.Minus:
		return NumberValue(a - b), nil
	case parser.Star:
		return NumberValue(a * b), nil
	case parser.Slash:
		if b == 0 {
			return Nil, NewRuntimeError(e.Op, "Division by zero.")
		}
		return NumberValue(a / b), nil
	case parser.Greater:
		return BoolValue(a > b), nil
	case parser.GreaterEqual:
		return BoolValue(a >= b), nil
	case parser.Less:
		return BoolValue(a < b), nil
	case parser.LessEqual:
		return BoolValue(a <= b), nil
	}
	return Nil, NewRuntimeError(e.Op, "Unknown binary operator '%s'.", e.Op.Lexeme)
}

func (in *Interpreter) evalCall(e *parser.CallExpr) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return Nil, err
	}
	args := make([]Value, 0, len(e.Args))
	for _, arg := range e.Args {
		val, err := in.evaluate(arg)
		if err != nil {
			return Nil, err
		}
		args = append(args, val)
	}
	fn, ok := callee.Callable()
	if !ok {
		return Nil, NewRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return Nil, NewRuntimeError(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	if in.depth >= maxCallDepth {
		return Nil, NewRuntimeError(e.Paren, "Stack overflow.")
	}
	in.depth++
	defer func() { in.depth-- }()
	return fn.Call(in, args)
}
