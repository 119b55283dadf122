package lang

import "github.com/wbroach/luca1/parser"

// Callable is implemented by every value that can appear as a call target.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// NativeFunction is a host-provided callable.
type NativeFunction struct {
	Name   string
	Params int
	Fn     func(in *Interpreter, args []Value) (Value, error)
}

func (n *NativeFunction) Arity() int { return n.Params }

func (n *NativeFunction) Call(in *Interpreter, args []Value) (Value, error) {
	return n.Fn(in, args)
}

// Function is a user-defined function or method together with the
// environment it was declared in.
type Function struct {
	Decl          *parser.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

// NewFunction closes decl over closure.
func NewFunction(decl *parser.FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{Decl: decl, Closure: closure, IsInitializer: isInitializer}
}

// Name returns the declared name.
func (f *Function) Name() string { return f.Decl.Name.Lexeme }

func (f *Function) Arity() int { return len(f.Decl.Params) }

// Call binds parameters in a fresh frame enclosed by the closure and runs the
// body. Initializers always yield the receiver.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.Closure)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}
	out, err := in.executeBlock(f.Decl.Body, env)
	if err != nil {
		return Nil, err
	}
	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	if out.returning {
		return out.value, nil
	}
	return Nil, nil
}

// bind returns a copy of f whose closure defines "this" as inst.
func (f *Function) bind(inst *Instance) *Function {
	env := NewEnvironment(f.Closure)
	env.Define("this", InstanceValue(inst))
	return NewFunction(f.Decl, env, f.IsInitializer)
}

// Class is a named set of methods. Calling it constructs an instance.
type Class struct {
	Name    string
	Methods map[string]*Function
}

// NewClass creates a class with the given methods.
func NewClass(name string, methods map[string]*Function) *Class {
	if methods == nil {
		methods = make(map[string]*Function)
	}
	return &Class{Name: name, Methods: methods}
}

// FindMethod looks up a method by name.
func (c *Class) FindMethod(name string) (*Function, bool) {
	m, ok := c.Methods[name]
	return m, ok
}

func (c *Class) Arity() int {
	if initializer, ok := c.Methods["init"]; ok {
		return initializer.Arity()
	}
	return 0
}

func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	inst := &Instance{Class: c, fields: make(map[string]Value)}
	if initializer, ok := c.Methods["init"]; ok {
		if _, err := initializer.bind(inst).Call(in, args); err != nil {
			return Nil, err
		}
	}
	return InstanceValue(inst), nil
}

// Instance holds per-object fields.
type Instance struct {
	Class  *Class
	fields map[string]Value
}

// Get reads a field, falling back to a method bound to the instance.
func (i *Instance) Get(name parser.Token) (Value, error) {
	if val, ok := i.fields[name.Lexeme]; ok {
		return val, nil
	}
	if m, ok := i.Class.FindMethod(name.Lexeme); ok {
		return FunctionValue(m.bind(i)), nil
	}
	return Nil, NewRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

// Set creates or overwrites a field.
func (i *Instance) Set(name parser.Token, val Value) {
	i.fields[name.Lexeme] = val
}
