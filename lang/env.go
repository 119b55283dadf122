package lang

import "github.com/wbroach/luca1/parser"

// Environment is one frame of the lexical environment chain. A frame lives
// as long as anything references it: the active call, a nested frame, or a
// closure that captured it.
type Environment struct {
	enclosing *Environment
	values    map[string]Value
}

// NewEnvironment creates a frame with optional enclosing frame.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		enclosing: enclosing,
		values:    make(map[string]Value),
	}
}

// Define binds name in the current frame, replacing any earlier binding.
func (e *Environment) Define(name string, val Value) {
	e.values[name] = val
}

// Get retrieves a binding, searching enclosing frames if necessary.
func (e *Environment) Get(name parser.Token) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if val, ok := env.values[name.Lexeme]; ok {
			return val, nil
		}
	}
	return Nil, undefinedVariable(name)
}

// Assign updates an existing binding, searching enclosing frames if needed.
func (e *Environment) Assign(name parser.Token, val Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = val
			return nil
		}
	}
	return undefinedVariable(name)
}

// GetAt reads name from the frame distance links up the chain.
func (e *Environment) GetAt(distance int, name string) Value {
	return e.Ancestor(distance).values[name]
}

// AssignAt writes name in the frame distance links up the chain.
func (e *Environment) AssignAt(distance int, name parser.Token, val Value) {
	e.Ancestor(distance).values[name.Lexeme] = val
}

// Ancestor walks distance enclosing links.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// Enclosing returns the enclosing frame, nil for the global frame.
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

func undefinedVariable(name parser.Token) error {
	return NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}
