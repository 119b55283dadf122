package lang

import (
	"math"
	"strconv"
)

// ValueType enumerates the different runtime value categories.
type ValueType int

const (
	TypeNil ValueType = iota
	TypeBool
	TypeNumber
	TypeString
	TypeNative
	TypeFunction
	TypeClass
	TypeInstance
)

func (t ValueType) String() string {
	switch t {
	case TypeNil:
		return "nil"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeNative:
		return "native"
	case TypeFunction:
		return "function"
	case TypeClass:
		return "class"
	case TypeInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Value represents any runtime object in the interpreter. The zero Value is nil.
type Value struct {
	Type    ValueType
	payload interface{}
}

// Nil is the absent value.
var Nil = Value{Type: TypeNil}

// BoolValue returns the boolean Value equivalent.
func BoolValue(b bool) Value {
	return Value{Type: TypeBool, payload: b}
}

// NumberValue constructs a number Value.
func NumberValue(f float64) Value {
	return Value{Type: TypeNumber, payload: f}
}

// StringValue constructs a string Value.
func StringValue(s string) Value {
	return Value{Type: TypeString, payload: s}
}

// NativeValue wraps a host-provided function.
func NativeValue(fn *NativeFunction) Value {
	return Value{Type: TypeNative, payload: fn}
}

// FunctionValue wraps a user function.
func FunctionValue(fn *Function) Value {
	return Value{Type: TypeFunction, payload: fn}
}

// ClassValue wraps a class.
func ClassValue(c *Class) Value {
	return Value{Type: TypeClass, payload: c}
}

// InstanceValue wraps a class instance.
func InstanceValue(inst *Instance) Value {
	return Value{Type: TypeInstance, payload: inst}
}

// FromLiteral converts a literal decoded by the scanner into a Value.
func FromLiteral(lit interface{}) Value {
	switch v := lit.(type) {
	case bool:
		return BoolValue(v)
	case float64:
		return NumberValue(v)
	case string:
		return StringValue(v)
	default:
		return Nil
	}
}

func (v Value) Bool() bool {
	if b, ok := v.payload.(bool); ok {
		return b
	}
	return false
}

func (v Value) Number() float64 {
	if f, ok := v.payload.(float64); ok {
		return f
	}
	return 0
}

func (v Value) Str() string {
	if s, ok := v.payload.(string); ok {
		return s
	}
	return ""
}

func (v Value) Native() *NativeFunction {
	if fn, ok := v.payload.(*NativeFunction); ok {
		return fn
	}
	return nil
}

func (v Value) Function() *Function {
	if fn, ok := v.payload.(*Function); ok {
		return fn
	}
	return nil
}

func (v Value) Class() *Class {
	if c, ok := v.payload.(*Class); ok {
		return c
	}
	return nil
}

func (v Value) Instance() *Instance {
	if inst, ok := v.payload.(*Instance); ok {
		return inst
	}
	return nil
}

// Callable returns the value as a Callable when it can be called.
func (v Value) Callable() (Callable, bool) {
	switch v.Type {
	case TypeNative:
		return v.Native(), true
	case TypeFunction:
		return v.Function(), true
	case TypeClass:
		return v.Class(), true
	default:
		return nil, false
	}
}

// IsTruthy reports whether v counts as true: everything except nil and false.
func IsTruthy(v Value) bool {
	switch v.Type {
	case TypeNil:
		return false
	case TypeBool:
		return v.Bool()
	default:
		return true
	}
}

// Equal compares values without ever failing. nil only equals nil;
// callables and instances compare by identity.
func Equal(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	if a.Type == TypeNil {
		return true
	}
	return a.payload == b.payload
}

// String returns the display text used by print.
func (v Value) String() string {
	switch v.Type {
	case TypeNil:
		return "nil"
	case TypeBool:
		return strconv.FormatBool(v.Bool())
	case TypeNumber:
		return formatNumber(v.Number())
	case TypeString:
		return v.Str()
	case TypeNative:
		return "<native fn>"
	case TypeFunction:
		return "<fn " + v.Function().Name() + ">"
	case TypeClass:
		return v.Class().Name
	case TypeInstance:
		return v.Instance().Class.Name + " instance"
	default:
		return "<unknown>"
	}
}

// formatNumber prints integral values without a trailing ".0".
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
