package runtime

import (
	"github.com/wbroach/luca1/lang"
)

func installNatives(in *lang.Interpreter) {
	env := in.Globals()
	define := func(name string, arity int, fn func(*lang.Interpreter, []lang.Value) (lang.Value, error)) {
		env.Define(name, lang.NativeValue(&lang.NativeFunction{Name: name, Params: arity, Fn: fn}))
	}

	define("clock", 0, nativeClock)
	define("str", 1, nativeStr)
}

// nativeClock returns the seconds elapsed since the interpreter started.
func nativeClock(in *lang.Interpreter, _ []lang.Value) (lang.Value, error) {
	return lang.NumberValue(in.Elapsed().Seconds()), nil
}

// nativeStr converts any value to its display text.
func nativeStr(_ *lang.Interpreter, args []lang.Value) (lang.Value, error) {
	return lang.StringValue(args[0].String()), nil
}
