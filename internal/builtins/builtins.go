// Package builtins registers the built-in symbol table entries every
// egg program starts with: the `print` function, and the `string`,
// `object`, `type`, and `math` manifestations of spec.md §4.3 /
// SPEC_FULL.md §3.
//
// Grounded on the teacher's builtins_strings*.go/builtins_math*.go
// (trimmed to egg's surface) for the manifestation method sets, and on
// cmd/dwscript/cmd/run.go's print-to-logger wiring for `print` itself.
package builtins

import (
	"math"
	"math/big"

	"github.com/cwbudde/egg/internal/diag"
	"github.com/cwbudde/egg/internal/runtime"
	"github.com/cwbudde/egg/internal/symtab"
	"github.com/cwbudde/egg/internal/types"
	"github.com/cwbudde/egg/internal/value"
)

// Register installs every built-in into table's root frame, as
// Builtin-flavoured entries (spec.md §4.5: "duplicate builtin
// definitions are fatal", enforced by symtab.Table.Builtin itself).
func Register(table *symtab.Table) {
	registerPrint(table)
	registerStringManifestation(table)
	registerObjectManifestation(table)
	registerTypeManifestation(table)
	registerMathManifestation(table)
}

// printType is print's static signature: a variadic callable returning
// void. egg's Type lattice has no variadic-arity shape (spec.md §4.4
// only names return type for callables), so the declared Callable is
// advisory; the linker does not arity-check call sites against it.
var printType = types.OBJECT.WithCallable(types.Callable{Return: types.VOID})

// registerPrint installs `print(a, b, ...)`, which concatenates every
// argument's toString() with no separator into a single Print log entry
// (SPEC_FULL.md §3: "print argument arity").
func registerPrint(table *symtab.Table) {
	fn := value.NewVanillaFunction("print", func(r value.Runner, args []value.Value) (value.Value, error) {
		rr := r.(*runtime.Runner)
		text := ""
		for _, a := range args {
			text += a.ToString(value.FormatOptions{})
		}
		rr.Log(diag.NewMessage(diag.OriginRuntime, diag.Print, diag.Location{}, text))
		return value.Void, nil
	})
	table.Builtin("print", printType, value.FromProxy(fn))
}

// manifestationType is the static Type every Manifestation value
// carries: Object, so property/call resolution falls back to
// GetCallables/GetProperty's generic Object handling.
var manifestationType = types.OBJECT

func methodValue(name string, fn func(receiver value.Value, args []value.Value) (value.Value, error)) value.Value {
	return value.FromProxy(&value.StringMethod{Name: name, Fn: fn})
}

// registerStringManifestation installs the `string` manifestation:
// `string(a, b, ...)` concatenates every argument's toString(), and
// `string.fromCodePoint(n)` builds a one-character string from a
// codepoint (spec.md §4.3: "string(args…) concatenates").
func registerStringManifestation(table *symtab.Table) {
	m := value.NewManifestation("string", map[string]value.Value{
		"fromCodePoint": methodValue("fromCodePoint", func(_ value.Value, args []value.Value) (value.Value, error) {
			if len(args) == 0 || args[0].Kind() != value.KindInt {
				return value.Void, &value.UnsupportedOperationError{Kind: "string", Operation: "fromCodePoint requires an int"}
			}
			return value.StringFromRunes([]rune{rune(args[0].AsInt().Int64())}), nil
		}),
	}, func(_ value.Runner, args []value.Value) (value.Value, error) {
		text := ""
		for _, a := range args {
			text += a.ToString(value.FormatOptions{})
		}
		return value.String(text), nil
	})
	table.Builtin("string", manifestationType, value.FromProxy(m))
}

// registerObjectManifestation installs the `object` manifestation:
// `object.keys(v)`/`object.values(v)`/`object.entries(v)` delegate to the
// VanillaObject methods of the same name (SPEC_FULL.md §3).
func registerObjectManifestation(table *symtab.Table) {
	delegate := func(method string) func(value.Value, []value.Value) (value.Value, error) {
		return func(_ value.Value, args []value.Value) (value.Value, error) {
			if len(args) == 0 || args[0].Kind() != value.KindProxy {
				return value.Void, &value.UnsupportedOperationError{Kind: "object", Operation: method + " requires an object argument"}
			}
			prop, err := args[0].AsProxy().GetProperty(method)
			if err != nil {
				return value.Void, err
			}
			return prop.AsProxy().Invoke(nil, nil)
		}
	}
	m := value.NewManifestation("object", map[string]value.Value{
		"keys":    methodValue("keys", delegate("keys")),
		"values":  methodValue("values", delegate("values")),
		"entries": methodValue("entries", delegate("entries")),
	}, nil)
	table.Builtin("object", manifestationType, value.FromProxy(m))
}

// registerTypeManifestation installs `type.of(v)`, returning the runtime
// type name of v as a string (spec.md §4.3).
func registerTypeManifestation(table *symtab.Table) {
	m := value.NewManifestation("type", map[string]value.Value{
		"of": methodValue("of", func(_ value.Value, args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return value.String("void"), nil
			}
			return value.String(args[0].RuntimeType().String()), nil
		}),
	}, nil)
	table.Builtin("type", manifestationType, value.FromProxy(m))
}

// registerMathManifestation installs the `math` manifestation
// (SPEC_FULL.md §3), grounded on the teacher's builtins_math*.go split
// into basic/advanced/trig, trimmed to the handful an egg script
// plausibly calls.
func registerMathManifestation(table *symtab.Table) {
	unary := func(name string, f func(float64) float64) value.Value {
		return methodValue(name, func(_ value.Value, args []value.Value) (value.Value, error) {
			n, err := requireNumber(name, args, 0)
			if err != nil {
				return value.Void, err
			}
			return value.Float(f(n)), nil
		})
	}
	m := value.NewManifestation("math", map[string]value.Value{
		"abs": methodValue("abs", func(_ value.Value, args []value.Value) (value.Value, error) {
			if len(args) > 0 && args[0].Kind() == value.KindInt {
				return value.Int(new(big.Int).Abs(args[0].AsInt())), nil
			}
			n, err := requireNumber("abs", args, 0)
			if err != nil {
				return value.Void, err
			}
			return value.Float(math.Abs(n)), nil
		}),
		"floor": unary("floor", math.Floor),
		"ceil":  unary("ceil", math.Ceil),
		"sqrt":  unary("sqrt", math.Sqrt),
		"max": methodValue("max", func(_ value.Value, args []value.Value) (value.Value, error) {
			return minMax(args, false)
		}),
		"min": methodValue("min", func(_ value.Value, args []value.Value) (value.Value, error) {
			return minMax(args, true)
		}),
		"pow": methodValue("pow", func(_ value.Value, args []value.Value) (value.Value, error) {
			base, err := requireNumber("pow", args, 0)
			if err != nil {
				return value.Void, err
			}
			exp, err := requireNumber("pow", args, 1)
			if err != nil {
				return value.Void, err
			}
			return value.Float(math.Pow(base, exp)), nil
		}),
	}, nil)
	table.Builtin("math", manifestationType, value.FromProxy(m))
}

func requireNumber(op string, args []value.Value, idx int) (float64, error) {
	if idx >= len(args) {
		return 0, &value.UnsupportedOperationError{Kind: "math", Operation: op + " requires a numeric argument"}
	}
	v := args[idx]
	if v.Kind() != value.KindInt && v.Kind() != value.KindFloat {
		return 0, &value.UnsupportedOperationError{Kind: "math", Operation: op + " requires a numeric argument"}
	}
	return v.AsNumber(), nil
}

func minMax(args []value.Value, wantMin bool) (value.Value, error) {
	if len(args) == 0 {
		return value.Void, &value.UnsupportedOperationError{Kind: "math", Operation: "min/max requires at least one argument"}
	}
	best := args[0]
	for _, a := range args[1:] {
		c, err := value.Compare(a, best)
		if err != nil {
			return value.Void, err
		}
		if (wantMin && c < 0) || (!wantMin && c > 0) {
			best = a
		}
	}
	return best, nil
}
