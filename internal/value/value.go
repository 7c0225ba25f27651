// Package value implements the tagged Value model of spec.md §3/§4.3: a
// discriminated union over {Void, Null, Bool, Int, Float, String, Proxy},
// its arithmetic/comparison/promotion rules, and the Proxy capability set
// that gives arrays, objects, functions, and string methods a uniform
// call/index/property contract.
//
// Grounded on the teacher's internal/interp/runtime concrete value structs
// (ArrayValue, IntegerValue, ...) and internal/interp/helpers.go's
// ValuesEqual, collapsed into the single tagged struct spec.md §3 demands.
package value

import (
	"math/big"

	"github.com/cwbudde/egg/internal/types"
)

// Kind discriminates a Value's payload.
type Kind int

const (
	KindVoid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindProxy
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindProxy:
		return "proxy"
	default:
		return "?"
	}
}

// Value is the tagged discriminator of spec.md §3: exactly one Kind, plus
// the payload for that Kind. Void and Null carry no payload.
type Value struct {
	kind Kind
	b    bool
	i    *big.Int
	f    float64
	s    []rune // Unicode codepoint sequence, not UTF-16 (spec.md §3)
	p    Proxy
}

// Void is the absent-value sentinel (spec.md §3): uninitialized slots,
// empty returns, type-incompatibility signalling.
var Void = Value{kind: KindVoid}

// Null is the first-class language null value.
var Null = Value{kind: KindNull}

// True and False are the two Bool values.
var True = Value{kind: KindBool, b: true}
var False = Value{kind: KindBool, b: false}

// Bool builds a Bool Value.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Int builds an Int Value from an arbitrary-precision integer.
func Int(i *big.Int) Value {
	return Value{kind: KindInt, i: new(big.Int).Set(i)}
}

// IntFromInt64 builds an Int Value from an int64, for literal/builtin use.
func IntFromInt64(n int64) Value {
	return Value{kind: KindInt, i: big.NewInt(n)}
}

// Float builds a Float Value (IEEE-754 binary64).
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// String builds a String Value from a codepoint sequence.
func String(s string) Value {
	return Value{kind: KindString, s: []rune(s)}
}

// StringFromRunes builds a String Value directly from a codepoint slice,
// avoiding a re-decode when the caller already has runes.
func StringFromRunes(r []rune) Value {
	cp := make([]rune, len(r))
	copy(cp, r)
	return Value{kind: KindString, s: cp}
}

// FromProxy wraps a Proxy as a Value.
func FromProxy(p Proxy) Value {
	return Value{kind: KindProxy, p: p}
}

// Kind reports the Value's discriminator.
func (v Value) Kind() Kind { return v.kind }

// IsVoid reports whether v is the Void sentinel.
func (v Value) IsVoid() bool { return v.kind == KindVoid }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the Bool payload; caller must check Kind first.
func (v Value) AsBool() bool { return v.b }

// AsInt returns the Int payload; caller must check Kind first.
func (v Value) AsInt() *big.Int { return v.i }

// AsFloat returns the Float payload; caller must check Kind first.
func (v Value) AsFloat() float64 { return v.f }

// AsRunes returns the String payload's codepoints; caller must check Kind.
func (v Value) AsRunes() []rune { return v.s }

// AsString returns the String payload rendered back to a Go string.
func (v Value) AsString() string { return string(v.s) }

// AsProxy returns the Proxy payload; caller must check Kind first.
func (v Value) AsProxy() Proxy { return v.p }

// AsNumber returns the numeric value of an Int or Float Value as a
// float64, used for Int<->Float promotion comparisons (spec.md §8's
// "Type promotion" testable property).
func (v Value) AsNumber() float64 {
	switch v.kind {
	case KindInt:
		f, _ := new(big.Float).SetInt(v.i).Float64()
		return f
	case KindFloat:
		return v.f
	default:
		return 0
	}
}

// RuntimeType returns the Type tag corresponding to v's Kind, used by
// type.of(v) and by the linker's static type derivation of literals.
func (v Value) RuntimeType() types.Type {
	switch v.kind {
	case KindVoid:
		return types.VOID
	case KindNull:
		return types.NULLT
	case KindBool:
		return types.BOOL
	case KindInt:
		return types.INT
	case KindFloat:
		return types.FLOAT
	case KindString:
		return types.STRING
	case KindProxy:
		return types.OBJECT
	default:
		return types.Type{}
	}
}

// CompatibleWith implements spec.md §4.4's Type.compatibleValue: returns
// v adjusted for Int->Float promotion when t admits Float but not Int, or
// Void if v is incompatible with t. Used at every typed insertion point
// (variable define/set, function argument, catch binding, foreach
// variable) per spec.md §4.4.
func (v Value) CompatibleWith(t types.Type) Value {
	switch v.kind {
	case KindVoid:
		if t.Has(types.Void) {
			return v
		}
		return Void
	case KindNull:
		if t.Has(types.Null) {
			return v
		}
		return Void
	case KindBool:
		if t.Has(types.Bool) {
			return v
		}
		return Void
	case KindInt:
		if t.Has(types.Int) {
			return v
		}
		if t.Has(types.Float) {
			return Float(v.AsNumber())
		}
		return Void
	case KindFloat:
		if t.Has(types.Float) {
			return v
		}
		return Void
	case KindString:
		if t.Has(types.String) {
			return v
		}
		return Void
	case KindProxy:
		if t.Has(types.Object) {
			return v
		}
		return Void
	default:
		return Void
	}
}
