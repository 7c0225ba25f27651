package value

import (
	"errors"
	"math"
	"math/big"
)

// ErrDivisionByZero is returned by Div/Mod when the Int divisor is zero.
// The runtime wraps this into a RuntimeException at the call site (see
// DESIGN.md's "Int division by zero" open-question decision); it is not
// a distinct Go panic type.
var ErrDivisionByZero = errors.New("division by zero")

// numeric widening: (Int,Int) stays Int; any Float operand promotes the
// pair to Float (spec.md §4.3).
func bothInt(a, b Value) bool {
	return a.kind == KindInt && b.kind == KindInt
}

// Add implements "+": Int+Int->Int, any Float->Float, String+String
// concatenates (spec.md §4.3 names string(...) / join as the normal
// concatenation path, but a bare "+" on two strings is the common case
// SPEC_FULL.md's operator-class derivation assumes in types.Binary).
func Add(a, b Value) (Value, error) {
	if a.kind == KindString && b.kind == KindString {
		out := make([]rune, 0, len(a.s)+len(b.s))
		out = append(out, a.s...)
		out = append(out, b.s...)
		return StringFromRunes(out), nil
	}
	if bothInt(a, b) {
		return Int(new(big.Int).Add(a.i, b.i)), nil
	}
	if isNumeric(a) && isNumeric(b) {
		return Float(a.AsNumber() + b.AsNumber()), nil
	}
	return Void, errIncompatible("+", a, b)
}

// Sub implements "-".
func Sub(a, b Value) (Value, error) {
	if bothInt(a, b) {
		return Int(new(big.Int).Sub(a.i, b.i)), nil
	}
	if isNumeric(a) && isNumeric(b) {
		return Float(a.AsNumber() - b.AsNumber()), nil
	}
	return Void, errIncompatible("-", a, b)
}

// Mul implements "*".
func Mul(a, b Value) (Value, error) {
	if bothInt(a, b) {
		return Int(new(big.Int).Mul(a.i, b.i)), nil
	}
	if isNumeric(a) && isNumeric(b) {
		return Float(a.AsNumber() * b.AsNumber()), nil
	}
	return Void, errIncompatible("*", a, b)
}

// Div implements "/". Int/Int stays Int, truncating toward zero like
// big.Int.Quo (spec.md §4.3's (Int,Int)->Int rule covers inexact
// quotients too, not just the zero-divisor case); a zero divisor
// propagates ErrDivisionByZero (spec.md §9).
func Div(a, b Value) (Value, error) {
	if bothInt(a, b) {
		if b.i.Sign() == 0 {
			return Void, ErrDivisionByZero
		}
		return Int(new(big.Int).Quo(a.i, b.i)), nil
	}
	if isNumeric(a) && isNumeric(b) {
		return Float(a.AsNumber() / b.AsNumber()), nil
	}
	return Void, errIncompatible("/", a, b)
}

// Mod implements "%".
func Mod(a, b Value) (Value, error) {
	if bothInt(a, b) {
		if b.i.Sign() == 0 {
			return Void, ErrDivisionByZero
		}
		return Int(new(big.Int).Rem(a.i, b.i)), nil
	}
	if isNumeric(a) && isNumeric(b) {
		return Float(math.Mod(a.AsNumber(), b.AsNumber())), nil
	}
	return Void, errIncompatible("%", a, b)
}

func isNumeric(v Value) bool {
	return v.kind == KindInt || v.kind == KindFloat
}

func errIncompatible(op string, a, b Value) error {
	return &IncompatibleOperandsError{Op: op, Left: a, Right: b}
}

// IncompatibleOperandsError reports an arithmetic/comparison operator
// applied to operands of incompatible Kind.
type IncompatibleOperandsError struct {
	Op          string
	Left, Right Value
}

func (e *IncompatibleOperandsError) Error() string {
	return "incompatible operands for " + e.Op + ": " + e.Left.Kind().String() + ", " + e.Right.Kind().String()
}

// Equal implements "==": semantic equality with Int<->Float numeric
// promotion (spec.md §3, resolving §9's self-compare bug into genuine
// numeric comparison). Distinct-Kind non-numeric pairs are unequal.
func Equal(a, b Value) bool {
	if isNumeric(a) && isNumeric(b) {
		if bothInt(a, b) {
			return a.i.Cmp(b.i) == 0
		}
		return a.AsNumber() == b.AsNumber()
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindVoid, KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindString:
		return string(a.s) == string(b.s)
	case KindProxy:
		return Same(a, b)
	default:
		return false
	}
}

// Same implements identity-equality: requires equal Kind, then compares
// the underlying identity (Proxy.ToUnderlying()) or value for scalars.
func Same(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	if a.kind == KindProxy {
		return a.p.ToUnderlying() == b.p.ToUnderlying()
	}
	return Equal(a, b)
}

// Compare implements "<","<=",">",">=": both operands must be arithmetic,
// or both strings (compared codepoint by codepoint); a mixed Int/Float
// pair compares as Float (spec.md §4.3). Returns -1, 0, or 1 like
// big.Int.Cmp, plus an error for any other pair of kinds.
func Compare(a, b Value) (int, error) {
	if !isNumeric(a) || !isNumeric(b) {
		if a.kind == KindString && b.kind == KindString {
			return stringsCompareRunes(a.s, b.s), nil
		}
		return 0, errIncompatible("<=>", a, b)
	}
	if bothInt(a, b) {
		return a.i.Cmp(b.i), nil
	}
	af, bf := a.AsNumber(), b.AsNumber()
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	default:
		return 0, nil
	}
}

func stringsCompareRunes(a, b []rune) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Nudge implements postfix "++"/"--" (spec.md §4.3): allowed only on Int,
// returns the OLD value and the new value.
func Nudge(v Value, increment bool) (old, updated Value, err error) {
	if v.kind != KindInt {
		return Void, Void, errors.New("nudge requires an int operand")
	}
	delta := big.NewInt(1)
	if !increment {
		delta = big.NewInt(-1)
	}
	return v, Int(new(big.Int).Add(v.i, delta)), nil
}

// Binary dispatches a named operator to its arithmetic/comparison
// implementation; used by compound-mutation (mutate) and by the runtime's
// BinaryExpr node.
func Binary(op string, a, b Value) (Value, error) {
	switch op {
	case "+":
		return Add(a, b)
	case "-":
		return Sub(a, b)
	case "*":
		return Mul(a, b)
	case "/":
		return Div(a, b)
	case "%":
		return Mod(a, b)
	case "==":
		return Bool(Equal(a, b)), nil
	case "!=":
		return Bool(!Equal(a, b)), nil
	case "<", "<=", ">", ">=":
		c, err := Compare(a, b)
		if err != nil {
			return Void, err
		}
		switch op {
		case "<":
			return Bool(c < 0), nil
		case "<=":
			return Bool(c <= 0), nil
		case ">":
			return Bool(c > 0), nil
		default:
			return Bool(c >= 0), nil
		}
	case "&&":
		if a.kind != KindBool || b.kind != KindBool {
			return Void, errIncompatible(op, a, b)
		}
		return Bool(a.b && b.b), nil
	case "||":
		if a.kind != KindBool || b.kind != KindBool {
			return Void, errIncompatible(op, a, b)
		}
		return Bool(a.b || b.b), nil
	default:
		return Void, errors.New("unknown operator " + op)
	}
}
