package types

// CompatibleType implements spec.md §4.4's Type.compatibleType: the
// intersection of two primitive tag sets, with the rule that a source
// (other) admitting Int but not Float also gains Float when the receiver
// admits Float (Float never narrows to Int, so the reverse direction
// does not widen).
// An empty result is the sentinel for "incompatible" and must be treated
// as a link error by the caller.
func (t Type) CompatibleType(other Type) Type {
	inter := Of()
	inter.tags = t.tags & other.tags

	// Int->Float widening: an Int-admitting, Float-free source is
	// compatible with a Float-admitting target via promotion to Float.
	if other.Has(Int) && !other.Has(Float) && t.Has(Float) {
		inter.tags |= Float
	}
	return inter
}

// GetIterables implements spec.md §4.4's Type.getIterables: for a type
// containing String, the element type is String (each iteration yields a
// one-codepoint string); for Object, the element type is ANYQ (the proxy's
// iterator is free to yield anything, including Null-typed sentinels).
func (t Type) GetIterables() (Type, bool) {
	if t.iterable != nil {
		return t.iterable.Element, true
	}
	if t.Has(String) {
		return STRING, true
	}
	if t.Has(Object) {
		return ANYQ, true
	}
	return Type{}, false
}

// GetCallables implements spec.md §4.4's Type.getCallables: a declared
// callable shape yields its own return type; a bare Object falls back to
// ANYQ (nothing is statically known about an arbitrary callable value).
func (t Type) GetCallables() (Callable, bool) {
	if t.callable != nil {
		return *t.callable, true
	}
	if t.Has(Object) {
		return Callable{Return: ANYQ}, true
	}
	return Callable{}, false
}

// OperatorClass classifies a binary operator for Binary's result-type
// derivation (spec.md §9's Type.binary open question).
type OperatorClass int

const (
	Arithmetic OperatorClass = iota
	Comparison
	Equality
	Logical
)

// ClassifyOperator maps a source operator spelling to its OperatorClass.
func ClassifyOperator(op string) (OperatorClass, bool) {
	switch op {
	case "+", "-", "*", "/", "%":
		return Arithmetic, true
	case "<", "<=", ">", ">=":
		return Comparison, true
	case "==", "!=":
		return Equality, true
	case "&&", "||":
		return Logical, true
	default:
		return 0, false
	}
}

// Binary derives the static result Type of applying op to operands of
// type lhs/rhs, resolving spec.md §9's open question: arithmetic widens
// per CompatibleType, comparison and equality always yield Bool, and
// logical requires (and yields) Bool. An empty Type signals a link error.
func Binary(op string, lhs, rhs Type) Type {
	class, ok := ClassifyOperator(op)
	if !ok {
		return Type{}
	}
	switch class {
	case Arithmetic:
		if op == "+" && lhs.Has(String) && rhs.Has(String) {
			return STRING
		}
		num := Of(Int, Float)
		if lhsNum := lhs.CompatibleType(num); !lhsNum.IsEmpty() {
			if rhsNum := rhs.CompatibleType(num); !rhsNum.IsEmpty() {
				if lhsNum.Has(Float) || rhsNum.Has(Float) {
					return FLOAT
				}
				return INT
			}
		}
		return Type{}
	case Comparison, Equality:
		return BOOL
	case Logical:
		if lhs.Has(Bool) && rhs.Has(Bool) {
			return BOOL
		}
		return Type{}
	}
	return Type{}
}
