package value

import "strings"

// Lazy is a zero-argument closure that evaluates a compound-mutation's
// right-hand side only when the operator demands it (spec.md §4.3, §9's
// "Lazy RHS" design note).
type Lazy func() (Value, error)

// Runner is the opaque execution context a Proxy's Invoke receives. It is
// typed `any` here (rather than a concrete *runtime.Runner) so this
// package never imports internal/runtime: the Runtime tree-walker is the
// only thing that knows how to interpret it, and every concrete Proxy
// that needs to call back into it (VanillaFunction) receives a
// pre-bound closure from the runtime package instead of importing it.
type Runner = any

// Proxy is the uniform capability set every object-like Value must
// implement (spec.md §4.3): property/index read-write-mutate-delete, an
// iterator, invocation, and the three display forms. Concrete kinds are
// VanillaArray, VanillaObject, VanillaFunction, StringMethod,
// Manifestation, and the RuntimeException proxy.
type Proxy interface {
	GetProperty(name string) (Value, error)
	SetProperty(name string, v Value) error
	MutProperty(name string, op string, lazy Lazy) (Value, error)
	DelProperty(name string) error

	GetIndex(i Value) (Value, error)
	SetIndex(i Value, v Value) error
	MutIndex(i Value, op string, lazy Lazy) (Value, error)
	DelIndex(i Value) error

	// GetIterator returns a pull function yielding successive elements,
	// then Void to signal end (spec.md §4.3, §9's pull-closure design note).
	GetIterator() (func() (Value, error), error)

	// Invoke calls the proxy as a function; callers that don't carry a
	// live Runner (e.g. pure-value tests) may pass nil.
	Invoke(runner Runner, args []Value) (Value, error)

	// ToUnderlying returns the raw payload used for identity equality
	// (spec.md §4.3's Value.same).
	ToUnderlying() any

	ToString(opts FormatOptions) string
	ToDebug() string
	Describe() string
}

// UnsupportedOperationError is returned by a Proxy capability that a
// concrete kind does not implement (e.g. setIndex on a function).
type UnsupportedOperationError struct {
	Kind      string
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return e.Kind + " does not support " + e.Operation
}

// UnknownPropertyError is returned by GetProperty/DelProperty for an
// unrecognised name, per spec.md §4.3's "Exception if unknown".
type UnknownPropertyError struct {
	Kind string
	Name string
}

func (e *UnknownPropertyError) Error() string {
	return "unknown property '" + e.Name + "' on " + e.Kind
}

// IndexOutOfRangeError is returned by GetIndex/SetIndex when the index is
// out of the proxy's bounds.
type IndexOutOfRangeError struct {
	Kind  string
	Index Value
}

func (e *IndexOutOfRangeError) Error() string {
	return "index out of range for " + e.Kind
}

// applyMutate is the shared implementation of spec.md §4.3's mutate(op,
// lazy): "=" assigns (returning the previous value), "++"/"--" nudge an
// Int, and every other operator delegates to Binary(op, current, lazy()).
func applyMutate(current Value, op string, lazy Lazy) (previous Value, updated Value, err error) {
	switch op {
	case "=":
		rhs, err := lazy()
		if err != nil {
			return Void, Void, err
		}
		return current, rhs, nil
	case "++":
		old, next, err := Nudge(current, true)
		return old, next, err
	case "--":
		old, next, err := Nudge(current, false)
		return old, next, err
	default:
		// Compound operator: "+=" etc. strips its trailing "=" to recover
		// the base binary operator.
		base := strings.TrimSuffix(op, "=")
		rhs, err := lazy()
		if err != nil {
			return Void, Void, err
		}
		result, err := Binary(base, current, rhs)
		if err != nil {
			return Void, Void, err
		}
		return current, result, nil
	}
}
