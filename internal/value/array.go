package value

import (
	"math/big"
	"strings"
)

// VanillaArray is the default in-memory Proxy implementation of an array
// value (spec.md §4.3): an ordered sequence of Value, with a readable and
// writable "length" property and index access by non-negative Int.
type VanillaArray struct {
	Elements []Value
}

// NewVanillaArray builds a VanillaArray over the given elements (shared,
// not copied).
func NewVanillaArray(elements []Value) *VanillaArray {
	return &VanillaArray{Elements: elements}
}

var _ Proxy = (*VanillaArray)(nil)

func (a *VanillaArray) GetProperty(name string) (Value, error) {
	switch name {
	case "length":
		return IntFromInt64(int64(len(a.Elements))), nil
	default:
		if m, ok := arrayMethods[name]; ok {
			return FromProxy(&StringMethod{Name: name, Receiver: FromProxy(a), Fn: m}), nil
		}
		return Void, &UnknownPropertyError{Kind: "array", Name: name}
	}
}

func (a *VanillaArray) SetProperty(name string, v Value) error {
	if name != "length" {
		return &UnsupportedOperationError{Kind: "array", Operation: "setProperty(" + name + ")"}
	}
	if v.Kind() != KindInt {
		return &UnsupportedOperationError{Kind: "array", Operation: "setProperty(length) requires int"}
	}
	n := int(v.AsInt().Int64())
	if n < 0 {
		return &UnsupportedOperationError{Kind: "array", Operation: "negative length"}
	}
	if n <= len(a.Elements) {
		a.Elements = a.Elements[:n]
		return nil
	}
	grown := make([]Value, n)
	copy(grown, a.Elements)
	for i := len(a.Elements); i < n; i++ {
		grown[i] = Null
	}
	a.Elements = grown
	return nil
}

func (a *VanillaArray) MutProperty(name string, op string, lazy Lazy) (Value, error) {
	current, err := a.GetProperty(name)
	if err != nil {
		return Void, err
	}
	_, updated, err := applyMutate(current, op, lazy)
	if err != nil {
		return Void, err
	}
	if err := a.SetProperty(name, updated); err != nil {
		return Void, err
	}
	return updated, nil
}

func (a *VanillaArray) DelProperty(name string) error {
	return &UnsupportedOperationError{Kind: "array", Operation: "delProperty"}
}

func (a *VanillaArray) indexOf(i Value) (int, error) {
	if i.Kind() != KindInt {
		return 0, &UnsupportedOperationError{Kind: "array", Operation: "non-int index"}
	}
	idx := int(i.AsInt().Int64())
	if idx < 0 || idx >= len(a.Elements) {
		return 0, &IndexOutOfRangeError{Kind: "array", Index: i}
	}
	return idx, nil
}

func (a *VanillaArray) GetIndex(i Value) (Value, error) {
	idx, err := a.indexOf(i)
	if err != nil {
		return Void, err
	}
	return a.Elements[idx], nil
}

func (a *VanillaArray) SetIndex(i Value, v Value) error {
	idx, err := a.indexOf(i)
	if err != nil {
		return err
	}
	a.Elements[idx] = v
	return nil
}

func (a *VanillaArray) MutIndex(i Value, op string, lazy Lazy) (Value, error) {
	idx, err := a.indexOf(i)
	if err != nil {
		return Void, err
	}
	_, updated, err := applyMutate(a.Elements[idx], op, lazy)
	if err != nil {
		return Void, err
	}
	a.Elements[idx] = updated
	return updated, nil
}

func (a *VanillaArray) DelIndex(i Value) error {
	idx, err := a.indexOf(i)
	if err != nil {
		return err
	}
	a.Elements = append(a.Elements[:idx], a.Elements[idx+1:]...)
	return nil
}

func (a *VanillaArray) GetIterator() (func() (Value, error), error) {
	i := 0
	return func() (Value, error) {
		if i >= len(a.Elements) {
			return Void, nil
		}
		v := a.Elements[i]
		i++
		return v, nil
	}, nil
}

func (a *VanillaArray) Invoke(runner Runner, args []Value) (Value, error) {
	return Void, &UnsupportedOperationError{Kind: "array", Operation: "invoke"}
}

func (a *VanillaArray) ToUnderlying() any { return a }

func (a *VanillaArray) ToString(opts FormatOptions) string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.ToDebug()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (a *VanillaArray) ToDebug() string   { return a.ToString(FormatOptions{}) }
func (a *VanillaArray) Describe() string  { return "array" }

// arrayMethods are the VanillaArray built-in methods of SPEC_FULL.md §3
// ("Array/Object method surface"), grounded on the teacher's
// internal/interp/runtime/array_helpers.go.
var arrayMethods = map[string]func(receiver Value, args []Value) (Value, error){
	"push": func(receiver Value, args []Value) (Value, error) {
		arr := receiver.AsProxy().(*VanillaArray)
		arr.Elements = append(arr.Elements, args...)
		return IntFromInt64(int64(len(arr.Elements))), nil
	},
	"pop": func(receiver Value, args []Value) (Value, error) {
		arr := receiver.AsProxy().(*VanillaArray)
		if len(arr.Elements) == 0 {
			return Null, nil
		}
		last := arr.Elements[len(arr.Elements)-1]
		arr.Elements = arr.Elements[:len(arr.Elements)-1]
		return last, nil
	},
	"indexOf": func(receiver Value, args []Value) (Value, error) {
		arr := receiver.AsProxy().(*VanillaArray)
		if len(args) == 0 {
			return IntFromInt64(-1), nil
		}
		for i, e := range arr.Elements {
			if Equal(e, args[0]) {
				return IntFromInt64(int64(i)), nil
			}
		}
		return IntFromInt64(-1), nil
	},
	"slice": func(receiver Value, args []Value) (Value, error) {
		arr := receiver.AsProxy().(*VanillaArray)
		start, end := sliceBounds(len(arr.Elements), args)
		out := make([]Value, 0, end-start)
		if start < end {
			out = append(out, arr.Elements[start:end]...)
		}
		return FromProxy(NewVanillaArray(out)), nil
	},
	"join": func(receiver Value, args []Value) (Value, error) {
		arr := receiver.AsProxy().(*VanillaArray)
		sep := ","
		if len(args) > 0 && args[0].Kind() == KindString {
			sep = args[0].AsString()
		}
		parts := make([]string, len(arr.Elements))
		for i, e := range arr.Elements {
			parts[i] = e.ToString(FormatOptions{})
		}
		return String(strings.Join(parts, sep)), nil
	},
	"reverse": func(receiver Value, args []Value) (Value, error) {
		arr := receiver.AsProxy().(*VanillaArray)
		for l, r := 0, len(arr.Elements)-1; l < r; l, r = l+1, r-1 {
			arr.Elements[l], arr.Elements[r] = arr.Elements[r], arr.Elements[l]
		}
		return receiver, nil
	},
	"sort": func(receiver Value, args []Value) (Value, error) {
		arr := receiver.AsProxy().(*VanillaArray)
		if len(args) > 0 && args[0].Kind() == KindProxy {
			cmp := args[0].AsProxy()
			sortWithComparator(arr.Elements, func(a, b Value) (int, error) {
				r, err := cmp.Invoke(nil, []Value{a, b})
				if err != nil {
					return 0, err
				}
				if r.Kind() != KindInt {
					return 0, &UnsupportedOperationError{Kind: "array", Operation: "sort comparator must return int"}
				}
				return int(r.AsInt().Int64()), nil
			})
			return receiver, nil
		}
		sortWithComparator(arr.Elements, func(a, b Value) (int, error) {
			c, err := Compare(a, b)
			if err != nil {
				return stringsCompareRunes(a.AsRunes(), b.AsRunes()), nil
			}
			return c, nil
		})
		return receiver, nil
	},
}

func sliceBounds(n int, args []Value) (int, int) {
	start, end := 0, n
	if len(args) > 0 {
		start = normalizeIndex(int(args[0].AsInt().Int64()), n)
	}
	if len(args) > 1 {
		end = normalizeIndex(int(args[1].AsInt().Int64()), n)
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return start, end
}

func normalizeIndex(i, n int) int {
	if i < 0 {
		return n + i
	}
	return i
}

func sortWithComparator(elems []Value, cmp func(a, b Value) (int, error)) {
	// Insertion sort: elements count in scripting contexts is small and a
	// comparator that can error doesn't fit sort.Slice's panicking contract.
	for i := 1; i < len(elems); i++ {
		for j := i; j > 0; j-- {
			c, err := cmp(elems[j-1], elems[j])
			if err != nil || c <= 0 {
				break
			}
			elems[j-1], elems[j] = elems[j], elems[j-1]
		}
	}
}

// EnsureBigIntIndex is a helper for the linker/runtime to build an Int
// index Value from a plain int (array/string indexing).
func EnsureBigIntIndex(i int) Value {
	return Int(big.NewInt(int64(i)))
}
