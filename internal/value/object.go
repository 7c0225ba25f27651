package value

import "strings"

// VanillaObject is the default in-memory Proxy implementation of an
// object value (spec.md §4.3): a ValueMap keyed by Value's canonical key,
// preserving insertion order for iteration. Property access treats the
// map's keys as strings (object literal keys are always identifiers or
// string literals); GetIndex/SetIndex treat it as a general Value->Value
// map, matching "object" acting as both record and dictionary.
type VanillaObject struct {
	Fields *ValueMap
}

// NewVanillaObject builds an empty VanillaObject.
func NewVanillaObject() *VanillaObject {
	return &VanillaObject{Fields: NewValueMap()}
}

var _ Proxy = (*VanillaObject)(nil)

func (o *VanillaObject) GetProperty(name string) (Value, error) {
	if v, ok := o.Fields.Get(String(name)); ok {
		return v, nil
	}
	if m, ok := objectMethods[name]; ok {
		return FromProxy(&StringMethod{Name: name, Receiver: FromProxy(o), Fn: m}), nil
	}
	return Void, &UnknownPropertyError{Kind: "object", Name: name}
}

func (o *VanillaObject) SetProperty(name string, v Value) error {
	o.Fields.Set(String(name), v)
	return nil
}

func (o *VanillaObject) MutProperty(name string, op string, lazy Lazy) (Value, error) {
	current, _ := o.Fields.Get(String(name))
	_, updated, err := applyMutate(current, op, lazy)
	if err != nil {
		return Void, err
	}
	o.Fields.Set(String(name), updated)
	return updated, nil
}

func (o *VanillaObject) DelProperty(name string) error {
	o.Fields.Delete(String(name))
	return nil
}

func (o *VanillaObject) GetIndex(i Value) (Value, error) {
	if v, ok := o.Fields.Get(i); ok {
		return v, nil
	}
	return Null, nil
}

func (o *VanillaObject) SetIndex(i Value, v Value) error {
	o.Fields.Set(i, v)
	return nil
}

func (o *VanillaObject) MutIndex(i Value, op string, lazy Lazy) (Value, error) {
	current, _ := o.Fields.Get(i)
	_, updated, err := applyMutate(current, op, lazy)
	if err != nil {
		return Void, err
	}
	o.Fields.Set(i, updated)
	return updated, nil
}

func (o *VanillaObject) DelIndex(i Value) error {
	o.Fields.Delete(i)
	return nil
}

func (o *VanillaObject) GetIterator() (func() (Value, error), error) {
	entries := o.Fields.Chronological()
	i := 0
	return func() (Value, error) {
		if i >= len(entries) {
			return Void, nil
		}
		v := entries[i].Value
		i++
		return v, nil
	}, nil
}

func (o *VanillaObject) Invoke(runner Runner, args []Value) (Value, error) {
	return Void, &UnsupportedOperationError{Kind: "object", Operation: "invoke"}
}

func (o *VanillaObject) ToUnderlying() any { return o }

func (o *VanillaObject) ToString(opts FormatOptions) string {
	entries := o.Fields.Chronological()
	parts := make([]string, len(entries))
	for i, kv := range entries {
		parts[i] = kv.Key.ToString(FormatOptions{}) + ": " + kv.Value.ToDebug()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (o *VanillaObject) ToDebug() string  { return o.ToString(FormatOptions{}) }
func (o *VanillaObject) Describe() string { return "object" }

// objectMethods are the VanillaObject built-in methods of SPEC_FULL.md §3,
// mirroring ValueMap's chronological/ordered iteration.
var objectMethods = map[string]func(receiver Value, args []Value) (Value, error){
	"keys": func(receiver Value, args []Value) (Value, error) {
		obj := receiver.AsProxy().(*VanillaObject)
		entries := obj.Fields.Chronological()
		out := make([]Value, len(entries))
		for i, kv := range entries {
			out[i] = kv.Key
		}
		return FromProxy(NewVanillaArray(out)), nil
	},
	"values": func(receiver Value, args []Value) (Value, error) {
		obj := receiver.AsProxy().(*VanillaObject)
		entries := obj.Fields.Chronological()
		out := make([]Value, len(entries))
		for i, kv := range entries {
			out[i] = kv.Value
		}
		return FromProxy(NewVanillaArray(out)), nil
	},
	"entries": func(receiver Value, args []Value) (Value, error) {
		obj := receiver.AsProxy().(*VanillaObject)
		entries := obj.Fields.Chronological()
		out := make([]Value, len(entries))
		for i, kv := range entries {
			pair := NewVanillaArray([]Value{kv.Key, kv.Value})
			out[i] = FromProxy(pair)
		}
		return FromProxy(NewVanillaArray(out)), nil
	},
	"has": func(receiver Value, args []Value) (Value, error) {
		obj := receiver.AsProxy().(*VanillaObject)
		if len(args) == 0 {
			return Bool(false), nil
		}
		return Bool(obj.Fields.Has(args[0])), nil
	},
}
