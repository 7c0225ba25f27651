package value

// VanillaFunction extends VanillaObject with Invoke delegating to a
// caller-supplied closure (spec.md §4.3). The closure is bound by the
// linker/runtime over a FunctionDefinition (signature + callsite
// closure); this package stays free of any runtime-node dependency.
type VanillaFunction struct {
	VanillaObject
	Name string
	Fn   func(runner Runner, args []Value) (Value, error)
}

// NewVanillaFunction builds a VanillaFunction wrapping fn.
func NewVanillaFunction(name string, fn func(runner Runner, args []Value) (Value, error)) *VanillaFunction {
	return &VanillaFunction{VanillaObject: *NewVanillaObject(), Name: name, Fn: fn}
}

var _ Proxy = (*VanillaFunction)(nil)

func (f *VanillaFunction) Invoke(runner Runner, args []Value) (Value, error) {
	return f.Fn(runner, args)
}

func (f *VanillaFunction) ToUnderlying() any { return f }

func (f *VanillaFunction) ToString(opts FormatOptions) string {
	return "function " + f.Name
}

func (f *VanillaFunction) ToDebug() string  { return f.ToString(FormatOptions{}) }
func (f *VanillaFunction) Describe() string { return "function " + f.Name }

// StringMethod is an ad-hoc proxy wrapping (receiver, arguments) -> Value
// for built-in string/array/object methods (spec.md §4.3): it is only
// ever invoked, never indexed or iterated.
type StringMethod struct {
	Name     string
	Receiver Value
	Fn       func(receiver Value, args []Value) (Value, error)
}

var _ Proxy = (*StringMethod)(nil)

func (s *StringMethod) GetProperty(name string) (Value, error) {
	return Void, &UnknownPropertyError{Kind: "method", Name: name}
}
func (s *StringMethod) SetProperty(name string, v Value) error {
	return &UnsupportedOperationError{Kind: "method", Operation: "setProperty"}
}
func (s *StringMethod) MutProperty(name string, op string, lazy Lazy) (Value, error) {
	return Void, &UnsupportedOperationError{Kind: "method", Operation: "mutProperty"}
}
func (s *StringMethod) DelProperty(name string) error {
	return &UnsupportedOperationError{Kind: "method", Operation: "delProperty"}
}
func (s *StringMethod) GetIndex(i Value) (Value, error) {
	return Void, &UnsupportedOperationError{Kind: "method", Operation: "getIndex"}
}
func (s *StringMethod) SetIndex(i Value, v Value) error {
	return &UnsupportedOperationError{Kind: "method", Operation: "setIndex"}
}
func (s *StringMethod) MutIndex(i Value, op string, lazy Lazy) (Value, error) {
	return Void, &UnsupportedOperationError{Kind: "method", Operation: "mutIndex"}
}
func (s *StringMethod) DelIndex(i Value) error {
	return &UnsupportedOperationError{Kind: "method", Operation: "delIndex"}
}
func (s *StringMethod) GetIterator() (func() (Value, error), error) {
	return nil, &UnsupportedOperationError{Kind: "method", Operation: "getIterator"}
}
func (s *StringMethod) Invoke(runner Runner, args []Value) (Value, error) {
	return s.Fn(s.Receiver, args)
}
func (s *StringMethod) ToUnderlying() any { return s }
func (s *StringMethod) ToString(opts FormatOptions) string {
	return "method " + s.Name
}
func (s *StringMethod) ToDebug() string  { return s.ToString(FormatOptions{}) }
func (s *StringMethod) Describe() string { return "method " + s.Name }

// Manifestation is a static namespace proxy for a type name ("string",
// "object", "type", "math"): properties map to further manifestations or
// bound methods; some are also invokable (spec.md §4.3).
type Manifestation struct {
	Name       string
	Properties map[string]Value
	Call       func(runner Runner, args []Value) (Value, error)
}

// NewManifestation builds a Manifestation with the given static members.
func NewManifestation(name string, properties map[string]Value, call func(runner Runner, args []Value) (Value, error)) *Manifestation {
	return &Manifestation{Name: name, Properties: properties, Call: call}
}

var _ Proxy = (*Manifestation)(nil)

func (m *Manifestation) GetProperty(name string) (Value, error) {
	if v, ok := m.Properties[name]; ok {
		return v, nil
	}
	return Void, &UnknownPropertyError{Kind: "manifestation " + m.Name, Name: name}
}
func (m *Manifestation) SetProperty(name string, v Value) error {
	return &UnsupportedOperationError{Kind: "manifestation", Operation: "setProperty"}
}
func (m *Manifestation) MutProperty(name string, op string, lazy Lazy) (Value, error) {
	return Void, &UnsupportedOperationError{Kind: "manifestation", Operation: "mutProperty"}
}
func (m *Manifestation) DelProperty(name string) error {
	return &UnsupportedOperationError{Kind: "manifestation", Operation: "delProperty"}
}
func (m *Manifestation) GetIndex(i Value) (Value, error) {
	return Void, &UnsupportedOperationError{Kind: "manifestation", Operation: "getIndex"}
}
func (m *Manifestation) SetIndex(i Value, v Value) error {
	return &UnsupportedOperationError{Kind: "manifestation", Operation: "setIndex"}
}
func (m *Manifestation) MutIndex(i Value, op string, lazy Lazy) (Value, error) {
	return Void, &UnsupportedOperationError{Kind: "manifestation", Operation: "mutIndex"}
}
func (m *Manifestation) DelIndex(i Value) error {
	return &UnsupportedOperationError{Kind: "manifestation", Operation: "delIndex"}
}
func (m *Manifestation) GetIterator() (func() (Value, error), error) {
	return nil, &UnsupportedOperationError{Kind: "manifestation", Operation: "getIterator"}
}
func (m *Manifestation) Invoke(runner Runner, args []Value) (Value, error) {
	if m.Call == nil {
		return Void, &UnsupportedOperationError{Kind: "manifestation " + m.Name, Operation: "invoke"}
	}
	return m.Call(runner, args)
}
func (m *Manifestation) ToUnderlying() any { return m }
func (m *Manifestation) ToString(opts FormatOptions) string {
	return m.Name
}
func (m *Manifestation) ToDebug() string  { return m.ToString(FormatOptions{}) }
func (m *Manifestation) Describe() string { return "manifestation " + m.Name }
