package value

// RuntimeException is the Proxy wrapping a raised runtime error's
// metadata (spec.md §4.3): message/origin/parameters exposed as
// properties so catch handlers can inspect the caught value. Its
// RuntimeType is Object (it is caught/bound through the ordinary Any/
// Object typed-catch machinery), but it also satisfies Go's error
// interface so the runtime can propagate it as a normal Go error.
type RuntimeException struct {
	Message string
	Origin  string
	Params  map[string]Value
	fields  *ValueMap
}

// NewRuntimeException builds a RuntimeException with the given message
// and origin tag (spec.md §7: "Runtime errors... catchable by the
// program").
func NewRuntimeException(message, origin string) *RuntimeException {
	e := &RuntimeException{Message: message, Origin: origin, Params: map[string]Value{}}
	e.rebuildFields()
	return e
}

func (e *RuntimeException) rebuildFields() {
	e.fields = NewValueMap()
	e.fields.Set(String("message"), String(e.Message))
	e.fields.Set(String("origin"), String(e.Origin))
	for k, v := range e.Params {
		e.fields.Set(String(k), v)
	}
}

// WithParam attaches a named parameter (e.g. "name", "value") to the
// exception, mirroring spec.md §3's Message parameter map.
func (e *RuntimeException) WithParam(name string, v Value) *RuntimeException {
	e.Params[name] = v
	e.rebuildFields()
	return e
}

// Error implements error, so a RuntimeException can be returned/wrapped
// through ordinary Go error-handling paths inside the runtime.
func (e *RuntimeException) Error() string {
	return e.Message
}

var _ Proxy = (*RuntimeException)(nil)

func (e *RuntimeException) GetProperty(name string) (Value, error) {
	if v, ok := e.fields.Get(String(name)); ok {
		return v, nil
	}
	return Void, &UnknownPropertyError{Kind: "exception", Name: name}
}
func (e *RuntimeException) SetProperty(name string, v Value) error {
	return &UnsupportedOperationError{Kind: "exception", Operation: "setProperty"}
}
func (e *RuntimeException) MutProperty(name string, op string, lazy Lazy) (Value, error) {
	return Void, &UnsupportedOperationError{Kind: "exception", Operation: "mutProperty"}
}
func (e *RuntimeException) DelProperty(name string) error {
	return &UnsupportedOperationError{Kind: "exception", Operation: "delProperty"}
}
func (e *RuntimeException) GetIndex(i Value) (Value, error) {
	return Void, &UnsupportedOperationError{Kind: "exception", Operation: "getIndex"}
}
func (e *RuntimeException) SetIndex(i Value, v Value) error {
	return &UnsupportedOperationError{Kind: "exception", Operation: "setIndex"}
}
func (e *RuntimeException) MutIndex(i Value, op string, lazy Lazy) (Value, error) {
	return Void, &UnsupportedOperationError{Kind: "exception", Operation: "mutIndex"}
}
func (e *RuntimeException) DelIndex(i Value) error {
	return &UnsupportedOperationError{Kind: "exception", Operation: "delIndex"}
}
func (e *RuntimeException) GetIterator() (func() (Value, error), error) {
	return nil, &UnsupportedOperationError{Kind: "exception", Operation: "getIterator"}
}
func (e *RuntimeException) Invoke(runner Runner, args []Value) (Value, error) {
	return Void, &UnsupportedOperationError{Kind: "exception", Operation: "invoke"}
}
func (e *RuntimeException) ToUnderlying() any { return e }
func (e *RuntimeException) ToString(opts FormatOptions) string {
	return e.Message
}
func (e *RuntimeException) ToDebug() string  { return "<" + e.Origin + "> " + e.Message }
func (e *RuntimeException) Describe() string { return "exception " + e.Message }

// AsRuntimeException extracts the RuntimeException from a Value produced
// by raising a runtime error, if v is one.
func AsRuntimeException(v Value) (*RuntimeException, bool) {
	if v.Kind() != KindProxy {
		return nil, false
	}
	exc, ok := v.AsProxy().(*RuntimeException)
	return exc, ok
}
