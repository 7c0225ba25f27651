package diag

import (
	"fmt"
	"sort"
	"strings"
)

// Origin tags which stage raised a Message, per spec.md §7.
type Origin string

const (
	OriginTokenizer Origin = "Tokenizer"
	OriginParser    Origin = "Parser"
	OriginSyntax    Origin = "Compiler"
	OriginLinker    Origin = "Linker"
	OriginAssertion Origin = "Assertion"
	OriginRuntime   Origin = "Runtime"
)

// Severity is the Logger's entry classification, per spec.md §4.8.
type Severity string

const (
	Print   Severity = "Print"
	Trace   Severity = "Trace"
	Debug   Severity = "Debug"
	Info    Severity = "Info"
	Warning Severity = "Warning"
	Error   Severity = "Error"
)

// Formattable is implemented by values that know how to render themselves
// into a parameter substitution (spec.md §3's Message).
type Formattable interface {
	Format() string
}

// Message is a reason template with named parameters, substituted via
// "{name}" placeholders, plus the structured fields every diagnostic
// carries: origin, location, and severity.
type Message struct {
	Origin   Origin
	Severity Severity
	Reason   string
	Location Location
	Params   map[string]any
}

// NewMessage builds a Message with an empty parameter set.
func NewMessage(origin Origin, severity Severity, loc Location, reason string) Message {
	return Message{Origin: origin, Severity: severity, Reason: reason, Location: loc}
}

// With returns a copy of m with the given parameter set, for "{name}"
// substitution in Reason.
func (m Message) With(params map[string]any) Message {
	m.Params = params
	return m
}

// Text formats Reason with its Params substituted in, using Format() when
// a parameter implements Formattable, else fmt.Sprint.
func (m Message) Text() string {
	if len(m.Params) == 0 {
		return m.Reason
	}
	out := m.Reason
	keys := make([]string, 0, len(m.Params))
	for k := range m.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		placeholder := "{" + k + "}"
		if !strings.Contains(out, placeholder) {
			continue
		}
		out = strings.ReplaceAll(out, placeholder, formatParam(m.Params[k]))
	}
	return out
}

func formatParam(v any) string {
	if f, ok := v.(Formattable); ok {
		return f.Format()
	}
	return fmt.Sprint(v)
}

// String renders the message per spec.md §6/§7: "source(line,col): message".
func (m Message) String() string {
	loc := m.Location.String()
	if loc == "" {
		return m.Text()
	}
	return loc + ": " + m.Text()
}

// Tagged renders the message with its origin/severity prefix, e.g.
// "<Runtime><Error>source(1,1): message", as used by WriterLogger.
func (m Message) Tagged() string {
	return fmt.Sprintf("<%s><%s>%s", m.Origin, m.Severity, m.String())
}

// Error implements the error interface so fatal-stage messages can be
// returned/wrapped as ordinary Go errors.
func (m Message) Error() string {
	return m.String()
}
