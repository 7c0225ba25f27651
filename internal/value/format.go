package value

import (
	"strconv"
	"strings"
)

// FormatOptions configures Value.ToString, mirroring the "options" bag
// spec.md §4.3 attaches to Proxy.toString.
type FormatOptions struct {
	// Quote wraps Strings in double quotes (used by toDebug/describe).
	Quote bool
}

// ToString renders v as the user-visible text print(...) emits, per
// spec.md §4.8 ("the concatenation of its arguments' toString outputs").
func (v Value) ToString(opts FormatOptions) string {
	switch v.kind {
	case KindVoid:
		return ""
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return v.i.String()
	case KindFloat:
		return FormatFloat(v.f)
	case KindString:
		if opts.Quote {
			return strconv.Quote(string(v.s))
		}
		return string(v.s)
	case KindProxy:
		return v.p.ToString(opts)
	default:
		return ""
	}
}

// ToDebug renders v for diagnostic/debug display: strings are quoted and
// proxies render their own ToDebug form.
func (v Value) ToDebug() string {
	if v.kind == KindString {
		return v.ToString(FormatOptions{Quote: true})
	}
	if v.kind == KindProxy {
		return v.p.ToDebug()
	}
	return v.ToString(FormatOptions{})
}

// Describe renders a short human description of v's kind and value.
// Assertion failure messages use ToString, not Describe.
func (v Value) Describe() string {
	if v.kind == KindProxy {
		return v.p.Describe()
	}
	return v.Kind().String() + " " + v.ToDebug()
}

// FormatFloat implements spec.md §8's boundary behaviour: strip trailing
// zeroes but preserve ".0" for integral values and exponent forms.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		if !strings.Contains(s[:i], ".") {
			return s[:i] + ".0" + s[i:]
		}
		return s
	}
	if !strings.Contains(s, ".") {
		return s + ".0"
	}
	return s
}
