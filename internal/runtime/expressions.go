package runtime

import (
	"math/big"

	"github.com/cwbudde/egg/internal/diag"
	"github.com/cwbudde/egg/internal/types"
	"github.com/cwbudde/egg/internal/value"
)

// Literal is a constant scalar (null/bool/int/float/string), carrying
// its pre-computed Value.
type Literal struct {
	Loc   diag.Location
	Val   value.Value
	Typed types.Type
}

func (l *Literal) Location() diag.Location   { return l.Loc }
func (l *Literal) ResolvedType() types.Type  { return l.Typed }
func (l *Literal) Evaluate(*Runner) (value.Value, error) { return l.Val, nil }

// NewIntLiteral builds a Literal from a decimal digit string (spec.md
// §3: Int is arbitrary-precision).
func NewIntLiteral(loc diag.Location, raw string) *Literal {
	n := new(big.Int)
	n.SetString(raw, 10)
	return &Literal{Loc: loc, Val: value.Int(n), Typed: types.INT}
}

// VariableGet reads an identifier's current value from the symbol
// table (spec.md §4.6: "each ValueVariableGet… resolves to a symbol").
type VariableGet struct {
	Loc   diag.Location
	Name  string
	Typed types.Type
}

func (v *VariableGet) Location() diag.Location  { return v.Loc }
func (v *VariableGet) ResolvedType() types.Type { return v.Typed }

func (v *VariableGet) Evaluate(r *Runner) (value.Value, error) {
	entry, ok := r.Table.Find(v.Name)
	if !ok {
		return value.Void, NewRuntimeError("Undefined identifier '" + v.Name + "'").WithLocation(v.Loc)
	}
	return entry.Value, nil
}

// PropertyGet is postfix `.identifier` read access, delegated to the
// receiver's Proxy.
type PropertyGet struct {
	Loc      diag.Location
	Receiver Evaluator
	Name     string
	Typed    types.Type
}

func (p *PropertyGet) Location() diag.Location  { return p.Loc }
func (p *PropertyGet) ResolvedType() types.Type { return p.Typed }

func (p *PropertyGet) Evaluate(r *Runner) (value.Value, error) {
	recv, err := p.Receiver.Evaluate(r)
	if err != nil {
		return value.Void, err
	}
	if recv.Kind() == value.KindString {
		v, err := value.StringGetProperty(recv, p.Name)
		if err != nil {
			return value.Void, wrapRuntimeErr(err, p.Loc)
		}
		return v, nil
	}
	proxy := recv.AsProxy()
	if proxy == nil {
		return value.Void, NewRuntimeError("Value of kind " + recv.Kind().String() + " has no properties").WithLocation(p.Loc)
	}
	v, err := proxy.GetProperty(p.Name)
	if err != nil {
		return value.Void, wrapRuntimeErr(err, p.Loc)
	}
	return v, nil
}

// IndexGet is postfix `[expr]` read access, delegated to the
// receiver's Proxy.
type IndexGet struct {
	Loc      diag.Location
	Receiver Evaluator
	Index    Evaluator
	Typed    types.Type
}

func (e *IndexGet) Location() diag.Location  { return e.Loc }
func (e *IndexGet) ResolvedType() types.Type { return e.Typed }

func (e *IndexGet) Evaluate(r *Runner) (value.Value, error) {
	recv, err := e.Receiver.Evaluate(r)
	if err != nil {
		return value.Void, err
	}
	idx, err := e.Index.Evaluate(r)
	if err != nil {
		return value.Void, err
	}
	if recv.Kind() == value.KindString {
		v, err := value.StringGetIndex(recv, idx)
		if err != nil {
			return value.Void, wrapRuntimeErr(err, e.Loc)
		}
		return v, nil
	}
	proxy := recv.AsProxy()
	if proxy == nil {
		return value.Void, NewRuntimeError("Value of kind " + recv.Kind().String() + " is not indexable").WithLocation(e.Loc)
	}
	v, err := proxy.GetIndex(idx)
	if err != nil {
		return value.Void, wrapRuntimeErr(err, e.Loc)
	}
	return v, nil
}

// Unary covers prefix `!` and `-`.
type Unary struct {
	Loc     diag.Location
	Op      string
	Operand Evaluator
	Typed   types.Type
}

func (u *Unary) Location() diag.Location  { return u.Loc }
func (u *Unary) ResolvedType() types.Type { return u.Typed }

func (u *Unary) Evaluate(r *Runner) (value.Value, error) {
	v, err := u.Operand.Evaluate(r)
	if err != nil {
		return value.Void, err
	}
	switch u.Op {
	case "!":
		return value.Bool(!v.AsBool()), nil
	case "-":
		zero, err := zeroLike(v)
		if err != nil {
			return value.Void, wrapRuntimeErr(err, u.Loc)
		}
		neg, err := value.Sub(zero, v)
		if err != nil {
			return value.Void, wrapRuntimeErr(err, u.Loc)
		}
		return neg, nil
	default:
		return value.Void, NewRuntimeError("Unknown unary operator '" + u.Op + "'").WithLocation(u.Loc)
	}
}

func zeroLike(v value.Value) (value.Value, error) {
	if v.Kind() == value.KindFloat {
		return value.Float(0), nil
	}
	return value.IntFromInt64(0), nil
}

// Binary covers every infix operator of spec.md §4.2/§4.3, dispatched
// to internal/value's Binary.
type Binary struct {
	Loc   diag.Location
	Op    string
	Left  Evaluator
	Right Evaluator
	Typed types.Type
}

func (b *Binary) Location() diag.Location  { return b.Loc }
func (b *Binary) ResolvedType() types.Type { return b.Typed }

func (b *Binary) Evaluate(r *Runner) (value.Value, error) {
	if b.Op == "&&" || b.Op == "||" {
		return b.evaluateShortCircuit(r)
	}
	l, err := b.Left.Evaluate(r)
	if err != nil {
		return value.Void, err
	}
	rv, err := b.Right.Evaluate(r)
	if err != nil {
		return value.Void, err
	}
	out, err := value.Binary(b.Op, l, rv)
	if err != nil {
		return value.Void, wrapRuntimeErr(err, b.Loc)
	}
	return out, nil
}

// evaluateShortCircuit implements left-to-right short-circuit
// evaluation for && and || (spec.md §5).
func (b *Binary) evaluateShortCircuit(r *Runner) (value.Value, error) {
	l, err := b.Left.Evaluate(r)
	if err != nil {
		return value.Void, err
	}
	lb := l.AsBool()
	if b.Op == "&&" && !lb {
		return value.False, nil
	}
	if b.Op == "||" && lb {
		return value.True, nil
	}
	rv, err := b.Right.Evaluate(r)
	if err != nil {
		return value.Void, err
	}
	return value.Bool(rv.AsBool()), nil
}

// Ternary is the right-associative `cond ? then : else`; both arms are
// evaluated lazily (spec.md §4.7).
type Ternary struct {
	Loc   diag.Location
	Cond  Evaluator
	Then  Evaluator
	Else  Evaluator
	Typed types.Type
}

func (t *Ternary) Location() diag.Location  { return t.Loc }
func (t *Ternary) ResolvedType() types.Type { return t.Typed }

func (t *Ternary) Evaluate(r *Runner) (value.Value, error) {
	cond, err := t.Cond.Evaluate(r)
	if err != nil {
		return value.Void, err
	}
	if cond.Kind() != value.KindBool {
		return value.Void, NewRuntimeError("Ternary condition must be a bool").WithLocation(t.Loc)
	}
	if cond.AsBool() {
		return t.Then.Evaluate(r)
	}
	return t.Else.Evaluate(r)
}

// ArrayLit evaluates its elements left-to-right, forbidding Void
// sub-values (spec.md §4.7).
type ArrayLit struct {
	Loc      diag.Location
	Elements []Evaluator
	Typed    types.Type
}

func (a *ArrayLit) Location() diag.Location  { return a.Loc }
func (a *ArrayLit) ResolvedType() types.Type { return a.Typed }

func (a *ArrayLit) Evaluate(r *Runner) (value.Value, error) {
	elems := make([]value.Value, len(a.Elements))
	for i, e := range a.Elements {
		v, err := e.Evaluate(r)
		if err != nil {
			return value.Void, err
		}
		if v.IsVoid() {
			return value.Void, NewRuntimeError("Array element must not be void").WithLocation(a.Loc)
		}
		elems[i] = v
	}
	return value.FromProxy(value.NewVanillaArray(elems)), nil
}

// ObjectLit evaluates its entries left-to-right, forbidding Void
// sub-values (spec.md §4.7).
type ObjectLit struct {
	Loc     diag.Location
	Keys    []string
	Entries []Evaluator
	Typed   types.Type
}

func (o *ObjectLit) Location() diag.Location  { return o.Loc }
func (o *ObjectLit) ResolvedType() types.Type { return o.Typed }

func (o *ObjectLit) Evaluate(r *Runner) (value.Value, error) {
	obj := value.NewVanillaObject()
	for i, e := range o.Entries {
		v, err := e.Evaluate(r)
		if err != nil {
			return value.Void, err
		}
		if v.IsVoid() {
			return value.Void, NewRuntimeError("Object value must not be void").WithLocation(o.Loc)
		}
		obj.Fields.Set(value.String(o.Keys[i]), v)
	}
	return value.FromProxy(obj), nil
}

// Call invokes a callable value; the callee's Proxy must support
// `invoke` (spec.md §4.3).
type Call struct {
	Loc    diag.Location
	Callee Evaluator
	Args   []Evaluator
	Typed  types.Type
}

func (c *Call) Location() diag.Location  { return c.Loc }
func (c *Call) ResolvedType() types.Type { return c.Typed }

func (c *Call) Evaluate(r *Runner) (value.Value, error) {
	callee, err := c.Callee.Evaluate(r)
	if err != nil {
		return value.Void, err
	}
	args := make([]value.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := a.Evaluate(r)
		if err != nil {
			return value.Void, err
		}
		args[i] = v
	}
	proxy := callee.AsProxy()
	if proxy == nil {
		return value.Void, NewRuntimeError("Value of kind " + callee.Kind().String() + " is not callable").WithLocation(c.Loc)
	}
	out, err := proxy.Invoke(r, args)
	if err != nil {
		return value.Void, wrapRuntimeErr(err, c.Loc)
	}
	return out, nil
}

// wrapRuntimeErr promotes a plain error (from internal/value's Proxy or
// arithmetic operations) into a located RuntimeError, or passes through
// an already-located RuntimeError unchanged (first setter wins).
func wrapRuntimeErr(err error, loc diag.Location) error {
	if re, ok := err.(*RuntimeError); ok {
		return re.WithLocation(loc)
	}
	return NewRuntimeError(err.Error()).WithLocation(loc)
}
