package runtime

import (
	"github.com/cwbudde/egg/internal/diag"
	"github.com/cwbudde/egg/internal/value"
)

// VariableTarget delegates mutation to the symbol table (spec.md §4.7:
// "variable target delegates to symbolSet or symbolMut").
type VariableTarget struct {
	Loc  diag.Location
	Name string
}

func (v *VariableTarget) Location() diag.Location { return v.Loc }

func (v *VariableTarget) Modify(r *Runner, op string, lazy func() (value.Value, error)) (value.Value, error) {
	entry, ok := r.Table.Find(v.Name)
	if !ok {
		return value.Void, NewRuntimeError("Undefined identifier '" + v.Name + "'").WithLocation(v.Loc)
	}
	lazyFn := value.Lazy(lazy)
	prev, updated, err := applyMutate(entry.Value, op, lazyFn)
	if err != nil {
		return value.Void, wrapRuntimeErr(err, v.Loc)
	}
	updated = updated.CompatibleWith(entry.Type)
	if setErr := r.Table.Set(v.Name, updated); setErr != nil {
		return value.Void, NewRuntimeError(setErr.Error()).WithLocation(v.Loc)
	}
	return prev, nil
}

// PropertyTarget delegates mutation to the receiver's Proxy. String
// receivers reject property modification (spec.md §4.7).
type PropertyTarget struct {
	Loc      diag.Location
	Receiver Evaluator
	Name     string
}

func (p *PropertyTarget) Location() diag.Location { return p.Loc }

func (p *PropertyTarget) Modify(r *Runner, op string, lazy func() (value.Value, error)) (value.Value, error) {
	recv, err := p.Receiver.Evaluate(r)
	if err != nil {
		return value.Void, err
	}
	proxy := recv.AsProxy()
	if proxy == nil {
		return value.Void, NewRuntimeError("Value of kind " + recv.Kind().String() + " has no properties").WithLocation(p.Loc)
	}
	prev, err := proxy.MutProperty(p.Name, op, value.Lazy(lazy))
	if err != nil {
		return value.Void, wrapRuntimeErr(err, p.Loc)
	}
	return prev, nil
}

// IndexTarget delegates mutation to the receiver's Proxy.
type IndexTarget struct {
	Loc      diag.Location
	Receiver Evaluator
	Index    Evaluator
}

func (e *IndexTarget) Location() diag.Location { return e.Loc }

func (e *IndexTarget) Modify(r *Runner, op string, lazy func() (value.Value, error)) (value.Value, error) {
	recv, err := e.Receiver.Evaluate(r)
	if err != nil {
		return value.Void, err
	}
	idx, err := e.Index.Evaluate(r)
	if err != nil {
		return value.Void, err
	}
	proxy := recv.AsProxy()
	if proxy == nil {
		return value.Void, NewRuntimeError("Value of kind " + recv.Kind().String() + " is not indexable").WithLocation(e.Loc)
	}
	prev, err := proxy.MutIndex(idx, op, value.Lazy(lazy))
	if err != nil {
		return value.Void, wrapRuntimeErr(err, e.Loc)
	}
	return prev, nil
}

// applyMutate implements spec.md §4.3's mutate(op, lazy) for plain
// (non-Proxy) values held directly in a symbol table slot: "=" assigns,
// "++"/"--" nudge Int, compound ops delegate to Binary.
func applyMutate(current value.Value, op string, lazy value.Lazy) (previous, updated value.Value, err error) {
	switch op {
	case "=":
		rhs, err := lazy()
		if err != nil {
			return value.Void, value.Void, err
		}
		return current, rhs, nil
	case "++", "--":
		return value.Nudge(current, op == "++")
	default:
		rhs, err := lazy()
		if err != nil {
			return value.Void, value.Void, err
		}
		base := op[:len(op)-1]
		result, err := value.Binary(base, current, rhs)
		if err != nil {
			return value.Void, value.Void, err
		}
		return current, result, nil
	}
}
