package runtime

import (
	"github.com/cwbudde/egg/internal/diag"
	"github.com/cwbudde/egg/internal/symtab"
	"github.com/cwbudde/egg/internal/types"
	"github.com/cwbudde/egg/internal/value"
)

// Guard binds a fresh variable from Source before testing Cond, used by
// both IfStmt and WhileStmt (spec.md §4.2's shared if-guard/while-guard
// shape: `if (var x = expr) ...` / `while (var x = expr) ...`).
type Guard struct {
	Name   string
	Type   types.Type
	Source Evaluator
}

// bind evaluates Source and adds it to the current (already-pushed)
// frame under Name; the caller owns push/pop.
func (g *Guard) bind(r *Runner) (value.Value, error) {
	v, err := g.Source.Evaluate(r)
	if err != nil {
		return value.Void, err
	}
	v = v.CompatibleWith(g.Type)
	r.Table.Add(g.Name, symtab.Guard, g.Type, v)
	return v, nil
}

// GuardCond evaluates to Bool: whether the named guard binding holds a
// non-Void value (spec.md §4.2's if-guard/while-guard test). The grammar
// parses no explicit condition for the guard form, so the Linker
// synthesizes this node once it has bound the guard's Name.
type GuardCond struct {
	Loc  diag.Location
	Name string
}

func (g *GuardCond) Location() diag.Location { return g.Loc }

func (g *GuardCond) Evaluate(r *Runner) (value.Value, error) {
	entry, ok := r.Table.Find(g.Name)
	if !ok {
		return value.Void, NewRuntimeError("Undefined identifier '" + g.Name + "'").WithLocation(g.Loc)
	}
	return value.Bool(!entry.Value.IsVoid()), nil
}

// IfStmt executes Then or Else depending on Cond, optionally preceded by
// a Guard binding (spec.md §4.2/§4.7). The guard's scope spans both
// branches.
type IfStmt struct {
	Loc   diag.Location
	Guard *Guard
	Cond  Evaluator
	Then  Executor
	Else  Executor // nil if absent
}

func (s *IfStmt) Location() diag.Location { return s.Loc }

func (s *IfStmt) Execute(r *Runner) (Outcome, error) {
	if s.Guard != nil {
		r.Table.Push()
		defer r.Table.Pop()
		if _, err := s.Guard.bind(r); err != nil {
			return Outcome{}, err
		}
	}
	cond, err := s.Cond.Evaluate(r)
	if err != nil {
		return Outcome{}, err
	}
	if cond.Kind() != value.KindBool {
		return Outcome{}, NewRuntimeError("If condition must be a bool").WithLocation(s.Loc)
	}
	if cond.AsBool() {
		return s.Then.Execute(r)
	}
	if s.Else != nil {
		return s.Else.Execute(r)
	}
	return throughOutcome, nil
}

// WhileStmt repeatedly executes Body while Cond holds, optionally
// re-evaluating a Guard each iteration (spec.md §4.2/§4.7).
type WhileStmt struct {
	Loc   diag.Location
	Guard *Guard
	Cond  Evaluator
	Body  Executor
}

func (s *WhileStmt) Location() diag.Location { return s.Loc }

func (s *WhileStmt) Execute(r *Runner) (Outcome, error) {
	for {
		out, cont, err := s.iterate(r)
		if err != nil {
			return Outcome{}, err
		}
		if !cont {
			return out, nil
		}
	}
}

func (s *WhileStmt) iterate(r *Runner) (Outcome, bool, error) {
	r.Table.Push()
	defer r.Table.Pop()

	if s.Guard != nil {
		if _, err := s.Guard.bind(r); err != nil {
			return Outcome{}, false, err
		}
	}
	cond, err := s.Cond.Evaluate(r)
	if err != nil {
		return Outcome{}, false, err
	}
	if cond.Kind() != value.KindBool {
		return Outcome{}, false, NewRuntimeError("While condition must be a bool").WithLocation(s.Loc)
	}
	if !cond.AsBool() {
		return throughOutcome, false, nil
	}
	out, err := s.Body.Execute(r)
	if err != nil {
		return Outcome{}, false, err
	}
	switch out.Flow {
	case Break:
		return throughOutcome, false, nil
	case Return:
		return out, false, nil
	default: // Through, Continue both fall through to the next iteration
		return Outcome{}, true, nil
	}
}

// ForStmt is the C-style `for (init; cond; post) body` (spec.md §4.2):
// Init and the whole loop share one pushed frame so a declared loop
// variable is visible to Cond/Post/Body but not beyond.
type ForStmt struct {
	Loc  diag.Location
	Init Executor  // nil if absent
	Cond Evaluator // nil if absent (always true)
	Post Executor  // nil if absent
	Body Executor
}

func (s *ForStmt) Location() diag.Location { return s.Loc }

func (s *ForStmt) Execute(r *Runner) (Outcome, error) {
	r.Table.Push()
	defer r.Table.Pop()

	if s.Init != nil {
		if _, err := s.Init.Execute(r); err != nil {
			return Outcome{}, err
		}
	}
	for {
		if s.Cond != nil {
			cond, err := s.Cond.Evaluate(r)
			if err != nil {
				return Outcome{}, err
			}
			if cond.Kind() != value.KindBool {
				return Outcome{}, NewRuntimeError("For condition must be a bool").WithLocation(s.Loc)
			}
			if !cond.AsBool() {
				return throughOutcome, nil
			}
		}
		out, err := s.Body.Execute(r)
		if err != nil {
			return Outcome{}, err
		}
		if out.Flow == Break {
			return throughOutcome, nil
		}
		if out.Flow == Return {
			return out, nil
		}
		if s.Post != nil {
			if _, err := s.Post.Execute(r); err != nil {
				return Outcome{}, err
			}
		}
	}
}

// ForeachStmt iterates a String's codepoints (each yielded as a one-rune
// String) or a Proxy's GetIterator pull sequence (spec.md §4.2/§4.3).
type ForeachStmt struct {
	Loc    diag.Location
	Name   string
	Type   types.Type
	Source Evaluator
	Body   Executor
}

func (s *ForeachStmt) Location() diag.Location { return s.Loc }

func (s *ForeachStmt) Execute(r *Runner) (Outcome, error) {
	src, err := s.Source.Evaluate(r)
	if err != nil {
		return Outcome{}, err
	}
	next, err := s.iterator(src)
	if err != nil {
		return Outcome{}, err
	}
	for {
		item, err := next()
		if err != nil {
			return Outcome{}, wrapRuntimeErr(err, s.Loc)
		}
		if item.IsVoid() {
			return throughOutcome, nil
		}
		out, err := s.runBody(r, item)
		if err != nil {
			return Outcome{}, err
		}
		if out.Flow == Break {
			return throughOutcome, nil
		}
		if out.Flow == Return {
			return out, nil
		}
	}
}

func (s *ForeachStmt) iterator(src value.Value) (func() (value.Value, error), error) {
	if src.Kind() == value.KindString {
		runes := src.AsRunes()
		i := 0
		return func() (value.Value, error) {
			if i >= len(runes) {
				return value.Void, nil
			}
			r := runes[i]
			i++
			return value.StringFromRunes([]rune{r}), nil
		}, nil
	}
	proxy := src.AsProxy()
	if proxy == nil {
		return nil, NewRuntimeError("Value of kind " + src.Kind().String() + " is not iterable").WithLocation(s.Loc)
	}
	return proxy.GetIterator()
}

func (s *ForeachStmt) runBody(r *Runner, item value.Value) (Outcome, error) {
	r.Table.Push()
	defer r.Table.Pop()
	r.Table.Add(s.Name, symtab.Variable, s.Type, item.CompatibleWith(s.Type))
	return s.Body.Execute(r)
}

// CatchClause tests a raised exception against Type and, on match, binds
// Name and executes Body (spec.md §4.2/§4.6).
type CatchClause struct {
	Name string
	Type types.Type
	Body *Block
}

// TryStmt executes Body; on a runtime-origin exception it binds
// Runner.caught and tests each CatchClause in declaration order.
// Finally always runs; its Outcome wins over the try/catch outcome if
// non-Through (spec.md §9 Open Question: finally-Return wins).
type TryStmt struct {
	Loc     diag.Location
	Body    *Block
	Catches []CatchClause
	Finally *Block // nil if absent
}

func (s *TryStmt) Location() diag.Location { return s.Loc }

func (s *TryStmt) Execute(r *Runner) (Outcome, error) {
	out, err := s.runBodyAndCatches(r)
	if s.Finally != nil {
		fout, ferr := s.Finally.Execute(r)
		if ferr != nil {
			return Outcome{}, ferr
		}
		if fout.Flow != Through {
			return fout, nil
		}
	}
	return out, err
}

func (s *TryStmt) runBodyAndCatches(r *Runner) (Outcome, error) {
	out, err := s.Body.Execute(r)
	if err == nil {
		return out, nil
	}
	re, ok := err.(*RuntimeError)
	if !ok {
		return Outcome{}, err
	}
	exVal := value.FromProxy(re.Exception)
	for _, c := range s.Catches {
		if !exceptionMatches(re.Exception, c.Type) {
			continue
		}
		return s.runCatch(r, c, exVal)
	}
	return Outcome{}, err
}

func exceptionMatches(ex *value.RuntimeException, t types.Type) bool {
	if t.IsEmpty() {
		return true
	}
	return t.Has(types.Object)
}

func (s *TryStmt) runCatch(r *Runner, c CatchClause, exVal value.Value) (Outcome, error) {
	restore := r.setCaught(exVal)
	defer restore()
	r.Table.Push()
	defer r.Table.Pop()
	if c.Name != "" {
		r.Table.Add(c.Name, symtab.Exception, c.Type, exVal)
	}
	return c.Body.Execute(r)
}
