package runtime

import (
	"github.com/cwbudde/egg/internal/diag"
	"github.com/cwbudde/egg/internal/symtab"
	"github.com/cwbudde/egg/internal/types"
	"github.com/cwbudde/egg/internal/value"
)

// Module is the root executor of a single linked program (spec.md §3's
// "Program" owns a root runtime node per module).
type Module struct {
	Loc   diag.Location
	Block *Block
}

func (m *Module) Location() diag.Location { return m.Loc }

func (m *Module) Execute(r *Runner) (Outcome, error) {
	return m.Block.Execute(r)
}

// Block executes its children in order, propagating any non-Through
// outcome, and pushes/pops its own scope frame (spec.md §4.7, §8's
// scope-symmetry property).
type Block struct {
	Loc        diag.Location
	Statements []Executor
	OwnsScope  bool
}

func (b *Block) Location() diag.Location { return b.Loc }

func (b *Block) Execute(r *Runner) (Outcome, error) {
	if b.OwnsScope {
		r.Table.Push()
		defer r.Table.Pop()
	}
	for _, stmt := range b.Statements {
		out, err := stmt.Execute(r)
		if err != nil {
			return Outcome{}, err
		}
		if out.Flow != Through {
			return out, nil
		}
	}
	return throughOutcome, nil
}

// ExprStmt executes a call-only expression statement (spec.md §4.2).
type ExprStmt struct {
	Loc  diag.Location
	Call Evaluator
}

func (e *ExprStmt) Location() diag.Location { return e.Loc }

func (e *ExprStmt) Execute(r *Runner) (Outcome, error) {
	if _, err := e.Call.Evaluate(r); err != nil {
		return Outcome{}, err
	}
	return throughOutcome, nil
}

// AssertStmt is the `assert(expr)` special form (spec.md §4.6): on
// failure it reports the structured operator/operands of a top-level
// binary comparison, else the bare expression.
type AssertStmt struct {
	Loc  diag.Location
	Expr Evaluator
	// Binary is set when Expr is a top-level Binary comparison, so the
	// failure message can render "LHS OP RHS".
	Binary *Binary
}

func (a *AssertStmt) Location() diag.Location { return a.Loc }

func (a *AssertStmt) Execute(r *Runner) (Outcome, error) {
	v, err := a.Expr.Evaluate(r)
	if err != nil {
		return Outcome{}, err
	}
	if v.Kind() == value.KindBool && v.AsBool() {
		return throughOutcome, nil
	}
	msg := "Assertion is untrue"
	if a.Binary != nil {
		lhs, lerr := a.Binary.Left.Evaluate(r)
		rhs, rerr := a.Binary.Right.Evaluate(r)
		if lerr == nil && rerr == nil {
			msg = "Assertion is untrue: " + lhs.ToString(value.FormatOptions{}) + " " + a.Binary.Op + " " + rhs.ToString(value.FormatOptions{})
		}
	}
	re := value.NewRuntimeException(msg, string(diag.OriginAssertion))
	return Outcome{}, (&RuntimeError{Exception: re}).WithLocation(a.Loc)
}

// VarDecl declares a variable in the current scope (spec.md §4.6):
// adding the Variable entry happens at execute time, not link
// time, so the value always reflects the live symbol table.
type VarDecl struct {
	Loc  diag.Location
	Name string
	Type types.Type
	Init Evaluator // nil if undefined
}

func (v *VarDecl) Location() diag.Location { return v.Loc }

func (v *VarDecl) Execute(r *Runner) (Outcome, error) {
	val := value.Void
	if v.Init != nil {
		var err error
		val, err = v.Init.Evaluate(r)
		if err != nil {
			return Outcome{}, err
		}
		val = val.CompatibleWith(v.Type)
	}
	r.Table.Add(v.Name, symtab.Variable, v.Type, val)
	return throughOutcome, nil
}

// FuncDecl defines a named function, added to the enclosing scope
// before the body is linked/executed so recursion resolves (spec.md
// §4.6).
type FuncDecl struct {
	Loc    diag.Location
	Name   string
	Params []Param
	Return types.Type
	FnType types.Type
	Body   *Block
}

// Param is one runtime function parameter.
type Param struct {
	Name string
	Type types.Type
}

func (f *FuncDecl) Location() diag.Location { return f.Loc }

func (f *FuncDecl) Execute(r *Runner) (Outcome, error) {
	fn := value.NewVanillaFunction(f.Name, func(runner value.Runner, args []value.Value) (value.Value, error) {
		rr := runner.(*Runner)
		rr.Table.Push()
		defer rr.Table.Pop()
		for i, p := range f.Params {
			var a value.Value = value.Void
			if i < len(args) {
				a = args[i].CompatibleWith(p.Type)
			}
			rr.Table.Add(p.Name, symtab.Argument, p.Type, a)
		}
		out, err := f.Body.Execute(rr)
		if err != nil {
			return value.Void, err
		}
		if out.Flow == Return {
			return out.Value, nil
		}
		return value.Void, nil
	})
	r.Table.Add(f.Name, symtab.Function, f.FnType, value.FromProxy(fn))
	return throughOutcome, nil
}

// AssignStmt is `target = expr`.
type AssignStmt struct {
	Loc    diag.Location
	Target Modifier
	Value  Evaluator
}

func (a *AssignStmt) Location() diag.Location { return a.Loc }

func (a *AssignStmt) Execute(r *Runner) (Outcome, error) {
	_, err := a.Target.Modify(r, "=", func() (value.Value, error) { return a.Value.Evaluate(r) })
	if err != nil {
		return Outcome{}, err
	}
	return throughOutcome, nil
}

// CompoundAssignStmt is `target op= expr`.
type CompoundAssignStmt struct {
	Loc    diag.Location
	Target Modifier
	Op     string
	Value  Evaluator
}

func (c *CompoundAssignStmt) Location() diag.Location { return c.Loc }

func (c *CompoundAssignStmt) Execute(r *Runner) (Outcome, error) {
	_, err := c.Target.Modify(r, c.Op, func() (value.Value, error) { return c.Value.Evaluate(r) })
	if err != nil {
		return Outcome{}, err
	}
	return throughOutcome, nil
}

// NudgeStmt is `target++`/`target--` used as a statement.
type NudgeStmt struct {
	Loc    diag.Location
	Target Modifier
	Op     string
}

func (n *NudgeStmt) Location() diag.Location { return n.Loc }

func (n *NudgeStmt) Execute(r *Runner) (Outcome, error) {
	_, err := n.Target.Modify(r, n.Op, nil)
	if err != nil {
		return Outcome{}, err
	}
	return throughOutcome, nil
}

// ReturnStmt captures an optional value into a Return outcome.
type ReturnStmt struct {
	Loc   diag.Location
	Value Evaluator // nil for a bare `return`
}

func (rs *ReturnStmt) Location() diag.Location { return rs.Loc }

func (rs *ReturnStmt) Execute(r *Runner) (Outcome, error) {
	if rs.Value == nil {
		return Outcome{Flow: Return, Value: value.Void}, nil
	}
	v, err := rs.Value.Evaluate(r)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Flow: Return, Value: v}, nil
}

// BreakStmt unwinds to the nearest loop.
type BreakStmt struct{ Loc diag.Location }

func (b *BreakStmt) Location() diag.Location { return b.Loc }
func (b *BreakStmt) Execute(*Runner) (Outcome, error) {
	return Outcome{Flow: Break}, nil
}

// ContinueStmt skips to the nearest loop's advance/condition re-test.
type ContinueStmt struct{ Loc diag.Location }

func (c *ContinueStmt) Location() diag.Location { return c.Loc }
func (c *ContinueStmt) Execute(*Runner) (Outcome, error) {
	return Outcome{Flow: Continue}, nil
}
