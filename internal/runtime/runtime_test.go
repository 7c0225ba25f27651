package runtime

import (
	"testing"

	"github.com/cwbudde/egg/internal/diag"
	"github.com/cwbudde/egg/internal/symtab"
	"github.com/cwbudde/egg/internal/types"
	"github.com/cwbudde/egg/internal/value"
)

func newTestRunner() (*Runner, *symtab.Table) {
	table := symtab.New()
	return NewRunner(table, nil, "test"), table
}

func intLit(n int64) *Literal {
	return &Literal{Val: value.IntFromInt64(n), Typed: types.INT}
}

func TestForLoopScopeSymmetry(t *testing.T) {
	r, table := newTestRunner()
	depthBefore := table.Depth()

	loop := &ForStmt{
		Init: &VarDecl{Name: "i", Type: types.INT, Init: intLit(0)},
		Cond: &Binary{Op: "<", Left: &VariableGet{Name: "i", Typed: types.INT}, Right: intLit(3)},
		Post: &NudgeStmt{Target: &VariableTarget{Name: "i"}, Op: "++"},
		Body: &Block{OwnsScope: false, Statements: nil},
	}
	out, err := loop.Execute(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Flow != Through {
		t.Fatalf("expected Through, got %v", out.Flow)
	}
	if table.Depth() != depthBefore {
		t.Fatalf("scope leaked: depth %d != %d", table.Depth(), depthBefore)
	}
	if _, ok := table.Find("i"); ok {
		t.Fatalf("loop variable 'i' leaked out of the for-scope")
	}
}

func TestBreakStopsLoopWithoutEscaping(t *testing.T) {
	r, _ := newTestRunner()
	sum := &VarDecl{Name: "sum", Type: types.INT, Init: intLit(0)}
	if _, err := sum.Execute(r); err != nil {
		t.Fatal(err)
	}

	loop := &ForStmt{
		Init: &VarDecl{Name: "i", Type: types.INT, Init: intLit(0)},
		Cond: &Binary{Op: "<", Left: &VariableGet{Name: "i", Typed: types.INT}, Right: intLit(10)},
		Post: &NudgeStmt{Target: &VariableTarget{Name: "i"}, Op: "++"},
		Body: &Block{Statements: []Executor{
			&IfStmt{
				Cond: &Binary{Op: "==", Left: &VariableGet{Name: "i", Typed: types.INT}, Right: intLit(3)},
				Then: &BreakStmt{},
			},
			&CompoundAssignStmt{Target: &VariableTarget{Name: "sum"}, Op: "+=", Value: &VariableGet{Name: "i", Typed: types.INT}},
		}},
	}
	out, err := loop.Execute(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Flow != Through {
		t.Fatalf("break must not escape its loop as an outcome, got %v", out.Flow)
	}
	entry, _ := r.Table.Find("sum")
	got := entry.Value.AsInt().Int64()
	if got != 0+1+2 {
		t.Fatalf("sum = %d, want 3", got)
	}
}

func TestReturnPropagatesThroughNestedBlocksAndLoops(t *testing.T) {
	r, _ := newTestRunner()
	loop := &ForStmt{
		Init: &VarDecl{Name: "i", Type: types.INT, Init: intLit(0)},
		Cond: &Binary{Op: "<", Left: &VariableGet{Name: "i", Typed: types.INT}, Right: intLit(5)},
		Post: &NudgeStmt{Target: &VariableTarget{Name: "i"}, Op: "++"},
		Body: &Block{Statements: []Executor{
			&ReturnStmt{Value: &VariableGet{Name: "i", Typed: types.INT}},
		}},
	}
	out, err := loop.Execute(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Flow != Return {
		t.Fatalf("expected Return to propagate out of the loop, got %v", out.Flow)
	}
	if out.Value.AsInt().Int64() != 0 {
		t.Fatalf("got return value %v, want 0", out.Value.AsInt())
	}
}

func TestForeachOverStringYieldsCodepoints(t *testing.T) {
	r, _ := newTestRunner()
	var seen []string
	loop := &ForeachStmt{
		Name:   "ch",
		Type:   types.STRING,
		Source: &Literal{Val: value.String("ab"), Typed: types.STRING},
		Body: &capturingExecutor{fn: func(rr *Runner) (Outcome, error) {
			entry, _ := rr.Table.Find("ch")
			seen = append(seen, entry.Value.AsString())
			return throughOutcome, nil
		}},
	}
	if _, err := loop.Execute(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Fatalf("got %v, want [a b]", seen)
	}
}

// capturingExecutor lets a test observe the live Runner/Table mid-loop.
type capturingExecutor struct {
	fn func(*Runner) (Outcome, error)
}

func (c *capturingExecutor) Location() diag.Location       { return diag.Location{} }
func (c *capturingExecutor) Execute(r *Runner) (Outcome, error) { return c.fn(r) }

func TestTryFinallyReturnWinsOverCatch(t *testing.T) {
	r, _ := newTestRunner()
	try := &TryStmt{
		Body: &Block{Statements: []Executor{
			&AssertStmt{Expr: &Literal{Val: value.False, Typed: types.BOOL}},
		}},
		Catches: []CatchClause{
			{Name: "e", Type: types.OBJECT, Body: &Block{Statements: []Executor{
				&ReturnStmt{Value: intLit(1)},
			}}},
		},
		Finally: &Block{Statements: []Executor{
			&ReturnStmt{Value: intLit(2)},
		}},
	}
	out, err := try.Execute(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Flow != Return || out.Value.AsInt().Int64() != 2 {
		t.Fatalf("expected finally's Return(2) to win, got flow=%v value=%v", out.Flow, out.Value)
	}
}

func TestTryCatchBindsExceptionAndRunsCatchBody(t *testing.T) {
	r, _ := newTestRunner()
	var caughtMsg string
	try := &TryStmt{
		Body: &Block{Statements: []Executor{
			&AssertStmt{Expr: &Literal{Val: value.False, Typed: types.BOOL}},
		}},
		Catches: []CatchClause{
			{Name: "e", Type: types.OBJECT, Body: &Block{Statements: []Executor{
				&capturingExecutor{fn: func(rr *Runner) (Outcome, error) {
					entry, _ := rr.Table.Find("e")
					msg, _ := entry.Value.AsProxy().GetProperty("message")
					caughtMsg = msg.AsString()
					return throughOutcome, nil
				}},
			}}},
		},
	}
	out, err := try.Execute(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Flow != Through {
		t.Fatalf("expected Through after a handled catch, got %v", out.Flow)
	}
	if caughtMsg != "Assertion is untrue" {
		t.Fatalf("got caught message %q", caughtMsg)
	}
}

func TestFuncDeclSupportsRecursion(t *testing.T) {
	r, _ := newTestRunner()
	// int fact(int n) { if (n <= 1) return 1; return n * fact(n - 1); }
	decl := &FuncDecl{
		Name:   "fact",
		Params: []Param{{Name: "n", Type: types.INT}},
		Return: types.INT,
		FnType: types.Of(types.Object),
	}
	decl.Body = &Block{Statements: []Executor{
		&IfStmt{
			Cond: &Binary{Op: "<=", Left: &VariableGet{Name: "n", Typed: types.INT}, Right: intLit(1)},
			Then: &ReturnStmt{Value: intLit(1)},
		},
		&ReturnStmt{Value: &Binary{
			Op:   "*",
			Left: &VariableGet{Name: "n", Typed: types.INT},
			Right: &Call{
				Callee: &VariableGet{Name: "fact", Typed: decl.FnType},
				Args:   []Evaluator{&Binary{Op: "-", Left: &VariableGet{Name: "n", Typed: types.INT}, Right: intLit(1)}},
			},
		}},
	}}
	if _, err := decl.Execute(r); err != nil {
		t.Fatalf("unexpected error declaring function: %v", err)
	}
	call := &Call{
		Callee: &VariableGet{Name: "fact", Typed: decl.FnType},
		Args:   []Evaluator{intLit(5)},
	}
	result, err := call.Evaluate(r)
	if err != nil {
		t.Fatalf("unexpected error calling function: %v", err)
	}
	if result.AsInt().Int64() != 120 {
		t.Fatalf("fact(5) = %v, want 120", result.AsInt())
	}
}

func TestVariableTargetModifyRejectsIncompatibleAssignment(t *testing.T) {
	r, table := newTestRunner()
	table.Add("x", symtab.Variable, types.INT, value.IntFromInt64(5))

	assign := &AssignStmt{Target: &VariableTarget{Name: "x"}, Value: &Literal{Val: value.String("hello"), Typed: types.STRING}}
	if _, err := assign.Execute(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, ok := table.Find("x")
	if !ok {
		t.Fatal("expected 'x' to still exist")
	}
	if entry.Value.Kind() != value.KindVoid {
		t.Fatalf("assigning a String into an int-typed slot should store Void, got %v", entry.Value)
	}
}
