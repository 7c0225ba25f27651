package linker

import (
	"strings"
	"testing"

	"github.com/cwbudde/egg/internal/ast"
	"github.com/cwbudde/egg/internal/parser"
	"github.com/cwbudde/egg/internal/runtime"
	"github.com/cwbudde/egg/internal/symtab"
	"github.com/cwbudde/egg/internal/types"
	"github.com/cwbudde/egg/internal/value"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p, err := parser.FromString("t", src)
	if err != nil {
		t.Fatalf("parse setup: %v", err)
	}
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return prog
}

func linkProgram(t *testing.T, src string) (*runtime.Module, *Linker) {
	t.Helper()
	prog := parseProgram(t, src)
	table := symtab.New()
	l := New(table, "t")
	mod, err := l.WithModule(prog).Link()
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	return mod, l
}

func linkProgramExpectError(t *testing.T, src string) error {
	t.Helper()
	prog := parseProgram(t, src)
	table := symtab.New()
	l := New(table, "t")
	_, err := l.WithModule(prog).Link()
	if err == nil {
		t.Fatalf("expected a link error, got none")
	}
	return err
}

func TestLinkVarDeclWithExplicitType(t *testing.T) {
	_, l := linkProgram(t, "int x = 1;")
	entry, ok := l.table.Find("x")
	if !ok {
		t.Fatalf("x not bound after linking")
	}
	if !entry.Type.Equal(types.INT) {
		t.Fatalf("got type %s, want int", entry.Type.String())
	}
}

func TestLinkVarInfersFromInitializer(t *testing.T) {
	_, l := linkProgram(t, `var s = "hi";`)
	entry, ok := l.table.Find("s")
	if !ok {
		t.Fatalf("s not bound after linking")
	}
	if !entry.Type.Equal(types.STRING) {
		t.Fatalf("got type %s, want string", entry.Type.String())
	}
}

func TestLinkVarWithoutInitializerIsError(t *testing.T) {
	err := linkProgramExpectError(t, "var x;")
	if !strings.Contains(err.Error(), "infer") {
		t.Fatalf("expected an inference error, got %v", err)
	}
}

func TestLinkRejectsIncompatibleInitializer(t *testing.T) {
	err := linkProgramExpectError(t, `int x = "nope";`)
	if !strings.Contains(err.Error(), "Cannot use") {
		t.Fatalf("expected a compatibility error, got %v", err)
	}
}

func TestLinkRejectsIncompatibleAssignment(t *testing.T) {
	err := linkProgramExpectError(t, `int x = 5; x = "hello";`)
	if !strings.Contains(err.Error(), "Cannot use") {
		t.Fatalf("expected a compatibility error, got %v", err)
	}
}

func TestLinkAllowsIntAssignedIntoFloatVariable(t *testing.T) {
	linkProgram(t, `float x = 1.0; x = 2;`)
}

func TestLinkUndefinedIdentifierIsError(t *testing.T) {
	err := linkProgramExpectError(t, "int x = y;")
	if !strings.Contains(err.Error(), "Undefined identifier") {
		t.Fatalf("expected an undefined-identifier error, got %v", err)
	}
}

func TestLinkCollectsMultipleErrorsAcrossStatements(t *testing.T) {
	err := linkProgramExpectError(t, "int x = y; int z = w;")
	le, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *linker.Error, got %T", err)
	}
	if len(le.Entries) != 2 {
		t.Fatalf("expected 2 collected errors, got %d: %v", len(le.Entries), le.Entries)
	}
}

func TestLinkFunctionDeclSupportsRecursion(t *testing.T) {
	mod, l := linkProgram(t, `
		int fact(int n) {
			if (n <= 1) return 1;
			return n * fact(n - 1);
		}
	`)
	entry, ok := l.table.Find("fact")
	if !ok {
		t.Fatalf("fact not bound after linking")
	}
	callable, ok := entry.Type.GetCallables()
	if !ok || !callable.Return.Equal(types.INT) {
		t.Fatalf("fact's callable return type = %+v, want int", callable)
	}

	table := symtab.New()
	r := runtime.NewRunner(table, nil, "t")
	if _, err := mod.Execute(r); err != nil {
		t.Fatalf("unexpected error executing module: %v", err)
	}
	fnEntry, ok := table.Find("fact")
	if !ok {
		t.Fatalf("fact not bound after execution")
	}
	call := &runtime.Call{
		Callee: &runtime.Literal{Val: fnEntry.Value, Typed: fnEntry.Type},
		Args:   []runtime.Evaluator{&runtime.Literal{Val: value.IntFromInt64(5), Typed: types.INT}},
	}
	result, err := call.Evaluate(r)
	if err != nil {
		t.Fatalf("unexpected error calling fact(5): %v", err)
	}
	if result.AsInt().Int64() != 120 {
		t.Fatalf("fact(5) = %v, want 120", result.AsInt())
	}
}

func TestLinkIfGuardBindsAndTestsNonVoid(t *testing.T) {
	mod, _ := linkProgram(t, `
		object? o = null;
		int result = 0;
		if (var x: object = o) {
			result = 1;
		} else {
			result = 2;
		}
	`)
	table := symtab.New()
	r := runtime.NewRunner(table, nil, "t")
	if _, err := mod.Execute(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, ok := table.Find("result")
	if !ok {
		t.Fatalf("result not bound")
	}
	if entry.Value.AsInt().Int64() != 2 {
		t.Fatalf("got result=%v, want 2 (guard source was null, which CompatibleWith turns into Void under type object)", entry.Value.AsInt())
	}
}

func TestLinkWhileLoopRunsUntilConditionIsFalse(t *testing.T) {
	mod, _ := linkProgram(t, `
		int i = 0;
		int sum = 0;
		while (i < 5) {
			sum += i;
			i++;
		}
	`)
	table := symtab.New()
	r := runtime.NewRunner(table, nil, "t")
	if _, err := mod.Execute(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, ok := table.Find("sum")
	if !ok {
		t.Fatalf("sum not bound")
	}
	if entry.Value.AsInt().Int64() != 10 {
		t.Fatalf("sum = %v, want 10", entry.Value.AsInt())
	}
}

func TestLinkForeachOverArrayLiteral(t *testing.T) {
	mod, _ := linkProgram(t, `
		int total = 0;
		foreach (var n in [1, 2, 3]) {
			total += n;
		}
	`)
	table := symtab.New()
	r := runtime.NewRunner(table, nil, "t")
	if _, err := mod.Execute(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, ok := table.Find("total")
	if !ok {
		t.Fatalf("total not bound")
	}
	if entry.Value.AsInt().Int64() != 6 {
		t.Fatalf("total = %v, want 6", entry.Value.AsInt())
	}
}

func TestLinkTryCatchBindsExceptionType(t *testing.T) {
	mod, _ := linkProgram(t, `
		int code = 0;
		try {
			assert(1 == 2);
		} catch (object e) {
			code = 1;
		}
	`)
	table := symtab.New()
	r := runtime.NewRunner(table, nil, "t")
	if _, err := mod.Execute(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, ok := table.Find("code")
	if !ok {
		t.Fatalf("code not bound")
	}
	if entry.Value.AsInt().Int64() != 1 {
		t.Fatalf("code = %v, want 1 (catch should have run)", entry.Value.AsInt())
	}
}

func TestLinkInvalidAssignmentTargetIsError(t *testing.T) {
	err := linkProgramExpectError(t, "1 + 2 = 3;")
	if !strings.Contains(err.Error(), "Invalid assignment target") {
		t.Fatalf("expected an invalid-assignment-target error, got %v", err)
	}
}

func TestLinkAssertWithComparisonCapturesBinary(t *testing.T) {
	prog := parseProgram(t, "assert(1 == 2);")
	table := symtab.New()
	l := New(table, "t")
	mod, err := l.WithModule(prog).Link()
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	r := runtime.NewRunner(symtab.New(), nil, "t")
	_, err = mod.Execute(r)
	if err == nil {
		t.Fatalf("expected assertion failure")
	}
	re, ok := err.(*runtime.RuntimeError)
	if !ok {
		t.Fatalf("expected *runtime.RuntimeError, got %T", err)
	}
	if !strings.Contains(re.Exception.Message, "1 == 2") {
		t.Fatalf("expected structured assertion message, got %q", re.Exception.Message)
	}
}
