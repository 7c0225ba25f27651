package symtab

import (
	"testing"

	"github.com/cwbudde/egg/internal/types"
	"github.com/cwbudde/egg/internal/value"
)

func TestAddFailsOnInnermostRedeclaration(t *testing.T) {
	tbl := New()
	if !tbl.Add("x", Variable, types.INT, value.IntFromInt64(1)) {
		t.Fatalf("first add should succeed")
	}
	if tbl.Add("x", Variable, types.INT, value.IntFromInt64(2)) {
		t.Fatalf("second add in same frame should fail")
	}
}

func TestShadowingAcrossFramesAllowed(t *testing.T) {
	tbl := New()
	tbl.Add("x", Variable, types.INT, value.IntFromInt64(1))
	tbl.Push()
	if !tbl.Add("x", Variable, types.INT, value.IntFromInt64(2)) {
		t.Fatalf("shadowing in a nested frame should succeed")
	}
	e, _ := tbl.Find("x")
	if e.Value.AsInt().Int64() != 2 {
		t.Fatalf("expected inner shadow value")
	}
	tbl.Pop()
	e, _ = tbl.Find("x")
	if e.Value.AsInt().Int64() != 1 {
		t.Fatalf("expected outer value restored after pop")
	}
}

func TestPopRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic popping root frame")
		}
	}()
	New().Pop()
}

func TestImmutableFlavourRejectsSet(t *testing.T) {
	tbl := New()
	tbl.Builtin("print", types.ANY, value.Void)
	if err := tbl.Set("print", value.IntFromInt64(1)); err == nil {
		t.Fatalf("expected error assigning to builtin")
	}
}

func TestDuplicateBuiltinPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate builtin")
		}
	}()
	tbl := New()
	tbl.Builtin("print", types.ANY, value.Void)
	tbl.Builtin("print", types.ANY, value.Void)
}
