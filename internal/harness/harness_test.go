package harness

import (
	"path/filepath"
	"testing"
)

func TestRunScriptPasses(t *testing.T) {
	res := RunScript("<test>", `print("hello"); print(1 + 1);
///>hello
///>2
`)
	if !res.Passed() {
		t.Fatalf("expected pass, got mismatches: %v", res.Mismatches)
	}
}

func TestRunScriptDetectsMismatch(t *testing.T) {
	res := RunScript("<test>", `print("hello");
///>goodbye
`)
	if res.Passed() {
		t.Fatal("expected a mismatch, got pass")
	}
	if len(res.Mismatches) != 1 {
		t.Fatalf("expected exactly one mismatch, got %v", res.Mismatches)
	}
}

func TestRunScriptDetectsLeftoverEntries(t *testing.T) {
	res := RunScript("<test>", `print("a"); print("b");
///>a
`)
	if res.Passed() {
		t.Fatal("expected a mismatch for the unconsumed entry, got pass")
	}
}

func TestRunScriptResourceSubstitution(t *testing.T) {
	res := RunScript("myscript.egg", `print("myscript.egg");
///><RESOURCE>
`)
	if !res.Passed() {
		t.Fatalf("expected pass, got mismatches: %v", res.Mismatches)
	}
}

func TestRunScriptCompileError(t *testing.T) {
	res := RunScript("<test>", `print(`)
	if res.CompileErr == nil {
		t.Fatal("expected a compile error")
	}
	if res.Passed() {
		t.Fatal("a compile error must not count as passed")
	}
}

func TestRunDirWalksFixtureDirectory(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "scripts")
	results, err := RunDir(dir)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one fixture script")
	}
	for _, r := range results {
		if !r.Passed() {
			t.Errorf("%s: FAILED: compileErr=%v runErr=%v mismatches=%v", r.Source, r.CompileErr, r.RunErr, r.Mismatches)
		}
	}
}
