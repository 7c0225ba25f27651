package builtins

import (
	"testing"

	"github.com/cwbudde/egg/internal/diag"
	"github.com/cwbudde/egg/internal/linker"
	"github.com/cwbudde/egg/internal/parser"
	"github.com/cwbudde/egg/internal/runtime"
	"github.com/cwbudde/egg/internal/symtab"
)

// printedLines compiles and runs source against a freshly Register'd
// symtab.Table, returning every Print entry's text in order.
func printedLines(t *testing.T, source string) []string {
	t.Helper()
	table := symtab.New()
	Register(table)

	p, err := parser.FromString("<test>", source)
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	mod, err := linker.New(table, "<test>").WithModule(prog).Link()
	if err != nil {
		t.Fatalf("Link: %v", err)
	}

	logger := &diag.CollectingLogger{}
	r := runtime.NewRunner(table, logger, "<test>")
	if _, err := mod.Execute(r); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var out []string
	for _, m := range logger.Entries {
		if m.Severity == diag.Print {
			out = append(out, m.Text())
		}
	}
	return out
}

func TestPrintConcatenatesWithoutSeparator(t *testing.T) {
	got := printedLines(t, `print("a", 1, true);`)
	if len(got) != 1 || got[0] != "a1true" {
		t.Fatalf("got %v, want [a1true]", got)
	}
}

func TestStringManifestationConcatenates(t *testing.T) {
	got := printedLines(t, `print(string(1, "-", 2));`)
	if len(got) != 1 || got[0] != "1-2" {
		t.Fatalf("got %v, want [1-2]", got)
	}
}

func TestStringFromCodePoint(t *testing.T) {
	got := printedLines(t, `print(string.fromCodePoint(101));`)
	if len(got) != 1 || got[0] != "e" {
		t.Fatalf("got %v, want [e]", got)
	}
}

func TestObjectKeysValues(t *testing.T) {
	got := printedLines(t, `
		var o = {a: 1, b: 2};
		print(object.keys(o).join(","));
		print(object.values(o).join(","));
	`)
	want := []string{"a,b", "1,2"}
	for i, w := range want {
		if i >= len(got) || got[i] != w {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestTypeOf(t *testing.T) {
	got := printedLines(t, `print(type.of(1)); print(type.of("x")); print(type.of(true));`)
	want := []string{"int", "string", "bool"}
	for i, w := range want {
		if i >= len(got) || got[i] != w {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMathFunctions(t *testing.T) {
	got := printedLines(t, `
		print(math.abs(-5));
		print(math.floor(1.9));
		print(math.ceil(1.1));
		print(math.max(1, 5, 3));
		print(math.min(1, 5, 3));
	`)
	want := []string{"5", "1.0", "2.0", "5", "1"}
	for i, w := range want {
		if i >= len(got) || got[i] != w {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
