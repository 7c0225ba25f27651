package egg

import (
	"strings"
	"testing"

	"github.com/cwbudde/egg/internal/diag"
)

// run compiles and executes source, returning every logged Print
// entry's text in order.
func run(t *testing.T, source string) []string {
	t.Helper()
	prog, err := Compile("<test>", source)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	logger := &diag.CollectingLogger{}
	if err := prog.Run(logger); err != nil {
		t.Fatalf("Run: %v", err)
	}
	var out []string
	for _, m := range logger.Entries {
		if m.Severity == diag.Print {
			out = append(out, m.Text())
		}
	}
	return out
}

func TestHelloWorld(t *testing.T) {
	got := run(t, `print("hello, world");`)
	want := []string{"hello, world"}
	if len(got) != len(want) || got[0] != want[0] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestIntPlusIntStaysIntAndDivisionTruncates(t *testing.T) {
	got := run(t, `var x = 1 + 2; print(x); int y = 7 / 2; print(y);`)
	want := []string{"3", "3"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestStringHashDiffers(t *testing.T) {
	got := run(t, `print("egg".hash() != "beggar".hash());`)
	if len(got) != 1 || got[0] != "true" {
		t.Fatalf("got %v, want [true]", got)
	}
}

func TestStringSlice(t *testing.T) {
	got := run(t, `print("beggar".slice(1, -2)); print("spoon".slice(-2));`)
	want := []string{"egg", "on"}
	for i, w := range want {
		if i >= len(got) || got[i] != w {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestStringReplace(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`print("banana".replace("a", "o", 2));`, "bonona"},
		{`print("banana".replace("a", "o", -2));`, "banono"},
		{`print("banana".replace("a", "o", 0));`, "banana"},
		{`print("banana".replace("", "-"));`, "b-a-n-a-n-a"},
	}
	for _, c := range cases {
		got := run(t, c.src)
		if len(got) != 1 || got[0] != c.want {
			t.Fatalf("%s: got %v, want [%s]", c.src, got, c.want)
		}
	}
}

func TestStringPad(t *testing.T) {
	got := run(t, `print("egg".padStart(8)); print("egg".padEnd(8, "[]"));`)
	want := []string{"     egg", "egg[][]["}
	for i, w := range want {
		if i >= len(got) || got[i] != w {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestForLoop(t *testing.T) {
	got := run(t, `var i = 0; for (; i < 3; ++i) { print(i); }`)
	want := []string{"0", "1", "2"}
	for i, w := range want {
		if i >= len(got) || got[i] != w {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestTryCatchAssertion(t *testing.T) {
	got := run(t, `try { assert(1 == 2); } catch (any e) { print("caught"); }`)
	if len(got) != 1 || got[0] != "caught" {
		t.Fatalf("got %v, want [caught]", got)
	}
}

func TestUncaughtAssertionSurfacesAsRuntimeError(t *testing.T) {
	prog, err := Compile("<test>", `assert(1 == 2);`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	logger := &diag.CollectingLogger{}
	runErr := prog.Run(logger)
	if runErr == nil {
		t.Fatal("expected a runtime error, got nil")
	}
	if !strings.Contains(runErr.Error(), "Assertion is untrue: 1 == 2") {
		t.Fatalf("error %q does not mention the failing expression", runErr.Error())
	}
}

func TestEmptySourceFails(t *testing.T) {
	_, err := Compile("<test>", "")
	if err == nil {
		t.Fatal("expected a compile error for empty input")
	}
	if !strings.Contains(err.Error(), "Empty input") {
		t.Fatalf("error %q does not mention Empty input", err.Error())
	}
}

func TestUnterminatedCallFails(t *testing.T) {
	_, err := Compile("<test>", `print(`)
	if err == nil {
		t.Fatal("expected a parse error for an unterminated call")
	}
	if !strings.Contains(err.Error(), "Expected function argument, but got end-of-file instead") {
		t.Fatalf("error %q does not match expected message", err.Error())
	}
}

func TestIntOverflowDoesNotTruncate(t *testing.T) {
	got := run(t, `print(99999999999999999999 + 1);`)
	if len(got) != 1 || got[0] != "100000000000000000000" {
		t.Fatalf("got %v, want arbitrary-precision sum", got)
	}
}

func TestFloatFormatStripsTrailingZeroesButKeepsDotZero(t *testing.T) {
	got := run(t, `print(1.0); print(1.50);`)
	if len(got) != 2 {
		t.Fatalf("got %v", got)
	}
	if got[0] != "1.0" {
		t.Fatalf("integer float: got %q, want 1.0", got[0])
	}
	if got[1] != "1.5" {
		t.Fatalf("trailing zero: got %q, want 1.5", got[1])
	}
}
