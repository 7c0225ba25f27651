// Package harness implements the `///>`/`///<` test-harness protocol of
// spec.md §6: runnable scripts embed expected output as line comments,
// and a script "passes" when every directive consumes, in order, exactly
// the logged entry it names.
//
// Grounded on the teacher's internal/interp/fixture_test.go fixture-
// running shape (read source, compile, execute, compare actual vs.
// expected output), generalized from its go-snaps/expected-.txt-file
// comparison to directive-based assertion embedded in the script itself.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/egg/internal/diag"
	"github.com/cwbudde/egg/internal/egg"
)

// directiveKind distinguishes the two directive forms of spec.md §6.
type directiveKind int

const (
	kindPrint directiveKind = iota
	kindOther
)

type directive struct {
	kind directiveKind
	text string
	line int
}

// Mismatch describes one failed directive or leftover/absent entry.
type Mismatch struct {
	Line   int
	Reason string
}

func (m Mismatch) String() string {
	if m.Line == 0 {
		return m.Reason
	}
	return fmt.Sprintf("line %d: %s", m.Line, m.Reason)
}

// Result is the outcome of running one script against its embedded
// directives.
type Result struct {
	Source     string
	Mismatches []Mismatch
	CompileErr error
	RunErr     error
}

// Passed reports whether the script compiled and matched every directive
// with no mismatch. An unhandled runtime error does not fail the script
// by itself: Program.Run logs it as an Error entry, which a `///<`
// directive must then consume like any other entry.
func (r *Result) Passed() bool {
	return r.CompileErr == nil && len(r.Mismatches) == 0
}

// parseDirectives extracts every `///>`/`///<` line comment from content,
// in source order (spec.md §6).
func parseDirectives(content string) []directive {
	var out []directive
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "///>"):
			out = append(out, directive{kind: kindPrint, text: strings.TrimPrefix(trimmed, "///>"), line: i + 1})
		case strings.HasPrefix(trimmed, "///<"):
			out = append(out, directive{kind: kindOther, text: strings.TrimPrefix(trimmed, "///<"), line: i + 1})
		}
	}
	return out
}

// RunScript compiles and runs content under source (used for diagnostic
// locations and `<RESOURCE>` substitution in `///>` directives), then
// checks the logged entries against the script's embedded directives.
func RunScript(source, content string) *Result {
	res := &Result{Source: source}
	directives := parseDirectives(content)

	logger := &diag.CollectingLogger{}
	prog, err := egg.Compile(source, content)
	if err != nil {
		res.CompileErr = err
		return res
	}
	if runErr := prog.Run(logger); runErr != nil {
		res.RunErr = runErr
	}

	entries := logger.Entries
	cursor := 0
	for _, d := range directives {
		if cursor >= len(entries) {
			res.Mismatches = append(res.Mismatches, Mismatch{Line: d.line, Reason: "expected a logged entry but the run produced none"})
			continue
		}
		entry := entries[cursor]
		cursor++
		switch d.kind {
		case kindPrint:
			if entry.Severity != diag.Print {
				res.Mismatches = append(res.Mismatches, Mismatch{Line: d.line, Reason: fmt.Sprintf("expected a Print entry, got %s: %s", entry.Severity, entry.String())})
				continue
			}
			want := strings.ReplaceAll(d.text, "<RESOURCE>", source)
			got := entry.Text()
			if got != want {
				res.Mismatches = append(res.Mismatches, Mismatch{Line: d.line, Reason: fmt.Sprintf("expected %q, got %q", want, got)})
			}
		case kindOther:
			if entry.Severity == diag.Print {
				res.Mismatches = append(res.Mismatches, Mismatch{Line: d.line, Reason: "expected a non-Print entry, got a Print entry"})
				continue
			}
			want := "<" + d.text
			got := entry.Tagged()
			if got != want {
				res.Mismatches = append(res.Mismatches, Mismatch{Line: d.line, Reason: fmt.Sprintf("expected %q, got %q", want, got)})
			}
		}
	}
	if cursor < len(entries) {
		res.Mismatches = append(res.Mismatches, Mismatch{Reason: fmt.Sprintf("%d logged entries left unconsumed at end of run", len(entries)-cursor)})
	}
	return res
}

// RunFile reads path and runs it through RunScript, using path as the
// source identifier.
func RunFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return RunScript(path, string(data)), nil
}

// RunDir runs every `*.egg` script found under dir (recursively),
// sorted by path, returning one Result per file.
func RunDir(dir string) ([]*Result, error) {
	var results []*Result
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".egg") {
			return nil
		}
		res, err := RunFile(path)
		if err != nil {
			return err
		}
		results = append(results, res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
