package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cwbudde/egg/internal/ast"
	"github.com/gkampitakis/go-snaps/snaps"
)

// render renders an ast.Node as an indented tree, similar to what
// `egg parse --dump-ast` prints but with its own compact labels and
// fewer children (AssertStmt is not expanded, TryStmt shows only its
// body), used here to pin the parser's output shape against go-snaps
// snapshots rather than hand-written exact-match
// assertions (grounded on the teacher's internal/interp/fixture_test.go,
// which snapshots interpreter output the same way for its own fixture
// corpus).
func render(node ast.Node, indent int) string {
	pad := strings.Repeat("  ", indent)
	var b strings.Builder
	switch n := node.(type) {
	case *ast.Program:
		fmt.Fprintf(&b, "%sProgram\n", pad)
		for _, s := range n.Statements {
			b.WriteString(render(s, indent+1))
		}
	case *ast.Block:
		fmt.Fprintf(&b, "%sBlock\n", pad)
		for _, s := range n.Statements {
			b.WriteString(render(s, indent+1))
		}
	case *ast.ExprStmt:
		fmt.Fprintf(&b, "%sExprStmt\n", pad)
		b.WriteString(render(n.Call, indent+1))
	case *ast.VarDecl:
		fmt.Fprintf(&b, "%sVarDecl %s\n", pad, n.Name)
		if n.Init != nil {
			b.WriteString(render(n.Init, indent+1))
		}
	case *ast.FuncDecl:
		fmt.Fprintf(&b, "%sFuncDecl %s/%d\n", pad, n.Name, len(n.Params))
		b.WriteString(render(n.Body, indent+1))
	case *ast.IfStmt:
		fmt.Fprintf(&b, "%sIfStmt\n", pad)
		b.WriteString(render(n.Cond, indent+1))
		b.WriteString(render(n.Then, indent+1))
		if n.Else != nil {
			b.WriteString(render(n.Else, indent+1))
		}
	case *ast.ForStmt:
		fmt.Fprintf(&b, "%sForStmt\n", pad)
		b.WriteString(render(n.Body, indent+1))
	case *ast.TryStmt:
		fmt.Fprintf(&b, "%sTryStmt/%d\n", pad, len(n.Catches))
		b.WriteString(render(n.Body, indent+1))
	case *ast.BinaryExpr:
		fmt.Fprintf(&b, "%sBinaryExpr(%s)\n", pad, n.Op)
		b.WriteString(render(n.Left, indent+1))
		b.WriteString(render(n.Right, indent+1))
	case *ast.CallExpr:
		fmt.Fprintf(&b, "%sCallExpr/%d\n", pad, len(n.Args))
		b.WriteString(render(n.Callee, indent+1))
		for _, a := range n.Args {
			b.WriteString(render(a, indent+1))
		}
	case *ast.PropertyExpr:
		fmt.Fprintf(&b, "%sPropertyExpr.%s\n", pad, n.Name)
		b.WriteString(render(n.Receiver, indent+1))
	case *ast.Identifier:
		fmt.Fprintf(&b, "%sIdentifier(%s)\n", pad, n.Name)
	case *ast.IntLiteral:
		fmt.Fprintf(&b, "%sIntLiteral(%s)\n", pad, n.Raw)
	case *ast.StringLiteral:
		fmt.Fprintf(&b, "%sStringLiteral(%q)\n", pad, n.Value)
	default:
		fmt.Fprintf(&b, "%s%T\n", pad, node)
	}
	return b.String()
}

// TestParseTreeSnapshots pins the parser's tree shape for a handful of
// representative programs against go-snaps snapshots (go-snaps writes
// them under __snapshots__ on the first run and compares on later runs),
// the way the teacher's fixture suite snapshots interpreter output per
// category.
func TestParseTreeSnapshots(t *testing.T) {
	cases := map[string]string{
		"hello_call":    `print("hello, world");`,
		"var_and_for":   `var i = 0; for (; i < 3; ++i) { print(i); }`,
		"try_catch":     `try { assert(1 == 2); } catch (any e) { print("caught"); }`,
		"string_method": `print("beggar".slice(1, -2));`,
	}
	for name, src := range cases {
		p, err := FromString("<test>", src)
		if err != nil {
			t.Fatalf("%s: FromString: %v", name, err)
		}
		prog, err := p.Parse()
		if err != nil {
			t.Fatalf("%s: Parse: %v", name, err)
		}
		snaps.MatchSnapshot(t, name, render(prog, 0))
	}
}
