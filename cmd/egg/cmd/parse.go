package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cwbudde/egg/internal/ast"
	"github.com/cwbudde/egg/internal/parser"
	"github.com/spf13/cobra"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an egg file and display its AST",
	Long: `Parse egg source code and display its Abstract Syntax Tree.

If no file is provided, reads from stdin. Use --dump-ast for an
indented tree view; otherwise prints a one-line-per-statement summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
}

func runParse(_ *cobra.Command, args []string) error {
	var input, source string
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input, source = string(data), args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input, source = string(data), "<stdin>"
	}

	p, err := parser.FromString(source, input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("tokenizing failed")
	}
	program, err := p.Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("parsing failed")
	}

	if parseDumpAST {
		fmt.Println("Program")
		for _, stmt := range program.Statements {
			dumpNode(stmt, 1)
		}
		return nil
	}

	fmt.Printf("Program (%d statements)\n", len(program.Statements))
	for _, stmt := range program.Statements {
		fmt.Printf("  %T\n", stmt)
	}
	return nil
}

// dumpNode prints node as one indented tree, recursing into the child
// expressions and statements of each node. A ForStmt shows only its
// body (not its init/cond/post clauses), and guard clauses and catch
// bindings are not shown. Grounded on the teacher's
// cmd/dwscript/cmd/parse.go dumpASTNode, generalized from DWScript's
// node set to egg's flat Expression/Statement grammar.
func dumpNode(node ast.Node, indent int) {
	pad := strings.Repeat("  ", indent)
	switch n := node.(type) {
	case *ast.Block:
		fmt.Printf("%sBlock (%d statements)\n", pad, len(n.Statements))
		for _, s := range n.Statements {
			dumpNode(s, indent+1)
		}
	case *ast.ExprStmt:
		fmt.Printf("%sExprStmt\n", pad)
		dumpNode(n.Call, indent+1)
	case *ast.AssertStmt:
		fmt.Printf("%sAssertStmt\n", pad)
		dumpNode(n.Expr, indent+1)
	case *ast.VarDecl:
		fmt.Printf("%sVarDecl %s\n", pad, n.Name)
		if n.Init != nil {
			dumpNode(n.Init, indent+1)
		}
	case *ast.FuncDecl:
		fmt.Printf("%sFuncDecl %s (%d params)\n", pad, n.Name, len(n.Params))
		dumpNode(n.Body, indent+1)
	case *ast.AssignStmt:
		fmt.Printf("%sAssignStmt\n", pad)
		dumpNode(n.Target, indent+1)
		dumpNode(n.Value, indent+1)
	case *ast.CompoundAssignStmt:
		fmt.Printf("%sCompoundAssignStmt (%s)\n", pad, n.Op)
		dumpNode(n.Target, indent+1)
		dumpNode(n.Value, indent+1)
	case *ast.NudgeStmt:
		fmt.Printf("%sNudgeStmt (%s)\n", pad, n.Op)
		dumpNode(n.Target, indent+1)
	case *ast.IfStmt:
		fmt.Printf("%sIfStmt\n", pad)
		dumpNode(n.Cond, indent+1)
		dumpNode(n.Then, indent+1)
		if n.Else != nil {
			dumpNode(n.Else, indent+1)
		}
	case *ast.ForStmt:
		fmt.Printf("%sForStmt\n", pad)
		dumpNode(n.Body, indent+1)
	case *ast.ForeachStmt:
		fmt.Printf("%sForeachStmt %s\n", pad, n.Name)
		dumpNode(n.Source, indent+1)
		dumpNode(n.Body, indent+1)
	case *ast.WhileStmt:
		fmt.Printf("%sWhileStmt\n", pad)
		dumpNode(n.Cond, indent+1)
		dumpNode(n.Body, indent+1)
	case *ast.ReturnStmt:
		fmt.Printf("%sReturnStmt\n", pad)
		if n.Value != nil {
			dumpNode(n.Value, indent+1)
		}
	case *ast.TryStmt:
		fmt.Printf("%sTryStmt (%d catches)\n", pad, len(n.Catches))
		dumpNode(n.Body, indent+1)
		for _, c := range n.Catches {
			dumpNode(c.Body, indent+1)
		}
		if n.Finally != nil {
			dumpNode(n.Finally, indent+1)
		}
	case *ast.BinaryExpr:
		fmt.Printf("%sBinaryExpr (%s)\n", pad, n.Op)
		dumpNode(n.Left, indent+1)
		dumpNode(n.Right, indent+1)
	case *ast.UnaryExpr:
		fmt.Printf("%sUnaryExpr (%s)\n", pad, n.Op)
		dumpNode(n.Operand, indent+1)
	case *ast.TernaryExpr:
		fmt.Printf("%sTernaryExpr\n", pad)
		dumpNode(n.Cond, indent+1)
		dumpNode(n.Then, indent+1)
		dumpNode(n.Else, indent+1)
	case *ast.PropertyExpr:
		fmt.Printf("%sPropertyExpr .%s\n", pad, n.Name)
		dumpNode(n.Receiver, indent+1)
	case *ast.IndexExpr:
		fmt.Printf("%sIndexExpr\n", pad)
		dumpNode(n.Receiver, indent+1)
		dumpNode(n.Index, indent+1)
	case *ast.CallExpr:
		fmt.Printf("%sCallExpr (%d args)\n", pad, len(n.Args))
		dumpNode(n.Callee, indent+1)
		for _, a := range n.Args {
			dumpNode(a, indent+1)
		}
	case *ast.ArrayLiteral:
		fmt.Printf("%sArrayLiteral (%d elements)\n", pad, len(n.Elements))
		for _, e := range n.Elements {
			dumpNode(e, indent+1)
		}
	case *ast.ObjectLiteral:
		fmt.Printf("%sObjectLiteral (%d entries)\n", pad, len(n.Entries))
		for _, e := range n.Entries {
			fmt.Printf("%s  %s:\n", pad, e.Key)
			dumpNode(e.Value, indent+2)
		}
	case *ast.Identifier:
		fmt.Printf("%sIdentifier %s\n", pad, n.Name)
	case *ast.IntLiteral:
		fmt.Printf("%sIntLiteral %s\n", pad, n.Raw)
	case *ast.FloatLiteral:
		fmt.Printf("%sFloatLiteral %s\n", pad, n.Raw)
	case *ast.StringLiteral:
		fmt.Printf("%sStringLiteral %q\n", pad, n.Value)
	case *ast.BoolLiteral:
		fmt.Printf("%sBoolLiteral %v\n", pad, n.Value)
	case *ast.NullLiteral:
		fmt.Printf("%sNullLiteral\n", pad)
	default:
		fmt.Printf("%s%T\n", pad, node)
	}
}
