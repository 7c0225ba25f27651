package parser

import (
	"testing"

	"github.com/cwbudde/egg/internal/ast"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p, err := FromString("t", src)
	if err != nil {
		t.Fatalf("unexpected parser construction error: %v", err)
	}
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func TestEmptyInputIsFatal(t *testing.T) {
	p, err := FromString("t", "")
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	_, err = p.Parse()
	if err == nil || err.Error() != "t: Empty input" {
		t.Fatalf("expected 'Empty input' error, got %v", err)
	}
}

func TestParsesCallStatement(t *testing.T) {
	prog := parseProgram(t, `print("hello, world");`)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", prog.Statements[0])
	}
	callee, ok := stmt.Call.Callee.(*ast.Identifier)
	if !ok || callee.Name != "print" {
		t.Fatalf("expected call to 'print', got %+v", stmt.Call.Callee)
	}
}

func TestParsesVarDeclWithInitializer(t *testing.T) {
	prog := parseProgram(t, `var i = 0;`)
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected VarDecl, got %T", prog.Statements[0])
	}
	if decl.Name != "i" || !decl.Type.IsVar {
		t.Fatalf("expected inferred var 'i', got %+v", decl)
	}
	if _, ok := decl.Init.(*ast.IntLiteral); !ok {
		t.Fatalf("expected int literal initializer, got %T", decl.Init)
	}
}

func TestParsesFunctionDeclaration(t *testing.T) {
	prog := parseProgram(t, `int add(int a, int b) { return a + b; }`)
	fn, ok := prog.Statements[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected FuncDecl, got %T", prog.Statements[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	if fn.Return.Name != "int" {
		t.Fatalf("expected int return type, got %q", fn.Return.Name)
	}
}

func TestParsesCStyleForLoop(t *testing.T) {
	prog := parseProgram(t, `for (var i = 0; i < 3; ++i) { print(i); }`)
	forStmt, ok := prog.Statements[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected ForStmt, got %T", prog.Statements[0])
	}
	if _, ok := forStmt.Init.(*ast.VarDecl); !ok {
		t.Fatalf("expected VarDecl init, got %T", forStmt.Init)
	}
	if _, ok := forStmt.Post.(*ast.NudgeStmt); !ok {
		t.Fatalf("expected NudgeStmt post, got %T", forStmt.Post)
	}
}

func TestParsesTryCatchFinally(t *testing.T) {
	prog := parseProgram(t, `try { assert(1 == 2); } catch (any e) { print("caught"); } finally { print("done"); }`)
	tryStmt, ok := prog.Statements[0].(*ast.TryStmt)
	if !ok {
		t.Fatalf("expected TryStmt, got %T", prog.Statements[0])
	}
	if len(tryStmt.Catches) != 1 || tryStmt.Catches[0].Type.Name != "any" {
		t.Fatalf("unexpected catches: %+v", tryStmt.Catches)
	}
	if tryStmt.Finally == nil {
		t.Fatalf("expected finally block")
	}
}

func TestOperatorPrecedence(t *testing.T) {
	prog := parseProgram(t, `var x = 1 + 2 * 3;`)
	decl := prog.Statements[0].(*ast.VarDecl)
	bin, ok := decl.Init.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected top-level '+' binary, got %+v", decl.Init)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != "*" {
		t.Fatalf("expected right-hand '*' nested under '+', got %+v", bin.Right)
	}
}

func TestTernaryIsRightAssociative(t *testing.T) {
	prog := parseProgram(t, `var x = a ? b : c ? d : e;`)
	decl := prog.Statements[0].(*ast.VarDecl)
	outer, ok := decl.Init.(*ast.TernaryExpr)
	if !ok {
		t.Fatalf("expected TernaryExpr, got %T", decl.Init)
	}
	if _, ok := outer.Else.(*ast.TernaryExpr); !ok {
		t.Fatalf("expected nested ternary on else-arm, got %T", outer.Else)
	}
}

func TestPostfixChainPropertyIndexCall(t *testing.T) {
	prog := parseProgram(t, `print(a.b[0].c());`)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	arg := stmt.Call.Args[0]
	call, ok := arg.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected outer CallExpr, got %T", arg)
	}
	prop, ok := call.Callee.(*ast.PropertyExpr)
	if !ok || prop.Name != "c" {
		t.Fatalf("expected property 'c' as callee, got %+v", call.Callee)
	}
}

func TestArrayAndObjectLiterals(t *testing.T) {
	prog := parseProgram(t, `var a = [1, 2, 3]; var o = {x: 1, y: 2};`)
	arr := prog.Statements[0].(*ast.VarDecl).Init.(*ast.ArrayLiteral)
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}
	obj := prog.Statements[1].(*ast.VarDecl).Init.(*ast.ObjectLiteral)
	if len(obj.Entries) != 2 || obj.Entries[0].Key != "x" {
		t.Fatalf("unexpected object entries: %+v", obj.Entries)
	}
}

func TestIfGuardBindsVariable(t *testing.T) {
	prog := parseProgram(t, `if (var x: int = 5) { print(x); }`)
	ifStmt := prog.Statements[0].(*ast.IfStmt)
	if ifStmt.Guard == nil || ifStmt.Guard.Name != "x" || ifStmt.Guard.Type.Name != "int" {
		t.Fatalf("expected if-guard binding 'x: int', got %+v", ifStmt.Guard)
	}
}

func TestForeachOverArray(t *testing.T) {
	prog := parseProgram(t, `foreach (var x in [1, 2]) { print(x); }`)
	fe, ok := prog.Statements[0].(*ast.ForeachStmt)
	if !ok || fe.Name != "x" || !fe.Type.IsVar {
		t.Fatalf("unexpected foreach shape: %+v", prog.Statements[0])
	}
}

func TestUnterminatedCallIsFatal(t *testing.T) {
	_, err := FromString("t", "print(")
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	p, _ := FromString("t", "print(")
	_, err = p.Parse()
	if err == nil {
		t.Fatalf("expected fatal parse error for unterminated call")
	}
}
