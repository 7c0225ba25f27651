// Package ast defines egg's syntax tree: the node set the Parser builds
// and the Linker walks to produce runtime nodes (spec.md §4.2/§4.6).
//
// Grounded on the teacher's internal/ast/ast.go node/Expression/Statement
// interface split, trimmed from DWScript's class/record/unit-shaped grammar
// down to egg's flat Expression/Statement/Type grammar.
package ast

import "github.com/cwbudde/egg/internal/diag"

// Node is the base interface every syntax tree node implements.
type Node interface {
	Pos() diag.Location
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of a parsed module: a flat list of top-level
// statements (spec.md §3: "Current design executes a single module").
type Program struct {
	Statements []Statement
	Source     string
}

func (p *Program) Pos() diag.Location {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return diag.Location{Source: p.Source}
}

// TypeExpr is the syntactic form of a Type annotation: a base name
// (void/bool/int/float/string/object/any/var), a nullable suffix, and
// whether it was written as the inferring `var`/`var?` form (spec.md
// §4.2's "Type" production).
type TypeExpr struct {
	Location diag.Location
	Name     string
	Nullable bool
	IsVar    bool
}

func (t *TypeExpr) Pos() diag.Location { return t.Location }

// ---- Expressions ----

type Identifier struct {
	Location diag.Location
	Name     string
}

func (i *Identifier) Pos() diag.Location { return i.Location }
func (*Identifier) expressionNode()      {}

type NullLiteral struct{ Location diag.Location }

func (n *NullLiteral) Pos() diag.Location { return n.Location }
func (*NullLiteral) expressionNode()      {}

type BoolLiteral struct {
	Location diag.Location
	Value    bool
}

func (b *BoolLiteral) Pos() diag.Location { return b.Location }
func (*BoolLiteral) expressionNode()      {}

type IntLiteral struct {
	Location diag.Location
	Raw      string
}

func (n *IntLiteral) Pos() diag.Location { return n.Location }
func (*IntLiteral) expressionNode()      {}

type FloatLiteral struct {
	Location diag.Location
	Raw      string
}

func (n *FloatLiteral) Pos() diag.Location { return n.Location }
func (*FloatLiteral) expressionNode()      {}

type StringLiteral struct {
	Location diag.Location
	Value    string
}

func (s *StringLiteral) Pos() diag.Location { return s.Location }
func (*StringLiteral) expressionNode()      {}

type ArrayLiteral struct {
	Location diag.Location
	Elements []Expression
}

func (a *ArrayLiteral) Pos() diag.Location { return a.Location }
func (*ArrayLiteral) expressionNode()      {}

// ObjectEntry is one `key: value` pair of an object literal.
type ObjectEntry struct {
	Key   string
	Value Expression
}

type ObjectLiteral struct {
	Location diag.Location
	Entries  []ObjectEntry
}

func (o *ObjectLiteral) Pos() diag.Location { return o.Location }
func (*ObjectLiteral) expressionNode()      {}

// UnaryExpr covers prefix `!` and `-`.
type UnaryExpr struct {
	Location diag.Location
	Op       string
	Operand  Expression
}

func (u *UnaryExpr) Pos() diag.Location { return u.Location }
func (*UnaryExpr) expressionNode()      {}

// BinaryExpr covers every infix operator of spec.md §4.2's precedence
// table: == != < <= >= > + - * / % && ||.
type BinaryExpr struct {
	Location diag.Location
	Op       string
	Left     Expression
	Right    Expression
}

func (b *BinaryExpr) Pos() diag.Location { return b.Location }
func (*BinaryExpr) expressionNode()      {}

// TernaryExpr is the right-associative `cond ? then : else` operator.
type TernaryExpr struct {
	Location diag.Location
	Cond     Expression
	Then     Expression
	Else     Expression
}

func (t *TernaryExpr) Pos() diag.Location { return t.Location }
func (*TernaryExpr) expressionNode()      {}

// PropertyExpr is postfix `.identifier` property access.
type PropertyExpr struct {
	Location diag.Location
	Receiver Expression
	Name     string
}

func (p *PropertyExpr) Pos() diag.Location { return p.Location }
func (*PropertyExpr) expressionNode()      {}

// IndexExpr is postfix `[expr]` index access.
type IndexExpr struct {
	Location diag.Location
	Receiver Expression
	Index    Expression
}

func (e *IndexExpr) Pos() diag.Location { return e.Location }
func (*IndexExpr) expressionNode()      {}

// CallExpr is postfix `(args…)` invocation.
type CallExpr struct {
	Location diag.Location
	Callee   Expression
	Args     []Expression
}

func (c *CallExpr) Pos() diag.Location { return c.Location }
func (*CallExpr) expressionNode()      {}

// ---- Targets (assignable expressions) ----
//
// Target is the syntactic subset of Expression valid on the left of `=`,
// a compound-mutate operator, or `++`/`--` (spec.md §4.2's "Target"
// production): Identifier, PropertyExpr, IndexExpr.

// ---- Statements ----

type Block struct {
	Location   diag.Location
	Statements []Statement
}

func (b *Block) Pos() diag.Location { return b.Location }
func (*Block) statementNode()       {}

// ExprStmt is an expression-statement; spec.md §4.2 restricts this to
// call expressions.
type ExprStmt struct {
	Location diag.Location
	Call     *CallExpr
}

func (e *ExprStmt) Pos() diag.Location { return e.Location }
func (*ExprStmt) statementNode()       {}

// AssertStmt is the `assert(expr)` special form.
type AssertStmt struct {
	Location diag.Location
	Expr     Expression
}

func (a *AssertStmt) Pos() diag.Location { return a.Location }
func (*AssertStmt) statementNode()       {}

// VarDecl declares a variable, with or without an initializer; the
// Type may be the `var`/`var?` inferring form.
type VarDecl struct {
	Location diag.Location
	Name     string
	Type     *TypeExpr
	Init     Expression // nil if undefined
}

func (v *VarDecl) Pos() diag.Location { return v.Location }
func (*VarDecl) statementNode()       {}

// Param is one parameter of a FuncDecl.
type Param struct {
	Name string
	Type *TypeExpr
}

// FuncDecl declares a named function.
type FuncDecl struct {
	Location diag.Location
	Name     string
	Params   []Param
	Return   *TypeExpr
	Body     *Block
}

func (f *FuncDecl) Pos() diag.Location { return f.Location }
func (*FuncDecl) statementNode()       {}

// AssignStmt is a plain `target = expr` assignment.
type AssignStmt struct {
	Location diag.Location
	Target   Expression
	Value    Expression
}

func (a *AssignStmt) Pos() diag.Location { return a.Location }
func (*AssignStmt) statementNode()       {}

// CompoundAssignStmt is `target op= expr` (+= -= *= /= %=).
type CompoundAssignStmt struct {
	Location diag.Location
	Target   Expression
	Op       string
	Value    Expression
}

func (c *CompoundAssignStmt) Pos() diag.Location { return c.Location }
func (*CompoundAssignStmt) statementNode()       {}

// NudgeStmt is `target++`/`target--` used as a statement.
type NudgeStmt struct {
	Location diag.Location
	Target   Expression
	Op       string
}

func (n *NudgeStmt) Pos() diag.Location { return n.Location }
func (*NudgeStmt) statementNode()       {}

// IfStmt is `if (cond) then [else else]`; when Guard is non-nil this is
// the if-guard form `if (var x: T = expr)`.
type IfStmt struct {
	Location diag.Location
	Guard    *GuardClause
	Cond     Expression
	Then     Statement
	Else     Statement // nil if absent
}

func (i *IfStmt) Pos() diag.Location { return i.Location }
func (*IfStmt) statementNode()       {}

// GuardClause is the shared shape of if-guard/while-guard: a scoped
// binding of Name:Type tested against Source, true when the tested
// value is non-Void under the declared type.
type GuardClause struct {
	Name   string
	Type   *TypeExpr
	Source Expression
}

// ForStmt is the C-style `for (init; cond; post) body` loop.
type ForStmt struct {
	Location diag.Location
	Init     Statement // nil if absent
	Cond     Expression
	Post     Statement // nil if absent
	Body     Statement
}

func (f *ForStmt) Pos() diag.Location { return f.Location }
func (*ForStmt) statementNode()       {}

// ForeachStmt is `foreach (var name[: T] in source) body`.
type ForeachStmt struct {
	Location diag.Location
	Name     string
	Type     *TypeExpr // may be the `var`/`var?` inferring form
	Source   Expression
	Body     Statement
}

func (f *ForeachStmt) Pos() diag.Location { return f.Location }
func (*ForeachStmt) statementNode()       {}

// WhileStmt is `while (cond) body`; when Guard is non-nil this is the
// while-guard form.
type WhileStmt struct {
	Location diag.Location
	Guard    *GuardClause
	Cond     Expression
	Body     Statement
}

func (w *WhileStmt) Pos() diag.Location { return w.Location }
func (*WhileStmt) statementNode()       {}

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	Location diag.Location
	Value    Expression // nil if bare `return`
}

func (r *ReturnStmt) Pos() diag.Location { return r.Location }
func (*ReturnStmt) statementNode()       {}

// CatchClause is one `catch (Type name) { … }` arm of a TryStmt.
type CatchClause struct {
	Location diag.Location
	Name     string
	Type     *TypeExpr
	Body     *Block
}

// TryStmt is `try { … } catch (...) { … }… [finally { … }]`.
type TryStmt struct {
	Location diag.Location
	Body     *Block
	Catches  []CatchClause
	Finally  *Block // nil if absent
}

func (t *TryStmt) Pos() diag.Location { return t.Location }
func (*TryStmt) statementNode()       {}
