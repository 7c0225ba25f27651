package linker

import (
	"github.com/cwbudde/egg/internal/ast"
	"github.com/cwbudde/egg/internal/runtime"
	"github.com/cwbudde/egg/internal/symtab"
	"github.com/cwbudde/egg/internal/types"
)

// linkStatement dispatches one ast.Statement to its runtime.Executor,
// recording (rather than propagating) link errors so the surrounding
// block can continue linking its remaining statements (spec.md §4.6).
func (l *Linker) linkStatement(stmt ast.Statement) (runtime.Executor, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		return l.linkBlock(s, true), nil
	case *ast.ExprStmt:
		return l.linkExprStmt(s)
	case *ast.AssertStmt:
		return l.linkAssertStmt(s)
	case *ast.VarDecl:
		return l.linkVarDecl(s)
	case *ast.FuncDecl:
		return l.linkFuncDecl(s)
	case *ast.AssignStmt:
		return l.linkAssignStmt(s)
	case *ast.CompoundAssignStmt:
		return l.linkCompoundAssignStmt(s)
	case *ast.NudgeStmt:
		return l.linkNudgeStmt(s)
	case *ast.IfStmt:
		return l.linkIfStmt(s)
	case *ast.ForStmt:
		return l.linkForStmt(s)
	case *ast.ForeachStmt:
		return l.linkForeachStmt(s)
	case *ast.WhileStmt:
		return l.linkWhileStmt(s)
	case *ast.ReturnStmt:
		return l.linkReturnStmt(s)
	case *ast.TryStmt:
		return l.linkTryStmt(s)
	default:
		return nil, l.errorAt(stmt.Pos(), "Unsupported statement")
	}
}

// linkBlock links b's statements, optionally pushing/popping a fresh
// link-time frame so identifiers declared inside b shadow, but do not
// leak past, the enclosing scope — mirroring the frame the runtime
// itself pushes for every brace-delimited Block (spec.md §4.7, §8's
// scope-symmetry property). A link error inside one statement does not
// abort the rest of the block.
func (l *Linker) linkBlock(b *ast.Block, ownsScope bool) *runtime.Block {
	if ownsScope {
		l.table.Push()
		defer l.table.Pop()
	}
	rb := &runtime.Block{Loc: loc(b.Location), OwnsScope: ownsScope}
	for _, stmt := range b.Statements {
		node, err := l.linkStatement(stmt)
		if err != nil {
			continue
		}
		rb.Statements = append(rb.Statements, node)
	}
	return rb
}

// linkStatementAsExecutor links a single Statement that may or may not
// be a Block (if/while/for bodies admit either form); a bare statement
// never owns its own scope, a `{ }` block always does.
func (l *Linker) linkStatementAsExecutor(stmt ast.Statement) (runtime.Executor, error) {
	if b, ok := stmt.(*ast.Block); ok {
		return l.linkBlock(b, true), nil
	}
	return l.linkStatement(stmt)
}

func (l *Linker) linkExprStmt(s *ast.ExprStmt) (runtime.Executor, error) {
	call, _, err := l.linkExpr(s.Call)
	if err != nil {
		return nil, err
	}
	return &runtime.ExprStmt{Loc: loc(s.Location), Call: call}, nil
}

// linkAssertStmt links the `assert(expr)` special form (spec.md §4.6):
// when Expr is a top-level comparison, the linked Binary is preserved so
// a failed assertion can render "LHS OP RHS" (spec.md §7).
func (l *Linker) linkAssertStmt(s *ast.AssertStmt) (runtime.Executor, error) {
	expr, _, err := l.linkExpr(s.Expr)
	if err != nil {
		return nil, err
	}
	a := &runtime.AssertStmt{Loc: loc(s.Location), Expr: expr}
	if b, ok := expr.(*runtime.Binary); ok && isComparisonOp(b.Op) {
		a.Binary = b
	}
	return a, nil
}

func isComparisonOp(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	default:
		return false
	}
}

// linkVarDecl implements spec.md §4.6's variable-definition rules: `var`/
// `var?` infers from the initializer, otherwise the initializer must be
// compatible with the declared type.
func (l *Linker) linkVarDecl(s *ast.VarDecl) (runtime.Executor, error) {
	var initNode runtime.Evaluator
	initType := types.VOID
	if s.Init != nil {
		var err error
		initNode, initType, err = l.linkExpr(s.Init)
		if err != nil {
			return nil, err
		}
	}
	declType, err := l.resolveDeclaredType(s.Type, initType, s.Init != nil)
	if err != nil {
		return nil, err
	}
	if s.Init != nil && !s.Type.IsVar {
		if err := l.checkCompatible(s.Location, declType, initType, "initializing '"+s.Name+"'"); err != nil {
			return nil, err
		}
	}
	if _, exists := l.table.FindLocal(s.Name); exists {
		return nil, l.errorAt(s.Location, "'%s' is already declared in this scope", s.Name)
	}
	l.table.Add(s.Name, symtab.Variable, declType, voidPlaceholder)
	return &runtime.VarDecl{Loc: loc(s.Location), Name: s.Name, Type: declType, Init: initNode}, nil
}

// linkFuncDecl implements spec.md §4.6's function-definition rule: the
// function's own symbol is added to the enclosing scope before its body
// is linked, so recursive calls resolve.
func (l *Linker) linkFuncDecl(s *ast.FuncDecl) (runtime.Executor, error) {
	retType, ok := baseType(s.Return.Name)
	if !ok {
		return nil, l.errorAt(s.Return.Location, "Unknown type '%s'", s.Return.Name)
	}
	if s.Return.Nullable {
		retType = retType.Nullable()
	}
	params := make([]runtime.Param, len(s.Params))
	paramTypes := make([]types.Type, len(s.Params))
	for i, p := range s.Params {
		pt, ok := baseType(p.Type.Name)
		if !ok {
			return nil, l.errorAt(p.Type.Location, "Unknown type '%s'", p.Type.Name)
		}
		if p.Type.Nullable {
			pt = pt.Nullable()
		}
		params[i] = runtime.Param{Name: p.Name, Type: pt}
		paramTypes[i] = pt
	}
	fnType := types.OBJECT.WithCallable(types.Callable{Params: paramTypes, Return: retType})
	if _, exists := l.table.FindLocal(s.Name); exists {
		return nil, l.errorAt(s.Location, "'%s' is already declared in this scope", s.Name)
	}
	l.table.Add(s.Name, symtab.Function, fnType, voidPlaceholder)

	l.table.Push()
	defer l.table.Pop()
	for _, p := range params {
		l.table.Add(p.Name, symtab.Argument, p.Type, voidPlaceholder)
	}
	body := l.linkBlock(s.Body, false)
	return &runtime.FuncDecl{Loc: loc(s.Location), Name: s.Name, Params: params, Return: retType, FnType: fnType, Body: body}, nil
}

// linkAssignStmt implements spec.md §4.4's variable-set typed insertion
// point: assigning into an existing identifier must be compatible with
// its declared Type, the same rule linkVarDecl enforces for the define
// case.
func (l *Linker) linkAssignStmt(s *ast.AssignStmt) (runtime.Executor, error) {
	target, err := l.linkTarget(s.Target)
	if err != nil {
		return nil, err
	}
	val, valType, err := l.linkExpr(s.Value)
	if err != nil {
		return nil, err
	}
	if ident, ok := s.Target.(*ast.Identifier); ok {
		if entry, found := l.table.Find(ident.Name); found {
			if err := l.checkCompatible(s.Location, entry.Type, valType, "assigning to '"+ident.Name+"'"); err != nil {
				return nil, err
			}
		}
	}
	return &runtime.AssignStmt{Loc: loc(s.Location), Target: target, Value: val}, nil
}

func (l *Linker) linkCompoundAssignStmt(s *ast.CompoundAssignStmt) (runtime.Executor, error) {
	target, err := l.linkTarget(s.Target)
	if err != nil {
		return nil, err
	}
	val, _, err := l.linkExpr(s.Value)
	if err != nil {
		return nil, err
	}
	return &runtime.CompoundAssignStmt{Loc: loc(s.Location), Target: target, Op: s.Op, Value: val}, nil
}

func (l *Linker) linkNudgeStmt(s *ast.NudgeStmt) (runtime.Executor, error) {
	target, err := l.linkTarget(s.Target)
	if err != nil {
		return nil, err
	}
	return &runtime.NudgeStmt{Loc: loc(s.Location), Target: target, Op: s.Op}, nil
}

// linkGuard resolves a shared if-guard/while-guard clause, binding Name
// into the already-pushed current frame and synthesizing the Cond
// evaluator the grammar leaves implicit (spec.md §4.6, §4.7: the guard
// form has no explicit boolean expression — "true when the tested value
// is non-Void under the declared type").
func (l *Linker) linkGuard(g *ast.GuardClause) (*runtime.Guard, runtime.Evaluator, error) {
	srcNode, srcType, err := l.linkExpr(g.Source)
	if err != nil {
		return nil, nil, err
	}
	declType, err := l.resolveDeclaredType(g.Type, srcType, true)
	if err != nil {
		return nil, nil, err
	}
	l.table.Add(g.Name, symtab.Guard, declType, voidPlaceholder)
	rg := &runtime.Guard{Name: g.Name, Type: declType, Source: srcNode}
	cond := &runtime.GuardCond{Loc: loc(g.Source.Pos()), Name: g.Name}
	return rg, cond, nil
}

func (l *Linker) linkIfStmt(s *ast.IfStmt) (runtime.Executor, error) {
	out := &runtime.IfStmt{Loc: loc(s.Location)}
	if s.Guard != nil {
		l.table.Push()
		defer l.table.Pop()
		guard, cond, err := l.linkGuard(s.Guard)
		if err != nil {
			return nil, err
		}
		out.Guard = guard
		out.Cond = cond
	} else {
		cond, condType, err := l.linkExpr(s.Cond)
		if err != nil {
			return nil, err
		}
		if !condType.Has(types.Bool) {
			return nil, l.errorAt(s.Cond.Pos(), "If condition must be bool, got %s", condType.String())
		}
		out.Cond = cond
	}
	then, err := l.linkStatementAsExecutor(s.Then)
	if err != nil {
		return nil, err
	}
	out.Then = then
	if s.Else != nil {
		elseNode, err := l.linkStatementAsExecutor(s.Else)
		if err != nil {
			return nil, err
		}
		out.Else = elseNode
	}
	return out, nil
}

func (l *Linker) linkWhileStmt(s *ast.WhileStmt) (runtime.Executor, error) {
	l.table.Push()
	defer l.table.Pop()

	out := &runtime.WhileStmt{Loc: loc(s.Location)}
	if s.Guard != nil {
		guard, cond, err := l.linkGuard(s.Guard)
		if err != nil {
			return nil, err
		}
		out.Guard = guard
		out.Cond = cond
	} else {
		cond, condType, err := l.linkExpr(s.Cond)
		if err != nil {
			return nil, err
		}
		if !condType.Has(types.Bool) {
			return nil, l.errorAt(s.Cond.Pos(), "While condition must be bool, got %s", condType.String())
		}
		out.Cond = cond
	}
	body, err := l.linkStatementAsExecutor(s.Body)
	if err != nil {
		return nil, err
	}
	out.Body = body
	return out, nil
}

func (l *Linker) linkForStmt(s *ast.ForStmt) (runtime.Executor, error) {
	l.table.Push()
	defer l.table.Pop()

	out := &runtime.ForStmt{Loc: loc(s.Location)}
	if s.Init != nil {
		init, err := l.linkStatement(s.Init)
		if err != nil {
			return nil, err
		}
		out.Init = init
	}
	if s.Cond != nil {
		cond, condType, err := l.linkExpr(s.Cond)
		if err != nil {
			return nil, err
		}
		if !condType.Has(types.Bool) {
			return nil, l.errorAt(s.Cond.Pos(), "For condition must be bool, got %s", condType.String())
		}
		out.Cond = cond
	}
	if s.Post != nil {
		post, err := l.linkStatement(s.Post)
		if err != nil {
			return nil, err
		}
		out.Post = post
	}
	body, err := l.linkStatementAsExecutor(s.Body)
	if err != nil {
		return nil, err
	}
	out.Body = body
	return out, nil
}

// linkForeachStmt implements spec.md §4.6's foreach inference: a `var`/
// `var?` iteration type is taken from the source's iterable element type
// (Type.getIterables).
func (l *Linker) linkForeachStmt(s *ast.ForeachStmt) (runtime.Executor, error) {
	src, srcType, err := l.linkExpr(s.Source)
	if err != nil {
		return nil, err
	}
	var elemType types.Type
	if s.Type.IsVar {
		et, ok := srcType.GetIterables()
		if !ok {
			return nil, l.errorAt(s.Source.Pos(), "Value of type %s is not iterable", srcType.String())
		}
		elemType = et
		if !s.Type.Nullable {
			elemType = elemType.NonNull()
		}
	} else {
		declType, err := l.resolveDeclaredType(s.Type, types.Type{}, false)
		if err != nil {
			return nil, err
		}
		elemType = declType
	}

	l.table.Push()
	defer l.table.Pop()
	l.table.Add(s.Name, symtab.Variable, elemType, voidPlaceholder)
	body, err := l.linkStatementAsExecutor(s.Body)
	if err != nil {
		return nil, err
	}
	return &runtime.ForeachStmt{Loc: loc(s.Location), Name: s.Name, Type: elemType, Source: src, Body: body}, nil
}

func (l *Linker) linkReturnStmt(s *ast.ReturnStmt) (runtime.Executor, error) {
	r := &runtime.ReturnStmt{Loc: loc(s.Location)}
	if s.Value != nil {
		val, _, err := l.linkExpr(s.Value)
		if err != nil {
			return nil, err
		}
		r.Value = val
	}
	return r, nil
}

// linkTryStmt implements spec.md §4.6/§4.7: each catch clause introduces
// a scoped binding of the declared catch type, tested in declaration
// order at runtime; finally is linked in its own frame, run unconditionally.
func (l *Linker) linkTryStmt(s *ast.TryStmt) (runtime.Executor, error) {
	body := l.linkBlock(s.Body, true)
	out := &runtime.TryStmt{Loc: loc(s.Location), Body: body}
	for _, c := range s.Catches {
		catchType, ok := baseType(c.Type.Name)
		if !ok {
			return nil, l.errorAt(c.Type.Location, "Unknown type '%s'", c.Type.Name)
		}
		if c.Type.Nullable {
			catchType = catchType.Nullable()
		}
		l.table.Push()
		if c.Name != "" {
			l.table.Add(c.Name, symtab.Exception, catchType, voidPlaceholder)
		}
		cbody := l.linkBlock(c.Body, false)
		l.table.Pop()
		out.Catches = append(out.Catches, runtime.CatchClause{Name: c.Name, Type: catchType, Body: cbody})
	}
	if s.Finally != nil {
		out.Finally = l.linkBlock(s.Finally, true)
	}
	return out, nil
}

// linkTarget resolves the assignable subset of Expression (spec.md
// §4.2's Target production) to a runtime.Modifier.
func (l *Linker) linkTarget(expr ast.Expression) (runtime.Modifier, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		entry, ok := l.table.Find(e.Name)
		if !ok {
			return nil, l.errorAt(e.Location, "Undefined identifier '%s'", e.Name)
		}
		if !entry.Flavour.Mutable() {
			return nil, l.errorAt(e.Location, "Cannot assign to %s '%s'", entry.Flavour.String(), e.Name)
		}
		return &runtime.VariableTarget{Loc: loc(e.Location), Name: e.Name}, nil
	case *ast.PropertyExpr:
		recv, _, err := l.linkExpr(e.Receiver)
		if err != nil {
			return nil, err
		}
		return &runtime.PropertyTarget{Loc: loc(e.Location), Receiver: recv, Name: e.Name}, nil
	case *ast.IndexExpr:
		recv, _, err := l.linkExpr(e.Receiver)
		if err != nil {
			return nil, err
		}
		idx, _, err := l.linkExpr(e.Index)
		if err != nil {
			return nil, err
		}
		return &runtime.IndexTarget{Loc: loc(e.Location), Receiver: recv, Index: idx}, nil
	default:
		return nil, l.errorAt(expr.Pos(), "Invalid assignment target")
	}
}
