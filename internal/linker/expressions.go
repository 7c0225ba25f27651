package linker

import (
	"strconv"

	"github.com/cwbudde/egg/internal/ast"
	"github.com/cwbudde/egg/internal/runtime"
	"github.com/cwbudde/egg/internal/types"
	"github.com/cwbudde/egg/internal/value"
)

// parseFloat parses a decimal float literal's raw source text (spec.md
// §4.2's Float token already constrains the grammar; this only converts).
func parseFloat(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}

// linkExpr dispatches one ast.Expression to its runtime.Evaluator,
// returning the evaluator's resolved static Type alongside it so the
// caller (a VarDecl initializer, a Binary operand, a Call argument) can
// check compatibility without re-walking the node (spec.md §4.6).
func (l *Linker) linkExpr(expr ast.Expression) (runtime.Evaluator, types.Type, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return l.linkIdentifier(e)
	case *ast.NullLiteral:
		return &runtime.Literal{Loc: loc(e.Location), Val: value.Null, Typed: types.NULLT}, types.NULLT, nil
	case *ast.BoolLiteral:
		return &runtime.Literal{Loc: loc(e.Location), Val: value.Bool(e.Value), Typed: types.BOOL}, types.BOOL, nil
	case *ast.IntLiteral:
		lit := runtime.NewIntLiteral(loc(e.Location), e.Raw)
		return lit, types.INT, nil
	case *ast.FloatLiteral:
		return l.linkFloatLiteral(e)
	case *ast.StringLiteral:
		return &runtime.Literal{Loc: loc(e.Location), Val: value.String(e.Value), Typed: types.STRING}, types.STRING, nil
	case *ast.ArrayLiteral:
		return l.linkArrayLiteral(e)
	case *ast.ObjectLiteral:
		return l.linkObjectLiteral(e)
	case *ast.UnaryExpr:
		return l.linkUnaryExpr(e)
	case *ast.BinaryExpr:
		return l.linkBinaryExpr(e)
	case *ast.TernaryExpr:
		return l.linkTernaryExpr(e)
	case *ast.PropertyExpr:
		return l.linkPropertyExpr(e)
	case *ast.IndexExpr:
		return l.linkIndexExpr(e)
	case *ast.CallExpr:
		return l.linkCallExpr(e)
	default:
		return nil, types.Type{}, l.errorAt(expr.Pos(), "Unsupported expression")
	}
}

func (l *Linker) linkIdentifier(e *ast.Identifier) (runtime.Evaluator, types.Type, error) {
	entry, ok := l.table.Find(e.Name)
	if !ok {
		return nil, types.Type{}, l.errorAt(e.Location, "Undefined identifier '%s'", e.Name)
	}
	return &runtime.VariableGet{Loc: loc(e.Location), Name: e.Name, Typed: entry.Type}, entry.Type, nil
}

func (l *Linker) linkFloatLiteral(e *ast.FloatLiteral) (runtime.Evaluator, types.Type, error) {
	f, err := parseFloat(e.Raw)
	if err != nil {
		return nil, types.Type{}, l.errorAt(e.Location, "Invalid float literal '%s'", e.Raw)
	}
	return &runtime.Literal{Loc: loc(e.Location), Val: value.Float(f), Typed: types.FLOAT}, types.FLOAT, nil
}

func (l *Linker) linkArrayLiteral(e *ast.ArrayLiteral) (runtime.Evaluator, types.Type, error) {
	elems := make([]runtime.Evaluator, len(e.Elements))
	for i, el := range e.Elements {
		node, _, err := l.linkExpr(el)
		if err != nil {
			return nil, types.Type{}, err
		}
		elems[i] = node
	}
	typed := types.OBJECT.WithIterable(types.Iterable{Element: types.ANYQ})
	return &runtime.ArrayLit{Loc: loc(e.Location), Elements: elems, Typed: typed}, typed, nil
}

func (l *Linker) linkObjectLiteral(e *ast.ObjectLiteral) (runtime.Evaluator, types.Type, error) {
	keys := make([]string, len(e.Entries))
	entries := make([]runtime.Evaluator, len(e.Entries))
	for i, ent := range e.Entries {
		node, _, err := l.linkExpr(ent.Value)
		if err != nil {
			return nil, types.Type{}, err
		}
		keys[i] = ent.Key
		entries[i] = node
	}
	typed := types.OBJECT
	return &runtime.ObjectLit{Loc: loc(e.Location), Keys: keys, Entries: entries, Typed: typed}, typed, nil
}

func (l *Linker) linkUnaryExpr(e *ast.UnaryExpr) (runtime.Evaluator, types.Type, error) {
	operand, operandType, err := l.linkExpr(e.Operand)
	if err != nil {
		return nil, types.Type{}, err
	}
	var resultType types.Type
	switch e.Op {
	case "!":
		if !operandType.Has(types.Bool) {
			return nil, types.Type{}, l.errorAt(e.Location, "Unary '!' requires bool, got %s", operandType.String())
		}
		resultType = types.BOOL
	case "-":
		num := types.Of(types.Int, types.Float)
		n := operandType.CompatibleType(num)
		if n.IsEmpty() {
			return nil, types.Type{}, l.errorAt(e.Location, "Unary '-' requires a number, got %s", operandType.String())
		}
		if n.Has(types.Float) {
			resultType = types.FLOAT
		} else {
			resultType = types.INT
		}
	default:
		return nil, types.Type{}, l.errorAt(e.Location, "Unknown unary operator '%s'", e.Op)
	}
	return &runtime.Unary{Loc: loc(e.Location), Op: e.Op, Operand: operand, Typed: resultType}, resultType, nil
}

func (l *Linker) linkBinaryExpr(e *ast.BinaryExpr) (runtime.Evaluator, types.Type, error) {
	left, leftType, err := l.linkExpr(e.Left)
	if err != nil {
		return nil, types.Type{}, err
	}
	right, rightType, err := l.linkExpr(e.Right)
	if err != nil {
		return nil, types.Type{}, err
	}
	resultType := types.Binary(e.Op, leftType, rightType)
	if resultType.IsEmpty() {
		return nil, types.Type{}, l.errorAt(e.Location, "Operator '%s' is not defined for %s and %s", e.Op, leftType.String(), rightType.String())
	}
	return &runtime.Binary{Loc: loc(e.Location), Op: e.Op, Left: left, Right: right, Typed: resultType}, resultType, nil
}

func (l *Linker) linkTernaryExpr(e *ast.TernaryExpr) (runtime.Evaluator, types.Type, error) {
	cond, condType, err := l.linkExpr(e.Cond)
	if err != nil {
		return nil, types.Type{}, err
	}
	if !condType.Has(types.Bool) {
		return nil, types.Type{}, l.errorAt(e.Cond.Pos(), "Ternary condition must be bool, got %s", condType.String())
	}
	thenNode, thenType, err := l.linkExpr(e.Then)
	if err != nil {
		return nil, types.Type{}, err
	}
	elseNode, elseType, err := l.linkExpr(e.Else)
	if err != nil {
		return nil, types.Type{}, err
	}
	resultType := thenType.CompatibleType(elseType)
	if resultType.IsEmpty() {
		resultType = types.ANYQ
	}
	return &runtime.Ternary{Loc: loc(e.Location), Cond: cond, Then: thenNode, Else: elseNode, Typed: resultType}, resultType, nil
}

func (l *Linker) linkPropertyExpr(e *ast.PropertyExpr) (runtime.Evaluator, types.Type, error) {
	recv, recvType, err := l.linkExpr(e.Receiver)
	if err != nil {
		return nil, types.Type{}, err
	}
	resultType := types.ANYQ
	if recvType.Has(types.String) && e.Name == "length" {
		resultType = types.INT
	}
	return &runtime.PropertyGet{Loc: loc(e.Location), Receiver: recv, Name: e.Name, Typed: resultType}, resultType, nil
}

func (l *Linker) linkIndexExpr(e *ast.IndexExpr) (runtime.Evaluator, types.Type, error) {
	recv, recvType, err := l.linkExpr(e.Receiver)
	if err != nil {
		return nil, types.Type{}, err
	}
	idx, _, err := l.linkExpr(e.Index)
	if err != nil {
		return nil, types.Type{}, err
	}
	resultType := types.ANYQ
	if elem, ok := recvType.GetIterables(); ok {
		resultType = elem
	}
	return &runtime.IndexGet{Loc: loc(e.Location), Receiver: recv, Index: idx, Typed: resultType}, resultType, nil
}

func (l *Linker) linkCallExpr(e *ast.CallExpr) (runtime.Evaluator, types.Type, error) {
	callee, calleeType, err := l.linkExpr(e.Callee)
	if err != nil {
		return nil, types.Type{}, err
	}
	callable, ok := calleeType.GetCallables()
	if !ok {
		return nil, types.Type{}, l.errorAt(e.Callee.Pos(), "Value of type %s is not callable", calleeType.String())
	}
	args := make([]runtime.Evaluator, len(e.Args))
	for i, a := range e.Args {
		node, _, err := l.linkExpr(a)
		if err != nil {
			return nil, types.Type{}, err
		}
		args[i] = node
	}
	resultType := callable.Return
	if resultType.IsEmpty() {
		resultType = types.ANYQ
	}
	return &runtime.Call{Loc: loc(e.Location), Callee: callee, Args: args, Typed: resultType}, resultType, nil
}
