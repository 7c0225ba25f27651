package parser

import (
	"fmt"

	"github.com/cwbudde/egg/internal/ast"
	"github.com/cwbudde/egg/internal/diag"
	"github.com/cwbudde/egg/internal/lexer"
	"github.com/cwbudde/egg/internal/token"
)

// Error is a fatal parse error, formatted per spec.md §6/§7 as
// "source(line,col): reason".
type Error struct {
	Source string
	Line   int
	Column int
	Reason string
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("%s(%d,%d): %s", e.Source, e.Line, e.Column, e.Reason)
}

var typeNames = map[string]bool{
	"void": true, "bool": true, "int": true, "float": true,
	"string": true, "object": true, "any": true, "var": true,
}

// Parser builds an ast.Program from a single source's token stream.
// Grounded on the teacher's internal/parser (TokenCursor peek/commit,
// expressions.go precedence climbing), trimmed to egg's flat grammar.
type Parser struct {
	source string
	cur    *cursor
	logger diag.Logger
}

// FromString builds a Parser over input, tagging diagnostics with the
// given source identifier.
func FromString(source, input string) (*Parser, error) {
	tz := lexer.FromString(source, input)
	cur, err := newCursor(tz)
	if err != nil {
		if lexErr, ok := err.(*lexer.Error); ok {
			return nil, &Error{Source: lexErr.Source, Line: lexErr.Line, Column: lexErr.Column, Reason: lexErr.Reason}
		}
		return nil, err
	}
	return &Parser{source: source, cur: cur}, nil
}

// WithLogger attaches a Logger the Parser may use for non-fatal
// diagnostics (currently unused, reserved for parity with the
// Tokenizer/Linker's withLogger convention).
func (p *Parser) WithLogger(l diag.Logger) *Parser {
	p.logger = l
	return p
}

func (p *Parser) loc(tok token.Token) diag.Location {
	return diag.NewLocation(p.source, tok.Line, tok.Column)
}

func (p *Parser) fail(tok token.Token, format string, args ...any) error {
	return &Error{Source: p.source, Line: tok.Line, Column: tok.Column, Reason: fmt.Sprintf(format, args...)}
}

// Parse parses the whole input as a Program (spec.md §4.2).
func (p *Parser) Parse() (*ast.Program, error) {
	if p.cur.IsEOF() {
		return nil, &Error{Source: p.source, Reason: "Empty input"}
	}
	prog := &ast.Program{Source: p.source}
	for !p.cur.IsEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func (p *Parser) expectPunct(s string) (token.Token, error) {
	tok := p.cur.Current()
	if tok.Type == token.Punctuation && tok.Value == s {
		return p.cur.Advance(), nil
	}
	return token.Token{}, p.fail(tok, "Expected %q, but got %q instead", s, tok.Value)
}

func (p *Parser) isPunct(s string) bool {
	tok := p.cur.Current()
	return tok.Type == token.Punctuation && tok.Value == s
}

func (p *Parser) isIdent(name string) bool {
	tok := p.cur.Current()
	return tok.Type == token.Identifier && tok.Value == name
}

func (p *Parser) expectIdentifier() (token.Token, error) {
	tok := p.cur.Current()
	if tok.Type != token.Identifier {
		return token.Token{}, p.fail(tok, "Expected identifier, but got %q instead", tok.Value)
	}
	return p.cur.Advance(), nil
}

// looksLikeType reports whether the current token could start a Type
// production: a type keyword, optionally followed by `?`.
func (p *Parser) looksLikeType() bool {
	tok := p.cur.Current()
	return tok.Type == token.Identifier && typeNames[tok.Value]
}

func (p *Parser) parseType() (*ast.TypeExpr, error) {
	tok := p.cur.Current()
	if tok.Type != token.Identifier || !typeNames[tok.Value] {
		return nil, p.fail(tok, "Expected type name, but got %q instead", tok.Value)
	}
	p.cur.Advance()
	te := &ast.TypeExpr{Location: p.loc(tok), Name: tok.Value, IsVar: tok.Value == "var"}
	if p.isPunct("?") {
		p.cur.Advance()
		te.Nullable = true
	}
	return te, nil
}

// ---- Statements ----

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.isPunct("{"):
		return p.parseBlock()
	case p.isIdent("assert"):
		return p.parseAssert()
	case p.isIdent("if"):
		return p.parseIf()
	case p.isIdent("for"):
		return p.parseFor()
	case p.isIdent("foreach"):
		return p.parseForeach()
	case p.isIdent("while"):
		return p.parseWhile()
	case p.isIdent("return"):
		return p.parseReturn()
	case p.isIdent("try"):
		return p.parseTry()
	case p.looksLikeType():
		return p.parseDeclaration()
	default:
		return p.parseSimpleStatement()
	}
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.expectPunct("{")
	if err != nil {
		return nil, err
	}
	b := &ast.Block{Location: p.loc(open)}
	for !p.isPunct("}") {
		if p.cur.IsEOF() {
			return nil, p.fail(p.cur.Current(), "Expected '}', but got end-of-file instead")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, stmt)
	}
	p.cur.Advance()
	return b, nil
}

func (p *Parser) parseAssert() (ast.Statement, error) {
	tok := p.cur.Advance() // 'assert'
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &ast.AssertStmt{Location: p.loc(tok), Expr: expr}, nil
}

// parseGuard parses the shared `(var name[: Type] = expr)` shape of
// if-guard/while-guard, or a plain boolean condition if the `var`
// keyword is absent.
func (p *Parser) parseGuard() (*ast.GuardClause, ast.Expression, error) {
	if _, err := p.expectPunct("("); err != nil {
		return nil, nil, err
	}
	if p.isIdent("var") {
		p.cur.Advance()
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, nil, err
		}
		var typ *ast.TypeExpr
		if p.isPunct(":") {
			p.cur.Advance()
			typ, err = p.parseType()
			if err != nil {
				return nil, nil, err
			}
		} else {
			typ = &ast.TypeExpr{Location: p.loc(name), Name: "var", IsVar: true}
		}
		if _, err := p.expectPunct("="); err != nil {
			return nil, nil, err
		}
		src, err := p.parseExpression()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, nil, err
		}
		return &ast.GuardClause{Name: name.Value, Type: typ, Source: src}, nil, nil
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, nil, err
	}
	return nil, cond, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	tok := p.cur.Advance() // 'if'
	guard, cond, err := p.parseGuard()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Statement
	if p.isIdent("else") {
		p.cur.Advance()
		elseStmt, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Location: p.loc(tok), Guard: guard, Cond: cond, Then: then, Else: elseStmt}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	tok := p.cur.Advance() // 'while'
	guard, cond, err := p.parseGuard()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Location: p.loc(tok), Guard: guard, Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	tok := p.cur.Advance() // 'for'
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var init ast.Statement
	var err error
	if !p.isPunct(";") {
		init, err = p.parseForClauseStatement()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	var cond ast.Expression
	if !p.isPunct(";") {
		cond, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	var post ast.Statement
	if !p.isPunct(")") {
		post, err = p.parseForClauseStatement()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Location: p.loc(tok), Init: init, Cond: cond, Post: post, Body: body}, nil
}

// parseForClauseStatement parses the init/post slot of a C-style for
// loop: a variable declaration or an assignment/mutate/nudge/call
// expression, without a trailing `;` (the caller consumes separators).
func (p *Parser) parseForClauseStatement() (ast.Statement, error) {
	if p.looksLikeType() {
		return p.parseVarDeclNoSemi()
	}
	return p.parseSimpleStatementNoSemi()
}

func (p *Parser) parseForeach() (ast.Statement, error) {
	tok := p.cur.Advance() // 'foreach'
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	if _, err := p.expectIdentifierLiteral("var"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	var typ *ast.TypeExpr
	if p.isPunct(":") {
		p.cur.Advance()
		typ, err = p.parseType()
		if err != nil {
			return nil, err
		}
	} else {
		typ = &ast.TypeExpr{Location: p.loc(name), Name: "var", IsVar: true}
	}
	if _, err := p.expectIdentifierLiteral("in"); err != nil {
		return nil, err
	}
	src, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForeachStmt{Location: p.loc(tok), Name: name.Value, Type: typ, Source: src, Body: body}, nil
}

func (p *Parser) expectIdentifierLiteral(name string) (token.Token, error) {
	tok := p.cur.Current()
	if tok.Type != token.Identifier || tok.Value != name {
		return token.Token{}, p.fail(tok, "Expected %q, but got %q instead", name, tok.Value)
	}
	return p.cur.Advance(), nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	tok := p.cur.Advance() // 'return'
	r := &ast.ReturnStmt{Location: p.loc(tok)}
	if !p.isPunct(";") {
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		r.Value = val
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return r, nil
}

func (p *Parser) parseTry() (ast.Statement, error) {
	tok := p.cur.Advance() // 'try'
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	t := &ast.TryStmt{Location: p.loc(tok), Body: body}
	for p.isIdent("catch") {
		catchTok := p.cur.Advance()
		if _, err := p.expectPunct("("); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		cbody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		t.Catches = append(t.Catches, ast.CatchClause{Location: p.loc(catchTok), Name: name.Value, Type: typ, Body: cbody})
	}
	if p.isIdent("finally") {
		p.cur.Advance()
		fin, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		t.Finally = fin
	}
	return t, nil
}

func (p *Parser) parseDeclaration() (ast.Statement, error) {
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if p.isPunct("(") {
		return p.parseFuncDeclFrom(typ, name)
	}
	return p.parseVarDeclRest(typ, name, true)
}

func (p *Parser) parseVarDeclNoSemi() (ast.Statement, error) {
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	return p.parseVarDeclRest(typ, name, false)
}

func (p *Parser) parseVarDeclRest(typ *ast.TypeExpr, name token.Token, consumeSemi bool) (ast.Statement, error) {
	v := &ast.VarDecl{Location: p.loc(name), Name: name.Value, Type: typ}
	if p.isPunct("=") {
		p.cur.Advance()
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		v.Init = init
	}
	if consumeSemi {
		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (p *Parser) parseFuncDeclFrom(ret *ast.TypeExpr, name token.Token) (ast.Statement, error) {
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	f := &ast.FuncDecl{Location: p.loc(name), Name: name.Value, Return: ret}
	for !p.isPunct(")") {
		if len(f.Params) > 0 {
			if _, err := p.expectPunct(","); err != nil {
				return nil, err
			}
		}
		ptyp, err := p.parseType()
		if err != nil {
			return nil, err
		}
		pname, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		f.Params = append(f.Params, ast.Param{Name: pname.Value, Type: ptyp})
	}
	p.cur.Advance() // ')'
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	f.Body = body
	return f, nil
}

// parseSimpleStatement parses assignment, compound-mutate, nudge, and
// call-expression-statement forms, consuming the trailing `;`.
func (p *Parser) parseSimpleStatement() (ast.Statement, error) {
	stmt, err := p.parseSimpleStatementNoSemi()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return stmt, nil
}

var compoundOps = map[string]bool{"+=": true, "-=": true, "*=": true, "/=": true, "%=": true}

func (p *Parser) parseSimpleStatementNoSemi() (ast.Statement, error) {
	startTok := p.cur.Current()
	if startTok.Type == token.Punctuation && (startTok.Value == "++" || startTok.Value == "--") {
		p.cur.Advance()
		target, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.NudgeStmt{Location: p.loc(startTok), Target: target, Op: startTok.Value}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	cur := p.cur.Current()
	switch {
	case cur.Type == token.Punctuation && cur.Value == "=":
		p.cur.Advance()
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Location: p.loc(startTok), Target: expr, Value: val}, nil
	case cur.Type == token.Punctuation && compoundOps[cur.Value]:
		p.cur.Advance()
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.CompoundAssignStmt{Location: p.loc(startTok), Target: expr, Op: cur.Value, Value: val}, nil
	case cur.Type == token.Punctuation && (cur.Value == "++" || cur.Value == "--"):
		p.cur.Advance()
		return &ast.NudgeStmt{Location: p.loc(startTok), Target: expr, Op: cur.Value}, nil
	default:
		call, ok := expr.(*ast.CallExpr)
		if !ok {
			return nil, p.fail(startTok, "Expected statement")
		}
		return &ast.ExprStmt{Location: p.loc(startTok), Call: call}, nil
	}
}
