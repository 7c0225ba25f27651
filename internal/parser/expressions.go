package parser

import (
	"github.com/cwbudde/egg/internal/ast"
	"github.com/cwbudde/egg/internal/token"
)

// parseExpression parses a full expression at the lowest precedence
// (ternary), matching spec.md §4.2's operator set.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseTernary()
}

// parseTernary implements the right-associative `cond ? then : else`.
func (p *Parser) parseTernary() (ast.Expression, error) {
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.isPunct("?") {
		tok := p.cur.Advance()
		then, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		elseExpr, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		return &ast.TernaryExpr{Location: p.loc(tok), Cond: cond, Then: then, Else: elseExpr}, nil
	}
	return cond, nil
}

func (p *Parser) binaryLevel(next func() (ast.Expression, error), ops ...string) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		cur := p.cur.Current()
		matched := ""
		if cur.Type == token.Punctuation {
			for _, op := range ops {
				if cur.Value == op {
					matched = op
					break
				}
			}
		}
		if matched == "" {
			return left, nil
		}
		tok := p.cur.Advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Location: p.loc(tok), Op: matched, Left: left, Right: right}
	}
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	return p.binaryLevel(p.parseLogicalAnd, "||")
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	return p.binaryLevel(p.parseEquality, "&&")
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.binaryLevel(p.parseRelational, "==", "!=")
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	return p.binaryLevel(p.parseAdditive, "<=", ">=", "<", ">")
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.binaryLevel(p.parseMultiplicative, "+", "-")
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.binaryLevel(p.parseUnary, "*", "/", "%")
}

// parseUnary implements prefix `!` and `-`.
func (p *Parser) parseUnary() (ast.Expression, error) {
	cur := p.cur.Current()
	if cur.Type == token.Punctuation && (cur.Value == "!" || cur.Value == "-") {
		tok := p.cur.Advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Location: p.loc(tok), Op: tok.Value, Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix implements the postfix chain `.identifier`, `[expr]`,
// `(args…)` over a primary expression.
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		cur := p.cur.Current()
		switch {
		case cur.Type == token.Punctuation && cur.Value == ".":
			p.cur.Advance()
			name, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			expr = &ast.PropertyExpr{Location: p.loc(cur), Receiver: expr, Name: name.Value}
		case cur.Type == token.Punctuation && cur.Value == "[":
			p.cur.Advance()
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{Location: p.loc(cur), Receiver: expr, Index: idx}
		case cur.Type == token.Punctuation && cur.Value == "(":
			p.cur.Advance()
			var args []ast.Expression
			for !p.isPunct(")") {
				if len(args) > 0 {
					if _, err := p.expectPunct(","); err != nil {
						return nil, err
					}
				}
				if p.cur.IsEOF() {
					return nil, p.fail(p.cur.Current(), "Expected function argument, but got end-of-file instead")
				}
				arg, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
			if !p.isPunct(")") {
				return nil, p.fail(p.cur.Current(), "Expected function argument, but got end-of-file instead")
			}
			p.cur.Advance()
			expr = &ast.CallExpr{Location: p.loc(cur), Callee: expr, Args: args}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur.Current()

	switch tok.Type {
	case token.Integer:
		p.cur.Advance()
		return &ast.IntLiteral{Location: p.loc(tok), Raw: tok.Value}, nil
	case token.Float:
		p.cur.Advance()
		return &ast.FloatLiteral{Location: p.loc(tok), Raw: tok.Value}, nil
	case token.String:
		p.cur.Advance()
		return &ast.StringLiteral{Location: p.loc(tok), Value: tok.Value}, nil
	case token.Identifier:
		switch tok.Value {
		case "null":
			p.cur.Advance()
			return &ast.NullLiteral{Location: p.loc(tok)}, nil
		case "true":
			p.cur.Advance()
			return &ast.BoolLiteral{Location: p.loc(tok), Value: true}, nil
		case "false":
			p.cur.Advance()
			return &ast.BoolLiteral{Location: p.loc(tok), Value: false}, nil
		default:
			p.cur.Advance()
			return &ast.Identifier{Location: p.loc(tok), Name: tok.Value}, nil
		}
	case token.Punctuation:
		switch tok.Value {
		case "(":
			p.cur.Advance()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return expr, nil
		case "[":
			return p.parseArrayLiteral()
		case "{":
			return p.parseObjectLiteral()
		}
	}
	return nil, p.fail(tok, "Unexpected token %q", tok.Value)
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	open := p.cur.Advance() // '['
	lit := &ast.ArrayLiteral{Location: p.loc(open)}
	for !p.isPunct("]") {
		if len(lit.Elements) > 0 {
			if _, err := p.expectPunct(","); err != nil {
				return nil, err
			}
		}
		el, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		lit.Elements = append(lit.Elements, el)
	}
	p.cur.Advance() // ']'
	return lit, nil
}

func (p *Parser) parseObjectLiteral() (ast.Expression, error) {
	open := p.cur.Advance() // '{'
	lit := &ast.ObjectLiteral{Location: p.loc(open)}
	for !p.isPunct("}") {
		if len(lit.Entries) > 0 {
			if _, err := p.expectPunct(","); err != nil {
				return nil, err
			}
		}
		var key string
		keyTok := p.cur.Current()
		switch keyTok.Type {
		case token.Identifier:
			key = keyTok.Value
			p.cur.Advance()
		case token.String:
			key = keyTok.Value
			p.cur.Advance()
		default:
			return nil, p.fail(keyTok, "Expected object key, but got %q instead", keyTok.Value)
		}
		if _, err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		lit.Entries = append(lit.Entries, ast.ObjectEntry{Key: key, Value: val})
	}
	p.cur.Advance() // '}'
	return lit, nil
}
