// Package parser implements egg's recursive-descent Parser (spec.md
// §4.2): arbitrary-length lookahead via peek/commit, skipping whitespace
// and comment tokens while tracking the previous non-skipped token kind
// for diagnostics.
//
// Grounded on the teacher's internal/parser/cursor.go TokenCursor
// (immutable peek/Advance/Mark/ResetTo cursor) and expressions.go
// (precedence-climbing expression parser), trimmed to egg's flat
// grammar and adapted to egg's fallible Tokenizer.NextToken.
package parser

import (
	"github.com/cwbudde/egg/internal/lexer"
	"github.com/cwbudde/egg/internal/token"
)

// cursor buffers the non-trivia tokens of one source so the Parser can
// peek arbitrarily far ahead and backtrack via Mark/Reset.
type cursor struct {
	toks    []token.Token
	pos     int
	prevTyp token.Type
}

// newCursor drains tz into a buffer of non-trivia tokens, stopping at
// the first fatal lexer error (spec.md §4.2: "all parser errors are
// fatal to that parse call").
func newCursor(tz *lexer.Tokenizer) (*cursor, error) {
	var toks []token.Token
	for {
		tok, err := tz.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.Whitespace || tok.Type == token.Comment {
			continue
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return &cursor{toks: toks, prevTyp: token.EOF}, nil
}

// mark is a saved cursor position for backtracking.
type mark int

func (c *cursor) Mark() mark { return mark(c.pos) }

func (c *cursor) Reset(m mark) { c.pos = int(m) }

func (c *cursor) Current() token.Token { return c.peekAt(0) }

func (c *cursor) peekAt(n int) token.Token {
	idx := c.pos + n
	if idx >= len(c.toks) {
		return c.toks[len(c.toks)-1] // EOF
	}
	return c.toks[idx]
}

// Advance consumes and returns the current token.
func (c *cursor) Advance() token.Token {
	tok := c.Current()
	if tok.Type != token.EOF {
		c.pos++
	}
	c.prevTyp = tok.Type
	return tok
}

func (c *cursor) IsEOF() bool { return c.Current().Type == token.EOF }
