package lexer

import (
	"testing"

	"github.com/cwbudde/egg/internal/token"
)

func collectAll(t *testing.T, tz *Tokenizer) []token.Token {
	t.Helper()
	var toks []token.Token
	for {
		tok, err := tz.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func nonTrivia(toks []token.Token) []token.Token {
	var out []token.Token
	for _, tok := range toks {
		if tok.Type == token.Whitespace || tok.Type == token.Comment {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func TestRawConcatenationReproducesInput(t *testing.T) {
	src := "var x = 1 + 2; // comment\n/* block */ print(\"hi\")"
	tz := FromString("t", src)
	toks := collectAll(t, tz)
	var rebuilt string
	for _, tok := range toks {
		rebuilt += tok.Raw
	}
	if rebuilt != src {
		t.Fatalf("raw concatenation mismatch:\n got: %q\nwant: %q", rebuilt, src)
	}
}

func TestWhitespaceNormalizesLineSeparators(t *testing.T) {
	src := "a\r\nb\rc d"
	tz := FromString("t", src)
	toks := collectAll(t, tz)
	var idents, spaces []string
	for _, tok := range toks {
		switch tok.Type {
		case token.Identifier:
			idents = append(idents, tok.Value)
		case token.Whitespace:
			spaces = append(spaces, tok.Value)
		}
	}
	wantSpaces := []string{"\n", "\n", " "}
	if len(spaces) != len(wantSpaces) || spaces[0] != wantSpaces[0] || spaces[1] != wantSpaces[1] || spaces[2] != wantSpaces[2] {
		t.Fatalf("whitespace values: got %q, want %q", spaces, wantSpaces)
	}
	want := []string{"a", "b", "c", "d"}
	if len(idents) != len(want) {
		t.Fatalf("got %v, want %v", idents, want)
	}
	for i := range want {
		if idents[i] != want[i] {
			t.Fatalf("got %v, want %v", idents, want)
		}
	}
}

func TestCRLFCollapsesToSingleLine(t *testing.T) {
	tz := FromString("t", "a\r\nb")
	collectAll(t, tz) // drain
	tz2 := FromString("t", "a\r\nb")
	tok, _ := tz2.NextToken() // 'a'
	if tok.Line != 1 {
		t.Fatalf("expected line 1, got %d", tok.Line)
	}
	tz2.NextToken() // whitespace (crlf)
	tok, _ = tz2.NextToken()
	if tok.Line != 2 {
		t.Fatalf("expected 'b' on line 2, got %d", tok.Line)
	}
}

func TestStringSimpleEscapes(t *testing.T) {
	tz := FromString("t", `"a\tb\nc\\d\"e"`)
	tok, err := tz.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a\tb\nc\\d\"e"
	if tok.Value != want {
		t.Fatalf("got %q, want %q", tok.Value, want)
	}
}

func TestStringUnicodeEscape(t *testing.T) {
	tz := FromString("t", `"\u+48;\u+1F600;"`)
	tok, err := tz.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "H\U0001F600"
	if tok.Value != want {
		t.Fatalf("got %q, want %q", tok.Value, want)
	}
}

func TestStringUnterminated(t *testing.T) {
	tz := FromString("t", `"abc`)
	_, err := tz.NextToken()
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestStringLineContinuation(t *testing.T) {
	tz := FromString("t", "\"a\\\r\nb\"")
	tok, err := tz.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Value != "ab" {
		t.Fatalf("got %q, want %q", tok.Value, "ab")
	}
}

func TestStringInvalidEscape(t *testing.T) {
	tz := FromString("t", `"a\qb"`)
	_, err := tz.NextToken()
	if err == nil {
		t.Fatalf("expected error for invalid escape")
	}
}

func TestStringEmptyUnicodeEscape(t *testing.T) {
	tz := FromString("t", `"\u+;"`)
	_, err := tz.NextToken()
	if err == nil {
		t.Fatalf("expected error for empty unicode escape")
	}
}

func TestStringUnicodeEscapeTooManyDigits(t *testing.T) {
	tz := FromString("t", `"\u+1234567;"`)
	_, err := tz.NextToken()
	if err == nil {
		t.Fatalf("expected error for too many hex digits")
	}
}

func TestNumberLiterals(t *testing.T) {
	tz := FromString("t", "123 3.25")
	toks := nonTrivia(collectAll(t, tz))
	if toks[0].Type != token.Integer || toks[0].Value != "123" {
		t.Fatalf("expected integer 123, got %+v", toks[0])
	}
	if toks[1].Type != token.Float || toks[1].Value != "3.25" {
		t.Fatalf("expected float 3.25, got %+v", toks[1])
	}
}

func TestNumberInvalidTrailingChar(t *testing.T) {
	tz := FromString("t", "123abc")
	_, err := tz.NextToken()
	if err == nil {
		t.Fatalf("expected error for invalid character in number literal")
	}
}

func TestMultiCharPunctuationGreedyMatch(t *testing.T) {
	tz := FromString("t", "a == b")
	toks := nonTrivia(collectAll(t, tz))
	if toks[1].Type != token.Punctuation || toks[1].Value != "==" {
		t.Fatalf("expected '==' punctuation, got %+v", toks[1])
	}
}

func TestKeywordsAreIdentifierTokens(t *testing.T) {
	tz := FromString("t", "if else var")
	toks := nonTrivia(collectAll(t, tz))
	for _, tok := range toks[:3] {
		if tok.Type != token.Identifier {
			t.Fatalf("expected keyword %q to tokenize as Identifier, got %v", tok.Value, tok.Type)
		}
		if !token.Keywords[tok.Value] {
			t.Fatalf("expected %q to be a registered keyword", tok.Value)
		}
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	tz := FromString("t", "/* never closes")
	_, err := tz.NextToken()
	if err == nil {
		t.Fatalf("expected error for unterminated block comment")
	}
}
