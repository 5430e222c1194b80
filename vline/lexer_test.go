package vline

import "testing"

func tokenKinds(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestLexerBasicTokens(t *testing.T) {
	tokens, err := NewLexer("<test>", `x = 1 + 2.5 * "hi"`).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenType{
		TokenIdent, TokenAssign, TokenInt, TokenPlus, TokenFloat,
		TokenStar, TokenString, TokenEOF,
	}
	got := tokenKinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexerKeywordsAreTaggedKeyword(t *testing.T) {
	tokens, err := NewLexer("<test>", "if x end").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Kind != TokenKeyword || tokens[0].Value != "if" {
		t.Errorf("got %v, want keyword 'if'", tokens[0])
	}
	if tokens[1].Kind != TokenIdent {
		t.Errorf("got %v, want ident", tokens[1])
	}
	if tokens[2].Kind != TokenKeyword || tokens[2].Value != "end" {
		t.Errorf("got %v, want keyword 'end'", tokens[2])
	}
}

func TestLexerStringEscapes(t *testing.T) {
	tokens, err := NewLexer("<test>", `"a\nb\tc\\d\"e"`).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a\nb\tc\\d\"e"
	if tokens[0].Value != want {
		t.Errorf("got %q, want %q", tokens[0].Value, want)
	}
}

func TestLexerUnterminatedStringIsSyntaxError(t *testing.T) {
	_, err := NewLexer("<test>", `"unterminated`).Tokenize()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Kind != ErrSyntax {
		t.Errorf("got kind %v, want ErrSyntax", err.Kind)
	}
}

func TestLexerNumberFormsAndExponent(t *testing.T) {
	cases := []struct {
		src  string
		kind TokenType
		val  string
	}{
		{"42", TokenInt, "42"},
		{"3.14", TokenFloat, "3.14"},
		{"1_000", TokenInt, "1000"},
		{"1e3", TokenInt, "1e3"},
		{"1.5e-2", TokenFloat, "1.5e-2"},
	}
	for _, c := range cases {
		tokens, err := NewLexer("<test>", c.src).Tokenize()
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", c.src, err)
		}
		if tokens[0].Kind != c.kind {
			t.Errorf("%q: got kind %s, want %s", c.src, tokens[0].Kind, c.kind)
		}
		if tokens[0].Value != c.val {
			t.Errorf("%q: got value %q, want %q", c.src, tokens[0].Value, c.val)
		}
	}
}

func TestLexerMultipleDecimalPointsIsError(t *testing.T) {
	_, err := NewLexer("<test>", "1.2.3").Tokenize()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Kind != ErrSyntax {
		t.Errorf("got kind %v, want ErrSyntax", err.Kind)
	}
}

func TestLexerCommentsAreSkipped(t *testing.T) {
	tokens, err := NewLexer("<test>", "x = 1 # trailing\n// also\ny = 2").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := tokenKinds(tokens)
	want := []TokenType{TokenIdent, TokenAssign, TokenInt, TokenIdent, TokenAssign, TokenInt, TokenEOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLexerComparisonOperators(t *testing.T) {
	tokens, err := NewLexer("<test>", "< <= > >= == !=").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenType{TokenLT, TokenLTE, TokenGT, TokenGTE, TokenEQ, TokenNEQ, TokenEOF}
	got := tokenKinds(tokens)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexerBangWithoutEqualsIsSyntaxError(t *testing.T) {
	_, err := NewLexer("<test>", "!x").Tokenize()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Kind != ErrSyntax {
		t.Errorf("got kind %v, want ErrSyntax", err.Kind)
	}
}

func TestLexerUnexpectedCharacterIsSyntaxError(t *testing.T) {
	_, err := NewLexer("<test>", "x = @").Tokenize()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Kind != ErrSyntax {
		t.Errorf("got kind %v, want ErrSyntax", err.Kind)
	}
}
