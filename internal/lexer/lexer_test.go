package lexer

import (
	"testing"

	"aether/internal/diag"
	"aether/internal/source"
	"aether/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.aeth", []byte(src))
	bag := diag.NewBag(16)
	lx := New(fs.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}})

	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return toks, bag
		}
		toks = append(toks, tok)
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexBasicForm(t *testing.T) {
	toks, bag := lexAll(t, `(fn main () unit (return))`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.LParen, token.KwFn, token.Ident, token.LParen, token.RParen,
		token.Ident, token.LParen, token.KwReturn, token.RParen, token.RParen,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexKeywordsWithDashes(t *testing.T) {
	toks, _ := lexAll(t, `let-mut ref-mut my-binding`)
	want := []token.Kind{token.KwLetMut, token.KwRefMut, token.Ident}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
	if toks[2].Text != "my-binding" {
		t.Errorf("ident text = %q", toks[2].Text)
	}
}

func TestLexLiterals(t *testing.T) {
	toks, bag := lexAll(t, `42 -7 3.25 1e9 true false "hi\n"`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.IntLit, token.IntLit, token.FloatLit, token.FloatLit,
		token.BoolLit, token.BoolLit, token.StringLit,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
	if toks[6].Text != "hi\n" {
		t.Errorf("string text = %q, want decoded escape", toks[6].Text)
	}
}

func TestLexOperators(t *testing.T) {
	toks, _ := lexAll(t, `+ - * / % == != < <= > >=`)
	want := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexCommentsSkipped(t *testing.T) {
	toks, _ := lexAll(t, "; a comment\nx ; trailing\ny")
	got := kinds(toks)
	if len(got) != 2 || got[0] != token.Ident || got[1] != token.Ident {
		t.Fatalf("comments must vanish, got %v", got)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	toks, bag := lexAll(t, `"oops`)
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	if len(toks) != 1 || toks[0].Kind != token.Error {
		t.Fatalf("expected one error token, got %v", kinds(toks))
	}
}

func TestLexUnknownChar(t *testing.T) {
	_, bag := lexAll(t, `#`)
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnknownChar {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexUnknownChar, got %v", bag.Items())
	}
}

func TestLexPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("peek.aeth", []byte(`(x)`))
	lx := New(fs.Get(id), Options{})

	if lx.Peek().Kind != token.LParen {
		t.Fatal("peek should see LParen")
	}
	if lx.Next().Kind != token.LParen {
		t.Fatal("next should return the peeked token")
	}
	if lx.Next().Kind != token.Ident {
		t.Fatal("next should advance past the peeked token")
	}
}

func TestLexStringNormalizedNFC(t *testing.T) {
	// "e" + combining acute accent must collapse to the precomposed rune.
	toks, bag := lexAll(t, "\"caf\x65\xcc\x81\"")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(toks) != 1 || toks[0].Kind != token.StringLit {
		t.Fatalf("unexpected tokens: %v", toks)
	}
	if toks[0].Text != "café" {
		t.Fatalf("string value = %q, want %q", toks[0].Text, "café")
	}
}

func TestLexASCIIStringUntouched(t *testing.T) {
	toks, bag := lexAll(t, `"plain\n"`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Text != "plain\n" {
		t.Fatalf("string value = %q", toks[0].Text)
	}
}
