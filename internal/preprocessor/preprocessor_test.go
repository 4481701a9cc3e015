package preprocessor_test

import (
	"testing"

	"github.com/eir-lang/eirc/internal/diagnostics"
	"github.com/eir-lang/eirc/internal/lexer"
	"github.com/eir-lang/eirc/internal/preprocessor"
	"github.com/eir-lang/eirc/internal/token"
)

func allTokens(t *testing.T, src string) ([]token.Token, *diagnostics.Sink) {
	t.Helper()
	lex := lexer.New("test.fnx", src)
	sink := diagnostics.NewSink()
	pp := preprocessor.New(preprocessor.NewStreamReader(lex), sink, nil)

	var out []token.Token
	for {
		tok, ok, err := pp.Next()
		if err != nil {
			t.Fatalf("preprocessor error: %v", err)
		}
		if !ok {
			break
		}
		if tok.Kind == token.NEWLINE {
			continue
		}
		out = append(out, tok)
	}
	return out, sink
}

func lexemes(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Lexeme
	}
	return out
}

// TestConditionalCompilation exercises an ifdef/else/endif chain.
func TestConditionalCompilation(t *testing.T) {
	src := "-define(X, 1). -ifdef(X). a. -else. b. -endif."
	toks, sink := allTokens(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	got := lexemes(toks)
	wantContainsA, wantNotContainsB := false, true
	for _, l := range got {
		if l == "a" {
			wantContainsA = true
		}
		if l == "b" {
			wantNotContainsB = false
		}
	}
	if !wantContainsA {
		t.Errorf("expected output to contain 'a', got %v", got)
	}
	if !wantNotContainsB {
		t.Errorf("expected output to omit 'b', got %v", got)
	}
}

// TestStringification exercises the ??Name stringification marker.
func TestStringification(t *testing.T) {
	src := `-define(S(X), ??X). ?S(hello world).`
	toks, sink := allTokens(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	var strs []token.Token
	for _, tk := range toks {
		if tk.Kind == token.STRING {
			strs = append(strs, tk)
		}
	}
	if len(strs) != 1 {
		t.Fatalf("expected exactly one string literal token, got %d (%v)", len(strs), toks)
	}
	if strs[0].Lexeme != "hello world" {
		t.Errorf("stringify result = %q, want %q", strs[0].Lexeme, "hello world")
	}
}

// TestUndefinedMacro checks that an undefined macro call is reported.
func TestUndefinedMacro(t *testing.T) {
	src := `?U(1,2).`
	_, sink := allTokens(t, src)
	found := false
	for _, d := range sink.All() {
		if d.Code == diagnostics.UndefinedMacro {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an UndefinedMacro diagnostic, got %v", sink.All())
	}
}

// TestOrphanEndif checks that an -endif with no matching -if is reported.
func TestOrphanEndif(t *testing.T) {
	src := `-endif.`
	_, sink := allTokens(t, src)
	found := false
	for _, d := range sink.All() {
		if d.Code == diagnostics.OrphanedEnd {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an OrphanedEnd diagnostic, got %v", sink.All())
	}
}

// TestMacroIdempotence checks that a stream with no
// macro calls or directives passes through unchanged.
func TestMacroIdempotence(t *testing.T) {
	src := `foo(bar, baz)`
	toks, sink := allTokens(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	lex := lexer.New("test.fnx", src)
	var want []string
	for {
		tok := lex.NextToken()
		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.NEWLINE {
			continue
		}
		want = append(want, tok.Lexeme)
	}
	got := lexemes(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("token %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

// TestConditionalBalance checks that a balanced ifdef/endif stream
// produces no OrphanedElse/OrphanedEnd diagnostics. It does not observe
// the branch stack itself.
func TestConditionalBalance(t *testing.T) {
	src := "-ifdef(X). a. -endif."
	_, sink := allTokens(t, src)
	for _, d := range sink.All() {
		if d.Code == diagnostics.OrphanedElse || d.Code == diagnostics.OrphanedEnd {
			t.Errorf("unexpected balance diagnostic: %v", d)
		}
	}
}
