package lexer_test

import (
	"testing"

	"github.com/eir-lang/eirc/internal/lexer"
	"github.com/eir-lang/eirc/internal/token"
)

func lexAll(src string) []token.Token {
	l := lexer.New("test.fnx", src)
	var out []token.Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestNextTokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{"atom and ident", "foo Bar", []token.Kind{token.ATOM, token.IDENT, token.EOF}},
		{"keywords", "true false not and or andalso orelse",
			[]token.Kind{token.TRUE_, token.FALSE_, token.NOT, token.AND, token.OR, token.AND, token.OR, token.EOF}},
		{"int literal", "42", []token.Kind{token.INT, token.EOF}},
		{"hex literal", "0xFF", []token.Kind{token.INT, token.EOF}},
		{"float literal", "3.14", []token.Kind{token.FLOAT, token.EOF}},
		{"string literal", `"hi"`, []token.Kind{token.STRING, token.EOF}},
		{"quoted atom", `'hi there'`, []token.Kind{token.ATOM, token.EOF}},
		{"macro call marker", "?Name", []token.Kind{token.QUESTION, token.IDENT, token.EOF}},
		{"stringify marker", "??Name", []token.Kind{token.STRINGIFY, token.IDENT, token.EOF}},
		{"directive shape", "-define(X, 1).", []token.Kind{
			token.MINUS, token.ATOM, token.LPAREN, token.IDENT, token.COMMA,
			token.INT, token.RPAREN, token.PERIOD, token.EOF,
		}},
		{"comparisons", "== /=", []token.Kind{token.EQ, token.NEQ, token.EOF}},
		{"line comment", "foo % a comment\nbar", []token.Kind{
			token.ATOM, token.NEWLINE, token.ATOM, token.EOF,
		}},
		{"illegal char", "=", []token.Kind{token.ILLEGAL, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(lexAll(tt.input))
			if len(got) != len(tt.want) {
				t.Fatalf("token count = %d, want %d (%v)", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d kind = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStringEscapes(t *testing.T) {
	toks := lexAll(`"line\nbreak"`)
	if len(toks) != 2 || toks[0].Kind != token.STRING {
		t.Fatalf("unexpected tokens: %v", toks)
	}
	if want := "line\nbreak"; toks[0].Lexeme != want {
		t.Errorf("lexeme = %q, want %q", toks[0].Lexeme, want)
	}
}

func TestParseIntLiteral(t *testing.T) {
	n, ok := lexer.ParseIntLiteral("0x2A")
	if !ok || n.Int64() != 42 {
		t.Errorf("ParseIntLiteral(0x2A) = %v, %v, want 42 true", n, ok)
	}
	n, ok = lexer.ParseIntLiteral("42")
	if !ok || n.Int64() != 42 {
		t.Errorf("ParseIntLiteral(42) = %v, %v, want 42 true", n, ok)
	}
}
