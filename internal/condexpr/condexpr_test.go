package condexpr_test

import (
	"testing"

	"github.com/eir-lang/eirc/internal/condexpr"
	"github.com/eir-lang/eirc/internal/lexer"
	"github.com/eir-lang/eirc/internal/token"
)

func lexAll(src string) []token.Token {
	l := lexer.New("test", src)
	var toks []token.Token
	for {
		t := l.NextToken()
		if t.Kind == token.NEWLINE {
			continue
		}
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks[:len(toks)-1] // drop EOF
}

func TestEvalBool(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  bool
		isErr bool
	}{
		{"true literal", "true", true, false},
		{"false literal", "false", false, false},
		{"not true", "not true", false, false},
		{"and", "true and false", false, false},
		{"or", "true or false", true, false},
		{"eq ints", "1 == 1", true, false},
		{"neq ints", "1 /= 2", true, false},
		{"eq atoms", "foo == foo", true, false},
		{"neq atoms", "foo == bar", false, false},
		{"grouping", "(true and false) or true", true, false},
		{"non-bool result", "1 == 1 and 2", false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := condexpr.EvalBool(lexAll(tc.src))
			if tc.isErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
