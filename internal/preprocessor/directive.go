package preprocessor

import (
	"fmt"

	"github.com/eir-lang/eirc/internal/token"
)

// DirectiveKind is the closed set of preprocessor directives.
type DirectiveKind int

const (
	DirModule DirectiveKind = iota
	DirInclude
	DirIncludeLib
	DirDefine
	DirUndef
	DirIfdef
	DirIfndef
	DirIf
	DirElif
	DirElse
	DirEndif
	DirError
	DirWarning
	DirFile
)

var directiveNames = map[string]DirectiveKind{
	"module": DirModule, "include": DirInclude, "include_lib": DirIncludeLib,
	"define": DirDefine, "undef": DirUndef,
	"ifdef": DirIfdef, "ifndef": DirIfndef, "if": DirIf, "elif": DirElif,
	"else": DirElse, "endif": DirEndif,
	"error": DirError, "warning": DirWarning, "file": DirFile,
}

// Directive is one parsed `-name(...)` form: it begins with - followed
// by an identifier and ends at a top-level . token.
type Directive struct {
	Kind DirectiveKind
	Span token.Span

	Name string // module name / undef name / ifdef-ifndef name

	Path string // include / include_lib

	DefineParams []string      // Static macro formal parameters
	DefineBody   []token.Token // replacement tokens

	CondTokens []token.Token // if / elif

	Message string // error / warning
}

// TryReadDirective attempts to recognize a directive starting at r's
// current position. On a non-match it restores everything it consumed
// and returns (nil, false, nil).
func TryReadDirective(r Reader) (*Directive, bool, error) {
	minus, ok := r.TryReadToken()
	if !ok || minus.Kind != token.MINUS {
		if ok {
			r.UnreadToken(minus)
		}
		return nil, false, nil
	}
	nameTok, ok := r.TryReadToken()
	if !ok || (nameTok.Kind != token.ATOM && nameTok.Kind != token.IDENT) {
		if ok {
			r.UnreadToken(nameTok)
		}
		r.UnreadToken(minus)
		return nil, false, nil
	}
	kind, known := directiveNames[nameTok.Lexeme]
	if !known {
		r.UnreadToken(nameTok)
		r.UnreadToken(minus)
		return nil, false, nil
	}

	var args []token.Token
	next, ok := r.TryReadToken()
	if ok && next.Kind == token.LPAREN {
		inner, err := readBalanced(r)
		if err != nil {
			return nil, false, err
		}
		args = inner
	} else if ok {
		r.UnreadToken(next)
	}

	period, ok := r.TryReadToken()
	if !ok || period.Kind != token.PERIOD {
		return nil, false, fmt.Errorf("preprocessor: directive -%s(...) not closed by '.'", nameTok.Lexeme)
	}

	d := &Directive{Kind: kind, Span: minus.Span}
	if err := fillDirective(d, nameTok.Lexeme, args); err != nil {
		return nil, false, err
	}
	return d, true, nil
}

// readBalanced reads tokens up to (not including) the RPAREN matching
// the LPAREN already consumed by the caller, tracking nested depth.
func readBalanced(r Reader) ([]token.Token, error) {
	depth := 1
	var out []token.Token
	for {
		t, ok := r.TryReadToken()
		if !ok {
			return nil, fmt.Errorf("preprocessor: unterminated directive argument list")
		}
		switch t.Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return out, nil
			}
		}
		out = append(out, t)
	}
}

// splitTopLevel splits tokens on COMMA at paren-depth 0 relative to the
// start of tokens.
func splitTopLevel(tokens []token.Token) [][]token.Token {
	if len(tokens) == 0 {
		return nil
	}
	var groups [][]token.Token
	var cur []token.Token
	depth := 0
	for _, t := range tokens {
		switch t.Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.COMMA:
			if depth == 0 {
				groups = append(groups, cur)
				cur = nil
				continue
			}
		}
		cur = append(cur, t)
	}
	groups = append(groups, cur)
	return groups
}

func tokensText(tokens []token.Token) string {
	s := ""
	for i, t := range tokens {
		if i > 0 {
			s += " "
		}
		s += t.Lexeme
	}
	return s
}

func fillDirective(d *Directive, name string, args []token.Token) error {
	switch d.Kind {
	case DirModule:
		if len(args) != 1 {
			return fmt.Errorf("preprocessor: -module expects exactly one name")
		}
		d.Name = args[0].Lexeme
	case DirInclude, DirIncludeLib:
		if len(args) != 1 || args[0].Kind != token.STRING {
			return fmt.Errorf("preprocessor: -%s expects a single string path", name)
		}
		d.Path = args[0].Lexeme
	case DirUndef, DirIfdef, DirIfndef:
		if len(args) == 0 {
			return fmt.Errorf("preprocessor: -%s expects a name", name)
		}
		d.Name = args[0].Lexeme
	case DirIf, DirElif:
		d.CondTokens = args
	case DirDefine:
		groups := splitTopLevel(args)
		if len(groups) < 1 || len(groups[0]) == 0 {
			return fmt.Errorf("preprocessor: -define expects a macro head")
		}
		head := groups[0]
		d.Name = head[0].Lexeme
		if len(head) > 1 && head[1].Kind == token.LPAREN {
			paramGroups := splitTopLevel(head[2 : len(head)-1])
			for _, g := range paramGroups {
				if len(g) != 1 {
					return fmt.Errorf("preprocessor: -define parameter list must be bare names")
				}
				d.DefineParams = append(d.DefineParams, g[0].Lexeme)
			}
		}
		var body []token.Token
		for _, g := range groups[1:] {
			if body != nil {
				body = append(body, token.Token{Kind: token.COMMA, Lexeme: ","})
			}
			body = append(body, g...)
		}
		d.DefineBody = body
	case DirError, DirWarning:
		d.Message = tokensText(args)
	case DirFile:
		d.Message = tokensText(args)
	case DirElse, DirEndif:
		// no payload
	}
	return nil
}

// TryReadMacroCall attempts to recognize `?Name` or `?Name(args...)` at
// r's current position. On a non-match it restores everything it
// consumed.
func TryReadMacroCall(r Reader) (*MacroCall, bool, error) {
	q, ok := r.TryReadToken()
	if !ok || q.Kind != token.QUESTION {
		if ok {
			r.UnreadToken(q)
		}
		return nil, false, nil
	}
	nameTok, ok := r.TryReadToken()
	if !ok || (nameTok.Kind != token.IDENT && nameTok.Kind != token.ATOM) {
		if ok {
			r.UnreadToken(nameTok)
		}
		r.UnreadToken(q)
		return nil, false, nil
	}
	call := &MacroCall{Name: nameTok.Lexeme, Span: q.Span}

	next, ok := r.TryReadToken()
	if !ok || next.Kind != token.LPAREN {
		if ok {
			r.UnreadToken(next)
		}
		return call, true, nil
	}
	inner, err := readBalanced(r)
	if err != nil {
		return nil, false, err
	}
	for _, g := range splitTopLevel(inner) {
		call.Args = append(call.Args, g)
	}
	return call, true, nil
}

// Stringify is a recognized `??Name` stringification marker.
type Stringify struct {
	Name string
	Span token.Span
}

// TryReadStringify attempts to recognize `??Name` at r's current
// position.
func TryReadStringify(r Reader) (*Stringify, bool) {
	qq, ok := r.TryReadToken()
	if !ok || qq.Kind != token.STRINGIFY {
		if ok {
			r.UnreadToken(qq)
		}
		return nil, false
	}
	nameTok, ok := r.TryReadToken()
	if !ok || (nameTok.Kind != token.IDENT && nameTok.Kind != token.ATOM) {
		if ok {
			r.UnreadToken(nameTok)
		}
		r.UnreadToken(qq)
		return nil, false
	}
	return &Stringify{Name: nameTok.Lexeme, Span: qq.Span}, true
}
