// Package condexpr parses and constant-folds the small boolean
// expression grammar accepted by `-if(expr)`/`-elif(expr)` directives.
// It is a miniature Pratt parser in the teacher's own
// prefixParseFns/infixParseFns idiom (internal/parser/expressions_core.go),
// cut down to the handful of operators the conditional-compilation
// grammar actually needs: boolean literals, atoms, integers, `not`,
// `and`/`or`, `==`/`/=`, and parenthesized groups.
package condexpr

import (
	"fmt"

	"github.com/eir-lang/eirc/internal/token"
)

// Value is the result of folding an expression: either a boolean or an
// atomic constant (int/atom), since `==`/`/=` compare arbitrary atoms.
type Value struct {
	IsBool bool
	Bool   bool
	Atom   string // non-empty when this value is an atom/ident literal
	HasInt bool
	Int    int64
}

func boolValue(b bool) Value { return Value{IsBool: true, Bool: b} }

// Eq reports whether two folded values are equal under the conditional
// grammar's simple structural equality.
func (v Value) Eq(other Value) bool {
	if v.IsBool != other.IsBool {
		return false
	}
	if v.IsBool {
		return v.Bool == other.Bool
	}
	if v.HasInt != other.HasInt {
		return false
	}
	if v.HasInt {
		return v.Int == other.Int
	}
	return v.Atom == other.Atom
}

// precedence levels, lowest to highest.
const (
	precLowest = iota
	precOr
	precAnd
	precEquality
	precPrefix
)

func precedenceOf(k token.Kind) int {
	switch k {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.EQ, token.NEQ:
		return precEquality
	default:
		return precLowest
	}
}

// parser is a tiny hand-rolled Pratt parser over an already-lexed token
// slice (the directive's argument tokens); it never touches a Reader.
type parser struct {
	tokens []token.Token
	pos    int
}

func newParser(tokens []token.Token) *parser { return &parser{tokens: tokens} }

func (p *parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() token.Token {
	t := p.cur()
	p.pos++
	return t
}

// Eval parses tokens as a condition expression and constant-folds it
// in one pass (there being nothing but literals to fold: the grammar
// has no variables). Returns an error if the tokens are not a
// well-formed expression of this grammar, or don't reduce to a value.
func Eval(tokens []token.Token) (Value, error) {
	p := newParser(tokens)
	v, err := p.parseExpr(precLowest)
	if err != nil {
		return Value{}, err
	}
	if p.cur().Kind != token.EOF {
		return Value{}, fmt.Errorf("condexpr: unexpected trailing token %s", p.cur().Kind)
	}
	return v, nil
}

// EvalBool is Eval followed by a check that the folded result is the
// boolean true/false the directive protocol requires.
func EvalBool(tokens []token.Token) (bool, error) {
	v, err := Eval(tokens)
	if err != nil {
		return false, err
	}
	if !v.IsBool {
		return false, fmt.Errorf("condexpr: condition did not fold to true/false")
	}
	return v.Bool, nil
}

func (p *parser) parseExpr(precedence int) (Value, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return Value{}, err
	}
	for precedence < precedenceOf(p.cur().Kind) {
		op := p.advance()
		right, err := p.parseExpr(precedenceOf(op.Kind))
		if err != nil {
			return Value{}, err
		}
		left, err = applyInfix(op, left, right)
		if err != nil {
			return Value{}, err
		}
	}
	return left, nil
}

func (p *parser) parsePrefix() (Value, error) {
	t := p.advance()
	switch t.Kind {
	case token.TRUE_:
		return boolValue(true), nil
	case token.FALSE_:
		return boolValue(false), nil
	case token.NOT:
		v, err := p.parseExpr(precPrefix)
		if err != nil {
			return Value{}, err
		}
		if !v.IsBool {
			return Value{}, fmt.Errorf("condexpr: 'not' applied to a non-boolean")
		}
		return boolValue(!v.Bool), nil
	case token.LPAREN:
		v, err := p.parseExpr(precLowest)
		if err != nil {
			return Value{}, err
		}
		if p.cur().Kind != token.RPAREN {
			return Value{}, fmt.Errorf("condexpr: expected ')'")
		}
		p.advance()
		return v, nil
	case token.INT:
		var n int64
		if _, err := fmt.Sscanf(t.Lexeme, "%d", &n); err != nil {
			return Value{}, fmt.Errorf("condexpr: bad integer literal %q", t.Lexeme)
		}
		return Value{HasInt: true, Int: n}, nil
	case token.IDENT, token.ATOM:
		return Value{Atom: t.Lexeme}, nil
	default:
		return Value{}, fmt.Errorf("condexpr: unexpected token %s in expression", t.Kind)
	}
}

func applyInfix(op token.Token, left, right Value) (Value, error) {
	switch op.Kind {
	case token.EQ:
		return boolValue(left.Eq(right)), nil
	case token.NEQ:
		return boolValue(!left.Eq(right)), nil
	case token.AND:
		if !left.IsBool || !right.IsBool {
			return Value{}, fmt.Errorf("condexpr: 'and' applied to a non-boolean")
		}
		return boolValue(left.Bool && right.Bool), nil
	case token.OR:
		if !left.IsBool || !right.IsBool {
			return Value{}, fmt.Errorf("condexpr: 'or' applied to a non-boolean")
		}
		return boolValue(left.Bool || right.Bool), nil
	default:
		return Value{}, fmt.Errorf("condexpr: unsupported operator %s", op.Kind)
	}
}
