// Package langpattern is a demonstration patterncfg.PatternProvider for
// the two builtin sum types every lowering frontend needs: Option and
// Result. It deliberately does not cover binary or map pattern kinds —
// those need a richer sub-pattern shape than this demo's positional
// Args slice offers.
package langpattern

import (
	"github.com/eir-lang/eirc/internal/config"
	"github.com/eir-lang/eirc/internal/patterncfg"
)

// Pattern is this package's caller-owned pattern AST node: a bare
// wildcard (Ctor == "" && Var == ""), a variable binding (Var != ""),
// a constructor test (Ctor != ""), or a plain N-tuple (Ctor ==
// tupleCtorName(N)).
type Pattern struct {
	Ctor string
	Var  string
	Args []Pattern
}

// Wildcard builds a pattern matching anything without binding it.
func Wildcard() Pattern { return Pattern{} }

// Bind builds a pattern matching anything and binding it to name.
func Bind(name string) Pattern { return Pattern{Var: name} }

// Some/None/Ok/Fail build the Option/Result constructor patterns
// (grounded on internal/config's constructor name constants, the same
// names the teacher's builtin prelude registers).
func Some(arg Pattern) Pattern { return Pattern{Ctor: config.SomeCtorName, Args: []Pattern{arg}} }
func None() Pattern            { return Pattern{Ctor: config.NoneCtorName} }
func Ok(arg Pattern) Pattern   { return Pattern{Ctor: config.OkCtorName, Args: []Pattern{arg}} }
func Fail(arg Pattern) Pattern { return Pattern{Ctor: config.FailCtorName, Args: []Pattern{arg}} }

// Tuple builds a plain N-tuple pattern.
func Tuple(args ...Pattern) Pattern {
	return Pattern{Ctor: tupleCtorName(len(args)), Args: args}
}

func tupleCtorName(n int) string {
	switch n {
	case 2:
		return "tuple2"
	case 3:
		return "tuple3"
	default:
		return "tupleN"
	}
}

// Provider implements patterncfg.PatternProvider over Pattern.
type Provider struct{}

func (Provider) CtorName(p any) (string, bool) {
	pp := p.(Pattern)
	if pp.Ctor == "" {
		return "", false
	}
	return pp.Ctor, true
}

func (Provider) VarName(p any) (string, bool) {
	pp := p.(Pattern)
	if pp.Var == "" {
		return "", false
	}
	return pp.Var, true
}

func (Provider) CtorArity(ctor string) int {
	switch ctor {
	case config.SomeCtorName, config.OkCtorName, config.FailCtorName:
		return 1
	case config.NoneCtorName:
		return 0
	case "tuple2":
		return 2
	case "tuple3":
		return 3
	default:
		return 0
	}
}

func (Provider) SubPatterns(p any) []any {
	pp := p.(Pattern)
	out := make([]any, len(pp.Args))
	for i, a := range pp.Args {
		out[i] = a
	}
	return out
}

// Compile is a thin convenience wrapper over patterncfg.Compile fixed
// to Provider, matching numScrutinees positional Patterns per clause.
func Compile(clauses []patterncfg.Clause, numScrutinees int) *patterncfg.Node {
	return patterncfg.Compile(Provider{}, clauses, numScrutinees)
}
