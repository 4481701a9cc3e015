package eir

import (
	"fmt"
	"strings"

	"github.com/eir-lang/eirc/internal/number"
)

// Term is a constant value embeddable directly in the IR, either an
// atomic literal or a structured constant. It is a closed set, matching
// the teacher's own tagged-union style for AST literal nodes.
type Term interface {
	isTerm()
	String() string
}

// AtomTerm is a bare constant symbol, e.g. 'ok or 'error.
type AtomTerm struct{ Name string }

// IntTerm is an arbitrary-precision integer literal.
type IntTerm struct{ Value number.Int }

// FloatTerm is a floating point literal.
type FloatTerm struct{ Value float64 }

// NilTerm is the empty list constant.
type NilTerm struct{}

// TupleTerm is a fixed-arity structured constant.
type TupleTerm struct{ Elements []Term }

// ListTerm is a cons-list constant; Tail is NilTerm for a proper list or
// another Term for an improper one.
type ListTerm struct {
	Elements []Term
	Tail     Term
}

func (AtomTerm) isTerm()  {}
func (IntTerm) isTerm()   {}
func (FloatTerm) isTerm() {}
func (NilTerm) isTerm()   {}
func (TupleTerm) isTerm() {}
func (ListTerm) isTerm()  {}

func (t AtomTerm) String() string  { return "'" + t.Name }
func (t IntTerm) String() string   { return t.Value.String() }
func (t FloatTerm) String() string { return fmt.Sprintf("%g", t.Value) }
func (NilTerm) String() string     { return "[]" }

func (t TupleTerm) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (t ListTerm) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	tail := t.Tail.String()
	if _, ok := t.Tail.(NilTerm); ok {
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "[" + strings.Join(parts, ", ") + " | " + tail + "]"
}
