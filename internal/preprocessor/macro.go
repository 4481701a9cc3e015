package preprocessor

import "github.com/eir-lang/eirc/internal/token"

// MacroIdent names a macro definition slot: a name plus the parameter
// count it was defined with, using the source language's usual Name/N
// convention for arity disambiguation at undef/define time. A macro
// defined without a parameter list (`-define(X, 1).`)
// has Arity 0, same as one defined with an explicit empty list.
type MacroIdent struct {
	Name  string
	Arity int
}

// MacroDefKind is the closed set of macro definition shapes dispatch
// switches on at expansion time.
type MacroDefKind int

const (
	DefDynamic MacroDefKind = iota
	DefString
	DefBoolean
	DefStatic
	DefDelayed
)

// MacroDef is one macro's definition, parameterized by kind.
type MacroDef struct {
	Kind MacroDefKind

	// DefDynamic / DefStatic: the replacement token sequence.
	Replacement []token.Token
	// DefStatic only: formal parameter names, bound by position.
	Params []string
	// DefString only.
	StringValue string
	// DefBoolean only.
	BoolValue bool
	// DefDelayed only: the substitution tag carried by the placeholder
	// token this macro expands to, resolved later at lowering.
	DelayedTag string
}

// MacroContainer maps macro identities to definitions.
type MacroContainer struct {
	defs map[MacroIdent]MacroDef
}

// NewMacroContainer returns a container holding only the
// delayed-substitution placeholders FUNCTION_NAME/FUNCTION_ARITY. The
// predefined macros FILE/LINE/MACHINE are dispatched specially at
// expansion time (they depend on the call site) rather than stored
// here, so Defined reports false for them.
func NewMacroContainer() *MacroContainer {
	c := &MacroContainer{defs: make(map[MacroIdent]MacroDef)}
	c.Define(MacroIdent{Name: "FUNCTION_NAME"}, MacroDef{Kind: DefDelayed, DelayedTag: "FUNCTION_NAME"})
	c.Define(MacroIdent{Name: "FUNCTION_ARITY"}, MacroDef{Kind: DefDelayed, DelayedTag: "FUNCTION_ARITY"})
	return c
}

// Define installs or replaces id's definition.
func (c *MacroContainer) Define(id MacroIdent, def MacroDef) {
	c.defs[id] = def
}

// Undef removes every arity of name.
func (c *MacroContainer) Undef(name string) {
	for id := range c.defs {
		if id.Name == name {
			delete(c.defs, id)
		}
	}
}

// Lookup returns id's definition, if any.
func (c *MacroContainer) Lookup(id MacroIdent) (MacroDef, bool) {
	d, ok := c.defs[id]
	return d, ok
}

// Defined reports whether any arity of name has a definition (used by
// ifdef/ifndef, which test definedness independent of arity).
func (c *MacroContainer) Defined(name string) bool {
	for id := range c.defs {
		if id.Name == name {
			return true
		}
	}
	return false
}

// Clone returns a shallow copy with its own definition map, for the
// transient inner preprocessor conditional-expression evaluation spins
// up — it holds a copy of the macros without risking the outer
// container's definitions.
func (c *MacroContainer) Clone() *MacroContainer {
	cp := &MacroContainer{defs: make(map[MacroIdent]MacroDef, len(c.defs))}
	for k, v := range c.defs {
		cp.defs[k] = v
	}
	return cp
}

// SeedDynamic installs name (arity 0) as a DefDynamic macro whose
// replacement is the given token sequence — the
// project-configuration-level `-D` equivalent.
func (c *MacroContainer) SeedDynamic(name string, replacement []token.Token) {
	c.Define(MacroIdent{Name: name, Arity: 0}, MacroDef{Kind: DefDynamic, Replacement: replacement})
}

// MacroCall is a recognized invocation `?Name` or `?Name(args...)`;
// each element of Args is the token sequence of one actual argument.
type MacroCall struct {
	Name string
	Args [][]token.Token
	Span token.Span
}

// Arity is the call site's argument count: 0 when no parentheses were
// given at the call site.
func (c MacroCall) Arity() int { return len(c.Args) }
