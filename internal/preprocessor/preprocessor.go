package preprocessor

import (
	"fmt"
	"strconv"

	"github.com/eir-lang/eirc/internal/condexpr"
	"github.com/eir-lang/eirc/internal/diagnostics"
	"github.com/eir-lang/eirc/internal/token"
)

// IncludeResolver resolves an `include`/`include_lib` path against the
// project's configured include_paths/code_paths, returning the name to
// attribute the resolved file's tokens to and those tokens. Lexing the
// resolved file is the resolver's job, so this package never imports
// the lexer directly for includes — it only needs tokens back.
type IncludeResolver interface {
	Resolve(path string, lib bool) (file string, tokens []token.Token, err error)
}

// branch is one frame of the conditional-compilation stack: whether the
// frame is still in its then-arm (no -else seen yet), and the truth of
// the frame's condition. An -elif replaces the frame with a fresh one
// for its own condition, so whether an earlier arm was taken is not
// recorded.
type branch struct {
	onThen   bool
	condTrue bool
}

func newBranch(condTrue bool) branch { return branch{onThen: true, condTrue: condTrue} }

func (b branch) active() bool {
	if b.onThen {
		return b.condTrue
	}
	return !b.condTrue
}

// Preprocessor is the token-by-token macro/conditional-compilation
// engine. It wraps a Reader and produces the token sequence the parser
// consumes.
type Preprocessor struct {
	reader  Reader
	macros  *MacroContainer
	sink    *diagnostics.Sink
	include IncludeResolver

	branches          []branch
	expanded          []token.Token
	canDirectiveStart bool

	currentFunctionName  string
	currentFunctionArity int
}

// New creates a Preprocessor reading from reader, reporting into sink,
// and resolving includes via include (may be nil if the caller never
// expects an include/include_lib directive).
func New(reader Reader, sink *diagnostics.Sink, include IncludeResolver) *Preprocessor {
	return &Preprocessor{
		reader:            reader,
		macros:            NewMacroContainer(),
		sink:              sink,
		include:           include,
		canDirectiveStart: true,
	}
}

// Macros exposes the macro container so callers can seed it from
// config.Configuration.Macros before the first Next call.
func (p *Preprocessor) Macros() *MacroContainer { return p.macros }

// SetCurrentFunction feeds the FUNCTION_NAME/FUNCTION_ARITY delayed
// placeholders' eventual resolution target; this package only carries
// the tag through, actual substitution is the lowering layer's job,
// exposed here only so tests can exercise the tag shape.
func (p *Preprocessor) SetCurrentFunction(name string, arity int) {
	p.currentFunctionName, p.currentFunctionArity = name, arity
}

func (p *Preprocessor) ignoring() bool {
	for _, b := range p.branches {
		if !b.active() {
			return true
		}
	}
	return false
}

func (p *Preprocessor) updateCanDirectiveStart(t token.Token) {
	p.canDirectiveStart = t.Kind == token.PERIOD
}

// Next returns the next output token, or io.EOF-shaped (zero Token,
// false, nil) at end of stream. A -error directive marks the sink fatal
// and also ends the stream with (zero Token, false, nil). err is non-nil
// only for a malformed directive/macro-call the reader itself cannot
// recover from.
func (p *Preprocessor) Next() (token.Token, bool, error) {
	for {
		if len(p.expanded) > 0 {
			t := p.expanded[0]
			p.expanded = p.expanded[1:]
			p.updateCanDirectiveStart(t)
			return t, true, nil
		}

		if p.canDirectiveStart {
			dir, ok, err := TryReadDirective(p.reader)
			if err != nil {
				return token.Token{}, false, err
			}
			if ok {
				if err := p.dispatch(dir); err != nil {
					return token.Token{}, false, err
				}
				if p.sink.IsFatal() {
					return token.Token{}, false, nil
				}
				// the directive consumed its own trailing '.', which
				// never passed through updateCanDirectiveStart.
				p.canDirectiveStart = true
				continue
			}
		}

		if !p.ignoring() {
			call, ok, err := TryReadMacroCall(p.reader)
			if err != nil {
				return token.Token{}, false, err
			}
			if ok {
				expansion, err := p.expandMacroCall(call)
				if err != nil {
					return token.Token{}, false, err
				}
				p.expanded = append(p.expanded, expansion...)
				continue
			}
		}

		t, ok := p.reader.TryReadToken()
		if !ok {
			return token.Token{}, false, nil
		}
		p.updateCanDirectiveStart(t)
		if p.ignoring() {
			continue
		}
		return t, true, nil
	}
}

// --- directive dispatch --------------------------------------------------

func (p *Preprocessor) dispatch(d *Directive) error {
	switch d.Kind {
	case DirModule:
		nameTok := token.Token{Kind: token.STRING, Lexeme: d.Name, Span: d.Span}
		p.macros.Define(MacroIdent{Name: "MODULE"}, MacroDef{Kind: DefString, StringValue: d.Name})
		p.macros.Define(MacroIdent{Name: "MODULE_STRING"}, MacroDef{Kind: DefString, StringValue: d.Name})
		// re-expand back into the output stream: the parser still wants
		// the directive itself.
		p.expanded = append(p.expanded, token.Token{Kind: token.MINUS, Lexeme: "-", Span: d.Span},
			token.Token{Kind: token.ATOM, Lexeme: "module", Span: d.Span},
			token.Token{Kind: token.LPAREN, Lexeme: "(", Span: d.Span},
			nameTok,
			token.Token{Kind: token.RPAREN, Lexeme: ")", Span: d.Span},
			token.Token{Kind: token.PERIOD, Lexeme: ".", Span: d.Span})
		return nil

	case DirInclude, DirIncludeLib:
		if p.ignoring() {
			return nil
		}
		if p.include == nil {
			return p.badDirective(d, "no include resolver configured")
		}
		file, tokens, err := p.include.Resolve(d.Path, d.Kind == DirIncludeLib)
		if err != nil {
			return p.badDirective(d, err.Error())
		}
		_ = file
		switch r := p.reader.(type) {
		case *StreamReader:
			r.InjectTokens(tokens)
		case *BufferReader:
			r.InjectTokens(tokens)
		default:
			return p.badDirective(d, "reader does not support include injection")
		}
		return nil

	case DirDefine:
		if p.ignoring() {
			return nil
		}
		p.macros.Define(MacroIdent{Name: d.Name, Arity: len(d.DefineParams)},
			MacroDef{Kind: DefStatic, Params: d.DefineParams, Replacement: d.DefineBody})
		return nil

	case DirUndef:
		if p.ignoring() {
			return nil
		}
		p.macros.Undef(d.Name)
		return nil

	case DirIfdef:
		p.branches = append(p.branches, newBranch(p.macros.Defined(d.Name)))
		return nil

	case DirIfndef:
		p.branches = append(p.branches, newBranch(!p.macros.Defined(d.Name)))
		return nil

	case DirIf:
		cond, err := p.evalConditional(d.CondTokens)
		if err != nil {
			return err
		}
		p.branches = append(p.branches, newBranch(cond))
		return nil

	case DirElif:
		if len(p.branches) == 0 {
			p.sink.Record(diagnostics.New(diagnostics.OrphanedElse, d.Span, "orphaned -elif"))
			return nil
		}
		p.branches = p.branches[:len(p.branches)-1]
		cond, err := p.evalConditional(d.CondTokens)
		if err != nil {
			return err
		}
		p.branches = append(p.branches, newBranch(cond))
		return nil

	case DirElse:
		if len(p.branches) == 0 {
			p.sink.Record(diagnostics.New(diagnostics.OrphanedElse, d.Span, "orphaned -else"))
			return nil
		}
		top := &p.branches[len(p.branches)-1]
		if !top.onThen {
			p.sink.Record(diagnostics.New(diagnostics.OrphanedElse, d.Span, "duplicate -else"))
			return nil
		}
		top.onThen = false
		return nil

	case DirEndif:
		if len(p.branches) == 0 {
			p.sink.Record(diagnostics.New(diagnostics.OrphanedEnd, d.Span, "orphaned -endif"))
			return nil
		}
		p.branches = p.branches[:len(p.branches)-1]
		return nil

	case DirError:
		if p.ignoring() {
			return nil
		}
		p.sink.Fatal(diagnostics.New(diagnostics.CompilerError, d.Span, d.Message))
		return nil

	case DirWarning:
		if p.ignoring() {
			return nil
		}
		p.sink.Record(diagnostics.NewWarning(diagnostics.CompilerError, d.Span, d.Message))
		return nil

	case DirFile:
		return nil

	default:
		return fmt.Errorf("preprocessor: unhandled directive kind %d", d.Kind)
	}
}

func (p *Preprocessor) badDirective(d *Directive, reason string) error {
	p.sink.Record(diagnostics.New(diagnostics.BadDirective, d.Span, reason))
	return nil
}

// evalConditional parses and constant-folds d's condition tokens in a
// fresh branch-stack/reader context: evaluation happens against a
// temporary clone that holds a copy of this preprocessor's macro
// container (so nothing it does alters the outer definitions) and gets
// its own branch stack and reader.
func (p *Preprocessor) evalConditional(tokens []token.Token) (bool, error) {
	inner := &Preprocessor{
		reader:            NewBufferReader(p.reader.File(), tokens),
		macros:            p.macros.Clone(),
		sink:              p.sink,
		canDirectiveStart: false,
	}
	var expanded []token.Token
	for {
		t, ok, err := inner.Next()
		if err != nil {
			return false, err
		}
		if !ok {
			break
		}
		expanded = append(expanded, t)
	}
	v, err := condexpr.EvalBool(expanded)
	if err != nil {
		p.sink.Record(diagnostics.New(diagnostics.InvalidConditional, token.Span{}, err.Error()))
		return false, nil
	}
	return v, nil
}

// --- macro expansion ------------------------------------------------------

func (p *Preprocessor) expandMacroCall(call *MacroCall) ([]token.Token, error) {
	if expansion, ok := p.expandPredefined(call); ok {
		return expansion, nil
	}
	id := MacroIdent{Name: call.Name, Arity: call.Arity()}
	def, ok := p.macros.Lookup(id)
	if !ok {
		p.sink.Record(diagnostics.New(diagnostics.UndefinedMacro, call.Span,
			fmt.Sprintf("undefined macro %s/%d", call.Name, call.Arity())))
		return nil, nil
	}
	switch def.Kind {
	case DefDynamic:
		return p.expandReplacement(def.Replacement, nil)
	case DefString:
		return []token.Token{{Kind: token.STRING, Lexeme: def.StringValue, Span: call.Span}}, nil
	case DefBoolean:
		if def.BoolValue {
			return []token.Token{{Kind: token.TRUE_, Lexeme: "true", Span: call.Span}}, nil
		}
		return nil, nil
	case DefStatic:
		if len(def.Params) != len(call.Args) {
			p.sink.Record(diagnostics.NewBadMacroCall(call.Span,
				fmt.Sprintf("%s/%d called with %d arguments", call.Name, len(def.Params), len(call.Args))))
			return nil, nil
		}
		bindings := make(map[string][]token.Token, len(def.Params))
		for i, name := range def.Params {
			bindings[name] = call.Args[i]
		}
		return p.expandReplacement(def.Replacement, bindings)
	case DefDelayed:
		return []token.Token{{Kind: token.IDENT, Lexeme: call.Name, Span: call.Span, DelayedTag: def.DelayedTag}}, nil
	default:
		return nil, fmt.Errorf("preprocessor: unknown macro definition kind %d", def.Kind)
	}
}

func (p *Preprocessor) expandPredefined(call *MacroCall) ([]token.Token, bool) {
	if call.Arity() != 0 {
		return nil, false
	}
	switch call.Name {
	case "FILE":
		return []token.Token{{Kind: token.STRING, Lexeme: p.reader.File(), Span: call.Span}}, true
	case "LINE":
		return []token.Token{{Kind: token.INT, Lexeme: strconv.Itoa(call.Span.Line), Span: call.Span}}, true
	case "MACHINE":
		return []token.Token{{Kind: token.ATOM, Lexeme: "go", Span: call.Span}}, true
	default:
		return nil, false
	}
}

// expandReplacement re-parses def's replacement tokens through a
// buffered reader, recursively expanding nested macro calls,
// stringification, and parameter substitution.
func (p *Preprocessor) expandReplacement(body []token.Token, bindings map[string][]token.Token) ([]token.Token, error) {
	r := NewBufferReader(p.reader.File(), body)
	var out []token.Token
	for {
		if stringify, ok := TryReadStringify(r); ok {
			bound, has := bindings[stringify.Name]
			if !has {
				p.sink.Record(diagnostics.New(diagnostics.UndefinedStringifyMacro, stringify.Span,
					fmt.Sprintf("%s is not a macro parameter in this expansion", stringify.Name)))
				continue
			}
			out = append(out, token.Token{Kind: token.STRING, Lexeme: tokensText(bound), Span: stringify.Span})
			continue
		}
		if call, ok, err := TryReadMacroCall(r); err != nil {
			return nil, err
		} else if ok {
			nested, err := p.expandMacroCallInScope(call, bindings)
			if err != nil {
				return nil, err
			}
			r.InjectTokens(nested)
			continue
		}
		t, ok := r.TryReadToken()
		if !ok {
			break
		}
		if t.Kind == token.IDENT {
			if bound, has := bindings[t.Lexeme]; has {
				expanded, err := p.expandReplacement(bound, nil)
				if err != nil {
					return nil, err
				}
				out = append(out, expanded...)
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// expandMacroCallInScope is expandMacroCall, but an unbound call found
// while expanding def.Replacement must still see the caller's macro
// container (parameter bindings never shadow the macro namespace:
// `?Name` always means a macro call, never a reference to a same-named
// parameter — only bare identifiers substitute parameters).
func (p *Preprocessor) expandMacroCallInScope(call *MacroCall, _ map[string][]token.Token) ([]token.Token, error) {
	return p.expandMacroCall(call)
}
