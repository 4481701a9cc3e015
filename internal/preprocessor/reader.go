// Package preprocessor implements the macro/conditional-compilation
// layer between the lexer and the parser: a small token-reader
// abstraction with pushback, a macro container, and the main expansion
// state machine. Grounded on
// original_source/libeir_syntax_erl/src/preprocessor/preprocessor.rs,
// reworked into the teacher's idiom (plain structs, no trait objects,
// pipeline.Processor composition).
package preprocessor

import "github.com/eir-lang/eirc/internal/token"

// Reader is the common interface of this package's two token-reader
// implementations: a cursor with a pushback stack (any number of tokens)
// over either a live lexer or a buffered token deque.
type Reader interface {
	// TryReadToken returns the next token and true, or the zero Token and
	// false once the underlying source is exhausted.
	TryReadToken() (token.Token, bool)
	// UnreadToken pushes t back; the next TryReadToken call returns it.
	UnreadToken(t token.Token)
	// File names the source this reader's tokens are attributed to.
	File() string
}

// lexerSource is the minimal surface StreamReader needs from a lexer,
// kept narrow so tests can fake it without constructing a real Lexer.
type lexerSource interface {
	NextToken() token.Token
	File() string
}

// StreamReader is a Reader over live lexer output.
type StreamReader struct {
	lex     lexerSource
	pending []token.Token // pushback stack, most recent last
}

// NewStreamReader wraps lex as a Reader.
func NewStreamReader(lex lexerSource) *StreamReader {
	return &StreamReader{lex: lex}
}

func (r *StreamReader) TryReadToken() (token.Token, bool) {
	if n := len(r.pending); n > 0 {
		t := r.pending[n-1]
		r.pending = r.pending[:n-1]
		return t, t.Kind != token.EOF
	}
	t := r.lex.NextToken()
	return t, t.Kind != token.EOF
}

func (r *StreamReader) UnreadToken(t token.Token) {
	r.pending = append(r.pending, t)
}

func (r *StreamReader) File() string { return r.lex.File() }

// InjectTokens splices tokens at the current read position, for
// include expansion: the next TryReadToken calls return tokens in
// order, followed by whatever the reader would otherwise have
// produced.
func (r *StreamReader) InjectTokens(tokens []token.Token) {
	for i := len(tokens) - 1; i >= 0; i-- {
		r.UnreadToken(tokens[i])
	}
}

// BufferReader is a Reader over an already-lexed token deque, used to
// re-parse macro replacement text and conditional-expression tokens.
type BufferReader struct {
	file    string
	tokens  []token.Token
	pos     int
	pending []token.Token
}

// NewBufferReader wraps tokens, attributing them to file for
// diagnostics.
func NewBufferReader(file string, tokens []token.Token) *BufferReader {
	return &BufferReader{file: file, tokens: tokens}
}

func (r *BufferReader) TryReadToken() (token.Token, bool) {
	if n := len(r.pending); n > 0 {
		t := r.pending[n-1]
		r.pending = r.pending[:n-1]
		return t, true
	}
	if r.pos >= len(r.tokens) {
		return token.Token{Kind: token.EOF}, false
	}
	t := r.tokens[r.pos]
	r.pos++
	return t, true
}

func (r *BufferReader) UnreadToken(t token.Token) {
	r.pending = append(r.pending, t)
}

func (r *BufferReader) File() string { return r.file }

// InjectTokens splices tokens at the current read position.
func (r *BufferReader) InjectTokens(tokens []token.Token) {
	for i := len(tokens) - 1; i >= 0; i-- {
		r.UnreadToken(tokens[i])
	}
}
