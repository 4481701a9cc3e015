// Package lexer turns source text into a flat token stream.
//
// It is the external collaborator upstream of the token reader: the
// preprocessor never looks at source text directly, only at tokens this
// package produces. A full surface grammar is out of scope here — it
// only needs to support the token vocabulary the preprocessor and the
// conditional-expression evaluator actually consume.
package lexer

import (
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/eir-lang/eirc/internal/token"
)

// Lexer scans a single source file into tokens.
type Lexer struct {
	file string

	input        string
	position     int
	readPosition int
	ch           rune
	line         int
	column       int
}

// New creates a Lexer over input, attributing its tokens to file (used
// in diagnostics spans and the FILE predefined macro).
func New(file, input string) *Lexer {
	l := &Lexer{file: file, input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// File returns the name this lexer attributes to its tokens.
func (l *Lexer) File() string { return l.file }

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) span() token.Span {
	return token.Span{File: l.file, Line: l.line, Col: l.column, EndLine: l.line, EndCol: l.column}
}

func (l *Lexer) skipWhitespaceExceptNewline() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// NextToken returns the next token, advancing past it. Callers wanting
// pushback semantics use the token reader, not this method.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceExceptNewline()
	if l.ch == '%' {
		l.skipLineComment()
		l.skipWhitespaceExceptNewline()
	}

	sp := l.span()

	switch {
	case l.ch == 0:
		return token.Token{Kind: token.EOF, Span: sp}
	case l.ch == '\n':
		l.readChar()
		return token.Token{Kind: token.NEWLINE, Lexeme: "\n", Span: sp}
	case l.ch == '.':
		l.readChar()
		return token.Token{Kind: token.PERIOD, Lexeme: ".", Span: sp}
	case l.ch == ',':
		l.readChar()
		return token.Token{Kind: token.COMMA, Lexeme: ",", Span: sp}
	case l.ch == '(':
		l.readChar()
		return token.Token{Kind: token.LPAREN, Lexeme: "(", Span: sp}
	case l.ch == ')':
		l.readChar()
		return token.Token{Kind: token.RPAREN, Lexeme: ")", Span: sp}
	case l.ch == '-':
		l.readChar()
		return token.Token{Kind: token.MINUS, Lexeme: "-", Span: sp}
	case l.ch == '?':
		if l.peekChar() == '?' {
			l.readChar()
			l.readChar()
			return token.Token{Kind: token.STRINGIFY, Lexeme: "??", Span: sp}
		}
		l.readChar()
		return token.Token{Kind: token.QUESTION, Lexeme: "?", Span: sp}
	case l.ch == '/':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Kind: token.NEQ, Lexeme: "/=", Span: sp}
		}
		l.readChar()
		return token.Token{Kind: token.SLASH, Lexeme: "/", Span: sp}
	case l.ch == '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Kind: token.EQ, Lexeme: "==", Span: sp}
		}
		l.readChar()
		return token.Token{Kind: token.ILLEGAL, Lexeme: "=", Span: sp}
	case l.ch == '"':
		return l.readString(sp)
	case l.ch == '\'':
		return l.readQuotedAtom(sp)
	case unicode.IsDigit(l.ch):
		return l.readNumber(sp)
	case isIdentStart(l.ch):
		return l.readIdentOrKeyword(sp)
	default:
		ch := l.ch
		l.readChar()
		return token.Token{Kind: token.ILLEGAL, Lexeme: string(ch), Span: sp}
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func (l *Lexer) readIdentOrKeyword(sp token.Span) token.Token {
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	switch lexeme {
	case "true":
		return token.Token{Kind: token.TRUE_, Lexeme: lexeme, Span: sp}
	case "false":
		return token.Token{Kind: token.FALSE_, Lexeme: lexeme, Span: sp}
	case "not":
		return token.Token{Kind: token.NOT, Lexeme: lexeme, Span: sp}
	case "and", "andalso":
		return token.Token{Kind: token.AND, Lexeme: lexeme, Span: sp}
	case "or", "orelse":
		return token.Token{Kind: token.OR, Lexeme: lexeme, Span: sp}
	default:
		if len(lexeme) > 0 && unicode.IsLower(rune(lexeme[0])) {
			return token.Token{Kind: token.ATOM, Lexeme: lexeme, Span: sp}
		}
		return token.Token{Kind: token.IDENT, Lexeme: lexeme, Span: sp}
	}
}

func (l *Lexer) readNumber(sp token.Span) token.Token {
	start := l.position
	isFloat := false
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) {
			l.readChar()
		}
		lexeme := l.input[start:l.position]
		return token.Token{Kind: token.INT, Lexeme: lexeme, Span: sp}
	}
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	lexeme := l.input[start:l.position]
	if isFloat {
		return token.Token{Kind: token.FLOAT, Lexeme: lexeme, Span: sp}
	}
	return token.Token{Kind: token.INT, Lexeme: lexeme, Span: sp}
}

func isHexDigit(ch rune) bool {
	return unicode.IsDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func (l *Lexer) readString(sp token.Span) token.Token {
	l.readChar() // consume opening quote
	var b strings.Builder
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			b.WriteRune(unescape(l.ch))
			l.readChar()
			continue
		}
		b.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote
	return token.Token{Kind: token.STRING, Lexeme: b.String(), Span: sp}
}

func (l *Lexer) readQuotedAtom(sp token.Span) token.Token {
	l.readChar() // consume opening quote
	var b strings.Builder
	for l.ch != '\'' && l.ch != 0 {
		b.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote
	return token.Token{Kind: token.ATOM, Lexeme: b.String(), Span: sp}
}

func unescape(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return ch
	}
}

// ParseIntLiteral parses an integer token's lexeme into a big.Int,
// honoring the 0x radix prefix.
func ParseIntLiteral(lexeme string) (*big.Int, bool) {
	n := new(big.Int)
	if strings.HasPrefix(lexeme, "0x") || strings.HasPrefix(lexeme, "0X") {
		_, ok := n.SetString(lexeme[2:], 16)
		return n, ok
	}
	_, ok := n.SetString(lexeme, 10)
	return n, ok
}
