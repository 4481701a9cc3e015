package pipeline

import (
	"github.com/eir-lang/eirc/internal/diagnostics"
	"github.com/eir-lang/eirc/internal/lexer"
	"github.com/eir-lang/eirc/internal/preprocessor"
	"github.com/eir-lang/eirc/internal/token"
)

// LexProcessor wraps a lexer over ctx.Source in a StreamReader, which
// produces tokens lazily as they are read, and leaves the reader for the
// next stage on the context (ctx.Tokens is only populated once
// PreprocessProcessor drains it).
type LexProcessor struct{}

func (LexProcessor) Process(ctx *Context) *Context {
	lex := lexer.New(ctx.FilePath, ctx.Source)
	ctx.reader = preprocessor.NewStreamReader(lex)
	return ctx
}

// PreprocessProcessor drains a lex-stage reader through a
// preprocessor.Preprocessor, collecting the expanded token stream into
// ctx.Tokens.
type PreprocessProcessor struct {
	Include preprocessor.IncludeResolver
	// Macros seeds dynamic macro definitions from project configuration
	// (config.Configuration.Macros), each a single-token replacement.
	Macros map[string]token.Token
}

func (p PreprocessProcessor) Process(ctx *Context) *Context {
	if ctx.reader == nil {
		return ctx
	}
	pp := preprocessor.New(ctx.reader, ctx.Sink, p.Include)
	for name, tok := range p.Macros {
		pp.Macros().SeedDynamic(name, []token.Token{tok})
	}
	for {
		tok, ok, err := pp.Next()
		if err != nil {
			sp := token.Span{File: ctx.FilePath}
			ctx.Sink.Fatal(diagnostics.New(diagnostics.IOError, sp, err.Error()))
			break
		}
		if !ok {
			break
		}
		ctx.Tokens = append(ctx.Tokens, tok)
	}
	return ctx
}
