// Package pipeline provides the Pipeline/Processor composition the
// teacher's own internal/pipeline uses to chain front-end stages. Here
// it chains lexer -> token reader -> preprocessor, with one independent
// Pipeline instantiated per compilation unit so callers can run several
// concurrently.
package pipeline

import (
	"github.com/eir-lang/eirc/internal/diagnostics"
	"github.com/eir-lang/eirc/internal/preprocessor"
	"github.com/eir-lang/eirc/internal/token"
)

// Context flows through every Processor. Unlike the teacher's
// parser-oriented PipelineContext (which carries an AST root), this one
// carries the preprocessed token stream — the parser itself is out of
// this repository's scope.
type Context struct {
	FilePath string
	Source   string

	// Tokens holds the output of the most recently run stage that
	// produces one (Preprocess).
	Tokens []token.Token

	Sink *diagnostics.Sink

	// reader is handed off from LexProcessor to PreprocessProcessor; it
	// is not a public product of the pipeline the way Tokens is.
	reader preprocessor.Reader
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline runs a sequence of stages over one Context.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline from stages, run in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage. Non-fatal diagnostics do not stop the loop
// (matches the teacher's own Pipeline.Run: "Continue on errors to
// collect diagnostics from all stages"); once a stage leaves ctx.Sink
// marked fatal, no later stage runs.
func (p *Pipeline) Run(initial *Context) *Context {
	ctx := initial
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
		if ctx.Sink != nil && ctx.Sink.IsFatal() {
			break
		}
	}
	return ctx
}
