package pipeline_test

import (
	"testing"

	"github.com/eir-lang/eirc/internal/diagnostics"
	"github.com/eir-lang/eirc/internal/pipeline"
	"github.com/eir-lang/eirc/internal/token"
)

func TestLexPreprocessPipeline(t *testing.T) {
	src := "-define(X, 1). ?X."
	pl := pipeline.New(pipeline.LexProcessor{}, pipeline.PreprocessProcessor{})
	ctx := &pipeline.Context{FilePath: "test.fnx", Source: src, Sink: diagnostics.NewSink()}
	out := pl.Run(ctx)

	if out.Sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", out.Sink.All())
	}
	var lexemes []string
	for _, tok := range out.Tokens {
		if tok.Kind == token.NEWLINE {
			continue
		}
		lexemes = append(lexemes, tok.Lexeme)
	}
	found := false
	for _, l := range lexemes {
		if l == "1" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected macro expansion to produce literal 1, got %v", lexemes)
	}
}

func TestPipelineStopsOnFatalDiagnostic(t *testing.T) {
	src := `-error("boom").`
	pl := pipeline.New(pipeline.LexProcessor{}, pipeline.PreprocessProcessor{})
	ctx := &pipeline.Context{FilePath: "test.fnx", Source: src, Sink: diagnostics.NewSink()}
	out := pl.Run(ctx)
	if !out.Sink.IsFatal() {
		t.Errorf("expected -error directive to mark the sink fatal")
	}
}
