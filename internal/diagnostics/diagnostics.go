// Package diagnostics is the structured error/warning channel:
// preprocessor failures are recorded as typed,
// span-tagged values rather than bubbled as bare Go errors, so a single
// pass can report every problem it finds instead of stopping at the
// first one. It follows the shape the teacher's own (pervasively
// referenced but unretrieved) diagnostics package is used with: one
// constructor per code, a Sink that accumulates, and spans attached at
// the call site rather than threaded through every return value.
package diagnostics

import (
	"fmt"

	"github.com/eir-lang/eirc/internal/token"
)

// Severity distinguishes warnings (which may be promoted to errors by
// config.Configuration.WarningsAsErrors) from errors.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Code enumerates the diagnostic taxonomy, plus the I/O kind.
type Code string

const (
	UndefinedMacro          Code = "UndefinedMacro"
	BadMacroCall            Code = "BadMacroCall"
	OrphanedElse            Code = "OrphanedElse"
	OrphanedEnd             Code = "OrphanedEnd"
	UndefinedStringifyMacro Code = "UndefinedStringifyMacro"
	InvalidConditional      Code = "InvalidConditional"
	CompilerError           Code = "CompilerError"
	BadDirective            Code = "BadDirective"
	IOError                 Code = "IOError"
)

// Diagnostic is one reported problem, always carrying the span of the
// token that triggered it.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Span     token.Span
	Message  string
	// Reason carries BadMacroCall's structured payload.
	Reason string
}

func (d *Diagnostic) Error() string {
	if d.Span.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %s", d.Span.File, d.Span.Line, d.Span.Col, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// New builds an error-severity diagnostic.
func New(code Code, sp token.Span, message string) *Diagnostic {
	return &Diagnostic{Code: code, Severity: SeverityError, Span: sp, Message: message}
}

// NewWarning builds a warning-severity diagnostic.
func NewWarning(code Code, sp token.Span, message string) *Diagnostic {
	return &Diagnostic{Code: code, Severity: SeverityWarning, Span: sp, Message: message}
}

// NewBadMacroCall attaches a structured reason.
func NewBadMacroCall(sp token.Span, reason string) *Diagnostic {
	return &Diagnostic{Code: BadMacroCall, Severity: SeverityError, Span: sp,
		Message: "bad macro call: " + reason, Reason: reason}
}

// Sink is a tee'd error sink: a capability to record a typed
// diagnostic, passed by reference so stages compose without returning
// an error from every call. Fatal records stop the preprocessor's
// stream; non-fatal ones let it continue so later stages can still
// surface diagnostics of their own (mirrors the teacher's
// pipeline.Pipeline.Run: "Continue on errors to collect diagnostics from
// all stages").
type Sink struct {
	diagnostics []*Diagnostic
	fatal       bool

	WarningsAsErrors bool
	NoWarn           bool
}

// NewSink creates an empty sink.
func NewSink() *Sink { return &Sink{} }

// Record appends a diagnostic, applying WarningsAsErrors/NoWarn policy.
func (s *Sink) Record(d *Diagnostic) {
	if d.Severity == SeverityWarning {
		if s.NoWarn {
			return
		}
		if s.WarningsAsErrors {
			d.Severity = SeverityError
		}
	}
	s.diagnostics = append(s.diagnostics, d)
}

// Fatal records a diagnostic and marks the sink fatally errored — a
// -error directive is the preprocessor's own use of this.
func (s *Sink) Fatal(d *Diagnostic) {
	s.Record(d)
	s.fatal = true
}

// IsFatal reports whether a fatal diagnostic has been recorded.
func (s *Sink) IsFatal() bool { return s.fatal }

// All returns every recorded diagnostic in recording order.
func (s *Sink) All() []*Diagnostic { return s.diagnostics }

// HasErrors reports whether any error-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Tee adapts a child sink's diagnostics into this one, carrying over
// the child's fatal mark.
func (s *Sink) Tee(child *Sink) {
	for _, d := range child.diagnostics {
		s.Record(d)
	}
	if child.fatal {
		s.fatal = true
	}
}
