package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/eir-lang/eirc/internal/token"
)

// Renderer formats a Sink's diagnostics for a terminal, the way a
// compiler driver would print them before exiting. Color is only
// emitted when the destination is a real terminal, detected with
// go-isatty — the teacher repo already depends on go-isatty for exactly
// this kind of TTY-sensitive formatting.
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer builds a Renderer writing to w, auto-detecting color
// support when w is *os.File.
func NewRenderer(w io.Writer) *Renderer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{out: w, color: color}
}

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
)

// Render writes every diagnostic in s, one per line.
func (r *Renderer) Render(s *Sink) {
	for _, d := range s.All() {
		r.renderOne(d)
	}
}

func (r *Renderer) renderOne(d *Diagnostic) {
	label := d.Severity.String()
	if r.color {
		color := ansiYellow
		if d.Severity == SeverityError {
			color = ansiRed
		}
		fmt.Fprintf(r.out, "%s%s%s%s: %s%s: %s\n",
			ansiBold, color, label, ansiReset, d.Span.File, posSuffix(d.Span), d.Message)
		return
	}
	fmt.Fprintf(r.out, "%s: %s%s: %s\n", label, d.Span.File, posSuffix(d.Span), d.Message)
}

func posSuffix(sp token.Span) string {
	if sp.Line == 0 {
		return ""
	}
	return fmt.Sprintf(":%d:%d", sp.Line, sp.Col)
}
