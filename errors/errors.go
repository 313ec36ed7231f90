// Package errors implements Zoof's diagnostics contract: three error
// classes (syntax, name/analysis, runtime), each with a stable code,
// and a bit-exact source-snippet report format shared by every stage.
package errors

import (
	"fmt"
	"strings"

	"zoof/source"
)

// Class is one of the three reportable error families.
type Class int

const (
	Syntax Class = iota
	Name
	Runtime
)

func (c Class) label() string {
	switch c {
	case Syntax:
		return "SyntaxError"
	case Name:
		return "NameError"
	default:
		return "RuntimeError"
	}
}

// Span is the (start, end) source range an error points at. End may
// equal Start for a single-point diagnostic.
type Span struct {
	Start source.Pos
	End   source.Pos
}

// Diagnostic is one reported error, ready for formatting.
type Diagnostic struct {
	Class       Class
	Code        string
	Message     string
	Span        Span
	Explanation string
}

// Handler accumulates diagnostics across the lexer/parser/resolver/
// interpreter stages of a single execution. It is stateful by design
// (per spec.md's "diagnostics object is stateful"): passed explicitly
// to each stage rather than held as a package-level singleton.
type Handler struct {
	Source *source.Source

	HadSyntaxError   bool
	HadAnalysisError bool
	HadRuntimeError  bool

	Diagnostics []Diagnostic
}

// NewHandler returns a Handler bound to src.
func NewHandler(src *source.Source) *Handler {
	return &Handler{Source: src}
}

// SwapSource replaces the active source and returns the previous one,
// so a Callable can point diagnostics at its defining source for the
// duration of a call and restore the caller's source on return.
func (h *Handler) SwapSource(src *source.Source) *source.Source {
	prev := h.Source
	h.Source = src
	return prev
}

// ResetErrors clears the accumulated flags and diagnostics, keeping the
// bound source. Used between REPL top-level statements.
func (h *Handler) ResetErrors() {
	h.HadSyntaxError = false
	h.HadAnalysisError = false
	h.HadRuntimeError = false
	h.Diagnostics = nil
}

// HadError reports whether any class of error has been recorded.
func (h *Handler) HadError() bool {
	return h.HadSyntaxError || h.HadAnalysisError || h.HadRuntimeError
}

func classCodePrefix(class Class) byte {
	switch class {
	case Syntax:
		return '1'
	case Name:
		return '2'
	default:
		return '8'
	}
}

// SyntaxError reports an E1xxx diagnostic.
func (h *Handler) SyntaxError(code, message string, span Span, explanation string) {
	h.report(Syntax, code, message, span, explanation)
}

// NameError reports an E2xxx diagnostic.
func (h *Handler) NameError(code, message string, span Span, explanation string) {
	h.report(Name, code, message, span, explanation)
}

// RuntimeError reports an E8xxx diagnostic.
func (h *Handler) RuntimeError(code, message string, span Span, explanation string) {
	h.report(Runtime, code, message, span, explanation)
}

func (h *Handler) report(class Class, code, message string, span Span, explanation string) {
	if len(code) != 5 || code[0] != 'E' || code[1] != classCodePrefix(class) {
		panic(fmt.Sprintf("errors: code %q does not match class %s", code, class.label()))
	}
	switch class {
	case Syntax:
		h.HadSyntaxError = true
	case Name:
		h.HadAnalysisError = true
	case Runtime:
		h.HadRuntimeError = true
	}
	h.Diagnostics = append(h.Diagnostics, Diagnostic{
		Class: class, Code: code, Message: message, Span: span, Explanation: explanation,
	})
}

// Format renders a single diagnostic in the bit-exact report shape:
//
//	-- <ErrorType> (<Code>) --------------- <file>:<line>
//	<message>
//
//	<line>| <source line>
//	     | <carets>
//	<explanation>
func (h *Handler) Format(d Diagnostic) string {
	var b strings.Builder

	header := fmt.Sprintf("-- %s (%s) ", d.Class.label(), d.Code)
	tail := fmt.Sprintf(" %s:%d", h.sourceName(), d.Span.Start.Line)
	pad := 80 - len(header) - len(tail)
	if pad < 3 {
		pad = 3
	}
	b.WriteString(header)
	b.WriteString(strings.Repeat("-", pad))
	b.WriteString(tail)
	b.WriteByte('\n')
	b.WriteString(d.Message)
	b.WriteString("\n\n")

	for line := d.Span.Start.Line; line <= d.Span.End.Line; line++ {
		text := h.sourceLine(line)
		gutter := fmt.Sprintf("%d| ", line)
		b.WriteString(gutter)
		b.WriteString(text)
		b.WriteByte('\n')

		col0, col1 := 0, len(text)
		if line == d.Span.Start.Line {
			col0 = d.Span.Start.Column
		}
		if line == d.Span.End.Line {
			col1 = d.Span.End.Column
			if col1 <= col0 {
				col1 = col0 + 1
			}
		}
		b.WriteString(strings.Repeat(" ", len(gutter)-2))
		b.WriteString("| ")
		b.WriteString(strings.Repeat(" ", col0))
		b.WriteString(strings.Repeat("^", col1-col0))
		b.WriteByte('\n')
	}
	b.WriteString(d.Explanation)
	return b.String()
}

func (h *Handler) sourceName() string {
	if h.Source == nil {
		return "<input>"
	}
	return h.Source.Name
}

func (h *Handler) sourceLine(n int) string {
	if h.Source == nil {
		return ""
	}
	return h.Source.Line(n)
}

// Reports renders every accumulated diagnostic, most-recent-last.
func (h *Handler) Reports() []string {
	out := make([]string, 0, len(h.Diagnostics))
	for _, d := range h.Diagnostics {
		out = append(out, h.Format(d))
	}
	return out
}
