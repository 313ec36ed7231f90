// Package source owns source text: its name, its lines, and the line
// offset a chunk is embedded at within a logical file. A REPL session
// feeds each typed chunk in as its own Source, offset by how many lines
// came before it, so diagnostics always point at a real line number.
package source

import "strings"

// Source is immutable once constructed.
type Source struct {
	Name       string
	LineOffset int
	Lines      []string
}

// New splits text into lines and wraps it as a Source starting at
// lineOffset (0 for a whole file, the running total for REPL chunks).
func New(name string, lineOffset int, text string) *Source {
	lines := strings.Split(text, "\n")
	return &Source{Name: name, LineOffset: lineOffset, Lines: lines}
}

// Line returns the 1-indexed logical line, or "" if out of range.
func (s *Source) Line(n int) string {
	i := n - s.LineOffset - 1
	if i < 0 || i >= len(s.Lines) {
		return ""
	}
	return s.Lines[i]
}

// LastLine returns the logical line number of the last line held.
func (s *Source) LastLine() int {
	return s.LineOffset + len(s.Lines)
}

// Pos is a single point in a Source: line is 1-indexed logical,
// column is 0-indexed byte offset into the line.
type Pos struct {
	Line   int
	Column int
}
