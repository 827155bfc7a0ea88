// Package source holds the small position/span types shared by the AST,
// type registry, and diagnostic engine. Kept dependency-free so it can sit
// underneath every other package without creating import cycles.
package source

import "fmt"

// Position is a single point in a source file, 1-indexed. Snippet, when
// present, is the literal text of that line, carried through from the
// input AST so a diagnostic can render a caret under the offending
// column without this module ever reading source files itself.
type Position struct {
	File    string
	Line    int
	Column  int
	Snippet string
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsZero reports whether the position was never set.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0 && p.File == ""
}

// Span is a rectangle of source text between two positions, with optional
// display metadata (§3 Diagnostic.spans).
type Span struct {
	Start   Position
	End     Position
	Label   string
	Snippet string
}

func (s Span) String() string {
	if s.Start.File != "" {
		return fmt.Sprintf("%s:%d:%d-%d:%d", s.Start.File, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// SpanFrom builds a single-point span from a position, useful for nodes
// whose end position the parser did not record separately. The position's
// snippet, if any, carries through to the span.
func SpanFrom(pos Position) Span {
	return Span{Start: pos, End: pos, Snippet: pos.Snippet}
}
