// Package diagnostics implements the Diagnostic Engine (C7): accumulating
// errors/warnings with source spans, fix suggestions, and JSON output.
package diagnostics

import "github.com/orbit-lang/orbit/internal/source"

// Level is a diagnostic's severity (§3).
type Level int

const (
	Error Level = iota
	Warning
	Help
	Note
)

func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Help:
		return "help"
	case Note:
		return "note"
	default:
		return "note"
	}
}

// Confidence grades how safe a suggestion is to auto-apply (§7).
type Confidence int

const (
	High Confidence = iota
	Medium
	Low
)

func (c Confidence) String() string {
	switch c {
	case High:
		return "high"
	case Medium:
		return "medium"
	default:
		return "low"
	}
}

// SuggestionKind is the edit a Suggestion describes (§3).
type SuggestionKind int

const (
	Insert SuggestionKind = iota
	Delete
	Replace
)

func (k SuggestionKind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return "insert"
	}
}

// Suggestion is one proposed fix (§3).
type Suggestion struct {
	Kind       SuggestionKind
	Text       string
	Span       source.Span
	Confidence Confidence
	Rationale  string
}

// Metadata carries structured extras a diagnostic can attach (§3, §6).
type Metadata struct {
	ErrorCategory    string
	SimilarSymbols   []string
	InferredTypes    []string
	AvailableMethods []string
}

// Diagnostic is one reported error/warning/help/note (§3).
type Diagnostic struct {
	Code        string
	Level       Level
	Message     string
	Spans       []source.Span
	Suggestions []*Suggestion
	Metadata    *Metadata
}

// AddSpan appends a span to the diagnostic and returns it for chaining.
func (d *Diagnostic) AddSpan(span source.Span) *Diagnostic {
	d.Spans = append(d.Spans, span)
	return d
}

// AddSuggestion appends a suggestion and returns the diagnostic for
// chaining.
func (d *Diagnostic) AddSuggestion(s *Suggestion) *Diagnostic {
	d.Suggestions = append(d.Suggestions, s)
	return d
}

// SetMetadata attaches (or replaces) the diagnostic's metadata.
func (d *Diagnostic) SetMetadata(m *Metadata) *Diagnostic {
	d.Metadata = m
	return d
}

// Engine accumulates diagnostics for one analyzer run (§4.7).
type Engine struct {
	diagnostics []*Diagnostic
	cap         int
	dropped     int
}

// DefaultCap is the engine's default diagnostic cap (§4.7).
const DefaultCap = 100

// NewEngine creates an engine with the given cap; a cap <= 0 uses
// DefaultCap.
func NewEngine(cap int) *Engine {
	if cap <= 0 {
		cap = DefaultCap
	}
	return &Engine{cap: cap}
}

// Emit records a new diagnostic and returns it so callers can chain
// AddSpan/AddSuggestion/SetMetadata. Beyond the cap, emissions are
// counted (Dropped) but not stored (§4.7).
func (e *Engine) Emit(code string, level Level, loc source.Position, message string) *Diagnostic {
	d := &Diagnostic{Code: code, Level: level, Message: message}
	d.Spans = append(d.Spans, source.SpanFrom(loc))
	if len(e.diagnostics) >= e.cap {
		e.dropped++
		return d
	}
	e.diagnostics = append(e.diagnostics, d)
	return d
}

// All returns every stored diagnostic in emission order (§5 determinism).
func (e *Engine) All() []*Diagnostic { return e.diagnostics }

// Dropped reports how many emissions exceeded the cap and were not
// stored.
func (e *Engine) Dropped() int { return e.dropped }

// ErrorCount counts stored diagnostics at Error level.
func (e *Engine) ErrorCount() int {
	n := 0
	for _, d := range e.diagnostics {
		if d.Level == Error {
			n++
		}
	}
	return n
}

// Succeeded reports overall analyzer success: no Error-level diagnostics
// (§2, §7).
func (e *Engine) Succeeded() bool { return e.ErrorCount() == 0 }
