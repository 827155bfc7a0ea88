package diagnostics

import (
	"testing"

	"github.com/orbit-lang/orbit/internal/source"
)

func TestEngineCap(t *testing.T) {
	e := NewEngine(2)
	for i := 0; i < 5; i++ {
		e.Emit("E0100", Error, source.Position{Line: i + 1}, "boom")
	}
	if len(e.All()) != 2 {
		t.Fatalf("expected 2 stored diagnostics, got %d", len(e.All()))
	}
	if e.Dropped() != 3 {
		t.Fatalf("expected 3 dropped, got %d", e.Dropped())
	}
}

func TestEngineDefaultCap(t *testing.T) {
	e := NewEngine(0)
	if e.cap != DefaultCap {
		t.Fatalf("expected default cap %d, got %d", DefaultCap, e.cap)
	}
}

func TestEngineSucceeded(t *testing.T) {
	e := NewEngine(10)
	e.Emit("W0900", Warning, source.Position{}, "unused variable")
	if !e.Succeeded() {
		t.Fatal("expected success with only warnings")
	}
	e.Emit("E0100", Error, source.Position{}, "type mismatch")
	if e.Succeeded() {
		t.Fatal("expected failure once an error is emitted")
	}
	if e.ErrorCount() != 1 {
		t.Fatalf("expected 1 error, got %d", e.ErrorCount())
	}
}

func TestDiagnosticChaining(t *testing.T) {
	e := NewEngine(10)
	d := e.Emit("E0200", Error, source.Position{Line: 3, Column: 5}, "undefined identifier \"fo\"").
		AddSuggestion(SuggestReplace(source.SpanFrom(source.Position{Line: 3, Column: 5}), "fo", "foo")).
		SetMetadata(&Metadata{ErrorCategory: "undefined-identifier", SimilarSymbols: SimilarSymbols("fo", []string{"foo", "bar", "fob"})})

	if len(d.Suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(d.Suggestions))
	}
	if d.Suggestions[0].Text != "foo" {
		t.Fatalf("expected suggestion text 'foo', got %q", d.Suggestions[0].Text)
	}
	if d.Metadata == nil || len(d.Metadata.SimilarSymbols) == 0 {
		t.Fatal("expected similar symbols metadata")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	e := NewEngine(10)
	d := e.Emit("E0100", Error, source.Position{File: "main.orb", Line: 10, Column: 2}, "type mismatch").
		AddSpan(source.Span{
			Start: source.Position{File: "main.orb", Line: 10, Column: 2},
			End:   source.Position{File: "main.orb", Line: 10, Column: 8},
			Label: "expected i32",
		}).
		SetMetadata(&Metadata{ErrorCategory: "type-mismatch", InferredTypes: []string{"i32", "string"}})

	json, err := d.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	got := FromJSON(json)
	if got.Code != d.Code || got.Level != d.Level || got.Message != d.Message {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, d)
	}
	if len(got.Spans) != len(d.Spans) {
		t.Fatalf("expected %d spans after round trip, got %d", len(d.Spans), len(got.Spans))
	}
	for i, span := range got.Spans {
		want := d.Spans[i]
		if span.Start.Line != want.Start.Line || span.Start.Column != want.Start.Column {
			t.Fatalf("span %d position mismatch: got %+v, want %+v", i, span, want)
		}
	}
	if got.Metadata == nil || got.Metadata.ErrorCategory != "type-mismatch" {
		t.Fatalf("expected metadata to round trip, got %+v", got.Metadata)
	}
}

func TestPrettyIndents(t *testing.T) {
	e := NewEngine(1)
	d := e.Emit("E0100", Error, source.Position{Line: 1}, "boom")
	json, err := d.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	pretty := Pretty(json)
	if pretty == json {
		t.Fatal("expected pretty-printed JSON to differ from compact form")
	}
}

func TestSimilarSymbolsThreshold(t *testing.T) {
	got := SimilarSymbols("counter", []string{"counterr", "count", "totally_unrelated_name"})
	if len(got) == 0 {
		t.Fatal("expected at least one close candidate")
	}
	for _, c := range got {
		if c == "totally_unrelated_name" {
			t.Fatalf("unrelated candidate %q should not survive threshold", c)
		}
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{Error: "error", Warning: "warning", Help: "help", Note: "note"}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Fatalf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}
