package diagnostics

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/orbit-lang/orbit/internal/source"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func TestDiagnosticJSONSnapshot(t *testing.T) {
	e := NewEngine(10)
	d := e.Emit("E0301", Error, source.Position{File: "main.orb", Line: 4, Column: 10}, "undefined identifier \"fo\"").
		AddSuggestion(SuggestReplace(source.SpanFrom(source.Position{File: "main.orb", Line: 4, Column: 10}), "fo", "foo")).
		SetMetadata(&Metadata{ErrorCategory: "undefined-identifier", SimilarSymbols: SimilarSymbols("fo", []string{"foo", "fob"})})

	json, err := d.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	snaps.MatchJSON(t, Pretty(json))
}
