package diagnostics

import (
	"fmt"

	"github.com/gkampitakis/go-diff/diffmatchpatch"
	"github.com/maruel/natural"

	"github.com/orbit-lang/orbit/internal/source"
)

// levenshtein computes the classic edit distance between a and b. No
// library in the pack offers this directly, so it is hand-rolled here
// and used only for ranking candidate identifiers by similarity.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

// similarityThreshold bounds how different a candidate may be from the
// unresolved name before it stops being worth suggesting, scaled to the
// name's own length (§4.7 "undefined identifier" suggestion rule).
func similarityThreshold(name string) int {
	n := len(name)
	switch {
	case n <= 3:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}

// SimilarSymbols ranks candidates by edit distance to name, keeping only
// those within the length-scaled threshold, and returns them in natural
// sort order (maruel/natural, so "x2" sorts before "x10") for a
// deterministic Metadata.SimilarSymbols list.
func SimilarSymbols(name string, candidates []string) []string {
	threshold := similarityThreshold(name)
	kept := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == name {
			continue
		}
		if levenshtein(name, c) <= threshold {
			kept = append(kept, c)
		}
	}
	natural.Sort(kept)
	return kept
}

// SuggestReplace builds a "replace" Suggestion for an undefined identifier,
// using diffmatchpatch to phrase the rationale as the character-level edit
// between the unresolved name and the proposed replacement.
func SuggestReplace(span source.Span, got, want string) *Suggestion {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(got, want, false)
	rationale := fmt.Sprintf("%q -> %q (%s)", got, want, describeDiff(diffs))
	confidence := High
	if levenshtein(got, want) > 1 {
		confidence = Medium
	}
	return &Suggestion{
		Kind:       Replace,
		Text:       want,
		Span:       span,
		Confidence: confidence,
		Rationale:  rationale,
	}
}

// describeDiff renders a diffmatchpatch diff as a plain-text edit summary,
// avoiding DiffPrettyText's ANSI escapes since rationale strings are
// embedded in JSON output.
func describeDiff(diffs []diffmatchpatch.Diff) string {
	out := ""
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			out += fmt.Sprintf("insert %q ", d.Text)
		case diffmatchpatch.DiffDelete:
			out += fmt.Sprintf("delete %q ", d.Text)
		}
	}
	if out == "" {
		return "no change"
	}
	return out[:len(out)-1]
}
