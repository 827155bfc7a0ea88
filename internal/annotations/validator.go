package annotations

import (
	"fmt"

	"github.com/orbit-lang/orbit/internal/ast"
	"github.com/orbit-lang/orbit/internal/diagnostics"
)

// Validator applies the registry's rules to annotation lists attached to
// AST nodes (§4.6).
type Validator struct {
	registry *Registry
	engine   *diagnostics.Engine
}

// NewValidator builds a validator over the given registry, recording
// failures into engine.
func NewValidator(registry *Registry, engine *diagnostics.Engine) *Validator {
	return &Validator{registry: registry, engine: engine}
}

// Result is what category-specific rules (§4.6 step 6) leave behind for the
// declaration/statement analyzer to act on.
type Result struct {
	OK                      bool
	NonDeterministicAllowed bool
}

// Validate runs all six checks in §4.6 against anns, which are attached to
// a node whose syntactic category is described by context.
func (v *Validator) Validate(anns []*ast.Annotation, context Context) Result {
	result := Result{OK: true}
	seen := make(map[string]int)

	for _, a := range anns {
		entry, ok := v.registry.Lookup(a.Name)
		if !ok {
			v.engine.Emit("E0801", diagnostics.Error, a.At,
				fmt.Sprintf("unknown annotation %q", a.Name))
			result.OK = false
			continue
		}

		if !v.validateParams(a, entry) {
			result.OK = false
		}

		if !context.Has(entry.Contexts) {
			v.engine.Emit("E0802", diagnostics.Error, a.At,
				fmt.Sprintf("annotation %q is not valid in this context", a.Name))
			result.OK = false
		}

		for _, other := range anns {
			if other == a || other.Name == a.Name {
				continue
			}
			if v.registry.ConflictsWith(a.Name, other.Name) {
				v.engine.Emit("E0803", diagnostics.Error, a.At,
					fmt.Sprintf("annotation %q conflicts with %q", a.Name, other.Name))
				result.OK = false
			}
		}

		seen[a.Name]++
		if seen[a.Name] > 1 && !entry.MultiValued {
			v.engine.Emit("E0804", diagnostics.Error, a.At,
				fmt.Sprintf("duplicate annotation %q", a.Name))
			result.OK = false
		}

		if entry.Category == CategoryConcurrency {
			result.NonDeterministicAllowed = true
		}
	}

	return result
}

// validateParams checks parameter count and per-parameter type against
// entry's schema (§4.6 step 2).
func (v *Validator) validateParams(a *ast.Annotation, entry *Entry) bool {
	ok := true
	required := 0
	for _, p := range entry.Params {
		if p.Required {
			required++
		}
	}
	if len(a.Params) < required {
		v.engine.Emit("E0806", diagnostics.Error, a.At,
			fmt.Sprintf("annotation %q is missing a required parameter", a.Name))
		ok = false
	}

	for i, p := range a.Params {
		if i >= len(entry.Params) {
			v.engine.Emit("E0806", diagnostics.Error, a.At,
				fmt.Sprintf("annotation %q takes at most %d parameter(s)", a.Name, len(entry.Params)))
			ok = false
			break
		}
		schema := entry.Params[i]
		if p.Kind != schema.Kind {
			v.engine.Emit("E0806", diagnostics.Error, a.At,
				fmt.Sprintf("annotation %q parameter %q has the wrong type", a.Name, schema.Name))
			ok = false
		}
	}
	return ok
}
