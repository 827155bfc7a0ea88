// Package annotations implements the Annotation Validator (C6): category,
// context, parameter, and conflict rules for semantic tags attached to AST
// nodes.
package annotations

import "github.com/orbit-lang/orbit/internal/ast"

// Context is a bitmask of node categories an annotation may legally target
// (§3 "bitmask of valid contexts").
type Context uint8

const (
	ContextFunction Context = 1 << iota
	ContextStruct
	ContextStatement
	ContextExpression
	ContextParameter
	ContextReturnType
)

func (c Context) Has(bit Context) bool { return c&bit != 0 }

// Category groups annotations for category-specific rules (§4.6 step 6).
type Category int

const (
	CategoryGeneral Category = iota
	CategoryConcurrency
	CategoryFFI
	CategoryOptimization
	CategoryDocumentation
)

// ParamSchema describes one expected annotation parameter.
type ParamSchema struct {
	Name     string
	Kind     ast.AnnotationParamKind
	Required bool
}

// Entry is one registered annotation's schema.
type Entry struct {
	Name        string
	Category    Category
	Contexts    Context
	Params      []ParamSchema
	MultiValued bool // if false, duplicate tags of this name on one node are forbidden
}

// Registry holds the known annotation schemas and their conflict table.
type Registry struct {
	entries   map[string]*Entry
	conflicts map[string]map[string]bool
}

// NewRegistry builds a registry preloaded with the Language's built-in
// annotations; callers may Register additional ones before analysis begins.
func NewRegistry() *Registry {
	r := &Registry{
		entries:   make(map[string]*Entry),
		conflicts: make(map[string]map[string]bool),
	}
	for _, e := range builtinEntries() {
		r.Register(e)
	}
	for _, pair := range builtinConflicts() {
		r.Conflict(pair[0], pair[1])
	}
	return r
}

// Register adds or replaces an annotation schema.
func (r *Registry) Register(e *Entry) {
	r.entries[e.Name] = e
}

// Lookup finds a registered schema by name.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Conflict declares a and b as a mutually exclusive pair (symmetric).
func (r *Registry) Conflict(a, b string) {
	if r.conflicts[a] == nil {
		r.conflicts[a] = make(map[string]bool)
	}
	if r.conflicts[b] == nil {
		r.conflicts[b] = make(map[string]bool)
	}
	r.conflicts[a][b] = true
	r.conflicts[b][a] = true
}

// ConflictsWith reports whether a and b are declared mutually exclusive.
func (r *Registry) ConflictsWith(a, b string) bool {
	return r.conflicts[a] != nil && r.conflicts[a][b]
}

func builtinEntries() []*Entry {
	return []*Entry{
		{
			Name:     "concurrent_safe",
			Category: CategoryConcurrency,
			Contexts: ContextFunction | ContextStatement,
		},
		{
			Name:     "non_deterministic",
			Category: CategoryConcurrency,
			Contexts: ContextFunction | ContextStatement,
		},
		{
			Name:     "ffi_transfer",
			Category: CategoryFFI,
			Contexts: ContextParameter | ContextReturnType,
			Params: []ParamSchema{
				{Name: "ownership", Kind: ast.ParamIdent, Required: true},
			},
		},
		{
			Name:     "inline_hint",
			Category: CategoryOptimization,
			Contexts: ContextFunction,
		},
		{
			Name:     "cold",
			Category: CategoryOptimization,
			Contexts: ContextFunction,
		},
		{
			Name:     "deprecated",
			Category: CategoryDocumentation,
			Contexts: ContextFunction | ContextStruct,
			Params: []ParamSchema{
				{Name: "reason", Kind: ast.ParamString, Required: false},
			},
		},
		{
			Name:        "doc",
			Category:    CategoryDocumentation,
			Contexts:    ContextFunction | ContextStruct | ContextExpression,
			Params:      []ParamSchema{{Name: "text", Kind: ast.ParamString, Required: true}},
			MultiValued: true,
		},
	}
}

func builtinConflicts() [][2]string {
	return [][2]string{
		{"inline_hint", "cold"},
		{"concurrent_safe", "non_deterministic"},
	}
}
