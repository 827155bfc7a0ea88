// Package symbols implements the Symbol Table (C2): scope-nested name ->
// SymbolEntry mapping with safe lookup and insertion.
package symbols

import (
	"fmt"

	"github.com/orbit-lang/orbit/internal/consteval"
	"github.com/orbit-lang/orbit/internal/types"
)

// Kind classifies what a SymbolEntry names (§3).
type Kind int

const (
	KindFunction Kind = iota
	KindVariable
	KindType
	KindEnumVariant
	KindConst
	KindParameter
	KindField
	KindModule
	KindModuleAlias
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindVariable:
		return "variable"
	case KindType:
		return "type"
	case KindEnumVariant:
		return "enum-variant"
	case KindConst:
		return "const"
	case KindParameter:
		return "parameter"
	case KindField:
		return "field"
	case KindModule:
		return "module"
	case KindModuleAlias:
		return "module-alias"
	default:
		return "unknown"
	}
}

// SymbolEntry is one name binding (§3).
type SymbolEntry struct {
	Name string
	Kind Kind
	Type *types.TypeDescriptor
	Node any // defining AST node; typed as `any` to avoid an ast -> symbols -> ast import cycle

	Used             bool
	Exported         bool
	Mutable          bool
	IsInstanceMethod bool
	IsGeneric        bool

	Const *consteval.Value // set when Kind == KindConst

	// EnumVariant extras.
	VariantPayload *types.TypeDescriptor

	// Function extras: cached ordered parameter entries.
	Params []*SymbolEntry
}

// Scope is one symbol-table node (§3 SymbolTable/Scope): a mapping name ->
// SymbolEntry, a parent (nil for global) and an integer id.
type Scope struct {
	ID      int
	Parent  *Scope
	symbols map[string]*SymbolEntry
	order   []string // insertion order, needed for deterministic field/param layout (§5)
}

var nextScopeID int

// NewScope creates a root (global) scope with the given initial capacity
// hint.
func NewScope(capacity int) *Scope {
	nextScopeID++
	return &Scope{
		ID:      nextScopeID,
		symbols: make(map[string]*SymbolEntry, capacity),
	}
}

// NewChildScope creates a scope nested under parent (§2: blocks, function
// bodies, loop bodies, match arms each introduce one).
func NewChildScope(parent *Scope) *Scope {
	nextScopeID++
	return &Scope{
		ID:      nextScopeID,
		Parent:  parent,
		symbols: make(map[string]*SymbolEntry),
	}
}

// Insert adds name -> entry to this scope. Returns false if the name
// already exists in *this* scope (§3 invariant 3); shadowing an outer
// scope's symbol is always allowed.
func (s *Scope) Insert(name string, entry *SymbolEntry) bool {
	if _, exists := s.symbols[name]; exists {
		return false
	}
	s.symbols[name] = entry
	s.order = append(s.order, name)
	return true
}

// LookupLocal looks up name in this scope only.
func (s *Scope) LookupLocal(name string) (*SymbolEntry, bool) {
	e, ok := s.symbols[name]
	return e, ok
}

// LookupRecursive walks this scope and its ancestors. The error return
// distinguishes "exhausted every scope" from "found"; UndefinedSymbol
// diagnostics are raised by the caller, not here.
func (s *Scope) LookupRecursive(name string) (*SymbolEntry, error) {
	for scope := s; scope != nil; scope = scope.Parent {
		if e, ok := scope.symbols[name]; ok {
			return e, nil
		}
	}
	return nil, fmt.Errorf("undefined identifier %q", name)
}

// LookupSafe is LookupRecursive without the error: nil means not found.
func (s *Scope) LookupSafe(name string) *SymbolEntry {
	e, err := s.LookupRecursive(name)
	if err != nil {
		return nil
	}
	return e
}

// Names returns symbol names in insertion order (struct field layout,
// function parameter order, and deterministic diagnostic ordering all
// depend on this, §5).
func (s *Scope) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// AllNames collects every name visible from this scope, innermost first,
// used by the "similar symbols" suggestion subsystem (§4.7).
func (s *Scope) AllNames() []string {
	var out []string
	seen := make(map[string]bool)
	for scope := s; scope != nil; scope = scope.Parent {
		for _, n := range scope.order {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}
