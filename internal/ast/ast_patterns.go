package ast

import "github.com/orbit-lang/orbit/internal/source"

// Pattern is matched against a scrutinee in match/if-let (§6).
type Pattern interface {
	Node
	patternNode()
}

// WildcardPattern is `_`, matching anything without binding it.
type WildcardPattern struct{ At source.Position }

func (p *WildcardPattern) Pos() source.Position { return p.At }
func (p *WildcardPattern) String() string       { return "_" }
func (p *WildcardPattern) patternNode()         {}

// BindingPattern binds the scrutinee to a new local name.
type BindingPattern struct {
	At   source.Position
	Name string
}

func (p *BindingPattern) Pos() source.Position { return p.At }
func (p *BindingPattern) String() string       { return p.Name }
func (p *BindingPattern) patternNode()         {}

// LiteralPattern matches an exact literal value.
type LiteralPattern struct {
	At      source.Position
	Literal Expression // one of the literal expression nodes
}

func (p *LiteralPattern) Pos() source.Position { return p.At }
func (p *LiteralPattern) String() string       { return p.Literal.String() }
func (p *LiteralPattern) patternNode()         {}

// EnumVariantPattern matches `EnumName.Variant(bindings...)` or
// `EnumName.Variant` for a unit variant.
type EnumVariantPattern struct {
	At       source.Position
	EnumName string
	Variant  string
	Bindings []Pattern // payload sub-patterns, empty for a unit variant
}

func (p *EnumVariantPattern) Pos() source.Position { return p.At }
func (p *EnumVariantPattern) String() string       { return p.EnumName + "." + p.Variant }
func (p *EnumVariantPattern) patternNode()         {}

// TuplePattern destructures a tuple value element-wise.
type TuplePattern struct {
	At       source.Position
	Elements []Pattern
}

func (p *TuplePattern) Pos() source.Position { return p.At }
func (p *TuplePattern) String() string       { return "(tuple pattern)" }
func (p *TuplePattern) patternNode()         {}
