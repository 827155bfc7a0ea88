// Package ast defines the AST node categories the analyzer consumes from
// the parser (§6) and the attachments (resolved type, resolved symbol) it
// produces on them during analysis.
//
// The node set is closed and known up front (the parser never invents a
// new category at runtime), so — per spec.md §9 "dynamic dispatch on AST
// node kind" — the walker dispatches on a type switch over these concrete
// node structs rather than a virtual method hierarchy; each node still
// implements the narrow Node/Expression/Statement interfaces so the
// walker can hold slices of heterogeneous statements/expressions the way
// the teacher's own AST package does.
package ast

import (
	"github.com/orbit-lang/orbit/internal/source"
	"github.com/orbit-lang/orbit/internal/symbols"
	"github.com/orbit-lang/orbit/internal/types"
)

// Node is the base interface every AST node implements.
type Node interface {
	Pos() source.Position
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
	// ResolvedType returns the type attached by the analyzer, or nil
	// before analysis / on failure (§3 invariant 1).
	ResolvedType() *types.TypeDescriptor
	SetResolvedType(*types.TypeDescriptor)
}

// Statement is any node that performs an action without producing a value.
type Statement interface {
	Node
	statementNode()
}

// Decl is any top-level declaration (function, struct, enum, impl, extern,
// const, import).
type Decl interface {
	Node
	declNode()
}

// TypeAttachment implements the ResolvedType/SetResolvedType half of
// Expression; embedded by value in every concrete expression struct.
type TypeAttachment struct {
	typ *types.TypeDescriptor
}

func (t *TypeAttachment) ResolvedType() *types.TypeDescriptor     { return t.typ }
func (t *TypeAttachment) SetResolvedType(td *types.TypeDescriptor) { t.typ = td }

// Annotations is embedded by every node category that can carry an
// attached annotation list (§3 AIAnnotation/SemanticTag; §6 "many kinds"
// carry one).
type Annotations struct {
	Tags []*Annotation
}

func (a *Annotations) AnnotationList() []*Annotation { return a.Tags }

// AnnotationParamKind tags the typed value an annotation parameter holds.
type AnnotationParamKind int

const (
	ParamString AnnotationParamKind = iota
	ParamIdent
	ParamInt
	ParamBool
	ParamFloat
)

// AnnotationParam is one name+typed-value pair inside an annotation's
// parameter list (§3).
type AnnotationParam struct {
	Name   string
	Kind   AnnotationParamKind
	String string
	Ident  string
	Int    int64
	Bool   bool
	Float  float64
}

// Annotation is one `@name(params...)` tag attached to a node (§3
// AIAnnotation/SemanticTag).
type Annotation struct {
	Name   string
	Params []AnnotationParam
	At     source.Position
	Target Node
}

func (a *Annotation) Pos() source.Position { return a.At }
func (a *Annotation) String() string       { return "@" + a.Name }

// Program is the root node (§6 "program").
type Program struct {
	Imports      []*Import
	Declarations []Decl
}

func (p *Program) Pos() source.Position {
	if len(p.Imports) > 0 {
		return p.Imports[0].Pos()
	}
	if len(p.Declarations) > 0 {
		return p.Declarations[0].Pos()
	}
	return source.Position{Line: 1, Column: 1}
}
func (p *Program) String() string { return "<program>" }

// Import is one `import` declaration (§6 "import").
type Import struct {
	Annotations
	At    source.Position
	Path  string
	Alias string // "" when the module is imported under its own name
}

func (i *Import) Pos() source.Position { return i.At }
func (i *Import) String() string       { return "import " + i.Path }
func (i *Import) declNode()            {}

// Identifier is a name reference (§6 "identifier").
type Identifier struct {
	TypeAttachment
	At     source.Position
	Name   string
	Symbol *symbols.SymbolEntry // resolved reference, set on success (§6 produced attachments)
}

func (i *Identifier) Pos() source.Position { return i.At }
func (i *Identifier) String() string       { return i.Name }
func (i *Identifier) expressionNode()      {}

// Literal node categories (§6 "integer/float/string/bool/char/unit literal").

type IntegerLiteral struct {
	TypeAttachment
	At    source.Position
	Value int64
}

func (l *IntegerLiteral) Pos() source.Position { return l.At }
func (l *IntegerLiteral) String() string       { return "<int>" }
func (l *IntegerLiteral) expressionNode()      {}

type FloatLiteral struct {
	TypeAttachment
	At    source.Position
	Value float64
}

func (l *FloatLiteral) Pos() source.Position { return l.At }
func (l *FloatLiteral) String() string       { return "<float>" }
func (l *FloatLiteral) expressionNode()      {}

type StringLiteral struct {
	TypeAttachment
	At    source.Position
	Value string
}

func (l *StringLiteral) Pos() source.Position { return l.At }
func (l *StringLiteral) String() string       { return "<string>" }
func (l *StringLiteral) expressionNode()      {}

type CharLiteral struct {
	TypeAttachment
	At    source.Position
	Value rune
}

func (l *CharLiteral) Pos() source.Position { return l.At }
func (l *CharLiteral) String() string       { return "<char>" }
func (l *CharLiteral) expressionNode()      {}

type BoolLiteral struct {
	TypeAttachment
	At    source.Position
	Value bool
}

func (l *BoolLiteral) Pos() source.Position { return l.At }
func (l *BoolLiteral) String() string       { return "<bool>" }
func (l *BoolLiteral) expressionNode()      {}

type UnitLiteral struct {
	TypeAttachment
	At source.Position
}

func (l *UnitLiteral) Pos() source.Position { return l.At }
func (l *UnitLiteral) String() string       { return "()" }
func (l *UnitLiteral) expressionNode()      {}
