package ast

import "github.com/orbit-lang/orbit/internal/source"

// Param is one function/method parameter.
type Param struct {
	At       source.Position
	Name     string
	TypeExpr TypeExpression
}

func (p *Param) Pos() source.Position { return p.At }
func (p *Param) String() string       { return p.Name }

// FunctionDecl is `fn name(params) -> ret { body }` (§6 "function-decl").
type FunctionDecl struct {
	Annotations
	At         source.Position
	Name       string
	Pub        bool // satisfies the "visibility-modifier" category (§6) inline rather than via a wrapper node
	Params     []*Param
	ReturnType TypeExpression // nil means Void
	Body       *Block
	IsExtern   bool // true for a signature declared inside an extern block
}

func (f *FunctionDecl) Pos() source.Position { return f.At }
func (f *FunctionDecl) String() string       { return "fn " + f.Name }
func (f *FunctionDecl) declNode()            {}

// FieldDecl is one struct field.
type FieldDecl struct {
	At       source.Position
	Name     string
	TypeExpr TypeExpression
}

func (f *FieldDecl) Pos() source.Position { return f.At }
func (f *FieldDecl) String() string       { return f.Name }

// StructDecl is `struct Name { fields } ` (§6 "struct-decl").
type StructDecl struct {
	Annotations
	At     source.Position
	Name   string
	Pub    bool
	Fields []*FieldDecl
}

func (s *StructDecl) Pos() source.Position { return s.At }
func (s *StructDecl) String() string       { return "struct " + s.Name }
func (s *StructDecl) declNode()            {}

// VariantDecl is one enum variant, with an optional payload type.
type VariantDecl struct {
	At      source.Position
	Name    string
	Payload TypeExpression // nil for a unit variant
}

func (v *VariantDecl) Pos() source.Position { return v.At }
func (v *VariantDecl) String() string       { return v.Name }

// EnumDecl is `enum Name<T...> { variants }` (§6 "enum-decl").
type EnumDecl struct {
	Annotations
	At             source.Position
	Name           string
	Pub            bool
	TypeParams     []string
	Variants       []*VariantDecl
}

func (e *EnumDecl) Pos() source.Position { return e.At }
func (e *EnumDecl) String() string       { return "enum " + e.Name }
func (e *EnumDecl) declNode()            {}

// ImplBlock is `impl TypeName { methods }` (§6 "impl-block"). A method
// whose first parameter is named `self` is recognized as an instance
// method (§4.5).
type ImplBlock struct {
	At        source.Position
	TypeName  string
	Methods   []*FunctionDecl
}

func (i *ImplBlock) Pos() source.Position { return i.At }
func (i *ImplBlock) String() string       { return "impl " + i.TypeName }
func (i *ImplBlock) declNode()            {}

// ExternDecl is `extern { fn ... }` (§6 "extern-decl"); its functions use
// FunctionDecl with IsExtern set, and only they may carry @ffi_transfer
// annotations (§4.6).
type ExternDecl struct {
	Annotations
	At        source.Position
	Functions []*FunctionDecl
}

func (e *ExternDecl) Pos() source.Position { return e.At }
func (e *ExternDecl) String() string       { return "extern" }
func (e *ExternDecl) declNode()            {}

// ConstDecl is `const NAME: T = expr` (§6 "const-decl").
type ConstDecl struct {
	Annotations
	At       source.Position
	Name     string
	Pub      bool
	TypeExpr TypeExpression // nil means infer from Value
	Value    Expression
}

func (c *ConstDecl) Pos() source.Position { return c.At }
func (c *ConstDecl) String() string       { return "const " + c.Name }
func (c *ConstDecl) declNode()            {}
