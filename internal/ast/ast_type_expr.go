package ast

import "github.com/orbit-lang/orbit/internal/source"

// TypeExpression is how the parser spells a type in source (a type
// annotation, not yet resolved to a types.TypeDescriptor). The analyzer's
// declaration/type-building pass turns these into TypeDescriptors.
type TypeExpression interface {
	Node
	typeExprNode()
}

// NamedTypeExpr is a bare name: a primitive (`i32`), a struct/enum name,
// or a generic type parameter.
type NamedTypeExpr struct {
	At   source.Position
	Name string
}

func (t *NamedTypeExpr) Pos() source.Position { return t.At }
func (t *NamedTypeExpr) String() string       { return t.Name }
func (t *NamedTypeExpr) typeExprNode()        {}

// PointerTypeExpr is `*T` or `*mut T`.
type PointerTypeExpr struct {
	At      source.Position
	Pointee TypeExpression
	Mutable bool
}

func (t *PointerTypeExpr) Pos() source.Position { return t.At }
func (t *PointerTypeExpr) String() string       { return "*" + t.Pointee.String() }
func (t *PointerTypeExpr) typeExprNode()        {}

// SliceTypeExpr is `[]T`.
type SliceTypeExpr struct {
	At   source.Position
	Elem TypeExpression
}

func (t *SliceTypeExpr) Pos() source.Position { return t.At }
func (t *SliceTypeExpr) String() string       { return "[]" + t.Elem.String() }
func (t *SliceTypeExpr) typeExprNode()        {}

// ArrayTypeExpr is `[T; N]`; Size is an expression so non-constant or
// non-positive sizes can be diagnosed by the const evaluator (§3
// invariant 5).
type ArrayTypeExpr struct {
	At   source.Position
	Elem TypeExpression
	Size Expression
}

func (t *ArrayTypeExpr) Pos() source.Position { return t.At }
func (t *ArrayTypeExpr) String() string       { return "[" + t.Elem.String() + "; N]" }
func (t *ArrayTypeExpr) typeExprNode()        {}

// TupleTypeExpr is `(T1, T2, ...)`.
type TupleTypeExpr struct {
	At    source.Position
	Elems []TypeExpression
}

func (t *TupleTypeExpr) Pos() source.Position { return t.At }
func (t *TupleTypeExpr) String() string       { return "(tuple)" }
func (t *TupleTypeExpr) typeExprNode()        {}

// GenericTypeExpr is `Name<Arg1, Arg2, ...>`.
type GenericTypeExpr struct {
	At   source.Position
	Name string
	Args []TypeExpression
}

func (t *GenericTypeExpr) Pos() source.Position { return t.At }
func (t *GenericTypeExpr) String() string       { return t.Name + "<...>" }
func (t *GenericTypeExpr) typeExprNode()        {}

// FunctionTypeExpr is `fn(T1, T2) -> R`.
type FunctionTypeExpr struct {
	At     source.Position
	Params []TypeExpression
	Return TypeExpression
}

func (t *FunctionTypeExpr) Pos() source.Position { return t.At }
func (t *FunctionTypeExpr) String() string       { return "fn(...)" }
func (t *FunctionTypeExpr) typeExprNode()        {}
