package ast

import (
	"github.com/orbit-lang/orbit/internal/source"
	"github.com/orbit-lang/orbit/internal/types"
)

// UnaryOp enumerates the prefix unary operators (§4.4 unary contract).
type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryBitNot
	UnaryDeref
	UnaryAddrOf
	UnarySizeof
)

// BinaryExpr is `left op right` (§6 "binary").
type BinaryExpr struct {
	TypeAttachment
	At    source.Position
	Op    types.BinaryOp
	OpLit string // operator spelling, used in diagnostic messages
	Left  Expression
	Right Expression
}

func (b *BinaryExpr) Pos() source.Position { return b.At }
func (b *BinaryExpr) String() string       { return "(" + b.Left.String() + " " + b.OpLit + " " + b.Right.String() + ")" }
func (b *BinaryExpr) expressionNode()      {}

// UnaryExpr is a prefix unary operation, or `sizeof(T)` (§6 "unary").
// SizeofType is set only when Op == UnarySizeof.
type UnaryExpr struct {
	TypeAttachment
	At         source.Position
	Op         UnaryOp
	Operand    Expression
	SizeofType TypeExpression
}

func (u *UnaryExpr) Pos() source.Position { return u.At }
func (u *UnaryExpr) String() string       { return "(unary)" }
func (u *UnaryExpr) expressionNode()      {}

// CallExpr is `callee(args...)` (§6 "call"). Callee's dynamic node kind
// drives which of the four call contracts in §4.4 applies.
type CallExpr struct {
	TypeAttachment
	At     source.Position
	Callee Expression
	Args   []Expression
}

func (c *CallExpr) Pos() source.Position { return c.At }
func (c *CallExpr) String() string       { return c.Callee.String() + "(...)" }
func (c *CallExpr) expressionNode()      {}

// AssociatedFuncCallExpr is `TypeName::func(args...)`, a statically
// dispatched associated (non-instance) function call (§6
// "associated-func-call").
type AssociatedFuncCallExpr struct {
	TypeAttachment
	At       source.Position
	TypeName string
	FuncName string
	Args     []Expression
}

func (c *AssociatedFuncCallExpr) Pos() source.Position { return c.At }
func (c *AssociatedFuncCallExpr) String() string       { return c.TypeName + "::" + c.FuncName + "(...)" }
func (c *AssociatedFuncCallExpr) expressionNode()      {}

// AssignmentExpr is `target = value` (§6 "assignment"); Target must
// resolve to an lvalue (identifier, field access, or index access) bound
// to a mutable entry (§7 "assignment to immutable binding").
type AssignmentExpr struct {
	TypeAttachment
	At     source.Position
	Target Expression
	Value  Expression
}

func (a *AssignmentExpr) Pos() source.Position { return a.At }
func (a *AssignmentExpr) String() string       { return a.Target.String() + " = " + a.Value.String() }
func (a *AssignmentExpr) expressionNode()      {}

// EnumVariantExpr is a bare `EnumName.Variant` reference (§6
// "enum-variant"), either a unit-variant value or, wrapped in a CallExpr,
// a constructor invocation.
type EnumVariantExpr struct {
	TypeAttachment
	At       source.Position
	EnumName string
	Variant  string
}

func (e *EnumVariantExpr) Pos() source.Position { return e.At }
func (e *EnumVariantExpr) String() string       { return e.EnumName + "." + e.Variant }
func (e *EnumVariantExpr) expressionNode()      {}

// CastExpr is `expr as T` (§6 "cast").
type CastExpr struct {
	TypeAttachment
	At         source.Position
	Value      Expression
	TargetType TypeExpression
}

func (c *CastExpr) Pos() source.Position { return c.At }
func (c *CastExpr) String() string       { return c.Value.String() + " as ..." }
func (c *CastExpr) expressionNode()      {}

// FieldAccessExpr is `base.field` (§6 "field-access"); resolved by the
// analyzer as module access, struct field access, enum variant
// constructor reference, or (per the disambiguation rule, spec.md §9) a
// plain field access on a struct-typed local that shadows an enum name.
type FieldAccessExpr struct {
	TypeAttachment
	At    source.Position
	Base  Expression
	Field string
}

func (f *FieldAccessExpr) Pos() source.Position { return f.At }
func (f *FieldAccessExpr) String() string       { return f.Base.String() + "." + f.Field }
func (f *FieldAccessExpr) expressionNode()      {}

// IndexAccessExpr is `base[index]` (§6 "index-access"); an lvalue.
type IndexAccessExpr struct {
	TypeAttachment
	At    source.Position
	Base  Expression
	Index Expression
}

func (i *IndexAccessExpr) Pos() source.Position { return i.At }
func (i *IndexAccessExpr) String() string       { return i.Base.String() + "[...]" }
func (i *IndexAccessExpr) expressionNode()      {}

// SliceExpr is `base[start:end]` (§6 "slice-expr"); Start/End may be nil
// for an open bound. Not an lvalue (§4.4).
type SliceExpr struct {
	TypeAttachment
	At    source.Position
	Base  Expression
	Start Expression
	End   Expression
}

func (s *SliceExpr) Pos() source.Position { return s.At }
func (s *SliceExpr) String() string       { return s.Base.String() + "[:]" }
func (s *SliceExpr) expressionNode()      {}

// TupleLiteral is `(e1, e2, ...)` with at least two elements (§6
// "tuple-literal").
type TupleLiteral struct {
	TypeAttachment
	At       source.Position
	Elements []Expression
}

func (t *TupleLiteral) Pos() source.Position { return t.At }
func (t *TupleLiteral) String() string       { return "(tuple)" }
func (t *TupleLiteral) expressionNode()      {}

// ArrayLiteral is `[e1, e2, ...]` or the repetition form `[value; count]`
// (§6 "array-literal", §4.4).
type ArrayLiteral struct {
	TypeAttachment
	At          source.Position
	Elements    []Expression // enumerated form; nil when IsRepeat
	IsRepeat    bool
	RepeatValue Expression
	RepeatCount Expression
}

func (a *ArrayLiteral) Pos() source.Position { return a.At }
func (a *ArrayLiteral) String() string       { return "[array]" }
func (a *ArrayLiteral) expressionNode()      {}

// StructLiteralField is one `name: value` in a struct literal.
type StructLiteralField struct {
	At    source.Position
	Name  string
	Value Expression
}

// StructLiteral is `TypeName { field: value, ... }` (§6 "struct-literal").
type StructLiteral struct {
	TypeAttachment
	At       source.Position
	TypeName string
	Fields   []StructLiteralField
}

func (s *StructLiteral) Pos() source.Position { return s.At }
func (s *StructLiteral) String() string       { return s.TypeName + "{...}" }
func (s *StructLiteral) expressionNode()      {}

// MatchExpr is `match scrutinee { arm, arm, ... }` (§6 "match-expr").
type MatchExpr struct {
	TypeAttachment
	At        source.Position
	Scrutinee Expression
	Arms      []*MatchArmStmt
}

func (m *MatchExpr) Pos() source.Position { return m.At }
func (m *MatchExpr) String() string       { return "match" }
func (m *MatchExpr) expressionNode()      {}

// SpawnExpr is `spawn call(...)`, fire-and-forget (§6 "spawn").
type SpawnExpr struct {
	TypeAttachment
	At   source.Position
	Call Expression
}

func (s *SpawnExpr) Pos() source.Position { return s.At }
func (s *SpawnExpr) String() string       { return "spawn " + s.Call.String() }
func (s *SpawnExpr) expressionNode()      {}

// SpawnWithHandleExpr is `spawn_with_handle(call(...))`, yielding a
// TaskHandle<T> where T is the call's return type (§6 "spawn-with-handle",
// §3 invariant 4).
type SpawnWithHandleExpr struct {
	TypeAttachment
	At   source.Position
	Call Expression
}

func (s *SpawnWithHandleExpr) Pos() source.Position { return s.At }
func (s *SpawnWithHandleExpr) String() string       { return "spawn_with_handle(" + s.Call.String() + ")" }
func (s *SpawnWithHandleExpr) expressionNode()      {}

// AwaitExpr is `await value` (§6 "await"); value must be TaskHandle<T>
// (§3 invariant 4, §4.4).
type AwaitExpr struct {
	TypeAttachment
	At    source.Position
	Value Expression
}

func (a *AwaitExpr) Pos() source.Position { return a.At }
func (a *AwaitExpr) String() string       { return "await " + a.Value.String() }
func (a *AwaitExpr) expressionNode()      {}
