package ast

import "github.com/orbit-lang/orbit/internal/source"

// Block is `{ statements }`.
type Block struct {
	At         source.Position
	Statements []Statement
}

func (b *Block) Pos() source.Position { return b.At }
func (b *Block) String() string       { return "{...}" }
func (b *Block) statementNode()       {}

// LetStmt is `let name: T = expr;` (§6 "let-stmt"). Mut marks a mutable
// binding (§7 "assignment to immutable binding" is checked against this).
type LetStmt struct {
	Annotations
	At       source.Position
	Name     string
	Mut      bool
	TypeExpr TypeExpression // nil means infer from Value
	Value    Expression     // nil for `let x: T;` with no initializer
}

func (l *LetStmt) Pos() source.Position { return l.At }
func (l *LetStmt) String() string       { return "let " + l.Name }
func (l *LetStmt) statementNode()       {}

// ExpressionStmt wraps an expression used in statement position (§6
// "expression-stmt").
type ExpressionStmt struct {
	At   source.Position
	Expr Expression
}

func (e *ExpressionStmt) Pos() source.Position { return e.At }
func (e *ExpressionStmt) String() string       { return e.Expr.String() }
func (e *ExpressionStmt) statementNode()       {}

// ReturnStmt is `return expr;` (§6 "return-stmt"); Value is nil for a
// bare `return;` from a Void function.
type ReturnStmt struct {
	At    source.Position
	Value Expression
}

func (r *ReturnStmt) Pos() source.Position { return r.At }
func (r *ReturnStmt) String() string       { return "return" }
func (r *ReturnStmt) statementNode()       {}

// IfStmt is `if cond { then } else { else }` (§6 "if stmt"); Else may be
// nil or another *IfStmt (else-if chain) or *Block.
type IfStmt struct {
	At        source.Position
	Condition Expression
	Then      *Block
	Else      Statement
}

func (i *IfStmt) Pos() source.Position { return i.At }
func (i *IfStmt) String() string       { return "if" }
func (i *IfStmt) statementNode()       {}

// IfLetStmt is `if let Pattern = expr { then } else { else }` (§6
// "if-let stmt"), used to destructure Option/Result/enum values.
type IfLetStmt struct {
	At      source.Position
	Pattern Pattern
	Value   Expression
	Then    *Block
	Else    Statement
}

func (i *IfLetStmt) Pos() source.Position { return i.At }
func (i *IfLetStmt) String() string       { return "if let" }
func (i *IfLetStmt) statementNode()       {}

// WhileStmt is `while cond { body }` (§6 "while stmt").
type WhileStmt struct {
	At        source.Position
	Condition Expression
	Body      *Block
}

func (w *WhileStmt) Pos() source.Position { return w.At }
func (w *WhileStmt) String() string       { return "while" }
func (w *WhileStmt) statementNode()       {}

// ForStmt is `for binding in iterable { body }` (§6 "for stmt").
type ForStmt struct {
	At       source.Position
	Binding  string
	Iterable Expression
	Body     *Block
}

func (f *ForStmt) Pos() source.Position { return f.At }
func (f *ForStmt) String() string       { return "for" }
func (f *ForStmt) statementNode()       {}

// BreakStmt / ContinueStmt (§6).
type BreakStmt struct{ At source.Position }

func (b *BreakStmt) Pos() source.Position { return b.At }
func (b *BreakStmt) String() string       { return "break" }
func (b *BreakStmt) statementNode()       {}

type ContinueStmt struct{ At source.Position }

func (c *ContinueStmt) Pos() source.Position { return c.At }
func (c *ContinueStmt) String() string       { return "continue" }
func (c *ContinueStmt) statementNode()       {}

// UnsafeStmt is `unsafe { body }` (§6 "unsafe stmt"); pointer deref and
// pointer-indexed access are only legal inside one of these (§3 invariant
// 6, §4.4 unary/index contracts).
type UnsafeStmt struct {
	At   source.Position
	Body *Block
}

func (u *UnsafeStmt) Pos() source.Position { return u.At }
func (u *UnsafeStmt) String() string       { return "unsafe" }
func (u *UnsafeStmt) statementNode()       {}

// MatchArmStmt is one `pattern => block` or `pattern => expr,` arm. Body
// is used for a block arm; Expr is used for the trailing-expression
// shorthand (Body nil in that case).
type MatchArmStmt struct {
	At      source.Position
	Pattern Pattern
	Body    *Block
	Expr    Expression
}
