package analyzer

import (
	"github.com/orbit-lang/orbit/internal/ast"
	"github.com/orbit-lang/orbit/internal/consteval"
	"github.com/orbit-lang/orbit/internal/diagnostics"
	"github.com/orbit-lang/orbit/internal/symbols"
	"github.com/orbit-lang/orbit/internal/types"
)

// constIntKind/constFloatKind etc. re-export consteval.Kind values under
// names local to this file's call sites for readability.
const (
	constIntKind   = consteval.Int
	constFloatKind = consteval.Float
)

// foldConst implements the Const Evaluator (C3): it folds a subtree to a
// consteval.Value when every operand is a literal, a Const-kind symbol
// with a stored value, or a pure operator over constants (§4.3). It lives
// here rather than in package consteval because consteval must stay free
// of an ast import (see consteval/value.go's package doc) while this
// walk needs the full AST.
func (a *Analyzer) foldConst(scope *symbols.Scope, expr ast.Expression) (consteval.Value, bool) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return consteval.IntValue(e.Value), true
	case *ast.FloatLiteral:
		return consteval.FloatValue(e.Value), true
	case *ast.StringLiteral:
		return consteval.StringValue(e.Value), true
	case *ast.BoolLiteral:
		return consteval.BoolValue(e.Value), true
	case *ast.Identifier:
		entry := scope.LookupSafe(e.Name)
		if entry == nil || entry.Kind != symbols.KindConst || entry.Const == nil {
			return consteval.Value{}, false
		}
		return *entry.Const, true
	case *ast.UnaryExpr:
		return a.foldConstUnary(scope, e)
	case *ast.BinaryExpr:
		return a.foldConstBinary(scope, e)
	default:
		return consteval.Value{}, false
	}
}

func (a *Analyzer) foldConstUnary(scope *symbols.Scope, e *ast.UnaryExpr) (consteval.Value, bool) {
	operand, ok := a.foldConst(scope, e.Operand)
	if !ok {
		return consteval.Value{}, false
	}
	switch e.Op {
	case ast.UnaryNeg:
		switch operand.Kind {
		case consteval.Int:
			return consteval.IntValue(-operand.Int), true
		case consteval.Float:
			return consteval.FloatValue(-operand.Float), true
		}
	case ast.UnaryNot:
		if operand.Kind == consteval.Bool {
			return consteval.BoolValue(!operand.Bool), true
		}
	case ast.UnaryBitNot:
		if operand.Kind == consteval.Int {
			return consteval.IntValue(^operand.Int), true
		}
	}
	return consteval.Value{}, false
}

func (a *Analyzer) foldConstBinary(scope *symbols.Scope, e *ast.BinaryExpr) (consteval.Value, bool) {
	left, ok := a.foldConst(scope, e.Left)
	if !ok {
		return consteval.Value{}, false
	}
	right, ok := a.foldConst(scope, e.Right)
	if !ok {
		return consteval.Value{}, false
	}

	if left.Kind == consteval.Int && right.Kind == consteval.Int {
		var r int64
		var err error
		switch e.Op {
		case types.OpAdd:
			r, err = consteval.AddInt(left.Int, right.Int)
		case types.OpSub:
			r, err = consteval.SubInt(left.Int, right.Int)
		case types.OpMul:
			r, err = consteval.MulInt(left.Int, right.Int)
		case types.OpDiv:
			r, err = consteval.DivInt(left.Int, right.Int)
		case types.OpMod:
			r, err = consteval.ModInt(left.Int, right.Int)
		default:
			return consteval.Value{}, false
		}
		if err != nil {
			code := codeConstOverflow
			if err == consteval.ErrDivByZero {
				code = codeDivisionByZero
			}
			a.emitConstEvalError(e, code, err.Error())
			return consteval.Value{}, false
		}
		return consteval.IntValue(r), true
	}

	if left.Kind == consteval.Float && right.Kind == consteval.Float {
		switch e.Op {
		case types.OpAdd:
			return consteval.FloatValue(left.Float + right.Float), true
		case types.OpSub:
			return consteval.FloatValue(left.Float - right.Float), true
		case types.OpMul:
			return consteval.FloatValue(left.Float * right.Float), true
		case types.OpDiv:
			r, err := consteval.DivFloat(left.Float, right.Float)
			if err != nil {
				a.emitConstEvalError(e, codeDivisionByZero, err.Error())
				return consteval.Value{}, false
			}
			return consteval.FloatValue(r), true
		}
	}

	if left.Kind == consteval.String && right.Kind == consteval.String && e.Op == types.OpAdd {
		return consteval.StringValue(left.String + right.String), true
	}

	return consteval.Value{}, false
}

func (a *Analyzer) emitConstEvalError(expr ast.Expression, code, message string) {
	a.engine.Emit(code, diagnostics.Error, expr.Pos(), message)
}
