// Package consteval implements the Const Evaluator's (C3) value
// representation and pure arithmetic. The tree-walking fold itself lives
// in internal/analyzer, which already depends on the AST; keeping Value
// here, free of any AST import, avoids a symbols -> consteval -> ast ->
// symbols import cycle (symbols.SymbolEntry stores a consteval.Value for
// Const-kind entries). See DESIGN.md.
package consteval

import (
	"fmt"
	"math"
)

// Kind tags the payload a Value carries.
type Kind int

const (
	Int Kind = iota
	Float
	String
	Bool
	Aggregate
)

// Value is a folded compile-time constant (§3 ConstValue).
type Value struct {
	Kind   Kind
	Int    int64
	Float  float64
	String string
	Bool   bool
	Fields []Value // ordered field values for struct/enum aggregates
}

func IntValue(v int64) Value    { return Value{Kind: Int, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: Float, Float: v} }
func StringValue(v string) Value { return Value{Kind: String, String: v} }
func BoolValue(v bool) Value    { return Value{Kind: Bool, Bool: v} }
func AggregateValue(fields []Value) Value { return Value{Kind: Aggregate, Fields: fields} }

func (v Value) String_() string {
	switch v.Kind {
	case Int:
		return fmt.Sprintf("%d", v.Int)
	case Float:
		return fmt.Sprintf("%g", v.Float)
	case String:
		return v.String
	case Bool:
		return fmt.Sprintf("%t", v.Bool)
	case Aggregate:
		return "<aggregate>"
	default:
		return "<const>"
	}
}

// ErrOverflow and ErrDivByZero are returned by the pure arithmetic helpers
// below; the analyzer turns them into DivisionByZero / overflow
// diagnostics when folding occurs in a required constant context (§4.3).
var (
	ErrOverflow  = fmt.Errorf("integer overflow in constant expression")
	ErrDivByZero = fmt.Errorf("division by zero in constant expression")
)

// AddInt, SubInt, MulInt perform checked 64-bit arithmetic used while
// folding integer constant expressions.
func AddInt(a, b int64) (int64, error) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, ErrOverflow
	}
	return r, nil
}

func SubInt(a, b int64) (int64, error) {
	r := a - b
	if (b < 0 && r < a) || (b > 0 && r > a) {
		return 0, ErrOverflow
	}
	return r, nil
}

func MulInt(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	r := a * b
	if r/b != a {
		return 0, ErrOverflow
	}
	return r, nil
}

func DivInt(a, b int64) (int64, error) {
	if b == 0 {
		return 0, ErrDivByZero
	}
	if a == math.MinInt64 && b == -1 {
		return 0, ErrOverflow
	}
	return a / b, nil
}

func ModInt(a, b int64) (int64, error) {
	if b == 0 {
		return 0, ErrDivByZero
	}
	return a % b, nil
}

func DivFloat(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivByZero
	}
	return a / b, nil
}
