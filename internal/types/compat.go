package types

// Compatible implements the §4.1 predicate: can a value of type `source`
// be used where `target` is expected.
func Compatible(target, source *TypeDescriptor) bool {
	if target == nil || source == nil {
		return false
	}
	if target.Category == Never || source.Category == Never {
		// Never is compatible with every type (bottom type, §4.1).
		return true
	}
	if target.Category == Pointer && source.Category == Pointer {
		// Identical pointee types only (mutability is not a compatibility
		// relaxation: a *T is not compatible source for a *mut T target).
		// Checked before Equal, which ignores pointer mutability.
		return target.Pointee.Equal(source.Pointee) && (!target.PointerMut || source.PointerMut)
	}
	if target.Equal(source) {
		return true
	}
	if target.Category == Primitive && source.Category == Primitive {
		return compatiblePrimitive(target.PrimKind, source.PrimKind)
	}
	switch {
	case target.Category == GenericInstance && source.Category == GenericInstance:
		if !target.Base.Equal(source.Base) || len(target.Args) != len(source.Args) {
			return false
		}
		for i := range target.Args {
			if !Compatible(target.Args[i], source.Args[i]) {
				return false
			}
		}
		return true
	case target.Category == Result && source.Category == Result:
		return Compatible(target.Ok, source.Ok) && Compatible(target.Err, source.Err)
	case target.Category == Slice && source.Category == Slice:
		return Compatible(target.Elem, source.Elem)
	case target.Category == Array && source.Category == Array:
		return target.ArraySize == source.ArraySize && Compatible(target.Elem, source.Elem)
	case target.Category == Tuple && source.Category == Tuple:
		if len(target.Elems) != len(source.Elems) {
			return false
		}
		for i := range target.Elems {
			if !Compatible(target.Elems[i], source.Elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// compatiblePrimitive implements numeric promotion (§4.1): narrower ->
// wider of the same signedness; integer -> float of matching or greater
// width; never the reverse without an explicit cast.
func compatiblePrimitive(target, source PrimitiveKind) bool {
	if target == source {
		return true
	}
	if target.IsInteger() && source.IsInteger() {
		if target.IsSigned() != source.IsSigned() {
			return false
		}
		return target.bitWidth() >= source.bitWidth()
	}
	if target.IsFloat() && source.IsInteger() {
		return target.bitWidth() >= source.bitWidth()
	}
	if target.IsFloat() && source.IsFloat() {
		return target.bitWidth() >= source.bitWidth()
	}
	return false
}

// BinaryOp identifies an operator category for the promotion matrix.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
)

// IsComparison reports whether op produces bool regardless of operand
// category (equality/ordering).
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte:
		return true
	default:
		return false
	}
}

// IsLogical reports whether op is a logical connective (&&, ||).
func (op BinaryOp) IsLogical() bool {
	return op == OpAnd || op == OpOr
}

// IsBitwise reports whether op requires integer operands.
func (op BinaryOp) IsBitwise() bool {
	switch op {
	case OpBitAnd, OpBitOr, OpBitXor, OpShl, OpShr:
		return true
	default:
		return false
	}
}

// PromotedBinaryResult computes the result type of a binary operation from
// the left/right operand categories (§4.1's matrix), or ok=false if the
// operator is not defined for the given operand types.
func PromotedBinaryResult(reg *Registry, op BinaryOp, left, right *TypeDescriptor) (result *TypeDescriptor, ok bool) {
	if left == nil || right == nil {
		return nil, false
	}

	if op.IsComparison() {
		if left.Category == Primitive && right.Category == Primitive {
			if !compatiblePrimitive(left.PrimKind, right.PrimKind) && !compatiblePrimitive(right.PrimKind, left.PrimKind) {
				return nil, false
			}
			return reg.Primitive(Bool), true
		}
		if left.Equal(right) {
			return reg.Primitive(Bool), true
		}
		return nil, false
	}

	if op.IsLogical() {
		if left.Category == Primitive && left.PrimKind == Bool && right.Category == Primitive && right.PrimKind == Bool {
			return reg.Primitive(Bool), true
		}
		return nil, false
	}

	if op.IsBitwise() {
		if left.Category != Primitive || right.Category != Primitive || !left.PrimKind.IsInteger() || !right.PrimKind.IsInteger() {
			return nil, false
		}
		return reg.Primitive(promotedIntegerKind(left.PrimKind, right.PrimKind)), true
	}

	// Arithmetic operators.
	if op == OpAdd && left.Category == Primitive && left.PrimKind == StringKind &&
		right.Category == Primitive && right.PrimKind == StringKind {
		return reg.Primitive(StringKind), true
	}

	// Pointer +/- integer yields pointer.
	if (op == OpAdd || op == OpSub) && left.Category == Pointer && right.Category == Primitive && right.PrimKind.IsInteger() {
		return left, true
	}

	if left.Category == Primitive && right.Category == Primitive &&
		(left.PrimKind.IsInteger() || left.PrimKind.IsFloat()) &&
		(right.PrimKind.IsInteger() || right.PrimKind.IsFloat()) {
		return reg.Primitive(promotedNumericKind(left.PrimKind, right.PrimKind)), true
	}

	return nil, false
}

func promotedIntegerKind(a, b PrimitiveKind) PrimitiveKind {
	if a.bitWidth() >= b.bitWidth() {
		return a
	}
	return b
}

func promotedNumericKind(a, b PrimitiveKind) PrimitiveKind {
	if a.IsFloat() || b.IsFloat() {
		if a.IsFloat() && b.IsFloat() {
			return promotedIntegerKind(a, b)
		}
		if a.IsFloat() {
			return a
		}
		return b
	}
	return promotedIntegerKind(a, b)
}
