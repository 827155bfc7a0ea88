package analyzer

import (
	"fmt"

	"github.com/orbit-lang/orbit/internal/ast"
	"github.com/orbit-lang/orbit/internal/diagnostics"
	"github.com/orbit-lang/orbit/internal/source"
	"github.com/orbit-lang/orbit/internal/symbols"
	"github.com/orbit-lang/orbit/internal/types"
)

// analyzeExpr is the C4 entry point: analyze with no expected type.
func (a *Analyzer) analyzeExpr(scope *symbols.Scope, expr ast.Expression) *types.TypeDescriptor {
	return a.analyzeExprExpected(scope, expr, nil)
}

// analyzeExprExpected dispatches on node category (§4.4) and attaches the
// resolved type to the node on success. expected threads the contextual
// type used for integer-literal defaulting and array/enum inference.
func (a *Analyzer) analyzeExprExpected(scope *symbols.Scope, expr ast.Expression, expected *types.TypeDescriptor) *types.TypeDescriptor {
	a.countNode()
	var result *types.TypeDescriptor
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		result = a.analyzeIntLiteral(e, expected)
	case *ast.FloatLiteral:
		result = a.registry.Primitive(types.F64)
	case *ast.StringLiteral:
		result = a.registry.Primitive(types.StringKind)
	case *ast.BoolLiteral:
		result = a.registry.Primitive(types.Bool)
	case *ast.CharLiteral:
		result = a.registry.Primitive(types.Char)
	case *ast.UnitLiteral:
		result = a.registry.VoidType()
	case *ast.Identifier:
		result = a.analyzeIdentifier(scope, e)
	case *ast.BinaryExpr:
		result = a.analyzeBinaryExpr(scope, e)
	case *ast.UnaryExpr:
		result = a.analyzeUnaryExpr(scope, e)
	case *ast.CallExpr:
		result = a.analyzeCallExpr(scope, e, expected)
	case *ast.AssociatedFuncCallExpr:
		result = a.analyzeAssociatedFuncCall(scope, e)
	case *ast.AssignmentExpr:
		result = a.analyzeAssignmentExpr(scope, e)
	case *ast.EnumVariantExpr:
		result = a.analyzeEnumVariantExpr(scope, e, expected, nil)
	case *ast.CastExpr:
		result = a.analyzeCastExpr(scope, e)
	case *ast.FieldAccessExpr:
		result = a.analyzeFieldAccessExpr(scope, e)
	case *ast.IndexAccessExpr:
		result = a.analyzeIndexAccessExpr(scope, e)
	case *ast.SliceExpr:
		result = a.analyzeSliceExpr(scope, e)
	case *ast.TupleLiteral:
		result = a.analyzeTupleLiteral(scope, e)
	case *ast.ArrayLiteral:
		result = a.analyzeArrayLiteral(scope, e, expected)
	case *ast.StructLiteral:
		result = a.analyzeStructLiteral(scope, e)
	case *ast.MatchExpr:
		result = a.analyzeMatchExpr(scope, e)
	case *ast.SpawnExpr:
		result = a.analyzeSpawnExpr(scope, e)
	case *ast.SpawnWithHandleExpr:
		result = a.analyzeSpawnWithHandleExpr(scope, e)
	case *ast.AwaitExpr:
		result = a.analyzeAwaitExpr(scope, e)
	default:
		a.engine.Emit(codeInvalidExpression, diagnostics.Error, expr.Pos(), "unrecognized expression")
		return nil
	}
	if result != nil {
		expr.SetResolvedType(result)
	}
	return result
}

func (a *Analyzer) analyzeIntLiteral(e *ast.IntegerLiteral, expected *types.TypeDescriptor) *types.TypeDescriptor {
	if expected != nil && expected.Category == types.Primitive && expected.PrimKind.IsInteger() && intFitsKind(e.Value, expected.PrimKind) {
		return expected
	}
	if expected != nil && expected.Category == types.Primitive && expected.PrimKind.IsFloat() {
		return expected
	}
	return a.registry.Primitive(types.I32)
}

func intFitsKind(v int64, k types.PrimitiveKind) bool {
	switch k {
	case types.I8:
		return v >= -128 && v <= 127
	case types.I16:
		return v >= -32768 && v <= 32767
	case types.I32:
		return v >= -2147483648 && v <= 2147483647
	case types.I64:
		return true
	case types.U8:
		return v >= 0 && v <= 255
	case types.U16:
		return v >= 0 && v <= 65535
	case types.U32:
		return v >= 0 && v <= 4294967295
	case types.U64, types.USize:
		return v >= 0
	default:
		return false
	}
}

func (a *Analyzer) emitUndefined(scope *symbols.Scope, name string, at source.Position) {
	d := a.engine.Emit(codeUndefinedSymbol, diagnostics.Error, at, fmt.Sprintf("undefined identifier %q", name))
	similar := diagnostics.SimilarSymbols(name, scope.AllNames())
	if len(similar) > 0 {
		d.SetMetadata(&diagnostics.Metadata{ErrorCategory: "name-resolution", SimilarSymbols: similar})
		d.AddSuggestion(diagnostics.SuggestReplace(source.SpanFrom(at), name, similar[0]))
	}
}

func (a *Analyzer) analyzeIdentifier(scope *symbols.Scope, e *ast.Identifier) *types.TypeDescriptor {
	entry := scope.LookupSafe(e.Name)
	if entry == nil {
		a.emitUndefined(scope, e.Name, e.At)
		return nil
	}
	entry.Used = true
	e.Symbol = entry
	if entry.Kind == symbols.KindModuleAlias {
		return nil
	}
	return entry.Type
}

func (a *Analyzer) analyzeBinaryExpr(scope *symbols.Scope, e *ast.BinaryExpr) *types.TypeDescriptor {
	left := a.analyzeExpr(scope, e.Left)
	if left == nil {
		return nil
	}
	right := a.analyzeExprExpected(scope, e.Right, left)
	if right == nil {
		return nil
	}
	result, ok := types.PromotedBinaryResult(a.registry, e.Op, left, right)
	if !ok {
		a.engine.Emit(codeTypeMismatch, diagnostics.Error, e.At,
			fmt.Sprintf("operator %q is not defined for %s and %s", e.OpLit, left.String(), right.String()))
		return nil
	}
	return result
}

func (a *Analyzer) analyzeUnaryExpr(scope *symbols.Scope, e *ast.UnaryExpr) *types.TypeDescriptor {
	if e.Op == ast.UnarySizeof {
		a.resolveTypeExpr(scope, e.SizeofType)
		return a.registry.Primitive(types.USize)
	}
	if e.Op == ast.UnaryAddrOf {
		operand := a.analyzeExpr(scope, e.Operand)
		if operand == nil {
			return nil
		}
		return a.registry.Pointer(operand, false)
	}

	operand := a.analyzeExpr(scope, e.Operand)
	if operand == nil {
		return nil
	}
	switch e.Op {
	case ast.UnaryNeg:
		if operand.Category != types.Primitive || (!operand.PrimKind.IsInteger() && !operand.PrimKind.IsFloat()) {
			a.engine.Emit(codeInvalidOperation, diagnostics.Error, e.At, fmt.Sprintf("unary - requires a numeric operand, got %s", operand.String()))
			return nil
		}
		return operand
	case ast.UnaryNot:
		if operand.Category != types.Primitive || operand.PrimKind != types.Bool {
			a.engine.Emit(codeInvalidOperation, diagnostics.Error, e.At, fmt.Sprintf("unary ! requires a bool operand, got %s", operand.String()))
			return nil
		}
		return operand
	case ast.UnaryBitNot:
		if operand.Category != types.Primitive || !operand.PrimKind.IsInteger() {
			a.engine.Emit(codeInvalidOperation, diagnostics.Error, e.At, fmt.Sprintf("unary ~ requires an integer operand, got %s", operand.String()))
			return nil
		}
		return operand
	case ast.UnaryDeref:
		if operand.Category != types.Pointer {
			a.engine.Emit(codeInvalidOperation, diagnostics.Error, e.At, fmt.Sprintf("unary * requires a pointer operand, got %s", operand.String()))
			return nil
		}
		if !a.inUnsafeContext {
			a.engine.Emit(codeUnsafeOperation, diagnostics.Error, e.At, "pointer dereference requires an unsafe context")
			return nil
		}
		return operand.Pointee
	}
	return nil
}

func (a *Analyzer) analyzeCallExpr(scope *symbols.Scope, e *ast.CallExpr, expected *types.TypeDescriptor) *types.TypeDescriptor {
	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		entry := scope.LookupSafe(callee.Name)
		if entry == nil {
			a.emitUndefined(scope, callee.Name, callee.At)
			return nil
		}
		entry.Used = true
		callee.Symbol = entry
		if entry.Kind != symbols.KindFunction || entry.Type == nil || entry.Type.Category != types.Function {
			a.engine.Emit(codeNotCallable, diagnostics.Error, e.At, fmt.Sprintf("%q is not callable", callee.Name))
			return nil
		}
		a.checkArgs(scope, e.Args, entry.Type.Params, 0, e.At, callee.Name)
		return entry.Type.Return

	case *ast.FieldAccessExpr:
		baseType := a.analyzeExpr(scope, callee.Base)
		if baseType == nil || baseType.Category != types.Struct {
			a.engine.Emit(codeNotCallable, diagnostics.Error, e.At, fmt.Sprintf("%q is not a method", callee.Field))
			return nil
		}
		fn, ok := baseType.Methods[callee.Field]
		if !ok {
			a.engine.Emit(codeUnknownField, diagnostics.Error, callee.At,
				fmt.Sprintf("struct %q has no method %q", baseType.Name, callee.Field))
			return nil
		}
		skip := 0
		if fn.IsInstanceMethod {
			skip = 1
		}
		a.checkArgs(scope, e.Args, fn.Params, skip, e.At, callee.Field)
		return fn.Return

	case *ast.EnumVariantExpr:
		return a.analyzeEnumVariantExpr(scope, callee, expected, e.Args)

	default:
		a.analyzeExpr(scope, e.Callee)
		a.engine.Emit(codeNotCallable, diagnostics.Error, e.At, "expression is not callable")
		return nil
	}
}

// checkArgs validates positional arguments against a parameter list,
// skipping the first `skip` parameters (the receiver, for instance
// methods). Count mismatch and element-type mismatch are distinct
// diagnostics (§4.4).
func (a *Analyzer) checkArgs(scope *symbols.Scope, args []ast.Expression, params []*types.TypeDescriptor, skip int, at source.Position, name string) {
	expectedParams := params[min(skip, len(params)):]
	if len(args) != len(expectedParams) {
		a.engine.Emit(codeInvalidArguments, diagnostics.Error, at,
			fmt.Sprintf("%q expects %d argument(s), got %d", name, len(expectedParams), len(args)))
		for _, arg := range args {
			a.analyzeExpr(scope, arg)
		}
		return
	}
	for i, arg := range args {
		argType := a.analyzeExprExpected(scope, arg, expectedParams[i])
		if argType != nil && !types.Compatible(expectedParams[i], argType) {
			a.engine.Emit(codeInvalidArguments, diagnostics.Error, arg.Pos(),
				fmt.Sprintf("argument %d of %q: expected %s, got %s", i+1, name, expectedParams[i].String(), argType.String()))
		}
	}
}

func (a *Analyzer) analyzeAssociatedFuncCall(scope *symbols.Scope, e *ast.AssociatedFuncCallExpr) *types.TypeDescriptor {
	td, ok := a.registry.ByName(e.TypeName)
	if !ok {
		a.engine.Emit(codeUndefinedSymbol, diagnostics.Error, e.At, fmt.Sprintf("undefined type %q", e.TypeName))
		return nil
	}
	fn, ok := td.Methods[e.FuncName]
	if !ok {
		a.engine.Emit(codeUnknownField, diagnostics.Error, e.At,
			fmt.Sprintf("%q has no associated function %q", e.TypeName, e.FuncName))
		return nil
	}
	a.checkArgs(scope, e.Args, fn.Params, 0, e.At, e.FuncName)
	return fn.Return
}

func (a *Analyzer) analyzeAssignmentExpr(scope *symbols.Scope, e *ast.AssignmentExpr) *types.TypeDescriptor {
	targetType := a.analyzeExpr(scope, e.Target)
	if !a.isLvalue(e.Target) {
		a.engine.Emit(codeInvalidOperation, diagnostics.Error, e.At, "left-hand side of assignment is not assignable")
		return nil
	}
	if !a.lvalueMutable(scope, e.Target) {
		a.engine.Emit(codeImmutableAssignment, diagnostics.Error, e.At, "cannot assign to an immutable binding")
	}
	valueType := a.analyzeExprExpected(scope, e.Value, targetType)
	if targetType != nil && valueType != nil && !types.Compatible(targetType, valueType) {
		a.engine.Emit(codeTypeMismatch, diagnostics.Error, e.At,
			fmt.Sprintf("cannot assign %s to %s", valueType.String(), targetType.String()))
	}
	return targetType
}

func (a *Analyzer) isLvalue(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.Identifier, *ast.FieldAccessExpr, *ast.IndexAccessExpr:
		return true
	default:
		return false
	}
}

// lvalueMutable walks to the lvalue's root identifier and reports its
// declared mutability; fields/indices inherit the mutability of the
// binding they are reached through.
func (a *Analyzer) lvalueMutable(scope *symbols.Scope, expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Identifier:
		entry := scope.LookupSafe(e.Name)
		return entry != nil && entry.Mutable
	case *ast.FieldAccessExpr:
		return a.lvalueMutable(scope, e.Base)
	case *ast.IndexAccessExpr:
		return a.lvalueMutable(scope, e.Base)
	default:
		return false
	}
}

// analyzeEnumVariantExpr resolves a bare `EnumName.Variant` reference. If
// args is non-nil, it is being called as a constructor (0 or 1 argument;
// tuples carry multi-value payloads). Per §9's resolved disambiguation
// rule: when EnumName actually names a local struct-typed variable rather
// than an enum type, reinterpret as field access instead.
func (a *Analyzer) analyzeEnumVariantExpr(scope *symbols.Scope, e *ast.EnumVariantExpr, expected *types.TypeDescriptor, args []ast.Expression) *types.TypeDescriptor {
	enumEntry := scope.LookupSafe(e.EnumName)
	if enumEntry != nil && enumEntry.Kind != symbols.KindType {
		if enumEntry.Type != nil && enumEntry.Type.Category == types.Struct {
			return a.resolveStructField(enumEntry.Type, e.Variant, e.At)
		}
	}

	if enumEntry == nil || enumEntry.Kind != symbols.KindType || enumEntry.Type == nil || enumEntry.Type.Category != types.Enum {
		a.emitUndefined(scope, e.EnumName, e.At)
		return nil
	}
	base := enumEntry.Type
	idx := base.VariantIndex(e.Variant)
	if idx < 0 {
		a.engine.Emit(codeUnknownField, diagnostics.Error, e.At,
			fmt.Sprintf("enum %q has no variant %q", e.EnumName, e.Variant))
		return nil
	}
	variant := base.Variants[idx]

	if len(args) > 1 {
		a.engine.Emit(codeInvalidArguments, diagnostics.Error, e.At,
			fmt.Sprintf("variant constructor %q takes 0 or 1 argument (use a tuple for multiple values)", e.Variant))
	}

	if base.TypeParamArity == 0 {
		if len(args) == 1 {
			a.analyzeExprExpected(scope, args[0], variant.Payload)
		}
		return base
	}

	// Generic enum: infer type arguments from expected type first, then
	// from the constructor argument's type (§4.4 "infer generic type
	// arguments ... when the enum is generic").
	if expected != nil && expected.Category == types.GenericInstance && expected.Base.Equal(base) {
		if len(args) == 1 {
			a.analyzeExprExpected(scope, args[0], nil)
		}
		return expected
	}
	if len(args) == 1 {
		argType := a.analyzeExprExpected(scope, args[0], nil)
		argTypes := make([]*types.TypeDescriptor, base.TypeParamArity)
		for i := range argTypes {
			argTypes[i] = a.registry.VoidType()
		}
		argTypes[0] = argType
		if argType == nil {
			return nil
		}
		return a.registry.GenericInstance(base, argTypes)
	}

	a.engine.Emit(codeTypeInferenceFailed, diagnostics.Error, e.At,
		fmt.Sprintf("cannot infer type arguments for %q without an expected type or constructor argument", e.EnumName))
	return nil
}

func (a *Analyzer) resolveStructField(structType *types.TypeDescriptor, field string, at source.Position) *types.TypeDescriptor {
	for _, f := range structType.Fields {
		if f.Name == field {
			return f.Type
		}
	}
	a.engine.Emit(codeUnknownField, diagnostics.Error, at,
		fmt.Sprintf("struct %q has no field %q", structType.Name, field))
	return nil
}

func (a *Analyzer) analyzeCastExpr(scope *symbols.Scope, e *ast.CastExpr) *types.TypeDescriptor {
	srcType := a.analyzeExpr(scope, e.Value)
	targetType := a.resolveTypeExpr(scope, e.TargetType)
	if srcType == nil || targetType == nil {
		return targetType
	}
	numericToNumeric := srcType.Category == types.Primitive && targetType.Category == types.Primitive &&
		(srcType.PrimKind.IsInteger() || srcType.PrimKind.IsFloat()) &&
		(targetType.PrimKind.IsInteger() || targetType.PrimKind.IsFloat())
	ptrToInt := srcType.Category == types.Pointer && targetType.Category == types.Primitive && targetType.PrimKind.IsInteger()
	intToPtr := srcType.Category == types.Primitive && srcType.PrimKind.IsInteger() && targetType.Category == types.Pointer
	ptrToPtr := srcType.Category == types.Pointer && targetType.Category == types.Pointer

	if ptrToInt || intToPtr {
		if !a.inUnsafeContext {
			a.engine.Emit(codeUnsafeOperation, diagnostics.Error, e.At, "pointer/integer cast requires an unsafe context")
			return nil
		}
		return targetType
	}
	if numericToNumeric {
		return targetType
	}
	if ptrToPtr {
		return targetType
	}
	a.engine.Emit(codeInvalidCast, diagnostics.Error, e.At,
		fmt.Sprintf("cannot cast %s to %s", srcType.String(), targetType.String()))
	return nil
}

func (a *Analyzer) analyzeFieldAccessExpr(scope *symbols.Scope, e *ast.FieldAccessExpr) *types.TypeDescriptor {
	if ident, ok := e.Base.(*ast.Identifier); ok {
		if entry := scope.LookupSafe(ident.Name); entry != nil {
			if entry.Kind == symbols.KindModuleAlias {
				entry.Used = true
				ident.Symbol = entry
				mod, _ := a.aliases.Resolve(ident.Name)
				if mod == nil {
					return nil
				}
				exported, ok := mod.Exported[e.Field]
				if !ok {
					a.engine.Emit(codeUnknownField, diagnostics.Error, e.At,
						fmt.Sprintf("module %q has no exported member %q", ident.Name, e.Field))
					return nil
				}
				return exported.Type
			}
			if entry.Kind == symbols.KindType && entry.Type != nil && entry.Type.Category == types.Enum {
				return a.analyzeEnumVariantExpr(scope, &ast.EnumVariantExpr{At: e.At, EnumName: ident.Name, Variant: e.Field}, nil, nil)
			}
		}
	}

	baseType := a.analyzeExpr(scope, e.Base)
	if baseType == nil {
		return nil
	}
	if baseType.Category != types.Struct {
		a.engine.Emit(codeInvalidOperation, diagnostics.Error, e.At,
			fmt.Sprintf("%s has no field %q", baseType.String(), e.Field))
		return nil
	}
	return a.resolveStructField(baseType, e.Field, e.At)
}

func (a *Analyzer) analyzeIndexAccessExpr(scope *symbols.Scope, e *ast.IndexAccessExpr) *types.TypeDescriptor {
	baseType := a.analyzeExpr(scope, e.Base)
	indexType := a.analyzeExpr(scope, e.Index)
	if indexType != nil && (indexType.Category != types.Primitive || !indexType.PrimKind.IsInteger()) {
		a.engine.Emit(codeTypeMismatch, diagnostics.Error, e.Index.Pos(), "index must be an integer")
	}
	if baseType == nil {
		return nil
	}
	switch baseType.Category {
	case types.Slice, types.Array:
		return baseType.Elem
	case types.Pointer:
		if !a.inUnsafeContext {
			a.engine.Emit(codeUnsafeOperation, diagnostics.Error, e.At, "pointer indexing requires an unsafe context")
			return nil
		}
		return baseType.Pointee
	default:
		a.engine.Emit(codeInvalidOperation, diagnostics.Error, e.At,
			fmt.Sprintf("%s is not indexable", baseType.String()))
		return nil
	}
}

func (a *Analyzer) analyzeSliceExpr(scope *symbols.Scope, e *ast.SliceExpr) *types.TypeDescriptor {
	baseType := a.analyzeExpr(scope, e.Base)
	if e.Start != nil {
		a.checkIntegerOperand(scope, e.Start)
	}
	if e.End != nil {
		a.checkIntegerOperand(scope, e.End)
	}
	if baseType == nil {
		return nil
	}
	switch baseType.Category {
	case types.Slice:
		return baseType
	case types.Array:
		return a.registry.Slice(baseType.Elem)
	default:
		a.engine.Emit(codeInvalidOperation, diagnostics.Error, e.At,
			fmt.Sprintf("%s cannot be sliced", baseType.String()))
		return nil
	}
}

func (a *Analyzer) checkIntegerOperand(scope *symbols.Scope, expr ast.Expression) {
	t := a.analyzeExpr(scope, expr)
	if t != nil && (t.Category != types.Primitive || !t.PrimKind.IsInteger()) {
		a.engine.Emit(codeTypeMismatch, diagnostics.Error, expr.Pos(), "slice bound must be an integer")
	}
}

func (a *Analyzer) analyzeTupleLiteral(scope *symbols.Scope, e *ast.TupleLiteral) *types.TypeDescriptor {
	elems := make([]*types.TypeDescriptor, len(e.Elements))
	for i, el := range e.Elements {
		elems[i] = a.analyzeExpr(scope, el)
	}
	if len(elems) < 2 {
		a.engine.Emit(codeInvalidExpression, diagnostics.Error, e.Pos(),
			"a tuple literal needs at least two elements")
		return nil
	}
	for _, t := range elems {
		if t == nil {
			return nil
		}
	}
	return a.registry.Tuple(elems)
}

func (a *Analyzer) analyzeArrayLiteral(scope *symbols.Scope, e *ast.ArrayLiteral, expected *types.TypeDescriptor) *types.TypeDescriptor {
	var expectedElem *types.TypeDescriptor
	if expected != nil && expected.Category == types.Array {
		expectedElem = expected.Elem
	}

	if e.IsRepeat {
		size, ok := a.evalConstArraySize(scope, e.RepeatCount)
		valueType := a.analyzeExprExpected(scope, e.RepeatValue, expectedElem)
		if !ok || valueType == nil {
			return nil
		}
		return a.registry.Array(valueType, size)
	}

	if len(e.Elements) == 0 {
		if expectedElem != nil {
			return a.registry.Array(expectedElem, 0)
		}
		a.engine.Emit(codeTypeInferenceFailed, diagnostics.Error, e.At, "cannot infer element type of empty array literal")
		return nil
	}

	first := a.analyzeExprExpected(scope, e.Elements[0], expectedElem)
	elemType := first
	if expectedElem != nil {
		elemType = expectedElem
	}
	if elemType == nil {
		return nil
	}
	for _, el := range e.Elements[1:] {
		t := a.analyzeExprExpected(scope, el, elemType)
		if t != nil && !types.Compatible(elemType, t) {
			a.engine.Emit(codeTypeMismatch, diagnostics.Error, el.Pos(),
				fmt.Sprintf("array element type %s is incompatible with %s", t.String(), elemType.String()))
		}
	}
	return a.registry.Array(elemType, len(e.Elements))
}

func (a *Analyzer) analyzeStructLiteral(scope *symbols.Scope, e *ast.StructLiteral) *types.TypeDescriptor {
	entry := scope.LookupSafe(e.TypeName)
	if entry == nil || entry.Kind != symbols.KindType || entry.Type == nil || entry.Type.Category != types.Struct {
		a.engine.Emit(codeUndefinedSymbol, diagnostics.Error, e.At, fmt.Sprintf("undefined struct type %q", e.TypeName))
		return nil
	}
	structType := entry.Type
	seen := make(map[string]bool, len(e.Fields))
	for _, lf := range e.Fields {
		fieldType, known := a.fieldType(structType, lf.Name)
		if !known {
			a.engine.Emit(codeUnknownField, diagnostics.Error, lf.At,
				fmt.Sprintf("struct %q has no field %q", e.TypeName, lf.Name))
			a.analyzeExpr(scope, lf.Value)
			continue
		}
		if seen[lf.Name] {
			a.engine.Emit(codeDuplicateField, diagnostics.Error, lf.At,
				fmt.Sprintf("field %q initialized more than once", lf.Name))
		}
		seen[lf.Name] = true
		valueType := a.analyzeExprExpected(scope, lf.Value, fieldType)
		if valueType != nil && !types.Compatible(fieldType, valueType) {
			a.engine.Emit(codeTypeMismatch, diagnostics.Error, lf.Value.Pos(),
				fmt.Sprintf("field %q expects %s, got %s", lf.Name, fieldType.String(), valueType.String()))
		}
	}
	for _, f := range structType.Fields {
		if !seen[f.Name] {
			a.engine.Emit(codeMissingField, diagnostics.Error, e.At,
				fmt.Sprintf("missing initializer for field %q of %q", f.Name, e.TypeName))
		}
	}
	return structType
}

func (a *Analyzer) fieldType(structType *types.TypeDescriptor, name string) (*types.TypeDescriptor, bool) {
	for _, f := range structType.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

func (a *Analyzer) analyzeMatchExpr(scope *symbols.Scope, e *ast.MatchExpr) *types.TypeDescriptor {
	scrutineeType := a.analyzeExpr(scope, e.Scrutinee)

	var resultType *types.TypeDescriptor
	hasWildcard := false
	covered := make(map[string]bool)

	for _, arm := range e.Arms {
		armScope := symbols.NewChildScope(scope)
		if scrutineeType != nil {
			a.bindPattern(armScope, arm.Pattern, scrutineeType)
		}
		if ep, ok := arm.Pattern.(*ast.EnumVariantPattern); ok {
			covered[ep.Variant] = true
		}
		if _, ok := arm.Pattern.(*ast.WildcardPattern); ok {
			hasWildcard = true
		}

		var armType *types.TypeDescriptor
		if arm.Body != nil {
			for _, stmt := range arm.Body.Statements {
				a.analyzeStatement(armScope, stmt, 1)
			}
		} else if arm.Expr != nil {
			armType = a.analyzeExpr(armScope, arm.Expr)
		}
		resultType = promoteMatchType(a.registry, resultType, armType)
	}

	if scrutineeType != nil && scrutineeType.Category == types.Enum && !hasWildcard {
		for _, v := range scrutineeType.Variants {
			if !covered[v.Name] {
				a.engine.Emit(codeNonExhaustiveMatch, diagnostics.Error, e.At,
					fmt.Sprintf("match over %q is not exhaustive: missing variant %q", scrutineeType.Name, v.Name))
			}
		}
	}

	if resultType == nil {
		return a.registry.VoidType()
	}
	return resultType
}

func promoteMatchType(reg *types.Registry, acc, next *types.TypeDescriptor) *types.TypeDescriptor {
	if acc == nil {
		return next
	}
	if next == nil {
		return acc
	}
	if acc.Equal(next) {
		return acc
	}
	if acc.Category == types.Never {
		return next
	}
	if next.Category == types.Never {
		return acc
	}
	if promoted, ok := types.PromotedBinaryResult(reg, types.OpAdd, acc, next); ok {
		return promoted
	}
	return acc
}

// bindPattern introduces the bindings a pattern matched against
// scrutineeType creates into scope (§6 Pattern, used by match arms and
// if-let).
func (a *Analyzer) bindPattern(scope *symbols.Scope, pat ast.Pattern, scrutineeType *types.TypeDescriptor) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
	case *ast.BindingPattern:
		scope.Insert(p.Name, &symbols.SymbolEntry{Name: p.Name, Kind: symbols.KindVariable, Type: scrutineeType})
	case *ast.LiteralPattern:
		a.analyzeExpr(scope, p.Literal)
	case *ast.EnumVariantPattern:
		if scrutineeType == nil || scrutineeType.Category != types.Enum {
			return
		}
		idx := scrutineeType.VariantIndex(p.Variant)
		if idx < 0 {
			a.engine.Emit(codeUnknownField, diagnostics.Error, p.At,
				fmt.Sprintf("enum %q has no variant %q", scrutineeType.Name, p.Variant))
			return
		}
		payload := scrutineeType.Variants[idx].Payload
		for _, b := range p.Bindings {
			a.bindPattern(scope, b, payload)
		}
	case *ast.TuplePattern:
		var elemTypes []*types.TypeDescriptor
		if scrutineeType != nil && scrutineeType.Category == types.Tuple {
			elemTypes = scrutineeType.Elems
		}
		for i, el := range p.Elements {
			var et *types.TypeDescriptor
			if i < len(elemTypes) {
				et = elemTypes[i]
			}
			a.bindPattern(scope, el, et)
		}
	}
}

func (a *Analyzer) analyzeSpawnExpr(scope *symbols.Scope, e *ast.SpawnExpr) *types.TypeDescriptor {
	a.analyzeExpr(scope, e.Call)
	return a.registry.VoidType()
}

func (a *Analyzer) analyzeSpawnWithHandleExpr(scope *symbols.Scope, e *ast.SpawnWithHandleExpr) *types.TypeDescriptor {
	callType := a.analyzeExpr(scope, e.Call)
	if callType == nil {
		callType = a.registry.VoidType()
	}
	return a.registry.TaskHandle(callType)
}

func (a *Analyzer) analyzeAwaitExpr(scope *symbols.Scope, e *ast.AwaitExpr) *types.TypeDescriptor {
	valueType := a.analyzeExpr(scope, e.Value)
	if valueType == nil {
		return nil
	}
	if valueType.Category != types.TaskHandle {
		a.engine.Emit(codeWrongAwaitOperand, diagnostics.Error, e.At,
			fmt.Sprintf("await requires a TaskHandle, got %s", valueType.String()))
		return nil
	}
	return valueType.Inner
}
