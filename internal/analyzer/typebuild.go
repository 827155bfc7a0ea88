package analyzer

import (
	"fmt"

	"github.com/orbit-lang/orbit/internal/ast"
	"github.com/orbit-lang/orbit/internal/diagnostics"
	"github.com/orbit-lang/orbit/internal/symbols"
	"github.com/orbit-lang/orbit/internal/types"
)

// resolveTypeExpr turns a parsed TypeExpression into a TypeDescriptor,
// looking up named types in scope and the type registry's by-name table
// (used to complete weak pointer references to forward-declared
// structs/enums, spec.md §9).
func (a *Analyzer) resolveTypeExpr(scope *symbols.Scope, texpr ast.TypeExpression) *types.TypeDescriptor {
	if texpr == nil {
		return a.registry.VoidType()
	}
	switch t := texpr.(type) {
	case *ast.NamedTypeExpr:
		return a.resolveNamedType(scope, t)
	case *ast.PointerTypeExpr:
		pointee := a.resolveTypeExpr(scope, t.Pointee)
		return a.registry.Pointer(pointee, t.Mutable)
	case *ast.SliceTypeExpr:
		elem := a.resolveTypeExpr(scope, t.Elem)
		return a.registry.Slice(elem)
	case *ast.ArrayTypeExpr:
		elem := a.resolveTypeExpr(scope, t.Elem)
		size, ok := a.evalConstArraySize(scope, t.Size)
		if !ok {
			return nil
		}
		return a.registry.Array(elem, size)
	case *ast.TupleTypeExpr:
		elems := make([]*types.TypeDescriptor, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = a.resolveTypeExpr(scope, e)
		}
		return a.registry.Tuple(elems)
	case *ast.GenericTypeExpr:
		return a.resolveGenericType(scope, t)
	case *ast.FunctionTypeExpr:
		params := make([]*types.TypeDescriptor, len(t.Params))
		for i, p := range t.Params {
			params[i] = a.resolveTypeExpr(scope, p)
		}
		ret := a.resolveTypeExpr(scope, t.Return)
		return a.registry.Function(params, ret, false)
	default:
		a.engine.Emit(codeInvalidType, diagnostics.Error, texpr.Pos(), "unrecognized type expression")
		return nil
	}
}

func (a *Analyzer) resolveNamedType(scope *symbols.Scope, t *ast.NamedTypeExpr) *types.TypeDescriptor {
	if prim, ok := primitiveByName[t.Name]; ok {
		return a.registry.Primitive(prim)
	}
	switch t.Name {
	case "never":
		return a.registry.NeverType()
	case "void":
		return a.registry.VoidType()
	}
	if entry := scope.LookupSafe(t.Name); entry != nil && entry.Kind == symbols.KindType {
		return entry.Type
	}
	if td, ok := a.registry.ByName(t.Name); ok {
		return td
	}
	a.engine.Emit(codeInvalidType, diagnostics.Error, t.At, fmt.Sprintf("unknown type %q", t.Name))
	return nil
}

func (a *Analyzer) resolveGenericType(scope *symbols.Scope, t *ast.GenericTypeExpr) *types.TypeDescriptor {
	var base *types.TypeDescriptor
	switch t.Name {
	case "Option":
		base = a.optionBase
	case "Result":
		base = a.resultBase
	default:
		if entry := scope.LookupSafe(t.Name); entry != nil && entry.Kind == symbols.KindType {
			base = entry.Type
		} else if td, ok := a.registry.ByName(t.Name); ok {
			base = td
		}
	}
	if base == nil {
		a.engine.Emit(codeInvalidType, diagnostics.Error, t.At, fmt.Sprintf("unknown generic type %q", t.Name))
		return nil
	}
	args := make([]*types.TypeDescriptor, len(t.Args))
	for i, argExpr := range t.Args {
		args[i] = a.resolveTypeExpr(scope, argExpr)
	}
	return a.registry.GenericInstance(base, args)
}

// evalConstArraySize evaluates an array-size expression to a compile-time
// integer constant, enforcing §3 invariant 5 (strictly positive).
func (a *Analyzer) evalConstArraySize(scope *symbols.Scope, sizeExpr ast.Expression) (int, bool) {
	val, ok := a.foldConst(scope, sizeExpr)
	if !ok {
		a.engine.Emit(codeNonConstantArraySize, diagnostics.Error, sizeExpr.Pos(),
			"array size must be a compile-time constant")
		return 0, false
	}
	if val.Kind != constIntKind {
		a.engine.Emit(codeNonConstantArraySize, diagnostics.Error, sizeExpr.Pos(),
			"array size must be an integer constant")
		return 0, false
	}
	if val.Int <= 0 {
		a.engine.Emit(codeNonPositiveArraySize, diagnostics.Error, sizeExpr.Pos(),
			"array size must be positive")
		return 0, false
	}
	return int(val.Int), true
}

var primitiveByName = map[string]types.PrimitiveKind{
	"i8": types.I8, "i16": types.I16, "i32": types.I32, "i64": types.I64,
	"u8": types.U8, "u16": types.U16, "u32": types.U32, "u64": types.U64,
	"usize": types.USize, "f32": types.F32, "f64": types.F64,
	"bool": types.Bool, "char": types.Char, "string": types.StringKind,
}
