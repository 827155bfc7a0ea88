package analyzer

import (
	"fmt"

	"github.com/orbit-lang/orbit/internal/annotations"
	"github.com/orbit-lang/orbit/internal/ast"
	"github.com/orbit-lang/orbit/internal/consteval"
	"github.com/orbit-lang/orbit/internal/diagnostics"
	"github.com/orbit-lang/orbit/internal/symbols"
	"github.com/orbit-lang/orbit/internal/types"
)

// registerDeclaration is pass 1 (§4.5): insert function/struct/enum names
// with placeholder bodies so mutual recursion resolves.
func (a *Analyzer) registerDeclaration(decl ast.Decl) {
	a.countNode()
	switch d := decl.(type) {
	case *ast.FunctionDecl:
		a.registerFunction(a.global, d)
	case *ast.StructDecl:
		a.registerStruct(d)
	case *ast.EnumDecl:
		a.registerEnum(d)
	case *ast.ImplBlock:
		// Methods are attached to the struct's method table in pass 2, once
		// every struct name exists (§4.5 "for impl blocks, methods are
		// registered into the target struct's method table").
	case *ast.ExternDecl:
		for _, fn := range d.Functions {
			a.registerFunction(a.global, fn)
		}
	case *ast.ConstDecl:
		a.registerConstPlaceholder(d)
	}
}

func (a *Analyzer) registerFunction(scope *symbols.Scope, d *ast.FunctionDecl) *symbols.SymbolEntry {
	entry := a.buildFunctionEntry(scope, d)
	if !scope.Insert(d.Name, entry) {
		a.engine.Emit(codeDuplicateSymbol, diagnostics.Error, d.At,
			fmt.Sprintf("duplicate declaration of %q", d.Name))
	}
	return entry
}

// buildFunctionEntry resolves a function's signature into a SymbolEntry
// without inserting it into any scope, for callers that attach the result
// elsewhere (impl-block methods live in the struct's method table, not in
// the global scope, so an instance method cannot be invoked as a free
// function and two structs may share a method name).
func (a *Analyzer) buildFunctionEntry(scope *symbols.Scope, d *ast.FunctionDecl) *symbols.SymbolEntry {
	params := make([]*types.TypeDescriptor, len(d.Params))
	paramEntries := make([]*symbols.SymbolEntry, len(d.Params))
	for i, p := range d.Params {
		pt := a.resolveTypeExpr(scope, p.TypeExpr)
		params[i] = pt
		paramEntries[i] = &symbols.SymbolEntry{Name: p.Name, Kind: symbols.KindParameter, Type: pt}
	}
	ret := a.resolveTypeExpr(scope, d.ReturnType)
	isInstance := len(d.Params) > 0 && d.Params[0].Name == "self"

	fnType := a.registry.Function(params, ret, isInstance)
	return &symbols.SymbolEntry{
		Name: d.Name, Kind: symbols.KindFunction, Type: fnType, Node: d,
		Exported: d.Pub, IsInstanceMethod: isInstance, Params: paramEntries,
	}
}

func (a *Analyzer) registerStruct(d *ast.StructDecl) {
	b := a.registry.StructNew(d.Name, len(d.Fields))
	for _, f := range d.Fields {
		ft := a.resolveTypeExpr(a.global, f.TypeExpr)
		if !b.AddField(f.Name, ft, f.At) {
			a.engine.Emit(codeDuplicateField, diagnostics.Error, f.At,
				fmt.Sprintf("duplicate field %q in struct %q", f.Name, d.Name))
		}
	}
	td := a.registry.Finish(b)
	entry := &symbols.SymbolEntry{Name: d.Name, Kind: symbols.KindType, Type: td, Node: d, Exported: d.Pub}
	if !a.global.Insert(d.Name, entry) {
		a.engine.Emit(codeDuplicateSymbol, diagnostics.Error, d.At,
			fmt.Sprintf("duplicate declaration of %q", d.Name))
	}
}

func (a *Analyzer) registerEnum(d *ast.EnumDecl) {
	b := a.registry.EnumNew(d.Name, len(d.TypeParams))
	for _, v := range d.Variants {
		var payload *types.TypeDescriptor
		if v.Payload != nil {
			payload = a.resolveTypeExpr(a.global, v.Payload)
		}
		if !b.AddVariant(v.Name, payload) {
			a.engine.Emit(codeDuplicateSymbol, diagnostics.Error, v.At,
				fmt.Sprintf("duplicate variant %q in enum %q", v.Name, d.Name))
		}
	}
	td := a.registry.FinishEnum(b)
	entry := &symbols.SymbolEntry{Name: d.Name, Kind: symbols.KindType, Type: td, Node: d, Exported: d.Pub}
	if !a.global.Insert(d.Name, entry) {
		a.engine.Emit(codeDuplicateSymbol, diagnostics.Error, d.At,
			fmt.Sprintf("duplicate declaration of %q", d.Name))
	}
	for i, v := range d.Variants {
		_ = i
		a.global.Insert(d.Name+"."+v.Name, &symbols.SymbolEntry{
			Name: v.Name, Kind: symbols.KindEnumVariant, Type: td,
			VariantPayload: td.Variants[td.VariantIndex(v.Name)].Payload,
		})
	}
}

func (a *Analyzer) registerConstPlaceholder(d *ast.ConstDecl) {
	entry := &symbols.SymbolEntry{Name: d.Name, Kind: symbols.KindConst, Node: d, Exported: d.Pub}
	if !a.global.Insert(d.Name, entry) {
		a.engine.Emit(codeDuplicateSymbol, diagnostics.Error, d.At,
			fmt.Sprintf("duplicate declaration of %q", d.Name))
	}
}

// analyzeDeclarationBody is pass 2 (§4.5): bodies, const values, struct
// method tables, and annotation validation (§4.6, invoked before each
// declaration's body per §4.5 "invokes C6 on any attached annotation list
// before analyzing the body").
func (a *Analyzer) analyzeDeclarationBody(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.FunctionDecl:
		if !a.validateAnnotations(d.AnnotationList(), annotations.ContextFunction) {
			return
		}
		a.analyzeFunctionBody(d, a.global.LookupSafe(d.Name))
	case *ast.StructDecl:
		a.validateAnnotations(d.AnnotationList(), annotations.ContextStruct)
	case *ast.EnumDecl:
		a.validateAnnotations(d.AnnotationList(), annotations.ContextStruct)
	case *ast.ImplBlock:
		a.analyzeImplBlock(d)
	case *ast.ExternDecl:
		if !a.validateAnnotations(d.AnnotationList(), annotations.ContextFunction) {
			return
		}
		for _, fn := range d.Functions {
			a.validateAnnotations(fn.AnnotationList(), annotations.ContextFunction|annotations.ContextParameter|annotations.ContextReturnType)
		}
	case *ast.ConstDecl:
		a.analyzeConstDecl(d)
	}
}

func (a *Analyzer) validateAnnotations(anns []*ast.Annotation, ctx annotations.Context) bool {
	if len(anns) == 0 {
		return true
	}
	return a.validator.Validate(anns, ctx).OK
}

func (a *Analyzer) analyzeFunctionBody(d *ast.FunctionDecl, entry *symbols.SymbolEntry) {
	if d.IsExtern || d.Body == nil {
		return
	}
	scope := symbols.NewChildScope(a.global)
	for i, p := range d.Params {
		pt := entry.Params[i].Type
		scope.Insert(p.Name, &symbols.SymbolEntry{Name: p.Name, Kind: symbols.KindParameter, Type: pt, Mutable: p.Name != "self"})
	}

	prevFn := a.currentFunction
	a.currentFunction = d
	a.analyzeBlock(scope, d.Body, 1)
	a.currentFunction = prevFn
}

func (a *Analyzer) analyzeImplBlock(d *ast.ImplBlock) {
	targetEntry := a.global.LookupSafe(d.TypeName)
	if targetEntry == nil || targetEntry.Type == nil || targetEntry.Type.Category != types.Struct {
		a.engine.Emit(codeUndefinedSymbol, diagnostics.Error, d.At,
			fmt.Sprintf("impl target %q is not a known struct", d.TypeName))
		return
	}
	for _, method := range d.Methods {
		entry := a.buildFunctionEntry(a.global, method)
		targetEntry.Type.Methods[method.Name] = entry.Type
		a.analyzeFunctionBody(method, entry)
	}
}

func (a *Analyzer) analyzeConstDecl(d *ast.ConstDecl) {
	if !a.validateAnnotations(d.AnnotationList(), annotations.ContextStatement) {
		return
	}
	val, ok := a.foldConst(a.global, d.Value)
	if !ok {
		a.engine.Emit(codeTypeInferenceFailed, diagnostics.Error, d.At,
			fmt.Sprintf("const %q initializer is not a compile-time constant", d.Name))
		return
	}
	var declared *types.TypeDescriptor
	if d.TypeExpr != nil {
		declared = a.resolveTypeExpr(a.global, d.TypeExpr)
	} else {
		declared = constValueType(a.registry, val)
	}
	entry := a.global.LookupSafe(d.Name)
	entry.Type = declared
	entry.Const = &val
}

func constValueType(reg *types.Registry, v consteval.Value) *types.TypeDescriptor {
	switch v.Kind {
	case consteval.Int:
		return reg.Primitive(types.I32)
	case consteval.Float:
		return reg.Primitive(types.F64)
	case consteval.String:
		return reg.Primitive(types.StringKind)
	case consteval.Bool:
		return reg.Primitive(types.Bool)
	default:
		return reg.VoidType()
	}
}
