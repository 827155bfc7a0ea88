package analyzer

import (
	"fmt"

	"github.com/orbit-lang/orbit/internal/annotations"
	"github.com/orbit-lang/orbit/internal/ast"
	"github.com/orbit-lang/orbit/internal/diagnostics"
	"github.com/orbit-lang/orbit/internal/symbols"
	"github.com/orbit-lang/orbit/internal/types"
)

// analyzeBlock opens a child scope and walks each statement in order
// (§4.4 "block"). depth is the lexical nesting depth, tracked for the
// scope-depth high-watermark statistic (§5).
func (a *Analyzer) analyzeBlock(parent *symbols.Scope, block *ast.Block, depth int64) *symbols.Scope {
	a.countNode()
	a.trackScopeDepth(depth)
	scope := symbols.NewChildScope(parent)
	for _, stmt := range block.Statements {
		a.analyzeStatement(scope, stmt, depth)
	}
	return scope
}

func (a *Analyzer) analyzeStatement(scope *symbols.Scope, stmt ast.Statement, depth int64) {
	a.countNode()
	switch s := stmt.(type) {
	case *ast.LetStmt:
		a.analyzeLetStmt(scope, s)
	case *ast.ExpressionStmt:
		a.analyzeExpr(scope, s.Expr)
	case *ast.ReturnStmt:
		a.analyzeReturnStmt(scope, s)
	case *ast.IfStmt:
		a.analyzeIfStmt(scope, s, depth)
	case *ast.IfLetStmt:
		a.analyzeIfLetStmt(scope, s, depth)
	case *ast.WhileStmt:
		a.analyzeWhileStmt(scope, s, depth)
	case *ast.ForStmt:
		a.analyzeForStmt(scope, s, depth)
	case *ast.BreakStmt:
		if a.loopDepth == 0 {
			a.engine.Emit(codeBreakOutsideLoop, diagnostics.Error, s.At, "break outside of a loop")
		}
	case *ast.ContinueStmt:
		if a.loopDepth == 0 {
			a.engine.Emit(codeContinueOutsideLoop, diagnostics.Error, s.At, "continue outside of a loop")
		}
	case *ast.UnsafeStmt:
		prev := a.inUnsafeContext
		a.inUnsafeContext = true
		a.analyzeBlock(scope, s.Body, depth+1)
		a.inUnsafeContext = prev
	case *ast.Block:
		a.analyzeBlock(scope, s, depth+1)
	}
}

func (a *Analyzer) analyzeLetStmt(scope *symbols.Scope, s *ast.LetStmt) {
	a.validateAnnotations(s.AnnotationList(), annotations.ContextStatement)

	var declared *types.TypeDescriptor
	if s.TypeExpr != nil {
		declared = a.resolveTypeExpr(scope, s.TypeExpr)
	}

	var valueType *types.TypeDescriptor
	if s.Value != nil {
		valueType = a.analyzeExprExpected(scope, s.Value, declared)
	}

	final := declared
	if final == nil {
		final = valueType
	} else if valueType != nil && !types.Compatible(final, valueType) {
		a.engine.Emit(codeTypeMismatch, diagnostics.Error, s.At,
			fmt.Sprintf("cannot assign %s to binding of type %s", valueType.String(), final.String()))
	}
	if final == nil {
		a.engine.Emit(codeTypeInferenceFailed, diagnostics.Error, s.At,
			fmt.Sprintf("cannot infer type of %q", s.Name))
		final = a.registry.VoidType()
	}

	entry := &symbols.SymbolEntry{Name: s.Name, Kind: symbols.KindVariable, Type: final, Node: s, Mutable: s.Mut}
	if !scope.Insert(s.Name, entry) {
		a.engine.Emit(codeDuplicateSymbol, diagnostics.Error, s.At,
			fmt.Sprintf("duplicate declaration of %q", s.Name))
	}
}

func (a *Analyzer) analyzeReturnStmt(scope *symbols.Scope, s *ast.ReturnStmt) {
	var expected *types.TypeDescriptor
	if a.currentFunction != nil {
		expected = a.resolveTypeExpr(a.global, a.currentFunction.ReturnType)
	}

	var retType *types.TypeDescriptor
	if s.Value != nil {
		retType = a.analyzeExprExpected(scope, s.Value, expected)
	} else {
		retType = a.registry.VoidType()
	}
	if a.currentFunction == nil || retType == nil {
		return
	}
	if expected != nil && !types.Compatible(expected, retType) {
		a.engine.Emit(codeReturnTypeMismatch, diagnostics.Error, s.At,
			fmt.Sprintf("function %q returns %s, got %s", a.currentFunction.Name, expected.String(), retType.String()))
	}
}

func (a *Analyzer) analyzeIfStmt(scope *symbols.Scope, s *ast.IfStmt, depth int64) {
	a.analyzeCondition(scope, s.Condition)
	a.analyzeBlock(scope, s.Then, depth+1)
	if s.Else != nil {
		a.analyzeStatement(scope, s.Else, depth)
	}
}

func (a *Analyzer) analyzeIfLetStmt(scope *symbols.Scope, s *ast.IfLetStmt, depth int64) {
	scrutinee := a.analyzeExpr(scope, s.Value)
	inner := symbols.NewChildScope(scope)
	a.trackScopeDepth(depth + 1)
	a.bindPattern(inner, s.Pattern, scrutinee)
	for _, stmt := range s.Then.Statements {
		a.analyzeStatement(inner, stmt, depth+1)
	}
	if s.Else != nil {
		a.analyzeStatement(scope, s.Else, depth)
	}
}

func (a *Analyzer) analyzeWhileStmt(scope *symbols.Scope, s *ast.WhileStmt, depth int64) {
	a.analyzeCondition(scope, s.Condition)
	a.loopDepth++
	a.analyzeBlock(scope, s.Body, depth+1)
	a.loopDepth--
}

func (a *Analyzer) analyzeForStmt(scope *symbols.Scope, s *ast.ForStmt, depth int64) {
	iterType := a.analyzeExpr(scope, s.Iterable)
	inner := symbols.NewChildScope(scope)
	a.trackScopeDepth(depth + 1)
	var elemType *types.TypeDescriptor
	if iterType != nil && iterType.Category == types.Slice {
		elemType = iterType.Elem
	} else if iterType != nil && iterType.Category == types.Array {
		elemType = iterType.Elem
	} else {
		elemType = a.registry.VoidType()
	}
	inner.Insert(s.Binding, &symbols.SymbolEntry{Name: s.Binding, Kind: symbols.KindVariable, Type: elemType, Mutable: false})
	a.loopDepth++
	for _, stmt := range s.Body.Statements {
		a.analyzeStatement(inner, stmt, depth+1)
	}
	a.loopDepth--
}

func (a *Analyzer) analyzeCondition(scope *symbols.Scope, cond ast.Expression) {
	t := a.analyzeExpr(scope, cond)
	if t == nil {
		return
	}
	boolT := a.registry.Primitive(types.Bool)
	if !t.Equal(boolT) {
		a.engine.Emit(codeTypeMismatch, diagnostics.Error, cond.Pos(),
			fmt.Sprintf("condition must be bool, got %s", t.String()))
	}
}
