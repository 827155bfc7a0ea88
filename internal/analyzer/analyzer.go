// Package analyzer implements the AST Walker / Expression Analyzer (C4)
// and the Declaration Analyzer (C5): the top-level driver that ties the
// type registry, symbol table, const evaluator, annotation validator, and
// diagnostic engine together into one `analyze_program` entry point.
package analyzer

import (
	"sync/atomic"

	"github.com/orbit-lang/orbit/internal/annotations"
	"github.com/orbit-lang/orbit/internal/ast"
	"github.com/orbit-lang/orbit/internal/config"
	"github.com/orbit-lang/orbit/internal/diagnostics"
	"github.com/orbit-lang/orbit/internal/symbols"
	"github.com/orbit-lang/orbit/internal/types"
)

// Analyzer drives one semantic analysis run over a single Program (§2
// control flow, §5 "one analyzer instance is driven by one caller").
type Analyzer struct {
	cfg config.AnalyzerConfig

	registry        *types.Registry
	global          *symbols.Scope
	aliases         *symbols.AliasTable
	engine          *diagnostics.Engine
	annotationRegs  *annotations.Registry
	validator       *annotations.Validator

	optionBase *types.TypeDescriptor
	resultBase *types.TypeDescriptor

	currentFunction         *ast.FunctionDecl
	inUnsafeContext         bool
	loopDepth               int
	nonDeterministicAllowed int // depth counter; >0 means the current subtree may be non-deterministic

	nodesAnalyzed          atomic.Int64
	scopeDepthHighWatermark atomic.Int64
}

// New creates an analyzer with builtins installed into the global scope
// (§2: "initializes C1 ... C2 (global scope, predeclared identifiers)").
func New(cfg config.AnalyzerConfig) *Analyzer {
	engine := diagnostics.NewEngine(cfg.DiagnosticCap)
	a := &Analyzer{
		cfg:            cfg,
		registry:       types.NewRegistry(),
		global:         symbols.NewScope(64),
		aliases:        symbols.NewAliasTable(),
		engine:         engine,
		annotationRegs: annotations.NewRegistry(),
	}
	a.validator = annotations.NewValidator(a.annotationRegs, a.engine)
	if cfg.AnnotationRegistryPath != "" {
		_ = a.annotationRegs.LoadFile(cfg.AnnotationRegistryPath)
	}
	a.installBuiltins()
	return a
}

// Diagnostics returns the accumulated diagnostic engine.
func (a *Analyzer) Diagnostics() *diagnostics.Engine { return a.engine }

// Registry returns the analyzer's type registry (used by the code
// generator per §6 "produced" interface).
func (a *Analyzer) Registry() *types.Registry { return a.registry }

// GlobalScope returns the analyzer's top-level scope.
func (a *Analyzer) GlobalScope() *symbols.Scope { return a.global }

// NodesAnalyzed is a monotonic statistic (§5 "monotonic statistics").
func (a *Analyzer) NodesAnalyzed() int64 { return a.nodesAnalyzed.Load() }

// ScopeDepthHighWatermark is a monotonic statistic (§5).
func (a *Analyzer) ScopeDepthHighWatermark() int64 { return a.scopeDepthHighWatermark.Load() }

func (a *Analyzer) countNode() { a.nodesAnalyzed.Add(1) }

func (a *Analyzer) trackScopeDepth(depth int64) {
	for {
		cur := a.scopeDepthHighWatermark.Load()
		if depth <= cur {
			return
		}
		if a.scopeDepthHighWatermark.CompareAndSwap(cur, depth) {
			return
		}
	}
}

// Succeeded reports overall analyzer success: no Error-level diagnostics
// were recorded (§2, §7).
func (a *Analyzer) Succeeded() bool { return a.engine.Succeeded() }

// installBuiltins registers primitive-adjacent predeclared identifiers and
// the two built-in generic enums Option<T> and Result<T, E> (§2, §4.2).
func (a *Analyzer) installBuiltins() {
	// Option<T> { Some(T), None }
	optBuilder := a.registry.EnumNew("Option", 1)
	optBuilder.AddVariant("Some", nil) // payload is the sole type argument; analyzeEnumVariantExpr takes it from the expected type or the argument
	optBuilder.AddVariant("None", nil)
	a.optionBase = a.registry.FinishEnum(optBuilder)

	// Result<T, E> { Ok(T), Err(E) }
	resBuilder := a.registry.EnumNew("Result", 2)
	resBuilder.AddVariant("Ok", nil)
	resBuilder.AddVariant("Err", nil)
	a.resultBase = a.registry.FinishEnum(resBuilder)

	a.global.Insert("Option", &symbols.SymbolEntry{Name: "Option", Kind: symbols.KindType, Type: a.optionBase, Exported: true})
	a.global.Insert("Result", &symbols.SymbolEntry{Name: "Result", Kind: symbols.KindType, Type: a.resultBase, Exported: true})

	// Predeclared functions (§4.2): log(string) -> void, range(i32, i32) ->
	// []i32, panic(string) -> never.
	voidT := a.registry.VoidType()
	neverT := a.registry.NeverType()
	stringT := a.registry.Primitive(types.StringKind)
	i32T := a.registry.Primitive(types.I32)
	sliceI32 := a.registry.Slice(i32T)

	a.global.Insert("log", &symbols.SymbolEntry{
		Name: "log", Kind: symbols.KindFunction,
		Type: a.registry.Function([]*types.TypeDescriptor{stringT}, voidT, false),
	})
	a.global.Insert("range", &symbols.SymbolEntry{
		Name: "range", Kind: symbols.KindFunction,
		Type: a.registry.Function([]*types.TypeDescriptor{i32T, i32T}, sliceI32, false),
	})
	a.global.Insert("panic", &symbols.SymbolEntry{
		Name: "panic", Kind: symbols.KindFunction,
		Type: a.registry.Function([]*types.TypeDescriptor{stringT}, neverT, false),
	})
}

// AnalyzeProgram walks imports then declarations (§4.4 `analyze_program`)
// and reports overall success.
func (a *Analyzer) AnalyzeProgram(prog *ast.Program) bool {
	for _, imp := range prog.Imports {
		a.analyzeImport(imp)
	}

	// Pass 1: register names so mutual/forward recursion resolves (§4.5).
	for _, decl := range prog.Declarations {
		a.registerDeclaration(decl)
	}

	// Pass 2: analyze bodies.
	for _, decl := range prog.Declarations {
		a.analyzeDeclarationBody(decl)
	}

	return a.Succeeded()
}

func (a *Analyzer) analyzeImport(imp *ast.Import) {
	a.countNode()
	mod := symbols.NewModule(imp.Path)
	alias := imp.Alias
	if alias == "" {
		alias = imp.Path
	}
	a.aliases.Register(alias, mod)
	a.global.Insert(alias, &symbols.SymbolEntry{Name: alias, Kind: symbols.KindModuleAlias})
}
