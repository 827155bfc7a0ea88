package analyzer

import (
	"strings"
	"testing"

	"github.com/orbit-lang/orbit/internal/ast"
	"github.com/orbit-lang/orbit/internal/config"
	"github.com/orbit-lang/orbit/internal/source"
)

func pos(line int) source.Position { return source.Position{Line: line, Column: 1} }

func named(name string) ast.TypeExpression { return &ast.NamedTypeExpr{At: pos(1), Name: name} }

func newTestAnalyzer() *Analyzer { return New(config.Default()) }

// S1: undefined identifier gets a single high-confidence replace suggestion.
func TestUndefinedIdentifierSuggestsSimilarName(t *testing.T) {
	prog := &ast.Program{Declarations: []ast.Decl{
		&ast.FunctionDecl{
			At: pos(1), Name: "f", Pub: true,
			Params:     []*ast.Param{{At: pos(1), Name: "x", TypeExpr: named("i32")}},
			ReturnType: named("i32"),
			Body: &ast.Block{At: pos(1), Statements: []ast.Statement{
				&ast.ReturnStmt{At: pos(1), Value: &ast.Identifier{At: pos(1), Name: "xx"}},
			}},
		},
	}}
	a := newTestAnalyzer()
	a.AnalyzeProgram(prog)

	diags := a.Diagnostics().All()
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	d := diags[0]
	if d.Code != codeUndefinedSymbol {
		t.Fatalf("expected %s, got %s", codeUndefinedSymbol, d.Code)
	}
	if len(d.Suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(d.Suggestions))
	}
	s := d.Suggestions[0]
	if s.Text != "x" || s.Confidence.String() != "high" {
		t.Fatalf("expected replace with %q at high confidence, got %q at %s", "x", s.Text, s.Confidence.String())
	}
}

// S2: assigning a string to a string-typed let, then returning it as i32,
// still reports the earlier let as successful and produces one mismatch
// naming both types.
func TestReturnTypeMismatchNamesBothTypes(t *testing.T) {
	prog := &ast.Program{Declarations: []ast.Decl{
		&ast.FunctionDecl{
			At: pos(1), Name: "f", Pub: true,
			ReturnType: named("i32"),
			Body: &ast.Block{At: pos(1), Statements: []ast.Statement{
				&ast.LetStmt{At: pos(1), Name: "s", TypeExpr: named("string"), Value: &ast.StringLiteral{At: pos(1), Value: "a"}},
				&ast.ReturnStmt{At: pos(2), Value: &ast.Identifier{At: pos(2), Name: "s"}},
			}},
		},
	}}
	a := newTestAnalyzer()
	a.AnalyzeProgram(prog)

	diags := a.Diagnostics().All()
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	d := diags[0]
	if d.Code != codeReturnTypeMismatch {
		t.Fatalf("expected %s, got %s", codeReturnTypeMismatch, d.Code)
	}
	if !strings.Contains(d.Message, "string") || !strings.Contains(d.Message, "i32") {
		t.Fatalf("expected message to mention string and i32, got %q", d.Message)
	}
}

// S3: a const-sized array literal attaches Array(i32, 3); a zero size and
// a non-constant size each produce their own distinct diagnostic.
func TestArraySizeConstant(t *testing.T) {
	build := func(size ast.Expression) *ast.Program {
		return &ast.Program{Declarations: []ast.Decl{
			&ast.ConstDecl{At: pos(1), Name: "N", Pub: true, TypeExpr: named("i32"), Value: &ast.IntegerLiteral{At: pos(1), Value: 3}},
			&ast.FunctionDecl{
				At: pos(2), Name: "f", Pub: true,
				Body: &ast.Block{At: pos(2), Statements: []ast.Statement{
					&ast.LetStmt{
						At: pos(2), Name: "a",
						TypeExpr: &ast.ArrayTypeExpr{At: pos(2), Elem: named("i32"), Size: size},
						Value: &ast.ArrayLiteral{At: pos(2), IsRepeat: true,
							RepeatValue: &ast.IntegerLiteral{At: pos(2), Value: 0},
							RepeatCount: size,
						},
					},
				}},
			},
		}}
	}

	t.Run("success", func(t *testing.T) {
		a := newTestAnalyzer()
		prog := build(&ast.Identifier{At: pos(2), Name: "N"})
		if !a.AnalyzeProgram(prog) {
			t.Fatalf("expected success, got diagnostics: %v", a.Diagnostics().All())
		}
		let := prog.Declarations[1].(*ast.FunctionDecl).Body.Statements[0].(*ast.LetStmt)
		typ := let.Value.ResolvedType()
		if typ == nil || typ.String() != "[i32; 3]" {
			t.Fatalf("expected a resolved [i32; 3] array type, got %v", typ)
		}
	})

	t.Run("zero size", func(t *testing.T) {
		a := newTestAnalyzer()
		prog := build(&ast.IntegerLiteral{At: pos(2), Value: 0})
		a.AnalyzeProgram(prog)
		found := false
		for _, d := range a.Diagnostics().All() {
			if d.Code == codeNonPositiveArraySize {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %s, got %v", codeNonPositiveArraySize, a.Diagnostics().All())
		}
	})

	t.Run("non constant size", func(t *testing.T) {
		a := newTestAnalyzer()
		prog := build(&ast.Identifier{At: pos(2), Name: "undeclared_var"})
		a.AnalyzeProgram(prog)
		found := false
		for _, d := range a.Diagnostics().All() {
			if d.Code == codeNonConstantArraySize {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %s, got %v", codeNonConstantArraySize, a.Diagnostics().All())
		}
	})
}

// S4: awaiting a value that isn't TaskHandle<T> is an error naming TaskHandle.
func TestAwaitOnNonHandle(t *testing.T) {
	prog := &ast.Program{Declarations: []ast.Decl{
		&ast.FunctionDecl{
			At: pos(1), Name: "f", Pub: true,
			Body: &ast.Block{At: pos(1), Statements: []ast.Statement{
				&ast.LetStmt{At: pos(1), Name: "x", TypeExpr: named("i32"), Value: &ast.IntegerLiteral{At: pos(1), Value: 1}},
				&ast.ExpressionStmt{At: pos(2), Expr: &ast.AwaitExpr{At: pos(2), Value: &ast.Identifier{At: pos(2), Name: "x"}}},
			}},
		},
	}}
	a := newTestAnalyzer()
	a.AnalyzeProgram(prog)

	found := false
	for _, d := range a.Diagnostics().All() {
		if d.Code == codeWrongAwaitOperand && strings.Contains(d.Message, "TaskHandle") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a TaskHandle-mentioning %s, got %v", codeWrongAwaitOperand, a.Diagnostics().All())
	}
}

// S5: calling the Result.Ok constructor with an expected Result<i32, string>
// return type infers the full generic instance, not a partially-applied one.
func TestGenericEnumConstructorInfersFromExpectedType(t *testing.T) {
	prog := &ast.Program{Declarations: []ast.Decl{
		&ast.FunctionDecl{
			At: pos(1), Name: "f", Pub: true,
			ReturnType: &ast.GenericTypeExpr{At: pos(1), Name: "Result", Args: []ast.TypeExpression{named("i32"), named("string")}},
			Body: &ast.Block{At: pos(1), Statements: []ast.Statement{
				&ast.ReturnStmt{At: pos(1), Value: &ast.CallExpr{
					At:     pos(1),
					Callee: &ast.EnumVariantExpr{At: pos(1), EnumName: "Result", Variant: "Ok"},
					Args:   []ast.Expression{&ast.IntegerLiteral{At: pos(1), Value: 1}},
				}},
			}},
		},
	}}
	a := newTestAnalyzer()
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("expected success, got diagnostics: %v", a.Diagnostics().All())
	}
	ret := prog.Declarations[0].(*ast.FunctionDecl).Body.Statements[0].(*ast.ReturnStmt)
	typ := ret.Value.ResolvedType()
	if typ == nil {
		t.Fatal("expected a resolved type on the constructor call")
	}
	if !strings.Contains(typ.String(), "string") {
		t.Fatalf("expected the inferred instance to carry the string type argument, got %s", typ.String())
	}
}

// S6: dereferencing a pointer outside an unsafe block is an error;
// wrapping the same deref in unsafe succeeds.
func TestPointerDerefRequiresUnsafe(t *testing.T) {
	build := func(wrapUnsafe bool) *ast.Program {
		deref := &ast.UnaryExpr{At: pos(1), Op: ast.UnaryDeref, Operand: &ast.Identifier{At: pos(1), Name: "p"}}
		var ret ast.Statement = &ast.ReturnStmt{At: pos(1), Value: deref}
		if wrapUnsafe {
			ret = &ast.UnsafeStmt{At: pos(1), Body: &ast.Block{At: pos(1), Statements: []ast.Statement{
				&ast.ReturnStmt{At: pos(1), Value: deref},
			}}}
		}
		return &ast.Program{Declarations: []ast.Decl{
			&ast.FunctionDecl{
				At: pos(1), Name: "f", Pub: true,
				Params:     []*ast.Param{{At: pos(1), Name: "p", TypeExpr: &ast.PointerTypeExpr{At: pos(1), Pointee: named("i32")}}},
				ReturnType: named("i32"),
				Body:       &ast.Block{At: pos(1), Statements: []ast.Statement{ret}},
			},
		}}
	}

	t.Run("without unsafe", func(t *testing.T) {
		a := newTestAnalyzer()
		a.AnalyzeProgram(build(false))
		found := false
		for _, d := range a.Diagnostics().All() {
			if d.Code == codeUnsafeOperation {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %s, got %v", codeUnsafeOperation, a.Diagnostics().All())
		}
	})

	t.Run("with unsafe", func(t *testing.T) {
		a := newTestAnalyzer()
		if !a.AnalyzeProgram(build(true)) {
			// the bare return statement's wrapping unsafe block is itself the
			// function's only statement, so a successful run has no diagnostics
			t.Fatalf("expected success, got diagnostics: %v", a.Diagnostics().All())
		}
	})
}

// Char and unit literals resolve to char/void instead of falling into the
// unrecognized-expression default branch.
func TestCharAndUnitLiteralsResolve(t *testing.T) {
	prog := &ast.Program{Declarations: []ast.Decl{
		&ast.FunctionDecl{
			At: pos(1), Name: "f", Pub: true,
			ReturnType: named("char"),
			Body: &ast.Block{At: pos(1), Statements: []ast.Statement{
				&ast.ExpressionStmt{At: pos(1), Expr: &ast.UnitLiteral{At: pos(1)}},
				&ast.ReturnStmt{At: pos(2), Value: &ast.CharLiteral{At: pos(2), Value: 'x'}},
			}},
		},
	}}
	a := newTestAnalyzer()
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("expected success, got diagnostics: %v", a.Diagnostics().All())
	}
	body := prog.Declarations[0].(*ast.FunctionDecl).Body
	unitType := body.Statements[0].(*ast.ExpressionStmt).Expr.ResolvedType()
	if unitType == nil || unitType.String() != "void" {
		t.Fatalf("expected the unit literal to resolve to void, got %v", unitType)
	}
	charType := body.Statements[1].(*ast.ReturnStmt).Value.ResolvedType()
	if charType == nil || charType.String() != "char" {
		t.Fatalf("expected the char literal to resolve to char, got %v", charType)
	}
}

// Two unrelated structs may each declare a method with the same name
// without a spurious duplicate-symbol error, and the method cannot be
// invoked as a bare free function.
func TestImplMethodsDoNotLeakIntoGlobalScope(t *testing.T) {
	makeStruct := func(name string) *ast.StructDecl {
		return &ast.StructDecl{At: pos(1), Name: name, Pub: true}
	}
	makeImpl := func(typeName string) *ast.ImplBlock {
		return &ast.ImplBlock{At: pos(1), TypeName: typeName, Methods: []*ast.FunctionDecl{
			{
				At: pos(1), Name: "new", Pub: true,
				ReturnType: named(typeName),
				Body: &ast.Block{At: pos(1), Statements: []ast.Statement{
					&ast.ReturnStmt{At: pos(1), Value: &ast.StructLiteral{At: pos(1), TypeName: typeName}},
				}},
			},
		}}
	}

	t.Run("same method name on two structs does not collide", func(t *testing.T) {
		prog := &ast.Program{Declarations: []ast.Decl{
			makeStruct("A"), makeStruct("B"), makeImpl("A"), makeImpl("B"),
		}}
		a := newTestAnalyzer()
		if !a.AnalyzeProgram(prog) {
			t.Fatalf("expected success, got diagnostics: %v", a.Diagnostics().All())
		}
	})

	t.Run("method is not callable as a bare free function", func(t *testing.T) {
		prog := &ast.Program{Declarations: []ast.Decl{
			makeStruct("A"), makeImpl("A"),
			&ast.FunctionDecl{
				At: pos(2), Name: "f", Pub: true,
				Body: &ast.Block{At: pos(2), Statements: []ast.Statement{
					&ast.ExpressionStmt{At: pos(2), Expr: &ast.CallExpr{
						At:     pos(2),
						Callee: &ast.Identifier{At: pos(2), Name: "new"},
					}},
				}},
			},
		}}
		a := newTestAnalyzer()
		a.AnalyzeProgram(prog)
		found := false
		for _, d := range a.Diagnostics().All() {
			if d.Code == codeUndefinedSymbol {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %s for a bare call to an instance method, got %v", codeUndefinedSymbol, a.Diagnostics().All())
		}
	})
}

// A forward reference from one function to another declared later in the
// same program resolves (two-pass declaration analysis).
func TestMutualForwardReferenceResolves(t *testing.T) {
	prog := &ast.Program{Declarations: []ast.Decl{
		&ast.FunctionDecl{
			At: pos(1), Name: "even", Pub: true,
			Params:     []*ast.Param{{At: pos(1), Name: "n", TypeExpr: named("i32")}},
			ReturnType: named("bool"),
			Body: &ast.Block{At: pos(1), Statements: []ast.Statement{
				&ast.ReturnStmt{At: pos(1), Value: &ast.CallExpr{
					At:     pos(1),
					Callee: &ast.Identifier{At: pos(1), Name: "odd"},
					Args:   []ast.Expression{&ast.Identifier{At: pos(1), Name: "n"}},
				}},
			}},
		},
		&ast.FunctionDecl{
			At: pos(2), Name: "odd", Pub: true,
			Params:     []*ast.Param{{At: pos(2), Name: "n", TypeExpr: named("i32")}},
			ReturnType: named("bool"),
			Body: &ast.Block{At: pos(2), Statements: []ast.Statement{
				&ast.ReturnStmt{At: pos(2), Value: &ast.BoolLiteral{At: pos(2), Value: true}},
			}},
		},
	}}
	a := newTestAnalyzer()
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("expected success, got diagnostics: %v", a.Diagnostics().All())
	}
}
