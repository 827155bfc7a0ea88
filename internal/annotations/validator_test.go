package annotations

import (
	"testing"

	"github.com/orbit-lang/orbit/internal/ast"
	"github.com/orbit-lang/orbit/internal/diagnostics"
	"github.com/orbit-lang/orbit/internal/source"
)

func newValidator() (*Validator, *diagnostics.Engine) {
	engine := diagnostics.NewEngine(10)
	return NewValidator(NewRegistry(), engine), engine
}

func TestValidateUnknownAnnotation(t *testing.T) {
	v, engine := newValidator()
	anns := []*ast.Annotation{{Name: "not_registered", At: source.Position{Line: 1}}}
	result := v.Validate(anns, ContextFunction)
	if result.OK {
		t.Fatal("expected failure for unknown annotation")
	}
	if engine.ErrorCount() != 1 {
		t.Fatalf("expected 1 error, got %d", engine.ErrorCount())
	}
}

func TestValidateWrongContext(t *testing.T) {
	v, engine := newValidator()
	anns := []*ast.Annotation{{Name: "ffi_transfer", Params: []ast.AnnotationParam{{Kind: ast.ParamIdent, Ident: "owned"}}, At: source.Position{Line: 1}}}
	result := v.Validate(anns, ContextStatement)
	if result.OK {
		t.Fatal("expected failure: ffi_transfer is not valid on a statement")
	}
	if engine.ErrorCount() == 0 {
		t.Fatal("expected at least one error")
	}
}

func TestValidateConflict(t *testing.T) {
	v, engine := newValidator()
	anns := []*ast.Annotation{
		{Name: "inline_hint", At: source.Position{Line: 1}},
		{Name: "cold", At: source.Position{Line: 1}},
	}
	result := v.Validate(anns, ContextFunction)
	if result.OK {
		t.Fatal("expected conflict between inline_hint and cold")
	}
	if engine.ErrorCount() == 0 {
		t.Fatal("expected at least one error")
	}
}

func TestValidateDuplicateForbidden(t *testing.T) {
	v, _ := newValidator()
	anns := []*ast.Annotation{
		{Name: "inline_hint", At: source.Position{Line: 1}},
		{Name: "inline_hint", At: source.Position{Line: 2}},
	}
	result := v.Validate(anns, ContextFunction)
	if result.OK {
		t.Fatal("expected duplicate inline_hint to fail")
	}
}

func TestValidateDuplicateMultiValuedAllowed(t *testing.T) {
	v, _ := newValidator()
	anns := []*ast.Annotation{
		{Name: "doc", Params: []ast.AnnotationParam{{Kind: ast.ParamString, String: "first"}}, At: source.Position{Line: 1}},
		{Name: "doc", Params: []ast.AnnotationParam{{Kind: ast.ParamString, String: "second"}}, At: source.Position{Line: 2}},
	}
	result := v.Validate(anns, ContextFunction)
	if !result.OK {
		t.Fatal("expected multi-valued doc annotation to allow duplicates")
	}
}

func TestValidateMissingRequiredParam(t *testing.T) {
	v, _ := newValidator()
	anns := []*ast.Annotation{{Name: "ffi_transfer", At: source.Position{Line: 1}}}
	result := v.Validate(anns, ContextParameter)
	if result.OK {
		t.Fatal("expected missing required parameter to fail")
	}
}

func TestValidateConcurrencySetsFlag(t *testing.T) {
	v, _ := newValidator()
	anns := []*ast.Annotation{{Name: "concurrent_safe", At: source.Position{Line: 1}}}
	result := v.Validate(anns, ContextFunction)
	if !result.OK {
		t.Fatal("expected concurrent_safe alone to validate cleanly")
	}
	if !result.NonDeterministicAllowed {
		t.Fatal("expected concurrency annotation to set NonDeterministicAllowed")
	}
}

func TestValidateSuccess(t *testing.T) {
	v, engine := newValidator()
	anns := []*ast.Annotation{{Name: "deprecated", Params: []ast.AnnotationParam{{Kind: ast.ParamString, String: "use g() instead"}}, At: source.Position{Line: 1}}}
	result := v.Validate(anns, ContextFunction)
	if !result.OK {
		t.Fatal("expected deprecated annotation to validate cleanly")
	}
	if engine.ErrorCount() != 0 {
		t.Fatalf("expected no errors, got %d", engine.ErrorCount())
	}
}
