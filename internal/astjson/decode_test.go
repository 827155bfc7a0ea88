package astjson

import (
	"testing"

	"github.com/orbit-lang/orbit/internal/ast"
)

func TestDecodeSimpleFunction(t *testing.T) {
	input := []byte(`{
		"declarations": [
			{
				"kind": "function",
				"name": "add",
				"pub": true,
				"params": [
					{"name": "a", "type": {"kind": "named", "name": "i32"}},
					{"name": "b", "type": {"kind": "named", "name": "i32"}}
				],
				"return_type": {"kind": "named", "name": "i32"},
				"body": {
					"statements": [
						{
							"kind": "return",
							"value": {
								"kind": "binary",
								"op": "+",
								"left": {"kind": "identifier", "name": "a"},
								"right": {"kind": "identifier", "name": "b"}
							}
						}
					]
				}
			}
		]
	}`)

	prog, err := Decode(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(prog.Declarations))
	}
	fn, ok := prog.Declarations[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", prog.Declarations[0])
	}
	if fn.Name != "add" || !fn.Pub || len(fn.Params) != 2 {
		t.Fatalf("unexpected function decl: %+v", fn)
	}
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt, got %T", fn.Body.Statements[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", ret.Value)
	}
	if bin.OpLit != "+" {
		t.Fatalf("expected op literal %q, got %q", "+", bin.OpLit)
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}

func TestDecodeUnknownDeclKind(t *testing.T) {
	if _, err := Decode([]byte(`{"declarations":[{"kind":"bogus"}]}`)); err == nil {
		t.Fatal("expected an error for an unknown declaration kind")
	}
}
