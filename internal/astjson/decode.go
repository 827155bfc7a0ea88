// Package astjson decodes the JSON AST format the orbitsema CLI accepts
// on its input (SPEC_FULL.md §6). This module has no
// parser of its own, so the CLI is handed an already-parsed tree rather
// than source text; decoding follows the same gjson-driven style as
// internal/diagnostics/json.go's FromJSON.
package astjson

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/orbit-lang/orbit/internal/ast"
	"github.com/orbit-lang/orbit/internal/source"
	"github.com/orbit-lang/orbit/internal/types"
)

// Decode parses a JSON-encoded program. The top level is an object with
// "imports" and "declarations" arrays.
func Decode(data []byte) (*ast.Program, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("input is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	prog := &ast.Program{}
	for _, v := range root.Get("imports").Array() {
		prog.Imports = append(prog.Imports, decodeImport(v))
	}
	for _, v := range root.Get("declarations").Array() {
		d, err := decodeDecl(v)
		if err != nil {
			return nil, err
		}
		prog.Declarations = append(prog.Declarations, d)
	}
	return prog, nil
}

func decodePos(v gjson.Result) source.Position {
	return source.Position{
		Line:    int(v.Get("line").Int()),
		Column:  int(v.Get("column").Int()),
		File:    v.Get("file").String(),
		Snippet: v.Get("snippet").String(),
	}
}

func decodeImport(v gjson.Result) *ast.Import {
	return &ast.Import{
		At:    decodePos(v),
		Path:  v.Get("path").String(),
		Alias: v.Get("alias").String(),
	}
}

func decodeAnnotations(v gjson.Result) []*ast.Annotation {
	if !v.Exists() {
		return nil
	}
	var out []*ast.Annotation
	for _, a := range v.Array() {
		ann := &ast.Annotation{Name: a.Get("name").String(), At: decodePos(a)}
		for _, p := range a.Get("params").Array() {
			param := ast.AnnotationParam{Name: p.Get("name").String()}
			switch p.Get("kind").String() {
			case "ident":
				param.Kind = ast.ParamIdent
				param.Ident = p.Get("value").String()
			case "int":
				param.Kind = ast.ParamInt
				param.Int = p.Get("value").Int()
			case "bool":
				param.Kind = ast.ParamBool
				param.Bool = p.Get("value").Bool()
			case "float":
				param.Kind = ast.ParamFloat
				param.Float = p.Get("value").Float()
			default:
				param.Kind = ast.ParamString
				param.String = p.Get("value").String()
			}
			ann.Params = append(ann.Params, param)
		}
		out = append(out, ann)
	}
	return out
}

func decodeDecl(v gjson.Result) (ast.Decl, error) {
	switch k := v.Get("kind").String(); k {
	case "function":
		return decodeFunctionDecl(v), nil
	case "struct":
		return decodeStructDecl(v), nil
	case "enum":
		return decodeEnumDecl(v), nil
	case "impl":
		return decodeImplBlock(v), nil
	case "extern":
		return decodeExternDecl(v), nil
	case "const":
		return decodeConstDecl(v), nil
	default:
		return nil, fmt.Errorf("unknown declaration kind %q", k)
	}
}

func decodeParams(v gjson.Result) []*ast.Param {
	var out []*ast.Param
	for _, p := range v.Array() {
		out = append(out, &ast.Param{
			At:       decodePos(p),
			Name:     p.Get("name").String(),
			TypeExpr: decodeTypeExpr(p.Get("type")),
		})
	}
	return out
}

func decodeFunctionDecl(v gjson.Result) *ast.FunctionDecl {
	d := &ast.FunctionDecl{
		Annotations: ast.Annotations{Tags: decodeAnnotations(v.Get("annotations"))},
		At:          decodePos(v),
		Name:        v.Get("name").String(),
		Pub:         v.Get("pub").Bool(),
		Params:      decodeParams(v.Get("params")),
		IsExtern:    v.Get("is_extern").Bool(),
	}
	if r := v.Get("return_type"); r.Exists() {
		d.ReturnType = decodeTypeExpr(r)
	}
	if b := v.Get("body"); b.Exists() {
		d.Body = decodeBlock(b)
	}
	return d
}

func decodeStructDecl(v gjson.Result) *ast.StructDecl {
	d := &ast.StructDecl{
		Annotations: ast.Annotations{Tags: decodeAnnotations(v.Get("annotations"))},
		At:          decodePos(v),
		Name:        v.Get("name").String(),
		Pub:         v.Get("pub").Bool(),
	}
	for _, f := range v.Get("fields").Array() {
		d.Fields = append(d.Fields, &ast.FieldDecl{
			At:       decodePos(f),
			Name:     f.Get("name").String(),
			TypeExpr: decodeTypeExpr(f.Get("type")),
		})
	}
	return d
}

func decodeEnumDecl(v gjson.Result) *ast.EnumDecl {
	d := &ast.EnumDecl{
		Annotations: ast.Annotations{Tags: decodeAnnotations(v.Get("annotations"))},
		At:          decodePos(v),
		Name:        v.Get("name").String(),
		Pub:         v.Get("pub").Bool(),
	}
	for _, tp := range v.Get("type_params").Array() {
		d.TypeParams = append(d.TypeParams, tp.String())
	}
	for _, vv := range v.Get("variants").Array() {
		variant := &ast.VariantDecl{At: decodePos(vv), Name: vv.Get("name").String()}
		if p := vv.Get("payload"); p.Exists() {
			variant.Payload = decodeTypeExpr(p)
		}
		d.Variants = append(d.Variants, variant)
	}
	return d
}

func decodeImplBlock(v gjson.Result) *ast.ImplBlock {
	d := &ast.ImplBlock{At: decodePos(v), TypeName: v.Get("type_name").String()}
	for _, m := range v.Get("methods").Array() {
		d.Methods = append(d.Methods, decodeFunctionDecl(m))
	}
	return d
}

func decodeExternDecl(v gjson.Result) *ast.ExternDecl {
	d := &ast.ExternDecl{
		Annotations: ast.Annotations{Tags: decodeAnnotations(v.Get("annotations"))},
		At:          decodePos(v),
	}
	for _, f := range v.Get("functions").Array() {
		fn := decodeFunctionDecl(f)
		fn.IsExtern = true
		d.Functions = append(d.Functions, fn)
	}
	return d
}

func decodeConstDecl(v gjson.Result) *ast.ConstDecl {
	d := &ast.ConstDecl{
		Annotations: ast.Annotations{Tags: decodeAnnotations(v.Get("annotations"))},
		At:          decodePos(v),
		Name:        v.Get("name").String(),
		Pub:         v.Get("pub").Bool(),
		Value:       decodeExpr(v.Get("value")),
	}
	if t := v.Get("type"); t.Exists() {
		d.TypeExpr = decodeTypeExpr(t)
	}
	return d
}

func decodeTypeExpr(v gjson.Result) ast.TypeExpression {
	switch v.Get("kind").String() {
	case "pointer":
		return &ast.PointerTypeExpr{At: decodePos(v), Pointee: decodeTypeExpr(v.Get("pointee")), Mutable: v.Get("mutable").Bool()}
	case "slice":
		return &ast.SliceTypeExpr{At: decodePos(v), Elem: decodeTypeExpr(v.Get("elem"))}
	case "array":
		return &ast.ArrayTypeExpr{At: decodePos(v), Elem: decodeTypeExpr(v.Get("elem")), Size: decodeExpr(v.Get("size"))}
	case "tuple":
		te := &ast.TupleTypeExpr{At: decodePos(v)}
		for _, e := range v.Get("elems").Array() {
			te.Elems = append(te.Elems, decodeTypeExpr(e))
		}
		return te
	case "generic":
		ge := &ast.GenericTypeExpr{At: decodePos(v), Name: v.Get("name").String()}
		for _, a := range v.Get("args").Array() {
			ge.Args = append(ge.Args, decodeTypeExpr(a))
		}
		return ge
	case "function":
		fe := &ast.FunctionTypeExpr{At: decodePos(v)}
		for _, p := range v.Get("params").Array() {
			fe.Params = append(fe.Params, decodeTypeExpr(p))
		}
		if r := v.Get("return"); r.Exists() {
			fe.Return = decodeTypeExpr(r)
		}
		return fe
	default:
		return &ast.NamedTypeExpr{At: decodePos(v), Name: v.Get("name").String()}
	}
}

func decodeBlock(v gjson.Result) *ast.Block {
	b := &ast.Block{At: decodePos(v)}
	for _, s := range v.Get("statements").Array() {
		b.Statements = append(b.Statements, decodeStatement(s))
	}
	return b
}

func decodeStatement(v gjson.Result) ast.Statement {
	at := decodePos(v)
	switch v.Get("kind").String() {
	case "let":
		s := &ast.LetStmt{
			Annotations: ast.Annotations{Tags: decodeAnnotations(v.Get("annotations"))},
			At:          at,
			Name:        v.Get("name").String(),
			Mut:         v.Get("mut").Bool(),
		}
		if t := v.Get("type"); t.Exists() {
			s.TypeExpr = decodeTypeExpr(t)
		}
		if val := v.Get("value"); val.Exists() {
			s.Value = decodeExpr(val)
		}
		return s
	case "expr":
		return &ast.ExpressionStmt{At: at, Expr: decodeExpr(v.Get("expr"))}
	case "return":
		s := &ast.ReturnStmt{At: at}
		if val := v.Get("value"); val.Exists() {
			s.Value = decodeExpr(val)
		}
		return s
	case "if":
		s := &ast.IfStmt{At: at, Condition: decodeExpr(v.Get("condition")), Then: decodeBlock(v.Get("then"))}
		if e := v.Get("else"); e.Exists() {
			s.Else = decodeStatement(e)
		}
		return s
	case "if_let":
		s := &ast.IfLetStmt{At: at, Pattern: decodePattern(v.Get("pattern")), Value: decodeExpr(v.Get("value")), Then: decodeBlock(v.Get("then"))}
		if e := v.Get("else"); e.Exists() {
			s.Else = decodeStatement(e)
		}
		return s
	case "while":
		return &ast.WhileStmt{At: at, Condition: decodeExpr(v.Get("condition")), Body: decodeBlock(v.Get("body"))}
	case "for":
		return &ast.ForStmt{At: at, Binding: v.Get("binding").String(), Iterable: decodeExpr(v.Get("iterable")), Body: decodeBlock(v.Get("body"))}
	case "break":
		return &ast.BreakStmt{At: at}
	case "continue":
		return &ast.ContinueStmt{At: at}
	case "unsafe":
		return &ast.UnsafeStmt{At: at, Body: decodeBlock(v.Get("body"))}
	case "block":
		return decodeBlock(v)
	default:
		return &ast.ExpressionStmt{At: at, Expr: &ast.UnitLiteral{At: at}}
	}
}

var binaryOps = map[string]types.BinaryOp{
	"+": types.OpAdd, "-": types.OpSub, "*": types.OpMul, "/": types.OpDiv, "%": types.OpMod,
	"==": types.OpEq, "!=": types.OpNeq, "<": types.OpLt, "<=": types.OpLte, ">": types.OpGt, ">=": types.OpGte,
	"&&": types.OpAnd, "||": types.OpOr,
	"&": types.OpBitAnd, "|": types.OpBitOr, "^": types.OpBitXor, "<<": types.OpShl, ">>": types.OpShr,
}

var unaryOps = map[string]ast.UnaryOp{
	"-": ast.UnaryNeg, "!": ast.UnaryNot, "~": ast.UnaryBitNot,
	"*": ast.UnaryDeref, "&": ast.UnaryAddrOf, "sizeof": ast.UnarySizeof,
}

func decodeExpr(v gjson.Result) ast.Expression {
	at := decodePos(v)
	switch v.Get("kind").String() {
	case "int":
		return &ast.IntegerLiteral{At: at, Value: v.Get("value").Int()}
	case "float":
		return &ast.FloatLiteral{At: at, Value: v.Get("value").Float()}
	case "string":
		return &ast.StringLiteral{At: at, Value: v.Get("value").String()}
	case "char":
		runes := []rune(v.Get("value").String())
		var r rune
		if len(runes) > 0 {
			r = runes[0]
		}
		return &ast.CharLiteral{At: at, Value: r}
	case "bool":
		return &ast.BoolLiteral{At: at, Value: v.Get("value").Bool()}
	case "unit":
		return &ast.UnitLiteral{At: at}
	case "identifier":
		return &ast.Identifier{At: at, Name: v.Get("name").String()}
	case "binary":
		lit := v.Get("op").String()
		return &ast.BinaryExpr{At: at, Op: binaryOps[lit], OpLit: lit, Left: decodeExpr(v.Get("left")), Right: decodeExpr(v.Get("right"))}
	case "unary":
		op := v.Get("op").String()
		u := &ast.UnaryExpr{At: at, Op: unaryOps[op]}
		if op == "sizeof" {
			u.SizeofType = decodeTypeExpr(v.Get("type"))
		} else {
			u.Operand = decodeExpr(v.Get("operand"))
		}
		return u
	case "call":
		c := &ast.CallExpr{At: at, Callee: decodeExpr(v.Get("callee"))}
		for _, a := range v.Get("args").Array() {
			c.Args = append(c.Args, decodeExpr(a))
		}
		return c
	case "assoc_call":
		c := &ast.AssociatedFuncCallExpr{At: at, TypeName: v.Get("type_name").String(), FuncName: v.Get("func_name").String()}
		for _, a := range v.Get("args").Array() {
			c.Args = append(c.Args, decodeExpr(a))
		}
		return c
	case "assignment":
		return &ast.AssignmentExpr{At: at, Target: decodeExpr(v.Get("target")), Value: decodeExpr(v.Get("value"))}
	case "enum_variant":
		return &ast.EnumVariantExpr{At: at, EnumName: v.Get("enum_name").String(), Variant: v.Get("variant").String()}
	case "cast":
		return &ast.CastExpr{At: at, Value: decodeExpr(v.Get("value")), TargetType: decodeTypeExpr(v.Get("target_type"))}
	case "field_access":
		return &ast.FieldAccessExpr{At: at, Base: decodeExpr(v.Get("base")), Field: v.Get("field").String()}
	case "index_access":
		return &ast.IndexAccessExpr{At: at, Base: decodeExpr(v.Get("base")), Index: decodeExpr(v.Get("index"))}
	case "slice":
		s := &ast.SliceExpr{At: at, Base: decodeExpr(v.Get("base"))}
		if st := v.Get("start"); st.Exists() {
			s.Start = decodeExpr(st)
		}
		if e := v.Get("end"); e.Exists() {
			s.End = decodeExpr(e)
		}
		return s
	case "tuple_literal":
		t := &ast.TupleLiteral{At: at}
		for _, e := range v.Get("elements").Array() {
			t.Elements = append(t.Elements, decodeExpr(e))
		}
		return t
	case "array_literal":
		arr := &ast.ArrayLiteral{At: at, IsRepeat: v.Get("is_repeat").Bool()}
		if arr.IsRepeat {
			arr.RepeatValue = decodeExpr(v.Get("repeat_value"))
			arr.RepeatCount = decodeExpr(v.Get("repeat_count"))
		} else {
			for _, e := range v.Get("elements").Array() {
				arr.Elements = append(arr.Elements, decodeExpr(e))
			}
		}
		return arr
	case "struct_literal":
		sl := &ast.StructLiteral{At: at, TypeName: v.Get("type_name").String()}
		for _, f := range v.Get("fields").Array() {
			sl.Fields = append(sl.Fields, ast.StructLiteralField{At: decodePos(f), Name: f.Get("name").String(), Value: decodeExpr(f.Get("value"))})
		}
		return sl
	case "match":
		m := &ast.MatchExpr{At: at, Scrutinee: decodeExpr(v.Get("scrutinee"))}
		for _, a := range v.Get("arms").Array() {
			arm := &ast.MatchArmStmt{At: decodePos(a), Pattern: decodePattern(a.Get("pattern"))}
			if b := a.Get("body"); b.Exists() {
				arm.Body = decodeBlock(b)
			}
			if e := a.Get("expr"); e.Exists() {
				arm.Expr = decodeExpr(e)
			}
			m.Arms = append(m.Arms, arm)
		}
		return m
	case "spawn":
		return &ast.SpawnExpr{At: at, Call: decodeExpr(v.Get("call"))}
	case "spawn_with_handle":
		return &ast.SpawnWithHandleExpr{At: at, Call: decodeExpr(v.Get("call"))}
	case "await":
		return &ast.AwaitExpr{At: at, Value: decodeExpr(v.Get("value"))}
	default:
		return &ast.UnitLiteral{At: at}
	}
}

func decodePattern(v gjson.Result) ast.Pattern {
	at := decodePos(v)
	switch v.Get("kind").String() {
	case "wildcard":
		return &ast.WildcardPattern{At: at}
	case "binding":
		return &ast.BindingPattern{At: at, Name: v.Get("name").String()}
	case "literal":
		return &ast.LiteralPattern{At: at, Literal: decodeExpr(v.Get("literal"))}
	case "enum_variant":
		p := &ast.EnumVariantPattern{At: at, EnumName: v.Get("enum_name").String(), Variant: v.Get("variant").String()}
		for _, b := range v.Get("bindings").Array() {
			p.Bindings = append(p.Bindings, decodePattern(b))
		}
		return p
	case "tuple":
		p := &ast.TuplePattern{At: at}
		for _, e := range v.Get("elements").Array() {
			p.Elements = append(p.Elements, decodePattern(e))
		}
		return p
	default:
		return &ast.WildcardPattern{At: at}
	}
}
