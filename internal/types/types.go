// Package types implements the Type Registry (C1): construction, interning,
// structural equality, reference counting and compatibility rules for every
// TypeDescriptor category the analyzer works with.
package types

import (
	"fmt"
	"strings"

	"github.com/orbit-lang/orbit/internal/source"
)

// StructField is one ordered field of a Struct TypeDescriptor.
type StructField struct {
	Name string
	Type *TypeDescriptor
	Pos  source.Position
}

// EnumVariant is one ordered variant of an Enum TypeDescriptor. Payload is
// nil for a unit variant (e.g. Option.None).
type EnumVariant struct {
	Name    string
	Payload *TypeDescriptor
}

// TypeDescriptor is the tagged-variant representation of every type the
// analyzer can construct (§3). It is translated from the source language's
// convention of one type per category into a single Go struct with a
// Category tag and category-specific payload fields, the same way the AST
// node set is a closed, switch-dispatched set rather than a class
// hierarchy (spec.md §9 "dynamic dispatch on AST node kind" applies
// equally here).
type TypeDescriptor struct {
	Category Category

	// Primitive
	PrimKind PrimitiveKind

	// Struct
	Name    string // also used by Enum
	Fields  []StructField
	Methods map[string]*TypeDescriptor // method name -> Function descriptor

	// Enum
	TypeParamArity int
	Variants       []EnumVariant
	variantIndex   map[string]int

	// Slice / Array
	Elem      *TypeDescriptor
	ArraySize int

	// Pointer — Pointee is a non-owning (weak) reference; see ref.go.
	Pointee   *TypeDescriptor
	PointerMut bool

	// Function
	Params           []*TypeDescriptor
	Return           *TypeDescriptor
	IsInstanceMethod bool

	// GenericInstance
	Base *TypeDescriptor
	Args []*TypeDescriptor

	// Tuple
	Elems []*TypeDescriptor

	// Result
	Ok  *TypeDescriptor
	Err *TypeDescriptor

	// TaskHandle
	Inner *TypeDescriptor

	refcount refcount
}

// String renders a human-readable type name, used in diagnostics.
func (t *TypeDescriptor) String() string {
	if t == nil {
		return "<nil-type>"
	}
	switch t.Category {
	case Primitive:
		return t.PrimKind.String()
	case Struct:
		return t.Name
	case Enum:
		if len(t.Args) > 0 {
			return fmt.Sprintf("%s<%s>", t.Name, joinTypes(t.Args))
		}
		return t.Name
	case Slice:
		return "[]" + t.Elem.String()
	case Array:
		return fmt.Sprintf("[%s; %d]", t.Elem.String(), t.ArraySize)
	case Pointer:
		if t.PointerMut {
			return "*mut " + t.Pointee.String()
		}
		return "*" + t.Pointee.String()
	case Function:
		return fmt.Sprintf("fn(%s) -> %s", joinTypes(t.Params), t.Return.String())
	case GenericInstance:
		return fmt.Sprintf("%s<%s>", t.Base.String(), joinTypes(t.Args))
	case Tuple:
		return fmt.Sprintf("(%s)", joinTypes(t.Elems))
	case Result:
		return fmt.Sprintf("Result<%s, %s>", t.Ok.String(), t.Err.String())
	case TaskHandle:
		return fmt.Sprintf("TaskHandle<%s>", t.Inner.String())
	case Never:
		return "never"
	case Void:
		return "void"
	default:
		return "<unknown-type>"
	}
}

func joinTypes(ts []*TypeDescriptor) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// Equal implements the structural equality invariant (§3): two types are
// equal iff their category and payload match recursively.
func (t *TypeDescriptor) Equal(o *TypeDescriptor) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	if t.Category != o.Category {
		return false
	}
	switch t.Category {
	case Primitive:
		return t.PrimKind == o.PrimKind
	case Struct:
		if t.Name != o.Name || len(t.Fields) != len(o.Fields) {
			return false
		}
		for i := range t.Fields {
			if t.Fields[i].Name != o.Fields[i].Name || !t.Fields[i].Type.Equal(o.Fields[i].Type) {
				return false
			}
		}
		return true
	case Enum:
		if t.Name != o.Name || len(t.Variants) != len(o.Variants) || len(t.Args) != len(o.Args) {
			return false
		}
		for i := range t.Variants {
			if t.Variants[i].Name != o.Variants[i].Name {
				return false
			}
			if (t.Variants[i].Payload == nil) != (o.Variants[i].Payload == nil) {
				return false
			}
			if t.Variants[i].Payload != nil && !t.Variants[i].Payload.Equal(o.Variants[i].Payload) {
				return false
			}
		}
		for i := range t.Args {
			if !t.Args[i].Equal(o.Args[i]) {
				return false
			}
		}
		return true
	case Slice:
		return t.Elem.Equal(o.Elem)
	case Array:
		return t.ArraySize == o.ArraySize && t.Elem.Equal(o.Elem)
	case Pointer:
		// Mutability is not part of structural identity for equality
		// purposes (spec.md §4.1 only requires identical pointee types);
		// mutability is enforced separately in compatibility checks.
		return t.Pointee.Equal(o.Pointee)
	case Function:
		if len(t.Params) != len(o.Params) || !t.Return.Equal(o.Return) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(o.Params[i]) {
				return false
			}
		}
		return true
	case GenericInstance:
		if !t.Base.Equal(o.Base) || len(t.Args) != len(o.Args) {
			return false
		}
		for i := range t.Args {
			if !t.Args[i].Equal(o.Args[i]) {
				return false
			}
		}
		return true
	case Tuple:
		if len(t.Elems) != len(o.Elems) {
			return false
		}
		for i := range t.Elems {
			if !t.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	case Result:
		return t.Ok.Equal(o.Ok) && t.Err.Equal(o.Err)
	case TaskHandle:
		return t.Inner.Equal(o.Inner)
	case Never, Void:
		return true
	default:
		return false
	}
}

// Hash mirrors Equal: equal types hash to the same key (§4.1).
func (t *TypeDescriptor) Hash() string {
	if t == nil {
		return "nil"
	}
	switch t.Category {
	case Primitive:
		return "P:" + t.PrimKind.String()
	case Struct:
		var sb strings.Builder
		sb.WriteString("S:")
		sb.WriteString(t.Name)
		for _, f := range t.Fields {
			sb.WriteString(";")
			sb.WriteString(f.Name)
			sb.WriteString(":")
			sb.WriteString(f.Type.Hash())
		}
		return sb.String()
	case Enum:
		var sb strings.Builder
		sb.WriteString("E:")
		sb.WriteString(t.Name)
		for _, v := range t.Variants {
			sb.WriteString(";")
			sb.WriteString(v.Name)
			if v.Payload != nil {
				sb.WriteString(":")
				sb.WriteString(v.Payload.Hash())
			}
		}
		for _, a := range t.Args {
			sb.WriteString(",")
			sb.WriteString(a.Hash())
		}
		return sb.String()
	case Slice:
		return "SL:" + t.Elem.Hash()
	case Array:
		return fmt.Sprintf("AR:%s;%d", t.Elem.Hash(), t.ArraySize)
	case Pointer:
		return "PT:" + t.Pointee.Hash()
	case Function:
		var sb strings.Builder
		sb.WriteString("FN:(")
		for _, p := range t.Params {
			sb.WriteString(p.Hash())
			sb.WriteString(",")
		}
		sb.WriteString(")->")
		sb.WriteString(t.Return.Hash())
		return sb.String()
	case GenericInstance:
		var sb strings.Builder
		sb.WriteString("GI:")
		sb.WriteString(t.Base.Hash())
		for _, a := range t.Args {
			sb.WriteString(",")
			sb.WriteString(a.Hash())
		}
		return sb.String()
	case Tuple:
		var sb strings.Builder
		sb.WriteString("TU:")
		for _, e := range t.Elems {
			sb.WriteString(e.Hash())
			sb.WriteString(",")
		}
		return sb.String()
	case Result:
		return "R:" + t.Ok.Hash() + "," + t.Err.Hash()
	case TaskHandle:
		return "TH:" + t.Inner.Hash()
	case Never:
		return "NEVER"
	case Void:
		return "VOID"
	default:
		return "?"
	}
}

// VariantIndex returns the ordinal of a variant by name, or -1.
func (t *TypeDescriptor) VariantIndex(name string) int {
	if t.variantIndex == nil {
		return -1
	}
	if idx, ok := t.variantIndex[name]; ok {
		return idx
	}
	return -1
}
