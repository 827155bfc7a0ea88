package types

import (
	"testing"

	"github.com/orbit-lang/orbit/internal/source"
)

func TestPrimitiveInterning(t *testing.T) {
	r := NewRegistry()
	a := r.Primitive(I32)
	b := r.Primitive(I32)
	if a != b {
		t.Fatal("expected two requests for the same primitive kind to intern to the same descriptor")
	}
	if a.RefCount() != 2 {
		t.Fatalf("expected refcount 2 after two interning requests, got %d", a.RefCount())
	}
}

func TestStructEqualityIsStructural(t *testing.T) {
	r := NewRegistry()
	i32 := r.Primitive(I32)

	build := func() *TypeDescriptor {
		b := r.StructNew("Point", 2)
		b.AddField("x", i32, source.Position{})
		b.AddField("y", i32, source.Position{})
		return r.Finish(b)
	}
	p1 := build()
	p2 := build()
	if !p1.Equal(p2) {
		t.Fatal("expected two structurally identical structs to be Equal")
	}
	if p1.Hash() != p2.Hash() {
		t.Fatal("expected equal structs to hash identically")
	}
}

func TestStructAddFieldRejectsDuplicateName(t *testing.T) {
	r := NewRegistry()
	i32 := r.Primitive(I32)
	b := r.StructNew("Point", 2)
	if !b.AddField("x", i32, source.Position{}) {
		t.Fatal("first AddField should succeed")
	}
	if b.AddField("x", i32, source.Position{}) {
		t.Fatal("duplicate field name should be rejected")
	}
}

func TestEnumVariantIndex(t *testing.T) {
	r := NewRegistry()
	b := r.EnumNew("Option", 1)
	b.AddVariant("None", nil)
	b.AddVariant("Some", r.Primitive(I32))
	opt := r.FinishEnum(b)

	if opt.VariantIndex("None") != 0 {
		t.Fatalf("expected None at index 0, got %d", opt.VariantIndex("None"))
	}
	if opt.VariantIndex("Some") != 1 {
		t.Fatalf("expected Some at index 1, got %d", opt.VariantIndex("Some"))
	}
	if opt.VariantIndex("Nope") != -1 {
		t.Fatal("expected -1 for an unknown variant")
	}
}

func TestEnumAddVariantRejectsDuplicateName(t *testing.T) {
	r := NewRegistry()
	b := r.EnumNew("Option", 1)
	b.AddVariant("None", nil)
	if b.AddVariant("None", nil) {
		t.Fatal("duplicate variant name should be rejected")
	}
}

func TestPointerEqualityIgnoresMutability(t *testing.T) {
	r := NewRegistry()
	i32 := r.Primitive(I32)
	p := r.Pointer(i32, false)
	pMut := r.Pointer(i32, true)
	if !p.Equal(pMut) {
		t.Fatal("expected *i32 and *mut i32 to be structurally Equal (mutability is a compatibility concern, not identity)")
	}
}

func TestCompatibleNumericWidening(t *testing.T) {
	r := NewRegistry()
	i32 := r.Primitive(I32)
	i64 := r.Primitive(I64)
	u32 := r.Primitive(U32)

	if !Compatible(i64, i32) {
		t.Fatal("expected i32 to be compatible where i64 is expected (widening)")
	}
	if Compatible(i32, i64) {
		t.Fatal("expected i64 to be incompatible where i32 is expected (narrowing)")
	}
	if Compatible(u32, i32) {
		t.Fatal("expected i32 and u32 to be incompatible (signedness mismatch)")
	}
}

func TestCompatibleNeverIsBottomType(t *testing.T) {
	r := NewRegistry()
	never := r.NeverType()
	i32 := r.Primitive(I32)
	if !Compatible(i32, never) {
		t.Fatal("expected never to be compatible as a source for any target")
	}
	if !Compatible(never, i32) {
		t.Fatal("expected never to be compatible as a target for any source")
	}
}

func TestCompatiblePointerMutability(t *testing.T) {
	r := NewRegistry()
	i32 := r.Primitive(I32)
	mutPtr := r.Pointer(i32, true)
	constPtr := r.Pointer(i32, false)

	if !Compatible(constPtr, mutPtr) {
		t.Fatal("expected a *mut i32 value to satisfy a *i32 target")
	}
	if Compatible(mutPtr, constPtr) {
		t.Fatal("expected a *i32 value to NOT satisfy a *mut i32 target")
	}
}

func TestCompatibleGenericInstanceRecurses(t *testing.T) {
	r := NewRegistry()
	i32 := r.Primitive(I32)
	i64 := r.Primitive(I64)
	b := r.EnumNew("Box", 1)
	b.AddVariant("Value", nil)
	box := r.FinishEnum(b)

	boxI32 := r.GenericInstance(box, []*TypeDescriptor{i32})
	boxI64 := r.GenericInstance(box, []*TypeDescriptor{i64})
	if !Compatible(boxI64, boxI32) {
		t.Fatal("expected Box<i32> to be compatible where Box<i64> is expected, recursing into the type argument")
	}
}

func TestPromotedBinaryResultArithmetic(t *testing.T) {
	r := NewRegistry()
	i32 := r.Primitive(I32)
	f64 := r.Primitive(F64)

	result, ok := PromotedBinaryResult(r, OpAdd, i32, f64)
	if !ok || result.PrimKind != F64 {
		t.Fatalf("expected i32+f64 to promote to f64, got %v, ok=%v", result, ok)
	}

	_, ok = PromotedBinaryResult(r, OpAdd, i32, r.Primitive(Bool))
	if ok {
		t.Fatal("expected i32+bool to be rejected")
	}
}

func TestPromotedBinaryResultComparisonIsBool(t *testing.T) {
	r := NewRegistry()
	i32 := r.Primitive(I32)
	result, ok := PromotedBinaryResult(r, OpLt, i32, i32)
	if !ok || result.PrimKind != Bool {
		t.Fatalf("expected comparison to yield bool, got %v, ok=%v", result, ok)
	}
}

func TestStringRendering(t *testing.T) {
	r := NewRegistry()
	i32 := r.Primitive(I32)
	str := r.Primitive(StringKind)
	res := r.Result(i32, str)
	if got, want := res.String(), "Result<i32, string>"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
