package types

import "github.com/orbit-lang/orbit/internal/source"

// Registry constructs, interns and retires TypeDescriptor values for one
// analyzer instance (§3 lifecycles, §9 "global state" — scoped to the
// analyzer, never a process-wide singleton).
type Registry struct {
	interned map[string]*TypeDescriptor
	byName   map[string]*TypeDescriptor // fully-qualified struct/enum name -> descriptor, for pointer weak-lookup (§9)
}

// NewRegistry creates an empty registry seeded with nothing; builtins are
// installed by the analyzer (spec.md §2 control flow).
func NewRegistry() *Registry {
	return &Registry{
		interned: make(map[string]*TypeDescriptor),
		byName:   make(map[string]*TypeDescriptor),
	}
}

func (r *Registry) intern(td *TypeDescriptor) *TypeDescriptor {
	key := td.Hash()
	if existing, ok := r.interned[key]; ok {
		return existing.Retain()
	}
	td.refcount.n.Store(1)
	r.interned[key] = td
	return td
}

// Primitive returns the interned descriptor for a scalar kind.
func (r *Registry) Primitive(kind PrimitiveKind) *TypeDescriptor {
	return r.intern(&TypeDescriptor{Category: Primitive, PrimKind: kind})
}

// NeverType and VoidType are the two zero-payload singleton categories.
func (r *Registry) NeverType() *TypeDescriptor { return r.intern(&TypeDescriptor{Category: Never}) }
func (r *Registry) VoidType() *TypeDescriptor  { return r.intern(&TypeDescriptor{Category: Void}) }

// StructBuilder is returned by StructNew so fields can be appended one at a
// time (AddField) before the struct type is registered by name,
// mirroring a parser that discovers fields incrementally.
type StructBuilder struct {
	td *TypeDescriptor
}

// StructNew begins constructing a struct type with a given field capacity
// hint. The descriptor is not yet interned/looked-up by name until Finish.
func (r *Registry) StructNew(name string, fieldCapacity int) *StructBuilder {
	return &StructBuilder{td: &TypeDescriptor{
		Category: Struct,
		Name:     name,
		Fields:   make([]StructField, 0, fieldCapacity),
		Methods:  make(map[string]*TypeDescriptor),
	}}
}

// AddField appends a field; fails (returns false) if the name already
// exists in this struct (§3 invariant 3).
func (b *StructBuilder) AddField(name string, typ *TypeDescriptor, decl source.Position) bool {
	for _, f := range b.td.Fields {
		if f.Name == name {
			return false
		}
	}
	b.td.Fields = append(b.td.Fields, StructField{Name: name, Type: typ, Pos: decl})
	return true
}

// AddMethod registers a method in the struct's method table.
func (b *StructBuilder) AddMethod(name string, fn *TypeDescriptor) {
	b.td.Methods[name] = fn
}

// Finish interns the struct descriptor and registers it by name for
// pointer weak-lookup (§9 "cyclic type graphs via pointers and generics").
func (r *Registry) Finish(b *StructBuilder) *TypeDescriptor {
	td := r.intern(b.td)
	r.byName[td.Name] = td
	return td
}

// EnumBuilder mirrors StructBuilder for enum types.
type EnumBuilder struct {
	td *TypeDescriptor
}

// EnumNew begins constructing an enum type with the given generic arity.
func (r *Registry) EnumNew(name string, typeParamArity int) *EnumBuilder {
	return &EnumBuilder{td: &TypeDescriptor{
		Category:       Enum,
		Name:           name,
		TypeParamArity: typeParamArity,
		variantIndex:   make(map[string]int),
	}}
}

// AddVariant appends a variant; fails if the name already exists (§3
// invariant 3). payload may be nil for a unit variant.
func (b *EnumBuilder) AddVariant(name string, payload *TypeDescriptor) bool {
	if _, exists := b.td.variantIndex[name]; exists {
		return false
	}
	b.td.variantIndex[name] = len(b.td.Variants)
	b.td.Variants = append(b.td.Variants, EnumVariant{Name: name, Payload: payload})
	return true
}

// FinishEnum interns the enum descriptor and registers it by name.
func (r *Registry) FinishEnum(b *EnumBuilder) *TypeDescriptor {
	td := r.intern(b.td)
	r.byName[td.Name] = td
	return td
}

// Slice interns `[]elem`. elem is retained as an owned edge.
func (r *Registry) Slice(elem *TypeDescriptor) *TypeDescriptor {
	return r.intern(&TypeDescriptor{Category: Slice, Elem: elem.Retain()})
}

// Array interns `[elem; size]`.
func (r *Registry) Array(elem *TypeDescriptor, size int) *TypeDescriptor {
	return r.intern(&TypeDescriptor{Category: Array, Elem: elem.Retain(), ArraySize: size})
}

// Pointer interns `*pointee` (or `*mut pointee`). The pointee reference is
// weak (§3 invariant 2): Pointer does not retain it, so a struct holding a
// pointer to itself never forms a retain cycle. Lookup of the pointee by
// name (when it is a forward-declared struct/enum) goes through ByName.
// *T and *mut T are interned as separate descriptors, although Equal and
// Hash ignore mutability.
func (r *Registry) Pointer(pointee *TypeDescriptor, mutable bool) *TypeDescriptor {
	td := &TypeDescriptor{Category: Pointer, Pointee: pointee, PointerMut: mutable}
	key := td.Hash()
	if mutable {
		key += ";mut"
	}
	if existing, ok := r.interned[key]; ok {
		return existing.Retain()
	}
	td.refcount.n.Store(1)
	r.interned[key] = td
	return td
}

// ByName resolves a previously-registered struct/enum by its fully
// qualified name, used to complete weak pointer references (§9).
func (r *Registry) ByName(name string) (*TypeDescriptor, bool) {
	td, ok := r.byName[name]
	return td, ok
}

// Function interns a function type. returnType may be the Void type for
// functions with no explicit return.
func (r *Registry) Function(params []*TypeDescriptor, returnType *TypeDescriptor, isInstanceMethod bool) *TypeDescriptor {
	ps := make([]*TypeDescriptor, len(params))
	for i, p := range params {
		ps[i] = p.Retain()
	}
	return r.intern(&TypeDescriptor{
		Category:         Function,
		Params:           ps,
		Return:           returnType.Retain(),
		IsInstanceMethod: isInstanceMethod,
	})
}

// GenericInstance interns base<args...>.
func (r *Registry) GenericInstance(base *TypeDescriptor, args []*TypeDescriptor) *TypeDescriptor {
	as := make([]*TypeDescriptor, len(args))
	for i, a := range args {
		as[i] = a.Retain()
	}
	return r.intern(&TypeDescriptor{Category: GenericInstance, Base: base.Retain(), Args: as})
}

// Tuple interns an ordered tuple type; spec.md requires at least two
// elements, enforced by the caller (the analyzer rejects single-element
// tuple literals before reaching here).
func (r *Registry) Tuple(elems []*TypeDescriptor) *TypeDescriptor {
	es := make([]*TypeDescriptor, len(elems))
	for i, e := range elems {
		es[i] = e.Retain()
	}
	return r.intern(&TypeDescriptor{Category: Tuple, Elems: es})
}

// Result interns Result<ok, err>.
func (r *Registry) Result(ok, err *TypeDescriptor) *TypeDescriptor {
	return r.intern(&TypeDescriptor{Category: Result, Ok: ok.Retain(), Err: err.Retain()})
}

// TaskHandle interns TaskHandle<inner>. Per §3 invariant 4 this is the
// only type category constructible only through the analyzer's
// spawn_with_handle handling, enforced by the analyzer rather than here.
func (r *Registry) TaskHandle(inner *TypeDescriptor) *TypeDescriptor {
	return r.intern(&TypeDescriptor{Category: TaskHandle, Inner: inner.Retain()})
}
