package types

import "sync/atomic"

// refcount is an atomic reference counter embedded in every TypeDescriptor.
// Only retain/release touch it (§3 invariants, §5 concurrency model):
// fetch-add on retain, fetch-sub with a zero-check on release.
type refcount struct {
	n atomic.Int64
}

// Retain increments the descriptor's reference count and returns the same
// descriptor, mirroring the source convention that every returned type is
// a new reference the caller must release.
func (t *TypeDescriptor) Retain() *TypeDescriptor {
	if t == nil {
		return nil
	}
	t.refcount.n.Add(1)
	return t
}

// RefCount reports the current reference count (test/debug use).
func (t *TypeDescriptor) RefCount() int64 {
	if t == nil {
		return 0
	}
	return t.refcount.n.Load()
}

// Release decrements the descriptor's reference count. When it drops to
// zero the payload's owned (non-pointer) edges are released recursively —
// pointer payloads hold a non-owning reference (§3 invariant 2, §9 "cyclic
// type graphs") and are never released transitively here.
func (t *TypeDescriptor) Release() {
	if t == nil {
		return
	}
	if t.refcount.n.Add(-1) > 0 {
		return
	}
	switch t.Category {
	case Struct:
		for _, f := range t.Fields {
			f.Type.Release()
		}
	case Enum:
		for _, v := range t.Variants {
			if v.Payload != nil {
				v.Payload.Release()
			}
		}
		for _, a := range t.Args {
			a.Release()
		}
	case Slice, Array:
		t.Elem.Release()
	case Pointer:
		// weak reference: do not release Pointee.
	case Function:
		for _, p := range t.Params {
			p.Release()
		}
		t.Return.Release()
	case GenericInstance:
		t.Base.Release()
		for _, a := range t.Args {
			a.Release()
		}
	case Tuple:
		for _, e := range t.Elems {
			e.Release()
		}
	case Result:
		t.Ok.Release()
		t.Err.Release()
	case TaskHandle:
		t.Inner.Release()
	}
}

// Ref is the owning handle type (spec.md §9 "reference counting of type
// descriptors"): its zero value holds no type, and Release must be called
// exactly once per Ref obtained from the registry. A Borrow is just the
// bare *TypeDescriptor, used read-only inside the registry's own
// operations without affecting the count.
type Ref struct {
	td *TypeDescriptor
}

// NewRef wraps an already-retained descriptor as an owning handle.
func NewRef(td *TypeDescriptor) Ref { return Ref{td: td} }

// Get borrows the descriptor without affecting its reference count.
func (r Ref) Get() *TypeDescriptor { return r.td }

// Clone retains the descriptor and returns a second owning handle to it.
func (r Ref) Clone() Ref {
	if r.td == nil {
		return Ref{}
	}
	r.td.Retain()
	return Ref{td: r.td}
}

// Release drops this handle's ownership. Calling it twice on handles
// obtained from the same Clone lineage double-releases, which is the
// caller's bug to avoid — exactly the contract the source convention
// ("every return site returns a new reference the caller releases")
// requires.
func (r Ref) Release() {
	r.td.Release()
}
