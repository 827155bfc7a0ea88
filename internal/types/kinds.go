package types

// Category is the variant tag of a TypeDescriptor (§3 TypeDescriptor).
//
// The source language's own design notes list "void" and "never" both as
// primitive kind names and as top-level categories; this implementation
// resolves that overlap by giving Never and Void their own zero-payload
// categories and dropping them from PrimitiveKind, so every type has
// exactly one canonical representation (required for structural equality,
// §3 invariant 3 and §8 property 1). See DESIGN.md.
type Category int

const (
	Primitive Category = iota
	Struct
	Enum
	Slice
	Array
	Pointer
	Function
	GenericInstance
	Tuple
	Result
	TaskHandle
	Never
	Void
)

func (c Category) String() string {
	switch c {
	case Primitive:
		return "Primitive"
	case Struct:
		return "Struct"
	case Enum:
		return "Enum"
	case Slice:
		return "Slice"
	case Array:
		return "Array"
	case Pointer:
		return "Pointer"
	case Function:
		return "Function"
	case GenericInstance:
		return "GenericInstance"
	case Tuple:
		return "Tuple"
	case Result:
		return "Result"
	case TaskHandle:
		return "TaskHandle"
	case Never:
		return "Never"
	case Void:
		return "Void"
	default:
		return "Unknown"
	}
}

// PrimitiveKind enumerates the scalar kinds a Primitive TypeDescriptor
// carries (§3: "primitives carry a kind tag").
type PrimitiveKind int

const (
	I8 PrimitiveKind = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	USize
	F32
	F64
	Bool
	Char
	StringKind
)

var primitiveNames = map[PrimitiveKind]string{
	I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64", USize: "usize",
	F32: "f32", F64: "f64", Bool: "bool", Char: "char", StringKind: "string",
}

func (k PrimitiveKind) String() string {
	if n, ok := primitiveNames[k]; ok {
		return n
	}
	return "<unknown-primitive>"
}

// IsInteger reports whether the kind is a signed or unsigned integer kind.
func (k PrimitiveKind) IsInteger() bool {
	switch k {
	case I8, I16, I32, I64, U8, U16, U32, U64, USize:
		return true
	default:
		return false
	}
}

// IsSigned reports whether the integer kind is signed; meaningless for
// non-integer kinds.
func (k PrimitiveKind) IsSigned() bool {
	switch k {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the kind is a floating-point kind.
func (k PrimitiveKind) IsFloat() bool {
	return k == F32 || k == F64
}

// bitWidth returns the storage width used for promotion comparisons.
func (k PrimitiveKind) bitWidth() int {
	switch k {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32, F32:
		return 32
	case I64, U64, F64, USize:
		return 64
	default:
		return 0
	}
}
