package ir

// PrimKind enumerates the primitive annotation kinds that map directly
// to Rust scalar types.
type PrimKind uint8

const (
	// PrimInt is a signed integer annotation (i64).
	PrimInt PrimKind = iota
	// PrimFloat is a floating point annotation (f64).
	PrimFloat
	// PrimBool is a boolean annotation (bool).
	PrimBool
	// PrimStr is a string annotation (String).
	PrimStr
	// PrimBytes is a byte-string annotation (Vec<u8>).
	PrimBytes
	// PrimNone is the absent/unit annotation (()).
	PrimNone
)

// String returns a human-readable name for the primitive kind.
func (k PrimKind) String() string {
	switch k {
	case PrimInt:
		return "int"
	case PrimFloat:
		return "float"
	case PrimBool:
		return "bool"
	case PrimStr:
		return "str"
	case PrimBytes:
		return "bytes"
	case PrimNone:
		return "None"
	default:
		return "unknown"
	}
}

// Type is the closed set of annotation type nodes. The set is finite
// and acyclic, mirroring the source annotation tree; nodes never mutate
// after construction.
type Type interface {
	typeNode()
}

// PrimType is a primitive annotation.
type PrimType struct {
	Kind PrimKind
}

// GenericType is a parameterized container annotation such as
// list[T], dict[K, V], Optional[T] or tuple[A, B].
type GenericType struct {
	Name string
	Args []Type
}

// UnionType is a type union that renders as a tagged enum unless it is
// the two-variant optional shape. GeneratedName, when non-empty, is the
// enum name pre-generated by the front end.
type UnionType struct {
	Variants      []Type
	GeneratedName string
}

// FuncType is a callable annotation.
type FuncType struct {
	Params []Type
	Return Type
}

// ClassType is a user-defined class annotation. Module, when non-empty,
// is the source module qualifying the name.
type ClassType struct {
	Name   string
	Module string
}

func (*PrimType) typeNode()    {}
func (*GenericType) typeNode() {}
func (*UnionType) typeNode()   {}
func (*FuncType) typeNode()    {}
func (*ClassType) typeNode()   {}
