package types //nolint:revive,nolintlint // allow pkg name 'types'

// PortableType is one entry of the metadata "types" section.
type PortableType struct {
	ID   TypeID   `json:"id"`
	Type TypeInfo `json:"type" validate:"required"`
}

// TypeInfo describes a type without reference to any external registry.
type TypeInfo struct {
	Path   []string        `json:"path,omitempty"`
	Params []TypeParameter `json:"params,omitempty" validate:"omitempty,dive"`
	Def    TypeDef         `json:"def"`
	Docs   []string        `json:"docs,omitempty"`
}

// TypeParameter is a generic parameter of a type. Type is nil for phantom parameters.
type TypeParameter struct {
	Name string  `json:"name" validate:"required"`
	Type *TypeID `json:"type"`
}

// DefKind names the shape of a type definition.
type DefKind string

const (
	DefPrimitive   DefKind = "primitive"
	DefCompact     DefKind = "compact"
	DefSequence    DefKind = "sequence"
	DefBitSequence DefKind = "bitsequence"
	DefArray       DefKind = "array"
	DefTuple       DefKind = "tuple"
	DefComposite   DefKind = "composite"
	DefVariant     DefKind = "variant"
)

// TypeDef holds exactly one of its fields. Kind reports which one.
type TypeDef struct {
	Primitive   *Primitive          `json:"primitive,omitempty"`
	Compact     *TypeDefCompact     `json:"compact,omitempty"`
	Sequence    *TypeDefSequence    `json:"sequence,omitempty"`
	BitSequence *TypeDefBitSequence `json:"bitsequence,omitempty"`
	Array       *TypeDefArray       `json:"array,omitempty"`
	Tuple       *TypeDefTuple       `json:"tuple,omitempty"`
	Composite   *TypeDefComposite   `json:"composite,omitempty"`
	Variant     *TypeDefVariant     `json:"variant,omitempty"`
}

// Kind returns the populated definition kind, or false when none or more than one is set.
func (d TypeDef) Kind() (DefKind, bool) {
	var (
		kind  DefKind
		count int
	)
	set := func(present bool, k DefKind) {
		if present {
			kind = k
			count++
		}
	}
	set(d.Primitive != nil, DefPrimitive)
	set(d.Compact != nil, DefCompact)
	set(d.Sequence != nil, DefSequence)
	set(d.BitSequence != nil, DefBitSequence)
	set(d.Array != nil, DefArray)
	set(d.Tuple != nil, DefTuple)
	set(d.Composite != nil, DefComposite)
	set(d.Variant != nil, DefVariant)

	return kind, count == 1
}

// Primitive is the name of a built-in scalar type.
type Primitive string

const (
	PrimitiveBool Primitive = "bool"
	PrimitiveChar Primitive = "char"
	PrimitiveStr  Primitive = "str"
	PrimitiveU8   Primitive = "u8"
	PrimitiveU16  Primitive = "u16"
	PrimitiveU32  Primitive = "u32"
	PrimitiveU64  Primitive = "u64"
	PrimitiveU128 Primitive = "u128"
	PrimitiveU256 Primitive = "u256"
	PrimitiveI8   Primitive = "i8"
	PrimitiveI16  Primitive = "i16"
	PrimitiveI32  Primitive = "i32"
	PrimitiveI64  Primitive = "i64"
	PrimitiveI128 Primitive = "i128"
	PrimitiveI256 Primitive = "i256"
)

type TypeDefCompact struct {
	Type TypeID `json:"type"`
}

type TypeDefSequence struct {
	Type TypeID `json:"type"`
}

type TypeDefBitSequence struct {
	BitStoreType TypeID `json:"bit_store_type"`
	BitOrderType TypeID `json:"bit_order_type"`
}

type TypeDefArray struct {
	Len  Uint32 `json:"len"`
	Type TypeID `json:"type"`
}

// TypeDefTuple lists the element types of an anonymous tuple. An empty tuple is the unit type.
type TypeDefTuple []TypeID

type TypeDefComposite struct {
	Fields []Field `json:"fields,omitempty" validate:"omitempty,dive"`
}

type TypeDefVariant struct {
	Variants []VariantSpec `json:"variants,omitempty" validate:"omitempty,dive"`
}

// Field is a named or positional member of a composite or variant branch.
type Field struct {
	Name     *string  `json:"name,omitempty"`
	Type     TypeID   `json:"type"`
	TypeName *string  `json:"typeName,omitempty"`
	Docs     []string `json:"docs,omitempty"`
}

// VariantSpec is one branch of an enum type.
type VariantSpec struct {
	Name   string   `json:"name" validate:"required"`
	Index  Uint8    `json:"index"`
	Fields []Field  `json:"fields,omitempty" validate:"omitempty,dive"`
	Docs   []string `json:"docs,omitempty"`
}
