package registry

import (
	"github.com/smartcontractkit/inkabi/types"
)

// Kind is the shape of a registry type.
type Kind int

const (
	KindPrimitive Kind = iota
	KindCompact
	KindSequence
	KindBitSequence
	KindArray
	KindTuple
	KindComposite
	KindVariant
	// KindOption is never produced by translation, only by Normalize.
	KindOption
)

var kindNames = map[Kind]string{
	KindPrimitive:   "primitive",
	KindCompact:     "compact",
	KindSequence:    "sequence",
	KindBitSequence: "bitsequence",
	KindArray:       "array",
	KindTuple:       "tuple",
	KindComposite:   "composite",
	KindVariant:     "variant",
	KindOption:      "option",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// Type is a canonical registry record. Only the fields relevant to Kind are set; type
// references are registry indices.
type Type struct {
	Kind Kind
	Path []string
	Docs []string

	Primitive types.Primitive
	// Elem is the inner type of Compact, Sequence, Array and Option.
	Elem int
	// Len is the length of an Array.
	Len uint32
	// BitStore and BitOrder are set for BitSequence.
	BitStore int
	BitOrder int
	Tuple    []int
	Fields   []Field
	Variants []Variant
}

// Field is a composite or variant member. Name is empty for positional fields.
type Field struct {
	Name     string
	Type     int
	TypeName string
	Docs     []string
}

type Variant struct {
	Name   string
	Index  uint8
	Fields []Field
	Docs   []string
}

// Variant returns the branch with the given discriminant.
func (t *Type) Variant(index uint8) (*Variant, bool) {
	for i := range t.Variants {
		if t.Variants[i].Index == index {
			return &t.Variants[i], true
		}
	}

	return nil, false
}

// HasNamedFields reports whether fields are keyed by name rather than by position.
func HasNamedFields(fields []Field) bool {
	return len(fields) > 0 && fields[0].Name != ""
}
