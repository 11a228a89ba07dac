package codec

import (
	"fmt"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/smartcontractkit/inkabi/internal/registry"
	sdkerrors "github.com/smartcontractkit/inkabi/sdk/errors"
	"github.com/smartcontractkit/inkabi/types"
)

// Branch names of an explicit Option value.
const (
	noneKind = "None"
	someKind = "Some"
)

// Decode reads one value of type ti from src.
func (c *Codec) Decode(ti int, src *Src) (any, error) {
	t, err := c.typeAt(ti)
	if err != nil {
		return nil, err
	}

	switch t.Kind {
	case registry.KindPrimitive:
		return decodePrimitive(t.Primitive, src)
	case registry.KindCompact:
		return src.Compact()
	case registry.KindSequence:
		n, err := src.CompactLength()
		if err != nil {
			return nil, err
		}

		return c.decodeList(t.Elem, n, src)
	case registry.KindArray:
		return c.decodeList(t.Elem, int(t.Len), src)
	case registry.KindBitSequence:
		return c.decodeBitSequence(t, src)
	case registry.KindTuple:
		return c.decodeTuple(t.Tuple, src)
	case registry.KindComposite:
		if len(t.Fields) == 0 {
			return map[string]any{}, nil
		}

		return c.decodeFields(t.Fields, src)
	case registry.KindVariant:
		index, err := src.U8()
		if err != nil {
			return nil, err
		}

		return c.decodeBranch(ti, t, index, src)
	case registry.KindOption:
		return c.decodeOption(t.Elem, src)
	default:
		return nil, fmt.Errorf("unsupported type kind %s for type %d", t.Kind, ti)
	}
}

// DecodeVariantBranch reads the fields of the branch with discriminant index of variant type ti.
// The discriminant itself is not read from src.
func (c *Codec) DecodeVariantBranch(ti int, index uint8, src *Src) (types.Variant, error) {
	t, err := c.typeAt(ti)
	if err != nil {
		return types.Variant{}, err
	}
	if t.Kind != registry.KindVariant {
		return types.Variant{}, fmt.Errorf("type %d is a %s, not a variant", ti, t.Kind)
	}

	return c.decodeBranch(ti, t, index, src)
}

func (c *Codec) decodeBranch(ti int, t *registry.Type, index uint8, src *Src) (types.Variant, error) {
	branch, ok := t.Variant(index)
	if !ok {
		return types.Variant{}, sdkerrors.NewUnknownVariantError(ti, index)
	}

	value, err := c.decodeFields(branch.Fields, src)
	if err != nil {
		return types.Variant{}, err
	}

	return types.Variant{Kind: branch.Name, Value: value}, nil
}

// decodeFields returns a map for named fields, the bare value for a single positional field, a
// slice for several positional fields and nil when there are none.
func (c *Codec) decodeFields(fields []registry.Field, src *Src) (any, error) {
	switch {
	case len(fields) == 0:
		return nil, nil
	case registry.HasNamedFields(fields):
		out := make(map[string]any, len(fields))
		for _, f := range fields {
			v, err := c.Decode(f.Type, src)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			out[f.Name] = v
		}

		return out, nil
	case len(fields) == 1:
		return c.Decode(fields[0].Type, src)
	default:
		ids := make([]int, len(fields))
		for i, f := range fields {
			ids[i] = f.Type
		}

		return c.decodeTuple(ids, src)
	}
}

func (c *Codec) decodeTuple(ids []int, src *Src) (any, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	out := make([]any, len(ids))
	for i, id := range ids {
		v, err := c.Decode(id, src)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// decodeOption returns nil for None and the bare value for Some. Some is kept as a Variant when
// the bare value could be mistaken for None: a unit value or a nested Option.
func (c *Codec) decodeOption(elem int, src *Src) (any, error) {
	tag, err := src.U8()
	if err != nil {
		return nil, err
	}

	switch tag {
	case 0:
		return nil, nil
	case 1:
		v, err := c.Decode(elem, src)
		if err != nil {
			return nil, err
		}
		if v == nil || c.isOption(elem) {
			return types.Variant{Kind: someKind, Value: v}, nil
		}

		return v, nil
	default:
		return nil, fmt.Errorf("invalid option tag %d", tag)
	}
}

// decodeList reads n elements. Byte lists are returned as hexutil.Bytes.
func (c *Codec) decodeList(elem int, n int, src *Src) (any, error) {
	if c.isByte(elem) {
		b, err := src.Bytes(n)
		if err != nil {
			return nil, err
		}

		return hexutil.Bytes(b), nil
	}

	// n comes from the payload, so do not trust it for the allocation
	out := make([]any, 0, min(n, src.Remaining()))
	for i := 0; i < n; i++ {
		v, err := c.Decode(elem, src)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

func (c *Codec) decodeBitSequence(t *registry.Type, src *Src) (any, error) {
	bits, err := src.Compact()
	if err != nil {
		return nil, err
	}
	if !bits.IsUint64() {
		return nil, fmt.Errorf("bit sequence length %s too large", bits)
	}

	word, err := c.bitStoreSize(t.BitStore)
	if err != nil {
		return nil, err
	}

	wordBits := uint64(word * 8) //nolint:gosec // word is at most 8
	words := (bits.Uint64() + wordBits - 1) / wordBits
	if words > uint64(src.Remaining()/word) { //nolint:gosec // Remaining is non-negative
		return nil, fmt.Errorf("bit sequence of %d bits exceeds payload", bits.Uint64())
	}

	b, err := src.Bytes(int(words) * word) //nolint:gosec // bounded by Remaining above
	if err != nil {
		return nil, err
	}

	return types.BitSequence{Len: bits.Uint64(), Bytes: b}, nil
}

func (c *Codec) bitStoreSize(ti int) (int, error) {
	t, err := c.typeAt(ti)
	if err != nil {
		return 0, err
	}

	switch t.Primitive {
	case types.PrimitiveU8:
		return 1, nil
	case types.PrimitiveU16:
		return 2, nil
	case types.PrimitiveU32:
		return 4, nil
	case types.PrimitiveU64:
		return 8, nil
	default:
		return 0, fmt.Errorf("unsupported bit store type %d", ti)
	}
}

func (c *Codec) isOption(ti int) bool {
	t, err := c.typeAt(ti)

	return err == nil && t.Kind == registry.KindOption
}

func (c *Codec) isByte(ti int) bool {
	t, err := c.typeAt(ti)

	return err == nil && t.Kind == registry.KindPrimitive && t.Primitive == types.PrimitiveU8
}

func decodePrimitive(p types.Primitive, src *Src) (any, error) {
	switch p {
	case types.PrimitiveBool:
		b, err := src.U8()
		if err != nil {
			return nil, err
		}
		switch b {
		case 0:
			return false, nil
		case 1:
			return true, nil
		default:
			return nil, fmt.Errorf("invalid bool byte %d", b)
		}
	case types.PrimitiveChar:
		var v uint32
		if err := src.Decode(&v); err != nil {
			return nil, err
		}
		r := rune(v) //nolint:gosec // validated below
		if !utf8.ValidRune(r) {
			return nil, fmt.Errorf("invalid char %d", v)
		}

		return r, nil
	case types.PrimitiveStr:
		n, err := src.CompactLength()
		if err != nil {
			return nil, err
		}
		b, err := src.Bytes(n)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			return nil, fmt.Errorf("invalid utf-8 string of %d bytes", n)
		}

		return string(b), nil
	case types.PrimitiveU8:
		return src.U8()
	case types.PrimitiveU16:
		var v uint16
		err := src.Decode(&v)

		return v, err
	case types.PrimitiveU32:
		var v uint32
		err := src.Decode(&v)

		return v, err
	case types.PrimitiveU64:
		var v uint64
		err := src.Decode(&v)

		return v, err
	case types.PrimitiveI8:
		var v int8
		err := src.Decode(&v)

		return v, err
	case types.PrimitiveI16:
		var v int16
		err := src.Decode(&v)

		return v, err
	case types.PrimitiveI32:
		var v int32
		err := src.Decode(&v)

		return v, err
	case types.PrimitiveI64:
		var v int64
		err := src.Decode(&v)

		return v, err
	case types.PrimitiveU128, types.PrimitiveU256, types.PrimitiveI128, types.PrimitiveI256:
		info := intPrimitives[p]
		b, err := src.Bytes(info.size)
		if err != nil {
			return nil, err
		}

		return leToBigInt(b, info.signed), nil
	default:
		return nil, fmt.Errorf("unknown primitive %q", p)
	}
}
