package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cast"

	"github.com/smartcontractkit/inkabi/internal/registry"
	sdkerrors "github.com/smartcontractkit/inkabi/sdk/errors"
	"github.com/smartcontractkit/inkabi/types"
)

// Encode writes value as type ti. It accepts the shapes Decode produces, plus common Go
// equivalents: any integer kind, *big.Int or decimal strings for integers, []byte or 0x-hex
// strings for byte lists, and typed slices for sequences.
func (c *Codec) Encode(ti int, value any, dst *Dst) error {
	t, err := c.typeAt(ti)
	if err != nil {
		return err
	}

	switch t.Kind {
	case registry.KindPrimitive:
		return encodePrimitive(t.Primitive, value, dst)
	case registry.KindCompact:
		v, err := toBigInt(value)
		if err != nil {
			return err
		}
		if v.Sign() < 0 {
			return fmt.Errorf("compact value %s is negative", v)
		}

		return dst.Compact(v)
	case registry.KindSequence:
		return c.encodeList(t.Elem, -1, value, dst)
	case registry.KindArray:
		return c.encodeList(t.Elem, int(t.Len), value, dst)
	case registry.KindBitSequence:
		return c.encodeBitSequence(t, value, dst)
	case registry.KindTuple:
		return c.encodeTuple(t.Tuple, value, dst)
	case registry.KindComposite:
		if len(t.Fields) == 0 {
			return nil
		}

		return c.encodeFields(t.Fields, value, dst)
	case registry.KindVariant:
		return c.encodeVariant(ti, t, value, dst)
	case registry.KindOption:
		inner, some := c.optionValue(t.Elem, value)
		if !some {
			return dst.U8(0)
		}
		if err := dst.U8(1); err != nil {
			return err
		}

		return c.Encode(t.Elem, inner, dst)
	default:
		return fmt.Errorf("unsupported type kind %s for type %d", t.Kind, ti)
	}
}

func (c *Codec) encodeVariant(ti int, t *registry.Type, value any, dst *Dst) error {
	var (
		v         types.Variant
		flattened bool
	)
	switch val := value.(type) {
	case types.Variant:
		v = val
	case *types.Variant:
		v = *val
	case string:
		v = types.Variant{Kind: val}
	case map[string]any:
		// the shape Variant.MarshalJSON produces
		kind, ok := val[types.KindKey].(string)
		if !ok {
			return sdkerrors.NewUnsupportedValueError("variant", value)
		}
		v = types.Variant{Kind: kind, Value: val}
		flattened = true
	default:
		return sdkerrors.NewUnsupportedValueError("variant", value)
	}

	for _, branch := range t.Variants {
		if branch.Name != v.Kind {
			continue
		}
		if err := dst.U8(branch.Index); err != nil {
			return err
		}
		if flattened {
			v.Value = unflatten(branch.Fields, v.Value.(map[string]any))
		}

		return c.encodeFields(branch.Fields, v.Value, dst)
	}

	return fmt.Errorf("variant %q not found in type %d", v.Kind, ti)
}

// optionValue unwraps an explicit Some or None, unless elem is itself a variant with branches of
// those names.
func (c *Codec) optionValue(elem int, value any) (any, bool) {
	if isNil(value) {
		return nil, false
	}
	if t, err := c.typeAt(elem); err == nil && t.Kind == registry.KindVariant {
		return value, true
	}

	var (
		kind  string
		inner any
	)
	switch v := value.(type) {
	case types.Variant:
		kind, inner = v.Kind, v.Value
	case *types.Variant:
		kind, inner = v.Kind, v.Value
	case map[string]any:
		kind, _ = v[types.KindKey].(string)
		inner = v["value"]
	}

	switch kind {
	case noneKind:
		return nil, false
	case someKind:
		return inner, true
	default:
		return value, true
	}
}

// unflatten recovers the payload of a variant rendered as JSON.
func unflatten(fields []registry.Field, m map[string]any) any {
	if !registry.HasNamedFields(fields) {
		return m["value"]
	}

	named := make(map[string]any, len(m))
	for k, f := range m {
		if k != types.KindKey {
			named[k] = f
		}
	}

	return named
}

// encodeFields mirrors decodeFields.
func (c *Codec) encodeFields(fields []registry.Field, value any, dst *Dst) error {
	switch {
	case len(fields) == 0:
		return nil
	case registry.HasNamedFields(fields):
		m, ok := value.(map[string]any)
		if !ok {
			return sdkerrors.NewUnsupportedValueError("struct", value)
		}
		for _, f := range fields {
			fv, ok := m[f.Name]
			if !ok {
				return fmt.Errorf("missing field %s", f.Name)
			}
			if err := c.Encode(f.Type, fv, dst); err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
		}

		return nil
	case len(fields) == 1:
		return c.Encode(fields[0].Type, value, dst)
	default:
		ids := make([]int, len(fields))
		for i, f := range fields {
			ids[i] = f.Type
		}

		return c.encodeTuple(ids, value, dst)
	}
}

func (c *Codec) encodeTuple(ids []int, value any, dst *Dst) error {
	if len(ids) == 0 {
		return nil
	}

	items, err := toSlice(value)
	if err != nil {
		return err
	}
	if len(items) != len(ids) {
		return fmt.Errorf("tuple expects %d elements, got %d", len(ids), len(items))
	}
	for i, id := range ids {
		if err := c.Encode(id, items[i], dst); err != nil {
			return err
		}
	}

	return nil
}

// encodeList writes a sequence when length is negative and a fixed array otherwise.
func (c *Codec) encodeList(elem int, length int, value any, dst *Dst) error {
	if c.isByte(elem) {
		b, err := toBytes(value)
		if err != nil {
			return err
		}

		return writeList(dst, length, len(b), func() error { return dst.Bytes(b) })
	}

	items, err := toSlice(value)
	if err != nil {
		return err
	}

	return writeList(dst, length, len(items), func() error {
		for _, item := range items {
			if err := c.Encode(elem, item, dst); err != nil {
				return err
			}
		}

		return nil
	})
}

func writeList(dst *Dst, length int, n int, body func() error) error {
	if length >= 0 {
		if n != length {
			return fmt.Errorf("array expects %d elements, got %d", length, n)
		}

		return body()
	}

	if err := dst.Compact(big.NewInt(int64(n))); err != nil {
		return err
	}

	return body()
}

func (c *Codec) encodeBitSequence(t *registry.Type, value any, dst *Dst) error {
	var bits types.BitSequence
	switch v := value.(type) {
	case types.BitSequence:
		bits = v
	case *types.BitSequence:
		bits = *v
	default:
		return sdkerrors.NewUnsupportedValueError("bitsequence", value)
	}

	word, err := c.bitStoreSize(t.BitStore)
	if err != nil {
		return err
	}
	wordBits := uint64(word * 8) //nolint:gosec // word is at most 8
	want := (bits.Len + wordBits - 1) / wordBits * uint64(word) //nolint:gosec // word is at most 8
	if uint64(len(bits.Bytes)) != want {
		return fmt.Errorf("bit sequence of %d bits needs %d bytes, got %d", bits.Len, want, len(bits.Bytes))
	}

	if err := dst.Compact(new(big.Int).SetUint64(bits.Len)); err != nil {
		return err
	}

	return dst.Bytes(bits.Bytes)
}

func encodePrimitive(p types.Primitive, value any, dst *Dst) error {
	switch p {
	case types.PrimitiveBool:
		b, ok := value.(bool)
		if !ok {
			return sdkerrors.NewUnsupportedValueError(string(p), value)
		}
		if b {
			return dst.U8(1)
		}

		return dst.U8(0)
	case types.PrimitiveChar:
		var r rune
		switch v := value.(type) {
		case rune:
			r = v
		case string:
			runes := []rune(v)
			if len(runes) != 1 {
				return fmt.Errorf("char expects a single rune, got %q", v)
			}
			r = runes[0]
		default:
			return sdkerrors.NewUnsupportedValueError(string(p), value)
		}

		return dst.Encode(uint32(r)) //nolint:gosec // runes are non-negative
	case types.PrimitiveStr:
		s, ok := value.(string)
		if !ok {
			return sdkerrors.NewUnsupportedValueError(string(p), value)
		}

		return dst.Encode(s)
	default:
		info, ok := intPrimitives[p]
		if !ok {
			return fmt.Errorf("unknown primitive %q", p)
		}
		v, err := toBigInt(value)
		if err != nil {
			return err
		}
		b, err := bigIntToLE(v, info)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}

		return dst.Bytes(b)
	}
}

func toBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, sdkerrors.NewUnsupportedValueError("integer", value)
		}

		return v, nil
	case big.Int:
		return &v, nil
	case string:
		n, ok := new(big.Int).SetString(v, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", v)
		}

		return n, nil
	case json.Number:
		return toBigInt(v.String())
	case float32, float64:
		f := cast.ToFloat64(v)
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("value %g is not an integer", f)
		}
		n, _ := big.NewFloat(f).Int(nil)

		return n, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() { //nolint:exhaustive // only integer kinds are accepted
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := cast.ToUint64E(value)
		if err != nil {
			return nil, err
		}

		return new(big.Int).SetUint64(u), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := cast.ToInt64E(value)
		if err != nil {
			return nil, err
		}

		return big.NewInt(i), nil
	default:
		return nil, sdkerrors.NewUnsupportedValueError("integer", value)
	}
}

func toBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case hexutil.Bytes:
		return v, nil
	case []byte:
		return v, nil
	case string:
		return hexutil.Decode(v)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), rv)

		return b, nil
	}

	return nil, sdkerrors.NewUnsupportedValueError("bytes", value)
}

func toSlice(value any) ([]any, error) {
	if items, ok := value.([]any); ok {
		return items, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, sdkerrors.NewUnsupportedValueError("sequence", value)
	}

	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}

	return items, nil
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() { //nolint:exhaustive // only nillable kinds matter
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
