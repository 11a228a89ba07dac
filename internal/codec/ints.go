package codec

import (
	"fmt"
	"math/big"

	"github.com/smartcontractkit/inkabi/types"
)

type intInfo struct {
	size   int
	signed bool
}

var intPrimitives = map[types.Primitive]intInfo{
	types.PrimitiveU8:   {1, false},
	types.PrimitiveU16:  {2, false},
	types.PrimitiveU32:  {4, false},
	types.PrimitiveU64:  {8, false},
	types.PrimitiveU128: {16, false},
	types.PrimitiveU256: {32, false},
	types.PrimitiveI8:   {1, true},
	types.PrimitiveI16:  {2, true},
	types.PrimitiveI32:  {4, true},
	types.PrimitiveI64:  {8, true},
	types.PrimitiveI128: {16, true},
	types.PrimitiveI256: {32, true},
}

// intRange returns the inclusive bounds of an integer of the given width.
func intRange(info intInfo) (*big.Int, *big.Int) {
	bits := uint(info.size * 8) //nolint:gosec // sizes come from intPrimitives
	if info.signed {
		limit := new(big.Int).Lsh(big.NewInt(1), bits-1)
		return new(big.Int).Neg(limit), limit.Sub(limit, big.NewInt(1))
	}
	limit := new(big.Int).Lsh(big.NewInt(1), bits)

	return big.NewInt(0), limit.Sub(limit, big.NewInt(1))
}

// leToBigInt interprets little-endian bytes, as two's complement when signed.
func leToBigInt(b []byte, signed bool) *big.Int {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}

	v := new(big.Int).SetBytes(be)
	if signed && len(b) > 0 && b[len(b)-1]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8))) //nolint:gosec // len(b) <= 32
	}

	return v
}

// bigIntToLE writes v as a little-endian integer of the given width.
func bigIntToLE(v *big.Int, info intInfo) ([]byte, error) {
	lo, hi := intRange(info)
	if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return nil, fmt.Errorf("value %s out of range [%s, %s]", v, lo, hi)
	}

	u := new(big.Int).Set(v)
	if u.Sign() < 0 {
		u.Add(u, new(big.Int).Lsh(big.NewInt(1), uint(info.size*8))) //nolint:gosec // sizes come from intPrimitives
	}

	be := u.FillBytes(make([]byte, info.size))
	le := make([]byte, info.size)
	for i := range be {
		le[info.size-1-i] = be[i]
	}

	return le, nil
}
