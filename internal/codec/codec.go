// Package codec decodes and encodes SCALE values described by a type registry.
package codec

import (
	"bytes"

	"github.com/smartcontractkit/inkabi/internal/registry"
	sdkerrors "github.com/smartcontractkit/inkabi/sdk/errors"
	"github.com/smartcontractkit/inkabi/types"
)

// Codec is safe for concurrent use; it never modifies its registry.
type Codec struct {
	types []registry.Type
}

func New(ts []registry.Type) *Codec {
	return &Codec{types: ts}
}

func (c *Codec) typeAt(ti int) (*registry.Type, error) {
	if ti < 0 || ti >= len(c.types) {
		return nil, sdkerrors.NewUnknownTypeError(ti)
	}

	return &c.types[ti], nil
}

// DecodeBinary decodes data as type ti. All of data must be consumed.
func (c *Codec) DecodeBinary(ti int, data []byte) (any, error) {
	src := NewSrc(data)

	v, err := c.Decode(ti, src)
	if err != nil {
		return nil, err
	}
	if err := src.AssertEOF(); err != nil {
		return nil, err
	}

	return v, nil
}

// DecodeBranchBinary decodes data as the fields of the branch with discriminant index of the
// variant type ti. data does not carry the discriminant. All of data must be consumed.
func (c *Codec) DecodeBranchBinary(ti int, index uint8, data []byte) (types.Variant, error) {
	src := NewSrc(data)

	v, err := c.DecodeVariantBranch(ti, index, src)
	if err != nil {
		return types.Variant{}, err
	}
	if err := src.AssertEOF(); err != nil {
		return types.Variant{}, err
	}

	return v, nil
}

// EncodeBinary encodes value as type ti.
func (c *Codec) EncodeBinary(ti int, value any) ([]byte, error) {
	var buf bytes.Buffer
	dst := NewDst(&buf)
	if err := c.Encode(ti, value, dst); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
