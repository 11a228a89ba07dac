package codec

import (
	"io"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// Dst is a write cursor for SCALE output.
type Dst struct {
	enc *scale.Encoder
}

func NewDst(w io.Writer) *Dst {
	return &Dst{enc: scale.NewEncoder(w)}
}

func (d *Dst) U8(b uint8) error {
	return d.enc.PushByte(b)
}

func (d *Dst) Bytes(b []byte) error {
	return d.enc.Write(b)
}

func (d *Dst) Compact(v *big.Int) error {
	return d.enc.EncodeUintCompact(*v)
}

// Encode writes a plain Go value with the SCALE writer.
func (d *Dst) Encode(value any) error {
	return d.enc.Encode(value)
}
