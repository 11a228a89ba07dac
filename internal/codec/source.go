package codec

import (
	"bytes"
	"fmt"
	"io"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"

	"github.com/smartcontractkit/inkabi/internal/utils/safecast"
	sdkerrors "github.com/smartcontractkit/inkabi/sdk/errors"
)

// Src is a read cursor over a SCALE payload.
type Src struct {
	r   *bytes.Reader
	dec *scale.Decoder
}

func NewSrc(data []byte) *Src {
	r := bytes.NewReader(data)

	return &Src{r: r, dec: scale.NewDecoder(r)}
}

// Remaining returns the number of unread bytes.
func (s *Src) Remaining() int {
	return s.r.Len()
}

// AssertEOF fails when unread bytes remain.
func (s *Src) AssertEOF() error {
	if n := s.r.Len(); n > 0 {
		return sdkerrors.NewTrailingBytesError(n)
	}

	return nil
}

func (s *Src) U8() (uint8, error) {
	return s.dec.ReadOneByte()
}

// Decode reads a fixed-width Go value (uint16, int64, string, ...) with the SCALE reader.
func (s *Src) Decode(target any) error {
	return s.dec.Decode(target)
}

// Bytes reads exactly n bytes.
func (s *Src) Bytes(n int) ([]byte, error) {
	if n > s.r.Len() {
		return nil, fmt.Errorf("%w: need %d bytes, %d available", io.ErrUnexpectedEOF, n, s.r.Len())
	}

	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if err := s.dec.Read(buf); err != nil {
		return nil, err
	}

	return buf, nil
}

func (s *Src) Compact() (*big.Int, error) {
	return s.dec.DecodeUintCompact()
}

// CompactLength reads a compact integer used as a length prefix.
func (s *Src) CompactLength() (int, error) {
	n, err := s.Compact()
	if err != nil {
		return 0, err
	}

	return safecast.BigIntToInt(n)
}
