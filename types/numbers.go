package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"bytes"
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// TypeID references an entry of the metadata type list by its position.
type TypeID uint32

// UnmarshalJSON accepts both numeric and decimal string encodings.
func (t *TypeID) UnmarshalJSON(data []byte) error {
	v, err := ParseUint(data, math.MaxUint32)
	if err != nil {
		return fmt.Errorf("invalid type id: %w", err)
	}
	*t = TypeID(v)

	return nil
}

// Uint32 is a uint32 that may be encoded in metadata as a number or a string.
type Uint32 uint32

func (u *Uint32) UnmarshalJSON(data []byte) error {
	v, err := ParseUint(data, math.MaxUint32)
	if err != nil {
		return err
	}
	*u = Uint32(v)

	return nil
}

// Uint8 is a uint8 that may be encoded in metadata as a number or a string.
type Uint8 uint8

func (u *Uint8) UnmarshalJSON(data []byte) error {
	v, err := ParseUint(data, math.MaxUint8)
	if err != nil {
		return err
	}
	*u = Uint8(v)

	return nil
}

// ParseUint parses a raw JSON number or JSON string holding a non-negative integer no larger
// than limit.
func ParseUint(data []byte, limit uint64) (uint64, error) {
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))

	v, err := cast.ToUint64E(raw)
	if err != nil {
		return 0, fmt.Errorf("value %s is not a non-negative integer", raw)
	}
	if v > limit {
		return 0, fmt.Errorf("value %d exceeds %d", v, limit)
	}

	return v, nil
}
