package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// SelectorLength is the byte length of a constructor or message selector.
const SelectorLength = 4

// Selector identifies a contract entry point. It prefixes every constructor and message call.
type Selector [SelectorLength]byte

// NewSelectorFromHex parses a 0x-prefixed 4 byte hex string.
func NewSelectorFromHex(s string) (Selector, error) {
	var sel Selector

	b, err := hexutil.Decode(s)
	if err != nil {
		return sel, fmt.Errorf("invalid selector %q: %w", s, err)
	}
	if len(b) != SelectorLength {
		return sel, fmt.Errorf("invalid selector %q: expected %d bytes, got %d", s, SelectorLength, len(b))
	}
	copy(sel[:], b)

	return sel, nil
}

// String returns the lowercase 0x-prefixed hex form, which is also the key used in selector maps.
func (s Selector) String() string {
	return hexutil.Encode(s[:])
}

func (s Selector) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Selector) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	sel, err := NewSelectorFromHex(strings.ToLower(str))
	if err != nil {
		return err
	}
	*s = sel

	return nil
}
