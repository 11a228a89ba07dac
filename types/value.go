package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// KindKey is the JSON key carrying the branch name of a decoded variant.
const KindKey = "__kind"

// Variant is a decoded enum value: the branch name plus its payload.
//
// Value is a map[string]any for branches with named fields, the bare value for a branch with a
// single unnamed field, a []any for several unnamed fields and nil for a unit branch.
type Variant struct {
	Kind  string
	Value any
}

// MarshalJSON flattens named fields next to the kind, e.g. {"__kind":"transfer","to":"0x..."}.
// Other payloads are rendered under "value".
func (v Variant) MarshalJSON() ([]byte, error) {
	out := map[string]any{KindKey: v.Kind}

	switch value := v.Value.(type) {
	case nil:
	case map[string]any:
		for k, field := range value {
			out[k] = field
		}
	default:
		out["value"] = value
	}

	return json.Marshal(out)
}

// Fields returns the named fields of the branch, or nil when the payload is not a struct.
func (v Variant) Fields() map[string]any {
	fields, _ := v.Value.(map[string]any)
	return fields
}

// BitSequence is a decoded bitvec. Bytes holds the raw store words, Len the number of bits.
type BitSequence struct {
	Len   uint64        `json:"len"`
	Bytes hexutil.Bytes `json:"bytes"`
}
