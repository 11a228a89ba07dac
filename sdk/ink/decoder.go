package ink

import (
	"github.com/smartcontractkit/inkabi"
	"github.com/smartcontractkit/inkabi/sdk"
	"github.com/smartcontractkit/inkabi/types"
)

type Decoder struct {
	lggr sdk.Logger
}

var _ sdk.Decoder = &Decoder{}

func NewDecoder(lggr sdk.Logger) *Decoder {
	if lggr == nil {
		lggr = sdk.NopLogger()
	}

	return &Decoder{lggr: lggr}
}

func (d *Decoder) Decode(data string, contractMetadata string) (sdk.DecodedOperation, error) {
	abi, err := inkabi.NewAbiFromJSON([]byte(contractMetadata), inkabi.WithLogger(d.lggr))
	if err != nil {
		return nil, err
	}

	return ParseMessageCall(abi, data)
}

// ParseMessageCall decodes message call data (selector followed by the encoded arguments) into
// the message label and its arguments in declaration order.
func ParseMessageCall(abi *inkabi.Abi, data string) (*DecodedOperation, error) {
	call, err := abi.DecodeMessage(data)
	if err != nil {
		return &DecodedOperation{}, err
	}

	// the selector is known to be valid once the call decoded
	msg, err := abi.Message(data[:2+2*types.SelectorLength])
	if err != nil {
		return &DecodedOperation{}, err
	}

	fields := call.Fields()
	keys := make([]string, len(msg.Args))
	args := make([]any, len(msg.Args))
	for i, arg := range msg.Args {
		keys[i] = arg.Label
		args[i] = fields[inkabi.FieldName(arg.Label)]
	}

	return &DecodedOperation{
		FunctionName: msg.Label,
		InputKeys:    keys,
		InputArgs:    args,
	}, nil
}
