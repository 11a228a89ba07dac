package ink

import (
	"encoding/json"

	"github.com/smartcontractkit/inkabi/sdk"
)

type DecodedOperation struct {
	FunctionName string
	InputKeys    []string
	InputArgs    []any
}

var _ sdk.DecodedOperation = &DecodedOperation{}

func (d *DecodedOperation) MethodName() string {
	return d.FunctionName
}

func (d *DecodedOperation) Args() []any {
	return d.InputArgs
}

func (d *DecodedOperation) String() (string, string, error) {
	// Create a human readable representation of the decoded operation
	// by displaying a map of input keys to input values
	// e.g. {"to": "0x...", "value": 1000}
	inputMap := make(map[string]any, len(d.InputKeys))
	for i, key := range d.InputKeys {
		inputMap[key] = d.InputArgs[i]
	}

	byteMap, err := json.MarshalIndent(inputMap, "", "  ")
	if err != nil {
		return "", "", err
	}

	return d.FunctionName, string(byteMap), nil
}
