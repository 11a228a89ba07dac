package ink

import (
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/inkabi"
)

const (
	testRecipient = "0x5207202c27b646ceeb294ce516d4334edafbd771f869215cb070ba51dd7e2c72"
	// transfer(to: testRecipient, value: 5e18)
	transferData = "0x84a15da1" +
		"5207202c27b646ceeb294ce516d4334edafbd771f869215cb070ba51dd7e2c72" +
		"0000f444829163450000000000000000"
)

func TestDecoder(t *testing.T) {
	t.Parallel()

	metadata, err := os.ReadFile("../../testdata/erc20_v4.json")
	require.NoError(t, err)

	value, ok := new(big.Int).SetString("5000000000000000000", 10)
	require.True(t, ok)

	tests := []struct {
		name    string
		give    string
		want    *DecodedOperation
		wantErr string
	}{
		{
			name: "success",
			give: transferData,
			want: &DecodedOperation{
				FunctionName: "transfer",
				InputKeys:    []string{"to", "value"},
				InputArgs:    []any{hexutil.Bytes(hexutil.MustDecode(testRecipient)), value},
			},
		},
		{
			name: "success: no arguments",
			give: "0xdb6375a8",
			want: &DecodedOperation{
				FunctionName: "total_supply",
				InputKeys:    []string{},
				InputArgs:    []any{},
			},
		},
		{
			name:    "failure: unknown selector",
			give:    "0xdeadbeef",
			wantErr: "Unknown selector: 0xdeadbeef",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := NewDecoder(nil)
			got, err := d.Decode(tt.give, string(metadata))
			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseMessageCall_InvalidMetadata(t *testing.T) {
	t.Parallel()

	d := NewDecoder(nil)
	_, err := d.Decode(transferData, `{"version": 4}`)

	var metadataErr *inkabi.InvalidMetadataError
	require.ErrorAs(t, err, &metadataErr)
}

func TestDecodedOperation_String(t *testing.T) {
	t.Parallel()

	op := &DecodedOperation{
		FunctionName: "transfer",
		InputKeys:    []string{"to", "value"},
		InputArgs:    []any{hexutil.Bytes{0x01, 0x02}, big.NewInt(1000)},
	}

	method, args, err := op.String()
	require.NoError(t, err)
	assert.Equal(t, "transfer", method)
	assert.JSONEq(t, `{"to": "0x0102", "value": 1000}`, args)
	assert.Equal(t, "transfer", op.MethodName())
	assert.Len(t, op.Args(), 2)
}
