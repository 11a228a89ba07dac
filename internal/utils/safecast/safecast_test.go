package safecast

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_IntToUint8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    int
		want    uint8
		wantErr bool
	}{
		{name: "Valid int within range", give: 42, want: 42},
		{name: "Negative int", give: -1, wantErr: true},
		{name: "Int exceeds uint8 max value", give: int(math.MaxUint8 + 1), wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := IntToUint8(tt.give)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_Uint64ToInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    uint64
		want    int
		wantErr bool
	}{
		{name: "Valid uint64 within range", give: 42, want: 42},
		{name: "Max int", give: math.MaxInt, want: math.MaxInt},
		{name: "Uint64 exceeds int max value", give: math.MaxUint64, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Uint64ToInt(tt.give)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_BigIntToInt(t *testing.T) {
	t.Parallel()

	tooLarge, ok := new(big.Int).SetString("100000000000000000000", 10)
	require.True(t, ok)

	tests := []struct {
		name    string
		give    *big.Int
		want    int
		wantErr bool
	}{
		{name: "Small value", give: big.NewInt(63), want: 63},
		{name: "Zero", give: big.NewInt(0), want: 0},
		{name: "Negative", give: big.NewInt(-1), wantErr: true},
		{name: "Exceeds uint64", give: tooLarge, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := BigIntToInt(tt.give)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
