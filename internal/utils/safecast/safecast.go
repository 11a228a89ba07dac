// Package safecast implements functions to safely cast types to avoid panics
package safecast

import (
	"fmt"
	"math"
	"math/big"

	"github.com/spf13/cast"
)

const (
	errIntRangeExceeded = "value %v exceeds int range"
)

// IntToUint8 safely converts an int to uint8 using cast and checks for overflow
func IntToUint8(value int) (uint8, error) {
	if value < 0 || value > math.MaxUint8 {
		return 0, fmt.Errorf("value %d exceeds uint8 range", value)
	}

	return cast.ToUint8E(value)
}

// Uint64ToInt safely converts a uint64 to int using cast and checks for overflow
func Uint64ToInt(value uint64) (int, error) {
	if value > math.MaxInt {
		return 0, fmt.Errorf(errIntRangeExceeded, value)
	}

	return cast.ToIntE(value)
}

// BigIntToInt converts a non-negative big.Int, typically a decoded compact length, to int
func BigIntToInt(value *big.Int) (int, error) {
	if value.Sign() < 0 {
		return 0, fmt.Errorf("value %s is negative", value)
	}
	if !value.IsUint64() {
		return 0, fmt.Errorf(errIntRangeExceeded, value)
	}

	return Uint64ToInt(value.Uint64())
}
