package sdkerrors

import (
	"fmt"
)

// UnknownTypeDefError is returned when a metadata type definition matches none of the known
// shapes.
type UnknownTypeDefError struct {
	TypeID uint32
}

func (e *UnknownTypeDefError) Error() string {
	return fmt.Sprintf("unknown type definition for type %d", e.TypeID)
}

func NewUnknownTypeDefError(typeID uint32) *UnknownTypeDefError {
	return &UnknownTypeDefError{TypeID: typeID}
}

// UnknownTypeError is returned when a registry index is out of range.
type UnknownTypeError struct {
	Ti int
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type: %d", e.Ti)
}

func NewUnknownTypeError(ti int) *UnknownTypeError {
	return &UnknownTypeError{Ti: ti}
}

// UnknownVariantError is returned when a variant type has no branch with the given index.
type UnknownVariantError struct {
	Ti    int
	Index uint8
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown variant %d for type %d", e.Index, e.Ti)
}

func NewUnknownVariantError(ti int, index uint8) *UnknownVariantError {
	return &UnknownVariantError{Ti: ti, Index: index}
}

// TrailingBytesError is returned when a value was decoded but input bytes remain.
type TrailingBytesError struct {
	Remaining int
}

func (e *TrailingBytesError) Error() string {
	return fmt.Sprintf("unprocessed data left: %d bytes", e.Remaining)
}

func NewTrailingBytesError(remaining int) *TrailingBytesError {
	return &TrailingBytesError{Remaining: remaining}
}

// UnsupportedValueError is returned when a Go value cannot be encoded as the requested type.
type UnsupportedValueError struct {
	Kind  string
	Value any
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("cannot encode %T as %s", e.Value, e.Kind)
}

func NewUnsupportedValueError(kind string, value any) *UnsupportedValueError {
	return &UnsupportedValueError{Kind: kind, Value: value}
}

// InvalidAddressError is returned when an account id does not have the expected length.
type InvalidAddressError struct {
	Length int
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address length: %d, expected 32", e.Length)
}

func NewInvalidAddressError(length int) *InvalidAddressError {
	return &InvalidAddressError{Length: length}
}

// DispatchError is returned when a contract call result carries an Err dispatch outcome.
// Raw holds the undecoded DispatchError bytes.
type DispatchError struct {
	Raw []byte
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("contract call dispatch failed: 0x%x", e.Raw)
}

func NewDispatchError(raw []byte) *DispatchError {
	return &DispatchError{Raw: raw}
}
