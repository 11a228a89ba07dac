package inkabi

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingTopics is returned when a V5 event is decoded without any topics.
var ErrMissingTopics = errors.New("event topics are required to resolve V5 events")

// InvalidMetadataError is returned when metadata fails schema or structural validation. It
// carries every violation that was found, not just the first one.
type InvalidMetadataError struct {
	Violations []string
}

func (e *InvalidMetadataError) Error() string {
	return "invalid metadata: " + strings.Join(e.Violations, ", ")
}

func NewInvalidMetadataError(violations []string) *InvalidMetadataError {
	return &InvalidMetadataError{Violations: violations}
}

// UnsupportedMetadataError is returned for metadata generations this package cannot read.
type UnsupportedMetadataError struct {
	Reason string
}

func (e *UnsupportedMetadataError) Error() string {
	return e.Reason
}

func NewUnsupportedMetadataError(reason string) *UnsupportedMetadataError {
	return &UnsupportedMetadataError{Reason: reason}
}

// UnknownSelectorError is returned when call data starts with a selector that the contract does
// not declare.
type UnknownSelectorError struct {
	Selector string
}

func (e *UnknownSelectorError) Error() string {
	return "Unknown selector: " + e.Selector
}

func NewUnknownSelectorError(selector string) *UnknownSelectorError {
	return &UnknownSelectorError{Selector: selector}
}

// EventNotResolvedError is returned when an event payload cannot be matched to a declared event.
type EventNotResolvedError struct {
	Reason string
}

func (e *EventNotResolvedError) Error() string {
	return fmt.Sprintf("unable to resolve event: %s", e.Reason)
}

func NewEventNotResolvedError(format string, args ...any) *EventNotResolvedError {
	return &EventNotResolvedError{Reason: fmt.Sprintf(format, args...)}
}
