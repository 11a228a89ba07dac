// Package inkabi decodes ink! contract metadata and uses it to read and write SCALE encoded
// constructor calls, message calls, message return values and events.
package inkabi

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/smartcontractkit/inkabi/internal/codec"
	"github.com/smartcontractkit/inkabi/internal/registry"
	"github.com/smartcontractkit/inkabi/internal/utils/safecast"
	"github.com/smartcontractkit/inkabi/sdk"
	"github.com/smartcontractkit/inkabi/types"
)

// EventDescriptor locates the decoded shape of one declared event.
type EventDescriptor = registry.EventDescriptor

// Option configures an Abi.
type Option func(*abiOptions)

type abiOptions struct {
	lggr sdk.Logger
}

// WithLogger sets the logger used while building and decoding. The default discards
// everything.
func WithLogger(lggr sdk.Logger) Option {
	return func(opts *abiOptions) {
		opts.lggr = lggr
	}
}

// Abi decodes payloads of one contract. Everything is derived when it is constructed and never
// changes afterwards, so an Abi can be shared between goroutines.
type Abi struct {
	project  types.Project
	registry *registry.Registry
	codec    *codec.Codec
	lggr     sdk.Logger
}

// NewAbi builds the type registry of a validated project.
func NewAbi(project types.Project, opts ...Option) (*Abi, error) {
	o := abiOptions{lggr: sdk.NopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	if project == nil {
		return nil, errors.New("project is required")
	}
	if err := ValidateProject(project); err != nil {
		return nil, err
	}

	reg, err := registry.Build(project, o.lggr)
	if err != nil {
		return nil, fmt.Errorf("failed to build type registry: %w", err)
	}

	o.lggr.Infof("loaded %s metadata with %d messages, %d constructors and %d events",
		project.MetadataVersion(), len(reg.MessageSelectors), len(reg.ConstructorSelectors), len(reg.Events))

	return &Abi{
		project:  project,
		registry: reg,
		codec:    codec.New(reg.Types),
		lggr:     o.lggr,
	}, nil
}

// NewAbiFromJSON validates raw metadata JSON and builds an Abi from it.
func NewAbiFromJSON(data []byte, opts ...Option) (*Abi, error) {
	project, err := ParseMetadata(data)
	if err != nil {
		return nil, err
	}

	return NewAbi(project, opts...)
}

// LoadAbi reads a metadata file and builds an Abi from it.
func LoadAbi(path string, opts ...Option) (*Abi, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	return NewAbiFromJSON(data, opts...)
}

func (a *Abi) Project() types.Project {
	return a.project
}

func (a *Abi) Version() types.MetadataVersion {
	return a.project.MetadataVersion()
}

// TypesCount is the number of registry entries, synthetic types included.
func (a *Abi) TypesCount() int {
	return len(a.registry.Types)
}

// MessageSelectors maps each message selector to the position of the message in the metadata.
func (a *Abi) MessageSelectors() map[string]int {
	return maps.Clone(a.registry.MessageSelectors)
}

// ConstructorSelectors maps each constructor selector to the position of the constructor in the
// metadata.
func (a *Abi) ConstructorSelectors() map[string]int {
	return maps.Clone(a.registry.ConstructorSelectors)
}

func (a *Abi) Events() []EventDescriptor {
	return slices.Clone(a.registry.Events)
}

// Message returns the message with the given selector.
func (a *Abi) Message(selector string) (*types.MessageSpec, error) {
	index, err := lookupSelector(a.registry.MessageSelectors, selector)
	if err != nil {
		return nil, err
	}

	return &a.project.ContractSpec().Messages[index], nil
}

// Constructor returns the constructor with the given selector.
func (a *Abi) Constructor(selector string) (*types.ConstructorSpec, error) {
	index, err := lookupSelector(a.registry.ConstructorSelectors, selector)
	if err != nil {
		return nil, err
	}

	return &a.project.ContractSpec().Constructors[index], nil
}

// DecodeConstructor decodes 0x-prefixed constructor call data: a 4 byte selector followed by
// the SCALE encoded arguments. The result is named after the constructor and holds its
// arguments by label.
func (a *Abi) DecodeConstructor(data string) (types.Variant, error) {
	return a.decodeCall(data, a.registry.Constructors, a.registry.ConstructorSelectors)
}

// DecodeMessage decodes 0x-prefixed message call data: a 4 byte selector followed by the SCALE
// encoded arguments.
func (a *Abi) DecodeMessage(data string) (types.Variant, error) {
	return a.decodeCall(data, a.registry.Messages, a.registry.MessageSelectors)
}

func (a *Abi) decodeCall(data string, ti int, selectors map[string]int) (types.Variant, error) {
	b, err := hexutil.Decode(data)
	if err != nil {
		return types.Variant{}, fmt.Errorf("invalid call data: %w", err)
	}
	if len(b) < types.SelectorLength {
		return types.Variant{}, NewUnknownSelectorError(hexutil.Encode(b))
	}

	sel := types.Selector(b[:types.SelectorLength])
	position, ok := selectors[sel.String()]
	if !ok {
		return types.Variant{}, NewUnknownSelectorError(sel.String())
	}

	index, err := safecast.IntToUint8(position)
	if err != nil {
		return types.Variant{}, err
	}

	return a.codec.DecodeBranchBinary(ti, index, b[types.SelectorLength:])
}

// DecodeEvent decodes the 0x-prefixed data of an emitted event. The result is named after the
// event and holds its arguments by label.
//
// V3 and V4 events carry the position of the event in the metadata as their first byte. V5
// events are found through their topics: the first topic of an event with a signature is that
// signature, and an anonymous event is identified by its number of indexed arguments, which
// must match the number of topics and be unique among the anonymous events.
func (a *Abi) DecodeEvent(data string, topics ...string) (types.Variant, error) {
	b, err := hexutil.Decode(data)
	if err != nil {
		return types.Variant{}, fmt.Errorf("invalid event data: %w", err)
	}

	var ev EventDescriptor
	if a.Version() < types.MetadataV5 {
		if len(b) == 0 {
			return types.Variant{}, NewEventNotResolvedError("empty event data")
		}
		if int(b[0]) >= len(a.registry.Events) {
			return types.Variant{}, NewEventNotResolvedError("no event with index %d", b[0])
		}
		ev = a.registry.Events[b[0]]
		b = b[1:]
	} else {
		ev, err = a.resolveEvent(topics)
		if err != nil {
			return types.Variant{}, err
		}
	}

	a.lggr.Debugf("decoding event %s from %d bytes", ev.Label, len(b))

	value, err := a.codec.DecodeBinary(ev.Type, b)
	if err != nil {
		return types.Variant{}, fmt.Errorf("failed to decode event %s: %w", ev.Label, err)
	}

	return types.Variant{Kind: ev.Label, Value: value}, nil
}

func (a *Abi) resolveEvent(topics []string) (EventDescriptor, error) {
	if len(topics) == 0 {
		return EventDescriptor{}, ErrMissingTopics
	}

	first := strings.ToLower(topics[0])
	for _, ev := range a.registry.Events {
		if ev.SignatureTopic != nil && *ev.SignatureTopic == first {
			return ev, nil
		}
	}

	var candidates []EventDescriptor
	for _, ev := range a.registry.Events {
		if ev.SignatureTopic == nil && ev.AmountIndexed == len(topics) {
			candidates = append(candidates, ev)
		}
	}

	switch len(candidates) {
	case 0:
		return EventDescriptor{}, NewEventNotResolvedError("no event matches topic %s", first)
	case 1:
		return candidates[0], nil
	default:
		return EventDescriptor{}, NewEventNotResolvedError("%d anonymous events have %d indexed arguments",
			len(candidates), len(topics))
	}
}

// DecodeMessageOutput decodes the value returned by the message with the given selector. A
// message without a return type yields nil.
func (a *Abi) DecodeMessageOutput(selector string, data string) (any, error) {
	msg, err := a.Message(selector)
	if err != nil {
		return nil, err
	}

	b, err := hexutil.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("invalid output data: %w", err)
	}

	if msg.ReturnType == nil {
		if len(b) > 0 {
			return nil, fmt.Errorf("message %s returns nothing, got %d bytes", msg.Label, len(b))
		}

		return nil, nil
	}

	return a.codec.DecodeBinary(int(msg.ReturnType.Type), b)
}

// EncodeMessageInput builds call data for the message with the given selector. args are given in
// declaration order.
func (a *Abi) EncodeMessageInput(selector string, args ...any) (string, error) {
	msg, err := a.Message(selector)
	if err != nil {
		return "", err
	}

	return a.encodeCall(msg.Selector, msg.Label, msg.Args, args)
}

// EncodeConstructorInput builds call data for the constructor with the given selector.
func (a *Abi) EncodeConstructorInput(selector string, args ...any) (string, error) {
	ctor, err := a.Constructor(selector)
	if err != nil {
		return "", err
	}

	return a.encodeCall(ctor.Selector, ctor.Label, ctor.Args, args)
}

func (a *Abi) encodeCall(sel types.Selector, label string, specs []types.ArgSpec, args []any) (string, error) {
	if len(args) != len(specs) {
		return "", fmt.Errorf("%s expects %d arguments, got %d", label, len(specs), len(args))
	}

	var buf bytes.Buffer
	buf.Write(sel[:])

	dst := codec.NewDst(&buf)
	for i, spec := range specs {
		if err := a.codec.Encode(int(spec.Type.Type), args[i], dst); err != nil {
			return "", fmt.Errorf("failed to encode argument %s of %s: %w", spec.Label, label, err)
		}
	}

	return hexutil.Encode(buf.Bytes()), nil
}

func lookupSelector(selectors map[string]int, selector string) (int, error) {
	sel, err := types.NewSelectorFromHex(selector)
	if err != nil {
		return 0, err
	}

	index, ok := selectors[sel.String()]
	if !ok {
		return 0, NewUnknownSelectorError(sel.String())
	}

	return index, nil
}

// FieldName returns the key under which an argument or field with the given metadata label
// appears in decoded values.
func FieldName(label string) string {
	return registry.FieldName(registry.NormalizeLabel(label))
}
