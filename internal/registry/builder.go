package registry

import (
	"fmt"
	"strings"

	"github.com/smartcontractkit/inkabi/internal/utils/safecast"
	"github.com/smartcontractkit/inkabi/sdk"
	sdkerrors "github.com/smartcontractkit/inkabi/sdk/errors"
	"github.com/smartcontractkit/inkabi/types"
)

// NoType marks an absent synthetic type, e.g. the messages variant of a contract without
// messages.
const NoType = -1

// EventDescriptor locates the synthesized composite of one declared event.
type EventDescriptor struct {
	Label          string
	Type           int
	AmountIndexed  int
	SignatureTopic *string
}

// Registry is the translated type list plus the synthetic dispatch types derived from a project.
// Nothing in it is modified after Build returns.
type Registry struct {
	Types                []Type
	Events               []EventDescriptor
	Messages             int
	Constructors         int
	MessageSelectors     map[string]int
	ConstructorSelectors map[string]int
}

// Build translates the portable types of a project and appends one composite per event, the
// messages variant and the constructors variant, in that order. The result is normalized once
// all synthetic types are in place.
func Build(project types.Project, lggr sdk.Logger) (*Registry, error) {
	spec := project.ContractSpec()

	ts, err := translateTypes(project.PortableTypes())
	if err != nil {
		return nil, err
	}

	withTopics := false
	switch p := project.(type) {
	case *types.ProjectV3:
	case *types.ProjectV4:
		withTopics = p.Version >= types.MetadataV5
	default:
		return nil, fmt.Errorf("unsupported project type %T", project)
	}

	reg := &Registry{
		Messages:     NoType,
		Constructors: NoType,
	}

	reg.Events = make([]EventDescriptor, 0, len(spec.Events))
	for _, ev := range spec.Events {
		fields := make([]Field, len(ev.Args))
		indexed := 0
		for i, arg := range ev.Args {
			fields[i] = Field{
				Name: NormalizeLabel(arg.Label),
				Type: int(arg.Type.Type),
				Docs: arg.Docs,
			}
			if arg.Indexed {
				indexed++
			}
		}

		desc := EventDescriptor{
			Label:         ev.Label,
			Type:          len(ts),
			AmountIndexed: indexed,
		}
		if withTopics && ev.SignatureTopic != nil {
			topic := strings.ToLower(*ev.SignatureTopic)
			desc.SignatureTopic = &topic
		}

		ts = append(ts, Type{
			Kind:   KindComposite,
			Path:   []string{ev.Label},
			Docs:   ev.Docs,
			Fields: fields,
		})
		reg.Events = append(reg.Events, desc)
	}

	if len(spec.Messages) > 0 {
		calls := make([]callSpec, len(spec.Messages))
		for i, m := range spec.Messages {
			calls[i] = callSpec{label: m.Label, args: m.Args, docs: m.Docs}
		}
		messages, err := dispatchVariant(calls)
		if err != nil {
			return nil, fmt.Errorf("messages: %w", err)
		}
		reg.Messages = len(ts)
		ts = append(ts, messages)
	}

	if len(spec.Constructors) > 0 {
		calls := make([]callSpec, len(spec.Constructors))
		for i, c := range spec.Constructors {
			calls[i] = callSpec{label: c.Label, args: c.Args, docs: c.Docs}
		}
		ctors, err := dispatchVariant(calls)
		if err != nil {
			return nil, fmt.Errorf("constructors: %w", err)
		}
		reg.Constructors = len(ts)
		ts = append(ts, ctors)
	}

	reg.MessageSelectors = make(map[string]int, len(spec.Messages))
	for i, m := range spec.Messages {
		addSelector(reg.MessageSelectors, m.Selector, i, "message", lggr)
	}

	reg.ConstructorSelectors = make(map[string]int, len(spec.Constructors))
	for i, c := range spec.Constructors {
		addSelector(reg.ConstructorSelectors, c.Selector, i, "constructor", lggr)
	}

	reg.Types, err = Normalize(ts)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize types: %w", err)
	}

	lggr.Debugf("built type registry: %d types, %d events, %d messages, %d constructors",
		len(reg.Types), len(reg.Events), len(spec.Messages), len(spec.Constructors))

	return reg, nil
}

// NormalizeLabel makes a label from a nested Rust module usable as a field or branch name.
func NormalizeLabel(label string) string {
	return strings.ReplaceAll(label, "::", "_")
}

type callSpec struct {
	label string
	args  []types.ArgSpec
	docs  []string
}

// dispatchVariant builds a variant whose branch index is the position of the call in its
// metadata array.
func dispatchVariant(calls []callSpec) (Type, error) {
	variants := make([]Variant, len(calls))
	for i, c := range calls {
		index, err := safecast.IntToUint8(i)
		if err != nil {
			return Type{}, err
		}

		fields := make([]Field, len(c.args))
		for j, arg := range c.args {
			fields[j] = Field{
				Name:     NormalizeLabel(arg.Label),
				Type:     int(arg.Type.Type),
				TypeName: strings.Join(arg.Type.DisplayName, "::"),
				Docs:     arg.Docs,
			}
		}
		variants[i] = Variant{
			Name:   NormalizeLabel(c.label),
			Index:  index,
			Fields: fields,
			Docs:   c.docs,
		}
	}

	return Type{Kind: KindVariant, Variants: variants}, nil
}

func addSelector(m map[string]int, sel types.Selector, index int, what string, lggr sdk.Logger) {
	key := sel.String()
	if prev, ok := m[key]; ok {
		lggr.Warnf("duplicate %s selector %s at positions %d and %d", what, key, prev, index)
	}
	m[key] = index
}

func translateTypes(portable []types.PortableType) ([]Type, error) {
	// room for the synthetic types appended by Build
	ts := make([]Type, 0, len(portable)+8)
	for _, pt := range portable {
		t, err := translateType(pt)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}

	return ts, nil
}

func translateType(pt types.PortableType) (Type, error) {
	def := pt.Type.Def
	t := Type{
		Path: pt.Type.Path,
		Docs: pt.Type.Docs,
	}

	kind, ok := def.Kind()
	if !ok {
		return Type{}, sdkerrors.NewUnknownTypeDefError(uint32(pt.ID))
	}

	switch kind {
	case types.DefPrimitive:
		t.Kind = KindPrimitive
		t.Primitive = *def.Primitive
	case types.DefCompact:
		t.Kind = KindCompact
		t.Elem = int(def.Compact.Type)
	case types.DefSequence:
		t.Kind = KindSequence
		t.Elem = int(def.Sequence.Type)
	case types.DefBitSequence:
		t.Kind = KindBitSequence
		t.BitStore = int(def.BitSequence.BitStoreType)
		t.BitOrder = int(def.BitSequence.BitOrderType)
	case types.DefArray:
		t.Kind = KindArray
		t.Len = uint32(def.Array.Len)
		t.Elem = int(def.Array.Type)
	case types.DefTuple:
		t.Kind = KindTuple
		t.Tuple = make([]int, len(*def.Tuple))
		for i, id := range *def.Tuple {
			t.Tuple[i] = int(id)
		}
	case types.DefComposite:
		t.Kind = KindComposite
		t.Fields = translateFields(def.Composite.Fields)
	case types.DefVariant:
		t.Kind = KindVariant
		t.Variants = make([]Variant, len(def.Variant.Variants))
		for i, v := range def.Variant.Variants {
			t.Variants[i] = Variant{
				Name:   v.Name,
				Index:  uint8(v.Index),
				Fields: translateFields(v.Fields),
				Docs:   v.Docs,
			}
		}
	default:
		return Type{}, sdkerrors.NewUnknownTypeDefError(uint32(pt.ID))
	}

	return t, nil
}

func translateFields(fields []types.Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Field{
			Type: int(f.Type),
			Docs: f.Docs,
		}
		if f.Name != nil {
			out[i].Name = NormalizeLabel(*f.Name)
		}
		if f.TypeName != nil {
			out[i].TypeName = *f.TypeName
		}
	}

	return out
}
