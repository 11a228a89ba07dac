package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/smartcontractkit/inkabi/sdk"
	sdkerrors "github.com/smartcontractkit/inkabi/sdk/errors"
	"github.com/smartcontractkit/inkabi/types"
)

func loadProject(t *testing.T, name string) types.Project {
	t.Helper()

	data, err := os.ReadFile("../../testdata/" + name)
	require.NoError(t, err)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &envelope))

	if v3, ok := envelope["V3"]; ok {
		p := &types.ProjectV3{}
		require.NoError(t, json.Unmarshal(v3, p))

		return p
	}

	p := &types.ProjectV4{}
	require.NoError(t, json.Unmarshal(data, p))

	var version types.Uint8
	require.NoError(t, json.Unmarshal(envelope["version"], &version))
	p.Version = types.MetadataVersion(version)

	return p
}

func TestBuild_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		give string
		want int
	}{
		{name: "erc20 v3", give: "erc20_v3.json", want: 8 + 2 + 1 + 1},
		{name: "erc20 v4", give: "erc20_v4.json", want: 12 + 2 + 1 + 1},
		{name: "erc20 v5", give: "erc20_v5.json", want: 12 + 2 + 1 + 1},
		{name: "flipper v4 without events", give: "flipper_v4.json", want: 11 + 0 + 1 + 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			project := loadProject(t, tt.give)
			reg, err := Build(project, sdk.NopLogger())
			require.NoError(t, err)

			assert.Len(t, reg.Types, tt.want)

			spec := project.ContractSpec()
			assert.Len(t, reg.MessageSelectors, len(spec.Messages))
			assert.Len(t, reg.ConstructorSelectors, len(spec.Constructors))
			assert.Len(t, reg.Events, len(spec.Events))
		})
	}
}

func TestBuild_SyntheticTypes(t *testing.T) {
	t.Parallel()

	reg, err := Build(loadProject(t, "erc20_v3.json"), sdk.NopLogger())
	require.NoError(t, err)

	// events first, then messages, then constructors
	require.Len(t, reg.Events, 2)
	assert.Equal(t, 8, reg.Events[0].Type)
	assert.Equal(t, 9, reg.Events[1].Type)
	assert.Equal(t, 10, reg.Messages)
	assert.Equal(t, 11, reg.Constructors)

	transfer := reg.Types[reg.Events[0].Type]
	assert.Equal(t, KindComposite, transfer.Kind)
	assert.Equal(t, []string{"Transfer"}, transfer.Path)
	assert.Equal(t, []string{"from", "to", "value"}, fieldNames(transfer.Fields))
	assert.Equal(t, []int{7, 7, 0}, fieldTypes(transfer.Fields))
	assert.Equal(t, 2, reg.Events[0].AmountIndexed)
	assert.Nil(t, reg.Events[0].SignatureTopic, "V3 events have no signature topic")

	messages := reg.Types[reg.Messages]
	require.Equal(t, KindVariant, messages.Kind)
	require.Len(t, messages.Variants, 6)
	for i, v := range messages.Variants {
		assert.Equal(t, uint8(i), v.Index) //nolint:gosec // test has 6 messages
	}
	assert.Equal(t, "transferFrom", FieldName(NormalizeLabel("transfer_from")))

	transferFrom := messages.Variants[5]
	assert.Equal(t, "transfer_from", transferFrom.Name)
	assert.Equal(t, []string{"from", "to", "value"}, fieldNames(transferFrom.Fields))
	assert.Equal(t, "AccountId", transferFrom.Fields[0].TypeName)

	ctors := reg.Types[reg.Constructors]
	require.Len(t, ctors.Variants, 1)
	assert.Equal(t, []string{"initialSupply"}, fieldNames(ctors.Variants[0].Fields))
}

func TestBuild_SelectorMaps(t *testing.T) {
	t.Parallel()

	project := loadProject(t, "erc20_v4.json")
	reg, err := Build(project, sdk.NopLogger())
	require.NoError(t, err)

	spec := project.ContractSpec()
	for i, m := range spec.Messages {
		assert.Equal(t, i, reg.MessageSelectors[m.Selector.String()], m.Label)
	}
	for i, c := range spec.Constructors {
		assert.Equal(t, i, reg.ConstructorSelectors[c.Selector.String()], c.Label)
	}

	want := map[string]int{
		"0xdb6375a8": 0,
		"0x0f755a56": 1,
		"0x6a00165e": 2,
		"0x84a15da1": 3,
		"0x681266a0": 4,
		"0x0b396f18": 5,
	}
	if diff := cmp.Diff(want, reg.MessageSelectors); diff != "" {
		t.Errorf("message selectors mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_SignatureTopics(t *testing.T) {
	t.Parallel()

	reg, err := Build(loadProject(t, "erc20_v5.json"), sdk.NopLogger())
	require.NoError(t, err)

	require.Len(t, reg.Events, 2)
	assert.Nil(t, reg.Events[0].SignatureTopic, "Transfer is anonymous")
	require.NotNil(t, reg.Events[1].SignatureTopic)
	assert.Equal(t, "0x25cdb6c93882e925abbfc9a8b7c85884b73c038c03a2492f238a5e5ba3fbff8c", *reg.Events[1].SignatureTopic)
}

func TestBuild_NestedLabels(t *testing.T) {
	t.Parallel()

	reg, err := Build(loadProject(t, "flipper_v4.json"), sdk.NopLogger())
	require.NoError(t, err)

	assert.Empty(t, reg.Events)

	messages := reg.Types[reg.Messages]
	assert.Equal(t, []string{"Flipper_flip", "Flipper_get", "set_many"}, variantNames(messages.Variants))
	assert.Equal(t, []string{"newValues", "nonce", "memo"}, fieldNames(messages.Variants[2].Fields))

	ctors := reg.Types[reg.Constructors]
	assert.Equal(t, []string{"new", "default"}, variantNames(ctors.Variants))
}

func TestBuild_NoMessages(t *testing.T) {
	t.Parallel()

	u8 := types.PrimitiveU8
	project := &types.ProjectV4{
		Version: types.MetadataV4,
		Types: []types.PortableType{
			{ID: 0, Type: types.TypeInfo{Def: types.TypeDef{Primitive: &u8}}},
		},
	}

	reg, err := Build(project, sdk.NopLogger())
	require.NoError(t, err)

	assert.Len(t, reg.Types, 1)
	assert.Equal(t, NoType, reg.Messages)
	assert.Equal(t, NoType, reg.Constructors)
	assert.Empty(t, reg.MessageSelectors)
}

func TestBuild_DuplicateSelector(t *testing.T) {
	t.Parallel()

	sel, err := types.NewSelectorFromHex("0x01020304")
	require.NoError(t, err)

	project := &types.ProjectV4{
		Version: types.MetadataV4,
		Spec: types.ContractSpec{
			Messages: []types.MessageSpec{
				{Label: "first", Selector: sel},
				{Label: "second", Selector: sel},
			},
		},
	}

	core, logs := observer.New(zap.WarnLevel)
	reg, err := Build(project, zap.New(core).Sugar())
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"0x01020304": 1}, reg.MessageSelectors)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "duplicate message selector 0x01020304")
}

func TestBuild_TooManyMessages(t *testing.T) {
	t.Parallel()

	messages := make([]types.MessageSpec, 257)
	for i := range messages {
		messages[i] = types.MessageSpec{Label: fmt.Sprintf("m%d", i)}
	}

	_, err := Build(&types.ProjectV4{Version: types.MetadataV4, Spec: types.ContractSpec{Messages: messages}}, sdk.NopLogger())
	require.EqualError(t, err, "messages: value 256 exceeds uint8 range")
}

func TestBuild_UnknownTypeDef(t *testing.T) {
	t.Parallel()

	project := &types.ProjectV3{
		Types: []types.PortableType{
			{ID: 0, Type: types.TypeInfo{Def: types.TypeDef{}}},
		},
	}

	_, err := Build(project, sdk.NopLogger())

	var defErr *sdkerrors.UnknownTypeDefError
	require.ErrorAs(t, err, &defErr)
	assert.Equal(t, uint32(0), defErr.TypeID)
}

func TestNormalize_Option(t *testing.T) {
	t.Parallel()

	reg, err := Build(loadProject(t, "erc20_v3.json"), sdk.NopLogger())
	require.NoError(t, err)

	option := reg.Types[7]
	assert.Equal(t, KindOption, option.Kind)
	assert.Equal(t, 1, option.Elem)

	// Result has the same shape but a different path
	assert.Equal(t, KindVariant, reg.Types[5].Kind)
}

func TestNormalize_PreservesIndices(t *testing.T) {
	t.Parallel()

	ts := []Type{
		{Kind: KindPrimitive, Primitive: types.PrimitiveU32},
		{Kind: KindPrimitive, Primitive: types.PrimitiveU32},
		{Kind: KindComposite, Fields: []Field{{Name: "some_field", Type: 1}, {Name: "other", Type: 0}}},
	}

	got, err := Normalize(ts)
	require.NoError(t, err)
	require.Len(t, got, len(ts))
	assert.Equal(t, ts[0], got[0])
	assert.Equal(t, ts[1], got[1])
	assert.Equal(t, []string{"someField", "other"}, fieldNames(got[2].Fields))
	assert.Equal(t, "some_field", ts[2].Fields[0].Name, "input is not modified")
}

func TestNormalize_FieldNameCollision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    Type
		wantErr string
	}{
		{
			name:    "composite",
			give:    Type{Kind: KindComposite, Fields: []Field{{Name: "a_b", Type: 0}, {Name: "aB", Type: 0}}},
			wantErr: `type 1: fields "a_b" and "aB" both map to "aB"`,
		},
		{
			name: "variant branch",
			give: Type{Kind: KindVariant, Variants: []Variant{
				{Name: "Pair", Fields: []Field{{Name: "to_id", Type: 0}, {Name: "toId", Type: 0}}},
			}},
			wantErr: `type 1: variant Pair: fields "to_id" and "toId" both map to "toId"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Normalize([]Type{{Kind: KindPrimitive, Primitive: types.PrimitiveU32}, tt.give})
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestBuild_ArgumentNameCollision(t *testing.T) {
	t.Parallel()

	project := loadProject(t, "erc20_v4.json")
	args := project.ContractSpec().Messages[3].Args
	args[0].Label = "x_y"
	args[1].Label = "xY"

	_, err := Build(project, sdk.NopLogger())
	require.ErrorContains(t, err, `fields "x_y" and "xY" both map to "xY"`)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "option", KindOption.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func fieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	return names
}

func fieldTypes(fields []Field) []int {
	ids := make([]int, len(fields))
	for i, f := range fields {
		ids[i] = f.Type
	}

	return ids
}

func variantNames(variants []Variant) []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}

	return names
}
