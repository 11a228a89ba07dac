package inkabi

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const (
	erc20V4 = "../../testdata/erc20_v4.json"
	erc20V5 = "../../testdata/erc20_v5.json"

	alice = "0xda002226d93b2c422b95b780a2493e738716050ccad6ddbd7d58f1943bc6373d"
	bob   = "0x5207202c27b646ceeb294ce516d4334edafbd771f869215cb070ba51dd7e2c72"

	transferData = "0x84a15da1" +
		"5207202c27b646ceeb294ce516d4334edafbd771f869215cb070ba51dd7e2c72" +
		"0000f444829163450000000000000000"
	// Transfer(from: Some(alice), to: Some(bob), value: 2e18) without the event index
	anonymousTransfer = "0x01da002226d93b2c422b95b780a2493e738716050ccad6ddbd7d58f1943bc6373d" +
		"015207202c27b646ceeb294ce516d4334edafbd771f869215cb070ba51dd7e2c72" +
		"0000c84e676dc11b0000000000000000"
	// dry run result returning Ok(Ok(()))
	okResult = "0x1e5a4b0022bf02003a2b8f00420d030001dc050000000000000000000000000000000000000000080000"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := BuildInkAbiCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--env-file", "testdata-missing.env"))

	err := cmd.Execute()

	return strings.TrimSpace(out.String()), err
}

func TestCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		give     []string
		wantJSON string
		want     string
		wantErr  string
	}{
		{
			name:     "decode message",
			give:     []string{"decode-message", transferData, "--metadata", erc20V4},
			wantJSON: `{"__kind": "transfer", "to": "` + bob + `", "value": 5000000000000000000}`,
		},
		{
			name:     "decode constructor",
			give:     []string{"decode-constructor", "0x9bae9d5e0000a0dec5adc9353600000000000000", "--metadata", erc20V4},
			wantJSON: `{"__kind": "new", "totalSupply": 1000000000000000000000}`,
		},
		{
			name:     "decode anonymous V5 event",
			give:     []string{"decode-event", anonymousTransfer, "--metadata", erc20V5, "--topic", alice, "--topic", bob},
			wantJSON: `{"__kind": "Transfer", "from": "` + alice + `", "to": "` + bob + `", "value": 2000000000000000000}`,
		},
		{
			name:     "decode output",
			give:     []string{"decode-output", "0x000100", "--metadata", erc20V4, "--selector", "0x84a15da1"},
			wantJSON: `{"__kind": "Ok", "value": {"__kind": "Err", "value": {"__kind": "InsufficientBalance"}}}`,
		},
		{
			name: "encode message",
			give: []string{"encode-message", "0x84a15da1", bob, "5000000000000000000", "--metadata", erc20V4},
			want: transferData,
		},
		{
			name: "encode constructor",
			give: []string{"encode-constructor", "0x9bae9d5e", "1000000000000000000000", "--metadata", erc20V4},
			want: "0x9bae9d5e0000a0dec5adc9353600000000000000",
		},
		{
			name: "encode call",
			give: []string{"encode-call", "--address", bob, "--input", "0xdb6375a8"},
			want: "0x" + bob[2:] + bob[2:] + "00000000000000000000000000000000" + "0000" + "10db6375a8",
		},
		{
			name:    "failure: unknown selector",
			give:    []string{"decode-message", "0xdeadbeef", "--metadata", erc20V4},
			wantErr: "Unknown selector: 0xdeadbeef",
		},
		{
			name:    "failure: missing topics",
			give:    []string{"decode-event", anonymousTransfer, "--metadata", erc20V5},
			wantErr: "event topics are required to resolve V5 events",
		},
		{
			name:    "failure: wrong argument count",
			give:    []string{"encode-message", "0x84a15da1", bob, "--metadata", erc20V4},
			wantErr: "transfer expects 2 arguments, got 1",
		},
		{
			name:    "failure: missing metadata file",
			give:    []string{"inspect", "--metadata", "missing.json"},
			wantErr: "failed to read metadata file",
		},
		{
			name:    "failure: short address",
			give:    []string{"encode-call", "--address", "0x0102", "--input", "0x"},
			wantErr: "invalid address length: 2, expected 32",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := run(t, tt.give...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			if tt.wantJSON != "" {
				assert.JSONEq(t, tt.wantJSON, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	got, err := run(t, "inspect", "--metadata", erc20V5)
	require.NoError(t, err)

	var out inspectOutput
	require.NoError(t, json.Unmarshal([]byte(got), &out))

	assert.Equal(t, "V5", out.Version)
	assert.Equal(t, 16, out.Types)
	assert.Equal(t, map[string]string{"0x9bae9d5e": "new"}, out.Constructors)
	assert.Equal(t, "transfer_from", out.Messages["0x0b396f18"])
	assert.Equal(t, []string{"Transfer", "Approval"}, out.Events)
}

func TestDecodeResult(t *testing.T) {
	t.Parallel()

	got, err := run(t, "decode-result", okResult, "--metadata", erc20V4, "--selector", "0x84a15da1")
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &out))

	assert.Equal(t, false, out["reverted"])
	assert.Equal(t, "0x0000", out["data"])
	assert.Equal(t, map[string]any{"__kind": "Ok", "value": map[string]any{"__kind": "Ok"}}, out["output"])

	got, err = run(t, "decode-result", okResult)
	require.NoError(t, err)

	out = map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(got), &out))
	assert.NotContains(t, out, "output")
}

func TestMetadataFromEnvironment(t *testing.T) {
	t.Setenv(MetadataEnvVar, erc20V4)

	got, err := run(t, "encode-message", "0xdb6375a8")
	require.NoError(t, err)
	assert.Equal(t, "0xdb6375a8", got)
}

func TestMetadataRequired(t *testing.T) {
	t.Setenv(MetadataEnvVar, "")

	_, err := run(t, "decode-message", transferData)
	require.EqualError(t, err, "metadata file is required, set --metadata or "+MetadataEnvVar)
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	got := parseArgs([]string{"12", "true", bob, `{"__kind":"None"}`, "plain text", "1 2"})

	assert.Equal(t, []any{
		json.Number("12"),
		true,
		bob,
		map[string]any{"__kind": "None"},
		"plain text",
		"1 2",
	}, got)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "production", verbose: false, wantDebug: false},
		{name: "verbose", verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lggr, err := newLogger(tt.verbose)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDebug, lggr.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, lggr.Core().Enabled(zapcore.WarnLevel))
		})
	}
}
