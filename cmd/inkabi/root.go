package inkabi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smartcontractkit/inkabi"
	"github.com/smartcontractkit/inkabi/sdk"
)

// MetadataEnvVar names the metadata file when --metadata is not set.
const MetadataEnvVar = "INKABI_METADATA"

type rootOptions struct {
	metadataPath string
	envFile      string
	verbose      bool
}

func BuildInkAbiCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := cobra.Command{
		Use:          "inkabi",
		Short:        "Decode and encode ink! contract calls, events and results",
		Long:         `Reads ink! contract metadata (V3, V4 or V5) and uses it to decode or build SCALE encoded contract data.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.metadataPath, "metadata", "", "Path to the contract metadata JSON, defaults to $"+MetadataEnvVar)
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Optional .env file to load before reading the environment")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(buildInspectCmd(opts))
	cmd.AddCommand(buildDecodeConstructorCmd(opts))
	cmd.AddCommand(buildDecodeMessageCmd(opts))
	cmd.AddCommand(buildDecodeEventCmd(opts))
	cmd.AddCommand(buildDecodeOutputCmd(opts))
	cmd.AddCommand(buildEncodeMessageCmd(opts))
	cmd.AddCommand(buildEncodeConstructorCmd(opts))
	cmd.AddCommand(buildEncodeCallCmd())
	cmd.AddCommand(buildDecodeResultCmd(opts))

	return &cmd
}

// init loads the env file and stores the command logger in the command context.
func (o *rootOptions) init(cmd *cobra.Command) error {
	if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", o.envFile, err)
	}

	lggr, err := newLogger(o.verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	cmd.SetContext(context.WithValue(cmd.Context(), sdk.ContextLoggerValue, sdk.Logger(lggr.Sugar())))

	return nil
}

// newLogger returns a development logger at debug level when verbose is set and a production
// logger that only reports warnings otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	return cfg.Build()
}

func (o *rootOptions) loadAbi(ctx context.Context) (*inkabi.Abi, error) {
	path := o.metadataPath
	if path == "" {
		path = os.Getenv(MetadataEnvVar)
	}
	if path == "" {
		return nil, errors.New("metadata file is required, set --metadata or " + MetadataEnvVar)
	}

	lggr := sdk.LoggerFrom(ctx)
	lggr.Debugf("loading metadata from %s", path)

	return inkabi.LoadAbi(path, inkabi.WithLogger(lggr))
}
