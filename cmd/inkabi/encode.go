package inkabi

import (
	"fmt"

	"github.com/spf13/cobra"
)

func buildEncodeMessageCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode-message <selector> [args...]",
		Short: "Build message call data",
		Long:  `Arguments are read as JSON where possible, e.g. numbers, booleans or {"__kind":"Some","value":1}. Anything else is passed as a string.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abi, err := opts.loadAbi(cmd.Context())
			if err != nil {
				return err
			}

			data, err := abi.EncodeMessageInput(args[0], parseArgs(args[1:])...)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), data)

			return err
		},
	}
}

func buildEncodeConstructorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode-constructor <selector> [args...]",
		Short: "Build constructor call data",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abi, err := opts.loadAbi(cmd.Context())
			if err != nil {
				return err
			}

			data, err := abi.EncodeConstructorInput(args[0], parseArgs(args[1:])...)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), data)

			return err
		},
	}
}
