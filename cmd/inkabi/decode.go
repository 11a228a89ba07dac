package inkabi

import (
	"github.com/spf13/cobra"
)

func buildDecodeConstructorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode-constructor <data>",
		Short: "Decode constructor call data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abi, err := opts.loadAbi(cmd.Context())
			if err != nil {
				return err
			}

			decoded, err := abi.DecodeConstructor(args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd, decoded)
		},
	}
}

func buildDecodeMessageCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode-message <data>",
		Short: "Decode message call data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abi, err := opts.loadAbi(cmd.Context())
			if err != nil {
				return err
			}

			decoded, err := abi.DecodeMessage(args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd, decoded)
		},
	}
}

func buildDecodeEventCmd(opts *rootOptions) *cobra.Command {
	var topics []string

	cmd := &cobra.Command{
		Use:   "decode-event <data>",
		Short: "Decode an emitted event",
		Long:  `V5 events are resolved from their topics, pass them in emission order with --topic.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abi, err := opts.loadAbi(cmd.Context())
			if err != nil {
				return err
			}

			decoded, err := abi.DecodeEvent(args[0], topics...)
			if err != nil {
				return err
			}

			return printJSON(cmd, decoded)
		},
	}

	cmd.Flags().StringSliceVar(&topics, "topic", nil, "Event topic, repeat for each topic")

	return cmd
}

func buildDecodeOutputCmd(opts *rootOptions) *cobra.Command {
	var selector string

	cmd := &cobra.Command{
		Use:   "decode-output <data>",
		Short: "Decode the value returned by a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abi, err := opts.loadAbi(cmd.Context())
			if err != nil {
				return err
			}

			decoded, err := abi.DecodeMessageOutput(selector, args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd, decoded)
		},
	}

	cmd.Flags().StringVar(&selector, "selector", "", "Selector of the message that produced the data")
	_ = cmd.MarkFlagRequired("selector")

	return cmd
}
