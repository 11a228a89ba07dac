package inkabi

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/inkabi/sdk/contracts"
)

func buildEncodeCallCmd() *cobra.Command {
	var (
		address string
		input   string
	)

	cmd := &cobra.Command{
		Use:   "encode-call",
		Short: "Build a contract call dry run request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := hexutil.Decode(address)
			if err != nil {
				return fmt.Errorf("invalid address: %w", err)
			}
			data, err := hexutil.Decode(input)
			if err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}

			req, err := contracts.EncodeCall(addr, data)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), req)

			return err
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Hex encoded contract account id")
	cmd.Flags().StringVar(&input, "input", "", "Hex encoded call data, as built by encode-message")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

type decodeResultOutput struct {
	*contracts.ContractExecResult

	Reverted bool `json:"reverted"`
	Output   any  `json:"output,omitempty"`
}

func buildDecodeResultCmd(opts *rootOptions) *cobra.Command {
	var selector string

	cmd := &cobra.Command{
		Use:   "decode-result <data>",
		Short: "Decode a contract call dry run result",
		Long:  `With --selector the returned data is also decoded as the output of that message.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hexutil.Decode(args[0])
			if err != nil {
				return fmt.Errorf("invalid result: %w", err)
			}

			res, err := contracts.DecodeExecResult(raw)
			if err != nil {
				return err
			}

			out := decodeResultOutput{ContractExecResult: res, Reverted: res.Reverted()}
			if selector != "" {
				abi, err := opts.loadAbi(cmd.Context())
				if err != nil {
					return err
				}

				out.Output, err = abi.DecodeMessageOutput(selector, hexutil.Encode(res.Data))
				if err != nil {
					return err
				}
			}

			return printJSON(cmd, out)
		},
	}

	cmd.Flags().StringVar(&selector, "selector", "", "Selector of the called message")

	return cmd
}
