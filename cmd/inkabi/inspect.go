package inkabi

import (
	"github.com/spf13/cobra"
)

type inspectOutput struct {
	Version      string            `json:"version"`
	Types        int               `json:"types"`
	Constructors map[string]string `json:"constructors"`
	Messages     map[string]string `json:"messages"`
	Events       []string          `json:"events"`
}

func buildInspectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the version, selectors and events of the metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			abi, err := opts.loadAbi(cmd.Context())
			if err != nil {
				return err
			}

			spec := abi.Project().ContractSpec()
			out := inspectOutput{
				Version:      abi.Version().String(),
				Types:        abi.TypesCount(),
				Constructors: make(map[string]string, len(spec.Constructors)),
				Messages:     make(map[string]string, len(spec.Messages)),
				Events:       make([]string, 0, len(spec.Events)),
			}
			for _, c := range spec.Constructors {
				out.Constructors[c.Selector.String()] = c.Label
			}
			for _, m := range spec.Messages {
				out.Messages[m.Selector.String()] = m.Label
			}
			for _, e := range spec.Events {
				out.Events = append(out.Events, e.Label)
			}

			return printJSON(cmd, out)
		},
	}
}
