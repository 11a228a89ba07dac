package inkabi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return err
}

// parseArgs reads each argument as JSON, falling back to the raw string. Numbers stay exact.
func parseArgs(raw []string) []any {
	args := make([]any, len(raw))
	for i, r := range raw {
		dec := json.NewDecoder(strings.NewReader(r))
		dec.UseNumber()

		var v any
		if err := dec.Decode(&v); err != nil || dec.More() {
			args[i] = r
			continue
		}
		args[i] = v
	}

	return args
}
