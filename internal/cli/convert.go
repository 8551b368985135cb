package cli

import (
	"github.com/spf13/cobra"

	"github.com/Alrudin/fromto/pkg/errors"
	"github.com/Alrudin/fromto/pkg/flow"
)

// convertCommand creates the convert command for flow table → node-link JSON
// conversion.
func (c *CLI) convertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a from/to flow table to node-link JSON",
		Long: `Convert a from/to flow table to a node-link JSON graph.

The output uses the common {"nodes": [...], "edges": [...]} format for
interop with other graph tooling, and can be fed back into 'generate' and
'serve'.

Example:
  fromto convert flows.csv -o flows.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runConvert reads the flows and writes them as node-link JSON.
func (c *CLI) runConvert(input, output string) error {
	flows, err := c.loadFlows(input)
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open output %s", output)
	}
	defer out.Close()

	if err := flow.WriteJSON(flows, out); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Wrote %d flows to %s", len(flows), output)
	}
	return nil
}
