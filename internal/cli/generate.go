package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Alrudin/fromto/pkg/errors"
	"github.com/Alrudin/fromto/pkg/mermaid"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output    string // output file path (stdout if empty)
	threshold int    // collapse threshold for host groups
	labels    string // TOML label map path (built-in defaults if empty)
}

// generateCommand creates the generate command, the main entry point of the
// tool: flow table in, Mermaid flowchart out.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{threshold: mermaid.DefaultCollapseThreshold}

	cmd := &cobra.Command{
		Use:   "generate [input]",
		Short: "Generate a Mermaid flowchart from a from/to flow table",
		Long: `Generate a Mermaid flowchart from a from/to flow table.

The input is a CSV file with "from" and "to" columns, or a node-link JSON
graph when the file ends in .json. When the input argument is omitted, the
path is taken from $FROM_TO_CSV, defaulting to "from_to.csv".

Hosts named after the production scheme (p-<data center>-<function><serial>)
are grouped per function and data center; groups larger than --threshold
collapse into a single summary node.

Examples:
  fromto generate flows.csv                  # Diagram to stdout
  fromto generate flows.csv -o diagram.mmd   # Diagram to a file
  fromto generate flows.csv --threshold 10   # Collapse only very large groups
  fromto generate flows.csv --labels my.toml # Custom function labels`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(inputPath(args), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().IntVar(&opts.threshold, "threshold", opts.threshold, "collapse host groups larger than this into one node")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "TOML file with function label overrides")

	return cmd
}

// buildOptions assembles builder options from the threshold flag and the
// optional label map file.
func (c *CLI) buildOptions(labelsPath string, threshold int) (mermaid.Options, error) {
	opts := mermaid.DefaultOptions()
	opts.CollapseThreshold = threshold
	if labelsPath != "" {
		labels, err := mermaid.LoadLabels(labelsPath)
		if err != nil {
			return mermaid.Options{}, err
		}
		opts.FunctionLabels = labels
	}
	return opts, nil
}

// runGenerate reads the flows, builds the diagram and writes it to the
// requested destination.
func (c *CLI) runGenerate(input string, opts *generateOpts) error {
	c.Logger.Infof("Reading flows from %s", input)
	flows, err := c.loadFlows(input)
	if err != nil {
		return err
	}

	bopts, err := c.buildOptions(opts.labels, opts.threshold)
	if err != nil {
		return err
	}

	prog := c.newProgress()
	res, err := mermaid.Build(flows, bopts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated diagram from %d flows", len(flows)))

	text := res.Text
	if opts.output == "" {
		text += "\n"
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open output %s", opts.output)
	}
	defer out.Close()

	if _, err := io.WriteString(out, text); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write diagram")
	}

	if opts.output != "" {
		printSuccess("Wrote diagram to %s", opts.output)
		printDiagramStats(res.Stats)
	}
	return nil
}
