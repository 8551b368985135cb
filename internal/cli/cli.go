// Package cli implements the fromto command-line interface.
//
// This package provides commands for generating Mermaid flowcharts from
// from/to flow tables, converting flow tables to node-link JSON, and serving
// the rendered diagram over HTTP. The CLI is built using cobra with logging
// via the charmbracelet/log library.
//
// # Commands
//
//   - generate: Read a flow table and emit a Mermaid flowchart
//   - convert: Read a flow table and emit node-link JSON
//   - serve: Serve the rendered diagram over HTTP with browser rendering
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Warnings
// about skipped input rows go through the shared logger.
package cli

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Alrudin/fromto/pkg/buildinfo"
	"github.com/Alrudin/fromto/pkg/errors"
	"github.com/Alrudin/fromto/pkg/flow"
)

const (
	// defaultInput is read when neither an argument nor $FROM_TO_CSV is given.
	defaultInput = "from_to.csv"

	// inputEnvVar overrides the default input path.
	inputEnvVar = "FROM_TO_CSV"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "fromto",
		Short:        "fromto turns from/to flow tables into Mermaid flowcharts",
		Long:         `fromto reads directed "from → to" node flows from a table and renders them as a Mermaid flowchart, grouping hosts by function and data center and collapsing large groups into summary nodes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Input Helpers
// =============================================================================

// inputPath resolves the optional [input] argument, falling back to
// $FROM_TO_CSV and then to the conventional file name.
func inputPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if env := os.Getenv(inputEnvVar); env != "" {
		return env
	}
	return defaultInput
}

// readOptions wires row-skip warnings into the CLI logger.
func (c *CLI) readOptions() flow.ReadOptions {
	return flow.ReadOptions{
		Logger: func(msg string, args ...any) { c.Logger.Warnf(msg, args...) },
	}
}

// loadFlows reads flows from path and enforces the non-empty contract the
// diagram builder assumes.
func (c *CLI) loadFlows(path string) ([]flow.Flow, error) {
	flows, err := flow.ReadFile(path, c.readOptions())
	if err != nil {
		return nil, err
	}
	if len(flows) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "no flows found in %s", path)
	}
	return flows, nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// =============================================================================
// Progress
// =============================================================================

// progress tracks the start time of an operation and logs completion with
// elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time.
func (c *CLI) newProgress() *progress {
	return &progress{logger: c.Logger, start: time.Now()}
}

// done logs msg along with the elapsed time since the tracker was created.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
