package mermaid

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Alrudin/fromto/pkg/errors"
	"github.com/Alrudin/fromto/pkg/flow"
	"github.com/Alrudin/fromto/pkg/hostname"
)

// header is the first line of every generated diagram.
const header = "flowchart TD"

// Marker substrings for label fallbacks on nodes outside the naming scheme.
// Matched case-insensitively anywhere in the node name.
const (
	markerSyslog = "sys"
	markerIndex  = "idx"
)

// DefaultCollapseThreshold is the largest group still rendered as individual
// member nodes when no threshold is configured.
const DefaultCollapseThreshold = 5

// Options configures a diagram build.
type Options struct {
	// CollapseThreshold is the largest group rendered as individual nodes;
	// groups with more members merge into one summary node. Must be
	// non-negative. Zero collapses every group.
	CollapseThreshold int

	// FunctionLabels maps lowercase function codes to display names used for
	// group titles and node labels.
	FunctionLabels map[string]string
}

// DefaultFunctionLabels returns the built-in function code display names.
func DefaultFunctionLabels() map[string]string {
	return map[string]string{
		"sysk": "Syslog koncernet",
		"idx":  "Indexer",
	}
}

// DefaultOptions returns the standard build configuration.
func DefaultOptions() Options {
	return Options{
		CollapseThreshold: DefaultCollapseThreshold,
		FunctionLabels:    DefaultFunctionLabels(),
	}
}

// Stats summarizes one build for progress reporting.
type Stats struct {
	Nodes        int // distinct nodes in the input
	Groups       int // (function, data center) groups rendered as blocks
	Collapsed    int // groups merged into a single summary node
	Unclassified int // nodes outside the naming scheme
	Edges        int // edges emitted after de-duplication
	EdgesDropped int // flows suppressed as duplicates or self-loops
}

// Result is the outcome of one build.
type Result struct {
	Text  string
	Stats Stats
}

// Generate renders flows as a Mermaid flowchart and returns its text.
// It fails on an empty flow list or a negative collapse threshold; every
// other input is total — node names that do not classify simply become
// standalone declarations.
func Generate(flows []flow.Flow, opts Options) (string, error) {
	res, err := Build(flows, opts)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Build runs the same algorithm as [Generate] and additionally returns build
// statistics.
func Build(flows []flow.Flow, opts Options) (Result, error) {
	if len(flows) == 0 {
		return Result{}, errors.New(errors.ErrCodeEmptyInput, "no flows to diagram")
	}
	if opts.CollapseThreshold < 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidInput,
			"collapse threshold must be non-negative, got %d", opts.CollapseThreshold)
	}

	nodes := flow.Nodes(flows)
	groups := groupNodes(nodes, opts.FunctionLabels)

	stats := Stats{Nodes: len(nodes)}
	lines := []string{header}

	// collapse maps member node → synthetic node id; identity if absent.
	collapse := make(map[string]string)

	for _, label := range slices.Sorted(maps.Keys(groups)) {
		centers := groups[label]
		for _, dc := range slices.Sorted(maps.Keys(centers)) {
			members := centers[dc]
			if len(members) > opts.CollapseThreshold {
				id := strings.ReplaceAll(label, " ", "_") + "_" + dc
				lines = append(lines, fmt.Sprintf("    %q[%q]", id, label+" ("+dc+")"))
				for _, m := range members {
					collapse[m] = id
				}
				stats.Collapsed++
				continue
			}
			lines = append(lines, "    subgraph "+label+" - "+dc)
			for _, m := range members {
				lines = append(lines, fmt.Sprintf("        %q[%q]", m, nodeLabel(m, opts.FunctionLabels)))
			}
			lines = append(lines, "    end")
			stats.Groups++
		}
	}

	for _, n := range nodes {
		if _, ok := hostname.Classify(n); ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("    %q[%q]", n, nodeLabel(n, opts.FunctionLabels)))
		stats.Unclassified++
	}

	seen := make(map[flow.Flow]struct{}, len(flows))
	for _, f := range flows {
		from, to := f.From, f.To
		if id, ok := collapse[from]; ok {
			from = id
		}
		if id, ok := collapse[to]; ok {
			to = id
		}
		if from == to {
			stats.EdgesDropped++
			continue
		}
		edge := flow.Flow{From: from, To: to}
		if _, dup := seen[edge]; dup {
			stats.EdgesDropped++
			continue
		}
		seen[edge] = struct{}{}
		lines = append(lines, fmt.Sprintf("    %q --> %q", from, to))
		stats.Edges++
	}

	return Result{Text: strings.Join(lines, "\n"), Stats: stats}, nil
}

// groupNodes buckets classified nodes by function label and data center:
// function label → data center → sorted member names. Unclassified nodes are
// left out; Build declares them standalone. The function label is the mapped
// display name when the code is known, else the raw captured code.
func groupNodes(nodes []string, labels map[string]string) map[string]map[string][]string {
	groups := make(map[string]map[string][]string)
	for _, n := range nodes {
		p, ok := hostname.Classify(n)
		if !ok {
			continue
		}
		label := p.Function
		if mapped, ok := labels[strings.ToLower(p.Function)]; ok {
			label = mapped
		}
		if groups[label] == nil {
			groups[label] = make(map[string][]string)
		}
		groups[label][p.DataCenter] = append(groups[label][p.DataCenter], n)
	}
	for _, centers := range groups {
		for _, members := range centers {
			slices.Sort(members)
		}
	}
	return groups
}

// nodeLabel derives the display label for a single node declaration.
// Mapped function names win, then the syslog and indexer marker substrings,
// then the generic "host" suffix.
func nodeLabel(name string, labels map[string]string) string {
	if p, ok := hostname.Classify(name); ok {
		if mapped, ok := labels[strings.ToLower(p.Function)]; ok {
			return name + " " + mapped
		}
	}
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, markerSyslog):
		return name + " Syslog"
	case strings.Contains(lower, markerIndex):
		return name + " indexer"
	}
	return name + " host"
}
