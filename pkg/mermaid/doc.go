// Package mermaid builds Mermaid flowchart diagrams from node flow lists.
//
// # Overview
//
// The builder turns an ordered list of "from → to" flows into the text of a
// Mermaid flowchart. Nodes that follow the production host naming scheme
// (see [github.com/Alrudin/fromto/pkg/hostname]) are grouped by function and
// data center; large groups collapse into a single summary node so diagrams
// of big fleets stay readable.
//
// # Usage
//
//	text, err := mermaid.Generate(flows, mermaid.DefaultOptions())
//
// [Build] runs the same algorithm and additionally returns [Stats] for
// progress reporting.
//
// # Output
//
// The generated text is a plain Mermaid flowchart:
//
//	flowchart TD
//	    subgraph Syslog koncernet - fra
//	        "P-fra-sysk001"["P-fra-sysk001 Syslog koncernet"]
//	    end
//	    "gateway1"["gateway1 host"]
//	    "gateway1" --> "P-fra-sysk001"
//
// Groups over the collapse threshold are replaced by one synthetic node and
// every flow touching a member is redirected to it. Edges between two members
// of the same collapsed group become self-loops and are dropped, as are
// duplicate edges.
//
// # Determinism
//
// Output is byte-identical across calls with the same input: declarations
// are sorted (group labels, data centers, members, standalone nodes) and
// edges keep first-occurrence input order.
package mermaid
