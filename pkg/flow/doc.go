// Package flow reads and writes node flow lists.
//
// # Overview
//
// A flow is a directed "from → to" pair of node names, typically describing
// traffic between hosts (log shipping, indexing, forwarding). This package
// parses flow lists from delimited tables and from node-link JSON, and
// derives the distinct node set the diagram builder works on.
//
// # CSV Input
//
// The primary input is a delimited table with a header row containing "from"
// and "to" columns. Column order is free, header matching is case-insensitive
// and extra columns are ignored:
//
//	from,to,comment
//	P-fra-sysk001,P-fra-idx002,forwarder
//	gateway1,P-fra-sysk001,
//
// Rows with missing or empty endpoints are skipped with a warning through
// [ReadOptions.Logger] rather than failing the whole file.
//
// # JSON Interop
//
// Flows can also round-trip through the node-link JSON format used by other
// graph tooling:
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// [WriteJSON] emits nodes sorted and edges in input order, so the output is
// deterministic and [ReadJSON] reconstructs the same flow list.
//
// # File Dispatch
//
// [ReadFile] picks the parser from the file extension: ".json" is decoded as
// node-link JSON, everything else as a CSV table.
package flow
