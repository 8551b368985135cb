package flow

import (
	"encoding/json"
	"io"
	"os"

	"github.com/Alrudin/fromto/pkg/errors"
)

// graphDoc is the node-link wire format shared with other graph tooling.
type graphDoc struct {
	Nodes []nodeDoc `json:"nodes"`
	Edges []edgeDoc `json:"edges"`
}

type nodeDoc struct {
	ID string `json:"id"`
}

type edgeDoc struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ReadJSON decodes flows from node-link JSON. Every edge becomes one flow in
// document order; nodes not referenced by any edge carry no flow and are
// dropped.
func ReadJSON(r io.Reader) ([]Flow, error) {
	var doc graphDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph JSON")
	}
	flows := make([]Flow, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		if e.From == "" || e.To == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "edge with empty endpoint: %s -> %s", e.From, e.To)
		}
		flows = append(flows, Flow{From: e.From, To: e.To})
	}
	return flows, nil
}

// WriteJSON encodes flows as node-link JSON. Nodes are emitted sorted and
// edges keep their input order, so the output is deterministic and
// round-trips through [ReadJSON].
func WriteJSON(flows []Flow, w io.Writer) error {
	nodes := Nodes(flows)
	doc := graphDoc{
		Nodes: make([]nodeDoc, len(nodes)),
		Edges: make([]edgeDoc, len(flows)),
	}
	for i, n := range nodes {
		doc.Nodes[i] = nodeDoc{ID: n}
	}
	for i, f := range flows {
		doc.Edges[i] = edgeDoc{From: f.From, To: f.To}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode graph JSON")
	}
	return nil
}

// ExportJSON writes flows as a node-link JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(flows []Flow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(flows, f)
}
