package flow

import "slices"

// Flow is one directed edge request: traffic from one node to another.
type Flow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Nodes returns the sorted set of distinct node names referenced by flows,
// as source or destination.
func Nodes(flows []Flow) []string {
	seen := make(map[string]struct{}, len(flows)*2)
	for _, f := range flows {
		seen[f.From] = struct{}{}
		seen[f.To] = struct{}{}
	}
	nodes := make([]string, 0, len(seen))
	for n := range seen {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)
	return nodes
}
