package transform

import "github.com/jentor/strata/pkg/dag"

// BreakCycles makes the graph acyclic by reversing back edges in place.
//
// A depth-first traversal classifies any edge reaching a node currently on
// the DFS stack as a back edge; its endpoints are swapped and its Reversed
// flag toggled so the caller's original direction stays recoverable.
// Self-loops are flagged and detached from the adjacency for special
// handling by the router.
//
// The traversal starts at source nodes and then covers any remaining nodes,
// both sorted by ID, and follows outgoing edges in insertion order, so the
// reversal set is deterministic for identical input. It is not guaranteed to
// be minimum (that problem is NP-hard).
//
// Returns the number of reversed edges.
func BreakCycles(g *dag.Graph) int {
	const (
		white = iota
		gray
		black
	)

	type halfEdge struct {
		to  string
		idx int
	}

	// Outgoing edges per node in edge insertion order, self-loops peeled off.
	outgoing := make(map[string][]halfEdge, g.NodeCount())
	reversed := 0
	for i := 0; i < g.EdgeCount(); i++ {
		e := g.EdgeAt(i)
		if e.From == e.To {
			e.SelfLoop = true
			continue
		}
		outgoing[e.From] = append(outgoing[e.From], halfEdge{to: e.To, idx: i})
	}

	color := make(map[string]int, g.NodeCount())
	var backEdges []int

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, he := range outgoing[node] {
			switch color[he.to] {
			case white:
				dfs(he.to)
			case gray:
				backEdges = append(backEdges, he.idx)
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	for _, id := range g.SortedNodeIDs() {
		if color[id] == white {
			dfs(id)
		}
	}

	for _, idx := range backEdges {
		e := g.EdgeAt(idx)
		e.From, e.To = e.To, e.From
		e.Reversed = !e.Reversed
		reversed++
	}

	g.RebuildAdjacency()
	return reversed
}
