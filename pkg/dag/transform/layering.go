package transform

import "github.com/jentor/strata/pkg/dag"

// AssignLayers assigns every node an integer layer using longest-path
// layering: source nodes (no incoming segments) sit at layer 0 and every
// other node is placed one past the deepest of its predecessors.
//
// AssignLayers performs a topological traversal (Kahn's algorithm):
//  1. Initialize all source nodes (in-degree 0) at layer 0 and enqueue them
//  2. Process the queue: raise each child to max(parent layer + 1)
//  3. Decrement in-degree counters; enqueue newly zero-degree nodes
//  4. Repeat until the queue is empty
//
// Existing layer assignments are overwritten.
//
// Returns [dag.ErrGraphHasCycle] if the traversal cannot cover every node.
// That is a defensive check: after [BreakCycles] it indicates a bug in the
// cycle breaker, not bad input.
//
// Time complexity is O(V + E); space is O(V) for the queue and counters.
func AssignLayers(g *dag.Graph) error {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	layers := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	processed := 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		processed++

		for _, child := range g.Children(curr) {
			if layer := layers[curr] + 1; layer > layers[child] {
				layers[child] = layer
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if processed < len(nodes) {
		return dag.ErrGraphHasCycle
	}

	g.SetLayers(layers)
	return nil
}
