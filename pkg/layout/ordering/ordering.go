package ordering

import (
	"slices"

	"github.com/jentor/strata/pkg/dag"
)

// Orderer determines the left-to-right sequence of nodes in each layer,
// aiming to minimize edge-segment crossings between adjacent layers. The
// returned map contains node IDs in left-to-right order per layer.
type Orderer interface {
	OrderLayers(g *dag.Graph) map[int][]string
}

// DefaultSweeps is the default bound on barycenter sweeps. The exact sweep
// count materially affects visual output; consumers that need stability
// across versions should set it explicitly.
const DefaultSweeps = 24

// Barycentric implements the classic Sugiyama barycenter heuristic with a
// transpose refinement.
//
// The algorithm runs alternating top-down and bottom-up sweeps. In each
// sweep every node is assigned the arithmetic mean of the positions of its
// neighbours in the adjacent layer already visited in the sweep direction,
// and the layer is stably re-sorted by that mean - ties keep the order from
// the previous sweep, so no randomness enters anywhere. After each full
// sweep, adjacent pairs whose swap would reduce crossings are transposed,
// the actual crossing count is measured, and the best ordering seen so far
// is retained (barycenter sweeps are not monotonic). The loop stops after
// Sweeps iterations, when a sweep leaves the ordering unchanged, or when a
// crossing-free ordering is found.
//
// The returned ordering is never worse than the identity ordering, and the
// whole computation is deterministic for identical input. There is no
// optimality guarantee - minimizing crossings exactly is NP-hard.
type Barycentric struct {
	// Sweeps bounds the number of down+up sweep pairs. Zero means
	// DefaultSweeps.
	Sweeps int
}

// OrderLayers implements [Orderer].
func (b Barycentric) OrderLayers(g *dag.Graph) map[int][]string {
	sweeps := b.Sweeps
	if sweeps <= 0 {
		sweeps = DefaultSweeps
	}

	layers := g.LayerIDs()
	orders := make(map[int][]string, len(layers))
	for _, layer := range layers {
		orders[layer] = dag.NodeIDs(g.NodesInLayer(layer))
	}
	if len(layers) < 2 {
		return orders
	}

	best := cloneOrders(orders)
	bestCrossings := dag.CountCrossings(g, orders)

	for i := 0; i < sweeps && bestCrossings > 0; i++ {
		changed := false

		// Top-down: order each layer by the positions of its parents above.
		for j := 1; j < len(layers); j++ {
			layer := layers[j]
			if sortByBarycenter(g, orders[layer], orders[layers[j-1]], true) {
				changed = true
			}
		}
		// Bottom-up: order each layer by the positions of its children below.
		for j := len(layers) - 2; j >= 0; j-- {
			layer := layers[j]
			if sortByBarycenter(g, orders[layer], orders[layers[j+1]], false) {
				changed = true
			}
		}

		if transpose(g, layers, orders) {
			changed = true
		}

		if crossings := dag.CountCrossings(g, orders); crossings < bestCrossings {
			bestCrossings = crossings
			best = cloneOrders(orders)
		}
		if !changed {
			break
		}
	}

	return best
}

// sortByBarycenter stably re-sorts ids by the mean position of each node's
// neighbours in the adjacent layer. Nodes without neighbours keep their
// current position as barycenter, so they stay put relative to the rest.
// Reports whether the order changed.
func sortByBarycenter(g *dag.Graph, ids, adjacent []string, useParents bool) bool {
	adjPos := dag.PosMap(adjacent)

	bary := make(map[string]float64, len(ids))
	for i, id := range ids {
		var neighbours []string
		if useParents {
			neighbours = g.Parents(id)
		} else {
			neighbours = g.Children(id)
		}

		sum, count := 0.0, 0
		for _, nb := range neighbours {
			if pos, ok := adjPos[nb]; ok {
				sum += float64(pos)
				count++
			}
		}
		if count == 0 {
			bary[id] = float64(i)
		} else {
			bary[id] = sum / float64(count)
		}
	}

	before := slices.Clone(ids)
	slices.SortStableFunc(ids, func(a, b string) int {
		switch {
		case bary[a] < bary[b]:
			return -1
		case bary[a] > bary[b]:
			return 1
		default:
			return 0
		}
	})
	return !slices.Equal(before, ids)
}

// transpose greedily swaps adjacent nodes whose exchange reduces crossings
// against both neighbouring layers. Left-to-right passes repeat until a
// pass makes no swap. Reports whether any swap happened.
func transpose(g *dag.Graph, layers []int, orders map[int][]string) bool {
	improvedAny := false
	for improved := true; improved; {
		improved = false
		for j, layer := range layers {
			ids := orders[layer]
			var abovePos, belowPos map[string]int
			if j > 0 {
				abovePos = dag.PosMap(orders[layers[j-1]])
			}
			if j+1 < len(layers) {
				belowPos = dag.PosMap(orders[layers[j+1]])
			}

			for k := 0; k+1 < len(ids); k++ {
				left, right := ids[k], ids[k+1]

				current, swapped := 0, 0
				if abovePos != nil {
					current += dag.CountPairCrossingsWithPos(g, left, right, abovePos, true)
					swapped += dag.CountPairCrossingsWithPos(g, right, left, abovePos, true)
				}
				if belowPos != nil {
					current += dag.CountPairCrossingsWithPos(g, left, right, belowPos, false)
					swapped += dag.CountPairCrossingsWithPos(g, right, left, belowPos, false)
				}

				if swapped < current {
					ids[k], ids[k+1] = right, left
					improved = true
					improvedAny = true
				}
			}
		}
	}
	return improvedAny
}

func cloneOrders(orders map[int][]string) map[int][]string {
	out := make(map[int][]string, len(orders))
	for layer, ids := range orders {
		out[layer] = slices.Clone(ids)
	}
	return out
}
