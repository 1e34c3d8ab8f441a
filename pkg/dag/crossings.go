package dag

import (
	"slices"
)

// CountCrossings returns the total number of edge-segment crossings for the
// given layer orderings. It sums the crossings between each pair of
// consecutive layers. The orders map should contain node IDs in left-to-right
// order for each layer; layers without entries are treated as empty.
//
// This is the objective function of crossing minimization: candidate
// orderings are compared by this count and the lowest one wins.
func CountCrossings(g *Graph, orders map[int][]string) int {
	layers := make([]int, 0, len(orders))
	for layer := range orders {
		layers = append(layers, layer)
	}
	slices.Sort(layers)

	crossings := 0
	for i := 0; i < len(layers)-1; i++ {
		l := layers[i]
		crossings += CountLayerCrossings(g, orders[l], orders[l+1])
	}
	return crossings
}

// CountLayerCrossings counts segment crossings between two adjacent layers
// using a Fenwick tree (binary indexed tree) for O(E log V) performance,
// where E is the number of segments between the layers and V is the number
// of nodes in the lower layer.
//
// Two segments (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// This is equivalent to counting inversions in the sequence of target
// positions when segments are sorted by source position. Returns 0 if either
// layer is empty, as no crossings can exist without segments.
func CountLayerCrossings(g *Graph, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := PosMap(lower)

	type seg struct{ upper, lower int }
	segs := make([]seg, 0, len(upper)*2)
	for i, nodeID := range upper {
		for _, child := range g.Children(nodeID) {
			if pos, ok := lowerPos[child]; ok {
				segs = append(segs, seg{i, pos})
			}
		}
	}
	if len(segs) < 2 {
		return 0
	}

	// Sort segments by source position, then by target position
	slices.SortFunc(segs, func(a, b seg) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	// Count inversions using Fenwick tree
	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, s := range segs {
		// Query: count segments seen so far with target <= s.lower
		lessOrEqual := 0
		for q := s.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		// Crossings = segments seen so far with target > s.lower
		crossings += total - lessOrEqual

		// Update: increment count at target position
		total++
		for idx := s.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}

// CountPairCrossings counts how many crossings would result from placing
// left immediately before right in their layer. If useParents is true,
// segments to the layer above are considered; otherwise segments to the
// layer below. Used by the transpose refinement to decide whether swapping
// two adjacent nodes reduces crossings.
func CountPairCrossings(g *Graph, left, right string, adjOrder []string, useParents bool) int {
	return CountPairCrossingsWithPos(g, left, right, PosMap(adjOrder), useParents)
}

// CountPairCrossingsWithPos is like [CountPairCrossings] but takes a
// precomputed position map for the adjacent layer, avoiding repeated calls
// to [PosMap] when checking many swaps against the same layer. Neighbours
// absent from adjPos are ignored.
func CountPairCrossingsWithPos(g *Graph, left, right string, adjPos map[string]int, useParents bool) int {
	var lnbr, rnbr []string
	if useParents {
		lnbr = g.Parents(left)
		rnbr = g.Parents(right)
	} else {
		lnbr = g.Children(left)
		rnbr = g.Children(right)
	}

	crossings := 0
	for _, ln := range lnbr {
		lp, ok := adjPos[ln]
		if !ok {
			continue
		}
		for _, rn := range rnbr {
			// If left's neighbour is to the right of right's neighbour, they cross
			if rp, ok := adjPos[rn]; ok && lp > rp {
				crossings++
			}
		}
	}
	return crossings
}
