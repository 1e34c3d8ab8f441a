// Package ordering provides algorithms for determining the left-to-right
// arrangement of nodes within each layer of a layered graph.
//
// # The Ordering Problem
//
// Once nodes are ranked into layers and long edges are threaded through
// dummy nodes, the remaining freedom is the order of nodes inside each
// layer. That order decides how often edge segments cross, and crossings
// dominate how readable a class or component diagram feels. Finding an
// ordering with minimum crossings is NP-hard, so the engine uses a bounded
// heuristic.
//
// # Barycentric Heuristic
//
// [Barycentric] implements the classic Sugiyama barycenter method:
//
//  1. Start from the identity ordering (node insertion order per layer)
//  2. Sweep top-down, sorting each layer by the mean position of its
//     parents in the layer above
//  3. Sweep bottom-up against the children below
//  4. Transpose adjacent pairs whose swap reduces crossings
//  5. Measure the true crossing count and keep the best ordering seen
//  6. Repeat for a bounded number of sweeps or until nothing moves
//
// Because the best ordering is kept by measured crossing count, the result
// is never worse than the identity ordering even though individual sweeps
// can regress. Ties are broken by the previous sweep's order via stable
// sorting, which makes the whole computation deterministic - a hard
// requirement, since downstream tests compare layouts by snapshot.
//
// # Usage
//
// The [Orderer] interface allows algorithms to be swapped:
//
//	var orderer ordering.Orderer = ordering.Barycentric{Sweeps: 24}
//	orders := orderer.OrderLayers(g) // map[layer][]nodeID
package ordering
