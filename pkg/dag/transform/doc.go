// Package transform provides the graph passes that prepare a diagram graph
// for layered layout.
//
// # Overview
//
// Diagram graphs arrive as arbitrary, possibly cyclic directed multigraphs.
// This package normalizes them into the canonical form the downstream stages
// require:
//
//   - The edge relation is acyclic (back edges reversed, direction preserved
//     via a per-edge flag)
//   - Every node has an integer layer, parents strictly above children
//   - Every edge segment connects consecutive layers (long edges threaded
//     through dummy nodes)
//
// # Cycle Breaking
//
// [BreakCycles] reverses a feedback edge set found by depth-first search.
// Reversal is internal only: the routed output always reports the caller's
// original direction. Self-loops are flagged for the router and detached
// from the adjacency. The reversal set is deterministic but not guaranteed
// minimum (that problem is NP-hard).
//
// # Layer Assignment
//
// [AssignLayers] computes longest-path layers via a topological traversal.
// It fails with [dag.ErrGraphHasCycle] only if the graph is not actually
// acyclic, which after [BreakCycles] would indicate a bug rather than bad
// input.
//
// # Edge Subdivision
//
// [Subdivide] inserts one dummy node per intermediate layer on every edge
// spanning more than one layer and records the resulting chain on the edge:
//
//	Before: app (layer 0) → core (layer 3)
//	After:  app → app_dum_1 → app_dum_2 → core
//
// # Usage
//
// The passes mutate the graph in place and are applied in order:
//
//	transform.BreakCycles(g)
//	if err := transform.AssignLayers(g); err != nil { ... }
//	transform.Subdivide(g)
package transform
