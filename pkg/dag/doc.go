// Package dag provides the working graph used by the hierarchical layout
// engine for class, component and deployment diagrams.
//
// # Overview
//
// Strata lays out diagrams with a Sugiyama-style layered pipeline: cycles are
// broken, nodes are ranked into layers, long edges are subdivided through
// dummy nodes, layers are reordered to minimize crossings, and coordinates
// are assigned. This package provides the arena-style graph that flows
// through those stages.
//
// Nodes and edges are stored in plain tables indexed by string identifiers,
// so cyclic inputs never produce pointer cycles; back edges are represented
// by a per-edge Reversed flag instead of any back-reference structure.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [Graph.AddNode] and edges with
// [Graph.AddEdge]. Nodes carry their measured size; layers, orders and
// coordinates are filled in by the pipeline:
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "app", Width: 120, Height: 60})
//	g.AddNode(dag.Node{ID: "lib", Width: 120, Height: 60})
//	g.AddEdge(dag.Edge{From: "app", To: "lib"})
//
// Query the structure with [Graph.Children], [Graph.Parents],
// [Graph.NodesInLayer] and related methods.
//
// # Node Kinds
//
//   - [NodeKindReal]: original nodes handed in by the graph builder
//   - [NodeKindDummy]: synthetic routing points inserted on edges that span
//     more than one layer
//
// Dummy nodes are recorded on their owning edge's Chain, which lets the
// router collapse each chain back into a single polyline so the final result
// exposes only the original logical edge.
//
// # Edge Crossings
//
// The [CountCrossings] and [CountLayerCrossings] functions use a Fenwick
// tree (binary indexed tree) to count inversions in O(E log V) time,
// enabling cheap evaluation of candidate orderings during crossing
// minimization.
//
// # Determinism and Concurrency
//
// All accessors iterate in insertion order or sorted ID order, never in Go
// map order, so identical input graphs always produce identical results. A
// Graph is owned by exactly one layout call and is not safe for concurrent
// use; independent graphs may be laid out in parallel without locking.
//
// # Related Packages
//
// The [transform] subpackage provides the pipeline stages that mutate the
// graph in place: cycle breaking, layer assignment and edge subdivision.
//
// [transform]: github.com/jentor/strata/pkg/dag/transform
package dag
