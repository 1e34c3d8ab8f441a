// Package layout computes final diagram geometry for directed graphs using
// a layered (Sugiyama-style) pipeline.
//
// # Pipeline
//
// Compute runs five stages over a working graph:
//
//  1. Cycle breaking: a deterministic depth-first pass reverses back edges
//     so the graph becomes acyclic. Self loops are set aside and routed as
//     fixed loops at the end.
//  2. Layer assignment: longest-path layering places every node on the
//     lowest layer below all of its parents.
//  3. Subdivision: edges spanning more than one layer are split with dummy
//     nodes so every adjacency covers exactly one layer gap.
//  4. Ordering: barycentric sweeps reorder nodes within each layer to
//     reduce edge crossings (see the ordering subpackage).
//  5. Geometry: vertical bands per layer, median-aligned horizontal
//     positions, and per-edge polyline routing.
//
// # Basic Usage
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "a", Width: 120, Height: 40})
//	g.AddNode(dag.Node{ID: "b", Width: 120, Height: 40})
//	g.AddEdge("a", "b")
//
//	res, err := layout.Compute(g, layout.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, box := range res.Nodes {
//	    fmt.Printf("%s at (%.0f, %.0f)\n", box.ID, box.X, box.Y)
//	}
//
// # Determinism
//
// Compute is fully deterministic: the same graph and configuration always
// produce an identical Result. There is no randomness and no dependence on
// map iteration order anywhere in the pipeline.
//
// The input graph is mutated during layout and should be treated as
// consumed. The returned Result is an independent snapshot.
package layout
