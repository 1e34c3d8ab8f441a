// Package graph defines the boundary format for layout requests.
//
// # Overview
//
// A [Document] carries the logical graph a renderer wants laid out: node
// IDs with their measured box sizes and directed edges with optional label
// sizes. Text measurement happens on the caller's side; the layout engine
// treats every node as an opaque rectangle.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"id": "app", "width": 120, "height": 40},
//	    {"id": "core", "width": 96, "height": 40}
//	  ],
//	  "edges": [
//	    {"from": "app", "to": "core", "label_width": 52, "label_height": 14}
//	  ]
//	}
//
// Cycles, self-loops and parallel edges are all legal here; the engine
// handles them during layout. The only hard requirements are unique
// non-empty node IDs and edge endpoints that reference declared nodes.
//
// # Usage
//
//	doc, err := graph.ImportJSON("diagram.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, err := doc.ToDAG()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := layout.Compute(g, layout.DefaultConfig())
//
// The same structs serialize to BSON for the optional layout store.
package graph
