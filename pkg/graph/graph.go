package graph

import (
	stderrors "errors"

	"github.com/jentor/strata/pkg/dag"
	"github.com/jentor/strata/pkg/errors"
)

// Document is the boundary representation of a layout request: the logical
// graph plus the sizes the caller has already measured for every node and
// label. It carries no positions; those come back in the layout result.
type Document struct {
	Nodes []NodeSpec `json:"nodes" bson:"nodes"`
	Edges []EdgeSpec `json:"edges" bson:"edges"`
}

// NodeSpec declares one node with its measured box size.
type NodeSpec struct {
	ID     string  `json:"id" bson:"id"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// EdgeSpec declares one directed edge. LabelWidth and LabelHeight are zero
// for unlabeled edges.
type EdgeSpec struct {
	From        string  `json:"from" bson:"from"`
	To          string  `json:"to" bson:"to"`
	LabelWidth  float64 `json:"label_width,omitempty" bson:"label_width,omitempty"`
	LabelHeight float64 `json:"label_height,omitempty" bson:"label_height,omitempty"`
}

// ToDAG validates the document and builds the working graph for a layout
// call. Structural problems surface as INVALID_GRAPH; edges referencing
// undeclared nodes surface as UNKNOWN_NODE. The returned graph is
// independent of the document.
func (d *Document) ToDAG() (*dag.Graph, error) {
	g := dag.New()
	for _, n := range d.Nodes {
		if n.Width < 0 || n.Height < 0 {
			return nil, errors.New(errors.ErrCodeInvalidGraph,
				"node %q has negative size %gx%g", n.ID, n.Width, n.Height)
		}
		if err := g.AddNode(dag.Node{ID: n.ID, Width: n.Width, Height: n.Height}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %q", n.ID)
		}
	}
	for _, e := range d.Edges {
		err := g.AddEdge(dag.Edge{
			From:        e.From,
			To:          e.To,
			LabelWidth:  e.LabelWidth,
			LabelHeight: e.LabelHeight,
		})
		if err != nil {
			if stderrors.Is(err, dag.ErrUnknownSourceNode) || stderrors.Is(err, dag.ErrUnknownTargetNode) {
				return nil, errors.Wrap(errors.ErrCodeUnknownNode, err, "edge %s->%s", e.From, e.To)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %s->%s", e.From, e.To)
		}
	}
	return g, nil
}

// FromDAG rebuilds the boundary document from a working graph, skipping
// dummy nodes. Useful for exporting a graph that was assembled
// programmatically.
func FromDAG(g *dag.Graph) *Document {
	doc := &Document{}
	for _, n := range g.Nodes() {
		if n.IsDummy() {
			continue
		}
		doc.Nodes = append(doc.Nodes, NodeSpec{ID: n.ID, Width: n.Width, Height: n.Height})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeSpec{
			From:        e.Source(),
			To:          e.Target(),
			LabelWidth:  e.LabelWidth,
			LabelHeight: e.LabelHeight,
		})
	}
	return doc
}
