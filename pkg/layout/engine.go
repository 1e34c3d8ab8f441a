package layout

// The layout engine. Compute runs the full layered pipeline over a graph:
// cycle breaking, layer assignment, subdivision, crossing minimization,
// coordinate assignment and edge routing. The input graph is used as the
// working structure and is mutated; the returned Result is a detached
// snapshot that callers may keep and share freely.

import (
	stderrors "errors"

	"github.com/jentor/strata/pkg/dag"
	"github.com/jentor/strata/pkg/dag/transform"
	"github.com/jentor/strata/pkg/errors"
	"github.com/jentor/strata/pkg/layout/ordering"
)

// Compute lays out the given graph and returns its final geometry.
//
// The same graph with the same configuration always yields an identical
// Result. Limits are enforced up front so oversized inputs fail before any
// expensive work runs.
func Compute(g *dag.Graph, cfg Config) (*Result, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "graph is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkLimits(g, cfg); err != nil {
		return nil, err
	}

	transform.BreakCycles(g)
	if err := transform.AssignLayers(g); err != nil {
		if stderrors.Is(err, dag.ErrGraphHasCycle) {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "cycle survived cycle breaking")
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "layer assignment failed")
	}
	transform.Subdivide(g)

	orderer := &ordering.Barycentric{Sweeps: cfg.CrossingIterations}
	g.ApplyOrder(orderer.OrderLayers(g))

	width, height := assignCoordinates(g, cfg)
	paths := routeEdges(g, cfg)

	res := &Result{
		Width:  width,
		Height: height,
		Nodes:  make([]Box, 0, g.NodeCount()),
		Edges:  paths,
	}
	for _, n := range g.Nodes() {
		if n.IsDummy() {
			continue
		}
		res.Nodes = append(res.Nodes, Box{
			ID:     n.ID,
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.Height,
		})
	}
	return res, nil
}

// checkLimits rejects graphs that exceed the configured node or edge caps.
func checkLimits(g *dag.Graph, cfg Config) error {
	if cfg.MaxNodes > 0 && g.NodeCount() > cfg.MaxNodes {
		return errors.New(errors.ErrCodeResourceLimit,
			"graph has %d nodes, limit is %d", g.NodeCount(), cfg.MaxNodes)
	}
	if cfg.MaxEdges > 0 && g.EdgeCount() > cfg.MaxEdges {
		return errors.New(errors.ErrCodeResourceLimit,
			"graph has %d edges, limit is %d", g.EdgeCount(), cfg.MaxEdges)
	}
	return nil
}
