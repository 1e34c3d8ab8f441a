package layout

import (
	stderrors "errors"

	"github.com/jentor/strata/pkg/errors"
)

// RoutingStyle selects how edge paths are shaped by the router.
type RoutingStyle string

const (
	// RoutingStraight routes each edge as a polyline through its chain
	// coordinates.
	RoutingStraight RoutingStyle = "straight"
	// RoutingOrthogonal restricts edge paths to horizontal/vertical runs
	// threaded through the channels between layers.
	RoutingOrthogonal RoutingStyle = "orthogonal"
)

// Default configuration values. These are configuration defaults, not
// hard-coded behavior: downstream consumers that need visual stability
// across versions should pin them explicitly.
const (
	// DefaultLayerSpacing is the vertical gap between layers.
	DefaultLayerSpacing = 80.0

	// DefaultNodeSpacing is the minimum horizontal gap between nodes that
	// share a layer.
	DefaultNodeSpacing = 50.0

	// DefaultMargin is the gap between the diagram bounds and the outermost
	// node boxes.
	DefaultMargin = 20.0

	// DefaultMaxNodes bounds the node count accepted by one layout call.
	DefaultMaxNodes = 5000

	// DefaultMaxEdges bounds the edge count accepted by one layout call.
	DefaultMaxEdges = 20000

	// DefaultCrossingIterations bounds the number of barycenter sweeps run
	// by the crossing minimizer.
	DefaultCrossingIterations = 24
)

// Config carries the per-call tuning knobs of the layout engine. The zero
// value is not usable - start from [DefaultConfig]. A Config is never
// modified by the engine, so one value may serve many concurrent calls.
type Config struct {
	// LayerSpacing is the vertical gap between consecutive layers.
	LayerSpacing float64 `json:"layer_spacing" toml:"layer_spacing"`

	// NodeSpacing is the minimum horizontal gap between node boxes sharing
	// a layer. The no-overlap invariant of the final layout is expressed in
	// terms of this value.
	NodeSpacing float64 `json:"node_spacing" toml:"node_spacing"`

	// Margin is added around the whole diagram.
	Margin float64 `json:"margin" toml:"margin"`

	// MaxNodes and MaxEdges cap the input size. Exceeding either surfaces
	// a RESOURCE_LIMIT error before any layering work happens.
	MaxNodes int `json:"max_nodes" toml:"max_nodes"`
	MaxEdges int `json:"max_edges" toml:"max_edges"`

	// CrossingIterations bounds the minimization sweeps. Non-convergence is
	// not an error: the best ordering seen within the budget is used.
	CrossingIterations int `json:"crossing_iterations" toml:"crossing_iterations"`

	// RoutingStyle selects straight or orthogonal edge paths.
	RoutingStyle RoutingStyle `json:"routing_style" toml:"routing_style"`
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		LayerSpacing:       DefaultLayerSpacing,
		NodeSpacing:        DefaultNodeSpacing,
		Margin:             DefaultMargin,
		MaxNodes:           DefaultMaxNodes,
		MaxEdges:           DefaultMaxEdges,
		CrossingIterations: DefaultCrossingIterations,
		RoutingStyle:       RoutingStraight,
	}
}

// Validate checks the configuration and returns an INVALID_CONFIG error
// describing the first violation found.
func (c Config) Validate() error {
	var errs []error
	if c.LayerSpacing < 0 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "layer_spacing must be >= 0, got %v", c.LayerSpacing))
	}
	if c.NodeSpacing < 0 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "node_spacing must be >= 0, got %v", c.NodeSpacing))
	}
	if c.Margin < 0 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "margin must be >= 0, got %v", c.Margin))
	}
	if c.MaxNodes <= 0 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "max_nodes must be > 0, got %d", c.MaxNodes))
	}
	if c.MaxEdges <= 0 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "max_edges must be > 0, got %d", c.MaxEdges))
	}
	if c.CrossingIterations <= 0 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "crossing_iterations must be > 0, got %d", c.CrossingIterations))
	}
	switch c.RoutingStyle {
	case RoutingStraight, RoutingOrthogonal:
	default:
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "routing_style must be %q or %q, got %q", RoutingStraight, RoutingOrthogonal, c.RoutingStyle))
	}
	return stderrors.Join(errs...)
}
