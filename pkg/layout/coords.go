package layout

import (
	"slices"

	"github.com/jentor/strata/pkg/dag"
)

// alignmentPasses is the number of median-alignment sweeps run after the
// initial left-to-right placement. More passes straighten long dummy chains
// further but with quickly diminishing returns.
const alignmentPasses = 8

// assignCoordinates converts (layer, order) into final (x, y) positions and
// returns the overall diagram size including the configured margin.
//
// Vertical placement is the cumulative sum of each preceding layer's tallest
// node plus LayerSpacing. Horizontal placement starts from an order-indexed
// left-to-right packing, then alternating downward/upward passes nudge each
// node toward the median x of its neighbours in the adjacent layer - this is
// what straightens dummy-node chains - while a compaction sweep keeps every
// pair of layer-mates separated by at least NodeSpacing.
func assignCoordinates(g *dag.Graph, cfg Config) (width, height float64) {
	layers := g.LayerIDs()
	if len(layers) == 0 {
		return 2 * cfg.Margin, 2 * cfg.Margin
	}

	// Vertical: one band per layer, nodes top-aligned, dummies centered so
	// routed paths cross mid-band.
	y := cfg.Margin
	for _, layer := range layers {
		bandHeight := 0.0
		for _, n := range g.NodesInLayer(layer) {
			if n.Height > bandHeight {
				bandHeight = n.Height
			}
		}
		for _, n := range g.NodesInLayer(layer) {
			if n.IsDummy() {
				n.Y = y + bandHeight/2
			} else {
				n.Y = y
			}
		}
		y += bandHeight + cfg.LayerSpacing
	}
	height = y - cfg.LayerSpacing + cfg.Margin

	// Horizontal: initial order-indexed packing.
	for _, layer := range layers {
		x := cfg.Margin
		for _, n := range g.NodesInLayer(layer) {
			n.X = x
			x += n.Width + cfg.NodeSpacing
		}
	}

	// Median alignment, alternating sweep direction like the crossing
	// minimizer does.
	for i := 0; i < alignmentPasses; i++ {
		for j := 1; j < len(layers); j++ {
			alignLayer(g, layers[j], cfg, true)
		}
		for j := len(layers) - 2; j >= 0; j-- {
			alignLayer(g, layers[j], cfg, false)
		}
	}

	for _, n := range g.Nodes() {
		if right := n.X + n.Width + cfg.Margin; right > width {
			width = right
		}
	}
	return width, height
}

// alignLayer nudges every node of the layer toward the median center of its
// neighbours in the adjacent layer, then compacts left-to-right so that the
// order is preserved and horizontal extents stay at least NodeSpacing apart.
func alignLayer(g *dag.Graph, layer int, cfg Config, useParents bool) {
	nodes := g.NodesInLayer(layer)
	if len(nodes) == 0 {
		return
	}

	desired := make([]float64, len(nodes))
	for i, n := range nodes {
		var neighbours []string
		if useParents {
			neighbours = g.Parents(n.ID)
		} else {
			neighbours = g.Children(n.ID)
		}

		centers := make([]float64, 0, len(neighbours))
		for _, id := range neighbours {
			if nb, ok := g.Node(id); ok {
				centers = append(centers, nb.CenterX())
			}
		}
		if len(centers) == 0 {
			desired[i] = n.CenterX()
			continue
		}
		desired[i] = median(centers)
	}

	// Forward compaction: honor desired centers left-to-right without ever
	// violating the minimum separation.
	minX := cfg.Margin
	for i, n := range nodes {
		x := desired[i] - n.Width/2
		if x < minX {
			x = minX
		}
		n.X = x
		minX = n.X + n.Width + cfg.NodeSpacing
	}
}

// median returns the middle value of xs, averaging the two central values
// for even counts. xs is sorted in place.
func median(xs []float64) float64 {
	slices.Sort(xs)
	mid := len(xs) / 2
	if len(xs)%2 == 1 {
		return xs[mid]
	}
	return (xs[mid-1] + xs[mid]) / 2
}
