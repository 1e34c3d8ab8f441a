package layout

// Edge routing. Each logical edge is collapsed into a single polyline that
// follows the dummy chain created during subdivision: source bottom center,
// dummy centers in layer order, target top center. Orthogonal routing snaps
// the same waypoints to horizontal and vertical runs through the channel
// between adjacent layers.

import (
	"math"

	"github.com/jentor/strata/pkg/dag"
)

// parallelLaneGap is the horizontal separation between parallel edges that
// connect the same node pair.
const parallelLaneGap = 10.0

// routeEdges produces one Path per logical edge, in edge input order. Points
// always run in the caller's original direction even when the edge was
// reversed during cycle breaking.
func routeEdges(g *dag.Graph, cfg Config) []Path {
	// Assign lanes so parallel edges between the same pair do not overlap.
	pairTotal := make(map[[2]string]int)
	for _, e := range g.Edges() {
		pairTotal[pairKey(e)]++
	}
	pairSeen := make(map[[2]string]int)

	var chans []channel
	if cfg.RoutingStyle == RoutingOrthogonal {
		chans = layerChannels(g)
	}

	paths := make([]Path, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		key := pairKey(e)
		lane := pairSeen[key]
		pairSeen[key]++

		var pts []Point
		if e.SelfLoop {
			pts = selfLoopPoints(g, e, cfg)
		} else {
			pts = chainPoints(g, e)
			if total := pairTotal[key]; total > 1 {
				dx := (float64(lane) - float64(total-1)/2) * parallelLaneGap
				for i := range pts {
					pts[i].X += dx
				}
			}
			if cfg.RoutingStyle == RoutingOrthogonal {
				pts = orthogonalize(pts, chans)
			}
			if e.Reversed {
				reversePoints(pts)
			}
		}

		p := Path{From: e.Source(), To: e.Target(), Points: pts}
		if e.HasLabel() {
			anchor := midpoint(pts)
			p.LabelAnchor = &anchor
		}
		paths = append(paths, p)
	}
	return paths
}

func pairKey(e dag.Edge) [2]string {
	a, b := e.Source(), e.Target()
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// chainPoints walks the edge's dummy chain in processing direction. The
// first point leaves the source's bottom edge and the last point enters the
// target's top edge; dummy nodes contribute their centers.
func chainPoints(g *dag.Graph, e dag.Edge) []Point {
	ids := e.Chain
	if len(ids) == 0 {
		ids = []string{e.From, e.To}
	}
	pts := make([]Point, 0, len(ids))
	for i, id := range ids {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		switch {
		case i == 0:
			pts = append(pts, Point{X: n.CenterX(), Y: n.Y + n.Height})
		case i == len(ids)-1:
			pts = append(pts, Point{X: n.CenterX(), Y: n.Y})
		default:
			pts = append(pts, Point{X: n.CenterX(), Y: n.CenterY()})
		}
	}
	return pts
}

// selfLoopPoints renders a self loop as a fixed rectangular detour on the
// node's right side. Loop geometry does not depend on layer ordering.
func selfLoopPoints(g *dag.Graph, e dag.Edge, cfg Config) []Point {
	n, ok := g.Node(e.From)
	if !ok {
		return nil
	}
	ext := cfg.NodeSpacing / 2
	if ext < parallelLaneGap {
		ext = parallelLaneGap
	}
	right := n.X + n.Width
	return []Point{
		{X: right, Y: n.Y + n.Height/3},
		{X: right + ext, Y: n.Y + n.Height/3},
		{X: right + ext, Y: n.Y + 2*n.Height/3},
		{X: right, Y: n.Y + 2*n.Height/3},
	}
}

// channel is a horizontal strip between two adjacent layer bands that is
// guaranteed free of node boxes. Horizontal runs are confined to channels so
// they cannot slice through a node no matter how tall its layer-mates are.
type channel struct {
	top, bottom float64
}

// layerChannels derives the node-free strips from the assigned coordinates.
// Bands are the vertical extents of each layer's boxes; the strip between
// one band's bottom and the next band's top is always LayerSpacing tall for
// layers with real nodes and degenerates to a point between dummy-only ones.
func layerChannels(g *dag.Graph) []channel {
	var bands []channel // per-layer vertical extents, top to bottom
	for _, layer := range g.LayerIDs() {
		nodes := g.NodesInLayer(layer)
		if len(nodes) == 0 {
			continue
		}
		b := channel{top: math.Inf(1), bottom: math.Inf(-1)}
		for _, n := range nodes {
			if n.Y < b.top {
				b.top = n.Y
			}
			if bottom := n.Y + n.Height; bottom > b.bottom {
				b.bottom = bottom
			}
		}
		bands = append(bands, b)
	}

	chans := make([]channel, 0, len(bands))
	for i := 1; i < len(bands); i++ {
		chans = append(chans, channel{top: bands[i-1].bottom, bottom: bands[i].top})
	}
	return chans
}

// channelFor finds the channel the segment spanning [topY, bottomY] crosses.
func channelFor(chans []channel, topY, bottomY float64) (channel, bool) {
	for _, ch := range chans {
		if ch.top >= topY && ch.bottom <= bottomY {
			return ch, true
		}
	}
	return channel{}, false
}

// orthogonalize replaces each diagonal segment with a vertical drop, a
// horizontal run, and a vertical rise. The run sits midway between the
// segment's endpoints unless that height falls inside a layer band (a short
// node next to a tall layer-mate ends well above the band's bottom), in
// which case it is moved to the center of the crossed channel. Collinear
// intermediate points are removed afterwards.
func orthogonalize(pts []Point, chans []channel) []Point {
	if len(pts) < 2 {
		return pts
	}
	out := make([]Point, 0, len(pts)*3)
	out = append(out, pts[0])
	for i := 1; i < len(pts); i++ {
		prev, cur := pts[i-1], pts[i]
		if prev.X != cur.X && prev.Y != cur.Y {
			runY := prev.Y + (cur.Y-prev.Y)/2
			if ch, ok := channelFor(chans, math.Min(prev.Y, cur.Y), math.Max(prev.Y, cur.Y)); ok {
				if runY <= ch.top || runY >= ch.bottom {
					runY = ch.top + (ch.bottom-ch.top)/2
				}
			}
			out = append(out, Point{X: prev.X, Y: runY}, Point{X: cur.X, Y: runY})
		}
		out = append(out, cur)
	}
	return dropCollinear(out)
}

func dropCollinear(pts []Point) []Point {
	if len(pts) < 3 {
		return pts
	}
	out := pts[:1]
	for i := 1; i < len(pts)-1; i++ {
		a, b, c := out[len(out)-1], pts[i], pts[i+1]
		sameX := a.X == b.X && b.X == c.X
		sameY := a.Y == b.Y && b.Y == c.Y
		if sameX || sameY {
			continue
		}
		out = append(out, b)
	}
	return append(out, pts[len(pts)-1])
}

func reversePoints(pts []Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// midpoint returns the point halfway along the polyline by arc length.
func midpoint(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	if len(pts) == 1 {
		return pts[0]
	}
	var total float64
	for i := 1; i < len(pts); i++ {
		total += segLen(pts[i-1], pts[i])
	}
	if total == 0 {
		return pts[0]
	}
	half := total / 2
	for i := 1; i < len(pts); i++ {
		l := segLen(pts[i-1], pts[i])
		if half <= l {
			t := half / l
			return Point{
				X: pts[i-1].X + (pts[i].X-pts[i-1].X)*t,
				Y: pts[i-1].Y + (pts[i].Y-pts[i-1].Y)*t,
			}
		}
		half -= l
	}
	return pts[len(pts)-1]
}

func segLen(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
