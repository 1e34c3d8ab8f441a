package layout

import (
	"math"
	"testing"

	"github.com/jentor/strata/pkg/dag"
	"github.com/jentor/strata/pkg/errors"
)

type edgeSpec struct {
	from, to string
	labelW   float64
	labelH   float64
}

func buildGraph(t *testing.T, nodes []dag.Node, edges []edgeSpec) *dag.Graph {
	t.Helper()
	g := dag.New()
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%q) failed: %v", n.ID, err)
		}
	}
	for _, e := range edges {
		err := g.AddEdge(dag.Edge{
			From: e.from, To: e.to,
			LabelWidth: e.labelW, LabelHeight: e.labelH,
		})
		if err != nil {
			t.Fatalf("AddEdge(%q, %q) failed: %v", e.from, e.to, err)
		}
	}
	return g
}

func sizedNodes(ids ...string) []dag.Node {
	nodes := make([]dag.Node, len(ids))
	for i, id := range ids {
		nodes[i] = dag.Node{ID: id, Width: 120, Height: 40}
	}
	return nodes
}

func TestComputeBasicTriangle(t *testing.T) {
	// a->b->c plus the shortcut a->c, which must be threaded through a
	// dummy on the middle layer.
	g := buildGraph(t, sizedNodes("a", "b", "c"), []edgeSpec{
		{from: "a", to: "b"}, {from: "b", to: "c"}, {from: "a", to: "c"},
	})

	res, err := Compute(g, DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}

	if len(res.Nodes) != 3 {
		t.Fatalf("got %d boxes, want 3 (dummies must not leak)", len(res.Nodes))
	}
	if len(res.Edges) != 3 {
		t.Fatalf("got %d paths, want 3", len(res.Edges))
	}

	a, _ := res.Node("a")
	b, _ := res.Node("b")
	c, _ := res.Node("c")
	if !(a.Y < b.Y && b.Y < c.Y) {
		t.Errorf("layer stacking broken: a.Y=%v b.Y=%v c.Y=%v", a.Y, b.Y, c.Y)
	}

	var shortcut *Path
	for i := range res.Edges {
		if res.Edges[i].From == "a" && res.Edges[i].To == "c" {
			shortcut = &res.Edges[i]
		}
	}
	if shortcut == nil {
		t.Fatal("path a->c missing")
	}
	if len(shortcut.Points) < 3 {
		t.Errorf("a->c has %d points, want >= 3 (must bend at the dummy)", len(shortcut.Points))
	}
}

func TestComputeCycleReportsOriginalDirections(t *testing.T) {
	g := buildGraph(t, sizedNodes("a", "b"), []edgeSpec{
		{from: "a", to: "b"}, {from: "b", to: "a"},
	})

	res, err := Compute(g, DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}

	want := map[[2]string]bool{{"a", "b"}: false, {"b", "a"}: false}
	for _, p := range res.Edges {
		key := [2]string{p.From, p.To}
		if _, ok := want[key]; !ok {
			t.Errorf("unexpected path %s->%s", p.From, p.To)
			continue
		}
		want[key] = true
	}
	for key, seen := range want {
		if !seen {
			t.Errorf("path %s->%s missing from result", key[0], key[1])
		}
	}
}

func TestComputeResourceLimits(t *testing.T) {
	tests := []struct {
		name string
		tune func(*Config)
	}{
		{name: "node limit", tune: func(c *Config) { c.MaxNodes = 2 }},
		{name: "edge limit", tune: func(c *Config) { c.MaxEdges = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, sizedNodes("a", "b", "c"), []edgeSpec{
				{from: "a", to: "b"}, {from: "b", to: "c"},
			})
			cfg := DefaultConfig()
			tt.tune(&cfg)

			_, err := Compute(g, cfg)
			if !errors.Is(err, errors.ErrCodeResourceLimit) {
				t.Errorf("got error %v, want code %s", err, errors.ErrCodeResourceLimit)
			}
		})
	}
}

func TestComputeInvalidConfig(t *testing.T) {
	g := buildGraph(t, sizedNodes("a"), nil)
	cfg := DefaultConfig()
	cfg.NodeSpacing = -1

	_, err := Compute(g, cfg)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("got error %v, want code %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestComputeNilGraph(t *testing.T) {
	_, err := Compute(nil, DefaultConfig())
	if !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("got error %v, want code %s", err, errors.ErrCodeInvalidGraph)
	}
}

func TestComputeNoOverlapWithinLayers(t *testing.T) {
	// Wide fan: one root with six children sharing a layer.
	ids := []string{"root", "c1", "c2", "c3", "c4", "c5", "c6"}
	var edges []edgeSpec
	for _, c := range ids[1:] {
		edges = append(edges, edgeSpec{from: "root", to: c})
	}
	g := buildGraph(t, sizedNodes(ids...), edges)

	cfg := DefaultConfig()
	res, err := Compute(g, cfg)
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}

	byY := make(map[float64][]Box)
	for _, b := range res.Nodes {
		byY[b.Y] = append(byY[b.Y], b)
	}
	for y, row := range byY {
		for i := 0; i < len(row); i++ {
			for j := i + 1; j < len(row); j++ {
				a, b := row[i], row[j]
				if a.X > b.X {
					a, b = b, a
				}
				if gap := b.X - (a.X + a.Width); gap < cfg.NodeSpacing-1e-9 {
					t.Errorf("row y=%v: %q and %q separated by %v, want >= %v",
						y, a.ID, b.ID, gap, cfg.NodeSpacing)
				}
			}
		}
	}
}

func TestComputeBoundsContainEverything(t *testing.T) {
	g := buildGraph(t, sizedNodes("a", "b", "c", "d"), []edgeSpec{
		{from: "a", to: "b"}, {from: "a", to: "c"}, {from: "b", to: "d"}, {from: "c", to: "d"},
	})
	cfg := DefaultConfig()

	res, err := Compute(g, cfg)
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}
	for _, b := range res.Nodes {
		if b.X < cfg.Margin-1e-9 || b.Y < cfg.Margin-1e-9 {
			t.Errorf("box %q at (%v, %v) violates margin %v", b.ID, b.X, b.Y, cfg.Margin)
		}
		if b.X+b.Width > res.Width+1e-9 || b.Y+b.Height > res.Height+1e-9 {
			t.Errorf("box %q exceeds bounds %vx%v", b.ID, res.Width, res.Height)
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	build := func() *dag.Graph {
		return buildGraph(t, sizedNodes("a", "b", "c", "d", "e", "f"), []edgeSpec{
			{from: "a", to: "d"}, {from: "a", to: "e"}, {from: "b", to: "d"},
			{from: "b", to: "f"}, {from: "c", to: "e"}, {from: "c", to: "f"},
			{from: "d", to: "f"},
		})
	}

	first, err := Compute(build(), DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}
	for run := 0; run < 5; run++ {
		got, err := Compute(build(), DefaultConfig())
		if err != nil {
			t.Fatalf("run %d: Compute() failed: %v", run, err)
		}
		if got.Width != first.Width || got.Height != first.Height {
			t.Fatalf("run %d: bounds differ: %vx%v vs %vx%v",
				run, got.Width, got.Height, first.Width, first.Height)
		}
		for i, b := range got.Nodes {
			if b != first.Nodes[i] {
				t.Fatalf("run %d: box %d differs: %+v vs %+v", run, i, b, first.Nodes[i])
			}
		}
		for i, p := range got.Edges {
			q := first.Edges[i]
			if p.From != q.From || p.To != q.To || len(p.Points) != len(q.Points) {
				t.Fatalf("run %d: path %d differs: %+v vs %+v", run, i, p, q)
			}
			for k := range p.Points {
				if p.Points[k] != q.Points[k] {
					t.Fatalf("run %d: path %d point %d differs", run, i, k)
				}
			}
		}
	}
}

func TestComputeSelfLoop(t *testing.T) {
	g := buildGraph(t, sizedNodes("a", "b"), []edgeSpec{
		{from: "a", to: "a"}, {from: "a", to: "b"},
	})

	res, err := Compute(g, DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}

	var loop *Path
	for i := range res.Edges {
		if res.Edges[i].From == "a" && res.Edges[i].To == "a" {
			loop = &res.Edges[i]
		}
	}
	if loop == nil {
		t.Fatal("self-loop path missing")
	}
	if len(loop.Points) != 4 {
		t.Fatalf("self-loop has %d points, want 4", len(loop.Points))
	}

	// The loop must sit entirely to the right of the node's right edge.
	a, _ := res.Node("a")
	for _, p := range loop.Points {
		if p.X < a.X+a.Width-1e-9 {
			t.Errorf("loop point (%v, %v) not beside the node", p.X, p.Y)
		}
	}
}

func TestComputeLabelAnchor(t *testing.T) {
	g := buildGraph(t, sizedNodes("a", "b"), []edgeSpec{
		{from: "a", to: "b", labelW: 60, labelH: 14},
	})

	res, err := Compute(g, DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}

	p := res.Edges[0]
	if p.LabelAnchor == nil {
		t.Fatal("labeled edge has no anchor")
	}
	first, last := p.Points[0], p.Points[len(p.Points)-1]
	midY := (first.Y + last.Y) / 2
	if math.Abs(p.LabelAnchor.Y-midY) > 1e-9 {
		t.Errorf("anchor Y = %v, want midpoint %v", p.LabelAnchor.Y, midY)
	}

	// Unlabeled edges carry no anchor.
	g2 := buildGraph(t, sizedNodes("a", "b"), []edgeSpec{{from: "a", to: "b"}})
	res2, err := Compute(g2, DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}
	if res2.Edges[0].LabelAnchor != nil {
		t.Error("unlabeled edge got an anchor")
	}
}

func TestComputeOrthogonalRouting(t *testing.T) {
	g := buildGraph(t, sizedNodes("a", "b", "c"), []edgeSpec{
		{from: "a", to: "b"}, {from: "a", to: "c"}, {from: "b", to: "c"},
	})
	cfg := DefaultConfig()
	cfg.RoutingStyle = RoutingOrthogonal

	res, err := Compute(g, cfg)
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}

	for _, p := range res.Edges {
		for i := 1; i < len(p.Points); i++ {
			prev, cur := p.Points[i-1], p.Points[i]
			if prev.X != cur.X && prev.Y != cur.Y {
				t.Errorf("path %s->%s has diagonal segment (%v,%v)->(%v,%v)",
					p.From, p.To, prev.X, prev.Y, cur.X, cur.Y)
			}
		}
	}
}

func TestComputeOrthogonalAvoidsTallNodes(t *testing.T) {
	// A tall node makes its layer's band much deeper than LayerSpacing.
	// Horizontal runs from its short layer-mates must stay in the gap
	// between bands instead of cutting through the tall box.
	nodes := []dag.Node{
		{ID: "w", Width: 80, Height: 40},
		{ID: "tall", Width: 100, Height: 300},
		{ID: "s", Width: 80, Height: 40},
		{ID: "v", Width: 100, Height: 40},
	}
	edges := []edgeSpec{
		{from: "w", to: "v"}, {from: "tall", to: "v"}, {from: "s", to: "v"},
	}
	cfg := DefaultConfig()
	cfg.RoutingStyle = RoutingOrthogonal

	res, err := Compute(buildGraph(t, nodes, edges), cfg)
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}

	for _, p := range res.Edges {
		for i := 1; i < len(p.Points); i++ {
			prev, cur := p.Points[i-1], p.Points[i]
			if prev.Y != cur.Y {
				continue
			}
			lo, hi := math.Min(prev.X, cur.X), math.Max(prev.X, cur.X)
			for _, box := range res.Nodes {
				if box.ID == p.From || box.ID == p.To {
					continue
				}
				insideY := prev.Y > box.Y && prev.Y < box.Y+box.Height
				overlapsX := hi > box.X && lo < box.X+box.Width
				if insideY && overlapsX {
					t.Errorf("path %s->%s run at y=%v from x=%v..%v cuts through box %q",
						p.From, p.To, prev.Y, lo, hi, box.ID)
				}
			}
		}
	}
}

func TestComputeParallelEdgesSeparated(t *testing.T) {
	g := buildGraph(t, sizedNodes("a", "b"), []edgeSpec{
		{from: "a", to: "b"}, {from: "a", to: "b"},
	})

	res, err := Compute(g, DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}
	if len(res.Edges) != 2 {
		t.Fatalf("got %d paths, want 2", len(res.Edges))
	}
	if res.Edges[0].Points[0].X == res.Edges[1].Points[0].X {
		t.Error("parallel edges share a lane")
	}
}

func TestComputeEmptyGraph(t *testing.T) {
	res, err := Compute(dag.New(), DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}
	if len(res.Nodes) != 0 || len(res.Edges) != 0 {
		t.Errorf("empty graph produced %d boxes, %d paths", len(res.Nodes), len(res.Edges))
	}
}
