package ordering

import (
	"testing"

	"github.com/jentor/strata/pkg/dag"
	"github.com/jentor/strata/pkg/dag/transform"
)

func layered(t *testing.T, nodes []string, edges [][2]string) *dag.Graph {
	t.Helper()
	g := dag.New()
	for _, id := range nodes {
		if err := g.AddNode(dag.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%q) failed: %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(dag.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%q, %q) failed: %v", e[0], e[1], err)
		}
	}
	if err := transform.AssignLayers(g); err != nil {
		t.Fatalf("AssignLayers() failed: %v", err)
	}
	transform.Subdivide(g)
	return g
}

func TestBarycentricRemovesCrossings(t *testing.T) {
	// In input order the two parallel paths cross between every layer pair.
	// The minimizer must untangle them completely.
	g := layered(t,
		[]string{"a", "b", "x", "y", "p", "q"},
		[][2]string{{"a", "y"}, {"b", "x"}, {"x", "q"}, {"y", "p"}},
	)

	before := dag.CountCrossings(g, identityOrders(g))
	if before == 0 {
		t.Fatal("test graph has no initial crossings")
	}

	orders := (&Barycentric{}).OrderLayers(g)
	after := dag.CountCrossings(g, orders)
	if after != 0 {
		t.Errorf("crossings after ordering = %d, want 0", after)
	}
}

func TestBarycentricNeverIncreasesCrossings(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		edges [][2]string
	}{
		{
			name:  "already optimal",
			nodes: []string{"a", "b", "x", "y"},
			edges: [][2]string{{"a", "x"}, {"b", "y"}},
		},
		{
			name:  "dense bipartite",
			nodes: []string{"a", "b", "c", "x", "y", "z"},
			edges: [][2]string{
				{"a", "x"}, {"a", "z"}, {"b", "y"}, {"b", "x"}, {"c", "z"}, {"c", "y"},
			},
		},
		{
			name:  "long edges with dummies",
			nodes: []string{"a", "b", "m", "n", "z"},
			edges: [][2]string{{"a", "m"}, {"b", "n"}, {"m", "z"}, {"n", "z"}, {"a", "z"}, {"b", "z"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := layered(t, tt.nodes, tt.edges)
			before := dag.CountCrossings(g, identityOrders(g))
			orders := (&Barycentric{}).OrderLayers(g)
			after := dag.CountCrossings(g, orders)
			if after > before {
				t.Errorf("crossings went up: %d -> %d", before, after)
			}
		})
	}
}

func TestBarycentricDeterministic(t *testing.T) {
	build := func() *dag.Graph {
		return layered(t,
			[]string{"a", "b", "c", "d", "e", "f"},
			[][2]string{
				{"a", "d"}, {"a", "e"}, {"b", "d"}, {"b", "f"}, {"c", "e"}, {"c", "f"},
			},
		)
	}

	first := (&Barycentric{}).OrderLayers(build())
	for run := 0; run < 5; run++ {
		got := (&Barycentric{}).OrderLayers(build())
		for layer, ids := range first {
			other := got[layer]
			if len(other) != len(ids) {
				t.Fatalf("run %d: layer %d length differs", run, layer)
			}
			for i := range ids {
				if other[i] != ids[i] {
					t.Fatalf("run %d: layer %d position %d: %q vs %q",
						run, layer, i, other[i], ids[i])
				}
			}
		}
	}
}

// Nodes with no neighbours in the swept direction must hold their position
// rather than drift to an arbitrary end of the layer.
func TestBarycentricIsolatedNodeKeepsPosition(t *testing.T) {
	g := layered(t,
		[]string{"a", "x", "lone", "y"},
		[][2]string{{"a", "x"}, {"a", "y"}},
	)

	orders := (&Barycentric{}).OrderLayers(g)
	row := orders[0]
	// "lone" entered layer 0 after "a"; with no edges pulling it anywhere it
	// must still follow "a".
	if len(row) != 2 || row[0] != "a" || row[1] != "lone" {
		t.Errorf("layer 0 order = %v, want [a lone]", row)
	}
}

func TestBarycentricSingleLayer(t *testing.T) {
	g := layered(t, []string{"c", "a", "b"}, nil)

	orders := (&Barycentric{}).OrderLayers(g)
	row := orders[0]
	want := []string{"c", "a", "b"}
	if len(row) != len(want) {
		t.Fatalf("layer 0 has %d nodes, want %d", len(row), len(want))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("position %d: got %q, want %q (insertion order must hold)", i, row[i], want[i])
		}
	}
}

func identityOrders(g *dag.Graph) map[int][]string {
	orders := make(map[int][]string, g.LayerCount())
	for _, layer := range g.LayerIDs() {
		orders[layer] = dag.NodeIDs(g.NodesInLayer(layer))
	}
	return orders
}
