package transform

import (
	"testing"

	"github.com/jentor/strata/pkg/dag"
)

func buildGraph(t *testing.T, nodes []string, edges [][2]string) *dag.Graph {
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
	return g
}

func TestBreakCycles(t *testing.T) {
	tests := []struct {
		name         string
		nodes        []string
		edges        [][2]string
		wantReversed int
	}{
		{
			name:  "already acyclic",
			nodes: []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}},
		},
		{
			name:         "two-node cycle",
			nodes:        []string{"a", "b"},
			edges:        [][2]string{{"a", "b"}, {"b", "a"}},
			wantReversed: 1,
		},
		{
			name:         "three-node cycle",
			nodes:        []string{"a", "b", "c"},
			edges:        [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
			wantReversed: 1,
		},
		{
			name:         "two independent cycles",
			nodes:        []string{"a", "b", "c", "d"},
			edges:        [][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}},
			wantReversed: 2,
		},
		{
			name:  "diamond is not a cycle",
			nodes: []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, tt.nodes, tt.edges)
			got := BreakCycles(g)
			if got != tt.wantReversed {
				t.Errorf("BreakCycles() = %d, want %d", got, tt.wantReversed)
			}
			if err := AssignLayers(g); err != nil {
				t.Errorf("graph still cyclic after BreakCycles: %v", err)
			}
		})
	}
}

// A reversed edge must still report the caller's original direction.
func TestBreakCyclesPreservesOriginalDirection(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})

	if got := BreakCycles(g); got != 1 {
		t.Fatalf("BreakCycles() = %d, want 1", got)
	}

	var reversed *dag.Edge
	for i := 0; i < g.EdgeCount(); i++ {
		if e := g.EdgeAt(i); e.Reversed {
			reversed = e
		}
	}
	if reversed == nil {
		t.Fatal("no edge marked Reversed")
	}
	if got, want := reversed.Source(), "b"; got != want {
		t.Errorf("Source() = %q, want %q", got, want)
	}
	if got, want := reversed.Target(), "a"; got != want {
		t.Errorf("Target() = %q, want %q", got, want)
	}
	// Processing direction now agrees with the surviving edge.
	if reversed.From != "a" || reversed.To != "b" {
		t.Errorf("processing direction = %s->%s, want a->b", reversed.From, reversed.To)
	}
}

func TestBreakCyclesSelfLoop(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "a"}, {"a", "b"}})

	if got := BreakCycles(g); got != 0 {
		t.Errorf("BreakCycles() = %d, want 0 (self-loops are flagged, not reversed)", got)
	}

	loop := g.EdgeAt(0)
	if !loop.SelfLoop {
		t.Error("self-loop edge not flagged")
	}
	if got := g.OutDegree("a"); got != 1 {
		t.Errorf("OutDegree(a) = %d, want 1 (loop detached from adjacency)", got)
	}
}

func TestBreakCyclesDeterministic(t *testing.T) {
	build := func() *dag.Graph {
		return buildGraph(t,
			[]string{"n1", "n2", "n3", "n4"},
			[][2]string{{"n1", "n2"}, {"n2", "n3"}, {"n3", "n1"}, {"n3", "n4"}, {"n4", "n2"}},
		)
	}

	first := build()
	BreakCycles(first)
	for run := 0; run < 5; run++ {
		g := build()
		BreakCycles(g)
		for i := 0; i < g.EdgeCount(); i++ {
			a, b := first.EdgeAt(i), g.EdgeAt(i)
			if a.From != b.From || a.To != b.To || a.Reversed != b.Reversed {
				t.Fatalf("run %d: edge %d differs: %+v vs %+v", run, i, a, b)
			}
		}
	}
}
