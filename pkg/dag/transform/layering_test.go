package transform

import (
	"errors"
	"testing"

	"github.com/jentor/strata/pkg/dag"
)

func TestAssignLayers(t *testing.T) {
	tests := []struct {
		name       string
		nodes      []string
		edges      [][2]string
		wantLayers map[string]int
	}{
		{
			name:       "linear chain",
			nodes:      []string{"a", "b", "c"},
			edges:      [][2]string{{"a", "b"}, {"b", "c"}},
			wantLayers: map[string]int{"a": 0, "b": 1, "c": 2},
		},
		{
			name:       "longest path wins",
			nodes:      []string{"a", "b", "c"},
			edges:      [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}},
			wantLayers: map[string]int{"a": 0, "b": 1, "c": 2},
		},
		{
			name:       "diamond",
			nodes:      []string{"a", "b", "c", "d"},
			edges:      [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
			wantLayers: map[string]int{"a": 0, "b": 1, "c": 1, "d": 2},
		},
		{
			name:       "disconnected components",
			nodes:      []string{"a", "b", "x", "y"},
			edges:      [][2]string{{"a", "b"}, {"x", "y"}},
			wantLayers: map[string]int{"a": 0, "b": 1, "x": 0, "y": 1},
		},
		{
			name:       "isolated node",
			nodes:      []string{"a", "b", "lone"},
			edges:      [][2]string{{"a", "b"}},
			wantLayers: map[string]int{"a": 0, "b": 1, "lone": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, tt.nodes, tt.edges)
			if err := AssignLayers(g); err != nil {
				t.Fatalf("AssignLayers() failed: %v", err)
			}
			for id, want := range tt.wantLayers {
				n, ok := g.Node(id)
				if !ok {
					t.Fatalf("node %q missing", id)
				}
				if n.Layer != want {
					t.Errorf("node %q on layer %d, want %d", id, n.Layer, want)
				}
			}
		})
	}
}

func TestAssignLayersRejectsCycle(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
	err := AssignLayers(g)
	if !errors.Is(err, dag.ErrGraphHasCycle) {
		t.Errorf("got error %v, want ErrGraphHasCycle", err)
	}
}

// Every segment must span exactly one layer after subdivision, which depends
// on layering placing each node directly below its deepest parent.
func TestAssignLayersParentsAlwaysAbove(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}, {"d", "e"}, {"a", "e"}},
	)
	if err := AssignLayers(g); err != nil {
		t.Fatalf("AssignLayers() failed: %v", err)
	}
	for _, n := range g.Nodes() {
		for _, parent := range g.Parents(n.ID) {
			p, _ := g.Node(parent)
			if p.Layer >= n.Layer {
				t.Errorf("parent %q (layer %d) not above %q (layer %d)", p.ID, p.Layer, n.ID, n.Layer)
			}
		}
	}
}
