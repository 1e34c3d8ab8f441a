package transform

import (
	"fmt"

	"github.com/jentor/strata/pkg/dag"
)

// Subdivide breaks edges that span multiple layers into chains of unit-span
// segments threaded through synthetic dummy nodes.
//
// After Subdivide every segment connects nodes in consecutive layers
// (source layer + 1 == target layer). An edge from layer 0 to layer 3 gains
// one dummy node in layers 1 and 2:
//
//	Before: app (layer 0) → core (layer 3)
//	After:  app → app_dum_1 → app_dum_2 → core
//
// The full node sequence is recorded on the edge's Chain, which is what lets
// the router collapse the dummies back into a single polyline and the final
// result expose only the original logical edge. Unit-span edges get a
// two-element chain for uniform handling. Self-loops are skipped entirely.
//
// Dummy nodes have near-zero visual size but participate fully in ordering
// and coordinate assignment, which is what lets the crossing minimizer treat
// long edges fairly against short ones.
//
// # Node IDs
//
// Dummy nodes are assigned IDs of the form "source_dum_layer" (e.g.
// "app_dum_1"). On collision a numeric suffix is appended ("app_dum_1__2").
// All generated IDs are tracked to guarantee uniqueness.
func Subdivide(g *dag.Graph) {
	gen := newIDGen(g.Nodes())

	for i := 0; i < g.EdgeCount(); i++ {
		e := g.EdgeAt(i)
		if e.SelfLoop {
			continue
		}
		src, srcOK := g.Node(e.From)
		dst, dstOK := g.Node(e.To)
		if !srcOK || !dstOK {
			continue
		}

		chain := []string{src.ID}
		for layer := src.Layer + 1; layer < dst.Layer; layer++ {
			id := gen.next(src.ID, layer)
			if err := g.AddNode(dag.Node{
				ID:    id,
				Layer: layer,
				Kind:  dag.NodeKindDummy,
			}); err != nil {
				panic(err)
			}
			chain = append(chain, id)
		}
		chain = append(chain, dst.ID)
		e.Chain = chain
	}

	g.RebuildAdjacency()
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(base string, layer int) string {
	prefix := fmt.Sprintf("%s_dum_%d", base, layer)
	id := prefix
	for i := 1; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", prefix, i)
	}
}
