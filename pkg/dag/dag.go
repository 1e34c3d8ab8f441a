package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrGraphHasCycle is returned by layering when a topological traversal
	// cannot cover every node. After cycle breaking this indicates a bug in
	// the cycle breaker, not bad input.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// NodeKind distinguishes caller-supplied nodes from synthetic routing nodes
// created during edge subdivision.
type NodeKind int

const (
	// NodeKindReal represents an original node handed in by the caller.
	NodeKindReal NodeKind = iota
	// NodeKindDummy represents a synthetic routing point inserted on an edge
	// that spans more than one layer. Dummy nodes participate fully in
	// ordering and coordinate assignment but never appear in the final result.
	NodeKindDummy
)

// Node is a vertex in the layout graph. Real nodes carry the intrinsic size
// measured by the caller; dummy nodes have near-zero size so long edges can
// thread between their neighbours without claiming visual space.
//
// Layer, Order, X and Y start at zero and are filled in by the pipeline
// stages. The zero value is not usable - ID must be set before adding to a
// Graph.
type Node struct {
	ID     string  // Unique identifier
	Width  float64 // Intrinsic width as measured by the caller
	Height float64 // Intrinsic height as measured by the caller

	Layer int     // Layer assignment (0 = top, increasing downward)
	Order int     // Index within the layer after crossing minimization
	X, Y  float64 // Final top-left corner after coordinate assignment

	Kind NodeKind
}

// IsDummy reports whether the node is a synthetic routing point.
func (n *Node) IsDummy() bool { return n.Kind == NodeKindDummy }

// CenterX returns the horizontal center of the node's box.
func (n *Node) CenterX() float64 { return n.X + n.Width/2 }

// CenterY returns the vertical center of the node's box.
func (n *Node) CenterY() float64 { return n.Y + n.Height/2 }

// Edge is a directed connection between two nodes. From and To hold the
// processing direction used by the pipeline; when Reversed is set the caller
// originally supplied the opposite direction and [Edge.Source] / [Edge.Target]
// recover it. Parallel edges between the same pair are permitted.
type Edge struct {
	From string // Processing-direction source node ID
	To   string // Processing-direction target node ID

	// Reversed records that cycle breaking swapped From and To. The routed
	// output always reports the caller's original direction.
	Reversed bool

	// SelfLoop marks an edge whose endpoints coincide. Self-loops are
	// detached from the adjacency during cycle breaking and routed as
	// fixed-shape loops beside the node.
	SelfLoop bool

	// Chain is the ordered node sequence the edge threads through after
	// subdivision: the processing-direction endpoints plus any dummy nodes.
	// Nil until subdivision runs.
	Chain []string

	// LabelWidth and LabelHeight hold the measured size of the edge label,
	// or zero when the edge is unlabeled.
	LabelWidth  float64
	LabelHeight float64
}

// Source returns the caller's original source node ID.
func (e *Edge) Source() string {
	if e.Reversed {
		return e.To
	}
	return e.From
}

// Target returns the caller's original target node ID.
func (e *Edge) Target() string {
	if e.Reversed {
		return e.From
	}
	return e.To
}

// HasLabel reports whether the caller supplied a measured label for the edge.
func (e *Edge) HasLabel() bool { return e.LabelWidth > 0 || e.LabelHeight > 0 }

// Graph is the working graph for one layout call. It is owned exclusively by
// the engine for the duration of that call and discarded on return, so
// independent layouts may run concurrently without locking.
//
// All iteration is deterministic: nodes are visited in insertion order or
// sorted by ID, edges in insertion order, never in Go map order. Determinism
// of the final coordinates depends on this.
//
// The zero value is not usable - use New to create a valid Graph.
type Graph struct {
	nodes    map[string]*Node
	order    []string // node IDs in insertion order
	edges    []Edge
	outgoing map[string][]string // nodeID -> segment successors
	incoming map[string][]string // nodeID -> segment predecessors
	layers   map[int][]*Node     // layer -> nodes, rebuilt by SetLayers
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		layers:   make(map[int][]*Node),
	}
}

// AddNode adds a node to the graph. Returns ErrInvalidNodeID if the node ID
// is empty, or ErrDuplicateNodeID if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	g.layers[node.Layer] = append(g.layers[node.Layer], node)
	return nil
}

// AddEdge adds a directed edge between two existing nodes and indexes its
// segments. Returns ErrUnknownSourceNode or ErrUnknownTargetNode when an
// endpoint has not been declared. Parallel edges and self-loops are allowed.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	g.edges = append(g.edges, e)
	if !e.SelfLoop {
		g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
		g.incoming[e.To] = append(g.incoming[e.To], e.From)
	}
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The returned pointer refers to the live node, so stages may update
// layer, order and coordinates in place.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the live node structs.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// SortedNodeIDs returns all node IDs sorted lexicographically. This is the
// deterministic visitation order used by cycle breaking.
func (g *Graph) SortedNodeIDs() []string {
	ids := slices.Clone(g.order)
	slices.Sort(ids)
	return ids
}

// Edges returns a copy of all edges in insertion order. Use [Graph.EdgeAt]
// for mutating access.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// EdgeAt returns a pointer to the i-th edge for in-place mutation by the
// pipeline stages.
func (g *Graph) EdgeAt(i int) *Edge { return &g.edges[i] }

// NodeCount returns the number of nodes in the graph, dummies included.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of logical edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the segment successors of the node in deterministic
// order. After subdivision these follow the dummy chains, not the logical
// edges. The returned slice must not be modified.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the segment predecessors of the node in deterministic
// order. The returned slice must not be modified.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing segments from the node.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming segments to the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Sources returns nodes with no incoming segments, in insertion order.
func (g *Graph) Sources() []*Node {
	var sources []*Node
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, g.nodes[id])
		}
	}
	return sources
}

// SetLayers updates the layer assignments for nodes and rebuilds the layer
// index. Nodes not present in the map retain their current layer.
func (g *Graph) SetLayers(layers map[string]int) {
	g.layers = make(map[int][]*Node)
	for _, id := range g.order {
		n := g.nodes[id]
		if layer, ok := layers[id]; ok {
			n.Layer = layer
		}
		g.layers[n.Layer] = append(g.layers[n.Layer], n)
	}
}

// ApplyOrder records the per-layer orderings produced by crossing
// minimization: each node's Order field is set to its index and the layer
// index is re-sorted to match. Layers missing from the map keep their
// current arrangement.
func (g *Graph) ApplyOrder(orders map[int][]string) {
	for layer, ids := range orders {
		for i, id := range ids {
			if n, ok := g.nodes[id]; ok {
				n.Order = i
			}
		}
		row := g.layers[layer]
		slices.SortStableFunc(row, func(a, b *Node) int { return a.Order - b.Order })
	}
}

// NodesInLayer returns the nodes assigned to the given layer. Before
// ApplyOrder the order is node insertion order; afterwards it follows the
// minimized ordering. The returned slice contains live pointers.
func (g *Graph) NodesInLayer(layer int) []*Node { return g.layers[layer] }

// LayerCount returns the number of distinct layers in the graph.
func (g *Graph) LayerCount() int { return len(g.layers) }

// MaxLayer returns the highest layer index, or 0 if the graph is empty.
func (g *Graph) MaxLayer() int {
	max := 0
	for layer := range g.layers {
		if layer > max {
			max = layer
		}
	}
	return max
}

// LayerIDs returns all layer indices in ascending order.
func (g *Graph) LayerIDs() []int {
	ids := make([]int, 0, len(g.layers))
	for layer := range g.layers {
		ids = append(ids, layer)
	}
	slices.Sort(ids)
	return ids
}

// RebuildAdjacency re-derives the segment adjacency from the edge table.
// Cycle breaking calls this after reversing edges; subdivision calls it after
// recording chains. Self-loop edges contribute no segments.
func (g *Graph) RebuildAdjacency() {
	g.outgoing = make(map[string][]string, len(g.nodes))
	g.incoming = make(map[string][]string, len(g.nodes))
	for i := range g.edges {
		e := &g.edges[i]
		if e.SelfLoop {
			continue
		}
		if len(e.Chain) >= 2 {
			for j := 0; j+1 < len(e.Chain); j++ {
				g.outgoing[e.Chain[j]] = append(g.outgoing[e.Chain[j]], e.Chain[j+1])
				g.incoming[e.Chain[j+1]] = append(g.incoming[e.Chain[j+1]], e.Chain[j])
			}
			continue
		}
		g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
		g.incoming[e.To] = append(g.incoming[e.To], e.From)
	}
}

// PosMap creates a position lookup map from a slice of node IDs. The
// returned map maps each ID to its index in the slice. This is commonly used
// to convert layer orderings into fast position lookups for crossing
// calculations.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts the ID from each node in a slice, preserving order.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
