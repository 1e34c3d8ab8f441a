package layout

// Point is a position in diagram coordinates.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Box is the final axis-aligned placement of one caller-supplied node.
type Box struct {
	ID     string  `json:"id" bson:"id"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Path is the routed geometry of one logical edge. From and To always hold
// the caller's original direction, regardless of any internal reversal
// during cycle breaking, and Points runs from From to To. LabelAnchor is nil
// when the edge has no label.
type Path struct {
	From        string  `json:"from" bson:"from"`
	To          string  `json:"to" bson:"to"`
	Points      []Point `json:"points" bson:"points"`
	LabelAnchor *Point  `json:"label_anchor,omitempty" bson:"label_anchor,omitempty"`
}

// Result is the immutable output of one layout call: final node boxes and
// routed edge paths, ready for a renderer. Dummy nodes never appear here -
// only their effect on the paths does. A Result has no further lifecycle; it
// is handed to the renderer and discarded.
type Result struct {
	// Width and Height are the overall diagram bounds including margins.
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	// Nodes holds one box per caller-supplied node, in input order.
	Nodes []Box `json:"nodes" bson:"nodes"`

	// Edges holds one routed path per caller-supplied edge, in input order.
	Edges []Path `json:"edges" bson:"edges"`
}

// Node returns the box for the given node ID and true, or a zero box and
// false if the ID is unknown.
func (r *Result) Node(id string) (Box, bool) {
	for _, b := range r.Nodes {
		if b.ID == id {
			return b, true
		}
	}
	return Box{}, false
}
