package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/jentor/strata/pkg/layout"
)

// SVGOptions configures native SVG output.
type SVGOptions struct {
	// FontSize for node labels in pixels. Zero means 14.
	FontSize float64

	// HideLabels suppresses node ID labels, leaving bare boxes.
	HideLabels bool
}

// ResultSVG renders a computed layout directly to SVG, with no Graphviz
// involvement: every box and polyline comes straight out of the engine's
// geometry, so this is also the quickest way to eyeball what the engine
// actually produced.
func ResultSVG(res *layout.Result, opts SVGOptions) []byte {
	fontSize := opts.FontSize
	if fontSize <= 0 {
		fontSize = 14
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		res.Width, res.Height, res.Width, res.Height)
	buf.WriteString(`  <defs><marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z"/></marker></defs>` + "\n")

	for _, e := range res.Edges {
		if len(e.Points) < 2 {
			continue
		}
		pts := make([]string, len(e.Points))
		for i, p := range e.Points {
			pts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
		}
		fmt.Fprintf(&buf,
			`  <polyline points="%s" fill="none" stroke="black" marker-end="url(#arrow)"/>`+"\n",
			strings.Join(pts, " "))
	}

	for _, n := range res.Nodes {
		fmt.Fprintf(&buf,
			`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="4" fill="white" stroke="black"/>`+"\n",
			n.X, n.Y, n.Width, n.Height)
		if !opts.HideLabels {
			fmt.Fprintf(&buf,
				`  <text x="%.2f" y="%.2f" font-size="%.0f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
				n.X+n.Width/2, n.Y+n.Height/2, fontSize, html.EscapeString(n.ID))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
