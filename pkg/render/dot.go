package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/jentor/strata/pkg/dag"
	"github.com/jentor/strata/pkg/graph"
)

// DOTOptions configures DOT export.
type DOTOptions struct {
	// Detailed includes layer assignments and dummy nodes in the output.
	// Requires a graph that has been through the layout pipeline; with a
	// plain document this has no effect.
	Detailed bool
}

// ToDOT converts a boundary document to Graphviz DOT format for quick
// previews with external tooling. The resulting DOT string can be rendered
// with [DOTToSVG].
func ToDOT(doc *graph.Document) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range doc.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, n.ID)
	}

	buf.WriteString("\n")
	for _, e := range doc.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// GraphToDOT converts a working graph to DOT, optionally exposing the
// pipeline internals: dummy nodes get dashed grey boxes and every layer is
// pinned to one rank, which makes ordering problems visible at a glance.
func GraphToDOT(g *dag.Graph, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n\n")

	for _, n := range g.Nodes() {
		if n.IsDummy() && !opts.Detailed {
			continue
		}
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n, opts.Detailed))}
		if n.IsDummy() {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	if opts.Detailed {
		for _, layer := range g.LayerIDs() {
			ids := dag.NodeIDs(g.NodesInLayer(layer))
			for i := range ids {
				ids[i] = strconv.Quote(ids[i])
			}
			fmt.Fprintf(&buf, "  { rank=same; %s }\n", strings.Join(ids, "; "))
		}
		for _, n := range g.Nodes() {
			for _, child := range g.Children(n.ID) {
				fmt.Fprintf(&buf, "  %q -> %q;\n", n.ID, child)
			}
		}
	} else {
		for _, e := range g.Edges() {
			if e.SelfLoop {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source(), e.Target())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n *dag.Node, detailed bool) string {
	if !detailed {
		return n.ID
	}
	return fmt.Sprintf("%s\nlayer %d, pos %d", n.ID, n.Layer, n.Order)
}

// DOTToSVG renders a DOT graph to SVG using Graphviz.
func DOTToSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
