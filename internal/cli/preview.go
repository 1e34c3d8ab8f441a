package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jentor/strata/pkg/dag/transform"
	"github.com/jentor/strata/pkg/graph"
	"github.com/jentor/strata/pkg/render"
)

// previewCommand creates the preview command for quick Graphviz renderings.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		output   string
		dotOnly  bool
		layered  bool
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "preview [graph.json]",
		Short: "Render a graph document to SVG via Graphviz",
		Long: `Render a graph document to SVG via Graphviz.

Preview skips the layered layout pipeline and hands the graph straight to
Graphviz's dot engine, which is useful for sanity-checking inputs before
running 'strata layout'.

With --layered the graph is first run through cycle breaking, layer
assignment, and edge subdivision, and the rendering pins each layer to a
Graphviz rank. Add --detailed to also show the synthetic routing nodes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], output, dotOnly, layered, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.svg)")
	cmd.Flags().BoolVar(&dotOnly, "dot", false, "write DOT source instead of SVG")
	cmd.Flags().BoolVar(&layered, "layered", false, "assign layers before rendering")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show synthetic routing nodes (requires --layered)")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input, output string, dotOnly, layered, detailed bool) error {
	doc, err := graph.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	var dot string
	if layered {
		g, err := doc.ToDAG()
		if err != nil {
			return err
		}
		if reversed := transform.BreakCycles(g); reversed > 0 {
			c.Logger.Debug("broke cycles", "reversed_edges", reversed)
		}
		if err := transform.AssignLayers(g); err != nil {
			return fmt.Errorf("assign layers: %w", err)
		}
		transform.Subdivide(g)
		dot = render.GraphToDOT(g, render.DOTOptions{Detailed: detailed})
	} else {
		if detailed {
			printWarning("--detailed has no effect without --layered")
		}
		dot = render.ToDOT(doc)
	}

	outputPath := output
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if dotOnly {
		if outputPath == "" {
			outputPath = base + ".dot"
		}
		if err := os.WriteFile(outputPath, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", outputPath, err)
		}
		printSuccess("DOT written")
		printFile(outputPath)
		return nil
	}

	spinner := newSpinner("Rendering preview...")
	svg, err := render.DOTToSVG(ctx, dot)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render svg: %w", err)
	}
	spinner.Stop()

	if outputPath == "" {
		outputPath = base + ".svg"
	}
	if err := os.WriteFile(outputPath, svg, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Preview rendered")
	printFile(outputPath)
	return nil
}
