package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jentor/strata/pkg/graph"
	"github.com/jentor/strata/pkg/pipeline"
	"github.com/jentor/strata/pkg/render"
)

// layoutCommand creates the layout command for computing graph layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		configPath string
		noCache    bool
		svg        bool
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute layered layout geometry for a graph document",
		Long: `Compute layered layout geometry for a graph document.

The layout command takes a graph.json file (a node/edge document) and runs
the full layered pipeline: cycle breaking, layer assignment, crossing
minimization, coordinate assignment, and edge routing. The output is a
layout.json file with final box positions and edge polylines.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, configPath, noCache, svg)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file (default: strata.toml if present)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&svg, "svg", false, "also write an SVG rendering next to the output")

	return cmd
}

// runLayout loads the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output, configPath string, noCache, svg bool) error {
	doc, err := graph.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	cfg, cfgFile, err := loadLayoutConfig(configPath)
	if err != nil {
		return err
	}
	if cfgFile != "" {
		c.Logger.Debug("using config file", "path", cfgFile)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner("Computing layout...")
	result, err := runner.Execute(ctx, pipeline.Options{Document: doc, Config: cfg})
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Laid out %d nodes", len(doc.Nodes)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	data, err := json.MarshalIndent(result.Layout, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := os.WriteFile(outputPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)

	if svg {
		svgPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".svg"
		if err := os.WriteFile(svgPath, render.ResultSVG(result.Layout, render.SVGOptions{}), 0o644); err != nil {
			return fmt.Errorf("write svg %s: %w", svgPath, err)
		}
		printFile(svgPath)
	}

	printStats(len(doc.Nodes), len(doc.Edges), result.CacheHit)
	return nil
}
