package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jentor/strata/pkg/dag"
	"github.com/jentor/strata/pkg/dag/transform"
	"github.com/jentor/strata/pkg/graph"
	"github.com/jentor/strata/pkg/layout/ordering"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing layered structure.
func (c *CLI) inspectCommand() *cobra.Command {
	var sweeps int

	cmd := &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Interactively browse the layered structure of a graph",
		Long: `Interactively browse the layered structure of a graph.

Inspect runs the structural half of the layout pipeline (cycle breaking,
layer assignment, edge subdivision, crossing minimization) and opens an
interactive browser over the resulting layers: which nodes each layer
holds, their left-to-right order, and how many edge crossings remain
between adjacent layers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0], sweeps)
		},
	}

	cmd.Flags().IntVar(&sweeps, "sweeps", 0, "crossing minimization sweeps (0 uses the default)")

	return cmd
}

func (c *CLI) runInspect(input string, sweeps int) error {
	doc, err := graph.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	g, err := doc.ToDAG()
	if err != nil {
		return err
	}
	reversed := transform.BreakCycles(g)
	if err := transform.AssignLayers(g); err != nil {
		return fmt.Errorf("assign layers: %w", err)
	}
	transform.Subdivide(g)
	dummies := 0
	for _, n := range g.Nodes() {
		if n.IsDummy() {
			dummies++
		}
	}
	orders := ordering.Barycentric{Sweeps: sweeps}.OrderLayers(g)
	g.ApplyOrder(orders)

	model := newInspectModel(input, g, inspectSummary{
		Reversed:  reversed,
		Dummies:   dummies,
		Crossings: dag.CountCrossings(g, orders),
	})
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("run inspector: %w", err)
	}
	return nil
}

type inspectSummary struct {
	Reversed  int
	Dummies   int
	Crossings int
}

// inspectLayer is a precomputed row set for one layer.
type inspectLayer struct {
	Layer     int
	Nodes     []*dag.Node
	Crossings int // crossings between this layer and the next
}

// inspectModel is the bubbletea model for the layer browser.
type inspectModel struct {
	Input   string
	Graph   *dag.Graph
	Summary inspectSummary
	Layers  []inspectLayer
	Cursor  int
	Height  int
	Offset  int
}

func newInspectModel(input string, g *dag.Graph, summary inspectSummary) inspectModel {
	ids := g.LayerIDs()
	layers := make([]inspectLayer, len(ids))
	for i, layer := range ids {
		layers[i] = inspectLayer{Layer: layer, Nodes: g.NodesInLayer(layer)}
		if i+1 < len(ids) {
			upper := dag.NodeIDs(g.NodesInLayer(layer))
			lower := dag.NodeIDs(g.NodesInLayer(ids[i+1]))
			layers[i].Crossings = dag.CountLayerCrossings(g, upper, lower)
		}
	}
	return inspectModel{
		Input:   input,
		Graph:   g,
		Summary: summary,
		Layers:  layers,
		Height:  12,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Layers)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g", "home":
			m.Cursor, m.Offset = 0, 0
		case "G", "end":
			m.Cursor = len(m.Layers) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layers: " + m.Input))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf(
		"%d layers · %d reversed edges · %d routing nodes · %d crossings",
		len(m.Layers), m.Summary.Reversed, m.Summary.Dummies, m.Summary.Crossings)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Layers) {
		end = len(m.Layers)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		l := m.Layers[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		real, dummy := 0, 0
		for _, n := range l.Nodes {
			if n.IsDummy() {
				dummy++
			} else {
				real++
			}
		}

		crossings := "—"
		if i+1 < len(m.Layers) {
			crossings = fmt.Sprintf("%d", l.Crossings)
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", l.Layer),
			fmt.Sprintf("%d", real),
			fmt.Sprintf("%d", dummy),
			crossings,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Layer", "Nodes", "Routing", "Crossings below").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	b.WriteString(m.renderSelected())
	return b.String()
}

// renderSelected shows the left-to-right node order of the cursor layer.
func (m inspectModel) renderSelected() string {
	if m.Cursor >= len(m.Layers) {
		return ""
	}
	l := m.Layers[m.Cursor]

	parts := make([]string, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.IsDummy() {
			parts = append(parts, listDimStyle.Render("·"))
			continue
		}
		parts = append(parts, listNormalStyle.Render(n.ID))
	}

	var b strings.Builder
	b.WriteString(StyleDim.Render(fmt.Sprintf("Layer %d order:", l.Layer)))
	b.WriteString("\n  ")
	b.WriteString(strings.Join(parts, listDimStyle.Render(" → ")))
	b.WriteString("\n")
	return b.String()
}
