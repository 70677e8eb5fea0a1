package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorui/pkg/pipeline"
	"github.com/matzehuels/anchorui/pkg/ui"
)

// resizeStep is the factor + and - scale the container by.
const resizeStep = 1.1

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
)

// inspectCommand creates the interactive tree inspector.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "inspect [scene.toml]",
		Short: "Browse a laid-out scene, toggle debug and visibility, simulate resizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.loadLayout(cmd.Context(), cmd, args[0], opts)
			if err != nil {
				return err
			}
			defer l.Root.Remove()

			final, err := tea.NewProgram(newInspectModel(l)).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(inspectModel); ok {
				w, h := m.size()
				printInfo("Final container %gx%g, %d nodes", w, h, l.Root.Len())
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", 0, "container width (default from scene or config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "container height (default from scene or config)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "start in debug mode")
	cmd.Flags().BoolVar(&opts.noImages, "no-images", false, "do not decode image sources")

	return cmd
}

type inspectRow struct {
	node  ui.Node
	depth int
}

// inspectModel is the bubbletea model of the inspector. It mutates the
// layout in place.
type inspectModel struct {
	layout *pipeline.Layout
	rows   []inspectRow
	cursor int
	offset int
	height int
}

func newInspectModel(l *pipeline.Layout) inspectModel {
	m := inspectModel{layout: l, height: 15}
	m.refresh()
	return m
}

// refresh rebuilds the rows from the tree.
func (m *inspectModel) refresh() {
	m.rows = m.rows[:0]
	m.layout.Root.Walk(func(n ui.Node, depth int) bool {
		m.rows = append(m.rows, inspectRow{node: n, depth: depth})
		return true
	})
	m.cursor = min(m.cursor, len(m.rows)-1)
}

func (m inspectModel) size() (float64, float64) {
	b := m.layout.Doc.Bounds()
	return b.Width, b.Height
}

func (m inspectModel) selected() ui.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ui.Node{}
	}
	return m.rows[m.cursor].node
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
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "d":
			m.selected().ToggleDebug()
		case "h":
			m.selected().ToggleVisibility()
		case "+", "=":
			w, h := m.size()
			m.layout.Resize(w*resizeStep, h*resizeStep)
		case "-":
			w, h := m.size()
			m.layout.Resize(max(w/resizeStep, 1), max(h/resizeStep, 1))
		}
		m.refresh()
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	w, h := m.size()
	title := "Inspect"
	if m.layout.Scene != nil && m.layout.Scene.Label != "" {
		title += " " + m.layout.Scene.Label
	}
	b.WriteString(styleTitle.Render(title))
	b.WriteString("  ")
	b.WriteString(styleNumber.Render(fmt.Sprintf("%gx%g", w, h)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  d debug  h hide  +/- resize  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.rows))
	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		label := r.node.Label()
		if label == "" {
			label = "-"
		}
		rows = append(rows, []string{
			cursor,
			strings.Repeat("  ", r.depth) + label,
			r.node.IDString(),
			r.node.Kind().String(),
			r.node.Box().String(),
			flags(r.node),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "ID", "Kind", "Box", "Flags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.offset + row
			if idx >= len(m.rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if !m.rows[idx].node.Visible() {
				base = base.Foreground(colorDim)
			} else if m.rows[idx].node.Debug() {
				base = base.Foreground(colorWarn)
			}
			if idx == m.cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))
	return b.String()
}

func flags(n ui.Node) string {
	var f []string
	if n.Debug() {
		f = append(f, "debug")
	}
	if !n.Visible() {
		f = append(f, "hidden")
	}
	return strings.Join(f, ",")
}
