package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/radialflow/pkg/highlight"
	rfio "github.com/matzehuels/radialflow/pkg/io"
	"github.com/matzehuels/radialflow/pkg/pipeline"
	"github.com/matzehuels/radialflow/pkg/radial"
	"github.com/matzehuels/radialflow/pkg/route"
	"github.com/matzehuels/radialflow/pkg/scene"
)

// Terminal cells are mapped to viewport pixels at this size so resizing the
// terminal resizes the rings.
const (
	cellWidth  = 10
	cellHeight = 20
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Key bindings
// =============================================================================

type exploreKeys struct {
	Up          key.Binding
	Down        key.Binding
	Click       key.Binding
	DoubleClick key.Binding
	Clear       key.Binding
	Secondary   key.Binding
	Quit        key.Binding
}

var defaultExploreKeys = exploreKeys{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Click:       key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("⏎", "click")),
	DoubleClick: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "double-click")),
	Clear:       key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("esc", "clear")),
	Secondary:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "secondary ring")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k exploreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.DoubleClick, k.Clear, k.Secondary, k.Quit}
}

func (k exploreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Click, k.DoubleClick, k.Clear},
		{k.Secondary, k.Quit},
	}
}

// =============================================================================
// exploreModel - Interactive layout browser
// =============================================================================

// exploreModel browses a radial layout. Every resize or secondary toggle is
// a fresh layout pass; the tracker is rebound to it and keeps its selection.
type exploreModel struct {
	ctx     context.Context
	engine  *radial.Engine
	tracker *highlight.Tracker
	router  route.Router
	scene   *scene.Scene
	degree  map[string]int // visible edges per node

	keys   exploreKeys
	help   help.Model
	cursor int
	offset int
	height int
}

func newExploreModel(ctx context.Context, engine *radial.Engine, router route.Router) *exploreModel {
	m := &exploreModel{
		ctx:     ctx,
		engine:  engine,
		tracker: highlight.NewTracker(engine.Layout()),
		router:  router,
		keys:    defaultExploreKeys,
		help:    help.New(),
		height:  15,
	}
	m.rebuild()
	return m
}

// rebuild rebinds the tracker to the engine's current layout and redraws the
// scene, keeping the cursor on the same node when it is still present. Only
// Resize and ToggleSecondary run a layout pass; selection changes just
// redecorate.
func (m *exploreModel) rebuild() {
	current := m.currentID()
	m.tracker.Rebind(m.engine.Layout())
	m.scene = scene.Build(m.engine.Layout(), m.tracker, m.router)

	m.degree = make(map[string]int, len(m.scene.Nodes))
	for _, e := range m.scene.VisibleEdges() {
		m.degree[e.Source]++
		m.degree[e.Target]++
	}

	m.cursor = 0
	for i, n := range m.scene.Nodes {
		if n.ID == current {
			m.cursor = i
			break
		}
	}
	m.scroll()
}

func (m *exploreModel) currentID() string {
	if m.scene == nil || m.cursor >= len(m.scene.Nodes) {
		return ""
	}
	return m.scene.Nodes[m.cursor].ID
}

func (m *exploreModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m *exploreModel) interact(action string) {
	id := m.currentID()
	if id == "" && action != pipeline.ActionClear {
		return
	}
	pipeline.Replay(m.ctx, m.tracker, []pipeline.Interaction{{Action: action, ID: id}})
	m.rebuild()
}

func (m *exploreModel) Init() tea.Cmd {
	return nil
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.scroll()
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.scene.Nodes)-1 {
				m.cursor++
				m.scroll()
			}
		case key.Matches(msg, m.keys.Click):
			m.interact(pipeline.ActionClick)
		case key.Matches(msg, m.keys.DoubleClick):
			m.interact(pipeline.ActionDoubleClick)
		case key.Matches(msg, m.keys.Clear):
			m.interact(pipeline.ActionClear)
		case key.Matches(msg, m.keys.Secondary):
			m.engine.ToggleSecondary()
			m.rebuild()
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.height = max(msg.Height-10, 5)
		if msg.Width > 0 && msg.Height > 0 {
			m.engine.Resize(float64(msg.Width*cellWidth), float64(msg.Height*cellHeight))
			m.rebuild()
		}
	}
	return m, nil
}

func (m *exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Radial Layout"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.status()))
	b.WriteString("\n\n")

	cfg := m.engine.Config()
	end := min(m.offset+m.height, len(m.scene.Nodes))
	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		n := m.scene.Nodes[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		mark := ""
		if n.Style.Highlighted {
			mark = iconSuccess
		}
		rows = append(rows, []string{cursor, n.ID, n.Tier.String(), fmt.Sprint(m.degree[n.ID]), mark})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Tier", "Edges", "Lit").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.offset + row
			if idx >= len(m.scene.Nodes) {
				return lipgloss.NewStyle()
			}
			n := m.scene.Nodes[idx]
			switch {
			case col == 2:
				return tierStyle(cfg, n.Tier)
			case col == 4:
				return styleSelected
			case idx == m.cursor:
				return listSelectedStyle
			case n.Style.Highlighted:
				return styleSelected
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.scene.Nodes))))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m *exploreModel) status() string {
	nodes, edges := m.tracker.Set().Len()
	secondary := "hidden"
	if m.engine.ShowSecondary() {
		secondary = "shown"
	}
	cfg := m.engine.Config()
	return fmt.Sprintf("%s · %d nodes / %d edges lit · secondary %s · %.0f×%.0f · pass %d",
		m.tracker.State(), nodes, edges, secondary, cfg.Width, cfg.Height, m.engine.Passes())
}

// =============================================================================
// Command
// =============================================================================

// exploreCommand creates the interactive explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		output string
		sel    selectionFlags
	)
	opts := pipeline.Options{View: pipeline.ViewRadial}

	cmd := &cobra.Command{
		Use:   "explore [records]",
		Short: "Browse a radial layout and its selection in the terminal",
		Long: `Browse a radial layout and its selection in the terminal.

Move through the nodes with the arrow keys, click with enter, double-click
with d and clear with esc. The terminal size is the viewport, so resizing the
window recomputes the rings. With -o the final selection is rendered on exit
(the format follows the file extension).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Interactions = sel.interactions()
			return c.runExplore(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "render the final selection to this file (.svg, .png or .json)")
	cmd.Flags().BoolVar(&opts.ShowSecondary, "secondary", false, "start with the secondary ring shown")
	cmd.Flags().StringVar(&opts.RouteMode, "route", "", "edge routing: floating, angle, dominant")
	cmd.Flags().StringVar(&opts.RouteShape, "shape", "", "edge shape: bezier, smoothstep, straight")
	sel.register(cmd)

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, opts pipeline.Options, output string) error {
	format := ""
	if output != "" {
		format = strings.TrimPrefix(filepath.Ext(output), ".")
		if err := pipeline.ValidateFormats(pipeline.ViewRadial, []string{format}); err != nil {
			return err
		}
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts.Config = &cfg
	opts.Logger = c.Logger

	records, err := rfio.ImportRecords(opts.Input)
	if err != nil {
		return fmt.Errorf("load records %s: %w", opts.Input, err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	router, err := opts.Router()
	if err != nil {
		return err
	}

	engine := radial.NewEngine(radial.NewMembership(records), opts.RadialConfig())
	m := newExploreModel(ctx, engine, router)
	pipeline.Replay(ctx, m.tracker, opts.Interactions)
	m.rebuild()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("explore: %w", err)
	}
	c.Logger.Debug("explore finished", "passes", engine.Passes(), "state", m.tracker.State())

	if output == "" {
		return nil
	}
	data, err := pipeline.RenderScene(m.scene, format, opts)
	if err != nil {
		return err
	}
	if err := rfio.WriteFile(output, data); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Saved selection")
	printFile(output)
	printSceneStats(m.scene, false)
	return nil
}
