package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snakebot/internal/registry"
	"github.com/vovakirdan/snakebot/internal/storage"
)

// Results layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the solver sidebar
	sidebarWidth       = 24  // Width of the solver sidebar
	maxRuns            = 100 // Max runs to load
)

// ResultsKeyMap defines the key bindings for the results screen.
type ResultsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextSolver key.Binding
	PrevSolver key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSolver, k.PrevSolver, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSolver, k.PrevSolver},
		{k.Back, k.Quit},
	}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextSolver: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next solver"),
		),
		PrevSolver: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev solver"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel is the Bubble Tea model for the stored runs of each solver.
type ResultsModel struct {
	solvers     []registry.SolverInfo
	cursor      int
	store       *storage.Store
	runs        []storage.Run
	stats       map[string]storage.SolverStats
	table       table.Model
	help        help.Model
	keys        ResultsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
	err         error
}

// NewResultsModel creates a results model opened on the given solver.
func NewResultsModel(store *storage.Store, solverID string, width, height int) ResultsModel {
	m := ResultsModel{
		solvers:     registry.List(),
		store:       store,
		keys:        DefaultResultsKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
		stats:       make(map[string]storage.SolverStats),
	}
	for i, s := range m.solvers {
		if s.ID == solverID {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.loadStats()
	m.loadRuns()
	return m
}

// createTable creates a new table sized for the current layout.
func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Length", Width: 7},
		{Title: "Ticks", Width: 8},
		{Title: "Board", Width: 7},
		{Title: "Outcome", Width: 8},
		{Title: "Seed", Width: 12},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ResultsModel) current() string {
	if len(m.solvers) == 0 {
		return ""
	}
	return m.solvers[m.cursor].ID
}

func (m *ResultsModel) loadStats() {
	if m.store == nil {
		return
	}
	stats, err := m.store.SolverStats()
	if err != nil {
		m.err = err
		return
	}
	for _, st := range stats {
		m.stats[st.Solver] = st
	}
}

func (m *ResultsModel) loadRuns() {
	m.runs = nil
	if m.store != nil && len(m.solvers) > 0 {
		runs, err := m.store.TopRuns(m.current(), maxRuns)
		if err != nil {
			m.err = err
		} else {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

func (m *ResultsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Length),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.Outcome,
			fmt.Sprintf("%d", r.Seed),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results screen.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextSolver):
			if len(m.solvers) > 0 {
				m.cursor = (m.cursor + 1) % len(m.solvers)
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevSolver):
			if len(m.solvers) > 0 {
				m.cursor = (m.cursor - 1 + len(m.solvers)) % len(m.solvers)
				m.loadRuns()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results screen.
func (m ResultsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	title := "RESULTS"
	if id := m.current(); id != "" {
		title = "RESULTS - " + registry.Title(id)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ResultsModel) statsLine() string {
	st, ok := m.stats[m.current()]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d runs  |  %.0f%% won  |  best %d  |  avg length %.1f  |  avg ticks %.0f",
		st.Runs, st.WinRate()*100, st.BestLength, st.AvgLength, st.AvgTicks)
}

func (m ResultsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Solvers\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.solvers {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + s.Title))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

func (m ResultsModel) renderNarrowLayout() string {
	var b strings.Builder

	if id := m.current(); id != "" {
		b.WriteString(centerText(fmt.Sprintf("< %s >", registry.Title(id)), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

func (m ResultsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("No database open.")
	case m.err != nil:
		return emptyStyle.Render("Cannot load runs: " + m.err.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nWatch a game or run a bench to fill this table.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m ResultsModel) IsGoingBack() bool {
	return m.goingBack
}

// RunResults runs the results screen.
// Returns true if user wants to go back to the menu, false if quitting.
func RunResults(store *storage.Store, solverID string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewResultsModel(store, solverID, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ResultsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
