package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snakebot/internal/core"
	"github.com/vovakirdan/snakebot/internal/registry"
	"github.com/vovakirdan/snakebot/internal/storage"
)

// MenuItem represents a selectable solver in the menu.
type MenuItem struct {
	SolverID string
	Title    string
	Best     int // longest stored snake, 0 when unknown
}

// MenuModel is the Bubble Tea model for the solver picker.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	quitting    bool
	selected    *MenuItem // Set when user selects a solver
	openResults bool      // True if user pressed Tab for results
}

// NewMenuModel creates a new menu model. The cursor starts on current.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, current string) MenuModel {
	solvers := registry.List()
	items := make([]MenuItem, 0, len(solvers))
	cursor := 0

	for i, s := range solvers {
		item := MenuItem{SolverID: s.ID, Title: s.Title}
		if store != nil {
			//nolint:errcheck // a missing best length only hides the column
			item.Best, _ = store.BestLength(s.ID)
		}
		if s.ID == current {
			cursor = i
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		cursor:    cursor,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionResults:
		m.openResults = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  S N A K E B O T  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Pick a solver for a %dx%d board", m.config.BoardW, m.config.BoardH), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		best := ""
		if item.Best > 0 {
			best = fmt.Sprintf("  (best %d)", item.Best)
		}

		line := fmt.Sprintf("%s%-24s%s", cursor, item.Title, best)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Watch  |  Tab: Results  |  Q: Quit"
	b.WriteString(dimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsResults returns true if user requested the results table.
func (m MenuModel) WantsResults() bool {
	return m.openResults
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	SolverID     string
	Config       core.RuntimeConfig
	WantsResults bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, current string) (MenuResult, error) {
	model := NewMenuModel(store, cfg, current)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}

	switch {
	case m.WantsResults():
		result.WantsResults = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.SolverID = m.Selected().SolverID
	}
	return result, nil
}
