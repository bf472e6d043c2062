package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snakebot/internal/arena"
	"github.com/vovakirdan/snakebot/internal/config"
	"github.com/vovakirdan/snakebot/internal/core"
	"github.com/vovakirdan/snakebot/internal/grid"
	"github.com/vovakirdan/snakebot/internal/registry"
	"github.com/vovakirdan/snakebot/internal/spectate"
	"github.com/vovakirdan/snakebot/internal/storage"
)

// Model is the Bubble Tea model that watches a solver play.
type Model struct {
	runner     *arena.Runner
	screen     *core.Screen
	store      *storage.Store // optional
	palette    Palette
	keys       *KeyMapper
	help       help.Model
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame

	game     int
	paused   bool
	saved    bool // whether the finished game has been stored
	notice   string
	quitting bool
	back     bool // left with esc rather than quit
}

// NewModel creates the model and starts the first game. stallLimit ends
// games that stop eating; zero disables it.
func NewModel(solverID string, store *storage.Store, cfg core.RuntimeConfig, theme config.Theme, stallLimit int, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	s, err := registry.Create(solverID, registry.Options{Logger: logger, Seed: cfg.Seed})
	if err != nil {
		return Model{}, err
	}
	r, err := arena.NewRunner(grid.Size{W: cfg.BoardW, H: cfg.BoardH}, s, logger, arena.RunnerOptions{StallLimit: stallLimit})
	if err != nil {
		return Model{}, err
	}

	m := Model{
		runner:     r,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
		store:      store,
		palette:    NewPalette(theme),
		keys:       NewKeyMapper(),
		help:       help.New(),
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
	m.newGame()
	return m, nil
}

// newGame resets the board. Game n uses seed+n-1 so a session is
// reproducible from its first seed.
func (m *Model) newGame() {
	m.game++
	m.saved = false
	m.runner.Reset(m.config.Seed + int64(m.game-1))
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if action := m.keys.MapKeyToFrame(msg, &m.inputFrame); action.Leaves() {
		m.quitting = true
		m.back = action == core.ActionBack
		m.saveRun()
		return m, tea.Quit
	}
	return m, nil
}

// handleTick applies the queued actions, then advances the game unless it
// is paused.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := m.inputFrame
	m.inputFrame.Clear()

	if in.Has(core.ActionRestart) {
		m.saveRun()
		m.newGame()
		m.notice = ""
	}
	if in.Has(core.ActionNextSolver) {
		m.nextSolver()
	}
	if in.Has(core.ActionFaster) {
		m.config.Faster()
	}
	if in.Has(core.ActionSlower) {
		m.config.Slower()
	}
	if in.Has(core.ActionTogglePaths) {
		m.config.ShowPaths = !m.config.ShowPaths
	}
	if in.Has(core.ActionPause) {
		m.paused = !m.paused
	}

	if !m.paused || in.Has(core.ActionStep) {
		m.runner.Tick()
		if m.runner.State().Over() {
			m.saveRun()
		}
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) nextSolver() {
	id := registry.Next(m.runner.Solver().Name())
	s, err := registry.Create(id, registry.Options{Logger: m.logger, Seed: m.runner.Seed()})
	if err != nil {
		m.logger.Error("cannot switch solver", "solver", id, "error", err)
		return
	}
	m.runner.SetSolver(s)
	m.notice = fmt.Sprintf("switched to %s", registry.Title(id))
}

// saveRun stores the current game once it is over.
func (m *Model) saveRun() {
	if m.saved || !m.runner.State().Over() {
		return
	}
	m.saved = true
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRun(storage.NewRun(m.runner.Summary())); err != nil {
		m.logger.Warn("cannot save run", "error", err)
	}
}

// Frame returns what the view currently shows.
func (m Model) Frame() spectate.Frame {
	return spectate.Capture(m.runner, m.game)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawFrame(m.screen, m.Frame(), Status{
		Rate:      m.config.TickRate,
		Paused:    m.paused,
		ShowPaths: m.config.ShowPaths,
		Notice:    m.notice,
	})
	return RenderScreen(m.screen, m.palette) + "\n" + m.help.View(m.keys.Keys())
}

// WentBack reports whether the view was left with the back key.
func (m Model) WentBack() bool {
	return m.back
}

// Run starts the Bubble Tea program with the given model and reports
// whether the user went back rather than quitting.
func Run(model Model) (back bool, err error) {
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		return m.WentBack(), nil
	}
	return false, nil
}
