package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snakebot/internal/core"
	"github.com/vovakirdan/snakebot/internal/registry"
	"github.com/vovakirdan/snakebot/internal/spectate"
)

// eventMsg wraps a hub event for the Bubble Tea loop.
type eventMsg struct {
	evt spectate.Event
}

// closedMsg is sent when the viewer has been closed.
type closedMsg struct{}

// waitForEvent blocks until the hub sends the viewer something.
func waitForEvent(v *spectate.ChannelViewer) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-v.Events():
			return eventMsg{evt: evt}
		case <-v.Done():
			return closedMsg{}
		}
	}
}

// SpectatorModel shows the hub's shared game. Viewers can switch the solver
// for everyone; the path overlay is per viewer.
type SpectatorModel struct {
	hub       *spectate.Hub
	viewer    *spectate.ChannelViewer
	screen    *core.Screen
	palette   Palette
	keys      PlayKeyMap
	help      help.Model
	frame     spectate.Frame
	showPaths bool
	notice    string
	quitting  bool
}

// NewSpectatorModel creates a model for an attached viewer.
func NewSpectatorModel(hub *spectate.Hub, viewer *spectate.ChannelViewer, palette Palette, width, height int) SpectatorModel {
	return SpectatorModel{
		hub:       hub,
		viewer:    viewer,
		screen:    core.NewScreen(width, height-1),
		palette:   palette,
		keys:      DefaultPlayKeyMap(),
		help:      help.New(),
		frame:     hub.Last(),
		showPaths: true,
	}
}

// Init starts listening for hub events.
func (m SpectatorModel) Init() tea.Cmd {
	return waitForEvent(m.viewer)
}

// Update handles messages for the spectator view.
func (m SpectatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			m.viewer.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextSolver):
			m.hub.Send(spectate.NextSolverMsg{By: m.viewer.ID()})
		case key.Matches(msg, m.keys.TogglePaths):
			m.showPaths = !m.showPaths
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil

	case eventMsg:
		switch evt := msg.evt.(type) {
		case spectate.FrameEvent:
			if evt.Frame.Game != m.frame.Game {
				m.notice = ""
			}
			m.frame = evt.Frame
		case spectate.GameOverEvent:
			m.notice = fmt.Sprintf("game %d: %s at length %d", evt.Game, evt.Summary.State, evt.Summary.Length)
		case spectate.SolverChangedEvent:
			m.notice = "solver: " + registry.Title(evt.Solver)
		}
		return m, waitForEvent(m.viewer)

	case closedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the latest frame.
func (m SpectatorModel) View() string {
	if m.quitting {
		return ""
	}
	DrawFrame(m.screen, m.frame, Status{
		Rate:      m.hub.Rate(),
		Viewers:   m.hub.Viewers(),
		ShowPaths: m.showPaths,
		Notice:    m.notice,
	})
	return RenderScreen(m.screen, m.palette) + "\n" + m.help.View(spectatorHelp{m.keys})
}

// spectatorHelp lists only the keys a spectator can use.
type spectatorHelp struct {
	keys PlayKeyMap
}

func (h spectatorHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.NextSolver, h.keys.TogglePaths, h.keys.Quit}
}

func (h spectatorHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
