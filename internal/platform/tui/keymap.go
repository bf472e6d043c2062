package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snakebot/internal/core"
)

// PlayKeyMap defines the key bindings of the autopilot view.
type PlayKeyMap struct {
	Pause       key.Binding
	Step        key.Binding
	Restart     key.Binding
	NextSolver  key.Binding
	Faster      key.Binding
	Slower      key.Binding
	TogglePaths key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.NextSolver, k.Faster, k.Slower, k.TogglePaths, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Step, k.Restart},
		{k.NextSolver, k.Faster, k.Slower, k.TogglePaths},
		{k.Back, k.Quit},
	}
}

// DefaultPlayKeyMap returns default key bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("s", "."),
			key.WithHelp("s", "step"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new game"),
		),
		NextSolver: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next solver"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "=", "right"),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "_", "left"),
			key.WithHelp("-", "slower"),
		),
		TogglePaths: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "paths"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to viewer actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys PlayKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultPlayKeyMap()}
}

// Keys returns the bindings, for the help view.
func (km *KeyMapper) Keys() PlayKeyMap {
	return km.keys
}

// MapKey translates a key message to an action (may be ActionNone).
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Step):
		return core.ActionStep
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.NextSolver):
		return core.ActionNextSolver
	case key.Matches(msg, k.Faster):
		return core.ActionFaster
	case key.Matches(msg, k.Slower):
		return core.ActionSlower
	case key.Matches(msg, k.TogglePaths):
		return core.ActionTogglePaths
	}
	return core.ActionNone
}

// MapKeyToFrame queues the key's action in the frame for the next tick and
// returns it. Actions that leave the view are returned but not queued.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) core.Action {
	action := km.MapKey(msg)
	if action != core.ActionNone && !action.Leaves() {
		frame.Set(action)
	}
	return action
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionResults
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionResults
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
