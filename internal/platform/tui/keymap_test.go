package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/snakebot/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runes("p"), core.ActionPause},
		{runes("s"), core.ActionStep},
		{runes("r"), core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionNextSolver},
		{runes("+"), core.ActionFaster},
		{runes("="), core.ActionFaster},
		{runes("-"), core.ActionSlower},
		{runes("d"), core.ActionTogglePaths},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runes("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runes("x"), core.ActionNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, km.MapKey(tt.msg), tt.msg.String())
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	assert.Equal(t, core.ActionPause, km.MapKeyToFrame(runes("p"), &frame))
	assert.Equal(t, core.ActionNone, km.MapKeyToFrame(runes("x"), &frame))
	assert.True(t, frame.Has(core.ActionPause))
	assert.Equal(t, 1, frame.Len())

	assert.Equal(t, core.ActionQuit, km.MapKeyToFrame(runes("q"), &frame))
	assert.Equal(t, core.ActionBack, km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyEsc}, &frame))
	assert.False(t, frame.Has(core.ActionQuit))
	assert.False(t, frame.Has(core.ActionBack))
	assert.Equal(t, 1, frame.Len())
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	assert.Equal(t, MenuActionUp, km.MapKeyToMenuAction(runes("k")))
	assert.Equal(t, MenuActionDown, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionResults, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, MenuActionBack, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, MenuActionQuit, km.MapKeyToMenuAction(runes("q")))
	assert.Equal(t, MenuActionNone, km.MapKeyToMenuAction(runes("z")))
}
