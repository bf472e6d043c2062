package core

import "math/bits"

// Action represents a semantic viewer action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // move the menu cursor up
	ActionDown               // move the menu cursor down
	ActionConfirm            // pick the highlighted entry
	ActionBack               // leave the current view
	ActionPause              // pause/unpause the autopilot
	ActionRestart            // start a new game with a fresh seed
	ActionNextSolver         // swap in the next registered solver mid-game
	ActionFaster             // double the step rate
	ActionSlower             // halve the step rate
	ActionTogglePaths        // show/hide the planned-path overlay
	ActionStep               // advance one step while paused
	ActionQuit               // exit the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionNextSolver:
		return "NextSolver"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionTogglePaths:
		return "TogglePaths"
	case ActionStep:
		return "Step"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Leaves reports whether the action closes the current view.
func (a Action) Leaves() bool {
	return a == ActionQuit || a == ActionBack
}

// InputFrame collects the actions triggered between two simulation ticks.
// It is a plain bitset, so copies of a frame never share pending actions.
type InputFrame struct {
	actions uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	f.actions |= 1 << uint(a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.actions&(1<<uint(a)) != 0
}

// Len returns how many distinct actions were triggered.
func (f InputFrame) Len() int {
	return bits.OnesCount32(f.actions)
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.actions == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.actions = 0
}
