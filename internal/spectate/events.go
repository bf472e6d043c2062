package spectate

import "github.com/vovakirdan/snakebot/internal/arena"

// Event is sent from the hub to a viewer.
type Event interface {
	viewerEvent()
}

// FrameEvent carries the board after a tick.
type FrameEvent struct {
	Frame Frame
}

func (FrameEvent) viewerEvent() {}

// GameOverEvent is sent once when a game ends.
type GameOverEvent struct {
	Game    int
	Summary arena.Summary
}

func (GameOverEvent) viewerEvent() {}

// SolverChangedEvent is sent when a viewer switches the solver.
type SolverChangedEvent struct {
	Solver string
	By     ViewerID
}

func (SolverChangedEvent) viewerEvent() {}

// Message is sent from a viewer to the hub.
type Message interface {
	hubMessage()
}

// JoinMsg attaches a viewer. It gets the current frame right away.
type JoinMsg struct {
	Viewer Viewer
}

func (JoinMsg) hubMessage() {}

// LeaveMsg detaches a viewer.
type LeaveMsg struct {
	ID ViewerID
}

func (LeaveMsg) hubMessage() {}

// NextSolverMsg swaps in the next registered solver mid-game.
type NextSolverMsg struct {
	By ViewerID
}

func (NextSolverMsg) hubMessage() {}

// RestartMsg starts a new game immediately.
type RestartMsg struct{}

func (RestartMsg) hubMessage() {}
