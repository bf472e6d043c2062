// Package spectate runs a shared autopilot game and streams it to any number
// of viewers. Viewers are transport-neutral so the SSH server and tests can
// both attach to the same hub.
package spectate

import (
	"slices"

	"github.com/vovakirdan/snakebot/internal/arena"
	"github.com/vovakirdan/snakebot/internal/solver"
)

// Frame is everything a viewer needs to draw one tick. It shares no memory
// with the running game.
type Frame struct {
	Game    int // game number since the hub started, from 1
	View    arena.View
	Summary arena.Summary
	Stats   arena.Stats
	Traces  []solver.Trace
	Outcome solver.Outcome
}

// Capture copies the current state of a runner into a frame.
func Capture(r *arena.Runner, game int) Frame {
	f := Frame{
		Game:    game,
		View:    r.Arena().View(),
		Summary: r.Summary(),
		Stats:   r.Stats(),
	}
	if t, ok := r.Solver().(solver.Tracer); ok {
		f.Outcome = t.Outcome()
		for _, tr := range t.Paths() {
			tr.Path = slices.Clone(tr.Path)
			f.Traces = append(f.Traces, tr)
		}
	}
	return f
}
