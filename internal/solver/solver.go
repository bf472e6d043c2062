// Package solver holds the autopilot strategies. Every solver implements
// arena.Solver and registers itself with the registry under a short ID.
//
// Solvers read the arena but never modify it; simulations run on a clone of
// the adjacency graph.
package solver

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snakebot/internal/grid"
)

// Outcome names what the last decision was based on.
type Outcome string

const (
	OutcomeNone        Outcome = ""
	OutcomeFood        Outcome = "food"
	OutcomeTail        Outcome = "tail"
	OutcomeCycle       Outcome = "cycle"
	OutcomeShortcut    Outcome = "shortcut"
	OutcomeHold        Outcome = "hold"
	OutcomeNoSafeRoute Outcome = "no-safe-route"
	OutcomeRandom      Outcome = "random"
)

// Trace is a planned path drawn by the path overlay.
type Trace struct {
	Label string
	Start grid.Pos
	Path  []grid.Direction
}

// Tracer is implemented by solvers that can explain their last decision.
type Tracer interface {
	Paths() []Trace
	Outcome() Outcome
}

// farthestFrom picks, among the traversable non-reversing moves out of head,
// the one landing furthest from target. Ties go to the earlier direction in
// grid.Order; with no move available the current direction is kept.
func farthestFrom(head, target grid.Pos, current grid.Direction, moves []grid.Direction) grid.Direction {
	best := -1
	dir := current
	for _, d := range moves {
		if d == current.Flip() {
			continue
		}
		if dist := grid.Manhattan(head.Add(d), target); dist > best {
			best, dir = dist, d
		}
	}
	return dir
}

// named returns a sub-logger with the solver's prefix. A nil logger discards.
func named(logger *log.Logger, prefix string) *log.Logger {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return logger.WithPrefix(prefix)
}
