package solver

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snakebot/internal/arena"
	"github.com/vovakirdan/snakebot/internal/grid"
	"github.com/vovakirdan/snakebot/internal/pathfind"
	"github.com/vovakirdan/snakebot/internal/registry"
)

func init() {
	registry.Register("astar", "A* pursuit", func(opts registry.Options) arena.Solver {
		return NewAstar(opts.Logger)
	})
}

// Astar heads straight for the food along a shortest path, recomputed every
// tick. It makes no attempt to avoid trapping itself.
type Astar struct {
	logger  *log.Logger
	start   grid.Pos
	path    []grid.Direction
	outcome Outcome
}

// NewAstar creates an A* pursuit solver.
func NewAstar(logger *log.Logger) *Astar {
	return &Astar{logger: named(logger, "astar")}
}

func (s *Astar) Name() string { return "astar" }

// Initialize implements arena.Solver. There is nothing to precompute.
func (s *Astar) Initialize(*arena.Snake, *arena.Arena) {
	s.path = nil
	s.outcome = OutcomeNone
}

// Direction returns the first step toward the food, or the current
// direction when the food cannot be reached.
func (s *Astar) Direction(sn *arena.Snake, a *arena.Arena) grid.Direction {
	s.start = a.Head
	s.path = nil

	if food, ok := a.Food(); ok {
		if path, found := pathfind.ShortestPath(a.Head, food, sn.Direction, a.Graph()); found && len(path) > 0 {
			s.path = path
			s.outcome = OutcomeFood
			return path[0]
		}
	}

	s.logger.Warn("no path to food", "head", a.Head, "tick", a.Tick())
	s.outcome = OutcomeHold
	return sn.Direction
}

// Paths implements Tracer.
func (s *Astar) Paths() []Trace {
	if s.path == nil {
		return nil
	}
	return []Trace{{Label: "food", Start: s.start, Path: s.path}}
}

// Outcome implements Tracer.
func (s *Astar) Outcome() Outcome { return s.outcome }
