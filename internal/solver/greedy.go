package solver

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snakebot/internal/arena"
	"github.com/vovakirdan/snakebot/internal/graph"
	"github.com/vovakirdan/snakebot/internal/grid"
	"github.com/vovakirdan/snakebot/internal/pathfind"
	"github.com/vovakirdan/snakebot/internal/registry"
)

func init() {
	registry.Register("greedy", "Greedy with lookahead", func(opts registry.Options) arena.Solver {
		return NewGreedy(opts.Logger)
	})
}

// Greedy chases the food only when a virtual snake that follows the food
// path could still reach its own tail afterwards. Otherwise it stalls by
// following a lengthened path to its tail.
//
// It makes fast progress but is not guaranteed to finish: food spawning on
// the tail path or a late-game loop can still kill it.
type Greedy struct {
	logger *log.Logger

	head          grid.Pos
	foodPath      []grid.Direction
	tailPath      []grid.Direction
	virtualHead   grid.Pos
	virtualPath   []grid.Direction
	virtualBehind grid.Pos
	simulated     bool
	outcome       Outcome
}

// NewGreedy creates a greedy solver.
func NewGreedy(logger *log.Logger) *Greedy {
	return &Greedy{logger: named(logger, "greedy")}
}

func (s *Greedy) Name() string { return "greedy" }

// Initialize implements arena.Solver. Greedy keeps no state between ticks.
func (s *Greedy) Initialize(*arena.Snake, *arena.Arena) {
	s.clear(grid.Pos{})
	s.outcome = OutcomeNone
}

func (s *Greedy) clear(head grid.Pos) {
	s.head = head
	s.foodPath = nil
	s.tailPath = nil
	s.virtualPath = nil
	s.simulated = false
}

// Direction implements arena.Solver.
func (s *Greedy) Direction(sn *arena.Snake, a *arena.Arena) grid.Direction {
	s.clear(a.Head)
	food, hasFood := a.Food()

	if hasFood {
		path, ok := pathfind.ShortestPath(a.Head, food, sn.Direction, a.Graph())
		if ok && len(path) > 0 {
			s.foodPath = path
			if s.safeToEat(path, a) {
				s.outcome = OutcomeFood
				return path[0]
			}
			s.logger.Debug("food path unsafe", "head", a.Head, "food", food)
		}
	}
	s.foodPath = nil

	// Stall by taking the long way to the tail.
	if path, ok := pathfind.ShortestPath(a.Head, a.Behind, sn.Direction, a.Graph()); ok && len(path) > 0 {
		s.tailPath = pathfind.Lengthen(a.Head, path, a.Graph())
		s.outcome = OutcomeTail
		return s.tailPath[0]
	}

	s.logger.Warn("no safe route", "head", a.Head, "behind", a.Behind, "tick", a.Tick())
	s.outcome = OutcomeNoSafeRoute

	if !hasFood {
		food = a.Head
	}
	return farthestFrom(a.Head, food, sn.Direction, a.Graph().Directions(a.Head).Each())
}

// safeToEat moves a virtual snake along path on a copy of the graph and
// reports whether, once it has eaten, it can still get back to its tail.
func (s *Greedy) safeToEat(path []grid.Direction, a *arena.Arena) bool {
	sim := a.Graph().Clone()
	head, tail := a.Head, a.Tail
	behind, behindBehind := a.Behind, a.Behind

	for _, d := range path {
		sim.Remove(head)
		sim.SetFollow(head, d)
		sim.Insert(tail)
		head = head.Add(d)

		behindBehind, behind = behind, tail
		f, ok := sim.Follow(tail)
		if !ok {
			return false
		}
		tail = tail.Add(f)
		sim.ClearFollow(behind)
	}

	// The real tail sits still for one step after eating, so the virtual
	// one is a cell shorter than it should be.
	if a.JustAte {
		sim.Remove(behind)
		behind = behindBehind
	}

	s.simulated = true
	s.virtualHead = head
	s.virtualBehind = behind

	// The virtual head arrived moving along the last step of path, not the first.
	return reachesTail(sim, head, behind, path[len(path)-1], &s.virtualPath)
}

// reachesTail reports whether the long way from head to behind leaves the
// snake, one step in, with more than a single move of room to get back to
// behind.
func reachesTail(g *graph.Graph, head, behind grid.Pos, incoming grid.Direction, long *[]grid.Direction) bool {
	path, ok := pathfind.ShortestPath(head, behind, incoming, g)
	if !ok || len(path) == 0 {
		return false
	}
	*long = pathfind.Lengthen(head, path, g)

	first := (*long)[0]
	next := head.Add(first)
	g.Remove(head)

	back, ok := pathfind.ShortestPath(next, behind, first, g)
	return ok && len(back) > 1
}

// Paths implements Tracer.
func (s *Greedy) Paths() []Trace {
	var out []Trace
	if s.foodPath != nil {
		out = append(out, Trace{Label: "food", Start: s.head, Path: s.foodPath})
	}
	if s.tailPath != nil {
		out = append(out, Trace{Label: "tail", Start: s.head, Path: s.tailPath})
	}
	if s.simulated && s.virtualPath != nil {
		out = append(out, Trace{Label: "virtual", Start: s.virtualHead, Path: s.virtualPath})
	}
	return out
}

// Outcome implements Tracer.
func (s *Greedy) Outcome() Outcome { return s.outcome }

// VirtualBehind returns where the virtual snake's tail ended up on the last
// food simulation.
func (s *Greedy) VirtualBehind() (grid.Pos, bool) {
	return s.virtualBehind, s.simulated
}
