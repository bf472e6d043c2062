package solver

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snakebot/internal/arena"
	"github.com/vovakirdan/snakebot/internal/grid"
	"github.com/vovakirdan/snakebot/internal/pathfind"
	"github.com/vovakirdan/snakebot/internal/registry"
)

func init() {
	registry.Register("hamilton", "Hamiltonian cycle", func(opts registry.Options) arena.Solver {
		return NewHamilton(opts.Logger)
	})
}

// CycleCell is one cell's place on the cycle.
type CycleCell struct {
	Index   int
	Dir     grid.Direction // toward the next cell on the cycle
	OnCycle bool
}

// Hamilton lays a cycle over the board once and follows it, cutting ahead
// toward the food while the snake is short enough for that to be safe.
//
// The cycle is the lengthened path from the head to the cell behind the
// tail, closed through the body. On most even-area boards it covers every
// cell; where the detour expansion falls short, cells off the cycle are never
// visited.
type Hamilton struct {
	logger *log.Logger

	size  grid.Size
	cells []CycleCell
	n     int

	head     grid.Pos
	shortcut []grid.Direction
	outcome  Outcome
}

// NewHamilton creates a cycle-following solver. It must be initialized
// before use.
func NewHamilton(logger *log.Logger) *Hamilton {
	return &Hamilton{logger: named(logger, "hamilton")}
}

func (s *Hamilton) Name() string { return "hamilton" }

// Initialize builds the cycle from the current board.
func (s *Hamilton) Initialize(sn *arena.Snake, a *arena.Arena) {
	s.size = a.Size()
	s.cells = make([]CycleCell, a.Cells())
	s.n = 0
	s.shortcut = nil
	s.outcome = OutcomeNone

	path, ok := pathfind.ShortestPath(a.Head, a.Behind, sn.Direction, a.Graph())
	if !ok {
		s.logger.Warn("no path from head to tail, cycle left empty", "head", a.Head, "behind", a.Behind)
		return
	}
	path = pathfind.Lengthen(a.Head, path, a.Graph())

	cur := a.Head
	for _, d := range path {
		s.assign(cur, d)
		cur = cur.Add(d)
	}

	// Close the loop through the body: behind, tail, then every segment
	// toward the head.
	toTail, ok := grid.DirectionBetween(a.Behind, a.Tail)
	if !ok {
		s.logger.Warn("tail is not next to the cell behind it, cycle left empty", "tail", a.Tail, "behind", a.Behind)
		s.reset()
		return
	}
	s.assign(a.Behind, toTail)

	cur = a.Tail
	for steps := 0; cur != a.Head; steps++ {
		f, ok := a.Graph().Follow(cur)
		if !ok || steps > a.Cells() {
			s.logger.Warn("broken body chain, cycle left empty", "at", cur)
			s.reset()
			return
		}
		s.assign(cur, f)
		cur = cur.Add(f)
	}

	if s.n < a.Cells() {
		s.logger.Info("cycle does not cover the board", "cells", s.n, "board", a.Cells())
	}
	s.logger.Debug("cycle built", "cells", s.n)
}

func (s *Hamilton) assign(p grid.Pos, d grid.Direction) {
	s.cells[s.size.Index(p)] = CycleCell{Index: s.n, Dir: d, OnCycle: true}
	s.n++
}

func (s *Hamilton) reset() {
	clear(s.cells)
	s.n = 0
}

// Len returns the number of cells on the cycle.
func (s *Hamilton) Len() int {
	return s.n
}

// Cell returns the cycle entry for p.
func (s *Hamilton) Cell(p grid.Pos) CycleCell {
	if !s.size.Contains(p) {
		return CycleCell{}
	}
	return s.cells[s.size.Index(p)]
}

// Direction follows the cycle, or takes the first step of the shortest path
// to the food when that shortcut keeps the body in cycle order. It panics if
// called before Initialize.
func (s *Hamilton) Direction(sn *arena.Snake, a *arena.Arena) grid.Direction {
	if s.cells == nil {
		panic("solver: hamilton Direction called before Initialize")
	}
	s.head = a.Head
	s.shortcut = nil

	at := s.Cell(a.Head)
	if !at.OnCycle {
		s.logger.Warn("head is off the cycle", "head", a.Head, "tick", a.Tick())
		s.outcome = OutcomeHold
		return sn.Direction
	}

	if d, ok := s.tryShortcut(sn, a); ok {
		s.outcome = OutcomeShortcut
		return d
	}

	s.outcome = OutcomeCycle
	return at.Dir
}

func (s *Hamilton) tryShortcut(sn *arena.Snake, a *arena.Arena) (grid.Direction, bool) {
	if 2*sn.Length >= a.Cells() {
		return grid.Up, false
	}
	food, ok := a.Food()
	if !ok {
		return grid.Up, false
	}
	path, ok := pathfind.ShortestPath(a.Head, food, sn.Direction, a.Graph())
	if !ok || len(path) == 0 {
		return grid.Up, false
	}

	next := a.Head.Add(path[0])
	head, step, goal, tail := s.Cell(a.Head), s.Cell(next), s.Cell(food), s.Cell(a.Tail)
	if !step.OnCycle || !goal.OnCycle || !tail.OnCycle {
		return grid.Up, false
	}

	// Steps in which the tail will not move: the one after eating and, if
	// the shortcut lands on the food, the one after that.
	stalls := 0
	if a.JustAte {
		stalls++
	}
	if next == food {
		stalls++
	}

	if !s.shortcutAllowed(head.Index, step.Index, goal.Index, tail.Index, len(path), stalls) {
		return grid.Up, false
	}
	s.shortcut = path
	return path[0], true
}

// shortcutAllowed decides on cycle indices. Distances are measured forward
// from the tail, so the body always sits in [0, head] and the free cells
// ahead of the head in (head, n).
func (s *Hamilton) shortcutAllowed(head, next, food, tail, pathLen, stalls int) bool {
	// Eating right next to the tail leaves no room to grow into.
	if pathLen == 1 && (forward(food, tail, s.n) == 1 || forward(tail, food, s.n) == 1) {
		return false
	}

	h := forward(tail, head, s.n)
	nx := forward(tail, next, s.n)
	f := forward(tail, food, s.n)
	if nx <= h || nx > f {
		return false
	}

	// Cycle cells left between the new head and the tail must outlast the
	// steps in which the tail stands still.
	return s.n-nx > stalls+1
}

// forward returns how many cycle steps lead from index from to index to.
func forward(from, to, n int) int {
	return ((to-from)%n + n) % n
}

// Paths implements Tracer: the shortcut when one was taken, and the cycle
// ahead of the head.
func (s *Hamilton) Paths() []Trace {
	var out []Trace
	if s.shortcut != nil {
		out = append(out, Trace{Label: "shortcut", Start: s.head, Path: s.shortcut})
	}
	if s.n > 0 && s.Cell(s.head).OnCycle {
		out = append(out, Trace{Label: "cycle", Start: s.head, Path: s.CycleFrom(s.head)})
	}
	return out
}

// CycleFrom returns the cycle's directions starting at p and ending back
// next to it, or nil when p is off the cycle.
func (s *Hamilton) CycleFrom(p grid.Pos) []grid.Direction {
	if !s.Cell(p).OnCycle {
		return nil
	}
	out := make([]grid.Direction, 0, s.n)
	cur := p
	for i := 0; i < s.n-1; i++ {
		c := s.Cell(cur)
		out = append(out, c.Dir)
		cur = cur.Add(c.Dir)
	}
	return out
}

// Outcome implements Tracer.
func (s *Hamilton) Outcome() Outcome { return s.outcome }
