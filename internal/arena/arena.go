// Package arena drives a game: it owns the board grid and the adjacency graph,
// applies one snake move per step, spawns food and decides win or loss. A
// Runner couples an arena with a solver and steps them in lockstep.
package arena

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/vovakirdan/snakebot/internal/graph"
	"github.com/vovakirdan/snakebot/internal/grid"
)

// Minimum board dimensions. The initial snake plus the cell behind its tail
// need a row of five.
const (
	MinWidth  = 5
	MinHeight = 2
)

// ErrTooSmall is returned for boards below MinWidth x MinHeight.
var ErrTooSmall = errors.New("arena: board too small")

// State is the lifecycle state of a game.
type State string

const (
	StatePlaying State = "playing"
	StateDead    State = "dead"
	StateWon     State = "won"
	StateStalled State = "stalled"
	StateCorrupt State = "corrupt"
)

// Over reports whether the game has ended.
func (s State) Over() bool {
	return s != StatePlaying
}

// StepResult describes what a single step did.
type StepResult struct {
	State State
	Ate   bool
	// Vacated is set when the tail left a cell this step.
	Vacated bool
}

// Arena is the board of one game.
type Arena struct {
	size  grid.Size
	grid  *grid.Grid
	graph *graph.Graph

	// Head is the head cell. It stays in the graph so searches can start on
	// it.
	Head grid.Pos
	// Tail is the body cell furthest from the head.
	Tail grid.Pos
	// Behind is the cell the tail vacated most recently.
	Behind grid.Pos
	// JustAte is set for the step in which food was eaten; the tail does not
	// move on the step after it.
	JustAte bool

	food    grid.Pos
	hasFood bool

	tick  uint64
	state State
	rng   *rand.Rand
}

// New creates an empty arena. Call Reset to lay out a snake.
func New(size grid.Size) (*Arena, error) {
	if size.W < MinWidth || size.H < MinHeight {
		return nil, fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrTooSmall, size.W, size.H, MinWidth, MinHeight)
	}
	return &Arena{
		size:  size,
		grid:  grid.New(size),
		graph: graph.Full(size),
		state: StatePlaying,
		rng:   rand.New(rand.NewSource(0)),
	}, nil
}

// Reset clears the board, places a fresh snake and spawns the first food.
// The seed fully determines food placement for the rest of the game.
func (a *Arena) Reset(seed int64) *Snake {
	a.rng = rand.New(rand.NewSource(uint64(seed)))
	a.tick = 0
	a.state = StatePlaying
	a.JustAte = false
	a.hasFood = false

	a.grid.Fill(grid.Cell{})
	a.graph.Reset()

	// Head left of center, body trailing to the right.
	head := grid.Pos{X: a.size.W/2 - 1, Y: a.size.H / 2}
	mid := head.Add(grid.Right)
	tail := mid.Add(grid.Right)
	a.Head = head
	a.Tail = tail
	a.Behind = tail.Add(grid.Right)

	a.grid.Set(head, grid.Cell{Kind: grid.SnakeHead})
	a.grid.Set(mid, grid.Body(1))
	a.grid.Set(tail, grid.Body(2))

	for i := 0; i < a.size.Cells(); i++ {
		p := a.size.At(i)
		if p == mid || p == tail {
			continue
		}
		a.graph.Insert(p)
	}
	a.graph.SetFollow(mid, grid.Left)
	a.graph.SetFollow(tail, grid.Left)

	a.SpawnFood()
	return NewSnake()
}

// Size returns the board dimensions.
func (a *Arena) Size() grid.Size {
	return a.size
}

// Cells returns the number of board cells.
func (a *Arena) Cells() int {
	return a.size.Cells()
}

// Grid exposes the occupancy grid. Callers must not modify it.
func (a *Arena) Grid() *grid.Grid {
	return a.grid
}

// Graph exposes the adjacency graph. Solvers clone it before simulating.
func (a *Arena) Graph() *graph.Graph {
	return a.graph
}

// Food returns the food cell, if any.
func (a *Arena) Food() (grid.Pos, bool) {
	return a.food, a.hasFood
}

// Tick returns the number of steps applied since Reset.
func (a *Arena) Tick() uint64 {
	return a.tick
}

// State returns the game state.
func (a *Arena) State() State {
	return a.state
}

// Step moves the snake one cell in its current direction.
func (a *Arena) Step(s *Snake) StepResult {
	if a.state.Over() {
		return StepResult{State: a.state}
	}
	a.tick++

	// Walls and every body cell kill, the tail included even though it is
	// about to move. A fatal step leaves the board and JustAte as they were.
	next := a.Head.Add(s.Direction)
	target, ok := a.grid.Get(next)
	if !ok || target.Kind == grid.SnakeBody {
		a.state = StateDead
		return StepResult{State: a.state}
	}
	a.JustAte = false

	// Age the body. Whatever ends up past the tail is vacated below.
	var (
		vacate    grid.Pos
		hasVacate bool
	)
	a.grid.Each(func(p grid.Pos, c grid.Cell) {
		if c.Kind != grid.SnakeBody {
			return
		}
		if c.Distance >= s.Length-1 {
			vacate, hasVacate = p, true
		}
		c.Distance++
		a.grid.Set(p, c)

		switch c.Distance {
		case s.Length - 1:
			a.Tail = p
		case s.Length:
			a.Behind = p
		}
	})

	// The old head becomes the first body segment.
	old := a.Head
	a.grid.Set(old, grid.Body(1))
	a.graph.Remove(old)
	a.graph.SetFollow(old, s.Direction)
	if s.Length == 2 {
		a.Tail = old
	}

	result := StepResult{State: StatePlaying}
	if target.Kind == grid.Food {
		s.Length++
		a.JustAte = true
		a.hasFood = false
		result.Ate = true
	}
	a.grid.Set(next, grid.Cell{Kind: grid.SnakeHead})
	a.Head = next
	s.moved()

	if hasVacate {
		a.grid.Set(vacate, grid.Cell{})
		a.graph.Insert(vacate)
		a.graph.ClearFollow(vacate)
		result.Vacated = true
	}

	if s.Length >= a.size.Cells() {
		a.state = StateWon
		result.State = a.state
	}

	if !a.hasFood {
		a.SpawnFood()
	}
	return result
}

// SpawnFood places food on a uniformly chosen empty cell. It does nothing
// when food is already present or the board is full.
func (a *Arena) SpawnFood() {
	if a.hasFood {
		return
	}

	var empty []grid.Pos
	a.grid.Each(func(p grid.Pos, c grid.Cell) {
		if c.Kind == grid.Empty {
			empty = append(empty, p)
		}
	})
	if len(empty) == 0 {
		return
	}

	a.PlaceFood(empty[a.rng.Intn(len(empty))])
}

// PlaceFood puts food on p, replacing any existing food. p must be empty.
func (a *Arena) PlaceFood(p grid.Pos) {
	if a.hasFood {
		a.grid.Set(a.food, grid.Cell{})
	}
	a.grid.Set(p, grid.Cell{Kind: grid.Food})
	a.food = p
	a.hasFood = true
}

// Free returns the number of empty cells.
func (a *Arena) Free() int {
	return a.grid.Count(func(c grid.Cell) bool { return c.Kind == grid.Empty })
}

// Body returns the snake cells ordered from the head to the tail.
func (a *Arena) Body() []grid.Pos {
	n := 1
	a.grid.Each(func(_ grid.Pos, c grid.Cell) {
		if c.Kind == grid.SnakeBody {
			n++
		}
	})

	out := make([]grid.Pos, n)
	out[0] = a.Head
	a.grid.Each(func(p grid.Pos, c grid.Cell) {
		if c.Kind == grid.SnakeBody && c.Distance < n {
			out[c.Distance] = p
		}
	})
	return out
}

func (a *Arena) String() string {
	return a.grid.String()
}
