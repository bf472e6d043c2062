package arena

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snakebot/internal/grid"
)

// Solver picks the snake's next direction. Initialize is called once per
// game, or when the solver is swapped in mid-game, before any Direction call.
type Solver interface {
	Name() string
	Initialize(s *Snake, a *Arena)
	Direction(s *Snake, a *Arena) grid.Direction
}

// Stats counts progress through one game.
type Stats struct {
	Ticks     int
	Food      int
	SinceFood int
	Rejected  int // solver moves refused as reversals
}

// RunnerOptions tunes a Runner. Zero values disable the corresponding limit.
type RunnerOptions struct {
	// StallLimit ends the game once this many ticks pass without food.
	StallLimit int
	// MaxTicks ends the game after this many ticks.
	MaxTicks int
	// Check verifies the board invariants after every tick.
	Check bool
}

// Runner steps an arena and asks its solver for a direction after every
// step.
type Runner struct {
	arena  *Arena
	snake  *Snake
	solver Solver
	logger *log.Logger
	opts   RunnerOptions

	seed  int64
	stats Stats
	state State
}

// NewRunner creates a runner for a board of the given size. The game starts
// on the first Reset.
func NewRunner(size grid.Size, solver Solver, logger *log.Logger, opts RunnerOptions) (*Runner, error) {
	a, err := New(size)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		arena:  a,
		snake:  NewSnake(),
		solver: solver,
		logger: logger,
		opts:   opts,
		state:  StatePlaying,
	}, nil
}

// Reset starts a new game with the given seed.
func (r *Runner) Reset(seed int64) {
	r.seed = seed
	r.snake = r.arena.Reset(seed)
	r.stats = Stats{}
	r.state = StatePlaying

	r.solver.Initialize(r.snake, r.arena)
	r.steer()

	r.logger.Debug("game started",
		"solver", r.solver.Name(),
		"size", r.arena.Size(),
		"seed", seed,
	)
}

// SetSolver swaps the solver and initializes it on the current board.
func (r *Runner) SetSolver(s Solver) {
	r.solver = s
	if r.state.Over() {
		return
	}
	r.solver.Initialize(r.snake, r.arena)
	r.steer()
	r.logger.Debug("solver switched", "solver", s.Name(), "tick", r.stats.Ticks)
}

// Tick advances the game by one step and, if it is still running, asks the
// solver for the next direction.
func (r *Runner) Tick() StepResult {
	if r.state.Over() {
		return StepResult{State: r.state}
	}

	res := r.arena.Step(r.snake)
	r.stats.Ticks++
	if res.Ate {
		r.stats.Food++
		r.stats.SinceFood = 0
	} else {
		r.stats.SinceFood++
	}
	r.state = res.State

	if r.opts.Check {
		if err := r.arena.Check(r.snake); err != nil {
			r.logger.Error("board invariant broken", "error", err, "tick", r.stats.Ticks)
			r.state = StateCorrupt
		}
	}

	if !r.state.Over() {
		switch {
		case r.opts.StallLimit > 0 && r.stats.SinceFood >= r.opts.StallLimit:
			r.state = StateStalled
		case r.opts.MaxTicks > 0 && r.stats.Ticks >= r.opts.MaxTicks:
			r.state = StateStalled
		}
	}

	if r.state.Over() {
		res.State = r.state
		r.logger.Debug("game over",
			"solver", r.solver.Name(),
			"state", r.state,
			"length", r.snake.Length,
			"ticks", r.stats.Ticks,
		)
		return res
	}

	r.steer()
	return res
}

// Run ticks until the game ends and returns the final state.
func (r *Runner) Run() State {
	for !r.state.Over() {
		r.Tick()
	}
	return r.state
}

func (r *Runner) steer() {
	dir := r.solver.Direction(r.snake, r.arena)
	if !r.snake.Turn(dir) {
		r.stats.Rejected++
		r.logger.Warn("solver tried to reverse", "solver", r.solver.Name(), "direction", dir)
	}
}

// Arena returns the board.
func (r *Runner) Arena() *Arena { return r.arena }

// Snake returns the snake.
func (r *Runner) Snake() *Snake { return r.snake }

// Solver returns the active solver.
func (r *Runner) Solver() Solver { return r.solver }

// Stats returns the counters of the current game.
func (r *Runner) Stats() Stats { return r.stats }

// State returns the game state.
func (r *Runner) State() State { return r.state }

// Seed returns the seed of the current game.
func (r *Runner) Seed() int64 { return r.seed }

// Snapshot returns the current snapshot.
func (r *Runner) Snapshot() Snapshot {
	snap := r.arena.Snapshot(r.snake)
	snap.State = r.state
	return snap
}

// Summary is the record of a game kept once it is over.
type Summary struct {
	Solver string
	Width  int
	Height int
	Seed   int64
	Length int
	Ticks  int
	Food   int
	State  State
}

// Summary returns the record of the current game.
func (r *Runner) Summary() Summary {
	size := r.arena.Size()
	return Summary{
		Solver: r.solver.Name(),
		Width:  size.W,
		Height: size.H,
		Seed:   r.seed,
		Length: r.snake.Length,
		Ticks:  r.stats.Ticks,
		Food:   r.stats.Food,
		State:  r.state,
	}
}
