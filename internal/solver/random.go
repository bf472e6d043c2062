package solver

import (
	"golang.org/x/exp/rand"

	"github.com/vovakirdan/snakebot/internal/arena"
	"github.com/vovakirdan/snakebot/internal/grid"
	"github.com/vovakirdan/snakebot/internal/registry"
)

func init() {
	registry.Register("random", "Random walk", func(opts registry.Options) arena.Solver {
		return NewRandom(opts.Seed)
	})
}

// Random wanders: every tick it goes straight or turns left or right with
// equal probability. It is a baseline for the benchmark.
type Random struct {
	seed int64
	rng  *rand.Rand
}

// NewRandom creates a random walker.
func NewRandom(seed int64) *Random {
	return &Random{seed: seed, rng: rand.New(rand.NewSource(uint64(seed)))}
}

func (s *Random) Name() string { return "random" }

// Initialize restarts the random sequence so a replayed game is identical.
func (s *Random) Initialize(*arena.Snake, *arena.Arena) {
	s.rng = rand.New(rand.NewSource(uint64(s.seed)))
}

// Direction implements arena.Solver.
func (s *Random) Direction(sn *arena.Snake, _ *arena.Arena) grid.Direction {
	choices := [3]grid.Direction{sn.Direction, sn.Direction.RotateCW(), sn.Direction.RotateCCW()}
	return choices[s.rng.Intn(len(choices))]
}

// Paths implements Tracer. A random walk plans nothing.
func (s *Random) Paths() []Trace { return nil }

// Outcome implements Tracer.
func (s *Random) Outcome() Outcome { return OutcomeRandom }
