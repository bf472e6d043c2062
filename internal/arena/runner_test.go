package arena

import (
	"testing"

	"github.com/vovakirdan/snakebot/internal/grid"
)

// firstFree turns toward the first traversable neighbor of the head in
// grid.Order, keeping its direction when boxed in.
type firstFree struct {
	initialized int
}

func (f *firstFree) Name() string { return "first-free" }

func (f *firstFree) Initialize(*Snake, *Arena) { f.initialized++ }

func (f *firstFree) Direction(s *Snake, a *Arena) grid.Direction {
	for _, d := range grid.Order {
		if s.Allowed().Has(d) && a.Graph().Contains(a.Head.Add(d)) {
			return d
		}
	}
	return s.Direction
}

// reverser always asks to reverse.
type reverser struct{}

func (reverser) Name() string { return "reverser" }

func (reverser) Initialize(*Snake, *Arena) {}

func (reverser) Direction(s *Snake, _ *Arena) grid.Direction { return s.Direction.Flip() }

func newRunner(t *testing.T, size grid.Size, s Solver, opts RunnerOptions) *Runner {
	t.Helper()
	r, err := NewRunner(size, s, nil, opts)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return r
}

func TestRunnerDeterminism(t *testing.T) {
	size := grid.Size{W: 10, H: 8}
	r1 := newRunner(t, size, &firstFree{}, RunnerOptions{})
	r2 := newRunner(t, size, &firstFree{}, RunnerOptions{})
	r1.Reset(12345)
	r2.Reset(12345)

	for i := 0; i < 200; i++ {
		r1.Tick()
		r2.Tick()
		if s1, s2 := r1.Snapshot(), r2.Snapshot(); s1 != s2 {
			t.Fatalf("tick %d: snapshots diverged:\n%+v\n%+v", i, s1, s2)
		}
	}
}

func TestRunnerKeepsInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		r := newRunner(t, grid.Size{W: 7, H: 6}, &firstFree{}, RunnerOptions{Check: true, MaxTicks: 500})
		r.Reset(seed)

		if state := r.Run(); state == StateCorrupt {
			t.Fatalf("seed %d: invariants broken\n%s", seed, r.Arena().DebugState(r.Snake()))
		}
	}
}

func TestRunnerInitializesSolver(t *testing.T) {
	f := &firstFree{}
	r := newRunner(t, grid.Size{W: 8, H: 8}, f, RunnerOptions{})
	r.Reset(1)
	if f.initialized != 1 {
		t.Errorf("Initialize called %d times after Reset", f.initialized)
	}

	g := &firstFree{}
	r.SetSolver(g)
	if g.initialized != 1 || r.Solver() != g {
		t.Error("SetSolver should initialize the new solver")
	}
}

func TestRunnerStallLimit(t *testing.T) {
	r := newRunner(t, grid.Size{W: 16, H: 16}, &firstFree{}, RunnerOptions{StallLimit: 2})
	r.Reset(3)
	r.Arena().PlaceFood(grid.Pos{X: 15, Y: 15})

	r.Tick()
	if r.State() != StatePlaying {
		t.Fatalf("state after one tick = %s", r.State())
	}
	res := r.Tick()
	if res.State != StateStalled || r.State() != StateStalled {
		t.Errorf("state = %s, want stalled", r.State())
	}
	if r.Stats().SinceFood != 2 {
		t.Errorf("SinceFood = %d, want 2", r.Stats().SinceFood)
	}
}

func TestRunnerMaxTicks(t *testing.T) {
	r := newRunner(t, grid.Size{W: 16, H: 16}, &firstFree{}, RunnerOptions{MaxTicks: 5})
	r.Reset(3)
	r.Arena().PlaceFood(grid.Pos{X: 15, Y: 15})

	if state := r.Run(); state != StateStalled {
		t.Errorf("state = %s, want stalled", state)
	}
	if r.Stats().Ticks != 5 {
		t.Errorf("ticks = %d, want 5", r.Stats().Ticks)
	}
}

func TestRunnerRefusesReversal(t *testing.T) {
	r := newRunner(t, grid.Size{W: 16, H: 16}, reverser{}, RunnerOptions{})
	r.Reset(1)
	r.Arena().PlaceFood(grid.Pos{X: 15, Y: 15})

	r.Tick()
	if r.Snake().Direction != grid.Left {
		t.Errorf("direction = %v, want left", r.Snake().Direction)
	}
	if r.Stats().Rejected != 2 {
		t.Errorf("rejected = %d, want 2", r.Stats().Rejected)
	}
}

func TestRunnerSummary(t *testing.T) {
	r := newRunner(t, grid.Size{W: 16, H: 12}, &firstFree{}, RunnerOptions{MaxTicks: 5})
	r.Reset(42)
	r.Arena().PlaceFood(grid.Pos{X: 15, Y: 11})
	r.Run()

	want := Summary{
		Solver: "first-free",
		Width:  16,
		Height: 12,
		Seed:   42,
		Length: 3,
		Ticks:  5,
		Food:   0,
		State:  StateStalled,
	}
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %+v, want %+v", got, want)
	}
}
