package bench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/snakebot/internal/arena"
	"github.com/vovakirdan/snakebot/internal/grid"
	"github.com/vovakirdan/snakebot/internal/registry"
	_ "github.com/vovakirdan/snakebot/internal/solver"
)

func smallBoard() Options {
	return Options{
		Size:       grid.Size{W: 8, H: 6},
		MaxTicks:   3000,
		StallLimit: 200,
		Check:      true,
	}
}

func TestJobs(t *testing.T) {
	jobs := Jobs([]string{"astar", "greedy"}, 3, 100)
	require.Len(t, jobs, 6)

	for i, job := range jobs {
		assert.Equal(t, i, job.ID)
	}
	assert.Equal(t, Job{ID: 0, Solver: "astar", Seed: 100}, jobs[0])
	assert.Equal(t, Job{ID: 5, Solver: "greedy", Seed: 102}, jobs[5])
}

func TestRunMatchesSequential(t *testing.T) {
	jobs := Jobs(registry.IDs(), 3, 7)

	parallel, err := Run(context.Background(), jobs, 4, smallBoard(), nil)
	require.NoError(t, err)
	sequential, err := Run(context.Background(), jobs, 1, smallBoard(), nil)
	require.NoError(t, err)

	require.Len(t, parallel, len(jobs))
	require.Len(t, sequential, len(jobs))
	for i := range jobs {
		p, s := parallel[i], sequential[i]
		require.NoError(t, p.Err)
		assert.Equal(t, jobs[i], p.Job)
		assert.Equal(t, s.Summary, p.Summary, "job %d", i)
		assert.Zero(t, p.Rejected, "job %d", i)
		assert.NotEqual(t, arena.StateCorrupt, p.Summary.State, "job %d", i)
	}
}

func TestRunReportsEveryResult(t *testing.T) {
	jobs := Jobs([]string{"greedy", "random"}, 4, 1)

	seen := make(map[int]int)
	results, err := Run(context.Background(), jobs, 3, smallBoard(), func(r Result) {
		seen[r.Job.ID]++
	})
	require.NoError(t, err)
	assert.Len(t, results, len(jobs))
	assert.Len(t, seen, len(jobs))
	for id, n := range seen {
		assert.Equal(t, 1, n, "job %d reported %d times", id, n)
	}
}

func TestRunUnknownSolver(t *testing.T) {
	results, err := Run(context.Background(), []Job{{ID: 0, Solver: "nope", Seed: 1}}, 2, smallBoard(), nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Run(ctx, Jobs([]string{"hamilton"}, 8, 1), 2, smallBoard(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestRunNoJobs(t *testing.T) {
	results, err := Run(context.Background(), nil, 4, smallBoard(), nil)
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestSummarize(t *testing.T) {
	result := func(solver string, length, ticks int, state arena.State) Result {
		return Result{
			Job:     Job{Solver: solver},
			Summary: arena.Summary{Solver: solver, Length: length, Ticks: ticks, State: state},
		}
	}

	aggs := Summarize([]Result{
		result("hamilton", 48, 900, arena.StateWon),
		result("astar", 12, 100, arena.StateDead),
		result("hamilton", 30, 700, arena.StateStalled),
		result("astar", 20, 300, arena.StateDead),
		{Job: Job{Solver: "astar"}, Err: context.Canceled},
	})
	require.Len(t, aggs, 2)

	astar, ham := aggs[0], aggs[1]
	assert.Equal(t, "astar", astar.Solver)
	assert.Equal(t, 2, astar.Games)
	assert.Equal(t, 1, astar.Errors)
	assert.Equal(t, 20, astar.BestLength)
	assert.Equal(t, 12, astar.WorstLength)
	assert.InDelta(t, 16.0, astar.MeanLength, 1e-9)
	assert.InDelta(t, 200.0, astar.MeanTicks, 1e-9)
	assert.Equal(t, 2, astar.States[arena.StateDead])
	assert.Zero(t, astar.WinRate())

	assert.Equal(t, "hamilton", ham.Solver)
	assert.Equal(t, 1, ham.Wins)
	assert.InDelta(t, 0.5, ham.WinRate(), 1e-9)
	assert.Equal(t, 1, ham.States[arena.StateStalled])
}
