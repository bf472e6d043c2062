// Package bench plays batches of autopilot games on a pool of workers and
// aggregates the outcomes per solver.
package bench

import (
	"cmp"
	"context"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snakebot/internal/arena"
	"github.com/vovakirdan/snakebot/internal/grid"
	"github.com/vovakirdan/snakebot/internal/registry"
)

// cancelCheck is how many ticks a worker plays between context checks.
const cancelCheck = 256

// Job is one game to play.
type Job struct {
	ID     int
	Solver string
	Seed   int64
}

// Options configure every game of a batch.
type Options struct {
	Size       grid.Size
	MaxTicks   int
	StallLimit int
	// Check verifies the board invariants after every tick.
	Check bool
	// Logger receives per-game logs. Nil discards them.
	Logger *log.Logger
}

// Result is the outcome of one job.
type Result struct {
	Job      Job
	Summary  arena.Summary
	Rejected int
	Duration time.Duration
	// Err is set when the game could not be played to the end.
	Err error
}

// Jobs returns games games for every solver. Game i of each solver uses
// seed+i, so solvers are compared on the same seeds.
func Jobs(solvers []string, games int, seed int64) []Job {
	jobs := make([]Job, 0, len(solvers)*games)
	for _, id := range solvers {
		for i := 0; i < games; i++ {
			jobs = append(jobs, Job{ID: len(jobs), Solver: id, Seed: seed + int64(i)})
		}
	}
	return jobs
}

// Run plays the jobs on the given number of workers. onResult, when not nil,
// is called from a single goroutine as each game finishes. The returned
// results are ordered by job ID. On cancellation the unfinished games are
// reported with Err set and the context error is returned.
func Run(ctx context.Context, jobs []Job, workers int, opts Options, onResult func(Result)) ([]Result, error) {
	if len(jobs) == 0 {
		return nil, ctx.Err()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	workers = max(1, min(workers, len(jobs)))

	jobCh := make(chan Job)
	resCh := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				resCh <- play(ctx, job, opts)
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case jobCh <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resCh)
	}()

	results := make([]Result, 0, len(jobs))
	for res := range resCh {
		if onResult != nil {
			onResult(res)
		}
		results = append(results, res)
	}

	slices.SortFunc(results, func(a, b Result) int {
		return cmp.Compare(a.Job.ID, b.Job.ID)
	})
	return results, ctx.Err()
}

func play(ctx context.Context, job Job, opts Options) Result {
	start := time.Now()
	res := Result{Job: job}
	logger := opts.Logger.With("job", job.ID, "solver", job.Solver)

	s, err := registry.Create(job.Solver, registry.Options{Logger: logger, Seed: job.Seed})
	if err != nil {
		res.Err = err
		return res
	}

	r, err := arena.NewRunner(opts.Size, s, logger, arena.RunnerOptions{
		StallLimit: opts.StallLimit,
		MaxTicks:   opts.MaxTicks,
		Check:      opts.Check,
	})
	if err != nil {
		res.Err = err
		return res
	}

	r.Reset(job.Seed)
	for !r.State().Over() {
		if r.Stats().Ticks%cancelCheck == 0 {
			if err := ctx.Err(); err != nil {
				res.Err = err
				break
			}
		}
		r.Tick()
	}

	res.Summary = r.Summary()
	res.Rejected = r.Stats().Rejected
	res.Duration = time.Since(start)

	if res.Err == nil {
		logger.Debug("game finished",
			"seed", job.Seed,
			"state", res.Summary.State,
			"length", res.Summary.Length,
			"ticks", res.Summary.Ticks,
			"duration", res.Duration,
		)
	}
	return res
}
