package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakebot/internal/arena"
	"github.com/vovakirdan/snakebot/internal/bench"
	"github.com/vovakirdan/snakebot/internal/registry"
	"github.com/vovakirdan/snakebot/internal/storage"
)

var (
	flagGames    int
	flagSolvers  []string
	flagWorkers  int
	flagMaxTicks int
	flagCheck    bool
	flagNoSave   bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Play many games headless and compare solvers",
	Long: `Play a batch of games for each solver on a pool of workers and print
per-solver statistics. Game i of every solver uses the same seed, so the
solvers are compared on the same food sequences as far as their moves allow.

Finished games are stored in the runs database unless --no-save is given.
Ctrl+C stops the batch and prints what finished.

Examples:
  snakebot bench
  snakebot bench --games 100 --workers 8
  snakebot bench --solver greedy --solver hamilton --width 10 --height 10
  snakebot bench --check --seed 1`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	f := benchCmd.Flags()
	f.IntVar(&flagGames, "games", 0, "Games per solver (0 = from config)")
	f.StringSliceVar(&flagSolvers, "solver", nil, "Solver to run, repeatable (default: all)")
	f.IntVar(&flagWorkers, "workers", 0, "Concurrent games (0 = from config)")
	f.IntVar(&flagMaxTicks, "max-ticks", -1, "Tick limit per game (-1 = from config, 0 = unlimited)")
	f.BoolVar(&flagCheck, "check", false, "Verify board invariants after every tick")
	f.BoolVar(&flagNoSave, "no-save", false, "Do not store the games")
}

func runBench(cmd *cobra.Command, _ []string) error {
	solvers := flagSolvers
	if len(solvers) == 0 {
		solvers = registry.IDs()
	}
	for _, id := range solvers {
		if err := checkSolver(id); err != nil {
			return err
		}
	}

	games := cfg.Bench.Games
	if flagGames > 0 {
		games = flagGames
	}
	workers := cfg.Bench.Workers
	if flagWorkers > 0 {
		workers = flagWorkers
	}
	maxTicks := cfg.Bench.MaxTicks
	if flagMaxTicks >= 0 {
		maxTicks = flagMaxTicks
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var store *storage.Store
	if !flagNoSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	size := boardSize()
	opts := bench.Options{
		Size:       size,
		MaxTicks:   maxTicks,
		StallLimit: cfg.Bench.StallLimit(size.Cells()),
		Check:      flagCheck,
		Logger:     logger,
	}
	jobs := bench.Jobs(solvers, games, seed)

	logger.Info("bench started",
		"solvers", solvers,
		"games", games,
		"workers", workers,
		"size", size,
		"seed", seed,
	)

	start := time.Now()
	done := 0
	results, err := bench.Run(ctx, jobs, workers, opts, func(r bench.Result) {
		done++
		if r.Err != nil {
			logger.Warn("game failed", "job", r.Job.ID, "solver", r.Job.Solver, "error", r.Err)
			return
		}
		logger.Debug("game done",
			"progress", fmt.Sprintf("%d/%d", done, len(jobs)),
			"solver", r.Job.Solver,
			"state", r.Summary.State,
			"length", r.Summary.Length,
		)
		if r.Rejected > 0 {
			logger.Warn("solver tried to reverse", "solver", r.Job.Solver, "seed", r.Job.Seed, "times", r.Rejected)
		}
		if store != nil {
			if _, err := store.SaveRun(storage.NewRun(r.Summary)); err != nil {
				logger.Warn("cannot save run", "error", err)
			}
		}
	})
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("bench interrupted", "finished", done, "of", len(jobs))
	case err != nil:
		return err
	}

	fmt.Printf("%d games on a %dx%d board in %s\n\n", done, size.W, size.H, time.Since(start).Round(time.Millisecond))
	fmt.Println(benchTable(bench.Summarize(results), size.Cells()))
	return nil
}

func benchTable(aggs []bench.Aggregate, cells int) string {
	rows := make([][]string, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, []string{
			registry.Title(a.Solver),
			fmt.Sprintf("%d", a.Games),
			fmt.Sprintf("%.0f%%", a.WinRate()*100),
			fmt.Sprintf("%d/%d", a.BestLength, cells),
			fmt.Sprintf("%d", a.WorstLength),
			fmt.Sprintf("%.1f", a.MeanLength),
			fmt.Sprintf("%.0f", a.MeanTicks),
			fmt.Sprintf("%d", a.States[arena.StateDead]),
			fmt.Sprintf("%d", a.States[arena.StateStalled]),
			fmt.Sprintf("%d", a.Errors),
		})
	}

	return resultsTable(
		[]string{"Solver", "Games", "Won", "Best", "Worst", "Avg length", "Avg ticks", "Dead", "Stalled", "Errors"},
		rows,
	)
}
