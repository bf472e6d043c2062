package bench

import (
	"slices"
	"strings"
	"time"

	"github.com/vovakirdan/snakebot/internal/arena"
)

// Aggregate summarizes the finished games of one solver.
type Aggregate struct {
	Solver      string
	Games       int
	Errors      int
	Wins        int
	BestLength  int
	WorstLength int
	MeanLength  float64
	MeanTicks   float64
	// States counts the games by final state.
	States  map[arena.State]int
	Elapsed time.Duration
}

// WinRate returns the fraction of finished games that were won.
func (a Aggregate) WinRate() float64 {
	if a.Games == 0 {
		return 0
	}
	return float64(a.Wins) / float64(a.Games)
}

// Summarize groups results by solver, ordered by solver ID. Results with an
// error only count toward Errors.
func Summarize(results []Result) []Aggregate {
	bySolver := make(map[string]*Aggregate)
	var order []string

	for _, res := range results {
		agg, ok := bySolver[res.Job.Solver]
		if !ok {
			agg = &Aggregate{Solver: res.Job.Solver, States: make(map[arena.State]int)}
			bySolver[res.Job.Solver] = agg
			order = append(order, res.Job.Solver)
		}

		if res.Err != nil {
			agg.Errors++
			continue
		}

		s := res.Summary
		if agg.Games == 0 || s.Length < agg.WorstLength {
			agg.WorstLength = s.Length
		}
		agg.BestLength = max(agg.BestLength, s.Length)
		agg.Games++
		agg.MeanLength += float64(s.Length)
		agg.MeanTicks += float64(s.Ticks)
		agg.States[s.State]++
		agg.Elapsed += res.Duration
		if s.State == arena.StateWon {
			agg.Wins++
		}
	}

	slices.SortFunc(order, strings.Compare)
	out := make([]Aggregate, 0, len(order))
	for _, id := range order {
		agg := bySolver[id]
		if agg.Games > 0 {
			agg.MeanLength /= float64(agg.Games)
			agg.MeanTicks /= float64(agg.Games)
		}
		out = append(out, *agg)
	}
	return out
}
