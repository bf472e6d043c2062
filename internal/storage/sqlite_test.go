package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/snakebot/internal/arena"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func run(solver string, length, ticks int, outcome string) Run {
	return Run{
		Solver:  solver,
		Width:   16,
		Height:  16,
		Seed:    1,
		Length:  length,
		Ticks:   ticks,
		Food:    length - 3,
		Outcome: outcome,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.snakebot/runs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".snakebot", "runs.db")); err != nil {
		t.Errorf("Database not created under home: %v", err)
	}
}

func TestStoreSaveAssignsRunID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(run("greedy", 40, 900, "dead"))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}

	runs, err := store.TopRuns("greedy", 1)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	if _, err := uuid.Parse(runs[0].RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", runs[0].RunID, err)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}

	got, err := store.RunByID(runs[0].RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil || got.Length != 40 || got.Ticks != 900 || got.Outcome != "dead" {
		t.Errorf("RunByID() = %+v", got)
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RunByID(uuid.NewString())
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for unknown run, got %+v", got)
	}
}

func TestStoreDuplicateRunID(t *testing.T) {
	store := openTestStore(t)

	r := run("astar", 10, 100, "dead")
	r.RunID = uuid.NewString()
	if _, err := store.SaveRun(r); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(r); err == nil {
		t.Error("Expected an error saving the same run twice")
	}
}

func TestStoreTopRunsOrder(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Run{
		run("greedy", 50, 1000, "dead"),
		run("greedy", 80, 3000, "stalled"),
		run("greedy", 80, 2000, "dead"),
		run("greedy", 20, 300, "dead"),
		run("hamilton", 256, 9000, OutcomeWon),
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns("greedy", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Longest first, fewer ticks breaks ties
	want := [][2]int{{80, 2000}, {80, 3000}, {50, 1000}}
	for i, w := range want {
		if runs[i].Length != w[0] || runs[i].Ticks != w[1] {
			t.Errorf("run %d = length %d ticks %d, want %v", i, runs[i].Length, runs[i].Ticks, w)
		}
	}

	all, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(all) != 5 || all[0].Solver != "hamilton" {
		t.Errorf("Expected all 5 runs led by hamilton, got %d", len(all))
	}
}

func TestStoreBestLength(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	best, err := store.BestLength("astar")
	if err != nil {
		t.Fatalf("BestLength() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for a solver without runs, got %d", best)
	}

	store.SaveRun(run("astar", 12, 100, "dead"))
	store.SaveRun(run("astar", 31, 400, "dead"))
	store.SaveRun(run("astar", 18, 200, "dead"))

	best, err = store.BestLength("astar")
	if err != nil {
		t.Fatalf("BestLength() failed: %v", err)
	}
	if best != 31 {
		t.Errorf("Expected best length 31, got %d", best)
	}
}

func TestStoreSolverStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(run("hamilton", 256, 9000, OutcomeWon))
	store.SaveRun(run("hamilton", 256, 11000, OutcomeWon))
	store.SaveRun(run("hamilton", 100, 4000, "stalled"))
	store.SaveRun(run("astar", 20, 100, "dead"))

	stats, err := store.SolverStats()
	if err != nil {
		t.Fatalf("SolverStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 solvers, got %d", len(stats))
	}

	astar, ham := stats[0], stats[1]
	if astar.Solver != "astar" || ham.Solver != "hamilton" {
		t.Fatalf("Unexpected order: %s, %s", astar.Solver, ham.Solver)
	}
	if ham.Runs != 3 || ham.Wins != 2 || ham.BestLength != 256 {
		t.Errorf("hamilton stats = %+v", ham)
	}
	if ham.AvgLength != 204 || ham.AvgTicks != 8000 {
		t.Errorf("hamilton averages = %v, %v", ham.AvgLength, ham.AvgTicks)
	}
	if got := ham.WinRate(); got < 0.66 || got > 0.67 {
		t.Errorf("WinRate() = %v", got)
	}
	if astar.Wins != 0 || astar.WinRate() != 0 {
		t.Errorf("astar stats = %+v", astar)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(run("greedy", 10, 100, "dead"))
	store.SaveRun(run("greedy", 20, 200, "dead"))
	store.SaveRun(run("astar", 30, 300, "dead"))

	if err := store.ClearRuns("greedy"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	greedy, _ := store.TopRuns("greedy", 10)
	if len(greedy) != 0 {
		t.Errorf("Expected 0 greedy runs after clear, got %d", len(greedy))
	}

	astar, _ := store.TopRuns("astar", 10)
	if len(astar) != 1 {
		t.Errorf("astar runs should not be affected by clearing greedy")
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				if _, err := store.SaveRun(run("random", 3+i, 10*j, "dead")); err != nil {
					t.Errorf("SaveRun() failed: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()

	runs, err := store.TopRuns("random", 100)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 40 {
		t.Errorf("Expected 40 runs, got %d", len(runs))
	}
}

func TestNewRun(t *testing.T) {
	store := openTestStore(t)

	r := NewRun(arena.Summary{
		Solver: "hamilton",
		Width:  6,
		Height: 6,
		Seed:   9,
		Length: 36,
		Ticks:  700,
		Food:   33,
		State:  arena.StateWon,
	})
	if r.Outcome != OutcomeWon || r.Solver != "hamilton" || r.Seed != 9 {
		t.Fatalf("NewRun() = %+v", r)
	}

	if _, err := store.SaveRun(r); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	stats, err := store.SolverStats()
	if err != nil {
		t.Fatalf("SolverStats() failed: %v", err)
	}
	if len(stats) != 1 || stats[0].Wins != 1 {
		t.Errorf("a won summary should count as a win: %+v", stats)
	}
}
