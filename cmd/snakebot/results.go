package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakebot/internal/platform/tui"
	"github.com/vovakirdan/snakebot/internal/registry"
	"github.com/vovakirdan/snakebot/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
	flagClear       bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [solver]",
	Short: "Show stored runs",
	Long: `Without a solver, print per-solver statistics over every stored run.
With a solver, print its longest runs.

Examples:
  snakebot results
  snakebot results hamilton --limit 20
  snakebot results --interactive
  snakebot results random --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	f := resultsCmd.Flags()
	f.BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the runs in a full-screen table")
	f.IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	f.BoolVar(&flagClear, "clear", false, "Delete the stored runs of the solver")
}

func runResults(_ *cobra.Command, args []string) error {
	solverID := ""
	if len(args) == 1 {
		solverID = args[0]
		if err := checkSolver(solverID); err != nil {
			return err
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagInteractive {
		rc := runtimeConfig()
		if solverID == "" {
			solverID = cfg.Solver
		}
		_, err := tui.RunResults(store, solverID, rc.ScreenW, rc.ScreenH)
		return err
	}

	if flagClear {
		if solverID == "" {
			return fmt.Errorf("--clear needs a solver")
		}
		if err := store.ClearRuns(solverID); err != nil {
			return err
		}
		fmt.Printf("Cleared runs of %s.\n", registry.Title(solverID))
		return nil
	}

	if solverID == "" {
		return printStats(store)
	}
	return printRuns(store, solverID)
}

func resultsTable(headers []string, rows [][]string) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}

func printStats(store *storage.Store) error {
	stats, err := store.SolverStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'snakebot bench' or 'snakebot play' to record some.")
		return nil
	}

	rows := make([][]string, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, []string{
			registry.Title(st.Solver),
			fmt.Sprintf("%d", st.Runs),
			fmt.Sprintf("%.0f%%", st.WinRate()*100),
			fmt.Sprintf("%d", st.BestLength),
			fmt.Sprintf("%.1f", st.AvgLength),
			fmt.Sprintf("%.0f", st.AvgTicks),
			st.LastRun.Format("2006-01-02 15:04"),
		})
	}
	fmt.Println(resultsTable(
		[]string{"Solver", "Runs", "Won", "Best", "Avg length", "Avg ticks", "Last run"},
		rows,
	))
	return nil
}

func printRuns(store *storage.Store, solverID string) error {
	runs, err := store.TopRuns(solverID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Longest runs - %s\n\n", registry.Title(solverID))
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'snakebot play %s' to record the first one.\n", solverID)
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for i, r := range runs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Length),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.Outcome,
			fmt.Sprintf("%d", r.Seed),
			r.RunID[:8],
			r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	fmt.Println(resultsTable(
		[]string{"#", "Length", "Ticks", "Board", "Outcome", "Seed", "Run", "Date"},
		rows,
	))

	best, err := store.BestLength(solverID)
	if err == nil {
		fmt.Printf("\nBest: %d\n", best)
	}
	return nil
}
