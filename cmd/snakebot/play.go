package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakebot/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [solver]",
	Short: "Watch a solver play",
	Long: `Watch the given solver, or the configured one, play a game.

Controls:
  P/Space  - Pause
  S        - Step one tick while paused
  R        - New game
  Tab      - Switch to the next solver mid-game
  +/-      - Faster/slower
  D        - Show/hide planned paths
  Q/Esc    - Quit

Every finished game is stored in the runs database.

Examples:
  snakebot play
  snakebot play greedy
  snakebot play hamilton --width 30 --height 20 --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	solverID := cfg.Solver
	if len(args) == 1 {
		solverID = args[0]
	}
	if err := checkSolver(solverID); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	model, err := tui.NewModel(solverID, store, runtimeConfig(), cfg.Render.Theme,
		cfg.Bench.StallLimit(boardSize().Cells()), tuiLogger())
	if err != nil {
		return err
	}

	_, err = tui.Run(model)
	return err
}
