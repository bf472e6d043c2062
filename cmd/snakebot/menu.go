package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakebot/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick solvers from an interactive menu",
	Long: `Start snakebot in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to watch a solver and Tab for
stored results. Leaving a game with Esc returns to the menu.

Examples:
  snakebot menu
  snakebot menu --width 24 --height 16`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	rc := runtimeConfig()
	current := cfg.Solver
	stallLimit := cfg.Bench.StallLimit(boardSize().Cells())

	for {
		res, err := tui.RunMenu(store, rc, current)
		if err != nil {
			return err
		}
		rc = res.Config

		switch {
		case res.Quit:
			return nil

		case res.WantsResults:
			goBack, err := tui.RunResults(store, current, rc.ScreenW, rc.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			current = res.SolverID
			model, err := tui.NewModel(current, store, rc, cfg.Render.Theme, stallLimit, tuiLogger())
			if err != nil {
				return err
			}
			back, err := tui.Run(model)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
		}
	}
}
