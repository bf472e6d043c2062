package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakebot/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available solvers",
	Long:  `Shows a list of all solvers registered with snakebot.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	solvers := registry.List()

	if len(solvers) == 0 {
		fmt.Println("No solvers available.")
		return
	}

	fmt.Println("Available solvers:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range solvers {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, s := range solvers {
		marker := ""
		if s.ID == cfg.Solver {
			marker = "  (default)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxIDLen, s.ID, s.Title, marker)
	}

	fmt.Println()
	fmt.Println("Run 'snakebot play <id>' to watch a solver.")
}
