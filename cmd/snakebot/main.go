// snakebot watches Snake autopilots play in the terminal and benchmarks
// them.
//
// Usage:
//
//	snakebot list                - List available solvers
//	snakebot play [solver]       - Watch a solver play
//	snakebot menu                - Pick solvers interactively
//	snakebot bench               - Play many games headless and compare solvers
//	snakebot results [solver]    - Show stored runs
//	snakebot serve               - Stream a shared game over SSH
//
// Global flags:
//
//	--config <path>   - Config file (default: ~/.snakebot/config.yaml, then ./configs/snakebot.yaml)
//	--width, --height - Board size, overriding the config
//	--seed <value>    - RNG seed for reproducible games
//	--db <path>       - Database path (default: ~/.snakebot/runs.db)
//	--log-level       - debug, info, warn or error
//	--log-file <path> - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snakebot/internal/config"
	"github.com/vovakirdan/snakebot/internal/core"
	"github.com/vovakirdan/snakebot/internal/grid"
	"github.com/vovakirdan/snakebot/internal/registry"
	"github.com/vovakirdan/snakebot/internal/storage"

	// Import solvers to register them
	_ "github.com/vovakirdan/snakebot/internal/solver"
)

var (
	// Global flags
	flagConfig   string
	flagWidth    int
	flagHeight   int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

var (
	cfg     config.Config
	logger  *log.Logger
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakebot",
	Short: "Snakebot - watch Snake autopilots play in your terminal",
	Long: `Snakebot runs Snake autopilots: A* pursuit, greedy search with
lookahead, a Hamiltonian cycle with shortcuts and a random walk.

Available commands:
  list     - Show all available solvers
  play     - Watch a solver play
  menu     - Interactive solver picker
  bench    - Play many games headless and compare solvers
  results  - View stored runs
  serve    - Stream a shared game over SSH

Examples:
  snakebot list
  snakebot play hamilton --width 20 --height 12
  snakebot bench --games 50 --workers 8
  snakebot results greedy
  snakebot serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to a config YAML")
	pf.IntVar(&flagWidth, "width", 0, "Board width in cells (0 = from config)")
	pf.IntVar(&flagHeight, "height", 0, "Board height in cells (0 = from config)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.snakebot/runs.db", "Path to the runs database")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the configuration, applies the flag overrides and builds the
// logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, source, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagWidth > 0 {
		loaded.Arena.Width = flagWidth
	}
	if flagHeight > 0 {
		loaded.Arena.Height = flagHeight
	}
	if flagLogLevel != "" {
		loaded.Log.Level = flagLogLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	level, err := log.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		logFile, err = os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		w = logFile
	}
	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snakebot",
		Level:           level,
	})
	logger.Debug("config loaded", "source", source, "command", cmd.Name())
	return nil
}

// tuiLogger returns the logger for full-screen commands, which must not
// write to the terminal they draw on.
func tuiLogger() *log.Logger {
	if logFile != nil {
		return logger
	}
	return log.New(io.Discard)
}

func boardSize() grid.Size {
	return grid.Size{W: cfg.Arena.Width, H: cfg.Arena.Height}
}

// runtimeConfig builds the play settings from the config and the terminal
// size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		BoardW:    cfg.Arena.Width,
		BoardH:    cfg.Arena.Height,
		TickRate:  cfg.Tick.Rate,
		MaxRate:   cfg.Tick.MaxRate,
		Seed:      flagSeed,
		ShowPaths: cfg.Render.ShowPaths,
	}
}

// openStore opens the runs database. Interactive commands keep working
// without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func checkSolver(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown solver %q, run 'snakebot list' to see available solvers", id)
	}
	return nil
}
