// Package config provides YAML-based configuration loading for snakebot.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Board size limits.
const (
	MinWidth  = 5
	MinHeight = 2
	MaxWidth  = 64
	MaxHeight = 64
)

// Config is the full snakebot configuration.
type Config struct {
	Arena  ArenaConfig  `yaml:"arena"`
	Solver string       `yaml:"solver"`
	Tick   TickConfig   `yaml:"tick"`
	Bench  BenchConfig  `yaml:"bench"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// ArenaConfig sets the board size.
type ArenaConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TickConfig controls play speed.
type TickConfig struct {
	Rate    int `yaml:"rate"`     // steps per second
	MaxRate int `yaml:"max_rate"` // upper bound for +/- in play mode
}

// BenchConfig holds defaults for headless benchmark runs.
type BenchConfig struct {
	Games       int `yaml:"games"`
	Workers     int `yaml:"workers"`
	MaxTicks    int `yaml:"max_ticks"`    // 0 = unlimited
	StallFactor int `yaml:"stall_factor"` // stall after StallFactor * cells ticks without food; 0 = never
}

// RenderConfig controls the play view.
type RenderConfig struct {
	ShowPaths bool  `yaml:"show_paths"`
	Theme     Theme `yaml:"theme"`
}

// Theme holds lipgloss colors (ANSI 256 numbers or hex) for the board.
type Theme struct {
	Head string `yaml:"head"`
	Body string `yaml:"body"`
	Tail string `yaml:"tail"`
	Food string `yaml:"food"`
	Path string `yaml:"path"`
	Grid string `yaml:"grid"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// StallLimit returns the ticks-without-food limit for a board of the given
// number of cells.
func (b BenchConfig) StallLimit(cells int) int {
	return b.StallFactor * cells
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	if c.Arena.Width < MinWidth || c.Arena.Width > MaxWidth {
		errs = append(errs, fmt.Errorf("arena.width %d out of range [%d, %d]", c.Arena.Width, MinWidth, MaxWidth))
	}
	if c.Arena.Height < MinHeight || c.Arena.Height > MaxHeight {
		errs = append(errs, fmt.Errorf("arena.height %d out of range [%d, %d]", c.Arena.Height, MinHeight, MaxHeight))
	}
	if strings.TrimSpace(c.Solver) == "" {
		errs = append(errs, errors.New("solver is empty"))
	}
	if c.Tick.Rate <= 0 {
		errs = append(errs, fmt.Errorf("tick.rate must be positive, got %d", c.Tick.Rate))
	}
	if c.Tick.MaxRate < c.Tick.Rate {
		errs = append(errs, fmt.Errorf("tick.max_rate %d is below tick.rate %d", c.Tick.MaxRate, c.Tick.Rate))
	}
	if c.Bench.Games < 1 {
		errs = append(errs, fmt.Errorf("bench.games must be at least 1, got %d", c.Bench.Games))
	}
	if c.Bench.Workers < 1 {
		errs = append(errs, fmt.Errorf("bench.workers must be at least 1, got %d", c.Bench.Workers))
	}
	if c.Bench.MaxTicks < 0 {
		errs = append(errs, fmt.Errorf("bench.max_ticks must not be negative, got %d", c.Bench.MaxTicks))
	}
	if c.Bench.StallFactor < 0 {
		errs = append(errs, fmt.Errorf("bench.stall_factor must not be negative, got %d", c.Bench.StallFactor))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w", errors.Join(errs...))
}
