package config

import (
	_ "embed"
)

//go:embed defaults/snakebot.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Arena:  ArenaConfig{Width: 16, Height: 16},
		Solver: "hamilton",
		Tick: TickConfig{
			Rate:    30,
			MaxRate: 240,
		},
		Bench: BenchConfig{
			Games:       20,
			Workers:     4,
			MaxTicks:    0,
			StallFactor: 4,
		},
		Render: RenderConfig{
			ShowPaths: true,
			Theme: Theme{
				Head: "229",
				Body: "114",
				Tail: "71",
				Food: "211",
				Path: "61",
				Grid: "236",
			},
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
