package core

// RuntimeConfig contains the settings a play session starts with.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	BoardW    int   // Board width in cells
	BoardH    int   // Board height in cells
	TickRate  int   // Snake steps per second
	MaxRate   int   // Upper bound for TickRate
	Seed      int64 // RNG seed for food placement; 0 picks one from the clock
	ShowPaths bool  // Draw the solver's planned paths
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		BoardW:    16,
		BoardH:    16,
		TickRate:  30,
		MaxRate:   240,
		ShowPaths: true,
	}
}

// Faster doubles the tick rate up to MaxRate.
func (c *RuntimeConfig) Faster() {
	c.TickRate = Clamp(c.TickRate*2, 1, max(c.MaxRate, 1))
}

// Slower halves the tick rate down to one step per second.
func (c *RuntimeConfig) Slower() {
	c.TickRate = Clamp(c.TickRate/2, 1, max(c.MaxRate, 1))
}
