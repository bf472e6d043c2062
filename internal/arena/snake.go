package arena

import "github.com/vovakirdan/snakebot/internal/grid"

// InitialLength is the number of cells, head included, a new snake occupies.
const InitialLength = 3

// Snake is the controllable part of the game state.
type Snake struct {
	// Direction is the move applied on the next step.
	Direction grid.Direction
	// Length is the target length in cells, head included. It grows by one
	// the moment food is eaten; the body catches up a step later.
	Length int

	allowed grid.Directions
}

// NewSnake returns a snake heading left, the way Reset lays it out.
func NewSnake() *Snake {
	return &Snake{
		Direction: grid.Left,
		Length:    InitialLength,
		allowed:   grid.All.Without(grid.Right),
	}
}

// Allowed returns the directions the snake may take next: everything except
// the reverse of the last move.
func (s *Snake) Allowed() grid.Directions {
	return s.allowed
}

// Turn sets the direction for the next step. A reversal is refused and the
// current direction kept.
func (s *Snake) Turn(d grid.Direction) bool {
	if !s.allowed.Has(d) {
		return false
	}
	s.Direction = d
	return true
}

// moved records that a step in the current direction happened.
func (s *Snake) moved() {
	s.allowed = grid.All.Without(s.Direction.Flip())
}
