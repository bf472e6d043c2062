// Package grid provides the board model shared by the arena driver and the
// solvers: positions, the four axis directions, direction sets and a
// fixed-size occupancy grid.
//
// Coordinates follow the terminal convention: X grows to the right and Y grows
// downward, so Up is (0, -1).
package grid

// Direction is one of the four axis directions.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// offsets is indexed by Direction.
var offsets = [4]Pos{
	Up:    {X: 0, Y: -1},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
	Right: {X: 1, Y: 0},
}

var flips = [4]Direction{Up: Down, Down: Up, Left: Right, Right: Left}

var clockwise = [4]Direction{Up: Right, Right: Down, Down: Left, Left: Up}

var counterClockwise = [4]Direction{Up: Left, Left: Down, Down: Right, Right: Up}

// Order is the fixed direction priority used wherever ties must be broken
// deterministically (neighbor enumeration, fallback moves).
var Order = [4]Direction{Up, Down, Right, Left}

// Offset returns the unit step for the direction.
func (d Direction) Offset() Pos {
	return offsets[d]
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	return flips[d]
}

// RotateCW returns the direction after a clockwise quarter turn.
func (d Direction) RotateCW() Direction {
	return clockwise[d]
}

// RotateCCW returns the direction after a counter-clockwise quarter turn.
func (d Direction) RotateCCW() Direction {
	return counterClockwise[d]
}

// IsHorizontal reports whether d is Left or Right.
func (d Direction) IsHorizontal() bool {
	return d == Left || d == Right
}

// IsVertical reports whether d is Up or Down.
func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

// Perpendicular returns the two directions at right angles to d, in the
// order detours are probed: Up, Down for horizontal moves and Right, Left for
// vertical ones.
func (d Direction) Perpendicular() [2]Direction {
	if d.IsHorizontal() {
		return [2]Direction{Up, Down}
	}
	return [2]Direction{Right, Left}
}

// Set returns the single-direction set containing d.
func (d Direction) Set() Directions {
	return 1 << d
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a name produced by String back to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return Up, false
}

// DirectionBetween returns the direction leading from a to an orthogonally
// adjacent b.
func DirectionBetween(a, b Pos) (Direction, bool) {
	switch b.Sub(a) {
	case offsets[Up]:
		return Up, true
	case offsets[Down]:
		return Down, true
	case offsets[Left]:
		return Left, true
	case offsets[Right]:
		return Right, true
	}
	return Up, false
}

// Directions is a bit set of directions.
type Directions uint8

const (
	DirUp    Directions = 1 << Up
	DirDown  Directions = 1 << Down
	DirLeft  Directions = 1 << Left
	DirRight Directions = 1 << Right

	None Directions = 0
	All             = DirUp | DirDown | DirLeft | DirRight
)

// Has reports whether d is in the set.
func (s Directions) Has(d Direction) bool {
	return s&d.Set() != 0
}

// With returns the set plus d.
func (s Directions) With(d Direction) Directions {
	return s | d.Set()
}

// Without returns the set minus d.
func (s Directions) Without(d Direction) Directions {
	return s &^ d.Set()
}

// Count returns the number of directions in the set.
func (s Directions) Count() int {
	n := 0
	for _, d := range Order {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Each returns the members of the set in Order.
func (s Directions) Each() []Direction {
	out := make([]Direction, 0, 4)
	for _, d := range Order {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s Directions) String() string {
	if s == None {
		return "none"
	}
	out := ""
	for _, d := range s.Each() {
		if out != "" {
			out += "|"
		}
		out += d.String()
	}
	return out
}
