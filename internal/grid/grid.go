package grid

import (
	"fmt"
	"strings"
)

// Pos is a cell coordinate. Positions outside a grid are representable so
// that neighbor probes need no special casing; the grid answers bounds.
type Pos struct {
	X, Y int
}

// Add returns the neighbor of p in direction d.
func (p Pos) Add(d Direction) Pos {
	o := offsets[d]
	return Pos{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference p - q.
func (p Pos) Sub(q Pos) Pos {
	return Pos{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Manhattan returns the taxicab distance between a and b.
func Manhattan(a, b Pos) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Size is a board size in cells.
type Size struct {
	W, H int
}

// Cells returns W*H.
func (s Size) Cells() int {
	return s.W * s.H
}

// Contains reports whether p lies on a board of this size.
func (s Size) Contains(p Pos) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.W && p.Y < s.H
}

// Index returns the row-major index of an in-bounds position.
func (s Size) Index(p Pos) int {
	return p.Y*s.W + p.X
}

// At returns the position of a row-major index.
func (s Size) At(i int) Pos {
	return Pos{X: i % s.W, Y: i / s.W}
}

// Kind is what a cell holds.
type Kind uint8

const (
	Empty Kind = iota
	Food
	SnakeHead
	SnakeBody
)

// Cell is the content of one grid cell. Distance is only meaningful for
// SnakeBody and counts moves from the segment to the head (1 = next to it).
type Cell struct {
	Kind     Kind
	Distance int
}

// Body returns a SnakeBody cell at the given distance from the head.
func Body(distance int) Cell {
	return Cell{Kind: SnakeBody, Distance: distance}
}

// IsSnake reports whether the cell is part of the snake.
func (c Cell) IsSnake() bool {
	return c.Kind == SnakeHead || c.Kind == SnakeBody
}

// Grid is a fixed-size row-major array of cells.
type Grid struct {
	size  Size
	cells []Cell
}

// New creates an all-empty grid.
func New(size Size) *Grid {
	return &Grid{
		size:  size,
		cells: make([]Cell, size.Cells()),
	}
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size {
	return g.size
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// InBounds reports whether p is on the grid.
func (g *Grid) InBounds(p Pos) bool {
	return g.size.Contains(p)
}

// Get returns the cell at p, or false outside the grid.
func (g *Grid) Get(p Pos) (Cell, bool) {
	if !g.size.Contains(p) {
		return Cell{}, false
	}
	return g.cells[g.size.Index(p)], true
}

// At returns the cell at p without a bounds check. Callers must only pass
// positions on the grid.
func (g *Grid) At(p Pos) Cell {
	return g.cells[g.size.Index(p)]
}

// Set stores c at p. p must be on the grid.
func (g *Grid) Set(p Pos, c Cell) {
	g.cells[g.size.Index(p)] = c
}

// Fill sets every cell to c.
func (g *Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(p Pos, c Cell)) {
	for i, c := range g.cells {
		fn(g.size.At(i), c)
	}
}

// Positions returns every position in row-major order.
func (g *Grid) Positions() []Pos {
	out := make([]Pos, len(g.cells))
	for i := range g.cells {
		out[i] = g.size.At(i)
	}
	return out
}

// Count returns how many cells satisfy match.
func (g *Grid) Count(match func(Cell) bool) int {
	n := 0
	for _, c := range g.cells {
		if match(c) {
			n++
		}
	}
	return n
}

// NeighborsMatching returns the directions from p whose in-bounds neighbor
// holds exactly c. Body cells match on distance too.
func (g *Grid) NeighborsMatching(p Pos, c Cell) Directions {
	dirs := None
	for _, d := range Order {
		n, ok := g.Get(p.Add(d))
		if !ok {
			continue
		}
		if n.Kind == c.Kind && (c.Kind != SnakeBody || n.Distance == c.Distance) {
			dirs = dirs.With(d)
		}
	}
	return dirs
}

// String dumps the grid one row per line: '.' empty, '*' food, '@' head,
// the distance digit for body cells and '+' beyond 9.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(len(g.cells) + g.size.H)
	for y := 0; y < g.size.H; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.size.W; x++ {
			c := g.At(Pos{X: x, Y: y})
			switch c.Kind {
			case Empty:
				b.WriteByte('.')
			case Food:
				b.WriteByte('*')
			case SnakeHead:
				b.WriteByte('@')
			case SnakeBody:
				if c.Distance < 10 {
					b.WriteByte(byte('0' + c.Distance))
				} else {
					b.WriteByte('+')
				}
			}
		}
	}
	return b.String()
}
