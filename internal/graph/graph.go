// Package graph maintains the traversable-cell adjacency graph the solvers
// search. Every traversable cell carries a mask of the directions leading to
// other traversable cells; the mask is updated symmetrically whenever a cell
// is inserted or removed.
//
// Occupied body cells additionally record a follow direction: the direction
// the segment will move on the next tick, toward the neighbor one step closer
// to the head. Walking follow directions from the tail traces the body, which
// lets a solver advance a virtual snake on a cloned graph.
package graph

import "github.com/vovakirdan/snakebot/internal/grid"

// Neighbor is a traversable cell reachable in one step.
type Neighbor struct {
	Pos grid.Pos
	Dir grid.Direction
}

// Graph is the adjacency graph for a fixed board size.
type Graph struct {
	size    grid.Size
	present []bool
	masks   []grid.Directions

	hasFollow []bool
	follow    []grid.Direction
}

// New creates a graph from an initial mask map. Positions outside size are
// ignored. The masks are taken as given.
func New(initial map[grid.Pos]grid.Directions, size grid.Size) *Graph {
	g := empty(size)
	for p, dirs := range initial {
		if !size.Contains(p) {
			continue
		}
		i := size.Index(p)
		g.present[i] = true
		g.masks[i] = dirs
	}
	return g
}

// Full creates a graph in which every cell of the board is traversable.
func Full(size grid.Size) *Graph {
	g := empty(size)
	for i := range g.present {
		p := size.At(i)
		dirs := grid.None
		for _, d := range grid.Order {
			if size.Contains(p.Add(d)) {
				dirs = dirs.With(d)
			}
		}
		g.present[i] = true
		g.masks[i] = dirs
	}
	return g
}

func empty(size grid.Size) *Graph {
	n := size.Cells()
	return &Graph{
		size:      size,
		present:   make([]bool, n),
		masks:     make([]grid.Directions, n),
		hasFollow: make([]bool, n),
		follow:    make([]grid.Direction, n),
	}
}

// Size returns the board size the graph covers.
func (g *Graph) Size() grid.Size {
	return g.size
}

// Reset clears every entry, including follow directions.
func (g *Graph) Reset() {
	clear(g.present)
	clear(g.masks)
	clear(g.hasFollow)
	clear(g.follow)
}

// Insert marks p traversable and links it with its traversable neighbors.
func (g *Graph) Insert(p grid.Pos) {
	dirs := grid.None
	for _, d := range grid.Order {
		n := p.Add(d)
		if !g.size.Contains(n) {
			continue
		}
		j := g.size.Index(n)
		if !g.present[j] {
			continue
		}
		g.masks[j] = g.masks[j].With(d.Flip())
		dirs = dirs.With(d)
	}

	i := g.size.Index(p)
	g.present[i] = true
	g.masks[i] = dirs
}

// Remove marks p non-traversable and clears the reciprocal bit on every
// in-bounds neighbor.
func (g *Graph) Remove(p grid.Pos) {
	i := g.size.Index(p)
	g.present[i] = false
	g.masks[i] = grid.None

	for _, d := range grid.Order {
		n := p.Add(d)
		if !g.size.Contains(n) {
			continue
		}
		j := g.size.Index(n)
		g.masks[j] = g.masks[j].Without(d.Flip())
	}
}

// Contains reports whether p is traversable. Off-board positions are not.
func (g *Graph) Contains(p grid.Pos) bool {
	return g.size.Contains(p) && g.present[g.size.Index(p)]
}

// Directions returns the mask of traversable neighbors of p, or grid.None
// when p itself is not traversable.
func (g *Graph) Directions(p grid.Pos) grid.Directions {
	if !g.Contains(p) {
		return grid.None
	}
	return g.masks[g.size.Index(p)]
}

// Neighbors returns the traversable neighbors of p in grid.Order.
func (g *Graph) Neighbors(p grid.Pos) []Neighbor {
	dirs := g.Directions(p)
	out := make([]Neighbor, 0, 4)
	for _, d := range grid.Order {
		if dirs.Has(d) {
			out = append(out, Neighbor{Pos: p.Add(d), Dir: d})
		}
	}
	return out
}

// Len returns the number of traversable cells.
func (g *Graph) Len() int {
	n := 0
	for _, ok := range g.present {
		if ok {
			n++
		}
	}
	return n
}

// Nodes calls fn for every traversable cell in row-major order.
func (g *Graph) Nodes(fn func(p grid.Pos, dirs grid.Directions)) {
	for i, ok := range g.present {
		if ok {
			fn(g.size.At(i), g.masks[i])
		}
	}
}

// SetFollow records the follow direction of an occupied body cell.
func (g *Graph) SetFollow(p grid.Pos, d grid.Direction) {
	i := g.size.Index(p)
	g.hasFollow[i] = true
	g.follow[i] = d
}

// ClearFollow forgets the follow direction of p.
func (g *Graph) ClearFollow(p grid.Pos) {
	g.hasFollow[g.size.Index(p)] = false
}

// Follow returns the follow direction recorded for p.
func (g *Graph) Follow(p grid.Pos) (grid.Direction, bool) {
	if !g.size.Contains(p) {
		return grid.Up, false
	}
	i := g.size.Index(p)
	return g.follow[i], g.hasFollow[i]
}

// Clone returns an independent deep copy.
func (g *Graph) Clone() *Graph {
	return &Graph{
		size:      g.size,
		present:   append([]bool(nil), g.present...),
		masks:     append([]grid.Directions(nil), g.masks...),
		hasFollow: append([]bool(nil), g.hasFollow...),
		follow:    append([]grid.Direction(nil), g.follow...),
	}
}
