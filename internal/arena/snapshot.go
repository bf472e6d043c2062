package arena

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/snakebot/internal/grid"
)

// Snapshot captures the observable game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Length    int
	Head      grid.Pos
	Tail      grid.Pos
	Food      grid.Pos
	HasFood   bool
	Direction grid.Direction
	JustAte   bool
	State     State
}

// Snapshot returns the current game snapshot.
func (a *Arena) Snapshot(s *Snake) Snapshot {
	return Snapshot{
		Tick:      a.tick,
		Length:    s.Length,
		Head:      a.Head,
		Tail:      a.Tail,
		Food:      a.food,
		HasFood:   a.hasFood,
		Direction: s.Direction,
		JustAte:   a.JustAte,
		State:     a.state,
	}
}

// DebugState returns a multi-line description of the game followed by the
// board dump.
func (a *Arena) DebugState(s *Snake) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Length: %d, State: %s\n", a.tick, s.Length, a.state)
	fmt.Fprintf(&b, "Head: %v, Tail: %v, Behind: %v, Direction: %s\n", a.Head, a.Tail, a.Behind, s.Direction)
	if a.hasFood {
		fmt.Fprintf(&b, "Food: %v, JustAte: %v\n", a.food, a.JustAte)
	} else {
		fmt.Fprintf(&b, "Food: none, JustAte: %v\n", a.JustAte)
	}
	b.WriteString(a.grid.String())
	b.WriteByte('\n')
	return b.String()
}

// View is a copy of the board that stays valid after the arena moves on.
type View struct {
	Size    grid.Size
	Cells   []grid.Cell // row-major
	Head    grid.Pos
	Tail    grid.Pos
	Food    grid.Pos
	HasFood bool
}

// View copies the board.
func (a *Arena) View() View {
	v := View{
		Size:    a.size,
		Cells:   make([]grid.Cell, a.size.Cells()),
		Head:    a.Head,
		Tail:    a.Tail,
		Food:    a.food,
		HasFood: a.hasFood,
	}
	a.grid.Each(func(p grid.Pos, c grid.Cell) {
		v.Cells[a.size.Index(p)] = c
	})
	return v
}

// At returns the cell at p, or an empty cell outside the board.
func (v View) At(p grid.Pos) grid.Cell {
	if !v.Size.Contains(p) {
		return grid.Cell{}
	}
	return v.Cells[v.Size.Index(p)]
}
