package arena

import (
	"fmt"

	"github.com/vovakirdan/snakebot/internal/grid"
)

// Check verifies the board invariants: a single head, a contiguous body
// with matching follow directions, food off the snake, and an adjacency graph
// that agrees with the grid. It is meant for tests and the bench --check
// mode; a failure means a bug in Step, not a game event.
func (a *Arena) Check(s *Snake) error {
	heads := 0
	bodies := make(map[int]grid.Pos)
	var checkErr error
	fail := func(format string, args ...any) {
		if checkErr == nil {
			checkErr = fmt.Errorf("arena: "+format, args...)
		}
	}

	a.grid.Each(func(p grid.Pos, c grid.Cell) {
		switch c.Kind {
		case grid.SnakeHead:
			heads++
			if p != a.Head {
				fail("head cell at %v, expected %v", p, a.Head)
			}
		case grid.SnakeBody:
			if prev, dup := bodies[c.Distance]; dup {
				fail("distance %d at both %v and %v", c.Distance, prev, p)
			}
			bodies[c.Distance] = p
		case grid.Food:
			if !a.hasFood || p != a.food {
				fail("stray food at %v", p)
			}
		}

		wantTraversable := c.Kind != grid.SnakeBody
		if a.graph.Contains(p) != wantTraversable {
			fail("graph presence of %v is %t for %v cell", p, a.graph.Contains(p), kindName(c.Kind))
		}
		if _, ok := a.graph.Follow(p); ok != (c.Kind == grid.SnakeBody) {
			fail("follow direction presence of %v is %t", p, ok)
		}

		if wantTraversable {
			want := grid.None
			for _, d := range grid.Order {
				n, ok := a.grid.Get(p.Add(d))
				if ok && n.Kind != grid.SnakeBody {
					want = want.With(d)
				}
			}
			if got := a.graph.Directions(p); got != want {
				fail("mask of %v is %v, expected %v", p, got, want)
			}
		}
	})
	if checkErr != nil {
		return checkErr
	}
	if heads != 1 {
		return fmt.Errorf("arena: %d head cells", heads)
	}
	if a.hasFood {
		if c, ok := a.grid.Get(a.food); !ok || c.Kind != grid.Food {
			return fmt.Errorf("arena: food at %v is not on the grid", a.food)
		}
	}

	// Growth shows one step late, so right after eating the body is one
	// short of Length.
	want := s.Length - 1
	if a.JustAte {
		want--
	}
	if len(bodies) != want {
		return fmt.Errorf("arena: %d body cells, expected %d", len(bodies), want)
	}

	prev := a.Head
	for d := 1; d <= want; d++ {
		p, ok := bodies[d]
		if !ok {
			return fmt.Errorf("arena: no body cell at distance %d", d)
		}
		dir, ok := grid.DirectionBetween(p, prev)
		if !ok {
			return fmt.Errorf("arena: body cell %d at %v is not next to %v", d, p, prev)
		}
		if f, _ := a.graph.Follow(p); f != dir {
			return fmt.Errorf("arena: body cell %d at %v follows %v, expected %v", d, p, f, dir)
		}
		prev = p
	}
	if want > 0 && a.Tail != prev {
		return fmt.Errorf("arena: tail at %v, expected %v", a.Tail, prev)
	}
	return nil
}

func kindName(k grid.Kind) string {
	switch k {
	case grid.Empty:
		return "empty"
	case grid.Food:
		return "food"
	case grid.SnakeHead:
		return "head"
	case grid.SnakeBody:
		return "body"
	default:
		return "unknown"
	}
}
