package arena

import (
	"fmt"

	"github.com/vovakirdan/snakebot/internal/grid"
)

// Parse builds an arena from a text layout, one string per row:
//
//	.  empty        *  food        @  head
//	b  empty cell the tail last vacated (defaults to a traversable cell next to the tail)
//	1-9, then A-Z  body segment at distance 1-35 from the head
//
// Every row must have the same width. The snake's direction is the one
// leading from the first body segment into the head. Food is only present
// where the layout puts it; Step spawns more as usual.
func Parse(rows []string, seed int64) (*Arena, *Snake, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("arena: empty layout")
	}
	size := grid.Size{W: len(rows[0]), H: len(rows)}
	a, err := New(size)
	if err != nil {
		return nil, nil, err
	}
	a.Reset(seed)
	a.grid.Fill(grid.Cell{})
	a.graph.Reset()
	a.hasFood = false

	var (
		heads     int
		hasBehind bool
		maxDist   int
	)
	bodies := make(map[int]grid.Pos)

	for y, row := range rows {
		if len(row) != size.W {
			return nil, nil, fmt.Errorf("arena: row %d has width %d, expected %d", y, len(row), size.W)
		}
		for x, ch := range row {
			p := grid.Pos{X: x, Y: y}
			switch {
			case ch == '.':
			case ch == '*':
				a.PlaceFood(p)
			case ch == '@':
				heads++
				a.Head = p
				a.grid.Set(p, grid.Cell{Kind: grid.SnakeHead})
			case ch == 'b':
				hasBehind = true
				a.Behind = p
			case ch >= '1' && ch <= '9', ch >= 'A' && ch <= 'Z':
				d := int(ch - '0')
				if ch >= 'A' {
					d = int(ch-'A') + 10
				}
				if _, dup := bodies[d]; dup {
					return nil, nil, fmt.Errorf("arena: distance %d appears twice", d)
				}
				bodies[d] = p
				a.grid.Set(p, grid.Body(d))
				maxDist = max(maxDist, d)
			default:
				return nil, nil, fmt.Errorf("arena: unexpected %q at %v", ch, p)
			}
		}
	}
	if heads != 1 {
		return nil, nil, fmt.Errorf("arena: layout has %d heads", heads)
	}
	if maxDist == 0 {
		return nil, nil, fmt.Errorf("arena: layout has no body")
	}

	for i := 0; i < size.Cells(); i++ {
		p := size.At(i)
		if a.grid.At(p).Kind != grid.SnakeBody {
			a.graph.Insert(p)
		}
	}

	s := &Snake{Length: maxDist + 1}
	prev := a.Head
	for d := 1; d <= maxDist; d++ {
		p, ok := bodies[d]
		if !ok {
			return nil, nil, fmt.Errorf("arena: no body segment at distance %d", d)
		}
		dir, ok := grid.DirectionBetween(p, prev)
		if !ok {
			return nil, nil, fmt.Errorf("arena: segment %d at %v is not next to %v", d, p, prev)
		}
		a.graph.SetFollow(p, dir)
		if d == 1 {
			s.Direction = dir
		}
		prev = p
	}
	a.Tail = prev
	s.moved()

	if !hasBehind {
		found := false
		for _, d := range grid.Order {
			if p := a.Tail.Add(d); a.graph.Contains(p) && p != a.Head {
				a.Behind, found = p, true
				break
			}
		}
		if !found {
			return nil, nil, fmt.Errorf("arena: no free cell behind the tail at %v", a.Tail)
		}
	}

	if err := a.Check(s); err != nil {
		return nil, nil, err
	}
	return a, s, nil
}
