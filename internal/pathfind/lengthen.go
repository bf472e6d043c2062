package pathfind

import (
	"slices"

	"github.com/vovakirdan/snakebot/internal/graph"
	"github.com/vovakirdan/snakebot/internal/grid"
)

// Lengthen grows path by inserting one-cell perpendicular detours wherever
// both cells beside an edge are traversable and not yet on the path. The
// result starts and ends on the same cells as the input and never visits a
// cell twice. The expansion is greedy and local, not a longest path.
//
// An empty path is returned unchanged.
func Lengthen(start grid.Pos, path []grid.Direction, g *graph.Graph) []grid.Direction {
	if len(path) == 0 {
		return path
	}
	path = slices.Clone(path)

	visited := make(map[grid.Pos]struct{}, len(path)*2)
	for _, p := range Walk(start, path) {
		visited[p] = struct{}{}
	}
	free := func(p grid.Pos) bool {
		if !g.Contains(p) {
			return false
		}
		_, seen := visited[p]
		return !seen
	}

	cur := start
	for i := 0; i < len(path); {
		next := cur.Add(path[i])

		extended := false
		for _, side := range path[i].Perpendicular() {
			a, b := cur.Add(side), next.Add(side)
			if !free(a) || !free(b) {
				continue
			}
			visited[a] = struct{}{}
			visited[b] = struct{}{}

			// cur -> a -> b -> next replaces cur -> next.
			path = slices.Insert(path, i+1, side.Flip())
			path = slices.Insert(path, i, side)
			extended = true
			break
		}

		if !extended {
			cur = next
			i++
		}
	}

	return path
}
