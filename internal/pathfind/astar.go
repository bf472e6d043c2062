// Package pathfind implements the searches the solvers run over an adjacency
// graph snapshot: a direction-aware A* shortest path and a detour-inserting
// lengthening transform. Both are pure functions of their inputs.
package pathfind

import (
	"container/heap"

	"github.com/vovakirdan/snakebot/internal/graph"
	"github.com/vovakirdan/snakebot/internal/grid"
)

// state is a search node: a cell together with the direction used to enter
// it. Keying on the direction is what keeps the search from proposing an
// immediate reversal.
type state struct {
	pos grid.Pos
	dir grid.Direction
}

// record is the best known way to reach a state.
type record struct {
	state
	parent int // index into the records slice, -1 for the start
	cost   int
}

// entry is a queue item. seq is the push order, the last tie breaker.
type entry struct {
	estimate int
	cost     int
	seq      int
	index    int
}

type openSet []entry

func (q openSet) Len() int { return len(q) }

func (q openSet) Less(i, j int) bool {
	if q[i].estimate != q[j].estimate {
		return q[i].estimate < q[j].estimate
	}
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].seq < q[j].seq
}

func (q openSet) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *openSet) Push(x any) { *q = append(*q, x.(entry)) }

func (q *openSet) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// ShortestPath returns the directions of a shortest path from start to goal,
// entering start with direction incoming. No step reverses the previous one,
// so the first step is never incoming.Flip(). The path length is the number of
// edges; start == goal yields an empty path. ok is false when goal cannot be
// reached through traversable cells.
//
// Ties in estimated cost go to the lower accumulated cost and then to the
// state pushed first, which makes results reproducible.
func ShortestPath(start, goal grid.Pos, incoming grid.Direction, g *graph.Graph) (path []grid.Direction, ok bool) {
	records := []record{{state: state{pos: start, dir: incoming}, parent: -1}}
	index := map[state]int{records[0].state: 0}

	seq := 0
	open := &openSet{{estimate: grid.Manhattan(start, goal), index: 0}}

	for open.Len() > 0 {
		cur := heap.Pop(open).(entry)
		rec := records[cur.index]

		if cur.cost > rec.cost {
			continue // stale
		}
		if rec.pos == goal {
			return reconstruct(records, cur.index), true
		}

		for _, n := range g.Neighbors(rec.pos) {
			if n.Dir == rec.dir.Flip() {
				continue
			}

			next := state{pos: n.Pos, dir: n.Dir}
			cost := cur.cost + 1

			i, seen := index[next]
			switch {
			case !seen:
				i = len(records)
				records = append(records, record{state: next, parent: cur.index, cost: cost})
				index[next] = i
			case cost < records[i].cost:
				records[i].parent = cur.index
				records[i].cost = cost
			default:
				continue
			}

			seq++
			heap.Push(open, entry{
				estimate: cost + grid.Manhattan(n.Pos, goal),
				cost:     cost,
				seq:      seq,
				index:    i,
			})
		}
	}

	return nil, false
}

func reconstruct(records []record, i int) []grid.Direction {
	n := records[i].cost
	path := make([]grid.Direction, n)
	for records[i].parent >= 0 {
		n--
		path[n] = records[i].dir
		i = records[i].parent
	}
	return path
}

// Walk returns every cell a path visits, starting with start.
func Walk(start grid.Pos, path []grid.Direction) []grid.Pos {
	cells := make([]grid.Pos, 0, len(path)+1)
	cells = append(cells, start)
	cur := start
	for _, d := range path {
		cur = cur.Add(d)
		cells = append(cells, cur)
	}
	return cells
}

// End returns the cell a path finishes on.
func End(start grid.Pos, path []grid.Direction) grid.Pos {
	for _, d := range path {
		start = start.Add(d)
	}
	return start
}
