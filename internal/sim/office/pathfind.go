package office

import (
	"container/heap"

	"officegrid/internal/protocol"
)

// findPath runs A* over a clone of the grid with 8-directional movement.
// A diagonal step is only taken when both flanking orthogonal cells are
// walkable (no corner cutting). Returns nil when start/end is out of bounds,
// the end cell is blocked, or no route exists. The returned path includes the
// start cell.
//
// The start cell itself may be blocked: a character standing on a cell that
// furniture was just placed over must still be able to walk out.
func findPath(grid *Grid, start, end protocol.Vec2) []protocol.Vec2 {
	g := grid.Clone()
	if !g.InBounds(start[0], start[1]) || !g.InBounds(end[0], end[1]) {
		return nil
	}
	if !g.IsWalkable(end[0], end[1]) {
		return nil
	}
	if start == end {
		return []protocol.Vec2{start}
	}

	const (
		orthCost = 10
		diagCost = 14
	)

	// Octile distance, scaled to the step costs above.
	h := func(p protocol.Vec2) int {
		dx := p[0] - end[0]
		if dx < 0 {
			dx = -dx
		}
		dy := p[1] - end[1]
		if dy < 0 {
			dy = -dy
		}
		if dx < dy {
			dx, dy = dy, dx
		}
		return orthCost*(dx-dy) + diagCost*dy
	}

	gScore := map[protocol.Vec2]int{start: 0}
	cameFrom := map[protocol.Vec2]protocol.Vec2{}
	closed := map[protocol.Vec2]bool{}

	open := &nodeQueue{}
	heap.Init(open)
	heap.Push(open, pathNode{pos: start, f: h(start)})

	// Fixed order keeps results deterministic for equal-cost routes.
	orth := [4]protocol.Vec2{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diag := [4]protocol.Vec2{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	for open.Len() > 0 {
		cur := heap.Pop(open).(pathNode)
		if closed[cur.pos] {
			continue
		}
		closed[cur.pos] = true

		if cur.pos == end {
			return reconstruct(cameFrom, start, end)
		}

		relax := func(next protocol.Vec2, cost int) {
			if closed[next] {
				return
			}
			tentative := gScore[cur.pos] + cost
			if best, seen := gScore[next]; seen && tentative >= best {
				return
			}
			gScore[next] = tentative
			cameFrom[next] = cur.pos
			heap.Push(open, pathNode{pos: next, f: tentative + h(next)})
		}

		for _, d := range orth {
			next := protocol.Vec2{cur.pos[0] + d[0], cur.pos[1] + d[1]}
			if !g.IsWalkable(next[0], next[1]) {
				continue
			}
			relax(next, orthCost)
		}
		for _, d := range diag {
			next := protocol.Vec2{cur.pos[0] + d[0], cur.pos[1] + d[1]}
			if !g.IsWalkable(next[0], next[1]) {
				continue
			}
			// Both flanking orthogonal cells must be open to cut the corner.
			if !g.IsWalkable(cur.pos[0]+d[0], cur.pos[1]) || !g.IsWalkable(cur.pos[0], cur.pos[1]+d[1]) {
				continue
			}
			relax(next, diagCost)
		}
	}
	return nil
}

func reconstruct(cameFrom map[protocol.Vec2]protocol.Vec2, start, end protocol.Vec2) []protocol.Vec2 {
	path := []protocol.Vec2{end}
	for cur := end; cur != start; {
		parent, ok := cameFrom[cur]
		if !ok {
			return nil
		}
		path = append(path, parent)
		cur = parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type pathNode struct {
	pos protocol.Vec2
	f   int
}

type nodeQueue []pathNode

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].f < q[j].f }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(pathNode)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
