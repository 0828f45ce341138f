package route

import "container/heap"

// dir indices, matching the 4-connected neighbor order used for
// deterministic tie-breaking (continuation is checked against the
// incoming direction before falling back to position order).
const (
	dirNone = -1
	dirUp   = 0
	dirDown = 1
	dirLeft = 2
	dirRight = 3
)

var dirDeltas = [4][2]int{
	dirUp:    {0, -1},
	dirDown:  {0, 1},
	dirLeft:  {-1, 0},
	dirRight: {1, 0},
}

// Point is a single waypoint in character-cell coordinates.
type Point struct{ X, Y int }

type state struct {
	x, y, dir int
}

type pqItem struct {
	s        state
	priority int
	g        int
	seq      int // insertion order, last tie-break fallback so heap pops deterministically
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	if a.s.y != b.s.y {
		return a.s.y < b.s.y
	}
	if a.s.x != b.s.x {
		return a.s.x < b.s.x
	}
	return a.seq < b.seq
}
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any)        { *pq = append(*pq, x.(*pqItem)) }
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

func heuristic(ax, ay, bx, by int) int {
	dx, dy := abs(ax-bx), abs(ay-by)
	return dx + dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// AStar finds the lowest-cost orthogonal path from start to goal on grid,
// treating node interiors as impassable and other edges' cells as a +3
// penalty. The goal cell itself is always enterable even if it lies on a
// node border. Returns nil if no path exists.
func AStar(grid *OccupancyGrid, start, goal Point) []Point {
	startState := state{start.X, start.Y, dirNone}
	bestCost := map[state]int{startState: 0}
	cameFrom := map[state]state{}
	hasParent := map[state]bool{}

	pq := &priorityQueue{}
	heap.Init(pq)
	seq := 0
	heap.Push(pq, &pqItem{s: startState, priority: heuristic(start.X, start.Y, goal.X, goal.Y), g: 0, seq: seq})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		cur := item.s
		if g, ok := bestCost[cur]; ok && item.g > g {
			continue
		}
		if cur.x == goal.X && cur.y == goal.Y {
			return reconstruct(cameFrom, hasParent, cur, startState)
		}

		for d := 0; d < 4; d++ {
			delta := dirDeltas[d]
			nx, ny := cur.x+delta[0], cur.y+delta[1]
			isGoal := nx == goal.X && ny == goal.Y
			if !isGoal && grid.IsNodeInterior(nx, ny) {
				continue
			}
			step := 1
			if cur.dir != dirNone && cur.dir != d {
				step = 2
			}
			step += grid.EdgeCrossingCost(nx, ny)

			next := state{nx, ny, d}
			newCost := item.g + step
			if g, ok := bestCost[next]; ok && g <= newCost {
				continue
			}
			bestCost[next] = newCost
			cameFrom[next] = cur
			hasParent[next] = true
			seq++
			heap.Push(pq, &pqItem{
				s:        next,
				priority: newCost + heuristic(nx, ny, goal.X, goal.Y),
				g:        newCost,
				seq:      seq,
			})
		}
	}
	return nil
}

func reconstruct(cameFrom map[state]state, hasParent map[state]bool, end, start state) []Point {
	var path []Point
	cur := end
	for {
		path = append(path, Point{X: cur.x, Y: cur.y})
		if cur == start {
			break
		}
		if !hasParent[cur] {
			break
		}
		cur = cameFrom[cur]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// SimplifyPath removes collinear intermediate points, keeping only the
// endpoints and the points where direction changes.
func SimplifyPath(path []Point) []Point {
	if len(path) <= 2 {
		return append([]Point(nil), path...)
	}
	result := []Point{path[0]}
	for i := 1; i < len(path)-1; i++ {
		prev, curr, next := path[i-1], path[i], path[i+1]
		dx1, dy1 := curr.X-prev.X, curr.Y-prev.Y
		dx2, dy2 := next.X-curr.X, next.Y-curr.Y
		if dx1 != dx2 || dy1 != dy2 {
			result = append(result, curr)
		}
	}
	result = append(result, path[len(path)-1])
	return result
}
