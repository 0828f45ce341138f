// Package route implements orthogonal edge routing over the character
// grid produced by the layout engine: an A* pathfinder that treats node
// boxes as obstacles, an orthogonal-waypoint fallback mode, and a fixed
// self-loop shape.
package route

import "github.com/flowtext/mmdascii/pkg/layout"

// OccupancyGrid tracks which cells are blocked by node-box interiors and
// which are already used by a previously routed edge, so A* can charge
// the +3 crossing penalty instead of treating every edge as a wall.
type OccupancyGrid struct {
	Width, Height int
	blockedBy     []bool // node-box interior, impassable
	edgeUse       []int  // count of routed edges already occupying the cell
}

// NewOccupancyGrid allocates a grid covering [0,width) x [0,height).
func NewOccupancyGrid(width, height int) *OccupancyGrid {
	return &OccupancyGrid{
		Width:     width,
		Height:    height,
		blockedBy: make([]bool, width*height),
		edgeUse:   make([]int, width*height),
	}
}

func (g *OccupancyGrid) idx(x, y int) int { return y*g.Width + x }

func (g *OccupancyGrid) inBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// MarkNodeRect marks every cell of a node's interior (excluding the
// border, which A* is allowed to touch at the attach stub) as blocked.
func (g *OccupancyGrid) MarkNodeRect(x, y, w, h int) {
	for row := y + 1; row < y+h-1; row++ {
		for col := x + 1; col < x+w-1; col++ {
			if g.inBounds(col, row) {
				g.blockedBy[g.idx(col, row)] = true
			}
		}
	}
}

// IsNodeInterior reports whether (x, y) is blocked by a node box.
func (g *OccupancyGrid) IsNodeInterior(x, y int) bool {
	if !g.inBounds(x, y) {
		return true
	}
	return g.blockedBy[g.idx(x, y)]
}

// MarkEdgeUsed records that a routed path has claimed (x, y), so later
// paths are charged the crossing penalty rather than blocked outright.
func (g *OccupancyGrid) MarkEdgeUsed(x, y int) {
	if g.inBounds(x, y) {
		g.edgeUse[g.idx(x, y)]++
	}
}

// EdgeCrossingCost returns the extra cost of entering a cell already used
// by another edge: 0 if free, +3 per spec's crossing-penalty model.
func (g *OccupancyGrid) EdgeCrossingCost(x, y int) int {
	if !g.inBounds(x, y) {
		return 0
	}
	if g.edgeUse[g.idx(x, y)] > 0 {
		return 3
	}
	return 0
}

// BuildOccupancy marks every real node's interior as blocked, sized to
// comfortably contain the full layout plus a two-cell margin on the right
// and bottom.
func BuildOccupancy(res *layout.Result) *OccupancyGrid {
	maxX, maxY := 0, 0
	for _, n := range res.Nodes {
		if n.X+n.Width > maxX {
			maxX = n.X + n.Width
		}
		if n.Y+n.Height > maxY {
			maxY = n.Y + n.Height
		}
	}
	for _, r := range res.SubgraphBounds {
		if r.Right() > maxX {
			maxX = r.Right()
		}
		if r.Bottom() > maxY {
			maxY = r.Bottom()
		}
	}
	grid := NewOccupancyGrid(maxX+2, maxY+2)
	for _, n := range res.Nodes {
		grid.MarkNodeRect(n.X, n.Y, n.Width, n.Height)
	}
	return grid
}
