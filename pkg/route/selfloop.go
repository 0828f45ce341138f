package route

import "github.com/flowtext/mmdascii/pkg/layout"

// RouteSelfLoop returns the fixed three-segment waypoint list for an edge
// whose source and target are the same node: out from the right border,
// one cell right, then back in one row below the exit point. When the
// entry row would reach the bottom border, the entry moves up to the last
// row above that border and the exit to the row above the entry (the
// top-right corner for a three-row box), so the two rows never coincide.
func RouteSelfLoop(n layout.LayoutNode) []Point {
	exitY := n.Y + n.Height/2
	entryY := exitY + 1
	if entryY >= n.Y+n.Height-1 {
		entryY = n.Y + n.Height - 2
		exitY = entryY - 1
	}
	rightX := n.X + n.Width - 1
	loopX := rightX + 2

	return []Point{
		{X: rightX, Y: exitY},
		{X: loopX, Y: exitY},
		{X: loopX, Y: entryY},
		{X: rightX, Y: entryY},
	}
}
