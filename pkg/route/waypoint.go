package route

import (
	"github.com/flowtext/mmdascii/pkg/ast"
	"github.com/flowtext/mmdascii/pkg/layout"
)

// RoutedEdge is one original edge's final orthogonal polyline, ready for
// painting: the source/target ids for label/arrowhead placement plus a
// sequence of waypoints where consecutive points differ on exactly one
// axis and no two consecutive points are equal.
type RoutedEdge struct {
	FromID    string
	ToID      string
	Label     string
	Type      ast.EdgeType
	Reversed  bool
	Waypoints []Point

	// Fallback reports whether A* could not reach this edge's goal and
	// the plainer orthogonal-waypoint router produced Waypoints instead.
	Fallback bool
}

// borderAttach returns the exit/entry stub on a node's border facing the
// given direction, per the "side facing the next hop" rule: bottom-center
// for TD, top-center for BT, right-center for LR, left-center for RL.
func borderAttach(n layout.LayoutNode, direction ast.Direction, exit bool) Point {
	cx := n.X + n.Width/2
	cy := n.Y + n.Height/2
	switch direction {
	case ast.DirectionLR:
		if exit {
			return Point{X: n.X + n.Width - 1, Y: cy}
		}
		return Point{X: n.X, Y: cy}
	case ast.DirectionRL:
		if exit {
			return Point{X: n.X, Y: cy}
		}
		return Point{X: n.X + n.Width - 1, Y: cy}
	case ast.DirectionBT:
		if exit {
			return Point{X: cx, Y: n.Y}
		}
		return Point{X: cx, Y: n.Y + n.Height - 1}
	default: // TD
		if exit {
			return Point{X: cx, Y: n.Y + n.Height - 1}
		}
		return Point{X: cx, Y: n.Y}
	}
}

// WaypointRoute builds the orthogonal-waypoint fallback path for a chain:
// the source's exit stub, one point per intermediate dummy, the target's
// entry stub, bent at each dummy so consecutive points stay orthogonal.
func WaypointRoute(nodeByID map[string]layout.LayoutNode, dummyPos map[string]layout.Point, direction ast.Direction, chain layout.EdgeChain) []Point {
	fromNode := nodeByID[chain.Path[0]]
	toNode := nodeByID[chain.Path[len(chain.Path)-1]]

	pts := []Point{borderAttach(fromNode, direction, true)}
	for _, id := range chain.Path[1 : len(chain.Path)-1] {
		p := dummyPos[id]
		pts = append(pts, Point{X: p.X, Y: p.Y})
	}
	pts = append(pts, borderAttach(toNode, direction, false))

	return bendOrthogonal(pts)
}

// bendOrthogonal inserts an intermediate point between every pair of
// waypoints that don't already share an axis, so the final polyline is
// purely orthogonal. The bend shares x with the earlier point and y with
// the later one, matching how the reference waypoint router hugs the
// vertical run before handing off horizontally.
func bendOrthogonal(pts []Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	out := []Point{pts[0]}
	for i := 1; i < len(pts); i++ {
		prev, cur := out[len(out)-1], pts[i]
		if prev.X != cur.X && prev.Y != cur.Y {
			out = append(out, Point{X: prev.X, Y: cur.Y})
		}
		if out[len(out)-1] != cur {
			out = append(out, cur)
		}
	}
	return dedupeAdjacent(out)
}

func dedupeAdjacent(pts []Point) []Point {
	if len(pts) == 0 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
