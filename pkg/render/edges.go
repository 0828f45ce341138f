package render

import (
	"github.com/flowtext/mmdascii/pkg/ast"
	"github.com/flowtext/mmdascii/pkg/canvas"
	"github.com/flowtext/mmdascii/pkg/route"
)

// lineCharsFor returns the (horizontal, vertical) glyph pair for an edge
// type's line style: thick edges paint double lines, dotted edges paint
// dashed lines, everything else paints the charset's plain box lines.
func lineCharsFor(edgeType ast.EdgeType, cs canvas.CharSet) (string, string) {
	switch edgeType {
	case ast.EdgeThickArrow, ast.EdgeThickLine, ast.EdgeBidirThick:
		return "═", "║"
	case ast.EdgeDottedArrow, ast.EdgeDottedLine, ast.EdgeBidirDotted:
		return "╌", "╎"
	default:
		bc := canvas.ForCharSet(cs)
		return bc.Horizontal, bc.Vertical
	}
}

// paintEdge draws every orthogonal segment of a routed edge's waypoint
// polyline, taken from FromID to ToID (a Reversed edge's waypoints are
// walked in reverse order), then stamps the border-attach stub at each
// end, paints each arrowhead on the border cell where the edge meets the
// box it points into (over that end's stub, not one cell outside the
// box), and, if
// labeled, writes the label one row above the middle waypoint, starting
// at that waypoint's column.
func paintEdge(c *canvas.Canvas, re route.RoutedEdge) {
	if len(re.Waypoints) < 2 {
		return
	}
	if re.Reversed {
		rev := make([]route.Point, len(re.Waypoints))
		for i, p := range re.Waypoints {
			rev[len(rev)-1-i] = p
		}
		re.Waypoints = rev
	}
	hCh, vCh := lineCharsFor(re.Type, c.Charset())
	bc := canvas.ForCharSet(c.Charset())

	for i := 0; i < len(re.Waypoints)-1; i++ {
		p0, p1 := re.Waypoints[i], re.Waypoints[i+1]
		switch {
		case p0.Y == p1.Y:
			c.HLine(p0.Y, p0.X, p1.X, hCh)
		case p0.X == p1.X:
			c.VLine(p0.X, p0.Y, p1.Y, vCh)
		}
	}

	first, second := re.Waypoints[0], re.Waypoints[1]
	last, prev := re.Waypoints[len(re.Waypoints)-1], re.Waypoints[len(re.Waypoints)-2]
	c.SetTee(first.X, first.Y, awayArm(first, second))
	c.SetTee(last.X, last.Y, awayArm(last, prev))

	if re.Type.HasTargetArrow() {
		c.Set(last.X, last.Y, arrowGlyph(prev, last, bc))
	}
	if re.Type.HasSourceArrow() {
		c.Set(first.X, first.Y, arrowGlyph(second, first, bc))
	}

	if re.Label != "" {
		mid := re.Waypoints[len(re.Waypoints)/2]
		labelRow := mid.Y - 1
		if labelRow < 0 {
			labelRow = 0
		}
		c.WriteString(mid.X, labelRow, re.Label)
	}
}

// awayArm is the single direction from a border-attach point toward its
// adjacent waypoint, which by construction always lies outside the node
// it's attached to — the one arm an exit/entry stub is allowed to add to
// a border cell without widening it into a Cross.
func awayArm(border, neighbor route.Point) canvas.Arms {
	switch {
	case neighbor.Y < border.Y:
		return canvas.Arms{Up: true}
	case neighbor.Y > border.Y:
		return canvas.Arms{Down: true}
	case neighbor.X > border.X:
		return canvas.Arms{Right: true}
	default:
		return canvas.Arms{Left: true}
	}
}

// arrowGlyph picks the directional arrowhead pointing from `from` toward
// `to`, preferring the vertical glyph when the segment has any vertical
// component (matching the reference renderer's y-before-x tie-break).
func arrowGlyph(from, to route.Point, bc canvas.BoxChars) string {
	switch {
	case to.Y < from.Y:
		return bc.ArrowUp
	case to.Y > from.Y:
		return bc.ArrowDown
	case to.X > from.X:
		return bc.ArrowRight
	default:
		return bc.ArrowLeft
	}
}
