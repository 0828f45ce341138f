// Package render paints a positioned, routed layout onto a character
// grid and serializes it to text: node boxes, subgraph borders, and
// routed edges, with direction-aware pre/post transforms for LR/RL/BT.
package render

import (
	"github.com/flowtext/mmdascii/pkg/ast"
	"github.com/flowtext/mmdascii/pkg/canvas"
	"github.com/flowtext/mmdascii/pkg/layout"
	"github.com/flowtext/mmdascii/pkg/route"
)

// Options controls glyph family selection for Render.
type Options struct {
	ASCII bool
}

// Render paints res/routed onto a sized canvas and returns the final
// text, applying the seven-phase pipeline: direction pre-transform, grid
// sizing, subgraph borders, node boxes, edges, serialization, direction
// post-transform.
func Render(res *layout.Result, routed []route.RoutedEdge, opts Options) string {
	cs := canvas.Unicode
	if opts.ASCII {
		cs = canvas.ASCII
	}

	nodes := append([]layout.LayoutNode(nil), res.Nodes...)
	bounds := make(map[string]layout.Rect, len(res.SubgraphBounds))
	for k, v := range res.SubgraphBounds {
		bounds[k] = v
	}
	edges := make([]route.RoutedEdge, len(routed))
	for i, r := range routed {
		edges[i] = r
		edges[i].Waypoints = append([]route.Point(nil), r.Waypoints...)
	}

	switch res.Direction {
	case ast.DirectionLR, ast.DirectionRL:
		transposeLayout(nodes, bounds, edges)
	}

	if len(nodes) == 0 && len(bounds) == 0 {
		return "\n"
	}

	width, height := canvasDimensions(nodes, edges)
	c := canvas.New(width, height, cs)

	paintSubgraphBorders(c, bounds, res.SubgraphDescriptions)

	for _, ln := range nodes {
		paintNode(c, ln, ln.Shape, ln.Label)
	}

	for _, re := range edges {
		paintEdge(c, re)
	}

	rendered := c.ToString()

	switch res.Direction {
	case ast.DirectionBT:
		return flipVertical(rendered)
	case ast.DirectionRL:
		return flipHorizontal(rendered)
	}
	return rendered
}

// canvasDimensions sizes the grid comfortably around every node and
// waypoint, with a floor matching the reference renderer's minimum.
func canvasDimensions(nodes []layout.LayoutNode, edges []route.RoutedEdge) (int, int) {
	maxCol, maxRow := 40, 10
	for _, n := range nodes {
		if r := n.X + n.Width + 2; r > maxCol {
			maxCol = r
		}
		if b := n.Y + n.Height + 4; b > maxRow {
			maxRow = b
		}
	}
	for _, re := range edges {
		for _, p := range re.Waypoints {
			if p.X+4 > maxCol {
				maxCol = p.X + 4
			}
			if p.Y+4 > maxRow {
				maxRow = p.Y + 4
			}
		}
	}
	return maxCol, maxRow
}
