package render

import (
	"strings"

	"github.com/flowtext/mmdascii/pkg/ast"
	"github.com/flowtext/mmdascii/pkg/canvas"
	"github.com/flowtext/mmdascii/pkg/layout"
)

// boxCharsForShape returns the glyph family for a node shape: Rectangle
// and Diamond/Circle reuse the standard corners with slanted/rounded
// substitutions, Rounded substitutes curved unicode corners (falling
// back to the plain ASCII corners when no unicode is available).
func boxCharsForShape(shape ast.NodeShape, cs canvas.CharSet) canvas.BoxChars {
	bc := canvas.ForCharSet(cs)
	switch shape {
	case ast.ShapeRounded:
		if cs == canvas.ASCII {
			return bc
		}
		bc.TopLeft, bc.TopRight = "╭", "╮"
		bc.BottomLeft, bc.BottomRight = "╰", "╯"
	case ast.ShapeDiamond:
		bc.TopLeft, bc.TopRight = "/", "\\"
		bc.BottomLeft, bc.BottomRight = "\\", "/"
	case ast.ShapeCircle:
		bc.TopLeft, bc.TopRight = "(", ")"
		bc.BottomLeft, bc.BottomRight = "(", ")"
		bc.Vertical = " "
	}
	return bc
}

// paintNode draws a node's border and centers its (possibly multi-line)
// label inside it, one line per row starting just below the top border.
func paintNode(c *canvas.Canvas, n layout.LayoutNode, shape ast.NodeShape, label string) {
	bc := boxCharsForShape(shape, c.Charset())
	c.DrawBox(canvas.Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}, bc)

	innerWidth := n.Width - 2
	if innerWidth < 0 {
		innerWidth = 0
	}
	for i, line := range strings.Split(label, "\n") {
		row := n.Y + 1 + i
		pad := (innerWidth - runeLen(line)) / 2
		if pad < 0 {
			pad = 0
		}
		c.WriteString(n.X+1+pad, row, line)
	}
}

func runeLen(s string) int { return len([]rune(s)) }
