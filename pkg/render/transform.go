package render

import (
	"strings"

	"github.com/flowtext/mmdascii/pkg/layout"
	"github.com/flowtext/mmdascii/pkg/route"
)

// transposeLayout swaps x/y and width/height on every node, every
// subgraph bound, and every waypoint in place, turning a TD-space layout
// into the LR space it will actually be painted in (or vice versa for
// RL, which reuses the LR pass then flips horizontally afterward).
func transposeLayout(nodes []layout.LayoutNode, bounds map[string]layout.Rect, routed []route.RoutedEdge) {
	for i := range nodes {
		nodes[i].X, nodes[i].Y = nodes[i].Y, nodes[i].X
		nodes[i].Width, nodes[i].Height = nodes[i].Height, nodes[i].Width
	}
	for id, r := range bounds {
		bounds[id] = layout.Rect{X: r.Y, Y: r.X, Width: r.Height, Height: r.Width}
	}
	for i := range routed {
		for j := range routed[i].Waypoints {
			p := routed[i].Waypoints[j]
			routed[i].Waypoints[j] = route.Point{X: p.Y, Y: p.X}
		}
	}
}

var verticalFlip = map[string]string{
	"▼": "▲", "▲": "▼", "v": "^", "^": "v",
	"┌": "└", "└": "┌", "┐": "┘", "┘": "┐",
	"╭": "╰", "╰": "╭", "╮": "╯", "╯": "╮",
	"┬": "┴", "┴": "┬",
}

var horizontalFlip = map[string]string{
	"►": "◄", "◄": "►", ">": "<", "<": ">",
	"┌": "┐", "┐": "┌", "└": "┘", "┘": "└",
	"╭": "╮", "╮": "╭", "╰": "╯", "╯": "╰",
	"├": "┤", "┤": "├",
}

func remapChar(table map[string]string, c string) string {
	if m, ok := table[c]; ok {
		return m
	}
	return c
}

// flipVertical reverses row order and remaps every glyph whose meaning
// is orientation-dependent (arrowheads, corners), used for BT diagrams
// which are laid out as TD then flipped top-to-bottom at the end.
func flipVertical(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		var b strings.Builder
		for _, r := range line {
			b.WriteString(remapChar(verticalFlip, string(r)))
		}
		out[len(lines)-1-i] = b.String()
	}
	return strings.Join(out, "\n") + "\n"
}

// flipHorizontal reverses column order on every line and remaps every
// orientation-dependent glyph, used for RL diagrams which are laid out
// as LR then flipped left-to-right at the end.
func flipHorizontal(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	maxWidth := 0
	runeLines := make([][]rune, len(lines))
	for i, line := range lines {
		runeLines[i] = []rune(line)
		if len(runeLines[i]) > maxWidth {
			maxWidth = len(runeLines[i])
		}
	}
	out := make([]string, len(lines))
	for i, rs := range runeLines {
		padded := make([]rune, maxWidth)
		copy(padded, rs)
		for j := len(rs); j < maxWidth; j++ {
			padded[j] = ' '
		}
		var b strings.Builder
		for j := maxWidth - 1; j >= 0; j-- {
			b.WriteString(remapChar(horizontalFlip, string(padded[j])))
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(out, "\n") + "\n"
}
