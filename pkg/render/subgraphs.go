package render

import (
	"sort"

	"github.com/flowtext/mmdascii/pkg/canvas"
	"github.com/flowtext/mmdascii/pkg/layout"
)

// paintSubgraphBorders draws one border rectangle per subgraph at the
// bounds the layout engine already computed (phase 7 assigns the
// position; this only paints it), with the subgraph's label, padded by one
// space on each side, written on the top border starting two cells in
// from the left corner when it fits — a name wider than the box is silently
// omitted rather than truncated or overflowing. bounds/descriptions are
// iterated in sorted id order so painting stays deterministic regardless
// of Go's map iteration order.
func paintSubgraphBorders(c *canvas.Canvas, bounds map[string]layout.Rect, descriptions map[string]string) {
	bc := canvas.ForCharSet(c.Charset())
	ids := make([]string, 0, len(bounds))
	for sgID := range bounds {
		ids = append(ids, sgID)
	}
	sort.Strings(ids)

	for _, sgID := range ids {
		rect := bounds[sgID]
		c.DrawBox(canvas.Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height}, bc)

		label := " " + descriptions[sgID] + " "
		if runeLen(label)+4 <= rect.Width {
			c.WriteString(rect.X+2, rect.Y, label)
		}
	}
}
