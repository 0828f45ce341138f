package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/flowtext/mmdascii/pkg/ast"
	"github.com/flowtext/mmdascii/pkg/graphir"
)

// makeMeasurer returns the label-dimension function used to size real
// nodes: width = 2 + padding*2 + longest-line length, height = 2 +
// line-count, with Diamond/Circle shapes padded two extra columns for
// their slanted/rounded borders.
func makeMeasurer(padding int) func(*graphir.NodeData) (int, int) {
	return func(n *graphir.NodeData) (int, int) {
		lines := strings.Split(n.Label, "\n")
		maxLen := 0
		for _, ln := range lines {
			if c := utf8.RuneCountInString(ln); c > maxLen {
				maxLen = c
			}
		}
		width := 2 + padding*2 + maxLen
		height := 2 + len(lines)
		if n.Shape == ast.ShapeDiamond || n.Shape == ast.ShapeCircle {
			width += 2
		}
		if height < NodeHeight {
			height = NodeHeight
		}
		return width, height
	}
}

// assignCoordinates lays the graph out in TD space: x within a layer
// left-to-right with HGap between boxes, layers centered on the widest
// layer's midline, y as the cumulative sum of layer heights plus VGap,
// followed by a single barycenter refinement pass on x.
func assignCoordinates(l *layered) {
	spans := make([]int, len(l.layers))
	for li, layer := range l.layers {
		x := 0
		for i, id := range layer {
			dim := l.dim[id]
			if i > 0 {
				x += HGap
			}
			l.pos[id] = [2]int{x, 0}
			x += dim[0]
		}
		spans[li] = x
	}

	maxSpan := 0
	for _, s := range spans {
		if s > maxSpan {
			maxSpan = s
		}
	}
	for li, layer := range l.layers {
		offset := (maxSpan - spans[li]) / 2
		for _, id := range layer {
			p := l.pos[id]
			p[0] += offset
			l.pos[id] = p
		}
	}

	y := 0
	for li, layer := range l.layers {
		maxH := 1
		for _, id := range layer {
			if h := l.dim[id][1]; h > maxH {
				maxH = h
			}
		}
		for _, id := range layer {
			p := l.pos[id]
			p[1] = y
			l.pos[id] = p
		}
		y += maxH + VGap
		_ = li
	}

	refineX(l)
}

func centerOf(l *layered, id string) int {
	return l.pos[id][0] + l.dim[id][0]/2
}

// refineX nudges each node toward the mean center of its neighbors in
// adjacent layers, skipping any shift larger than HGap and clamping to
// keep ordering and a minimum gap from same-layer siblings.
func refineX(l *layered) {
	up, down := buildAdjacency(l)
	for li, layer := range l.layers {
		if len(layer) == 0 {
			continue
		}
		for i, id := range layer {
			var sum, n int
			for _, nb := range up[id] {
				sum += centerOf(l, nb)
				n++
			}
			for _, nb := range down[id] {
				sum += centerOf(l, nb)
				n++
			}
			if n == 0 {
				continue
			}
			desired := sum / n
			shift := desired - centerOf(l, id)
			if shift > HGap || shift < -HGap {
				continue
			}
			newX := l.pos[id][0] + shift

			minX := 0
			if i > 0 {
				prev := layer[i-1]
				minX = l.pos[prev][0] + l.dim[prev][0] + HGap
			}
			maxX := 1 << 30
			if i < len(layer)-1 {
				next := layer[i+1]
				maxX = l.pos[next][0] - HGap - l.dim[id][0]
			}
			if newX < minX {
				newX = minX
			}
			if newX > maxX {
				newX = maxX
			}
			p := l.pos[id]
			p[0] = newX
			l.pos[id] = p
		}
		_ = li
	}
}
