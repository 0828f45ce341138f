package layout

import (
	"fmt"

	"github.com/flowtext/mmdascii/pkg/ast"
	"github.com/flowtext/mmdascii/pkg/graphir"
)

// layered is the per-layer working structure used by phases 4-6. Real
// nodes and dummy nodes are interchangeable members of a layer once
// dummies are inserted; dummies carry no metadata beyond their position.
type layered struct {
	direction ast.Direction

	layers  [][]string // layers[l] = node ids in that layer, left-to-right order
	layerOf map[string]int
	orderOf map[string]int // position within its layer

	meta map[string]*graphir.NodeData // nil for dummy ids
	dim  map[string][2]int            // id -> [width, height]
	pos  map[string][2]int            // id -> [x, y], filled by coords.go

	chains []EdgeChain
}

func newLayered(direction ast.Direction) *layered {
	return &layered{
		direction: direction,
		layerOf:   map[string]int{},
		orderOf:   map[string]int{},
		meta:      map[string]*graphir.NodeData{},
		dim:       map[string][2]int{},
		pos:       map[string][2]int{},
	}
}

func (l *layered) ensureLayer(idx int) {
	for len(l.layers) <= idx {
		l.layers = append(l.layers, nil)
	}
}

func (l *layered) place(id string, layerIdx int) {
	l.ensureLayer(layerIdx)
	l.orderOf[id] = len(l.layers[layerIdx])
	l.layers[layerIdx] = append(l.layers[layerIdx], id)
	l.layerOf[id] = layerIdx
}

// buildLayered places every real node from g into its assigned layer (in
// g's deterministic node order) and inserts dummy nodes for every edge
// that spans more than one layer, recording one EdgeChain per original
// edge with its full unit-layer path.
func buildLayered(g *graphir.Graph, layerOf map[string]int, direction ast.Direction, measure func(*graphir.NodeData) (int, int), serial *int) *layered {
	l := newLayered(direction)

	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		l.meta[id] = n
		w, h := measure(n)
		l.dim[id] = [2]int{w, h}
		l.place(id, layerOf[id])
	}

	for i := 0; i < g.EdgeCount(); i++ {
		e := g.Edge(i)
		lu, lv := layerOf[e.From], layerOf[e.To]
		path := []string{e.From}
		for layerIdx := lu + 1; layerIdx < lv; layerIdx++ {
			*serial++
			did := fmt.Sprintf("%s%d", graphir.DummyPrefix, *serial)
			l.dim[did] = [2]int{1, 1}
			l.place(did, layerIdx)
			path = append(path, did)
		}
		path = append(path, e.To)

		origFrom, origTo := e.From, e.To
		if e.Reversed {
			origFrom, origTo = e.To, e.From
		}
		l.chains = append(l.chains, EdgeChain{
			OrigFrom: origFrom,
			OrigTo:   origTo,
			Type:     e.Type,
			Label:    e.Label,
			Reversed: e.Reversed,
			Path:     path,
		})
	}
	return l
}

func (l *layered) maxLayer() int {
	return len(l.layers) - 1
}

// allIDs returns every id (real, dummy, or compound) in this scope,
// ordered layer by layer, left to right within each layer.
func (l *layered) allIDs() []string {
	var out []string
	for _, layer := range l.layers {
		out = append(out, layer...)
	}
	return out
}
