package layout

import "github.com/flowtext/mmdascii/pkg/graphir"

// assignLayers computes layer(v) = 0 for sources, otherwise
// layer(v) = 1 + max(layer(u)) over predecessors u, by relaxation to a
// fixed point. The input graph must already be acyclic (removeCycles).
func assignLayers(g *graphir.Graph) map[string]int {
	ids := g.NodeIDs()
	layer := make(map[string]int, len(ids))
	for _, id := range ids {
		layer[id] = 0
	}

	for pass := 0; pass < len(ids)+1; pass++ {
		changed := false
		for i := 0; i < g.EdgeCount(); i++ {
			e := g.Edge(i)
			if e.From == e.To {
				continue
			}
			if want := layer[e.From] + 1; layer[e.To] < want {
				layer[e.To] = want
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return layer
}
