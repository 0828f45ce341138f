package layout

import "sort"

// adjacency maps an id to the ids it connects to in the adjacent layer,
// derived once from the unit-layer edges of every chain.
type adjacency map[string][]string

func buildAdjacency(l *layered) (up, down adjacency) {
	up, down = adjacency{}, adjacency{}
	for _, c := range l.chains {
		for i := 0; i+1 < len(c.Path); i++ {
			a, b := c.Path[i], c.Path[i+1]
			down[a] = append(down[a], b)
			up[b] = append(up[b], a)
		}
	}
	return up, down
}

// minimiseCrossings runs up to MaxPasses alternating barycenter sweeps,
// stopping as soon as a pass fails to reduce the crossing count, and
// restores the best order found (SPEC_FULL.md Open Question #3).
func minimiseCrossings(l *layered) {
	up, down := buildAdjacency(l)
	best := countCrossings(l, down)
	bestOrder := snapshotOrder(l)

	for pass := 0; pass < MaxPasses; pass++ {
		if pass%2 == 0 {
			for li := 1; li <= l.maxLayer(); li++ {
				sortLayerByBarycenter(l, li, up)
			}
		} else {
			for li := l.maxLayer() - 1; li >= 0; li-- {
				sortLayerByBarycenter(l, li, down)
			}
		}
		cur := countCrossings(l, down)
		if cur < best {
			best = cur
			bestOrder = snapshotOrder(l)
			continue
		}
		break
	}
	restoreOrder(l, bestOrder)
}

func sortLayerByBarycenter(l *layered, layerIdx int, neighbors adjacency) {
	ids := l.layers[layerIdx]
	type scored struct {
		id         string
		bary       float64
		prevOrder  int
	}
	scoredIDs := make([]scored, len(ids))
	for i, id := range ids {
		nbrs := neighbors[id]
		b := float64(l.orderOf[id])
		if len(nbrs) > 0 {
			sum := 0
			for _, n := range nbrs {
				sum += l.orderOf[n]
			}
			b = float64(sum) / float64(len(nbrs))
		}
		scoredIDs[i] = scored{id: id, bary: b, prevOrder: l.orderOf[id]}
	}
	sort.SliceStable(scoredIDs, func(i, j int) bool {
		if scoredIDs[i].bary != scoredIDs[j].bary {
			return scoredIDs[i].bary < scoredIDs[j].bary
		}
		if scoredIDs[i].prevOrder != scoredIDs[j].prevOrder {
			return scoredIDs[i].prevOrder < scoredIDs[j].prevOrder
		}
		return scoredIDs[i].id < scoredIDs[j].id
	})
	newIDs := make([]string, len(ids))
	for i, s := range scoredIDs {
		newIDs[i] = s.id
		l.orderOf[s.id] = i
	}
	l.layers[layerIdx] = newIDs
}

// countCrossings counts crossing pairs among the unit-layer edges between
// every pair of adjacent layers, using current layer order.
func countCrossings(l *layered, down adjacency) int {
	total := 0
	for li := 0; li < l.maxLayer(); li++ {
		var ups, downs []int
		for _, a := range l.layers[li] {
			for _, b := range down[a] {
				ups = append(ups, l.orderOf[a])
				downs = append(downs, l.orderOf[b])
			}
		}
		for i := 0; i < len(ups); i++ {
			for j := i + 1; j < len(ups); j++ {
				if (ups[i] < ups[j] && downs[i] > downs[j]) || (ups[i] > ups[j] && downs[i] < downs[j]) {
					total++
				}
			}
		}
	}
	return total
}

func snapshotOrder(l *layered) [][]string {
	out := make([][]string, len(l.layers))
	for i, layer := range l.layers {
		out[i] = append([]string(nil), layer...)
	}
	return out
}

func restoreOrder(l *layered, snap [][]string) {
	l.layers = snap
	for li, layer := range l.layers {
		for i, id := range layer {
			l.orderOf[id] = i
			l.layerOf[id] = li
		}
	}
}
