package layout

import (
	"sort"

	"github.com/flowtext/mmdascii/pkg/graphir"
)

// removeCycles implements Greedy-FAS: repeatedly peel sinks to the right
// end of a linear order and sources to the left end; when neither exists,
// the node maximizing (out-degree - in-degree) among the remaining nodes
// is appended to the left. Edges that point backward in the resulting
// order are reversed in place, turning the graph into a DAG while
// preserving each edge's original direction via the Reversed flag.
func removeCycles(g *graphir.Graph) {
	order := greedyFASOrder(g)
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for i := 0; i < g.EdgeCount(); i++ {
		e := g.Edge(i)
		if pos[e.From] > pos[e.To] {
			g.ReverseEdgeAt(i)
		}
	}
}

func greedyFASOrder(g *graphir.Graph) []string {
	ids := g.NodeIDs()
	remaining := make(map[string]bool, len(ids))
	for _, id := range ids {
		remaining[id] = true
	}

	outDeg := func(id string) int {
		n := 0
		for _, v := range g.Successors(id) {
			if remaining[v] {
				n++
			}
		}
		return n
	}
	inDeg := func(id string) int {
		n := 0
		for _, v := range g.Predecessors(id) {
			if remaining[v] {
				n++
			}
		}
		return n
	}

	var left, right []string

	for len(remaining) > 0 {
		progress := true
		for progress {
			progress = false
			for _, id := range ids {
				if !remaining[id] {
					continue
				}
				if outDeg(id) == 0 {
					right = append([]string{id}, right...)
					delete(remaining, id)
					progress = true
				}
			}
			for _, id := range ids {
				if !remaining[id] {
					continue
				}
				if inDeg(id) == 0 {
					left = append(left, id)
					delete(remaining, id)
					progress = true
				}
			}
		}
		if len(remaining) == 0 {
			break
		}
		var candidates []string
		for _, id := range ids {
			if remaining[id] {
				candidates = append(candidates, id)
			}
		}
		sort.Slice(candidates, func(i, j int) bool {
			di := outDeg(candidates[i]) - inDeg(candidates[i])
			dj := outDeg(candidates[j]) - inDeg(candidates[j])
			if di != dj {
				return di > dj
			}
			return candidates[i] < candidates[j]
		})
		best := candidates[0]
		left = append(left, best)
		delete(remaining, best)
	}

	return append(left, right...)
}
