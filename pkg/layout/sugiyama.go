package layout

import (
	"sort"
	"strconv"
	"strings"

	"github.com/flowtext/mmdascii/pkg/ast"
	"github.com/flowtext/mmdascii/pkg/graphir"
)

// SgInset is the cell inset applied on every side when a compound node is
// expanded into a subgraph border plus its members: one cell for the
// border line, one cell of padding before the content.
const SgInset = 2

// scopedEdge is one edge rewritten to the node/compound ids visible at its
// lowest-common-ancestor scope.
type scopedEdge struct {
	from, to string
	typ      ast.EdgeType
	label    string
}

// Layout runs the full Sugiyama pipeline (collapse, decycle, layer,
// dummy-insert, cross-minimize, coordinate-assign, expand) over g and
// returns the positioned Result consumed by the route package.
func Layout(g *graphir.Graph, padding int) *Result {
	measure := makeMeasurer(padding)

	scopes := append([]string{""}, g.SubgraphIDs()...)
	edgesByScope := groupEdgesByScope(g, scopes)

	order := scopesDeepestFirst(g, scopes)

	serial := 0
	compoundDim := map[string][2]int{}
	scopeLayered := map[string]*layered{}

	for _, scope := range order {
		temp := graphir.New(ast.DirectionTD)
		for _, id := range directMembers(g, scope) {
			n, _ := g.Node(id)
			_ = temp.AddNode(graphir.NodeData{ID: n.ID, Label: n.Label, Shape: n.Shape, Attrs: n.Attrs})
		}
		for _, child := range directChildScopes(g, scope) {
			sg, _ := g.Subgraph(child)
			_ = temp.AddNode(graphir.NodeData{ID: graphir.CompoundPrefix + child, Label: sg.Label})
		}
		for _, se := range edgesByScope[scope] {
			_ = temp.AddEdge(graphir.EdgeData{From: se.from, To: se.to, Type: se.typ, Label: se.label})
		}

		removeCycles(temp)
		layerOf := assignLayers(temp)
		dimFn := func(n *graphir.NodeData) (int, int) {
			if strings.HasPrefix(n.ID, graphir.CompoundPrefix) {
				child := strings.TrimPrefix(n.ID, graphir.CompoundPrefix)
				if d, ok := compoundDim[child]; ok {
					return d[0], d[1]
				}
			}
			return measure(n)
		}
		l := buildLayered(temp, layerOf, effectiveDirection(g, scope), dimFn, &serial)
		minimiseCrossings(l)
		assignCoordinates(l)
		reorientScope(l)
		scopeLayered[scope] = l

		if scope != "" {
			maxX, maxY := 0, 0
			for id, p := range l.pos {
				d := l.dim[id]
				if p[0]+d[0] > maxX {
					maxX = p[0] + d[0]
				}
				if p[1]+d[1] > maxY {
					maxY = p[1] + d[1]
				}
			}
			compoundDim[scope] = [2]int{maxX + 2*SgInset, maxY + 2*SgInset}
		}
	}

	res := &Result{
		Direction:            g.Direction,
		SubgraphBounds:       map[string]Rect{},
		SubgraphDescriptions: map[string]string{},
		SubgraphMembers:      map[string][]string{},
	}
	dummyPos := map[string]Point{}

	var place func(scope string, originX, originY int)
	place = func(scope string, originX, originY int) {
		l := scopeLayered[scope]
		for _, id := range l.allIDs() {
			p := l.pos[id]
			ax, ay := p[0]+originX, p[1]+originY
			l.pos[id] = [2]int{ax, ay}

			switch {
			case strings.HasPrefix(id, graphir.CompoundPrefix):
				child := strings.TrimPrefix(id, graphir.CompoundPrefix)
				d := l.dim[id]
				res.SubgraphBounds[child] = Rect{X: ax, Y: ay, Width: d[0], Height: d[1]}
				if sg, ok := g.Subgraph(child); ok {
					res.SubgraphDescriptions[child] = sg.Label
				}
				place(child, ax+SgInset, ay+SgInset)
			case strings.HasPrefix(id, graphir.DummyPrefix):
				dummyPos[id] = Point{X: ax, Y: ay}
			default:
				meta := l.meta[id]
				res.Nodes = append(res.Nodes, LayoutNode{
					ID: id, Label: meta.Label, Shape: meta.Shape,
					Layer: l.layerOf[id], Order: l.orderOf[id],
					X: ax, Y: ay, Width: l.dim[id][0], Height: l.dim[id][1],
				})
				if scope != "" {
					res.SubgraphMembers[scope] = append(res.SubgraphMembers[scope], id)
				}
			}
		}
	}
	place("", 0, 0)

	for _, scope := range order {
		res.Chains = append(res.Chains, scopeLayered[scope].chains...)
	}

	dedupeChains(res)
	res.DummyPositions = dummyPos
	propagateTransitiveMembers(g, res)
	return res
}

// propagateTransitiveMembers adds every node to each of its ancestor
// subgraphs' member lists, not just its innermost one, so a renderer that
// only inspects an outer subgraph's members still sees nested content.
func propagateTransitiveMembers(g *graphir.Graph, res *Result) {
	for _, sgID := range g.SubgraphIDs() {
		direct := append([]string(nil), res.SubgraphMembers[sgID]...)
		for _, child := range allDescendantScopes(g, sgID) {
			direct = append(direct, res.SubgraphMembers[child]...)
		}
		res.SubgraphMembers[sgID] = direct
	}
}

func allDescendantScopes(g *graphir.Graph, scope string) []string {
	sg, ok := g.Subgraph(scope)
	if !ok {
		return nil
	}
	var out []string
	for _, child := range sg.Subgraphs {
		out = append(out, child)
		out = append(out, allDescendantScopes(g, child)...)
	}
	return out
}

func directMembers(g *graphir.Graph, scope string) []string {
	var out []string
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		if n.Subgraph == scope {
			out = append(out, id)
		}
	}
	return out
}

func directChildScopes(g *graphir.Graph, scope string) []string {
	if scope == "" {
		var out []string
		for _, id := range g.SubgraphIDs() {
			sg, _ := g.Subgraph(id)
			if sg.Parent == "" {
				out = append(out, id)
			}
		}
		return out
	}
	sg, ok := g.Subgraph(scope)
	if !ok {
		return nil
	}
	return sg.Subgraphs
}

// effectiveDirection resolves the direction a scope lays out in: the
// nearest ancestor subgraph (innermost first, scope itself included) that
// declared its own direction, or TD if none did (SPEC_FULL.md Open
// Question Resolution #4: innermost override wins strictly within its own
// bounding box). The top-level scope ("") never gets a local override
// here — its orientation is the single global pre/post-transform the
// renderer already applies from g.Direction (pkg/render/transform.go);
// reorienting it a second time here would double-apply that transform.
func effectiveDirection(g *graphir.Graph, scope string) ast.Direction {
	for _, id := range chainOf(g, scope) {
		if id == "" {
			break
		}
		if sg, ok := g.Subgraph(id); ok && sg.HasDir {
			return sg.Direction
		}
	}
	return ast.DirectionTD
}

// reorientScope adjusts a scope's freshly coordinate-assigned positions
// and dimensions to its effective direction. assignCoordinates always lays
// out in TD space (x within a layer, y across layers); LR/RL transpose
// that into columns-as-layers, and RL/BT additionally mirror across the
// scope's own bounding box, matching how the top-level renderer turns a
// TD layout into the other three directions (pkg/render/transform.go).
func reorientScope(l *layered) {
	switch l.direction {
	case ast.DirectionLR, ast.DirectionRL:
		for id, p := range l.pos {
			l.pos[id] = [2]int{p[1], p[0]}
		}
		for id, d := range l.dim {
			l.dim[id] = [2]int{d[1], d[0]}
		}
	}
	switch l.direction {
	case ast.DirectionRL:
		mirrorAxis(l, 0)
	case ast.DirectionBT:
		mirrorAxis(l, 1)
	}
}

// mirrorAxis reflects every id's position across the scope's own bounding
// box on the given axis (0 = x, 1 = y).
func mirrorAxis(l *layered, axis int) {
	max := 0
	for id, p := range l.pos {
		if v := p[axis] + l.dim[id][axis]; v > max {
			max = v
		}
	}
	for id, p := range l.pos {
		p[axis] = max - p[axis] - l.dim[id][axis]
		l.pos[id] = p
	}
}

func chainOf(g *graphir.Graph, containerID string) []string {
	var out []string
	cur := containerID
	for {
		out = append(out, cur)
		if cur == "" {
			return out
		}
		sg, ok := g.Subgraph(cur)
		if !ok {
			return out
		}
		cur = sg.Parent
	}
}

func lcaOf(g *graphir.Graph, a, b string) string {
	chainB := chainOf(g, b)
	inB := make(map[string]bool, len(chainB))
	for _, c := range chainB {
		inB[c] = true
	}
	for _, c := range chainOf(g, a) {
		if inB[c] {
			return c
		}
	}
	return ""
}

// effectiveIDAt maps nodeID to the id visible at scope: itself if it is a
// direct member, or the compound id of whichever direct child of scope
// contains it.
func effectiveIDAt(g *graphir.Graph, scope, nodeID string) string {
	n, _ := g.Node(nodeID)
	cur := n.Subgraph
	if cur == scope {
		return nodeID
	}
	for cur != "" {
		sg, ok := g.Subgraph(cur)
		if !ok {
			break
		}
		if sg.Parent == scope {
			return graphir.CompoundPrefix + cur
		}
		cur = sg.Parent
	}
	return nodeID
}

func groupEdgesByScope(g *graphir.Graph, scopes []string) map[string][]scopedEdge {
	out := map[string][]scopedEdge{}
	for i := 0; i < g.EdgeCount(); i++ {
		e := g.Edge(i)
		fromN, _ := g.Node(e.From)
		toN, _ := g.Node(e.To)
		scope := lcaOf(g, fromN.Subgraph, toN.Subgraph)
		ef := effectiveIDAt(g, scope, e.From)
		et := effectiveIDAt(g, scope, e.To)
		if ef == et && e.From != e.To {
			continue
		}
		out[scope] = append(out[scope], scopedEdge{from: ef, to: et, typ: e.Type, label: e.Label})
	}
	return out
}

func scopesDeepestFirst(g *graphir.Graph, scopes []string) []string {
	depth := func(id string) int {
		d := 0
		cur := id
		for cur != "" {
			sg, ok := g.Subgraph(cur)
			if !ok {
				break
			}
			cur = sg.Parent
			d++
		}
		return d
	}
	out := append([]string(nil), scopes...)
	sort.SliceStable(out, func(i, j int) bool { return depth(out[i]) > depth(out[j]) })
	return out
}

// dedupeChains keeps only the first occurrence of a chain sharing the same
// (OrigFrom, OrigTo) pair with an identical dummy-chain length, rendering
// duplicate parallel edges once with the first occurrence's edge type
// (SPEC_FULL.md Open Question #2).
func dedupeChains(res *Result) {
	seen := map[string]bool{}
	out := res.Chains[:0]
	for _, c := range res.Chains {
		key := c.OrigFrom + "\x00" + c.OrigTo + "\x00" + strconv.Itoa(len(c.Path))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	res.Chains = out
}
