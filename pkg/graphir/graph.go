// Package graphir implements the typed directed multigraph that sits
// between the parsed AST and the Sugiyama layout engine. It is a thin
// wrapper with deterministic iteration order: every map keyed by node id
// is backed by an insertion-ordered slice, so two runs over the same
// input produce identical traversal order.
package graphir

import (
	"errors"
	"fmt"

	"github.com/flowtext/mmdascii/pkg/ast"
)

// Reserved id prefixes for synthetic nodes introduced by the layout
// engine. No user-declared node id may collide with either prefix.
const (
	DummyPrefix    = "__dummy_"
	CompoundPrefix = "__sg_"
)

var (
	// ErrConflictingNode is returned by AddNode when id already exists
	// with different metadata.
	ErrConflictingNode = errors.New("graphir: conflicting node metadata")
	// ErrUnknownNode is returned by AddEdge when an endpoint has not been
	// added to the graph.
	ErrUnknownNode = errors.New("graphir: unknown node")
)

// NodeData is the metadata carried by a GraphIR node.
type NodeData struct {
	ID       string
	Label    string
	Shape    ast.NodeShape
	Attrs    []ast.Attr
	Subgraph string // id of the innermost subgraph this node belongs to, "" for top level
}

// EdgeData is the metadata carried by a GraphIR edge. Edges are keyed by
// position in Graph.edges, not by (from, to), since Mermaid allows
// parallel edges between the same pair of nodes.
type EdgeData struct {
	From     string
	To       string
	Type     ast.EdgeType
	Label    string
	Reversed bool
}

// SubgraphData describes one node in the subgraph containment tree.
type SubgraphData struct {
	ID        string
	Label     string
	Parent    string // "" for a root-level subgraph
	Direction ast.Direction
	HasDir    bool
	Members   []string // node ids directly inside this subgraph, insertion order
	Subgraphs []string // child subgraph ids, insertion order
}

// Graph is a directed multigraph over Mermaid flowchart nodes and edges,
// with an attached subgraph containment tree.
type Graph struct {
	Direction ast.Direction

	// ImplicitNodes lists the ids of nodes auto-declared because an edge
	// named them without a prior declaration (the ReferenceError policy
	// in FromAST's doc comment). Callers that want to surface this as a
	// diagnostic, rather than silently accept it, read this after FromAST.
	ImplicitNodes []string

	nodeOrder []string
	nodes     map[string]*NodeData

	edges []EdgeData

	outgoing map[string][]int // node id -> indices into edges, insertion order
	incoming map[string][]int

	sgOrder []string
	sgs     map[string]*SubgraphData
}

// New creates an empty Graph with the given top-level direction.
func New(direction ast.Direction) *Graph {
	return &Graph{
		Direction: direction,
		nodes:     map[string]*NodeData{},
		outgoing:  map[string][]int{},
		incoming:  map[string][]int{},
		sgs:       map[string]*SubgraphData{},
	}
}

// AddNode registers a node. Re-adding the same id with identical label
// and shape is a no-op; re-adding with different metadata is an error,
// matching the parser's first-definition-wins dedup policy one layer up.
func (g *Graph) AddNode(data NodeData) error {
	if existing, ok := g.nodes[data.ID]; ok {
		if existing.Label != data.Label || existing.Shape != data.Shape {
			return fmt.Errorf("%w: %s", ErrConflictingNode, data.ID)
		}
		return nil
	}
	nd := data
	g.nodes[data.ID] = &nd
	g.nodeOrder = append(g.nodeOrder, data.ID)
	if data.Subgraph != "" {
		if sg, ok := g.sgs[data.Subgraph]; ok {
			sg.Members = append(sg.Members, data.ID)
		}
	}
	return nil
}

// AddEdge appends an edge between two already-registered nodes.
func (g *Graph) AddEdge(data EdgeData) error {
	if _, ok := g.nodes[data.From]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, data.From)
	}
	if _, ok := g.nodes[data.To]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, data.To)
	}
	idx := len(g.edges)
	g.edges = append(g.edges, data)
	g.outgoing[data.From] = append(g.outgoing[data.From], idx)
	g.incoming[data.To] = append(g.incoming[data.To], idx)
	return nil
}

// AddSubgraph registers a subgraph node in the containment tree.
func (g *Graph) AddSubgraph(id, label, parent string, dir ast.Direction, hasDir bool) {
	sg := &SubgraphData{ID: id, Label: label, Parent: parent, Direction: dir, HasDir: hasDir}
	g.sgs[id] = sg
	g.sgOrder = append(g.sgOrder, id)
	if parent != "" {
		if p, ok := g.sgs[parent]; ok {
			p.Subgraphs = append(p.Subgraphs, id)
		}
	}
}

// Node returns the metadata for id, if present.
func (g *Graph) Node(id string) (*NodeData, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeIDs returns all node ids in insertion order.
func (g *Graph) NodeIDs() []string {
	out := make([]string, len(g.nodeOrder))
	copy(out, g.nodeOrder)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodeOrder) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edge returns a copy of the edge at index i.
func (g *Graph) Edge(i int) EdgeData { return g.edges[i] }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []EdgeData {
	out := make([]EdgeData, len(g.edges))
	copy(out, g.edges)
	return out
}

// SetEdge overwrites the edge at index i.
func (g *Graph) SetEdge(i int, data EdgeData) {
	old := g.edges[i]
	g.edges[i] = data
	if old.From != data.From || old.To != data.To {
		g.removeIndex(g.outgoing, old.From, i)
		g.removeIndex(g.incoming, old.To, i)
		g.outgoing[data.From] = append(g.outgoing[data.From], i)
		g.incoming[data.To] = append(g.incoming[data.To], i)
	}
}

func (g *Graph) removeIndex(m map[string][]int, key string, idx int) {
	lst := m[key]
	for i, v := range lst {
		if v == idx {
			m[key] = append(lst[:i], lst[i+1:]...)
			return
		}
	}
}

// ReverseEdgeAt flips the direction of the edge at index i in place and
// marks it reversed, as used by cycle removal.
func (g *Graph) ReverseEdgeAt(i int) {
	e := g.edges[i]
	e.From, e.To = e.To, e.From
	e.Reversed = !e.Reversed
	g.SetEdge(i, e)
}

// Successors returns the ids reachable by an outgoing edge from v, in
// insertion order, including duplicates for parallel edges.
func (g *Graph) Successors(v string) []string {
	idxs := g.outgoing[v]
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = g.edges[idx].To
	}
	return out
}

// Predecessors returns the ids with an outgoing edge into v, in insertion
// order, including duplicates for parallel edges.
func (g *Graph) Predecessors(v string) []string {
	idxs := g.incoming[v]
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = g.edges[idx].From
	}
	return out
}

// OutDegree and InDegree count edges attached to v.
func (g *Graph) OutDegree(v string) int { return len(g.outgoing[v]) }
func (g *Graph) InDegree(v string) int  { return len(g.incoming[v]) }

// OutgoingIndices/IncomingIndices expose raw edge indices for phases that
// need to mutate specific edges (cycle removal, dummy insertion).
func (g *Graph) OutgoingIndices(v string) []int { return append([]int(nil), g.outgoing[v]...) }
func (g *Graph) IncomingIndices(v string) []int { return append([]int(nil), g.incoming[v]...) }

// SubgraphOf returns the innermost subgraph id containing node id, or "".
func (g *Graph) SubgraphOf(id string) string {
	n, ok := g.nodes[id]
	if !ok {
		return ""
	}
	return n.Subgraph
}

// Subgraph returns the containment-tree entry for id, if present.
func (g *Graph) Subgraph(id string) (*SubgraphData, bool) {
	sg, ok := g.sgs[id]
	return sg, ok
}

// SubgraphIDs returns all subgraph ids in insertion order.
func (g *Graph) SubgraphIDs() []string {
	out := make([]string, len(g.sgOrder))
	copy(out, g.sgOrder)
	return out
}

// Members returns the direct member node ids of subgraph sgID, insertion
// order.
func (g *Graph) Members(sgID string) []string {
	sg, ok := g.sgs[sgID]
	if !ok {
		return nil
	}
	out := make([]string, len(sg.Members))
	copy(out, sg.Members)
	return out
}

// RemoveNode deletes a node from the registry. Callers must first rewrite
// (via SetEdge) any edge touching id so no dangling reference remains;
// collapseSubgraphs follows this order when folding members into a
// compound node.
func (g *Graph) RemoveNode(id string) {
	delete(g.nodes, id)
	for i, v := range g.nodeOrder {
		if v == id {
			g.nodeOrder = append(g.nodeOrder[:i], g.nodeOrder[i+1:]...)
			break
		}
	}
	delete(g.outgoing, id)
	delete(g.incoming, id)
}
