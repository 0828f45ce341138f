package graphir

import "github.com/flowtext/mmdascii/pkg/ast"

// FromAST flattens a parsed document into a GraphIR: every node anywhere
// in the subgraph tree is registered once (first declaration wins), the
// subgraph containment tree is recorded alongside, and every edge is
// added after auto-declaring any endpoint that was referenced but never
// declared (the ReferenceError policy: a bare Rectangle node labeled with
// its own id).
func FromAST(doc ast.Graph) (*Graph, error) {
	g := New(doc.Direction)

	walkNodes(g, doc.Nodes, "")
	walkSubgraphs(g, doc.Subgraphs, "")

	if err := addEdges(g, doc.Edges); err != nil {
		return nil, err
	}
	if err := addSubgraphEdges(g, doc.Subgraphs); err != nil {
		return nil, err
	}
	return g, nil
}

func walkNodes(g *Graph, nodes []ast.Node, sgID string) {
	for _, n := range nodes {
		_ = g.AddNode(NodeData{ID: n.ID, Label: n.Label, Shape: n.Shape, Attrs: n.Attrs, Subgraph: sgID})
	}
}

func walkSubgraphs(g *Graph, subs []ast.Subgraph, parent string) {
	for _, sg := range subs {
		g.AddSubgraph(sg.ID, sg.Label, parent, sg.Direction, sg.Direction != "")
		walkNodes(g, sg.Nodes, sg.ID)
		walkSubgraphs(g, sg.Subgraphs, sg.ID)
	}
}

func addEdges(g *Graph, edges []ast.Edge) error {
	for _, e := range edges {
		ensureNode(g, e.FromID)
		ensureNode(g, e.ToID)
		if err := g.AddEdge(EdgeData{From: e.FromID, To: e.ToID, Type: e.Type, Label: e.Label}); err != nil {
			return err
		}
	}
	return nil
}

func addSubgraphEdges(g *Graph, subs []ast.Subgraph) error {
	for _, sg := range subs {
		if err := addEdges(g, sg.Edges); err != nil {
			return err
		}
		if err := addSubgraphEdges(g, sg.Subgraphs); err != nil {
			return err
		}
	}
	return nil
}

// ensureNode auto-declares id as a bare top-level Rectangle node if it was
// referenced by an edge but never declared.
func ensureNode(g *Graph, id string) {
	if _, ok := g.Node(id); ok {
		return
	}
	_ = g.AddNode(NodeData{ID: id, Label: id, Shape: ast.ShapeRectangle})
	g.ImplicitNodes = append(g.ImplicitNodes, id)
}
