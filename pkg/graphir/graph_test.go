package graphir

import (
	"testing"

	"github.com/flowtext/mmdascii/pkg/ast"
)

func TestFromAST_ReferenceErrorAutoDeclares(t *testing.T) {
	doc := ast.NewGraph(ast.DirectionTD)
	doc.Nodes = []ast.Node{ast.NewNode("A", "A", ast.ShapeRectangle)}
	doc.Edges = []ast.Edge{ast.NewEdge("A", "B", ast.EdgeArrow, "")}

	g, err := FromAST(doc)
	if err != nil {
		t.Fatalf("FromAST: %v", err)
	}
	n, ok := g.Node("B")
	if !ok {
		t.Fatal("expected auto-declared node B")
	}
	if n.Label != "B" || n.Shape != ast.ShapeRectangle {
		t.Errorf("auto-declared node = %+v, want bare rectangle labeled B", n)
	}
}

func TestFromAST_SubgraphMembership(t *testing.T) {
	doc := ast.NewGraph(ast.DirectionTD)
	sg := ast.NewSubgraph("G", "G")
	sg.Nodes = []ast.Node{ast.BareNode("X"), ast.BareNode("Y")}
	sg.Edges = []ast.Edge{ast.NewEdge("X", "Y", ast.EdgeArrow, "")}
	doc.Subgraphs = []ast.Subgraph{sg}
	doc.Edges = []ast.Edge{ast.NewEdge("Y", "Z", ast.EdgeArrow, "")}

	g, err := FromAST(doc)
	if err != nil {
		t.Fatalf("FromAST: %v", err)
	}
	if g.SubgraphOf("X") != "G" || g.SubgraphOf("Y") != "G" {
		t.Errorf("X/Y subgraph membership not recorded")
	}
	if g.SubgraphOf("Z") != "" {
		t.Errorf("Z should be top-level, got subgraph %q", g.SubgraphOf("Z"))
	}
	if got := g.Members("G"); len(got) != 2 || got[0] != "X" || got[1] != "Y" {
		t.Errorf("Members(G) = %v, want [X Y]", got)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("edge count = %d, want 2", g.EdgeCount())
	}
}

func TestGraph_ReverseEdgeAt(t *testing.T) {
	g := New(ast.DirectionTD)
	_ = g.AddNode(NodeData{ID: "A"})
	_ = g.AddNode(NodeData{ID: "B"})
	_ = g.AddEdge(EdgeData{From: "A", To: "B", Type: ast.EdgeArrow})

	g.ReverseEdgeAt(0)
	e := g.Edge(0)
	if e.From != "B" || e.To != "A" || !e.Reversed {
		t.Errorf("got %+v, want reversed B->A", e)
	}
	if got := g.Successors("B"); len(got) != 1 || got[0] != "A" {
		t.Errorf("Successors(B) = %v, want [A]", got)
	}
	if got := g.Successors("A"); len(got) != 0 {
		t.Errorf("Successors(A) = %v, want []", got)
	}
}

func TestGraph_AddNode_ConflictingMetadataErrors(t *testing.T) {
	g := New(ast.DirectionTD)
	_ = g.AddNode(NodeData{ID: "A", Label: "A", Shape: ast.ShapeRectangle})
	err := g.AddNode(NodeData{ID: "A", Label: "A", Shape: ast.ShapeDiamond})
	if err == nil {
		t.Fatal("expected conflicting metadata error")
	}
}

func TestGraph_DeterministicIterationOrder(t *testing.T) {
	g := New(ast.DirectionTD)
	ids := []string{"C", "A", "B"}
	for _, id := range ids {
		_ = g.AddNode(NodeData{ID: id, Label: id})
	}
	got := g.NodeIDs()
	for i, id := range ids {
		if got[i] != id {
			t.Fatalf("NodeIDs() = %v, want insertion order %v", got, ids)
		}
	}
}
