package layout

import (
	"testing"

	"github.com/flowtext/mmdascii/pkg/ast"
	"github.com/flowtext/mmdascii/pkg/graphir"
)

func nodeByID(res *Result, id string) (LayoutNode, bool) {
	for _, n := range res.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return LayoutNode{}, false
}

func TestLayout_SimpleChainOrdersByLayer(t *testing.T) {
	doc := ast.NewGraph(ast.DirectionTD)
	doc.Nodes = []ast.Node{
		ast.NewNode("A", "A", ast.ShapeRectangle),
		ast.NewNode("B", "B", ast.ShapeRectangle),
		ast.NewNode("C", "C", ast.ShapeRectangle),
	}
	doc.Edges = []ast.Edge{
		ast.NewEdge("A", "B", ast.EdgeArrow, ""),
		ast.NewEdge("B", "C", ast.EdgeArrow, ""),
	}
	g, err := graphir.FromAST(doc)
	if err != nil {
		t.Fatalf("FromAST: %v", err)
	}

	res := Layout(g, NodePadding)
	if len(res.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(res.Nodes))
	}
	a, _ := nodeByID(res, "A")
	b, _ := nodeByID(res, "B")
	c, _ := nodeByID(res, "C")
	if !(a.Y < b.Y && b.Y < c.Y) {
		t.Errorf("expected strictly increasing Y by layer, got A.Y=%d B.Y=%d C.Y=%d", a.Y, b.Y, c.Y)
	}
	if len(res.Chains) != 2 {
		t.Errorf("got %d chains, want 2", len(res.Chains))
	}
}

func TestLayout_CyclicGraphTerminates(t *testing.T) {
	doc := ast.NewGraph(ast.DirectionTD)
	doc.Nodes = []ast.Node{
		ast.NewNode("A", "A", ast.ShapeRectangle),
		ast.NewNode("B", "B", ast.ShapeRectangle),
		ast.NewNode("C", "C", ast.ShapeRectangle),
	}
	doc.Edges = []ast.Edge{
		ast.NewEdge("A", "B", ast.EdgeArrow, ""),
		ast.NewEdge("B", "C", ast.EdgeArrow, ""),
		ast.NewEdge("C", "A", ast.EdgeArrow, ""),
	}
	g, err := graphir.FromAST(doc)
	if err != nil {
		t.Fatalf("FromAST: %v", err)
	}

	res := Layout(g, NodePadding)
	if len(res.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(res.Nodes))
	}
	if len(res.Chains) != 3 {
		t.Errorf("got %d chains, want 3", len(res.Chains))
	}
}

func TestLayout_SkipLayerInsertsDummy(t *testing.T) {
	doc := ast.NewGraph(ast.DirectionTD)
	doc.Nodes = []ast.Node{
		ast.NewNode("A", "A", ast.ShapeRectangle),
		ast.NewNode("B", "B", ast.ShapeRectangle),
		ast.NewNode("C", "C", ast.ShapeRectangle),
	}
	doc.Edges = []ast.Edge{
		ast.NewEdge("A", "B", ast.EdgeArrow, ""),
		ast.NewEdge("B", "C", ast.EdgeArrow, ""),
		ast.NewEdge("A", "C", ast.EdgeArrow, ""),
	}
	g, err := graphir.FromAST(doc)
	if err != nil {
		t.Fatalf("FromAST: %v", err)
	}

	res := Layout(g, NodePadding)
	var skip *EdgeChain
	for i := range res.Chains {
		if res.Chains[i].OrigFrom == "A" && res.Chains[i].OrigTo == "C" {
			skip = &res.Chains[i]
		}
	}
	if skip == nil {
		t.Fatal("expected A->C chain")
	}
	if len(skip.Path) != 3 {
		t.Fatalf("A->C path = %v, want 3 hops through one dummy", skip.Path)
	}
	if _, ok := res.DummyPositions[skip.Path[1]]; !ok {
		t.Errorf("expected dummy %q to have a recorded absolute position", skip.Path[1])
	}
}

func TestLayout_NestedSubgraphExpandsAroundMembers(t *testing.T) {
	doc := ast.NewGraph(ast.DirectionTD)
	doc.Nodes = []ast.Node{ast.NewNode("Root", "Root", ast.ShapeRectangle)}
	inner := ast.NewSubgraph("inner", "Inner")
	inner.Nodes = []ast.Node{ast.BareNode("X"), ast.BareNode("Y")}
	inner.Edges = []ast.Edge{ast.NewEdge("X", "Y", ast.EdgeArrow, "")}
	outer := ast.NewSubgraph("outer", "Outer")
	outer.Subgraphs = []ast.Subgraph{inner}
	doc.Subgraphs = []ast.Subgraph{outer}
	doc.Edges = []ast.Edge{ast.NewEdge("Root", "X", ast.EdgeArrow, "")}

	g, err := graphir.FromAST(doc)
	if err != nil {
		t.Fatalf("FromAST: %v", err)
	}

	res := Layout(g, NodePadding)

	outerBounds, ok := res.SubgraphBounds["outer"]
	if !ok {
		t.Fatal("expected bounds for outer subgraph")
	}
	innerBounds, ok := res.SubgraphBounds["inner"]
	if !ok {
		t.Fatal("expected bounds for inner subgraph")
	}
	if innerBounds.X < outerBounds.X || innerBounds.Y < outerBounds.Y ||
		innerBounds.Right() > outerBounds.Right() || innerBounds.Bottom() > outerBounds.Bottom() {
		t.Errorf("inner bounds %+v not contained within outer bounds %+v", innerBounds, outerBounds)
	}

	x, ok := nodeByID(res, "X")
	if !ok {
		t.Fatal("expected node X in output")
	}
	if x.X < innerBounds.X || x.Y < innerBounds.Y || x.X+x.Width > innerBounds.Right() || x.Y+x.Height > innerBounds.Bottom() {
		t.Errorf("node X %+v not contained within inner bounds %+v", x, innerBounds)
	}

	members := res.SubgraphMembers["outer"]
	found := false
	for _, m := range members {
		if m == "X" {
			found = true
		}
	}
	if !found {
		t.Errorf("outer members = %v, want transitive inclusion of X", members)
	}
}

func TestLayout_SubgraphDirectionOverridePlacesMembersOnSameRow(t *testing.T) {
	doc := ast.NewGraph(ast.DirectionTD)
	inner := ast.NewSubgraph("inner", "Inner")
	inner.Direction = ast.DirectionLR
	inner.Nodes = []ast.Node{ast.BareNode("X"), ast.BareNode("Y")}
	inner.Edges = []ast.Edge{ast.NewEdge("X", "Y", ast.EdgeArrow, "")}
	doc.Subgraphs = []ast.Subgraph{inner}

	g, err := graphir.FromAST(doc)
	if err != nil {
		t.Fatalf("FromAST: %v", err)
	}

	res := Layout(g, NodePadding)
	x, ok := nodeByID(res, "X")
	if !ok {
		t.Fatal("expected node X in output")
	}
	y, ok := nodeByID(res, "Y")
	if !ok {
		t.Fatal("expected node Y in output")
	}
	if x.Y != y.Y {
		t.Errorf("LR-overridden subgraph should place X and Y on the same row, got X.Y=%d Y.Y=%d", x.Y, y.Y)
	}
	if x.X >= y.X {
		t.Errorf("LR-overridden subgraph should place X left of Y, got X.X=%d Y.X=%d", x.X, y.X)
	}
}

func TestLayout_SubgraphWithoutDirectionOverrideStaysTD(t *testing.T) {
	doc := ast.NewGraph(ast.DirectionTD)
	inner := ast.NewSubgraph("inner", "Inner")
	inner.Nodes = []ast.Node{ast.BareNode("X"), ast.BareNode("Y")}
	inner.Edges = []ast.Edge{ast.NewEdge("X", "Y", ast.EdgeArrow, "")}
	doc.Subgraphs = []ast.Subgraph{inner}

	g, err := graphir.FromAST(doc)
	if err != nil {
		t.Fatalf("FromAST: %v", err)
	}

	res := Layout(g, NodePadding)
	x, _ := nodeByID(res, "X")
	y, _ := nodeByID(res, "Y")
	if x.Y >= y.Y {
		t.Errorf("un-overridden subgraph should stay TD (X above Y), got X.Y=%d Y.Y=%d", x.Y, y.Y)
	}
}

func TestLayout_ParallelEdgesRenderOnce(t *testing.T) {
	doc := ast.NewGraph(ast.DirectionTD)
	doc.Nodes = []ast.Node{
		ast.NewNode("A", "A", ast.ShapeRectangle),
		ast.NewNode("B", "B", ast.ShapeRectangle),
	}
	doc.Edges = []ast.Edge{
		ast.NewEdge("A", "B", ast.EdgeArrow, ""),
		ast.NewEdge("A", "B", ast.EdgeArrow, ""),
	}
	g, err := graphir.FromAST(doc)
	if err != nil {
		t.Fatalf("FromAST: %v", err)
	}

	res := Layout(g, NodePadding)
	count := 0
	for _, c := range res.Chains {
		if c.OrigFrom == "A" && c.OrigTo == "B" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("got %d A->B chains, want 1 (duplicates collapsed)", count)
	}
}
