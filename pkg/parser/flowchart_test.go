package parser

import (
	"testing"

	"github.com/flowtext/mmdascii/pkg/ast"
)

func TestParse_SimpleArrow(t *testing.T) {
	g, err := Parse("graph TD\n  A --> B\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.Direction != ast.DirectionTD {
		t.Errorf("direction = %q, want TD", g.Direction)
	}
	if len(g.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(g.Nodes))
	}
	if len(g.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(g.Edges))
	}
	e := g.Edges[0]
	if e.FromID != "A" || e.ToID != "B" || e.Type != ast.EdgeArrow {
		t.Errorf("got edge %+v, want A->B arrow", e)
	}
}

func TestParse_NoHeaderDefaultsTD(t *testing.T) {
	g, err := Parse("A --> B")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.Direction != ast.DirectionTD {
		t.Errorf("direction = %q, want TD", g.Direction)
	}
}

func TestParse_EdgeChain(t *testing.T) {
	g, err := Parse("graph TD\n  A --> B --> C\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(g.Nodes) != 3 || len(g.Edges) != 2 {
		t.Fatalf("got %d nodes, %d edges; want 3, 2", len(g.Nodes), len(g.Edges))
	}
	if g.Edges[0].ToID != "B" || g.Edges[1].FromID != "B" {
		t.Errorf("chain not linked through B: %+v", g.Edges)
	}
}

func TestParse_Shapes(t *testing.T) {
	g, err := Parse("graph TD\n  A[Rect]\n  B(Round)\n  C((Circ))\n  D{Diamond}\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := map[string]ast.NodeShape{
		"A": ast.ShapeRectangle,
		"B": ast.ShapeRounded,
		"C": ast.ShapeCircle,
		"D": ast.ShapeDiamond,
	}
	for _, n := range g.Nodes {
		if n.Shape != want[n.ID] {
			t.Errorf("node %s shape = %s, want %s", n.ID, n.Shape, want[n.ID])
		}
	}
}

func TestParse_EdgeLabel(t *testing.T) {
	g, err := Parse("graph TD\n  A{Decision} -->|yes| B\n  A -->|no| C\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.Edges[0].Label != "yes" || g.Edges[1].Label != "no" {
		t.Errorf("got labels %q, %q; want yes, no", g.Edges[0].Label, g.Edges[1].Label)
	}
}

func TestParse_DottedAndThickAndBidirOperators(t *testing.T) {
	cases := []struct {
		src  string
		want ast.EdgeType
	}{
		{"A --- B", ast.EdgeLine},
		{"A --> B", ast.EdgeArrow},
		{"A -.- B", ast.EdgeDottedLine},
		{"A -.-> B", ast.EdgeDottedArrow},
		{"A === B", ast.EdgeThickLine},
		{"A ==> B", ast.EdgeThickArrow},
		{"A <--> B", ast.EdgeBidirArrow},
		{"A <-.-> B", ast.EdgeBidirDotted},
		{"A <==> B", ast.EdgeBidirThick},
	}
	for _, c := range cases {
		g, err := Parse("graph TD\n" + c.src + "\n")
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.src, err)
		}
		if len(g.Edges) != 1 || g.Edges[0].Type != c.want {
			t.Errorf("Parse(%q) edge type = %+v, want %s", c.src, g.Edges, c.want)
		}
	}
}

func TestParse_Subgraph(t *testing.T) {
	g, err := Parse("graph TD\n  subgraph G\n    X --> Y\n  end\n  Y --> Z\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(g.Subgraphs) != 1 {
		t.Fatalf("got %d subgraphs, want 1", len(g.Subgraphs))
	}
	sg := g.Subgraphs[0]
	if sg.Label != "G" {
		t.Errorf("subgraph label = %q, want G", sg.Label)
	}
	if len(sg.Nodes) != 2 || len(sg.Edges) != 1 {
		t.Errorf("subgraph has %d nodes, %d edges; want 2, 1", len(sg.Nodes), len(sg.Edges))
	}
	if len(g.Edges) != 1 || g.Edges[0].FromID != "Y" || g.Edges[0].ToID != "Z" {
		t.Errorf("top-level edges = %+v, want single Y->Z", g.Edges)
	}
}

func TestParse_UnterminatedBracketIsParseError(t *testing.T) {
	_, err := Parse("graph TD\n  A[Rect\n")
	if err == nil {
		t.Fatal("expected parse error for unterminated bracket")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("got error type %T, want *ParseError", err)
	}
}

func TestParse_UnclosedSubgraphIsParseError(t *testing.T) {
	_, err := Parse("graph TD\n  subgraph G\n    X --> Y\n")
	if err == nil {
		t.Fatal("expected parse error for unclosed subgraph")
	}
}
