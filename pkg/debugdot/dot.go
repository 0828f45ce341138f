// Package debugdot exports a GraphIR as Graphviz DOT and renders it to
// SVG, so the --debug-dot flag on the render command can show the
// pre-layout graph structure independent of the character-grid renderer.
package debugdot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/flowtext/mmdascii/pkg/ast"
	"github.com/flowtext/mmdascii/pkg/graphir"
)

// ToDOT renders g's nodes and edges as a Graphviz DOT digraph. Subgraphs
// are rendered as labeled clusters so containment is visible in the
// debug output, matching the way the real renderer nests subgraph
// borders around their members.
func ToDOT(g *graphir.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir(g.Direction))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n\n")

	roots := make([]string, 0)
	for _, sgID := range g.SubgraphIDs() {
		sg, _ := g.Subgraph(sgID)
		if sg.Parent == "" {
			roots = append(roots, sgID)
		}
	}
	for _, sgID := range roots {
		writeCluster(&buf, g, sgID, "  ")
	}

	for _, id := range g.NodeIDs() {
		if g.SubgraphOf(id) != "" {
			continue // already emitted inside its cluster
		}
		writeNode(&buf, g, id, "  ")
	}

	buf.WriteString("\n")
	for i := 0; i < g.EdgeCount(); i++ {
		e := g.Edge(i)
		attrs := []string{fmt.Sprintf("label=%q", e.Label)}
		if strings.Contains(string(e.Type), "dotted") {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeCluster(buf *bytes.Buffer, g *graphir.Graph, sgID, indent string) {
	sg, _ := g.Subgraph(sgID)
	fmt.Fprintf(buf, "%ssubgraph %q {\n", indent, "cluster_"+sgID)
	fmt.Fprintf(buf, "%s  label=%q;\n", indent, sg.Label)
	for _, childID := range sg.Subgraphs {
		writeCluster(buf, g, childID, indent+"  ")
	}
	for _, id := range sg.Members {
		writeNode(buf, g, id, indent+"  ")
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}

func writeNode(buf *bytes.Buffer, g *graphir.Graph, id, indent string) {
	n, ok := g.Node(id)
	if !ok {
		return
	}
	fmt.Fprintf(buf, "%s%q [label=%q];\n", indent, id, n.Label)
}

// rankdir maps a flowchart direction to Graphviz's rankdir attribute;
// Mermaid's TD has no Graphviz equivalent name, so it maps to TB.
func rankdir(d ast.Direction) string {
	if d == ast.DirectionTD {
		return "TB"
	}
	return string(d)
}

// RenderSVG renders a DOT graph to SVG bytes using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
