// Package parser implements a hand-rolled recursive-descent reader for the
// Mermaid flowchart/graph dialect, producing the pkg/ast contract consumed
// by the layout and rendering pipeline.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/flowtext/mmdascii/pkg/ast"
)

// ParseError reports a malformed flowchart document. It is the only error
// type this package returns; the caller decides how to surface it.
type ParseError struct {
	Msg string
	Pos int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}

var (
	nodeIDRe  = regexp.MustCompile(`^[A-Za-z0-9_]+`)
	headerRe  = regexp.MustCompile(`(?i)^(graph|flowchart)\b`)
	dirRe     = regexp.MustCompile(`(?i)^(TD|TB|BT|LR|RL)\b`)
	endRe     = regexp.MustCompile(`^end(\s|;|$)`)
	directive = regexp.MustCompile(`^direction\b`)
)

// edgeOp pairs a literal connector spelling with the edge type it denotes.
// Ordered longest-match-first so an operator is never mistaken for a
// prefix of a longer one (e.g. "-.->" must be tried before "-.-").
type edgeOp struct {
	lit string
	typ ast.EdgeType
}

var edgeOps = []edgeOp{
	{"<-.->", ast.EdgeBidirDotted},
	{"<==>", ast.EdgeBidirThick},
	{"<-->", ast.EdgeBidirArrow},
	{"-.->", ast.EdgeDottedArrow},
	{"==>", ast.EdgeThickArrow},
	{"-->", ast.EdgeArrow},
	{"-.-", ast.EdgeDottedLine},
	{"===", ast.EdgeThickLine},
	{"---", ast.EdgeLine},
}

// Parse reads a complete Mermaid flowchart document and returns its AST.
func Parse(source string) (ast.Graph, error) {
	p := &parser{cur: newCursor(source), seen: map[string]bool{}}
	return p.parseGraph()
}

type parser struct {
	cur      *cursor
	seen     map[string]bool
	sgSerial int
}

func (p *parser) errf(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Pos: p.cur.pos}
}

func (p *parser) parseGraph() (ast.Graph, error) {
	dir := p.parseHeader()
	g := ast.NewGraph(dir)
	if err := p.parseBlockInto(&g.Nodes, &g.Edges, &g.Subgraphs, nil); err != nil {
		return ast.Graph{}, err
	}
	p.cur.skipSpacesAndNewlines()
	if !p.cur.eof() {
		return ast.Graph{}, p.errf("unexpected trailing content")
	}
	return g, nil
}

// parseHeader consumes an optional "graph <DIR>" / "flowchart <DIR>" line.
// Absence of a header, or absence of a direction, defaults to TD.
func (p *parser) parseHeader() ast.Direction {
	save := p.cur.pos
	p.cur.skipSpacesAndNewlines()
	m := headerRe.FindString(p.cur.remaining())
	if m == "" {
		p.cur.pos = save
		return ast.DirectionTD
	}
	p.cur.pos += len([]rune(m))
	p.cur.skipSpaces()
	dir := ast.DirectionTD
	if dm := dirRe.FindString(p.cur.remaining()); dm != "" {
		p.cur.pos += len([]rune(dm))
		dir = normalizeDirection(dm)
	}
	p.cur.restOfLine()
	p.cur.consumeNewline()
	return dir
}

func normalizeDirection(s string) ast.Direction {
	switch strings.ToUpper(s) {
	case "TB":
		return ast.DirectionTD
	default:
		return ast.Direction(strings.ToUpper(s))
	}
}

// parseBlockInto parses statements until EOF or a terminating "end"
// keyword (when inside a subgraph). dir, if non-nil, receives a
// "direction <D>" statement found directly inside this block.
func (p *parser) parseBlockInto(nodes *[]ast.Node, edges *[]ast.Edge, subs *[]ast.Subgraph, dir *ast.Direction) error {
	for {
		p.cur.skipSpacesAndNewlines()
		if p.cur.eof() {
			return nil
		}
		if p.atEndKeyword() {
			return nil
		}
		if directive.MatchString(p.cur.remaining()) {
			p.cur.pos += len("direction")
			p.cur.skipSpaces()
			dm := dirRe.FindString(p.cur.remaining())
			if dm == "" {
				return p.errf("expected direction after 'direction'")
			}
			p.cur.pos += len([]rune(dm))
			if dir != nil {
				d := normalizeDirection(dm)
				*dir = d
			}
			p.cur.restOfLine()
			continue
		}
		if ok, err := p.tryParseSubgraph(subs); err != nil {
			return err
		} else if ok {
			continue
		}
		if err := p.parseStatement(nodes, edges); err != nil {
			return err
		}
	}
}

func (p *parser) atEndKeyword() bool {
	return endRe.MatchString(p.cur.remaining())
}

func (p *parser) tryParseSubgraph(subs *[]ast.Subgraph) (bool, error) {
	if !strings.HasPrefix(p.cur.remaining(), "subgraph") {
		return false, nil
	}
	after := p.cur.peekAt(len("subgraph"))
	if after != 0 && after != ' ' && after != '\t' && after != '\n' {
		return false, nil
	}
	p.cur.pos += len("subgraph")
	p.cur.skipSpaces()
	line := p.cur.restOfLine()
	p.cur.consumeNewline()

	id, label := splitSubgraphHeader(line)
	if id == "" {
		p.sgSerial++
		id = fmt.Sprintf("sg%d", p.sgSerial)
	}
	sg := ast.NewSubgraph(id, label)
	sg.Description = label
	if err := p.parseBlockInto(&sg.Nodes, &sg.Edges, &sg.Subgraphs, &sg.Direction); err != nil {
		return false, err
	}
	if !p.atEndKeyword() {
		return false, p.errf("unclosed subgraph %q", id)
	}
	p.cur.pos += len("end")
	p.cur.consumeNewline()
	*subs = append(*subs, sg)
	return true, nil
}

// splitSubgraphHeader parses the text after the "subgraph" keyword.
// Accepted forms: "id[Label]", a bare identifier (id == label), or free
// text (id is empty, caller assigns a synthetic one).
func splitSubgraphHeader(line string) (id, label string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	if i := strings.IndexByte(line, '['); i >= 0 && strings.HasSuffix(line, "]") {
		candidate := line[:i]
		if nodeIDRe.MatchString(candidate) && len(nodeIDRe.FindString(candidate)) == len(candidate) {
			return candidate, strings.TrimSpace(line[i+1 : len(line)-1])
		}
	}
	if nodeIDRe.MatchString(line) && len(nodeIDRe.FindString(line)) == len(line) {
		return line, line
	}
	return "", line
}

// parseStatement parses one node declaration or edge chain statement.
func (p *parser) parseStatement(nodes *[]ast.Node, edges *[]ast.Edge) error {
	fromID, err := p.parseNodeRef(nodes)
	if err != nil {
		return err
	}
	p.cur.skipSpaces()
	for {
		op, ok := p.matchEdgeOp()
		if !ok {
			break
		}
		p.cur.skipSpaces()
		label, err := p.tryParseEdgeLabel()
		if err != nil {
			return err
		}
		p.cur.skipSpaces()
		toID, err := p.parseNodeRef(nodes)
		if err != nil {
			return err
		}
		*edges = append(*edges, ast.NewEdge(fromID, toID, op, label))
		fromID = toID
		p.cur.skipSpaces()
	}
	p.cur.consumeNewline()
	return nil
}

func (p *parser) matchEdgeOp() (ast.EdgeType, bool) {
	for _, op := range edgeOps {
		if p.cur.consume(op.lit) {
			return op.typ, true
		}
	}
	return "", false
}

// tryParseEdgeLabel parses an optional "|label|" following an edge
// connector.
func (p *parser) tryParseEdgeLabel() (string, error) {
	if p.cur.peek() != '|' {
		return "", nil
	}
	p.cur.advance()
	start := p.cur.pos
	for !p.cur.eof() && p.cur.peek() != '|' {
		if isNewlineChar(p.cur.peek()) {
			return "", p.errf("unterminated edge label")
		}
		p.cur.advance()
	}
	if p.cur.eof() {
		return "", p.errf("unterminated edge label")
	}
	label := string(p.cur.src[start:p.cur.pos])
	p.cur.advance() // closing '|'
	return unescapeLabel(label), nil
}

// parseNodeRef parses an id, optionally followed directly (no space) by a
// shape bracket. Returns the node id; registers the node on first sight.
func (p *parser) parseNodeRef(nodes *[]ast.Node) (string, error) {
	m := nodeIDRe.FindString(p.cur.remaining())
	if m == "" {
		return "", p.errf("expected node identifier")
	}
	p.cur.pos += len([]rune(m))
	id := m

	shape, label, hasShape, err := p.tryParseShape()
	if err != nil {
		return "", err
	}
	if !p.seen[id] {
		p.seen[id] = true
		if hasShape {
			*nodes = append(*nodes, ast.NewNode(id, label, shape))
		} else {
			*nodes = append(*nodes, ast.BareNode(id))
		}
	}
	return id, nil
}

// tryParseShape parses an immediately-following bracket pair denoting a
// node shape and its label. Reports hasShape=false if no bracket follows.
func (p *parser) tryParseShape() (ast.NodeShape, string, bool, error) {
	switch p.cur.peek() {
	case '(':
		if p.cur.peekAt(1) == '(' {
			p.cur.pos += 2
			label, err := p.readBracketLabel("))")
			return ast.ShapeCircle, label, true, err
		}
		p.cur.advance()
		label, err := p.readBracketLabel(")")
		return ast.ShapeRounded, label, true, err
	case '[':
		p.cur.advance()
		label, err := p.readBracketLabel("]")
		return ast.ShapeRectangle, label, true, err
	case '{':
		p.cur.advance()
		label, err := p.readBracketLabel("}")
		return ast.ShapeDiamond, label, true, err
	}
	return "", "", false, nil
}

// readBracketLabel reads a node label up to the close delimiter, which has
// already not been consumed. Supports a quoted form with backslash
// escapes or a bare form read verbatim.
func (p *parser) readBracketLabel(close string) (string, error) {
	if p.cur.peek() == '"' {
		label, err := p.parseQuotedString()
		if err != nil {
			return "", err
		}
		if !p.cur.consume(close) {
			return "", p.errf("expected %q after quoted label", close)
		}
		return label, nil
	}
	start := p.cur.pos
	for {
		if p.cur.eof() {
			return "", p.errf("unterminated bracket, expected %q", close)
		}
		if p.cur.hasPrefix(close) {
			label := string(p.cur.src[start:p.cur.pos])
			p.cur.pos += len([]rune(close))
			return strings.TrimSpace(label), nil
		}
		if isNewlineChar(p.cur.peek()) {
			return "", p.errf("unterminated bracket, expected %q", close)
		}
		p.cur.advance()
	}
}

func (p *parser) parseQuotedString() (string, error) {
	if p.cur.peek() != '"' {
		return "", p.errf("expected '\"'")
	}
	p.cur.advance()
	var b strings.Builder
	for {
		if p.cur.eof() {
			return "", p.errf("unterminated quoted string")
		}
		r := p.cur.peek()
		if r == '\\' {
			p.cur.advance()
			esc := p.cur.advance()
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case '"':
				b.WriteRune('"')
			case '\\':
				b.WriteRune('\\')
			default:
				b.WriteRune(esc)
			}
			continue
		}
		if r == '"' {
			p.cur.advance()
			return b.String(), nil
		}
		b.WriteRune(p.cur.advance())
	}
}

func unescapeLabel(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\"`, `"`)
	return strings.TrimSpace(s)
}
