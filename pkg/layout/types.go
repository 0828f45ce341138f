// Package layout implements the Sugiyama hierarchical layout engine:
// subgraph collapse, cycle removal, layer assignment, dummy insertion,
// barycenter crossing minimization, coordinate assignment, and compound
// node expansion. It consumes a graphir.Graph and produces a Result that
// the route package turns into painted edge polylines.
package layout

import "github.com/flowtext/mmdascii/pkg/ast"

// Gap and measurement constants, pinned per SPEC_FULL.md's Open Question
// Resolutions so golden output is stable across runs and implementations.
const (
	NodePadding = 1
	HGap        = 4 // inter-sibling gap within a layer
	VGap        = 3 // inter-layer gap
	NodeHeight  = 3 // single-line label box height
	MaxPasses   = 24
)

// LayoutNode is one real or expanded-compound node with an assigned
// position and size. Dummy and (after phase 7) compound nodes never
// appear in the final node list.
type LayoutNode struct {
	ID     string
	Label  string
	Shape  ast.NodeShape
	Layer  int
	Order  int
	X, Y   int
	Width  int
	Height int
}

// Point is a single waypoint in character-cell coordinates.
type Point struct{ X, Y int }

// EdgeChain is one original edge, identified across any dummy chain
// inserted to span multiple layers. OrigFrom/OrigTo are the edge's
// direction as declared in the source; Reversed records whether the
// layering pass internally flipped it (rendering must flip the
// arrowhead back so it still points OrigFrom -> OrigTo).
type EdgeChain struct {
	OrigFrom string
	OrigTo   string
	Type     ast.EdgeType
	Label    string
	Reversed bool
	// Path lists every node id on the unit-layer chain from the current
	// (possibly reversed) source to the current target, inclusive,
	// including any __dummy_ ids.
	Path []string
}

// Result is the complete output of the layout engine: positioned nodes
// plus edge chains ready for routing.
type Result struct {
	Direction            ast.Direction
	Nodes                []LayoutNode
	Chains               []EdgeChain
	SubgraphMembers      map[string][]string
	SubgraphBounds       map[string]Rect
	SubgraphDescriptions map[string]string
	// DummyPositions gives the absolute cell position of every layer-
	// bridging dummy node, keyed by its __dummy_ id, for the router to
	// use as an intermediate waypoint.
	DummyPositions map[string]Point
}

// Rect is an axis-aligned bounding box in character-cell coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }
