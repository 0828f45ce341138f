// Package canvas implements the 2D character grid that the renderer
// paints node boxes, subgraph borders, and routed edges onto, plus the
// box-drawing glyph tables used to merge junctions where lines cross.
package canvas

// CharSet selects which glyph family Canvas merges and writes.
type CharSet int

const (
	Unicode CharSet = iota
	ASCII
)

// BoxChars is one glyph family: corners, sides, junctions, and arrowheads.
type BoxChars struct {
	TopLeft, TopRight, BottomLeft, BottomRight string
	Horizontal, Vertical                       string
	TeeRight, TeeLeft, TeeDown, TeeUp, Cross    string
	ArrowRight, ArrowLeft, ArrowDown, ArrowUp   string
}

var unicodeBoxChars = BoxChars{
	TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘",
	Horizontal: "─", Vertical: "│",
	TeeRight: "├", TeeLeft: "┤", TeeDown: "┬", TeeUp: "┴", Cross: "┼",
	ArrowRight: "►", ArrowLeft: "◄", ArrowDown: "▼", ArrowUp: "▲",
}

var asciiBoxChars = BoxChars{
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
	Horizontal: "-", Vertical: "|",
	TeeRight: "+", TeeLeft: "+", TeeDown: "+", TeeUp: "+", Cross: "+",
	ArrowRight: ">", ArrowLeft: "<", ArrowDown: "v", ArrowUp: "^",
}

// ForCharSet returns the glyph family for cs.
func ForCharSet(cs CharSet) BoxChars {
	if cs == Unicode {
		return unicodeBoxChars
	}
	return asciiBoxChars
}

// Arms records which of a junction cell's four directions are active, so
// two box-drawing glyphs painted on the same cell (e.g. a vertical edge
// crossing a box's horizontal border) can be merged into the correct
// combined glyph instead of one overwriting the other.
type Arms struct {
	Up, Down, Left, Right bool
}

var armsFromChar = map[string]Arms{
	"─": {Left: true, Right: true},
	"│": {Up: true, Down: true},
	"┌": {Down: true, Right: true},
	"┐": {Down: true, Left: true},
	"└": {Up: true, Right: true},
	"┘": {Up: true, Left: true},
	"├": {Up: true, Down: true, Right: true},
	"┤": {Up: true, Down: true, Left: true},
	"┬": {Down: true, Left: true, Right: true},
	"┴": {Up: true, Left: true, Right: true},
	"┼": {Up: true, Down: true, Left: true, Right: true},
	"-": {Left: true, Right: true},
	"|": {Up: true, Down: true},
	"+": {Up: true, Down: true, Left: true, Right: true},
}

// ArmsFromChar looks up the arm set for a previously painted glyph. The
// second return is false for any character with no box-drawing meaning
// (letters, digits, arrowheads), in which case merging does not apply and
// the new glyph simply overwrites the cell.
func ArmsFromChar(c string) (Arms, bool) {
	a, ok := armsFromChar[c]
	return a, ok
}

// Merge ORs two arm sets together, combining both glyphs' directions.
func (a Arms) Merge(b Arms) Arms {
	return Arms{
		Up:    a.Up || b.Up,
		Down:  a.Down || b.Down,
		Left:  a.Left || b.Left,
		Right: a.Right || b.Right,
	}
}

// ToChar resolves a merged arm set back to a single glyph in cs.
func (a Arms) ToChar(cs CharSet) string {
	bc := ForCharSet(cs)
	switch {
	case !a.Up && !a.Down && !a.Left && !a.Right:
		return " "
	case !a.Up && !a.Down && a.Left && a.Right:
		return bc.Horizontal
	case a.Up && a.Down && !a.Left && !a.Right:
		return bc.Vertical
	case !a.Up && a.Down && !a.Left && a.Right:
		return bc.TopLeft
	case !a.Up && a.Down && a.Left && !a.Right:
		return bc.TopRight
	case a.Up && !a.Down && !a.Left && a.Right:
		return bc.BottomLeft
	case a.Up && !a.Down && a.Left && !a.Right:
		return bc.BottomRight
	case a.Up && a.Down && !a.Left && a.Right:
		return bc.TeeRight
	case a.Up && a.Down && a.Left && !a.Right:
		return bc.TeeLeft
	case !a.Up && a.Down && a.Left && a.Right:
		return bc.TeeDown
	case a.Up && !a.Down && a.Left && a.Right:
		return bc.TeeUp
	case a.Up && a.Down && a.Left && a.Right:
		return bc.Cross
	case a.Up && !a.Down && !a.Left && !a.Right:
		return bc.Vertical
	case !a.Up && a.Down && !a.Left && !a.Right:
		return bc.Vertical
	case !a.Up && !a.Down && a.Left && !a.Right:
		return bc.Horizontal
	case !a.Up && !a.Down && !a.Left && a.Right:
		return bc.Horizontal
	default:
		return " "
	}
}
