package canvas

import "strings"

// Rect is an axis-aligned character-cell rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }

// Canvas is the 2D character grid that the renderer paints onto.
type Canvas struct {
	Width, Height int
	charset       CharSet
	cells         [][]string
}

// New allocates a blank width x height canvas of the given glyph family.
func New(width, height int, cs CharSet) *Canvas {
	cells := make([][]string, height)
	for i := range cells {
		row := make([]string, width)
		for j := range row {
			row[j] = " "
		}
		cells[i] = row
	}
	return &Canvas{Width: width, Height: height, charset: cs, cells: cells}
}

// Charset reports which glyph family this canvas merges and writes.
func (c *Canvas) Charset() CharSet { return c.charset }

func (c *Canvas) inBounds(col, row int) bool {
	return row >= 0 && row < c.Height && col >= 0 && col < c.Width
}

// Get returns the glyph at (col, row), or a space if out of bounds.
func (c *Canvas) Get(col, row int) string {
	if !c.inBounds(col, row) {
		return " "
	}
	return c.cells[row][col]
}

// Set overwrites the glyph at (col, row), a no-op out of bounds.
func (c *Canvas) Set(col, row int, ch string) {
	if c.inBounds(col, row) {
		c.cells[row][col] = ch
	}
}

// SetMerge paints ch at (col, row), merging box-drawing arms with
// whatever glyph is already there instead of overwriting it outright, so
// a line crossing another line or a box border produces a junction glyph.
func (c *Canvas) SetMerge(col, row int, ch string) {
	if !c.inBounds(col, row) {
		return
	}
	existing := c.cells[row][col]
	ea, eok := ArmsFromChar(existing)
	na, nok := ArmsFromChar(ch)
	if eok && nok {
		c.cells[row][col] = ea.Merge(na).ToChar(c.charset)
		return
	}
	c.cells[row][col] = ch
}

// SetTee overwrites (col, row) with the single-arm glyph for arm merged
// onto the border's own two arms (Left/Right for a horizontal border,
// Up/Down for a vertical one), replacing whatever is already painted
// there instead of OR-merging with it. Used for exit/entry stubs, which
// must never widen into a Cross just because a line touches a border.
func (c *Canvas) SetTee(col, row int, arm Arms) {
	if !c.inBounds(col, row) {
		return
	}
	border := Arms{Up: true, Down: true}
	if arm.Up || arm.Down {
		border = Arms{Left: true, Right: true}
	}
	c.cells[row][col] = border.Merge(arm).ToChar(c.charset)
}

// HLine merges ch across [x1, x2] (inclusive, either order) on row y.
func (c *Canvas) HLine(y, x1, x2 int, ch string) {
	lo, hi := x1, x2
	if lo > hi {
		lo, hi = hi, lo
	}
	for col := lo; col <= hi; col++ {
		c.SetMerge(col, y, ch)
	}
}

// VLine merges ch down [y1, y2] (inclusive, either order) on column x.
func (c *Canvas) VLine(x, y1, y2 int, ch string) {
	lo, hi := y1, y2
	if lo > hi {
		lo, hi = hi, lo
	}
	for row := lo; row <= hi; row++ {
		c.SetMerge(x, row, ch)
	}
}

// DrawBox paints a box border of the given glyph family into rect,
// merging at corners and any cell already occupied by another line.
func (c *Canvas) DrawBox(rect Rect, bc BoxChars) {
	if rect.Width < 2 || rect.Height < 2 {
		return
	}
	x0, y0 := rect.X, rect.Y
	x1, y1 := rect.X+rect.Width-1, rect.Y+rect.Height-1

	c.Set(x0, y0, bc.TopLeft)
	c.Set(x1, y0, bc.TopRight)
	c.Set(x0, y1, bc.BottomLeft)
	c.Set(x1, y1, bc.BottomRight)
	for col := x0 + 1; col < x1; col++ {
		c.Set(col, y0, bc.Horizontal)
		c.Set(col, y1, bc.Horizontal)
	}
	for row := y0 + 1; row < y1; row++ {
		c.Set(x0, row, bc.Vertical)
		c.Set(x1, row, bc.Vertical)
	}
}

// WriteString writes s verbatim starting at (col, row), left to right,
// stopping at the canvas edge. Used for labels, which are never merged.
func (c *Canvas) WriteString(col, row int, s string) {
	for i, r := range []rune(s) {
		cc := col + i
		if !c.inBounds(cc, row) {
			break
		}
		c.cells[row][cc] = string(r)
	}
}

// ToString renders the grid as newline-joined rows. Every row is trimmed
// to the same width — the rightmost column holding a glyph anywhere in
// the grid — so the result stays a rectangle instead of ragged per-row
// trims; rows that are blank across that whole width are dropped from
// the bottom, and the result always ends with a single trailing newline.
func (c *Canvas) ToString() string {
	maxCol := 0
	for _, row := range c.cells {
		for col := len(row) - 1; col >= 0; col-- {
			if row[col] != " " {
				if col+1 > maxCol {
					maxCol = col + 1
				}
				break
			}
		}
	}

	rows := c.cells
	for len(rows) > 0 && rowBlank(rows[len(rows)-1], maxCol) {
		rows = rows[:len(rows)-1]
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row[:maxCol], "")
	}
	return strings.Join(lines, "\n") + "\n"
}

func rowBlank(row []string, width int) bool {
	for _, ch := range row[:width] {
		if ch != " " {
			return false
		}
	}
	return true
}
