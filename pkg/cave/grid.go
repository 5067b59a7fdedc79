package cave

import "strings"

// Cell is the occupancy state of one grid tile.
type Cell uint8

const (
	Open  Cell = 0 // room / floor
	Solid Cell = 1 // wall
)

// Opposite returns the other cell state.
func (c Cell) Opposite() Cell {
	if c == Solid {
		return Open
	}
	return Solid
}

// Coord identifies a grid tile.
type Coord struct {
	X, Y int
}

// Grid is a fixed-size 2D occupancy grid. Index = y*Width + x.
type Grid struct {
	Width  int
	Height int
	cells  []Cell
}

// NewGrid returns a width×height grid with every cell Open.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the cell at (x, y). Reads outside the grid return Solid: the map
// edge is closed, so anything beyond it counts as wall.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Solid
	}
	return g.cells[y*g.Width+x]
}

// Set stores c at (x, y). Writes outside the grid are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.Width+x] = c
}

// Fill sets every cell to c.
func (g *Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// Count returns how many cells hold state c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g.Width != o.Width || g.Height != o.Height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Bordered returns a copy of g surrounded by a ring of Solid cells that is
// border cells thick.
func (g *Grid) Bordered(border int) *Grid {
	if border < 0 {
		border = 0
	}
	b := NewGrid(g.Width+border*2, g.Height+border*2)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if x >= border && x < g.Width+border && y >= border && y < g.Height+border {
				b.Set(x, y, g.At(x-border, y-border))
			} else {
				b.Set(x, y, Solid)
			}
		}
	}
	return b
}

// Rows returns the grid as row slices, top row (y=0) first.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.Height)
	for y := range rows {
		rows[y] = make([]Cell, g.Width)
		copy(rows[y], g.cells[y*g.Width:(y+1)*g.Width])
	}
	return rows
}

// String renders the grid with '#' for Solid and '.' for Open, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) == Solid {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseGrid builds a grid from rows of '#' (Solid) and any other byte (Open).
// All rows must have the same length; shorter rows are padded with Solid.
func ParseGrid(rows ...string) *Grid {
	w := 0
	for _, r := range rows {
		w = max(w, len(r))
	}
	g := NewGrid(w, len(rows))
	for y, r := range rows {
		for x := 0; x < w; x++ {
			if x >= len(r) || r[x] == '#' {
				g.Set(x, y, Solid)
			}
		}
	}
	return g
}
