package cave

// Automaton smooths a grid with birth/death neighbor-count rules.
//
// Every step reads one snapshot and writes a second buffer; the buffers are
// swapped afterwards.
type Automaton struct {
	DeathLimit int
	BirthLimit int
}

// SolidNeighbors counts the Solid cells among the 8 neighbors of (x, y).
// Out-of-range neighbors count as Solid.
func SolidNeighbors(g *Grid, x, y int) int {
	count := 0
	for nx := x - 1; nx <= x+1; nx++ {
		for ny := y - 1; ny <= y+1; ny++ {
			if nx == x && ny == y {
				continue
			}
			if g.At(nx, ny) == Solid {
				count++
			}
		}
	}
	return count
}

// Next returns the state of (x, y) after one step computed against g.
func (a Automaton) Next(g *Grid, x, y int) Cell {
	n := SolidNeighbors(g, x, y)
	cur := g.At(x, y)
	switch {
	case cur == Solid && n < a.DeathLimit:
		return Open
	case cur == Open && n > a.BirthLimit:
		return Solid
	}
	return cur
}

// Step writes the next generation of src into dst. Both grids must have the
// same dimensions; src is never modified.
func (a Automaton) Step(src, dst *Grid) {
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			dst.cells[y*src.Width+x] = a.Next(src, x, y)
		}
	}
}

// Run applies steps generations to g in place and returns g.
func (a Automaton) Run(g *Grid, steps int) *Grid {
	if steps <= 0 {
		return g
	}
	cur := g
	next := NewGrid(g.Width, g.Height)
	for range steps {
		a.Step(cur, next)
		cur, next = next, cur
	}
	if cur != g {
		copy(g.cells, cur.cells)
	}
	return g
}
