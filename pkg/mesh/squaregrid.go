package mesh

// Corner weights of a square configuration.
const (
	TopLeft     = 8
	TopRight    = 4
	BottomRight = 2
	BottomLeft  = 1
)

// Square slot indices into Square.Nodes.
const (
	slotTopLeft = iota
	slotTopRight
	slotBottomRight
	slotBottomLeft
	slotCentreTop
	slotCentreRight
	slotCentreBottom
	slotCentreLeft
)

// Square is one cell of the dual lattice. Nodes holds arena indices: the four
// corner control nodes (TL, TR, BR, BL) followed by the four edge midpoints
// (top, right, bottom, left). Midpoints are shared with neighbouring squares.
type Square struct {
	Nodes         [8]int
	Configuration int
}

// SquareGrid is the dual lattice of an occupancy grid. Every grid cell owns a
// control node at its centre and the two midpoints above and to the right of
// it, stored in one arena so squares share nodes by index.
type SquareGrid struct {
	Width, Height int // squares per axis

	positions   []Vec3
	active      []bool
	vertexIndex []int // -1 until the node is first emitted

	Squares []Square
}

// controlIndex returns the arena index of the control node at (x, y);
// above and right midpoints follow it at +1 and +2.
func controlIndex(x, y, rows int) int {
	return (x*rows + y) * 3
}

// NewSquareGrid builds the lattice for a cols×rows grid. solid reports
// whether the cell at (x, y) is a wall; squareSize is the world size of one
// cell. The grid is centred on the origin in the XZ plane.
func NewSquareGrid(cols, rows int, solid func(x, y int) bool, squareSize float64) *SquareGrid {
	sg := &SquareGrid{}
	if cols <= 0 || rows <= 0 {
		return sg
	}

	n := cols * rows * 3
	sg.positions = make([]Vec3, n)
	sg.active = make([]bool, n)
	sg.vertexIndex = make([]int, n)
	for i := range sg.vertexIndex {
		sg.vertexIndex[i] = -1
	}

	mapWidth := float64(cols) * squareSize
	mapHeight := float64(rows) * squareSize
	half := squareSize / 2
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			pos := Vec3{
				X: -mapWidth/2 + float64(x)*squareSize + half,
				Z: -mapHeight/2 + float64(y)*squareSize + half,
			}
			ci := controlIndex(x, y, rows)
			sg.positions[ci] = pos
			sg.active[ci] = solid(x, y)
			sg.positions[ci+1] = pos.Add(forward.Scale(half))
			sg.positions[ci+2] = pos.Add(right.Scale(half))
		}
	}

	sg.Width, sg.Height = cols-1, rows-1
	if sg.Width <= 0 || sg.Height <= 0 {
		sg.Width, sg.Height = 0, 0
		return sg
	}
	sg.Squares = make([]Square, 0, sg.Width*sg.Height)
	for x := 0; x < sg.Width; x++ {
		for y := 0; y < sg.Height; y++ {
			tl := controlIndex(x, y+1, rows)
			tr := controlIndex(x+1, y+1, rows)
			br := controlIndex(x+1, y, rows)
			bl := controlIndex(x, y, rows)

			sq := Square{Nodes: [8]int{
				slotTopLeft:      tl,
				slotTopRight:     tr,
				slotBottomRight:  br,
				slotBottomLeft:   bl,
				slotCentreTop:    tl + 2,
				slotCentreRight:  br + 1,
				slotCentreBottom: bl + 2,
				slotCentreLeft:   bl + 1,
			}}
			if sg.active[tl] {
				sq.Configuration += TopLeft
			}
			if sg.active[tr] {
				sq.Configuration += TopRight
			}
			if sg.active[br] {
				sq.Configuration += BottomRight
			}
			if sg.active[bl] {
				sq.Configuration += BottomLeft
			}
			sg.Squares = append(sg.Squares, sq)
		}
	}
	return sg
}

// Position returns the world position of arena node i.
func (sg *SquareGrid) Position(i int) Vec3 { return sg.positions[i] }

// VertexIndex returns the mesh vertex assigned to arena node i, or -1.
func (sg *SquareGrid) VertexIndex(i int) int { return sg.vertexIndex[i] }
