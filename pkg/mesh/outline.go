package mesh

import (
	"errors"
	"fmt"
)

// ErrOutlineRunaway means an outline walk visited more vertices than the mesh
// has, which only a malformed triangulation can cause.
var ErrOutlineRunaway = errors.New("outline walk did not terminate")

// IsOutlineEdge reports whether the edge a-b belongs to exactly one triangle.
func (t *Triangulation) IsOutlineEdge(a, b int) bool {
	shared := 0
	for _, id := range t.ByVertex[a] {
		if t.Tris[id].Contains(b) {
			shared++
			if shared > 1 {
				return false
			}
		}
	}
	return shared == 1
}

// connectedOutlineVertex returns an unchecked vertex joined to v by an
// outline edge, or -1.
func (t *Triangulation) connectedOutlineVertex(v int) int {
	for _, id := range t.ByVertex[v] {
		for _, other := range t.Tris[id] {
			if other == v || t.checked.Has(other) {
				continue
			}
			if t.IsOutlineEdge(v, other) {
				return other
			}
		}
	}
	return -1
}

// TraceOutlines walks every boundary of the floor mesh. Each outline starts
// and ends on the same vertex. Vertices are consumed as they are visited, so
// TraceOutlines returns the outlines only on its first call.
func (t *Triangulation) TraceOutlines() ([][]int, error) {
	var outlines [][]int
	limit := len(t.Vertices)

	for start := 0; start < limit; start++ {
		if t.checked.Has(start) {
			continue
		}
		next := t.connectedOutlineVertex(start)
		if next == -1 {
			continue
		}

		t.checked.Put(start)
		outline := []int{start}
		for next != -1 {
			if len(outline) > limit {
				return nil, fmt.Errorf("trace from vertex %d: %w", start, ErrOutlineRunaway)
			}
			outline = append(outline, next)
			t.checked.Put(next)
			next = t.connectedOutlineVertex(next)
		}
		outline = append(outline, start)
		outlines = append(outlines, outline)
	}
	return outlines, nil
}

// Walls extrudes each outline downwards by height into a strip of quads.
// Every quad is two triangles wound so their normals face away from the
// floor it borders.
func Walls(vertices []Vec3, outlines [][]int, height float64) *Mesh {
	m := &Mesh{}
	drop := up.Scale(height)
	for _, outline := range outlines {
		for i := 0; i+1 < len(outline); i++ {
			base := len(m.Vertices)
			a, b := vertices[outline[i]], vertices[outline[i+1]]
			m.Vertices = append(m.Vertices, a, b, a.Sub(drop), b.Sub(drop))
			m.Triangles = append(m.Triangles,
				base+0, base+2, base+3,
				base+3, base+1, base+0,
			)
		}
	}
	return m
}

// Build triangulates the grid described by solid and extrudes its outlines.
func Build(cols, rows int, solid func(x, y int) bool, squareSize, wallHeight float64) (floor, walls *Mesh, outlines [][]int, err error) {
	sg := NewSquareGrid(cols, rows, solid, squareSize)
	tri := Triangulate(sg)
	outlines, err = tri.TraceOutlines()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("trace outlines: %w", err)
	}
	floor = &Mesh{Vertices: tri.Vertices, Triangles: tri.Triangles}
	return floor, Walls(tri.Vertices, outlines, wallHeight), outlines, nil
}
