package mesh

import "github.com/zyedidia/generic/mapset"

// patterns maps a square configuration to the node slots of its polygon.
// The polygon is fanned from its first point.
var patterns = [16][]int{
	0: nil,

	// one corner
	1: {slotCentreLeft, slotCentreBottom, slotBottomLeft},
	2: {slotCentreBottom, slotCentreRight, slotBottomRight},
	4: {slotCentreRight, slotCentreTop, slotTopRight},
	8: {slotTopLeft, slotCentreTop, slotCentreLeft},

	// two corners
	3:  {slotCentreRight, slotBottomRight, slotBottomLeft, slotCentreLeft},
	6:  {slotCentreTop, slotTopRight, slotBottomRight, slotCentreBottom},
	9:  {slotTopLeft, slotCentreTop, slotCentreBottom, slotBottomLeft},
	12: {slotTopLeft, slotTopRight, slotCentreRight, slotCentreLeft},
	5:  {slotCentreTop, slotTopRight, slotCentreRight, slotCentreBottom, slotBottomLeft, slotCentreLeft},
	10: {slotTopLeft, slotCentreTop, slotCentreRight, slotBottomRight, slotCentreBottom, slotCentreLeft},

	// three corners
	7:  {slotCentreTop, slotTopRight, slotBottomRight, slotBottomLeft, slotCentreLeft},
	11: {slotTopLeft, slotCentreTop, slotCentreRight, slotBottomRight, slotBottomLeft},
	13: {slotTopLeft, slotTopRight, slotCentreRight, slotCentreBottom, slotBottomLeft},
	14: {slotTopLeft, slotTopRight, slotBottomRight, slotCentreBottom, slotCentreLeft},

	// full square
	15: {slotTopLeft, slotTopRight, slotBottomRight, slotBottomLeft},
}

// Triangulation is the floor mesh of a square grid plus the adjacency data
// the outline tracer needs.
type Triangulation struct {
	Mesh

	// Tris lists every triangle in emission order.
	Tris []Triangle
	// ByVertex maps a vertex index to the indices (into Tris) of the
	// triangles that use it.
	ByVertex [][]int

	// checked holds vertices that can never lie on an outline, plus those
	// already consumed by one.
	checked mapset.Set[int]
}

// Triangulate emits the floor mesh for every square of sg. Node vertex
// indices are assigned on first use, so nodes shared between squares map to
// one vertex. Triangulate mutates sg's vertex assignments and must be run at
// most once per SquareGrid.
func Triangulate(sg *SquareGrid) *Triangulation {
	t := &Triangulation{checked: mapset.New[int]()}
	for i := range sg.Squares {
		t.square(sg, &sg.Squares[i])
	}
	return t
}

func (t *Triangulation) square(sg *SquareGrid, sq *Square) {
	slots := patterns[sq.Configuration]
	if len(slots) < 3 {
		return
	}

	var pts [6]int
	for i, s := range slots {
		node := sq.Nodes[s]
		if sg.vertexIndex[node] == -1 {
			sg.vertexIndex[node] = len(t.Vertices)
			t.Vertices = append(t.Vertices, sg.positions[node])
			t.ByVertex = append(t.ByVertex, nil)
		}
		pts[i] = sg.vertexIndex[node]
	}

	for i := 2; i < len(slots); i++ {
		t.addTriangle(Triangle{pts[0], pts[i-1], pts[i]})
	}

	// Corners of a full square are interior to the floor.
	if sq.Configuration == 15 {
		for _, v := range pts[:4] {
			t.checked.Put(v)
		}
	}
}

func (t *Triangulation) addTriangle(tri Triangle) {
	id := len(t.Tris)
	t.Tris = append(t.Tris, tri)
	t.Triangles = append(t.Triangles, tri[0], tri[1], tri[2])
	for _, v := range tri {
		t.ByVertex[v] = append(t.ByVertex[v], id)
	}
}
