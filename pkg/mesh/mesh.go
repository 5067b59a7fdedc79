// Package mesh turns a binary occupancy grid into a triangulated floor mesh
// and extruded wall strips using a marching-squares variant.
package mesh

// Vec3 is a point or direction in world space. Y is up.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

var (
	up      = Vec3{0, 1, 0}
	forward = Vec3{0, 0, 1}
	right   = Vec3{1, 0, 0}
)

// Mesh is a vertex buffer plus a flat triangle index buffer, three indices
// per triangle.
type Mesh struct {
	Vertices  []Vec3 `json:"vertices"`
	Triangles []int  `json:"triangles"`
}

// TriangleCount returns len(Triangles)/3.
func (m *Mesh) TriangleCount() int { return len(m.Triangles) / 3 }

// Triangle is an immutable triple of vertex indices.
type Triangle [3]int

// Contains reports whether vertex index v is one of the triangle's corners.
func (t Triangle) Contains(v int) bool {
	return t[0] == v || t[1] == v || t[2] == v
}
