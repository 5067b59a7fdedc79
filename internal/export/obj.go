package export

import (
	"io"
	"strconv"

	"github.com/OCharnyshevich/cave-generator/pkg/mesh"
)

// OBJWriter writes Wavefront OBJ text to an io.Writer. Vertex indices are
// global across objects, so each object's faces are offset by the vertices
// written before it.
// All write methods accumulate errors internally; call Err() after writing
// to check for failures.
type OBJWriter struct {
	w        io.Writer
	err      error
	vertices int
	buf      []byte
}

// NewOBJWriter creates a new OBJ writer.
func NewOBJWriter(w io.Writer) *OBJWriter {
	return &OBJWriter{w: w}
}

// Err returns the first error encountered during writing.
func (w *OBJWriter) Err() error {
	return w.err
}

func (w *OBJWriter) flush() {
	if w.err != nil {
		w.buf = w.buf[:0]
		return
	}
	_, w.err = w.w.Write(w.buf)
	w.buf = w.buf[:0]
}

// Comment writes a "#" line.
func (w *OBJWriter) Comment(text string) {
	w.buf = append(w.buf, "# "...)
	w.buf = append(w.buf, text...)
	w.buf = append(w.buf, '\n')
	w.flush()
}

// Object writes m as a named object.
func (w *OBJWriter) Object(name string, m *mesh.Mesh) {
	w.buf = append(w.buf, "o "...)
	w.buf = append(w.buf, name...)
	w.buf = append(w.buf, '\n')

	for _, v := range m.Vertices {
		w.buf = append(w.buf, 'v')
		for _, c := range [3]float64{v.X, v.Y, v.Z} {
			w.buf = append(w.buf, ' ')
			w.buf = strconv.AppendFloat(w.buf, c, 'f', -1, 64)
		}
		w.buf = append(w.buf, '\n')
	}

	// OBJ indices are 1-based.
	base := w.vertices + 1
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		w.buf = append(w.buf, 'f')
		for _, idx := range m.Triangles[i : i+3] {
			w.buf = append(w.buf, ' ')
			w.buf = strconv.AppendInt(w.buf, int64(base+idx), 10)
		}
		w.buf = append(w.buf, '\n')
	}
	w.vertices += len(m.Vertices)
	w.flush()
}
