// Package mesh triangulates chamfered polyhedra into renderable buffers.
package mesh

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Group is a contiguous run of triangles drawn with one material.
// Groups follow the face order of the source polyhedron.
type Group struct {
	Start         int // first vertex
	Count         int // vertex count, a multiple of 3
	MaterialIndex int // Slot+1; 0 is the bevel/background material
	Slot          int
}

// Mesh holds flat-shaded, non-indexed triangle data ready for upload.
type Mesh struct {
	Vertices []Vertex
	Groups   []Group
	Radius   float32 // bounding sphere radius
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// MaterialCount returns the number of material slots the mesh references,
// including the background material at index 0.
func (m *Mesh) MaterialCount() int {
	n := 1
	for _, g := range m.Groups {
		if g.MaterialIndex+1 > n {
			n = g.MaterialIndex + 1
		}
	}
	return n
}

// Triangle returns the three vertices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c Vertex) {
	return m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]
}
