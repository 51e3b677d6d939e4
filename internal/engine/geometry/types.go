// Package geometry builds CPU-side vertex data for the demo's primitives.
// Shapes follow the conventions of common scene-graph libraries: planes lie
// in XY facing +Z, spheres are UV spheres with Y as the pole axis.
package geometry

// Vertex is a lit mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh holds indexed triangles ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// LineVertex is a vertex of an unlit, per-vertex colored line list.
type LineVertex struct {
	Position [3]float32
	Color    [3]float32
}

// Lines holds a GL_LINES vertex list; every two vertices form a segment.
type Lines struct {
	Vertices []LineVertex
}

// Segments returns the number of line segments.
func (l *Lines) Segments() int {
	return len(l.Vertices) / 2
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

func (b *Bounds) extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

func (m *Mesh) computeBounds() {
	m.Bounds = emptyBounds()
	for _, v := range m.Vertices {
		m.Bounds.extend(v.Position)
	}
}
