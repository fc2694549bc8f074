package stl

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alecKarfonta/electroplating/pkg/geometry"
)

// Mesh represents a triangle-soup surface decoded from an STL stream.
type Mesh struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewMesh creates a new empty mesh
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the mesh
func (m *Mesh) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Clone returns a deep copy of the mesh
func (m *Mesh) Clone() *Mesh {
	triangles := make([]geometry.Triangle, len(m.Triangles))
	copy(triangles, m.Triangles)
	return &Mesh{
		Name:      m.Name,
		Triangles: triangles,
	}
}

// BoundingBox calculates the bounding box of the entire mesh
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the mesh
func (m *Mesh) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

// Scale multiplies every vertex coordinate component-wise by the given
// factors. Facet normals are recomputed from the scaled winding since a
// non-uniform scale does not preserve them.
func (m *Mesh) Scale(factors r3.Vec) {
	for i := range m.Triangles {
		t := &m.Triangles[i]
		t.V1 = mulElem(t.V1, factors)
		t.V2 = mulElem(t.V2, factors)
		t.V3 = mulElem(t.V3, factors)
		t.Normal = t.CalculateNormal()
	}
}

// Translate adds the given offset to every vertex coordinate. Normals are
// unaffected.
func (m *Mesh) Translate(offset r3.Vec) {
	for i := range m.Triangles {
		t := &m.Triangles[i]
		t.V1 = r3.Add(t.V1, offset)
		t.V2 = r3.Add(t.V2, offset)
		t.V3 = r3.Add(t.V3, offset)
	}
}

func mulElem(v, f r3.Vec) r3.Vec {
	return r3.Vec{X: v.X * f.X, Y: v.Y * f.Y, Z: v.Z * f.Z}
}
