package geometry

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// DegenerateAreaEpsilon is the area below which a triangle is considered
// degenerate, in the mesh's working units.
const DegenerateAreaEpsilon = 1e-10

// coincidentTolerance is the distance below which two vertices of the same
// triangle are considered the same point.
const coincidentTolerance = 1e-12

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     r3.Vec
	V1, V2, V3 r3.Vec
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 r3.Vec) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// CalculateNormal computes the unit normal vector from the vertex winding
func (t Triangle) CalculateNormal() r3.Vec {
	edge1 := r3.Sub(t.V2, t.V1)
	edge2 := r3.Sub(t.V3, t.V1)
	cross := r3.Cross(edge1, edge2)
	if r3.Norm(cross) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(cross)
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := r3.Sub(t.V2, t.V1)
	edge2 := r3.Sub(t.V3, t.V1)
	return r3.Norm(r3.Cross(edge1, edge2)) / 2.0
}

// SignedVolume returns the signed volume of the tetrahedron formed by the
// triangle and the origin. Summed over a closed, consistently wound mesh
// this yields the enclosed volume (divergence theorem).
func (t Triangle) SignedVolume() float64 {
	return r3.Dot(t.V1, r3.Cross(t.V2, t.V3)) / 6.0
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		r3.Norm(r3.Sub(t.V2, t.V1)),
		r3.Norm(r3.Sub(t.V3, t.V2)),
		r3.Norm(r3.Sub(t.V1, t.V3)),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Centroid returns the centroid of the triangle
func (t Triangle) Centroid() r3.Vec {
	return r3.Scale(1.0/3.0, r3.Add(t.V1, r3.Add(t.V2, t.V3)))
}

// IsDegenerate reports whether the triangle has (near-)zero area or two
// coincident vertices.
func (t Triangle) IsDegenerate() bool {
	if t.Area() < DegenerateAreaEpsilon {
		return true
	}
	return r3.Norm(r3.Sub(t.V2, t.V1)) < coincidentTolerance ||
		r3.Norm(r3.Sub(t.V3, t.V2)) < coincidentTolerance ||
		r3.Norm(r3.Sub(t.V1, t.V3)) < coincidentTolerance
}
