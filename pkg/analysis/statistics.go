// Package analysis derives statistics and structural diagnostics from a
// mesh. Everything here is a pure function of the triangle list: nothing is
// cached between calls, so results always reflect the mesh as passed in.
package analysis

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alecKarfonta/electroplating/pkg/stl"
)

// Ratio is a derived quotient that may be undefined for degenerate meshes.
// Undefined values (NaN or Inf) marshal as JSON null.
type Ratio float64

// IsDefined reports whether the ratio holds a finite value.
func (r Ratio) IsDefined() bool {
	f := float64(r)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MarshalJSON renders undefined ratios as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.IsDefined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(r))
}

// Distribution summarizes a sample of scalar values.
type Distribution struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// BoundingBoxInfo describes the axis-aligned bounding box of a mesh.
type BoundingBoxInfo struct {
	Min        [3]float64 `json:"min"`
	Max        [3]float64 `json:"max"`
	Dimensions [3]float64 `json:"dimensions"`
}

// MeshStatistics is the full set of derived statistics for a mesh. Field
// names are the contract surface other components bind to.
type MeshStatistics struct {
	TriangleCount            int             `json:"triangle_count"`
	VertexCount              int             `json:"vertex_count"`
	SurfaceArea              float64         `json:"surface_area"`
	Volume                   float64         `json:"volume"`
	CenterOfMass             [3]float64      `json:"center_of_mass"`
	BoundingBox              BoundingBoxInfo `json:"bounding_box"`
	TriangleAreas            Distribution    `json:"triangle_areas"`
	EdgeLengths              Distribution    `json:"edge_lengths"`
	AspectRatio              Ratio           `json:"aspect_ratio"`
	SurfaceAreaToVolumeRatio Ratio           `json:"surface_area_to_volume_ratio"`
}

// Analyze computes the full statistics for a mesh.
func Analyze(m *stl.Mesh) *MeshStatistics {
	bbox := m.BoundingBox()
	surfaceArea := m.SurfaceArea()
	volume := Volume(m)

	areas := make([]float64, 0, len(m.Triangles))
	edges := make([]float64, 0, len(m.Triangles)*3)
	for _, triangle := range m.Triangles {
		areas = append(areas, triangle.Area())
		lengths := triangle.EdgeLengths()
		edges = append(edges, lengths[0], lengths[1], lengths[2])
	}

	stats := &MeshStatistics{
		TriangleCount:            len(m.Triangles),
		VertexCount:              UniqueVertexCount(m),
		SurfaceArea:              surfaceArea,
		Volume:                   volume,
		CenterOfMass:             vecToArray(CenterOfMass(m)),
		TriangleAreas:            describe(areas),
		EdgeLengths:              describe(edges),
		AspectRatio:              Ratio(math.Inf(1)),
		SurfaceAreaToVolumeRatio: Ratio(math.NaN()),
	}

	if len(m.Triangles) > 0 {
		stats.BoundingBox = BoundingBoxInfo{
			Min:        vecToArray(bbox.Min),
			Max:        vecToArray(bbox.Max),
			Dimensions: vecToArray(bbox.Size()),
		}
		stats.AspectRatio = Ratio(bbox.AspectRatio())
	}
	if volume > 0 {
		stats.SurfaceAreaToVolumeRatio = Ratio(surfaceArea / volume)
	}

	return stats
}

// Volume computes the enclosed volume of the mesh as the magnitude of the
// signed divergence-theorem sum. The result equals the enclosed volume only
// for a closed, consistently wound mesh; Validate reports when that
// precondition does not hold.
func Volume(m *stl.Mesh) float64 {
	return math.Abs(SignedVolume(m))
}

// SignedVolume computes the raw divergence-theorem sum over all triangles.
func SignedVolume(m *stl.Mesh) float64 {
	volume := 0.0
	for _, triangle := range m.Triangles {
		volume += triangle.SignedVolume()
	}
	return volume
}

// CenterOfMass computes the area-weighted centroid of the mesh surface:
// the sum of triangle centroids weighted by triangle area, divided by the
// total area. For meshes with zero total area it falls back to the plain
// vertex mean so the result stays finite.
func CenterOfMass(m *stl.Mesh) r3.Vec {
	var weighted r3.Vec
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		area := triangle.Area()
		weighted = r3.Add(weighted, r3.Scale(area, triangle.Centroid()))
		totalArea += area
	}
	if totalArea > 0 {
		return r3.Scale(1/totalArea, weighted)
	}

	var sum r3.Vec
	for _, triangle := range m.Triangles {
		sum = r3.Add(sum, r3.Add(triangle.V1, r3.Add(triangle.V2, triangle.V3)))
	}
	if len(m.Triangles) == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/float64(len(m.Triangles)*3), sum)
}

// UniqueVertexCount counts distinct vertex positions in the triangle soup.
func UniqueVertexCount(m *stl.Mesh) int {
	return len(uniqueVertices(m))
}

// uniqueVertices collects the distinct vertex positions of the mesh.
func uniqueVertices(m *stl.Mesh) []r3.Vec {
	seen := make(map[r3.Vec]struct{}, len(m.Triangles)*3)
	points := make([]r3.Vec, 0, len(m.Triangles)*3)
	for _, triangle := range m.Triangles {
		for _, v := range []r3.Vec{triangle.V1, triangle.V2, triangle.V3} {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				points = append(points, v)
			}
		}
	}
	return points
}

// describe computes min, max, mean and population standard deviation.
func describe(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	min := math.MaxFloat64
	max := -math.MaxFloat64
	sum := 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	mean := sum / float64(len(values))

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}

	return Distribution{
		Min:  min,
		Max:  max,
		Mean: mean,
		Std:  math.Sqrt(sumSq / float64(len(values))),
	}
}

func vecToArray(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
