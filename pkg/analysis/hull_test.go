package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alecKarfonta/electroplating/pkg/geometry"
	"github.com/alecKarfonta/electroplating/pkg/stl"
)

func TestConvexHullVolumeCube(t *testing.T) {
	// The hull of a convex mesh is the mesh itself.
	assert.InDelta(t, 1.0, ConvexHullVolume(unitCube()), 1e-9)
}

func TestConvexHullVolumeIgnoresWinding(t *testing.T) {
	// Flip every triangle: the enclosed volume computation breaks, the hull
	// does not.
	mesh := unitCube()
	for i := range mesh.Triangles {
		tri := &mesh.Triangles[i]
		tri.V2, tri.V3 = tri.V3, tri.V2
	}

	assert.InDelta(t, 1.0, ConvexHullVolume(mesh), 1e-9)
}

func TestConvexHullVolumeInteriorPoints(t *testing.T) {
	// Triangles strictly inside the cube do not change its hull.
	mesh := unitCube()
	mesh.AddTriangle(geometry.NewTriangle(r3.Vec{},
		r3.Vec{X: 0.5, Y: 0.5, Z: 0.5},
		r3.Vec{X: 0.6, Y: 0.5, Z: 0.5},
		r3.Vec{X: 0.5, Y: 0.6, Z: 0.5},
	))

	assert.InDelta(t, 1.0, ConvexHullVolume(mesh), 1e-9)
}

func TestConvexHullVolumeOpenMesh(t *testing.T) {
	// Four faces of the cube removed: the enclosed volume is meaningless,
	// the hull of the remaining vertices still spans the full cube.
	full := unitCube()
	mesh := stl.NewMesh("open")
	for _, tri := range full.Triangles[:4] {
		mesh.AddTriangle(tri)
	}

	assert.InDelta(t, 1.0, ConvexHullVolume(mesh), 1e-9)
}

func TestConvexHullVolumeDegenerate(t *testing.T) {
	// A single flat triangle has no hull volume.
	mesh := stl.NewMesh("flat")
	mesh.AddTriangle(geometry.NewTriangle(r3.Vec{},
		r3.Vec{X: 0, Y: 0, Z: 0},
		r3.Vec{X: 1, Y: 0, Z: 0},
		r3.Vec{X: 0, Y: 1, Z: 0},
	))

	assert.Zero(t, ConvexHullVolume(mesh))
	assert.Zero(t, ConvexHullVolume(stl.NewMesh("empty")))
}

func TestConvexHullVolumeTetrahedron(t *testing.T) {
	mesh := stl.NewMesh("tetra")
	p := func(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }
	mesh.AddTriangle(geometry.NewTriangle(r3.Vec{}, p(0, 0, 0), p(1, 0, 0), p(0, 1, 0)))
	mesh.AddTriangle(geometry.NewTriangle(r3.Vec{}, p(0, 0, 0), p(0, 0, 1), p(1, 0, 0)))

	// Two faces are enough: the hull is built from vertices, not facets.
	assert.InDelta(t, 1.0/6.0, ConvexHullVolume(mesh), 1e-9)
}
