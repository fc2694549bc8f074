package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alecKarfonta/electroplating/pkg/geometry"
	"github.com/alecKarfonta/electroplating/pkg/stl"
)

func TestValidateCleanMesh(t *testing.T) {
	result := Validate(unitCube())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Issues)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.DegenerateTriangles)
}

func TestValidateEmptyMesh(t *testing.T) {
	result := Validate(stl.NewMesh("empty"))

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Issues, "mesh has zero triangles")
}

func TestValidateDegenerateTriangleFlagged(t *testing.T) {
	mesh := unitCube()
	mesh.AddTriangle(geometry.NewTriangle(r3.Vec{},
		r3.Vec{X: 5, Y: 5, Z: 5},
		r3.Vec{X: 5, Y: 5, Z: 5},
		r3.Vec{X: 6, Y: 7, Z: 8},
	))

	result := Validate(mesh)

	// Degenerate triangles are a quality warning, not a blocking issue.
	assert.True(t, result.IsValid)
	require.Len(t, result.DegenerateTriangles, 1)
	assert.Equal(t, 12, result.DegenerateTriangles[0])
	assert.Contains(t, result.Warnings, "found 1 degenerate triangles")
	assert.Contains(t, result.Warnings, "high proportion of degenerate triangles")
}

func TestValidateOpenMeshBlocked(t *testing.T) {
	// A single triangle encloses no volume; downstream calculators must be
	// able to refuse it.
	mesh := stl.NewMesh("open")
	mesh.AddTriangle(geometry.NewTriangle(r3.Vec{},
		r3.Vec{X: 0, Y: 0, Z: 0},
		r3.Vec{X: 1, Y: 0, Z: 0},
		r3.Vec{X: 0, Y: 1, Z: 0},
	))

	result := Validate(mesh)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Issues, "mesh has zero or negative enclosed volume")
}

func TestValidateExtremeAspectRatio(t *testing.T) {
	mesh := unitCube()
	mesh.Scale(r3.Vec{X: 1000, Y: 1, Z: 1})

	result := Validate(mesh)

	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "extreme aspect ratio")
}

func TestValidateJSONShape(t *testing.T) {
	// Empty lists must serialize as [] rather than null: the field names
	// and shapes are a contract surface.
	result := Validate(unitCube())

	assert.NotNil(t, result.Issues)
	assert.NotNil(t, result.Warnings)
	assert.NotNil(t, result.DegenerateTriangles)
}
