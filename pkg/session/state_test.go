package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alecKarfonta/electroplating/pkg/errdefs"
	"github.com/alecKarfonta/electroplating/pkg/geometry"
	"github.com/alecKarfonta/electroplating/pkg/stl"
)

// testMesh builds a small closed tetrahedron with outward windings.
func testMesh() *stl.Mesh {
	p := func(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }
	a, b, c, d := p(0, 0, 0), p(1, 0, 0), p(0, 1, 0), p(0, 0, 1)

	faces := [][3]r3.Vec{
		{a, c, b},
		{a, b, d},
		{a, d, c},
		{b, c, d},
	}

	mesh := stl.NewMesh("tetra")
	for _, f := range faces {
		tri := geometry.NewTriangle(r3.Vec{}, f[0], f[1], f[2])
		tri.Normal = tri.CalculateNormal()
		mesh.AddTriangle(tri)
	}
	return mesh
}

func TestStateScaleCompounds(t *testing.T) {
	state := NewState(testMesh(), "tetra.stl")
	before, err := state.Statistics()
	require.NoError(t, err)

	require.NoError(t, state.Scale(Uniform(2.0)))
	require.NoError(t, state.Scale(PerAxis(1.0, 3.0, 1.0)))

	assert.Equal(t, r3.Vec{X: 2, Y: 6, Z: 2}, state.CumulativeScale())

	// Volume scales by the product of all applied factors: 2·6·2 = 24.
	after, err := state.Statistics()
	require.NoError(t, err)
	assert.InEpsilon(t, 24.0*before.Volume, after.Volume, 1e-9)
}

func TestStateResetRestoresStatistics(t *testing.T) {
	state := NewState(testMesh(), "tetra.stl")
	before, err := state.Statistics()
	require.NoError(t, err)

	require.NoError(t, state.Scale(Uniform(3.5)))
	require.NoError(t, state.Translate(r3.Vec{X: 10, Y: -4, Z: 2}))
	require.NoError(t, state.Reset())

	after, err := state.Statistics()
	require.NoError(t, err)
	assert.InEpsilon(t, before.SurfaceArea, after.SurfaceArea, 1e-9)
	assert.InEpsilon(t, before.Volume, after.Volume, 1e-9)
	assert.Equal(t, before.BoundingBox, after.BoundingBox)
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, state.CumulativeScale())
}

func TestStateInverseScaleRoundTrip(t *testing.T) {
	state := NewState(testMesh(), "tetra.stl")
	before, err := state.Statistics()
	require.NoError(t, err)

	const s = 7.3
	require.NoError(t, state.Scale(Uniform(s)))
	require.NoError(t, state.Scale(Uniform(1.0/s)))

	after, err := state.Statistics()
	require.NoError(t, err)
	assert.InEpsilon(t, before.SurfaceArea, after.SurfaceArea, 1e-9)
	assert.InEpsilon(t, before.Volume, after.Volume, 1e-9)
}

func TestStateInvalidScaleFactor(t *testing.T) {
	state := NewState(testMesh(), "tetra.stl")

	for _, factor := range []ScaleFactor{
		Uniform(0),
		Uniform(-2),
		PerAxis(1, 0, 1),
		{},
	} {
		err := state.Scale(factor)
		var invalid *errdefs.InvalidParameterError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "scale_factor", invalid.Param)
	}

	// A rejected scale must leave the cumulative factor untouched.
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, state.CumulativeScale())
}

func TestStateSnapshotIsIndependent(t *testing.T) {
	state := NewState(testMesh(), "tetra.stl")

	snapshot, err := state.Snapshot()
	require.NoError(t, err)
	snapshot.Scale(r3.Vec{X: 100, Y: 100, Z: 100})

	stats, err := state.Statistics()
	require.NoError(t, err)
	assert.InEpsilon(t, testMesh().SurfaceArea(), stats.SurfaceArea, 1e-9)
}

func TestStateClosedOperationsFail(t *testing.T) {
	state := NewState(testMesh(), "tetra.stl")
	state.close()

	var notFound *errdefs.NotFoundError
	require.ErrorAs(t, state.Scale(Uniform(2)), &notFound)
	require.ErrorAs(t, state.Translate(r3.Vec{X: 1}), &notFound)
	require.ErrorAs(t, state.Reset(), &notFound)
}

func TestStateClosedReadsFail(t *testing.T) {
	// A reader that obtained the state just before the expiry sweep closed
	// it must get an error, never statistics for an empty mesh.
	state := NewState(testMesh(), "tetra.stl")
	state.close()

	var notFound *errdefs.NotFoundError
	_, err := state.Statistics()
	require.ErrorAs(t, err, &notFound)
	_, err = state.Validate()
	require.ErrorAs(t, err, &notFound)
	_, err = state.Snapshot()
	require.ErrorAs(t, err, &notFound)
	_, err = state.TriangleCount()
	require.ErrorAs(t, err, &notFound)
}
