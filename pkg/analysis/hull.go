package analysis

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alecKarfonta/electroplating/pkg/stl"
)

// ConvexHullVolume computes the volume of the convex hull of the mesh's
// vertices. Unlike Volume it does not depend on the mesh being closed or
// consistently wound, so it gives a usable size figure for open meshes.
// Returns 0 when the vertices are degenerate (fewer than four distinct
// points, or all collinear/coplanar).
func ConvexHullVolume(m *stl.Mesh) float64 {
	points := uniqueVertices(m)
	faces := convexHull(points)

	volume := 0.0
	for _, f := range faces {
		volume += r3.Dot(points[f[0]], r3.Cross(points[f[1]], points[f[2]])) / 6.0
	}
	return math.Abs(volume)
}

// convexHull builds the convex hull of the points incrementally: start from
// a non-degenerate tetrahedron, then for each remaining point remove the
// faces it can see and re-cover the horizon with new faces through the
// point. Faces are vertex index triples wound outward.
func convexHull(points []r3.Vec) [][3]int {
	if len(points) < 4 {
		return nil
	}
	eps := hullEpsilon(points)

	i0, i1 := extremePair(points)
	if r3.Norm(r3.Sub(points[i1], points[i0])) <= eps {
		return nil
	}
	i2 := farthestFromLine(points, i0, i1)
	if lineDistance(points, i0, i1, i2) <= eps {
		return nil
	}
	i3 := farthestFromPlane(points, i0, i1, i2)
	if planeDistance(points, i0, i1, i2, i3) <= eps {
		return nil
	}

	if orient(points[i0], points[i1], points[i2], points[i3]) < 0 {
		i1, i2 = i2, i1
	}
	faces := [][3]int{{i0, i2, i1}, {i0, i1, i3}, {i1, i2, i3}, {i2, i0, i3}}

	for p := range points {
		if p == i0 || p == i1 || p == i2 || p == i3 {
			continue
		}
		faces = expandHull(faces, points, p, eps)
	}
	return faces
}

// expandHull folds one point into the hull. Points inside (or on) the hull
// leave it unchanged.
func expandHull(faces [][3]int, points []r3.Vec, p int, eps float64) [][3]int {
	visible := make([]bool, len(faces))
	anyVisible := false
	for i, f := range faces {
		n := r3.Cross(r3.Sub(points[f[1]], points[f[0]]), r3.Sub(points[f[2]], points[f[0]]))
		if r3.Dot(r3.Unit(n), r3.Sub(points[p], points[f[0]])) > eps {
			visible[i] = true
			anyVisible = true
		}
	}
	if !anyVisible {
		return faces
	}

	// Directed edges of the visible region. Edges shared by two visible
	// faces appear in both directions and cancel; the rest form the
	// horizon, each in the winding of its visible face.
	edges := make(map[[2]int]bool)
	for i, f := range faces {
		if !visible[i] {
			continue
		}
		edges[[2]int{f[0], f[1]}] = true
		edges[[2]int{f[1], f[2]}] = true
		edges[[2]int{f[2], f[0]}] = true
	}

	next := make([][3]int, 0, len(faces))
	for i, f := range faces {
		if !visible[i] {
			next = append(next, f)
		}
	}
	for e := range edges {
		if edges[[2]int{e[1], e[0]}] {
			continue
		}
		next = append(next, [3]int{e[0], e[1], p})
	}
	return next
}

// hullEpsilon scales the coplanarity tolerance to the point cloud's extent.
func hullEpsilon(points []r3.Vec) float64 {
	maxAbs := 0.0
	for _, p := range points {
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z))))
	}
	return math.Max(maxAbs, 1.0) * 1e-10
}

// extremePair returns the lexicographically smallest point and the point
// farthest from it, a non-degenerate starting edge for any point cloud with
// spatial extent.
func extremePair(points []r3.Vec) (int, int) {
	i0 := 0
	for i, p := range points {
		q := points[i0]
		if p.X < q.X || (p.X == q.X && (p.Y < q.Y || (p.Y == q.Y && p.Z < q.Z))) {
			i0 = i
		}
	}

	i1 := 0
	best := -1.0
	for i, p := range points {
		if d := r3.Norm(r3.Sub(p, points[i0])); d > best {
			best = d
			i1 = i
		}
	}
	return i0, i1
}

func lineDistance(points []r3.Vec, i0, i1, p int) float64 {
	dir := r3.Sub(points[i1], points[i0])
	return r3.Norm(r3.Cross(dir, r3.Sub(points[p], points[i0]))) / r3.Norm(dir)
}

func farthestFromLine(points []r3.Vec, i0, i1 int) int {
	best := -1.0
	idx := 0
	for i := range points {
		if i == i0 || i == i1 {
			continue
		}
		if d := lineDistance(points, i0, i1, i); d > best {
			best = d
			idx = i
		}
	}
	return idx
}

func planeDistance(points []r3.Vec, i0, i1, i2, p int) float64 {
	n := r3.Cross(r3.Sub(points[i1], points[i0]), r3.Sub(points[i2], points[i0]))
	return math.Abs(r3.Dot(r3.Unit(n), r3.Sub(points[p], points[i0])))
}

func farthestFromPlane(points []r3.Vec, i0, i1, i2 int) int {
	best := -1.0
	idx := 0
	for i := range points {
		if i == i0 || i == i1 || i == i2 {
			continue
		}
		if d := planeDistance(points, i0, i1, i2, i); d > best {
			best = d
			idx = i
		}
	}
	return idx
}

// orient is positive when d lies on the normal side of triangle (a, b, c).
func orient(a, b, c, d r3.Vec) float64 {
	return r3.Dot(r3.Sub(d, a), r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))
}
