package analysis

import (
	"fmt"

	"github.com/alecKarfonta/electroplating/pkg/stl"
)

// degenerateWarnProportion is the fraction of degenerate triangles above
// which a mesh gets a quality warning.
const degenerateWarnProportion = 0.01

// extremeAspectRatio marks a bounding box so elongated that uniform
// processing of the surface becomes questionable.
const extremeAspectRatio = 100.0

// smallExtentEpsilon flags near-zero bounding box extents.
const smallExtentEpsilon = 1e-6

// zeroVolumeEpsilon is the enclosed volume below which a mesh is treated
// as not enclosing any volume at all.
const zeroVolumeEpsilon = 1e-10

// ValidationResult reports structural problems found in a mesh. Issues are
// blocking: downstream calculators should refuse to run while any are
// present. Warnings are advisory only.
type ValidationResult struct {
	IsValid             bool     `json:"is_valid"`
	Issues              []string `json:"issues"`
	Warnings            []string `json:"warnings"`
	DegenerateTriangles []int    `json:"degenerate_triangles"`
}

// Validate inspects the mesh for structural issues. It never fails: problems
// are surfaced as data and the caller decides whether to block on them.
func Validate(m *stl.Mesh) *ValidationResult {
	result := &ValidationResult{
		Issues:              []string{},
		Warnings:            []string{},
		DegenerateTriangles: []int{},
	}

	for i, triangle := range m.Triangles {
		if triangle.IsDegenerate() {
			result.DegenerateTriangles = append(result.DegenerateTriangles, i)
		}
	}

	if len(m.Triangles) == 0 {
		result.Issues = append(result.Issues, "mesh has zero triangles")
	} else {
		if SignedVolume(m) <= zeroVolumeEpsilon {
			result.Issues = append(result.Issues, "mesh has zero or negative enclosed volume")
		}

		bbox := m.BoundingBox()
		size := bbox.Size()
		if size.X < smallExtentEpsilon || size.Y < smallExtentEpsilon || size.Z < smallExtentEpsilon {
			result.Warnings = append(result.Warnings, "mesh has very small dimensions in one or more axes")
		}
		if aspect := bbox.AspectRatio(); aspect > extremeAspectRatio {
			result.Warnings = append(result.Warnings, fmt.Sprintf("extreme aspect ratio (%.1f)", aspect))
		}
	}

	if n := len(result.DegenerateTriangles); n > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("found %d degenerate triangles", n))
		if float64(n) > degenerateWarnProportion*float64(len(m.Triangles)) {
			result.Warnings = append(result.Warnings, "high proportion of degenerate triangles")
		}
	}

	result.IsValid = len(result.Issues) == 0
	return result
}
