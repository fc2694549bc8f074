package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min r3.Vec
	Max r3.Vec
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: r3.Vec{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: r3.Vec{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point r3.Vec) {
	b.Min = r3.Vec{
		X: math.Min(b.Min.X, point.X),
		Y: math.Min(b.Min.Y, point.Y),
		Z: math.Min(b.Min.Z, point.Z),
	}
	b.Max = r3.Vec{
		X: math.Max(b.Max.X, point.X),
		Y: math.Max(b.Max.Y, point.Y),
		Z: math.Max(b.Max.Z, point.Z),
	}
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float64 {
	return r3.Norm(b.Size())
}

// Volume returns the volume of the bounding box
func (b BoundingBox) Volume() float64 {
	size := b.Size()
	return size.X * size.Y * size.Z
}

// AspectRatio returns the ratio of the largest to the smallest extent.
// Returns +Inf when the smallest extent is zero.
func (b BoundingBox) AspectRatio() float64 {
	size := b.Size()
	smallest := math.Min(size.X, math.Min(size.Y, size.Z))
	largest := math.Max(size.X, math.Max(size.Y, size.Z))
	if smallest <= 0 {
		return math.Inf(1)
	}
	return largest / smallest
}
