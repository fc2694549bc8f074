package geometry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()

	bbox.Extend(r3.Vec{X: 1, Y: 2, Z: 3})
	bbox.Extend(r3.Vec{X: 4, Y: 5, Z: 6})
	bbox.Extend(r3.Vec{X: -1, Y: 0, Z: 2})

	expectedMin := r3.Vec{X: -1, Y: 0, Z: 2}
	expectedMax := r3.Vec{X: 4, Y: 5, Z: 6}

	if bbox.Min != expectedMin {
		t.Errorf("Min failed: expected %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max != expectedMax {
		t.Errorf("Max failed: expected %v, got %v", expectedMax, bbox.Max)
	}
}

func TestBoundingBoxSize(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(r3.Vec{})
	bbox.Extend(r3.Vec{X: 10, Y: 20, Z: 30})

	size := bbox.Size()
	expected := r3.Vec{X: 10, Y: 20, Z: 30}

	if size != expected {
		t.Errorf("Size failed: expected %v, got %v", expected, size)
	}
}

func TestBoundingBoxCenter(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(r3.Vec{})
	bbox.Extend(r3.Vec{X: 10, Y: 20, Z: 30})

	center := bbox.Center()
	expected := r3.Vec{X: 5, Y: 10, Z: 15}

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestBoundingBoxAspectRatio(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(r3.Vec{})
	bbox.Extend(r3.Vec{X: 10, Y: 5, Z: 2})

	expected := 5.0
	if math.Abs(bbox.AspectRatio()-expected) > 1e-10 {
		t.Errorf("AspectRatio failed: expected %v, got %v", expected, bbox.AspectRatio())
	}
}

func TestBoundingBoxAspectRatioFlat(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(r3.Vec{})
	bbox.Extend(r3.Vec{X: 10, Y: 5, Z: 0})

	if !math.IsInf(bbox.AspectRatio(), 1) {
		t.Errorf("AspectRatio failed: expected +Inf for flat box, got %v", bbox.AspectRatio())
	}
}

func TestBoundingBoxVolume(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(r3.Vec{})
	bbox.Extend(r3.Vec{X: 2, Y: 3, Z: 4})

	expected := 24.0
	if math.Abs(bbox.Volume()-expected) > 1e-10 {
		t.Errorf("Volume failed: expected %v, got %v", expected, bbox.Volume())
	}
}
