package plating

import (
	"github.com/alecKarfonta/electroplating/pkg/errdefs"
)

// VolumeUnit selects how a mesh volume figure is interpreted for cost
// estimation. Presentation only: the estimate always reports both units.
type VolumeUnit string

const (
	VolumeUnitMM3 VolumeUnit = "mm3"
	VolumeUnitCM3 VolumeUnit = "cm3"
)

// CostEstimate is the resin cost breakdown for printing a mesh.
type CostEstimate struct {
	VolumeMM3 float64 `json:"volume_mm3"`
	VolumeCM3 float64 `json:"volume_cm3"`
	MassG     float64 `json:"mass_g"`
	MassKG    float64 `json:"mass_kg"`
	Cost      float64 `json:"cost"`
}

// EstimateResinCost computes the resin mass and cost for a mesh volume.
// volume is the mesh's enclosed volume expressed in the given unit.
func EstimateResinCost(volume float64, unit VolumeUnit, densityGCm3, pricePerKg float64) (*CostEstimate, error) {
	if densityGCm3 <= 0 {
		return nil, errdefs.InvalidParameter("resin_density_g_cm3", "must be greater than zero, got %g", densityGCm3)
	}
	if pricePerKg <= 0 {
		return nil, errdefs.InvalidParameter("resin_price_per_kg", "must be greater than zero, got %g", pricePerKg)
	}

	var volumeCM3 float64
	switch unit {
	case VolumeUnitMM3:
		volumeCM3 = volume / 1000.0
	case VolumeUnitCM3:
		volumeCM3 = volume
	default:
		return nil, errdefs.InvalidParameter("volume_unit", "must be %q or %q, got %q", VolumeUnitMM3, VolumeUnitCM3, unit)
	}

	massG := volumeCM3 * densityGCm3
	massKG := massG / 1000.0

	return &CostEstimate{
		VolumeMM3: volumeCM3 * 1000.0,
		VolumeCM3: volumeCM3,
		MassG:     massG,
		MassKG:    massKG,
		Cost:      massKG * pricePerKg,
	}, nil
}
