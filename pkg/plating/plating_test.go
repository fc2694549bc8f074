package plating

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alecKarfonta/electroplating/pkg/analysis"
	"github.com/alecKarfonta/electroplating/pkg/errdefs"
)

// flatStats builds statistics for a simple, well-behaved mesh with the
// given surface area in mm². Volume scales with area so the complexity
// proxies (aspect ratio, SA:V) stay fixed.
func flatStats(surfaceAreaMM2 float64) *analysis.MeshStatistics {
	return &analysis.MeshStatistics{
		TriangleCount:            12,
		VertexCount:              8,
		SurfaceArea:              surfaceAreaMM2,
		Volume:                   surfaceAreaMM2 / 6.0,
		AspectRatio:              analysis.Ratio(1.0),
		SurfaceAreaToVolumeRatio: analysis.Ratio(6.0),
		TriangleAreas: analysis.Distribution{
			Min:  surfaceAreaMM2 / 12,
			Max:  surfaceAreaMM2 / 12,
			Mean: surfaceAreaMM2 / 12,
			Std:  0,
		},
	}
}

func copperParams() Params {
	return Params{
		CurrentDensityMin:       0.07,
		CurrentDensityMax:       0.10,
		PlatingThicknessMicrons: 80.0,
		MetalDensityGCm3:        8.96,
		CurrentEfficiency:       0.95,
		Voltage:                 3.0,
		SolutionCostPerKg:       30.0,
	}
}

func TestDefaultParams(t *testing.T) {
	defaults := DefaultParams()

	// The generic defaults describe copper plating.
	assert.Equal(t, 0.07, defaults.CurrentDensityMin)
	assert.Equal(t, 0.1, defaults.CurrentDensityMax)
	assert.Equal(t, 80.0, defaults.PlatingThicknessMicrons)
	assert.Equal(t, 8.96, defaults.MetalDensityGCm3)
	assert.Equal(t, 0.95, defaults.CurrentEfficiency)
	assert.Equal(t, 3.0, defaults.Voltage)
	require.NoError(t, defaults.validate())
}

func TestCalculateCopperDefaults(t *testing.T) {
	stats := flatStats(1000.0)

	estimate, err := Calculate(stats, copperParams())
	require.NoError(t, err)

	areaIn2 := 1000.0 / 645.16
	assert.InEpsilon(t, areaIn2, estimate.SurfaceArea.In2, 1e-9)
	assert.InEpsilon(t, 10.0, estimate.SurfaceArea.CM2, 1e-9)

	// Amps are proportional to the converted area.
	assert.InEpsilon(t, areaIn2*0.07, estimate.CurrentRequirements.MinAmps, 1e-9)
	assert.InEpsilon(t, areaIn2*0.10, estimate.CurrentRequirements.MaxAmps, 1e-9)
	assert.InEpsilon(t, areaIn2*0.085, estimate.CurrentRequirements.RecommendedAmps, 1e-9)
	assert.InEpsilon(t, 0.085, estimate.CurrentRequirements.CurrentDensityRange.Recommended, 1e-9)

	// Average density 0.085 sits in the standard tier:
	// (0.25 + 0.085*1.5) * 0.95 µm/min.
	wantRate := (0.25 + 0.085*1.5) * 0.95
	assert.InEpsilon(t, wantRate/25400.0, estimate.PlatingParameters.PlatingRateInchesPerMin, 1e-9)
	assert.InEpsilon(t, 80.0/wantRate, estimate.PlatingParameters.PlatingTimeMinutes, 1e-9)
	assert.InEpsilon(t, estimate.PlatingParameters.PlatingTimeMinutes/60.0, estimate.PlatingParameters.PlatingTimeHours, 1e-9)

	// Geometric coating volume: 10 cm² × 80 µm.
	assert.InEpsilon(t, 10.0*0.008, estimate.MaterialRequirements.MetalVolumeCM3, 1e-9)

	assert.InEpsilon(t, 3.0*estimate.CurrentRequirements.RecommendedAmps, estimate.PowerRequirements.PowerWatts, 1e-9)
	assert.InEpsilon(t, estimate.PowerRequirements.EnergyWH/1000.0, estimate.PowerRequirements.EnergyKWH, 1e-9)
	assert.InEpsilon(t,
		estimate.CostEstimates.ElectricityCost+estimate.CostEstimates.SolutionCost,
		estimate.CostEstimates.TotalCost, 1e-9)

	assert.Equal(t, 0.95, estimate.QualityFactors.CurrentEfficiency)
	assert.GreaterOrEqual(t, estimate.QualityFactors.CoverageEfficiency, 0.7)
	assert.LessOrEqual(t, estimate.QualityFactors.CoverageEfficiency, 1.0)
}

func TestCalculateMassScalesLinearlyWithArea(t *testing.T) {
	params := copperParams()

	single, err := Calculate(flatStats(1000.0), params)
	require.NoError(t, err)
	double, err := Calculate(flatStats(2000.0), params)
	require.NoError(t, err)

	assert.InEpsilon(t, 2.0*single.MaterialRequirements.MetalMassG, double.MaterialRequirements.MetalMassG, 1e-9)
}

func TestCalculateZeroSurfaceArea(t *testing.T) {
	stats := &analysis.MeshStatistics{
		SurfaceArea:              0,
		AspectRatio:              analysis.Ratio(math.Inf(1)),
		SurfaceAreaToVolumeRatio: analysis.Ratio(math.NaN()),
	}

	_, err := Calculate(stats, copperParams())
	var invalid *errdefs.InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "surface_area", invalid.Param)
}

func TestCalculateParameterValidation(t *testing.T) {
	stats := flatStats(1000.0)

	cases := []struct {
		param  string
		mutate func(*Params)
	}{
		{"current_density_min", func(p *Params) { p.CurrentDensityMin = 0 }},
		{"current_density_max", func(p *Params) { p.CurrentDensityMax = -0.1 }},
		{"current_density_min", func(p *Params) { p.CurrentDensityMin = 0.2 }},
		{"plating_thickness_microns", func(p *Params) { p.PlatingThicknessMicrons = 0 }},
		{"metal_density_g_cm3", func(p *Params) { p.MetalDensityGCm3 = -1 }},
		{"current_efficiency", func(p *Params) { p.CurrentEfficiency = 1.2 }},
		{"current_efficiency", func(p *Params) { p.CurrentEfficiency = 0 }},
		{"voltage", func(p *Params) { p.Voltage = 0 }},
	}

	for _, tc := range cases {
		params := copperParams()
		tc.mutate(&params)

		_, err := Calculate(stats, params)
		var invalid *errdefs.InvalidParameterError
		require.ErrorAsf(t, err, &invalid, "mutating %s", tc.param)
		assert.Equal(t, tc.param, invalid.Param)
	}
}

func TestRecommendCopper(t *testing.T) {
	stats := flatStats(1000.0)

	recommendations, err := Recommend(stats, "Copper", nil)
	require.NoError(t, err)

	assert.Equal(t, 8.96, recommendations.MetalProperties.DensityGCm3)
	assert.NotEmpty(t, recommendations.MetalSpecificTips)

	// The estimate must use the profile's defaults, not the generic ones.
	estimate := recommendations.CalculatedParameters
	assert.InEpsilon(t, 20.0, estimate.PlatingParameters.ThicknessMicrons, 1e-9)
	assert.InEpsilon(t, 3.0, estimate.PowerRequirements.Voltage, 1e-9)
	assert.InEpsilon(t, 8.96, estimate.MaterialRequirements.MetalDensityGCm3, 1e-9)
}

func TestRecommendUnknownMetal(t *testing.T) {
	_, err := Recommend(flatStats(1000.0), "unobtainium", nil)

	var notFound *errdefs.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "unobtainium", notFound.Name)
}

func TestQualityFactorsComplexShape(t *testing.T) {
	// High aspect ratio and high SA:V must reduce coverage efficiency,
	// but never below the 0.7 floor.
	stats := flatStats(1000.0)
	stats.AspectRatio = analysis.Ratio(50.0)
	stats.SurfaceAreaToVolumeRatio = analysis.Ratio(100.0)

	estimate, err := Calculate(stats, copperParams())
	require.NoError(t, err)

	assert.InDelta(t, 0.7, estimate.QualityFactors.CoverageEfficiency, 1e-9)
}
