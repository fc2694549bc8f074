package plating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alecKarfonta/electroplating/pkg/errdefs"
)

func TestEstimateResinCostMM3(t *testing.T) {
	// 10,000 mm³ of resin at 1.1 g/cm³ and 50/kg:
	// 10 cm³ → 11 g → 0.011 kg → 0.55.
	estimate, err := EstimateResinCost(10000.0, VolumeUnitMM3, 1.1, 50.0)
	require.NoError(t, err)

	assert.InDelta(t, 10000.0, estimate.VolumeMM3, 1e-9)
	assert.InDelta(t, 10.0, estimate.VolumeCM3, 1e-9)
	assert.InDelta(t, 11.0, estimate.MassG, 1e-9)
	assert.InDelta(t, 0.011, estimate.MassKG, 1e-9)
	assert.InDelta(t, 0.55, estimate.Cost, 1e-9)
}

func TestEstimateResinCostCM3(t *testing.T) {
	estimate, err := EstimateResinCost(10.0, VolumeUnitCM3, 1.1, 50.0)
	require.NoError(t, err)

	// Both unit views must describe the same volume regardless of the
	// input unit.
	assert.InDelta(t, 10000.0, estimate.VolumeMM3, 1e-9)
	assert.InDelta(t, 10.0, estimate.VolumeCM3, 1e-9)
	assert.InDelta(t, 0.55, estimate.Cost, 1e-9)
}

func TestEstimateResinCostInvalidParams(t *testing.T) {
	cases := []struct {
		name    string
		run     func() (*CostEstimate, error)
		wantArg string
	}{
		{
			name:    "zero density",
			run:     func() (*CostEstimate, error) { return EstimateResinCost(10.0, VolumeUnitCM3, 0, 50.0) },
			wantArg: "resin_density_g_cm3",
		},
		{
			name:    "negative price",
			run:     func() (*CostEstimate, error) { return EstimateResinCost(10.0, VolumeUnitCM3, 1.1, -5) },
			wantArg: "resin_price_per_kg",
		},
		{
			name:    "unknown unit",
			run:     func() (*CostEstimate, error) { return EstimateResinCost(10.0, VolumeUnit("liters"), 1.1, 50.0) },
			wantArg: "volume_unit",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.run()
			var invalid *errdefs.InvalidParameterError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.wantArg, invalid.Param)
		})
	}
}
