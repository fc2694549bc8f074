// Package plating implements the manufacturing-oriented calculators: resin
// cost estimation and electroplating process parameters. All calculators
// are pure functions of mesh statistics and user parameters; invalid inputs
// are rejected before any computation proceeds.
package plating

import (
	"fmt"
	"math"

	"github.com/alecKarfonta/electroplating/pkg/analysis"
	"github.com/alecKarfonta/electroplating/pkg/errdefs"
)

const (
	// mm2PerIn2 converts between the metric surface area of the mesh and
	// the imperial unit current densities are quoted in.
	mm2PerIn2 = 645.16

	// micronsPerInch converts plating thickness to the rate's length unit.
	micronsPerInch = 25400.0

	// electricityCostPerKWh is the fixed electricity rate used for the
	// cost estimate.
	electricityCostPerKWh = 0.12

	// defaultSolutionCostPerKg applies when no metal profile is selected.
	defaultSolutionCostPerKg = 50.0
)

// Params are the electroplating process inputs. Current densities are in
// amps per square inch, thickness in microns, metal density in g/cm³.
type Params struct {
	CurrentDensityMin       float64
	CurrentDensityMax       float64
	PlatingThicknessMicrons float64
	MetalDensityGCm3        float64
	CurrentEfficiency       float64
	Voltage                 float64
	SolutionCostPerKg       float64
}

// DefaultParams returns the documented defaults for an electroplating
// request with no explicit parameters.
func DefaultParams() Params {
	return Params{
		CurrentDensityMin:       0.07,
		CurrentDensityMax:       0.1,
		PlatingThicknessMicrons: 80.0,
		MetalDensityGCm3:        8.96,
		CurrentEfficiency:       0.95,
		Voltage:                 3.0,
		SolutionCostPerKg:       defaultSolutionCostPerKg,
	}
}

func (p Params) validate() error {
	if p.CurrentDensityMin <= 0 {
		return errdefs.InvalidParameter("current_density_min", "must be greater than zero, got %g", p.CurrentDensityMin)
	}
	if p.CurrentDensityMax <= 0 {
		return errdefs.InvalidParameter("current_density_max", "must be greater than zero, got %g", p.CurrentDensityMax)
	}
	if p.CurrentDensityMin > p.CurrentDensityMax {
		return errdefs.InvalidParameter("current_density_min", "must not exceed current_density_max (%g > %g)", p.CurrentDensityMin, p.CurrentDensityMax)
	}
	if p.PlatingThicknessMicrons <= 0 {
		return errdefs.InvalidParameter("plating_thickness_microns", "must be greater than zero, got %g", p.PlatingThicknessMicrons)
	}
	if p.MetalDensityGCm3 <= 0 {
		return errdefs.InvalidParameter("metal_density_g_cm3", "must be greater than zero, got %g", p.MetalDensityGCm3)
	}
	if p.CurrentEfficiency <= 0 || p.CurrentEfficiency > 1 {
		return errdefs.InvalidParameter("current_efficiency", "must be in (0, 1], got %g", p.CurrentEfficiency)
	}
	if p.Voltage <= 0 {
		return errdefs.InvalidParameter("voltage", "must be greater than zero, got %g", p.Voltage)
	}
	if p.SolutionCostPerKg <= 0 {
		return errdefs.InvalidParameter("solution_cost_per_kg", "must be greater than zero, got %g", p.SolutionCostPerKg)
	}
	return nil
}

// SurfaceAreaInfo reports the plated surface area in all unit systems the
// calculation touches.
type SurfaceAreaInfo struct {
	MM2 float64 `json:"mm2"`
	CM2 float64 `json:"cm2"`
	In2 float64 `json:"in2"`
}

// DensityRange reports the current density band the amp figures derive from.
type DensityRange struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Recommended float64 `json:"recommended"`
}

// CurrentRequirements reports the amperage band for the plated area.
type CurrentRequirements struct {
	MinAmps             float64      `json:"min_amps"`
	MaxAmps             float64      `json:"max_amps"`
	RecommendedAmps     float64      `json:"recommended_amps"`
	CurrentDensityRange DensityRange `json:"current_density_range"`
}

// PlatingParameters reports thickness, rate and derived process time.
type PlatingParameters struct {
	ThicknessMicrons        float64 `json:"thickness_microns"`
	ThicknessInches         float64 `json:"thickness_inches"`
	PlatingTimeMinutes      float64 `json:"plating_time_minutes"`
	PlatingTimeHours        float64 `json:"plating_time_hours"`
	PlatingRateInchesPerMin float64 `json:"plating_rate_inches_per_min"`
}

// MaterialRequirements reports the metal mass and volume to be deposited.
type MaterialRequirements struct {
	MetalMassG       float64 `json:"metal_mass_g"`
	MetalMassKG      float64 `json:"metal_mass_kg"`
	MetalVolumeCM3   float64 `json:"metal_volume_cm3"`
	MetalDensityGCm3 float64 `json:"metal_density_g_cm3"`
}

// PowerRequirements reports the electrical demand of the process.
type PowerRequirements struct {
	Voltage    float64 `json:"voltage"`
	PowerWatts float64 `json:"power_watts"`
	EnergyWH   float64 `json:"energy_wh"`
	EnergyKWH  float64 `json:"energy_kwh"`
}

// CostEstimates reports the process cost breakdown.
type CostEstimates struct {
	ElectricityCost float64 `json:"electricity_cost"`
	SolutionCost    float64 `json:"solution_cost"`
	TotalCost       float64 `json:"total_cost"`
}

// QualityFactors reports the multiplicative corrections applied to the
// geometric coating volume.
type QualityFactors struct {
	SurfaceRoughnessFactor float64 `json:"surface_roughness_factor"`
	CoverageEfficiency     float64 `json:"coverage_efficiency"`
	CurrentEfficiency      float64 `json:"current_efficiency"`
}

// Recommendations are deterministic textual process settings derived from
// the numeric results, plus fixed process guidance.
type Recommendations struct {
	CurrentSetting      string `json:"current_setting"`
	VoltageSetting      string `json:"voltage_setting"`
	TimeSetting         string `json:"time_setting"`
	SurfacePreparation  string `json:"surface_preparation"`
	SolutionTemperature string `json:"solution_temperature"`
	Agitation           string `json:"agitation"`
}

// Estimate is the complete electroplating calculation result.
type Estimate struct {
	SurfaceArea          SurfaceAreaInfo      `json:"surface_area"`
	CurrentRequirements  CurrentRequirements  `json:"current_requirements"`
	PlatingParameters    PlatingParameters    `json:"plating_parameters"`
	MaterialRequirements MaterialRequirements `json:"material_requirements"`
	PowerRequirements    PowerRequirements    `json:"power_requirements"`
	CostEstimates        CostEstimates        `json:"cost_estimates"`
	QualityFactors       QualityFactors       `json:"quality_factors"`
	Recommendations      Recommendations      `json:"recommendations"`
}

// Calculate runs the electroplating process calculation against the mesh
// statistics. The mesh surface area is taken to be in mm².
func Calculate(stats *analysis.MeshStatistics, p Params) (*Estimate, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if stats.SurfaceArea <= 0 {
		return nil, errdefs.InvalidParameter("surface_area", "mesh surface area must be greater than zero, got %g", stats.SurfaceArea)
	}

	surfaceAreaMM2 := stats.SurfaceArea
	surfaceAreaCM2 := surfaceAreaMM2 / 100.0
	surfaceAreaIn2 := surfaceAreaMM2 / mm2PerIn2

	// Current band is proportional to the plated area.
	minAmps := surfaceAreaIn2 * p.CurrentDensityMin
	maxAmps := surfaceAreaIn2 * p.CurrentDensityMax
	recommendedAmps := (minAmps + maxAmps) / 2.0

	// Deposition rate: empirically tiered base rate by average current
	// density, derated by the current efficiency.
	densityAvg := (p.CurrentDensityMin + p.CurrentDensityMax) / 2.0
	var baseRateUmPerMin float64
	switch {
	case densityAvg <= 0.05:
		baseRateUmPerMin = 0.15 + densityAvg*2.0
	case densityAvg <= 0.1:
		baseRateUmPerMin = 0.25 + densityAvg*1.5
	default:
		baseRateUmPerMin = 0.4 + densityAvg*1.0
	}
	rateUmPerMin := baseRateUmPerMin * p.CurrentEfficiency
	rateInchesPerMin := rateUmPerMin / micronsPerInch

	thicknessInches := p.PlatingThicknessMicrons / micronsPerInch
	timeMinutes := thicknessInches / rateInchesPerMin
	timeHours := timeMinutes / 60.0

	// Metal demand: geometric coating volume corrected for microscopic
	// roughness (more area than the triangulation shows) and for coverage
	// losses on complex geometry.
	roughness := surfaceRoughnessFactor(stats)
	coverage := coverageEfficiency(stats)
	thicknessCM := p.PlatingThicknessMicrons / 10000.0
	metalVolumeCM3 := surfaceAreaCM2 * thicknessCM
	effectiveVolumeCM3 := metalVolumeCM3 * roughness / coverage
	metalMassG := effectiveVolumeCM3 * p.MetalDensityGCm3

	powerWatts := p.Voltage * recommendedAmps
	energyWH := powerWatts * timeHours
	energyKWH := energyWH / 1000.0

	electricityCost := energyKWH * electricityCostPerKWh
	solutionCost := (metalMassG / 1000.0) * p.SolutionCostPerKg

	return &Estimate{
		SurfaceArea: SurfaceAreaInfo{
			MM2: surfaceAreaMM2,
			CM2: surfaceAreaCM2,
			In2: surfaceAreaIn2,
		},
		CurrentRequirements: CurrentRequirements{
			MinAmps:         minAmps,
			MaxAmps:         maxAmps,
			RecommendedAmps: recommendedAmps,
			CurrentDensityRange: DensityRange{
				Min:         p.CurrentDensityMin,
				Max:         p.CurrentDensityMax,
				Recommended: recommendedAmps / surfaceAreaIn2,
			},
		},
		PlatingParameters: PlatingParameters{
			ThicknessMicrons:        p.PlatingThicknessMicrons,
			ThicknessInches:         thicknessInches,
			PlatingTimeMinutes:      timeMinutes,
			PlatingTimeHours:        timeHours,
			PlatingRateInchesPerMin: rateInchesPerMin,
		},
		MaterialRequirements: MaterialRequirements{
			MetalMassG:       metalMassG,
			MetalMassKG:      metalMassG / 1000.0,
			MetalVolumeCM3:   metalVolumeCM3,
			MetalDensityGCm3: p.MetalDensityGCm3,
		},
		PowerRequirements: PowerRequirements{
			Voltage:    p.Voltage,
			PowerWatts: powerWatts,
			EnergyWH:   energyWH,
			EnergyKWH:  energyKWH,
		},
		CostEstimates: CostEstimates{
			ElectricityCost: electricityCost,
			SolutionCost:    solutionCost,
			TotalCost:       electricityCost + solutionCost,
		},
		QualityFactors: QualityFactors{
			SurfaceRoughnessFactor: roughness,
			CoverageEfficiency:     coverage,
			CurrentEfficiency:      p.CurrentEfficiency,
		},
		Recommendations: Recommendations{
			CurrentSetting:      fmt.Sprintf("%.2f A", recommendedAmps),
			VoltageSetting:      fmt.Sprintf("%.1f V", p.Voltage),
			TimeSetting:         fmt.Sprintf("%.0f minutes (%.1f hours)", timeMinutes, timeHours),
			SurfacePreparation:  "Sand to 400-600 grit for best adhesion",
			SolutionTemperature: "45-55°C for optimal plating rate",
			Agitation:           "Moderate agitation recommended for uniform coverage",
		},
	}, nil
}

// MetalRecommendations bundles a metal profile with the estimate computed
// from that profile's defaults and the profile's static process tips.
type MetalRecommendations struct {
	MetalProperties      MetalProfile `json:"metal_properties"`
	CalculatedParameters *Estimate    `json:"calculated_parameters"`
	MetalSpecificTips    []string     `json:"metal_specific_tips"`
}

// Recommend looks up a metal profile and runs the electroplating
// calculation with that profile's defaults. Unknown metal names fail with
// NotFoundError.
func Recommend(stats *analysis.MeshStatistics, metal string, registry *Registry) (*MetalRecommendations, error) {
	if registry == nil {
		registry = DefaultRegistry()
	}
	profile, err := registry.Get(metal)
	if err != nil {
		return nil, err
	}

	params := DefaultParams()
	params.CurrentDensityMin = profile.CurrentDensityMin
	params.CurrentDensityMax = profile.CurrentDensityMax
	params.PlatingThicknessMicrons = profile.TypicalThicknessUm
	params.MetalDensityGCm3 = profile.DensityGCm3
	params.Voltage = profile.Voltage
	params.SolutionCostPerKg = profile.SolutionCostPerKg

	estimate, err := Calculate(stats, params)
	if err != nil {
		return nil, err
	}

	return &MetalRecommendations{
		MetalProperties:      profile,
		CalculatedParameters: estimate,
		MetalSpecificTips:    profile.Tips,
	}, nil
}

// surfaceRoughnessFactor estimates how much microscopic area exceeds the
// triangulated area, using the spread of triangle areas as a proxy.
// 1.0 is smooth; capped at 1.5.
func surfaceRoughnessFactor(stats *analysis.MeshStatistics) float64 {
	cv := 0.0
	if stats.TriangleAreas.Mean > 0 {
		cv = stats.TriangleAreas.Std / stats.TriangleAreas.Mean
	}
	return math.Min(1.0+cv*0.5, 1.5)
}

// coverageEfficiency estimates how uniformly a shape plates versus a flat
// reference, using aspect ratio and surface-to-volume ratio as complexity
// proxies. Range [0.7, 1.0].
func coverageEfficiency(stats *analysis.MeshStatistics) float64 {
	aspect := 1.0
	if stats.AspectRatio.IsDefined() {
		aspect = float64(stats.AspectRatio)
	}
	sav := 0.0
	if stats.SurfaceAreaToVolumeRatio.IsDefined() {
		sav = float64(stats.SurfaceAreaToVolumeRatio)
	}

	aspectFactor := math.Min(aspect/10.0, 1.0)
	savFactor := math.Min(sav/10.0, 1.0)
	return math.Max(1.0-aspectFactor*0.15-savFactor*0.15, 0.7)
}
