package plating

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/alecKarfonta/electroplating/pkg/errdefs"
)

// MetalProfile holds the physical and process constants for one plating
// metal. Field names are the contract surface other components bind to.
type MetalProfile struct {
	DensityGCm3         float64  `json:"density_g_cm3" toml:"density_g_cm3"`
	CurrentDensityMin   float64  `json:"current_density_min" toml:"current_density_min"`
	CurrentDensityMax   float64  `json:"current_density_max" toml:"current_density_max"`
	Voltage             float64  `json:"voltage" toml:"voltage"`
	PlatingRateUmPerMin float64  `json:"plating_rate_microns_per_min" toml:"plating_rate_microns_per_min"`
	SolutionCostPerKg   float64  `json:"solution_cost_per_kg" toml:"solution_cost_per_kg"`
	Color               string   `json:"color" toml:"color"`
	Hardness            string   `json:"hardness" toml:"hardness"`
	CorrosionResistance string   `json:"corrosion_resistance" toml:"corrosion_resistance"`
	TypicalThicknessUm  float64  `json:"typical_thickness_microns" toml:"typical_thickness_microns"`
	Tips                []string `json:"tips" toml:"tips"`
}

// Registry is an immutable collection of metal profiles. The built-in
// registry is constructed once at package init and shared read-only;
// loading an overlay file produces a new Registry rather than mutating it.
type Registry struct {
	profiles map[string]MetalProfile
}

// Get returns the profile for a metal name (case-insensitive).
func (r *Registry) Get(name string) (MetalProfile, error) {
	profile, ok := r.profiles[strings.ToLower(name)]
	if !ok {
		return MetalProfile{}, errdefs.NotFound("metal", name)
	}
	return profile, nil
}

// Names returns the registered metal names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = &Registry{profiles: builtinProfiles()}

// DefaultRegistry returns the process-wide registry of built-in profiles.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// registryFile is the TOML shape of a profile overlay file:
//
//	[metals.rhodium]
//	density_g_cm3 = 12.41
//	...
type registryFile struct {
	Metals map[string]MetalProfile `toml:"metals"`
}

// LoadRegistry builds a new registry from a TOML overlay file. Entries
// extend or replace the built-ins; the built-in registry itself is never
// modified.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metal profiles: %w", err)
	}

	var file registryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse metal profiles: %w", err)
	}

	profiles := builtinProfiles()
	for name, profile := range file.Metals {
		profiles[strings.ToLower(name)] = profile
	}
	return &Registry{profiles: profiles}, nil
}

func builtinProfiles() map[string]MetalProfile {
	return map[string]MetalProfile{
		"copper": {
			DensityGCm3:         8.96,
			CurrentDensityMin:   0.07,
			CurrentDensityMax:   0.1,
			Voltage:             3.0,
			PlatingRateUmPerMin: 0.45,
			SolutionCostPerKg:   30.0,
			Color:               "Reddish-brown",
			Hardness:            "Soft",
			CorrosionResistance: "Good",
			TypicalThicknessUm:  20.0,
			Tips: []string{
				"Excellent base layer for other metals",
				"Use cyanide-free solutions for safety",
				"Maintain pH between 8.5-9.5",
				"Temperature: 25-35°C",
				"Plating time calculated based on thickness and current density",
			},
		},
		"nickel": {
			DensityGCm3:         8.9,
			CurrentDensityMin:   0.07,
			CurrentDensityMax:   0.1,
			Voltage:             6.0,
			PlatingRateUmPerMin: 0.4,
			SolutionCostPerKg:   50.0,
			Color:               "Silver-gray",
			Hardness:            "Hard",
			CorrosionResistance: "Excellent",
			TypicalThicknessUm:  25.0,
			Tips: []string{
				"Use bright nickel for decorative finish",
				"Consider semi-bright nickel for better adhesion",
				"Maintain pH between 3.5-4.5",
				"Temperature: 45-55°C",
				"Plating time calculated based on thickness and current density",
			},
		},
		"chrome": {
			DensityGCm3:         7.19,
			CurrentDensityMin:   0.1,
			CurrentDensityMax:   0.15,
			Voltage:             12.0,
			PlatingRateUmPerMin: 0.25,
			SolutionCostPerKg:   80.0,
			Color:               "Bright silver",
			Hardness:            "Very hard",
			CorrosionResistance: "Excellent",
			TypicalThicknessUm:  15.0,
			Tips: []string{
				"Requires bright nickel underlayer",
				"Use hexavalent chrome for decorative finish",
				"Maintain temperature: 45-55°C",
				"High current efficiency required",
				"Plating time calculated based on thickness and current density",
			},
		},
		"gold": {
			DensityGCm3:         19.32,
			CurrentDensityMin:   0.02,
			CurrentDensityMax:   0.05,
			Voltage:             3.0,
			PlatingRateUmPerMin: 0.15,
			SolutionCostPerKg:   2000.0,
			Color:               "Yellow",
			Hardness:            "Soft",
			CorrosionResistance: "Excellent",
			TypicalThicknessUm:  5.0,
			Tips: []string{
				"Use bright gold for decorative finish",
				"Consider flash gold for cost savings",
				"Maintain pH between 4.0-5.0",
				"Temperature: 25-35°C",
				"Plating time calculated based on thickness and current density",
			},
		},
		"silver": {
			DensityGCm3:         10.49,
			CurrentDensityMin:   0.03,
			CurrentDensityMax:   0.06,
			Voltage:             2.0,
			PlatingRateUmPerMin: 0.2,
			SolutionCostPerKg:   500.0,
			Color:               "Bright silver",
			Hardness:            "Soft",
			CorrosionResistance: "Good",
			TypicalThicknessUm:  10.0,
			Tips: []string{
				"Excellent conductivity",
				"Use bright silver for decorative finish",
				"Maintain pH between 8.0-9.0",
				"Temperature: 25-35°C",
				"Plating time calculated based on thickness and current density",
			},
		},
	}
}
