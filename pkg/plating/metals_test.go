package plating

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alecKarfonta/electroplating/pkg/errdefs"
)

func TestRegistryGet(t *testing.T) {
	registry := DefaultRegistry()

	profile, err := registry.Get("copper")
	require.NoError(t, err)
	assert.Equal(t, 8.96, profile.DensityGCm3)
	assert.Len(t, profile.Tips, 5)

	// Lookups are case-insensitive.
	upper, err := registry.Get("COPPER")
	require.NoError(t, err)
	assert.Equal(t, profile, upper)
}

func TestRegistryGetUnknown(t *testing.T) {
	_, err := DefaultRegistry().Get("unobtainium")

	var notFound *errdefs.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "metal", notFound.Kind)
	assert.Equal(t, "unobtainium", notFound.Name)
}

func TestRegistryNames(t *testing.T) {
	names := DefaultRegistry().Names()
	assert.Equal(t, []string{"chrome", "copper", "gold", "nickel", "silver"}, names)
}

func TestLoadRegistryOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metals.toml")
	overlay := `
[metals.rhodium]
density_g_cm3 = 12.41
current_density_min = 0.02
current_density_max = 0.04
voltage = 4.0
plating_rate_microns_per_min = 0.1
solution_cost_per_kg = 3000.0
color = "Bright white"
hardness = "Very hard"
corrosion_resistance = "Excellent"
typical_thickness_microns = 2.0
tips = ["Flash plating only"]

[metals.copper]
density_g_cm3 = 8.96
current_density_min = 0.05
current_density_max = 0.08
voltage = 2.5
plating_rate_microns_per_min = 0.45
solution_cost_per_kg = 25.0
color = "Reddish-brown"
hardness = "Soft"
corrosion_resistance = "Good"
typical_thickness_microns = 20.0
tips = ["House formulation"]
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	registry, err := LoadRegistry(path)
	require.NoError(t, err)

	// New metals are added and overlay entries replace built-ins.
	rhodium, err := registry.Get("rhodium")
	require.NoError(t, err)
	assert.Equal(t, 12.41, rhodium.DensityGCm3)

	copper, err := registry.Get("copper")
	require.NoError(t, err)
	assert.Equal(t, 2.5, copper.Voltage)

	// Untouched built-ins survive the overlay.
	nickel, err := registry.Get("nickel")
	require.NoError(t, err)
	assert.Equal(t, 8.9, nickel.DensityGCm3)

	// The shared default registry itself is never mutated.
	builtin, err := DefaultRegistry().Get("copper")
	require.NoError(t, err)
	assert.Equal(t, 3.0, builtin.Voltage)
	_, err = DefaultRegistry().Get("rhodium")
	assert.Error(t, err)
}

func TestLoadRegistryErrors(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[metals.copper\n"), 0o644))
	_, err = LoadRegistry(path)
	assert.Error(t, err)
}
