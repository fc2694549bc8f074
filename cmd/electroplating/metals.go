package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alecKarfonta/electroplating/pkg/analysis"
	"github.com/alecKarfonta/electroplating/pkg/plating"
)

var (
	metalsProfilesFile string
	metalsJSON         bool
)

var metalsCmd = &cobra.Command{
	Use:   "metals [metal] [file]",
	Short: "List metal profiles or get metal-specific plating recommendations",
	Long: `With no arguments, list the registered plating metals and their process
constants. With a metal name and an STL file, compute a full electroplating
estimate using that metal's profile defaults, plus its process tips.

Additional metals can be registered through a TOML profile file:

    [metals.rhodium]
    density_g_cm3 = 12.41
    current_density_min = 0.01
    ...`,
	Args: cobra.MaximumNArgs(2),
	Run:  runMetals,
}

func init() {
	rootCmd.AddCommand(metalsCmd)

	metalsCmd.Flags().StringVar(&metalsProfilesFile, "profiles", "", "TOML file extending the built-in metal profiles")
	metalsCmd.Flags().BoolVar(&metalsJSON, "json", false, "Output as JSON")
}

func runMetals(cmd *cobra.Command, args []string) {
	registry := plating.DefaultRegistry()
	if metalsProfilesFile != "" {
		loaded, err := plating.LoadRegistry(metalsProfilesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		registry = loaded
	}

	switch len(args) {
	case 0:
		listMetals(registry)
	case 2:
		recommendMetal(registry, args[0], args[1])
	default:
		fmt.Fprintln(os.Stderr, "Error: recommendations need both a metal name and an STL file")
		os.Exit(1)
	}
}

func listMetals(registry *plating.Registry) {
	if metalsJSON {
		profiles := make(map[string]plating.MetalProfile)
		for _, name := range registry.Names() {
			profile, _ := registry.Get(name)
			profiles[name] = profile
		}
		printJSON(profiles)
		return
	}

	fmt.Println("Registered Plating Metals")
	fmt.Println("=========================")
	for _, name := range registry.Names() {
		profile, _ := registry.Get(name)
		fmt.Printf("\n%s:\n", name)
		fmt.Printf("  Density: %.2f g/cm³\n", profile.DensityGCm3)
		fmt.Printf("  Current density: %.2f - %.2f A/in²\n", profile.CurrentDensityMin, profile.CurrentDensityMax)
		fmt.Printf("  Voltage: %.1f V\n", profile.Voltage)
		fmt.Printf("  Typical thickness: %.1f µm\n", profile.TypicalThicknessUm)
		fmt.Printf("  Solution cost: %.0f per kg\n", profile.SolutionCostPerKg)
		fmt.Printf("  Finish: %s, %s, corrosion resistance %s\n", profile.Color, profile.Hardness, profile.CorrosionResistance)
	}
}

func recommendMetal(registry *plating.Registry, metal, filename string) {
	mesh := loadMesh(filename)
	stats := analysis.Analyze(mesh)

	recommendations, err := plating.Recommend(stats, metal, registry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if metalsJSON {
		printJSON(recommendations)
		return
	}

	fmt.Printf("Recommendations for %s plating\n", metal)
	fmt.Println("==============================")
	fmt.Printf("Color: %s  Hardness: %s  Corrosion resistance: %s\n\n",
		recommendations.MetalProperties.Color,
		recommendations.MetalProperties.Hardness,
		recommendations.MetalProperties.CorrosionResistance)

	printEstimate(recommendations.CalculatedParameters)

	fmt.Println("\nMetal-specific tips:")
	for _, tip := range recommendations.MetalSpecificTips {
		fmt.Printf("  - %s\n", tip)
	}
}
