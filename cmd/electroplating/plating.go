package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alecKarfonta/electroplating/pkg/analysis"
	"github.com/alecKarfonta/electroplating/pkg/plating"
)

var (
	platingParams plating.Params
	platingJSON   bool
)

var platingCmd = &cobra.Command{
	Use:   "plating [file]",
	Short: "Calculate electroplating process parameters for a mesh",
	Long: `Calculate the current, time, metal mass, power, and cost required to
electroplate the mesh surface. Current densities are in amps per square inch,
thickness in microns. All parameters have sensible defaults.`,
	Args: cobra.ExactArgs(1),
	Run:  runPlating,
}

func init() {
	rootCmd.AddCommand(platingCmd)

	defaults := plating.DefaultParams()
	platingCmd.Flags().Float64Var(&platingParams.CurrentDensityMin, "density-min", defaults.CurrentDensityMin, "Minimum current density (A/in²)")
	platingCmd.Flags().Float64Var(&platingParams.CurrentDensityMax, "density-max", defaults.CurrentDensityMax, "Maximum current density (A/in²)")
	platingCmd.Flags().Float64VarP(&platingParams.PlatingThicknessMicrons, "thickness", "t", defaults.PlatingThicknessMicrons, "Plating thickness (µm)")
	platingCmd.Flags().Float64Var(&platingParams.MetalDensityGCm3, "metal-density", defaults.MetalDensityGCm3, "Plating metal density (g/cm³)")
	platingCmd.Flags().Float64VarP(&platingParams.CurrentEfficiency, "efficiency", "e", defaults.CurrentEfficiency, "Current efficiency (0-1]")
	platingCmd.Flags().Float64VarP(&platingParams.Voltage, "voltage", "v", defaults.Voltage, "Operating voltage (V)")
	platingCmd.Flags().Float64Var(&platingParams.SolutionCostPerKg, "solution-cost", defaults.SolutionCostPerKg, "Plating solution cost per kg")
	platingCmd.Flags().BoolVar(&platingJSON, "json", false, "Output the estimate as JSON")
}

func runPlating(cmd *cobra.Command, args []string) {
	filename := args[0]

	mesh := loadMesh(filename)
	stats := analysis.Analyze(mesh)

	estimate, err := plating.Calculate(stats, platingParams)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if platingJSON {
		printJSON(estimate)
		return
	}

	printEstimate(estimate)
}

func printEstimate(estimate *plating.Estimate) {
	fmt.Println("Electroplating Estimate")
	fmt.Println("=======================")
	fmt.Printf("Surface area: %.3f mm² (%.3f cm², %.4f in²)\n\n",
		estimate.SurfaceArea.MM2, estimate.SurfaceArea.CM2, estimate.SurfaceArea.In2)

	fmt.Println("Current:")
	fmt.Printf("  Range: %.3f - %.3f A\n", estimate.CurrentRequirements.MinAmps, estimate.CurrentRequirements.MaxAmps)
	fmt.Printf("  Recommended: %.3f A\n\n", estimate.CurrentRequirements.RecommendedAmps)

	fmt.Println("Plating:")
	fmt.Printf("  Thickness: %.1f µm\n", estimate.PlatingParameters.ThicknessMicrons)
	fmt.Printf("  Time: %.0f minutes (%.1f hours)\n\n", estimate.PlatingParameters.PlatingTimeMinutes, estimate.PlatingParameters.PlatingTimeHours)

	fmt.Println("Material:")
	fmt.Printf("  Metal mass: %.3f g\n", estimate.MaterialRequirements.MetalMassG)
	fmt.Printf("  Metal volume: %.4f cm³\n\n", estimate.MaterialRequirements.MetalVolumeCM3)

	fmt.Println("Power:")
	fmt.Printf("  %.1f V, %.2f W, %.3f kWh\n\n", estimate.PowerRequirements.Voltage, estimate.PowerRequirements.PowerWatts, estimate.PowerRequirements.EnergyKWH)

	fmt.Println("Cost:")
	fmt.Printf("  Electricity: %.4f\n", estimate.CostEstimates.ElectricityCost)
	fmt.Printf("  Solution: %.4f\n", estimate.CostEstimates.SolutionCost)
	fmt.Printf("  Total: %.4f\n\n", estimate.CostEstimates.TotalCost)

	fmt.Println("Quality factors:")
	fmt.Printf("  Surface roughness factor: %.3f\n", estimate.QualityFactors.SurfaceRoughnessFactor)
	fmt.Printf("  Coverage efficiency: %.3f\n", estimate.QualityFactors.CoverageEfficiency)
	fmt.Printf("  Current efficiency: %.3f\n\n", estimate.QualityFactors.CurrentEfficiency)

	fmt.Println("Recommended settings:")
	fmt.Printf("  Current: %s\n", estimate.Recommendations.CurrentSetting)
	fmt.Printf("  Voltage: %s\n", estimate.Recommendations.VoltageSetting)
	fmt.Printf("  Time: %s\n", estimate.Recommendations.TimeSetting)
	fmt.Printf("  Surface prep: %s\n", estimate.Recommendations.SurfacePreparation)
	fmt.Printf("  Solution temp: %s\n", estimate.Recommendations.SolutionTemperature)
	fmt.Printf("  Agitation: %s\n", estimate.Recommendations.Agitation)
}
