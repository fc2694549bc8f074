package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alecKarfonta/electroplating/pkg/analysis"
	"github.com/alecKarfonta/electroplating/pkg/plating"
)

var (
	costDensity float64
	costPrice   float64
	costUnit    string
	costJSON    bool
)

var costCmd = &cobra.Command{
	Use:   "cost [file]",
	Short: "Estimate the resin cost of printing a mesh",
	Long: `Estimate the resin mass and cost for printing the mesh, from the enclosed
volume, the resin density, and its price per kilogram.`,
	Args: cobra.ExactArgs(1),
	Run:  runCost,
}

func init() {
	rootCmd.AddCommand(costCmd)

	costCmd.Flags().Float64VarP(&costDensity, "density", "d", 1.1, "Resin density in g/cm³")
	costCmd.Flags().Float64VarP(&costPrice, "price", "p", 0, "Resin price per kg (required)")
	costCmd.Flags().StringVarP(&costUnit, "unit", "u", "mm3", "Unit the mesh volume is in (mm3 or cm3)")
	costCmd.Flags().BoolVar(&costJSON, "json", false, "Output the estimate as JSON")
	costCmd.MarkFlagRequired("price")
}

func runCost(cmd *cobra.Command, args []string) {
	filename := args[0]

	mesh := loadMesh(filename)
	volume := analysis.Volume(mesh)

	estimate, err := plating.EstimateResinCost(volume, plating.VolumeUnit(costUnit), costDensity, costPrice)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if costJSON {
		printJSON(estimate)
		return
	}

	fmt.Println("Resin Cost Estimate")
	fmt.Println("===================")
	fmt.Printf("Volume: %.3f mm³ (%.3f cm³)\n", estimate.VolumeMM3, estimate.VolumeCM3)
	fmt.Printf("Mass: %.3f g (%.6f kg)\n", estimate.MassG, estimate.MassKG)
	fmt.Printf("Cost: %.2f\n", estimate.Cost)
}
