package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alecKarfonta/electroplating/pkg/analysis"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Compute full mesh statistics",
	Long: `Compute the complete statistics for an STL mesh: surface area, enclosed
volume, center of mass, bounding box, triangle area and edge length
distributions, aspect ratio, and surface-area-to-volume ratio.`,
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output statistics as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	filename := args[0]

	mesh := loadMesh(filename)
	stats := analysis.Analyze(mesh)

	if analyzeJSON {
		printJSON(stats)
		return
	}

	fmt.Println("Mesh Statistics")
	fmt.Println("===============")
	fmt.Printf("Triangles: %d\n", stats.TriangleCount)
	fmt.Printf("Unique vertices: %d\n", stats.VertexCount)
	fmt.Printf("Surface area: %.6f square units\n", stats.SurfaceArea)
	fmt.Printf("Volume: %.6f cubic units\n", stats.Volume)
	fmt.Printf("Center of mass: %s\n\n", formatVector(stats.CenterOfMass))

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", formatVector(stats.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", formatVector(stats.BoundingBox.Max))
	fmt.Printf("  Dimensions: %s\n\n", formatVector(stats.BoundingBox.Dimensions))

	fmt.Println("Triangle Areas:")
	printDistribution(stats.TriangleAreas, "square units")
	fmt.Println("Edge Lengths:")
	printDistribution(stats.EdgeLengths, "units")

	if stats.AspectRatio.IsDefined() {
		fmt.Printf("Aspect ratio: %.3f\n", float64(stats.AspectRatio))
	} else {
		fmt.Println("Aspect ratio: undefined (flat mesh)")
	}
	if stats.SurfaceAreaToVolumeRatio.IsDefined() {
		fmt.Printf("Surface area / volume: %.3f\n", float64(stats.SurfaceAreaToVolumeRatio))
	} else {
		fmt.Println("Surface area / volume: undefined (zero volume)")
	}
}

func printDistribution(d analysis.Distribution, unit string) {
	fmt.Printf("  Minimum: %.6f %s\n", d.Min, unit)
	fmt.Printf("  Maximum: %.6f %s\n", d.Max, unit)
	fmt.Printf("  Mean: %.6f %s\n", d.Mean, unit)
	fmt.Printf("  Std dev: %.6f %s\n\n", d.Std, unit)
}
