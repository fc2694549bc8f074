package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alecKarfonta/electroplating/pkg/analysis"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about an STL file",
	Long:  "Show basic information including dimensions, triangle count, surface area, and volume.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	mesh := loadMesh(filename)
	stats := analysis.Analyze(mesh)

	fmt.Println("STL File Information")
	fmt.Println("====================")
	if mesh.Name != "" {
		fmt.Printf("Name: %s\n", mesh.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Mesh:")
	fmt.Printf("  Triangles: %d\n", stats.TriangleCount)
	fmt.Printf("  Unique vertices: %d\n", stats.VertexCount)
	fmt.Printf("  Surface area: %.6f square units\n", stats.SurfaceArea)
	fmt.Printf("  Volume: %.6f cubic units\n\n", stats.Volume)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", formatVector(stats.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", formatVector(stats.BoundingBox.Max))
	fmt.Printf("  Dimensions: %s\n\n", formatVector(stats.BoundingBox.Dimensions))

	fmt.Printf("Center of mass: %s\n", formatVector(stats.CenterOfMass))
	if stats.AspectRatio.IsDefined() {
		fmt.Printf("Aspect ratio: %.3f\n", float64(stats.AspectRatio))
	} else {
		fmt.Println("Aspect ratio: undefined (flat mesh)")
	}
}
