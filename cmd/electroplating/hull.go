package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alecKarfonta/electroplating/pkg/analysis"
)

var hullJSON bool

var hullCmd = &cobra.Command{
	Use:   "hull [file]",
	Short: "Compute the convex hull volume of a mesh",
	Long: `Compute the volume of the convex hull of the mesh's vertices. Unlike the
enclosed volume this does not require a closed, consistently wound mesh, so
it gives a usable size figure for open or damaged meshes.`,
	Args: cobra.ExactArgs(1),
	Run:  runHull,
}

func init() {
	rootCmd.AddCommand(hullCmd)

	hullCmd.Flags().BoolVar(&hullJSON, "json", false, "Output the volume as JSON")
}

func runHull(cmd *cobra.Command, args []string) {
	mesh := loadMesh(args[0])
	volume := analysis.ConvexHullVolume(mesh)

	if hullJSON {
		printJSON(map[string]float64{"convex_hull_volume": volume})
		return
	}

	fmt.Printf("Convex hull volume: %.6f cubic units\n", volume)
}
