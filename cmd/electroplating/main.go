package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alecKarfonta/electroplating/pkg/stl"
	"github.com/alecKarfonta/electroplating/version"
)

var rootCmd = &cobra.Command{
	Use:   "electroplating",
	Short: "Mesh analysis and electroplating cost calculator for STL files",
	Long: `electroplating is a command-line tool for analyzing STL (Stereolithography)
files and computing manufacturing estimates from them. It supports both ASCII
and binary STL formats and provides mesh statistics, structural validation,
non-destructive transforms, resin cost estimation, and electroplating process
parameters for copper, nickel, chrome, gold, and silver.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadMesh parses an STL file or exits with an error, the common entry
// point for every subcommand that takes a mesh argument.
func loadMesh(filename string) *stl.Mesh {
	mesh, err := stl.ParseFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL file: %v\n", err)
		os.Exit(1)
	}
	return mesh
}

// printJSON renders a response record with the contractual field names.
func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

// formatVector formats a 3D coordinate triple
func formatVector(v [3]float64) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v[0], v[1], v[2])
}
