package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alecKarfonta/electroplating/pkg/analysis"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check an STL mesh for structural issues",
	Long: `Check the mesh for degenerate triangles, zero or negative enclosed volume,
and other structural problems. Exits non-zero when blocking issues are found.`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output the validation result as JSON")
}

func runValidate(cmd *cobra.Command, args []string) {
	filename := args[0]

	mesh := loadMesh(filename)
	result := analysis.Validate(mesh)

	if validateJSON {
		printJSON(result)
	} else {
		fmt.Println("Mesh Validation")
		fmt.Println("===============")
		if result.IsValid {
			fmt.Println("Result: valid")
		} else {
			fmt.Println("Result: INVALID")
		}

		for _, issue := range result.Issues {
			fmt.Printf("  issue: %s\n", issue)
		}
		for _, warning := range result.Warnings {
			fmt.Printf("  warning: %s\n", warning)
		}
		if n := len(result.DegenerateTriangles); n > 0 {
			fmt.Printf("  degenerate triangle indices: %v\n", result.DegenerateTriangles)
		}
	}

	if !result.IsValid {
		os.Exit(1)
	}
}
