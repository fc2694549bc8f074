package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alecKarfonta/electroplating/pkg/analysis"
	"github.com/alecKarfonta/electroplating/pkg/session"
	"github.com/alecKarfonta/electroplating/pkg/stl"
)

var (
	scaleFactorArg  string
	scaleOutput     string
	translateByArg  string
	translateOutput string
)

var scaleCmd = &cobra.Command{
	Use:   "scale [file]",
	Short: "Scale a mesh and write the result",
	Long: `Scale every vertex of the mesh. The factor is either a single positive
number applied to all three axes, or three comma-separated positive numbers
for independent per-axis scaling.`,
	Args: cobra.ExactArgs(1),
	Run:  runScale,
}

var translateCmd = &cobra.Command{
	Use:   "translate [file]",
	Short: "Translate a mesh and write the result",
	Long:  "Add an offset to every vertex of the mesh. The offset is three comma-separated numbers of any sign.",
	Args:  cobra.ExactArgs(1),
	Run:   runTranslate,
}

func init() {
	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(translateCmd)

	scaleCmd.Flags().StringVarP(&scaleFactorArg, "factor", "f", "", "Scale factor: N or X,Y,Z (required)")
	scaleCmd.Flags().StringVarP(&scaleOutput, "output", "o", "", "Output STL file (required)")
	scaleCmd.MarkFlagRequired("factor")
	scaleCmd.MarkFlagRequired("output")

	translateCmd.Flags().StringVarP(&translateByArg, "by", "b", "", "Translation offset: X,Y,Z (required)")
	translateCmd.Flags().StringVarP(&translateOutput, "output", "o", "", "Output STL file (required)")
	translateCmd.MarkFlagRequired("by")
	translateCmd.MarkFlagRequired("output")
}

func runScale(cmd *cobra.Command, args []string) {
	filename := args[0]

	factor, err := parseScaleFactor(scaleFactorArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	state := session.NewState(loadMesh(filename), filename)
	if err := state.Scale(factor); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	writeMesh(snapshot(state), scaleOutput)

	cumulative := state.CumulativeScale()
	stats := statistics(state)
	fmt.Printf("Scaled %s by (%g, %g, %g)\n", filename, cumulative.X, cumulative.Y, cumulative.Z)
	fmt.Printf("New dimensions: %s\n", formatVector(stats.BoundingBox.Dimensions))
	fmt.Printf("Written to %s\n", scaleOutput)
}

func runTranslate(cmd *cobra.Command, args []string) {
	filename := args[0]

	offset, err := parseTriple(translateByArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid --by offset: %v\n", err)
		os.Exit(1)
	}

	state := session.NewState(loadMesh(filename), filename)
	if err := state.Translate(offset); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	writeMesh(snapshot(state), translateOutput)

	stats := statistics(state)
	fmt.Printf("Translated %s by (%g, %g, %g)\n", filename, offset.X, offset.Y, offset.Z)
	fmt.Printf("New bounding box min: %s\n", formatVector(stats.BoundingBox.Min))
	fmt.Printf("Written to %s\n", translateOutput)
}

// parseScaleFactor accepts a single number (uniform) or three
// comma-separated numbers (per-axis).
func parseScaleFactor(arg string) (session.ScaleFactor, error) {
	parts := strings.Split(arg, ",")
	switch len(parts) {
	case 1:
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return session.ScaleFactor{}, fmt.Errorf("invalid scale factor %q: %w", arg, err)
		}
		return session.Uniform(f), nil
	case 3:
		v, err := parseTriple(arg)
		if err != nil {
			return session.ScaleFactor{}, fmt.Errorf("invalid scale factor %q: %w", arg, err)
		}
		return session.PerAxis(v.X, v.Y, v.Z), nil
	default:
		return session.ScaleFactor{}, fmt.Errorf("scale factor must be one or three numbers, got %q", arg)
	}
}

// parseTriple parses "X,Y,Z" into a vector.
func parseTriple(arg string) (r3.Vec, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 3 {
		return r3.Vec{}, fmt.Errorf("want three comma-separated numbers, got %q", arg)
	}

	var v [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return r3.Vec{}, err
		}
		v[i] = f
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}

func writeMesh(m *stl.Mesh, output string) {
	if err := stl.SaveFile(output, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing STL file: %v\n", err)
		os.Exit(1)
	}
}

func snapshot(state *session.State) *stl.Mesh {
	m, err := state.Snapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return m
}

func statistics(state *session.State) *analysis.MeshStatistics {
	stats, err := state.Statistics()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return stats
}
