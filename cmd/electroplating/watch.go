package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alecKarfonta/electroplating/pkg/analysis"
	"github.com/alecKarfonta/electroplating/pkg/stl"
	"github.com/alecKarfonta/electroplating/pkg/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-analyze an STL file whenever it changes",
	Long:  "Watch an STL file and print fresh statistics every time it is written, until interrupted.",
	Args:  cobra.ExactArgs(1),
	Run:   runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Settle time before re-analyzing after a change")
}

func runWatch(cmd *cobra.Command, args []string) {
	filename := args[0]

	analyzeOnce(filename)

	fw, err := watcher.New(watchDebounce)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	if err := fw.Watch(filename, func(path string) {
		fmt.Printf("\n--- %s changed at %s ---\n", path, time.Now().Format(time.TimeOnly))
		analyzeOnce(path)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nWatching %s (Ctrl-C to stop)\n", filename)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}

// analyzeOnce prints a one-line summary; parse failures are reported but do
// not stop the watch, since the file may be mid-write.
func analyzeOnce(filename string) {
	mesh, err := stl.ParseFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
		return
	}

	stats := analysis.Analyze(mesh)
	fmt.Printf("%d triangles, surface area %.3f, volume %.3f, dimensions %s\n",
		stats.TriangleCount, stats.SurfaceArea, stats.Volume,
		formatVector(stats.BoundingBox.Dimensions))
}
