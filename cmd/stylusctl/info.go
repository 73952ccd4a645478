package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a sketch file",
	Long:  "Show the sketch name, entity and constraint counts, and the overall bounding box.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func loadSketch(path string) *sketch.Document {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading sketch file: %v\n", err)
		os.Exit(1)
	}
	doc, err := sketch.FromJSON(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing sketch file: %v\n", err)
		os.Exit(1)
	}
	return doc
}

func geomBounds(doc *sketch.Document) geom.BoundingBox {
	box := geom.NewBoundingBox()
	for _, e := range doc.Entities() {
		box = box.Union(e.BoundingBox())
	}
	return box
}

func runInfo(cmd *cobra.Command, args []string) {
	doc := loadSketch(args[0])

	fmt.Println("Sketch Information")
	fmt.Println("==================")
	if doc.Name != "" {
		fmt.Printf("Name: %s\n", doc.Name)
	}
	fmt.Printf("File: %s\n\n", args[0])

	fmt.Printf("Entities: %d\n", doc.EntityCount())
	kinds := make(map[sketch.EntityKind]int)
	bbox := geomBounds(doc)
	for _, e := range doc.Entities() {
		kinds[e.Kind]++
	}
	for _, k := range []sketch.EntityKind{
		sketch.KindPoint, sketch.KindLine, sketch.KindCircle,
		sketch.KindArc, sketch.KindRectangle,
	} {
		if n := kinds[k]; n > 0 {
			fmt.Printf("  %-10s %d\n", k.String()+":", n)
		}
	}
	fmt.Printf("Constraints: %d\n\n", doc.ConstraintCount())

	if !bbox.IsEmpty() {
		fmt.Println("Bounding Box:")
		fmt.Printf("  Min: (%.3f, %.3f)\n", bbox.Min.X, bbox.Min.Y)
		fmt.Printf("  Max: (%.3f, %.3f)\n", bbox.Max.X, bbox.Max.Y)
		fmt.Printf("  Size: %.3f x %.3f\n", bbox.Width(), bbox.Height())
	}
}
