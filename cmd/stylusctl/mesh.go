package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stylus-cad/stylus/pkg/sketch"
	"github.com/stylus-cad/stylus/pkg/solid"
	"github.com/stylus-cad/stylus/pkg/stl"
)

var (
	meshDistance float64
	meshMode     string
	meshSecond   float64
	meshOutput   string
	meshASCII    bool
)

var meshCmd = &cobra.Command{
	Use:   "mesh [file]",
	Short: "Extrude a sketch and export it as STL",
	Long:  "Extrude every supported profile entity in the sketch and write the resulting mesh to an STL file.",
	Args:  cobra.ExactArgs(1),
	Run:   runMesh,
}

func init() {
	meshCmd.Flags().Float64VarP(&meshDistance, "distance", "d", 10, "extrusion distance")
	meshCmd.Flags().StringVarP(&meshMode, "mode", "m", "single", "extrusion mode: single, symmetric, or two-sided")
	meshCmd.Flags().Float64Var(&meshSecond, "second", 0, "downward distance for two-sided mode")
	meshCmd.Flags().StringVarP(&meshOutput, "output", "o", "out.stl", "output STL path")
	meshCmd.Flags().BoolVar(&meshASCII, "ascii", false, "write ASCII STL instead of binary")
	rootCmd.AddCommand(meshCmd)
}

func runMesh(cmd *cobra.Command, args []string) {
	doc := loadSketch(args[0])

	var mode solid.ExtrudeMode
	switch meshMode {
	case "single":
		mode = solid.ModeSingle
	case "symmetric":
		mode = solid.ModeSymmetric
	case "two-sided":
		mode = solid.ModeTwoSided
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", meshMode)
		os.Exit(1)
	}

	var profile []sketch.EntityID
	for _, e := range doc.Entities() {
		profile = append(profile, e.ID)
	}

	mesh := solid.Extrude(doc, profile, solid.ExtrudeParams{
		Distance:       meshDistance,
		Mode:           mode,
		SecondDistance: meshSecond,
	})
	if mesh.IsEmpty() {
		fmt.Fprintln(os.Stderr, "Error: sketch contains no extrudable profiles")
		os.Exit(1)
	}

	if err := stl.WriteFile(meshOutput, mesh, doc.Name, meshASCII); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing STL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s: %d vertices, %d faces\n", meshOutput, mesh.VertexCount(), mesh.FaceCount())
}
