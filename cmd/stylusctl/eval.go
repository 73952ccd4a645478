package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stylus-cad/stylus/pkg/kernel/sdfx"
	"github.com/stylus-cad/stylus/pkg/script"
	"github.com/stylus-cad/stylus/pkg/stl"
)

var (
	evalOutput string
	evalSTL    string
	evalASCII  bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [script]",
	Short: "Run a sketch script",
	Long: `Evaluate a Lisp sketch script and print the resulting sketch as
JSON. With --stl, the script's feature history is regenerated and
exported as well.`,
	Args: cobra.ExactArgs(1),
	Run:  runEval,
}

func init() {
	evalCmd.Flags().StringVarP(&evalOutput, "output", "o", "", "write the sketch JSON to a file instead of stdout")
	evalCmd.Flags().StringVar(&evalSTL, "stl", "", "export the script's features to this STL path")
	evalCmd.Flags().BoolVar(&evalASCII, "ascii", false, "write ASCII STL instead of binary")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) {
	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
		os.Exit(1)
	}

	engine := script.NewEngine()
	res, err := engine.Evaluate(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stderr, "%s: %s\n", args[0], e.Error())
		}
		os.Exit(1)
	}

	data, err := res.Doc.ToJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error serializing sketch: %v\n", err)
		os.Exit(1)
	}
	if evalOutput != "" {
		if err := os.WriteFile(evalOutput, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing sketch: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(string(data))
	}

	if evalSTL != "" {
		mesh := res.History.Regenerate(res.Doc, sdfx.New())
		if mesh.IsEmpty() {
			fmt.Fprintln(os.Stderr, "Error: script produced no solid geometry")
			os.Exit(1)
		}
		if err := stl.WriteFile(evalSTL, mesh, res.Doc.Name, evalASCII); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing STL: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s: %d vertices, %d faces\n", evalSTL, mesh.VertexCount(), mesh.FaceCount())
	}
}
