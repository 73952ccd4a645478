package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stylus-cad/stylus/pkg/sketch"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check the constraints of a sketch file",
	Long:  "Re-evaluate every constraint in the sketch and report residuals. Exits non-zero when any constraint is unsatisfied.",
	Args:  cobra.ExactArgs(1),
	Run:   runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	doc := loadSketch(args[0])

	result := sketch.Validate(doc)
	if len(result.Findings) == 0 {
		fmt.Println("No constraints.")
		return
	}

	for _, f := range result.Findings {
		fmt.Println(f.String())
	}
	fmt.Printf("\n%d constraints, %d unsatisfied\n", len(result.Findings), result.Unsatisfied)

	if !result.AllSatisfied() {
		os.Exit(1)
	}
}
