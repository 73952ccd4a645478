// Command stylusctl inspects and processes Stylus sketch files without
// the GUI: print sketch statistics, check constraints, run sketch
// scripts, and export meshes to STL.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stylusctl",
	Short: "Inspect and process Stylus sketch files",
	Long: `stylusctl is the command-line companion to Stylus. It reads sketch
JSON files and sketch scripts, checks constraints, and exports
extruded geometry to STL without starting the GUI.`,
	Version: "0.1.0",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
