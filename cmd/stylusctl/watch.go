package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stylus-cad/stylus/pkg/sketch"
	"github.com/stylus-cad/stylus/pkg/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-check a sketch file whenever it changes",
	Long:  "Watch the sketch file and re-run the constraint check on every save. Stop with Ctrl-C.",
	Args:  cobra.ExactArgs(1),
	Run:   runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	path := args[0]
	report(path)

	w, err := watch.New(watch.DefaultDebounce)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer w.Close()

	w.SetErrorHandler(func(err error) {
		fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
	})
	if err := w.Watch([]string{path}, func(changed string) {
		fmt.Printf("\n-- %s changed --\n", changed)
		report(changed)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	w.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}

// report validates the file without exiting on failure, so the watch
// loop survives bad saves.
func report(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading sketch file: %v\n", err)
		return
	}
	doc, err := sketch.FromJSON(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing sketch file: %v\n", err)
		return
	}

	result := sketch.Validate(doc)
	if len(result.Findings) == 0 {
		fmt.Printf("%d entities, no constraints\n", doc.EntityCount())
		return
	}
	for _, f := range result.Findings {
		fmt.Println(f.String())
	}
	fmt.Printf("%d constraints, %d unsatisfied\n", len(result.Findings), result.Unsatisfied)
}
