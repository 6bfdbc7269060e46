package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/edopro-tools/cardsmith/internal/creator"
)

var (
	okMark   = color.GreenString("✓")
	warnMark = color.YellowString("!")
	failMark = color.RedString("✗")
	label    = color.New(color.FgCyan).SprintFunc()
)

// printResult reports each step of a create or delete.
func printResult(w io.Writer, verb string, r creator.Result) {
	for _, s := range r.Steps() {
		switch s.Status {
		case creator.Succeeded:
			fmt.Fprintf(w, "%s %s %s: %s\n", okMark, label(s.Step), verb, s.Path)
		case creator.Failed:
			mark := warnMark
			if s.Step == creator.StepRecord {
				mark = failMark
			}
			fmt.Fprintf(w, "%s %s: %v\n", mark, label(s.Step), s.Err)
		}
	}
}
