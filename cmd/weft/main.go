// Command weft inspects weft style sheets and scenes.
//
// Usage:
//
//	weft check [file...]           Parse sheet and scene files, report errors
//	weft layout <scene>            Lay out a scene and print every box
//	weft bench <scene>             Measure frame times for a scene
//	weft version                   Print version information
//
// A scene is a YAML file holding a viewport, sheets in the sheet file
// format, and a tree of nodes:
//
//	viewport: {width: 400, height: 100}
//	root_sheets: [app]
//	sheets:
//	  - name: app
//	    rules:
//	      - selector: col
//	        style: {width: 1s}
//	root:
//	  - kind: col
//	  - kind: col
//	    style: {width: 2s}
//	    text: wide
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "weft",
		Short: "weft sheet and scene tools",
		Long: `
Tools for weft style sheets and scenes: check them for errors, print the
boxes a scene lays out to, and measure how long its frames take.
`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newCheckCommand(),
		newLayoutCommand(),
		newBenchCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "print version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "weft version %s\n", version)
			},
		},
	)
	return root
}

func main() {
	if err := newRoot().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
