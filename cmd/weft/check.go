package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/grindlemire/weft"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newCheckCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "check sheet and scene files",
		Long: `
Parse sheet and scene files and report errors. A file with a "root" key is
checked as a scene: it must also build and lay out without errors.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				summary, err := checkFile(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}
				if verbose {
					fmt.Fprintf(out, "%s: %s\n", path, summary)
				}
			}
			if failed > 0 {
				return errors.Newf("%d file(s) had errors", failed)
			}
			if verbose {
				fmt.Fprintf(out, "all %d file(s) passed checks\n", len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a summary of every file")
	return cmd
}

func checkFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var probe struct {
		Root yaml.Node `yaml:"root"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return "", errors.Wrap(err, "decode")
	}

	if probe.Root.Kind == 0 {
		sheets, err := weft.ParseSheets(data)
		if err != nil {
			return "", err
		}
		rules := 0
		for _, sh := range sheets {
			rules += len(sh.Rules)
		}
		return fmt.Sprintf("%d sheet(s), %d rule(s)", len(sheets), rules), nil
	}

	sc, err := parseScene(data, filepath.Dir(path))
	if err != nil {
		return "", err
	}
	f, err := sc.frame()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d node(s), %d display item(s), %d fallback(s), %d overflow(s)",
		sc.nodes, f.List.Len(), f.Stats.Fallbacks, f.Stats.Overflows), nil
}
