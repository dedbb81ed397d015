package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/lexandro/kondo/format"
	"github.com/lexandro/kondo/project"
	"github.com/spf13/cobra"
)

func newCleanCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean <path>...",
		Short: "Delete the artifact directories of the given project directories",
		Long: `Treat each path as a project root, without scanning below it, and delete its
artifact directories. Paths that are not a recognized project are reported.

Examples:
  kondo clean .
  kondo clean ~/src/old-service ~/src/prototype`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, a, args)
		},
	}
}

func runClean(cmd *cobra.Command, a *app, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	failures := 0
	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			red.Fprintf(errOut, "%s: %v\n", arg, err)
			failures++
			continue
		}

		var before int64
		if detected, err := project.Detect(path); err == nil {
			before = detected.Size()
		}

		p, err := project.CleanPath(path)
		if p.Path == "" {
			red.Fprintf(errOut, "%v\n", err)
			failures++
			continue
		}

		freed := before - p.Size()
		green.Fprintf(out, "Cleaned %s project %s, freed %s\n", p.TypeName(), p.Path, format.PrettySize(freed))
		a.logger.Info("cleaned project", "path", p.Path, "type", p.TypeName(), "freed", freed, "error", err)
		if err != nil {
			reportCleanError(errOut, err)
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d errors occurred", failures)
	}
	return nil
}
