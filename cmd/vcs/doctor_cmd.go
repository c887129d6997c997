package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/vcs/internal/doctor"
	"github.com/raphi011/vcs/internal/log"
	"github.com/raphi011/vcs/internal/output"
	"github.com/raphi011/vcs/internal/ui/static"
	"github.com/raphi011/vcs/internal/vcs"
)

func newDoctorCmd(a *app) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose the environment",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose the environment vcs runs in.

Checks:
- git and hg executables can be found and report a version
- The config file exists and is valid

Examples:
  vcs doctor          # Check for issues
  vcs doctor --fix    # Write the default config if it is missing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			var tools []*vcs.Tool
			for _, t := range a.factory.Types() {
				tools = append(tools, a.factory.Tool(t))
			}
			opts := doctor.Options{ConfigPath: a.configPath, Tools: tools, Runner: a.runner}

			checks := doctor.Run(ctx, opts)
			output.FromContext(ctx).Block(static.RenderTable(
				[]string{"CHECK", "STATUS", "DETAIL"},
				doctor.Rows(checks),
				static.StatusColumn(1),
			))

			if fix {
				fixed, err := doctor.Fix(checks, opts)
				for _, msg := range fixed {
					l.Println(msg)
				}
				if err != nil {
					return err
				}
			}

			if doctor.HasFailures(checks) {
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Auto-fix recoverable issues")

	return cmd
}
