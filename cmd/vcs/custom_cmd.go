package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/raphi011/vcs/internal/vcs"
)

func newCustomCmd(a *app) *cobra.Command {
	var gitOnly, hgOnly bool

	cmd := &cobra.Command{
		Use:     "custom [path...] [--git] [--hg] -- <args>...",
		Short:   "Run an arbitrary command in every checkout",
		GroupID: GroupRepo,
		Long: `Run the backend executable with arbitrary arguments in every checkout.

Everything after "--" is passed on unchanged. With --git or --hg only
checkouts of that type are included; without either all are.`,
		Example: `  vcs custom --git -- log --oneline -3
  vcs custom src --hg -- summary`,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dash := cmd.ArgsLenAtDash()
			if dash < 0 || dash == len(args) {
				return errors.New("missing arguments to pass on after '--'")
			}
			roots, passed := args[:dash], args[dash:]

			filter := func(t vcs.Type) bool {
				if !gitOnly && !hgOnly {
					return true
				}
				return (gitOnly && t == vcs.TypeGit) || (hgOnly && t == vcs.TypeHg)
			}

			jobs, err := a.discover(ctx, roots, filter)
			if err != nil {
				return err
			}
			return a.runEach(ctx, jobs, false, func(ctx context.Context, c vcs.Client) vcs.Result {
				return c.Custom(ctx, passed)
			})
		},
	}

	cmd.Flags().BoolVar(&gitOnly, "git", false, "Only git checkouts")
	cmd.Flags().BoolVar(&hgOnly, "hg", false, "Only hg checkouts")

	return cmd
}
