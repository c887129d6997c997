package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/raphi011/vcs/internal/vcs"
)

func newStatusCmd(a *app) *cobra.Command {
	var opts vcs.StatusOptions

	cmd := &cobra.Command{
		Use:               "status [path...]",
		Aliases:           []string{"st"},
		Short:             "Show the working copy status",
		GroupID:           GroupRepo,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeDirs,
		Example: `  vcs status                 # All checkouts below the current directory
  vcs status --hide-empty    # Only checkouts with changes
  vcs status src lib         # Checkouts below src and lib`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			jobs, err := a.discover(ctx, args, nil)
			if err != nil {
				return err
			}
			return a.runEach(ctx, jobs, opts.HideEmpty, func(ctx context.Context, c vcs.Client) vcs.Result {
				return c.Status(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Quiet, "no-untracked", false, "Hide untracked files")
	cmd.Flags().BoolVar(&opts.HideEmpty, "hide-empty", false, "Skip repositories without changes")

	return cmd
}

func newDiffCmd(a *app) *cobra.Command {
	var opts vcs.DiffOptions

	cmd := &cobra.Command{
		Use:               "diff [path...]",
		Short:             "Show unstaged changes",
		GroupID:           GroupRepo,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("context") {
				opts.Context = a.cfg.Diff.Context
			}
			if err := nonNegative("context", opts.Context); err != nil {
				return err
			}

			jobs, err := a.discover(ctx, args, nil)
			if err != nil {
				return err
			}
			return a.runEach(ctx, jobs, true, func(ctx context.Context, c vcs.Client) vcs.Result {
				return c.Diff(ctx, opts)
			})
		},
	}

	cmd.Flags().IntVarP(&opts.Context, "context", "U", 0, "Lines of context (default from config, 0 = tool default)")

	return cmd
}

func newLogCmd(a *app) *cobra.Command {
	var opts vcs.LogOptions

	cmd := &cobra.Command{
		Use:               "log [path...]",
		Short:             "Show recent history",
		GroupID:           GroupRepo,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeDirs,
		Example: `  vcs log                    # Latest entries per repository
  vcs log -l 0               # Unlimited
  vcs log --limit-tag v1.0   # Entries since tag v1.0
  vcs log --limit-untagged   # Entries since the last tag`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("limit") {
				opts.Limit = a.cfg.Log.Limit
			}
			if err := nonNegative("limit", opts.Limit); err != nil {
				return err
			}

			jobs, err := a.discover(ctx, args, nil)
			if err != nil {
				return err
			}
			return a.runEach(ctx, jobs, false, func(ctx context.Context, c vcs.Client) vcs.Result {
				return c.Log(ctx, opts)
			})
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", 0, "Number of entries (default from config, 0 = unlimited)")
	cmd.Flags().StringVar(&opts.LimitTag, "limit-tag", "", "Only show entries since this tag")
	cmd.Flags().BoolVar(&opts.LimitUntagged, "limit-untagged", false, "Only show entries since the last tag")
	cmd.MarkFlagsMutuallyExclusive("limit-tag", "limit-untagged")

	return cmd
}

func newBranchCmd(a *app) *cobra.Command {
	var opts vcs.BranchOptions

	cmd := &cobra.Command{
		Use:               "branch [path...]",
		Aliases:           []string{"br"},
		Short:             "Show the current branch",
		GroupID:           GroupRepo,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			jobs, err := a.discover(ctx, args, nil)
			if err != nil {
				return err
			}
			return a.runEach(ctx, jobs, false, func(ctx context.Context, c vcs.Client) vcs.Result {
				return c.Branch(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "List all branches")

	return cmd
}

// newSimpleCmd builds a repository command without options.
func newSimpleCmd(a *app, use, short string, op func(vcs.Client, context.Context) vcs.Result) *cobra.Command {
	return &cobra.Command{
		Use:               use + " [path...]",
		Short:             short,
		GroupID:           GroupRepo,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			jobs, err := a.discover(ctx, args, nil)
			if err != nil {
				return err
			}
			return a.runEach(ctx, jobs, false, func(ctx context.Context, c vcs.Client) vcs.Result {
				return op(c, ctx)
			})
		},
	}
}

func newPullCmd(a *app) *cobra.Command {
	return newSimpleCmd(a, "pull", "Pull and update from the tracked remote", vcs.Client.Pull)
}

func newPushCmd(a *app) *cobra.Command {
	return newSimpleCmd(a, "push", "Push to the tracked remote", vcs.Client.Push)
}

func newRemotesCmd(a *app) *cobra.Command {
	return newSimpleCmd(a, "remotes", "Show remote repositories", vcs.Client.Remotes)
}
