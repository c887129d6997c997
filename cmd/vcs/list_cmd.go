package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/vcs/internal/log"
	"github.com/raphi011/vcs/internal/output"
	"github.com/raphi011/vcs/internal/ui/static"
)

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "list [path...]",
		Short:             "List checkouts",
		Aliases:           []string{"ls"},
		GroupID:           GroupRepo,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			jobs, err := a.checkouts(args)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				log.FromContext(ctx).Println("No repositories found")
				return nil
			}

			rows := make([][]string, len(jobs))
			for i, j := range jobs {
				rows[i] = []string{j.display, j.checkout.Type.String()}
			}
			output.FromContext(ctx).Block(static.RenderTable([]string{"PATH", "TYPE"}, rows, nil))
			return nil
		},
	}

	return cmd
}
