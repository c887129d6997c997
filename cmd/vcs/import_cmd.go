package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/vcs/internal/log"
	"github.com/raphi011/vcs/internal/reposfile"
	"github.com/raphi011/vcs/internal/vcs"
	"github.com/raphi011/vcs/internal/workspace"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		input        string
		skipExisting bool
	)

	cmd := &cobra.Command{
		Use:     "import [target]",
		Short:   "Reproduce the checkouts of a .repos document",
		GroupID: GroupSync,
		Long: `Clone or update every repository of a .repos document below target
(default: the current directory) and check out its version.

Existing checkouts are only updated when they belong to the same url;
any other repository at an entry's path is reported and left alone.
Versions that are full revision ids are checked out detached.
Repositories nested in other entries are imported after them.`,
		Example: `  vcs import < workspace.repos
  vcs import -i workspace.repos ~/src
  vcs import --skip-existing -i workspace.repos`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			target = a.resolve(target)

			doc, err := a.readRepos(input)
			if err != nil {
				return err
			}

			levels := doc.Levels()
			if len(levels) == 0 {
				l.Println("No repositories to import")
				return nil
			}

			var (
				jobs    []repoJob
				results []vcs.Result
			)
			for _, level := range levels {
				batch, err := a.importJobs(target, level)
				if err != nil {
					return err
				}

				done, stop := a.progressFor(batch, "importing")
				res := workspace.Run(ctx, batch, a.cfg.Workers,
					func(ctx context.Context, j repoJob) vcs.Result {
						return importOne(ctx, j, skipExisting)
					},
					func(i int, r vcs.Result) { done(i, r.OK()) },
				)
				stop()

				jobs = append(jobs, batch...)
				results = append(results, res...)
			}

			return a.report(ctx, jobs, results, false)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Read the document from a file ('-' for stdin)")
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "Leave paths that already exist untouched")

	return cmd
}

// readRepos reads a .repos document from stdin ("-") or a file.
func (a *app) readRepos(input string) (reposfile.File, error) {
	if input == "" || input == "-" {
		return reposfile.Read(a.stdin)
	}
	doc, err := reposfile.Load(a.resolve(input))
	if err != nil {
		return reposfile.File{}, fmt.Errorf("failed to read %s: %w", input, err)
	}
	return doc, nil
}

// importJobs builds one job per entry below target.
func (a *app) importJobs(target string, entries []reposfile.Located) ([]repoJob, error) {
	jobs := make([]repoJob, 0, len(entries))
	for _, e := range entries {
		t, ok := a.factory.ForName(e.Type)
		if !ok {
			return nil, fmt.Errorf("repository %q has unknown type %q", e.Path, e.Type)
		}
		dir := filepath.Join(target, filepath.FromSlash(e.Path))
		client, err := a.factory.Client(t, dir)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, repoJob{
			checkout: workspace.Checkout{Path: dir, Type: t},
			client:   client,
			display:  workspace.Rel(a.workDir, dir),
			key:      e.Path,
			locator:  e.Locator(dir),
		})
	}
	return jobs, nil
}

// importOne imports a single entry, honoring --skip-existing.
func importOne(ctx context.Context, j repoJob, skipExisting bool) vcs.Result {
	if skipExisting {
		if _, err := os.Stat(j.locator.Path); !errors.Is(err, fs.ErrNotExist) {
			return vcs.Result{Dir: j.locator.Path, Output: "Skipped existing path"}
		}
	}
	return j.client.Import(ctx, j.locator)
}
