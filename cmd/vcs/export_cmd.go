package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/vcs/internal/format"
	"github.com/raphi011/vcs/internal/log"
	"github.com/raphi011/vcs/internal/output"
	"github.com/raphi011/vcs/internal/reposfile"
	"github.com/raphi011/vcs/internal/vcs"
	"github.com/raphi011/vcs/internal/workspace"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		exact   bool
		outFile string
		copyOut bool
	)

	cmd := &cobra.Command{
		Use:     "export [path...]",
		Short:   "Export checkouts as a .repos document",
		GroupID: GroupSync,
		Long: `Export the url and version of every checkout as a .repos document.

Keys are paths relative to the search root the checkout was found under.
A checkout on a tracked branch exports that branch; with --exact (or when
detached) the current revision is exported instead. Repositories that cannot
be exported are reported on stderr and make the command fail, the document
still lists all others.`,
		Example: `  vcs export > workspace.repos
  vcs export --exact -o pinned.repos src
  vcs export --copy`,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			jobs, err := a.discover(ctx, args, nil)
			if err != nil {
				return err
			}

			done, stop := a.progressFor(jobs, "exporting")
			results := workspace.Run(ctx, jobs, a.cfg.Workers,
				func(ctx context.Context, j repoJob) vcs.ExportResult {
					return j.client.Export(ctx, vcs.ExportOptions{Exact: exact})
				},
				func(i int, r vcs.ExportResult) { done(i, r.OK()) },
			)
			stop()

			doc, failed := collectExports(jobs, results, func(j repoJob, r vcs.Result) {
				l.Printf("%s", format.Result(j.display, j.checkout.Type, r, format.Options{ShowCommand: a.showCommands}))
			})

			var buf bytes.Buffer
			if err := reposfile.Write(&buf, doc); err != nil {
				return fmt.Errorf("failed to encode repositories: %w", err)
			}

			if outFile != "" {
				path := a.resolve(outFile)
				if err := reposfile.Save(path, doc); err != nil {
					return fmt.Errorf("failed to write %s: %w", outFile, err)
				}
				l.Printf("Exported %d repositories to %s\n", len(doc.Repositories), path)
			} else {
				output.FromContext(ctx).Block(buf.String())
			}

			if copyOut {
				if err := clipboard.WriteAll(buf.String()); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				l.Println("Copied to clipboard")
			}

			if failed > 0 {
				l.Println(format.Summary(len(jobs), failed))
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "Export revisions instead of branches")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write the document to a file instead of stdout")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Also copy the document to the clipboard")

	return cmd
}

// collectExports builds the document from successful exports and passes
// every failure to onFailure. A checkout whose key is already taken by an
// earlier one (possible with several roots) fails instead of replacing it.
// Returns the document and the failure count.
func collectExports(jobs []repoJob, results []vcs.ExportResult, onFailure func(repoJob, vcs.Result)) (reposfile.File, int) {
	var doc reposfile.File
	owners := make(map[string]string, len(jobs))
	failed := 0
	for i, r := range results {
		if !r.OK() || r.Export == nil {
			failed++
			onFailure(jobs[i], r.Result)
			continue
		}
		if owner, taken := owners[jobs[i].key]; taken {
			failed++
			onFailure(jobs[i], vcs.Fail(jobs[i].checkout.Path,
				"Key '%s' is already used by %s; export the search roots separately", jobs[i].key, owner))
			continue
		}
		owners[jobs[i].key] = jobs[i].display
		doc.Add(jobs[i].key, reposfile.Entry{
			Type:    string(jobs[i].checkout.Type),
			URL:     r.Export.URL,
			Version: r.Export.Version,
		})
	}
	return doc, failed
}
