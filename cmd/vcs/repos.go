package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/vcs/internal/format"
	"github.com/raphi011/vcs/internal/log"
	"github.com/raphi011/vcs/internal/output"
	"github.com/raphi011/vcs/internal/ui/progress"
	"github.com/raphi011/vcs/internal/vcs"
	"github.com/raphi011/vcs/internal/workspace"
)

// repoJob is one checkout scheduled for an operation.
type repoJob struct {
	checkout workspace.Checkout
	client   vcs.Client
	display  string // path shown in headers, relative to the work dir
	key      string // slash-separated path relative to its search root
	locator  vcs.Locator
}

// resolve makes p absolute against the work dir.
func (a *app) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(a.workDir, p)
}

// checkouts finds the checkouts below roots (default ".") without building
// clients. Each checkout is reported once, with its key relative to the
// first root it was found under.
func (a *app) checkouts(roots []string) ([]repoJob, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}

	seen := make(map[string]bool)
	var jobs []repoJob
	for _, root := range roots {
		abs := a.resolve(root)
		found, err := workspace.Discover(a.factory, []string{abs}, a.cfg.Nested)
		if err != nil {
			return nil, err
		}
		for _, co := range found {
			if seen[co.Path] {
				continue
			}
			seen[co.Path] = true
			jobs = append(jobs, repoJob{
				checkout: co,
				display:  workspace.Rel(a.workDir, co.Path),
				key:      filepath.ToSlash(workspace.Rel(abs, co.Path)),
			})
		}
	}

	slices.SortFunc(jobs, func(x, y repoJob) int { return strings.Compare(x.checkout.Path, y.checkout.Path) })
	return jobs, nil
}

// discover finds the checkouts below roots whose type passes filter (nil
// keeps all) and builds their clients. A missing executable aborts.
func (a *app) discover(ctx context.Context, roots []string, filter func(vcs.Type) bool) ([]repoJob, error) {
	all, err := a.checkouts(roots)
	if err != nil {
		return nil, err
	}

	jobs := all[:0]
	for _, j := range all {
		if filter != nil && !filter(j.checkout.Type) {
			continue
		}
		client, err := a.factory.Open(j.checkout)
		if err != nil {
			return nil, err
		}
		j.client = client
		jobs = append(jobs, j)
	}

	log.FromContext(ctx).Debug("discovered checkouts", "count", len(jobs))
	return jobs, nil
}

// progressFor starts a progress bar on stderr when it is a terminal.
// The returned callbacks are safe to use when no bar is shown.
func (a *app) progressFor(jobs []repoJob, message string) (done func(i int, ok bool), stop func()) {
	if !a.useProgress || len(jobs) < 2 {
		return func(int, bool) {}, func() {}
	}
	bar := progress.NewProgressBar(a.stderr, len(jobs), message)
	bar.Start()
	return func(i int, ok bool) { bar.Done(jobs[i].display, ok) }, bar.Stop
}

// runEach applies op to every job concurrently and reports the results.
func (a *app) runEach(ctx context.Context, jobs []repoJob, hideEmpty bool, op func(context.Context, vcs.Client) vcs.Result) error {
	if len(jobs) == 0 {
		log.FromContext(ctx).Println("No repositories found")
		return nil
	}

	done, stop := a.progressFor(jobs, "")
	results := workspace.Run(ctx, jobs, a.cfg.Workers,
		func(ctx context.Context, j repoJob) vcs.Result { return op(ctx, j.client) },
		func(i int, r vcs.Result) { done(i, r.OK()) },
	)
	stop()

	return a.report(ctx, jobs, results, hideEmpty)
}

// report prints every result under its header in path order, followed by a
// failure summary on stderr. Returns errFailed if any result failed.
func (a *app) report(ctx context.Context, jobs []repoJob, results []vcs.Result, hideEmpty bool) error {
	out := output.FromContext(ctx)
	opts := format.Options{ShowCommand: a.showCommands, HideEmpty: hideEmpty}

	failed := 0
	for i, r := range results {
		if !r.OK() {
			failed++
		}
		out.Block(format.Result(jobs[i].display, jobs[i].checkout.Type, r, opts))
	}

	if failed > 0 {
		log.FromContext(ctx).Println(format.Summary(len(results), failed))
		return errFailed
	}
	return nil
}

// completeDirs completes search roots.
func completeDirs(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// nonNegative validates an integer flag.
func nonNegative(name string, v int) error {
	if v < 0 {
		return fmt.Errorf("--%s must not be negative, got %d", name, v)
	}
	return nil
}
