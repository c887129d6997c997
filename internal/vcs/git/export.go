package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphi011/vcs/internal/vcs"
)

// Export resolves the (url, version) pair reproducing the working copy.
// A detached working copy always resolves in exact mode.
func (c *Client) Export(ctx context.Context, opts vcs.ExportOptions) vcs.ExportResult {
	chain := vcs.NewChain(c.path)

	if !opts.Exact {
		branch, res := c.CurrentBranch(ctx)
		if !res.OK() {
			return vcs.ExportResult{Result: res}
		}
		chain.Track(res)
		if branch != detachedMarker {
			return c.exportBranch(ctx, chain, branch)
		}
	}
	return c.exportExact(ctx, chain)
}

// exportBranch pins the working copy to its branch and the branch's upstream remote.
func (c *Client) exportBranch(ctx context.Context, chain *vcs.Chain, branch string) vcs.ExportResult {
	res := c.git(ctx, "rev-parse", "--abbrev-ref", "@{upstream}")
	if !res.OK() {
		return vcs.ExportResult{Result: res.Prefixed("Could not determine upstream of branch '%s': ", branch)}
	}
	chain.Track(res)

	remote := upstreamRemote(res.Output, branch)

	url, res := c.RemoteURL(ctx, remote)
	if !res.OK() {
		return vcs.ExportResult{Result: res}
	}
	chain.Track(res)

	return vcs.ExportResult{
		Result: chain.Done(url, branch),
		Export: &vcs.Export{URL: url, Version: branch},
	}
}

// exportExact pins the working copy to its current revision and the first
// remote that contains it.
func (c *Client) exportExact(ctx context.Context, chain *vcs.Chain) vcs.ExportResult {
	res := c.git(ctx, "rev-parse", "HEAD")
	if !res.OK() {
		return vcs.ExportResult{Result: res.Prefixed("Could not determine ref: ")}
	}
	chain.Track(res)
	rev := res.Output

	remote, res := c.ContainingRemote(ctx, rev)
	if !res.OK() {
		return vcs.ExportResult{Result: chain.Fail(res)}
	}
	chain.Track(res)

	return vcs.ExportResult{
		Result: chain.Done(remote.URL, rev),
		Export: &vcs.Export{URL: remote.URL, Version: rev},
	}
}

// upstreamRemote strips "/<branch>" from an abbreviated upstream ref such as
// "origin/feature/x". An upstream that does not end with the branch name
// breaks the assumption this export mode is built on and panics.
//
// TODO: a local branch tracking a differently named remote branch
// (dev -> origin/main) trips this, and so does a branch tracking another
// local branch (branch.<name>.remote = "."), whose upstream has no remote
// part at all. Decide whether to export the remote branch name instead and
// how to report local upstreams without aborting the whole export.
func upstreamRemote(upstream, branch string) string {
	suffix := "/" + branch
	if !strings.HasSuffix(upstream, suffix) || len(upstream) == len(suffix) {
		panic(fmt.Sprintf("git: upstream %q does not end with %q", upstream, suffix))
	}
	return strings.TrimSuffix(upstream, suffix)
}
