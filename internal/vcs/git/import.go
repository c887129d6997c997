package git

import (
	"context"

	"github.com/raphi011/vcs/internal/vcs"
)

// Import reproduces loc in the client's path.
//
// An existing checkout is only updated when its remote URL equals loc.URL;
// any other URL is refused and the checkout is left untouched. The requested
// version is checked out last in every case, so running Import twice with
// the same locator is a no-op the second time.
func (c *Client) Import(ctx context.Context, loc vcs.Locator) vcs.Result {
	if missing := loc.Missing(); missing != "" {
		return vcs.Fail(c.path, "Repository data lacks the %s value", missing)
	}
	if res := vcs.EnsureDir(c.path); !res.OK() {
		return res
	}

	chain := vcs.NewChain(c.path)

	if Detect(c.path) {
		if res := c.update(ctx, chain, loc); !res.OK() {
			return res
		}
	} else {
		res := c.git(ctx, "clone", loc.URL, ".")
		if !res.OK() {
			return chain.Fail(res.Prefixed("Could not clone repository '%s': ", loc.URL))
		}
		chain.Add(res)
	}

	res := c.git(ctx, "checkout", loc.Version)
	if !res.OK() {
		return chain.Fail(res.Prefixed("Could not checkout ref '%s': ", loc.Version))
	}
	chain.Add(res)

	return chain.Done()
}

// update verifies the existing checkout belongs to loc.URL and syncs it with
// its remote. A failure carries every invocation recorded in chain. The branch that is already checked out is rebased onto the
// requested version; anything else only needs a fetch before the checkout.
func (c *Client) update(ctx context.Context, chain *vcs.Chain, loc vcs.Locator) vcs.Result {
	branch, res := c.CurrentBranch(ctx)
	if !res.OK() {
		return chain.Fail(res)
	}
	chain.Track(res)

	remote, res := c.importRemote(ctx, branch)
	if !res.OK() {
		return chain.Fail(res)
	}
	chain.Track(res)

	if remote.URL != loc.URL {
		return chain.Fail(vcs.Fail(c.path,
			"Path already exists and contains a different repository (remote '%s' is '%s', requested '%s')",
			remote.Name, remote.URL, loc.URL))
	}

	if !loc.Exact && branch == loc.Version {
		res = c.git(ctx, "pull", "--rebase", remote.Name, loc.Version)
	} else {
		res = c.git(ctx, "fetch", remote.Name)
	}
	if !res.OK() {
		return chain.Fail(res.Prefixed("Could not update repository from remote '%s': ", remote.Name))
	}
	chain.Add(res)
	return res
}

// importRemote picks the remote an existing checkout is compared against:
// the checked-out branch's upstream remote, or the preferred remote when the
// working copy is detached or the branch tracks nothing.
func (c *Client) importRemote(ctx context.Context, branch string) (vcs.Remote, vcs.Result) {
	if branch != detachedMarker {
		if remote, res := c.branchRemote(ctx, branch); res.OK() {
			return remote, res
		}
	}

	chain := vcs.NewChain(c.path)
	names, res := c.AllRemotes(ctx)
	if !res.OK() {
		return vcs.Remote{}, res
	}
	chain.Track(res)
	if len(names) == 0 {
		return vcs.Remote{}, vcs.Fail(c.path, "Could not determine remote: repository has no remotes")
	}

	url, res := c.RemoteURL(ctx, names[0])
	if !res.OK() {
		return vcs.Remote{}, res
	}
	chain.Track(res)
	return vcs.Remote{Name: names[0], URL: url}, chain.Done(url)
}
