package git

import (
	"context"
	"slices"
	"strings"

	"github.com/raphi011/vcs/internal/vcs"
)

// CurrentBranch returns the checked-out branch name, or "HEAD" when the
// working copy is detached.
func (c *Client) CurrentBranch(ctx context.Context) (string, vcs.Result) {
	res := c.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if !res.OK() {
		return "", res.Prefixed("Could not determine ref: ")
	}
	return res.Output, res
}

// CurrentRemote returns the remote tracked by the checked-out branch.
// It fails when the working copy is detached or the branch has no upstream.
func (c *Client) CurrentRemote(ctx context.Context) (vcs.Remote, vcs.Result) {
	chain := vcs.NewChain(c.path)

	branch, res := c.CurrentBranch(ctx)
	if !res.OK() {
		return vcs.Remote{}, res
	}
	chain.Track(res)

	if branch == detachedMarker {
		return vcs.Remote{}, vcs.Fail(c.path, "Could not determine remote: no branch is checked out")
	}

	remote, res := c.branchRemote(ctx, branch)
	if !res.OK() {
		return vcs.Remote{}, res
	}
	chain.Track(res)
	return remote, chain.Done(remote.Name)
}

// branchRemote resolves the remote configured as upstream of branch.
func (c *Client) branchRemote(ctx context.Context, branch string) (vcs.Remote, vcs.Result) {
	chain := vcs.NewChain(c.path)

	res := c.git(ctx, "config", "--get", "branch."+branch+".remote")
	if !res.OK() || res.Output == "" || res.Output == "." {
		return vcs.Remote{}, vcs.Fail(c.path, "Could not determine remote: branch '%s' has no upstream remote", branch)
	}
	chain.Track(res)
	name := res.Output

	url, res := c.RemoteURL(ctx, name)
	if !res.OK() {
		return vcs.Remote{}, res
	}
	chain.Track(res)
	return vcs.Remote{Name: name, URL: url}, chain.Done(url)
}

// RemoteURL returns the URL configured for the named remote.
func (c *Client) RemoteURL(ctx context.Context, name string) (string, vcs.Result) {
	res := c.git(ctx, "config", "--get", "remote."+name+".url")
	if !res.OK() {
		return "", res.Prefixed("Could not determine remote url: ")
	}
	return res.Output, res
}

// AllRemotes returns the remote names in preference order.
func (c *Client) AllRemotes(ctx context.Context) ([]string, vcs.Result) {
	res := c.git(ctx, "remote")
	if !res.OK() {
		return nil, res.Prefixed("Could not determine remotes: ")
	}
	return vcs.OrderRemotes(strings.Split(res.Output, "\n")), res
}

// ContainingRemote returns the first remote, in preference order, whose
// remote-tracking refs reach rev.
func (c *Client) ContainingRemote(ctx context.Context, rev string) (vcs.Remote, vcs.Result) {
	chain := vcs.NewChain(c.path)

	names, res := c.AllRemotes(ctx)
	if !res.OK() {
		return vcs.Remote{}, res
	}
	chain.Track(res)

	for _, name := range names {
		res := c.git(ctx, "rev-list", "--remotes="+name)
		if !res.OK() {
			return vcs.Remote{}, res.Prefixed("Could not determine refs of remote '%s': ", name)
		}
		chain.Track(res)
		if !slices.Contains(strings.Split(res.Output, "\n"), rev) {
			continue
		}

		url, res := c.RemoteURL(ctx, name)
		if !res.OK() {
			return vcs.Remote{}, res
		}
		chain.Track(res)
		return vcs.Remote{Name: name, URL: url}, chain.Done(url)
	}

	failed := vcs.Fail(c.path, "Could not determine remote containing '%s'", rev)
	failed.Commands = chain.Commands()
	return vcs.Remote{}, failed
}
