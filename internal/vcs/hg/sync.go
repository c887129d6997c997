package hg

import (
	"context"

	"github.com/raphi011/vcs/internal/vcs"
)

// Export pairs the default path with the named branch, or with the working
// copy's changeset in exact mode.
func (c *Client) Export(ctx context.Context, opts vcs.ExportOptions) vcs.ExportResult {
	chain := vcs.NewChain(c.path)

	url, res := c.defaultPath(ctx)
	if !res.OK() {
		return vcs.ExportResult{Result: res}
	}
	chain.Track(res)

	if opts.Exact {
		res = c.hg(ctx, "log", "--rev", ".", "--template", "{node}")
	} else {
		res = c.hg(ctx, "branch")
	}
	if !res.OK() {
		return vcs.ExportResult{Result: chain.Fail(res.Prefixed("Could not determine ref: "))}
	}
	chain.Track(res)
	version := res.Output

	return vcs.ExportResult{
		Result: chain.Done(url, version),
		Export: &vcs.Export{URL: url, Version: version},
	}
}

// Import reproduces loc in the client's path. An existing checkout whose
// default path differs from loc.URL is refused and left untouched.
func (c *Client) Import(ctx context.Context, loc vcs.Locator) vcs.Result {
	if missing := loc.Missing(); missing != "" {
		return vcs.Fail(c.path, "Repository data lacks the %s value", missing)
	}
	if res := vcs.EnsureDir(c.path); !res.OK() {
		return res
	}

	chain := vcs.NewChain(c.path)

	if Detect(c.path) {
		url, res := c.defaultPath(ctx)
		if !res.OK() {
			return res
		}
		chain.Track(res)
		if url != loc.URL {
			return chain.Fail(vcs.Fail(c.path,
				"Path already exists and contains a different repository (remote 'default' is '%s', requested '%s')",
				url, loc.URL))
		}

		res = c.hg(ctx, "pull", loc.URL)
		if !res.OK() {
			return chain.Fail(res.Prefixed("Could not update repository from '%s': ", loc.URL))
		}
		chain.Add(res)
	} else {
		res := c.hg(ctx, "clone", "--noupdate", loc.URL, ".")
		if !res.OK() {
			return res.Prefixed("Could not clone repository '%s': ", loc.URL)
		}
		chain.Add(res)
	}

	res := c.hg(ctx, "update", loc.Version)
	if !res.OK() {
		return chain.Fail(res.Prefixed("Could not checkout ref '%s': ", loc.Version))
	}
	chain.Add(res)

	return chain.Done()
}
