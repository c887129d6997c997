package hg

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/raphi011/vcs/internal/vcs"
)

// Branch prints the current named branch, or all of them with opts.All.
func (c *Client) Branch(ctx context.Context, opts vcs.BranchOptions) vcs.Result {
	if opts.All {
		return c.hg(ctx, "branches")
	}
	return c.hg(ctx, "branch")
}

// Custom runs hg with arbitrary arguments.
func (c *Client) Custom(ctx context.Context, args []string) vcs.Result {
	return c.hg(ctx, args...)
}

func (c *Client) Diff(ctx context.Context, opts vcs.DiffOptions) vcs.Result {
	args := []string{"diff"}
	if opts.Context > 0 {
		args = append(args, "--unified", strconv.Itoa(opts.Context))
	}
	return c.hg(ctx, c.colored(args...)...)
}

// Log shows history, limited by count or by tag.
func (c *Client) Log(ctx context.Context, opts vcs.LogOptions) vcs.Result {
	args := []string{"log"}
	switch {
	case opts.LimitTag != "":
		res := c.hg(ctx, "tags", "-q")
		if !res.OK() {
			return res
		}
		if !slices.Contains(strings.Split(res.Output, "\n"), opts.LimitTag) {
			return vcs.Fail(c.path, "Repository lacks the tag '%s'", opts.LimitTag)
		}
		args = append(args, "--rev", opts.LimitTag+"::.")
	case opts.LimitUntagged:
		args = append(args, "--rev", "ancestors(.) - ancestors(tag())")
	case opts.Limit != 0:
		args = append(args, "--limit", strconv.Itoa(opts.Limit))
	}
	return c.hg(ctx, c.colored(args...)...)
}

// Pull pulls from the default path and updates the working copy.
func (c *Client) Pull(ctx context.Context) vcs.Result {
	return c.hg(ctx, c.colored("pull", "--update")...)
}

func (c *Client) Push(ctx context.Context) vcs.Result {
	return c.hg(ctx, "push")
}

func (c *Client) Remotes(ctx context.Context) vcs.Result {
	return c.hg(ctx, "paths")
}

// Status shows modified files. hg prints nothing for a clean working copy,
// so HideEmpty needs no extra invocation.
func (c *Client) Status(ctx context.Context, opts vcs.StatusOptions) vcs.Result {
	args := []string{"status"}
	if opts.Quiet {
		args = append(args, "--quiet")
	}
	return c.hg(ctx, c.colored(args...)...)
}
