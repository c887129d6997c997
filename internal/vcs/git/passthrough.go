package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphi011/vcs/internal/vcs"
)

// Branch lists the current branch, or every local branch with opts.All.
func (c *Client) Branch(ctx context.Context, opts vcs.BranchOptions) vcs.Result {
	res := c.git(ctx, "branch")
	if opts.All || !res.OK() {
		return res
	}

	var current []string
	for _, line := range strings.Split(res.Output, "\n") {
		if after, ok := strings.CutPrefix(line, "* "); ok {
			current = append(current, after)
		}
	}
	res.Output = strings.Join(current, "\n")
	return res
}

// Custom runs git with arbitrary arguments.
func (c *Client) Custom(ctx context.Context, args []string) vcs.Result {
	return c.git(ctx, args...)
}

// Diff shows unstaged changes.
func (c *Client) Diff(ctx context.Context, opts vcs.DiffOptions) vcs.Result {
	args := c.colored("diff")
	if opts.Context > 0 {
		args = append(args, fmt.Sprintf("--unified=%d", opts.Context))
	}
	return c.git(ctx, args...)
}

// Log shows history, limited by count or by tag.
func (c *Client) Log(ctx context.Context, opts vcs.LogOptions) vcs.Result {
	var args []string
	switch {
	case opts.LimitTag != "":
		res := c.git(ctx, "tag", "-l", opts.LimitTag)
		if !res.OK() {
			return res
		}
		if res.Output == "" {
			return vcs.Fail(c.path, "Repository lacks the tag '%s'", opts.LimitTag)
		}
		args = c.colored("log", opts.LimitTag+"..")
	case opts.LimitUntagged:
		res := c.git(ctx, "describe", "--abbrev=0", "--tags")
		if !res.OK() {
			return res
		}
		args = c.colored("log", res.Output+"..")
	default:
		args = c.colored("log")
		if opts.Limit != 0 {
			args = append(args, fmt.Sprintf("-%d", opts.Limit))
		}
	}
	return c.git(ctx, args...)
}

// Pull fetches and integrates the tracked branch.
func (c *Client) Pull(ctx context.Context) vcs.Result {
	return c.git(ctx, c.colored("pull")...)
}

// Push pushes the current branch.
func (c *Client) Push(ctx context.Context) vcs.Result {
	return c.git(ctx, "push")
}

// Remotes lists remotes with their URLs.
func (c *Client) Remotes(ctx context.Context) vcs.Result {
	return c.git(ctx, "remote", "-v")
}

// Status shows the working tree status. With opts.HideEmpty a short status
// is taken first and returned as-is when it fails or is empty.
func (c *Client) Status(ctx context.Context, opts vcs.StatusOptions) vcs.Result {
	if opts.HideEmpty {
		args := []string{"status", "-s"}
		if opts.Quiet {
			args = append(args, "--untracked-files=no")
		}
		res := c.git(ctx, args...)
		if !res.OK() || res.Output == "" {
			return res
		}
	}

	args := c.colored("status")
	if opts.Quiet {
		args = append(args, "--untracked-files=no")
	}
	return c.git(ctx, args...)
}
