// Package git implements the git backend.
//
// All operations shell out to the git CLI through a [cmd.Runner] rather than
// using a Go git library, so user configuration (SSH keys, credential
// helpers, aliases) applies unchanged.
//
// # Export and Import
//
// [Client.Export] resolves the (url, version) pair reproducing a working
// copy: the tracked branch and its upstream remote when possible, otherwise
// the exact revision and the first remote (upstream, origin, then the rest)
// that already contains it.
//
// [Client.Import] reproduces such a pair in a directory: clone when the
// directory holds no repository, update in place when it holds one with the
// same remote URL, refuse when the URL differs, and always check out the
// requested version last.
package git

import (
	"context"
	"os"
	"path/filepath"

	"github.com/raphi011/vcs/internal/cmd"
	"github.com/raphi011/vcs/internal/vcs"
)

// detachedMarker is what `rev-parse --abbrev-ref HEAD` prints when no branch
// is checked out.
const detachedMarker = "HEAD"

// Detect reports whether path is the root of a git checkout: a .git
// directory, or the .git file of a linked worktree.
func Detect(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir() || info.Mode().IsRegular()
}

// Options configures a Client.
type Options struct {
	Executable string     // resolved path of the git executable
	Color      *vcs.Probe // force colors in pass-through commands when true
	Runner     cmd.Runner // defaults to cmd.Exec
}

// Client runs git operations in one checkout.
type Client struct {
	path   string
	exe    string
	color  *vcs.Probe
	runner cmd.Runner
}

var _ vcs.Client = (*Client)(nil)

// New creates a client for the checkout (or import target) at path.
func New(path string, opts Options) *Client {
	exe := opts.Executable
	if exe == "" {
		exe = "git"
	}
	runner := opts.Runner
	if runner == nil {
		runner = cmd.Exec{}
	}
	return &Client{path: path, exe: exe, color: opts.Color, runner: runner}
}

// Type returns vcs.TypeGit.
func (c *Client) Type() vcs.Type {
	return vcs.TypeGit
}

// Path returns the checkout path.
func (c *Client) Path() string {
	return c.path
}

// ColorProbe returns the process-wide color decision for git. In auto mode
// git's own color.ui setting is read once, on first use.
func ColorProbe(ctx context.Context, runner cmd.Runner, exe string, mode vcs.ColorMode) *vcs.Probe {
	switch mode {
	case vcs.ColorAlways:
		return vcs.FixedProbe(true)
	case vcs.ColorNever:
		return vcs.FixedProbe(false)
	}
	return vcs.NewProbe(func() bool {
		res := runner.Run(ctx, "", exe, "config", "--get", "color.ui")
		return res.OK() && res.Output == "auto"
	})
}

// git runs one git invocation in the checkout.
func (c *Client) git(ctx context.Context, args ...string) vcs.Result {
	return vcs.FromCmd(c.runner.Run(ctx, c.path, c.exe, args...))
}

// colored prepends the color-forcing option when the probe asks for it.
func (c *Client) colored(args ...string) []string {
	if !c.color.Value() {
		return args
	}
	return append([]string{"-c", "color.ui=always"}, args...)
}
