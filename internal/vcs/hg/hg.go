// Package hg implements the Mercurial backend.
//
// Mercurial has no per-branch upstream: every checkout exports the URL of
// its "default" path, paired with the named branch or, in exact mode, the
// full changeset hash.
package hg

import (
	"context"
	"os"
	"path/filepath"

	"github.com/raphi011/vcs/internal/cmd"
	"github.com/raphi011/vcs/internal/vcs"
)

// Detect reports whether path is the root of a Mercurial checkout.
func Detect(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".hg"))
	return err == nil && info.IsDir()
}

// Options configures a Client.
type Options struct {
	Executable string
	Color      *vcs.Probe
	Runner     cmd.Runner
}

// Client runs hg operations in one checkout.
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
		exe = "hg"
	}
	runner := opts.Runner
	if runner == nil {
		runner = cmd.Exec{}
	}
	return &Client{path: path, exe: exe, color: opts.Color, runner: runner}
}

func (c *Client) Type() vcs.Type { return vcs.TypeHg }
func (c *Client) Path() string   { return c.path }

// ColorProbe mirrors git.ColorProbe using hg's ui.color setting.
func ColorProbe(ctx context.Context, runner cmd.Runner, exe string, mode vcs.ColorMode) *vcs.Probe {
	switch mode {
	case vcs.ColorAlways:
		return vcs.FixedProbe(true)
	case vcs.ColorNever:
		return vcs.FixedProbe(false)
	}
	return vcs.NewProbe(func() bool {
		res := runner.Run(ctx, "", exe, "config", "ui.color")
		return res.OK() && res.Output == "auto"
	})
}

func (c *Client) hg(ctx context.Context, args ...string) vcs.Result {
	return vcs.FromCmd(c.runner.Run(ctx, c.path, c.exe, args...))
}

func (c *Client) colored(args ...string) []string {
	if !c.color.Value() {
		return args
	}
	return append(args, "--color=always")
}

// defaultPath returns the URL of the "default" path.
func (c *Client) defaultPath(ctx context.Context) (string, vcs.Result) {
	res := c.hg(ctx, "paths", "default")
	if !res.OK() {
		return "", res.Prefixed("Could not determine remote url: ")
	}
	return res.Output, res
}
