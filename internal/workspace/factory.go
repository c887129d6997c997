// Package workspace finds checkouts and runs backend operations over them.
//
// A [Factory] owns the process-wide state of every backend: the executable
// resolved at most once and the color probe computed at most once. Clients
// built by the factory share that state and nothing else, so [Run] can drive
// many of them concurrently.
package workspace

import (
	"context"
	"fmt"
	"slices"

	"github.com/raphi011/vcs/internal/cmd"
	"github.com/raphi011/vcs/internal/config"
	"github.com/raphi011/vcs/internal/vcs"
	"github.com/raphi011/vcs/internal/vcs/git"
	"github.com/raphi011/vcs/internal/vcs/hg"
)

// backend ties a detector to a client constructor.
type backend struct {
	typ    vcs.Type
	detect func(path string) bool
	tool   *vcs.Tool
	color  *vcs.Probe
	build  func(path, exe string, color *vcs.Probe, runner cmd.Runner) vcs.Client
}

// Options configures a Factory.
type Options struct {
	Executables config.ExecutablesConfig
	Color       vcs.ColorMode
	Runner      cmd.Runner // defaults to cmd.Exec
}

// Factory detects checkouts and builds clients for them.
type Factory struct {
	backends []*backend
	runner   cmd.Runner
}

// NewFactory creates a factory for git and hg, tried in that order.
// Nothing is resolved until a client is requested.
func NewFactory(ctx context.Context, opts Options) *Factory {
	runner := opts.Runner
	if runner == nil {
		runner = cmd.Exec{}
	}
	mode := opts.Color
	if !mode.Valid() {
		mode = vcs.ColorAuto
	}

	f := &Factory{runner: runner}

	gitTool := vcs.NewTool("git", opts.Executables.Git)
	f.backends = append(f.backends, &backend{
		typ:    vcs.TypeGit,
		detect: git.Detect,
		tool:   gitTool,
		color:  lazyProbe(gitTool, func(exe string) *vcs.Probe { return git.ColorProbe(ctx, runner, exe, mode) }),
		build: func(path, exe string, color *vcs.Probe, runner cmd.Runner) vcs.Client {
			return git.New(path, git.Options{Executable: exe, Color: color, Runner: runner})
		},
	})

	hgTool := vcs.NewTool("hg", opts.Executables.Hg)
	f.backends = append(f.backends, &backend{
		typ:    vcs.TypeHg,
		detect: hg.Detect,
		tool:   hgTool,
		color:  lazyProbe(hgTool, func(exe string) *vcs.Probe { return hg.ColorProbe(ctx, runner, exe, mode) }),
		build: func(path, exe string, color *vcs.Probe, runner cmd.Runner) vcs.Client {
			return hg.New(path, hg.Options{Executable: exe, Color: color, Runner: runner})
		},
	})

	return f
}

// lazyProbe defers building the backend probe until the executable is
// needed, and caches its value.
func lazyProbe(tool *vcs.Tool, probe func(exe string) *vcs.Probe) *vcs.Probe {
	return vcs.NewProbe(func() bool {
		exe, err := tool.Path()
		if err != nil {
			return false
		}
		return probe(exe).Value()
	})
}

// Types returns the supported backend types in detection order.
func (f *Factory) Types() []vcs.Type {
	types := make([]vcs.Type, len(f.backends))
	for i, b := range f.backends {
		types[i] = b.typ
	}
	return types
}

// Detect returns the first backend type whose detector accepts path.
func (f *Factory) Detect(path string) (vcs.Type, bool) {
	for _, b := range f.backends {
		if b.detect(path) {
			return b.typ, true
		}
	}
	return "", false
}

// ForName maps a type name from a .repos document to a backend type.
func (f *Factory) ForName(name string) (vcs.Type, bool) {
	idx := slices.IndexFunc(f.backends, func(b *backend) bool { return string(b.typ) == name })
	if idx < 0 {
		return "", false
	}
	return f.backends[idx].typ, true
}

// Tool returns the executable resolver of a backend, or nil for unknown types.
func (f *Factory) Tool(t vcs.Type) *vcs.Tool {
	if b := f.backend(t); b != nil {
		return b.tool
	}
	return nil
}

// Client builds a client of type t for path. The only possible error is an
// unresolvable executable (wrapping vcs.ErrExecutableNotFound) or an
// unknown type.
func (f *Factory) Client(t vcs.Type, path string) (vcs.Client, error) {
	b := f.backend(t)
	if b == nil {
		return nil, fmt.Errorf("unknown repository type %q", t)
	}
	exe, err := b.tool.Path()
	if err != nil {
		return nil, err
	}
	return b.build(path, exe, b.color, f.runner), nil
}

// Open builds the client for a discovered checkout.
func (f *Factory) Open(c Checkout) (vcs.Client, error) {
	return f.Client(c.Type, c.Path)
}

func (f *Factory) backend(t vcs.Type) *backend {
	for _, b := range f.backends {
		if b.typ == t {
			return b
		}
	}
	return nil
}
