package vcs

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// ErrExecutableNotFound indicates a backend executable is not installed or not
// in PATH. It is the only failure that aborts a whole run.
var ErrExecutableNotFound = errors.New("executable not found")

// Tool resolves a backend executable lazily, at most once per process.
type Tool struct {
	name     string
	override string

	once sync.Once
	path string
	err  error

	lookPath func(string) (string, error)
}

// NewTool creates a resolver for the executable name. A non-empty override
// (from configuration) is used instead of searching PATH.
func NewTool(name, override string) *Tool {
	return &Tool{name: name, override: override, lookPath: exec.LookPath}
}

// FixedTool returns a Tool that always resolves to path.
func FixedTool(name, path string) *Tool {
	t := &Tool{name: name}
	t.once.Do(func() { t.path = path })
	return t
}

// Name returns the executable name.
func (t *Tool) Name() string {
	return t.name
}

// Path returns the resolved executable path.
func (t *Tool) Path() (string, error) {
	t.once.Do(func() {
		candidate := t.name
		if t.override != "" {
			candidate = t.override
		}
		if filepath.IsAbs(candidate) {
			if info, err := os.Stat(candidate); err != nil || info.IsDir() {
				t.err = fmt.Errorf("%s (%s): %w", t.name, candidate, ErrExecutableNotFound)
				return
			}
			t.path = candidate
			return
		}
		p, err := t.lookPath(candidate)
		if err != nil {
			t.err = fmt.Errorf("%s: %w", candidate, ErrExecutableNotFound)
			return
		}
		t.path = p
	})
	return t.path, t.err
}

// ColorMode selects whether pass-through commands force colored output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // follow the backend's own configuration
	ColorAlways ColorMode = "always" // always force colors
	ColorNever  ColorMode = "never"  // never inject color flags
)

// Valid reports whether m is a known mode.
func (m ColorMode) Valid() bool {
	return m == ColorAuto || m == ColorAlways || m == ColorNever
}

// Probe is a boolean computed on first use and fixed afterwards.
type Probe struct {
	once  sync.Once
	fn    func() bool
	value bool
}

// NewProbe creates a probe that calls fn on first use.
func NewProbe(fn func() bool) *Probe {
	return &Probe{fn: fn}
}

// FixedProbe returns a probe with a preset value.
func FixedProbe(v bool) *Probe {
	p := &Probe{}
	p.once.Do(func() { p.value = v })
	return p
}

// Value returns the probed value, computing it on the first call.
// A nil probe is false.
func (p *Probe) Value() bool {
	if p == nil {
		return false
	}
	p.once.Do(func() {
		if p.fn != nil {
			p.value = p.fn()
		}
	})
	return p.value
}
