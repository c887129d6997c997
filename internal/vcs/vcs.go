// Package vcs defines the contract shared by all version-control backends.
//
// A backend (git, hg) is selected once per checkout by its detector and then
// used through the [Client] interface. Every operation returns a [Result]:
// failures of the underlying tool are data, not Go errors, so an operation
// over many repositories carries on past individual failures.
//
// # Process-wide state
//
// Two values reflect the ambient environment and are computed at most once
// per process: the location of each backend executable ([Tool]) and whether
// the backend's own configuration asks for automatic colors ([Probe]). Both
// are created by the caller and injected into clients so tests can use fixed
// values.
package vcs

import (
	"context"
	"slices"
)

// Type names a backend.
type Type string

const (
	TypeGit Type = "git"
	TypeHg  Type = "hg"
)

// String returns the string representation of Type.
func (t Type) String() string {
	return string(t)
}

// Locator is an import request: reproduce URL at Version inside Path.
type Locator struct {
	Path    string
	URL     string
	Version string
	Exact   bool // pin to a revision rather than a tracked branch
}

// Missing names the required fields that are empty, quoted the way import
// diagnostics print them. Returns "" when nothing is missing.
func (l Locator) Missing() string {
	switch {
	case l.URL == "" && l.Version == "":
		return "'url' and 'version'"
	case l.URL == "":
		return "'url'"
	case l.Version == "":
		return "'version'"
	}
	return ""
}

// Remote is a named reference to another repository location.
type Remote struct {
	Name string
	URL  string
}

// OrderRemotes returns names in preference order: "upstream" first, then
// "origin", then the rest in their given order.
func OrderRemotes(names []string) []string {
	ordered := make([]string, 0, len(names))
	for _, preferred := range []string{"upstream", "origin"} {
		if slices.Contains(names, preferred) {
			ordered = append(ordered, preferred)
		}
	}
	for _, name := range names {
		if name == "" || name == "upstream" || name == "origin" || slices.Contains(ordered, name) {
			continue
		}
		ordered = append(ordered, name)
	}
	return ordered
}

// BranchOptions configures Client.Branch.
type BranchOptions struct {
	All bool // list all branches instead of only the current one
}

// DiffOptions configures Client.Diff.
type DiffOptions struct {
	Context int // unified context lines, 0 keeps the tool default
}

// LogOptions configures Client.Log. LimitTag and LimitUntagged take
// precedence over Limit.
type LogOptions struct {
	Limit         int    // number of entries, 0 means unlimited
	LimitTag      string // only entries since this tag
	LimitUntagged bool   // only entries since the nearest tag
}

// StatusOptions configures Client.Status.
type StatusOptions struct {
	Quiet     bool // hide untracked files
	HideEmpty bool // return empty output for clean working copies
}

// ExportOptions configures Client.Export.
type ExportOptions struct {
	Exact bool // pin to the current revision instead of the tracked branch
}

// Client operates on one checkout of one backend.
type Client interface {
	Type() Type
	Path() string

	Branch(ctx context.Context, opts BranchOptions) Result
	Custom(ctx context.Context, args []string) Result
	Diff(ctx context.Context, opts DiffOptions) Result
	Log(ctx context.Context, opts LogOptions) Result
	Pull(ctx context.Context) Result
	Push(ctx context.Context) Result
	Remotes(ctx context.Context) Result
	Status(ctx context.Context, opts StatusOptions) Result

	// Export resolves the (url, version) pair reproducing the working copy.
	Export(ctx context.Context, opts ExportOptions) ExportResult

	// Import reconciles the client's path with loc. Calling it again with
	// the same locator succeeds without changing anything.
	Import(ctx context.Context, loc Locator) Result
}
