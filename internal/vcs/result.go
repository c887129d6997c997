package vcs

import (
	"fmt"
	"strings"

	"github.com/raphi011/vcs/internal/cmd"
)

// Result is the outcome of one logical operation on a repository. It may
// aggregate several external invocations.
type Result struct {
	Commands [][]string // invocations in execution order
	Dir      string     // repository path
	Output   string
	Status   int // 0 means success
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Status == 0
}

// Command renders the invocations as a single shell-like line.
func (r Result) Command() string {
	parts := make([]string, 0, len(r.Commands))
	for _, c := range r.Commands {
		parts = append(parts, strings.Join(c, " "))
	}
	return strings.Join(parts, " && ")
}

// Prefixed returns a copy of r whose output starts with the formatted text.
func (r Result) Prefixed(format string, args ...any) Result {
	r.Output = fmt.Sprintf(format, args...) + r.Output
	return r
}

// FromCmd wraps a single process result.
func FromCmd(res cmd.Result) Result {
	return Result{
		Commands: [][]string{res.Args},
		Dir:      res.Dir,
		Output:   res.Output,
		Status:   res.Status,
	}
}

// Fail builds a failure that did not come from an external process
// (preconditions, conflicts, resolution failures).
func Fail(dir, format string, args ...any) Result {
	return Result{
		Dir:    dir,
		Output: fmt.Sprintf(format, args...),
		Status: 1,
	}
}

// Export is the reproducible pointer to a working copy's state.
type Export struct {
	URL     string
	Version string
}

// ExportResult is a Result that carries the export pointer on success.
type ExportResult struct {
	Result
	Export *Export // nil unless the export succeeded
}

// Chain accumulates the steps of a sequential multi-step operation.
// Each step gates the next: the caller stops at the first failure and
// returns that step's result (optionally prefixed) through Fail.
type Chain struct {
	dir      string
	commands [][]string
	outputs  []string
}

// NewChain starts a chain for the repository at dir.
func NewChain(dir string) *Chain {
	return &Chain{dir: dir}
}

// Add records a step whose output is part of the final output.
func (c *Chain) Add(r Result) {
	c.commands = append(c.commands, r.Commands...)
	c.outputs = append(c.outputs, r.Output)
}

// Track records a step's invocations without keeping its output.
// Used for resolution steps whose output is consumed, not displayed.
func (c *Chain) Track(r Result) {
	c.commands = append(c.commands, r.Commands...)
}

// Commands returns the invocations recorded so far.
func (c *Chain) Commands() [][]string {
	return append([][]string(nil), c.commands...)
}

// Fail returns the failed step r with the invocations recorded so far
// placed before its own.
func (c *Chain) Fail(r Result) Result {
	r.Commands = append(c.Commands(), r.Commands...)
	return r
}

// Done returns the successful aggregate. Without an explicit output the
// non-empty recorded outputs are joined by newlines.
func (c *Chain) Done(output ...string) Result {
	var kept []string
	for _, o := range c.outputs {
		if o != "" {
			kept = append(kept, o)
		}
	}
	out := strings.Join(kept, "\n")
	if len(output) > 0 {
		out = strings.Join(output, "\n")
	}
	return Result{
		Commands: c.Commands(),
		Dir:      c.dir,
		Output:   out,
	}
}
