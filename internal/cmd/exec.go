package cmd

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/vcs/internal/log"
)

// Result is the outcome of one external process.
type Result struct {
	Args   []string // program followed by its arguments
	Dir    string   // working directory
	Output string   // combined stdout and stderr, trailing whitespace trimmed
	Status int      // exit status; 0 means success
}

// OK reports whether the process exited with status 0.
func (r Result) OK() bool {
	return r.Status == 0
}

// Runner executes a program in a working directory.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) Result
}

// Exec is the os/exec backed Runner.
type Exec struct{}

// Run implements Runner.
func (Exec) Run(ctx context.Context, dir, name string, args ...string) Result {
	return Run(ctx, dir, name, args...)
}

// Run executes name with args in dir and captures combined output.
// It spawns exactly one process and never retries.
func Run(ctx context.Context, dir, name string, args ...string) Result {
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.Command(name, args...)
	c.Dir = dir
	out, err := c.CombinedOutput()
	done(time.Since(start))

	res := Result{
		Args:   append([]string{name}, args...),
		Dir:    dir,
		Output: strings.TrimRight(string(out), " \t\r\n"),
	}
	if err != nil {
		res.Status = exitStatus(err)
		if res.Output == "" {
			res.Output = err.Error()
		}
	}
	return res
}

// exitStatus maps a process error to a status. Errors that are not exit
// errors (the program could not be started) count as status 1.
func exitStatus(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
