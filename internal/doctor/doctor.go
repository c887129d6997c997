package doctor

import (
	"context"
	"fmt"

	"github.com/raphi011/vcs/internal/cmd"
	"github.com/raphi011/vcs/internal/config"
	"github.com/raphi011/vcs/internal/log"
	"github.com/raphi011/vcs/internal/vcs"
)

// Options configures Run.
type Options struct {
	ConfigPath string
	Tools      []*vcs.Tool
	Runner     cmd.Runner // defaults to cmd.Exec
}

// Run performs all checks, executables first.
func Run(ctx context.Context, opts Options) []Check {
	runner := opts.Runner
	if runner == nil {
		runner = cmd.Exec{}
	}
	l := log.FromContext(ctx)

	var checks []Check
	available := 0
	for _, tool := range opts.Tools {
		l.Debug("checking executable", "name", tool.Name())
		c := checkExecutable(ctx, runner, tool)
		if c.Status == StatusOK {
			available++
		}
		checks = append(checks, c)
	}

	// Without any backend nothing works.
	if available == 0 {
		for i := range checks {
			if checks[i].Status == StatusWarn {
				checks[i].Status = StatusFail
			}
		}
	}

	l.Debug("checking config", "path", opts.ConfigPath)
	checks = append(checks, checkConfig(opts.ConfigPath))
	return checks
}

// HasFailures reports whether any check failed.
func HasFailures(checks []Check) bool {
	for _, c := range checks {
		if c.Status == StatusFail {
			return true
		}
	}
	return false
}

// Rows renders checks as table rows: CHECK, STATUS, DETAIL.
func Rows(checks []Check) [][]string {
	rows := make([]([]string), len(checks))
	for i, c := range checks {
		rows[i] = []string{c.Name, string(c.Status), c.Detail}
	}
	return rows
}

// Fix applies the fix action of every check that has one.
// Returns a message per applied fix.
func Fix(checks []Check, opts Options) ([]string, error) {
	var fixed []string
	for _, c := range checks {
		switch c.FixAction {
		case fixInitConfig:
			if err := config.Init(opts.ConfigPath, false); err != nil {
				return fixed, fmt.Errorf("failed to write default config: %w", err)
			}
			fixed = append(fixed, fmt.Sprintf("wrote default config to %s", opts.ConfigPath))
		}
	}
	return fixed, nil
}
