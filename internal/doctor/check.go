package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/raphi011/vcs/internal/cmd"
	"github.com/raphi011/vcs/internal/config"
	"github.com/raphi011/vcs/internal/vcs"
)

// checkExecutable resolves tool and asks it for its version.
func checkExecutable(ctx context.Context, runner cmd.Runner, tool *vcs.Tool) Check {
	c := Check{Name: tool.Name()}

	exe, err := tool.Path()
	if err != nil {
		c.Status = StatusWarn
		c.Detail = fmt.Sprintf("not found (%v)", err)
		return c
	}

	res := runner.Run(ctx, "", exe, "--version")
	if !res.OK() {
		c.Status = StatusFail
		c.Detail = fmt.Sprintf("%s --version failed: %s", exe, firstLine(res.Output))
		return c
	}

	c.Status = StatusOK
	c.Detail = fmt.Sprintf("%s (%s)", firstLine(res.Output), exe)
	return c
}

// checkConfig verifies the config file at path parses and validates.
func checkConfig(path string) Check {
	c := Check{Name: "config"}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		c.Status = StatusWarn
		c.Detail = fmt.Sprintf("%s not found, using defaults", path)
		c.FixAction = fixInitConfig
		return c
	}

	if _, err := config.Load(path); err != nil {
		c.Status = StatusFail
		c.Detail = fmt.Sprintf("%s: %v", path, err)
		return c
	}

	c.Status = StatusOK
	c.Detail = path
	return c
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
