package format

import (
	"fmt"
	"strings"

	"github.com/raphi011/vcs/internal/ui/styles"
	"github.com/raphi011/vcs/internal/vcs"
)

// Options controls result rendering.
type Options struct {
	ShowCommand bool // list the invocations under the header
	HideEmpty   bool // render nothing for successful results without output
}

// Header renders "=== <path> (<type>) ===".
func Header(path string, t vcs.Type, failed bool) string {
	text := fmt.Sprintf("=== %s (%s) ===", path, t)
	if failed {
		return styles.ErrorStyle.Render(text)
	}
	return styles.HeaderStyle.Render(text)
}

// Result renders one repository's result block, newline terminated.
// Returns "" when opts.HideEmpty suppresses it.
func Result(path string, t vcs.Type, r vcs.Result, opts Options) string {
	if opts.HideEmpty && r.OK() && r.Output == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(Header(path, t, !r.OK()))
	b.WriteString("\n")

	if opts.ShowCommand {
		for _, c := range r.Commands {
			b.WriteString(styles.MutedStyle.Render("$ " + strings.Join(c, " ")))
			b.WriteString("\n")
		}
	}

	switch {
	case r.Output != "":
		b.WriteString(r.Output)
		b.WriteString("\n")
	case !r.OK():
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Command failed with exit status %d", r.Status)))
		b.WriteString("\n")
	}
	return b.String()
}

// Summary renders the closing line of a batch, or "" when nothing failed.
func Summary(total, failed int) string {
	if failed == 0 {
		return ""
	}
	noun := "repositories"
	if total == 1 {
		noun = "repository"
	}
	return styles.ErrorStyle.Render(fmt.Sprintf("%d of %d %s failed", failed, total, noun))
}
