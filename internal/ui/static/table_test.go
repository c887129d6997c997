package static

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderTable(t *testing.T) {
	t.Parallel()

	out := RenderTable(
		[]string{"PATH", "TYPE"},
		[][]string{{"src/foo", "git"}, {"lib/bar-long-name", "hg"}},
		nil,
	)
	lines := strings.Split(strings.TrimRight(ansi.Strip(out), "\n"), "\n")

	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "PATH") {
		t.Errorf("header = %q", lines[0])
	}

	// Columns are aligned: TYPE starts at the same offset on every line.
	col := strings.Index(lines[0], "TYPE")
	for _, l := range lines[1:] {
		if got := strings.IndexAny(l[col:], "gh"); got != 0 {
			t.Errorf("misaligned row %q", l)
		}
	}
}

func TestRenderTable_Empty(t *testing.T) {
	t.Parallel()

	if out := RenderTable([]string{"PATH"}, nil, nil); out != "" {
		t.Errorf("RenderTable with no rows = %q, want empty", out)
	}
}

func TestRenderTable_StatusColumn(t *testing.T) {
	t.Parallel()

	out := RenderTable(
		[]string{"CHECK", "STATUS"},
		[][]string{{"git", "ok"}, {"hg", "fail"}},
		StatusColumn(1),
	)
	plain := ansi.Strip(out)
	if !strings.Contains(plain, "ok") || !strings.Contains(plain, "fail") {
		t.Errorf("status values missing:\n%s", plain)
	}
}
