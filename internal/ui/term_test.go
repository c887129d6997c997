package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/vcs/internal/vcs"
)

const red = "\x1b[31mred\x1b[m"

func TestNewWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mode vcs.ColorMode
		want string
	}{
		{"always keeps sequences", vcs.ColorAlways, red},
		{"never strips sequences", vcs.ColorNever, "red"},
		{"auto on a buffer strips sequences", vcs.ColorAuto, "red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			w := NewWriter(&buf, []string{"TERM=xterm-256color"}, tt.mode)
			if _, err := w.Write([]byte(red)); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("wrote %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestBackendColorMode(t *testing.T) {
	t.Parallel()

	if got := BackendColorMode(vcs.ColorAuto, colorprofile.NoTTY); got != vcs.ColorNever {
		t.Errorf("auto on NoTTY = %q, want never", got)
	}
	if got := BackendColorMode(vcs.ColorAuto, colorprofile.TrueColor); got != vcs.ColorAuto {
		t.Errorf("auto on TrueColor = %q, want auto", got)
	}
	if got := BackendColorMode(vcs.ColorAlways, colorprofile.NoTTY); got != vcs.ColorAlways {
		t.Errorf("always = %q, want always", got)
	}
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("regular file reported as terminal")
	}
	if IsTerminal(nil) {
		t.Error("nil file reported as terminal")
	}
}
