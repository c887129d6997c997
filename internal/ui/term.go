package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"

	"github.com/raphi011/vcs/internal/vcs"
)

// NewWriter wraps w so escape sequences match the color mode.
func NewWriter(w io.Writer, environ []string, mode vcs.ColorMode) *colorprofile.Writer {
	cw := colorprofile.NewWriter(w, environ)
	switch mode {
	case vcs.ColorAlways:
		cw.Profile = colorprofile.TrueColor
	case vcs.ColorNever:
		cw.Profile = colorprofile.NoTTY
	}
	return cw
}

// HasColor reports whether a profile renders colors at all.
func HasColor(p colorprofile.Profile) bool {
	return p == colorprofile.TrueColor || p == colorprofile.ANSI256 || p == colorprofile.ANSI
}

// BackendColorMode narrows the configured mode for the backends: in auto
// mode colors are only forced when the output can show them.
func BackendColorMode(mode vcs.ColorMode, out colorprofile.Profile) vcs.ColorMode {
	if mode == vcs.ColorAuto && !HasColor(out) {
		return vcs.ColorNever
	}
	return mode
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
