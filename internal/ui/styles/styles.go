// Package styles provides shared lipgloss styles for UI components.
//
// This package centralizes color definitions and styling to ensure
// visual consistency across result headers, tables and the progress bar.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // headers of successful results, progress bar start
	Accent  color.Color // progress bar end
	Success color.Color // "ok" checks
	Error   color.Color // failed results
	Muted   color.Color // command lines, secondary text
	Warning color.Color // "warn" checks
}

var (
	// DefaultTheme is the default color scheme
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),  // cyan/teal
		Accent:  lipgloss.Color("212"), // pink/magenta
		Success: lipgloss.Color("82"),  // green
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // dark gray
		Warning: lipgloss.Color("214"), // orange
	}

	// NoneTheme renders without any colors (uses terminal defaults)
	// Formatting (bold/italic) is preserved
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
	}
)

// Colors of the active theme
var (
	Primary color.Color
	Accent  color.Color
	Success color.Color
	Error   color.Color
	Muted   color.Color
	Warning color.Color
)

// Styles of the active theme
var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	HeaderStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	MutedStyle   lipgloss.Style
	WarningStyle lipgloss.Style
)

var currentTheme Theme

func init() {
	apply(DefaultTheme)
}

// Current returns the current theme
func Current() Theme {
	return currentTheme
}

// Init selects the default theme, or NoneTheme when colors are disabled.
// Call this after flags are parsed and before rendering anything.
func Init(colors bool) {
	if colors {
		apply(DefaultTheme)
		return
	}
	apply(NoneTheme)
}

// apply updates all global color and style variables to use the given theme
func apply(t Theme) {
	currentTheme = t

	Primary = t.Primary
	Accent = t.Accent
	Success = t.Success
	Error = t.Error
	Muted = t.Muted
	Warning = t.Warning

	HeaderStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
}
