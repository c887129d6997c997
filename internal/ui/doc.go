// Package ui decides how vcs talks to the terminal.
//
// Styled output (headers, tables) and the colors that backends are forced
// to emit both flow through a [colorprofile.Writer], so a single decision
// per stream covers NO_COLOR, dumb terminals and piped output:
//
//   - "always" keeps every escape sequence
//   - "never" strips them all
//   - "auto" downsamples to what the stream supports
//
// Subpackages hold the components: styles (lipgloss palette), static
// (tables) and progress (bubbletea progress bar on stderr).
package ui
