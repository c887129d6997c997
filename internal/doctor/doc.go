// Package doctor diagnoses the environment vcs runs in.
//
// Checks cover every backend executable (resolvable, and what its
// "--version" reports) and the configuration file. A missing backend is a
// warning as long as another one is available; no backend at all is a
// failure. A missing config file is a warning that [Fix] repairs by writing
// the default configuration.
package doctor
