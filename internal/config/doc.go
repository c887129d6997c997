// Package config handles loading and validation of vcs configuration.
//
// Configuration is read from ~/.config/vcs/config.toml (or the file named by
// VCS_CONFIG) with environment variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - Command-line flags (--workers, --nested, --color)
//   - VCS_WORKERS env var: number of concurrent repositories
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - workers: concurrent repository operations (default: 8, 1 = sequential)
//   - nested: keep searching inside checkouts that were already found
//   - color: "auto", "always" or "never" for pass-through commands
//   - [executables]: explicit git/hg executable locations
//   - [log] limit: default entries for "vcs log" (default: 3)
//   - [diff] context: default unified context lines for "vcs diff"
//
// A missing file is not an error; an unreadable or invalid one is.
package config
