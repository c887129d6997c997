package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/vcs/internal/storage"
	"github.com/raphi011/vcs/internal/vcs"
)

// ExecutablesConfig holds optional explicit executable locations.
type ExecutablesConfig struct {
	Git string `toml:"git"`
	Hg  string `toml:"hg"`
}

// For returns the configured executable for a backend type ("" if unset).
func (e ExecutablesConfig) For(t vcs.Type) string {
	switch t {
	case vcs.TypeGit:
		return e.Git
	case vcs.TypeHg:
		return e.Hg
	}
	return ""
}

// LogConfig holds defaults for "vcs log".
type LogConfig struct {
	Limit int `toml:"limit"`
}

// DiffConfig holds defaults for "vcs diff".
type DiffConfig struct {
	Context int `toml:"context"`
}

// Config holds the vcs configuration
type Config struct {
	Workers     int               `toml:"workers"`
	Nested      bool              `toml:"nested"`
	Color       string            `toml:"color"`
	Executables ExecutablesConfig `toml:"executables"`
	Log         LogConfig         `toml:"log"`
	Diff        DiffConfig        `toml:"diff"`
}

// DefaultWorkers bounds concurrent repository operations.
const DefaultWorkers = 8

// DefaultLogLimit is the number of log entries shown per repository.
const DefaultLogLimit = 3

// Default returns the default configuration
func Default() Config {
	return Config{
		Workers: DefaultWorkers,
		Color:   string(vcs.ColorAuto),
		Log:     LogConfig{Limit: DefaultLogLimit},
	}
}

// ColorMode returns the configured color mode.
func (c *Config) ColorMode() vcs.ColorMode {
	return vcs.ColorMode(c.Color)
}

// Path returns the config file location: $VCS_CONFIG when set,
// otherwise ~/.config/vcs/config.toml.
func Path() (string, error) {
	if p := os.Getenv("VCS_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vcs", "config.toml"), nil
}

// Load reads the config file at path and applies environment overrides.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Default(), fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Default(), err
	}

	if cfg.Color == "" {
		cfg.Color = string(vcs.ColorAuto)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// applyEnv overrides file settings with VCS_* environment variables.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("VCS_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid VCS_WORKERS %q: %w", v, err)
		}
		cfg.Workers = n
	}
	return nil
}

const defaultConfig = `# vcs configuration

# Number of repositories processed concurrently (1 = sequential)
workers = 8

# Keep searching for checkouts inside checkouts that were already found
nested = false

# Force colored output of status, diff, log and pull:
#   "auto"   - follow the backend's own setting (git color.ui, hg ui.color)
#   "always" - always force colors
#   "never"  - never force colors
color = "auto"

# Explicit executable locations (absolute path or a name looked up in PATH)
# [executables]
# git = "/usr/bin/git"
# hg = "hg"

[log]
# Entries shown per repository by "vcs log" (0 = unlimited)
limit = 3

[diff]
# Unified context lines for "vcs diff" (0 = the backend's default)
context = 0
`

// Init creates a default config file at path.
// If force is true, overwrites an existing file.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	return storage.WriteFile(path, []byte(defaultConfig), 0644)
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

type configKey struct{}

// WithConfig stores cfg in ctx.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config stored in ctx, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(configKey{}).(*Config)
	return cfg
}

type workDirKey struct{}

// WithWorkDir stores the directory relative arguments are resolved against.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the stored work dir, falling back to os.Getwd.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	wd, _ := os.Getwd()
	return wd
}
