package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/raphi011/vcs/internal/vcs"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// ValidColorModes lists the accepted values of "color".
var ValidColorModes = []string{string(vcs.ColorAuto), string(vcs.ColorAlways), string(vcs.ColorNever)}

// Validate checks value ranges and enums.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if err := validateEnum(c.Color, "color", ValidColorModes); err != nil {
		return err
	}
	if c.Log.Limit < 0 {
		return fmt.Errorf("%w: log.limit must not be negative, got %d", ErrInvalid, c.Log.Limit)
	}
	if c.Diff.Context < 0 {
		return fmt.Errorf("%w: diff.context must not be negative, got %d", ErrInvalid, c.Diff.Context)
	}
	for field, exe := range map[string]string{"executables.git": c.Executables.Git, "executables.hg": c.Executables.Hg} {
		if err := validateExecutable(exe, field); err != nil {
			return err
		}
	}
	return nil
}

// ValidateColorMode validates a --color flag value.
func ValidateColorMode(mode string) error {
	return validateEnum(mode, "color", ValidColorModes)
}

// validateExecutable accepts an absolute path or a bare name looked up in PATH.
// Relative paths like "bin/git" depend on the working directory and are rejected.
func validateExecutable(exe, field string) error {
	if exe == "" || filepath.IsAbs(exe) || !strings.ContainsRune(exe, filepath.Separator) {
		return nil
	}
	return fmt.Errorf("%w: %s must be absolute or a bare name, got: %q", ErrInvalid, field, exe)
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("%w: %s %q must be %s", ErrInvalid, field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
