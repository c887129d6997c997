package vcs

import (
	"errors"
	"io/fs"
	"os"
)

// EnsureDir makes sure path is a directory, creating it and its parents when
// absent. The returned result is OK on success; on failure nothing else has
// been touched.
func EnsureDir(path string) Result {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return Result{Dir: path}
	case err == nil:
		return Fail(path, "Path '%s' already exists and is not a directory", path)
	case !errors.Is(err, fs.ErrNotExist):
		return Fail(path, "Could not access directory '%s': %v", path, err)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return Fail(path, "Could not create directory '%s': %v", path, err)
	}
	return Result{Dir: path}
}
