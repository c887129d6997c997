package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/raphi011/vcs/internal/vcs"
)

// Checkout is a repository found on disk.
type Checkout struct {
	Path string
	Type vcs.Type
}

// Detector reports the backend type of path, if any.
type Detector interface {
	Detect(path string) (vcs.Type, bool)
}

// Discover walks each root and returns every checkout below it, sorted by
// path with duplicates removed. A root that is itself a checkout counts.
// Hidden directories are skipped. Unless nested is set the walk does not
// descend into a checkout once found.
func Discover(d Detector, roots []string, nested bool) ([]Checkout, error) {
	seen := make(map[string]bool)
	var found []Checkout

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", root)
		}

		err = filepath.WalkDir(abs, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable subdirectories are skipped, the root is not.
				if path == abs {
					return err
				}
				return fs.SkipDir
			}
			if !entry.IsDir() {
				return nil
			}
			if path != abs && strings.HasPrefix(entry.Name(), ".") {
				return fs.SkipDir
			}

			t, ok := d.Detect(path)
			if !ok {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				found = append(found, Checkout{Path: path, Type: t})
			}
			if !nested {
				return fs.SkipDir
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	slices.SortFunc(found, func(a, b Checkout) int { return strings.Compare(a.Path, b.Path) })
	return found, nil
}

// Rel returns path relative to root for display, or path itself when it is
// not below root. The root itself is ".".
func Rel(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
