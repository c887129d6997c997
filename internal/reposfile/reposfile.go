// Package reposfile reads and writes .repos documents: YAML maps from a
// relative checkout path to the (type, url, version) needed to reproduce it.
//
//	repositories:
//	  src/foo:
//	    type: git
//	    url: https://github.com/org/foo.git
//	    version: main
//
// Export produces these documents and import consumes them.
package reposfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/raphi011/vcs/internal/storage"
	"github.com/raphi011/vcs/internal/vcs"
)

// KnownTypes lists the accepted values of an entry's type.
var KnownTypes = []string{string(vcs.TypeGit), string(vcs.TypeHg)}

// Entry describes one repository.
type Entry struct {
	Type    string `yaml:"type"`
	URL     string `yaml:"url"`
	Version string `yaml:"version"`
}

// File is a whole .repos document.
type File struct {
	Repositories map[string]Entry `yaml:"repositories"`
}

// Located is an entry together with its path, slash-separated and relative
// to the import target.
type Located struct {
	Path string
	Entry
}

// Locator builds the import request for the entry checked out at dir.
// A version that is a full revision id (40 or 64 hex digits) is an exact pin.
func (e Entry) Locator(dir string) vcs.Locator {
	return vcs.Locator{
		Path:    dir,
		URL:     e.URL,
		Version: e.Version,
		Exact:   isRevision(e.Version),
	}
}

func isRevision(v string) bool {
	if len(v) != 40 && len(v) != 64 {
		return false
	}
	for _, r := range v {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// Add records an entry, creating the map on first use.
func (f *File) Add(relPath string, e Entry) {
	if f.Repositories == nil {
		f.Repositories = make(map[string]Entry)
	}
	f.Repositories[relPath] = e
}

// Entries returns the repositories sorted by path. Paths are cleaned, so
// "./a/b" is reported as "a/b".
func (f File) Entries() []Located {
	out := make([]Located, 0, len(f.Repositories))
	for p, e := range f.Repositories {
		out = append(out, Located{Path: path.Clean(p), Entry: e})
	}
	slices.SortFunc(out, func(a, b Located) int { return strings.Compare(a.Path, b.Path) })
	return out
}

// Levels groups the entries for import: an entry's level is the number of
// other entries whose path contains it. Entries of one level never nest,
// so each level can be imported concurrently once the previous one is done.
func (f File) Levels() [][]Located {
	entries := f.Entries()
	var levels [][]Located

	for i, e := range entries {
		depth := 0
		for j, other := range entries {
			if j != i && nests(other.Path, e.Path) {
				depth++
			}
		}
		for len(levels) <= depth {
			levels = append(levels, nil)
		}
		levels[depth] = append(levels[depth], e)
	}
	return levels
}

// nests reports whether child lies strictly inside parent. Both paths are
// clean.
func nests(parent, child string) bool {
	if parent == child {
		return false
	}
	return parent == "." || strings.HasPrefix(child, parent+"/")
}

// Read parses and validates a document. An empty input is an empty document.
func Read(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("failed to parse repositories: %w", err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate checks every path and type. Two keys naming the same path
// (such as "a" and "./a") are rejected. Missing url or version values are
// left for the import of that entry to report.
func (f File) Validate() error {
	var errs []error
	keys := make([]string, 0, len(f.Repositories))
	for p := range f.Repositories {
		keys = append(keys, p)
	}
	slices.Sort(keys)

	seen := make(map[string]string, len(keys))
	for _, p := range keys {
		if err := validatePath(p); err != nil {
			errs = append(errs, err)
			continue
		}
		clean := path.Clean(p)
		if first, ok := seen[clean]; ok {
			errs = append(errs, fmt.Errorf("repository paths %q and %q name the same directory", first, p))
			continue
		}
		seen[clean] = p
	}

	for _, loc := range f.Entries() {
		if err := validateType(loc.Path, loc.Type); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validatePath(p string) error {
	clean := path.Clean(p)
	switch {
	case p == "":
		return errors.New("repository path must not be empty")
	case path.IsAbs(p) || filepath.IsAbs(filepath.FromSlash(p)):
		return fmt.Errorf("repository path %q must be relative", p)
	case clean == ".." || strings.HasPrefix(clean, "../"):
		return fmt.Errorf("repository path %q escapes the target directory", p)
	}
	return nil
}

func validateType(p, typ string) error {
	if typ == "" {
		return fmt.Errorf("repository %q lacks the 'type' value", p)
	}
	if slices.Contains(KnownTypes, typ) {
		return nil
	}
	if s := Suggest(typ, KnownTypes); s != "" {
		return fmt.Errorf("repository %q has unknown type %q (did you mean %q?)", p, typ, s)
	}
	return fmt.Errorf("repository %q has unknown type %q (supported: %s)", p, typ, strings.Join(KnownTypes, ", "))
}

// typeSource implements fuzzy.Source for candidate names.
type typeSource []string

func (s typeSource) String(i int) string { return s[i] }
func (s typeSource) Len() int            { return len(s) }

// Suggest returns the candidate closest to name, or "" if none is close.
// Case differences, fuzzy subsequences and decorated names such as
// "mercurial-hg" are recognized.
func Suggest(name string, candidates []string) string {
	for _, c := range candidates {
		if strings.EqualFold(c, name) {
			return c
		}
	}
	if matches := fuzzy.FindFrom(name, typeSource(candidates)); len(matches) > 0 {
		return matches[0].Str
	}
	for _, c := range candidates {
		if len(fuzzy.Find(c, []string{name})) > 0 {
			return c
		}
	}
	return ""
}

// Write encodes f as YAML with two-space indentation.
func Write(w io.Writer, f File) error {
	if f.Repositories == nil {
		f.Repositories = map[string]Entry{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}

// Save atomically writes f to filePath.
func Save(filePath string, f File) error {
	var buf bytes.Buffer
	if err := Write(&buf, f); err != nil {
		return err
	}
	return storage.WriteFile(filePath, buf.Bytes(), 0o644)
}

// Load reads and validates the document at filePath.
func Load(filePath string) (File, error) {
	var f File
	if err := storage.LoadYAML(filePath, &f); err != nil {
		return File{}, err
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}
