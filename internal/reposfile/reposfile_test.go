package reposfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `repositories:
  src/foo:
    type: git
    url: https://github.com/org/foo.git
    version: main
  lib/bar:
    type: hg
    url: https://hg.example.com/bar
    version: default
  tools/pinned:
    type: git
    url: git@example.com:tools.git
    version: 3f2a9c1d5e7b8a6f4c2e0d9b1a3c5e7f9b2d4a6c
`

func TestRead(t *testing.T) {
	t.Parallel()

	f, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	entries := f.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"lib/bar", "src/foo", "tools/pinned"},
		[]string{entries[0].Path, entries[1].Path, entries[2].Path})
	assert.Equal(t, Entry{Type: "hg", URL: "https://hg.example.com/bar", Version: "default"}, entries[0].Entry)
}

func TestRead_Empty(t *testing.T) {
	t.Parallel()

	f, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Entries())
}

func TestRead_MissingValuesAreKept(t *testing.T) {
	t.Parallel()

	f, err := Read(strings.NewReader("repositories:\n  a:\n    type: git\n    url: https://example.com/a.git\n"))
	require.NoError(t, err)
	assert.Empty(t, f.Repositories["a"].Version, "import reports the missing version per entry")
}

func TestRead_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"absolute path", "repositories:\n  /etc/x:\n    type: git\n", `"/etc/x" must be relative`},
		{"escaping path", "repositories:\n  a/../../x:\n    type: git\n", "escapes the target directory"},
		{"parent path", "repositories:\n  ..:\n    type: git\n", "escapes the target directory"},
		{"missing type", "repositories:\n  a:\n    url: u\n", "lacks the 'type' value"},
		{"suggested type", "repositories:\n  a:\n    type: Git\n", `did you mean "git"?`},
		{"unknown type", "repositories:\n  a:\n    type: svn\n", "supported: git, hg"},
		{"unknown field", "repositories:\n  a:\n    type: git\n    branch: main\n", "field branch not found"},
		{"not yaml", "repositories: [", "failed to parse repositories"},
		{"same directory twice", "repositories:\n  a:\n    type: git\n  ./a:\n    type: git\n", `"./a" and "a" name the same directory`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Read(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRead_ReportsAllProblems(t *testing.T) {
	t.Parallel()

	_, err := Read(strings.NewReader("repositories:\n  /a:\n    type: git\n  b:\n    type: cvs\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"/a" must be relative`)
	assert.Contains(t, err.Error(), `unknown type "cvs"`)
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"Git", "git"},
		{"HG", "hg"},
		{"github", "git"},
		{"mercurial-hg", "hg"},
		{"svn", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Suggest(tt.name, KnownTypes), tt.name)
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	var f File
	f.Add("src/foo", Entry{Type: "git", URL: "https://github.com/org/foo.git", Version: "main"})
	f.Add("lib/bar", Entry{Type: "hg", URL: "https://hg.example.com/bar", Version: "default"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, f))

	want := `repositories:
  lib/bar:
    type: hg
    url: https://hg.example.com/bar
    version: default
  src/foo:
    type: git
    url: https://github.com/org/foo.git
    version: main
`
	assert.Equal(t, want, buf.String())
}

func TestWrite_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, File{}))
	assert.Equal(t, "repositories: {}\n", buf.String())
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "workspace.repos")
	f, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	require.NoError(t, Save(path, f))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, f, loaded)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestEntry_Locator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		version string
		exact   bool
	}{
		{"branch", "main", false},
		{"tag", "v1.2.0", false},
		{"git sha1", "3f2a9c1d5e7b8a6f4c2e0d9b1a3c5e7f9b2d4a6c", true},
		{"git sha256", strings.Repeat("ab", 32), true},
		{"short sha", "3f2a9c1", false},
		{"hex-like branch", strings.Repeat("g", 40), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := Entry{Type: "git", URL: "https://example.com/a.git", Version: tt.version}
			loc := e.Locator("/ws/a")
			assert.Equal(t, "/ws/a", loc.Path)
			assert.Equal(t, e.URL, loc.URL)
			assert.Equal(t, tt.version, loc.Version)
			assert.Equal(t, tt.exact, loc.Exact)
		})
	}
}

func TestLevels(t *testing.T) {
	t.Parallel()

	var f File
	for _, p := range []string{"src/app", "src/app/vendor/lib", "src/app-tools", "docs", "src/app/plugins"} {
		f.Add(p, Entry{Type: "git", URL: "https://example.com/" + p, Version: "main"})
	}

	var got [][]string
	for _, level := range f.Levels() {
		var paths []string
		for _, e := range level {
			paths = append(paths, e.Path)
		}
		got = append(got, paths)
	}

	assert.Equal(t, [][]string{
		{"docs", "src/app", "src/app-tools"},
		{"src/app/plugins", "src/app/vendor/lib"},
	}, got)
}

func TestLevels_RootEntry(t *testing.T) {
	t.Parallel()

	var f File
	f.Add(".", Entry{Type: "git"})
	f.Add("sub", Entry{Type: "hg"})

	levels := f.Levels()
	require.Len(t, levels, 2)
	assert.Equal(t, ".", levels[0][0].Path)
	assert.Equal(t, "sub", levels[1][0].Path)
}

func TestLevels_UncleanPaths(t *testing.T) {
	t.Parallel()

	f, err := Read(strings.NewReader("repositories:\n  ./a/b:\n    type: git\n  a:\n    type: git\n  c//d/:\n    type: hg\n"))
	require.NoError(t, err)

	levels := f.Levels()
	require.Len(t, levels, 2)
	require.Len(t, levels[0], 2)
	assert.Equal(t, "a", levels[0][0].Path)
	assert.Equal(t, "c/d", levels[0][1].Path)
	require.Len(t, levels[1], 1)
	assert.Equal(t, "a/b", levels[1][0].Path, "a nested entry waits for its parent")
}

func TestLevels_RootEntrySortsAfterSibling(t *testing.T) {
	t.Parallel()

	var f File
	f.Add("-tools", Entry{Type: "git"})
	f.Add(".", Entry{Type: "git"})

	levels := f.Levels()
	require.Len(t, levels, 2)
	assert.Equal(t, ".", levels[0][0].Path)
	assert.Equal(t, "-tools", levels[1][0].Path)
}

func TestLevels_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, File{}.Levels())
}
