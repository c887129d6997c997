package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	env.checkout("a", "git")
	env.checkout("b", "hg")
	env.script.
		OK("rev-parse --abbrev-ref HEAD", "main").
		OK("rev-parse --abbrev-ref @{upstream}", "origin/main").
		OK("config --get remote.origin.url", "https://example.com/a.git").
		OK("paths default", "https://hg.example.com/b").
		OK("branch", "default")

	require.NoError(t, env.run("export"))

	assert.Equal(t, `repositories:
  a:
    type: git
    url: https://example.com/a.git
    version: main
  b:
    type: hg
    url: https://hg.example.com/b
    version: default
`, env.stdout.String())
}

func TestExport_KeysRelativeToRoot(t *testing.T) {
	env := newTestEnv(t)
	env.checkout("src/app", "hg")
	env.script.
		OK("paths default", "https://hg.example.com/app").
		OK("branch", "stable")

	require.NoError(t, env.run("export", "src"))
	assert.Contains(t, env.stdout.String(), "\n  app:\n")
}

func TestExport_ExactRevision(t *testing.T) {
	env := newTestEnv(t)
	env.checkout("b", "hg")
	env.script.
		OK("paths default", "https://hg.example.com/b").
		OK("log --rev . --template {node}", "0123456789abcdef0123456789abcdef01234567")

	require.NoError(t, env.run("export", "--exact"))
	assert.Contains(t, env.stdout.String(), "version: 0123456789abcdef0123456789abcdef01234567")
	assert.False(t, env.script.Called("branch"))
}

func TestExport_Failure(t *testing.T) {
	env := newTestEnv(t)
	env.checkout("a", "git")
	env.script.Fail("rev-parse --abbrev-ref HEAD", "fatal: bad revision", 128)

	err := env.run("export")
	require.ErrorIs(t, err, errFailed)

	assert.Equal(t, "repositories: {}\n", env.stdout.String(), "failures are left out of the document")
	assert.Contains(t, env.stderr.String(), "=== a (git) ===")
	assert.Contains(t, env.stderr.String(), "Could not determine ref: fatal: bad revision")
	assert.Contains(t, env.stderr.String(), "1 of 1 repository failed")
}

func TestExport_DuplicateKeys(t *testing.T) {
	env := newTestEnv(t)
	env.checkout("a", "hg")
	env.checkout("b", "hg")
	env.checkout("c/lib", "hg")
	env.checkout("d/lib", "hg")
	env.script.
		OK("paths default", "https://hg.example.com/repo").
		OK("branch", "default")

	err := env.run("export", "a", "b", "c", "d")
	require.ErrorIs(t, err, errFailed)

	assert.Equal(t, `repositories:
  .:
    type: hg
    url: https://hg.example.com/repo
    version: default
  lib:
    type: hg
    url: https://hg.example.com/repo
    version: default
`, env.stdout.String(), "the first checkout keeps the key")
	assert.Contains(t, env.stderr.String(), "=== b (hg) ===\nKey '.' is already used by a")
	assert.Contains(t, env.stderr.String(), "Key 'lib' is already used by "+filepath.Join("c", "lib"))
	assert.Contains(t, env.stderr.String(), "2 of 4 repositories failed")
}

func TestExport_OutputFile(t *testing.T) {
	env := newTestEnv(t)
	env.checkout("b", "hg")
	env.script.
		OK("paths default", "https://hg.example.com/b").
		OK("branch", "default")

	require.NoError(t, env.run("export", "-o", "out/ws.repos"))

	assert.Empty(t, env.stdout.String())
	data, err := os.ReadFile(filepath.Join(env.dir, "out", "ws.repos"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "url: https://hg.example.com/b")
}

const importDoc = `repositories:
  lib/a:
    type: git
    url: https://example.com/a.git
    version: main
`

func TestImport_FromStdin(t *testing.T) {
	env := newTestEnv(t)
	env.stdin = importDoc
	env.script.
		OK("clone https://example.com/a.git .", "").
		OK("checkout main", "Switched to branch 'main'")

	require.NoError(t, env.run("import"))

	assert.Equal(t, "=== "+filepath.Join("lib", "a")+" (git) ===\nSwitched to branch 'main'\n", env.stdout.String())
	assert.Equal(t, []string{"clone https://example.com/a.git .", "checkout main"}, env.script.Calls())
	assert.DirExists(t, filepath.Join(env.dir, "lib", "a"))
	assert.Equal(t, filepath.Join(env.dir, "lib", "a"), env.script.Dirs()[0])
}

func TestImport_FileAndTarget(t *testing.T) {
	env := newTestEnv(t)
	doc := filepath.Join(t.TempDir(), "ws.repos")
	require.NoError(t, os.WriteFile(doc, []byte(importDoc), 0o644))
	env.script.
		OK("clone https://example.com/a.git .", "").
		OK("checkout main", "")

	require.NoError(t, env.run("import", "-i", doc, "ws"))

	assert.Contains(t, env.stdout.String(), "=== "+filepath.Join("ws", "lib", "a")+" (git) ===")
	assert.DirExists(t, filepath.Join(env.dir, "ws", "lib", "a"))
}

func TestImport_SkipExisting(t *testing.T) {
	env := newTestEnv(t)
	env.stdin = importDoc
	require.NoError(t, os.MkdirAll(filepath.Join(env.dir, "lib", "a"), 0o755))

	require.NoError(t, env.run("import", "--skip-existing"))

	assert.Contains(t, env.stdout.String(), "Skipped existing path")
	assert.Empty(t, env.script.Calls())
}

func TestImport_NestedEntriesRunInOrder(t *testing.T) {
	env := newTestEnv(t)
	env.stdin = `repositories:
  app/plugins/x:
    type: git
    url: https://example.com/x.git
    version: main
  app:
    type: git
    url: https://example.com/app.git
    version: main
`
	env.script.
		OK("clone https://example.com/app.git .", "").
		OK("clone https://example.com/x.git .", "").
		OK("checkout main", "")

	require.NoError(t, env.run("import", "-w", "4"))

	assert.Equal(t, []string{
		"clone https://example.com/app.git .",
		"checkout main",
		"clone https://example.com/x.git .",
		"checkout main",
	}, env.script.Calls())
}

func TestImport_MissingVersion(t *testing.T) {
	env := newTestEnv(t)
	env.stdin = "repositories:\n  a:\n    type: git\n    url: https://example.com/a.git\n"

	err := env.run("import")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, env.stdout.String(), "Repository data lacks the 'version' value")
	assert.Empty(t, env.script.Calls())
}

func TestImport_InvalidDocument(t *testing.T) {
	env := newTestEnv(t)
	env.stdin = "repositories:\n  a:\n    type: Git\n    url: https://example.com/a.git\n    version: main\n"

	err := env.run("import")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errFailed)
	assert.Contains(t, err.Error(), `did you mean "git"?`)
	assert.Empty(t, env.script.Calls())
}

func TestImport_Empty(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("import"))
	assert.Contains(t, env.stderr.String(), "No repositories to import")
}

func TestImport_ExactRevision(t *testing.T) {
	env := newTestEnv(t)
	rev := "3f2a9c1d5e7b8a6f4c2e0d9b1a3c5e7f9b2d4a6c"
	env.stdin = "repositories:\n  a:\n    type: git\n    url: https://example.com/a.git\n    version: " + rev + "\n"
	require.NoError(t, os.MkdirAll(filepath.Join(env.dir, "a", ".git"), 0o755))
	env.script.
		OK("rev-parse --abbrev-ref HEAD", rev).
		OK("remote", "origin").
		OK("config --get remote.origin.url", "https://example.com/a.git").
		OK("fetch origin", "").
		OK("checkout "+rev, "")

	require.NoError(t, env.run("import"))
	assert.True(t, env.script.Called("checkout "+rev))
	assert.False(t, env.script.Called("pull --rebase"), "revisions are never rebased onto")
}
