package codeindex

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gitify turns the fixture root into a repository with everything
// committed. Tests skip when git is not installed.
func gitify(t *testing.T, root string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = root
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}
	run("init", "-q")
	run("add", ".")
	run("commit", "-q", "-m", "initial")
}

func TestDiff_CleanTree(t *testing.T) {
	ix, root := newTestIndex(t)
	gitify(t, root)

	res, err := ix.Diff(context.Background(), DiffOptions{})
	require.NoError(t, err)
	assert.Equal(t, "HEAD", res.Ref)
	assert.Empty(t, res.VcsError)
	assert.Empty(t, res.Changed)
}

func TestDiff_ModifiedSignatureCountsCallers(t *testing.T) {
	ix, root := newTestIndex(t)
	gitify(t, root)
	_, err := ix.Ensure(context.Background())
	require.NoError(t, err)

	// Change Parse's signature and add a new function.
	changed := `package demo

func Parse(input string, strict bool) string {
	out := clean(input)
	return out
}

func clean(s string) string {
	return s
}

func Render(s string) string {
	return s
}

func Fresh() string {
	return ""
}
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "util.go"), []byte(changed), 0o644))

	res, err := ix.Diff(context.Background(), DiffOptions{})
	require.NoError(t, err)
	require.Len(t, res.Changed, 1)

	df := res.Changed[0]
	assert.Equal(t, "util.go", df.File)

	require.Len(t, df.Added, 1)
	assert.Equal(t, "Fresh", df.Added[0].Name)

	require.Len(t, df.Modified, 1)
	assert.Equal(t, "Parse", df.Modified[0].Name)
	assert.Equal(t, 2, df.Modified[0].Callers, "app.go and extra.go call Parse")
	assert.Equal(t, 2, df.MaxCallers)
	assert.Equal(t, 2, res.TotalCallers)
	assert.Empty(t, df.Removed)
}

func TestDiff_RemovedDefinition(t *testing.T) {
	ix, root := newTestIndex(t)
	gitify(t, root)
	_, err := ix.Ensure(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "orphan.go"),
		[]byte("package demo\n"), 0o644))

	res, err := ix.Diff(context.Background(), DiffOptions{})
	require.NoError(t, err)
	require.Len(t, res.Changed, 1)
	require.Len(t, res.Changed[0].Removed, 1)
	assert.Equal(t, "Lonely", res.Changed[0].Removed[0].Name)
}

func TestDiff_NoRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	ix, _ := newTestIndex(t)
	res, err := ix.Diff(context.Background(), DiffOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, res.VcsError)
	assert.Empty(t, res.Changed)
}

func TestHistory_SymbolLog(t *testing.T) {
	ix, root := newTestIndex(t)
	gitify(t, root)

	res, err := ix.History(context.Background(), HistoryOptions{Symbol: "Parse"})
	require.NoError(t, err)
	require.NotNil(t, res.Symbol)
	assert.Empty(t, res.VcsError)
	require.NotEmpty(t, res.Entries)
	assert.Equal(t, "initial", res.Entries[0].Subject)
}

func TestHistory_UnknownSymbol(t *testing.T) {
	ix, _ := newTestIndex(t)
	res, err := ix.History(context.Background(), HistoryOptions{Symbol: "Pars"})
	require.NoError(t, err)
	assert.Nil(t, res.Symbol)
	assert.Contains(t, res.Suggestions, "Parse")
}
