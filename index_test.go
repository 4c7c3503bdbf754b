package codeindex

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const utilGo = `package demo

func Parse(input string) string {
	out := clean(input)
	return out
}

func clean(s string) string {
	return s
}

func Render(s string) string {
	return s
}
`

const appGo = `package demo

func Apply(input string) string {
	parsed := Parse(input)
	return Render(parsed)
}
`

const extraGo = `package demo

func Extra(input string) string {
	return Parse(input)
}
`

const orphanGo = `package demo

func Lonely() string {
	return "alone"
}
`

// newTestIndex builds a CodeIndex over a fixture tree with an isolated
// cache directory.
func newTestIndex(t *testing.T) (*CodeIndex, string) {
	t.Helper()
	root := t.TempDir()
	writeFixture(t, root, "util.go", utilGo)
	writeFixture(t, root, "app.go", appGo)
	writeFixture(t, root, "extra.go", extraGo)
	writeFixture(t, root, "orphan.go", orphanGo)
	t.Setenv("CODE_INDEX_CACHE_DIR", t.TempDir())

	ix, err := New(root)
	require.NoError(t, err)
	return ix, root
}

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// touchLater rewrites a file with content and pushes its mtime forward so
// the watcher classifies it as changed.
func touchLater(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))
}

func TestNew_MissingRoot(t *testing.T) {
	t.Setenv("CODE_INDEX_CACHE_DIR", t.TempDir())
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestEnsure_BuildsGraph(t *testing.T) {
	ix, _ := newTestIndex(t)
	res, err := ix.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, res.Scanned)
	assert.Equal(t, 4, res.Changed)

	g := ix.Graph()
	require.NotNil(t, g.Symbol("util.go::Parse"))
	assert.True(t, g.HasEdge("IMPORTS", "app.go", "util.go"))
	assert.True(t, g.HasEdge("IMPORTS", "extra.go", "util.go"))
}

func TestEnsure_InvalidatesRankCache(t *testing.T) {
	ix, root := newTestIndex(t)
	_, err := ix.Ensure(context.Background())
	require.NoError(t, err)

	before, err := ix.Search(context.Background(), SearchOptions{Query: "Fresh"})
	require.NoError(t, err)
	assert.Equal(t, 0, before.Total)

	touchLater(t, root, "util.go", utilGo+"\nfunc Fresh() string { return \"\" }\n")

	after, err := ix.Search(context.Background(), SearchOptions{Query: "Fresh"})
	require.NoError(t, err)
	assert.Equal(t, 1, after.Total)
}

func TestEnsure_RemovalDropsSymbols(t *testing.T) {
	ix, root := newTestIndex(t)
	_, err := ix.Ensure(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "extra.go")))
	res, err := ix.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Deleted)
	assert.Nil(t, ix.Graph().Symbol("extra.go::Extra"))
}

func TestReindex_RebuildsEverything(t *testing.T) {
	ix, _ := newTestIndex(t)
	_, err := ix.Ensure(context.Background())
	require.NoError(t, err)

	res, err := ix.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, res.Changed)
	assert.NotNil(t, ix.Graph().Symbol("util.go::Parse"))
}
