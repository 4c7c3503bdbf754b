package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepo creates a git repository with one committed file. Tests skip
// when git is not installed.
func newTestRepo(t *testing.T) (*Runner, string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}
	run("init", "-q")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"),
		[]byte("package demo\n\nfunc Alpha() int { return 1 }\n"), 0o644))
	run("add", "a.go")
	run("commit", "-q", "-m", "add alpha")
	return &Runner{Dir: dir}, dir
}

func TestChangedFiles(t *testing.T) {
	r, dir := newTestRepo(t)
	ctx := context.Background()

	changed, err := r.ChangedFiles(ctx, "HEAD")
	require.NoError(t, err)
	assert.Empty(t, changed)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"),
		[]byte("package demo\n\nfunc Alpha() int { return 2 }\n"), 0o644))

	changed, err = r.ChangedFiles(ctx, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go"}, changed)
}

func TestUntrackedFiles(t *testing.T) {
	r, dir := newTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.go"),
		[]byte("package demo\n"), 0o644))

	untracked, err := r.UntrackedFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"new.go"}, untracked)
}

func TestShow(t *testing.T) {
	r, dir := newTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"),
		[]byte("package demo\n\nfunc Alpha() int { return 99 }\n"), 0o644))

	content, err := r.Show(context.Background(), "HEAD", "a.go")
	require.NoError(t, err)
	assert.Contains(t, string(content), "return 1", "committed version, not working copy")
}

func TestShow_MissingPath(t *testing.T) {
	r, _ := newTestRepo(t)
	_, err := r.Show(context.Background(), "HEAD", "ghost.go")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLogL(t *testing.T) {
	r, _ := newTestRepo(t)
	entries, err := r.LogL(context.Background(), "a.go", 3, 3, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "add alpha", entries[0].Subject)
	assert.Equal(t, "test", entries[0].Author)
	assert.NotEmpty(t, entries[0].Commit)
	assert.NotEmpty(t, entries[0].Date)
}

func TestRun_NotARepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	r := &Runner{Dir: t.TempDir()}
	_, err := r.ChangedFiles(context.Background(), "HEAD")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}
