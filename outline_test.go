package codeindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutline_CollapsesLeafBodies(t *testing.T) {
	ix, _ := newTestIndex(t)
	res, err := ix.Outline(context.Background(), OutlineOptions{File: "app.go"})
	require.NoError(t, err)

	assert.Contains(t, res.Text, "func Apply(input string) string {")
	assert.Contains(t, res.Text, "... (3 lines)")
	assert.NotContains(t, res.Text, "parsed := Parse(input)", "body lines are collapsed")
	assert.Contains(t, res.Text, "   1│ package demo", "gutter line numbers")
}

func TestOutline_ExpandSymbols(t *testing.T) {
	ix, _ := newTestIndex(t)
	res, err := ix.Outline(context.Background(), OutlineOptions{
		File:          "util.go",
		ExpandSymbols: []string{"clean"},
	})
	require.NoError(t, err)

	assert.Contains(t, res.Text, "func clean(s string) string {")
	assert.Contains(t, res.Text, "return s")
	assert.NotContains(t, res.Text, "func Render", "only the named symbol expands")
	assert.Empty(t, res.Missing)
}

func TestOutline_ExpandMissSuggests(t *testing.T) {
	ix, _ := newTestIndex(t)
	res, err := ix.Outline(context.Background(), OutlineOptions{
		File:          "util.go",
		ExpandSymbols: []string{"rend"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"rend"}, res.Missing)
	assert.Contains(t, res.Suggestions, "Render")
}

func TestOutline_CallerAnnotations(t *testing.T) {
	ix, _ := newTestIndex(t)
	res, err := ix.Outline(context.Background(), OutlineOptions{
		File:        "util.go",
		WithCallers: true,
	})
	require.NoError(t, err)
	assert.Contains(t, res.Text, "← 2 callers", "Parse has two external callers")
}

func TestOutline_UnknownFile(t *testing.T) {
	ix, _ := newTestIndex(t)
	res, err := ix.Outline(context.Background(), OutlineOptions{File: "nope.go"})
	require.NoError(t, err)
	assert.True(t, res.FileNotFound)
}
