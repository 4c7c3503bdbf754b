package cache

import (
	ignore "github.com/sabhiram/go-gitignore"
)

// builtinIgnores are the directories no index should descend into:
// dependency trees, build output, VCS metadata, and scratch space. Project
// config appends to this list, never replaces it.
var builtinIgnores = []string{
	// dependency directories
	"node_modules/",
	"vendor/",
	"bower_components/",
	".venv/",
	"venv/",
	"site-packages/",
	"target/debug/",
	"target/release/",
	"__pycache__/",
	// build output and framework caches
	"dist/",
	"build/",
	"out/",
	"coverage/",
	".next/",
	".nuxt/",
	".cache/",
	".gradle/",
	// version control and tool caches
	".git/",
	".hg/",
	".svn/",
	".idea/",
	".vscode/",
	".code-index/",
	// scratch
	".tmp/",
	"tmp/cache/",
}

// newIgnorer compiles the built-in list plus project patterns into one
// matcher.
func newIgnorer(extra []string) *ignore.GitIgnore {
	lines := make([]string, 0, len(builtinIgnores)+len(extra))
	lines = append(lines, builtinIgnores...)
	lines = append(lines, extra...)
	return ignore.CompileIgnoreLines(lines...)
}
