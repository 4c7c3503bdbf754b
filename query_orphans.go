package codeindex

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/jward/codeindex/internal/graph"
)

// OrphanLevel selects file-level or symbol-level orphan detection.
type OrphanLevel string

const (
	OrphanFiles   OrphanLevel = "file"
	OrphanSymbols OrphanLevel = "symbol"
)

// OrphansOptions configures orphan detection.
type OrphansOptions struct {
	Level OrphanLevel // "file" (default) or "symbol"
	Kind  SymbolKind  // optional kind filter at symbol level
	Page
}

// OrphanFile is a file with no incident IMPORTS edge.
type OrphanFile struct {
	File        string `json:"file"`
	SymbolCount int    `json:"symbolCount"`
}

// OrphansResult lists candidate dead files or symbols after the
// false-positive filters.
type OrphansResult struct {
	Files   []OrphanFile   `json:"files,omitempty"`
	Symbols []SymbolResult `json:"symbols,omitempty"`
	Total   int            `json:"total"`
}

// Orphans finds files no other file imports (and that import nothing), or
// symbols referenced only from their own file. Entry points, config files,
// test scaffolding, and framework hooks are filtered out as documented
// false positives.
func (ix *CodeIndex) Orphans(ctx context.Context, opts OrphansOptions) (*OrphansResult, error) {
	if err := ix.ensure(ctx); err != nil {
		return nil, err
	}

	level := opts.Level
	if level == "" {
		level = OrphanFiles
	}
	switch level {
	case OrphanFiles:
		return ix.orphanFiles(opts), nil
	case OrphanSymbols:
		return ix.orphanSymbols(opts), nil
	default:
		return nil, fmt.Errorf("%w: unknown orphan level %q", ErrUsage, opts.Level)
	}
}

func (ix *CodeIndex) orphanFiles(opts OrphansOptions) *OrphansResult {
	g := ix.Graph()

	var files []OrphanFile
	for _, p := range g.FilePaths() {
		if len(g.Outgoing(graph.EdgeImports, p)) > 0 || len(g.Incoming(graph.EdgeImports, p)) > 0 {
			continue
		}
		if isOrphanFileFalsePositive(p) {
			continue
		}
		files = append(files, OrphanFile{File: p, SymbolCount: g.File(p).SymbolCount})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].SymbolCount != files[j].SymbolCount {
			return files[i].SymbolCount > files[j].SymbolCount
		}
		return files[i].File < files[j].File
	})

	res := &OrphansResult{Total: len(files)}
	if !opts.Count {
		res.Files = paginate(files, opts.Page)
	}
	return res
}

func (ix *CodeIndex) orphanSymbols(opts OrphansOptions) *OrphansResult {
	g := ix.Graph()

	var symbols []SymbolResult
	for _, key := range g.SymbolKeys() {
		sym := g.Symbol(key)
		if opts.Kind != "" && sym.Kind != opts.Kind {
			continue
		}
		external := false
		for _, from := range g.Incoming(graph.EdgeReferences, key) {
			if from != sym.File {
				external = true
				break
			}
		}
		if external {
			continue
		}
		if isOrphanSymbolFalsePositive(sym) {
			continue
		}
		symbols = append(symbols, symbolResult(sym, 0))
	}
	sort.Slice(symbols, func(i, j int) bool {
		if symbols[i].File != symbols[j].File {
			return symbols[i].File < symbols[j].File
		}
		return symbols[i].LineStart < symbols[j].LineStart
	})

	res := &OrphansResult{Total: len(symbols)}
	if !opts.Count {
		res.Symbols = paginate(symbols, opts.Page)
	}
	return res
}

// --- False-positive tables ---

// orphanFileStems are file stems that legitimately have no import edges:
// entry points, config carriers, and framework-invoked modules.
var orphanFileStems = map[string]bool{
	"index": true, "main": true, "app": true, "server": true, "cli": true,
	"mod": true, "lib": true, "manage": true, "wsgi": true, "asgi": true,
	"handler": true, "lambda": true, "__init__": true, "__main__": true,
	"config": true, "settings": true, "conf": true, "conftest": true,
	"setup": true, "gulpfile": true, "gruntfile": true, "makefile": true,
	"rakefile": true, "taskfile": true,
}

// testDirs are path segments marking test trees.
var testDirs = map[string]bool{
	"tests": true, "test": true, "__tests__": true, "spec": true,
	"testdata": true, "fixtures": true,
}

var (
	configStemRe = regexp.MustCompile(`.*[./]config$`)
	rcStemRe     = regexp.MustCompile(`.*\.rc$`)
)

// isOrphanFileFalsePositive filters files that look dead but are reached
// by loaders the graph cannot see.
func isOrphanFileFalsePositive(p string) bool {
	base := path.Base(p)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, ".d.ts") {
		return true
	}
	stem := strings.TrimSuffix(base, path.Ext(base))
	lower := strings.ToLower(stem)
	if orphanFileStems[lower] {
		return true
	}
	if configStemRe.MatchString(lower) || rcStemRe.MatchString(lower) {
		return true
	}
	for _, seg := range strings.Split(path.Dir(p), "/") {
		if testDirs[strings.ToLower(seg)] {
			return true
		}
	}
	if strings.HasPrefix(lower, "test_") || strings.HasPrefix(lower, "test.") ||
		strings.HasSuffix(lower, ".test") || strings.HasSuffix(lower, ".spec") ||
		strings.HasSuffix(lower, "_test") || strings.HasSuffix(lower, "_spec") {
		return true
	}
	return false
}

// orphanSymbolNames are names invoked by frameworks, runtimes, or test
// harnesses rather than by indexed code.
var orphanSymbolNames = map[string]bool{
	"main": true, "run": true, "start": true, "serve": true, "handler": true,
	"execute": true, "app": true, "setup": true, "teardown": true,
	"setUp": true, "tearDown": true, "beforeAll": true, "afterAll": true,
	"beforeEach": true, "afterEach": true, "before": true, "after": true,
	"constructor": true, "init": true, "initialize": true, "configure": true,
	"register": true, "middleware": true, "plugin": true, "default": true,
	"module": true, "exports": true,
}

var (
	dunderRe      = regexp.MustCompile(`^__.*__$`)
	methodShapeRe = regexp.MustCompile(`^[A-Za-z_$][\w$]*\s*\(`)
	selfParamRe   = regexp.MustCompile(`\(\s*(self|cls)\b`)
)

// isOrphanSymbolFalsePositive filters symbols whose callers live outside
// the graph: entry points, lifecycle hooks, and methods (whose receiver
// calls are never captured).
func isOrphanSymbolFalsePositive(sym *SymbolNode) bool {
	if orphanSymbolNames[sym.Name] || len(sym.Name) <= 2 || dunderRe.MatchString(sym.Name) {
		return true
	}
	base := path.Base(sym.File)
	if sym.Name == strings.TrimSuffix(base, path.Ext(base)) {
		return true
	}
	if sym.Kind == KindFunction {
		if strings.HasSuffix(sym.File, ".py") {
			if selfParamRe.MatchString(sym.Signature) {
				return true
			}
		} else if methodShapeRe.MatchString(sym.Signature) {
			// A brace-language signature opening directly with the bare
			// name (no function keyword) is the method shape.
			return true
		}
	}
	return false
}
