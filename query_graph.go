package codeindex

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jward/codeindex/internal/graph"
)

// CallersOptions configures the callers query.
type CallersOptions struct {
	Symbol  string // required: symbol name
	File    string // optional: narrow to the definition in this file
	Context int    // when > 0, excerpt call sites with ±Context lines
	Page
}

// CallSite is one matched call line with its surrounding excerpt.
type CallSite struct {
	Line    int      `json:"line"`
	Excerpt []string `json:"excerpt,omitempty"`
}

// CallerFile is one file referencing the target symbol.
type CallerFile struct {
	File  string     `json:"file"`
	Score float64    `json:"score"`
	Sites []CallSite `json:"sites,omitempty"`
}

// CallersResult lists the files that reference a symbol, ranked by
// file-level PageRank.
type CallersResult struct {
	Symbol      string       `json:"symbol"`
	Callers     []CallerFile `json:"callers"`
	Total       int          `json:"total"`
	Suggestions []string     `json:"suggestions,omitempty"`
}

// Callers collects the unique source files across all incoming REFERENCES
// edges of every symbol matching the name (narrowed by File when given).
// With Context > 0 each caller is read and its call sites excerpted.
func (ix *CodeIndex) Callers(ctx context.Context, opts CallersOptions) (*CallersResult, error) {
	if err := ix.ensure(ctx); err != nil {
		return nil, err
	}
	g := ix.Graph()

	targets := symbolsMatching(g, opts.Symbol, opts.File)
	if len(targets) == 0 {
		return &CallersResult{
			Symbol:      opts.Symbol,
			Suggestions: suggestSymbols(g, opts.Symbol),
		}, nil
	}

	callerSet := make(map[string]struct{})
	for _, t := range targets {
		for _, from := range g.Incoming(graph.EdgeReferences, t.Key) {
			callerSet[from] = struct{}{}
		}
	}

	scores := ix.fileScores()
	files := make([]string, 0, len(callerSet))
	for f := range callerSet {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		if scores[files[i]] != scores[files[j]] {
			return scores[files[i]] > scores[files[j]]
		}
		return files[i] < files[j]
	})

	res := &CallersResult{Symbol: opts.Symbol, Total: len(files)}
	if opts.Count {
		return res, nil
	}

	for _, f := range paginate(files, opts.Page) {
		caller := CallerFile{File: f, Score: scores[f]}
		if opts.Context > 0 {
			caller.Sites = ix.callSites(f, opts.Symbol, opts.Context, targets)
		}
		res.Callers = append(res.Callers, caller)
	}
	return res, nil
}

// callSites scans a caller file for call or import lines mentioning the
// symbol and excerpts each with ±context lines. Lines inside a target's
// own definition span are skipped so a symbol never reports itself.
func (ix *CodeIndex) callSites(file, name string, context int, targets []*SymbolNode) []CallSite {
	src, err := ix.readSource(file)
	if err != nil {
		return nil
	}
	lines := strings.Split(string(src), "\n")

	callRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\(`)
	wordRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)

	var sites []CallSite
	for i, line := range lines {
		lineNo := i + 1
		if !callRe.MatchString(line) && !(isImportLike(line) && wordRe.MatchString(line)) {
			continue
		}
		if insideTarget(file, lineNo, targets) {
			continue
		}
		start := lineNo - context
		if start < 1 {
			start = 1
		}
		end := lineNo + context
		if end > len(lines) {
			end = len(lines)
		}
		excerpt := make([]string, 0, end-start+1)
		for n := start; n <= end; n++ {
			excerpt = append(excerpt, fmt.Sprintf("%4d│ %s", n, lines[n-1]))
		}
		sites = append(sites, CallSite{Line: lineNo, Excerpt: excerpt})
	}
	return sites
}

var importLikeRe = regexp.MustCompile(`^\s*(import|from|use|require|include)\b`)

func isImportLike(line string) bool {
	return importLikeRe.MatchString(line)
}

func insideTarget(file string, line int, targets []*SymbolNode) bool {
	for _, t := range targets {
		if t.File == file && line >= t.LineStart && line <= t.LineEnd {
			return true
		}
	}
	return false
}

// DepsOptions configures the dependency queries.
type DepsOptions struct {
	File string // required
	Page
}

// DepFile is one import neighbor ranked by file-level PageRank.
type DepFile struct {
	File  string  `json:"file"`
	Score float64 `json:"score"`
}

// DepsResult lists import neighbors of one file.
type DepsResult struct {
	File         string    `json:"file"`
	Files        []DepFile `json:"files"`
	Total        int       `json:"total"`
	FileNotFound bool      `json:"fileNotFound,omitempty"`
	Suggestions  []string  `json:"suggestions,omitempty"`
}

// Dependencies lists the files this file imports, ranked by file score.
func (ix *CodeIndex) Dependencies(ctx context.Context, opts DepsOptions) (*DepsResult, error) {
	return ix.importNeighbors(ctx, opts, false)
}

// Dependents lists the files importing this file, ranked by file score.
func (ix *CodeIndex) Dependents(ctx context.Context, opts DepsOptions) (*DepsResult, error) {
	return ix.importNeighbors(ctx, opts, true)
}

func (ix *CodeIndex) importNeighbors(ctx context.Context, opts DepsOptions, incoming bool) (*DepsResult, error) {
	if err := ix.ensure(ctx); err != nil {
		return nil, err
	}
	g := ix.Graph()

	if g.File(opts.File) == nil {
		return &DepsResult{
			File:         opts.File,
			FileNotFound: true,
			Suggestions:  suggestFiles(g, opts.File),
		}, nil
	}

	var neighbors []string
	if incoming {
		neighbors = g.Incoming(graph.EdgeImports, opts.File)
	} else {
		neighbors = g.Outgoing(graph.EdgeImports, opts.File)
	}

	scores := ix.fileScores()
	sort.Slice(neighbors, func(i, j int) bool {
		if scores[neighbors[i]] != scores[neighbors[j]] {
			return scores[neighbors[i]] > scores[neighbors[j]]
		}
		return neighbors[i] < neighbors[j]
	})

	res := &DepsResult{File: opts.File, Total: len(neighbors)}
	if opts.Count {
		return res, nil
	}
	for _, n := range paginate(neighbors, opts.Page) {
		res.Files = append(res.Files, DepFile{File: n, Score: scores[n]})
	}
	return res, nil
}
