package codeindex

import (
	"errors"
	"path"
	"sort"
	"strings"

	"github.com/jward/codeindex/internal/rank"
)

// scoredSymbol is the ranker's output pair.
type scoredSymbol = rank.ScoredSymbol

// ErrUsage marks an invalid operator parameter; the CLI maps it to a
// non-zero exit.
var ErrUsage = errors.New("usage error")

// Page controls offset+limit paging on list results. Count short-circuits
// the operation to totals only. Paging always applies after ranking.
type Page struct {
	Offset int  // skip this many results (default 0)
	Limit  int  // max results to return (default 50, max 500)
	Count  bool // return totals only
}

const (
	defaultLimit = 50
	maxLimit     = 500
)

// normalize applies defaults and bounds.
func (p Page) normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// paginate slices items by the normalized page window.
func paginate[T any](items []T, p Page) []T {
	p = p.normalize()
	if p.Offset >= len(items) {
		return nil
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}

// maxSuggestions caps the suggestion lists on unknown-file and
// unknown-symbol responses.
const maxSuggestions = 5

// suggestFiles offers up to five known paths resembling the query:
// case-insensitive basename match first, then path substring. The ordering
// within each class is the graph's sorted path order.
func suggestFiles(g *Graph, query string) []string {
	q := strings.ToLower(query)
	qBase := strings.ToLower(path.Base(query))

	var byBase, bySubstring []string
	for _, p := range g.FilePaths() {
		lower := strings.ToLower(p)
		switch {
		case strings.ToLower(path.Base(p)) == qBase:
			byBase = append(byBase, p)
		case strings.Contains(lower, q):
			bySubstring = append(bySubstring, p)
		}
	}
	out := append(byBase, bySubstring...)
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// suggestSymbols offers up to five known symbol names containing the query
// (case-insensitive), sorted.
func suggestSymbols(g *Graph, query string) []string {
	q := strings.ToLower(query)
	seen := make(map[string]struct{})
	for _, key := range g.SymbolKeys() {
		name := g.Symbol(key).Name
		if _, dup := seen[name]; dup {
			continue
		}
		if strings.Contains(strings.ToLower(name), q) {
			seen[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// symbolsMatching collects symbol nodes by name, optionally narrowed to
// one file.
func symbolsMatching(g *Graph, name, file string) []*SymbolNode {
	var out []*SymbolNode
	for _, s := range g.SymbolsNamed(name) {
		if file == "" || s.File == file {
			out = append(out, s)
		}
	}
	return out
}

// bestSymbol picks the highest-ranked node from candidates using the
// given ranking; ties and unranked nodes fall back to key order.
func bestSymbol(candidates []*SymbolNode, scores map[string]float64) *SymbolNode {
	var best *SymbolNode
	bestScore := -1.0
	for _, s := range candidates {
		sc := scores[s.Key]
		if best == nil || sc > bestScore || (sc == bestScore && s.Key < best.Key) {
			best = s
			bestScore = sc
		}
	}
	return best
}

// scoreMap turns a ranking into a key→score lookup.
func scoreMap(scored []scoredSymbol) map[string]float64 {
	m := make(map[string]float64, len(scored))
	for _, s := range scored {
		m[s.Key] = s.Score
	}
	return m
}
