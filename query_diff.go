package codeindex

import (
	"context"
	"sort"

	"github.com/jward/codeindex/internal/extract"
	"github.com/jward/codeindex/internal/graph"
	"github.com/jward/codeindex/internal/lang"
)

// DiffOptions configures the working-tree diff analysis.
type DiffOptions struct {
	Ref string // comparison ref (default "HEAD")
}

// DiffSymbol is one added, removed, or signature-modified definition.
type DiffSymbol struct {
	Name         string     `json:"name"`
	Kind         SymbolKind `json:"kind"`
	Signature    string     `json:"signature,omitempty"`
	OldSignature string     `json:"oldSignature,omitempty"`
	Callers      int        `json:"callers,omitempty"`
}

// DiffFile summarizes one changed file.
type DiffFile struct {
	File       string       `json:"file"`
	Added      []DiffSymbol `json:"added,omitempty"`
	Removed    []DiffSymbol `json:"removed,omitempty"`
	Modified   []DiffSymbol `json:"modified,omitempty"`
	MaxCallers int          `json:"maxCallers"`
}

// DiffResult ranks changed files by how many external callers their
// modified or removed definitions have: the blast radius of the change.
type DiffResult struct {
	Ref          string     `json:"ref"`
	Changed      []DiffFile `json:"changed"`
	TotalCallers int        `json:"totalCallers"`
	VcsError     string     `json:"vcsError,omitempty"`
}

// Diff extracts definitions from the working copy and from the committed
// version of every file changed versus ref, then classifies additions,
// deletions, and signature changes. A failed or absent version-control
// collaborator degrades to an error field with empty data.
func (ix *CodeIndex) Diff(ctx context.Context, opts DiffOptions) (*DiffResult, error) {
	if err := ix.ensure(ctx); err != nil {
		return nil, err
	}

	ref := opts.Ref
	if ref == "" {
		ref = "HEAD"
	}
	res := &DiffResult{Ref: ref}

	changed, err := ix.git.ChangedFiles(ctx, ref)
	if err != nil {
		res.VcsError = err.Error()
		return res, nil
	}
	if untracked, err := ix.git.UntrackedFiles(ctx); err == nil {
		changed = append(changed, untracked...)
	}

	seen := make(map[string]struct{})
	for _, path := range changed {
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		if !lang.Supported(path) {
			continue
		}
		df := ix.diffFile(ctx, ref, path)
		if df == nil {
			continue
		}
		res.Changed = append(res.Changed, *df)
		res.TotalCallers += callerSum(df)
	}

	sort.Slice(res.Changed, func(i, j int) bool {
		if res.Changed[i].MaxCallers != res.Changed[j].MaxCallers {
			return res.Changed[i].MaxCallers > res.Changed[j].MaxCallers
		}
		return res.Changed[i].File < res.Changed[j].File
	})
	return res, nil
}

// diffFile compares one file's working-copy definitions against ref.
func (ix *CodeIndex) diffFile(ctx context.Context, ref, path string) *DiffFile {
	current := make(map[string]Definition)
	if src, err := ix.readSource(path); err == nil {
		if fs := extract.Extract(ctx, path, src); fs != nil {
			for _, d := range fs.Definitions {
				if _, dup := current[d.Name]; !dup {
					current[d.Name] = d
				}
			}
		}
	}

	committed := make(map[string]Definition)
	if src, err := ix.git.Show(ctx, ref, path); err == nil {
		if fs := extract.Extract(ctx, path, src); fs != nil {
			for _, d := range fs.Definitions {
				if _, dup := committed[d.Name]; !dup {
					committed[d.Name] = d
				}
			}
		}
	}
	if len(current) == 0 && len(committed) == 0 {
		return nil
	}

	df := &DiffFile{File: path}
	for name, d := range current {
		old, ok := committed[name]
		switch {
		case !ok:
			df.Added = append(df.Added, DiffSymbol{Name: name, Kind: d.Kind, Signature: d.Signature})
		case old.Signature != d.Signature:
			df.Modified = append(df.Modified, DiffSymbol{
				Name:         name,
				Kind:         d.Kind,
				Signature:    d.Signature,
				OldSignature: old.Signature,
				Callers:      ix.externalCallers(path, name),
			})
		}
	}
	for name, old := range committed {
		if _, ok := current[name]; !ok {
			df.Removed = append(df.Removed, DiffSymbol{
				Name:      name,
				Kind:      old.Kind,
				Signature: old.Signature,
				Callers:   ix.externalCallers(path, name),
			})
		}
	}

	sortDiffSymbols(df.Added)
	sortDiffSymbols(df.Removed)
	sortDiffSymbols(df.Modified)
	for _, s := range df.Modified {
		if s.Callers > df.MaxCallers {
			df.MaxCallers = s.Callers
		}
	}
	for _, s := range df.Removed {
		if s.Callers > df.MaxCallers {
			df.MaxCallers = s.Callers
		}
	}
	return df
}

// externalCallers counts distinct files outside path referencing the
// symbol path::name.
func (ix *CodeIndex) externalCallers(path, name string) int {
	g := ix.Graph()
	count := 0
	for _, from := range g.Incoming(graph.EdgeReferences, graph.SymbolKey(path, name)) {
		if from != path {
			count++
		}
	}
	return count
}

func callerSum(df *DiffFile) int {
	total := 0
	for _, s := range df.Modified {
		total += s.Callers
	}
	for _, s := range df.Removed {
		total += s.Callers
	}
	return total
}

func sortDiffSymbols(s []DiffSymbol) {
	sort.Slice(s, func(i, j int) bool { return s[i].Name < s[j].Name })
}

// HistoryOptions selects a symbol whose commit history to walk.
type HistoryOptions struct {
	Symbol string // required: symbol name
	File   string // optional: narrow to the definition in this file
	N      int    // max entries (default 10)
	Skip   int    // entries to skip
}

// HistoryResult is the commit log touching one symbol's line range.
type HistoryResult struct {
	Symbol      *SymbolResult `json:"symbol,omitempty"`
	Entries     []LogEntry    `json:"entries,omitempty"`
	VcsError    string        `json:"vcsError,omitempty"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

const defaultHistoryN = 10

// History resolves a symbol and lists the commits that touched its line
// range, via git log -L.
func (ix *CodeIndex) History(ctx context.Context, opts HistoryOptions) (*HistoryResult, error) {
	if err := ix.ensure(ctx); err != nil {
		return nil, err
	}
	g := ix.Graph()

	candidates := symbolsMatching(g, opts.Symbol, opts.File)
	if len(candidates) == 0 {
		return &HistoryResult{Suggestions: suggestSymbols(g, opts.Symbol)}, nil
	}
	scores := scoreMap(ix.ranking())
	target := bestSymbol(candidates, scores)

	res := &HistoryResult{}
	sr := symbolResult(target, scores[target.Key])
	res.Symbol = &sr

	n := opts.N
	if n <= 0 {
		n = defaultHistoryN
	}
	entries, err := ix.git.LogL(ctx, target.File, target.LineStart, target.LineEnd, n, opts.Skip)
	if err != nil {
		res.VcsError = err.Error()
		return res, nil
	}
	res.Entries = entries
	return res, nil
}
