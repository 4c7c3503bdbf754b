package codeindex

import (
	"context"
	"fmt"

	"github.com/jward/codeindex/internal/cache"
	"github.com/jward/codeindex/internal/graph"
	"github.com/jward/codeindex/internal/rank"
	"github.com/jward/codeindex/internal/vcs"
)

// CodeIndex is one indexing session over a project root. It owns the cache
// layer (and through it the graph) plus the session-scoped rank caches.
// Exactly one graph instance per session; no concurrent mutators.
type CodeIndex struct {
	cache *cache.Cache
	git   *vcs.Runner

	// Unfocused ranking and derived file totals, invalidated whenever the
	// ensure pass reports changed or deleted files.
	ranked     []rank.ScoredSymbol
	fileTotals map[string]float64
	rankValid  bool
}

// New prepares a session for the given project root. No indexing happens
// until the first query or an explicit Ensure.
func New(root string) (*CodeIndex, error) {
	c, err := cache.New(root)
	if err != nil {
		return nil, fmt.Errorf("codeindex: %w", err)
	}
	return &CodeIndex{
		cache: c,
		git:   &vcs.Runner{Dir: c.Root()},
	}, nil
}

// Root returns the absolute project root.
func (ix *CodeIndex) Root() string { return ix.cache.Root() }

// Graph exposes the current graph for direct inspection.
func (ix *CodeIndex) Graph() *graph.Graph { return ix.cache.Graph() }

// Ensure synchronizes the graph with the tree on disk and reports how many
// files were scanned, re-parsed, and dropped.
func (ix *CodeIndex) Ensure(ctx context.Context) (cache.EnsureResult, error) {
	res, err := ix.cache.Ensure(ctx)
	if err != nil {
		return res, err
	}
	if res.Changed+res.Deleted > 0 {
		ix.rankValid = false
	}
	return res, nil
}

// Reindex drops all cached state, deletes the persisted document, and
// rebuilds from scratch.
func (ix *CodeIndex) Reindex(ctx context.Context) (cache.EnsureResult, error) {
	ix.rankValid = false
	return ix.cache.Reindex(ctx)
}

// ensure is the common query preamble.
func (ix *CodeIndex) ensure(ctx context.Context) error {
	_, err := ix.Ensure(ctx)
	return err
}

// ranking returns the session-cached unfocused ranking.
func (ix *CodeIndex) ranking() []rank.ScoredSymbol {
	if !ix.rankValid {
		ix.ranked = rank.Rank(ix.cache.Graph(), nil, ix.cache.Tiers())
		ix.fileTotals = rank.FileTotals(ix.cache.Graph(), ix.ranked)
		ix.rankValid = true
	}
	return ix.ranked
}

// fileScores returns the cached per-file score totals.
func (ix *CodeIndex) fileScores() map[string]float64 {
	ix.ranking()
	return ix.fileTotals
}

// focusedRanking computes a focus-biased ranking. Focused rankings are not
// cached: each focus set is its own computation.
func (ix *CodeIndex) focusedRanking(focus []string) []rank.ScoredSymbol {
	if len(focus) == 0 {
		return ix.ranking()
	}
	return rank.Rank(ix.cache.Graph(), focus, ix.cache.Tiers())
}

// tiers returns the merged path-tier table.
func (ix *CodeIndex) tiers() []rank.Tier { return ix.cache.Tiers() }

// readSource reads a file under the root by graph-relative path.
func (ix *CodeIndex) readSource(rel string) ([]byte, error) {
	return ix.cache.ReadSource(rel)
}
