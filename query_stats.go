package codeindex

import (
	"context"

	"github.com/jward/codeindex/internal/graph"
	"github.com/jward/codeindex/internal/lang"
)

// StatsResult summarizes the index.
type StatsResult struct {
	Root          string             `json:"root"`
	Files         int                `json:"files"`
	Symbols       int                `json:"symbols"`
	SymbolsByKind map[SymbolKind]int `json:"symbolsByKind"`
	Languages     map[string]int     `json:"languages"`
	Defines       int                `json:"defines"`
	References    int                `json:"references"`
	Imports       int                `json:"imports"`
}

// Stats reports index totals: node and edge counts plus per-kind and
// per-language breakdowns.
func (ix *CodeIndex) Stats(ctx context.Context) (*StatsResult, error) {
	if err := ix.ensure(ctx); err != nil {
		return nil, err
	}
	g := ix.Graph()

	res := &StatsResult{
		Root:          ix.Root(),
		Files:         g.FileCount(),
		Symbols:       g.SymbolCount(),
		SymbolsByKind: make(map[SymbolKind]int),
		Languages:     make(map[string]int),
		Defines:       g.EdgeCount(graph.EdgeDefines),
		References:    g.EdgeCount(graph.EdgeReferences),
		Imports:       g.EdgeCount(graph.EdgeImports),
	}
	for _, key := range g.SymbolKeys() {
		res.SymbolsByKind[g.Symbol(key).Kind]++
	}
	for _, p := range g.FilePaths() {
		if spec := lang.ResolvePath(p); spec != nil {
			res.Languages[spec.Language]++
		}
	}
	return res, nil
}
