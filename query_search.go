package codeindex

import (
	"context"
	"strings"
)

// SearchOptions configures symbol search.
type SearchOptions struct {
	Query string     // case-insensitive substring against name or signature
	Kind  SymbolKind // optional kind filter
	Page
}

// SymbolResult is one ranked symbol hit.
type SymbolResult struct {
	Key       string     `json:"key"`
	Name      string     `json:"name"`
	Kind      SymbolKind `json:"kind"`
	File      string     `json:"file"`
	LineStart int        `json:"lineStart"`
	LineEnd   int        `json:"lineEnd"`
	Signature string     `json:"signature"`
	Score     float64    `json:"score"`
}

// SearchResult is a page of hits plus the pre-pagination total.
type SearchResult struct {
	Symbols []SymbolResult `json:"symbols"`
	Total   int            `json:"total"`
}

// Search matches symbols whose name or signature contains the query,
// ranked by unfocused PageRank.
func (ix *CodeIndex) Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	if err := ix.ensure(ctx); err != nil {
		return nil, err
	}
	g := ix.Graph()
	q := strings.ToLower(opts.Query)

	var hits []SymbolResult
	for _, s := range ix.ranking() {
		sym := g.Symbol(s.Key)
		if sym == nil {
			continue
		}
		if opts.Kind != "" && sym.Kind != opts.Kind {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(sym.Name), q) &&
			!strings.Contains(strings.ToLower(sym.Signature), q) {
			continue
		}
		hits = append(hits, symbolResult(sym, s.Score))
	}

	res := &SearchResult{Total: len(hits)}
	if opts.Count {
		return res, nil
	}
	res.Symbols = paginate(hits, opts.Page)
	return res, nil
}

// SymbolsOptions configures symbol enumeration.
type SymbolsOptions struct {
	File string     // restrict to one file
	Kind SymbolKind // optional kind filter
	Page
}

// SymbolsResult enumerates symbol nodes in rank order.
type SymbolsResult struct {
	Symbols      []SymbolResult `json:"symbols"`
	Total        int            `json:"total"`
	FileNotFound bool           `json:"fileNotFound,omitempty"`
	Suggestions  []string       `json:"suggestions,omitempty"`
}

// Symbols enumerates symbols with optional file and kind filters, ranked
// by unfocused PageRank.
func (ix *CodeIndex) Symbols(ctx context.Context, opts SymbolsOptions) (*SymbolsResult, error) {
	if err := ix.ensure(ctx); err != nil {
		return nil, err
	}
	g := ix.Graph()

	if opts.File != "" && g.File(opts.File) == nil {
		return &SymbolsResult{
			FileNotFound: true,
			Suggestions:  suggestFiles(g, opts.File),
		}, nil
	}

	var hits []SymbolResult
	for _, s := range ix.ranking() {
		sym := g.Symbol(s.Key)
		if sym == nil {
			continue
		}
		if opts.File != "" && sym.File != opts.File {
			continue
		}
		if opts.Kind != "" && sym.Kind != opts.Kind {
			continue
		}
		hits = append(hits, symbolResult(sym, s.Score))
	}

	res := &SymbolsResult{Total: len(hits)}
	if opts.Count {
		return res, nil
	}
	res.Symbols = paginate(hits, opts.Page)
	return res, nil
}

func symbolResult(sym *SymbolNode, score float64) SymbolResult {
	return SymbolResult{
		Key:       sym.Key,
		Name:      sym.Name,
		Kind:      sym.Kind,
		File:      sym.File,
		LineStart: sym.LineStart,
		LineEnd:   sym.LineEnd,
		Signature: sym.Signature,
		Score:     score,
	}
}
