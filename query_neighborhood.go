package codeindex

import (
	"context"
	"sort"

	"github.com/jward/codeindex/internal/graph"
	"github.com/jward/codeindex/internal/rank"
)

// NeighborhoodOptions configures the local-neighborhood query.
type NeighborhoodOptions struct {
	File              string // required: the center file
	Hops              int    // BFS depth on IMPORTS (default 2)
	MaxFiles          int    // cap on files kept (default 15)
	ExcludeDependents bool   // skip the backward hop onto direct dependents
	Count             bool   // return totals only
}

// NeighborhoodFile is one kept file with its BFS distance and score.
type NeighborhoodFile struct {
	File   string  `json:"file"`
	Hops   int     `json:"hops"`
	Direct bool    `json:"direct"`
	Score  float64 `json:"score"`
}

// NeighborhoodEdge is one IMPORTS edge incident on the center whose other
// endpoint was kept.
type NeighborhoodEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NeighborhoodResult is the ranked local neighborhood of a file.
type NeighborhoodResult struct {
	File         string             `json:"file"`
	Files        []NeighborhoodFile `json:"files,omitempty"`
	Edges        []NeighborhoodEdge `json:"edges,omitempty"`
	Symbols      []SymbolResult     `json:"symbols,omitempty"`
	TotalFiles   int                `json:"totalFiles"`
	TotalSymbols int                `json:"totalSymbols"`
	TotalEdges   int                `json:"totalEdges"`
	TotalVisited int                `json:"totalVisited"`
	FileNotFound bool               `json:"fileNotFound,omitempty"`
	Suggestions  []string           `json:"suggestions,omitempty"`
}

const (
	defaultHops     = 2
	defaultMaxFiles = 15

	directBonus = 1e6
	scoreScale  = 1e4
)

// Neighborhood walks IMPORTS edges around a file: BFS forward up to Hops,
// one optional hop backward for direct dependents, then keeps the center's
// direct neighbors plus the best-scoring further-hop files up to MaxFiles.
// Scores use the focus-biased ranking centered on the file itself.
func (ix *CodeIndex) Neighborhood(ctx context.Context, opts NeighborhoodOptions) (*NeighborhoodResult, error) {
	if err := ix.ensure(ctx); err != nil {
		return nil, err
	}
	g := ix.Graph()

	if g.File(opts.File) == nil {
		return &NeighborhoodResult{
			File:         opts.File,
			FileNotFound: true,
			Suggestions:  suggestFiles(g, opts.File),
		}, nil
	}

	hops := opts.Hops
	if hops <= 0 {
		hops = defaultHops
	}
	maxFiles := opts.MaxFiles
	if maxFiles <= 0 {
		maxFiles = defaultMaxFiles
	}

	// Forward BFS on IMPORTS.
	fileHops := map[string]int{opts.File: 0}
	frontier := []string{opts.File}
	for depth := 1; depth <= hops && len(frontier) > 0; depth++ {
		var next []string
		for _, f := range frontier {
			for _, to := range g.Outgoing(graph.EdgeImports, f) {
				if _, seen := fileHops[to]; !seen {
					fileHops[to] = depth
					next = append(next, to)
				}
			}
		}
		frontier = next
	}

	// One hop backward for direct dependents.
	dependents := g.Incoming(graph.EdgeImports, opts.File)
	if !opts.ExcludeDependents {
		for _, from := range dependents {
			if _, seen := fileHops[from]; !seen {
				fileHops[from] = 1
			}
		}
	}

	direct := map[string]bool{opts.File: true}
	for _, to := range g.Outgoing(graph.EdgeImports, opts.File) {
		direct[to] = true
	}
	if !opts.ExcludeDependents {
		for _, from := range dependents {
			direct[from] = true
		}
	}

	// Score every visited file with the focus-biased ranking.
	scored := rank.Rank(g, []string{opts.File}, ix.tiers())
	filePR := rank.FileTotals(g, scored)

	type cand struct {
		file  string
		score float64
	}
	var cands []cand
	for f, h := range fileHops {
		cands = append(cands, cand{
			file:  f,
			score: boolBonus(direct[f]) + filePR[f]*scoreScale - float64(h),
		})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].file < cands[j].file
	})

	kept := make(map[string]bool)
	var files []NeighborhoodFile
	for _, c := range cands {
		if len(files) >= maxFiles && !direct[c.file] {
			continue
		}
		kept[c.file] = true
		files = append(files, NeighborhoodFile{
			File:   c.file,
			Hops:   fileHops[c.file],
			Direct: direct[c.file],
			Score:  c.score,
		})
	}

	// IMPORTS edges incident on the center with a kept other endpoint.
	var edges []NeighborhoodEdge
	for _, to := range g.Outgoing(graph.EdgeImports, opts.File) {
		if kept[to] {
			edges = append(edges, NeighborhoodEdge{From: opts.File, To: to})
		}
	}
	for _, from := range g.Incoming(graph.EdgeImports, opts.File) {
		if kept[from] {
			edges = append(edges, NeighborhoodEdge{From: from, To: opts.File})
		}
	}

	// Symbols of kept files in rank order.
	var symbols []SymbolResult
	for _, s := range scored {
		sym := g.Symbol(s.Key)
		if sym == nil || !kept[sym.File] {
			continue
		}
		symbols = append(symbols, symbolResult(sym, s.Score))
	}

	res := &NeighborhoodResult{
		File:         opts.File,
		TotalFiles:   len(files),
		TotalSymbols: len(symbols),
		TotalEdges:   len(edges),
		TotalVisited: len(fileHops),
	}
	if opts.Count {
		return res, nil
	}
	res.Files = files
	res.Edges = edges
	res.Symbols = symbols
	return res, nil
}

func boolBonus(direct bool) float64 {
	if direct {
		return directBonus
	}
	return 0
}
