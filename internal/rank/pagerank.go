// Package rank scores symbols by graph centrality. It runs weighted
// PageRank over a working copy of the index graph, optionally biased toward
// a set of focus files, then dampens scores by path tier.
package rank

import (
	"math"
	"sort"

	"github.com/jward/codeindex/internal/graph"
)

const (
	damping     = 0.85
	maxIter     = 100
	tolerance   = 1e-6
	focusNode   = "__focus__"
	focusWeight = 10.0
)

// ScoredSymbol pairs a symbol key with its adjusted PageRank score.
type ScoredSymbol struct {
	Key   string
	Score float64
}

// Rank computes PageRank over the graph's files and symbols and returns
// symbol scores multiplied by their file's path-tier weight, sorted by
// score descending (key ascending on ties). The authoritative graph is
// never mutated: the walk materializes its own adjacency arrays, and focus
// edges exist only there.
func Rank(g *graph.Graph, focus []string, tiers []Tier) []ScoredSymbol {
	ids := make([]string, 0, g.FileCount()+g.SymbolCount()+1)
	ids = append(ids, g.FilePaths()...)
	ids = append(ids, g.SymbolKeys()...)

	hasFocus := false
	for _, f := range focus {
		if g.File(f) != nil {
			hasFocus = true
			break
		}
	}
	if hasFocus {
		ids = append(ids, focusNode)
	}

	n := len(ids)
	if n == 0 {
		return nil
	}
	idx := make(map[string]int, n)
	for i, id := range ids {
		idx[id] = i
	}

	outEdges := make([][]outEdge, n)
	outWeight := make([]float64, n)
	addEdge := func(from, to string, w float64) {
		f, okF := idx[from]
		t, okT := idx[to]
		if !okF || !okT {
			return
		}
		outEdges[f] = append(outEdges[f], outEdge{to: t, weight: w})
		outWeight[f] += w
	}

	for _, kind := range []graph.EdgeKind{graph.EdgeDefines, graph.EdgeReferences, graph.EdgeImports} {
		for _, path := range g.FilePaths() {
			for _, to := range g.Outgoing(kind, path) {
				addEdge(path, to, 1.0)
			}
		}
	}
	if hasFocus {
		for _, f := range focus {
			if g.File(f) != nil {
				addEdge(focusNode, f, focusWeight)
			}
		}
	}

	scores := pagerank(outEdges, outWeight, n)
	if hasFocus {
		// Drop the virtual node's mass and rescale the real nodes back to a
		// total of one, so focused scores compare directly with unfocused.
		if rest := 1 - scores[idx[focusNode]]; rest > 0 {
			for i := range scores {
				scores[i] /= rest
			}
		}
	}

	var ranked []ScoredSymbol
	for _, key := range g.SymbolKeys() {
		sym := g.Symbol(key)
		ranked = append(ranked, ScoredSymbol{
			Key:   key,
			Score: scores[idx[key]] * PathWeight(tiers, sym.File),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Key < ranked[j].Key
	})
	return ranked
}

type outEdge struct {
	to     int
	weight float64
}

// pagerank iterates the power method to convergence or maxIter. Dangling
// nodes redistribute their mass uniformly.
func pagerank(outEdges [][]outEdge, outWeight []float64, n int) []float64 {
	rank := make([]float64, n)
	for i := range rank {
		rank[i] = 1.0 / float64(n)
	}

	newRank := make([]float64, n)
	for iter := 0; iter < maxIter; iter++ {
		base := (1.0 - damping) / float64(n)
		for i := range newRank {
			newRank[i] = base
		}
		for i := 0; i < n; i++ {
			if outWeight[i] == 0 {
				share := damping * rank[i] / float64(n)
				for j := range newRank {
					newRank[j] += share
				}
				continue
			}
			for _, e := range outEdges[i] {
				newRank[e.to] += damping * rank[i] * (e.weight / outWeight[i])
			}
		}

		diff := 0.0
		for i := range rank {
			diff += math.Abs(newRank[i] - rank[i])
		}
		copy(rank, newRank)
		if diff < tolerance {
			break
		}
	}
	return rank
}

// FileTotals sums symbol scores per owning file.
func FileTotals(g *graph.Graph, scored []ScoredSymbol) map[string]float64 {
	totals := make(map[string]float64)
	for _, s := range scored {
		if sym := g.Symbol(s.Key); sym != nil {
			totals[sym.File] += s.Score
		}
	}
	return totals
}
