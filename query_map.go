package codeindex

import (
	"context"
	"fmt"
	"strings"
)

// MapOptions configures the repository map.
type MapOptions struct {
	FocusFiles []string // bias ranking toward these files
	Structured bool     // return per-file objects instead of text
	Page
}

// MapSymbol is one ranked symbol in the map.
type MapSymbol struct {
	Name      string     `json:"name"`
	Kind      SymbolKind `json:"kind"`
	LineStart int        `json:"lineStart"`
	LineEnd   int        `json:"lineEnd"`
	Signature string     `json:"signature"`
	Score     float64    `json:"score"`
}

// MapFile groups a file's shown symbols.
type MapFile struct {
	Path    string      `json:"path"`
	Symbols []MapSymbol `json:"symbols"`
}

// MapResult is the repository map: the highest-ranked symbols grouped by
// file, as text or structured per-file objects.
type MapResult struct {
	Text         string    `json:"text,omitempty"`
	Files        []MapFile `json:"files,omitempty"`
	ShownFiles   int       `json:"shownFiles"`
	ShownSymbols int       `json:"shownSymbols"`
	TotalFiles   int       `json:"totalFiles"`
	TotalSymbols int       `json:"totalSymbols"`
}

// Map returns the repository's symbols in rank order, grouped by file.
// Pagination windows the symbol list after ranking; grouping preserves the
// order in which files first appear in it.
func (ix *CodeIndex) Map(ctx context.Context, opts MapOptions) (*MapResult, error) {
	if err := ix.ensure(ctx); err != nil {
		return nil, err
	}
	g := ix.Graph()
	scored := ix.focusedRanking(opts.FocusFiles)

	res := &MapResult{
		TotalFiles:   g.FileCount(),
		TotalSymbols: len(scored),
	}
	if opts.Count {
		return res, nil
	}

	window := paginate(scored, opts.Page)
	res.ShownSymbols = len(window)

	// Group by file in first-appearance order.
	index := make(map[string]int)
	for _, s := range window {
		sym := g.Symbol(s.Key)
		if sym == nil {
			continue
		}
		i, ok := index[sym.File]
		if !ok {
			i = len(res.Files)
			index[sym.File] = i
			res.Files = append(res.Files, MapFile{Path: sym.File})
		}
		res.Files[i].Symbols = append(res.Files[i].Symbols, MapSymbol{
			Name:      sym.Name,
			Kind:      sym.Kind,
			LineStart: sym.LineStart,
			LineEnd:   sym.LineEnd,
			Signature: sym.Signature,
			Score:     s.Score,
		})
	}
	res.ShownFiles = len(res.Files)

	if !opts.Structured {
		res.Text = renderMapText(res.Files)
		res.Files = nil
	}
	return res, nil
}

// renderMapText renders the grouped map in the two-column text shape:
// a file header line, then one gutter line per symbol.
func renderMapText(files []MapFile) string {
	var b strings.Builder
	for i, f := range files {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s\n", f.Path)
		for _, s := range f.Symbols {
			fmt.Fprintf(&b, "  %4d│ %s\n", s.LineStart, s.Signature)
		}
	}
	return b.String()
}
