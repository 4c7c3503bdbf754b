package codeindex

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// OutlineOptions configures file outlining.
type OutlineOptions struct {
	File          string   // required
	ExpandSymbols []string // print these symbols in full instead
	WithCallers   bool     // annotate collapsed bodies with caller counts
}

// OutlineResult is the rendered outline plus any expansion misses.
type OutlineResult struct {
	Text         string   `json:"text,omitempty"`
	Missing      []string `json:"missing,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
	FileNotFound bool     `json:"fileNotFound,omitempty"`
}

// Outline renders a file with leaf definition bodies collapsed to a line
// count. With ExpandSymbols it instead prints the full text of the named
// definitions. Container definitions (any definition enclosing another)
// stay open so nesting structure survives the collapse.
func (ix *CodeIndex) Outline(ctx context.Context, opts OutlineOptions) (*OutlineResult, error) {
	if err := ix.ensure(ctx); err != nil {
		return nil, err
	}
	g := ix.Graph()

	if g.File(opts.File) == nil {
		return &OutlineResult{
			FileNotFound: true,
			Suggestions:  suggestFiles(g, opts.File),
		}, nil
	}
	src, err := ix.readSource(opts.File)
	if err != nil {
		return nil, fmt.Errorf("outline %s: %w", opts.File, err)
	}

	var defs []*SymbolNode
	for _, key := range g.SymbolsOf(opts.File) {
		defs = append(defs, g.Symbol(key))
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].LineStart != defs[j].LineStart {
			return defs[i].LineStart < defs[j].LineStart
		}
		return defs[i].LineEnd > defs[j].LineEnd
	})

	if len(opts.ExpandSymbols) > 0 {
		return ix.expandOutline(src, defs, opts), nil
	}

	var callerCounts map[string]int
	if opts.WithCallers {
		callerCounts = make(map[string]int, len(defs))
		for _, d := range defs {
			callerCounts[d.Name] = ix.externalCallers(d.File, d.Name)
		}
	}
	return &OutlineResult{Text: renderOutline(src, defs, callerCounts)}, nil
}

// expandOutline prints the full [lineStart..lineEnd] text of every named
// match, suggesting similarly-named symbols for misses.
func (ix *CodeIndex) expandOutline(src []byte, defs []*SymbolNode, opts OutlineOptions) *OutlineResult {
	lines := strings.Split(string(src), "\n")
	res := &OutlineResult{}

	var b strings.Builder
	for _, want := range opts.ExpandSymbols {
		found := false
		for _, d := range defs {
			if d.Name != want {
				continue
			}
			found = true
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			for n := d.LineStart; n <= d.LineEnd && n <= len(lines); n++ {
				fmt.Fprintf(&b, "%4d│ %s\n", n, lines[n-1])
			}
		}
		if !found {
			res.Missing = append(res.Missing, want)
			for _, d := range defs {
				if strings.Contains(strings.ToLower(d.Name), strings.ToLower(want)) {
					res.Suggestions = append(res.Suggestions, d.Name)
				}
			}
		}
	}
	if len(res.Suggestions) > maxSuggestions {
		res.Suggestions = res.Suggestions[:maxSuggestions]
	}
	res.Text = b.String()
	return res
}

// renderOutline prints the file with a line-number gutter, replacing each
// leaf definition body of two or more lines with a count marker.
func renderOutline(src []byte, defs []*SymbolNode, callerCounts map[string]int) string {
	lines := strings.Split(string(src), "\n")

	// A container is any definition that encloses another definition.
	container := make(map[string]bool)
	for _, outer := range defs {
		for _, inner := range defs {
			if inner == outer {
				continue
			}
			if inner.LineStart >= outer.LineStart && inner.LineEnd <= outer.LineEnd &&
				(inner.LineStart > outer.LineStart || inner.LineEnd < outer.LineEnd) {
				container[outer.Key] = true
			}
		}
	}

	// Leaf collapse ranges by starting line.
	type collapse struct {
		sym      *SymbolNode
		bodySize int
	}
	collapseAt := make(map[int]collapse)
	for _, d := range defs {
		if container[d.Key] {
			continue
		}
		bodySize := d.LineEnd - d.LineStart
		if bodySize >= 2 {
			if prev, taken := collapseAt[d.LineStart]; !taken || bodySize > prev.bodySize {
				collapseAt[d.LineStart] = collapse{sym: d, bodySize: bodySize}
			}
		}
	}

	var b strings.Builder
	for n := 1; n <= len(lines); n++ {
		fmt.Fprintf(&b, "%4d│ %s\n", n, lines[n-1])
		if c, ok := collapseAt[n]; ok {
			marker := fmt.Sprintf("... (%d lines)", c.bodySize)
			if callerCounts != nil {
				if count, has := callerCounts[c.sym.Name]; has && count > 0 {
					marker += fmt.Sprintf("  ← %d callers", count)
				}
			}
			fmt.Fprintf(&b, "    │ %s\n", marker)
			n = c.sym.LineEnd
		}
	}
	return b.String()
}
