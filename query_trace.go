package codeindex

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/jward/codeindex/internal/graph"
)

// TraceOptions configures the upward call-graph walk.
type TraceOptions struct {
	Symbol string // required: symbol name
	File   string // optional: narrow to the definition in this file
	Depth  int    // recursion cap (default 3)
}

// TraceNode is one hop in the caller tree. Synthetic nodes stand in for
// caller files with no containing definition ("<module>" scope).
type TraceNode struct {
	Name      string      `json:"name"`
	File      string      `json:"file"`
	Line      int         `json:"line"`
	Synthetic bool        `json:"synthetic,omitempty"`
	Callers   []TraceNode `json:"callers,omitempty"`
}

// TraceResult is the caller tree rooted at the traced symbol.
type TraceResult struct {
	Roots       []TraceNode `json:"roots"`
	Suggestions []string    `json:"suggestions,omitempty"`
}

const defaultTraceDepth = 3

// Trace walks the call graph upward from a symbol. Each hop locates the
// first textual call site in every caller file and attributes it to the
// innermost definition containing that line; a file with multiple call
// sites in different top-level definitions reports only the first, which
// is documented behavior. Visited (file, name) pairs break cycles.
func (ix *CodeIndex) Trace(ctx context.Context, opts TraceOptions) (*TraceResult, error) {
	if err := ix.ensure(ctx); err != nil {
		return nil, err
	}
	g := ix.Graph()

	targets := symbolsMatching(g, opts.Symbol, opts.File)
	if len(targets) == 0 {
		return &TraceResult{Suggestions: suggestSymbols(g, opts.Symbol)}, nil
	}

	depth := opts.Depth
	if depth <= 0 {
		depth = defaultTraceDepth
	}

	res := &TraceResult{}
	visited := make(map[string]bool)
	for _, t := range targets {
		node := TraceNode{Name: t.Name, File: t.File, Line: t.LineStart}
		visited[t.File+"::"+t.Name] = true
		node.Callers = ix.traceCallers(t, depth, visited)
		res.Roots = append(res.Roots, node)
	}
	return res, nil
}

// traceCallers expands one level of the caller tree.
func (ix *CodeIndex) traceCallers(target *SymbolNode, depth int, visited map[string]bool) []TraceNode {
	if depth <= 0 {
		return nil
	}
	g := ix.Graph()

	callerFiles := g.Incoming(graph.EdgeReferences, target.Key)
	var nodes []TraceNode
	for _, file := range callerFiles {
		line, ok := ix.firstCallLine(file, target)
		if !ok {
			continue
		}
		enclosing := enclosingDefinition(g, file, line)
		if enclosing == nil {
			nodes = append(nodes, TraceNode{
				Name:      "<module>",
				File:      file,
				Line:      line,
				Synthetic: true,
			})
			continue
		}
		key := enclosing.File + "::" + enclosing.Name
		node := TraceNode{Name: enclosing.Name, File: enclosing.File, Line: line}
		if !visited[key] {
			visited[key] = true
			node.Callers = ix.traceCallers(enclosing, depth-1, visited)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// firstCallLine finds the first line in file matching "<name>(" outside
// the target's own definition span.
func (ix *CodeIndex) firstCallLine(file string, target *SymbolNode) (int, bool) {
	src, err := ix.readSource(file)
	if err != nil {
		return 0, false
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(target.Name) + `\s*\(`)
	for i, line := range strings.Split(string(src), "\n") {
		lineNo := i + 1
		if file == target.File && lineNo >= target.LineStart && lineNo <= target.LineEnd {
			continue
		}
		if re.MatchString(line) {
			return lineNo, true
		}
	}
	return 0, false
}

// enclosingDefinition returns the innermost definition in file whose span
// contains line, or nil.
func enclosingDefinition(g *Graph, file string, line int) *SymbolNode {
	var best *SymbolNode
	bestSpan := 0
	keys := g.SymbolsOf(file)
	sort.Strings(keys)
	for _, key := range keys {
		sym := g.Symbol(key)
		if line < sym.LineStart || line > sym.LineEnd {
			continue
		}
		span := sym.LineEnd - sym.LineStart
		if best == nil || span < bestSpan {
			best = sym
			bestSpan = span
		}
	}
	return best
}
