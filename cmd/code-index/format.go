package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	codeindex "github.com/jward/codeindex"
)

// outputText renders the result types that have a text shape. It reports
// done=false for anything it does not know, which then falls back to JSON.
func outputText(w io.Writer, v any) (bool, error) {
	switch r := v.(type) {
	case *codeindex.MapResult:
		formatMapText(w, r)
	case *codeindex.SearchResult:
		formatSymbolsText(w, r.Symbols, r.Total)
	case *codeindex.SymbolsResult:
		if r.FileNotFound {
			formatNotFound(w, "file", r.Suggestions)
			return true, nil
		}
		formatSymbolsText(w, r.Symbols, r.Total)
	case *codeindex.CallersResult:
		formatCallersText(w, r)
	case *codeindex.DepsResult:
		formatDepsText(w, r)
	case *codeindex.OrphansResult:
		formatOrphansText(w, r)
	case *codeindex.TraceResult:
		formatTraceText(w, r)
	case *codeindex.OutlineResult:
		formatOutlineText(w, r)
	case *codeindex.StatsResult:
		formatStatsText(w, r)
	case codeindex.EnsureResult:
		fmt.Fprintf(w, "scanned %d, reparsed %d, dropped %d\n", r.Scanned, r.Changed, r.Deleted)
	default:
		return false, nil
	}
	return true, nil
}

func formatNotFound(w io.Writer, what string, suggestions []string) {
	fmt.Fprintf(w, "%s not found\n", what)
	for _, s := range suggestions {
		fmt.Fprintf(w, "  did you mean: %s\n", s)
	}
}

func formatMapText(w io.Writer, r *codeindex.MapResult) {
	if r.Text != "" {
		fmt.Fprint(w, r.Text)
	}
	for _, f := range r.Files {
		fmt.Fprintf(w, "%s\n", f.Path)
		for _, s := range f.Symbols {
			fmt.Fprintf(w, "  %4d│ %s\n", s.LineStart, s.Signature)
		}
	}
	fmt.Fprintf(w, "\nShowing %d symbols in %d files (of %d symbols in %d files)\n",
		r.ShownSymbols, r.ShownFiles, r.TotalSymbols, r.TotalFiles)
}

func formatSymbolsText(w io.Writer, syms []codeindex.SymbolResult, total int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tFILE\tLINE\tSIGNATURE")
	for _, s := range syms {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", s.Name, s.Kind, s.File, s.LineStart, s.Signature)
	}
	tw.Flush()
	if len(syms) < total {
		fmt.Fprintf(w, "\nShowing %d of %d results\n", len(syms), total)
	}
}

func formatCallersText(w io.Writer, r *codeindex.CallersResult) {
	if r.Total == 0 && len(r.Suggestions) > 0 {
		formatNotFound(w, "symbol", r.Suggestions)
		return
	}
	for _, c := range r.Callers {
		fmt.Fprintf(w, "%s\n", c.File)
		for _, site := range c.Sites {
			for _, line := range site.Excerpt {
				fmt.Fprintf(w, "  %s\n", line)
			}
			fmt.Fprintln(w)
		}
	}
	if len(r.Callers) < r.Total {
		fmt.Fprintf(w, "\nShowing %d of %d callers\n", len(r.Callers), r.Total)
	}
}

func formatDepsText(w io.Writer, r *codeindex.DepsResult) {
	if r.FileNotFound {
		formatNotFound(w, "file", r.Suggestions)
		return
	}
	for _, f := range r.Files {
		fmt.Fprintf(w, "%s\n", f.File)
	}
	if len(r.Files) < r.Total {
		fmt.Fprintf(w, "\nShowing %d of %d files\n", len(r.Files), r.Total)
	}
}

func formatOrphansText(w io.Writer, r *codeindex.OrphansResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if r.Files != nil {
		fmt.Fprintln(tw, "FILE\tSYMBOLS")
		for _, f := range r.Files {
			fmt.Fprintf(tw, "%s\t%d\n", f.File, f.SymbolCount)
		}
	} else {
		fmt.Fprintln(tw, "NAME\tKIND\tFILE\tLINE")
		for _, s := range r.Symbols {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", s.Name, s.Kind, s.File, s.LineStart)
		}
	}
	tw.Flush()
}

func formatTraceText(w io.Writer, r *codeindex.TraceResult) {
	if len(r.Roots) == 0 && len(r.Suggestions) > 0 {
		formatNotFound(w, "symbol", r.Suggestions)
		return
	}
	var walk func(n codeindex.TraceNode, depth int)
	walk = func(n codeindex.TraceNode, depth int) {
		fmt.Fprintf(w, "%s%s  (%s:%d)\n", strings.Repeat("  ", depth), n.Name, n.File, n.Line)
		for _, c := range n.Callers {
			walk(c, depth+1)
		}
	}
	for _, root := range r.Roots {
		walk(root, 0)
	}
}

func formatOutlineText(w io.Writer, r *codeindex.OutlineResult) {
	if r.FileNotFound {
		formatNotFound(w, "file", r.Suggestions)
		return
	}
	fmt.Fprint(w, r.Text)
	for _, m := range r.Missing {
		fmt.Fprintf(w, "no symbol named %q", m)
		if len(r.Suggestions) > 0 {
			fmt.Fprintf(w, " (similar: %s)", strings.Join(r.Suggestions, ", "))
		}
		fmt.Fprintln(w)
	}
}

func formatStatsText(w io.Writer, r *codeindex.StatsResult) {
	fmt.Fprintf(w, "Root: %s\n", r.Root)
	fmt.Fprintf(w, "Files: %d\n", r.Files)
	fmt.Fprintf(w, "Symbols: %d\n", r.Symbols)
	fmt.Fprintf(w, "Edges: %d defines, %d references, %d imports\n", r.Defines, r.References, r.Imports)

	if len(r.SymbolsByKind) > 0 {
		fmt.Fprintln(w, "\nSymbols by kind:")
		kinds := make([]string, 0, len(r.SymbolsByKind))
		for k := range r.SymbolsByKind {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(w, "  %s: %d\n", k, r.SymbolsByKind[codeindex.SymbolKind(k)])
		}
	}
	if len(r.Languages) > 0 {
		fmt.Fprintln(w, "\nLanguages:")
		langs := make([]string, 0, len(r.Languages))
		for l := range r.Languages {
			langs = append(langs, l)
		}
		sort.Strings(langs)
		for _, l := range langs {
			fmt.Fprintf(w, "  %s: %d files\n", l, r.Languages[l])
		}
	}
}
