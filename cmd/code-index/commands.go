package main

import (
	"context"

	"github.com/spf13/cobra"

	codeindex "github.com/jward/codeindex"
)

var (
	flagFocus      string
	flagStructured bool
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Show the repository's symbols in rank order, grouped by file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Map(context.Background(), codeindex.MapOptions{
			FocusFiles: splitList(flagFocus),
			Structured: flagStructured,
			Page:       page(),
		})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var flagKind string

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find symbols by name or signature substring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Search(context.Background(), codeindex.SearchOptions{
			Query: args[0],
			Kind:  codeindex.SymbolKind(flagKind),
			Page:  page(),
		})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var flagFile string

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "Enumerate symbols, optionally filtered by file or kind",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Symbols(context.Background(), codeindex.SymbolsOptions{
			File: flagFile,
			Kind: codeindex.SymbolKind(flagKind),
			Page: page(),
		})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var flagContext int

var callersCmd = &cobra.Command{
	Use:   "callers <symbol>",
	Short: "List the files that call a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Callers(context.Background(), codeindex.CallersOptions{
			Symbol:  args[0],
			File:    flagFile,
			Context: flagContext,
			Page:    page(),
		})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var depsCmd = &cobra.Command{
	Use:   "deps <file>",
	Short: "List the files a file imports",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Dependencies(context.Background(), codeindex.DepsOptions{File: args[0], Page: page()})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var dependentsCmd = &cobra.Command{
	Use:   "dependents <file>",
	Short: "List the files importing a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Dependents(context.Background(), codeindex.DepsOptions{File: args[0], Page: page()})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var (
	flagHops         int
	flagMaxFiles     int
	flagNoDependents bool
)

var neighborhoodCmd = &cobra.Command{
	Use:   "neighborhood <file>",
	Short: "Show the ranked local neighborhood of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Neighborhood(context.Background(), codeindex.NeighborhoodOptions{
			File:              args[0],
			Hops:              flagHops,
			MaxFiles:          flagMaxFiles,
			ExcludeDependents: flagNoDependents,
			Count:             flagCount,
		})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var flagLevel string

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "Find files or symbols nothing references",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Orphans(context.Background(), codeindex.OrphansOptions{
			Level: codeindex.OrphanLevel(flagLevel),
			Kind:  codeindex.SymbolKind(flagKind),
			Page:  page(),
		})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Show the repository map as per-file objects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Map(context.Background(), codeindex.MapOptions{
			FocusFiles: splitList(flagFocus),
			Structured: true,
			Page:       page(),
		})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var contextCmd = &cobra.Command{
	Use:   "context <symbol>",
	Short: "Assemble the full context of one symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Context(context.Background(), codeindex.ContextOptions{
			Symbol: args[0],
			File:   flagFile,
		})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var flagDepth int

var traceCmd = &cobra.Command{
	Use:   "trace <symbol>",
	Short: "Walk the call graph upward from a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Trace(context.Background(), codeindex.TraceOptions{
			Symbol: args[0],
			File:   flagFile,
			Depth:  flagDepth,
		})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var flagRef string

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Rank changed files by the blast radius of their definition changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Diff(context.Background(), codeindex.DiffOptions{Ref: flagRef})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var (
	flagN    int
	flagSkip int
)

var historyCmd = &cobra.Command{
	Use:   "history <symbol>",
	Short: "Show the commits that touched a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.History(context.Background(), codeindex.HistoryOptions{
			Symbol: args[0],
			File:   flagFile,
			N:      flagN,
			Skip:   flagSkip,
		})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var (
	flagExpand      string
	flagWithCallers bool
)

var outlineCmd = &cobra.Command{
	Use:   "outline <file>",
	Short: "Render a file with definition bodies collapsed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Outline(context.Background(), codeindex.OutlineOptions{
			File:          args[0],
			ExpandSymbols: splitList(flagExpand),
			WithCallers:   flagWithCallers,
		})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Drop the cache and rebuild the index from scratch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Reindex(context.Background())
		if err != nil {
			return err
		}
		return output(res)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		res, err := ix.Stats(context.Background())
		if err != nil {
			return err
		}
		return output(res)
	},
}

func init() {
	mapCmd.Flags().StringVar(&flagFocus, "focus", "", "comma-separated focus files to bias ranking")
	mapCmd.Flags().BoolVar(&flagStructured, "structured", false, "emit per-file objects instead of text")
	structureCmd.Flags().StringVar(&flagFocus, "focus", "", "comma-separated focus files to bias ranking")

	searchCmd.Flags().StringVar(&flagKind, "kind", "", "filter by symbol kind")
	symbolsCmd.Flags().StringVar(&flagKind, "kind", "", "filter by symbol kind")
	symbolsCmd.Flags().StringVar(&flagFile, "file", "", "restrict to one file")
	orphansCmd.Flags().StringVar(&flagKind, "kind", "", "filter by symbol kind")
	orphansCmd.Flags().StringVar(&flagLevel, "level", "file", "orphan level: file|symbol")

	callersCmd.Flags().StringVar(&flagFile, "file", "", "narrow to the definition in this file")
	callersCmd.Flags().IntVar(&flagContext, "context", 0, "lines of context around each call site")

	neighborhoodCmd.Flags().IntVar(&flagHops, "hops", 0, "BFS depth on import edges (default 2)")
	neighborhoodCmd.Flags().IntVar(&flagMaxFiles, "max-files", 0, "cap on files kept (default 15)")
	neighborhoodCmd.Flags().BoolVar(&flagNoDependents, "no-dependents", false, "skip the backward hop onto dependents")

	contextCmd.Flags().StringVar(&flagFile, "file", "", "narrow to the definition in this file")
	traceCmd.Flags().StringVar(&flagFile, "file", "", "narrow to the definition in this file")
	traceCmd.Flags().IntVar(&flagDepth, "depth", 0, "recursion cap (default 3)")

	diffCmd.Flags().StringVar(&flagRef, "ref", "HEAD", "comparison ref")

	historyCmd.Flags().StringVar(&flagFile, "file", "", "narrow to the definition in this file")
	historyCmd.Flags().IntVar(&flagN, "n", 0, "max entries (default 10)")
	historyCmd.Flags().IntVar(&flagSkip, "skip", 0, "entries to skip")

	outlineCmd.Flags().StringVar(&flagExpand, "expand", "", "comma-separated symbols to print in full")
	outlineCmd.Flags().BoolVar(&flagWithCallers, "callers", false, "annotate collapsed bodies with caller counts")
}
