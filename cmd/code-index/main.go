package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	codeindex "github.com/jward/codeindex"
)

var (
	flagRoot   string
	flagCount  bool
	flagOffset int
	flagLimit  int
	flagFormat string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "code-index",
	Short:         "Structural code indexing with PageRank-ranked queries",
	Long:          "code-index parses source trees with tree-sitter, links files and symbols into a graph, and answers structural queries ranked by graph centrality.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", ".", "project root to index")
	rootCmd.PersistentFlags().BoolVar(&flagCount, "count", false, "return result totals only")
	rootCmd.PersistentFlags().IntVar(&flagOffset, "offset", 0, "skip this many results")
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", 0, "max results to return")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: text|json")

	rootCmd.AddCommand(
		mapCmd, searchCmd, symbolsCmd, callersCmd, depsCmd, dependentsCmd,
		neighborhoodCmd, orphansCmd, structureCmd, contextCmd, traceCmd,
		diffCmd, historyCmd, outlineCmd, reindexCmd, statsCmd,
	)
}

// openIndex builds a session for the --root flag.
func openIndex() (*codeindex.CodeIndex, error) {
	ix, err := codeindex.New(flagRoot)
	if err != nil {
		return nil, err
	}
	return ix, nil
}

// page assembles the shared pagination flags.
func page() codeindex.Page {
	return codeindex.Page{Offset: flagOffset, Limit: flagLimit, Count: flagCount}
}

var validFormats = []string{"text", "json"}

func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}

// output renders a result in the selected format. Text rendering falls
// back to JSON for result types without a dedicated formatter.
func output(v any) error {
	if flagFormat == "text" {
		if done, err := outputText(os.Stdout, v); done || err != nil {
			return err
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// splitList parses a comma-separated flag value.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
