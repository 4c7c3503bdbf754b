// Package codeindex is a structural code-indexing engine built on
// tree-sitter. It consumes a source tree in roughly a dozen languages and
// answers structural queries (which symbols matter most, who calls this
// function, which files import this file) with results ranked by graph
// centrality.
//
// # Pipeline
//
// Indexing runs in three phases behind a single entry point:
//
//  1. Discover: walk the project root, filter by ignore patterns, and
//     classify files as changed or deleted by modification time.
//  2. Extract: parse each changed file with its grammar and run the
//     language's definition and reference queries, producing one
//     FileSymbols record per file.
//  3. Merge: fold the records into a heterogeneous graph of file and
//     symbol nodes with DEFINES, REFERENCES, and IMPORTS edges, resolving
//     each reference through the name index and disambiguation policy.
//
// The graph and the mtime map persist as a versioned JSON document under
// the platform cache directory, so a warm start only re-parses what moved.
//
// # Usage
//
// Create a CodeIndex for a project root and query it:
//
//	ix, err := codeindex.New("path/to/project")
//	if err != nil { ... }
//
//	ctx := context.Background()
//	res, err := ix.Map(ctx, codeindex.MapOptions{})
//	callers, err := ix.Callers(ctx, codeindex.CallersOptions{Symbol: "parseConfig"})
//
// Every query operation runs the ensure pass first, so results always
// reflect the tree on disk at call time.
//
// # Ranking
//
// Scores come from weighted PageRank over the graph (damping 0.85), with
// an optional focus bias: focus files receive edges from a virtual node so
// their neighborhoods rise. Path tiers then dampen areas like tests/ and
// scripts/ that accumulate centrality without mattering. The unfocused
// ranking is cached per session and invalidated whenever a file changes.
//
// # Method calls
//
// Reference extraction is deliberately narrow: bare call targets, import
// identifiers, type identifiers, decorators. Receiver-qualified calls
// (obj.method(...)) are never captured: without type information those
// cross-wire every common method name. The recall loss on methods is the
// price of cross-language uniformity.
package codeindex
