package codeindex

import (
	"github.com/jward/codeindex/internal/cache"
	"github.com/jward/codeindex/internal/graph"
	"github.com/jward/codeindex/internal/vcs"
)

// Public type aliases for internal types used in the query API. These are
// Go type aliases (=) — identical to the internal types at compile time;
// external consumers use these names, no conversion is needed.

type Graph = graph.Graph
type FileSymbols = graph.FileSymbols
type Definition = graph.Definition
type Reference = graph.Reference
type SymbolNode = graph.SymbolNode
type FileNode = graph.FileNode
type SymbolKind = graph.SymbolKind
type LogEntry = vcs.LogEntry
type EnsureResult = cache.EnsureResult

const (
	KindFunction  = graph.KindFunction
	KindClass     = graph.KindClass
	KindType      = graph.KindType
	KindVariable  = graph.KindVariable
	KindNamespace = graph.KindNamespace
	KindOther     = graph.KindOther
)
