package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// DocVersion is the persisted document version this build writes. Version 1
// documents decode with the same schema (they predate the signature field,
// which simply round-trips as empty).
const DocVersion = 2

// ErrCacheCorrupt marks a persisted document that cannot be used: wrong
// version, truncated JSON, or schema mismatch. Callers treat it as "no
// cache" and rebuild cold.
var ErrCacheCorrupt = errors.New("cache document corrupt")

type edgeDoc struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type graphDoc struct {
	Files      []FileNode             `json:"files"`
	Symbols    []SymbolNode           `json:"symbols"`
	References []edgeDoc              `json:"references"`
	Imports    []edgeDoc              `json:"imports"`
	Refs       map[string][]Reference `json:"refs"`
}

// Document is the on-disk cache form: the graph plus the mtime map the
// watcher uses for change detection.
type Document struct {
	Version int              `json:"version"`
	Graph   graphDoc         `json:"graph"`
	Mtimes  map[string]int64 `json:"mtimes"`
}

// Marshal renders the graph and mtimes as a versioned JSON document with
// deterministic ordering.
func Marshal(g *Graph, mtimes map[string]int64) ([]byte, error) {
	doc := Document{Version: DocVersion, Mtimes: mtimes}

	for _, path := range g.FilePaths() {
		doc.Graph.Files = append(doc.Graph.Files, *g.files[path])
	}
	for _, key := range g.SymbolKeys() {
		doc.Graph.Symbols = append(doc.Graph.Symbols, *g.symbols[key])
	}
	doc.Graph.References = edgeDocs(g.references)
	doc.Graph.Imports = edgeDocs(g.imports)
	doc.Graph.Refs = g.refs

	return json.Marshal(doc)
}

func edgeDocs(e *edgeSet) []edgeDoc {
	froms := make([]string, 0, len(e.out))
	for from := range e.out {
		froms = append(froms, from)
	}
	sort.Strings(froms)
	var out []edgeDoc
	for _, from := range froms {
		for _, to := range sortedKeys(e.out[from]) {
			out = append(out, edgeDoc{From: from, To: to})
		}
	}
	return out
}

// Unmarshal restores a graph and mtime map from a persisted document.
// Any decoding failure or unknown version reports ErrCacheCorrupt.
func Unmarshal(data []byte) (*Graph, map[string]int64, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCacheCorrupt, err)
	}
	if doc.Version != 1 && doc.Version != DocVersion {
		return nil, nil, fmt.Errorf("%w: unknown version %d", ErrCacheCorrupt, doc.Version)
	}

	g := New()
	for i := range doc.Graph.Files {
		f := doc.Graph.Files[i]
		g.files[f.Path] = &f
		if g.symbolsByFile[f.Path] == nil {
			g.symbolsByFile[f.Path] = make(map[string]struct{})
		}
	}
	for i := range doc.Graph.Symbols {
		s := doc.Graph.Symbols[i]
		if g.files[s.File] == nil {
			return nil, nil, fmt.Errorf("%w: symbol %q has no file node", ErrCacheCorrupt, s.Key)
		}
		g.symbols[s.Key] = &s
		g.symbolsByFile[s.File][s.Key] = struct{}{}
		g.defines.add(s.File, s.Key)
	}
	for _, e := range doc.Graph.References {
		if g.files[e.From] == nil || g.symbols[e.To] == nil {
			return nil, nil, fmt.Errorf("%w: dangling reference edge %s -> %s", ErrCacheCorrupt, e.From, e.To)
		}
		g.references.add(e.From, e.To)
	}
	for _, e := range doc.Graph.Imports {
		if g.files[e.From] == nil || g.files[e.To] == nil {
			return nil, nil, fmt.Errorf("%w: dangling import edge %s -> %s", ErrCacheCorrupt, e.From, e.To)
		}
		g.imports.add(e.From, e.To)
	}
	for path, refs := range doc.Graph.Refs {
		g.refs[path] = refs
	}

	mtimes := doc.Mtimes
	if mtimes == nil {
		mtimes = make(map[string]int64)
	}
	return g, mtimes, nil
}
