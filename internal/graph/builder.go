package graph

import (
	"sort"
	"strings"
)

// AmbiguityCap is the largest candidate set a reference may resolve against.
// A name defined in more candidate files than this (with no same-file winner)
// wires to nothing: the edges would carry more noise than signal.
const AmbiguityCap = 5

// Build constructs a graph from scratch out of extraction records.
func Build(records []FileSymbols) *Graph {
	g := New()
	for i := range records {
		g.mergeNodes(&records[i])
	}
	index := g.nameIndex()
	for i := range records {
		g.resolveFile(records[i].Path, index)
	}
	return g
}

// Update applies an incremental change: removed paths are dropped wholesale,
// added records are merged in. Files whose reference candidate sets may have
// shifted (they mention a name defined by a removed or added symbol) are
// re-resolved, which makes the result identical to a cold build over the
// equivalent input set.
func (g *Graph) Update(removed []string, added []FileSymbols) {
	changedNames := make(map[string]struct{})
	for _, path := range removed {
		for key := range g.symbolsByFile[path] {
			changedNames[g.symbols[key].Name] = struct{}{}
		}
		g.removeFile(path)
	}
	for i := range added {
		path := added[i].Path
		for key := range g.symbolsByFile[path] {
			changedNames[g.symbols[key].Name] = struct{}{}
		}
		g.removeFile(path)
		for _, d := range added[i].Definitions {
			changedNames[d.Name] = struct{}{}
		}
	}
	for i := range added {
		g.mergeNodes(&added[i])
	}

	index := g.nameIndex()

	dirty := make(map[string]struct{}, len(added))
	for i := range added {
		dirty[added[i].Path] = struct{}{}
	}
	for path, refs := range g.refs {
		if _, ok := dirty[path]; ok {
			continue
		}
		for _, r := range refs {
			if _, ok := changedNames[r.Name]; ok {
				dirty[path] = struct{}{}
				break
			}
		}
	}

	paths := make([]string, 0, len(dirty))
	for p := range dirty {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, path := range paths {
		g.references.removeOutgoing(path)
		g.imports.removeOutgoing(path)
		g.resolveFile(path, index)
	}
}

// mergeNodes upserts the file node, its symbol nodes, the DEFINES edges, and
// the raw reference list. Resolution happens separately once the name index
// covers every definition in the batch.
func (g *Graph) mergeNodes(fs *FileSymbols) {
	g.files[fs.Path] = &FileNode{Path: fs.Path, SymbolCount: len(fs.Definitions)}
	if g.symbolsByFile[fs.Path] == nil {
		g.symbolsByFile[fs.Path] = make(map[string]struct{})
	}
	for _, d := range fs.Definitions {
		key := SymbolKey(fs.Path, d.Name)
		if _, exists := g.symbols[key]; exists {
			// Same name defined twice in one file (overloads, re-opened
			// classes): the first definition owns the node.
			continue
		}
		g.symbols[key] = &SymbolNode{
			Key:       key,
			Name:      d.Name,
			Kind:      d.Kind,
			File:      fs.Path,
			LineStart: d.LineStart,
			LineEnd:   d.LineEnd,
			Signature: d.Signature,
		}
		g.symbolsByFile[fs.Path][key] = struct{}{}
		g.defines.add(fs.Path, key)
	}
	g.refs[fs.Path] = append([]Reference(nil), fs.References...)
}

// nameIndex maps each symbol name to the sorted keys of its definitions.
func (g *Graph) nameIndex() map[string][]string {
	index := make(map[string][]string)
	for key, sym := range g.symbols {
		index[sym.Name] = append(index[sym.Name], key)
	}
	for name := range index {
		sort.Strings(index[name])
	}
	return index
}

// resolveFile wires a file's references into REFERENCES and IMPORTS edges.
func (g *Graph) resolveFile(path string, index map[string][]string) {
	for _, ref := range g.refs[path] {
		for _, key := range disambiguate(path, index[ref.Name]) {
			g.references.add(path, key)
			if owner := g.symbols[key].File; owner != path {
				g.imports.add(path, owner)
			}
		}
	}
}

// disambiguate applies the three-branch resolution policy: a single
// candidate wins outright, same-file candidates suppress cross-file ones,
// and anything beyond AmbiguityCap wires to nothing.
func disambiguate(from string, candidates []string) []string {
	switch {
	case len(candidates) == 0:
		return nil
	case len(candidates) == 1:
		return candidates
	}
	prefix := from + "::"
	var sameFile []string
	for _, key := range candidates {
		if strings.HasPrefix(key, prefix) {
			sameFile = append(sameFile, key)
		}
	}
	if len(sameFile) > 0 {
		return sameFile
	}
	if len(candidates) > AmbiguityCap {
		return nil
	}
	return candidates
}
