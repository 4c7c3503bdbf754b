// Package extract parses one source buffer with the registered grammar for
// its extension and turns query captures into a FileSymbols record.
package extract

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/codeindex/internal/graph"
	"github.com/jward/codeindex/internal/lang"
)

// Extract parses src with the grammar registered for relPath's extension and
// runs the definition and reference queries. It returns nil when the
// extension is unsupported. Grammar or query failures are never fatal: the
// record degrades to whatever was extracted before the failure.
func Extract(ctx context.Context, relPath string, src []byte) *graph.FileSymbols {
	spec := lang.ResolvePath(relPath)
	if spec == nil {
		return nil
	}

	fs := &graph.FileSymbols{Path: relPath}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(spec.Grammar)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil || tree == nil {
		return fs
	}
	defer tree.Close()
	root := tree.RootNode()

	fs.Definitions = runDefQuery(spec, root, src, relPath)
	fs.References = runRefQuery(spec, root, src, relPath)
	return fs
}

// runDefQuery collects definitions: each match must carry a @name capture;
// @definition falls back to the name node when absent.
func runDefQuery(spec *lang.Spec, root *sitter.Node, src []byte, relPath string) []graph.Definition {
	var defs []graph.Definition
	forEachMatch(spec.DefQuery, spec.Grammar, root, src, func(captures map[string]*sitter.Node) {
		nameNode := captures["name"]
		if nameNode == nil {
			return
		}
		name := nameNode.Content(src)
		if name == "" {
			return
		}
		defNode := captures["definition"]
		if defNode == nil {
			defNode = nameNode
		}
		defs = append(defs, graph.Definition{
			Name:      name,
			Kind:      lang.KindForNode(defNode.Type()),
			File:      relPath,
			LineStart: int(defNode.StartPoint().Row) + 1,
			LineEnd:   int(defNode.EndPoint().Row) + 1,
			Signature: signature(src, defNode, spec.ColonSignatures),
		})
	})
	return defs
}

// runRefQuery collects references: every @ref capture becomes one record.
func runRefQuery(spec *lang.Spec, root *sitter.Node, src []byte, relPath string) []graph.Reference {
	var refs []graph.Reference
	forEachMatch(spec.RefQuery, spec.Grammar, root, src, func(captures map[string]*sitter.Node) {
		refNode := captures["ref"]
		if refNode == nil {
			return
		}
		name := refNode.Content(src)
		if name == "" {
			return
		}
		refs = append(refs, graph.Reference{
			Name: name,
			File: relPath,
			Line: int(refNode.StartPoint().Row) + 1,
		})
	})
	return refs
}

// forEachMatch compiles and runs a query, invoking fn once per match with
// the captures keyed by capture name. A query that fails to compile yields
// no matches.
func forEachMatch(pattern string, grammar *sitter.Language, root *sitter.Node, src []byte, fn func(map[string]*sitter.Node)) {
	if pattern == "" {
		return
	}
	q, err := sitter.NewQuery([]byte(pattern), grammar)
	if err != nil {
		return
	}
	defer q.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q, root)

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, src)
		if len(match.Captures) == 0 {
			continue
		}
		captures := make(map[string]*sitter.Node, len(match.Captures))
		for _, c := range match.Captures {
			captures[q.CaptureNameForId(c.Index)] = c.Node
		}
		fn(captures)
	}
}
