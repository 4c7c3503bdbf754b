package codeindex

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/jward/codeindex/internal/graph"
)

// ContextOptions selects the symbol to assemble context for.
type ContextOptions struct {
	Symbol string // required: symbol name
	File   string // optional: narrow to the definition in this file
}

// UsedSymbol is another indexed symbol mentioned in the target's body.
type UsedSymbol struct {
	Name      string     `json:"name"`
	Kind      SymbolKind `json:"kind"`
	File      string     `json:"file"`
	LineStart int        `json:"lineStart"`
	Signature string     `json:"signature"`
}

// TypePreview is a short body excerpt of a class/type named in the
// target's signature.
type TypePreview struct {
	Name      string   `json:"name"`
	File      string   `json:"file"`
	Lines     []string `json:"lines"`
	Truncated bool     `json:"truncated"`
}

// ContextResult is the full working context of one symbol: its source,
// the symbols its body uses, previews of the types in its signature, and
// the external files that call it.
type ContextResult struct {
	Symbol      *SymbolResult `json:"symbol,omitempty"`
	Source      []string      `json:"source,omitempty"`
	Used        []UsedSymbol  `json:"used,omitempty"`
	Types       []TypePreview `json:"types,omitempty"`
	CallerFiles []string      `json:"callerFiles,omitempty"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// typePreviewLines caps a type preview's body excerpt.
const typePreviewLines = 15

// Context resolves one symbol (ambiguity broken by PageRank), reads its
// body, and assembles everything needed to work on it. Body scanning is
// whole-word text matching, so comments and strings can contribute
// spurious entries; the stopword list keeps the noise down but results
// stay advisory.
func (ix *CodeIndex) Context(ctx context.Context, opts ContextOptions) (*ContextResult, error) {
	if err := ix.ensure(ctx); err != nil {
		return nil, err
	}
	g := ix.Graph()

	candidates := symbolsMatching(g, opts.Symbol, opts.File)
	if len(candidates) == 0 {
		return &ContextResult{Suggestions: suggestSymbols(g, opts.Symbol)}, nil
	}
	scores := scoreMap(ix.ranking())
	target := bestSymbol(candidates, scores)

	res := &ContextResult{}
	sr := symbolResult(target, scores[target.Key])
	res.Symbol = &sr

	body := ""
	if src, err := ix.readSource(target.File); err == nil {
		lines := strings.Split(string(src), "\n")
		start, end := target.LineStart, target.LineEnd
		if start >= 1 && start <= len(lines) {
			if end > len(lines) {
				end = len(lines)
			}
			res.Source = lines[start-1 : end]
			body = strings.Join(res.Source, "\n")
		}
	}

	res.Used = ix.usedSymbols(target, body, scores)
	res.Types = ix.typePreviews(target)

	// External caller files, unioned across every same-name candidate.
	callerSet := make(map[string]struct{})
	for _, cand := range g.SymbolsNamed(target.Name) {
		for _, from := range g.Incoming(graph.EdgeReferences, cand.Key) {
			if from != cand.File {
				callerSet[from] = struct{}{}
			}
		}
	}
	for f := range callerSet {
		res.CallerFiles = append(res.CallerFiles, f)
	}
	sort.Strings(res.CallerFiles)

	return res, nil
}

// usedSymbols finds the other indexed symbols mentioned in the body by
// whole-word match, skipping stopwords and names of one or two characters.
// Each name resolves to its best definition: same-file first, then
// highest-ranked.
func (ix *CodeIndex) usedSymbols(target *SymbolNode, body string, scores map[string]float64) []UsedSymbol {
	if body == "" {
		return nil
	}
	g := ix.Graph()

	seen := make(map[string]struct{})
	var used []UsedSymbol
	for _, word := range identifierRe.FindAllString(body, -1) {
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		if word == target.Name || len(word) <= 2 || contextStopwords[word] {
			continue
		}
		candidates := g.SymbolsNamed(word)
		if len(candidates) == 0 {
			continue
		}
		best := (*SymbolNode)(nil)
		for _, c := range candidates {
			if c.File == target.File && c.Key != target.Key {
				best = c
				break
			}
		}
		if best == nil {
			best = bestSymbol(candidates, scores)
		}
		if best == nil || best.Key == target.Key {
			continue
		}
		used = append(used, UsedSymbol{
			Name:      best.Name,
			Kind:      best.Kind,
			File:      best.File,
			LineStart: best.LineStart,
			Signature: best.Signature,
		})
	}
	sort.Slice(used, func(i, j int) bool { return used[i].Name < used[j].Name })
	return used
}

// typePreviews excerpts the definitions of capitalized signature tokens
// that name a known class or type.
func (ix *CodeIndex) typePreviews(target *SymbolNode) []TypePreview {
	g := ix.Graph()

	seen := make(map[string]struct{})
	var previews []TypePreview
	for _, word := range identifierRe.FindAllString(target.Signature, -1) {
		if word == target.Name {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		r := []rune(word)
		if len(r) == 0 || !unicode.IsUpper(r[0]) {
			continue
		}
		for _, cand := range g.SymbolsNamed(word) {
			if cand.Kind != KindClass && cand.Kind != KindType {
				continue
			}
			src, err := ix.readSource(cand.File)
			if err != nil {
				continue
			}
			lines := strings.Split(string(src), "\n")
			start, end := cand.LineStart, cand.LineEnd
			if start < 1 || start > len(lines) {
				continue
			}
			if end > len(lines) {
				end = len(lines)
			}
			excerpt := lines[start-1 : end]
			truncated := len(excerpt) > typePreviewLines
			if truncated {
				excerpt = excerpt[:typePreviewLines]
			}
			previews = append(previews, TypePreview{
				Name:      cand.Name,
				File:      cand.File,
				Lines:     excerpt,
				Truncated: truncated,
			})
			break
		}
	}
	return previews
}

var identifierRe = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)

// contextStopwords are generic names too common to be informative when
// they show up in a body scan.
var contextStopwords = map[string]bool{
	"get": true, "set": true, "add": true, "has": true, "new": true,
	"run": true, "map": true, "key": true, "val": true, "err": true,
	"data": true, "value": true, "result": true, "name": true, "type": true,
	"item": true, "items": true, "list": true, "node": true, "file": true,
	"path": true, "line": true, "text": true, "test": true, "error": true,
	"index": true, "count": true, "next": true, "prev": true, "self": true,
	"this": true, "true": true, "false": true, "null": true, "none": true,
	"string": true, "number": true, "object": true, "array": true,
	"return": true, "const": true, "function": true, "class": true,
	"import": true, "export": true, "default": true, "main": true,
	"init": true, "args": true, "options": true, "config": true,
	"update": true, "create": true, "delete": true, "remove": true,
	"start": true, "stop": true, "open": true, "close": true,
	"read": true, "write": true, "check": true, "parse": true,
}
