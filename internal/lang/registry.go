// Package lang is the grammar registry: it maps file extensions to
// tree-sitter grammars and to the definition/reference query strings the
// extractor runs against them.
package lang

import (
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	tsx "github.com/smacker/go-tree-sitter/typescript/tsx"
	ts "github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Spec describes one registered language: its grammar handle and the two
// query strings the extractor runs. Grammar handles are read-only after
// registration.
type Spec struct {
	Language string
	Grammar  *sitter.Language
	DefQuery string
	RefQuery string

	// ColonSignatures selects the indentation-language signature policy
	// (cut at the ':' terminating the declaration head).
	ColonSignatures bool
}

// extToLanguage maps file extensions to canonical language names.
var extToLanguage = map[string]string{
	".go":   "go",
	".ts":   "typescript",
	".tsx":  "tsx",
	".js":   "javascript",
	".jsx":  "javascript",
	".py":   "python",
	".rs":   "rust",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cc":   "cpp",
	".cxx":  "cpp",
	".hpp":  "cpp",
	".java": "java",
	".php":  "php",
	".rb":   "ruby",
}

var (
	specs     map[string]*Spec
	specsOnce sync.Once
)

func initSpecs() {
	specsOnce.Do(func() {
		specs = map[string]*Spec{
			"go":         {Language: "go", Grammar: golang.GetLanguage(), DefQuery: goDefs, RefQuery: goRefs},
			"typescript": {Language: "typescript", Grammar: ts.GetLanguage(), DefQuery: tsDefs, RefQuery: tsRefs},
			"tsx":        {Language: "tsx", Grammar: tsx.GetLanguage(), DefQuery: tsDefs, RefQuery: tsRefs},
			"javascript": {Language: "javascript", Grammar: javascript.GetLanguage(), DefQuery: jsDefs, RefQuery: jsRefs},
			"python":     {Language: "python", Grammar: python.GetLanguage(), DefQuery: pyDefs, RefQuery: pyRefs, ColonSignatures: true},
			"rust":       {Language: "rust", Grammar: rust.GetLanguage(), DefQuery: rustDefs, RefQuery: rustRefs},
			"c":          {Language: "c", Grammar: c.GetLanguage(), DefQuery: cDefs, RefQuery: cRefs},
			"cpp":        {Language: "cpp", Grammar: cpp.GetLanguage(), DefQuery: cppDefs, RefQuery: cppRefs},
			"java":       {Language: "java", Grammar: java.GetLanguage(), DefQuery: javaDefs, RefQuery: javaRefs},
			"php":        {Language: "php", Grammar: php.GetLanguage(), DefQuery: phpDefs, RefQuery: phpRefs},
			"ruby":       {Language: "ruby", Grammar: ruby.GetLanguage(), DefQuery: rubyDefs, RefQuery: rubyRefs},
		}
	})
}

// Resolve returns the Spec for a file extension, or nil when the extension
// has no registered grammar.
func Resolve(ext string) *Spec {
	initSpecs()
	lang, ok := extToLanguage[strings.ToLower(ext)]
	if !ok {
		return nil
	}
	return specs[lang]
}

// ResolvePath resolves by the extension of path.
func ResolvePath(path string) *Spec {
	return Resolve(filepath.Ext(path))
}

// Extensions returns every registered extension, unordered.
func Extensions() []string {
	out := make([]string, 0, len(extToLanguage))
	for ext := range extToLanguage {
		out = append(out, ext)
	}
	return out
}

// Supported reports whether path has a registered grammar.
func Supported(path string) bool {
	_, ok := extToLanguage[strings.ToLower(filepath.Ext(path))]
	return ok
}
