package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const (
	braceSignatureCap = 200
	colonSignatureCap = 300
	ellipsis          = "..."
)

// signature renders the single-line declaration head of a definition node.
//
// Brace languages cut at the first '{' or line break. Indentation languages
// cut at the ':' that terminates the head: the first ':' after the balanced
// ')' of the parameter list, or the first ':' at all when no '(' comes
// before it. Brace-language text is preserved as written; in the colon form
// every whitespace run is collapsed to a single space.
func signature(src []byte, node *sitter.Node, colonForm bool) string {
	text := node.Content(src)
	if colonForm {
		return capped(collapseSpace(cutAtColon(text)), colonSignatureCap)
	}
	if i := strings.IndexAny(text, "{\n"); i >= 0 {
		text = text[:i]
	}
	return capped(strings.TrimSpace(text), braceSignatureCap)
}

// cutAtColon returns text up to and including the head-terminating colon.
func cutAtColon(text string) string {
	open := strings.IndexByte(text, '(')
	colon := strings.IndexByte(text, ':')
	if open < 0 || (colon >= 0 && colon < open) {
		if colon >= 0 {
			return text[:colon+1]
		}
		return text
	}
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				if j := strings.IndexByte(text[i:], ':'); j >= 0 {
					return text[:i+j+1]
				}
				return text
			}
		}
	}
	return text
}

// collapseSpace replaces every whitespace run with a single space.
func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// capped truncates to limit runes and appends an ellipsis marker.
func capped(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + ellipsis
}
