package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/codeindex/internal/graph"
)

func TestResolve_KnownExtensions(t *testing.T) {
	tests := []struct {
		ext  string
		lang string
	}{
		{".go", "go"},
		{".ts", "typescript"},
		{".tsx", "tsx"},
		{".js", "javascript"},
		{".jsx", "javascript"},
		{".py", "python"},
		{".rs", "rust"},
		{".c", "c"},
		{".h", "c"},
		{".cpp", "cpp"},
		{".java", "java"},
		{".php", "php"},
		{".rb", "ruby"},
	}
	for _, tt := range tests {
		spec := Resolve(tt.ext)
		require.NotNil(t, spec, tt.ext)
		assert.Equal(t, tt.lang, spec.Language)
		assert.NotNil(t, spec.Grammar)
		assert.NotEmpty(t, spec.DefQuery)
		assert.NotEmpty(t, spec.RefQuery)
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	spec := Resolve(".GO")
	require.NotNil(t, spec)
	assert.Equal(t, "go", spec.Language)
}

func TestResolve_Unknown(t *testing.T) {
	assert.Nil(t, Resolve(".md"))
	assert.Nil(t, Resolve(""))
}

func TestResolvePath(t *testing.T) {
	spec := ResolvePath("internal/cache/cache.go")
	require.NotNil(t, spec)
	assert.Equal(t, "go", spec.Language)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a/b/c.py"))
	assert.False(t, Supported("a/b/c.txt"))
	assert.False(t, Supported("Makefile"))
}

func TestColonSignatures_PythonOnly(t *testing.T) {
	assert.True(t, Resolve(".py").ColonSignatures)
	assert.False(t, Resolve(".go").ColonSignatures)
	assert.False(t, Resolve(".rb").ColonSignatures)
}

func TestKindForNode(t *testing.T) {
	tests := []struct {
		node string
		kind graph.SymbolKind
	}{
		{"function_declaration", graph.KindFunction},
		{"method_definition", graph.KindFunction},
		{"class_definition", graph.KindClass},
		{"struct_item", graph.KindClass},
		{"interface_declaration", graph.KindType},
		{"type_declaration", graph.KindType},
		{"variable_declarator", graph.KindVariable},
		{"namespace_definition", graph.KindNamespace},
		{"mod_item", graph.KindNamespace},
		{"mystery_node", graph.KindOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, KindForNode(tt.node), tt.node)
	}
}

func TestExtensions_CoversRegistry(t *testing.T) {
	exts := Extensions()
	assert.GreaterOrEqual(t, len(exts), 16)
	for _, ext := range exts {
		assert.NotNil(t, Resolve(ext), ext)
	}
}
