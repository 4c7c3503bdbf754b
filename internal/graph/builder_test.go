package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func def(file, name string, kind SymbolKind, start, end int) Definition {
	return Definition{
		Name: name, Kind: kind, File: file,
		LineStart: start, LineEnd: end,
		Signature: "func " + name + "()",
	}
}

func ref(file, name string, line int) Reference {
	return Reference{Name: name, File: file, Line: line}
}

func TestBuild_SameFileWiring(t *testing.T) {
	// File a defines f and g; the body of f calls g.
	g := Build([]FileSymbols{{
		Path: "a",
		Definitions: []Definition{
			def("a", "f", KindFunction, 1, 3),
			def("a", "g", KindFunction, 5, 7),
		},
		References: []Reference{ref("a", "g", 2)},
	}})

	assert.True(t, g.HasEdge(EdgeReferences, "a", "a::g"))
	assert.False(t, g.HasEdge(EdgeImports, "a", "a"), "self-loops are forbidden")
	assert.Equal(t, 0, g.EdgeCount(EdgeImports))
}

func TestBuild_CrossFileWiring(t *testing.T) {
	g := Build([]FileSymbols{
		{
			Path:        "a",
			Definitions: []Definition{def("a", "f", KindFunction, 1, 3)},
		},
		{
			Path:       "b",
			References: []Reference{ref("b", "f", 2)},
		},
	})

	assert.True(t, g.HasEdge(EdgeReferences, "b", "a::f"))
	assert.True(t, g.HasEdge(EdgeImports, "b", "a"))
	assert.Equal(t, []string{"b"}, g.Incoming(EdgeReferences, "a::f"))
}

func TestBuild_SameFileSuppressesCrossFile(t *testing.T) {
	// A same-file candidate wins even when cross-file candidates exist.
	g := Build([]FileSymbols{
		{
			Path:        "x",
			Definitions: []Definition{def("x", "helper", KindFunction, 1, 2)},
			References:  []Reference{ref("x", "helper", 5)},
		},
		{
			Path:        "y",
			Definitions: []Definition{def("y", "helper", KindFunction, 1, 2)},
		},
	})

	assert.True(t, g.HasEdge(EdgeReferences, "x", "x::helper"))
	assert.False(t, g.HasEdge(EdgeReferences, "x", "y::helper"))
	assert.Equal(t, 0, g.EdgeCount(EdgeImports))
}

func TestBuild_AmbiguityCap(t *testing.T) {
	// "run" is defined in six files and called from x, which defines no run.
	records := []FileSymbols{{
		Path:       "x",
		References: []Reference{ref("x", "run", 1)},
	}}
	owners := []string{"a", "b", "c", "d", "e", "f"}
	for _, p := range owners {
		records = append(records, FileSymbols{
			Path:        p,
			Definitions: []Definition{def(p, "run", KindFunction, 1, 2)},
		})
	}
	g := Build(records)

	assert.Empty(t, g.Outgoing(EdgeReferences, "x"))
	assert.Equal(t, 6, len(g.SymbolsNamed("run")))
	for _, p := range owners {
		assert.Empty(t, g.Incoming(EdgeReferences, p+"::run"))
	}
}

func TestBuild_BelowCapWiresToAll(t *testing.T) {
	records := []FileSymbols{{
		Path:       "x",
		References: []Reference{ref("x", "run", 1)},
	}}
	for _, p := range []string{"a", "b", "c"} {
		records = append(records, FileSymbols{
			Path:        p,
			Definitions: []Definition{def(p, "run", KindFunction, 1, 2)},
		})
	}
	g := Build(records)

	for _, p := range []string{"a", "b", "c"} {
		assert.True(t, g.HasEdge(EdgeReferences, "x", p+"::run"))
		assert.True(t, g.HasEdge(EdgeImports, "x", p))
	}
}

func TestBuild_UnresolvedReference(t *testing.T) {
	// A reference with no candidates adds no edges.
	g := Build([]FileSymbols{{
		Path:       "a",
		References: []Reference{ref("a", "missing", 1)},
	}})
	assert.Equal(t, 0, g.EdgeCount(EdgeReferences))
	assert.Equal(t, 0, g.EdgeCount(EdgeImports))
}

func TestBuild_EmptyFile(t *testing.T) {
	// An empty source file still gets a file node.
	g := Build([]FileSymbols{{Path: "empty"}})
	require.NotNil(t, g.File("empty"))
	assert.Equal(t, 0, g.File("empty").SymbolCount)
	assert.Equal(t, 0, g.SymbolCount())
}

func TestBuild_DefinesInvariant(t *testing.T) {
	// Every symbol has exactly one DEFINES edge, from its owning file.
	g := Build([]FileSymbols{
		{
			Path: "a",
			Definitions: []Definition{
				def("a", "f", KindFunction, 1, 2),
				def("a", "g", KindFunction, 4, 5),
			},
		},
		{
			Path:        "b",
			Definitions: []Definition{def("b", "h", KindFunction, 1, 2)},
			References:  []Reference{ref("b", "f", 2)},
		},
	})

	for _, key := range g.SymbolKeys() {
		sources := g.Incoming(EdgeDefines, key)
		require.Len(t, sources, 1, "symbol %s", key)
		assert.Equal(t, g.Symbol(key).File, sources[0])
	}
}

func TestBuild_RepeatReferencesDedup(t *testing.T) {
	// Repeat references to the same symbol collapse into one edge.
	g := Build([]FileSymbols{
		{Path: "a", Definitions: []Definition{def("a", "f", KindFunction, 1, 2)}},
		{Path: "b", References: []Reference{
			ref("b", "f", 1), ref("b", "f", 2), ref("b", "f", 3),
		}},
	})
	assert.Equal(t, 1, g.EdgeCount(EdgeReferences))
	assert.Equal(t, 1, g.EdgeCount(EdgeImports))
}

func TestBuild_Idempotent(t *testing.T) {
	// Reinserting the same file's symbols is a no-op.
	records := []FileSymbols{
		{Path: "a", Definitions: []Definition{def("a", "f", KindFunction, 1, 2)}},
		{Path: "b", References: []Reference{ref("b", "f", 1)}},
	}
	once := Build(records)
	twice := Build(append(append([]FileSymbols{}, records...), records...))

	assertGraphsEqual(t, once, twice)
}

func TestUpdate_RemoveFile(t *testing.T) {
	// Removing a file leaves nothing pointing at it.
	g := Build([]FileSymbols{
		{Path: "a", Definitions: []Definition{def("a", "f", KindFunction, 1, 2)}},
		{Path: "b", References: []Reference{ref("b", "f", 1)}},
	})
	require.True(t, g.HasEdge(EdgeImports, "b", "a"))

	g.Update([]string{"a"}, nil)

	assert.Nil(t, g.File("a"))
	assert.Nil(t, g.Symbol("a::f"))
	assert.Empty(t, g.Outgoing(EdgeReferences, "b"))
	assert.Empty(t, g.Outgoing(EdgeImports, "b"))
	require.NotNil(t, g.File("b"))
}

func TestUpdate_EquivalentToColdBuild(t *testing.T) {
	// An incremental update equals a cold build over the
	// adjusted input set, including re-wiring surviving files whose
	// references now resolve differently.
	initial := []FileSymbols{
		{Path: "a", Definitions: []Definition{def("a", "f", KindFunction, 1, 2)}},
		{Path: "b", References: []Reference{ref("b", "f", 1), ref("b", "g", 2)}},
	}
	g := Build(initial)

	// a changes: f is renamed to g.
	newA := FileSymbols{Path: "a", Definitions: []Definition{def("a", "g", KindFunction, 1, 2)}}
	g.Update(nil, []FileSymbols{newA})

	cold := Build([]FileSymbols{newA, initial[1]})
	assertGraphsEqual(t, g, cold)

	assert.False(t, g.HasEdge(EdgeReferences, "b", "a::f"))
	assert.True(t, g.HasEdge(EdgeReferences, "b", "a::g"))
}

func TestUpdate_NewFileRewiresSurvivors(t *testing.T) {
	// A surviving file's dangling reference resolves once the defining
	// file appears.
	g := Build([]FileSymbols{
		{Path: "b", References: []Reference{ref("b", "f", 1)}},
	})
	require.Equal(t, 0, g.EdgeCount(EdgeReferences))

	newA := FileSymbols{Path: "a", Definitions: []Definition{def("a", "f", KindFunction, 1, 2)}}
	g.Update(nil, []FileSymbols{newA})

	assert.True(t, g.HasEdge(EdgeReferences, "b", "a::f"))
	assert.True(t, g.HasEdge(EdgeImports, "b", "a"))
}

func TestBuild_DuplicateNameFirstWins(t *testing.T) {
	g := Build([]FileSymbols{{
		Path: "a",
		Definitions: []Definition{
			def("a", "f", KindFunction, 1, 2),
			def("a", "f", KindFunction, 10, 12),
		},
	}})
	require.NotNil(t, g.Symbol("a::f"))
	assert.Equal(t, 1, g.Symbol("a::f").LineStart)
	assert.Equal(t, 2, g.File("a").SymbolCount)
}

// assertGraphsEqual compares two graphs through their serialized form.
func assertGraphsEqual(t *testing.T, a, b *Graph) {
	t.Helper()
	aDoc, err := Marshal(a, map[string]int64{})
	require.NoError(t, err)
	bDoc, err := Marshal(b, map[string]int64{})
	require.NoError(t, err)
	assert.JSONEq(t, string(aDoc), string(bDoc))
}
