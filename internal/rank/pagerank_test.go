package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/codeindex/internal/graph"
)

func fixtureGraph(t *testing.T) *graph.Graph {
	t.Helper()
	// Files a, b, c, d each define one function; b, c, d all call a's.
	records := []graph.FileSymbols{
		{
			Path: "a.go",
			Definitions: []graph.Definition{
				{Name: "core", Kind: graph.KindFunction, File: "a.go", LineStart: 1, LineEnd: 3},
			},
		},
	}
	for _, p := range []string{"b.go", "c.go", "d.go"} {
		records = append(records, graph.FileSymbols{
			Path: p,
			Definitions: []graph.Definition{
				{Name: p[:1] + "Fn", Kind: graph.KindFunction, File: p, LineStart: 1, LineEnd: 3},
			},
			References: []graph.Reference{{Name: "core", File: p, Line: 2}},
		})
	}
	return graph.Build(records)
}

func scoreOf(scored []ScoredSymbol, key string) (float64, bool) {
	for _, s := range scored {
		if s.Key == key {
			return s.Score, true
		}
	}
	return 0, false
}

func TestRank_EmptyGraph(t *testing.T) {
	scored := Rank(graph.New(), nil, DefaultTiers)
	assert.Empty(t, scored)
}

func TestRank_IsolatedFile(t *testing.T) {
	g := graph.Build([]graph.FileSymbols{{
		Path: "only.go",
		Definitions: []graph.Definition{
			{Name: "solo", Kind: graph.KindFunction, File: "only.go", LineStart: 1, LineEnd: 2},
		},
	}})
	scored := Rank(g, nil, DefaultTiers)
	require.Len(t, scored, 1)
	assert.Equal(t, "only.go::solo", scored[0].Key)
	assert.Greater(t, scored[0].Score, 0.0)
}

func TestRank_ImportedFileLeads(t *testing.T) {
	scored := Rank(fixtureGraph(t), nil, DefaultTiers)
	require.NotEmpty(t, scored)
	assert.Equal(t, "a.go::core", scored[0].Key, "the file everyone imports ranks first")
}

func TestRank_FocusRaisesFocusFileSymbols(t *testing.T) {
	g := fixtureGraph(t)
	unfocused := Rank(g, nil, DefaultTiers)
	focused := Rank(g, []string{"c.go"}, DefaultTiers)

	base, ok := scoreOf(unfocused, "c.go::cFn")
	require.True(t, ok)
	boosted, ok := scoreOf(focused, "c.go::cFn")
	require.True(t, ok)
	assert.Greater(t, boosted, base, "focus-file symbol scores strictly increase")

	bScore, _ := scoreOf(focused, "b.go::bFn")
	dScore, _ := scoreOf(focused, "d.go::dFn")
	assert.Greater(t, boosted, bScore)
	assert.Greater(t, boosted, dScore)
}

func TestRank_FocusDoesNotMutateGraph(t *testing.T) {
	g := fixtureGraph(t)
	before := g.FileCount()
	Rank(g, []string{"c.go"}, DefaultTiers)
	assert.Equal(t, before, g.FileCount())
	assert.Nil(t, g.File("__focus__"))
}

func TestRank_UnknownFocusFileIgnored(t *testing.T) {
	g := fixtureGraph(t)
	scored := Rank(g, []string{"nope.go"}, DefaultTiers)
	unfocused := Rank(g, nil, DefaultTiers)
	assert.Equal(t, unfocused, scored)
}

func TestPathWeight_TierDampening(t *testing.T) {
	// Identical centrality, tests/ path dampened 1 : 0.2.
	g := graph.Build([]graph.FileSymbols{
		{
			Path: "src/foo.ts",
			Definitions: []graph.Definition{
				{Name: "srcThing", Kind: graph.KindFunction, File: "src/foo.ts", LineStart: 1, LineEnd: 2},
			},
		},
		{
			Path: "tests/foo.ts",
			Definitions: []graph.Definition{
				{Name: "testThing", Kind: graph.KindFunction, File: "tests/foo.ts", LineStart: 1, LineEnd: 2},
			},
		},
	})
	scored := Rank(g, nil, DefaultTiers)

	srcScore, ok := scoreOf(scored, "src/foo.ts::srcThing")
	require.True(t, ok)
	testScore, ok := scoreOf(scored, "tests/foo.ts::testThing")
	require.True(t, ok)
	assert.InDelta(t, 0.2, testScore/srcScore, 1e-9)
}

func TestPathWeight_Matching(t *testing.T) {
	tests := []struct {
		path   string
		weight float64
	}{
		{"tests/util.go", 0.2},
		{"pkg/tests/util.go", 0.2},
		{"scripts/gen.py", 0.3},
		{"src/main.go", 1.0},
		{"attests/x.go", 1.0}, // segment prefix, not substring
	}
	for _, tt := range tests {
		assert.Equal(t, tt.weight, PathWeight(DefaultTiers, tt.path), tt.path)
	}
}

func TestMergeTiers_ProjectWins(t *testing.T) {
	merged := MergeTiers(map[string]float64{"tests/": 0.9, "generated/": 0.1}, DefaultTiers)
	assert.Equal(t, 0.9, PathWeight(merged, "tests/a.go"))
	assert.Equal(t, 0.1, PathWeight(merged, "generated/a.go"))
	assert.Equal(t, 0.3, PathWeight(merged, "scripts/a.go"))
}

func TestFileTotals(t *testing.T) {
	g := fixtureGraph(t)
	scored := Rank(g, nil, DefaultTiers)
	totals := FileTotals(g, scored)
	assert.Len(t, totals, 4)
	assert.Greater(t, totals["a.go"], totals["b.go"])
}
