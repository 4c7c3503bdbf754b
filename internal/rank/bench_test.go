package rank

import (
	"fmt"
	"testing"

	"github.com/jward/codeindex/internal/graph"
)

// synthGraph builds n files where file i references a symbol in file i/2,
// giving the rank a realistic skew toward low-numbered files.
func synthGraph(n int) *graph.Graph {
	var records []graph.FileSymbols
	for i := 0; i < n; i++ {
		path := fmt.Sprintf("pkg/file%03d.go", i)
		name := fmt.Sprintf("fn%03d", i)
		fs := graph.FileSymbols{
			Path: path,
			Definitions: []graph.Definition{
				{Name: name, Kind: graph.KindFunction, File: path, LineStart: 1, LineEnd: 10},
			},
		}
		if i > 0 {
			fs.References = append(fs.References, graph.Reference{
				Name: fmt.Sprintf("fn%03d", i/2), File: path, Line: 5,
			})
		}
		records = append(records, fs)
	}
	return graph.Build(records)
}

func BenchmarkRank(b *testing.B) {
	g := synthGraph(200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Rank(g, nil, DefaultTiers)
	}
}

func BenchmarkRank_Focused(b *testing.B) {
	g := synthGraph(200)
	focus := []string{"pkg/file050.go"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Rank(g, focus, DefaultTiers)
	}
}
