package rank

import "strings"

// Tier assigns a score multiplier to a path-prefix pattern. A pattern
// matches when it prefixes the whole path or any '/'-separated suffix of
// it, so "tests/" dampens both "tests/a.go" and "pkg/tests/a.go".
type Tier struct {
	Prefix string
	Weight float64
}

// DefaultTiers dampens the areas that accumulate centrality without
// mattering: test trees, scripts, deploy manifests, and scratch space.
var DefaultTiers = []Tier{
	{Prefix: "tests/", Weight: 0.2},
	{Prefix: "test/", Weight: 0.2},
	{Prefix: "__tests__/", Weight: 0.2},
	{Prefix: "spec/", Weight: 0.2},
	{Prefix: "scripts/", Weight: 0.3},
	{Prefix: "deploy/", Weight: 0.3},
	{Prefix: "qa/", Weight: 0.3},
	{Prefix: "sandbox/", Weight: 0.3},
	{Prefix: "tmp/", Weight: 0.1},
	{Prefix: "temp/", Weight: 0.1},
}

// PathWeight returns the weight of the first matching tier, or 1.0.
func PathWeight(tiers []Tier, path string) float64 {
	for _, t := range tiers {
		if strings.HasPrefix(path, t.Prefix) || strings.Contains(path, "/"+t.Prefix) {
			return t.Weight
		}
	}
	return 1.0
}

// MergeTiers prepends project-configured tiers so they win over defaults.
// Map iteration order is not stable, so configured prefixes are applied
// longest-first to keep matching deterministic.
func MergeTiers(configured map[string]float64, defaults []Tier) []Tier {
	if len(configured) == 0 {
		return defaults
	}
	prefixes := make([]string, 0, len(configured))
	for p := range configured {
		prefixes = append(prefixes, p)
	}
	// Longest prefix first; ties alphabetical.
	for i := 1; i < len(prefixes); i++ {
		for j := i; j > 0; j-- {
			a, b := prefixes[j-1], prefixes[j]
			if len(b) > len(a) || (len(b) == len(a) && b < a) {
				prefixes[j-1], prefixes[j] = b, a
			} else {
				break
			}
		}
	}
	out := make([]Tier, 0, len(prefixes)+len(defaults))
	for _, p := range prefixes {
		out = append(out, Tier{Prefix: p, Weight: configured[p]})
	}
	return append(out, defaults...)
}
