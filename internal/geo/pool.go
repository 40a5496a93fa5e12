package geo

import (
	"math/rand/v2"
	"sort"
	"strings"
)

// AllContinents is the filter value that disables continent filtering.
const AllContinents = "All"

// Continents returns the filter choices: "All" followed by the distinct
// continents in alphabetical order.
func Continents(regions []Region) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range regions {
		if !seen[r.Continent] {
			seen[r.Continent] = true
			names = append(names, r.Continent)
		}
	}
	sort.Strings(names)
	return append([]string{AllContinents}, names...)
}

// BuildTargetPool lists the names a game can ask for, in dataset order. In
// countries mode the pool is filtered by continent (case-insensitive, "All"
// or "" disables the filter). In continents mode the pool is the distinct
// continents and the filter is ignored.
func BuildTargetPool(regions []Region, mode Mode, continentFilter string) []string {
	seen := make(map[string]bool)
	var pool []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			pool = append(pool, name)
		}
	}

	if mode == ModeContinents {
		for _, r := range regions {
			add(r.Continent)
		}
		return pool
	}

	for _, r := range regions {
		if filterMatches(continentFilter, r.Continent) {
			add(r.Name)
		}
	}
	return pool
}

func filterMatches(filter, continent string) bool {
	if filter == "" || strings.EqualFold(filter, AllContinents) {
		return true
	}
	return strings.EqualFold(filter, continent)
}

// PickNext draws uniformly from the pool entries not yet revealed. ok is
// false iff every entry of the pool is revealed.
func PickNext(rng *rand.Rand, pool []string, revealed map[string]bool) (string, bool) {
	remaining := make([]string, 0, len(pool))
	for _, name := range pool {
		if !revealed[name] {
			remaining = append(remaining, name)
		}
	}
	if len(remaining) == 0 {
		return "", false
	}
	if rng == nil {
		return remaining[rand.IntN(len(remaining))], true
	}
	return remaining[rng.IntN(len(remaining))], true
}
