package geo

import (
	"errors"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	polyclip "github.com/ctessum/polyclip-go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func square(x0, y0, x1, y1 float64) orb.Polygon {
	return orb.Polygon{orb.Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}}
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Normalize("Côte d'Ivoire"), Normalize("Cote dIvoire"))
	assert.Equal(t, Normalize("Côte d’Ivoire"), Normalize("cote d'ivoire"))
	assert.Equal(t, "france", Normalize("france "))
	assert.Equal(t, "guineabissau", Normalize("Guinea-Bissau"))
	assert.Equal(t, "congodemrep", Normalize("Congo (Dem. Rep.)"))
	assert.Equal(t, "saotomeandprincipe", Normalize("São Tomé and Príncipe"))
	assert.Equal(t, "", Normalize("  "))
}

func TestEvaluateClick(t *testing.T) {
	assert.Equal(t, Correct, EvaluateClick("France", "france "))
	assert.Equal(t, Incorrect, EvaluateClick("Spain", "France"))
	assert.Equal(t, Incorrect, EvaluateClick("", ""))
	assert.True(t, Match("Côte d'Ivoire", "Cote dIvoire"))
}

func TestParseFeatureCollection(t *testing.T) {
	data := `{"type":"FeatureCollection","features":[
	  {"type":"Feature","properties":{"ADMIN":"France","NAME":"Fr","CONTINENT":" Europe "},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
	  {"type":"Feature","properties":{"ADMIN":7,"NAME":"Peru"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
	  {"type":"Feature","properties":{"name":"Chad","CONTINENT":"Africa"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
	  {"type":"Feature","properties":{"CONTINENT":"Asia"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
	  {"type":"Feature","properties":{"ADMIN":"Nowhere"},"geometry":null},
	  {"type":"Feature","properties":{"ADMIN":"Blank","CONTINENT":"   "},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}
	]}`

	regions, err := ParseFeatureCollection([]byte(data))
	require.NoError(t, err)
	require.Len(t, regions, 4, "features without geometry or name are dropped")

	assert.Equal(t, "France", regions[0].Name)
	assert.Equal(t, "Europe", regions[0].Continent)
	assert.Equal(t, "Peru", regions[1].Name)
	assert.Equal(t, UnknownContinent, regions[1].Continent)
	assert.Equal(t, "Chad", regions[2].Name)
	assert.Equal(t, "Blank", regions[3].Name)
	assert.Equal(t, UnknownContinent, regions[3].Continent, "a blank continent is unknown")
}

func TestParseFeatureCollection_Errors(t *testing.T) {
	_, err := ParseFeatureCollection([]byte(`{"type":"FeatureCollection","features":[]}`))
	assert.True(t, errors.Is(err, ErrNoFeatures))

	_, err = ParseFeatureCollection([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[0,0]}}]}`))
	assert.True(t, errors.Is(err, ErrNoFeatures))

	_, err = ParseFeatureCollection([]byte(`not json`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.geojson")
	require.NoError(t, os.WriteFile(path, sampleGeoJSON, 0o644))

	regions, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, SampleRegions(), regions)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.Error(t, err)
}

func TestSampleRegions(t *testing.T) {
	regions := SampleRegions()
	assert.Len(t, regions, 17)
	assert.Equal(t,
		[]string{"All", "Africa", "Asia", "Europe", "North America", "Oceania", "South America"},
		Continents(regions))
}

func TestBuildTargetPool(t *testing.T) {
	regions := SampleRegions()

	all := BuildTargetPool(regions, ModeCountries, AllContinents)
	assert.Len(t, all, 17)
	assert.Equal(t, "France", all[0])

	europe := BuildTargetPool(regions, ModeCountries, "europe")
	assert.Equal(t, []string{"France", "Germany", "Spain", "Italy"}, europe)

	assert.Len(t, BuildTargetPool(regions, ModeCountries, ""), 17)
	assert.Empty(t, BuildTargetPool(regions, ModeCountries, "Antarctica"))

	continents := BuildTargetPool(regions, ModeContinents, "Europe")
	assert.Equal(t, []string{"Europe", "Africa", "Asia", "South America", "North America", "Oceania"}, continents)
}

func TestPickNext_NeverReturnsRevealed(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e"}
	rng := seeded(42)
	for mask := 0; mask < 1<<len(pool); mask++ {
		revealed := map[string]bool{}
		for i, name := range pool {
			if mask&(1<<i) != 0 {
				revealed[name] = true
			}
		}
		for i := 0; i < 20; i++ {
			got, ok := PickNext(rng, pool, revealed)
			if len(revealed) == len(pool) {
				assert.False(t, ok)
				assert.Empty(t, got)
				continue
			}
			require.True(t, ok)
			assert.False(t, revealed[got], "picked revealed %q", got)
		}
	}

	_, ok := PickNext(rng, nil, nil)
	assert.False(t, ok)
}

func TestPickNext_Uniform(t *testing.T) {
	pool := []string{"France", "Spain", "Italy", "Germany", "Chad"}
	revealed := map[string]bool{"France": true, "Italy": true, "Chad": true}
	rng := seeded(2024)

	const draws = 10000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		got, ok := PickNext(rng, pool, revealed)
		require.True(t, ok)
		counts[got]++
	}
	require.Len(t, counts, 2)

	expected := float64(draws) / 2
	chi2 := 0.0
	for _, n := range counts {
		d := float64(n) - expected
		chi2 += d * d / expected
	}
	// Critical value for 1 degree of freedom at p = 0.001.
	assert.Less(t, chi2, 10.828, "counts %v", counts)
}

func TestLocate(t *testing.T) {
	regions := SampleRegions()

	r, ok := Locate(regions, 2, 47)
	require.True(t, ok)
	assert.Equal(t, "France", r.Name)

	r, ok = Locate(regions, 175, -38)
	require.True(t, ok)
	assert.Equal(t, "New Zealand", r.Name)

	_, ok = Locate(regions, -30, -60)
	assert.False(t, ok)

	// Overlapping shapes resolve to the smallest one.
	nested := []Region{
		{Name: "Big", Geometry: square(0, 0, 10, 10)},
		{Name: "Small", Geometry: square(4, 4, 6, 6)},
	}
	r, ok = Locate(nested, 5, 5)
	require.True(t, ok)
	assert.Equal(t, "Small", r.Name)
}

func TestMergeContinents_Union(t *testing.T) {
	regions := []Region{
		{Name: "A", Continent: "Left", Geometry: square(0, 0, 2, 2)},
		{Name: "B", Continent: "Left", Geometry: square(1, 1, 3, 3)},
		{Name: "C", Continent: "Right", Geometry: square(10, 10, 11, 11)},
	}
	core, logs := observer.New(zapcore.WarnLevel)

	merged := MergeContinents(regions, zap.New(core))
	require.Len(t, merged, 2)
	assert.Zero(t, logs.Len())

	assert.Equal(t, "Left", merged[0].Name)
	assert.InDelta(t, 7.0, math.Abs(planar.Area(merged[0].Geometry)), 1e-9)
	for _, pt := range []orb.Point{{0.5, 0.5}, {2.5, 2.5}, {1.5, 1.5}} {
		_, ok := Locate(merged[:1], pt[0], pt[1])
		assert.True(t, ok, "point %v", pt)
	}

	// Single-member groups pass through unchanged.
	assert.Equal(t, "Right", merged[1].Name)
	assert.Equal(t, regions[2].Geometry, merged[1].Geometry)
}

func TestMergeContinents_SampleKeepsEveryCountry(t *testing.T) {
	regions := SampleRegions()
	merged := MergeContinents(regions, nil)
	require.Len(t, merged, 6)

	for _, r := range regions {
		pt := r.Geometry.Bound().Center()
		if !contains(r.Geometry, pt) {
			continue
		}
		got, ok := Locate(merged, pt[0], pt[1])
		require.True(t, ok, "%s", r.Name)
		assert.Equal(t, r.Continent, got.Name, "%s", r.Name)
	}
}

func TestMergeContinents_FallbackLogsWarning(t *testing.T) {
	regions := []Region{
		{Name: "A", Continent: "Odd", Geometry: square(0, 0, 1, 1)},
		{Name: "B", Continent: "Odd", Geometry: orb.Point{5, 5}},
		{Name: "C", Continent: "Odd", Geometry: orb.MultiPolygon{square(2, 2, 3, 3), square(4, 4, 5, 5)}},
	}
	core, logs := observer.New(zapcore.WarnLevel)

	merged := MergeContinents(regions, zap.New(core))
	require.Len(t, merged, 1)

	entries := logs.FilterMessage("continent merge failed, concatenating rings").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Odd", entries[0].ContextMap()["continent"])

	mp, ok := merged[0].Geometry.(orb.MultiPolygon)
	require.True(t, ok)
	assert.Len(t, mp, 3)
}

func TestMergeError_Unwrap(t *testing.T) {
	inner := errors.New("bad ring")
	var err error = &MergeError{Continent: "Asia", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "Asia")
}

func TestFromClip_RebuildsHoles(t *testing.T) {
	p := polyclip.Polygon{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}},
		{{X: 20, Y: 20}, {X: 21, Y: 20}, {X: 21, Y: 21}, {X: 20, Y: 21}},
	}
	mp, ok := fromClip(p).(orb.MultiPolygon)
	require.True(t, ok)
	require.Len(t, mp, 2)
	assert.Len(t, mp[0], 2, "outer ring plus hole")
	assert.Len(t, mp[1], 1)

	_, inHole := Locate([]Region{{Name: "x", Geometry: mp}}, 5, 5)
	assert.False(t, inHole)
}
