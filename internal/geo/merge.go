package geo

import (
	"fmt"
	"math"

	polyclip "github.com/ctessum/polyclip-go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"
)

// MergeError reports a continent whose member shapes could not be unioned.
type MergeError struct {
	Continent string
	Err       error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge continent %q: %v", e.Continent, e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}

// MergeContinents builds one region per continent, in order of first
// appearance. Continents with a single member pass through unchanged. When
// a union fails the continent falls back to a MultiPolygon holding every
// member polygon and a warning is logged.
func MergeContinents(regions []Region, logger *zap.Logger) []Region {
	if logger == nil {
		logger = zap.NewNop()
	}

	var order []string
	groups := make(map[string][]Region)
	for _, r := range regions {
		if _, ok := groups[r.Continent]; !ok {
			order = append(order, r.Continent)
		}
		groups[r.Continent] = append(groups[r.Continent], r)
	}

	out := make([]Region, 0, len(order))
	for _, continent := range order {
		members := groups[continent]
		if len(members) == 1 {
			out = append(out, Region{Name: continent, Continent: continent, Geometry: members[0].Geometry})
			continue
		}

		geom, err := unionAll(continent, members)
		if err != nil {
			logger.Warn("continent merge failed, concatenating rings",
				zap.String("continent", continent),
				zap.Int("members", len(members)),
				zap.Error(err),
			)
			geom = concatenate(members)
		}
		out = append(out, Region{Name: continent, Continent: continent, Geometry: geom})
	}
	return out
}

// unionAll folds every member polygon into one shape. polyclip panics on
// some degenerate input; that is reported as a *MergeError.
func unionAll(continent string, members []Region) (geom orb.Geometry, err error) {
	defer func() {
		if r := recover(); r != nil {
			geom, err = nil, &MergeError{Continent: continent, Err: fmt.Errorf("union panicked: %v", r)}
		}
	}()

	var acc polyclip.Polygon
	for _, m := range members {
		polys, err := polygonsOf(m.Geometry)
		if err != nil {
			return nil, &MergeError{Continent: continent, Err: fmt.Errorf("%s: %w", m.Name, err)}
		}
		for _, p := range polys {
			clip := toClip(p)
			if len(clip) == 0 {
				continue
			}
			if acc == nil {
				acc = clip
				continue
			}
			acc = acc.Construct(polyclip.UNION, clip)
		}
	}
	if len(acc) == 0 {
		return nil, &MergeError{Continent: continent, Err: fmt.Errorf("union produced no contours")}
	}
	return fromClip(acc), nil
}

func polygonsOf(g orb.Geometry) ([]orb.Polygon, error) {
	switch g := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}, nil
	case orb.MultiPolygon:
		return []orb.Polygon(g), nil
	case nil:
		return nil, fmt.Errorf("missing geometry")
	default:
		return nil, fmt.Errorf("unsupported geometry %s", g.GeoJSONType())
	}
}

func toClip(p orb.Polygon) polyclip.Polygon {
	out := make(polyclip.Polygon, 0, len(p))
	for _, ring := range p {
		n := len(ring)
		if n > 1 && ring[0] == ring[n-1] {
			n--
		}
		if n < 3 {
			continue
		}
		c := make(polyclip.Contour, n)
		for i := 0; i < n; i++ {
			c[i] = polyclip.Point{X: ring[i][0], Y: ring[i][1]}
		}
		out = append(out, c)
	}
	return out
}

// fromClip rebuilds polygons from union contours. A contour nested inside
// an odd number of others is a hole of the smallest even-depth contour
// around it.
func fromClip(p polyclip.Polygon) orb.Geometry {
	rings := make([]orb.Ring, len(p))
	for i, c := range p {
		r := make(orb.Ring, 0, len(c)+1)
		for _, pt := range c {
			r = append(r, orb.Point{pt.X, pt.Y})
		}
		rings[i] = append(r, r[0])
	}

	depth := make([]int, len(rings))
	for i := range rings {
		for j := range rings {
			if i != j && planar.RingContains(rings[j], rings[i][0]) {
				depth[i]++
			}
		}
	}

	var mp orb.MultiPolygon
	owner := make(map[int]int)
	for i := range rings {
		if depth[i]%2 == 0 {
			owner[i] = len(mp)
			mp = append(mp, orb.Polygon{rings[i]})
		}
	}
	for i := range rings {
		if depth[i]%2 == 0 {
			continue
		}
		best, bestArea := -1, math.Inf(1)
		for j := range rings {
			if depth[j]%2 != 0 || !planar.RingContains(rings[j], rings[i][0]) {
				continue
			}
			if a := math.Abs(planar.Area(rings[j])); a < bestArea {
				best, bestArea = j, a
			}
		}
		if best >= 0 {
			idx := owner[best]
			mp[idx] = append(mp[idx], rings[i])
		}
	}

	if len(mp) == 1 {
		return mp[0]
	}
	return mp
}

// concatenate collects every member polygon into one MultiPolygon without
// any geometric processing.
func concatenate(members []Region) orb.MultiPolygon {
	var mp orb.MultiPolygon
	for _, m := range members {
		switch g := m.Geometry.(type) {
		case orb.Polygon:
			if len(g) > 0 {
				mp = append(mp, g)
			}
		case orb.MultiPolygon:
			for _, p := range g {
				if len(p) > 0 {
					mp = append(mp, p)
				}
			}
		}
	}
	return mp
}
