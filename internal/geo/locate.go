package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Locate returns the region containing the point (lon, lat). When shapes
// overlap the smallest containing region wins.
func Locate(regions []Region, lon, lat float64) (Region, bool) {
	pt := orb.Point{lon, lat}

	var (
		best     Region
		bestArea float64
		found    bool
	)
	for _, r := range regions {
		if r.Geometry == nil || !r.Geometry.Bound().Contains(pt) {
			continue
		}
		if !contains(r.Geometry, pt) {
			continue
		}
		area := math.Abs(planar.Area(r.Geometry))
		if !found || area < bestArea {
			best, bestArea, found = r, area, true
		}
	}
	return best, found
}

func contains(g orb.Geometry, pt orb.Point) bool {
	switch g := g.(type) {
	case orb.Polygon:
		return len(g) > 0 && planar.PolygonContains(g, pt)
	case orb.MultiPolygon:
		for _, p := range g {
			if len(p) > 0 && planar.PolygonContains(p, pt) {
				return true
			}
		}
	case orb.Ring:
		return planar.RingContains(g, pt)
	case orb.Collection:
		for _, sub := range g {
			if contains(sub, pt) {
				return true
			}
		}
	}
	return false
}
