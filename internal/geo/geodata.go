package geo

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// UnknownContinent labels features without a CONTINENT property.
const UnknownContinent = "Unknown"

// ErrNoFeatures is returned for a collection without usable features.
var ErrNoFeatures = errors.New("GeoJSON has no features")

//go:embed data/sample.geojson
var sampleGeoJSON []byte

// nameKeys are the properties a display name is read from, in priority order.
var nameKeys = []string{"ADMIN", "NAME", "name"}

// ParseFeatureCollection decodes a GeoJSON FeatureCollection into regions.
// Features without a usable name or without geometry are skipped.
func ParseFeatureCollection(data []byte) ([]Region, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, ErrNoFeatures
	}

	regions := make([]Region, 0, len(fc.Features))
	// Regions need geometry for hit testing and drawing, and a blank
	// continent groups with the unnamed ones.
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		name := featureName(f.Properties)
		if name == "" {
			continue
		}
		continent := UnknownContinent
		if s, ok := f.Properties["CONTINENT"].(string); ok && strings.TrimSpace(s) != "" {
			continent = strings.TrimSpace(s)
		}
		regions = append(regions, Region{Name: name, Continent: continent, Geometry: f.Geometry})
	}
	if len(regions) == 0 {
		return nil, ErrNoFeatures
	}
	return regions, nil
}

func featureName(props geojson.Properties) string {
	for _, k := range nameKeys {
		if s, ok := props[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// LoadFile reads regions from a GeoJSON file.
func LoadFile(path string) ([]Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geodata %s: %w", path, err)
	}
	regions, err := ParseFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return regions, nil
}

// SampleRegions returns the small built-in dataset.
func SampleRegions() []Region {
	regions, err := ParseFeatureCollection(sampleGeoJSON)
	if err != nil {
		panic("embedded sample geodata is invalid: " + err.Error())
	}
	return regions
}
