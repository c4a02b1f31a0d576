package dataset

import (
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
)

// nameProperties are tried in order when naming a GeoJSON feature. Natural
// Earth exports carry NAME; ADMIN and NAME_EN cover older and localized
// variants.
var nameProperties = []string{"NAME", "ADMIN", "NAME_EN"}

func loadGeoJSON(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse geojson dataset %s: %w", path, err)
	}

	features := make([]Feature, 0, len(fc.Features))
	for i, f := range fc.Features {
		name := featureName(f)
		if name == "" {
			return nil, fmt.Errorf("feature %d in %s has no NAME property", i, path)
		}
		if err := validGeometry(f.Geometry); err != nil {
			return nil, fmt.Errorf("feature %q in %s: %w", name, path, err)
		}
		features = append(features, Feature{Name: name, Geometry: f.Geometry})
	}
	return newWorld(features)
}

func featureName(f *geojson.Feature) string {
	for _, key := range nameProperties {
		if name, ok := f.Properties[key].(string); ok && name != "" {
			return name
		}
	}
	return ""
}
