// Package dataset loads country boundary features from a Natural Earth
// admin-0 dataset, in either shapefile or GeoJSON form.
package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
)

// Feature is one country boundary: its display name plus a polygon or
// multipolygon geometry.
type Feature struct {
	Name     string
	Geometry orb.Geometry
}

// World is the loaded boundary dataset, indexed by normalized country name.
type World struct {
	features []Feature
	byName   map[string]int
}

// Load reads a boundary dataset, dispatching on the file extension:
// .shp is read as an ESRI shapefile, .geojson/.json as a GeoJSON feature
// collection.
func Load(path string) (*World, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".shp":
		return loadShapefile(path)
	case ".geojson", ".json":
		return loadGeoJSON(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q (want .shp, .geojson or .json)", ext)
	}
}

func newWorld(features []Feature) (*World, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("dataset contains no boundary features")
	}
	w := &World{features: features, byName: make(map[string]int, len(features))}
	for i, f := range features {
		w.byName[strings.ToLower(f.Name)] = i
	}
	return w, nil
}

// Len returns the number of features in the dataset.
func (w *World) Len() int { return len(w.features) }

// Select returns the features whose names appear in names. Names with no
// matching feature are skipped; selecting zero features is an error because
// the caller has nothing to sample from.
func (w *World) Select(names []string) ([]Feature, error) {
	var out []Feature
	for _, name := range names {
		if i, ok := w.byName[strings.ToLower(name)]; ok {
			out = append(out, w.features[i])
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no matching countries found in the dataset")
	}
	return out, nil
}

// validGeometry rejects anything the sampler cannot handle at load time, so
// sampling never sees a surprise geometry type.
func validGeometry(g orb.Geometry) error {
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return nil
	default:
		return fmt.Errorf("unsupported geometry type %T", g)
	}
}
