package dataset

import (
	"fmt"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

// shapefileNameFields mirrors nameProperties for the DBF attribute table.
var shapefileNameFields = []string{"NAME", "ADMIN", "NAME_EN"}

func loadShapefile(path string) (*World, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile: %w", err)
	}
	defer r.Close()

	// Preference order over the candidates, not DBF field order: NAME wins
	// even when ADMIN precedes it in the attribute table.
	nameField := -1
	for _, want := range shapefileNameFields {
		for i, field := range r.Fields() {
			if strings.EqualFold(field.String(), want) {
				nameField = i
				break
			}
		}
		if nameField >= 0 {
			break
		}
	}
	if nameField < 0 {
		return nil, fmt.Errorf("shapefile %s has no NAME attribute", path)
	}

	var features []Feature
	for r.Next() {
		row, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			return nil, fmt.Errorf("shapefile %s row %d: unsupported shape type %T", path, row, shape)
		}
		name := strings.TrimSpace(r.ReadAttribute(row, nameField))
		if name == "" {
			return nil, fmt.Errorf("shapefile %s row %d has an empty name", path, row)
		}
		geom, err := polygonGeometry(poly)
		if err != nil {
			return nil, fmt.Errorf("shapefile %s feature %q: %w", path, name, err)
		}
		features = append(features, Feature{Name: name, Geometry: geom})
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("read shapefile %s: %w", path, err)
	}
	return newWorld(features)
}

// polygonGeometry regroups shapefile rings into an orb geometry. Shapefile
// polygons store all rings flat: clockwise rings are outers, counter-
// clockwise rings are holes belonging to the preceding outer. A single-outer
// shape becomes an orb.Polygon, anything else an orb.MultiPolygon.
func polygonGeometry(poly *shp.Polygon) (orb.Geometry, error) {
	if len(poly.Points) == 0 || len(poly.Parts) == 0 {
		return nil, fmt.Errorf("polygon has no rings")
	}

	var mp orb.MultiPolygon
	for part := 0; part < len(poly.Parts); part++ {
		start := int(poly.Parts[part])
		end := len(poly.Points)
		if part+1 < len(poly.Parts) {
			end = int(poly.Parts[part+1])
		}
		if start < 0 || end > len(poly.Points) || end-start < 3 {
			return nil, fmt.Errorf("ring %d is out of bounds or too short", part)
		}

		ring := make(orb.Ring, 0, end-start)
		for _, p := range poly.Points[start:end] {
			ring = append(ring, orb.Point{p.X, p.Y})
		}

		if clockwise(ring) {
			mp = append(mp, orb.Polygon{ring})
		} else {
			if len(mp) == 0 {
				// Some exporters emit a lone counter-clockwise outer;
				// treat it as an outer rather than rejecting the file.
				mp = append(mp, orb.Polygon{ring})
				continue
			}
			mp[len(mp)-1] = append(mp[len(mp)-1], ring)
		}
	}

	if len(mp) == 1 {
		return mp[0], nil
	}
	return mp, nil
}

// clockwise reports the ring's winding via the shoelace sum. Shapefile
// outers wind clockwise, which gives a negative signed area in a y-up plane.
func clockwise(ring orb.Ring) bool {
	sum := 0.0
	for i := 0; i < len(ring); i++ {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		sum += (b[0] - a[0]) * (b[1] + a[1])
	}
	return sum > 0
}
