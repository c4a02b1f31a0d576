// Package geo samples uniformly distributed random points inside country
// boundary geometries.
package geo

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// maxRejectionAttempts bounds the rejection loop so that a degenerate
// geometry (zero-area bound, collapsed rings) surfaces as an error instead
// of spinning forever. For real country polygons the land-to-bbox ratio is
// far above 1e-5, so the budget is never reached in practice.
const maxRejectionAttempts = 1_000_000

// RandomPointInGeometry returns a point uniformly distributed over the land
// area of g. Multipolygons first select a member polygon with probability
// proportional to its planar area, then sample within it; polygons are
// sampled by rejection inside their bounding box. Holes are excluded.
func RandomPointInGeometry(rng *rand.Rand, g orb.Geometry) (orb.Point, error) {
	switch geom := g.(type) {
	case orb.MultiPolygon:
		poly, err := weightedPolygon(rng, geom)
		if err != nil {
			return orb.Point{}, err
		}
		return RandomPointInGeometry(rng, poly)
	case orb.Polygon:
		return rejectionSample(rng, geom)
	default:
		return orb.Point{}, fmt.Errorf("unsupported geometry type %T", g)
	}
}

// weightedPolygon picks one member of mp with probability proportional to
// its area.
func weightedPolygon(rng *rand.Rand, mp orb.MultiPolygon) (orb.Polygon, error) {
	if len(mp) == 0 {
		return nil, fmt.Errorf("empty multipolygon")
	}

	weights := make([]float64, len(mp))
	total := 0.0
	for i, poly := range mp {
		a := math.Abs(planar.Area(poly))
		weights[i] = a
		total += a
	}
	if total <= 0 {
		return nil, fmt.Errorf("multipolygon has zero total area")
	}

	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return mp[i], nil
		}
	}
	// Float accumulation can leave r at a hair above zero; the last
	// positive-weight member is the correct owner of the remainder.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return mp[i], nil
		}
	}
	return mp[len(mp)-1], nil
}

func rejectionSample(rng *rand.Rand, poly orb.Polygon) (orb.Point, error) {
	bound := poly.Bound()
	if bound.IsEmpty() || bound.Left() == bound.Right() || bound.Bottom() == bound.Top() {
		return orb.Point{}, fmt.Errorf("polygon bound is degenerate: %v", bound)
	}

	width := bound.Right() - bound.Left()
	height := bound.Top() - bound.Bottom()
	for attempt := 0; attempt < maxRejectionAttempts; attempt++ {
		pt := orb.Point{
			bound.Left() + rng.Float64()*width,
			bound.Bottom() + rng.Float64()*height,
		}
		if planar.PolygonContains(poly, pt) {
			return pt, nil
		}
	}
	return orb.Point{}, fmt.Errorf("no point found after %d attempts", maxRejectionAttempts)
}

// Round4 truncates a coordinate to 4 decimal places, roughly 11 m of
// precision at the equator.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
