package report

import (
	"github.com/umahmood/haversine"

	"guessrset/internal/geo"
)

// Spread summarizes how far apart the points of a set are.
type Spread struct {
	MeanKm float64
	MaxKm  float64
}

// SpreadOf computes the mean and maximum pairwise great-circle distance over
// the set. Returns ok=false for fewer than two points, where spread is
// meaningless.
func SpreadOf(samples []geo.Sample) (Spread, bool) {
	if len(samples) < 2 {
		return Spread{}, false
	}

	var sum, max float64
	pairs := 0
	for i := 0; i < len(samples); i++ {
		from := haversine.Coord{Lat: samples[i].Lat, Lon: samples[i].Lon}
		for j := i + 1; j < len(samples); j++ {
			to := haversine.Coord{Lat: samples[j].Lat, Lon: samples[j].Lon}
			_, km := haversine.Distance(from, to)
			sum += km
			if km > max {
				max = km
			}
			pairs++
		}
	}
	return Spread{MeanKm: sum / float64(pairs), MaxKm: max}, true
}
