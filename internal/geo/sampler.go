package geo

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"
)

// Candidate is a named boundary a Sampler may draw points from.
type Candidate struct {
	Name     string
	Geometry orb.Geometry
}

// Sample is one generated coordinate. Lat and Lon are rounded to 4 decimal
// places.
type Sample struct {
	Country string
	Lat     float64
	Lon     float64
}

// Observer is notified once per finished sampling task, successful or not.
// It is called from worker goroutines, one call at a time per task but with
// no ordering guarantee.
type Observer func(s *Sample, err error)

// Sampler generates random points across a fixed set of candidate
// boundaries. The zero value is not usable; call NewSampler.
type Sampler struct {
	candidates []Candidate
	seed       int64
	workers    int
}

// NewSampler returns a sampler over candidates. workers <= 0 means
// GOMAXPROCS. The seed fully determines the output set: country assignment
// happens up front on a single rng and each point gets its own rng derived
// from seed and point index, so worker count never changes the result.
func NewSampler(candidates []Candidate, seed int64, workers int) (*Sampler, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidate boundaries")
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Sampler{candidates: candidates, seed: seed, workers: workers}, nil
}

// Generate produces up to n samples, drawing a candidate uniformly at random
// (with replacement) for each. Tasks are independent and stateless; failures
// are reported to obs and skipped, never fatal for the batch. The returned
// slice preserves task order.
func (s *Sampler) Generate(ctx context.Context, n int, obs Observer) ([]Sample, error) {
	if n <= 0 {
		return nil, fmt.Errorf("point count must be positive (got %d)", n)
	}

	base := rand.New(rand.NewSource(s.seed))
	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = base.Intn(len(s.candidates))
	}

	results := make([]*Sample, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c := s.candidates[assignments[i]]
			rng := rand.New(rand.NewSource(taskSeed(s.seed, i)))
			pt, err := RandomPointInGeometry(rng, c.Geometry)
			if err != nil {
				if obs != nil {
					obs(nil, fmt.Errorf("generating point for %s: %w", c.Name, err))
				}
				return nil
			}
			sample := &Sample{
				Country: c.Name,
				Lat:     Round4(pt.Lat()),
				Lon:     Round4(pt.Lon()),
			}
			results[i] = sample
			if obs != nil {
				obs(sample, nil)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Sample, 0, n)
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// taskSeed derives a per-point rng seed. The multiplier is the 64-bit
// splitmix64 increment, which keeps neighboring indexes from producing
// correlated low bits.
func taskSeed(seed int64, index int) int64 {
	return seed + int64(index+1)*-7046029254386353131
}
