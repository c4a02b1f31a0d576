package geo

import (
	"context"
	"sync"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCandidates() []Candidate {
	return []Candidate{
		{Name: "Eastland", Geometry: square(0, 0, 1, 1)},
		{Name: "Westland", Geometry: square(-10, -10, -9, -9)},
	}
}

func TestNewSampler_RequiresCandidates(t *testing.T) {
	_, err := NewSampler(nil, 1, 0)
	assert.Error(t, err)
}

func TestGenerate_CountAndMembership(t *testing.T) {
	s, err := NewSampler(testCandidates(), 42, 4)
	require.NoError(t, err)

	samples, err := s.Generate(context.Background(), 50, nil)
	require.NoError(t, err)
	require.Len(t, samples, 50)

	for _, sm := range samples {
		switch sm.Country {
		case "Eastland":
			assert.True(t, sm.Lat >= 0 && sm.Lat <= 1, "lat %v outside Eastland", sm.Lat)
			assert.True(t, sm.Lon >= 0 && sm.Lon <= 1, "lon %v outside Eastland", sm.Lon)
		case "Westland":
			assert.True(t, sm.Lat >= -10 && sm.Lat <= -9, "lat %v outside Westland", sm.Lat)
			assert.True(t, sm.Lon >= -10 && sm.Lon <= -9, "lon %v outside Westland", sm.Lon)
		default:
			t.Fatalf("unexpected country %q", sm.Country)
		}
	}
}

func TestGenerate_DeterministicAcrossWorkerCounts(t *testing.T) {
	gen := func(workers int) []Sample {
		s, err := NewSampler(testCandidates(), 7, workers)
		require.NoError(t, err)
		samples, err := s.Generate(context.Background(), 30, nil)
		require.NoError(t, err)
		return samples
	}

	serial := gen(1)
	parallel := gen(8)
	assert.Equal(t, serial, parallel, "worker count changed the generated set")

	again := gen(8)
	assert.Equal(t, parallel, again, "same seed produced different sets")
}

func TestGenerate_InvalidCount(t *testing.T) {
	s, err := NewSampler(testCandidates(), 1, 0)
	require.NoError(t, err)
	_, err = s.Generate(context.Background(), 0, nil)
	assert.Error(t, err)
}

func TestGenerate_ObserverSeesEveryTask(t *testing.T) {
	s, err := NewSampler(testCandidates(), 11, 3)
	require.NoError(t, err)

	var mu sync.Mutex
	calls := 0
	obs := func(sm *Sample, err error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		assert.NoError(t, err)
		assert.NotNil(t, sm)
	}

	_, err = s.Generate(context.Background(), 25, obs)
	require.NoError(t, err)
	assert.Equal(t, 25, calls)
}

func TestGenerate_SkipsFailingGeometry(t *testing.T) {
	// One healthy candidate, one degenerate: failures are logged and
	// skipped, never fatal for the batch.
	cands := []Candidate{
		{Name: "Goodland", Geometry: square(0, 0, 1, 1)},
		{Name: "Badland", Geometry: orb.MultiPolygon{}},
	}
	s, err := NewSampler(cands, 3, 2)
	require.NoError(t, err)

	samples, err := s.Generate(context.Background(), 40, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, samples)
	assert.Less(t, len(samples), 40, "degenerate candidate should drop some points")
	for _, sm := range samples {
		assert.Equal(t, "Goodland", sm.Country)
	}
}

func TestGenerate_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := NewSampler(testCandidates(), 5, 1)
	require.NoError(t, err)
	_, err = s.Generate(ctx, 10, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
