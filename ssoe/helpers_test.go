package ssoe

import (
	"math"
	"math/rand"

	"github.com/sartorproj/gosmooth/timeseries"
)

// noisyLevel returns n observations around level with Gaussian noise.
func noisyLevel(n int, level, sd float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	for i := range values {
		values[i] = level + sd*rng.NormFloat64()
	}
	return values
}

// seasonal returns n observations of a level plus a repeating pattern.
func seasonal(n int, level float64, pattern []float64, sd float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	for i := range values {
		values[i] = level + pattern[i%len(pattern)] + sd*rng.NormFloat64()
	}
	return values
}

// intermittent returns demand with zeros on roughly half of the periods.
func intermittent(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	for i := range values {
		if rng.Float64() < 0.5 {
			values[i] = math.Round(5 + 2*rng.Float64())
		}
	}
	return values
}

func testContext(cfg *Config, values []float64) *EstimationContext {
	spec, err := cfg.Spec().Normalize()
	if err != nil {
		panic(err)
	}
	return newEstimationContext(spec, cfg, newSample(values, cfg.Type, 1, false), nil)
}

func series(values []float64) *timeseries.Series {
	return timeseries.New(values)
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
