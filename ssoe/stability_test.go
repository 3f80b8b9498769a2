package ssoe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSpectralRadius(t *testing.T) {
	tests := []struct {
		name        string
		transition  []float64
		persistence []float64
		measurement []float64
		want        float64
	}{
		{"level", []float64{1}, []float64{0.3}, []float64{1}, 0.7},
		{"explosive level", []float64{1}, []float64{2.5}, []float64{1}, 1.5},
		{"local trend", []float64{1, 1, 0, 1}, []float64{0.5, 0.1}, []float64{1, 1}, math.Sqrt(0.5)},
		{"random walk", []float64{1, 0, 0, 1}, []float64{0, 0}, []float64{1, 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.persistence)
			r, err := SpectralRadius(mat.NewDense(n, n, tt.transition), tt.persistence, tt.measurement)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, r, 1e-10)
		})
	}
}

func TestSpectralRadiusNonFinite(t *testing.T) {
	r, err := SpectralRadius(mat.NewDense(2, 2, []float64{1, 0, 0, 1}), []float64{math.NaN(), 0}, []float64{1, 1})
	require.NoError(t, err)
	assert.True(t, math.IsInf(r, 1))
}
