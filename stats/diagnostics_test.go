package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestACF(t *testing.T) {
	n := 100
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i % 10)
	}

	acf := ACF(values, 20)
	require.Len(t, acf, 21)
	assert.InDelta(t, 1.0, acf[0], 1e-12)
	assert.Greater(t, acf[10], 0.5, "period-10 pattern must show at lag 10")

	assert.Nil(t, ACF([]float64{3, 3, 3}, 2), "constant input has no ACF")
}

func TestACFSkipsMissing(t *testing.T) {
	with := ACF([]float64{1, 2, math.NaN(), 3, 4, 5}, 2)
	without := ACF([]float64{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, without, with)
}

func TestLjungBox(t *testing.T) {
	n := 100
	whiteNoise := make([]float64, n)
	for i := range whiteNoise {
		whiteNoise[i] = float64(i%7-3) / 3
	}
	autocorrelated := make([]float64, n)
	for i := 1; i < n; i++ {
		autocorrelated[i] = 0.9*autocorrelated[i-1] + float64(i%7-3)/10
	}

	wn := LjungBox(whiteNoise, 10, 0)
	ac := LjungBox(autocorrelated, 10, 0)
	require.NotNil(t, wn)
	require.NotNil(t, ac)

	assert.Equal(t, 10, ac.DOF)
	assert.Greater(t, ac.Statistic, 0.0)
	assert.Less(t, ac.PValue, 0.05)
	assert.GreaterOrEqual(t, wn.PValue, 0.0)
	assert.LessOrEqual(t, wn.PValue, 1.0)

	assert.Nil(t, LjungBox([]float64{1, 2, 3}, 2, 0))
}
