package ssoe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/gosmooth/stats"
)

func scoredTrial(variant Intermittency, cost, aic float64) *trial {
	return &trial{
		variant: variant,
		sol:     Solution{F: cost},
		ic:      &stats.InformationCriteria{AIC: aic, AICc: aic, BIC: aic, BICc: aic},
	}
}

func TestSelectTrial(t *testing.T) {
	tests := []struct {
		name   string
		trials []*trial
		want   int
	}{
		{"lowest wins", []*trial{
			scoredTrial(IntermittentNone, 1, 120),
			scoredTrial(IntermittentFixed, 1, 100),
			scoredTrial(IntermittentInterval, 1, 110),
		}, 1},
		{"ties go to the lowest index", []*trial{
			scoredTrial(IntermittentNone, 1, 100),
			scoredTrial(IntermittentFixed, 1, 90),
			scoredTrial(IntermittentInterval, 1, 90),
		}, 1},
		{"zero costs exclude none", []*trial{
			scoredTrial(IntermittentNone, 0, math.Inf(-1)),
			scoredTrial(IntermittentFixed, 0, math.Inf(-1)),
			scoredTrial(IntermittentInterval, 0, math.Inf(-1)),
		}, 1},
		{"NaN never beats a number", []*trial{
			scoredTrial(IntermittentNone, 1, math.NaN()),
			scoredTrial(IntermittentFixed, 1, 50),
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectTrial(tt.trials, stats.AICc))
		})
	}
}

func TestSeriesWithoutZerosSelectsNone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Intermittent = IntermittentAuto

	res, err := Fit(series(noisyLevel(40, 50, 2, 21)), cfg)
	require.NoError(t, err)
	assert.Equal(t, IntermittentNone, res.Intermittency)
	assert.Equal(t, 0, res.Params.Occurrence)
}

func TestIntermittentSelection(t *testing.T) {
	values := intermittent(60, 8)

	cfg := DefaultConfig()
	cfg.Type = Multiplicative
	cfg.Intermittent = IntermittentAuto
	cfg.Intervals = IntervalParametric
	cfg.MaxEval = 1000

	res, err := Fit(series(values), cfg)
	require.NoError(t, err)
	assert.NotEqual(t, IntermittentNone, res.Intermittency, "log of zero demand rules out the plain model")
	assert.Equal(t, res.Occurrence.NParam, res.Params.Occurrence)
	require.Len(t, res.Forecast, cfg.Horizon)
	for j := range res.Forecast {
		assert.GreaterOrEqual(t, res.Forecast[j], 0.0)
		assert.Equal(t, 0.0, res.Lower[j], "lower bound sits on the point mass at zero")
		assert.Greater(t, res.Upper[j], res.Forecast[j])
	}

	cfg.Parallel = true
	par, err := Fit(series(values), cfg)
	require.NoError(t, err)
	assert.Equal(t, res.Intermittency, par.Intermittency)
	assert.Equal(t, res.Forecast, par.Forecast)
	assert.Equal(t, res.Vector, par.Vector)
}

func TestExplicitIntermittency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Intermittent = IntermittentProbability

	res, err := Fit(series(intermittent(60, 9)), cfg)
	require.NoError(t, err)
	assert.Equal(t, IntermittentProbability, res.Intermittency)
	assert.Equal(t, 2, res.Params.Occurrence)
	assert.Equal(t, 6, res.Params.Total)
}
