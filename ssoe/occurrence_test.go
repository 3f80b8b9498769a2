package ssoe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDriver() *Driver {
	return &Driver{Global: PatternSearch{}, Local: NelderMead{}, Budget: Budget{MaxEval: 2000, XtolRel: 1e-8}}
}

func TestOccurrencePaths(t *testing.T) {
	tests := []struct {
		name    string
		variant Intermittency
		alpha   float64
		initial float64
		values  []float64
		want    []float64
	}{
		{"probability", IntermittentProbability, 0.5, 0.5, []float64{1, 0}, []float64{0.5, 0.75, 0.375}},
		{"probability skips missing", IntermittentProbability, 0.5, 0.5, []float64{math.NaN(), 1}, []float64{0.5, 0.5, 0.75}},
		{"interval", IntermittentInterval, 0.5, 2, []float64{1, 0, 1}, []float64{0.5, 1 / 1.5, 1 / 1.5, 1 / 1.75}},
		{"sba", IntermittentSBA, 0.5, 2, []float64{1}, []float64{0.375, 0.75 / 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := occurrencePath(tt.variant, tt.alpha, tt.initial, tt.values)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-12, "period %d", i)
			}
		})
	}
}

func TestLogisticPathMovesTowardsOutcome(t *testing.T) {
	p := occurrencePath(IntermittentLogistic, 0.3, 0, []float64{5, 5, 5, 0})
	assert.Equal(t, 0.5, p[0])
	assert.Greater(t, p[1], p[0])
	assert.Greater(t, p[3], p[2])
	assert.Less(t, p[4], p[3])
}

func TestFitOccurrenceFixed(t *testing.T) {
	occ, err := fitOccurrence(IntermittentFixed, []float64{0, 1, 0, 3}, testDriver())
	require.NoError(t, err)

	assert.Equal(t, 1, occ.NParam)
	assert.Equal(t, 0.5, occ.Last())
	assert.InDelta(t, 4*math.Log(0.5), occ.LogLik, 1e-12)
}

func TestFitOccurrenceNone(t *testing.T) {
	occ, err := fitOccurrence(IntermittentNone, []float64{0, 1, 2}, testDriver())
	require.NoError(t, err)
	assert.Equal(t, 0, occ.NParam)
	assert.Equal(t, []float64{1, 1, 1, 1}, occ.Probability)
	assert.Equal(t, 0.0, occ.LogLik)
}

func TestFitOccurrenceSmoothed(t *testing.T) {
	values := intermittent(80, 5)
	fixed, err := fitOccurrence(IntermittentFixed, values, testDriver())
	require.NoError(t, err)

	for _, variant := range []Intermittency{IntermittentInterval, IntermittentProbability, IntermittentSBA, IntermittentLogistic} {
		t.Run(variant.String(), func(t *testing.T) {
			occ, err := fitOccurrence(variant, values, testDriver())
			require.NoError(t, err)

			assert.Equal(t, 2, occ.NParam)
			assert.GreaterOrEqual(t, occ.Alpha, 0.0)
			assert.LessOrEqual(t, occ.Alpha, 1.0)
			require.Len(t, occ.Probability, len(values)+1)
			for _, p := range occ.Probability {
				assert.True(t, p >= 0 && p <= 1, "probability %g", p)
			}
			assert.False(t, math.IsNaN(occ.LogLik))
			assert.LessOrEqual(t, occ.LogLik, 0.0)
			// within a few nats of the constant-probability model
			assert.Greater(t, occ.LogLik, fixed.LogLik-10)
		})
	}
}

func TestFitOccurrenceRejectsAuto(t *testing.T) {
	_, err := fitOccurrence(IntermittentAuto, []float64{0, 1}, testDriver())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
