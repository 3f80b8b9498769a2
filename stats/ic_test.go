package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrectedAIC(t *testing.T) {
	tests := []struct {
		aic     float64
		nObs    int
		nParams int
	}{
		{100.0, 50, 3},
		{200.0, 100, 5},
		{150.0, 30, 4},
	}

	for _, tt := range tests {
		aicc := CorrectedAIC(tt.aic, tt.nObs, tt.nParams)

		k := float64(tt.nParams)
		n := float64(tt.nObs)
		assert.InDelta(t, tt.aic+2*k*(k+1)/(n-k-1), aicc, 1e-10)
		assert.GreaterOrEqual(t, aicc, tt.aic)
	}

	assert.True(t, math.IsInf(CorrectedAIC(100.0, 5, 5), 1), "n-k-1 <= 0 must give +Inf")
}

func TestCalculateIC(t *testing.T) {
	logLik := -50.0
	nObs := 100
	nParams := 3

	ic := CalculateIC(logLik, nObs, nParams)

	assert.InDelta(t, -2*logLik+2*float64(nParams), ic.AIC, 1e-10)
	assert.InDelta(t, -2*logLik+float64(nParams)*math.Log(float64(nObs)), ic.BIC, 1e-10)
	assert.GreaterOrEqual(t, ic.AICc, ic.AIC)
	assert.GreaterOrEqual(t, ic.BICc, ic.BIC)
	assert.Equal(t, logLik, ic.LogLik)
}

func TestCalculateICParameterMonotonicity(t *testing.T) {
	for _, n := range []int{20, 50, 144} {
		for k := 1; k < 6; k++ {
			a := CalculateIC(-123.4, n, k)
			b := CalculateIC(-123.4, n, k+1)

			assert.InDelta(t, 2.0, b.AIC-a.AIC, 1e-9)
			assert.InDelta(t, math.Log(float64(n)), b.BIC-a.BIC, 1e-9)
		}
	}
}

func TestCalculateICDegenerateDenominator(t *testing.T) {
	ic := CalculateIC(-10, 4, 3)

	assert.False(t, math.IsInf(ic.AIC, 0))
	assert.True(t, math.IsInf(ic.AICc, 1))
	assert.True(t, math.IsInf(ic.BICc, 1))
}

func TestCheckBudget(t *testing.T) {
	assert.NoError(t, CheckBudget(10, 3))
	assert.ErrorIs(t, CheckBudget(4, 3), ErrParameterBudget)
}

func TestCriterionParseAndSelect(t *testing.T) {
	ic := &InformationCriteria{AIC: 1, AICc: 2, BIC: 3, BICc: 4}

	for i, name := range []string{"AIC", "AICc", "BIC", "BICc"} {
		kind, err := ParseCriterion(name)
		require.NoError(t, err)
		assert.Equal(t, name, kind.String())
		assert.Equal(t, float64(i+1), ic.Select(kind))
	}

	_, err := ParseCriterion("HQIC")
	assert.Error(t, err)
}
