package ssoe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestReduceCost(t *testing.T) {
	rec := &recursion{
		errors: []float64{1, -2, 3, 100},
		multi: mat.NewDense(2, 2, []float64{
			1, 2,
			3, math.NaN(),
		}),
	}
	counted := []bool{true, true, true, false}

	tests := []struct {
		kind CostKind
		want float64
	}{
		{MSE, 14.0 / 3},
		{MAE, 2},
		{HAM, (1 + math.Sqrt(2) + math.Sqrt(3)) / 3},
		{MSEh, 4},
		{TMSE, 5 + 4},
		{GTMSE, math.Log(5) + math.Log(4)},
		{MSCE, 9},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.InDelta(t, tt.want, reduceCost(tt.kind, rec, counted, 2), 1e-12)
		})
	}
}

func TestReduceCostNothingCounted(t *testing.T) {
	rec := &recursion{errors: []float64{1, 2}}
	assert.True(t, math.IsNaN(reduceCost(MSE, rec, []bool{false, false}, 1)))
}

func TestCostSentinelForNonFinite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bounds = BoundsNone
	ctx := testContext(cfg, noisyLevel(40, 100, 5, 7))

	// measurement, persistence, initial level
	assert.Equal(t, Sentinel, ctx.Cost([]float64{1, 1e200, 10}))
	assert.Equal(t, Sentinel, ctx.Cost([]float64{1, math.NaN(), 10}))
	assert.Equal(t, Sentinel, ctx.Cost([]float64{1, 0.1}), "wrong length")
	assert.Less(t, ctx.Cost([]float64{1, 0.1, 100}), Sentinel)
}

func TestCostAdmissibility(t *testing.T) {
	values := noisyLevel(40, 100, 5, 7)
	x := []float64{1, 2.5, 100}

	cfg := DefaultConfig()
	assert.Equal(t, Sentinel, testContext(cfg, values).Cost(x), "|1 - 2.5| > 1")

	cfg.Bounds = BoundsRestricted
	assert.Less(t, testContext(cfg, values).Cost(x), Sentinel, "restricted bounds are not checked in the cost")
}

func TestTraceCostWithOneStepEqualsMSE(t *testing.T) {
	values := seasonal(48, 30, []float64{2, -1, 3, -4}, 1, 11)
	x := []float64{1, 1, 0.2, 0.1, 30, 2, -1, 3, -4}

	mseCfg := DefaultConfig()
	mseCfg.Orders = []int{1, 1}
	mseCfg.Lags = []int{1, 4}
	tmseCfg := *mseCfg
	tmseCfg.CostFunction = TMSE
	tmseCfg.Horizon = 1

	mse := testContext(mseCfg, values).Cost(x)
	tmse := testContext(&tmseCfg, values).Cost(x)
	assert.Less(t, mse, Sentinel)
	assert.InDelta(t, mse, tmse, 1e-9*mse)
}

func TestLogLikelihood(t *testing.T) {
	n := 50
	assert.InDelta(t, -25*(math.Log(2*math.Pi)+1+math.Log(4)), LogLikelihood(4, MSE, n, 1), 1e-10)
	assert.InDelta(t, -50*(math.Log(2)+1+math.Log(2)), LogLikelihood(2, MAE, n, 1), 1e-10)
	assert.InDelta(t, -100*(math.Log(2*math.E)+math.Log(1.5)), LogLikelihood(1.5, HAM, n, 1), 1e-10)
	assert.InDelta(t, LogLikelihood(4, MSE, n, 1), LogLikelihood(4, TMSE, n, 1), 1e-10,
		"one-step trace likelihood reduces to the MSE likelihood")
	assert.InDelta(t, -25*(3*math.Log(2*math.Pi*math.E)+6), LogLikelihood(6, GTMSE, n, 3), 1e-10)
}

func TestBernoulliLogLik(t *testing.T) {
	values := []float64{0, 3, math.NaN(), 0}
	p := []float64{0.25, 0.5, 0.9, 0.75}
	want := math.Log(0.75) + math.Log(0.5) + math.Log(0.25)
	assert.InDelta(t, want, bernoulliLogLik(values, p), 1e-12)
}
