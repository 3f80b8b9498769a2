package ssoe

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quadratic(center []float64) Objective {
	return func(x []float64) float64 {
		s := 0.0
		for i := range x {
			d := x[i] - center[i]
			s += d * d
		}
		return s
	}
}

func unbounded(n int) ([]float64, []float64) {
	lower, upper := make([]float64, n), make([]float64, n)
	for i := range lower {
		lower[i] = math.Inf(-1)
		upper[i] = math.Inf(1)
	}
	return lower, upper
}

// stubMinimizer returns a fixed solution or error.
type stubMinimizer struct {
	sol   Solution
	err   error
	calls int
}

func (s *stubMinimizer) Minimize(f Objective, x0, lower, upper []float64, b Budget) (Solution, error) {
	s.calls++
	return s.sol, s.err
}

func TestPatternSearchQuadratic(t *testing.T) {
	lower, upper := unbounded(2)
	sol, err := PatternSearch{}.Minimize(quadratic([]float64{1, -2}), []float64{0, 0}, lower, upper, Budget{MaxEval: 5000, XtolRel: 1e-8})
	require.NoError(t, err)

	assert.InDelta(t, 1, sol.X[0], 1e-6)
	assert.InDelta(t, -2, sol.X[1], 1e-6)
	assert.LessOrEqual(t, sol.Evaluations, 5000)
}

func TestPatternSearchRespectsBox(t *testing.T) {
	sol, err := PatternSearch{}.Minimize(quadratic([]float64{3}), []float64{0.5}, []float64{0}, []float64{1}, Budget{MaxEval: 1000, XtolRel: 1e-8})
	require.NoError(t, err)
	assert.Equal(t, 1.0, sol.X[0])
	assert.InDelta(t, 4, sol.F, 1e-12)
}

func TestPatternSearchBudget(t *testing.T) {
	lower, upper := unbounded(3)
	calls := 0
	f := func(x []float64) float64 {
		calls++
		return quadratic([]float64{100, 200, 300})(x)
	}
	sol, err := PatternSearch{}.Minimize(f, []float64{0, 0, 0}, lower, upper, Budget{MaxEval: 25, XtolRel: 1e-8})
	require.NoError(t, err)
	assert.Equal(t, 25, calls)
	assert.Equal(t, 25, sol.Evaluations)
}

func TestPatternSearchBoundsMismatch(t *testing.T) {
	_, err := PatternSearch{}.Minimize(quadratic([]float64{0}), []float64{0}, nil, nil, Budget{MaxEval: 10, XtolRel: 1e-8})
	assert.ErrorIs(t, err, ErrBoundsLength)
}

func TestNelderMeadRefines(t *testing.T) {
	lower, upper := unbounded(2)
	sol, err := NelderMead{}.Minimize(quadratic([]float64{0.3, 0.7}), []float64{0.25, 0.75}, lower, upper, Budget{MaxEval: 1000, XtolRel: 1e-10})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, sol.X[0], 1e-4)
	assert.InDelta(t, 0.7, sol.X[1], 1e-4)
}

func TestDriverAvoidsSentinel(t *testing.T) {
	f := func(x []float64) float64 {
		if x[0] > 5 {
			return Sentinel
		}
		return (x[0] - 2) * (x[0] - 2)
	}
	lower, upper := unbounded(1)
	d := &Driver{Global: PatternSearch{}, Local: NelderMead{}, Budget: Budget{MaxEval: 5000, XtolRel: 1e-8}}

	sol, err := d.Minimize(f, []float64{4.9}, BoundsSpec{Lower: lower, Upper: upper})
	require.NoError(t, err)
	assert.Less(t, sol.F, Sentinel)
	assert.InDelta(t, 2, sol.X[0], 1e-4)
}

func TestDriverNothingEstimated(t *testing.T) {
	calls := 0
	f := func(x []float64) float64 {
		calls++
		return 7
	}
	d := &Driver{Global: PatternSearch{}, Budget: Budget{MaxEval: 100, XtolRel: 1e-8}}

	sol, err := d.Minimize(f, nil, BoundsSpec{})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 7.0, sol.F)
}

func TestDriverPhaseSelection(t *testing.T) {
	box := BoundsSpec{Lower: []float64{-1}, Upper: []float64{1}}
	global := &stubMinimizer{sol: Solution{X: []float64{0.5}, F: 5, Evaluations: 10}}

	tests := []struct {
		name  string
		local *stubMinimizer
		want  float64
	}{
		{"local improves", &stubMinimizer{sol: Solution{X: []float64{0.1}, F: 1, Evaluations: 3}}, 1},
		{"local regresses", &stubMinimizer{sol: Solution{X: []float64{0.9}, F: 9, Evaluations: 3}}, 5},
		{"local fails", &stubMinimizer{err: errors.New("diverged")}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Driver{Global: global, Local: tt.local, Budget: Budget{MaxEval: 100, XtolRel: 1e-8}}
			sol, err := d.Minimize(quadratic([]float64{0}), []float64{0}, box)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sol.F)
			assert.Equal(t, 1, tt.local.calls)
		})
	}
}

func TestDriverGlobalError(t *testing.T) {
	d := &Driver{Global: &stubMinimizer{err: errors.New("boom")}, Budget: Budget{MaxEval: 10, XtolRel: 1e-8}}
	_, err := d.Minimize(quadratic([]float64{0}), []float64{0}, BoundsSpec{Lower: []float64{-1}, Upper: []float64{1}})
	assert.Error(t, err)
}
