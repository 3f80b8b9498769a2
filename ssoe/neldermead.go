package ssoe

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize"
)

var errNoFinitePoint = errors.New("simplex found no finite point")

// NelderMead refines a point with gonum's simplex method. Trial points are
// projected onto the box before evaluation.
type NelderMead struct {
	SimplexSize float64 // Initial simplex size (default: gonum's)
}

// Minimize implements BoundedMinimizer with the budget mapped onto gonum's
// evaluation limit and relative function convergence.
func (nm NelderMead) Minimize(f Objective, x0, lower, upper []float64, b Budget) (Solution, error) {
	if err := checkBox(x0, lower, upper, b); err != nil {
		return Solution{}, err
	}
	ev := &counter{f: f, max: b.MaxEval}
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return ev.eval(project(x, lower, upper))
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: b.MaxEval,
		Converger: &optimize.FunctionConverge{
			Relative:   b.XtolRel,
			Iterations: 100,
		},
	}

	result, err := optimize.Minimize(problem, project(x0, lower, upper), settings, &optimize.NelderMead{SimplexSize: nm.SimplexSize})
	if result == nil || math.IsInf(result.F, 1) {
		if err == nil {
			err = errNoFinitePoint
		}
		return Solution{}, err
	}
	return Solution{
		X:           project(result.X, lower, upper),
		F:           result.F,
		Evaluations: ev.n,
	}, nil
}
