package ssoe

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ErrBoundsLength is returned when lower or upper differ in length from x0.
var ErrBoundsLength = errors.New("bounds do not match the starting point")

// Objective is minimized by a BoundedMinimizer.
type Objective func(x []float64) float64

// Budget limits a minimization.
type Budget struct {
	MaxEval int     // Objective evaluations allowed
	XtolRel float64 // Stop when steps fall below XtolRel relative to |x|
}

// Solution is the best point found by a minimizer.
type Solution struct {
	X           []float64
	F           float64 // Objective at X
	Evaluations int     // Objective calls spent
}

// BoundedMinimizer minimizes an objective inside a box.
type BoundedMinimizer interface {
	Minimize(f Objective, x0, lower, upper []float64, budget Budget) (Solution, error)
}

// Driver runs a global phase followed by a local refinement seeded at the
// global solution. The refinement is kept only if it does not regress.
type Driver struct {
	Global BoundedMinimizer
	Local  BoundedMinimizer
	Budget Budget
	Logger *zap.Logger
}

// Minimize runs both phases. An empty starting point evaluates f once.
func (d *Driver) Minimize(f Objective, x0 []float64, b BoundsSpec) (Solution, error) {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(x0) == 0 {
		return Solution{F: f(x0), Evaluations: 1}, nil
	}

	first, err := d.Global.Minimize(f, x0, b.Lower, b.Upper, d.Budget)
	if err != nil {
		return Solution{}, fmt.Errorf("global phase: %w", err)
	}
	logger.Debug("global phase finished",
		zap.Float64("cost", first.F),
		zap.Int("evaluations", first.Evaluations))
	if d.Local == nil {
		return first, nil
	}

	local := Budget{MaxEval: max(d.Budget.MaxEval/5, 1), XtolRel: d.Budget.XtolRel / 100}
	second, err := d.Local.Minimize(f, first.X, b.Lower, b.Upper, local)
	if err != nil {
		logger.Debug("local phase failed, keeping global solution", zap.Error(err))
		return first, nil
	}
	logger.Debug("local phase finished",
		zap.Float64("cost", second.F),
		zap.Int("evaluations", second.Evaluations))

	if second.F <= first.F {
		second.Evaluations += first.Evaluations
		return second, nil
	}
	first.Evaluations += second.Evaluations
	return first, nil
}

// counter wraps an objective with an evaluation budget. NaN values count as
// +Inf so that comparisons stay ordered.
type counter struct {
	f   Objective
	max int
	n   int
}

func (c *counter) eval(x []float64) float64 {
	if c.exhausted() {
		return math.Inf(1)
	}
	c.n++
	v := c.f(x)
	if math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}

func (c *counter) exhausted() bool {
	return c.n >= c.max
}

func project(x, lower, upper []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = math.Min(math.Max(x[i], lower[i]), upper[i])
	}
	return out
}

func checkBox(x0, lower, upper []float64, b Budget) error {
	if len(lower) != len(x0) || len(upper) != len(x0) {
		return fmt.Errorf("%w: %d lower, %d upper for %d parameters", ErrBoundsLength, len(lower), len(upper), len(x0))
	}
	if b.MaxEval < 1 {
		return fmt.Errorf("%w: maxeval must be positive", ErrInvalidConfig)
	}
	return nil
}
