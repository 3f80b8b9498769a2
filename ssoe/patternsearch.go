package ssoe

import "math"

// PatternSearch is a bounded Hooke-Jeeves search: compass moves along each
// coordinate, pattern moves along improving directions, step halving when
// no move improves. Every trial point is projected onto the box.
type PatternSearch struct {
	Shrink float64 // Step contraction factor (default: 0.5)
}

// Minimize implements BoundedMinimizer. It stops when every step is below
// b.XtolRel relative to the current point or the budget is spent.
func (p PatternSearch) Minimize(f Objective, x0, lower, upper []float64, b Budget) (Solution, error) {
	if err := checkBox(x0, lower, upper, b); err != nil {
		return Solution{}, err
	}
	shrink := p.Shrink
	if shrink <= 0 || shrink >= 1 {
		shrink = 0.5
	}

	ev := &counter{f: f, max: b.MaxEval}
	base := project(x0, lower, upper)
	fBase := ev.eval(base)
	step := initialSteps(base, lower, upper)

	for !ev.exhausted() {
		x, fx := explore(ev, base, fBase, step, lower, upper)
		if fx < fBase {
			prev := base
			base, fBase = x, fx
			for !ev.exhausted() {
				pattern := make([]float64, len(base))
				for i := range base {
					pattern[i] = 2*base[i] - prev[i]
				}
				pattern = project(pattern, lower, upper)
				px, fpx := explore(ev, pattern, ev.eval(pattern), step, lower, upper)
				if !(fpx < fBase) {
					break
				}
				prev = base
				base, fBase = px, fpx
			}
			continue
		}

		converged := true
		for i := range step {
			step[i] *= shrink
			if step[i] > b.XtolRel*math.Max(math.Abs(base[i]), 1) {
				converged = false
			}
		}
		if converged {
			break
		}
	}
	return Solution{X: base, F: fBase, Evaluations: ev.n}, nil
}

// explore tries one step in each direction per coordinate and keeps every
// improving move.
func explore(ev *counter, x []float64, fx float64, step, lower, upper []float64) ([]float64, float64) {
	x = append([]float64(nil), x...)
	for i := range x {
		orig := x[i]
		for _, dir := range [2]float64{1, -1} {
			if ev.exhausted() {
				return x, fx
			}
			cand := math.Min(math.Max(orig+dir*step[i], lower[i]), upper[i])
			if cand == orig {
				continue
			}
			x[i] = cand
			if fc := ev.eval(x); fc < fx {
				fx = fc
				break
			}
			x[i] = orig
		}
	}
	return x, fx
}

func initialSteps(x, lower, upper []float64) []float64 {
	step := make([]float64, len(x))
	for i := range x {
		width := upper[i] - lower[i]
		if !math.IsInf(width, 0) {
			step[i] = 0.25 * width
			continue
		}
		step[i] = math.Max(0.1*math.Abs(x[i]), 0.1)
	}
	return step
}
