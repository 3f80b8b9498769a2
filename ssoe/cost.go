package ssoe

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sentinel is returned by the cost function for non-finite or inadmissible
// points.
const Sentinel = 1e100

// Cost evaluates the loss at parameter vector x.
func (ec *EstimationContext) Cost(x []float64) float64 {
	m, err := ec.Decode(x)
	if err != nil {
		return Sentinel
	}
	return ec.costAt(m)
}

func (ec *EstimationContext) costAt(m *Matrices) float64 {
	if ec.spec.Bounds == BoundsAdmissible && !admissible(m) {
		return Sentinel
	}
	// The multi-step matrix is only built for trace costs
	horizon := 0
	if ec.cfg.CostFunction.MultiStep() {
		horizon = ec.cfg.Horizon
	}
	rec := ec.run(m, horizon)
	c := reduceCost(ec.cfg.CostFunction, rec, ec.data.counted, ec.cfg.Horizon)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return Sentinel
	}
	return c
}

// run propagates the recursion, backcasting the initial window first when
// configured. m.Initial is replaced by the backcast window.
func (ec *EstimationContext) run(m *Matrices, horizon int) *recursion {
	if ec.cfg.Initial == InitialBackcasting {
		m.Initial = backcastInitial(ec.lay, m, ec.data)
	}
	return propagate(ec.lay, m, ec.data, ec.xreg, horizon)
}

// reduceCost collapses the one-step errors or the multi-step matrix into
// the loss of the given kind. Uncounted periods are skipped.
func reduceCost(kind CostKind, rec *recursion, counted []bool, h int) float64 {
	switch kind {
	case MSE, MAE, HAM:
		sum, n := 0.0, 0
		for t, e := range rec.errors {
			if !counted[t] {
				continue
			}
			switch kind {
			case MSE:
				sum += e * e
			case MAE:
				sum += math.Abs(e)
			default:
				sum += math.Sqrt(math.Abs(e))
			}
			n++
		}
		if n == 0 {
			return math.NaN()
		}
		return sum / float64(n)
	case MSEh:
		return columnMeanSquare(rec.multi, h-1)
	case TMSE:
		total := 0.0
		for j := 0; j < h; j++ {
			total += columnMeanSquare(rec.multi, j)
		}
		return total
	case GTMSE:
		total := 0.0
		for j := 0; j < h; j++ {
			total += math.Log(columnMeanSquare(rec.multi, j))
		}
		return total
	case MSCE:
		return cumulativeMeanSquare(rec.multi)
	}
	return math.NaN()
}

// columnMeanSquare is the mean of the squared non-NaN cells of column j.
func columnMeanSquare(m *mat.Dense, j int) float64 {
	r, _ := m.Dims()
	sum, n := 0.0, 0
	for t := 0; t < r; t++ {
		e := m.At(t, j)
		if math.IsNaN(e) {
			continue
		}
		sum += e * e
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// cumulativeMeanSquare is the mean squared row sum over complete rows.
func cumulativeMeanSquare(m *mat.Dense) float64 {
	sums := rowSums(m)
	if len(sums) == 0 {
		return math.NaN()
	}
	total := 0.0
	for _, s := range sums {
		total += s * s
	}
	return total / float64(len(sums))
}

// rowSums returns the sum of every row without NaN cells.
func rowSums(m *mat.Dense) []float64 {
	r, _ := m.Dims()
	var sums []float64
	for t := 0; t < r; t++ {
		row := m.RawRowView(t)
		s, complete := 0.0, true
		for _, e := range row {
			if math.IsNaN(e) {
				complete = false
				break
			}
			s += e
		}
		if complete {
			sums = append(sums, s)
		}
	}
	return sums
}
