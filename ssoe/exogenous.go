package ssoe

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// exogenous adapts a regressor matrix to the recursion.
type exogenous struct {
	x      *mat.Dense // at least T+h rows
	k      int
	update bool
}

// newExogenous pads x to rows rows by repeating its last row. A nil or
// empty matrix means no regressors.
func newExogenous(x *mat.Dense, T, rows int, update bool) (*exogenous, error) {
	if x == nil || x.IsEmpty() {
		return nil, nil
	}
	r, k := x.Dims()
	if k == 0 {
		return nil, nil
	}
	if r < T {
		return nil, fmt.Errorf("%w: %d rows for %d observations", ErrXregRows, r, T)
	}
	padded := mat.NewDense(max(rows, r), k, nil)
	for i := 0; i < max(rows, r); i++ {
		padded.SetRow(i, x.RawRowView(min(i, r-1)))
	}
	return &exogenous{x: padded, k: k, update: update}, nil
}

// effect is xᵀa for period t.
func (e *exogenous) effect(t int, a []float64) float64 {
	if e == nil {
		return 0
	}
	row := e.x.RawRowView(t)
	sum := 0.0
	for j := range row {
		sum += row[j] * a[j]
	}
	return sum
}

// step writes the coefficients for the next period into next.
func (e *exogenous) step(m *Matrices, a, next []float64, err float64) {
	if !e.update {
		copy(next, a)
		return
	}
	for i := 0; i < e.k; i++ {
		v := m.XregPersistence[i] * err
		for j := 0; j < e.k; j++ {
			v += m.XregTransition.At(i, j) * a[j]
		}
		next[i] = v
	}
}

// seedXreg regresses the counted observations on an intercept and the
// regressors and returns the regressor coefficients.
func seedXreg(s *sample, e *exogenous) []float64 {
	coef := make([]float64, e.k)
	var rows []int
	for t, c := range s.counted {
		if c {
			rows = append(rows, t)
		}
	}
	if len(rows) <= e.k+1 {
		return coef
	}

	A := mat.NewDense(len(rows), e.k+1, nil)
	b := mat.NewVecDense(len(rows), nil)
	for i, t := range rows {
		A.Set(i, 0, 1)
		for j := 0; j < e.k; j++ {
			A.Set(i, j+1, e.x.At(t, j))
		}
		b.SetVec(i, s.y[t])
	}
	var beta mat.VecDense
	if err := beta.SolveVec(A, b); err != nil {
		return coef
	}
	for j := range coef {
		coef[j] = beta.AtVec(j + 1)
	}
	return coef
}
