package ssoe

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// StabilityThreshold is the largest admissible spectral radius of the
// discount matrix.
const StabilityThreshold = 1 + 1e-10

var errEigen = errors.New("eigen decomposition failed")

// SpectralRadius returns the largest eigenvalue modulus of the discount
// matrix D = F - g·wᵀ.
func SpectralRadius(transition *mat.Dense, persistence, measurement []float64) (float64, error) {
	n, _ := transition.Dims()
	if n == 1 {
		return math.Abs(transition.At(0, 0) - persistence[0]*measurement[0]), nil
	}

	var outer, D mat.Dense
	outer.Outer(1, mat.NewVecDense(n, persistence), mat.NewVecDense(n, measurement))
	D.Sub(transition, &outer)
	for _, v := range D.RawMatrix().Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return math.Inf(1), nil
		}
	}

	var eig mat.Eigen
	if ok := eig.Factorize(&D, mat.EigenNone); !ok {
		return math.Inf(1), errEigen
	}
	radius := 0.0
	for _, ev := range eig.Values(nil) {
		if r := cmplx.Abs(ev); r > radius {
			radius = r
		}
	}
	return radius, nil
}

// admissible reports whether the discount matrix is stable.
func admissible(m *Matrices) bool {
	r, err := SpectralRadius(m.Transition, m.Persistence, m.Measurement)
	return err == nil && r <= StabilityThreshold
}
