package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int
}

// LjungBox tests residuals for autocorrelation up to lags. fitdf is the
// number of fitted model parameters and reduces the degrees of freedom.
// Returns nil for fewer than 10 values or constant residuals.
func LjungBox(residuals []float64, lags, fitdf int) *LjungBoxResult {
	acf := ACF(residuals, lags)
	if acf == nil || lags < 1 {
		return nil
	}
	n := 0
	for _, r := range residuals {
		if !math.IsNaN(r) {
			n++
		}
	}
	if n < 10 {
		return nil
	}
	lags = len(acf) - 1

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += acf[k] * acf[k] / float64(n-k)
	}
	q *= float64(n * (n + 2))

	dof := max(lags-fitdf, 1)
	chi := distuv.ChiSquared{K: float64(dof)}

	return &LjungBoxResult{
		Statistic: q,
		PValue:    1 - chi.CDF(q),
		Lags:      lags,
		DOF:       dof,
	}
}
