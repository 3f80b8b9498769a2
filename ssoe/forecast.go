package ssoe

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// forecaster extends a fitted recursion beyond the sample.
type forecaster struct {
	lay      layout
	m        *Matrices
	rec      *recursion
	xreg     *exogenous
	typ      ErrorType
	variance float64
	prob     float64 // occurrence probability of future periods
}

// path continues the recursion h steps with zero errors and returns the
// forecasts on the internal scale.
func (fc *forecaster) path(h int) []float64 {
	lay, n := fc.lay, fc.lay.n
	T := len(fc.rec.fitted)
	data := fc.rec.states.RawMatrix().Data
	// Last maxLag state rows seed the extension
	buf := make([]float64, (lay.maxLag+h)*n)
	copy(buf, data[T*n:(T+lay.maxLag)*n])

	var a, next []float64
	if fc.xreg != nil {
		a = append([]float64(nil), fc.rec.xregState.RawRowView(T)...)
		next = make([]float64, fc.xreg.k)
	}

	out := make([]float64, h)
	v := make([]float64, n)
	for j := 0; j < h; j++ {
		r := lay.maxLag + j
		gather(lay, buf, r, v)
		out[j] = floats.Dot(fc.m.Measurement, v)
		if fc.xreg != nil {
			out[j] += fc.xreg.effect(T+j, a)
		}
		advance(fc.m, v, 0, buf[r*n:(r+1)*n])
		if fc.xreg != nil {
			fc.xreg.step(fc.m, a, next, 0)
			a, next = next, a
		}
	}
	return out
}

// impulse returns the response of the forecasts to a unit error at the
// first future period: c[0] = 1 and c[j] for j steps later.
func (fc *forecaster) impulse(h int) []float64 {
	lay, n := fc.lay, fc.lay.n
	c := make([]float64, h)
	if h == 0 {
		return c
	}
	c[0] = 1
	buf := make([]float64, (lay.maxLag+h)*n)
	copy(buf[lay.maxLag*n:(lay.maxLag+1)*n], fc.m.Persistence)

	var a, next []float64
	if fc.xreg != nil && fc.xreg.update {
		a = append([]float64(nil), fc.m.XregPersistence...)
		next = make([]float64, fc.xreg.k)
	}
	T := len(fc.rec.fitted)
	v := make([]float64, n)
	for j := 1; j < h; j++ {
		r := lay.maxLag + j
		gather(lay, buf, r, v)
		c[j] = floats.Dot(fc.m.Measurement, v)
		if a != nil {
			c[j] += fc.xreg.effect(T+j, a)
			fc.xreg.step(fc.m, a, next, 0)
			a, next = next, a
		}
		advance(fc.m, v, 0, buf[r*n:(r+1)*n])
	}
	return c
}

// forecastSet is the output of the forecaster.
type forecastSet struct {
	mean, lower, upper []float64
}

// forecast returns point forecasts on the data scale and, unless kind is
// IntervalNone, the bounds of the central interval with coverage level.
// Cumulative mode returns a single value for the sum over the horizon.
func (fc *forecaster) forecast(h int, kind IntervalKind, level float64, cumulative bool) forecastSet {
	f := fc.path(h)
	var out forecastSet
	if cumulative {
		out.mean = []float64{fc.prob * sumScale(f, fc.typ)}
	} else {
		out.mean = make([]float64, h)
		for j := range f {
			out.mean[j] = fc.prob * toScale(f[j], fc.typ)
		}
	}
	if kind == IntervalNone {
		return out
	}

	qLow, qHigh := (1-level)/2, (1+level)/2
	c := fc.impulse(h)

	// Additive sums have a closed form; multiplicative ones add up the
	// per-step bounds below
	if cumulative && fc.typ == Additive {
		d := fc.cumulativeErrors(kind, c)
		center := floats.Sum(f)
		out.lower = []float64{fc.bound(center, d, qLow)}
		out.upper = []float64{fc.bound(center, d, qHigh)}
		return out
	}

	out.lower = make([]float64, h)
	out.upper = make([]float64, h)
	for j := 0; j < h; j++ {
		d := fc.stepErrors(kind, c, j)
		out.lower[j] = fc.bound(f[j], d, qLow)
		out.upper[j] = fc.bound(f[j], d, qHigh)
	}
	if cumulative {
		out.lower = []float64{floats.Sum(out.lower)}
		out.upper = []float64{floats.Sum(out.upper)}
	}
	return out
}

// errorDist is the distribution of an h-step error: normal with sd, or
// the sorted empirical sample when sorted is non-nil.
type errorDist struct {
	sd     float64
	sorted []float64
}

func (d errorDist) quantile(q float64) float64 {
	if d.sorted != nil {
		return stat.Quantile(q, stat.Empirical, d.sorted, nil)
	}
	if d.sd <= 0 || math.IsNaN(d.sd) {
		return 0
	}
	return distuv.Normal{Mu: 0, Sigma: d.sd}.Quantile(q)
}

func (fc *forecaster) stepErrors(kind IntervalKind, c []float64, j int) errorDist {
	multi := fc.rec.multi
	switch kind {
	case IntervalSemiparametric:
		if multi != nil {
			if v := columnMeanSquare(multi, j); !math.IsNaN(v) {
				return errorDist{sd: math.Sqrt(v)}
			}
		}
	case IntervalNonparametric:
		if multi != nil {
			if col := finiteColumn(multi, j); len(col) > 0 {
				sort.Float64s(col)
				return errorDist{sorted: col}
			}
		}
	}
	// Parametric, or the fallback when the error matrix has no cells
	v := fc.variance
	for i := 1; i <= j; i++ {
		v += fc.variance * c[i] * c[i]
	}
	return errorDist{sd: math.Sqrt(v)}
}

func (fc *forecaster) cumulativeErrors(kind IntervalKind, c []float64) errorDist {
	multi := fc.rec.multi
	switch kind {
	case IntervalSemiparametric:
		if multi != nil {
			if v := cumulativeMeanSquare(multi); !math.IsNaN(v) {
				return errorDist{sd: math.Sqrt(v)}
			}
		}
	case IntervalNonparametric:
		if multi != nil {
			if sums := rowSums(multi); len(sums) > 0 {
				sort.Float64s(sums)
				return errorDist{sorted: sums}
			}
		}
	}
	// A unit error at step s reaches the sum through c[0..h-s-1]
	h := len(c)
	v := 0.0
	for s := 0; s < h; s++ {
		acc := 0.0
		for i := 0; i < h-s; i++ {
			acc += c[i]
		}
		v += acc * acc
	}
	return errorDist{sd: math.Sqrt(fc.variance * v)}
}

// bound returns the q quantile of the forecast with center on the internal
// scale. Quantile levels are shifted for the point mass at zero of an
// intermittent series.
func (fc *forecaster) bound(center float64, d errorDist, q float64) float64 {
	if fc.prob < 1 {
		if fc.prob <= 0 {
			return 0
		}
		q = (q - (1 - fc.prob)) / fc.prob
		if q <= 0 {
			return 0
		}
	}
	return toScale(center+d.quantile(q), fc.typ)
}

func toScale(v float64, typ ErrorType) float64 {
	if typ == Multiplicative {
		return math.Exp(v)
	}
	return v
}

func sumScale(f []float64, typ ErrorType) float64 {
	total := 0.0
	for _, v := range f {
		total += toScale(v, typ)
	}
	return total
}

func finiteColumn(m *mat.Dense, j int) []float64 {
	r, _ := m.Dims()
	var col []float64
	for t := 0; t < r; t++ {
		if e := m.At(t, j); !math.IsNaN(e) {
			col = append(col, e)
		}
	}
	return col
}
