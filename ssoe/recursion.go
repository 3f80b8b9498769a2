package ssoe

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const backcastIterations = 2

// recursion is the output of one pass of the state equations.
type recursion struct {
	states    *mat.Dense // (T+maxlag)×n, rows 0..maxlag-1 are the initial window
	fitted    []float64  // internal scale
	errors    []float64  // zero where the period is not counted
	xregState *mat.Dense // (T+1)×k, nil without regressors
	multi     *mat.Dense // T×h h-step errors, nil unless requested
}

// propagate runs the measurement and transition equations over the sample.
// With horizon > 0 the h-step error matrix is produced as well.
func propagate(lay layout, m *Matrices, s *sample, xr *exogenous, horizon int) *recursion {
	T, n := len(s.y), lay.n
	states := mat.NewDense(T+lay.maxLag, n, nil)
	data := states.RawMatrix().Data
	writeWindow(lay, data, m.Initial)

	rec := &recursion{
		states: states,
		fitted: make([]float64, T),
		errors: make([]float64, T),
	}
	if xr != nil {
		rec.xregState = mat.NewDense(T+1, xr.k, nil)
		rec.xregState.SetRow(0, m.XregInitial)
	}

	v := make([]float64, n)
	for t := 0; t < T; t++ {
		r := t + lay.maxLag
		gather(lay, data, r, v)
		yhat := floats.Dot(m.Measurement, v)
		if xr != nil {
			yhat += xr.effect(t, rec.xregState.RawRowView(t))
		}

		e := 0.0
		if s.counted[t] {
			e = s.y[t] - yhat
		}
		advance(m, v, e, data[r*n:(r+1)*n])
		if xr != nil {
			xr.step(m, rec.xregState.RawRowView(t), rec.xregState.RawRowView(t+1), e)
		}
		rec.fitted[t] = yhat
		rec.errors[t] = e
	}

	if horizon > 0 {
		rec.multi = multiStep(lay, m, s, xr, rec, horizon)
	}
	return rec
}

// multiStep reruns the recursion without error updates from every origin.
// Step j from origin t forecasts observation t+j; cells past the sample or
// on uncounted periods are NaN.
func multiStep(lay layout, m *Matrices, s *sample, xr *exogenous, rec *recursion, h int) *mat.Dense {
	T, n := len(s.y), lay.n
	out := mat.NewDense(T, h, nil)
	data := rec.states.RawMatrix().Data
	buf := make([]float64, (lay.maxLag+h)*n)
	v := make([]float64, n)

	var a, next []float64
	if xr != nil {
		a = make([]float64, xr.k)
		next = make([]float64, xr.k)
	}

	for t := 0; t < T; t++ {
		copy(buf[:lay.maxLag*n], data[t*n:(t+lay.maxLag)*n])
		if xr != nil {
			copy(a, rec.xregState.RawRowView(t))
		}
		for j := 0; j < h; j++ {
			tau := t + j
			if tau >= T {
				out.Set(t, j, math.NaN())
				continue
			}
			r := lay.maxLag + j
			gather(lay, buf, r, v)
			yhat := floats.Dot(m.Measurement, v)
			if xr != nil {
				yhat += xr.effect(tau, a)
			}
			if s.counted[tau] {
				out.Set(t, j, s.y[tau]-yhat)
			} else {
				out.Set(t, j, math.NaN())
			}
			advance(m, v, 0, buf[r*n:(r+1)*n])
			if xr != nil {
				xr.step(m, a, next, 0)
				a, next = next, a
			}
		}
	}
	return out
}

// gather fills v with the lagged state vector for row r.
func gather(lay layout, data []float64, r int, v []float64) {
	n := lay.n
	for i := 0; i < n; i++ {
		v[i] = data[(r-lay.lags[i])*n+i]
	}
}

// advance writes F·v + g·e into out.
func advance(m *Matrices, v []float64, e float64, out []float64) {
	for i := range out {
		out[i] = floats.Dot(m.Transition.RawRowView(i), v) + m.Persistence[i]*e
	}
}

// writeWindow places the initial vector into the first maxlag rows. The
// window of a lag-L component occupies the last L rows.
func writeWindow(lay layout, data []float64, initial []float64) {
	n := lay.n
	for i := 0; i < n; i++ {
		off := lay.initialOffset(i)
		start := lay.maxLag - lay.lags[i]
		for j := 0; j < lay.lags[i]; j++ {
			data[(start+j)*n+i] = initial[off+j]
		}
	}
}

// turnWindow reads the states at the end of a pass as the initial window of
// a pass running in the opposite direction. Higher positions inside an order
// block change sign with the direction of time.
func turnWindow(lay layout, states *mat.Dense, T int) []float64 {
	n := lay.n
	data := states.RawMatrix().Data
	init := make([]float64, lay.initialLen)
	for i := 0; i < n; i++ {
		off := lay.initialOffset(i)
		sign := 1.0
		if lay.position[i]%2 == 1 {
			sign = -1
		}
		for j := 0; j < lay.lags[i]; j++ {
			init[off+j] = sign * data[(T+lay.maxLag-1-j)*n+i]
		}
	}
	return init
}

// backcastInitial refines the initial window by running the recursion
// forward and backward over the sample. Regressors are left out of the
// backward passes.
func backcastInitial(lay layout, m *Matrices, s *sample) []float64 {
	work := *m
	T := len(s.y)
	if T == 0 {
		return m.Initial
	}
	rev := s.reversed()
	for it := 0; it < backcastIterations; it++ {
		fwd := propagate(lay, &work, s, nil, 0)
		work.Initial = turnWindow(lay, fwd.states, T)
		bwd := propagate(lay, &work, rev, nil, 0)
		work.Initial = turnWindow(lay, bwd.states, T)
	}
	return work.Initial
}
