package ssoe

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	persistenceGuess = 0.1
	seedWindow       = 12
)

// Matrices holds the full set of model matrices for one parameter point.
type Matrices struct {
	Measurement     []float64
	Transition      *mat.Dense
	Persistence     []float64
	Initial         []float64 // component-major, oldest value first
	XregInitial     []float64
	XregTransition  *mat.Dense
	XregPersistence []float64
}

func (m *Matrices) clone() *Matrices {
	out := &Matrices{
		Measurement:     append([]float64(nil), m.Measurement...),
		Persistence:     append([]float64(nil), m.Persistence...),
		Initial:         append([]float64(nil), m.Initial...),
		XregInitial:     append([]float64(nil), m.XregInitial...),
		XregPersistence: append([]float64(nil), m.XregPersistence...),
	}
	if m.Transition != nil {
		out.Transition = mat.DenseCopyOf(m.Transition)
	}
	if m.XregTransition != nil {
		out.XregTransition = mat.DenseCopyOf(m.XregTransition)
	}
	return out
}

// BoundsSpec is the box of the parameter vector.
type BoundsSpec struct {
	Lower []float64
	Upper []float64
}

// PreviousFit carries a parameter vector from an earlier estimation. With
// Reoptimize set the vector is the starting guess; otherwise it is taken as
// a fully provided model.
type PreviousFit struct {
	Vector     []float64
	Reoptimize bool
}

type blockFlags struct {
	measurement     bool
	transition      bool
	persistence     bool
	initial         bool
	xregInitial     bool
	xregTransition  bool
	xregPersistence bool
}

// sample is the data one estimation run works on.
type sample struct {
	y         []float64 // log scale for multiplicative models
	counted   []bool    // observed and occurring
	frequency int
}

func newSample(values []float64, typ ErrorType, frequency int, occurrenceOnly bool) *sample {
	s := &sample{
		y:         make([]float64, len(values)),
		counted:   make([]bool, len(values)),
		frequency: frequency,
	}
	for t, v := range values {
		s.counted[t] = !math.IsNaN(v) && !(occurrenceOnly && v == 0)
		if typ == Multiplicative {
			v = math.Log(v)
		}
		s.y[t] = v
	}
	return s
}

func (s *sample) nCounted() int {
	n := 0
	for _, c := range s.counted {
		if c {
			n++
		}
	}
	return n
}

// logJacobian is the term that moves a log-scale likelihood back to the
// scale of the data: the sum of log y over counted periods. It is zero for
// additive models and NaN when a counted value has no logarithm.
func (s *sample) logJacobian(typ ErrorType) float64 {
	if typ != Multiplicative {
		return 0
	}
	sum := 0.0
	for t, c := range s.counted {
		if !c {
			continue
		}
		if math.IsInf(s.y[t], 0) || math.IsNaN(s.y[t]) {
			return math.NaN()
		}
		sum += s.y[t]
	}
	return sum
}

// mean is the average of the counted values on the internal scale.
func (s *sample) mean() float64 {
	var vals []float64
	for t, c := range s.counted {
		if c {
			vals = append(vals, s.y[t])
		}
	}
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}

// reversed returns the sample with time running backwards.
func (s *sample) reversed() *sample {
	T := len(s.y)
	out := &sample{y: make([]float64, T), counted: make([]bool, T), frequency: s.frequency}
	for t := 0; t < T; t++ {
		out.y[t] = s.y[T-1-t]
		out.counted[t] = s.counted[T-1-t]
	}
	return out
}

// EstimationContext is the state shared by the bounds assembler, the cost
// function and the optimizer driver during one estimation run.
type EstimationContext struct {
	spec  ModelSpec
	lay   layout
	cfg   *Config
	flags blockFlags
	base  *Matrices
	data  *sample
	xreg  *exogenous
}

func newEstimationContext(spec ModelSpec, cfg *Config, data *sample, xreg *exogenous) *EstimationContext {
	lay := spec.layout()
	ec := &EstimationContext{spec: spec, lay: lay, cfg: cfg, data: data, xreg: xreg}
	ec.flags = blockFlags{
		measurement: cfg.Measurement == nil,
		transition:  cfg.Transition == nil && cfg.EstimateTransition,
		persistence: cfg.Persistence == nil,
		initial:     cfg.Initial == InitialOptimal,
	}
	if xreg != nil {
		ec.flags.xregInitial = true
		ec.flags.xregTransition = cfg.ExogenousUpdate
		ec.flags.xregPersistence = cfg.ExogenousUpdate
	}

	n := lay.n
	// provided blocks are copied so results never alias the caller's config
	base := &Matrices{
		Measurement: append([]float64(nil), cfg.Measurement...),
		Persistence: append([]float64(nil), cfg.Persistence...),
		Initial:     append([]float64(nil), cfg.InitialValues...),
	}
	if base.Measurement == nil {
		base.Measurement = filled(n, 1)
	}
	switch {
	case cfg.Transition != nil:
		base.Transition = mat.NewDense(n, n, append([]float64(nil), cfg.Transition...))
	case ec.flags.transition:
		base.Transition = mat.NewDense(n, n, filled(n*n, 1))
	default:
		base.Transition = defaultTransition(lay)
	}
	if base.Persistence == nil {
		base.Persistence = filled(n, persistenceGuess)
	}
	if cfg.Initial != InitialProvided {
		base.Initial = seedInitial(data, lay)
	}
	if xreg != nil {
		k := xreg.k
		base.XregInitial = seedXreg(data, xreg)
		base.XregTransition = identity(k)
		base.XregPersistence = make([]float64, k)
	}
	ec.base = base
	return ec
}

// VectorLen returns the length of the parameter vector.
func (ec *EstimationContext) VectorLen() int {
	n, k := ec.lay.n, ec.xregK()
	size := 0
	if ec.flags.measurement {
		size += n
	}
	if ec.flags.transition {
		size += n * n
	}
	if ec.flags.persistence {
		size += n
	}
	if ec.flags.initial {
		size += ec.lay.initialLen
	}
	if ec.flags.xregInitial {
		size += k
	}
	if ec.flags.xregTransition {
		size += k * k
	}
	if ec.flags.xregPersistence {
		size += k
	}
	return size
}

func (ec *EstimationContext) xregK() int {
	if ec.xreg == nil {
		return 0
	}
	return ec.xreg.k
}

// Assemble returns the starting guess and the box of the parameter vector.
func (ec *EstimationContext) Assemble() ([]float64, BoundsSpec) {
	x0 := ec.Encode(ec.base)
	b := BoundsSpec{Lower: make([]float64, len(x0)), Upper: make([]float64, len(x0))}
	for i := range x0 {
		b.Lower[i] = math.Inf(-1)
		b.Upper[i] = math.Inf(1)
	}
	if ec.spec.Bounds == BoundsRestricted {
		boxed := 0
		if ec.flags.measurement {
			boxed += ec.lay.n
		}
		if ec.flags.transition {
			boxed += ec.lay.n * ec.lay.n
		}
		for i := 0; i < boxed; i++ {
			b.Lower[i], b.Upper[i] = 0, 1
		}
	}
	return x0, b
}

// structuralStart returns the starting guess with an estimated transition
// reset to the block structure of the model.
func (ec *EstimationContext) structuralStart() []float64 {
	m := ec.base.clone()
	m.Transition = defaultTransition(ec.lay)
	return ec.Encode(m)
}

// Encode flattens the estimated blocks of m in vector order.
func (ec *EstimationContext) Encode(m *Matrices) []float64 {
	x := make([]float64, 0, ec.VectorLen())
	if ec.flags.measurement {
		x = append(x, m.Measurement...)
	}
	if ec.flags.transition {
		x = appendDense(x, m.Transition)
	}
	if ec.flags.persistence {
		x = append(x, m.Persistence...)
	}
	if ec.flags.initial {
		x = append(x, m.Initial...)
	}
	if ec.flags.xregInitial {
		x = append(x, m.XregInitial...)
	}
	if ec.flags.xregTransition {
		x = appendDense(x, m.XregTransition)
	}
	if ec.flags.xregPersistence {
		x = append(x, m.XregPersistence...)
	}
	return x
}

// persistenceSnap is the width below zero within which an estimated
// persistence value is treated as zero. The admissibility slack lets the
// optimizer settle a hair under the boundary.
const persistenceSnap = 1e-8

// snapPersistence returns a copy of x with estimated persistence values in
// [-persistenceSnap, 0) set to zero, or nil when nothing changes.
func (ec *EstimationContext) snapPersistence(x []float64) []float64 {
	if !ec.flags.persistence {
		return nil
	}
	off := 0
	if ec.flags.measurement {
		off += ec.lay.n
	}
	if ec.flags.transition {
		off += ec.lay.n * ec.lay.n
	}
	var out []float64
	for i := off; i < off+ec.lay.n && i < len(x); i++ {
		if x[i] < 0 && x[i] >= -persistenceSnap {
			if out == nil {
				out = append([]float64(nil), x...)
			}
			out[i] = 0
		}
	}
	return out
}

// Decode is the inverse of Encode. Blocks that are not estimated keep their
// provided values.
func (ec *EstimationContext) Decode(x []float64) (*Matrices, error) {
	if len(x) != ec.VectorLen() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVectorLength, len(x), ec.VectorLen())
	}
	n, k := ec.lay.n, ec.xregK()
	m := *ec.base
	pos := 0
	next := func(size int) []float64 {
		out := append([]float64(nil), x[pos:pos+size]...)
		pos += size
		return out
	}
	if ec.flags.measurement {
		m.Measurement = next(n)
	}
	if ec.flags.transition {
		m.Transition = mat.NewDense(n, n, next(n*n))
	}
	if ec.flags.persistence {
		m.Persistence = next(n)
	}
	if ec.flags.initial {
		m.Initial = next(ec.lay.initialLen)
	}
	if ec.flags.xregInitial {
		m.XregInitial = next(k)
	}
	if ec.flags.xregTransition {
		m.XregTransition = mat.NewDense(k, k, next(k*k))
	}
	if ec.flags.xregPersistence {
		m.XregPersistence = next(k)
	}
	return &m, nil
}

// paramCount splits the estimated parameters by block.
func (ec *EstimationContext) paramCount() ParamCount {
	n, k := ec.lay.n, ec.xregK()
	var pc ParamCount
	if ec.flags.measurement {
		pc.Measurement = n
	}
	if ec.flags.transition {
		pc.Transition = n * n
	}
	if ec.flags.persistence {
		pc.Persistence = n
	}
	if ec.flags.initial {
		pc.Initial = ec.lay.initialLen
	}
	if ec.flags.xregInitial {
		pc.Exogenous += k
	}
	if ec.flags.xregTransition {
		pc.Exogenous += k * k
	}
	if ec.flags.xregPersistence {
		pc.Exogenous += k
	}
	return pc
}

// defaultTransition is block diagonal with an upper triangle of ones per
// order block: a polynomial trend of the block's order at the block's lag.
func defaultTransition(lay layout) *mat.Dense {
	F := mat.NewDense(lay.n, lay.n, nil)
	for _, b := range lay.blocks {
		for i := b[0]; i < b[1]; i++ {
			for j := i; j < b[1]; j++ {
				F.Set(i, j, 1)
			}
		}
	}
	return F
}

// seedInitial builds the initial window from the start of the sample. The
// first two lag-1 components take the intercept and slope of a linear fit;
// other positions take early observations.
func seedInitial(s *sample, lay layout) []float64 {
	window := seedWindow
	if s.frequency > window {
		window = s.frequency
	}
	var xs, ys []float64
	for t := 0; t < len(s.y) && len(ys) < window; t++ {
		if s.counted[t] {
			xs = append(xs, float64(t+1))
			ys = append(ys, s.y[t])
		}
	}

	var intercept, slope float64
	switch {
	case len(ys) >= 2:
		intercept, slope = stat.LinearRegression(xs, ys, nil, false)
	case len(ys) == 1:
		intercept = ys[0]
	}

	demean := 0.0
	if lay.hasLevel() {
		demean = intercept
	}

	init := make([]float64, lay.initialLen)
	levelSeen := 0
	for i := 0; i < lay.n; i++ {
		off := lay.initialOffset(i)
		if lay.lags[i] == 1 && levelSeen < 2 {
			if levelSeen == 0 {
				init[off] = intercept
			} else {
				init[off] = slope
			}
			levelSeen++
			continue
		}
		for j := 0; j < lay.lags[i]; j++ {
			init[off+j] = s.early(j) - demean
		}
	}
	return init
}

// early returns the observation at t or the closest earlier one, repeating
// the last available value past the end of the sample.
func (s *sample) early(t int) float64 {
	if t >= len(s.y) {
		t = len(s.y) - 1
	}
	for i := t; i >= 0; i-- {
		if s.counted[i] {
			return s.y[i]
		}
	}
	for i := t + 1; i < len(s.y); i++ {
		if s.counted[i] {
			return s.y[i]
		}
	}
	return 0
}

func filled(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func identity(k int) *mat.Dense {
	I := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		I.Set(i, i, 1)
	}
	return I
}

func appendDense(x []float64, m *mat.Dense) []float64 {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			x = append(x, m.At(i, j))
		}
	}
	return x
}
