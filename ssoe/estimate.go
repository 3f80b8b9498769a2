package ssoe

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/sartorproj/gosmooth/stats"
	"github.com/sartorproj/gosmooth/timeseries"
)

// ljungBoxLags caps the number of lags of the residual diagnostic.
const ljungBoxLags = 10

// Fit estimates the model described by cfg on series and forecasts
// cfg.Horizon periods ahead. A nil cfg uses DefaultConfig.
func Fit(series *timeseries.Series, cfg *Config, opts ...Option) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if series == nil || series.Observed() == 0 {
		return nil, ErrEmptySeries
	}
	// Resolve collaborators
	o := defaultFitOptions()
	for _, opt := range opts {
		opt(o)
	}

	// Split off the holdout
	train, test := series, (*timeseries.Series)(nil)
	if cfg.Holdout {
		var err error
		train, test, err = series.Split(cfg.Horizon)
		if err != nil {
			return nil, fmt.Errorf("holdout: %w", err)
		}
		if train.Observed() == 0 {
			return nil, ErrEmptySeries
		}
	}
	values := train.Values
	hasZeros := train.HasZeros()

	// The log transform needs positive values; zeros are allowed only
	// when an occurrence model can absorb them
	if cfg.Type == Multiplicative {
		for _, v := range values {
			if v < 0 || (v == 0 && cfg.Intermittent == IntermittentNone) {
				return nil, ErrNonPositive
			}
		}
	}

	xreg, err := newExogenous(o.xreg, len(values), len(values)+cfg.Horizon, cfg.ExogenousUpdate)
	if err != nil {
		return nil, err
	}

	est := &estimator{
		cfg:       cfg,
		values:    values,
		frequency: train.Frequency,
		xreg:      xreg,
		opts:      o,
		logger:    o.logger,
	}
	est.spec, _ = cfg.Spec().Normalize()

	// Replace models that the sample cannot support
	if need := est.maxParams(hasZeros); est.tooShort(need, hasZeros) {
		o.logger.Warn("sample too short for the model, falling back to the simplest model",
			zap.Int("observations", countObserved(values)),
			zap.Int("parameters", need))
		est.cfg = fallbackConfig(cfg, values, hasZeros)
		est.spec, _ = est.cfg.Spec().Normalize()
		est.xreg = nil
		est.fallback = true
	}

	res, err := est.run(hasZeros)
	if err != nil {
		return nil, err
	}
	if test != nil {
		res.Holdout = append([]float64(nil), test.Values...)
		actual, insample := test.Values, observedValues(values)
		if cfg.Cumulative {
			// one summed value against the cumulative forecast; the
			// per-period scales of MASE and friends do not apply
			actual, insample = []float64{floats.Sum(test.Values)}, nil
		}
		res.Accuracy, err = stats.MeasureAccuracy(actual, res.Forecast, insample)
		if err != nil {
			return nil, fmt.Errorf("holdout accuracy: %w", err)
		}
	}
	return res, nil
}

// estimator carries one Fit call through trials, selection and forecasting.
type estimator struct {
	cfg       *Config
	spec      ModelSpec
	values    []float64
	frequency int
	xreg      *exogenous
	opts      *fitOptions
	logger    *zap.Logger
	fallback  bool
}

// trial is one estimation of the magnitude model under an occurrence
// variant.
type trial struct {
	variant Intermittency
	ctx     *EstimationContext
	occ     *OccurrenceModel
	sol     Solution
	params  ParamCount
	logLik  float64
	ic      *stats.InformationCriteria
}

func (est *estimator) driver() *Driver {
	return &Driver{
		Global: est.opts.global,
		Local:  est.opts.local,
		Budget: Budget{MaxEval: est.cfg.MaxEval, XtolRel: est.cfg.XtolRel},
		Logger: est.logger,
	}
}

// maxParams is the largest number of parameters any trial can estimate.
func (est *estimator) maxParams(hasZeros bool) int {
	ctx := newEstimationContext(est.spec, est.cfg, newSample(est.values, est.cfg.Type, est.frequency, false), est.xreg)
	k := ctx.VectorLen()
	if prev := est.cfg.PreviousFit; prev != nil && !prev.Reoptimize {
		k = 0
	}
	occ := occurrenceParams(est.cfg.Intermittent)
	if est.cfg.Intermittent == IntermittentAuto && !hasZeros {
		occ = 0
	}
	return k + 1 + occ
}

// tooShort reports whether the sample cannot support need parameters. For
// intermittent models the magnitude part must also fit the nonzero periods.
func (est *estimator) tooShort(need int, hasZeros bool) bool {
	if stats.CheckBudget(countObserved(est.values), need) != nil {
		return true
	}
	if hasZeros && est.cfg.Intermittent != IntermittentNone {
		magnitude := need - occurrenceParams(est.cfg.Intermittent)
		return stats.CheckBudget(countNonZero(est.values), magnitude) != nil
	}
	return false
}

// variants lists the occurrence variants to try, in trial order.
func (est *estimator) variants(hasZeros bool) []Intermittency {
	if est.cfg.Intermittent != IntermittentAuto {
		return []Intermittency{est.cfg.Intermittent}
	}
	if !hasZeros {
		return []Intermittency{IntermittentNone}
	}
	return []Intermittency{
		IntermittentNone, IntermittentFixed, IntermittentInterval,
		IntermittentProbability, IntermittentSBA, IntermittentLogistic,
	}
}

// run fits every variant and finishes the winner.
func (est *estimator) run(hasZeros bool) (*Result, error) {
	trials, err := est.runTrials(est.variants(hasZeros))
	if err != nil {
		return nil, err
	}
	best := selectTrial(trials, est.cfg.InformationCriterion)
	winner := trials[best]
	est.logger.Debug("selected occurrence variant",
		zap.String("variant", winner.variant.String()),
		zap.Float64("ic", winner.ic.Select(est.cfg.InformationCriterion)))
	return est.finish(winner)
}

// fitTrial estimates the magnitude model for one occurrence variant.
func (est *estimator) fitTrial(variant Intermittency) (*trial, error) {
	cfg := est.cfg
	data := newSample(est.values, cfg.Type, est.frequency, variant != IntermittentNone)
	ctx := newEstimationContext(est.spec, cfg, data, est.xreg)
	driver := est.driver()

	// Occurrence part first; it does not depend on the magnitude model
	occ, err := fitOccurrence(variant, est.values, driver)
	if err != nil {
		return nil, err
	}
	tr := &trial{variant: variant, ctx: ctx, occ: occ}

	// Magnitude part: reuse, warm-start or estimate from scratch
	provided := false
	switch prev := cfg.PreviousFit; {
	case prev != nil:
		if len(prev.Vector) != ctx.VectorLen() {
			return nil, fmt.Errorf("previous fit: %w: got %d, want %d", ErrVectorLength, len(prev.Vector), ctx.VectorLen())
		}
		x := append([]float64(nil), prev.Vector...)
		if !prev.Reoptimize {
			tr.sol = Solution{X: x, F: ctx.Cost(x), Evaluations: 1}
			provided = true
			break
		}
		_, box := ctx.Assemble()
		tr.sol, err = driver.Minimize(ctx.Cost, project(x, box.Lower, box.Upper), box)
	default:
		x0, box := ctx.Assemble()
		if ctx.flags.transition && ctx.Cost(x0) >= Sentinel {
			x0 = ctx.structuralStart()
		}
		tr.sol, err = driver.Minimize(ctx.Cost, x0, box)
	}
	if err != nil {
		return nil, fmt.Errorf("estimating %s: %w", variant, err)
	}

	if !provided {
		if x := ctx.snapPersistence(tr.sol.X); x != nil {
			if f := ctx.Cost(x); f < Sentinel {
				tr.sol.X, tr.sol.F = x, f
			}
		}
		tr.params = ctx.paramCount()
	}
	tr.params.Occurrence = occ.NParam
	tr.params.Variance = 1
	tr.params.sum()

	// Multiplicative models are fitted on log y; the Jacobian keeps the
	// likelihood comparable with additive fits of the same data.
	tr.logLik = LogLikelihood(tr.sol.F, cfg.CostFunction, data.nCounted(), cfg.Horizon) -
		data.logJacobian(cfg.Type) + occ.LogLik
	tr.ic = stats.CalculateIC(tr.logLik, countObserved(est.values), tr.params.Total)

	est.logger.Debug("occurrence trial finished",
		zap.String("variant", variant.String()),
		zap.Float64("cost", tr.sol.F),
		zap.Int("parameters", tr.params.Total),
		zap.Int("evaluations", tr.sol.Evaluations))
	return tr, nil
}

// finish reruns the recursion on the winning parameters and builds the
// Result with forecasts.
func (est *estimator) finish(tr *trial) (*Result, error) {
	cfg, ctx := est.cfg, tr.ctx
	m, err := ctx.Decode(tr.sol.X)
	if err != nil {
		return nil, err
	}
	rec := ctx.run(m, cfg.Horizon)

	// Residual variance on the magnitude degrees of freedom
	T := len(est.values)
	nCounted := ctx.data.nCounted()
	sse := 0.0
	for t, e := range rec.errors {
		if ctx.data.counted[t] {
			sse += e * e
		}
	}
	df := nCounted - (tr.params.Total - tr.params.Occurrence - tr.params.Variance)
	if df <= 0 {
		df = nCounted
	}
	variance := sse / float64(max(df, 1))

	res := &Result{
		Name:          est.name(),
		Spec:          est.spec,
		States:        rec.states,
		Measurement:   m.Measurement,
		Transition:    m.Transition,
		Persistence:   m.Persistence,
		Initial:       m.Initial,
		Fitted:        make([]float64, T),
		Residuals:     make([]float64, T),
		Errors:        rec.multi,
		Level:         cfg.Level,
		Variance:      variance,
		Params:        tr.params,
		IC:            tr.ic,
		LogLik:        tr.logLik,
		Cost:          tr.sol.F,
		Intermittency: tr.variant,
		Occurrence:    tr.occ,
		Fallback:      est.fallback,
		Vector:        append([]float64(nil), tr.sol.X...),
	}
	// Fitted values on the data scale, weighted by the occurrence probability
	for t := range est.values {
		res.Fitted[t] = tr.occ.Probability[t] * toScale(rec.fitted[t], cfg.Type)
		res.Residuals[t] = rec.errors[t]
		if math.IsNaN(est.values[t]) {
			res.Residuals[t] = math.NaN()
		}
	}
	if rec.xregState != nil {
		res.XregStates = rec.xregState
		res.XregCoefficients = append([]float64(nil), rec.xregState.RawRowView(T)...)
	}

	// Stability of the fitted model
	radius, err := SpectralRadius(m.Transition, m.Persistence, m.Measurement)
	if err != nil {
		radius = math.Inf(1)
	}
	res.SpectralRadius = radius
	res.Stable = radius <= StabilityThreshold
	if !res.Stable {
		est.logger.Warn("fitted model is not stable",
			zap.String("model", res.Name),
			zap.Float64("radius", radius))
	}

	// Forecasts and intervals
	fc := &forecaster{
		lay:      ctx.lay,
		m:        m,
		rec:      rec,
		xreg:     ctx.xreg,
		typ:      cfg.Type,
		variance: variance,
		prob:     tr.occ.Last(),
	}
	out := fc.forecast(cfg.Horizon, cfg.Intervals, cfg.Level, cfg.Cumulative)
	res.Forecast, res.Lower, res.Upper = out.mean, out.lower, out.upper

	res.LjungBox = stats.LjungBox(res.Residuals, min(ljungBoxLags, T/5), tr.params.Total-tr.params.Variance)
	return res, nil
}

func (est *estimator) name() string {
	if est.cfg.Name != "" {
		return est.cfg.Name
	}
	return "SSOE(" + est.spec.String() + ")"
}

func countObserved(values []float64) int {
	n := 0
	for _, v := range values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

func countNonZero(values []float64) int {
	n := 0
	for _, v := range values {
		if !math.IsNaN(v) && v != 0 {
			n++
		}
	}
	return n
}

func observedValues(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
