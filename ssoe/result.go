package ssoe

import (
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/gosmooth/stats"
)

// ParamCount splits the number of estimated parameters by block.
type ParamCount struct {
	Measurement int
	Transition  int
	Persistence int
	Initial     int
	Exogenous   int
	Occurrence  int
	Variance    int
	Total       int
}

func (p *ParamCount) sum() {
	p.Total = p.Measurement + p.Transition + p.Persistence + p.Initial +
		p.Exogenous + p.Occurrence + p.Variance
}

// Result is a fitted model with its forecast.
type Result struct {
	Name string
	Spec ModelSpec

	States           *mat.Dense // (T+maxlag)×n
	Measurement      []float64
	Transition       *mat.Dense
	Persistence      []float64
	Initial          []float64
	XregCoefficients []float64  // coefficients at the end of the sample
	XregStates       *mat.Dense // (T+1)×k coefficient path, nil without regressors

	Fitted    []float64
	Residuals []float64  // NaN on missing periods, log scale for multiplicative models
	Errors    *mat.Dense // T×h multi-step errors

	Forecast []float64
	Lower    []float64 // nil without intervals
	Upper    []float64
	Level    float64

	Variance float64
	Params   ParamCount
	IC       *stats.InformationCriteria
	LogLik   float64
	Cost     float64

	Intermittency Intermittency
	Occurrence    *OccurrenceModel
	Fallback      bool

	SpectralRadius float64
	Stable         bool

	Holdout  []float64
	Accuracy *stats.Accuracy // one summed period in cumulative mode
	LjungBox *stats.LjungBoxResult

	// Vector is the estimated parameter vector, reusable as a PreviousFit.
	Vector []float64
}

// PreviousFit returns the estimated vector for a later fit of the same
// model structure.
func (r *Result) PreviousFit(reoptimize bool) *PreviousFit {
	return &PreviousFit{Vector: append([]float64(nil), r.Vector...), Reoptimize: reoptimize}
}
