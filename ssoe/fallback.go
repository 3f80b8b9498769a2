package ssoe

import (
	"github.com/sartorproj/gosmooth/stats"
)

// fallbackConfig returns the simplest model for a sample too short for cfg:
// a single level with one smoothing parameter. When even that does not fit,
// the persistence is fixed at zero and the level at the sample mean.
func fallbackConfig(cfg *Config, values []float64, hasZeros bool) *Config {
	fb := *cfg
	fb.Name = "ETS(ANN)"
	if cfg.Type == Multiplicative {
		fb.Name = "ETS(MNN)"
	}
	fb.Orders = []int{1}
	fb.Lags = []int{1}
	fb.EstimateTransition = false
	fb.Measurement = []float64{1}
	fb.Transition = []float64{1}
	fb.Persistence = nil
	fb.Initial = InitialOptimal
	fb.InitialValues = nil
	fb.ExogenousUpdate = false
	fb.PreviousFit = nil

	switch {
	case !hasZeros:
		fb.Intermittent = IntermittentNone
	case cfg.Intermittent == IntermittentAuto || (cfg.Type == Multiplicative && cfg.Intermittent == IntermittentNone):
		fb.Intermittent = IntermittentFixed
	}

	if stats.CheckBudget(countObserved(values), 3+occurrenceParams(fb.Intermittent)) != nil {
		s := newSample(values, cfg.Type, 1, fb.Intermittent != IntermittentNone)
		fb.Persistence = []float64{0}
		fb.Initial = InitialProvided
		fb.InitialValues = []float64{s.mean()}
	}
	return &fb
}

// occurrenceParams is the largest parameter count of the occurrence part.
func occurrenceParams(v Intermittency) int {
	switch v {
	case IntermittentNone:
		return 0
	case IntermittentFixed:
		return 1
	default:
		return 2
	}
}
